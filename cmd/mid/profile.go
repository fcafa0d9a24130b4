package main

import (
	"fmt"
	"strings"

	"github.com/amonks/markitdown/internal/listflags"
	"github.com/spf13/cobra"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show or update your profile",
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show your profile",
	Args:  cobra.NoArgs,
	RunE:  runProfileShow,
}

var profileShowJSON bool

var profileSetPACCmd = &cobra.Command{
	Use:   "set-pac [token|-]",
	Short: "Store the GitHub personal access token used to publish gists",
	Long: `Store the GitHub personal access token used by 'mid project publish'.

Pass the token as an argument, '-' to read it from stdin, or nothing to be
prompted for it. An empty token removes the stored one.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runProfileSetPAC,
}

func init() {
	rootCmd.AddCommand(profileCmd)
	profileCmd.AddCommand(profileShowCmd, profileSetPACCmd)

	listflags.AddJSONFlag(profileShowCmd, &profileShowJSON)
}

// maskCredential hides all but the last four characters.
func maskCredential(credential string) string {
	if credential == "" {
		return "not set"
	}
	if len(credential) <= 4 {
		return strings.Repeat("*", len(credential))
	}
	return strings.Repeat("*", len(credential)-4) + credential[len(credential)-4:]
}

func runProfileShow(cmd *cobra.Command, args []string) error {
	ctx, _, client, err := withClient(cmd, nil)
	if err != nil {
		return err
	}
	profile, err := client.Profile(ctx)
	if err != nil {
		return err
	}
	if profileShowJSON {
		profile.GitPAC = maskCredential(profile.GitPAC)
		return encodeJSONToStdout(profile)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Username:   %s\n", profile.Username)
	fmt.Fprintf(cmd.OutOrStdout(), "GitHub PAC: %s\n", maskCredential(profile.GitPAC))
	return nil
}

func runProfileSetPAC(cmd *cobra.Command, args []string) error {
	ctx, _, client, err := withClient(cmd, nil)
	if err != nil {
		return err
	}

	var pac string
	if len(args) == 1 && args[0] != "-" {
		pac = args[0]
	} else {
		pac, err = readSecret(cmd, "GitHub personal access token: ")
		if err != nil {
			return err
		}
	}

	if err := client.UpdateCredential(ctx, pac); err != nil {
		return err
	}
	if strings.TrimSpace(pac) == "" {
		fmt.Fprintln(cmd.OutOrStdout(), "GitHub PAC removed")
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), "GitHub PAC updated")
	return nil
}
