package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/amonks/markitdown/internal/editor"
	"github.com/amonks/markitdown/session"
	"github.com/amonks/markitdown/tracker"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in and save the session",
	Long: `Sign in with email and password and save the session for later commands.

Without --password, the password is prompted for when running interactively,
or read from the first line of stdin otherwise.`,
	Args: cobra.NoArgs,
	RunE: runLogin,
}

var (
	loginEmail    string
	loginPassword string
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the saved session",
	Args:  cobra.NoArgs,
	RunE:  runLogout,
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in user",
	Args:  cobra.NoArgs,
	RunE:  runWhoami,
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account",
	Args:  cobra.NoArgs,
	RunE:  runRegister,
}

var (
	registerName     string
	registerEmail    string
	registerPassword string
	registerConfirm  string
)

func init() {
	rootCmd.AddCommand(loginCmd, logoutCmd, whoamiCmd, registerCmd)

	loginCmd.Flags().StringVar(&loginEmail, "email", "", "Account email")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "Account password")
	_ = loginCmd.MarkFlagRequired("email")

	registerCmd.Flags().StringVar(&registerName, "name", "", "Your name")
	registerCmd.Flags().StringVar(&registerEmail, "email", "", "Account email")
	registerCmd.Flags().StringVar(&registerPassword, "password", "", "Account password")
	registerCmd.Flags().StringVar(&registerConfirm, "confirm", "", "Repeat the password")
	_ = registerCmd.MarkFlagRequired("name")
	_ = registerCmd.MarkFlagRequired("email")
	_ = registerCmd.MarkFlagRequired("password")
	_ = registerCmd.MarkFlagRequired("confirm")
}

// readSecret prompts for a hidden value on a terminal, or reads one line
// from in otherwise.
func readSecret(cmd *cobra.Command, prompt string) (string, error) {
	if editor.IsInteractive() && cmd.InOrStdin() == os.Stdin {
		fmt.Fprint(cmd.ErrOrStderr(), prompt)
		secret, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Fprintln(cmd.ErrOrStderr())
		if err != nil {
			return "", fmt.Errorf("read %s: %w", strings.TrimSuffix(strings.ToLower(prompt), ": "), err)
		}
		return string(secret), nil
	}

	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func runLogin(cmd *cobra.Command, args []string) error {
	a, err := loadApp()
	if err != nil {
		return err
	}

	password := loginPassword
	if !cmd.Flags().Changed("password") {
		password, err = readSecret(cmd, "Password: ")
		if err != nil {
			return err
		}
	}

	sess, err := a.client(session.Session{}, nil).SignIn(cmd.Context(), loginEmail, password)
	if err != nil {
		return err
	}
	if err := a.store.Save(sess); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s\n", sess.Email)
	return nil
}

func runLogout(cmd *cobra.Command, args []string) error {
	a, err := loadApp()
	if err != nil {
		return err
	}
	if err := a.store.Clear(); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
	return nil
}

func runWhoami(cmd *cobra.Command, args []string) error {
	ctx, _, client, err := withClient(cmd, nil)
	if err != nil {
		return err
	}
	profile, err := client.Profile(ctx)
	if err != nil {
		return err
	}
	name := profile.Username
	if name == "" {
		name = client.Session().Email
	}
	fmt.Fprintln(cmd.OutOrStdout(), name)
	return nil
}

func runRegister(cmd *cobra.Command, args []string) error {
	a, err := loadApp()
	if err != nil {
		return err
	}
	err = a.client(session.Session{}, nil).SignUp(cmd.Context(), tracker.Registration{
		Name:            registerName,
		Email:           registerEmail,
		Password:        registerPassword,
		ConfirmPassword: registerConfirm,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Registered %s. Run `mid login --email %s` to sign in.\n", strings.TrimSpace(registerEmail), strings.TrimSpace(registerEmail))
	return nil
}
