package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/amonks/markitdown/export"
	"github.com/amonks/markitdown/internal/editor"
	"github.com/amonks/markitdown/internal/listflags"
	"github.com/amonks/markitdown/internal/paths"
	"github.com/amonks/markitdown/internal/ui"
	"github.com/amonks/markitdown/tracker"
	"github.com/spf13/cobra"
)

var projectCmd = &cobra.Command{
	Use:     "project",
	Aliases: []string{"projects", "p"},
	Short:   "Manage projects",
}

// project list
var projectListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List projects",
	Args:    cobra.NoArgs,
	RunE:    runProjectList,
}

var (
	projectListDeleted bool
	projectListAll     bool
	projectListJSON    bool
)

// project create
var projectCreateCmd = &cobra.Command{
	Use:   "create <title>",
	Short: "Create a project",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runProjectCreate,
}

// project rename
var projectRenameCmd = &cobra.Command{
	Use:   "rename <id> [title]",
	Short: "Rename a project",
	Long: `Rename a project.

Without a title, opens $EDITOR with the current title when running
interactively.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runProjectRename,
}

// project show
var projectShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a project's tasks",
	Args:  cobra.ExactArgs(1),
	RunE:  runProjectShow,
}

var (
	projectShowJSON     bool
	projectShowMarkdown bool
	projectShowRender   bool
)

// project delete / restore / purge
var projectDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Move a project to the deleted list",
	Args:  cobra.ExactArgs(1),
	RunE:  runProjectDelete,
}

var projectRestoreCmd = &cobra.Command{
	Use:   "restore <id>",
	Short: "Move a deleted project back to the active list",
	Args:  cobra.ExactArgs(1),
	RunE:  runProjectRestore,
}

var projectPurgeCmd = &cobra.Command{
	Use:   "purge <id>",
	Short: "Permanently delete a deleted project",
	Args:  cobra.ExactArgs(1),
	RunE:  runProjectPurge,
}

var projectYes bool

// project export
var projectExportCmd = &cobra.Command{
	Use:   "export <id>",
	Short: "Write a project's checklist as a Markdown file",
	Args:  cobra.ExactArgs(1),
	RunE:  runProjectExport,
}

var (
	projectExportDir    string
	projectExportStdout bool
)

// project publish
var projectPublishCmd = &cobra.Command{
	Use:   "publish <id>",
	Short: "Publish a project's checklist as a private GitHub gist",
	Args:  cobra.ExactArgs(1),
	RunE:  runProjectPublish,
}

func init() {
	rootCmd.AddCommand(projectCmd)
	projectCmd.AddCommand(projectListCmd, projectCreateCmd, projectRenameCmd, projectShowCmd,
		projectDeleteCmd, projectRestoreCmd, projectPurgeCmd, projectExportCmd, projectPublishCmd)

	listflags.AddAllFlag(projectListCmd, &projectListAll)
	listflags.AddDeletedFlag(projectListCmd, &projectListDeleted)
	listflags.AddJSONFlag(projectListCmd, &projectListJSON)

	listflags.AddJSONFlag(projectShowCmd, &projectShowJSON)
	projectShowCmd.Flags().BoolVar(&projectShowMarkdown, "markdown", false, "Output the Markdown export")
	projectShowCmd.Flags().BoolVar(&projectShowRender, "render", false, "Output the Markdown export rendered for the terminal")
	projectShowCmd.MarkFlagsMutuallyExclusive("json", "markdown", "render")

	for _, cmd := range []*cobra.Command{projectDeleteCmd, projectPurgeCmd} {
		cmd.Flags().BoolVarP(&projectYes, "yes", "y", false, "Do not ask for confirmation")
	}

	projectExportCmd.Flags().StringVar(&projectExportDir, "dir", "", "Directory to write to (default: export.dir or the working directory)")
	projectExportCmd.Flags().BoolVar(&projectExportStdout, "stdout", false, "Write to stdout instead of a file")
	projectExportCmd.MarkFlagsMutuallyExclusive("dir", "stdout")
}

func runProjectList(cmd *cobra.Command, args []string) error {
	ctx, _, client, err := withClient(cmd, nil)
	if err != nil {
		return err
	}
	if _, err := client.ListProjects(ctx); err != nil {
		return err
	}

	var projects []tracker.Project
	switch {
	case projectListAll:
		projects = client.Projects()
	case projectListDeleted:
		projects = client.DeletedProjects()
	default:
		projects = client.ActiveProjects()
	}

	if projectListJSON {
		return encodeJSONToStdout(projects)
	}
	if len(projects) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), emptyProjectListMessage())
		return nil
	}
	fmt.Fprint(cmd.OutOrStdout(), formatProjectTable(projects, time.Now(), projectListAll))
	return nil
}

func emptyProjectListMessage() string {
	switch {
	case projectListDeleted:
		return "No deleted projects"
	case projectListAll:
		return "No projects"
	default:
		return "No projects. Create one with `mid project create <title>`."
	}
}

func formatProjectTable(projects []tracker.Project, now time.Time, withState bool) string {
	headers := []string{"ID", "TITLE", "CREATED"}
	if withState {
		headers = append(headers, "STATE")
	}
	builder := ui.NewTableBuilder(headers, len(projects))
	for _, project := range projects {
		title := ui.TruncateTableCell(project.Title)
		if project.IsDeleted {
			title = ui.Deleted(title)
		}
		row := []string{fmt.Sprintf("%d", project.ID), title, ui.FormatTimeAgo(project.CreatedDate, now)}
		if withState {
			state := "active"
			if project.IsDeleted {
				state = ui.Deleted("deleted")
			}
			row = append(row, state)
		}
		builder.AddRow(row)
	}
	return builder.String()
}

func runProjectCreate(cmd *cobra.Command, args []string) error {
	ctx, _, client, err := withClient(cmd, nil)
	if err != nil {
		return err
	}
	project, err := client.CreateProject(ctx, strings.Join(args, " "))
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created project %d: %s\n", project.ID, project.Title)
	return nil
}

func runProjectRename(cmd *cobra.Command, args []string) error {
	id, err := parseID("project", args[0])
	if err != nil {
		return err
	}
	ctx, _, client, err := withClient(cmd, nil)
	if err != nil {
		return err
	}

	title := strings.Join(args[1:], " ")
	if len(args) == 1 {
		if !editor.IsInteractive() {
			return fmt.Errorf("title is required when not running interactively")
		}
		detail, err := client.ProjectDetail(ctx, id)
		if err != nil {
			return err
		}
		title, err = editor.EditProjectTitle(detail.Title)
		if errors.Is(err, editor.ErrNoChange) {
			fmt.Fprintf(cmd.OutOrStdout(), "Project %d unchanged\n", id)
			return nil
		}
		if err != nil {
			return err
		}
	}

	if err := client.RenameProject(ctx, id, title); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Renamed project %d to %s\n", id, strings.TrimSpace(title))
	return nil
}

func runProjectShow(cmd *cobra.Command, args []string) error {
	id, err := parseID("project", args[0])
	if err != nil {
		return err
	}
	ctx, _, client, err := withClient(cmd, nil)
	if err != nil {
		return err
	}
	detail, err := client.ProjectDetail(ctx, id)
	if err != nil {
		return err
	}

	switch {
	case projectShowJSON:
		return encodeJSONToStdout(detail)
	case projectShowMarkdown:
		return export.WriteTo(cmd.OutOrStdout(), detail)
	case projectShowRender:
		fmt.Fprint(cmd.OutOrStdout(), export.Render(outputWidth(), detail))
		return nil
	default:
		fmt.Fprint(cmd.OutOrStdout(), formatProjectDetail(detail, outputWidth()))
		return nil
	}
}

// projectForLifecycle loads the project list so lifecycle checks and
// confirmation prompts know the project.
func projectForLifecycle(cmd *cobra.Command, yes bool, arg string) (*tracker.Client, int, error) {
	id, err := parseID("project", arg)
	if err != nil {
		return nil, 0, err
	}
	ctx, _, client, err := withClient(cmd, confirmerFor(cmd, yes))
	if err != nil {
		return nil, 0, err
	}
	if _, err := client.ListProjects(ctx); err != nil {
		return nil, 0, err
	}
	return client, id, nil
}

func runProjectDelete(cmd *cobra.Command, args []string) error {
	client, id, err := projectForLifecycle(cmd, projectYes, args[0])
	if err != nil {
		return err
	}
	if err := client.SoftDeleteProject(cmd.Context(), id); err != nil {
		return declined(cmd, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted project %d (restore with `mid project restore %d`)\n", id, id)
	return nil
}

func runProjectRestore(cmd *cobra.Command, args []string) error {
	client, id, err := projectForLifecycle(cmd, true, args[0])
	if err != nil {
		return err
	}
	if err := client.RestoreProject(cmd.Context(), id); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Restored project %d\n", id)
	return nil
}

func runProjectPurge(cmd *cobra.Command, args []string) error {
	client, id, err := projectForLifecycle(cmd, projectYes, args[0])
	if err != nil {
		return err
	}
	if err := client.PurgeProject(cmd.Context(), id); err != nil {
		return declined(cmd, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Permanently deleted project %d\n", id)
	return nil
}

func runProjectExport(cmd *cobra.Command, args []string) error {
	id, err := parseID("project", args[0])
	if err != nil {
		return err
	}
	ctx, a, client, err := withClient(cmd, nil)
	if err != nil {
		return err
	}
	detail, err := client.ProjectDetail(ctx, id)
	if err != nil {
		return err
	}

	if projectExportStdout {
		return export.WriteTo(cmd.OutOrStdout(), detail)
	}

	dir, err := paths.ResolveWithDefault(firstNonEmpty(projectExportDir, a.cfg.Export.Dir), paths.WorkingDir)
	if err != nil {
		return err
	}
	path, err := export.Write(dir, detail)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Exported %s\n", path)
	return nil
}

func runProjectPublish(cmd *cobra.Command, args []string) error {
	id, err := parseID("project", args[0])
	if err != nil {
		return err
	}
	ctx, a, client, err := withClient(cmd, nil)
	if err != nil {
		return err
	}
	url, err := client.PublishGist(ctx, id, a.gistClient())
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Published gist: %s\n", url)
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return value
		}
	}
	return ""
}
