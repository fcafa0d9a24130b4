package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/amonks/markitdown/internal/editor"
	"github.com/amonks/markitdown/tracker"
	"github.com/spf13/cobra"
)

var taskCmd = &cobra.Command{
	Use:     "task",
	Aliases: []string{"tasks", "t"},
	Short:   "Manage tasks within a project",
}

// task add
var taskAddCmd = &cobra.Command{
	Use:   "add <project-id> <description>",
	Short: "Add a pending task to a project",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runTaskAdd,
}

// task toggle
var taskToggleCmd = &cobra.Command{
	Use:     "toggle <task-id>",
	Aliases: []string{"done", "undone"},
	Short:   "Flip a task between done and pending",
	Args:    cobra.ExactArgs(1),
	RunE:    runTaskToggle,
}

// task edit
var taskEditCmd = &cobra.Command{
	Use:   "edit <task-id>",
	Short: "Edit a task's description",
	Long: `Edit a task's description.

With --description, the description is replaced directly. Otherwise
$EDITOR opens with the task's status and description; the status may be
changed there too. The editor needs --project to load the task.`,
	Args: cobra.ExactArgs(1),
	RunE: runTaskEdit,
}

var taskEditDescription string

// task delete / restore / purge
var taskDeleteCmd = &cobra.Command{
	Use:   "delete <task-id>",
	Short: "Move a task to its project's deleted list",
	Args:  cobra.ExactArgs(1),
	RunE:  runTaskDelete,
}

var taskRestoreCmd = &cobra.Command{
	Use:   "restore <task-id>",
	Short: "Move a deleted task back to the active list",
	Args:  cobra.ExactArgs(1),
	RunE:  runTaskRestore,
}

var taskPurgeCmd = &cobra.Command{
	Use:   "purge <task-id>",
	Short: "Permanently delete a deleted task",
	Args:  cobra.ExactArgs(1),
	RunE:  runTaskPurge,
}

var (
	taskProject string
	taskYes     bool
)

func init() {
	rootCmd.AddCommand(taskCmd)
	taskCmd.AddCommand(taskAddCmd, taskToggleCmd, taskEditCmd, taskDeleteCmd, taskRestoreCmd, taskPurgeCmd)

	for _, cmd := range []*cobra.Command{taskToggleCmd, taskEditCmd, taskDeleteCmd, taskRestoreCmd, taskPurgeCmd} {
		cmd.Flags().StringVarP(&taskProject, "project", "p", "", "Project the task belongs to")
	}
	for _, cmd := range []*cobra.Command{taskDeleteCmd, taskPurgeCmd} {
		cmd.Flags().BoolVarP(&taskYes, "yes", "y", false, "Do not ask for confirmation")
	}
	taskEditCmd.Flags().StringVarP(&taskEditDescription, "description", "d", "", "New description (use '-' to read from stdin)")
	addTaskFlagAliases(taskToggleCmd, taskEditCmd, taskDeleteCmd, taskRestoreCmd, taskPurgeCmd)
}

// taskClient returns a client with the task's project loaded when --project
// is given, so lifecycle checks and prompts know the task.
func taskClient(cmd *cobra.Command, confirm tracker.Confirmer, arg string) (context.Context, *tracker.Client, int, error) {
	id, err := parseID("task", arg)
	if err != nil {
		return nil, nil, 0, err
	}
	ctx, _, client, err := withClient(cmd, confirm)
	if err != nil {
		return nil, nil, 0, err
	}
	if taskProject != "" {
		projectID, err := parseID("project", taskProject)
		if err != nil {
			return nil, nil, 0, err
		}
		if _, err := client.ProjectDetail(ctx, projectID); err != nil {
			return nil, nil, 0, err
		}
		if _, _, ok := client.Task(id); !ok {
			return nil, nil, 0, fmt.Errorf("task %d: %w in project %d", id, tracker.ErrNotFound, projectID)
		}
	}
	return ctx, client, id, nil
}

func runTaskAdd(cmd *cobra.Command, args []string) error {
	projectID, err := parseID("project", args[0])
	if err != nil {
		return err
	}
	ctx, _, client, err := withClient(cmd, nil)
	if err != nil {
		return err
	}
	task, err := client.AddTask(ctx, projectID, strings.Join(args[1:], " "))
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Added task %d: %s\n", task.ID, task.Description)
	return nil
}

func statusWord(status tracker.Status) string {
	if status == tracker.StatusDone {
		return "done"
	}
	return "pending"
}

func runTaskToggle(cmd *cobra.Command, args []string) error {
	ctx, client, id, err := taskClient(cmd, nil, args[0])
	if err != nil {
		return err
	}
	task, err := client.ToggleTaskStatus(ctx, id)
	if err != nil {
		return err
	}
	if task.Status.IsValid() {
		fmt.Fprintf(cmd.OutOrStdout(), "Task %d is now %s\n", id, statusWord(task.Status))
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Toggled task %d\n", id)
	return nil
}

func runTaskEdit(cmd *cobra.Command, args []string) error {
	if cmd.Flags().Changed("description") {
		description, err := resolveDescriptionFromStdin(taskEditDescription, cmd.InOrStdin())
		if err != nil {
			return err
		}
		ctx, client, id, err := taskClient(cmd, nil, args[0])
		if err != nil {
			return err
		}
		task, err := client.EditTaskDescription(ctx, id, description)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Updated task %d: %s\n", id, task.Description)
		return nil
	}

	if taskProject == "" {
		return fmt.Errorf("--project is required to edit in $EDITOR (or pass --description)")
	}
	if !editor.IsInteractive() {
		return fmt.Errorf("--description is required when not running interactively")
	}
	ctx, client, id, err := taskClient(cmd, nil, args[0])
	if err != nil {
		return err
	}
	task, _, _ := client.Task(id)
	projectID, _ := parseID("project", taskProject)
	detail, _ := client.Detail(projectID)

	parsed, err := editor.EditTask(editor.DataFromTask(task, detail.Title))
	if errors.Is(err, editor.ErrNoChange) {
		fmt.Fprintf(cmd.OutOrStdout(), "Task %d unchanged\n", id)
		return nil
	}
	if err != nil {
		return err
	}

	if parsed.Description != task.Description {
		if task, err = client.EditTaskDescription(ctx, id, parsed.Description); err != nil {
			return err
		}
	}
	if parsed.Status != task.Status {
		if task, err = client.ToggleTaskStatus(ctx, id); err != nil {
			return err
		}
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Updated task %d: %s (%s)\n", id, task.Description, statusWord(task.Status))
	return nil
}

func runTaskDelete(cmd *cobra.Command, args []string) error {
	ctx, client, id, err := taskClient(cmd, confirmerFor(cmd, taskYes), args[0])
	if err != nil {
		return err
	}
	if err := client.SoftDeleteTask(ctx, id); err != nil {
		return declined(cmd, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted task %d\n", id)
	return nil
}

func runTaskRestore(cmd *cobra.Command, args []string) error {
	ctx, client, id, err := taskClient(cmd, nil, args[0])
	if err != nil {
		return err
	}
	if err := client.RestoreTask(ctx, id); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Restored task %d\n", id)
	return nil
}

func runTaskPurge(cmd *cobra.Command, args []string) error {
	ctx, client, id, err := taskClient(cmd, confirmerFor(cmd, taskYes), args[0])
	if err != nil {
		return err
	}
	if err := client.PurgeTask(ctx, id); err != nil {
		return declined(cmd, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Permanently deleted task %d\n", id)
	return nil
}
