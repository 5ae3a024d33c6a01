package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "Manage follow-up tasks on a lead",
}

var taskAddCmd = &cobra.Command{
	Use:   "add <lead-id> <content>...",
	Short: "Add a task with a due date",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		svc, st, err := initLocalService(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		due, _ := cmd.Flags().GetString("due")
		task, err := svc.AddTask(ctx, args[0], strings.Join(args[1:], " "), due)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Added task %s due %s.\n", task.ID, task.DueDate)
		return nil
	},
}

var taskToggleCmd = &cobra.Command{
	Use:   "toggle <lead-id> <task-id>",
	Short: "Toggle a task's completion flag",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		svc, st, err := initLocalService(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		done, err := svc.ToggleTask(ctx, args[0], args[1])
		if err != nil {
			return err
		}
		if done {
			fmt.Fprintf(os.Stderr, "Task %s completed.\n", args[1])
		} else {
			fmt.Fprintf(os.Stderr, "Task %s reopened.\n", args[1])
		}
		return nil
	},
}

var taskDeleteCmd = &cobra.Command{
	Use:   "delete <lead-id> <task-id>",
	Short: "Delete a task from a lead",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		svc, st, err := initLocalService(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		if err := svc.DeleteTask(ctx, args[0], args[1]); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Deleted task %s.\n", args[1])
		return nil
	},
}

func init() {
	taskAddCmd.Flags().String("due", "", "due date (YYYY-MM-DD)")
	_ = taskAddCmd.MarkFlagRequired("due")

	taskCmd.AddCommand(taskAddCmd)
	taskCmd.AddCommand(taskToggleCmd)
	taskCmd.AddCommand(taskDeleteCmd)
	rootCmd.AddCommand(taskCmd)
}
