package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var noteCmd = &cobra.Command{
	Use:   "note",
	Short: "Manage notes on a lead",
}

var noteAddCmd = &cobra.Command{
	Use:   "add <lead-id> <content>...",
	Short: "Add a note to a lead",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		svc, st, err := initLocalService(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		note, err := svc.AddNote(ctx, args[0], strings.Join(args[1:], " "))
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Added note %s.\n", note.ID)
		return nil
	},
}

var noteUpdateCmd = &cobra.Command{
	Use:   "update <lead-id> <note-id> <content>...",
	Short: "Replace a note's content",
	Args:  cobra.MinimumNArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		svc, st, err := initLocalService(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		if err := svc.UpdateNote(ctx, args[0], args[1], strings.Join(args[2:], " ")); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Updated note %s.\n", args[1])
		return nil
	},
}

var noteDeleteCmd = &cobra.Command{
	Use:   "delete <lead-id> <note-id>",
	Short: "Delete a note from a lead",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		svc, st, err := initLocalService(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		if err := svc.DeleteNote(ctx, args[0], args[1]); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Deleted note %s.\n", args[1])
		return nil
	},
}

func init() {
	noteCmd.AddCommand(noteAddCmd)
	noteCmd.AddCommand(noteUpdateCmd)
	noteCmd.AddCommand(noteDeleteCmd)
	rootCmd.AddCommand(noteCmd)
}
