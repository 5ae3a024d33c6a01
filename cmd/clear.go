package main

import (
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
)

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove leads from the collection",
	Long:  "Removes every unsaved lead; favorites survive. Pass --all to wipe the entire collection, favorites included.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		all, _ := cmd.Flags().GetBool("all")

		if yes, _ := cmd.Flags().GetBool("yes"); !yes {
			if all {
				return eris.New("this wipes the entire collection, favorites included; re-run with --yes to confirm")
			}
			return eris.New("this removes every unsaved lead; re-run with --yes to confirm")
		}

		svc, st, err := initLocalService(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		if all {
			if err := svc.ClearAll(ctx); err != nil {
				return err
			}
			fmt.Fprintln(os.Stderr, "Collection cleared.")
			return nil
		}

		removed, err := svc.ClearUnsaved(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Removed %d unsaved leads.\n", removed)
		return nil
	},
}

func init() {
	clearCmd.Flags().Bool("all", false, "also remove saved leads")
	clearCmd.Flags().Bool("yes", false, "confirm the removal")
	rootCmd.AddCommand(clearCmd)
}
