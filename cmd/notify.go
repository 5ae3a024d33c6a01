package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var notifyCmd = &cobra.Command{
	Use:   "notify",
	Short: "Check for due and overdue tasks",
	Long:  "Scans every task in the collection against today's date and reports overdue tasks and tasks due today. Completed tasks are skipped.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		svc, st, err := initLocalService(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		res, err := svc.SweepNotifications(ctx, nil)
		if err != nil {
			return err
		}

		if len(res.New) == 0 {
			fmt.Fprintln(os.Stderr, "No tasks due.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		_, _ = fmt.Fprintln(w, "TYPE\tTITLE\tMESSAGE")
		for _, n := range res.New {
			_, _ = fmt.Fprintf(w, "%s\t%s\t%s\n", n.Type, n.Title, n.Message)
		}
		_ = w.Flush()

		fmt.Fprintln(os.Stderr, res.Summary())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(notifyCmd)
}
