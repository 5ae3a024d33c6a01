package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sells-group/leadgen-cli/internal/model"
	"github.com/sells-group/leadgen-cli/internal/push"
)

var notionCmd = &cobra.Command{
	Use:   "notion",
	Short: "Sync leads to Notion",
}

var notionPushCmd = &cobra.Command{
	Use:   "push",
	Short: "Upsert leads into the shared Notion database",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		nc, err := initNotion()
		if err != nil {
			return err
		}

		svc, st, err := initLocalService(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		leads, err := svc.Leads(ctx)
		if err != nil {
			return err
		}
		if savedOnly, _ := cmd.Flags().GetBool("saved-only"); savedOnly {
			var kept []model.Lead
			for _, l := range leads {
				if l.IsSaved {
					kept = append(kept, l)
				}
			}
			leads = kept
		}
		if len(leads) == 0 {
			fmt.Fprintln(os.Stderr, "Nothing to push.")
			return nil
		}

		res, err := push.ToNotion(ctx, nc, cfg.Notion.LeadDB, leads)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Notion: %d created, %d updated.\n", res.Created, res.Updated)
		return nil
	},
}

var sfCmd = &cobra.Command{
	Use:   "sf",
	Short: "Sync leads to Salesforce",
}

var sfPushCmd = &cobra.Command{
	Use:   "push",
	Short: "Upsert qualified leads as Salesforce Lead records",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		sc, err := initSalesforce()
		if err != nil {
			return err
		}

		svc, st, err := initLocalService(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		leads, err := svc.Leads(ctx)
		if err != nil {
			return err
		}

		res, err := push.ToSalesforce(ctx, sc, leads)
		if err != nil {
			return err
		}
		if res.Inserted == 0 && res.Updated == 0 && len(res.Failed) == 0 {
			fmt.Fprintln(os.Stderr, "No qualified leads to push.")
			return nil
		}
		fmt.Fprintf(os.Stderr, "Salesforce: %d inserted, %d updated, %d rejected.\n", res.Inserted, res.Updated, len(res.Failed))
		return nil
	},
}

func init() {
	notionPushCmd.Flags().Bool("saved-only", false, "push only saved leads")
	notionCmd.AddCommand(notionPushCmd)
	rootCmd.AddCommand(notionCmd)

	sfCmd.AddCommand(sfPushCmd)
	rootCmd.AddCommand(sfCmd)
}
