package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sells-group/leadgen-cli/internal/crm"
	"github.com/sells-group/leadgen-cli/internal/model"
)

var leadsCmd = &cobra.Command{
	Use:   "leads",
	Short: "Inspect and manage the lead collection",
}

// -- leads list --

var leadsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List leads",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		svc, st, err := initLocalService(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		leads, err := svc.Leads(ctx)
		if err != nil {
			return err
		}

		search, _ := cmd.Flags().GetString("search")
		status, _ := cmd.Flags().GetString("status")
		filter := crm.Filter{Search: search, Status: model.LeadStatus(status)}
		if cmd.Flags().Changed("saved") {
			saved, _ := cmd.Flags().GetBool("saved")
			filter.Saved = &saved
		}
		leads = filter.Apply(leads)

		if len(leads) == 0 {
			fmt.Fprintln(os.Stderr, "No leads found.")
			return nil
		}

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(leads)
		}

		formatLeadsList(os.Stdout, leads)
		return nil
	},
}

// -- leads show --

var leadsShowCmd = &cobra.Command{
	Use:   "show <lead-id>",
	Short: "Show full details of a lead",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		svc, st, err := initLocalService(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		leads, err := svc.Leads(ctx)
		if err != nil {
			return err
		}
		for _, l := range leads {
			if l.ID == args[0] {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(l)
			}
		}
		return crm.ErrLeadNotFound
	},
}

// -- leads status --

var leadsStatusCmd = &cobra.Command{
	Use:   "status <lead-id> <status>",
	Short: "Move a lead to a new pipeline status",
	Long:  "Valid statuses: " + strings.Join(statusNames(), ", ") + ".",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		svc, st, err := initLocalService(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		if err := svc.SetStatus(ctx, args[0], model.LeadStatus(args[1])); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Lead %s moved to %s.\n", args[0], args[1])
		return nil
	},
}

// -- leads save --

var leadsSaveCmd = &cobra.Command{
	Use:   "save <lead-id>",
	Short: "Toggle a lead's favorite flag",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		svc, st, err := initLocalService(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		saved, err := svc.ToggleSave(ctx, args[0])
		if err != nil {
			return err
		}
		if saved {
			fmt.Fprintf(os.Stderr, "Lead %s saved.\n", args[0])
		} else {
			fmt.Fprintf(os.Stderr, "Lead %s unsaved.\n", args[0])
		}
		return nil
	},
}

func init() {
	leadsListCmd.Flags().String("search", "", "filter by company name substring")
	leadsListCmd.Flags().String("status", "", "filter by pipeline status")
	leadsListCmd.Flags().Bool("saved", false, "show only saved (true) or unsaved (false) leads")
	leadsListCmd.Flags().Bool("json", false, "emit full lead records as JSON")

	leadsCmd.AddCommand(leadsListCmd)
	leadsCmd.AddCommand(leadsShowCmd)
	leadsCmd.AddCommand(leadsStatusCmd)
	leadsCmd.AddCommand(leadsSaveCmd)
	rootCmd.AddCommand(leadsCmd)
}

func statusNames() []string {
	names := make([]string, len(model.ValidStatuses))
	for i, s := range model.ValidStatuses {
		names[i] = string(s)
	}
	return names
}

// formatLeadsList writes a tabular lead summary to w.
func formatLeadsList(out io.Writer, leads []model.Lead) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tCOMPANY\tINDUSTRY\tLOCATION\tSTATUS\tSAVED\tNOTES\tTASKS")
	_, _ = fmt.Fprintln(w, "--\t-------\t--------\t--------\t------\t-----\t-----\t-----")

	for _, l := range leads {
		saved := ""
		if l.IsSaved {
			saved = "*"
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%d\t%d\n",
			l.ID,
			truncate(l.CompanyName, 30),
			truncate(l.Industry, 24),
			truncate(l.Location, 24),
			l.Status,
			saved,
			len(l.Notes),
			len(l.Tasks),
		)
	}
	_ = w.Flush()
}

// truncate shortens s for compact display without splitting a rune.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) > n {
		return string(r[:n-3]) + "..."
	}
	return s
}
