package main

import (
	"fmt"
	"os"
	"sync"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/leadgen-cli/internal/model"
)

var emailCmd = &cobra.Command{
	Use:   "email [lead-id]",
	Short: "Draft an outreach email for a lead",
	Long:  "Asks Claude to draft a personalized prospecting email. Pass a lead ID, or --all-saved to draft one per favorite.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		allSaved, _ := cmd.Flags().GetBool("all-saved")

		if allSaved == (len(args) == 1) {
			return eris.New("pass exactly one of a lead ID or --all-saved")
		}

		svc, st, err := initService(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		if !allSaved {
			draft, err := svc.DraftOutreachEmail(ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Println(draft)
			return nil
		}

		leads, err := svc.Leads(ctx)
		if err != nil {
			return err
		}
		var saved []model.Lead
		for _, l := range leads {
			if l.IsSaved {
				saved = append(saved, l)
			}
		}
		if len(saved) == 0 {
			fmt.Fprintln(os.Stderr, "No saved leads.")
			return nil
		}

		// One draft per favorite, a few in flight at a time. A single
		// failure aborts the batch.
		drafts := make([]string, len(saved))
		var mu sync.Mutex

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(cfg.Email.MaxConcurrent)
		for i, l := range saved {
			g.Go(func() error {
				draft, err := svc.DraftOutreachEmail(gctx, l.ID)
				if err != nil {
					return eris.Wrap(err, "draft email for "+l.CompanyName)
				}
				mu.Lock()
				drafts[i] = draft
				mu.Unlock()
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}

		for i, l := range saved {
			fmt.Printf("=== %s (%s) ===\n%s\n\n", l.CompanyName, l.ID, drafts[i])
		}
		zap.L().Info("outreach drafts complete", zap.Int("leads", len(saved)))
		return nil
	},
}

func init() {
	emailCmd.Flags().Bool("all-saved", false, "draft an email for every saved lead")
	rootCmd.AddCommand(emailCmd)
}
