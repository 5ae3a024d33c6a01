package main

import (
	"fmt"
	"os"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/leadgen-cli/internal/backup"
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Save or restore the full collection as JSON",
}

var backupExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the collection to a JSON backup file",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		svc, st, err := initLocalService(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		data, err := svc.ExportBackup(ctx)
		if err != nil {
			return err
		}

		out, _ := cmd.Flags().GetString("out")
		if out == "" {
			out = backup.Filename(time.Now())
		}
		if err := os.WriteFile(out, data, 0o644); err != nil {
			return eris.Wrap(err, "backup: write file")
		}

		fmt.Fprintf(os.Stderr, "Backup written to %s.\n", out)
		return nil
	},
}

var backupImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Replace the collection with the contents of a backup file",
	Long:  "Overwrites every stored lead, favorites included. The file is validated before anything is replaced; an invalid backup leaves the collection untouched.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		if yes, _ := cmd.Flags().GetBool("yes"); !yes {
			return eris.New("importing replaces the entire collection; re-run with --yes to confirm")
		}

		data, err := os.ReadFile(args[0])
		if err != nil {
			return eris.Wrap(err, "backup: read file")
		}

		svc, st, err := initLocalService(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		leads, err := svc.Restore(ctx, data)
		if err != nil {
			return err
		}

		fmt.Fprintf(os.Stderr, "Restored %d leads from %s.\n", len(leads), args[0])
		return nil
	},
}

func init() {
	backupExportCmd.Flags().String("out", "", "output path (default leads_backup_<date>.json)")
	backupImportCmd.Flags().Bool("yes", false, "confirm replacing the entire collection")

	backupCmd.AddCommand(backupExportCmd)
	backupCmd.AddCommand(backupImportCmd)
	rootCmd.AddCommand(backupCmd)
}
