package main

import (
	"fmt"
	"os"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/leadgen-cli/internal/export"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the collection as a spreadsheet",
	Long:  "Writes the full collection grouped by location and industry, as CSV (UTF-8 with BOM, Excel-friendly) or XLSX.",
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
		if len(leads) == 0 {
			fmt.Fprintln(os.Stderr, "Nothing to export.")
			return nil
		}

		format, _ := cmd.Flags().GetString("format")
		out, _ := cmd.Flags().GetString("out")
		if out == "" {
			out = export.Filename(time.Now(), format)
		}

		f, err := os.Create(out)
		if err != nil {
			return eris.Wrap(err, "export: create file")
		}
		defer f.Close() //nolint:errcheck

		switch format {
		case "csv":
			err = export.WriteCSV(f, leads)
		case "xlsx":
			err = export.WriteXLSX(f, leads)
		default:
			return eris.Errorf("unsupported export format: %s", format)
		}
		if err != nil {
			return err
		}

		fmt.Fprintf(os.Stderr, "Exported %d leads to %s.\n", len(leads), out)
		return nil
	},
}

func init() {
	exportCmd.Flags().String("format", "csv", "output format (csv, xlsx)")
	exportCmd.Flags().String("out", "", "output path (default leads_export_<date>.<format>)")
	rootCmd.AddCommand(exportCmd)
}
