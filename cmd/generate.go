package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sells-group/leadgen-cli/internal/pipeline"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate leads and merge them into the collection",
	Long:  "Asks Claude for lead candidates matching a sector and location (or a single company), then merges them into the stored collection. Saved leads are never touched; unsaved ones are replaced.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		svc, st, err := initService(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		sector, _ := cmd.Flags().GetString("sector")
		location, _ := cmd.Flags().GetString("location")
		company, _ := cmd.Flags().GetString("company")
		lat, _ := cmd.Flags().GetFloat64("lat")
		lng, _ := cmd.Flags().GetFloat64("lng")

		req := pipeline.GenerateRequest{
			Sector:      sector,
			Location:    location,
			CompanyName: company,
		}
		if cmd.Flags().Changed("lat") && cmd.Flags().Changed("lng") {
			req.Coordinates = &pipeline.Coordinates{Latitude: lat, Longitude: lng}
		}

		merged, err := svc.Generate(ctx, req)
		if err != nil {
			return err
		}

		fmt.Fprintf(os.Stderr, "Collection now holds %d leads.\n", len(merged))
		formatLeadsList(os.Stdout, merged)
		return nil
	},
}

func init() {
	generateCmd.Flags().String("sector", "", "target industry sector")
	generateCmd.Flags().String("location", "", "target city or region")
	generateCmd.Flags().String("company", "", "research a single company instead of a sector search")
	generateCmd.Flags().Float64("lat", 0, "latitude hint for the search area")
	generateCmd.Flags().Float64("lng", 0, "longitude hint for the search area")
	rootCmd.AddCommand(generateCmd)
}
