package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/fengshan-hs/timetable/app"
	"github.com/fengshan-hs/timetable/config"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the verification workbook from the canonical JSON",
	RunE:  runExport,
}

var (
	exportIn  string
	exportOut string
	exportCSV string
)

func init() {
	exportCmd.Flags().StringVarP(&exportIn, "in", "i", "", "JSON input (overrides paths.json)")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "workbook output (overrides paths.workbook)")
	exportCmd.Flags().StringVar(&exportCSV, "csv", "", "also write the flat review rows as CSV")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	return withService(cmd, func(cfg *config.Config) {
		if exportIn != "" {
			cfg.Paths.JSON = exportIn
		}
		if exportOut != "" {
			cfg.Paths.Workbook = exportOut
		}
		if exportCSV != "" {
			cfg.Paths.CSV = exportCSV
		}
	}, func(ctx context.Context, svc *app.Service) error {
		sum, err := svc.Export(ctx)
		if err != nil {
			return err
		}
		printSummary(cmd, sum)
		return nil
	})
}
