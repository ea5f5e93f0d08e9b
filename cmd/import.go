package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/fengshan-hs/timetable/app"
	"github.com/fengshan-hs/timetable/config"
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Rebuild the canonical JSON from the edited verification workbook",
	RunE:  runImport,
}

var (
	importIn  string
	importOut string
)

func init() {
	importCmd.Flags().StringVarP(&importIn, "in", "i", "", "workbook input (overrides paths.workbook)")
	importCmd.Flags().StringVarP(&importOut, "out", "o", "", "JSON output (overrides paths.json)")
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	return withService(cmd, func(cfg *config.Config) {
		if importIn != "" {
			cfg.Paths.Workbook = importIn
		}
		if importOut != "" {
			cfg.Paths.JSON = importOut
		}
	}, func(ctx context.Context, svc *app.Service) error {
		sum, err := svc.Import(ctx)
		if err != nil {
			return err
		}
		printSummary(cmd, sum)
		return nil
	})
}
