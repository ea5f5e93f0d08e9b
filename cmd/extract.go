package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fengshan-hs/timetable/app"
	"github.com/fengshan-hs/timetable/config"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract teacher timetables from a folder of PDF documents into JSON",
	RunE:  runExtract,
}

var (
	extractDir string
	extractOut string
)

func init() {
	extractCmd.Flags().StringVar(&extractDir, "dir", "", "document folder (overrides paths.pdf_dir)")
	extractCmd.Flags().StringVarP(&extractOut, "out", "o", "", "JSON output (overrides paths.json)")
	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	return withService(cmd, func(cfg *config.Config) {
		if extractDir != "" {
			cfg.Paths.PDFDir = extractDir
		}
		if extractOut != "" {
			cfg.Paths.JSON = extractOut
		}
	}, func(ctx context.Context, svc *app.Service) error {
		sum, err := svc.Extract(ctx)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "已處理 %d 份文件\n", sum.Documents)
		printSummary(cmd, sum)
		return nil
	})
}
