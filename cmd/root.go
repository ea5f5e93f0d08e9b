package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/fengshan-hs/timetable/app"
	"github.com/fengshan-hs/timetable/config"
	"github.com/fengshan-hs/timetable/core/build"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:          "timetable",
	Short:        "School timetable extraction and verification pipeline",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "configuration file (yaml or json); defaults and K_ env vars when empty")
}

// Execute runs the CLI.
func Execute() error { return rootCmd.Execute() }

// withService loads the configuration, builds the service and runs fn with
// a context cancelled on interrupt. Missing inputs are reported and end the
// command without an error.
func withService(cmd *cobra.Command, adjust func(*config.Config), fn func(context.Context, *app.Service) error) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if adjust != nil {
		adjust(cfg)
	}
	svc, err := app.New(cfg)
	if err != nil {
		return err
	}
	if err := fn(ctx, svc); err != nil {
		if errors.Is(err, app.ErrInputNotFound) {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "找不到輸入: %v\n", err)
			return nil
		}
		return err
	}
	return nil
}

func printSummary(cmd *cobra.Command, sum app.Summary) {
	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "已輸出 %s\n", sum.Output)
	_, _ = fmt.Fprintf(out, "教師 %d 位、班級 %d 個、課表 %d 筆", sum.Teachers, sum.Classes, sum.Schedules)
	if sum.Constraints > 0 || sum.DomainWarnings > 0 {
		_, _ = fmt.Fprintf(out, "、禁區 %d 條、領域時間 %d 條", sum.Constraints, sum.DomainWarnings)
	}
	_, _ = fmt.Fprintln(out)
	printDiagnostics(cmd, sum.Diagnostics)
}

func printDiagnostics(cmd *cobra.Command, diags []build.Diagnostic) {
	if len(diags) == 0 {
		return
	}
	out := cmd.ErrOrStderr()
	_, _ = fmt.Fprintf(out, "%d 則警告:\n", len(diags))
	for _, d := range diags {
		_, _ = fmt.Fprintf(out, "  [%s] %s: %s\n", d.Kind, d.Subject, d.Detail)
	}
}
