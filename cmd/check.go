package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fengshan-hs/timetable/app"
	"github.com/fengshan-hs/timetable/config"
	"github.com/fengshan-hs/timetable/core/model"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Report schedule entries placed in forbidden slots",
	RunE:  runCheck,
}

var checkIn string

func init() {
	checkCmd.Flags().StringVarP(&checkIn, "in", "i", "", "JSON input (overrides paths.json)")
	rootCmd.AddCommand(checkCmd)
}

func slotLabel(day, period int) string {
	d, _ := model.DayLabel(day)
	p, ok := model.PeriodLabel(period)
	if !ok {
		p = fmt.Sprint(period)
	}
	return d + " 第" + p + "節"
}

func runCheck(cmd *cobra.Command, args []string) error {
	return withService(cmd, func(cfg *config.Config) {
		if checkIn != "" {
			cfg.Paths.JSON = checkIn
		}
	}, func(ctx context.Context, svc *app.Service) error {
		rep, err := svc.Check(ctx)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, v := range rep.Violations {
			e := v.Entry
			_, _ = fmt.Fprintf(out, "禁區 %s: %s %s %s (%s)\n", v.Rule.ID, e.TeacherName, e.ClassID, slotLabel(e.Day, e.Period), v.Rule.Desc)
		}
		for _, c := range rep.DomainConflicts {
			e := c.Entry
			_, _ = fmt.Fprintf(out, "領域時間 %s: %s %s %s\n", c.Warning.Domain, e.TeacherName, e.ClassID, slotLabel(e.Day, e.Period))
		}
		for _, name := range rep.Unresolved {
			_, _ = fmt.Fprintf(out, "查無教師: %s\n", name)
		}
		if rep.Clean() {
			_, _ = fmt.Fprintln(out, "沒有發現衝突")
		}
		return nil
	})
}
