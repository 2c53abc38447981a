package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"time"

	"growingcode/cmd/grow/ui"

	"github.com/spf13/cobra"
)

var historyLimit int

// historyCmd shows recorded runs
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent exercise runs and per-exercise totals",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()

		limit := historyLimit
		if limit <= 0 {
			limit = cfg.History.Limit
		}
		return printHistory(ctx, cmd.OutOrStdout(), limit)
	},
}

// printHistory renders the recent runs and stats tables.
func printHistory(ctx context.Context, out io.Writer, limit int) error {
	styles := newStyles(out)
	if history == nil {
		fmt.Fprintln(out, styles.Warning.Render("Run history is disabled (history.enabled: false)"))
		return nil
	}

	runs, err := history.Recent(ctx, limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(out, styles.Muted.Render("No runs recorded yet. Pick an exercise from the menu to get started."))
		return nil
	}

	recent := ui.NewSimpleTable("Recent runs", []string{"WHEN", "EXERCISE", "STATUS", "DURATION", "MESSAGE"}).AlignRight(3)
	for _, r := range runs {
		recent.AddRow(
			r.StartedAt.Local().Format("2006-01-02 15:04:05"),
			r.Exercise,
			r.Status,
			r.Duration.Round(time.Millisecond).String(),
			r.Message,
		)
	}
	fmt.Fprint(out, recent.View(styles))

	stats, err := history.Stats(ctx)
	if err != nil {
		return err
	}
	totals := ui.NewSimpleTable("Per exercise", []string{"EXERCISE", "RUNS", "PASSED", "FAILED", "LAST RUN"}).AlignRight(1, 2, 3)
	for _, s := range stats {
		totals.AddRow(
			s.Exercise,
			strconv.Itoa(s.Runs),
			strconv.Itoa(s.Passed),
			strconv.Itoa(s.Failed),
			s.LastRun.Local().Format("2006-01-02 15:04:05"),
		)
	}
	fmt.Fprintln(out)
	fmt.Fprint(out, totals.View(styles))
	return nil
}
