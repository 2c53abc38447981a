package main

import (
	"bufio"
	"fmt"
	"io"

	"growingcode/cmd/grow/ui"
	"growingcode/internal/exercise"
	"growingcode/internal/harvest"
	"growingcode/internal/logging"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// runCmd runs exercises by name or menu key
var runCmd = &cobra.Command{
	Use:   "run [exercise|key]...",
	Short: "Run exercises by name or menu key",
	Long: `Runs each argument in order. An argument may be an exercise name
(ft_count_harvest_recursive) or a menu key (5 runs both harvest counters).

Exits non-zero when any exercise fails.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runExercises,
}

// allCmd runs every exercise
var allCmd = &cobra.Command{
	Use:   "all",
	Short: "Run every registered exercise",
	Args:  cobra.NoArgs,
	RunE:  runAll,
}

// listCmd prints the registry
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the available exercises",
	Args:  cobra.NoArgs,
	RunE:  listExercises,
}

// harvestCmd runs the day counter directly
var harvestCmd = &cobra.Command{
	Use:   "harvest [days]",
	Short: "Count the days until harvest",
	Long: `Counts from Day 1 up to the given number of days, then announces the
harvest. Without an argument the number of days is read from stdin.

A target of 0 follows harvest.zero_day_policy and a negative target follows
harvest.negative_policy. Pass negative targets after "--":

  grow harvest -- -3`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHarvest,
}

// aboutCmd renders exercise documentation
var aboutCmd = &cobra.Command{
	Use:   "about [exercise]",
	Short: "Show what an exercise asks for",
	Args:  cobra.ExactArgs(1),
	RunE:  aboutExercise,
}

func runExercises(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	out := cmd.OutOrStdout()
	runner, err := newRunner(cmd.InOrStdin(), out)
	if err != nil {
		return err
	}

	menu := exercise.DefaultMenu()
	var results []exercise.Result
	for _, arg := range args {
		if ctx.Err() != nil {
			break
		}
		if entry, err := menu.Resolve(arg); err == nil {
			if entry.Action == exercise.ActionHistory {
				if err := printHistory(ctx, out, cfg.History.Limit); err != nil {
					return err
				}
				continue
			}
			results = append(results, runner.RunEntry(ctx, entry)...)
			continue
		}
		results = append(results, runner.RunExercise(ctx, arg))
	}
	return summarize(out, results)
}

func runAll(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	out := cmd.OutOrStdout()
	runner, err := newRunner(cmd.InOrStdin(), out)
	if err != nil {
		return err
	}
	return summarize(out, runner.RunAll(ctx))
}

// summarize prints pass/fail totals and fails when any exercise failed.
func summarize(out io.Writer, results []exercise.Result) error {
	styles := newStyles(out)
	failed := exercise.Failed(results)
	passed := len(results) - failed

	fmt.Fprintln(out)
	if failed == 0 {
		fmt.Fprintln(out, styles.Success.Render(fmt.Sprintf("✅ %d passed", passed)))
		return nil
	}
	fmt.Fprintln(out, styles.Error.Render(fmt.Sprintf("❌ %d passed, %d failed", passed, failed)))
	return fmt.Errorf("%d of %d exercises failed", failed, len(results))
}

func listExercises(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	styles := newStyles(out)

	table := ui.NewSimpleTable("Exercises", []string{"NAME", "SUMMARY"})
	for _, ex := range exercise.DefaultRegistry().List() {
		table.AddRow(ex.Name, ex.Summary)
	}
	fmt.Fprint(out, table.View(styles))

	fmt.Fprintln(out)
	fmt.Fprintln(out, styles.Bold.Render("Menu"))
	for _, e := range exercise.DefaultMenu().Entries {
		fmt.Fprintln(out, e.Line())
	}
	return nil
}

func runHarvest(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	settings, err := exercise.HarvestSettingsFrom(cfg.Harvest)
	if err != nil {
		return fmt.Errorf("invalid harvest config: %w", err)
	}
	out := cmd.OutOrStdout()

	var src harvest.TargetSource
	if len(args) == 1 {
		days, err := harvest.ParseTarget(args[0])
		if err != nil {
			return err
		}
		src = harvest.FixedSource(days)
	} else {
		src = &harvest.PromptSource{
			In:     bufio.NewReader(cmd.InOrStdin()),
			Out:    out,
			Prompt: settings.Prompt,
		}
	}

	session, err := harvest.StartFrom(ctx, src, settings.Options...)
	if err != nil {
		return err
	}
	log := logging.For(logger, logging.CategoryHarvest)
	log.Debug("harvest session started", zap.Int("target", session.Target()))

	rep := &harvest.WriterReporter{
		W:                 out,
		ProgressFormat:    settings.ProgressFormat,
		CompletionMessage: settings.CompletionMessage,
	}
	if err := session.Run(ctx, rep); err != nil {
		return err
	}
	log.Debug("harvest session finished", zap.Int("elapsed", session.Elapsed()))
	return nil
}

func aboutExercise(cmd *cobra.Command, args []string) error {
	ex, err := exercise.DefaultRegistry().Lookup(args[0])
	if err != nil {
		return err
	}
	doc := ex.Doc
	if doc == "" {
		doc = "# " + ex.Name + "\n\n" + ex.Summary + "\n"
	}
	rendered, err := ui.RenderDoc(doc, cfg.UI.DocStyle, 80)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), rendered)
	return nil
}
