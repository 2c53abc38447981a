package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"growingcode/cmd/grow/ui"
	"growingcode/internal/exercise"
	"growingcode/internal/logging"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var useTUI bool

var errTUIInput = errors.New("--tui needs stdin to be a terminal or file")

// runMenu prints the menu, reads one choice and dispatches it.
func runMenu(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	out := cmd.OutOrStdout()
	menu := exercise.DefaultMenu()
	styles := newStyles(out)
	uiLog := logging.For(logger, logging.CategoryUI)

	var (
		entry exercise.MenuEntry
		in    *bufio.Reader
	)
	if useTUI {
		// bubbletea owns stdin until Run returns; buffer it only afterwards.
		chosen, ok, err := chooseWithTUI(ctx, menu, styles, cmd.InOrStdin(), out)
		if err != nil {
			return err
		}
		if !ok {
			uiLog.Debug("menu closed without a choice")
			return nil
		}
		entry = chosen
	} else {
		in = bufio.NewReader(cmd.InOrStdin())
		exercise.WriteMenu(out, menu, ui.Painter{Styles: styles})
		line, err := in.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("failed to read choice: %w", err)
		}
		chosen, err := menu.Resolve(line)
		if err != nil {
			uiLog.Debug("invalid menu choice", zap.Error(err))
			fmt.Fprintln(out, styles.Error.Render(menu.InvalidChoiceMessage()))
			return nil
		}
		entry = chosen
	}

	if in == nil {
		in = bufio.NewReader(cmd.InOrStdin())
	}
	uiLog.Debug("menu entry chosen", zap.String("key", entry.Key))
	return dispatchEntry(ctx, in, out, entry)
}

// chooseWithTUI runs the bubbletea menu until an entry is chosen or the user quits.
// in must be a file (terminal or pipe): bubbletea can only cancel its reader on
// files, and any other reader would keep consuming input after the menu closes.
func chooseWithTUI(ctx context.Context, menu exercise.Menu, styles ui.Styles, in io.Reader, out io.Writer) (exercise.MenuEntry, bool, error) {
	if _, ok := in.(*os.File); !ok {
		return exercise.MenuEntry{}, false, errTUIInput
	}
	p := tea.NewProgram(ui.NewMenuModel(menu, styles),
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
	)
	final, err := p.Run()
	if err != nil {
		return exercise.MenuEntry{}, false, fmt.Errorf("menu failed: %w", err)
	}
	m, ok := final.(ui.MenuModel)
	if !ok {
		return exercise.MenuEntry{}, false, fmt.Errorf("unexpected menu model %T", final)
	}
	entry, chosen := m.Chosen()
	return entry, chosen, nil
}

// dispatchEntry performs a menu entry's action. Exercise failures are
// reported by the runner and do not fail the menu.
func dispatchEntry(ctx context.Context, in *bufio.Reader, out io.Writer, entry exercise.MenuEntry) error {
	if entry.Action == exercise.ActionHistory {
		return printHistory(ctx, out, cfg.History.Limit)
	}

	runner, err := newRunner(in, out)
	if err != nil {
		return err
	}
	runner.RunEntry(ctx, entry)
	return nil
}

// newRunner wires the registry, configured harvest settings, styling, logging and history.
func newRunner(in io.Reader, out io.Writer) (*exercise.Runner, error) {
	settings, err := exercise.HarvestSettingsFrom(cfg.Harvest)
	if err != nil {
		return nil, fmt.Errorf("invalid harvest config: %w", err)
	}

	env := exercise.NewEnv(in, out)
	env.Harvest = settings
	env.Logger = logging.For(logger, logging.CategoryHarvest)

	opts := []exercise.RunnerOption{
		exercise.WithPainter(ui.Painter{Styles: newStyles(out)}),
		exercise.WithLogger(logging.For(logger, logging.CategoryRunner)),
	}
	if history != nil {
		opts = append(opts, exercise.WithHistory(history))
	}
	return exercise.NewRunner(exercise.DefaultRegistry(), env, opts...), nil
}

// newStyles returns styles for the configured theme, rendered for out.
func newStyles(out io.Writer) ui.Styles {
	theme := "auto"
	if cfg != nil {
		theme = cfg.UI.Theme
	}
	return ui.NewStyles(ui.ThemeByName(theme), out)
}
