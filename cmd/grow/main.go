package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"growingcode/internal/config"
	"growingcode/internal/logging"
	"growingcode/internal/store"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Global flags
	verbose    bool
	workspace  string
	configPath string
	timeout    time.Duration

	// Runtime state built in PersistentPreRunE
	cfg     *config.Config
	logger  *zap.Logger
	history *store.HistoryStore
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "grow",
	Short: "Growing Code - exercise runner for the garden curriculum",
	Long: `grow tests your Growing Code exercises for you.

Run without arguments to pick an exercise from the menu, or use --tui for the
interactive menu. Every run is recorded in .growing/history.db so you can see
how your garden is coming along with "grow history".`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setupRuntime()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		closeRuntime()
	},
	RunE: runMenu,
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&workspace, "workspace", "w", "", "Workspace directory (default: current)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: <workspace>/.growing/config.yaml)")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Minute, "Operation timeout")

	rootCmd.Flags().BoolVar(&useTUI, "tui", false, "Pick from the interactive menu")

	historyCmd.Flags().IntVar(&historyLimit, "limit", 0, "Number of runs to show (default: history.limit)")
	configInitCmd.Flags().BoolVar(&forceInit, "force", false, "Overwrite an existing config file")

	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)

	// Add commands to root
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(allCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(harvestCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(aboutCmd)
	rootCmd.AddCommand(configCmd)
}

func main() {
	err := rootCmd.Execute()
	// PersistentPostRun is skipped when RunE fails.
	closeRuntime()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// workspaceDir returns the --workspace flag or the current directory.
func workspaceDir() string {
	if workspace != "" {
		return workspace
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return cwd
}

// resolvedConfigPath returns --config or the workspace default.
func resolvedConfigPath() string {
	if configPath != "" {
		return configPath
	}
	return config.DefaultPath(workspaceDir())
}

// setupRuntime loads config, builds the logger and opens run history.
func setupRuntime() error {
	ws := workspaceDir()

	loaded, err := config.Load(resolvedConfigPath())
	if err != nil {
		return err
	}
	if err := loaded.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if loaded.Logging.IsFile() {
		loaded.Logging.File = config.ResolvePath(ws, loaded.Logging.File)
	}

	logger, err = logging.New(loaded.Logging, verbose)
	if err != nil {
		return err
	}
	cfg = loaded

	boot := logging.For(logger, logging.CategoryBoot)
	boot.Debug("config loaded",
		zap.String("workspace", ws),
		zap.String("zero_day_policy", cfg.Harvest.ZeroDayPolicy),
		zap.String("negative_policy", cfg.Harvest.NegativePolicy))

	history = nil
	if cfg.History.Enabled {
		dbPath := config.ResolvePath(ws, cfg.History.DatabasePath)
		h, err := store.OpenHistory(dbPath)
		if err != nil {
			// The runner still works without history.
			boot.Warn("run history unavailable", zap.String("path", dbPath), zap.Error(err))
		} else {
			history = h
		}
	}
	return nil
}

// closeRuntime releases history and flushes the logger. Safe to call twice.
func closeRuntime() {
	if history != nil {
		if err := history.Close(); err != nil && logger != nil {
			logger.Warn("failed to close history", zap.Error(err))
		}
		history = nil
	}
	if logger != nil {
		_ = logger.Sync()
	}
}

// commandContext returns a context bounded by --timeout and cancelled on SIGINT/SIGTERM.
func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	base := cmd.Context()
	if base == nil {
		base = context.Background()
	}
	ctx, stop := signal.NotifyContext(base, os.Interrupt, syscall.SIGTERM)
	if timeout <= 0 {
		return ctx, stop
	}
	tctx, cancel := context.WithTimeout(ctx, timeout)
	return tctx, func() {
		cancel()
		stop()
	}
}
