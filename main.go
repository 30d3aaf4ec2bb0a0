package main

import (
	"fmt"
	"os"

	"abandon/internal/config"
	"abandon/internal/git"
	"abandon/internal/launcher"
	"abandon/internal/logging"
	"abandon/internal/navigator"
	"abandon/internal/watcher"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Version info (set by ldflags)
var (
	version   = "dev"
	buildTime = "unknown"
)

var (
	cfgFile string
	debug   bool
	noWatch bool
)

var rootCmd = &cobra.Command{
	Use:   "abandon [root]",
	Short: "Browse and launch a catalog of old games",
	Long: `abandon browses a directory tree of games described by abandon.info
files and launches them with the matching emulator or interpreter.

Navigation:
  ↑/↓, PgUp/PgDn  move
  Enter           open a category or launch a game
  b, Esc          go back
  p               show the entry's abandon.info
  r               rescan
  q               quit`,
	Args:          cobra.MaximumNArgs(1),
	Version:       fmt.Sprintf("%s (built %s)", version, buildTime),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	rootCmd.Flags().StringVar(&cfgFile, "config", "", "config file (default: ~/.config/abandon/config.yaml)")
	rootCmd.Flags().BoolVarP(&debug, "debug", "d", false, "log at debug level")
	rootCmd.Flags().BoolVar(&noWatch, "no-watch", false, "do not rescan when the catalog changes")
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if len(args) == 1 {
		cfg.SetRoot(args[0])
	}
	if noWatch {
		cfg.Watch = false
	}
	if !cfg.RootExists() {
		return fmt.Errorf("catalog root %s is not a directory", cfg.Root)
	}

	logger, err := logging.New(cfg.LogFile, debug)
	if err != nil {
		return fmt.Errorf("opening log: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	if cfg.FirstRun {
		// Leave a config behind for the user to edit
		if err := cfg.Save(cfgFile); err != nil {
			logger.Warn("could not write default config", zap.Error(err))
		}
	}

	nav, err := navigator.New(cfg.Root, cfg.RootLabel, logger.Named("navigator"))
	if err != nil {
		return err
	}
	l := launcher.New(launcher.OptionsFromConfig(cfg), nil, logger.Named("launcher"))

	var w *watcher.Watcher
	if cfg.Watch {
		w, err = watcher.New(watcher.DefaultDebounce, logger.Named("watcher"))
		if err != nil {
			logger.Warn("directory watch disabled", zap.Error(err))
		} else {
			defer w.Close()
		}
	}

	logger.Info("starting",
		zap.String("version", version),
		zap.String("root", cfg.Root),
		zap.Bool("watch", w != nil),
	)

	m := NewModel(nav, l, w, git.NewRepo(cfg.Root), logger)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
