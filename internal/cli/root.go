package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/MikeBiancalana/rangepick/internal/config"
	"github.com/MikeBiancalana/rangepick/internal/logger"
	"github.com/MikeBiancalana/rangepick/internal/sync"
	"github.com/MikeBiancalana/rangepick/internal/tui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// tuiAnnotation marks commands that hand the terminal to Bubble Tea
const tuiAnnotation = "tui"

// App holds the dependencies the commands need, so tests can swap them
type App struct {
	// IsInteractive reports whether stdin is a terminal
	IsInteractive func() bool
	// RunProgram runs a Bubble Tea model to completion
	RunProgram func(tea.Model, ...tea.ProgramOption) (tea.Model, error)
	// Now is the clock used for "today"
	Now func() time.Time
}

// NewApp returns an App wired to the real terminal
func NewApp(isInteractive func() bool) *App {
	return &App{
		IsInteractive: isInteractive,
		RunProgram: func(m tea.Model, opts ...tea.ProgramOption) (tea.Model, error) {
			return tea.NewProgram(m, opts...).Run()
		},
		Now: time.Now,
	}
}

// NewRootCmd builds the command tree
func NewRootCmd(app *App) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "rangepick",
		Short: "rangepick - terminal date range picker",
		Long: `A date range picker for the terminal. Type a range as MM/DD/YYYY - MM/DD/YYYY
or pick it on a calendar with the keyboard or mouse.

Run without arguments for the interactive demo.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Annotations:   map[string]string{tuiAnnotation: "true"},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Annotations[tuiAnnotation] == "" {
				return nil
			}
			return initTUILogging()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			logger.Close()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo(app)
		},
	}

	rootCmd.AddCommand(newPickCmd(app))
	rootCmd.AddCommand(newParseCmd())
	rootCmd.AddCommand(newGridCmd(app))
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

// initTUILogging moves logging into the log file while Bubble Tea owns the terminal
func initTUILogging() error {
	logDir, err := config.LogDir()
	if err != nil {
		return fmt.Errorf("failed to resolve log directory: %w", err)
	}

	return logger.InitializeWithConfig(logger.Config{
		Level:   logger.GetLevel().String(),
		Format:  logger.GetFormat(),
		File:    filepath.Join(logDir, config.AppName+".log"),
		TUIMode: true,
	})
}

func runDemo(app *App) error {
	if !app.IsInteractive() {
		return fmt.Errorf("the demo requires an interactive terminal; try 'rangepick parse' or 'rangepick grid'")
	}

	cfg, cfgErr := config.Load()
	if cfgErr != nil {
		logger.Warn("using default picker config", "error", cfgErr)
	}

	var watcher *sync.Watcher
	if path, err := config.ConfigPath(); err == nil {
		watcher, err = sync.NewWatcher(path)
		if err != nil {
			logger.Warn("config hot reload unavailable", "error", err)
			watcher = nil
		}
	}

	model := tui.NewModel(cfg, watcher)
	model.SetConfigError(cfgErr)

	logger.Info("starting demo")
	_, err := app.RunProgram(model, tea.WithAltScreen(), tea.WithMouseAllMotion())
	if watcher != nil {
		watcher.Stop()
	}
	return err
}

// Execute runs the root command against the real terminal
func Execute(isInteractive func() bool) error {
	return NewRootCmd(NewApp(isInteractive)).Execute()
}

// programOutput is where pick draws its UI, leaving stdout for the result
var programOutput io.Writer = os.Stderr
