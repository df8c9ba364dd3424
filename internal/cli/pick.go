package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/MikeBiancalana/rangepick/internal/config"
	"github.com/MikeBiancalana/rangepick/internal/daterange"
	"github.com/MikeBiancalana/rangepick/internal/logger"
	"github.com/MikeBiancalana/rangepick/internal/tui"
	"github.com/MikeBiancalana/rangepick/internal/tui/components"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// ErrCancelled is returned when the user leaves pick without committing
var ErrCancelled = errors.New("selection cancelled")

type pickOptions struct {
	simple        bool
	value         string
	label         string
	placeholder   string
	description   string
	disableFuture bool
	monday        bool
	format        string
	json          bool
}

func newPickCmd(app *App) *cobra.Command {
	opts := &pickOptions{}

	cmd := &cobra.Command{
		Use:   "pick",
		Short: "Pick a date range and print it",
		Long: `Opens a single picker. The committed range is printed to stdout and the
picker itself is drawn on stderr, so the command can be used in scripts:

  range=$(rangepick pick --label "Report period")

Exits with an error when cancelled.`,
		Args:        cobra.NoArgs,
		Annotations: map[string]string{tuiAnnotation: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPick(cmd, app, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.simple, "simple", false, "Use the inline picker that commits on the second click")
	cmd.Flags().StringVar(&opts.value, "value", "", "Initial range (MM/DD/YYYY - MM/DD/YYYY)")
	cmd.Flags().StringVar(&opts.label, "label", "", "Label shown above the picker")
	cmd.Flags().StringVar(&opts.placeholder, "placeholder", "", "Placeholder text (defaults to the config file)")
	cmd.Flags().StringVar(&opts.description, "description", "", "Help text shown below the picker")
	cmd.Flags().BoolVar(&opts.disableFuture, "disable-future", false, "Disallow days after today (default depends on the picker)")
	cmd.Flags().BoolVar(&opts.monday, "monday", false, "Start weeks on Monday")
	cmd.Flags().StringVar(&opts.format, "format", "text", "Output format (text, json, tsv, csv)")
	cmd.Flags().BoolVar(&opts.json, "json", false, "Output as JSON (same as --format json)")

	return cmd
}

func runPick(cmd *cobra.Command, app *App, opts *pickOptions) error {
	format, err := resolveFormat(opts.format, opts.json)
	if err != nil {
		return err
	}

	if !app.IsInteractive() {
		return fmt.Errorf("pick requires an interactive terminal")
	}

	var initial daterange.DateRange
	if opts.value != "" {
		initial = daterange.ParseRange(opts.value)
		if initial.IsEmpty() {
			return fmt.Errorf("invalid --value %q: expected MM/DD/YYYY - MM/DD/YYYY", opts.value)
		}
	}

	cfg, cfgErr := config.Load()
	if cfgErr != nil {
		logger.Warn("using default picker config", "error", cfgErr)
	}

	pickerOpts := components.Options{
		Label:       opts.label,
		Placeholder: cfg.Placeholder,
		Description: opts.description,
		Policy:      cfg.Policy(nil),
		WeekStart:   cfg.Weekday(),
		YearSpan:    cfg.YearSpan,
		Now:         app.Now,
	}
	if p, ok := pickerOpts.Policy.(daterange.DisableFuture); ok && p.Now == nil {
		pickerOpts.Policy = daterange.DisableFuture{Now: app.Now}
	}
	if opts.placeholder != "" {
		pickerOpts.Placeholder = opts.placeholder
	}
	if cmd.Flags().Changed("disable-future") {
		if opts.disableFuture {
			pickerOpts.Policy = daterange.DisableFuture{Now: app.Now}
		} else {
			pickerOpts.Policy = daterange.AllowAll{}
		}
	}
	if opts.monday {
		pickerOpts.WeekStart = time.Monday
	}

	model := tui.NewPickModel(pickerOpts, opts.simple)
	if !initial.IsEmpty() {
		model.SetValue(initial)
	}

	final, err := app.RunProgram(model,
		tea.WithOutput(programOutput),
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
	)
	if err != nil {
		return fmt.Errorf("picker failed: %w", err)
	}

	picked, ok := final.(*tui.PickModel)
	if !ok {
		return fmt.Errorf("unexpected model type %T", final)
	}

	r, committed := picked.Result()
	if !committed {
		return ErrCancelled
	}
	return formatRange(cmd.OutOrStdout(), r, format)
}
