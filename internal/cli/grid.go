package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/MikeBiancalana/rangepick/internal/daterange"
	"github.com/spf13/cobra"
)

func newGridCmd(app *App) *cobra.Command {
	var (
		monday        bool
		disableFuture bool
		outside       bool
		format        string
		jsonFlag      bool
	)

	cmd := &cobra.Command{
		Use:   "grid [YEAR MONTH]",
		Short: "Print the 6x7 calendar grid for a month",
		Long: `Prints the 42-day grid the picker calendar draws for a month, starting on
the first day of the week. Defaults to the current month.`,
		Example: `  rangepick grid
  rangepick grid 2024 2 --monday
  rangepick grid 2024 3 --outside --json`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 0 && len(args) != 2 {
				return fmt.Errorf("expected no arguments or YEAR MONTH, got %d argument(s)", len(args))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := resolveFormat(format, jsonFlag)
			if err != nil {
				return err
			}

			now := app.Now()
			year, month := now.Year(), now.Month()
			if len(args) == 2 {
				year, month, err = parseYearMonth(args[0], args[1])
				if err != nil {
					return err
				}
			}

			weekStart := time.Sunday
			if monday {
				weekStart = time.Monday
			}

			var policy daterange.Policy = daterange.AllowAll{}
			if disableFuture {
				policy = daterange.DisableFuture{Now: app.Now}
			}

			return formatGrid(cmd.OutOrStdout(), gridView{
				Year:        year,
				Month:       month,
				WeekStart:   weekStart,
				Cells:       daterange.Month(year, month, weekStart, policy),
				ShowOutside: outside,
			}, f)
		},
	}

	cmd.Flags().BoolVar(&monday, "monday", false, "Start weeks on Monday")
	cmd.Flags().BoolVar(&disableFuture, "disable-future", false, "Mark days after today as disabled")
	cmd.Flags().BoolVar(&outside, "outside", false, "Show days of the neighbouring months")
	cmd.Flags().StringVar(&format, "format", "text", "Output format (text, json, tsv, csv)")
	cmd.Flags().BoolVar(&jsonFlag, "json", false, "Output as JSON (same as --format json)")

	return cmd
}

func parseYearMonth(yearArg, monthArg string) (int, time.Month, error) {
	year, err := strconv.Atoi(yearArg)
	if err != nil || year < 1 || year > 9999 {
		return 0, 0, fmt.Errorf("invalid year %q", yearArg)
	}
	month, err := strconv.Atoi(monthArg)
	if err != nil || month < 1 || month > 12 {
		return 0, 0, fmt.Errorf("invalid month %q: must be 1-12", monthArg)
	}
	return year, time.Month(month), nil
}
