package cli

import (
	"fmt"
	"strings"

	"github.com/MikeBiancalana/rangepick/internal/daterange"
	"github.com/MikeBiancalana/rangepick/internal/logger"
	"github.com/spf13/cobra"
)

func newParseCmd() *cobra.Command {
	var (
		format   string
		jsonFlag bool
	)

	cmd := &cobra.Command{
		Use:   "parse TEXT...",
		Short: "Parse range text the way the picker input does",
		Long: `Parses "MM/DD/YYYY - MM/DD/YYYY" (or a single date) and prints the result.

The text is split on every '-', so dates written with hyphens are not
understood. A range whose end comes first is swapped.`,
		Example: `  rangepick parse "03/01/2024 - 03/05/2024"
  rangepick parse 03/01/2024 --json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := resolveFormat(format, jsonFlag)
			if err != nil {
				return err
			}

			text := strings.Join(args, " ")
			r := daterange.ParseRange(text)
			logger.Debug("parsed range", "text", text, "range", daterange.FormatRange(r))

			if r.IsEmpty() {
				return fmt.Errorf("no valid date in %q (expected %s)", text, "MM/DD/YYYY - MM/DD/YYYY")
			}
			return formatRange(cmd.OutOrStdout(), r, f)
		},
	}

	cmd.Flags().StringVar(&format, "format", "text", "Output format (text, json, tsv, csv)")
	cmd.Flags().BoolVar(&jsonFlag, "json", false, "Output as JSON (same as --format json)")

	return cmd
}
