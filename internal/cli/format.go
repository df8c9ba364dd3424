package cli

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/MikeBiancalana/rangepick/internal/daterange"
	"github.com/charmbracelet/lipgloss"
)

type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
	FormatTSV  OutputFormat = "tsv"
	FormatCSV  OutputFormat = "csv"
)

// isoLayout is used for machine-readable output
const isoLayout = "2006-01-02"

func parseFormat(s string) (OutputFormat, error) {
	switch strings.ToLower(s) {
	case "", "text":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	case "tsv":
		return FormatTSV, nil
	case "csv":
		return FormatCSV, nil
	default:
		return "", fmt.Errorf("unsupported format: %s (supported: text, json, tsv, csv)", s)
	}
}

// resolveFormat lets --json win over --format
func resolveFormat(format string, jsonFlag bool) (OutputFormat, error) {
	if jsonFlag {
		return FormatJSON, nil
	}
	return parseFormat(format)
}

// rangeRecord is the machine-readable shape of a range
type rangeRecord struct {
	From string `json:"from,omitempty"`
	To   string `json:"to,omitempty"`
	Text string `json:"text"`
	Days int    `json:"days"`
}

func newRangeRecord(r daterange.DateRange) rangeRecord {
	rec := rangeRecord{
		Text: daterange.FormatRange(r),
		Days: r.Days(),
	}
	if r.From != nil {
		rec.From = r.From.Format(isoLayout)
	}
	if r.To != nil {
		rec.To = r.To.Format(isoLayout)
	}
	return rec
}

func formatRange(w io.Writer, r daterange.DateRange, format OutputFormat) error {
	rec := newRangeRecord(r)
	switch format {
	case FormatJSON:
		return json.NewEncoder(w).Encode(rec)
	case FormatTSV:
		tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', tabwriter.TabIndent)
		fmt.Fprintln(tw, "FROM\tTO\tDAYS")
		fmt.Fprintf(tw, "%s\t%s\t%d\n", dashIfEmpty(rec.From), dashIfEmpty(rec.To), rec.Days)
		return tw.Flush()
	case FormatCSV:
		cw := csv.NewWriter(w)
		cw.Write([]string{"FROM", "TO", "DAYS"})
		if err := cw.Write([]string{rec.From, rec.To, strconv.Itoa(rec.Days)}); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
		cw.Flush()
		return cw.Error()
	default:
		_, err := fmt.Fprintln(w, rec.Text)
		return err
	}
}

// gridCellWidth is the text width of one day column
const gridCellWidth = 4

// gridView is a month grid ready to print
type gridView struct {
	Year        int
	Month       time.Month
	WeekStart   time.Weekday
	Cells       []daterange.CalendarDay
	ShowOutside bool
}

// gridRecord is the machine-readable shape of one calendar cell
type gridRecord struct {
	Date         string `json:"date"`
	OutsideMonth bool   `json:"outside_month"`
	Disabled     bool   `json:"disabled"`
}

// formatGrid prints a month grid. Text output draws it like cal(1): hidden
// outside days are blank and disabled days carry a trailing '-'.
func formatGrid(w io.Writer, g gridView, format OutputFormat) error {
	records := make([]gridRecord, 0, len(g.Cells))
	for _, c := range g.Cells {
		records = append(records, gridRecord{
			Date:         c.Date.Format(isoLayout),
			OutsideMonth: c.OutsideMonth,
			Disabled:     c.Disabled,
		})
	}

	switch format {
	case FormatJSON:
		return json.NewEncoder(w).Encode(struct {
			Month string       `json:"month"`
			Days  []gridRecord `json:"days"`
		}{
			Month: daterange.MonthTitle(g.Year, g.Month),
			Days:  records,
		})
	case FormatTSV:
		tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', tabwriter.TabIndent)
		fmt.Fprintln(tw, "DATE\tOUTSIDE\tDISABLED")
		for _, r := range records {
			fmt.Fprintf(tw, "%s\t%t\t%t\n", r.Date, r.OutsideMonth, r.Disabled)
		}
		return tw.Flush()
	case FormatCSV:
		cw := csv.NewWriter(w)
		cw.Write([]string{"DATE", "OUTSIDE", "DISABLED"})
		for _, r := range records {
			if err := cw.Write([]string{r.Date, strconv.FormatBool(r.OutsideMonth), strconv.FormatBool(r.Disabled)}); err != nil {
				return fmt.Errorf("failed to write CSV record: %w", err)
			}
		}
		cw.Flush()
		return cw.Error()
	}

	width := gridCellWidth * daterange.DaysPerWeek
	var lines []string
	lines = append(lines, lipgloss.PlaceHorizontal(width, lipgloss.Center, daterange.MonthTitle(g.Year, g.Month)))

	var header strings.Builder
	for _, wd := range daterange.Weekdays(g.WeekStart) {
		fmt.Fprintf(&header, "%3s ", wd[:2])
	}
	lines = append(lines, header.String())

	for week := 0; week < daterange.GridWeeks; week++ {
		var row strings.Builder
		for _, c := range g.Cells[week*daterange.DaysPerWeek : (week+1)*daterange.DaysPerWeek] {
			if c.OutsideMonth && !g.ShowOutside {
				row.WriteString(strings.Repeat(" ", gridCellWidth))
				continue
			}
			marker := " "
			if c.Disabled {
				marker = "-"
			}
			fmt.Fprintf(&row, "%3d%s", c.Date.Day(), marker)
		}
		lines = append(lines, row.String())
	}

	for i := range lines {
		lines[i] = strings.TrimRight(lines[i], " ")
	}
	_, err := fmt.Fprintln(w, strings.Join(lines, "\n"))
	return err
}

func dashIfEmpty(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
