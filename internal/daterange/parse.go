package daterange

import (
	"strings"
	"time"
)

// Layout is the only accepted text form of a single date (MM/DD/YYYY)
const Layout = "01/02/2006"

// Separator joins the two ends of a formatted range
const Separator = " - "

// ParseDate parses a MM/DD/YYYY date in the local time zone.
// Impossible dates such as 02/30/2024 are rejected.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	parsed, err := time.ParseInLocation(Layout, s, time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return parsed, true
}

// FormatDate formats a date as MM/DD/YYYY
func FormatDate(t time.Time) string {
	return t.Format(Layout)
}

// FormatRange renders r as "", "MM/DD/YYYY" or "MM/DD/YYYY - MM/DD/YYYY"
func FormatRange(r DateRange) string {
	if r.From == nil {
		return ""
	}
	if r.To == nil {
		return FormatDate(*r.From)
	}
	return FormatDate(*r.From) + Separator + FormatDate(*r.To)
}

// ParseRange parses text typed into the range input. It never fails:
// empty or unparseable text yields an empty range, a single date yields an
// in-progress range, and two dates are ordered ascending. A component that
// does not parse is left unset.
//
// The input is split on every hyphen, so date layouts containing hyphens
// cannot be used here.
func ParseRange(text string) DateRange {
	if text == "" {
		return DateRange{}
	}

	parts := strings.Split(text, "-")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	switch len(parts) {
	case 1:
		from, ok := ParseDate(parts[0])
		if !ok {
			return DateRange{}
		}
		return DateRange{From: &from}
	case 2:
		from, fromOK := ParseDate(parts[0])
		to, toOK := ParseDate(parts[1])
		switch {
		case fromOK && toOK:
			return New(from, to)
		case fromOK:
			return DateRange{From: &from}
		case toOK:
			// A lone end date still starts a selection; To never exists without From.
			return DateRange{From: &to}
		default:
			return DateRange{}
		}
	default:
		return DateRange{}
	}
}
