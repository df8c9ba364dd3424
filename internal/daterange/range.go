package daterange

import (
	"time"
)

// DateRange is a pair of optional dates. When To is set, From is set too and
// From is not after To. A range with only From set is an in-progress selection.
type DateRange struct {
	From *time.Time
	To   *time.Time
}

// Day truncates t to midnight in its own location
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// New builds a complete range, swapping the ends if they are out of order
func New(from, to time.Time) DateRange {
	from, to = Day(from), Day(to)
	if to.Before(from) {
		from, to = to, from
	}
	return DateRange{From: &from, To: &to}
}

// Starting builds an in-progress range with only From set
func Starting(from time.Time) DateRange {
	from = Day(from)
	return DateRange{From: &from}
}

// IsEmpty reports whether no date has been picked yet
func (r DateRange) IsEmpty() bool {
	return r.From == nil
}

// IsComplete reports whether both ends are set
func (r DateRange) IsComplete() bool {
	return r.From != nil && r.To != nil
}

// IsStart reports whether d is the From day
func (r DateRange) IsStart(d time.Time) bool {
	return r.From != nil && sameDay(*r.From, d)
}

// IsEnd reports whether d is the To day
func (r DateRange) IsEnd(d time.Time) bool {
	return r.To != nil && sameDay(*r.To, d)
}

// Contains reports whether d falls inside a complete range, ends included
func (r DateRange) Contains(d time.Time) bool {
	if !r.IsComplete() {
		return false
	}
	d = Day(d)
	return !d.Before(Day(*r.From)) && !d.After(Day(*r.To))
}

// Days returns the number of days covered by a complete range, ends included.
// Incomplete ranges cover zero days.
func (r DateRange) Days() int {
	if !r.IsComplete() {
		return 0
	}
	from, to := Day(*r.From), Day(*r.To)
	// Calendar arithmetic avoids DST-length days.
	from = time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	to = time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(to.Sub(from).Hours()/24) + 1
}

// Equal compares two ranges day by day
func (r DateRange) Equal(other DateRange) bool {
	return optionalEqual(r.From, other.From) && optionalEqual(r.To, other.To)
}

// Select applies a click on day to the current range:
//   - nothing picked: day becomes From
//   - only From picked: day becomes To, or From if it precedes the old From
//   - both picked: the selection restarts at day
func Select(current DateRange, day time.Time) DateRange {
	day = Day(day)

	switch {
	case current.From == nil:
		return DateRange{From: &day}
	case current.To == nil:
		from := Day(*current.From)
		if day.Before(from) {
			return DateRange{From: &day, To: &from}
		}
		return DateRange{From: &from, To: &day}
	default:
		return DateRange{From: &day}
	}
}

// HoverPreview returns the inclusive interval between From and the hovered
// day while the second end has not been picked yet.
func HoverPreview(current DateRange, hover time.Time) (start, end time.Time, ok bool) {
	if current.From == nil || current.To != nil {
		return time.Time{}, time.Time{}, false
	}

	from, hover := Day(*current.From), Day(hover)
	if hover.Before(from) {
		return hover, from, true
	}
	return from, hover, true
}

// InHoverPreview reports whether d lies in the hover preview of current
func InHoverPreview(current DateRange, hover, d time.Time) bool {
	start, end, ok := HoverPreview(current, hover)
	if !ok {
		return false
	}
	d = Day(d)
	return !d.Before(start) && !d.After(end)
}

// Selector applies clicks through a Policy; clicks on disabled days are ignored
type Selector struct {
	Policy Policy
}

// Select returns current unchanged when day is disabled, otherwise Select(current, day)
func (s Selector) Select(current DateRange, day time.Time) DateRange {
	if s.Policy != nil && s.Policy.Disabled(day) {
		return current
	}
	return Select(current, day)
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func optionalEqual(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return sameDay(*a, *b)
}
