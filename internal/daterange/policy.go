package daterange

import "time"

// Policy decides which calendar days cannot be picked
type Policy interface {
	Disabled(day time.Time) bool
}

// PolicyFunc adapts a plain function to a Policy
type PolicyFunc func(day time.Time) bool

// Disabled calls f(day)
func (f PolicyFunc) Disabled(day time.Time) bool {
	return f(day)
}

// AllowAll leaves every day selectable
type AllowAll struct{}

// Disabled always returns false
func (AllowAll) Disabled(time.Time) bool { return false }

// DisableAll blocks every day, used when the whole widget is disabled
type DisableAll struct{}

// Disabled always returns true
func (DisableAll) Disabled(time.Time) bool { return true }

// DisableFuture blocks days strictly after today. Now defaults to time.Now.
type DisableFuture struct {
	Now func() time.Time
}

// Disabled reports whether day is after today
func (p DisableFuture) Disabled(day time.Time) bool {
	now := time.Now
	if p.Now != nil {
		now = p.Now
	}
	today := Day(now())
	y, m, d := day.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, today.Location()).After(today)
}
