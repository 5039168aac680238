// Package clock provides the time source used to decide what "today" and
// "tomorrow" mean. Planners take a Clock instead of calling time.Now so their
// output is a pure function of the inputs.
package clock

import "time"

// Clock returns the current time.
type Clock interface {
	Now() time.Time
}

// System reads the wall clock in the given location. A nil location uses
// time.Local.
type System struct {
	Location *time.Location
}

// Now returns the current wall-clock time.
func (c System) Now() time.Time {
	if c.Location == nil {
		return time.Now()
	}
	return time.Now().In(c.Location)
}

// Fixed always returns the same instant.
type Fixed time.Time

func (c Fixed) Now() time.Time { return time.Time(c) }

// Func adapts a function to Clock.
type Func func() time.Time

func (f Func) Now() time.Time { return f() }
