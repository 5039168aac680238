package partition

import (
	"time"

	"github.com/kilianp07/studiodesk/core/model"
)

// Bucket is the display group an order falls into.
type Bucket int

const (
	BucketToday Bucket = iota
	BucketThisWeek
	BucketRemaining
)

func (b Bucket) String() string {
	switch b {
	case BucketToday:
		return "today"
	case BucketThisWeek:
		return "this_week"
	default:
		return "remaining"
	}
}

// window holds the calendar boundaries of one evaluation instant.
type window struct {
	loc       *time.Location
	today     time.Time
	weekStart time.Time
	weekEnd   time.Time
}

func newWindow(now time.Time, weekStart time.Weekday) window {
	today := model.StartOfDay(now)
	offset := (int(today.Weekday()) - int(weekStart) + 7) % 7
	start := today.AddDate(0, 0, -offset)
	return window{
		loc:       now.Location(),
		today:     today,
		weekStart: start,
		weekEnd:   start.AddDate(0, 0, 7),
	}
}

// classify places day in today, the rest of the current week (tomorrow
// through the week's last day) or remaining. Days already past are
// remaining even when they fall in the current week.
func (w window) classify(day time.Time) Bucket {
	switch {
	case day.Equal(w.today):
		return BucketToday
	case day.After(w.today) && day.Before(w.weekEnd):
		return BucketThisWeek
	default:
		return BucketRemaining
	}
}
