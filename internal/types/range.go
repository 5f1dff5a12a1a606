package types

import (
	"errors"
	"fmt"
	"time"
)

// Period is a logical period selector for filtering and comparisons.
type Period string

const (
	PeriodDaily   Period = "daily"
	PeriodWeekly  Period = "weekly"
	PeriodMonthly Period = "monthly"
)

var ErrPeriodInvalid = errors.New("the period must be one of daily, weekly, monthly")

// Valid reports whether p is a known period.
func (p Period) Valid() bool {
	return p == PeriodDaily || p == PeriodWeekly || p == PeriodMonthly
}

// ApproxDays returns the nominal day count of the period.
//
// The monthly value is a fixed 30, not the true calendar length. The
// daily spending target and goal projections depend on this exact
// approximation, so do not replace it with calendar math.
func (p Period) ApproxDays() int {
	switch p {
	case PeriodWeekly:
		return 7
	case PeriodMonthly:
		return 30
	default:
		return 1
	}
}

// Range is an inclusive [Start, End] time range.
type Range struct {
	Start time.Time `json:"start" example:"2022-04-01T00:00:00Z"`
	End   time.Time `json:"end" example:"2022-04-30T23:59:59Z"`
}

// NewRange returns the explicit range [start, end].
func NewRange(start, end time.Time) Range {
	return Range{Start: start, End: end}
}

// Contains reports whether t falls within the range, bounds included.
func (r Range) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

// Days returns the day count of an explicit range: both the start and
// the end day are counted. A 23:59:59 end still counts as the same day,
// so [Mar 1, Mar 31 23:59:59] is 31 days.
func (r Range) Days() int {
	diff := r.End.Sub(r.Start)
	if diff < 0 {
		return 1
	}

	return int(diff.Hours()/24) + 1
}

// Resolve converts a period selector into a concrete range anchored at
// the given instant.
//
// Weekly ranges start on the Sunday of the anchor's week and run seven
// days. Monthly ranges use true calendar month boundaries.
func Resolve(p Period, anchor time.Time) Range {
	switch p {
	case PeriodWeekly:
		sunday := anchor.AddDate(0, 0, -int(anchor.Weekday()))
		start := startOfDay(sunday)
		return Range{Start: start, End: endOfDay(start.AddDate(0, 0, 6))}
	case PeriodMonthly:
		return MonthOf(anchor).Range()
	default:
		return Range{Start: startOfDay(anchor), End: endOfDay(anchor)}
	}
}

// Bucket is one slot of a comparison chart. It carries its own range so
// that selecting a bucket can promote it to an explicit filter range.
type Bucket struct {
	Label string `json:"label" example:"Feb"`
	Range
}

// Buckets generates the comparison chart slots for a period, oldest
// first: the last 7 days, the last 4 weeks, or the last 3 months.
func Buckets(p Period, anchor time.Time) []Bucket {
	var buckets []Bucket

	switch p {
	case PeriodWeekly:
		for i := 3; i >= 0; i-- {
			r := Resolve(PeriodWeekly, anchor.AddDate(0, 0, -7*i))
			buckets = append(buckets, Bucket{Label: fmt.Sprintf("Week -%d", i), Range: r})
		}
	case PeriodMonthly:
		for i := 2; i >= 0; i-- {
			month := MonthOf(anchor).AddDate(0, -i)
			buckets = append(buckets, Bucket{Label: time.Time(month).Format("Jan"), Range: month.Range()})
		}
	default:
		for i := 6; i >= 0; i-- {
			day := anchor.AddDate(0, 0, -i)
			buckets = append(buckets, Bucket{Label: day.Format("Mon"), Range: Resolve(PeriodDaily, day)})
		}
	}

	return buckets
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, t.Location())
}
