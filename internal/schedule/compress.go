// Package schedule compresses per-day opening hours into day-range strings.
package schedule

import (
	"errors"
	"fmt"
	"strings"

	"storescrape/internal/models"
)

// timeWidth is the length of an "HH:MM" clock value.
const timeWidth = 5

// Schedule errors.
var (
	ErrUnknownDay     = errors.New("unknown weekday label")
	ErrMalformedRange = errors.New("malformed day range")
)

// weekdays is the canonical order. It is only ever read.
var weekdays = [...]string{"пн", "вт", "ср", "чт", "пт", "сб", "вс"}

// Weekdays returns a copy of the canonical weekday labels.
func Weekdays() [7]string {
	return weekdays
}

func dayIndex(label string) int {
	for i, d := range weekdays {
		if d == label {
			return i
		}
	}

	return -1
}

// Range is a run of days sharing one opening interval.
type Range struct {
	Begin string
	End   string
	Time  string
}

// String renders the range as "begin-end open-close".
func (r Range) String() string {
	return r.Begin + "-" + r.End + " " + r.Time
}

// Label pairs (open, close) values with weekday labels by position, starting
// from the first canonical weekday. Pairs beyond the seventh are dropped.
func Label(pairs [][2]string) []models.DayInterval {
	n := min(len(pairs), len(weekdays))
	out := make([]models.DayInterval, 0, n)

	for i := 0; i < n; i++ {
		out = append(out, models.DayInterval{
			Day:   weekdays[i],
			Open:  pairs[i][0],
			Close: pairs[i][1],
		})
	}

	return out
}

// clip truncates a clock value to HH:MM.
func clip(s string) string {
	if len(s) <= timeWidth {
		return s
	}

	return s[:timeWidth]
}

// timeString formats the interval as "HH:MM-HH:MM".
func timeString(iv models.DayInterval) string {
	return clip(iv.Open) + "-" + clip(iv.Close)
}

// Group discovers runs of days with identical hours. The first range begins
// at the first interval's day.
//
// Each distinct time string maps to the last day it was seen on, so two
// separate runs sharing the same hours collapse into one range ending at the
// later run. Ranges are emitted in the order the time strings first appear.
func Group(intervals []models.DayInterval) ([]Range, error) {
	if len(intervals) == 0 {
		return nil, nil
	}

	var order []string

	ends := make(map[string]string, len(intervals))

	for _, iv := range intervals {
		if dayIndex(iv.Day) < 0 {
			return nil, fmt.Errorf("%w: %q", ErrUnknownDay, iv.Day)
		}

		t := timeString(iv)
		if _, seen := ends[t]; !seen {
			order = append(order, t)
		}

		ends[t] = iv.Day
	}

	begin := intervals[0].Day
	ranges := make([]Range, 0, len(order))

	for _, t := range order {
		end := ends[t]
		ranges = append(ranges, Range{Begin: begin, End: end, Time: t})

		if next := dayIndex(end) + 1; next < len(weekdays) {
			begin = weekdays[next]
		}
	}

	return ranges, nil
}

// Compress renders the grouped schedule, or the closed sentinel when there are no intervals.
func Compress(intervals []models.DayInterval) ([]string, error) {
	if len(intervals) == 0 {
		return models.ClosedHours(), nil
	}

	ranges, err := Group(intervals)
	if err != nil {
		return nil, err
	}

	out := make([]string, len(ranges))
	for i, r := range ranges {
		out[i] = r.String()
	}

	return out, nil
}

// Expand turns compressed ranges back into a day -> "open-close" mapping.
// The closed sentinel expands to an empty mapping.
func Expand(ranges []string) (map[string]string, error) {
	out := make(map[string]string)

	if len(ranges) == 1 && ranges[0] == models.HoursClosed {
		return out, nil
	}

	for _, r := range ranges {
		days, t, ok := strings.Cut(r, " ")
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrMalformedRange, r)
		}

		begin, end, ok := strings.Cut(days, "-")
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrMalformedRange, r)
		}

		from, to := dayIndex(begin), dayIndex(end)
		if from < 0 || to < 0 || from > to {
			return nil, fmt.Errorf("%w: %q", ErrMalformedRange, r)
		}

		for i := from; i <= to; i++ {
			out[weekdays[i]] = t
		}
	}

	return out, nil
}
