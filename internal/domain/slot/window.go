package slot

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var (
	ErrInvalidTimeOfDay = errors.New("invalid time of day")
	ErrInvalidDate      = errors.New("invalid date")
	ErrInvalidWindow    = errors.New("invalid slot window")
)

const dateLayout = "2006-01-02"

// TimeOfDay is minutes since local midnight, 00:00 through 24:00 inclusive.
type TimeOfDay struct {
	minutes int
}

func NewTimeOfDay(hour, minute int) (TimeOfDay, error) {
	if hour < 0 || hour > 24 || minute < 0 || minute > 59 || (hour == 24 && minute != 0) {
		return TimeOfDay{}, ErrInvalidTimeOfDay
	}
	return TimeOfDay{minutes: hour*60 + minute}, nil
}

// ParseTimeOfDay parses "HH:MM".
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	s = strings.TrimSpace(s)
	if len(s) != 5 || s[2] != ':' || !isDigits(s[:2]) || !isDigits(s[3:]) {
		return TimeOfDay{}, ErrInvalidTimeOfDay
	}
	hour, _ := strconv.Atoi(s[:2])
	minute, _ := strconv.Atoi(s[3:])
	return NewTimeOfDay(hour, minute)
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

func (t TimeOfDay) Hour() int   { return t.minutes / 60 }
func (t TimeOfDay) Minute() int { return t.minutes % 60 }

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

// On returns the instant of t on the given calendar date in loc.
// 24:00 normalises to midnight of the following day.
func (t TimeOfDay) On(date Date, loc *time.Location) time.Time {
	return time.Date(date.Year, date.Month, date.Day, t.Hour(), t.Minute(), 0, 0, loc)
}

// Date is a calendar day with no zone attached.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// ParseDate parses "YYYY-MM-DD".
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return DateOf(t), nil
}

// DateOf returns the calendar date of t in t's own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// Window describes the bookable hours of a day in a fixed reference zone.
type Window struct {
	Start    TimeOfDay
	End      TimeOfDay
	Step     time.Duration
	Location *time.Location
}

// NewWindow builds a Window from its textual configuration.
func NewWindow(timezone, start, end string, step time.Duration) (Window, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return Window{}, fmt.Errorf("%w: timezone %q", ErrInvalidWindow, timezone)
	}
	st, err := ParseTimeOfDay(start)
	if err != nil {
		return Window{}, fmt.Errorf("%w: start %q", ErrInvalidWindow, start)
	}
	en, err := ParseTimeOfDay(end)
	if err != nil {
		return Window{}, fmt.Errorf("%w: end %q", ErrInvalidWindow, end)
	}
	if step <= 0 {
		return Window{}, fmt.Errorf("%w: step must be positive", ErrInvalidWindow)
	}
	return Window{Start: st, End: en, Step: step, Location: loc}, nil
}

func (w Window) location() *time.Location {
	if w.Location == nil {
		return time.UTC
	}
	return w.Location
}

// Bounds returns the [start, end) instants of the window on date.
func (w Window) Bounds(date Date) (time.Time, time.Time) {
	loc := w.location()
	return w.Start.On(date, loc), w.End.On(date, loc)
}
