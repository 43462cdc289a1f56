// Package timeline maps calendar dates onto a 0–100 horizontal track for
// the proposal timeline widget.
//
// Months are treated as 30 days long. That is fine for placing dots on a
// track and wrong for anything that needs real calendar arithmetic.
package timeline

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var ErrInvalidDate = errors.New("timeline: invalid date")

// Date is a year-month with an optional day. Day 0 means "first of month".
type Date struct {
	Year  int
	Month int
	Day   int
}

// ParseDate accepts "YYYY-MM" and "YYYY-MM-DD".
func ParseDate(s string) (Date, error) {
	parts := strings.Split(strings.TrimSpace(s), "-")
	if len(parts) < 2 || len(parts) > 3 {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return Date{}, fmt.Errorf("%w: year in %q", ErrInvalidDate, s)
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil || month < 1 || month > 12 {
		return Date{}, fmt.Errorf("%w: month in %q", ErrInvalidDate, s)
	}
	d := Date{Year: year, Month: month}
	if len(parts) == 3 {
		day, err := strconv.Atoi(parts[2])
		if err != nil || day < 1 || day > 31 {
			return Date{}, fmt.Errorf("%w: day in %q", ErrInvalidDate, s)
		}
		d.Day = day
	}
	return d, nil
}

func MustParseDate(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

// FromTime truncates t to its calendar day.
func FromTime(t time.Time) Date {
	return Date{Year: t.Year(), Month: int(t.Month()), Day: t.Day()}
}

func (d Date) String() string {
	if d.Day == 0 {
		return fmt.Sprintf("%04d-%02d", d.Year, d.Month)
	}
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// months is the fractional month index: year*12 + (month-1) + (day-1)/30.
func (d Date) months() float64 {
	day := d.Day
	if day == 0 {
		day = 1
	}
	return float64(d.Year*12+(d.Month-1)) + float64(day-1)/30
}

// Range is the visible span of the track.
type Range struct {
	Start Date
	End   Date
}

// ParseRange parses both ends of a range.
func ParseRange(start, end string) (Range, error) {
	s, err := ParseDate(start)
	if err != nil {
		return Range{}, err
	}
	e, err := ParseDate(end)
	if err != nil {
		return Range{}, err
	}
	return Range{Start: s, End: e}, nil
}

// Position returns where d sits on the track, clamped to [0, 100]. A range
// whose ends coincide places every date at 0.
func (r Range) Position(d Date) float64 {
	start := r.Start.months()
	span := r.End.months() - start
	if span == 0 {
		return 0
	}
	p := (d.months() - start) / span * 100
	switch {
	case p < 0:
		return 0
	case p > 100:
		return 100
	}
	return p
}

// NowPosition places now on the track. It is evaluated per call and never
// cached.
func (r Range) NowPosition(now time.Time) float64 {
	return r.Position(FromTime(now))
}

var monthNames = [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// Tick is a month label on the track.
type Tick struct {
	Label    string  `json:"label"`
	Date     string  `json:"date"`
	Position float64 `json:"position"`
}

// MonthTicks lists the first day of every month from Start to End
// inclusive. A reversed range yields no ticks.
func (r Range) MonthTicks() []Tick {
	var ticks []Tick
	y, m := r.Start.Year, r.Start.Month
	for y < r.End.Year || (y == r.End.Year && m <= r.End.Month) {
		d := Date{Year: y, Month: m}
		ticks = append(ticks, Tick{
			Label:    monthNames[m-1],
			Date:     d.String(),
			Position: r.Position(d),
		})
		m++
		if m > 12 {
			m = 1
			y++
		}
	}
	return ticks
}
