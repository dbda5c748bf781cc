// Package calendar provides workday arithmetic and lenient date parsing
// for the scheduling engine. All days are handled at date precision in the
// workshop's local timezone.
package calendar

import (
	"os"
	"time"
)

// DayLayout is the canonical storage format for calendar days.
const DayLayout = "2006-01-02"

// WorkdayStartHour is the fixed hour-of-day at which every workday begins.
const WorkdayStartHour = 8

// HoursPerDay is the standard workday unit in hours.
const HoursPerDay = 8.0

var localZone = loadZone()

func loadZone() *time.Location {
	name := os.Getenv("LANTEGI_TZ")
	if name == "" {
		name = "Europe/Madrid"
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.Local
	}
	return loc
}

// Today returns the current date in the workshop's local timezone,
// truncated to midnight.
func Today() time.Time {
	now := time.Now().In(localZone)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// IsWeekend reports whether d falls on Saturday or Sunday.
func IsWeekend(d time.Time) bool {
	wd := d.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// NextWorkday returns the first day strictly after d that is not a weekend.
// No holiday calendar is modeled beyond per-worker vacations.
func NextWorkday(d time.Time) time.Time {
	d = d.AddDate(0, 0, 1)
	for IsWeekend(d) {
		d = d.AddDate(0, 0, 1)
	}
	return d
}

// SkipWeekend returns d itself if it is a workday, otherwise the next
// workday after it.
func SkipWeekend(d time.Time) time.Time {
	for IsWeekend(d) {
		d = d.AddDate(0, 0, 1)
	}
	return d
}

// Day formats a date using the canonical day layout.
func Day(d time.Time) string {
	return d.Format(DayLayout)
}

// Timestamps returns the absolute start and end timestamps for a block of
// work on the given day, starting startHour hours after the workday start.
func Timestamps(day time.Time, startHour, hours float64) (time.Time, time.Time) {
	base := time.Date(day.Year(), day.Month(), day.Day(), WorkdayStartHour, 0, 0, 0, localZone)
	start := base.Add(time.Duration(startHour * float64(time.Hour)))
	end := start.Add(time.Duration(hours * float64(time.Hour)))
	return start, end
}
