// Package core provides the domain model for training records along with the
// fiscal calendar utilities used to bucket them for reporting.
//
// The fiscal year starts in July and is labeled by the calendar year in which
// it begins: June 30 2024 belongs to "FY 2023", July 1 2024 to "FY 2024".
package core

import (
	"strconv"
	"strings"
	"time"
)

// FiscalMonthOrder lays fiscal-year tables and charts out left to right,
// July through June.
var FiscalMonthOrder = [12]string{
	"July", "August", "September", "October", "November", "December",
	"January", "February", "March", "April", "May", "June",
}

// FiscalYear returns the "FY {year}" label for a date, or "" for a zero date.
// Callers must treat "" as "no fiscal year", never as an error.
func FiscalYear(d Date) string {
	if d.IsZero() {
		return ""
	}
	year := d.Year()
	if d.Time.Month() < time.July {
		year--
	}
	return "FY " + strconv.Itoa(year)
}

// MonthName returns the English month name of a date, or "" for a zero date.
func MonthName(d Date) string {
	if d.IsZero() {
		return ""
	}
	return d.Time.Month().String()
}

// WeekLabel buckets a date into "Week N" by position within the month,
// N = ceil(day/7). This yields five buckets per month (Week 1..5) and is
// deliberately not an ISO week number.
func WeekLabel(d Date) string {
	if d.IsZero() {
		return ""
	}
	n := (d.Day() + 6) / 7
	return "Week " + strconv.Itoa(n)
}

// ParseHours parses a training-hours value leniently. Both "1.5" and "1,5"
// are accepted; anything unparseable counts as zero hours rather than failing
// the row it came from.
func ParseHours(s string) float64 {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}
