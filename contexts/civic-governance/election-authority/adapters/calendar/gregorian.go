package calendar

import (
	"time"

	"electoral/contexts/civic-governance/election-authority/domain/entities"
	domainerrors "electoral/contexts/civic-governance/election-authority/domain/errors"
)

// Gregorian converts calendar fields to UTC instants. Instants are counted
// from the Unix epoch, so years before 1970 are rejected.
type Gregorian struct{}

func (Gregorian) Instant(date entities.CalendarDate) (time.Time, error) {
	if date.Year < 1970 ||
		date.Month < 1 || date.Month > 12 ||
		date.Day < 1 || date.Day > DaysIn(date.Year, date.Month) ||
		date.Hour < 0 || date.Hour > 23 ||
		date.Minute < 0 || date.Minute > 59 ||
		date.Second < 0 || date.Second > 59 {
		return time.Time{}, domainerrors.ErrInvalidDate
	}
	return time.Date(date.Year, time.Month(date.Month), date.Day, date.Hour, date.Minute, date.Second, 0, time.UTC), nil
}

func DaysIn(year int, month int) int {
	switch month {
	case 2:
		if IsLeapYear(year) {
			return 29
		}
		return 28
	case 4, 6, 9, 11:
		return 30
	default:
		return 31
	}
}

func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}
