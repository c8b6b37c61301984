package calendar

import (
	"errors"
	"testing"
	"time"

	"electoral/contexts/civic-governance/election-authority/domain/entities"
	domainerrors "electoral/contexts/civic-governance/election-authority/domain/errors"
)

func TestInstantConvertsToUTC(t *testing.T) {
	got, err := Gregorian{}.Instant(entities.CalendarDate{Year: 1970, Month: 1, Day: 1, Hour: 0, Minute: 0, Second: 10})
	if err != nil {
		t.Fatalf("instant failed: %v", err)
	}
	if got.Unix() != 10 {
		t.Fatalf("expected unix 10, got %d", got.Unix())
	}

	got, err = Gregorian{}.Instant(entities.CalendarDate{Year: 2024, Month: 2, Day: 29, Hour: 23, Minute: 59, Second: 59})
	if err != nil {
		t.Fatalf("leap day failed: %v", err)
	}
	want := time.Date(2024, time.February, 29, 23, 59, 59, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("expected %s, got %s", want, got)
	}
}

func TestInstantRejectsOutOfRangeFields(t *testing.T) {
	valid := entities.CalendarDate{Year: 2030, Month: 6, Day: 15, Hour: 12, Minute: 30, Second: 0}
	cases := map[string]func(d *entities.CalendarDate){
		"before epoch":    func(d *entities.CalendarDate) { d.Year = 1969 },
		"month zero":      func(d *entities.CalendarDate) { d.Month = 0 },
		"month thirteen":  func(d *entities.CalendarDate) { d.Month = 13 },
		"day zero":        func(d *entities.CalendarDate) { d.Day = 0 },
		"june 31":         func(d *entities.CalendarDate) { d.Day = 31 },
		"hour 24":         func(d *entities.CalendarDate) { d.Hour = 24 },
		"minute 60":       func(d *entities.CalendarDate) { d.Minute = 60 },
		"second 60":       func(d *entities.CalendarDate) { d.Second = 60 },
		"negative second": func(d *entities.CalendarDate) { d.Second = -1 },
		"feb 29 non-leap": func(d *entities.CalendarDate) { d.Year, d.Month, d.Day = 2100, 2, 29 },
	}
	for name, mutate := range cases {
		date := valid
		mutate(&date)
		if _, err := (Gregorian{}).Instant(date); !errors.Is(err, domainerrors.ErrInvalidDate) {
			t.Fatalf("%s: expected invalid date, got %v", name, err)
		}
	}
}

func TestLeapYears(t *testing.T) {
	for year, want := range map[int]bool{1970: false, 2000: true, 2024: true, 2100: false, 2400: true} {
		if got := IsLeapYear(year); got != want {
			t.Fatalf("leap year %d: expected %v, got %v", year, want, got)
		}
	}
	if DaysIn(2023, 2) != 28 || DaysIn(2024, 2) != 29 || DaysIn(2024, 4) != 30 || DaysIn(2024, 12) != 31 {
		t.Fatalf("unexpected month lengths")
	}
}
