package entities

// CalendarDate is the field-wise date accepted at the API boundary.
// Conversion to an instant is done by a ports.Calendar.
type CalendarDate struct {
	Second int
	Minute int
	Hour   int
	Day    int
	Month  int
	Year   int
}
