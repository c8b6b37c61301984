package postgresadapter

import "time"

// SystemClock is the runtime clock used with the postgres backend.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}
