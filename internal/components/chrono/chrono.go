package chrono

import (
	"time"

	"liquorstores/lib/timezone"
)

// Timer is a pending callback created by API.AfterFunc.
type Timer interface {
	// Stop prevents the callback from firing, it returns false if the
	// callback already fired or the timer was already stopped.
	Stop() bool
}

// API is the interface anything depending on the passage of time should use.
//
// note: fault injection point
type API interface {
	Now() time.Time
	Location() *time.Location
	// AfterFunc calls f on its own goroutine once d has elapsed.
	AfterFunc(d time.Duration, f func()) Timer
}

type StandardImpl struct {
	location *time.Location
}

func NewStandardImpl() StandardImpl {
	return StandardImpl{location: timezone.Location}
}

func (s StandardImpl) Now() time.Time {
	return time.Now().In(s.location)
}

func (s StandardImpl) Location() *time.Location {
	return s.location
}

func (s StandardImpl) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}
