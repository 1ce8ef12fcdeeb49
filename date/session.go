package date

import (
	"fmt"
	"time"
	_ "time/tzdata" // exchange time zones must resolve on hosts without zoneinfo
)

// Clock is a wall clock time of day, in minutes since midnight.
type Clock int

// At returns the Clock for hour:minute.
func At(hour, minute int) Clock { return Clock(hour*60 + minute) }

func (c Clock) String() string { return fmt.Sprintf("%02d:%02d", int(c)/60, int(c)%60) }

// ParseClock parses "15:04" formatted wall clock times.
func ParseClock(s string) (Clock, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("invalid time of day %q want format %q: %w", s, "15:04", err)
	}
	return At(t.Hour(), t.Minute()), nil
}

// Session is the continuous trading session of an exchange.
//
// The market is open on weekdays, from Open (included) to Close (excluded), in the exchange's
// own time zone.
type Session struct {
	Location *time.Location
	Open     Clock
	Close    Clock
}

// NewYorkSession returns the regular session of the New York exchanges.
func NewYorkSession() Session {
	return Session{
		Location: mustLoadLocation("America/New_York"),
		Open:     At(9, 30),
		Close:    At(16, 0),
	}
}

// NewSession returns a Session in the named IANA time zone.
func NewSession(timezone string, open, close Clock) (Session, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return Session{}, fmt.Errorf("invalid exchange time zone %q: %w", timezone, err)
	}
	if close <= open {
		return Session{}, fmt.Errorf("invalid session %v-%v: close must be after open", open, close)
	}
	return Session{Location: loc, Open: open, Close: close}, nil
}

func mustLoadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic(err)
	}
	return loc
}

// local converts t to the exchange time zone.
func (s Session) local(t time.Time) time.Time {
	if s.Location == nil {
		return t
	}
	return t.In(s.Location)
}

// IsOpen reports whether the market is open at t.
func (s Session) IsOpen(t time.Time) bool {
	lt := s.local(t)
	if lt.Weekday() == time.Saturday || lt.Weekday() == time.Sunday {
		return false
	}
	now := At(lt.Hour(), lt.Minute())
	return now >= s.Open && now < s.Close
}

// Today returns the exchange-local date at t.
func (s Session) Today(t time.Time) Date { return Of(s.local(t)) }
