package devotion

import (
	"fmt"
	"time"
)

// Clock resolves the canonical "today" in a single configured zone. It is
// resolved once per request and carried as a date string from there on, so
// a computation never straddles a midnight rollover.
type Clock struct {
	loc *time.Location
	now func() time.Time
}

func NewClock(timezone string) (*Clock, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid TIME_ZONE %q: %w", timezone, err)
	}
	return &Clock{loc: loc, now: time.Now}, nil
}

// NewClockAt returns a clock frozen at the given instant, for tests.
func NewClockAt(timezone string, at time.Time) (*Clock, error) {
	c, err := NewClock(timezone)
	if err != nil {
		return nil, err
	}
	c.now = func() time.Time { return at }
	return c, nil
}

func (c *Clock) Now() time.Time {
	return c.now().In(c.loc)
}

// Today returns the current calendar date in the clock's zone.
func (c *Clock) Today() string {
	return c.Now().Format(DateLayout)
}

func (c *Clock) Year() int {
	return c.Now().Year()
}
