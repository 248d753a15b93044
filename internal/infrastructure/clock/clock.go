// Package clock provides the calendar dates postings are stamped with.
package clock

import (
	"sync"
	"time"

	"github.com/iho/bankstatement/internal/domain"
)

// System reads today's date from the wall clock in a fixed location.
type System struct {
	loc *time.Location
	now func() time.Time
}

// NewSystem returns a System clock for loc. A nil loc means UTC.
func NewSystem(loc *time.Location) *System {
	if loc == nil {
		loc = time.UTC
	}
	return &System{loc: loc, now: time.Now}
}

// Today returns the current date in the clock's location.
func (c *System) Today() time.Time {
	return domain.DateOf(c.now().In(c.loc))
}

// Fixed always returns the same date.
type Fixed struct {
	date time.Time
}

// NewFixed returns a clock pinned to the date of t.
func NewFixed(t time.Time) *Fixed {
	return &Fixed{date: domain.DateOf(t)}
}

// Today returns the pinned date.
func (c *Fixed) Today() time.Time {
	return c.date
}

// Manual is a clock whose date is moved by hand.
type Manual struct {
	mu   sync.RWMutex
	date time.Time
}

// NewManual returns a Manual clock starting at the date of t.
func NewManual(t time.Time) *Manual {
	return &Manual{date: domain.DateOf(t)}
}

// Set moves the clock to the date of t.
func (c *Manual) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.date = domain.DateOf(t)
}

// Today returns the current manual date.
func (c *Manual) Today() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.date
}
