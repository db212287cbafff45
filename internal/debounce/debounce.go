// Package debounce holds back rapidly changing input until it settles.
//
// The Debouncer does not own a clock. Push starts (or restarts) a timer
// generation and returns its Ticket; the event loop schedules Fire(ticket)
// after Quiet(). Only the most recent ticket can fire, and only once.
package debounce

import (
	"strings"
	"time"
	"unicode/utf8"
)

// Ticket identifies one timer generation.
type Ticket uint64

type Debouncer struct {
	quiet  time.Duration
	minLen int

	latest Ticket
	value  string
	spent  bool
}

func New(quiet time.Duration, minLen int) *Debouncer {
	if minLen < 1 {
		minLen = 1
	}
	return &Debouncer{quiet: quiet, minLen: minLen, spent: true}
}

// Quiet is how long input must stay unchanged before it may be committed.
func (d *Debouncer) Quiet() time.Duration { return d.quiet }

// MinLength is the shortest trimmed value, in runes, that may be committed.
func (d *Debouncer) MinLength() int { return d.minLen }

// Push records a new raw value and restarts the quiet period.
func (d *Debouncer) Push(text string) Ticket {
	d.latest++
	d.value = text
	d.spent = false
	return d.latest
}

// Fire commits the pending value if t is still the latest unspent ticket and
// the trimmed value is long enough. The committed value is trimmed.
func (d *Debouncer) Fire(t Ticket) (string, bool) {
	if t != d.latest || d.spent {
		return "", false
	}
	d.spent = true

	v := strings.TrimSpace(d.value)
	if utf8.RuneCountInString(v) < d.minLen {
		return "", false
	}
	return v, true
}

// Pending returns the ticket that would currently fire.
func (d *Debouncer) Pending() Ticket { return d.latest }

// Reset drops the pending value; outstanding tickets will not fire.
func (d *Debouncer) Reset() {
	d.latest++
	d.value = ""
	d.spent = true
}
