package value

import "time"

// DateOptions controls how a Date renders.
type DateOptions struct {
	DateStyle string // "full", "long", "medium", "short", or "" for none
	TimeStyle string // "full", "long", "medium", "short", or "" for none
}

// Date is a locale-aware calendar date/time value.
type Date struct {
	Time    time.Time
	Options DateOptions
}

func (Date) value() {}

// NewDate wraps a native time.Time as a locale-aware Date.
func NewDate(t time.Time, opts DateOptions) Date {
	return Date{Time: t, Options: opts}
}
