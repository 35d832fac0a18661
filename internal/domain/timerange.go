package domain

import (
	"errors"
	"time"
)

// ErrInvalidTimeRange is returned when a range does not satisfy start < end.
var ErrInvalidTimeRange = errors.New("time range start must be before end")

// TimeRange is a half-open interval [Start, End).
type TimeRange struct {
	Start time.Time `json:"start" validate:"required"`
	End   time.Time `json:"end" validate:"required"`
}

// Validate checks the start < end invariant.
func (t TimeRange) Validate() error {
	if !t.Start.Before(t.End) {
		return ErrInvalidTimeRange
	}
	return nil
}

// Overlaps reports whether two half-open intervals intersect.
// Touching endpoints (a.End == b.Start) do not count as overlap.
func (t TimeRange) Overlaps(other TimeRange) bool {
	return t.Start.Before(other.End) && other.Start.Before(t.End)
}

// Equal reports whether both endpoints match exactly.
func (t TimeRange) Equal(other TimeRange) bool {
	return t.Start.Equal(other.Start) && t.End.Equal(other.End)
}

// ParseTimeRange builds a range from RFC3339 timestamps. The start < end
// invariant is checked later by Validate, not here.
func ParseTimeRange(start, end string) (TimeRange, error) {
	s, err := time.Parse(time.RFC3339, start)
	if err != nil {
		return TimeRange{}, err
	}
	e, err := time.Parse(time.RFC3339, end)
	if err != nil {
		return TimeRange{}, err
	}
	return TimeRange{Start: s, End: e}, nil
}
