package domain_test

import (
	"testing"
	"time"

	"yaake-backend/internal/domain"

	"github.com/stretchr/testify/assert"
)

func tr(t *testing.T, start, end string) domain.TimeRange {
	t.Helper()
	s, err := time.Parse(time.RFC3339, start)
	assert.NoError(t, err)
	e, err := time.Parse(time.RFC3339, end)
	assert.NoError(t, err)
	return domain.TimeRange{Start: s, End: e}
}

func TestTimeRangeOverlaps(t *testing.T) {
	cases := []struct {
		name string
		a, b domain.TimeRange
		want bool
	}{
		{"disjoint", tr(t, "2025-01-10T09:00:00Z", "2025-01-10T09:30:00Z"), tr(t, "2025-01-10T10:00:00Z", "2025-01-10T10:30:00Z"), false},
		{"partial overlap", tr(t, "2025-01-10T09:00:00Z", "2025-01-10T09:30:00Z"), tr(t, "2025-01-10T09:15:00Z", "2025-01-10T09:45:00Z"), true},
		{"contained", tr(t, "2025-01-10T09:00:00Z", "2025-01-10T10:00:00Z"), tr(t, "2025-01-10T09:15:00Z", "2025-01-10T09:30:00Z"), true},
		{"identical", tr(t, "2025-01-10T09:00:00Z", "2025-01-10T09:30:00Z"), tr(t, "2025-01-10T09:00:00Z", "2025-01-10T09:30:00Z"), true},
		{"touching endpoints do not overlap", tr(t, "2025-01-10T09:00:00Z", "2025-01-10T09:30:00Z"), tr(t, "2025-01-10T09:30:00Z", "2025-01-10T10:00:00Z"), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.a.Overlaps(tc.b))
			// Overlap is symmetric
			assert.Equal(t, tc.want, tc.b.Overlaps(tc.a))
		})
	}
}

func TestTimeRangeValidate(t *testing.T) {
	assert.NoError(t, tr(t, "2025-01-10T09:00:00Z", "2025-01-10T09:30:00Z").Validate())
	assert.Error(t, tr(t, "2025-01-10T09:30:00Z", "2025-01-10T09:00:00Z").Validate())

	// Zero-length ranges are invalid under half-open semantics
	same := tr(t, "2025-01-10T09:00:00Z", "2025-01-10T09:30:00Z")
	same.End = same.Start
	assert.Error(t, same.Validate())
}

func TestTimeRangeEqual(t *testing.T) {
	a := tr(t, "2025-01-10T09:00:00Z", "2025-01-10T09:30:00Z")
	b := tr(t, "2025-01-10T09:00:00Z", "2025-01-10T09:30:00Z")
	c := tr(t, "2025-01-10T09:00:00Z", "2025-01-10T09:31:00Z")
	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))

	// Equal must tolerate differing time zone representations of one instant
	loc := time.FixedZone("UTC+2", 2*3600)
	d := domain.TimeRange{Start: a.Start.In(loc), End: a.End.In(loc)}
	assert.True(t, a.Equal(d))
}
