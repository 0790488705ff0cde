package booking

import (
	"testing"
	"time"

	"github.com/HaruSatoru/shareit/internal/domain/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOverlaps(t *testing.T) {
	base := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	at := func(hours int) time.Time { return base.Add(time.Duration(hours) * time.Hour) }

	tests := []struct {
		name           string
		s1, e1, s2, e2 int
		want           bool
	}{
		{name: "partial overlap", s1: 11, e1: 13, s2: 10, e2: 12, want: true},
		{name: "contained window", s1: 10, e1: 14, s2: 11, e2: 12, want: true},
		{name: "identical windows", s1: 10, e1: 12, s2: 10, e2: 12, want: true},
		{name: "touching at end", s1: 12, e1: 14, s2: 10, e2: 12, want: false},
		{name: "touching at start", s1: 8, e1: 10, s2: 10, e2: 12, want: false},
		{name: "disjoint", s1: 15, e1: 16, s2: 10, e2: 12, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := overlaps(at(tt.s1), at(tt.e1), at(tt.s2), at(tt.e2))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFindOverlap(t *testing.T) {
	base := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	at := func(hours int) time.Time { return base.Add(time.Duration(hours) * time.Hour) }

	approved := []models.Booking{
		approvedAt(1, at(10), at(12)),
		approvedAt(2, at(20), at(22)),
	}

	t.Run("finds conflicting booking", func(t *testing.T) {
		conflicting, ok := findOverlap(at(11), at(13), approved)

		require.True(t, ok)
		assert.EqualValues(t, 1, conflicting.ID)
	})

	t.Run("touching windows do not conflict", func(t *testing.T) {
		_, ok := findOverlap(at(12), at(20), approved)

		assert.False(t, ok)
	})

	t.Run("no approved bookings", func(t *testing.T) {
		_, ok := findOverlap(at(11), at(13), nil)

		assert.False(t, ok)
	})
}
