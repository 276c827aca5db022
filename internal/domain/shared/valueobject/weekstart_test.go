package valueobject

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeWeekStart(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want string
	}{
		{"wednesday maps to monday", time.Date(2024, 1, 17, 0, 0, 0, 0, time.UTC), "2024-01-15"},
		{"monday stays", time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), "2024-01-15"},
		{"sunday maps to previous monday", time.Date(2024, 1, 21, 0, 0, 0, 0, time.UTC), "2024-01-15"},
		{"saturday maps back", time.Date(2024, 1, 20, 23, 59, 0, 0, time.UTC), "2024-01-15"},
		{"across month boundary", time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), "2024-01-29"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeWeekStart(tt.in).String())
		})
	}
}

func TestNormalizeWeekStart_StripsTimeComponent(t *testing.T) {
	w := NormalizeWeekStart(time.Date(2024, 1, 17, 15, 42, 7, 123, time.UTC))
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), w.Date())
}

func TestParseWeekStart(t *testing.T) {
	w, err := ParseWeekStart("2024-01-19")
	require.NoError(t, err)
	assert.Equal(t, "2024-01-15", w.String())

	_, err = ParseWeekStart("19/01/2024")
	assert.Error(t, err)
}

func TestWeekStart_EndAndContains(t *testing.T) {
	w := NormalizeWeekStart(time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC))

	assert.Equal(t, time.Date(2024, 1, 21, 0, 0, 0, 0, time.UTC), w.End())
	assert.True(t, w.Contains(time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)))
	assert.True(t, w.Contains(time.Date(2024, 1, 21, 18, 0, 0, 0, time.UTC)))
	assert.False(t, w.Contains(time.Date(2024, 1, 22, 0, 0, 0, 0, time.UTC)))
	assert.False(t, w.Contains(time.Date(2024, 1, 14, 0, 0, 0, 0, time.UTC)))
}

func TestWeekStart_Equal(t *testing.T) {
	a := NormalizeWeekStart(time.Date(2024, 1, 16, 0, 0, 0, 0, time.UTC))
	b := NormalizeWeekStart(time.Date(2024, 1, 19, 0, 0, 0, 0, time.UTC))
	c := NormalizeWeekStart(time.Date(2024, 1, 22, 0, 0, 0, 0, time.UTC))

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
}
