package date

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSession_IsOpen(t *testing.T) {
	s := NewYorkSession()

	tests := []struct {
		name     string
		datetime time.Time
		expected bool
	}{
		{
			name:     "open during regular hours",
			datetime: time.Date(2024, 1, 16, 15, 0, 0, 0, time.UTC), // Tuesday 10:00 EST
			expected: true,
		},
		{
			name:     "closed before open",
			datetime: time.Date(2024, 1, 16, 13, 0, 0, 0, time.UTC), // Tuesday 08:00 EST
			expected: false,
		},
		{
			name:     "open at 9:30",
			datetime: time.Date(2024, 1, 16, 14, 30, 0, 0, time.UTC), // Tuesday 09:30 EST
			expected: true,
		},
		{
			name:     "closed one minute before open",
			datetime: time.Date(2024, 1, 16, 14, 29, 0, 0, time.UTC),
			expected: false,
		},
		{
			name:     "open one minute before close",
			datetime: time.Date(2024, 1, 16, 20, 59, 0, 0, time.UTC),
			expected: true,
		},
		{
			name:     "closed at exactly 16:00",
			datetime: time.Date(2024, 1, 16, 21, 0, 0, 0, time.UTC),
			expected: false,
		},
		{
			name:     "closed on saturday",
			datetime: time.Date(2024, 1, 20, 15, 0, 0, 0, time.UTC),
			expected: false,
		},
		{
			name:     "closed on sunday",
			datetime: time.Date(2024, 1, 21, 15, 0, 0, 0, time.UTC),
			expected: false,
		},
		{
			name:     "summer time shifts the utc window",
			datetime: time.Date(2024, 7, 16, 13, 45, 0, 0, time.UTC), // Tuesday 09:45 EDT
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, s.IsOpen(tt.datetime), "IsOpen(%v) local %v", tt.datetime, tt.datetime.In(s.Location))
		})
	}
}

func TestSession_Today(t *testing.T) {
	s := NewYorkSession()
	// 02:00 UTC on the 16th is still the 15th in New York.
	assert.Equal(t, New(2024, time.January, 15), s.Today(time.Date(2024, 1, 16, 2, 0, 0, 0, time.UTC)))
}

func TestNewSession(t *testing.T) {
	s, err := NewSession("Europe/Paris", At(9, 0), At(17, 30))
	require.NoError(t, err)
	assert.True(t, s.IsOpen(time.Date(2024, 1, 16, 16, 0, 0, 0, time.UTC))) // 17:00 CET
	assert.False(t, s.IsOpen(time.Date(2024, 1, 16, 16, 30, 0, 0, time.UTC)))

	_, err = NewSession("Mars/Olympus", At(9, 0), At(17, 0))
	assert.Error(t, err)
	_, err = NewSession("UTC", At(17, 0), At(9, 0))
	assert.Error(t, err)
}

func TestParseClock(t *testing.T) {
	c, err := ParseClock("09:30")
	require.NoError(t, err)
	assert.Equal(t, At(9, 30), c)
	assert.Equal(t, "09:30", c.String())

	_, err = ParseClock("9h30")
	assert.Error(t, err)
}
