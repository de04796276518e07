package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBytesToGB(t *testing.T) {
	tests := []struct {
		name     string
		bytes    int64
		expected float64
	}{
		{
			name:     "one decimal gigabyte exactly",
			bytes:    1_000_000_000,
			expected: 1.00,
		},
		{
			name:     "rounds to two decimals",
			bytes:    1_234_567_890,
			expected: 1.23,
		},
		{
			name:     "rounds half up",
			bytes:    1_235_000_000,
			expected: 1.24,
		},
		{
			name:     "zero bytes",
			bytes:    0,
			expected: 0,
		},
		{
			name:     "decimal convention, not binary",
			bytes:    1 << 30, // 1 GiB
			expected: 1.07,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, BytesToGB(tt.bytes))
		})
	}
}

func TestBytesToTB(t *testing.T) {
	assert.Equal(t, 1.00, BytesToTB(1_000_000_000_000))
	assert.Equal(t, 0.50, BytesToTB(500_000_000_000))
}

func TestEpochMillisToUTC(t *testing.T) {
	assert.Nil(t, EpochMillisToUTC(0))
	assert.Nil(t, EpochMillisToUTC(-1))

	ts := EpochMillisToUTC(1700000000000)
	if assert.NotNil(t, ts) {
		assert.Equal(t, time.UTC, ts.Location())
		assert.Equal(t, int64(1700000000000), ts.UnixMilli())
	}
}

func TestHoursSince(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	oneHourAgo := now.Add(-time.Hour)
	assert.Equal(t, 1.0, HoursSince(&oneHourAgo, now))

	ninetyMinutesAgo := now.Add(-90 * time.Minute)
	assert.Equal(t, 1.5, HoursSince(&ninetyMinutesAgo, now))

	assert.Equal(t, 0.0, HoursSince(nil, now))
}

func TestDaysSince(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	twoDaysAgo := now.Add(-48 * time.Hour)
	assert.Equal(t, 2.0, DaysSince(&twoDaysAgo, now))

	assert.Equal(t, 0.0, DaysSince(nil, now))
}
