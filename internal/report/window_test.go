package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveWindow_TableTests(t *testing.T) {
	now := time.Date(2025, 8, 31, 18, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		startMonth string
		endMonth   string
		months     int
		wantStart  time.Time
		wantEnd    time.Time
		wantErr    bool
	}{
		{
			name:       "explicit months",
			startMonth: "2025-01",
			endMonth:   "2025-03",
			wantStart:  date(2025, 1, 1),
			wantEnd:    date(2025, 3, 1),
		},
		{
			name:      "default twelve months",
			wantStart: date(2024, 9, 1),
			wantEnd:   date(2025, 8, 31),
		},
		{
			name:      "relative three months",
			months:    3,
			wantStart: date(2025, 6, 1),
			wantEnd:   date(2025, 8, 31),
		},
		{
			name:       "only start month falls back to relative window",
			startMonth: "2020-01",
			months:     1,
			wantStart:  date(2025, 8, 1),
			wantEnd:    date(2025, 8, 31),
		},
		{
			name:       "malformed month",
			startMonth: "2025/01",
			endMonth:   "2025-03",
			wantErr:    true,
		},
		{
			name:    "negative months",
			months:  -2,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end, err := ResolveWindow(tt.startMonth, tt.endMonth, tt.months, now)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidWindow)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantStart, start)
			assert.Equal(t, tt.wantEnd, end)
		})
	}
}
