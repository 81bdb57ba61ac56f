package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/sharpcut-app/barber-marketplace/internal/httperr"
)

func TestValidateRequest(t *testing.T) {
	// Segunda-feira, 10:00
	now := time.Date(2026, 9, 7, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		start    time.Time
		duration int
		advance  int
		wantCode string
	}{
		{
			name:     "valid next day",
			start:    time.Date(2026, 9, 8, 10, 0, 0, 0, time.UTC),
			duration: 30,
		},
		{
			name:     "zero duration",
			start:    time.Date(2026, 9, 8, 10, 0, 0, 0, time.UTC),
			duration: 0,
			wantCode: "invalid_duration",
		},
		{
			name:     "in the past",
			start:    now.Add(-time.Hour),
			duration: 30,
			wantCode: "start_in_past",
		},
		{
			name:     "sunday",
			start:    time.Date(2026, 9, 13, 10, 0, 0, 0, time.UTC),
			duration: 30,
			wantCode: "sunday_not_bookable",
		},
		{
			name:     "before platform opens",
			start:    time.Date(2026, 9, 8, 8, 0, 0, 0, time.UTC),
			duration: 30,
			wantCode: "outside_booking_window",
		},
		{
			name:     "ends past platform close",
			start:    time.Date(2026, 9, 8, 17, 45, 0, 0, time.UTC),
			duration: 30,
			wantCode: "outside_booking_window",
		},
		{
			name:     "ends exactly at close",
			start:    time.Date(2026, 9, 8, 17, 30, 0, 0, time.UTC),
			duration: 30,
		},
		{
			name:     "under default advance",
			start:    now.Add(90 * time.Minute),
			duration: 30,
			wantCode: "too_soon",
		},
		{
			name:     "custom shorter advance",
			start:    now.Add(90 * time.Minute),
			duration: 30,
			advance:  60,
		},
		{
			name:     "custom longer advance",
			start:    time.Date(2026, 9, 7, 14, 0, 0, 0, time.UTC),
			duration: 30,
			advance:  300,
			wantCode: "too_soon",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRequest(tt.start, tt.duration, now, tt.advance)

			if tt.wantCode == "" {
				require.NoError(t, err)
				return
			}

			require.Error(t, err)
			require.True(t, httperr.IsBusiness(err, tt.wantCode),
				"got %v, want code %s", err, tt.wantCode)
			require.True(t, httperr.IsKind(err, httperr.KindValidation))
		})
	}
}
