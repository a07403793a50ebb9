package asc

import (
	"testing"
	"time"
)

// TestParseTimestamp tests ISO 8601 parsing with fallback to zero time
func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  time.Time
	}{
		{
			name:  "valid RFC3339",
			input: "2026-03-14T09:26:53Z",
			want:  time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC),
		},
		{
			name:  "with offset",
			input: "2026-03-14T09:26:53+02:00",
			want:  time.Date(2026, 3, 14, 9, 26, 53, 0, time.FixedZone("", 2*3600)),
		},
		{
			name:  "empty string",
			input: "",
			want:  time.Time{},
		},
		{
			name:  "garbage",
			input: "not a date",
			want:  time.Time{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseTimestamp(tt.input)
			if !got.Equal(tt.want) {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

// TestProfileDates tests the date accessors on profile attributes
func TestProfileDates(t *testing.T) {
	attrs := ProfileAttributes{
		CreatedDate:    "2026-01-01T00:00:00Z",
		ExpirationDate: "2027-01-01T00:00:00Z",
	}
	if attrs.Created().Year() != 2026 {
		t.Errorf("unexpected created date %v", attrs.Created())
	}
	if attrs.Expires().Year() != 2027 {
		t.Errorf("unexpected expiration date %v", attrs.Expires())
	}
	if !(ProfileAttributes{}).Created().IsZero() {
		t.Error("expected zero time for missing date")
	}
}
