package asc

import (
	"time"
)

// parseTimestamp converts an ISO 8601 timestamp string to time.Time.
// Returns zero time if parsing fails.
func parseTimestamp(ts string) time.Time {
	t, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		return time.Time{}
	}
	return t
}

// Created returns the profile creation time, or zero time if the vendor
// sent no parseable date.
func (p ProfileAttributes) Created() time.Time {
	return parseTimestamp(p.CreatedDate)
}

// Expires returns the profile expiration time, or zero time if the vendor
// sent no parseable date.
func (p ProfileAttributes) Expires() time.Time {
	return parseTimestamp(p.ExpirationDate)
}
