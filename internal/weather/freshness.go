package weather

import "time"

// DefaultMaxAge is how long a stored record is served without re-fetching.
const DefaultMaxAge = time.Hour

// IsFresh reports whether a stored record is recent enough to answer from.
// ModifiedAt is the reference timestamp when present, ObservedAt otherwise.
// The boundary at exactly maxAge is inclusive.
func IsFresh(now time.Time, rec WeatherRecord, maxAge time.Duration) bool {
	ref := rec.ModifiedAt
	if ref.IsZero() {
		ref = rec.ObservedAt
	}
	if ref.IsZero() {
		return false
	}
	return now.Sub(ref) <= maxAge
}
