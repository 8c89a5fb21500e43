package model

// DefaultValiditySeconds is applied when a create request omits validity.
const DefaultValiditySeconds int64 = 24 * 60 * 60

// ShortURLEntry is the value stored for a shortcode. It is immutable once written.
type ShortURLEntry struct {
	URL       string `json:"url"`
	Expiry    int64  `json:"expiry"`
	CreatedAt int64  `json:"created_at"`
}

// Expired reports whether the entry is past its expiry at the given unix time.
func (e ShortURLEntry) Expired(now int64) bool {
	return now > e.Expiry
}

// ComputeExpiry returns the absolute expiry for an entry created at now.
func ComputeExpiry(now, validitySeconds int64) int64 {
	return now + validitySeconds
}
