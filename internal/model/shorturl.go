package model

// CreateRequest carries the caller-supplied parts of a new short URL.
// A nil Validity means the configured default applies.
type CreateRequest struct {
	URL       string
	Validity  *int64
	Shortcode string
}

// CreateResult is what the service hands back after a successful allocation.
type CreateResult struct {
	Shortcode string
	Expiry    int64
}

// CreateShortURLRequest is the JSON body of POST /shorturls.
type CreateShortURLRequest struct {
	URL       *string  `json:"url"`
	Validity  *float64 `json:"validity"`
	Shortcode *string  `json:"shortcode"`
}

// CreateShortURLResponse is the JSON body of a 201 from POST /shorturls.
type CreateShortURLResponse struct {
	ShortURL string `json:"short_url"`
	Expiry   int64  `json:"expiry"`
}

// OriginalURLResponse is returned by GET /shorturls/{shortcode}?json=true.
type OriginalURLResponse struct {
	OriginalURL string `json:"original_url"`
}

// ErrorResponse is the envelope for every error surfaced over HTTP.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
