package storage

import (
	"errors"

	"github.com/MikhailRaia/shorturls/internal/model"
)

// ErrNotFound is returned when a shortcode has never been stored.
var ErrNotFound = errors.New("shortcode not found")

// ShortURLStorage holds shortcode entries. Put is a blind insert: callers
// must have checked Exists under their own lock.
type ShortURLStorage interface {
	Put(code string, entry model.ShortURLEntry)
	Get(code string) (model.ShortURLEntry, error)
	Exists(code string) bool
	Len() int
}
