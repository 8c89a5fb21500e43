package service

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/MikhailRaia/shorturls/internal/generator"
	"github.com/MikhailRaia/shorturls/internal/metrics"
)

// DefaultMaxAttempts bounds the regenerate-on-collision loop.
const DefaultMaxAttempts = 100

// CodeChecker is the part of the storage the allocator needs.
type CodeChecker interface {
	Exists(code string) bool
}

// Allocator picks the shortcode for a new entry. It is not safe to use
// without the caller holding a lock that also covers the subsequent Put.
type Allocator struct {
	generate    func(length int) (string, error)
	length      int
	maxAttempts int
}

// NewAllocator returns an allocator producing codes of the given length.
// Non-positive arguments select the defaults.
func NewAllocator(length, maxAttempts int) *Allocator {
	if length <= 0 {
		length = generator.DefaultLength
	}
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}

	return &Allocator{
		generate:    generator.Generate,
		length:      length,
		maxAttempts: maxAttempts,
	}
}

// Allocate returns custom if it is free, or a freshly generated code when
// custom is empty.
func (a *Allocator) Allocate(store CodeChecker, custom string) (string, error) {
	if custom != "" {
		if store.Exists(custom) {
			return "", fmt.Errorf("%w: %s", ErrDuplicateShortcode, custom)
		}
		return custom, nil
	}

	for attempt := 1; attempt <= a.maxAttempts; attempt++ {
		code, err := a.generate(a.length)
		if err != nil {
			return "", fmt.Errorf("failed to generate shortcode: %w", err)
		}

		if !store.Exists(code) {
			return code, nil
		}

		metrics.RecordCollision()
		log.Debug().
			Str("shortcode", code).
			Int("attempt", attempt).
			Msg("Generated shortcode collided, retrying")
	}

	return "", fmt.Errorf("%w after %d attempts", ErrAllocationExhausted, a.maxAttempts)
}
