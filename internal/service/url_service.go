package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/MikhailRaia/shorturls/internal/metrics"
	"github.com/MikhailRaia/shorturls/internal/model"
	"github.com/MikhailRaia/shorturls/internal/storage"
)

var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrDuplicateShortcode  = errors.New("shortcode already exists")
	ErrNotFound            = errors.New("short URL not found")
	ErrExpired             = errors.New("short URL expired")
	ErrAllocationExhausted = errors.New("could not allocate a unique shortcode")
)

// URLService creates short URLs and resolves shortcodes back to their targets.
type URLService struct {
	storage         storage.ShortURLStorage
	allocator       *Allocator
	defaultValidity int64
	now             func() time.Time

	// allocMu covers the check-then-put sequence so that concurrent
	// requests for the same custom code resolve first-writer-wins.
	allocMu sync.Mutex
}

// Option configures a URLService.
type Option func(*URLService)

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *URLService) {
		s.now = now
	}
}

// WithDefaultValidity sets the validity applied when a request omits it.
func WithDefaultValidity(seconds int64) Option {
	return func(s *URLService) {
		s.defaultValidity = seconds
	}
}

// NewURLService constructs a URLService over the given storage and allocator.
func NewURLService(storage storage.ShortURLStorage, allocator *Allocator, opts ...Option) *URLService {
	s := &URLService{
		storage:         storage,
		allocator:       allocator,
		defaultValidity: model.DefaultValiditySeconds,
		now:             time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// CreateShortURL allocates a shortcode for req.URL and stores it with its expiry.
func (s *URLService) CreateShortURL(ctx context.Context, req model.CreateRequest) (model.CreateResult, error) {
	if req.URL == "" {
		return model.CreateResult{}, fmt.Errorf("%w: URL is required", ErrInvalidInput)
	}

	if err := ctx.Err(); err != nil {
		return model.CreateResult{}, err
	}

	validity := s.defaultValidity
	if req.Validity != nil {
		validity = *req.Validity
	}

	s.allocMu.Lock()
	code, err := s.allocator.Allocate(s.storage, req.Shortcode)
	if err != nil {
		s.allocMu.Unlock()
		return model.CreateResult{}, err
	}

	now := s.now().Unix()
	entry := model.ShortURLEntry{
		URL:       req.URL,
		Expiry:    model.ComputeExpiry(now, validity),
		CreatedAt: now,
	}
	s.storage.Put(code, entry)
	entries := s.storage.Len()
	s.allocMu.Unlock()

	kind := metrics.KindGenerated
	if req.Shortcode != "" {
		kind = metrics.KindCustom
	}
	metrics.RecordCreated(kind)
	metrics.SetStoreEntries(entries)

	log.Debug().
		Str("shortcode", code).
		Str("kind", kind).
		Int64("expiry", entry.Expiry).
		Msg("Short URL created")

	return model.CreateResult{Shortcode: code, Expiry: entry.Expiry}, nil
}

// Resolve returns the entry for code if it exists and has not expired.
// Expired entries stay in the storage.
func (s *URLService) Resolve(ctx context.Context, code string) (model.ShortURLEntry, error) {
	if err := ctx.Err(); err != nil {
		return model.ShortURLEntry{}, err
	}

	entry, err := s.storage.Get(code)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			metrics.RecordLookup(metrics.LookupNotFound)
			return model.ShortURLEntry{}, fmt.Errorf("%w: %w", ErrNotFound, err)
		}
		return model.ShortURLEntry{}, fmt.Errorf("error reading shortcode %q: %w", code, err)
	}

	if entry.Expired(s.now().Unix()) {
		metrics.RecordLookup(metrics.LookupExpired)
		return model.ShortURLEntry{}, ErrExpired
	}

	metrics.RecordLookup(metrics.LookupFound)
	return entry, nil
}
