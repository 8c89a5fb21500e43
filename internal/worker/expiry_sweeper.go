package worker

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/MikhailRaia/shorturls/internal/metrics"
)

// ExpiredStore is the part of the storage the sweeper needs.
type ExpiredStore interface {
	DeleteExpired(now int64) int
	Len() int
}

// ExpirySweeper periodically removes entries whose expiry has passed.
// Reads never remove entries, so without a sweeper expired entries stay
// in the store for the lifetime of the process.
type ExpirySweeper struct {
	store    ExpiredStore
	interval time.Duration
	now      func() time.Time

	ctx          context.Context
	cancel       context.CancelFunc
	wg           sync.WaitGroup
	startOnce    sync.Once
	shutdownOnce sync.Once
}

type SweeperOption func(*ExpirySweeper)

func WithSweeperClock(now func() time.Time) SweeperOption {
	return func(s *ExpirySweeper) {
		s.now = now
	}
}

func NewExpirySweeper(store ExpiredStore, interval time.Duration, opts ...SweeperOption) *ExpirySweeper {
	ctx, cancel := context.WithCancel(context.Background())

	s := &ExpirySweeper{
		store:    store,
		interval: interval,
		now:      time.Now,
		ctx:      ctx,
		cancel:   cancel,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

func (s *ExpirySweeper) Start() {
	s.startOnce.Do(func() {
		log.Info().Dur("interval", s.interval).Msg("Starting expiry sweeper")

		s.wg.Add(1)
		go s.run()
	})
}

func (s *ExpirySweeper) run() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.ctx.Done():
			log.Debug().Msg("Expiry sweeper stopped")
			return
		case <-ticker.C:
			s.Sweep()
		}
	}
}

// Sweep removes expired entries once and returns how many were removed.
func (s *ExpirySweeper) Sweep() int {
	removed := s.store.DeleteExpired(s.now().Unix())
	remaining := s.store.Len()

	metrics.RecordSwept(removed)
	metrics.SetStoreEntries(remaining)

	if removed > 0 {
		log.Debug().
			Int("removed", removed).
			Int("remaining", remaining).
			Msg("Expired short URLs removed")
	}

	return removed
}

// Shutdown stops the sweeper and waits for a running sweep to finish.
func (s *ExpirySweeper) Shutdown(timeout time.Duration) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		s.cancel()

		done := make(chan struct{})
		go func() {
			s.wg.Wait()
			close(done)
		}()

		select {
		case <-done:
			log.Info().Msg("Expiry sweeper shut down")
		case <-time.After(timeout):
			log.Warn().Msg("Expiry sweeper shutdown timeout")
			shutdownErr = context.DeadlineExceeded
		}
	})

	return shutdownErr
}
