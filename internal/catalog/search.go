package catalog

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/acewig/storefront/pkg/config"
)

// Searcher runs debounced product searches. Only the most recent query after
// the idle window reaches the network, and every firing carries a token so a
// late response from an older firing can never overwrite a newer one.
type Searcher struct {
	svc      *Service
	debounce time.Duration
	limit    int

	mu      sync.Mutex
	timer   *time.Timer
	token   uint64
	results []Product
	loading bool
	err     error
}

// SearchSnapshot is a point-in-time copy of the search state.
type SearchSnapshot struct {
	Results []Product
	Loading bool
	Err     error
}

// NewSearcher builds a searcher from the search config.
func NewSearcher(svc *Service, cfg config.SearchConfig) *Searcher {
	debounce := cfg.Debounce
	if debounce <= 0 {
		debounce = 300 * time.Millisecond
	}
	limit := cfg.Limit
	if limit <= 0 {
		limit = 20
	}
	return &Searcher{svc: svc, debounce: debounce, limit: limit}
}

// SetQuery registers a keystroke. An empty or whitespace-only query clears
// the results immediately without a network call; anything else fires after
// the debounce window unless superseded by a newer query.
func (s *Searcher) SetQuery(ctx context.Context, query string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token++
	token := s.token

	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}

	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		s.results = nil
		s.loading = false
		s.err = nil
		return
	}

	s.loading = true
	s.timer = time.AfterFunc(s.debounce, func() {
		s.run(ctx, trimmed, token)
	})
}

func (s *Searcher) run(ctx context.Context, query string, token uint64) {
	results, err := s.svc.Search(ctx, query, s.limit)

	s.mu.Lock()
	defer s.mu.Unlock()
	if token != s.token {
		// A newer query was issued while this one was in flight.
		return
	}
	s.loading = false
	if err != nil {
		s.err = err
		return
	}
	s.err = nil
	s.results = results
}

// Snapshot returns a copy of the current search state.
func (s *Searcher) Snapshot() SearchSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	results := make([]Product, len(s.results))
	copy(results, s.results)
	return SearchSnapshot{Results: results, Loading: s.loading, Err: s.err}
}
