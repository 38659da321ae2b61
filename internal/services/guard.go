package services

import (
	"errors"
	"sync"
)

var ErrSubmissionInFlight = errors.New("a request is already in progress")

// SubmitGuard admits one mutation per key at a time. Keys are session tokens.
type SubmitGuard struct {
	mu       sync.Mutex
	inflight map[string]struct{}
}

func NewSubmitGuard() *SubmitGuard {
	return &SubmitGuard{inflight: map[string]struct{}{}}
}

// Acquire fails with ErrSubmissionInFlight while key is held.
func (g *SubmitGuard) Acquire(key string) (release func(), err error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, busy := g.inflight[key]; busy {
		return nil, ErrSubmissionInFlight
	}
	g.inflight[key] = struct{}{}
	var once sync.Once
	return func() {
		once.Do(func() {
			g.mu.Lock()
			delete(g.inflight, key)
			g.mu.Unlock()
		})
	}, nil
}
