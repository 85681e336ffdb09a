package service

import (
	"fmt"
	"sync"

	"github.com/pkordes/planner/internal/domain"
)

// Guard is a single-slot lock for one operation. While a call is running a
// second call is rejected with domain.ErrInFlight instead of being sent to
// the remote API twice. The zero value is ready to use.
type Guard struct {
	mu sync.Mutex
}

// Do runs fn unless another Do on the same Guard is still running.
func (g *Guard) Do(op string, fn func() error) error {
	if !g.mu.TryLock() {
		return fmt.Errorf("%s: %w", op, domain.ErrInFlight)
	}
	defer g.mu.Unlock()
	return fn()
}
