package keeper

import (
	"sync"

	"github.com/openrwa/rwa-chain/x/assetpool/types"
)

// Guard is an explicit per-scope operation-in-flight token. A mutating
// operation acquires the token on entry and releases it on exit; a
// re-entrant call into the same scope while the token is held is
// rejected rather than queued.
type Guard struct {
	mu       sync.Mutex
	inFlight map[string]bool
}

// NewGuard creates an empty guard
func NewGuard() *Guard {
	return &Guard{inFlight: make(map[string]bool)}
}

// Enter acquires the in-flight token for a scope
func (g *Guard) Enter(scope string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.inFlight[scope] {
		return types.ErrReentrancyBlocked
	}
	g.inFlight[scope] = true
	return nil
}

// Exit releases the in-flight token for a scope
func (g *Guard) Exit(scope string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.inFlight, scope)
}
