package auth

import (
	"sync"

	"stockdeck/internal/domain"
)

// Tracker fans out auth-state changes to subscribers. The service publishes
// the new principal on sign-in and nil on sign-out; downstream caches
// subscribe so owner-scoped state is cleared before the sign-out call
// returns. Delivery is synchronous and in subscription order.
type Tracker struct {
	mu   sync.Mutex
	next int
	subs map[int]func(*domain.Principal)
	keys []int
}

func NewTracker() *Tracker {
	return &Tracker{subs: make(map[int]func(*domain.Principal))}
}

// Subscribe registers fn and returns a token for Unsubscribe. The token must
// be released on teardown; a leaked subscription keeps receiving events.
func (t *Tracker) Subscribe(fn func(*domain.Principal)) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	token := t.next
	t.next++
	t.subs[token] = fn
	t.keys = append(t.keys, token)
	return token
}

// Unsubscribe releases the listener registered under token.
func (t *Tracker) Unsubscribe(token int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.subs, token)
	for i, k := range t.keys {
		if k == token {
			t.keys = append(t.keys[:i], t.keys[i+1:]...)
			break
		}
	}
}

// Publish delivers the current principal (or nil for signed-out) to every
// subscriber before returning.
func (t *Tracker) Publish(principal *domain.Principal) {
	t.mu.Lock()
	fns := make([]func(*domain.Principal), 0, len(t.keys))
	for _, k := range t.keys {
		if fn, ok := t.subs[k]; ok {
			fns = append(fns, fn)
		}
	}
	t.mu.Unlock()

	for _, fn := range fns {
		fn(principal)
	}
}
