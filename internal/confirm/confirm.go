// Package confirm issues one-time tokens that gate destructive actions
// behind an explicit yes from the user.
package confirm

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"hisab/internal/cache"
)

var ErrUnknownToken = errors.New("confirmation expired or already used")

// Action describes what happens if the user confirms.
type Action struct {
	Kind   string
	ID     string
	Prompt string
}

// Guard holds pending confirmations until they are answered or expire.
type Guard struct {
	pending *cache.LRUCache[Action]
}

// NewGuard keeps at most maxPending unanswered requests for ttl each.
func NewGuard(maxPending int, ttl time.Duration) *Guard {
	return &Guard{pending: cache.NewLRUCache[Action](maxPending, ttl)}
}

// Cache exposes the pending store so it can be registered for cleanup.
func (g *Guard) Cache() *cache.LRUCache[Action] {
	return g.pending
}

// Request registers a and returns the token that must be presented to
// Confirm.
func (g *Guard) Request(a Action) (string, error) {
	token, err := newToken()
	if err != nil {
		return "", err
	}
	g.pending.Set(token, a)
	return token, nil
}

// Peek returns the pending action without consuming it.
func (g *Guard) Peek(token string) (Action, bool) {
	return g.pending.Get(token)
}

// Confirm consumes the token. The action is returned only when accepted is
// true; a declined request is discarded. Either way the token cannot be
// reused.
func (g *Guard) Confirm(token string, accepted bool) (Action, bool, error) {
	a, ok := g.pending.Take(token)
	if !ok {
		return Action{}, false, ErrUnknownToken
	}
	return a, accepted, nil
}

func newToken() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
