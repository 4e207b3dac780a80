package coordinator

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
)

// DefaultLeaseTTL bounds how long one selection may hold the draft. Past it,
// the holder is presumed hung and a new request may take over.
const DefaultLeaseTTL = 30 * time.Second

// DraftLock serializes selections for the whole draft. The turn invariant is
// draft-wide, so one lease guards everything rather than per-team locks.
//
// Acquisition hands out a holder token and a wall-clock expiry. While the
// lease is live, new requests are rejected with a retry hint; once it lapses,
// the next request force-takes it under a fresh token. Release is fenced on
// the token, so a late release from an overridden holder cannot clear a newer
// legitimate holder.
//
// The lock is process-local and resets on restart: the engine assumes exactly
// one process instance per draft.
type DraftLock struct {
	mu    sync.Mutex
	clock clockwork.Clock
	ttl   time.Duration

	token  uuid.UUID // uuid.Nil when free
	holder string
	expiry time.Time
}

func NewDraftLock(clock clockwork.Clock, ttl time.Duration) *DraftLock {
	if ttl <= 0 {
		ttl = DefaultLeaseTTL
	}
	return &DraftLock{clock: clock, ttl: ttl}
}

// Acquire claims the lease for holder. It never blocks: a live lease fails
// immediately with the time left on it.
func (l *DraftLock) Acquire(holder string) (uuid.UUID, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.clock.Now()
	if l.token != uuid.Nil && now.Before(l.expiry) {
		return uuid.Nil, &LockHeldError{Holder: l.holder, RetryAfter: l.expiry.Sub(now)}
	}

	if l.token != uuid.Nil {
		log.Warn().
			Str("stale_holder", l.holder).
			Time("expired_at", l.expiry).
			Str("new_holder", holder).
			Msg("draft lease expired, forcing takeover")
	}

	l.token = uuid.New()
	l.holder = holder
	l.expiry = now.Add(l.ttl)
	return l.token, nil
}

// Release clears the lease only if token still identifies the current holder.
// Returns false when the lease was already taken over.
func (l *DraftLock) Release(token uuid.UUID) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if token == uuid.Nil || token != l.token {
		return false
	}
	l.token = uuid.Nil
	l.holder = ""
	l.expiry = time.Time{}
	return true
}

// Held reports whether a live lease exists right now.
func (l *DraftLock) Held() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.token != uuid.Nil && l.clock.Now().Before(l.expiry)
}
