// FILE: pkg/session/store.go
package session

import (
	"sync"
	"time"

	"stack-navigator-be/pkg/advisor"

	"github.com/google/uuid"
)

// Config tunes the store. The numbers are policy, not structure; every
// deployment overrides them through env config.
type Config struct {
	TTL             time.Duration // idle time before a session counts as expired
	Capacity        int           // max concurrent sessions
	RateLimitWindow time.Duration // per-IP creation window
	RateLimitMax    int           // creations allowed per IP per window
	SweepInterval   time.Duration // background purge cadence; 0 disables the sweeper
}

// DefaultConfig mirrors the production defaults (30m TTL, 1000 sessions,
// 5 creations per 10 minutes per IP).
func DefaultConfig() Config {
	return Config{
		TTL:             30 * time.Minute,
		Capacity:        1000,
		RateLimitWindow: 10 * time.Minute,
		RateLimitMax:    5,
		SweepInterval:   5 * time.Minute,
	}
}

// Store holds every live advisor session for this process. It is constructed
// once at startup and injected into handlers; state is volatile and a restart
// drops all sessions, which is accepted.
//
// Absence (missing or expired id) and admission refusal (rate limit, capacity)
// are both signaled with nil/false returns, never errors. The HTTP layer maps
// a nil Create to 429 and a nil Get/Update to 404.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session
	limiter  *rateLimiter
	cfg      Config
	nowFunc  func() time.Time
	stop     chan struct{}
	stopOnce sync.Once
}

// NewStore builds a store and, when SweepInterval is set, starts the
// background sweeper. Call Close on shutdown to stop it.
func NewStore(cfg Config) *Store {
	return newStore(cfg, time.Now)
}

func newStore(cfg Config, nowFunc func() time.Time) *Store {
	s := &Store{
		sessions: make(map[string]*Session),
		limiter:  newRateLimiter(cfg.RateLimitWindow, cfg.RateLimitMax, nowFunc),
		cfg:      cfg,
		nowFunc:  nowFunc,
		stop:     make(chan struct{}),
	}
	if cfg.SweepInterval > 0 {
		go s.runSweeper()
	}
	return s
}

// Create admits a new session for clientIP, or returns nil when the IP has
// exhausted its creation window or the store is full of live sessions.
// The rate counter is consumed only on an admitted create.
func (s *Store) Create(clientIP string) *Session {
	now := s.nowFunc()

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.sessions) >= s.cfg.Capacity {
		// Only expired sessions may be evicted to make room. Evicting a live
		// session to admit a new one is worse than refusing the new one.
		if !s.evictOneExpiredLocked(now) {
			return nil
		}
	}

	if !s.limiter.Allow(clientIP) {
		return nil
	}

	sess := &Session{
		ID:             uuid.NewString(),
		ClientIP:       clientIP,
		Conversation:   advisor.NewConversation(),
		CreatedAt:      now,
		LastAccessedAt: now,
	}
	s.sessions[sess.ID] = sess
	return sess.clone()
}

// Get returns the session for id with its idle timer reset, or nil when the
// id is unknown or has sat idle past the TTL. Expired entries are purged on
// the way out.
func (s *Store) Get(id string) *Session {
	now := s.nowFunc()

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil
	}
	if sess.expired(now, s.cfg.TTL) {
		delete(s.sessions, id)
		return nil
	}

	sess.LastAccessedAt = now
	return sess.clone()
}

// Update applies the non-nil fields of upd by replacement and returns the
// full updated record, or nil when the session is absent or expired.
func (s *Store) Update(id string, upd Update) *Session {
	now := s.nowFunc()

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil
	}
	if sess.expired(now, s.cfg.TTL) {
		delete(s.sessions, id)
		return nil
	}

	if upd.Conversation != nil {
		// Wholesale replacement with our own copy, so the caller keeping
		// (and mutating) its pointer cannot reach the stored record.
		sess.Conversation = upd.Conversation.Clone()
	}
	if upd.Email != nil {
		sess.Email = *upd.Email
	}
	if upd.ProjectName != nil {
		sess.ProjectName = *upd.ProjectName
	}
	sess.LastAccessedAt = now
	return sess.clone()
}

// Delete removes id if present and reports whether a removal happened.
// Deleting an unknown id is a no-op returning false.
func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return false
	}
	delete(s.sessions, id)
	return true
}

// Len reports the number of sessions currently held, expired or not.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Close stops the background sweeper. Safe to call more than once.
func (s *Store) Close() {
	s.stopOnce.Do(func() { close(s.stop) })
}

// evictOneExpiredLocked removes the least-recently-accessed expired session.
// Returns false when every held session is still live. Caller holds s.mu.
func (s *Store) evictOneExpiredLocked(now time.Time) bool {
	var victim string
	var oldest time.Time
	for id, sess := range s.sessions {
		if !sess.expired(now, s.cfg.TTL) {
			continue
		}
		if victim == "" || sess.LastAccessedAt.Before(oldest) {
			victim = id
			oldest = sess.LastAccessedAt
		}
	}
	if victim == "" {
		return false
	}
	delete(s.sessions, victim)
	return true
}

func (s *Store) runSweeper() {
	ticker := time.NewTicker(s.cfg.SweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.sweep()
		case <-s.stop:
			return
		}
	}
}

// sweep purges every expired session and stale rate counters.
func (s *Store) sweep() {
	now := s.nowFunc()

	s.mu.Lock()
	for id, sess := range s.sessions {
		if sess.expired(now, s.cfg.TTL) {
			delete(s.sessions, id)
		}
	}
	s.mu.Unlock()

	s.limiter.prune()
}
