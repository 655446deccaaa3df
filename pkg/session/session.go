// FILE: pkg/session/session.go
// In-memory advisor session state, held for the life of the process.
package session

import (
	"time"

	"stack-navigator-be/pkg/advisor"
)

// Session is one visitor's in-progress stack-selection conversation.
// Anonymous visitors get a session before they ever register, so the record
// carries the originating IP for rate-limit accounting (never authorization).
type Session struct {
	ID       string `json:"id"`
	ClientIP string `json:"-"`

	// Conversation is owned by the session and replaced wholesale on update,
	// never deep-merged by the store.
	Conversation *advisor.Conversation `json:"conversation"`

	// Set once the visitor identifies themselves (pre-checkout email capture).
	Email       string `json:"email,omitempty"`
	ProjectName string `json:"project_name,omitempty"`

	CreatedAt      time.Time `json:"created_at"`
	LastAccessedAt time.Time `json:"last_accessed_at"`
}

// Update is a partial write against a session. Nil fields are left untouched;
// non-nil fields replace the existing value (last write wins).
type Update struct {
	Conversation *advisor.Conversation
	Email        *string
	ProjectName  *string
}

func (s *Session) expired(now time.Time, ttl time.Duration) bool {
	return now.Sub(s.LastAccessedAt) > ttl
}

// clone returns a copy sharing no memory with the stored record, so callers
// cannot mutate store internals between operations. The conversation is
// deep-copied; mutating a returned session never touches the stored one.
func (s *Session) clone() *Session {
	c := *s
	c.Conversation = s.Conversation.Clone()
	return &c
}
