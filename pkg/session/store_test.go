package session

import (
	"fmt"
	"testing"
	"time"

	"stack-navigator-be/pkg/advisor"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock lets tests move time forward without sleeping.
type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestStore(cfg Config) (*Store, *fakeClock) {
	clock := &fakeClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	cfg.SweepInterval = 0 // tests drive sweep explicitly
	return newStore(cfg, clock.Now), clock
}

func TestCreateAndGet(t *testing.T) {
	store, _ := newTestStore(DefaultConfig())

	sess := store.Create("1.2.3.4")
	require.NotNil(t, sess)
	assert.NotEmpty(t, sess.ID)
	assert.Equal(t, "1.2.3.4", sess.ClientIP)
	assert.NotNil(t, sess.Conversation)
	assert.Equal(t, advisor.PhaseDiscovery, sess.Conversation.Phase)
	assert.Equal(t, sess.CreatedAt, sess.LastAccessedAt)

	got := store.Get(sess.ID)
	require.NotNil(t, got)
	assert.Equal(t, sess.ID, got.ID)
}

func TestGetUnknownID(t *testing.T) {
	store, _ := newTestStore(DefaultConfig())
	assert.Nil(t, store.Get("nope"))
}

func TestRateLimitRejectsSixthCreate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RateLimitMax = 5
	store, _ := newTestStore(cfg)

	for i := 0; i < 5; i++ {
		require.NotNil(t, store.Create("1.2.3.4"), "create %d should be admitted", i+1)
	}
	assert.Nil(t, store.Create("1.2.3.4"), "sixth create in the window must be rejected")

	// A different IP still gets in.
	assert.NotNil(t, store.Create("5.6.7.8"))
}

func TestRateLimitWindowResets(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RateLimitMax = 2
	cfg.RateLimitWindow = 10 * time.Minute
	store, clock := newTestStore(cfg)

	require.NotNil(t, store.Create("1.2.3.4"))
	require.NotNil(t, store.Create("1.2.3.4"))
	require.Nil(t, store.Create("1.2.3.4"))

	clock.Advance(10 * time.Minute)
	assert.NotNil(t, store.Create("1.2.3.4"), "new window, budget restored")
}

func TestSlidingExpiry(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TTL = 30 * time.Minute
	store, clock := newTestStore(cfg)

	sess := store.Create("1.2.3.4")
	require.NotNil(t, sess)

	// Touching the session keeps it alive past the original deadline.
	clock.Advance(20 * time.Minute)
	require.NotNil(t, store.Get(sess.ID))
	clock.Advance(20 * time.Minute)
	require.NotNil(t, store.Get(sess.ID), "access reset the idle timer")

	// Idle past the TTL: gone, and lazily purged.
	clock.Advance(31 * time.Minute)
	assert.Nil(t, store.Get(sess.ID))
	assert.Equal(t, 0, store.Len())
}

func TestUpdateReplacesFields(t *testing.T) {
	store, _ := newTestStore(DefaultConfig())
	sess := store.Create("1.2.3.4")
	require.NotNil(t, sess)

	email := "a@b.com"
	updated := store.Update(sess.ID, Update{Email: &email})
	require.NotNil(t, updated)
	assert.Equal(t, "a@b.com", updated.Email)
	assert.NotNil(t, updated.Conversation, "untouched fields survive")

	name := "my-saas"
	updated = store.Update(sess.ID, Update{ProjectName: &name})
	require.NotNil(t, updated)
	assert.Equal(t, "my-saas", updated.ProjectName)
	assert.Equal(t, "a@b.com", updated.Email, "earlier partial update kept")

	got := store.Get(sess.ID)
	require.NotNil(t, got)
	assert.Equal(t, "a@b.com", got.Email)
	assert.Equal(t, "my-saas", got.ProjectName)
}

func TestUpdateExpiredReturnsNil(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TTL = time.Minute
	store, clock := newTestStore(cfg)

	sess := store.Create("1.2.3.4")
	require.NotNil(t, sess)

	clock.Advance(2 * time.Minute)
	email := "a@b.com"
	assert.Nil(t, store.Update(sess.ID, Update{Email: &email}))
}

func TestDeleteIsIdempotent(t *testing.T) {
	store, _ := newTestStore(DefaultConfig())
	sess := store.Create("1.2.3.4")
	require.NotNil(t, sess)

	assert.True(t, store.Delete(sess.ID))
	assert.False(t, store.Delete(sess.ID), "second delete reports nothing removed")
	assert.Nil(t, store.Get(sess.ID))
}

func TestCapacityFailsClosedWithLiveSessions(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Capacity = 3
	cfg.RateLimitMax = 100
	store, _ := newTestStore(cfg)

	for i := 0; i < 3; i++ {
		require.NotNil(t, store.Create(fmt.Sprintf("10.0.0.%d", i)))
	}

	// Full of live sessions: refuse rather than evict.
	assert.Nil(t, store.Create("10.0.0.99"))
	assert.Equal(t, 3, store.Len())
}

func TestCapacityEvictsExpiredFirst(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Capacity = 2
	cfg.TTL = 10 * time.Minute
	cfg.RateLimitMax = 100
	store, clock := newTestStore(cfg)

	stale := store.Create("10.0.0.1")
	require.NotNil(t, stale)

	clock.Advance(5 * time.Minute)
	fresh := store.Create("10.0.0.2")
	require.NotNil(t, fresh)
	require.NotNil(t, store.Get(fresh.ID))

	// stale is now 11m idle, fresh only 6m. The expired one gets evicted.
	clock.Advance(6 * time.Minute)
	admitted := store.Create("10.0.0.3")
	require.NotNil(t, admitted)
	assert.Nil(t, store.Get(stale.ID))
	assert.Equal(t, 2, store.Len())
}

func TestSweepPurgesExpired(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TTL = time.Minute
	cfg.RateLimitMax = 100
	store, clock := newTestStore(cfg)

	for i := 0; i < 4; i++ {
		require.NotNil(t, store.Create(fmt.Sprintf("10.0.0.%d", i)))
	}
	clock.Advance(2 * time.Minute)
	survivor := store.Create("10.0.1.1")
	require.NotNil(t, survivor)

	store.sweep()

	assert.Equal(t, 1, store.Len())
	assert.NotNil(t, store.Get(survivor.ID))
}

func TestLastAccessedMonotonic(t *testing.T) {
	store, clock := newTestStore(DefaultConfig())
	sess := store.Create("1.2.3.4")
	require.NotNil(t, sess)

	prev := sess.LastAccessedAt
	for i := 0; i < 3; i++ {
		clock.Advance(time.Minute)
		got := store.Get(sess.ID)
		require.NotNil(t, got)
		assert.False(t, got.LastAccessedAt.Before(prev))
		prev = got.LastAccessedAt
	}
}

func TestReturnedConversationIsIsolated(t *testing.T) {
	store, _ := newTestStore(DefaultConfig())
	sess := store.Create("1.2.3.4")
	require.NotNil(t, sess)

	// Mutating the returned record must not reach the stored one.
	sess.Conversation.Messages = append(sess.Conversation.Messages,
		advisor.Message{Role: advisor.RoleUser, Content: "leaked?"})
	sess.Conversation.Phase = advisor.PhaseRefinement

	got := store.Get(sess.ID)
	require.NotNil(t, got)
	assert.Empty(t, got.Conversation.Messages)
	assert.Equal(t, advisor.PhaseDiscovery, got.Conversation.Phase)
}

func TestUpdateStoresItsOwnConversationCopy(t *testing.T) {
	store, _ := newTestStore(DefaultConfig())
	sess := store.Create("1.2.3.4")
	require.NotNil(t, sess)

	conv := advisor.NewConversation()
	conv.Messages = append(conv.Messages,
		advisor.Message{Role: advisor.RoleUser, Content: "original"})
	require.NotNil(t, store.Update(sess.ID, Update{Conversation: conv}))

	// The caller keeping its pointer cannot reach the stored record.
	conv.Messages[0].Content = "mutated after update"
	conv.Messages = append(conv.Messages,
		advisor.Message{Role: advisor.RoleUser, Content: "extra"})

	got := store.Get(sess.ID)
	require.NotNil(t, got)
	require.Len(t, got.Conversation.Messages, 1)
	assert.Equal(t, "original", got.Conversation.Messages[0].Content)
}
