// FILE: internal/service/advisor_service_test.go
package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"stack-navigator-be/internal/dto"
	"stack-navigator-be/pkg/advisor"
	"stack-navigator-be/pkg/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAdvisorService(cfg session.Config) (IAdvisorService, *session.Store) {
	store := session.NewStore(cfg)
	return NewAdvisorService(store), store
}

func testSessionConfig() session.Config {
	return session.Config{
		TTL:             time.Minute,
		Capacity:        10,
		RateLimitWindow: time.Minute,
		RateLimitMax:    10,
	}
}

func TestAdvisorServiceCreateSession(t *testing.T) {
	svc, store := newTestAdvisorService(testSessionConfig())
	defer store.Close()

	res, err := svc.CreateSession(context.Background(), "10.0.0.1", &dto.CreateSessionRequest{ProjectName: "shop"})
	require.NoError(t, err)
	require.NotNil(t, res)

	assert.NotEmpty(t, res.Id)
	assert.Equal(t, advisor.PhaseDiscovery, res.Phase)
	assert.Equal(t, "shop", res.ProjectName)

	// The session opens with the engine's greeting
	require.Len(t, res.Messages, 1)
	assert.Equal(t, advisor.RoleAssistant, res.Messages[0].Role)
	assert.NotEmpty(t, res.Messages[0].Content)
}

func TestAdvisorServiceCreateSessionRateLimited(t *testing.T) {
	cfg := testSessionConfig()
	cfg.RateLimitMax = 1
	svc, store := newTestAdvisorService(cfg)
	defer store.Close()

	first, err := svc.CreateSession(context.Background(), "10.0.0.2", nil)
	require.NoError(t, err)
	require.NotNil(t, first)

	// Same IP inside the window is refused without an error
	second, err := svc.CreateSession(context.Background(), "10.0.0.2", nil)
	require.NoError(t, err)
	assert.Nil(t, second)

	// A different IP is unaffected
	third, err := svc.CreateSession(context.Background(), "10.0.0.3", nil)
	require.NoError(t, err)
	assert.NotNil(t, third)
}

func TestAdvisorServiceCreateSessionAtCapacity(t *testing.T) {
	cfg := testSessionConfig()
	cfg.Capacity = 1
	svc, store := newTestAdvisorService(cfg)
	defer store.Close()

	first, err := svc.CreateSession(context.Background(), "10.0.0.4", nil)
	require.NoError(t, err)
	require.NotNil(t, first)

	second, err := svc.CreateSession(context.Background(), "10.0.0.5", nil)
	require.NoError(t, err)
	assert.Nil(t, second)

	// Freeing the slot admits the next create
	assert.True(t, svc.DeleteSession(context.Background(), first.Id))
	third, err := svc.CreateSession(context.Background(), "10.0.0.5", nil)
	require.NoError(t, err)
	assert.NotNil(t, third)
}

func TestAdvisorServiceGetSession(t *testing.T) {
	svc, store := newTestAdvisorService(testSessionConfig())
	defer store.Close()

	created, err := svc.CreateSession(context.Background(), "10.0.0.6", nil)
	require.NoError(t, err)
	require.NotNil(t, created)

	got, err := svc.GetSession(context.Background(), created.Id)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, created.Id, got.Id)

	missing, err := svc.GetSession(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestAdvisorServiceUpdateSession(t *testing.T) {
	svc, store := newTestAdvisorService(testSessionConfig())
	defer store.Close()

	created, err := svc.CreateSession(context.Background(), "10.0.0.7", nil)
	require.NoError(t, err)
	require.NotNil(t, created)

	email := "dev@example.com"
	name := "sideproject"
	updated, err := svc.UpdateSession(context.Background(), created.Id, &dto.UpdateSessionRequest{
		Email:       &email,
		ProjectName: &name,
	})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, email, updated.Email)
	assert.Equal(t, name, updated.ProjectName)

	missing, err := svc.UpdateSession(context.Background(), "nope", &dto.UpdateSessionRequest{Email: &email})
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestAdvisorServiceDeleteSession(t *testing.T) {
	svc, store := newTestAdvisorService(testSessionConfig())
	defer store.Close()

	created, err := svc.CreateSession(context.Background(), "10.0.0.8", nil)
	require.NoError(t, err)
	require.NotNil(t, created)

	assert.True(t, svc.DeleteSession(context.Background(), created.Id))
	// Idempotent: a second delete reports false
	assert.False(t, svc.DeleteSession(context.Background(), created.Id))

	got, err := svc.GetSession(context.Background(), created.Id)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestAdvisorServiceSendMessage(t *testing.T) {
	svc, store := newTestAdvisorService(testSessionConfig())
	defer store.Close()

	created, err := svc.CreateSession(context.Background(), "10.0.0.9", nil)
	require.NoError(t, err)
	require.NotNil(t, created)

	res, err := svc.SendMessage(context.Background(), created.Id, &dto.SendMessageRequest{
		Content: "I want to build an online store",
	})
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, advisor.RoleAssistant, res.Reply.Role)
	assert.NotEmpty(t, res.Reply.Content)

	// The turn is persisted on the session
	got, err := svc.GetSession(context.Background(), created.Id)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Greater(t, len(got.Messages), 1)

	missing, err := svc.SendMessage(context.Background(), "nope", &dto.SendMessageRequest{Content: "hi"})
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestAdvisorServiceConversationReachesRecommendation(t *testing.T) {
	svc, store := newTestAdvisorService(testSessionConfig())
	defer store.Close()

	created, err := svc.CreateSession(context.Background(), "10.0.0.10", nil)
	require.NoError(t, err)
	require.NotNil(t, created)

	answers := []string{
		"I want to build an online store",
		"I'm a beginner",
		"just a small side project",
		"keep it cheap",
	}

	var last *dto.SendMessageResponse
	for _, answer := range answers {
		last, err = svc.SendMessage(context.Background(), created.Id, &dto.SendMessageRequest{Content: answer})
		require.NoError(t, err)
		require.NotNil(t, last)
	}

	assert.Equal(t, advisor.PhaseRecommendation, last.Phase)
	require.NotNil(t, last.Recommendation)
	assert.NotEmpty(t, last.Recommendation.Frontend.Name)
	assert.NotEmpty(t, last.Recommendation.Backend.Name)
	assert.NotEmpty(t, last.Recommendation.Database.Name)
	assert.NotEmpty(t, last.Recommendation.Hosting.Name)
}

func TestAdvisorServiceLiveSessionCount(t *testing.T) {
	svc, store := newTestAdvisorService(testSessionConfig())
	defer store.Close()

	assert.Equal(t, 0, svc.LiveSessionCount())

	created, err := svc.CreateSession(context.Background(), "10.0.0.11", nil)
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, 1, svc.LiveSessionCount())

	svc.DeleteSession(context.Background(), created.Id)
	assert.Equal(t, 0, svc.LiveSessionCount())
}

func TestAdvisorServiceConcurrentMessageAndRead(t *testing.T) {
	svc, store := newTestAdvisorService(testSessionConfig())
	defer store.Close()

	created, err := svc.CreateSession(context.Background(), "10.0.0.12", nil)
	require.NoError(t, err)
	require.NotNil(t, created)

	// Parallel chat turns and reads on one session must never share
	// conversation memory across the store boundary.
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				_, err := svc.SendMessage(context.Background(), created.Id, &dto.SendMessageRequest{
					Content: "I want to build an online store",
				})
				assert.NoError(t, err)
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				got, err := svc.GetSession(context.Background(), created.Id)
				assert.NoError(t, err)
				if got != nil {
					for _, m := range got.Messages {
						assert.NotEmpty(t, m.Role)
					}
				}
			}
		}()
	}
	wg.Wait()

	got, err := svc.GetSession(context.Background(), created.Id)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.NotEmpty(t, got.Messages)
}
