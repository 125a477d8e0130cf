package member

import (
	"context"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nwatch/patrol-console/internal/app"
	"github.com/nwatch/patrol-console/internal/config"
	"github.com/nwatch/patrol-console/internal/gateway"
	"github.com/nwatch/patrol-console/internal/session"
)

func newMemberFixture(t *testing.T, backendURL string) (*Service, *app.App) {
	t.Helper()

	cfg := &config.Config{
		BackendBaseURL: backendURL,
		AuthScheme:     config.SchemeToken,
		RequestTimeout: 2 * time.Second,
	}
	logger := log.New(io.Discard, "", 0)
	a := app.NewApp(cfg, logger)
	gw := gateway.NewClient(cfg.BackendBaseURL, cfg.AuthScheme, cfg.RequestTimeout, a.Session, logger)
	return NewService(a, gw), a
}

func startDemo(a *app.App) {
	a.Session.Set(session.DemoToken, session.User{FirstName: "Thabo", Role: "member"})
}

func TestDemoPostsAreLocal(t *testing.T) {
	var hits int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&hits, 1)
	}))
	defer srv.Close()

	svc, a := newMemberFixture(t, srv.URL)
	startDemo(a)

	posts, err := svc.Posts(context.Background())
	require.NoError(t, err)
	require.Len(t, posts, 2)

	post, err := svc.CreatePost(context.Background(), CreatePostRequest{Title: "Street light out", Content: "Lamp at the park entrance is dark."})
	require.NoError(t, err)
	assert.Equal(t, "Thabo", post.Author)
	assert.NotEmpty(t, post.ID)

	// New posts land on top.
	posts, err = svc.Posts(context.Background())
	require.NoError(t, err)
	require.Len(t, posts, 3)
	assert.Equal(t, "Street light out", posts[0].Title)

	assert.Equal(t, int64(0), atomic.LoadInt64(&hits))
}

func TestDemoPanicNeedsNoBackend(t *testing.T) {
	var hits int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&hits, 1)
	}))
	defer srv.Close()

	svc, a := newMemberFixture(t, srv.URL)
	startDemo(a)

	require.NoError(t, svc.Panic(context.Background(), PanicRequest{Message: "help"}))
	assert.Equal(t, int64(0), atomic.LoadInt64(&hits))
}

func TestDemoSubscriptionLifecycle(t *testing.T) {
	svc, a := newMemberFixture(t, "http://localhost:1")
	startDemo(a)

	sub, err := svc.Subscription(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Neighborhood Watch Plus", sub.Plan)
	assert.Equal(t, "active", sub.Status)

	require.NoError(t, svc.CancelSubscription(context.Background()))

	sub, err = svc.Subscription(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "cancelled", sub.Status)
}

func TestDemoStats(t *testing.T) {
	svc, a := newMemberFixture(t, "http://localhost:1")
	startDemo(a)

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 6, stats.PatrolsToday)
	assert.NotEmpty(t, stats.LastPatrol)
}

func TestMemberLoginStoresSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/login/", r.URL.Path)
		w.Write([]byte(`{"token":"member-token","user":{"id":"42","name":"Anna Botha"}}`))
	}))
	defer srv.Close()

	svc, a := newMemberFixture(t, srv.URL)

	user, err := svc.Login(context.Background(), "anna@example.com", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, "Anna Botha", user.Name)

	token, ok := a.Session.Token()
	assert.True(t, ok)
	assert.Equal(t, "member-token", token)

	stored, ok := a.Session.User()
	require.True(t, ok)
	assert.Equal(t, "member", stored.Role)
}

func TestBackendPosts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/posts/", r.URL.Path)
		w.Write([]byte(`{"posts":[{"id":"p-1","author":"Maria Fourie","title":"Meeting","content":"Watch meeting on Thursday.","created_at":"2025-11-01T10:00:00Z"}]}`))
	}))
	defer srv.Close()

	svc, a := newMemberFixture(t, srv.URL)
	a.Session.Set("member-token", session.User{Role: "member"})

	posts, err := svc.Posts(context.Background())
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "Maria Fourie", posts[0].Author)
}
