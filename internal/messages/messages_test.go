package messages

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueue_AddAndDrain(t *testing.T) {
	q := &Queue{}
	q.Error("could not delete")
	q.Success("cloned")

	assert.Equal(t, 2, q.Len())

	got := q.Drain()
	require.Len(t, got, 2)
	assert.Equal(t, Message{Level: LevelError, Text: "could not delete"}, got[0])
	assert.Equal(t, Message{Level: LevelSuccess, Text: "cloned"}, got[1])
	assert.Equal(t, 0, q.Len())
	assert.Empty(t, q.Drain())
}

func TestQueue_SanitizesMarkup(t *testing.T) {
	q := &Queue{}
	q.Error("<script>alert(1)</script>Smoke tests")

	got := q.Drain()
	require.Len(t, got, 1)
	assert.NotContains(t, got[0].Text, "<script>")
	assert.Contains(t, got[0].Text, "Smoke tests")
}

func TestFromContext(t *testing.T) {
	detached := FromContext(context.Background())
	require.NotNil(t, detached)

	q := &Queue{}
	ctx := NewContext(context.Background(), q)
	assert.Same(t, q, FromContext(ctx))
}

func TestStore_QueuePersistsPerSession(t *testing.T) {
	s := NewStore(time.Hour)

	s.Queue("a").Info("hello")
	assert.Equal(t, 1, s.Queue("a").Len())
	assert.Equal(t, 0, s.Queue("b").Len())
	assert.Equal(t, 2, s.Len())
}

func TestStore_Reap(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	s := NewStore(10 * time.Minute)
	s.now = func() time.Time { return now }

	s.Queue("old")
	now = now.Add(5 * time.Minute)
	s.Queue("fresh")
	now = now.Add(6 * time.Minute)

	assert.Equal(t, 1, s.Reap())
	assert.Equal(t, 1, s.Len())
}

func TestStore_RunStopsOnCancel(t *testing.T) {
	s := NewStore(time.Minute)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- s.Run(ctx, time.Millisecond) }()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestMiddleware_IssuesAndReusesSession(t *testing.T) {
	store := NewStore(time.Hour)
	handler := Middleware(store)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		FromContext(r.Context()).Info("visited")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, CookieName, cookies[0].Name)
	_, err := uuid.Parse(cookies[0].Value)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Empty(t, rec.Result().Cookies(), "existing session should not get a new cookie")
	assert.Equal(t, 2, store.Queue(cookies[0].Value).Len())
}

func TestMiddleware_NoSessionUntilMessageQueued(t *testing.T) {
	store := NewStore(time.Hour)
	handler := Middleware(store)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))

	for range 100 {
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	}
	assert.Equal(t, 0, store.Len())

	notify := Middleware(store)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := FromContext(r.Context())
		q.Info("first")
		q.Info("second")
	}))
	rec := httptest.NewRecorder()
	notify.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, 1, store.Len())
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	msgs := store.Queue(cookies[0].Value).Drain()
	assert.Equal(t, []string{"first", "second"}, []string{msgs[0].Text, msgs[1].Text})
}

func TestMiddleware_UnknownCookieWaitsForMessage(t *testing.T) {
	store := NewStore(time.Hour)
	id := uuid.NewString()
	handler := Middleware(store)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: id})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Empty(t, rec.Result().Cookies())
	assert.Equal(t, 0, store.Len())
}

func TestStore_BindKeepsEarlierMessages(t *testing.T) {
	s := NewStore(time.Hour)
	s.Queue("a").Info("earlier")

	q := s.pending("a")
	q.Info("later")

	assert.Equal(t, 1, s.Len())
	msgs := s.Queue("a").Drain()
	require.Len(t, msgs, 2)
	assert.Equal(t, "earlier", msgs[0].Text)
	assert.Equal(t, "later", msgs[1].Text)
}

func TestStore_RunRejectsNonPositiveInterval(t *testing.T) {
	s := NewStore(time.Minute)

	assert.Error(t, s.Run(context.Background(), 0))
	assert.Error(t, s.Run(context.Background(), -time.Minute))
}

func TestMiddleware_ReplacesInvalidCookie(t *testing.T) {
	store := NewStore(time.Hour)
	handler := Middleware(store)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: "not-a-uuid"})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.NotEqual(t, "not-a-uuid", cookies[0].Value)
}
