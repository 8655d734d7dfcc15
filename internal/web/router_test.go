package web

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter() *Router {
	rt := NewRouter()
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(r.PathValue("id")))
	})
	rt.Handle("list", "", "/manage/things/{$}", ok)
	rt.Handle("detail", http.MethodGet, "/things/{id}/parts/{$}", ok)
	rt.Handle("part", http.MethodGet, "/things/{id}/parts/{part}", ok)
	return rt
}

func TestRouterReverse(t *testing.T) {
	rt := newTestRouter()

	got, err := rt.Reverse("list")
	require.NoError(t, err)
	assert.Equal(t, "/manage/things/", got)

	_, err = rt.Reverse("missing")
	assert.ErrorIs(t, err, ErrNoRoute)

	_, err = rt.Reverse("detail")
	assert.Error(t, err, "wildcards need values")
}

func TestRouterURL(t *testing.T) {
	rt := newTestRouter()

	got, err := rt.URL("detail", 7)
	require.NoError(t, err)
	assert.Equal(t, "/things/7/parts/", got)

	got, err = rt.URL("part", 7, "wheel")
	require.NoError(t, err)
	assert.Equal(t, "/things/7/parts/wheel", got)

	_, err = rt.URL("list", 1)
	assert.Error(t, err, "extra values are rejected")
}

func TestRouterServes(t *testing.T) {
	rt := newTestRouter()

	rec := httptest.NewRecorder()
	rt.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/things/12/parts/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "12", rec.Body.String())

	rec = httptest.NewRecorder()
	rt.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/things/12/parts/", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)

	rec = httptest.NewRecorder()
	rt.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/manage/things/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouterDuplicateName(t *testing.T) {
	rt := newTestRouter()

	assert.Panics(t, func() {
		rt.Handle("list", "", "/other/", http.NotFoundHandler())
	})
}
