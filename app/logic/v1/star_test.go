package v1

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resourcehub/resourcehub/app/core"
	"github.com/resourcehub/resourcehub/pkg/catalog"
	"github.com/resourcehub/resourcehub/pkg/i18n"
)

func newGitHubServer(t *testing.T, calls *atomic.Int32) *httptest.Server {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":{"repository":{"stargazerCount":7,"stargazers":{"edges":[
			{"starredAt":"2024-03-01T10:00:00Z"},
			{"starredAt":"2024-03-05T10:00:00Z"}]}}}}`))
	}))
	t.Cleanup(server.Close)
	return server
}

func withGitHub(endpoint, token string) func(cfg *core.CoreConfig) {
	return func(cfg *core.CoreConfig) {
		cfg.GitHub.Endpoint = endpoint
		cfg.GitHub.Token = token
	}
}

func TestStarWidget(t *testing.T) {
	l := NewStarLogic(context.Background(), newTestCore(t))

	w, err := l.Widget("spf13/cobra")
	require.NoError(t, err)
	assert.Equal(t, 2, w.StarCount)
	assert.Len(t, w.History, 2)

	w, err = l.Widget("unknown/repo")
	require.NoError(t, err)
	assert.Equal(t, 0, w.StarCount)
	assert.NotNil(t, w.History)
	assert.Empty(t, w.History)

	_, err = l.Widget("not-a-repo")
	assert.Error(t, err)
}

func TestStarLiveCached(t *testing.T) {
	var calls atomic.Int32
	server := newGitHubServer(t, &calls)
	c := newTestCore(t, withGitHub(server.URL, "secret"))
	l := NewStarLogic(context.Background(), c)

	w := l.Live("gin-gonic/gin")
	assert.Empty(t, w.Error)
	assert.Equal(t, 7, w.StarCount)
	assert.Equal(t, "2024-03-05", w.History[1].Date)
	assert.Equal(t, 2, w.History[1].Stars)

	w = l.Live("gin-gonic/gin")
	assert.Equal(t, 7, w.StarCount)
	assert.EqualValues(t, 1, calls.Load())

	stored, err := c.Store().StarDataStore().Get(context.Background(), "gin-gonic/gin")
	require.NoError(t, err)
	assert.Equal(t, 7, stored.StarCount)
}

func TestStarLiveCallerCanceled(t *testing.T) {
	var calls atomic.Int32
	server := newGitHubServer(t, &calls)
	c := newTestCore(t, withGitHub(server.URL, "secret"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	w := NewStarLogic(ctx, c).Live("labstack/echo")
	assert.Empty(t, w.Error)
	assert.Equal(t, 7, w.StarCount)
	assert.EqualValues(t, 1, calls.Load())
}

func TestStarLiveErrors(t *testing.T) {
	c := newTestCore(t, withGitHub("http://127.0.0.1:0", ""))
	l := NewStarLogic(context.Background(), c)

	w := l.Live("gin-gonic/gin")
	assert.Equal(t, i18n.ERROR_STAR_MISSING_TOKEN, w.Error)
	assert.NotNil(t, w.History)

	w = l.Live("bad")
	assert.Equal(t, i18n.ERROR_STAR_INVALID_REPO, w.Error)

	failing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer failing.Close()

	l = NewStarLogic(context.Background(), newTestCore(t, withGitHub(failing.URL, "secret")))
	w = l.Live("gin-gonic/gin")
	assert.Equal(t, i18n.ERROR_STAR_FETCH_FAILED, w.Error)
}

func TestStarSyncAll(t *testing.T) {
	var calls atomic.Int32
	server := newGitHubServer(t, &calls)
	c := newTestCore(t, withGitHub(server.URL, "secret"))

	res, err := NewStarLogic(context.Background(), c).SyncAll()
	require.NoError(t, err)
	assert.Equal(t, &SyncResult{Total: 2, Success: 2}, res)
	assert.EqualValues(t, 2, calls.Load())

	doc, err := catalog.LoadStarData(c.Cfg().Catalog.StarDataPath)
	require.NoError(t, err)
	require.NotNil(t, doc.Find("gin-gonic/gin"))
	assert.Equal(t, 7, doc.Find("spf13/cobra").StarCount)
}

func TestStarSyncAllFailures(t *testing.T) {
	c := newTestCore(t, withGitHub("http://127.0.0.1:0", ""))

	res, err := NewStarLogic(context.Background(), c).SyncAll()
	require.NoError(t, err)
	assert.Equal(t, &SyncResult{Total: 2, Failed: 2}, res)
}
