package userstore

import (
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Arslan1Ali/Daily-Reminder/internal/model"
)

func TestFileRepo_CRUD(t *testing.T) {
	dir := t.TempDir()
	repo, err := NewFileRepo(dir)
	require.NoError(t, err)

	_, err = repo.Get("user:missing")
	assert.ErrorIs(t, err, ErrNotFound)

	rec := model.UserRecord{
		Subscription: model.Subscription{Endpoint: "https://push.example/1"},
		Tasks:        []model.TaskSnapshot{{Title: "A", DueTime: "08:00"}},
	}
	key := rec.Subscription.UserKey()
	require.NoError(t, repo.Set(key, rec))

	got, err := repo.Get(key)
	require.NoError(t, err)
	assert.Equal(t, rec, got)

	// Keys come back sorted.
	require.NoError(t, repo.Set("user:aaa", model.UserRecord{}))
	keys, err := repo.Keys()
	require.NoError(t, err)
	require.Len(t, keys, 2)
	assert.True(t, sort.StringsAreSorted(keys))
	assert.ElementsMatch(t, []string{"user:aaa", key}, keys)

	// Re-set replaces the whole record.
	rec.Tasks = nil
	require.NoError(t, repo.Set(key, rec))
	got, err = repo.Get(key)
	require.NoError(t, err)
	assert.Empty(t, got.Tasks)

	// Survives a reopen.
	reopened, err := NewFileRepo(dir)
	require.NoError(t, err)
	got, err = reopened.Get(key)
	require.NoError(t, err)
	assert.Equal(t, "https://push.example/1", got.Subscription.Endpoint)

	require.NoError(t, reopened.Delete(key))
	assert.ErrorIs(t, reopened.Delete(key), ErrNotFound)
}

func TestSync(t *testing.T) {
	repo, err := NewFileRepo(t.TempDir())
	require.NoError(t, err)
	h := NewHandler(repo)

	body := `{
		"subscription": {"endpoint": "https://push.example/1", "keys": {"p256dh": "p", "auth": "a"}},
		"tasks": [{"title": "A", "dueTime": "08:00", "completedToday": false}]
	}`
	w := httptest.NewRecorder()
	h.Sync(w, httptest.NewRequest(http.MethodPost, "/api/sync", strings.NewReader(body)))
	require.Equal(t, 200, w.Code)

	key := model.Subscription{Endpoint: "https://push.example/1"}.UserKey()
	rec, err := repo.Get(key)
	require.NoError(t, err)
	require.Len(t, rec.Tasks, 1)
	assert.Equal(t, "A", rec.Tasks[0].Title)

	// Second sync from the same endpoint replaces the snapshot.
	w = httptest.NewRecorder()
	h.Sync(w, httptest.NewRequest(http.MethodPost, "/api/sync", strings.NewReader(
		`{"subscription": {"endpoint": "https://push.example/1"}, "tasks": []}`)))
	require.Equal(t, 200, w.Code)
	rec, err = repo.Get(key)
	require.NoError(t, err)
	assert.Empty(t, rec.Tasks)

	keys, err := repo.Keys()
	require.NoError(t, err)
	assert.Len(t, keys, 1)
}

func TestSync_Rejects(t *testing.T) {
	h := NewHandler(mustRepo(t))

	for _, body := range []string{`{}`, `{"subscription":{"endpoint":""}}`, `garbage`} {
		w := httptest.NewRecorder()
		h.Sync(w, httptest.NewRequest(http.MethodPost, "/api/sync", strings.NewReader(body)))
		assert.Equal(t, 400, w.Code, "body %q", body)
	}

	w := httptest.NewRecorder()
	h.Sync(w, httptest.NewRequest(http.MethodGet, "/api/sync", nil))
	assert.Equal(t, 405, w.Code)
}

func mustRepo(t *testing.T) *FileRepo {
	t.Helper()
	repo, err := NewFileRepo(t.TempDir())
	require.NoError(t, err)
	return repo
}
