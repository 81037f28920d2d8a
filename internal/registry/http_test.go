package registry

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Arslan1Ali/Daily-Reminder/internal/model"
	"github.com/Arslan1Ali/Daily-Reminder/internal/push"
)

// fakeSender fails per-endpoint on demand.
type fakeSender struct {
	sent []string
	fail map[string]error
}

func (f *fakeSender) Send(ctx context.Context, sub model.Subscription, payload model.PushPayload) error {
	if err, ok := f.fail[sub.Endpoint]; ok {
		return err
	}
	f.sent = append(f.sent, sub.Endpoint)
	return nil
}

func newRepo(t *testing.T) *FileRepo {
	t.Helper()
	repo, err := NewFileRepo(t.TempDir())
	require.NoError(t, err)
	return repo
}

func sub(endpoint string) model.Subscription {
	return model.Subscription{
		Endpoint: endpoint,
		Keys:     model.SubscriptionKeys{P256dh: "p", Auth: "a"},
	}
}

func TestSubscribe(t *testing.T) {
	repo := newRepo(t)
	h := NewHandler(repo, nil, nil)

	body := `{"subscription":{"endpoint":"https://push.example/1","keys":{"p256dh":"p","auth":"a"}}}`
	w := httptest.NewRecorder()
	h.Subscribe(w, httptest.NewRequest(http.MethodPost, "/api/subscribe", strings.NewReader(body)))
	require.Equal(t, 201, w.Code)

	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.Equal(t, true, out["ok"])

	subs, err := repo.List()
	require.NoError(t, err)
	require.Len(t, subs, 1)

	// Same endpoint again: still 201, still one stored record.
	w = httptest.NewRecorder()
	h.Subscribe(w, httptest.NewRequest(http.MethodPost, "/api/subscribe", strings.NewReader(body)))
	require.Equal(t, 201, w.Code)
	subs, err = repo.List()
	require.NoError(t, err)
	assert.Len(t, subs, 1)
}

func TestSubscribe_MissingSubscription(t *testing.T) {
	h := NewHandler(newRepo(t), nil, nil)

	for _, body := range []string{`{}`, `{"subscription":{"endpoint":""}}`, `not json`} {
		w := httptest.NewRecorder()
		h.Subscribe(w, httptest.NewRequest(http.MethodPost, "/api/subscribe", strings.NewReader(body)))
		assert.Equal(t, 400, w.Code, "body %q", body)
	}
}

func TestPushAll_ContinuesPastFailuresAndPurgesGone(t *testing.T) {
	repo := newRepo(t)
	for _, ep := range []string{"https://push.example/1", "https://push.example/2", "https://push.example/3"} {
		_, err := repo.Add(sub(ep))
		require.NoError(t, err)
	}

	sender := &fakeSender{fail: map[string]error{
		"https://push.example/1": errors.New("transport error"),
		"https://push.example/2": push.ErrSubscriptionGone,
	}}
	h := NewHandler(repo, sender, nil)

	w := httptest.NewRecorder()
	h.PushAll(w, httptest.NewRequest(http.MethodPost, "/api/push-all",
		strings.NewReader(`{"title":"Reminder","body":"You have a task due."}`)))
	require.Equal(t, 200, w.Code)

	var out struct {
		Results []struct {
			Endpoint string `json:"endpoint"`
			OK       bool   `json:"ok"`
			Error    string `json:"error"`
		} `json:"results"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	require.Len(t, out.Results, 3)
	assert.False(t, out.Results[0].OK)
	assert.NotEmpty(t, out.Results[0].Error)
	assert.False(t, out.Results[1].OK)
	assert.True(t, out.Results[2].OK)

	// The transport failure stays; the gone subscription is purged.
	subs, err := repo.List()
	require.NoError(t, err)
	require.Len(t, subs, 2)
	assert.Equal(t, "https://push.example/1", subs[0].Endpoint)
	assert.Equal(t, "https://push.example/3", subs[1].Endpoint)
}

func TestPushAll_NoSenderConfigured(t *testing.T) {
	h := NewHandler(newRepo(t), nil, nil)

	w := httptest.NewRecorder()
	h.PushAll(w, httptest.NewRequest(http.MethodPost, "/api/push-all", strings.NewReader(`{}`)))
	assert.Equal(t, 503, w.Code)
}

func TestFileRepo_PersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()

	repo, err := NewFileRepo(dir)
	require.NoError(t, err)
	_, err = repo.Add(sub("https://push.example/1"))
	require.NoError(t, err)

	reopened, err := NewFileRepo(dir)
	require.NoError(t, err)
	subs, err := reopened.List()
	require.NoError(t, err)
	require.Len(t, subs, 1)
	assert.Equal(t, "https://push.example/1", subs[0].Endpoint)

	assert.ErrorIs(t, reopened.Remove("https://push.example/zzz"), ErrNotFound)
	require.NoError(t, reopened.Remove("https://push.example/1"))
	subs, err = reopened.List()
	require.NoError(t, err)
	assert.Empty(t, subs)
}
