package task

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Arslan1Ali/Daily-Reminder/internal/model"
)

func testRepo(t *testing.T, name string, newRepo func(t *testing.T) Repo) {
	t.Run(name+"/upsert_get_delete", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		tk := model.NewTask("water plants", "09:00", model.Escalation{IntervalMinutes: 5, MaxSteps: 3})
		created, err := repo.Upsert(ctx, tk)
		require.NoError(t, err)
		assert.Equal(t, tk.ID, created.ID)

		got, err := repo.Get(ctx, tk.ID)
		require.NoError(t, err)
		assert.Equal(t, "water plants", got.Title)
		assert.Equal(t, []string{}, got.CompletedInstances)

		got.Title = "water the plants"
		_, err = repo.Upsert(ctx, got)
		require.NoError(t, err)
		got, err = repo.Get(ctx, tk.ID)
		require.NoError(t, err)
		assert.Equal(t, "water the plants", got.Title)

		require.NoError(t, repo.Delete(ctx, tk.ID))
		_, err = repo.Get(ctx, tk.ID)
		assert.ErrorIs(t, err, ErrNotFound)
		assert.ErrorIs(t, repo.Delete(ctx, tk.ID), ErrNotFound)
	})

	t.Run(name+"/list_ordered_by_due_time", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		for _, seed := range []struct{ title, due string }{
			{"evening", "21:00"},
			{"morning", "07:30"},
			{"noon", "12:00"},
		} {
			_, err := repo.Upsert(ctx, model.NewTask(seed.title, seed.due,
				model.Escalation{IntervalMinutes: 5, MaxSteps: 3}))
			require.NoError(t, err)
		}

		all, err := repo.GetAll(ctx)
		require.NoError(t, err)
		require.Len(t, all, 3)
		assert.Equal(t, "morning", all[0].Title)
		assert.Equal(t, "noon", all[1].Title)
		assert.Equal(t, "evening", all[2].Title)
	})

	t.Run(name+"/assigns_id_when_missing", func(t *testing.T) {
		repo := newRepo(t)

		created, err := repo.Upsert(context.Background(), model.Task{
			Title:   "no id",
			DueTime: "10:00",
			Escalation: model.Escalation{
				IntervalMinutes: 5,
				MaxSteps:        3,
			},
		})
		require.NoError(t, err)
		assert.NotEmpty(t, created.ID)
	})
}

func TestMemoryRepo(t *testing.T) {
	testRepo(t, "memory", func(t *testing.T) Repo {
		return NewMemoryRepo()
	})
}

func TestFileRepo(t *testing.T) {
	testRepo(t, "file", func(t *testing.T) Repo {
		repo, err := NewFileRepo(t.TempDir())
		require.NoError(t, err)
		return repo
	})
}

func TestSQLiteRepo(t *testing.T) {
	testRepo(t, "sqlite", func(t *testing.T) Repo {
		repo, err := NewSQLiteRepo(t.TempDir())
		require.NoError(t, err)
		t.Cleanup(func() { _ = repo.Close() })
		return repo
	})
}

func TestSQLiteRepo_PersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	repo, err := NewSQLiteRepo(dir)
	require.NoError(t, err)

	tk := model.NewTask("water plants", "09:00", model.Escalation{IntervalMinutes: 5, MaxSteps: 3})
	tk.ToggleCompleted("2026-03-10")
	_, err = repo.Upsert(ctx, tk)
	require.NoError(t, err)
	require.NoError(t, repo.Close())

	reopened, err := NewSQLiteRepo(dir)
	require.NoError(t, err)
	defer reopened.Close()
	got, err := reopened.Get(ctx, tk.ID)
	require.NoError(t, err)
	assert.Equal(t, "water plants", got.Title)
	assert.True(t, got.CompletedOn("2026-03-10"))
}

func TestFileRepo_PersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	repo, err := NewFileRepo(dir)
	require.NoError(t, err)

	tk := model.NewTask("water plants", "09:00", model.Escalation{IntervalMinutes: 5, MaxSteps: 3})
	tk.ToggleCompleted("2026-03-10")
	_, err = repo.Upsert(ctx, tk)
	require.NoError(t, err)

	reopened, err := NewFileRepo(dir)
	require.NoError(t, err)
	got, err := reopened.Get(ctx, tk.ID)
	require.NoError(t, err)
	assert.Equal(t, "water plants", got.Title)
	assert.True(t, got.CompletedOn("2026-03-10"))
}
