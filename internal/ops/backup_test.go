package ops

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBackupDataDir(t *testing.T) {
	src := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(src, "tasks.json"), []byte(`[]`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(src, "state.json"), []byte(`{}`), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(src, "archive"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(src, "archive", "old.json"), []byte(`{}`), 0o644))

	archive := filepath.Join(t.TempDir(), "backups", "data.tar.gz")
	require.NoError(t, BackupDataDir(src, archive))

	names, err := ListArchive(archive)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"tasks.json", "state.json", "archive", "archive/old.json"}, names)
}

func TestBackupDataDir_Errors(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out.tar.gz")

	assert.Error(t, BackupDataDir("", out))
	assert.Error(t, BackupDataDir(filepath.Join(dir, "missing"), out))

	file := filepath.Join(dir, "plain.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))
	assert.Error(t, BackupDataDir(file, out))
}

func TestListArchive_BadInput(t *testing.T) {
	dir := t.TempDir()

	_, err := ListArchive(filepath.Join(dir, "missing.tar.gz"))
	assert.Error(t, err)

	notGz := filepath.Join(dir, "not.tar.gz")
	require.NoError(t, os.WriteFile(notGz, []byte("plain text"), 0o644))
	_, err = ListArchive(notGz)
	assert.Error(t, err)
}
