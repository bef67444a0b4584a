package trash

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendMovesFileIntoStore(t *testing.T) {
	dir := t.TempDir()
	root := filepath.Join(dir, "Trash")
	src := filepath.Join(dir, "a.txt")
	require.NoError(t, os.WriteFile(src, []byte("payload"), 0o644))
	store := New(root)

	require.NoError(t, store.Send(src))

	_, err := os.Lstat(src)
	assert.True(t, os.IsNotExist(err))

	stored, err := os.ReadFile(filepath.Join(root, "files", "a.txt"))
	require.NoError(t, err)
	assert.Equal(t, "payload", string(stored))

	info, err := os.ReadFile(filepath.Join(root, "info", "a.txt.trashinfo"))
	require.NoError(t, err)
	assert.Contains(t, string(info), "[Trash Info]")
	assert.Contains(t, string(info), "Path="+src)
	assert.Contains(t, string(info), "DeletionDate=")
}

func TestSendUniquifiesCollidingNames(t *testing.T) {
	dir := t.TempDir()
	root := filepath.Join(dir, "Trash")
	store := New(root)

	first := filepath.Join(dir, "a.txt")
	require.NoError(t, os.WriteFile(first, []byte("first"), 0o644))
	require.NoError(t, store.Send(first))

	second := filepath.Join(dir, "a.txt")
	require.NoError(t, os.WriteFile(second, []byte("second"), 0o644))
	require.NoError(t, store.Send(second))

	stored, err := os.ReadFile(filepath.Join(root, "files", "a.txt"))
	require.NoError(t, err)
	assert.Equal(t, "first", string(stored))

	stored, err = os.ReadFile(filepath.Join(root, "files", "a.txt.2"))
	require.NoError(t, err)
	assert.Equal(t, "second", string(stored))
}

func TestSendDirectory(t *testing.T) {
	dir := t.TempDir()
	root := filepath.Join(dir, "Trash")
	tree := filepath.Join(dir, "tree")
	require.NoError(t, os.MkdirAll(filepath.Join(tree, "sub"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(tree, "sub", "c.txt"), []byte("c"), 0o644))
	store := New(root)

	require.NoError(t, store.Send(tree))

	_, err := os.Lstat(tree)
	assert.True(t, os.IsNotExist(err))
	stored, err := os.ReadFile(filepath.Join(root, "files", "tree", "sub", "c.txt"))
	require.NoError(t, err)
	assert.Equal(t, "c", string(stored))
}

func TestCopyAllCopiesTreeVerified(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "tree")
	dst := filepath.Join(dir, "stored")
	require.NoError(t, os.MkdirAll(filepath.Join(src, "sub"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(src, "a.txt"), []byte("aaaa"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(src, "sub", "c.txt"), []byte("cc"), 0o644))

	require.NoError(t, copyAll(src, dst))

	stored, err := os.ReadFile(filepath.Join(dst, "a.txt"))
	require.NoError(t, err)
	assert.Equal(t, "aaaa", string(stored))
	stored, err = os.ReadFile(filepath.Join(dst, "sub", "c.txt"))
	require.NoError(t, err)
	assert.Equal(t, "cc", string(stored))
}

func TestCopyFileDetectsShortStore(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a.txt")
	require.NoError(t, os.WriteFile(src, []byte("payload"), 0o644))

	// /dev/null swallows writes, so the stored size cannot match.
	err := copyFile(src, os.DevNull, 0o644)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "size mismatch")
}

func TestDefaultRoot(t *testing.T) {
	root, err := DefaultRoot(func(key string) string {
		if key == "XDG_DATA_HOME" {
			return "/custom/data"
		}
		return ""
	})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/custom/data", "Trash"), root)

	home, err := os.UserHomeDir()
	require.NoError(t, err)
	root, err = DefaultRoot(func(string) string { return "" })
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".local", "share", "Trash"), root)
}
