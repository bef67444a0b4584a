package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, stdin string, env map[string]string, args ...string) (int, string, string) {
	t.Helper()
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	code := run(args, strings.NewReader(stdin), out, errOut, func(key string) string {
		return env[key]
	})
	return code, out.String(), errOut.String()
}

func TestCopyCommand(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a.txt")
	dest := filepath.Join(dir, "out")
	require.NoError(t, os.WriteFile(src, []byte("payload"), 0o644))
	require.NoError(t, os.MkdirAll(dest, 0o755))

	code, _, errOut := runCLI(t, "", nil, "copy", src, dest)

	assert.Zero(t, code, errOut)
	data, err := os.ReadFile(filepath.Join(dest, "a.txt"))
	require.NoError(t, err)
	assert.Equal(t, "payload", string(data))
	_, err = os.Lstat(src)
	assert.NoError(t, err)
}

func TestMoveCommandAutoMkdir(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a.txt")
	dest := filepath.Join(dir, "new", "nested")
	require.NoError(t, os.WriteFile(src, []byte("payload"), 0o644))

	code, _, _ := runCLI(t, "", nil, "move", "-p", src, dest)

	assert.Zero(t, code)
	data, err := os.ReadFile(filepath.Join(dest, "a.txt"))
	require.NoError(t, err)
	assert.Equal(t, "payload", string(data))
	_, err = os.Lstat(src)
	assert.True(t, os.IsNotExist(err))
}

func TestMoveCommandDeclinedMkdir(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a.txt")
	dest := filepath.Join(dir, "new")
	require.NoError(t, os.WriteFile(src, []byte("payload"), 0o644))

	code, out, _ := runCLI(t, "n\n", nil, "move", src, dest)

	assert.Equal(t, 2, code)
	assert.Contains(t, out, "Operation cancelled")
	_, err := os.Lstat(src)
	assert.NoError(t, err)
}

func TestRenameCommand(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a.txt")
	require.NoError(t, os.WriteFile(src, []byte("payload"), 0o644))

	code, _, _ := runCLI(t, "", nil, "rename", src, "b.txt")

	assert.Zero(t, code)
	data, err := os.ReadFile(filepath.Join(dir, "b.txt"))
	require.NoError(t, err)
	assert.Equal(t, "payload", string(data))
}

func TestBackupCommand(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "report.txt")
	require.NoError(t, os.WriteFile(src, []byte("payload"), 0o644))

	code, _, _ := runCLI(t, "", nil, "backup", src)

	assert.Zero(t, code)
	data, err := os.ReadFile(src + ".bak")
	require.NoError(t, err)
	assert.Equal(t, "payload", string(data))
}

func TestRemoveCommandUsesTrashRoot(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a.txt")
	require.NoError(t, os.WriteFile(src, []byte("payload"), 0o644))
	dataHome := filepath.Join(dir, "xdg")

	code, _, _ := runCLI(t, "", map[string]string{"XDG_DATA_HOME": dataHome}, "remove", src)

	assert.Zero(t, code)
	_, err := os.Lstat(src)
	assert.True(t, os.IsNotExist(err))
	stored, err := os.ReadFile(filepath.Join(dataHome, "Trash", "files", "a.txt"))
	require.NoError(t, err)
	assert.Equal(t, "payload", string(stored))
}

func TestMissingSourceExitsOne(t *testing.T) {
	dir := t.TempDir()
	dest := filepath.Join(dir, "out")
	require.NoError(t, os.MkdirAll(dest, 0o755))

	code, _, errOut := runCLI(t, "", nil, "copy", filepath.Join(dir, "nope.txt"), dest)

	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "File not found")
}

func TestConflictingFlagsExitThree(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a.txt")
	require.NoError(t, os.WriteFile(src, []byte("x"), 0o644))

	code, _, errOut := runCLI(t, "", nil, "copy", "-f", "-n", src, dir)

	assert.Equal(t, 3, code)
	assert.Contains(t, errOut, "Invalid invocation")
}

func TestUnknownCommandExitsThree(t *testing.T) {
	code, _, _ := runCLI(t, "", nil, "shred", "/tmp/x")

	assert.Equal(t, 3, code)
}

func TestLocalizedErrors(t *testing.T) {
	dir := t.TempDir()
	dest := filepath.Join(dir, "out")
	require.NoError(t, os.MkdirAll(dest, 0o755))

	code, _, errOut := runCLI(t, "", map[string]string{"LC_ALL": "zh_CN.UTF-8"},
		"copy", filepath.Join(dir, "nope.txt"), dest)

	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "文件不存在")
}
