package app

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	infrafs "ftool/internal/infra/fs"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func notExists(t *testing.T, path string) bool {
	t.Helper()
	_, err := os.Lstat(path)
	return os.IsNotExist(err)
}

// scriptPrompter feeds pre-seeded answers to the resolver and records every
// path it was asked about.
type scriptPrompter struct {
	answers     []string
	asked       []string
	mkdirAnswer bool
	mkdirAsked  int
}

func (p *scriptPrompter) AskOverwrite(path string) (string, error) {
	p.asked = append(p.asked, path)
	if len(p.answers) == 0 {
		return "", io.EOF
	}
	answer := p.answers[0]
	p.answers = p.answers[1:]
	return answer, nil
}

func (p *scriptPrompter) ConfirmMkdir(path string) (bool, error) {
	p.mkdirAsked++
	return p.mkdirAnswer, nil
}

// stubTrash records sends without touching the filesystem.
type stubTrash struct {
	sent []string
	err  error
}

func (t *stubTrash) Send(path string) error {
	if t.err != nil {
		return t.err
	}
	t.sent = append(t.sent, path)
	return nil
}

// fakeFS runs real I/O through OSFS but lets a test override the device
// topology, free space, and rename behavior.
type fakeFS struct {
	infrafs.OSFS
	sameDevice    bool
	sameDeviceSet bool
	avail         uint64
	availSet      bool
	renameErr     error
}

func (f fakeFS) SameDevice(a, b string) (bool, error) {
	if f.sameDeviceSet {
		return f.sameDevice, nil
	}
	return f.OSFS.SameDevice(a, b)
}

func (f fakeFS) AvailableSpace(path string) (uint64, error) {
	if f.availSet {
		return f.avail, nil
	}
	return f.OSFS.AvailableSpace(path)
}

func (f fakeFS) Rename(oldpath, newpath string) error {
	if f.renameErr != nil {
		return f.renameErr
	}
	return f.OSFS.Rename(oldpath, newpath)
}
