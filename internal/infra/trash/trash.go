// Package trash implements the recoverable delete store following the
// freedesktop.org trash layout: entries are moved under files/ and a
// matching .trashinfo record is written under info/ so they can be
// restored.
package trash

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sys/unix"
)

type Store struct {
	root string
}

func New(root string) *Store {
	return &Store{root: root}
}

// DefaultRoot resolves the user trash directory: $XDG_DATA_HOME/Trash,
// falling back to ~/.local/share/Trash.
func DefaultRoot(getenv func(string) string) (string, error) {
	if dataHome := getenv("XDG_DATA_HOME"); dataHome != "" {
		return filepath.Join(dataHome, "Trash"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "share", "Trash"), nil
}

// Send moves path into the store. The stored name is uniquified so nothing
// already trashed is ever clobbered. On cross-device stores the entry is
// copied and the source removed only after every stored file verified.
func (s *Store) Send(path string) error {
	filesDir := filepath.Join(s.root, "files")
	infoDir := filepath.Join(s.root, "info")
	if err := os.MkdirAll(filesDir, 0o700); err != nil {
		return err
	}
	if err := os.MkdirAll(infoDir, 0o700); err != nil {
		return err
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	name, err := s.claimName(infoDir, filepath.Base(path), abs)
	if err != nil {
		return err
	}
	dest := filepath.Join(filesDir, name)

	if err := os.Rename(path, dest); err != nil {
		if !errors.Is(err, unix.EXDEV) {
			os.Remove(filepath.Join(infoDir, name+".trashinfo"))
			return err
		}
		if err := copyAll(path, dest); err != nil {
			os.Remove(filepath.Join(infoDir, name+".trashinfo"))
			os.RemoveAll(dest)
			return err
		}
		return os.RemoveAll(path)
	}
	return nil
}

// claimName reserves a unique stored name by exclusively creating its
// .trashinfo record. The record doubles as the restore metadata.
func (s *Store) claimName(infoDir, base, originalPath string) (string, error) {
	name := base
	for n := 2; ; n++ {
		infoPath := filepath.Join(infoDir, name+".trashinfo")
		f, err := os.OpenFile(infoPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
		if err == nil {
			_, werr := fmt.Fprintf(f, "[Trash Info]\nPath=%s\nDeletionDate=%s\n",
				originalPath, time.Now().Format("2006-01-02T15:04:05"))
			if cerr := f.Close(); werr == nil {
				werr = cerr
			}
			if werr != nil {
				os.Remove(infoPath)
				return "", werr
			}
			return name, nil
		}
		if !errors.Is(err, os.ErrExist) {
			return "", err
		}
		name = fmt.Sprintf("%s.%d", base, n)
	}
}

func copyAll(src, dst string) error {
	info, err := os.Lstat(src)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return copyFile(src, dst, info.Mode().Perm())
	}
	return filepath.WalkDir(src, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		entryInfo, err := d.Info()
		if err != nil {
			return err
		}
		return copyFile(path, target, entryInfo.Mode().Perm())
	})
}

// copyFile copies one file and verifies the stored size before reporting
// success; the caller removes the source only after every file verified.
func copyFile(src, dst string, perm fs.FileMode) error {
	info, err := os.Lstat(src)
	if err != nil {
		return err
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}

	written, err := os.Lstat(dst)
	if err != nil {
		return err
	}
	if written.Size() != info.Size() {
		return fmt.Errorf("size mismatch for %s: stored %d of %d bytes", dst, written.Size(), info.Size())
	}
	return nil
}
