package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "ftool/internal/errors"
	infrafs "ftool/internal/infra/fs"
)

func TestValidateSourceMissing(t *testing.T) {
	dir := t.TempDir()
	v := Validator{FS: infrafs.OSFS{}}

	err := v.Validate(filepath.Join(dir, "nope.txt"), dir)

	assert.Equal(t, appErrors.SourceNotFound, appErrors.KindOf(err))
}

func TestValidateTargetIsFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a.txt")
	dst := filepath.Join(dir, "target")
	writeFile(t, src, "x")
	writeFile(t, dst, "not a directory")
	v := Validator{FS: infrafs.OSFS{}}

	err := v.Validate(src, dst)

	assert.Equal(t, appErrors.TargetNotDirectory, appErrors.KindOf(err))
}

func TestValidateSameFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a.txt")
	writeFile(t, src, "x")
	v := Validator{FS: infrafs.OSFS{}}

	err := v.Validate(src, dir)

	assert.Equal(t, appErrors.SameFile, appErrors.KindOf(err))
}

func TestValidateDirIntoItself(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "tree")
	inner := filepath.Join(src, "sub")
	require.NoError(t, os.MkdirAll(inner, 0o755))
	v := Validator{FS: infrafs.OSFS{}}

	err := v.Validate(src, inner)

	assert.Equal(t, appErrors.RecursiveConflict, appErrors.KindOf(err))
}

func TestValidateOK(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a.txt")
	dst := filepath.Join(dir, "out")
	writeFile(t, src, "x")
	require.NoError(t, os.MkdirAll(dst, 0o755))
	v := Validator{FS: infrafs.OSFS{}}

	assert.NoError(t, v.Validate(src, dst))
}

func TestValidateRename(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a.txt")
	writeFile(t, src, "x")
	v := Validator{FS: infrafs.OSFS{}}

	tests := []struct {
		name    string
		newName string
		kind    appErrors.Kind
	}{
		{"empty", "", appErrors.InvalidRequest},
		{"slash", "sub/b.txt", appErrors.InvalidRequest},
		{"backslash", `sub\b.txt`, appErrors.InvalidRequest},
		{"same name", "a.txt", appErrors.SameFile},
		{"valid", "b.txt", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateRename(src, tt.newName)
			if tt.kind == "" {
				assert.NoError(t, err)
			} else {
				assert.Equal(t, tt.kind, appErrors.KindOf(err))
			}
		})
	}
}

func TestCheckDestination(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "file")
	writeFile(t, file, "x")
	v := Validator{FS: infrafs.OSFS{}}

	assert.NoError(t, v.CheckDestination(dir))
	assert.Equal(t, appErrors.MissingTargetDirectory,
		appErrors.KindOf(v.CheckDestination(filepath.Join(dir, "missing"))))
	assert.Equal(t, appErrors.TargetNotDirectory,
		appErrors.KindOf(v.CheckDestination(file)))
}
