package app

import (
	"path/filepath"
	"strings"

	appErrors "ftool/internal/errors"
)

// Validator performs the pure path checks that gate every entry. It never
// touches the filesystem beyond metadata queries.
type Validator struct {
	FS FileSystem
}

// Validate checks one source against a destination directory. destDir may
// be empty for verbs without a directory destination (remove, backup), in
// which case only source existence is checked.
func (v Validator) Validate(source, destDir string) error {
	info, err := v.FS.Lstat(source)
	if err != nil {
		return appErrors.Wrap(appErrors.SourceNotFound, "stat", source, err)
	}

	if destDir == "" {
		return nil
	}

	if destInfo, err := v.FS.Lstat(destDir); err == nil && !destInfo.IsDir() {
		return appErrors.New(appErrors.TargetNotDirectory, "validate", destDir)
	}

	finalDest := filepath.Join(destDir, filepath.Base(source))
	if filepath.Clean(source) == filepath.Clean(finalDest) {
		return appErrors.New(appErrors.SameFile, "validate", source)
	}

	if info.IsDir() && isAncestor(source, finalDest) {
		return appErrors.New(appErrors.RecursiveConflict, "validate", destDir)
	}

	return nil
}

// ValidateRename checks a rename within the source's own directory. The new
// name must be a bare file name.
func (v Validator) ValidateRename(source, newName string) error {
	newName = strings.TrimSpace(newName)
	if newName == "" || strings.ContainsAny(newName, `/\`) {
		return appErrors.New(appErrors.InvalidRequest, "rename", newName)
	}

	if _, err := v.FS.Lstat(source); err != nil {
		return appErrors.Wrap(appErrors.SourceNotFound, "stat", source, err)
	}

	target := filepath.Join(filepath.Dir(source), newName)
	if filepath.Clean(source) == filepath.Clean(target) {
		return appErrors.New(appErrors.SameFile, "rename", source)
	}

	return nil
}

// CheckDestination verifies the batch destination once: it must exist and
// be a directory. A missing directory is reported, not fatal; the
// orchestrator decides whether to create it.
func (v Validator) CheckDestination(destDir string) error {
	info, err := v.FS.Lstat(destDir)
	if err != nil {
		exists, exErr := v.FS.Exists(destDir)
		if exErr == nil && !exists {
			return appErrors.New(appErrors.MissingTargetDirectory, "validate", destDir)
		}
		return appErrors.Wrap(appErrors.IOFailure, "stat", destDir, err)
	}
	if !info.IsDir() {
		return appErrors.New(appErrors.TargetNotDirectory, "validate", destDir)
	}
	return nil
}

// isAncestor reports whether path lies strictly inside dir.
func isAncestor(dir, path string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel != "." && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
