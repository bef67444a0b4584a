package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sys/unix"

	"ftool/internal/domain"
	appErrors "ftool/internal/errors"
)

const (
	// copyChunkSize is the fixed read/write unit for buffered copies.
	copyChunkSize = 64 * 1024
	// largeFileThreshold is the size above which a single transfer reports
	// byte progress.
	largeFileThreshold = 32 << 20
	// multiEntryThreshold is the batch size from which progress is reported
	// regardless of entry size.
	multiEntryThreshold = 5
)

// Executor performs the byte movement for one TransferPlan, consulting the
// overwrite resolver on conflicts and emitting progress events.
type Executor struct {
	FS         FileSystem
	Trash      Trash
	Resolver   *OverwriteResolver
	Logger     zerolog.Logger
	OnProgress ProgressFunc
}

// Execute runs one plan and returns the entry's result. entryIndex is
// 1-based within a batch of totalEntries.
func (e *Executor) Execute(ctx context.Context, plan domain.TransferPlan, entryIndex, totalEntries int) domain.OperationResult {
	res := domain.OperationResult{Path: plan.SourcePath}

	if plan.Strategy != domain.StrategySoftDelete {
		proceed, err := e.resolveTopLevelConflict(plan)
		if err != nil {
			res.Outcome = domain.OutcomeFailed
			res.Err = err
			return res
		}
		if !proceed {
			if e.Resolver.Aborted() {
				res.Outcome = domain.OutcomeAborted
			} else {
				res.Outcome = domain.OutcomeSkipped
			}
			return res
		}
	}

	tracker := e.newTracker(plan, entryIndex, totalEntries)

	var err error
	switch plan.Strategy {
	case domain.StrategyAtomicRename:
		err = e.atomicRename(ctx, plan, tracker, &res)
	case domain.StrategySoftDelete:
		err = e.softDelete(plan)
	default:
		err = e.copyEntry(ctx, plan, tracker, &res)
	}

	if err != nil {
		if appErrors.KindOf(err) == appErrors.Aborted {
			res.Outcome = domain.OutcomeAborted
			return res
		}
		res.Outcome = domain.OutcomeFailed
		res.Err = err
		return res
	}

	res.Outcome = domain.OutcomeSucceeded
	return res
}

// resolveTopLevelConflict consults the resolver when the resolved target
// already exists. Directory-into-directory merges are not a conflict here;
// their leaves are resolved individually during recursion.
func (e *Executor) resolveTopLevelConflict(plan domain.TransferPlan) (bool, error) {
	exists, err := e.FS.Exists(plan.TargetPath)
	if err != nil {
		return false, appErrors.Wrap(appErrors.IOFailure, "stat", plan.TargetPath, err)
	}
	if !exists {
		return true, nil
	}
	if plan.IsDir {
		if info, err := e.FS.Lstat(plan.TargetPath); err == nil && info.IsDir() {
			return true, nil
		}
	}
	return e.Resolver.Resolve(plan.TargetPath), nil
}

func (e *Executor) atomicRename(ctx context.Context, plan domain.TransferPlan, tracker *progressTracker, res *domain.OperationResult) error {
	if plan.IsDir {
		if info, err := e.FS.Lstat(plan.TargetPath); err == nil && info.IsDir() {
			// Rename cannot merge into an existing directory. Fall back to
			// leaf-by-leaf copy+delete so the merge behaves the same on
			// every mount layout.
			plan.Strategy = domain.StrategyCopyThenDelete
			return e.copyEntry(ctx, plan, tracker, res)
		}
	}
	err := e.FS.Rename(plan.SourcePath, plan.TargetPath)
	if err == nil {
		return nil
	}
	if errors.Is(err, unix.EXDEV) {
		// The device equality check lied (bind mounts, overlay fs). Retry
		// once as a cross-device move.
		e.Logger.Debug().
			Str("source", plan.SourcePath).
			Str("target", plan.TargetPath).
			Msg("rename crossed devices, retrying as copy+delete")
		plan.Strategy = domain.StrategyCopyThenDelete
		return e.copyEntry(ctx, plan, tracker, res)
	}
	return mapOSError("rename", plan.SourcePath, err)
}

func (e *Executor) softDelete(plan domain.TransferPlan) error {
	if e.Trash == nil {
		return appErrors.New(appErrors.TrashUnavailable, "remove", plan.SourcePath)
	}
	if err := e.Trash.Send(plan.SourcePath); err != nil {
		return appErrors.Wrap(appErrors.TrashUnavailable, "remove", plan.SourcePath, err)
	}
	return nil
}

// copyEntry handles the three copy-class strategies. For CopyThenDelete the
// source is removed only after every byte verified; a failed cleanup leaves
// the entry Succeeded with a SourceRetained warning since the data is safe.
func (e *Executor) copyEntry(ctx context.Context, plan domain.TransferPlan, tracker *progressTracker, res *domain.OperationResult) error {
	if err := e.checkSpace(plan); err != nil {
		return err
	}

	var skipped int
	var err error
	if plan.IsDir {
		skipped, err = e.copyTree(ctx, plan.SourcePath, plan.TargetPath, tracker)
	} else {
		err = e.copyFile(ctx, plan.SourcePath, plan.TargetPath, tracker)
	}
	if err != nil {
		return err
	}

	if plan.Strategy != domain.StrategyCopyThenDelete {
		return nil
	}

	if skipped > 0 {
		// Skipped descendants still live only in the source tree.
		res.Warnings = append(res.Warnings, "source retained, skipped entries remain: "+plan.SourcePath)
		return nil
	}

	var rmErr error
	if plan.IsDir {
		rmErr = e.FS.RemoveAll(plan.SourcePath)
	} else {
		rmErr = e.FS.Remove(plan.SourcePath)
	}
	if rmErr != nil {
		e.Logger.Warn().
			Str("source", plan.SourcePath).
			Err(rmErr).
			Msg("source cleanup failed after verified copy")
		res.Warnings = append(res.Warnings, "source retained: "+plan.SourcePath)
	}
	return nil
}

// copyTree recurses depth-first. A descendant failure records the first
// error and continues with siblings; already transferred entries are never
// rolled back. Returns the number of descendants skipped by the resolver.
func (e *Executor) copyTree(ctx context.Context, src, dst string, tracker *progressTracker) (int, error) {
	if err := e.FS.MkdirAll(dst, 0o755); err != nil {
		return 0, mapOSError("mkdir", dst, err)
	}

	entries, err := e.FS.ReadDir(src)
	if err != nil {
		return 0, mapOSError("readdir", src, err)
	}

	var skipped int
	var firstErr error
	for _, entry := range entries {
		if ctx.Err() != nil {
			return skipped, appErrors.Wrap(appErrors.Aborted, "copy", src, ctx.Err())
		}

		childSrc := filepath.Join(src, entry.Name())
		childDst := filepath.Join(dst, entry.Name())

		if entry.IsDir() {
			childSkipped, err := e.copyTree(ctx, childSrc, childDst, tracker)
			skipped += childSkipped
			if err != nil {
				if appErrors.KindOf(err) == appErrors.Aborted {
					return skipped, err
				}
				if firstErr == nil {
					firstErr = err
				}
			}
			continue
		}

		exists, exErr := e.FS.Exists(childDst)
		if exErr != nil {
			if firstErr == nil {
				firstErr = appErrors.Wrap(appErrors.IOFailure, "stat", childDst, exErr)
			}
			continue
		}
		if exists && !e.Resolver.Resolve(childDst) {
			if e.Resolver.Aborted() {
				return skipped, appErrors.New(appErrors.Aborted, "copy", childDst)
			}
			skipped++
			tracker.skip(e.fileSize(childSrc), childSrc)
			continue
		}

		if err := e.copyFile(ctx, childSrc, childDst, tracker); err != nil {
			if appErrors.KindOf(err) == appErrors.Aborted {
				return skipped, err
			}
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return skipped, firstErr
}

// copyFile streams one file in fixed-size chunks and verifies the result by
// size before returning. Mode bits and the modification time are carried
// over best effort.
func (e *Executor) copyFile(ctx context.Context, src, dst string, tracker *progressTracker) error {
	info, err := e.FS.Lstat(src)
	if err != nil {
		return appErrors.Wrap(appErrors.SourceNotFound, "stat", src, err)
	}

	in, err := e.FS.Open(src)
	if err != nil {
		return mapOSError("open", src, err)
	}
	defer in.Close()

	out, err := e.FS.Create(dst, info.Mode().Perm())
	if err != nil {
		return mapOSError("create", dst, err)
	}

	buf := make([]byte, copyChunkSize)
	for {
		// A pending cancellation takes effect between chunks, never
		// mid-chunk.
		if ctx.Err() != nil {
			out.Close()
			return appErrors.Wrap(appErrors.Aborted, "copy", src, ctx.Err())
		}

		n, readErr := in.Read(buf)
		if n > 0 {
			if _, writeErr := out.Write(buf[:n]); writeErr != nil {
				out.Close()
				return mapOSError("write", dst, writeErr)
			}
			tracker.add(int64(n), src)
		}
		if readErr != nil {
			if errors.Is(readErr, io.EOF) {
				break
			}
			out.Close()
			return mapOSError("read", src, readErr)
		}
	}

	if err := out.Close(); err != nil {
		return mapOSError("close", dst, err)
	}

	written, err := e.FS.Lstat(dst)
	if err != nil {
		return appErrors.Wrap(appErrors.IOFailure, "verify", dst, err)
	}
	if written.Size() != info.Size() {
		return appErrors.Wrap(appErrors.IOFailure, "verify", dst,
			fmt.Errorf("size mismatch: wrote %d of %d bytes", written.Size(), info.Size()))
	}

	if err := e.FS.Chtimes(dst, time.Now(), info.ModTime()); err != nil {
		e.Logger.Debug().Str("target", dst).Err(err).Msg("could not preserve modification time")
	}
	return nil
}

// checkSpace enforces the free-space precondition before any bytes are
// written. When free space cannot be determined it is assumed sufficient.
func (e *Executor) checkSpace(plan domain.TransferPlan) error {
	avail, err := e.FS.AvailableSpace(filepath.Dir(plan.TargetPath))
	if err != nil {
		e.Logger.Debug().Str("target", plan.TargetPath).Err(err).Msg("free space unknown, proceeding")
		return nil
	}
	if avail < uint64(plan.SizeBytes) {
		return appErrors.New(appErrors.InsufficientSpace, "copy", plan.TargetPath)
	}
	return nil
}

func (e *Executor) fileSize(path string) int64 {
	info, err := e.FS.Lstat(path)
	if err != nil {
		return 0
	}
	return info.Size()
}

func (e *Executor) newTracker(plan domain.TransferPlan, entryIndex, totalEntries int) *progressTracker {
	enabled := e.OnProgress != nil &&
		(plan.SizeBytes >= largeFileThreshold || totalEntries >= multiEntryThreshold)
	if !enabled {
		return nil
	}
	return &progressTracker{
		emit:         e.OnProgress,
		entryIndex:   entryIndex,
		totalEntries: totalEntries,
		total:        plan.SizeBytes,
	}
}

// progressTracker accumulates byte counts across a (possibly recursive)
// transfer and emits one event per chunk. A nil tracker is a no-op.
type progressTracker struct {
	emit         ProgressFunc
	entryIndex   int
	totalEntries int
	total        int64
	done         int64
}

func (t *progressTracker) add(n int64, path string) {
	if t == nil {
		return
	}
	t.done += n
	t.emit(domain.ProgressEvent{
		EntryIndex:   t.entryIndex,
		TotalEntries: t.totalEntries,
		BytesDone:    t.done,
		BytesTotal:   t.total,
		CurrentPath:  path,
	})
}

// skip advances the counter past a descendant the resolver skipped so the
// bar still reaches its total.
func (t *progressTracker) skip(n int64, path string) {
	t.add(n, path)
}

// mapOSError classifies an OS-level error into the engine taxonomy.
func mapOSError(op, path string, err error) error {
	switch {
	case os.IsNotExist(err):
		return appErrors.Wrap(appErrors.SourceNotFound, op, path, err)
	case os.IsPermission(err):
		return appErrors.Wrap(appErrors.PermissionDenied, op, path, err)
	case errors.Is(err, unix.EXDEV):
		return appErrors.Wrap(appErrors.CrossDevice, op, path, err)
	case errors.Is(err, unix.ENOSPC):
		return appErrors.Wrap(appErrors.InsufficientSpace, op, path, err)
	default:
		return appErrors.Wrap(appErrors.IOFailure, op, path, err)
	}
}
