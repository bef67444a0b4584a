package app

import (
	"fmt"
	"path/filepath"

	"ftool/internal/domain"
	appErrors "ftool/internal/errors"
)

// StrategySelector derives a TransferPlan per source entry: which transfer
// mechanism applies and how many bytes are involved.
type StrategySelector struct {
	FS FileSystem
}

// Select builds the plan for one entry. target is the fully resolved final
// path (empty for remove). The decision order follows the verb first, then
// device equality for moves.
func (s StrategySelector) Select(source, target string, verb domain.Verb) (domain.TransferPlan, error) {
	info, err := s.FS.Lstat(source)
	if err != nil {
		return domain.TransferPlan{}, appErrors.Wrap(appErrors.SourceNotFound, "stat", source, err)
	}

	plan := domain.TransferPlan{
		SourcePath: source,
		TargetPath: target,
		IsDir:      info.IsDir(),
	}
	if plan.IsDir {
		plan.SizeBytes = s.treeSize(source)
	} else {
		plan.SizeBytes = info.Size()
	}

	switch verb {
	case domain.VerbRemove:
		plan.Strategy = domain.StrategySoftDelete
	case domain.VerbBackup:
		plan.Strategy = domain.StrategyCopyOnly
	case domain.VerbCopy:
		// Copy semantics are device-agnostic.
		plan.Strategy = domain.StrategyBufferedCopy
	case domain.VerbMove, domain.VerbRename:
		same, err := s.FS.SameDevice(source, target)
		if err != nil {
			return domain.TransferPlan{}, appErrors.Wrap(appErrors.IOFailure, "statfs", source, err)
		}
		if same {
			plan.Strategy = domain.StrategyAtomicRename
		} else {
			plan.Strategy = domain.StrategyCopyThenDelete
		}
	default:
		return domain.TransferPlan{}, appErrors.New(appErrors.InvalidRequest, "select", source)
	}

	return plan, nil
}

// BackupTarget computes the backup name for source: <name>.bak, then
// <name>.bak2, <name>.bak3, ... until an unused name is found. Prior
// backups are never overwritten and no prompt is ever issued.
func (s StrategySelector) BackupTarget(source string) (string, error) {
	candidate := source + ".bak"
	for n := 2; ; n++ {
		exists, err := s.FS.Exists(candidate)
		if err != nil {
			return "", appErrors.Wrap(appErrors.IOFailure, "backup-name", candidate, err)
		}
		if !exists {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s.bak%d", source, n)
	}
}

// treeSize sums regular file sizes under root, best effort: unreadable
// entries are skipped rather than failing the plan.
func (s StrategySelector) treeSize(root string) int64 {
	entries, err := s.FS.ReadDir(root)
	if err != nil {
		return 0
	}
	var total int64
	for _, entry := range entries {
		path := filepath.Join(root, entry.Name())
		if entry.IsDir() {
			total += s.treeSize(path)
			continue
		}
		if info, err := s.FS.Lstat(path); err == nil {
			total += info.Size()
		}
	}
	return total
}
