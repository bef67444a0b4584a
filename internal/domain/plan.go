package domain

// Strategy is the mechanism chosen for moving one entry's bytes.
type Strategy int

const (
	// StrategyAtomicRename relocates the entry with a single rename call,
	// valid only when source and target share a device.
	StrategyAtomicRename Strategy = iota
	// StrategyBufferedCopy streams bytes in fixed-size chunks, source kept.
	StrategyBufferedCopy
	// StrategyCopyThenDelete is a cross-device move: buffered copy followed
	// by source removal once the copy verifies.
	StrategyCopyThenDelete
	// StrategyCopyOnly is a buffered copy to a computed name (backups).
	StrategyCopyOnly
	// StrategySoftDelete moves the entry to the recoverable delete store.
	StrategySoftDelete
)

func (s Strategy) String() string {
	switch s {
	case StrategyAtomicRename:
		return "atomic-rename"
	case StrategyBufferedCopy:
		return "buffered-copy"
	case StrategyCopyThenDelete:
		return "copy-then-delete"
	case StrategyCopyOnly:
		return "copy-only"
	case StrategySoftDelete:
		return "soft-delete"
	default:
		return "unknown"
	}
}

// CopiesBytes reports whether the strategy writes new bytes at the target,
// which is what makes the free-space precondition apply.
func (s Strategy) CopiesBytes() bool {
	switch s {
	case StrategyBufferedCopy, StrategyCopyThenDelete, StrategyCopyOnly:
		return true
	default:
		return false
	}
}

// TransferPlan is derived per source entry by the strategy selector and
// consumed once by the executor.
type TransferPlan struct {
	SourcePath string
	TargetPath string
	Strategy   Strategy
	IsDir      bool
	// SizeBytes is best effort; for directories it is the recursive sum of
	// regular file sizes.
	SizeBytes int64
}
