package domain

// ProgressEvent is emitted by the executor while bytes move and by the
// orchestrator at entry boundaries of larger batches. Consumers must treat
// it as read-only; the engine owns emission cadence.
type ProgressEvent struct {
	EntryIndex   int // 1-based
	TotalEntries int
	BytesDone    int64
	BytesTotal   int64
	CurrentPath  string
}
