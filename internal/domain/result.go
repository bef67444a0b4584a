package domain

// Outcome classifies how one entry ended.
type Outcome int

const (
	OutcomeSucceeded Outcome = iota
	OutcomeSkipped
	OutcomeFailed
	OutcomeAborted
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSucceeded:
		return "succeeded"
	case OutcomeSkipped:
		return "skipped"
	case OutcomeFailed:
		return "failed"
	case OutcomeAborted:
		return "aborted"
	default:
		return "unknown"
	}
}

// OperationResult is the final record for one entry. Err carries the failure
// reason for OutcomeFailed. Warnings record conditions that did not change
// the outcome, such as a retained source after a verified cross-device copy.
type OperationResult struct {
	Path     string
	Outcome  Outcome
	Err      error
	Warnings []string
}

// BatchSummary aggregates entry results for one invocation.
type BatchSummary struct {
	Results   []OperationResult
	Succeeded int
	Skipped   int
	Failed    int
	Aborted   int
}

func (s *BatchSummary) Add(r OperationResult) {
	s.Results = append(s.Results, r)
	switch r.Outcome {
	case OutcomeSucceeded:
		s.Succeeded++
	case OutcomeSkipped:
		s.Skipped++
	case OutcomeFailed:
		s.Failed++
	case OutcomeAborted:
		s.Aborted++
	}
}

func (s *BatchSummary) Total() int {
	return len(s.Results)
}

// ExitCode maps the summary onto the process exit contract: 0 when every
// entry succeeded or was a user-accepted skip, 1 when anything failed,
// 2 when the user aborted.
func (s *BatchSummary) ExitCode() int {
	if s.Aborted > 0 {
		return 2
	}
	if s.Failed > 0 {
		return 1
	}
	return 0
}
