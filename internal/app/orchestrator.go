package app

import (
	"context"
	"path/filepath"

	"github.com/rs/zerolog"

	"ftool/internal/domain"
	appErrors "ftool/internal/errors"
)

// Orchestrator drives one validated OperationRequest across its entries,
// owning the overwrite resolver and progress counters for the duration of
// the invocation. Entries run strictly sequentially, in the order given.
type Orchestrator struct {
	FS         FileSystem
	Trash      Trash
	Prompter   Prompter
	Logger     zerolog.Logger
	OnProgress ProgressFunc
	OnEntry    EntryFunc
	OnResult   ResultFunc
}

// Run executes the batch and returns its summary. A non-nil error means the
// batch could not start at all (invalid request, unusable destination); a
// user decision not to create the destination yields a summary with every
// entry Aborted and a nil error.
func (o *Orchestrator) Run(ctx context.Context, req domain.OperationRequest) (*domain.BatchSummary, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	resolver := NewOverwriteResolver(o.Prompter, req.Options)
	validator := Validator{FS: o.FS}
	selector := StrategySelector{FS: o.FS}
	executor := &Executor{
		FS:         o.FS,
		Trash:      o.Trash,
		Resolver:   resolver,
		Logger:     o.Logger,
		OnProgress: o.OnProgress,
	}

	summary := &domain.BatchSummary{}
	total := len(req.Sources)

	if req.Verb.NeedsDestinationDir() {
		if err := o.ensureDestination(req, validator); err != nil {
			if appErrors.KindOf(err) == appErrors.Aborted {
				// The whole batch fails before any entry starts.
				for _, src := range req.Sources {
					summary.Add(domain.OperationResult{Path: src, Outcome: domain.OutcomeAborted})
				}
				return summary, nil
			}
			return nil, err
		}
	}

	for i, src := range req.Sources {
		if resolver.Aborted() || ctx.Err() != nil {
			summary.Add(domain.OperationResult{Path: src, Outcome: domain.OutcomeAborted})
			continue
		}

		// Overall progress signal for larger batches, independent of the
		// per-file byte progress the executor emits.
		if total >= multiEntryThreshold && o.OnProgress != nil {
			o.OnProgress(domain.ProgressEvent{
				EntryIndex:   i + 1,
				TotalEntries: total,
				CurrentPath:  src,
			})
		}

		target, err := o.resolveTarget(req, src, validator, selector)
		if err == nil {
			var plan domain.TransferPlan
			plan, err = selector.Select(src, target, req.Verb)
			if err == nil {
				if o.OnEntry != nil {
					o.OnEntry(i+1, total, plan)
				}
				res := executor.Execute(ctx, plan, i+1, total)
				summary.Add(res)
				if o.OnResult != nil {
					o.OnResult(i+1, total, res)
				}
				continue
			}
		}

		o.Logger.Debug().Str("source", src).Err(err).Msg("entry rejected")
		res := domain.OperationResult{Path: src, Outcome: domain.OutcomeFailed, Err: err}
		summary.Add(res)
		if o.OnResult != nil {
			o.OnResult(i+1, total, res)
		}
	}

	return summary, nil
}

// resolveTarget validates one entry and computes its final destination path
// for the selector.
func (o *Orchestrator) resolveTarget(req domain.OperationRequest, src string, v Validator, s StrategySelector) (string, error) {
	switch req.Verb {
	case domain.VerbMove, domain.VerbCopy:
		if err := v.Validate(src, req.Destination); err != nil {
			return "", err
		}
		return filepath.Join(req.Destination, filepath.Base(src)), nil
	case domain.VerbRename:
		if err := v.ValidateRename(src, req.Destination); err != nil {
			return "", err
		}
		return filepath.Join(filepath.Dir(src), req.Destination), nil
	case domain.VerbRemove:
		if err := v.Validate(src, ""); err != nil {
			return "", err
		}
		return "", nil
	case domain.VerbBackup:
		if err := v.Validate(src, ""); err != nil {
			return "", err
		}
		return s.BackupTarget(src)
	default:
		return "", appErrors.New(appErrors.InvalidRequest, "resolve", src)
	}
}

// ensureDestination resolves the destination directory once per batch. When
// it is missing and auto-mkdir is off, the user decides; declining aborts
// the batch before any entry starts.
func (o *Orchestrator) ensureDestination(req domain.OperationRequest, v Validator) error {
	err := v.CheckDestination(req.Destination)
	if err == nil {
		return nil
	}
	if !appErrors.IsKind(err, appErrors.MissingTargetDirectory) {
		return err
	}

	if !req.Options.AutoMkdir {
		ok, promptErr := o.Prompter.ConfirmMkdir(req.Destination)
		if promptErr != nil || !ok {
			return appErrors.New(appErrors.Aborted, "mkdir", req.Destination)
		}
	}

	if err := o.FS.MkdirAll(req.Destination, 0o755); err != nil {
		return mapOSError("mkdir", req.Destination, err)
	}
	o.Logger.Debug().Str("path", req.Destination).Msg("destination directory created")
	return nil
}

// validateRequest enforces the request invariants the engine relies on.
func validateRequest(req domain.OperationRequest) error {
	if len(req.Sources) == 0 {
		return appErrors.New(appErrors.InvalidRequest, "request", "no sources")
	}
	if req.Options.Force && req.Options.NoClobber {
		return appErrors.New(appErrors.InvalidRequest, "request", "force conflicts with no-clobber")
	}
	switch req.Verb {
	case domain.VerbMove, domain.VerbCopy:
		if req.Destination == "" {
			return appErrors.New(appErrors.InvalidRequest, "request", "destination required")
		}
	case domain.VerbRename:
		if len(req.Sources) != 1 {
			return appErrors.New(appErrors.InvalidRequest, "request", "rename takes exactly one source")
		}
		if req.Destination == "" {
			return appErrors.New(appErrors.InvalidRequest, "request", "new name required")
		}
	case domain.VerbRemove, domain.VerbBackup:
		if req.Destination != "" {
			return appErrors.New(appErrors.InvalidRequest, "request", "destination not accepted")
		}
	default:
		return appErrors.New(appErrors.InvalidRequest, "request", "unknown verb")
	}
	return nil
}
