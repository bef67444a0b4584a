package presentation

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/fatih/color"

	"ftool/internal/domain"
	appErrors "ftool/internal/errors"
	"ftool/internal/i18n"
)

var (
	errorText   = color.New(color.FgRed).SprintFunc()
	successText = color.New(color.FgGreen).SprintFunc()
	warnText    = color.New(color.FgYellow).SprintFunc()
	infoText    = color.New(color.FgCyan).SprintFunc()
)

// Printer renders the human-readable side of one invocation: per-entry
// status lines, localized error messages, and the batch summary. It never
// influences control flow.
type Printer struct {
	Writer    io.Writer
	ErrWriter io.Writer
	Messages  *i18n.Messages
	Verbose   bool
	Verb      domain.Verb
}

// EntryLine announces an entry before it runs; only in verbose mode.
func (p Printer) EntryLine(index, total int, plan domain.TransferPlan) {
	if !p.Verbose {
		return
	}
	name := filepath.Base(plan.SourcePath)
	var line string
	if p.Verb == domain.VerbRemove {
		line = p.Messages.T("removing", name)
	} else {
		line = p.Messages.T(operationKey(p.Verb), name, plan.TargetPath)
	}
	if total > 1 {
		line = fmt.Sprintf("[%d/%d] %s", index, total, line)
	}
	fmt.Fprintln(p.Writer, infoText(line))
}

// ResultLine reports how an entry ended.
func (p Printer) ResultLine(index, total int, res domain.OperationResult) {
	switch res.Outcome {
	case domain.OutcomeSkipped:
		if p.Verbose {
			fmt.Fprintln(p.Writer, warnText(p.Messages.T("skipped", filepath.Base(res.Path))))
		}
	case domain.OutcomeFailed:
		p.ErrorLine(res.Err)
	}
	for _, warning := range res.Warnings {
		fmt.Fprintln(p.Writer, warnText(warning))
	}
}

// Summary prints the batch outcome. Single-entry successes stay quiet
// unless verbose; larger batches always get the aggregate line.
func (p Printer) Summary(s *domain.BatchSummary) {
	if s.Aborted > 0 {
		fmt.Fprintln(p.Writer, warnText(p.Messages.T("operation_cancelled")))
	}
	switch {
	case s.Total() > 1:
		line := p.Messages.T("summary", s.Succeeded, s.Total(), s.Skipped, s.Failed, s.Aborted)
		if s.Failed == 0 && s.Aborted == 0 {
			fmt.Fprintln(p.Writer, successText(line))
		} else {
			fmt.Fprintln(p.Writer, warnText(line))
		}
	case p.Verbose && s.Succeeded == s.Total():
		fmt.Fprintln(p.Writer, successText(p.Messages.T(completionKey(p.Verb))))
	}
}

// ErrorLine renders an engine error on the error stream using the
// localized message for its kind.
func (p Printer) ErrorLine(err error) {
	if err == nil {
		return
	}
	w := p.ErrWriter
	if w == nil {
		w = p.Writer
	}
	detail := appErrors.PathOf(err)
	if detail == "" {
		detail = err.Error()
	}
	fmt.Fprintln(w, errorText(p.Messages.T(messageKey(appErrors.KindOf(err)), detail)))
}

func operationKey(verb domain.Verb) string {
	switch verb {
	case domain.VerbMove:
		return "moving"
	case domain.VerbCopy:
		return "copying"
	case domain.VerbRename:
		return "renaming"
	case domain.VerbBackup:
		return "backing_up"
	default:
		return "removing"
	}
}

func completionKey(verb domain.Verb) string {
	switch verb {
	case domain.VerbMove:
		return "move_complete"
	case domain.VerbCopy:
		return "copy_complete"
	case domain.VerbRename:
		return "rename_complete"
	case domain.VerbBackup:
		return "backup_complete"
	default:
		return "remove_complete"
	}
}

func messageKey(kind appErrors.Kind) string {
	switch kind {
	case appErrors.InvalidRequest:
		return "error_invalid_request"
	case appErrors.SourceNotFound:
		return "error_file_not_found"
	case appErrors.TargetNotDirectory:
		return "error_target_is_file"
	case appErrors.RecursiveConflict:
		return "error_target_in_source"
	case appErrors.MissingTargetDirectory:
		return "error_missing_target"
	case appErrors.InsufficientSpace:
		return "error_disk_full"
	case appErrors.PermissionDenied:
		return "error_permission_denied"
	case appErrors.CrossDevice:
		return "error_cross_device"
	case appErrors.TrashUnavailable:
		return "error_trash_unavailable"
	case appErrors.SameFile:
		return "error_same_file"
	case appErrors.IOFailure:
		return "error_io"
	default:
		return "error_unexpected"
	}
}
