package app

import (
	"strings"

	"ftool/internal/domain"
)

// OverwriteDecision is the resolver's batch-scoped state.
type OverwriteDecision int

const (
	DecisionAsk OverwriteDecision = iota
	DecisionAlwaysOverwrite
	DecisionAlwaysSkip
	DecisionAborted
)

// OverwriteResolver tracks one batch's overwrite policy. It starts in Ask
// and leaves it only on an explicit user response (a, s, q) or when the
// force / no-clobber flags pre-seed a fixed decision. It lives for exactly
// one invocation and is owned by the orchestrator.
type OverwriteResolver struct {
	prompter Prompter
	state    OverwriteDecision
}

func NewOverwriteResolver(prompter Prompter, opts domain.Options) *OverwriteResolver {
	state := DecisionAsk
	if opts.Force {
		state = DecisionAlwaysOverwrite
	} else if opts.NoClobber {
		state = DecisionAlwaysSkip
	}
	return &OverwriteResolver{
		prompter: prompter,
		state:    state,
	}
}

// Resolve reports whether a conflicting write at path may proceed. Once the
// resolver has left Ask no prompt is issued for the rest of the batch.
// Unrecognized input re-prompts; a prompt read error is treated as quit so
// a destructive decision is never defaulted silently.
func (r *OverwriteResolver) Resolve(path string) bool {
	switch r.state {
	case DecisionAlwaysOverwrite:
		return true
	case DecisionAlwaysSkip, DecisionAborted:
		return false
	}

	for {
		answer, err := r.prompter.AskOverwrite(path)
		if err != nil {
			r.state = DecisionAborted
			return false
		}
		switch strings.ToLower(strings.TrimSpace(answer)) {
		case "", "y", "yes":
			return true
		case "n", "no":
			return false
		case "a", "all":
			r.state = DecisionAlwaysOverwrite
			return true
		case "s", "skip":
			r.state = DecisionAlwaysSkip
			return false
		case "q", "quit":
			r.state = DecisionAborted
			return false
		}
	}
}

func (r *OverwriteResolver) Aborted() bool {
	return r.state == DecisionAborted
}

func (r *OverwriteResolver) State() OverwriteDecision {
	return r.state
}
