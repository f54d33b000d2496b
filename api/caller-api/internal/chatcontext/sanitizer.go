// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.

package internal_chatcontext

import (
	"github.com/rapidaai/pkg/commons"
)

// =============================================================================
// Chat context sanitizer
// =============================================================================

// Several chat backends (vLLM-served models in particular) reject a history
// whose first non-system turn is not caller-originated, or silently behave
// worse on it. Sanitize repairs the history before every LLM invocation.
//
// Two repair policies exist:
//
//   - drop (default): remove the single offending leading agent turn. A stale
//     agent turn at the head of the context is almost always a greeting that
//     was spoken outside the LLM loop, so dropping it loses nothing.
//   - anchor: keep the offending turn and insert a synthetic caller turn in
//     front of it, so the backend sees caller-first without losing context.
//
// Pick the policy per deployment via WithSyntheticAnchor.

// DefaultAnchorText is the sentinel caller turn injected by the anchor
// policy. It is a minimal "call connected" marker, never spoken anywhere.
const DefaultAnchorText = "Hello?"

type Sanitizer struct {
	logger       commons.Logger
	injectAnchor bool
	anchorText   string
}

type SanitizerOption func(*Sanitizer)

// WithSyntheticAnchor switches the repair policy from dropping the offending
// turn to inserting a synthetic caller turn before it. Empty text selects
// DefaultAnchorText.
func WithSyntheticAnchor(text string) SanitizerOption {
	return func(s *Sanitizer) {
		s.injectAnchor = true
		if text != "" {
			s.anchorText = text
		}
	}
}

func NewSanitizer(logger commons.Logger, opts ...SanitizerOption) *Sanitizer {
	s := &Sanitizer{
		logger:     logger,
		anchorText: DefaultAnchorText,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Sanitize returns a history whose first turn after the leading system run
// has caller role. The input history is never mutated; when no repair is
// needed the input is returned as-is (it is only read, never written).
func (s *Sanitizer) Sanitize(history History) History {
	i := history.firstNonSystem()
	if i < 0 {
		// Empty history or system turns only, nothing to repair.
		return history
	}
	if history[i].Role == RoleCaller {
		return history
	}

	if s.injectAnchor {
		s.logger.Warnf(
			"chatcontext: first non-system turn is role=%s, expected %s; inserting synthetic caller anchor",
			history[i].Role, RoleCaller,
		)
		out := make(History, 0, len(history)+1)
		out = append(out, history[:i]...)
		out = append(out, Turn{Role: RoleCaller, Text: s.anchorText})
		out = append(out, history[i:]...)
		return out
	}

	s.logger.Warnf(
		"chatcontext: first non-system turn is role=%s, expected %s; dropping it",
		history[i].Role, RoleCaller,
	)
	out := make(History, 0, len(history)-1)
	out = append(out, history[:i]...)
	out = append(out, history[i+1:]...)
	return out
}
