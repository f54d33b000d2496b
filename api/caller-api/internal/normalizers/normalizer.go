// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.

// Package internal_normalizers rewrites streamed LLM output into the plain
// Romanized Hindi text the Sarvam speech engine accepts. The output of the
// pipeline is played verbatim on a live phone call, so every normalizer is
// total: bad input degrades, it never aborts the call.
package internal_normalizers

import (
	"github.com/rapidaai/pkg/commons"
)

// Normalizer is a single stateless text rewrite.
type Normalizer interface {
	// Name identifies the normalizer in logs.
	Name() string

	// Normalize rewrites text for speech output.
	Normalize(text string) string
}

// NewSpeechPipeline builds the ordered rewrite sequence for Hindi speech
// output. Order matters: markers are stripped before transliteration so
// their contents never reach the script tables, numerals are verbalized
// before spacing fixes so glued digits are respaced rather than misread.
func NewSpeechPipeline(logger commons.Logger) []Normalizer {
	return []Normalizer{
		NewThinkTagNormalizer(logger),
		NewActionMarkerNormalizer(logger),
		NewNewlineNormalizer(logger),
		NewDevanagariNormalizer(logger),
		NewNumberToWordNormalizer(logger),
		NewSpacingNormalizer(logger),
	}
}

// RunPipeline applies each normalizer in order.
func RunPipeline(pipeline []Normalizer, text string) string {
	for _, n := range pipeline {
		text = n.Normalize(text)
	}
	return text
}
