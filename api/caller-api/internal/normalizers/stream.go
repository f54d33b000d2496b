// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.

package internal_normalizers

import (
	internal_type "github.com/rapidaai/api/caller-api/internal/type"
	"github.com/rapidaai/pkg/commons"
)

// =============================================================================
// Streaming speech normalizer
// =============================================================================

// Chunk boundaries from the LLM do not respect numeral boundaries. If "28"
// and "000" arrive as separate chunks and are verbalized independently, the
// caller says "attaaees ... zero" instead of "attaaees hazaar", an audibly
// wrong price. The fix is minimal buffering: a digit run at the very end of
// a chunk is held back until the next chunk (or the flush) shows where the
// number actually ends. Nothing else is buffered, so speech latency stays at
// one chunk.
type speechStreamNormalizer struct {
	logger   commons.Logger
	pipeline []Normalizer

	// trailing digit run carried over from the previous chunk
	digitBuffer string
}

// NewSpeechStreamNormalizer builds the per-call stream normalizer. One
// instance per call; it is not safe for concurrent Process calls and is
// never shared across calls.
func NewSpeechStreamNormalizer(logger commons.Logger) internal_type.StreamNormalizer {
	return &speechStreamNormalizer{
		logger:   logger,
		pipeline: NewSpeechPipeline(logger),
	}
}

// Process implements internal_type.StreamNormalizer.
func (s *speechStreamNormalizer) Process(text string) string {
	combined := s.digitBuffer + text
	s.digitBuffer = ""
	if combined == "" {
		return ""
	}

	// Hold back a digit run that touches the end of the chunk; the number
	// may continue in the next chunk.
	cut := len(combined)
	for cut > 0 && combined[cut-1] >= '0' && combined[cut-1] <= '9' {
		cut--
	}
	s.digitBuffer = combined[cut:]
	combined = combined[:cut]

	if combined == "" {
		return ""
	}
	return RunPipeline(s.pipeline, combined)
}

// ProcessChunk implements internal_type.StreamNormalizer.
func (s *speechStreamNormalizer) ProcessChunk(c internal_type.Chunk) internal_type.Chunk {
	switch t := c.(type) {
	case internal_type.TextChunk:
		t.Text = s.Process(t.Text)
		return t
	case internal_type.DeltaChunk:
		t.Delta = s.Process(t.Delta)
		return t
	case internal_type.ToolCallChunk:
		// no text payload, nothing to rewrite
		return t
	default:
		s.logger.Warnf("normalizer: unknown chunk variant %T passed through unmodified", c)
		return c
	}
}

// Flush implements internal_type.StreamNormalizer.
func (s *speechStreamNormalizer) Flush() string {
	if s.digitBuffer == "" {
		return ""
	}
	out := RunPipeline(s.pipeline, s.digitBuffer)
	s.digitBuffer = ""
	return out
}
