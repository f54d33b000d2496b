// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.

package internal_type

// =============================================================================
// Text Normalizer Interfaces
// =============================================================================

// StreamNormalizer is the per-call speech text state machine. One instance
// is owned by exactly one call session and fed chunks in arrival order;
// Flush must be called once at the end of every LLM turn.
type StreamNormalizer interface {
	// Process ingests one chunk of streamed text and returns the speakable
	// portion, which may be empty while digits are being buffered.
	Process(text string) string

	// ProcessChunk applies Process to the chunk's text payload, preserving
	// the chunk's variant shape. Chunks without a text payload pass through.
	ProcessChunk(c Chunk) Chunk

	// Flush emits whatever the buffer still holds and resets the state.
	Flush() string
}
