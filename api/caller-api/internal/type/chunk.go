// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.

package internal_type

// =============================================================================
// Streamed response chunks
// =============================================================================

// Chunk is one increment of a streamed LLM response. The upstream backend
// emits either bare text or a structured delta event; tool-call events carry
// no speakable text at all. Modeling the variants as a closed sum keeps an
// undocumented fourth shape from slipping through a type switch unnoticed.
type Chunk interface {
	chunk()
}

// TextChunk is a bare text increment.
type TextChunk struct {
	Text string
}

// DeltaChunk is a structured streaming event whose payload is a text delta.
// The payload is rewritten on normalization; the rest of the event shape is
// preserved so downstream consumers see the variant they were sent.
type DeltaChunk struct {
	ContextId string
	Delta     string
}

// ToolCallChunk is a function-call event. It carries no speakable text and
// passes through the normalizer untouched.
type ToolCallChunk struct {
	Name      string
	Arguments string
}

func (TextChunk) chunk()     {}
func (DeltaChunk) chunk()    {}
func (ToolCallChunk) chunk() {}
