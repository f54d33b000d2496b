// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.

package internal_normalizers

import (
	"testing"

	"github.com/rapidaai/pkg/commons"
	"github.com/stretchr/testify/assert"
)

func newTestLogger() commons.Logger {
	l, _ := commons.NewApplicationLogger()
	return l
}

func normalize(text string) string {
	return RunPipeline(NewSpeechPipeline(newTestLogger()), text)
}

// =============================================================================
// Think-tag stripping
// =============================================================================

func TestThinkTagNormalizer(t *testing.T) {
	n := NewThinkTagNormalizer(newTestLogger())

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"complete tag", "<think>reasoning</think>Hello", "Hello"},
		{"multiline tag", "<think>\nI should ask about price\n</think>Namaste", "Namaste"},
		{"unclosed tag mid-stream", "<think>partial reasoning", ""},
		{"no tags", "Normal text", "Normal text"},
		{"empty tag", "<think></think>Achha", "Achha"},
		{"content after", "<think>Let me negotiate</think>Thoda kam karo", "Thoda kam karo"},
		{"tag only", "<think>only thinking</think>", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, n.Normalize(tt.input))
		})
	}
}

func TestThinkTagNormalizer_MultipleTags(t *testing.T) {
	n := NewThinkTagNormalizer(newTestLogger())
	result := n.Normalize("<think>first</think>Hello<think>second</think> ji")
	assert.NotContains(t, result, "first")
	assert.NotContains(t, result, "second")
	assert.Contains(t, result, "Hello")
}

// =============================================================================
// Action marker stripping
// =============================================================================

func TestActionMarkerNormalizer(t *testing.T) {
	n := NewActionMarkerNormalizer(newTestLogger())

	tests := []struct {
		name  string
		input string
		gone  string
	}{
		{"asterisk marker", "*confused*", "confused"},
		{"paren marker", "(laughs)", "laughs"},
		{"bracket marker", "[pauses]", "pauses"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotContains(t, n.Normalize(tt.input), tt.gone)
		})
	}
}

func TestActionMarkerNormalizer_InSentence(t *testing.T) {
	n := NewActionMarkerNormalizer(newTestLogger())
	result := n.Normalize("Main *confused* hoon")
	assert.NotContains(t, result, "*")
	assert.Contains(t, result, "Main")
	assert.Contains(t, result, "hoon")
}

func TestActionMarkerNormalizer_MultipleMarkers(t *testing.T) {
	n := NewActionMarkerNormalizer(newTestLogger())
	result := n.Normalize("*smiles* Hello *pauses* ji")
	assert.NotContains(t, result, "*")
	assert.Contains(t, result, "Hello")
	assert.Contains(t, result, "ji")
}

// =============================================================================
// Spacing fixes
// =============================================================================

func TestSpacingNormalizer(t *testing.T) {
	n := NewSpacingNormalizer(newTestLogger())

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"lowercase to uppercase", "puraneAC", "purane AC"},
		{"split ac", "splitAC", "split AC"},
		{"digit to letter", "5star", "5 star"},
		{"letter to digit", "Samsung1", "Samsung 1"},
		{"clean text untouched", "hello world", "hello world"},
		{"warranty boundary", "warrantyKitni", "warranty Kitni"},
		{"space collapse", "hello   world   ji", "hello world ji"},
		// two glued lowercase words are indistinguishable from one word
		{"glued lowercase stays", "Installationfree", "Installationfree"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, n.Normalize(tt.input))
		})
	}
}

// =============================================================================
// Full pipeline
// =============================================================================

func TestPipeline_NumbersConverted(t *testing.T) {
	result := normalize("36000 mein milega")
	assert.Contains(t, result, "chhatees hazaar")
	assert.NotContains(t, result, "36000")
}

func TestPipeline_MultipleNumbers(t *testing.T) {
	result := normalize("42 hazaar? Online pe toh 38 mein dikha raha tha.")
	assert.Contains(t, result, "bayaalees")
	assert.Contains(t, result, "adtees")
}

func TestPipeline_DecimalIdiom(t *testing.T) {
	assert.Contains(t, normalize("Samsung 1.5 ton ka AC"), "dedh")
}

func TestPipeline_ActionMarkersStripped(t *testing.T) {
	result := normalize("*thinking* Achha theek hai")
	assert.NotContains(t, result, "*")
	assert.Contains(t, result, "Achha")
}

func TestPipeline_EmptyString(t *testing.T) {
	assert.Equal(t, "", normalize(""))
}

func TestPipeline_CleanRomanizedHindiUnchanged(t *testing.T) {
	text := "Achha bhaisaab rate kya hai"
	assert.Equal(t, text, normalize(text))
}

func TestPipeline_SpacingAndNumbersCombined(t *testing.T) {
	result := normalize("puraneAC ke 10 hazaar kam")
	assert.Contains(t, result, "purane AC")
	assert.Contains(t, result, "das")
}

func TestPipeline_FiveStarInverter(t *testing.T) {
	assert.Contains(t, normalize("5 star inverter split AC"), "paanch star")
}

func TestPipeline_NewlinesFlattened(t *testing.T) {
	result := normalize("Achha\ntheek hai\r\nji")
	assert.NotContains(t, result, "\n")
	assert.NotContains(t, result, "\r")
	assert.Contains(t, result, "Achha theek hai ji")
}

func TestPipeline_DevanagariLeak(t *testing.T) {
	result := normalize("Achha. Toh usका price kya hai?")
	assert.NotContains(t, result, "का")
	for _, r := range result {
		assert.LessOrEqual(t, r, rune(127), "non-ASCII rune %q in %q", r, result)
	}
}

func TestPipeline_MixedScriptGetsSpaced(t *testing.T) {
	// The rupee sign passes through; the amount next to it is verbalized.
	result := normalize("price ₹40,000 hai")
	assert.Contains(t, result, "chaalees hazaar")
	assert.NotContains(t, result, "40")
}

// =============================================================================
// Streaming digit buffer
// =============================================================================

func TestStream_Split28000AcrossChunks(t *testing.T) {
	s := NewSpeechStreamNormalizer(newTestLogger())
	combined := s.Process("Achha, 28") + s.Process("000.") + s.Flush()
	assert.Contains(t, combined, "attaaees hazaar")
	assert.NotContains(t, combined, "zero")
}

func TestStream_Split16000AcrossChunks(t *testing.T) {
	s := NewSpeechStreamNormalizer(newTestLogger())
	combined := s.Process("Price 16") + s.Process("000 hai.") + s.Flush()
	assert.Contains(t, combined, "solah hazaar")
	assert.Contains(t, combined, "hai")
	assert.NotContains(t, combined, "zero")
}

func TestStream_CompleteNumberInOneChunk(t *testing.T) {
	s := NewSpeechStreamNormalizer(newTestLogger())
	combined := s.Process("Achha, ") + s.Process("38000") + s.Process(".") + s.Flush()
	assert.Contains(t, combined, "adtees hazaar")
}

func TestStream_NumberAtEndOfStream(t *testing.T) {
	s := NewSpeechStreamNormalizer(newTestLogger())
	combined := s.Process("price 500") + s.Flush()
	assert.Contains(t, combined, "paanch sau")
}

func TestStream_NoNumbers(t *testing.T) {
	s := NewSpeechStreamNormalizer(newTestLogger())
	combined := s.Process("Achha ji ") + s.Process("theek hai") + s.Flush()
	assert.Contains(t, combined, "Achha ji")
	assert.Contains(t, combined, "theek hai")
}

func TestStream_MultipleNumbersAcrossChunks(t *testing.T) {
	s := NewSpeechStreamNormalizer(newTestLogger())
	combined := s.Process("Price 38") +
		s.Process("000, installation 15") +
		s.Process("00 extra.") +
		s.Flush()
	assert.Contains(t, combined, "adtees hazaar")
	assert.Contains(t, combined, "dedh hazaar")
}

func TestStream_SingleDigitNotHeldBack(t *testing.T) {
	s := NewSpeechStreamNormalizer(newTestLogger())
	combined := s.Process("5 star AC") + s.Flush()
	assert.Contains(t, combined, "paanch star AC")
}

func TestStream_EmptyChunks(t *testing.T) {
	s := NewSpeechStreamNormalizer(newTestLogger())
	assert.Equal(t, "", s.Process(""))
	assert.Equal(t, "hello", s.Process("hello"))
	assert.Equal(t, "", s.Flush())
}

func TestStream_EmptyChunkWhileBuffering(t *testing.T) {
	s := NewSpeechStreamNormalizer(newTestLogger())
	assert.Equal(t, "", s.Process("28"))
	assert.Equal(t, "", s.Process(""))
	combined := s.Process("000 ka hai") + s.Flush()
	assert.Contains(t, combined, "attaaees hazaar")
}

func TestStream_FlushResetsState(t *testing.T) {
	s := NewSpeechStreamNormalizer(newTestLogger())
	_ = s.Process("38")
	assert.Contains(t, s.Flush(), "adtees")
	// next turn starts clean
	assert.Equal(t, "", s.Flush())
	assert.Contains(t, s.Process("16000 ka hai")+s.Flush(), "solah hazaar")
}

// Chunk-invariance: splitting the turn text at any byte must not change the
// concatenated normalized output.
func TestStream_ChunkInvariance(t *testing.T) {
	texts := []string{
		"Achha, 28000. theek hai",
		"Price 16000 hai. Installation 1500 extra.",
		"42 hazaar? Online pe toh 38000 mein tha.",
	}
	for _, text := range texts {
		whole := func() string {
			s := NewSpeechStreamNormalizer(newTestLogger())
			return s.Process(text) + s.Flush()
		}()
		for cut := 0; cut <= len(text); cut++ {
			s := NewSpeechStreamNormalizer(newTestLogger())
			got := s.Process(text[:cut]) + s.Process(text[cut:]) + s.Flush()
			assert.Equal(t, whole, got, "split at %d of %q", cut, text)
		}
	}
}
