// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.

package internal_normalizers

import (
	internal_hinglish "github.com/rapidaai/api/caller-api/internal/hinglish"
	"github.com/rapidaai/pkg/commons"
)

type devanagariNormalizer struct {
	logger commons.Logger
}

// NewDevanagariNormalizer transliterates leaked Devanagari into Romanized
// Hindi. The fast path is free when the text is already clean.
func NewDevanagariNormalizer(logger commons.Logger) Normalizer {
	return &devanagariNormalizer{logger: logger}
}

func (n *devanagariNormalizer) Name() string {
	return "devanagari"
}

func (n *devanagariNormalizer) Normalize(text string) string {
	return internal_hinglish.TransliterateDevanagari(text)
}

type numberToWordNormalizer struct {
	logger commons.Logger
}

// NewNumberToWordNormalizer verbalizes digit numerals into Hindi words.
func NewNumberToWordNormalizer(logger commons.Logger) Normalizer {
	return &numberToWordNormalizer{logger: logger}
}

func (n *numberToWordNormalizer) Name() string {
	return "number-to-word"
}

func (n *numberToWordNormalizer) Normalize(text string) string {
	return internal_hinglish.ReplaceNumbers(text)
}
