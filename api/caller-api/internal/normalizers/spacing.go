// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.

package internal_normalizers

import (
	"regexp"

	"github.com/rapidaai/pkg/commons"
)

// Streamed tokens concatenate without whitespace ("puraneAC", "5star",
// "Samsung1"). The fixable boundaries are digit↔letter and a lowercase
// letter running into an uppercase one; two glued lowercase words are not
// detectable and stay as-is.
var (
	digitLetterRe = regexp.MustCompile(`(\d)([A-Za-z])`)
	letterDigitRe = regexp.MustCompile(`([A-Za-z])(\d)`)
	lowerUpperRe  = regexp.MustCompile(`([a-z])([A-Z])`)
	multiSpaceRe  = regexp.MustCompile(` {2,}`)
)

type spacingNormalizer struct {
	logger commons.Logger
}

// NewSpacingNormalizer inserts spaces at glued script boundaries and
// collapses runs of spaces left behind by earlier rewrites.
func NewSpacingNormalizer(logger commons.Logger) Normalizer {
	return &spacingNormalizer{logger: logger}
}

func (n *spacingNormalizer) Name() string {
	return "spacing"
}

func (n *spacingNormalizer) Normalize(text string) string {
	text = digitLetterRe.ReplaceAllString(text, "$1 $2")
	text = letterDigitRe.ReplaceAllString(text, "$1 $2")
	text = lowerUpperRe.ReplaceAllString(text, "$1 $2")
	return multiSpaceRe.ReplaceAllString(text, " ")
}
