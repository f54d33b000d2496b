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

// Reasoning models wrap deliberation in <think>...</think>. None of it is
// speakable. In a stream the close tag may not have arrived yet, so an
// unterminated open tag swallows everything after it.
var (
	thinkRe     = regexp.MustCompile(`(?s)<think>.*?</think>`)
	thinkOpenRe = regexp.MustCompile(`(?s)<think>.*`)
)

type thinkTagNormalizer struct {
	logger commons.Logger
}

// NewThinkTagNormalizer strips reasoning-aside blocks from model output.
func NewThinkTagNormalizer(logger commons.Logger) Normalizer {
	return &thinkTagNormalizer{logger: logger}
}

func (n *thinkTagNormalizer) Name() string {
	return "think-tag"
}

func (n *thinkTagNormalizer) Normalize(text string) string {
	text = thinkRe.ReplaceAllString(text, "")
	return thinkOpenRe.ReplaceAllString(text, "")
}
