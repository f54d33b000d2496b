// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.

package internal_normalizers

import (
	"regexp"
	"strings"

	"github.com/rapidaai/pkg/commons"
)

// Roleplay stage directions the model sometimes emits: *confused*,
// (laughs), [pauses]. Reading them aloud breaks the illusion instantly.
var actionMarkerRe = regexp.MustCompile(`[\*\(\[][a-zA-Z\s]+[\*\)\]]`)

type actionMarkerNormalizer struct {
	logger commons.Logger
}

// NewActionMarkerNormalizer strips stage-direction markers.
func NewActionMarkerNormalizer(logger commons.Logger) Normalizer {
	return &actionMarkerNormalizer{logger: logger}
}

func (n *actionMarkerNormalizer) Name() string {
	return "action-marker"
}

func (n *actionMarkerNormalizer) Normalize(text string) string {
	return actionMarkerRe.ReplaceAllString(text, "")
}

type newlineNormalizer struct {
	logger commons.Logger
}

// NewNewlineNormalizer flattens line breaks; the speech engine treats a
// newline as a hard stop mid-sentence.
func NewNewlineNormalizer(logger commons.Logger) Normalizer {
	return &newlineNormalizer{logger: logger}
}

func (n *newlineNormalizer) Name() string {
	return "newline"
}

func (n *newlineNormalizer) Normalize(text string) string {
	text = strings.ReplaceAll(text, "\r\n", " ")
	text = strings.ReplaceAll(text, "\n", " ")
	return strings.ReplaceAll(text, "\r", " ")
}
