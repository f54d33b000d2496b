// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.

// Package internal_analysis replays saved transcripts against the behavioral
// rules the live pipeline is supposed to uphold, and scores the conversation
// across quality dimensions. Failures are reported as data, never as errors:
// the analyzer describes defects, it does not enforce anything.
package internal_analysis

import (
	"fmt"
	"regexp"
)

// =============================================================================
// Constraint checking
// =============================================================================

var (
	devanagariRe   = regexp.MustCompile(`[\x{0900}-\x{097F}]`)
	questionRe     = regexp.MustCompile(`\?`)
	actionMarkerRe = regexp.MustCompile(`[\*\(\[][a-zA-Z\s]+[\*\)\]]`)
	englishParenRe = regexp.MustCompile(`\([A-Z][a-z][^)]*?\)`)
	endCallTextRe  = regexp.MustCompile(`(?i)\[end_call\]`)

	inventedDetailRes = []struct {
		re   *regexp.Regexp
		desc string
	}{
		{regexp.MustCompile(`(?i)\b(Voltas|LG|Daikin)\b.*\b(purana|old)\b`), "invented old AC brand"},
		{regexp.MustCompile(`(?i)\b\d+\s*(saal|year).*\bpurana\b`), "invented specific age"},
		{regexp.MustCompile(`(?i)\b(Andheri|Borivali|Malad|Bandra|Juhu)\b`), "invented specific neighborhood"},
	}
)

const (
	maxQuestionsPerTurn = 2
	maxTurnChars        = 300
)

// Rule is one behavioral constraint applied to every agent turn.
type Rule struct {
	Name  string
	Check func(text string) (bool, string)
}

// TurnCheck is the outcome of running the full rule catalog on one turn.
type TurnCheck struct {
	Passed   bool              `json:"passed"`
	Score    float64           `json:"score"`
	Checks   map[string]bool   `json:"checks"`
	Failures map[string]string `json:"failures,omitempty"`
	Text     string            `json:"text"`
}

// ConstraintChecker validates agent turns against the caller behavior rules.
type ConstraintChecker struct {
	rules []Rule
}

// NewConstraintChecker builds the checker with the default rule catalog.
func NewConstraintChecker() *ConstraintChecker {
	return &ConstraintChecker{rules: defaultRules()}
}

func defaultRules() []Rule {
	return []Rule{
		{"no_devanagari", checkNoDevanagari},
		{"single_question", checkSingleQuestion},
		{"response_length", checkResponseLength},
		{"no_action_markers", checkNoActionMarkers},
		{"no_newlines", checkNoNewlines},
		{"no_english_translations", checkNoEnglishTranslations},
		{"no_end_call_text", checkNoEndCallText},
		{"no_invented_details", checkNoInventedDetails},
	}
}

func clip(text string, n int) string {
	r := []rune(text)
	if len(r) <= n {
		return text
	}
	return string(r[:n])
}

func checkNoDevanagari(text string) (bool, string) {
	if m := devanagariRe.FindString(text); m != "" {
		return false, fmt.Sprintf("Devanagari found: '%s' in '%s'", m, clip(text, 80))
	}
	return true, ""
}

func checkSingleQuestion(text string) (bool, string) {
	if n := len(questionRe.FindAllString(text, -1)); n > maxQuestionsPerTurn {
		return false, fmt.Sprintf("Stacked %d questions: '%s'", n, clip(text, 100))
	}
	return true, ""
}

func checkResponseLength(text string) (bool, string) {
	if n := len([]rune(text)); n > maxTurnChars {
		return false, fmt.Sprintf("Response too long (%d chars): '%s...'", n, clip(text, 80))
	}
	return true, ""
}

func checkNoActionMarkers(text string) (bool, string) {
	if m := actionMarkerRe.FindString(text); m != "" {
		return false, fmt.Sprintf("Action marker: '%s'", m)
	}
	return true, ""
}

func checkNoNewlines(text string) (bool, string) {
	for _, r := range text {
		if r == '\n' {
			return false, fmt.Sprintf("Newline found in: '%s'", clip(text, 80))
		}
	}
	return true, ""
}

func checkNoEnglishTranslations(text string) (bool, string) {
	if m := englishParenRe.FindString(text); m != "" {
		return false, fmt.Sprintf("English translation: '%s'", m)
	}
	return true, ""
}

func checkNoEndCallText(text string) (bool, string) {
	if m := endCallTextRe.FindString(text); m != "" {
		return false, fmt.Sprintf("end_call as text: '%s'", m)
	}
	return true, ""
}

func checkNoInventedDetails(text string) (bool, string) {
	for _, p := range inventedDetailRes {
		if p.re.MatchString(text) {
			return false, fmt.Sprintf("%s: '%s'", p.desc, clip(text, 100))
		}
	}
	return true, ""
}

// CheckAll runs every rule against one agent turn. The per-turn score is the
// fraction of rules that passed.
func (c *ConstraintChecker) CheckAll(text string) TurnCheck {
	result := TurnCheck{
		Checks:   make(map[string]bool, len(c.rules)),
		Failures: make(map[string]string),
		Text:     text,
	}

	passed := 0
	for _, rule := range c.rules {
		ok, reason := rule.Check(text)
		result.Checks[rule.Name] = ok
		if ok {
			passed++
		} else {
			result.Failures[rule.Name] = reason
		}
	}

	result.Passed = passed == len(c.rules)
	result.Score = float64(passed) / float64(len(c.rules))
	return result
}
