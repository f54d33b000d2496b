// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.

package internal_analysis

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	internal_transcript "github.com/rapidaai/api/caller-api/internal/transcript"
)

// DefaultProductType is assumed when a transcript does not say what was
// being bought.
const DefaultProductType = "AC"

const analysisSuffix = ".analysis.json"

// Summary is the human-readable half of a report.
type Summary struct {
	WentRight        []string `json:"went_right"`
	NeedsImprovement []string `json:"needs_improvement"`
}

// Report is the full quality analysis of one saved call.
type Report struct {
	StoreName           string             `json:"store_name"`
	ProductDescription  string             `json:"product_description"`
	Timestamp           string             `json:"timestamp"`
	AnalyzedAt          string             `json:"analyzed_at"`
	OverallScore        float64            `json:"overall_score"`
	Scores              map[string]float64 `json:"scores"`
	TopicsCovered       []string           `json:"topics_covered"`
	TurnCount           int                `json:"turn_count"`
	CorrectNumberEchoed bool               `json:"correct_number_echoed"`
	NumberEchoes        NumberEchoes       `json:"number_echoes"`
	PerTurn             []TurnCheck        `json:"per_turn"`
	Summary             Summary            `json:"summary"`
	Flags               []string           `json:"flags,omitempty"`
}

// AnalyzeTranscript runs the full scoring suite over a saved transcript.
func AnalyzeTranscript(t *internal_transcript.Transcript) Report {
	checker := NewConstraintChecker()
	scorer := NewConversationScorer(checker)

	scores := scorer.ScoreConversation(t.Messages, DefaultProductType)
	echoes := scorer.CheckNumberEchoes(t.Messages)

	return Report{
		StoreName:          t.StoreName,
		ProductDescription: t.ProductDescription,
		Timestamp:          t.Timestamp,
		AnalyzedAt:         time.Now().Format(time.RFC3339),
		OverallScore:       scores.Overall,
		Scores: map[string]float64{
			"constraint":        scores.Constraint,
			"topic":             scores.Topic,
			"price_echo":        scores.PriceEcho,
			"brevity":           scores.Brevity,
			"repetition":        scores.Repetition,
			"product_knowledge": scores.ProductKnowledge,
			"negotiation":       scores.Negotiation,
			"character":         scores.Character,
		},
		TopicsCovered:       scores.TopicsCovered,
		TurnCount:           scores.TurnCount,
		CorrectNumberEchoed: echoes.CorrectNumberEchoed,
		NumberEchoes:        echoes,
		PerTurn:             scores.PerTurn,
		Summary:             generateSummary(scores, echoes),
		Flags:               scores.Flags,
	}
}

// AnalyzeAndSave loads a transcript JSON, analyzes it, and writes the
// report alongside as <name>.analysis.json. Returns the report path.
func AnalyzeAndSave(path string) (string, Report, error) {
	t, err := internal_transcript.ReadFile(path)
	if err != nil {
		return "", Report{}, err
	}

	report := AnalyzeTranscript(t)

	analysisPath := strings.TrimSuffix(path, ".json") + analysisSuffix
	f, err := os.Create(analysisPath)
	if err != nil {
		return "", Report{}, fmt.Errorf("analysis: unable to create %s: %w", analysisPath, err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		return "", Report{}, fmt.Errorf("analysis: unable to write %s: %w", analysisPath, err)
	}
	return analysisPath, report, nil
}

var allTopics = []string{"delivery", "exchange", "installation", "price", "warranty"}

func generateSummary(scores Scores, echoes NumberEchoes) Summary {
	wentRight := []string{}
	needsImprovement := []string{}

	if scores.Constraint == 1.0 {
		wentRight = append(wentRight, "All 8 behavioral constraints passed on every turn")
	} else {
		failed := map[string]bool{}
		for _, turn := range scores.PerTurn {
			for name, passed := range turn.Checks {
				if !passed {
					failed[name] = true
				}
			}
		}
		names := make([]string, 0, len(failed))
		for name := range failed {
			names = append(names, name)
		}
		sort.Strings(names)
		needsImprovement = append(needsImprovement, fmt.Sprintf(
			"Constraint score %d%% — failed checks: %s",
			int(scores.Constraint*100+0.5), strings.Join(names, ", ")))
	}

	covered := map[string]bool{}
	for _, t := range scores.TopicsCovered {
		covered[t] = true
	}
	var missing []string
	for _, t := range allTopics {
		if !covered[t] {
			missing = append(missing, t)
		}
	}
	switch {
	case len(covered) >= 3:
		wentRight = append(wentRight, fmt.Sprintf("Covered %d topics: %s",
			len(covered), strings.Join(scores.TopicsCovered, ", ")))
		if len(covered) == 3 && len(missing) > 0 {
			needsImprovement = append(needsImprovement,
				"Did not cover: "+strings.Join(missing, ", "))
		}
	default:
		listed := strings.Join(scores.TopicsCovered, ", ")
		if listed == "" {
			listed = "none"
		}
		needsImprovement = append(needsImprovement, fmt.Sprintf(
			"Only covered %d topic(s): %s. Missing: %s",
			len(covered), listed, strings.Join(missing, ", ")))
	}

	if echoes.CorrectNumberEchoed {
		wentRight = append(wentRight, fmt.Sprintf(
			"Correctly echoed all %d number(s) from shopkeeper", len(echoes.Echoed)))
	} else if len(echoes.Echoed) > 0 || len(echoes.Missed) > 0 {
		missedNums := make([]string, 0, len(echoes.Missed))
		for _, m := range echoes.Missed {
			missedNums = append(missedNums, m.Number)
		}
		needsImprovement = append(needsImprovement, fmt.Sprintf(
			"Echoed %d, missed %d number(s): %s",
			len(echoes.Echoed), len(echoes.Missed), strings.Join(missedNums, ", ")))
	}

	switch {
	case scores.Brevity == 1.0:
		wentRight = append(wentRight, "Responses were concise (avg < 100 chars)")
	case scores.Brevity >= 0.7:
		wentRight = append(wentRight, "Response length acceptable (avg < 200 chars)")
	default:
		needsImprovement = append(needsImprovement,
			"Responses too long — aim for shorter, more natural replies")
	}

	if scores.Repetition == 1.0 {
		wentRight = append(wentRight, "No repetitive responses detected")
	} else {
		needsImprovement = append(needsImprovement, fmt.Sprintf(
			"Some responses were repetitive (%d%% overlap detected)",
			int((1.0-scores.Repetition)*100+0.5)))
	}

	switch {
	case scores.TurnCount >= 3 && scores.TurnCount <= 8:
		wentRight = append(wentRight, fmt.Sprintf(
			"Good conversation length (%d agent turns)", scores.TurnCount))
	case scores.TurnCount > 8:
		needsImprovement = append(needsImprovement, fmt.Sprintf(
			"Conversation ran long (%d agent turns) — could wrap up sooner", scores.TurnCount))
	}

	return Summary{WentRight: wentRight, NeedsImprovement: needsImprovement}
}
