// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.

package internal_analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"

	internal_transcript "github.com/rapidaai/api/caller-api/internal/transcript"
)

func newScorer() *ConversationScorer {
	return NewConversationScorer(NewConstraintChecker())
}

func caller(text string) internal_transcript.Message {
	return internal_transcript.Message{Role: internal_transcript.RoleCaller, Text: text}
}

func agent(text string) internal_transcript.Message {
	return internal_transcript.Message{Role: internal_transcript.RoleAgent, Text: text}
}

func TestScoreConversation_GoodConversationScoresHigh(t *testing.T) {
	messages := []internal_transcript.Message{
		caller("Haan ji, Samsung hai."),
		agent("Bhaisaab, dedh ton ka paanch star inverter split AC ka rate kya hai?"),
		caller("Adtees hazaar ka hai."),
		agent("Achha, adtees hazaar. Installation free hai ya alag se?"),
		caller("Installation free hai. Warranty ek saal milegi."),
		agent("Theek hai ji, warranty ek saal. Delivery kab tak ho jayegi?"),
		caller("Do din mein."),
		agent("Achha sahi hai. Main sochta hoon, dhanyavaad."),
	}
	result := newScorer().ScoreConversation(messages, DefaultProductType)
	assert.Greater(t, result.Overall, 0.7)
	assert.Contains(t, result.TopicsCovered, "price")
	assert.Equal(t, 4, result.TurnCount)
}

func TestScoreConversation_NoAgentTurnsScoresZero(t *testing.T) {
	messages := []internal_transcript.Message{caller("Hello")}
	result := newScorer().ScoreConversation(messages, DefaultProductType)
	assert.Equal(t, 0.0, result.Overall)
	assert.Contains(t, result.Flags, "no_assistant_messages")
}

func TestScoreConversation_EmptyTranscriptNeverPanics(t *testing.T) {
	result := newScorer().ScoreConversation(nil, DefaultProductType)
	assert.Equal(t, 0.0, result.Overall)
}

func TestDetectTopics(t *testing.T) {
	tests := []struct {
		name     string
		messages []internal_transcript.Message
		topic    string
	}{
		{
			"price via hazaar",
			[]internal_transcript.Message{
				caller("Rate chaalees hazaar ka hai."),
				agent("Achha, chaalees hazaar."),
			},
			"price",
		},
		{
			"warranty",
			[]internal_transcript.Message{
				caller("Warranty do saal ki milegi."),
				agent("Do saal ki warranty, theek hai."),
			},
			"warranty",
		},
		{
			"installation",
			[]internal_transcript.Message{
				agent("Installation ka kya charge hai?"),
				caller("Installation free hai."),
			},
			"installation",
		},
	}
	scorer := newScorer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Contains(t, scorer.DetectTopics(tt.messages), tt.topic)
		})
	}
}

func TestCheckPriceEcho(t *testing.T) {
	scorer := newScorer()

	echoed := []internal_transcript.Message{
		caller("Samsung ka 38000 ka hai."),
		agent("Achha, adtees hazaar. Theek hai."),
	}
	assert.Equal(t, 1.0, scorer.CheckPriceEcho(echoed))

	ignored := []internal_transcript.Message{
		caller("Samsung ka 38000 ka hai."),
		agent("Achha, thoda zyada hai. Kam karo."),
	}
	assert.Equal(t, 0.0, scorer.CheckPriceEcho(ignored))

	noPrice := []internal_transcript.Message{
		caller("Haan ji, Samsung hai."),
		agent("Achha ji."),
	}
	assert.Equal(t, 0.5, scorer.CheckPriceEcho(noPrice))
}

func TestCheckPriceEcho_WordForm(t *testing.T) {
	// Price stated in words, echoed in digits.
	messages := []internal_transcript.Message{
		caller("Yeh saintees hazaar ka hai."),
		agent("37000, theek hai. Installation free hai?"),
	}
	assert.Equal(t, 1.0, newScorer().CheckPriceEcho(messages))
}

func TestCheckNumberEchoes(t *testing.T) {
	scorer := newScorer()

	messages := []internal_transcript.Message{
		caller("Warranty 2 saal ki milegi."),
		agent("Achha, 2 saal warranty. Theek hai."),
	}
	result := scorer.CheckNumberEchoes(messages)
	assert.True(t, result.CorrectNumberEchoed)
	assert.Len(t, result.Echoed, 1)
	assert.Empty(t, result.Missed)

	missed := []internal_transcript.Message{
		caller("Warranty 2 saal ki milegi."),
		agent("Achha, 1 saal warranty. Theek hai."),
	}
	result = scorer.CheckNumberEchoes(missed)
	assert.False(t, result.CorrectNumberEchoed)
	assert.Len(t, result.Missed, 1)
	assert.Equal(t, "2", result.Missed[0].Number)
}

func TestCheckNumberEchoes_WordFormCounts(t *testing.T) {
	messages := []internal_transcript.Message{
		caller("38000 ka lagega."),
		agent("Adtees hazaar, achha. Kuch kam ho sakta hai?"),
	}
	result := newScorer().CheckNumberEchoes(messages)
	assert.True(t, result.CorrectNumberEchoed)
}

func TestCheckCallReadiness(t *testing.T) {
	scorer := newScorer()

	insufficient := []internal_transcript.Message{
		caller("Rate chaalees hazaar hai."),
		agent("Achha chaalees hazaar."),
	}
	assert.False(t, scorer.CheckCallReadiness(insufficient))

	ready := []internal_transcript.Message{
		caller("Rate chaalees hazaar hai."),
		agent("Achha. Installation kya lagega?"),
		caller("Installation free. Warranty ek saal ki milegi."),
		agent("Theek hai ji."),
	}
	assert.True(t, scorer.CheckCallReadiness(ready))
}

func TestScoreConversation_BrevityHighForShortTurns(t *testing.T) {
	messages := []internal_transcript.Message{
		agent("Haan ji."),
		agent("Rate bataaiye."),
	}
	result := newScorer().ScoreConversation(messages, DefaultProductType)
	assert.Equal(t, 1.0, result.Brevity)
}

func TestScoreConversation_RepetitionDetected(t *testing.T) {
	messages := []internal_transcript.Message{
		agent("Samsung dedh ton ka AC ka rate kya hai bhaisaab?"),
		agent("Samsung dedh ton ka AC ka rate kya hai bhaisaab?"),
	}
	result := newScorer().ScoreConversation(messages, DefaultProductType)
	assert.Less(t, result.Repetition, 1.0)
}

func TestScoreProductKnowledge(t *testing.T) {
	scorer := newScorer()

	fluent := []internal_transcript.Message{
		agent("Dedh ton ka paanch star inverter split AC chahiye, copper coil wala."),
	}
	assert.Equal(t, 1.0, scorer.ScoreProductKnowledge(fluent, "AC"))

	vague := []internal_transcript.Message{
		agent("AC chahiye bas, achha wala."),
	}
	assert.Equal(t, 0.0, scorer.ScoreProductKnowledge(vague, "AC"))

	// Unknown product type falls back to the AC vocabulary.
	assert.Equal(t, 1.0, scorer.ScoreProductKnowledge(fluent, "toaster"))
}

func TestScoreNegotiationEffectiveness(t *testing.T) {
	scorer := newScorer()

	haggling := []internal_transcript.Message{
		agent("Online toh sasta mil raha hai. Best price kya hoga? Kuch discount milega?"),
	}
	assert.Equal(t, 1.0, scorer.ScoreNegotiationEffectiveness(haggling))

	passive := []internal_transcript.Message{
		agent("Achha theek hai ji, le lenge."),
	}
	assert.Equal(t, 0.0, scorer.ScoreNegotiationEffectiveness(passive))
}

func TestScoreCharacterMaintenance(t *testing.T) {
	scorer := newScorer()

	inCharacter := []internal_transcript.Message{
		agent("Achha bhaisaab, rate kya hai?"),
		agent("Theek hai ji, dhanyavaad."),
	}
	assert.Equal(t, 1.0, scorer.ScoreCharacterMaintenance(inCharacter))

	broken := []internal_transcript.Message{
		agent("As an assistant, I cannot negotiate prices."),
		agent("Theek hai ji."),
	}
	assert.Equal(t, 0.5, scorer.ScoreCharacterMaintenance(broken))
}
