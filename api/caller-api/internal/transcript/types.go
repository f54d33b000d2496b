// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.

// Package internal_transcript persists completed-call transcripts. Each call
// writes one JSON file (the analyzer's input) and one row in Postgres (the
// dashboard's index). Transcripts are immutable once the call ends.
package internal_transcript

import (
	"time"

	"gorm.io/gorm"
)

// Transcript message roles. The system preamble is never persisted; only
// what was actually said on the call.
const (
	RoleCaller = "user"
	RoleAgent  = "assistant"
)

// Message is one persisted utterance.
type Message struct {
	Role        string `json:"role"`
	Text        string `json:"text"`
	Time        string `json:"time"`
	Interrupted bool   `json:"interrupted,omitempty"`
}

// Transcript is the saved record of one call.
type Transcript struct {
	StoreName          string    `json:"store_name"`
	ProductDescription string    `json:"product_description"`
	Room               string    `json:"room"`
	Phone              string    `json:"phone"`
	Timestamp          string    `json:"timestamp"`
	Messages           []Message `json:"messages"`
}

// AgentMessages returns the agent-originated messages in order.
func (t *Transcript) AgentMessages() []Message {
	var out []Message
	for _, m := range t.Messages {
		if m.Role == RoleAgent {
			out = append(out, m)
		}
	}
	return out
}

// CallRecord indexes a saved transcript in Postgres.
type CallRecord struct {
	Id                 uint64    `json:"id" gorm:"type:bigint;primaryKey;autoIncrement"`
	ContextID          string    `json:"contextId" gorm:"column:context_id;type:varchar(36);not null;uniqueIndex"`
	StoreName          string    `json:"storeName" gorm:"column:store_name;type:varchar(200);not null"`
	ProductDescription string    `json:"productDescription" gorm:"column:product_description;type:varchar(500);not null;default:''"`
	Phone              string    `json:"phone" gorm:"column:phone;type:varchar(50);not null;default:''"`
	Room               string    `json:"room" gorm:"column:room;type:varchar(200);not null;default:''"`
	TranscriptPath     string    `json:"transcriptPath" gorm:"column:transcript_path;type:text;not null"`
	AnalysisPath       string    `json:"analysisPath" gorm:"column:analysis_path;type:text;not null;default:''"`
	OverallScore       float64   `json:"overallScore" gorm:"column:overall_score;type:numeric;not null;default:0"`
	TurnCount          int       `json:"turnCount" gorm:"column:turn_count;type:int;not null;default:0"`
	CreatedDate        time.Time `json:"createdDate" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP;<-:create"`
}

func (CallRecord) TableName() string {
	return "call_records"
}

func (cr *CallRecord) BeforeCreate(tx *gorm.DB) (err error) {
	if cr.CreatedDate.IsZero() {
		cr.CreatedDate = time.Now()
	}
	return nil
}
