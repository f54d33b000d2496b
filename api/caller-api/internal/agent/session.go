// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.

// Package internal_agent runs one outbound price-enquiry call end to end:
// caller text in, model deltas normalized and spoken out, transcript and
// analysis persisted when the call ends.
package internal_agent

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	internal_analysis "github.com/rapidaai/api/caller-api/internal/analysis"
	internal_chatcontext "github.com/rapidaai/api/caller-api/internal/chatcontext"
	internal_llm "github.com/rapidaai/api/caller-api/internal/llm"
	internal_normalizers "github.com/rapidaai/api/caller-api/internal/normalizers"
	internal_speech "github.com/rapidaai/api/caller-api/internal/speech"
	internal_transcript "github.com/rapidaai/api/caller-api/internal/transcript"
	internal_type "github.com/rapidaai/api/caller-api/internal/type"
	"github.com/rapidaai/pkg/commons"
)

// DefaultMaxCallDuration caps a runaway call.
const DefaultMaxCallDuration = 2 * time.Minute

// Config describes one call.
type Config struct {
	ContextId          string
	StoreName          string
	ProductDescription string
	Phone              string
	Room               string

	// SystemPrompt is the persona prompt for the model.
	SystemPrompt string

	// Greeting is spoken verbatim when the call connects. It is recorded
	// in the transcript but kept out of the model context; the prompt
	// already tells the model it was said.
	Greeting string

	TranscriptDir   string
	MaxCallDuration time.Duration
}

// Session is one live call. Methods are safe for concurrent use; audio and
// transport callbacks arrive from different goroutines.
type Session struct {
	logger      commons.Logger
	cfg         Config
	caller      internal_llm.Caller
	synthesizer internal_speech.Synthesizer
	store       internal_transcript.Store

	sanitizer  *internal_chatcontext.Sanitizer
	normalizer internal_type.StreamNormalizer

	mu        sync.Mutex
	history   internal_chatcontext.History
	messages  []internal_transcript.Message
	ended     bool
	startedAt time.Time
}

// NewSession wires a call session. synthesizer and store may be nil; text
// processing and transcript collection still run without them.
func NewSession(
	logger commons.Logger,
	cfg Config,
	caller internal_llm.Caller,
	synthesizer internal_speech.Synthesizer,
	store internal_transcript.Store,
) *Session {
	if cfg.ContextId == "" {
		cfg.ContextId = uuid.New().String()
	}
	if cfg.MaxCallDuration <= 0 {
		cfg.MaxCallDuration = DefaultMaxCallDuration
	}
	return &Session{
		logger:      logger,
		cfg:         cfg,
		caller:      caller,
		synthesizer: synthesizer,
		store:       store,
		sanitizer:   internal_chatcontext.NewSanitizer(logger),
		normalizer:  internal_normalizers.NewSpeechStreamNormalizer(logger),
	}
}

// ContextId returns the call identifier.
func (s *Session) ContextId() string {
	return s.cfg.ContextId
}

// Start begins the call: the scripted greeting is spoken and recorded.
func (s *Session) Start(ctx context.Context) error {
	s.mu.Lock()
	s.startedAt = time.Now()
	s.history = internal_chatcontext.History{
		{Role: internal_chatcontext.RoleSystem, Text: s.cfg.SystemPrompt},
	}
	s.mu.Unlock()

	s.logger.Infof("call started: contextId=%s, store=%s", s.cfg.ContextId, s.cfg.StoreName)

	if s.cfg.Greeting == "" {
		return nil
	}
	s.record(internal_transcript.RoleAgent, s.cfg.Greeting)
	return s.speak(ctx, s.normalizer.Process(s.cfg.Greeting)+s.normalizer.Flush())
}

// HandleCallerText processes one utterance from the far side and streams
// the agent's reply. Returns true when the model ended the call.
func (s *Session) HandleCallerText(ctx context.Context, text string) (bool, error) {
	s.mu.Lock()
	if s.ended {
		s.mu.Unlock()
		return true, nil
	}
	if time.Since(s.startedAt) > s.cfg.MaxCallDuration {
		s.ended = true
		s.mu.Unlock()
		s.logger.Infof("call timeout reached: contextId=%s", s.cfg.ContextId)
		return true, nil
	}
	s.history = s.history.Append(internal_chatcontext.RoleCaller, text)
	chatCtx := s.sanitizer.Sanitize(s.history)
	s.mu.Unlock()

	s.record(internal_transcript.RoleCaller, text)

	var reply string
	err := s.caller.StreamChatCompletion(ctx, s.cfg.ContextId, chatCtx, func(c internal_type.Chunk) error {
		switch chunk := s.normalizer.ProcessChunk(c).(type) {
		case internal_type.DeltaChunk:
			if raw, ok := c.(internal_type.DeltaChunk); ok {
				reply += raw.Delta
			}
			return s.speak(ctx, chunk.Delta)
		case internal_type.ToolCallChunk:
			if chunk.Name == internal_llm.EndCallTool {
				s.logger.Infof("model requested hangup: contextId=%s", s.cfg.ContextId)
				s.mu.Lock()
				s.ended = true
				s.mu.Unlock()
			}
			return nil
		default:
			return nil
		}
	})
	if err != nil {
		return s.Ended(), fmt.Errorf("agent: model turn failed: %w", err)
	}

	// trailing digits held back by the normalizer
	if tail := s.normalizer.Flush(); tail != "" {
		if err := s.speak(ctx, tail); err != nil {
			return s.Ended(), err
		}
	}

	if reply != "" {
		s.mu.Lock()
		s.history = s.history.Append(internal_chatcontext.RoleAgent, reply)
		s.mu.Unlock()
		s.record(internal_transcript.RoleAgent, reply)
	}
	return s.Ended(), nil
}

// MarkInterrupted flags the most recent agent turn as cut off by the far
// side, so the next model turn does not repeat it.
func (s *Session) MarkInterrupted() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := len(s.history) - 1; i >= 0; i-- {
		if s.history[i].Role == internal_chatcontext.RoleAgent {
			s.history[i].Interrupted = true
			break
		}
	}
	for i := len(s.messages) - 1; i >= 0; i-- {
		if s.messages[i].Role == internal_transcript.RoleAgent {
			s.messages[i].Interrupted = true
			break
		}
	}
}

// Ended reports whether the model has hung up or the call timed out.
func (s *Session) Ended() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ended
}

// Transcript returns the collected call record so far.
func (s *Session) Transcript() *internal_transcript.Transcript {
	s.mu.Lock()
	defer s.mu.Unlock()
	msgs := make([]internal_transcript.Message, len(s.messages))
	copy(msgs, s.messages)
	return &internal_transcript.Transcript{
		StoreName:          s.cfg.StoreName,
		ProductDescription: s.cfg.ProductDescription,
		Room:               s.cfg.Room,
		Phone:              s.cfg.Phone,
		Timestamp:          s.startedAt.Format(time.RFC3339),
		Messages:           msgs,
	}
}

// Finish persists the transcript, runs the quality analysis, and indexes
// the call. Safe to call once the conversation is over.
func (s *Session) Finish(ctx context.Context) (transcriptPath, analysisPath string, err error) {
	transcript := s.Transcript()

	transcriptPath, err = internal_transcript.WriteFile(s.cfg.TranscriptDir, transcript)
	if err != nil {
		return "", "", err
	}

	analysisPath, report, err := internal_analysis.AnalyzeAndSave(transcriptPath)
	if err != nil {
		return transcriptPath, "", err
	}
	s.logger.Infof("call analyzed: contextId=%s, overall=%.3f, turns=%d",
		s.cfg.ContextId, report.OverallScore, report.TurnCount)

	if s.store == nil {
		return transcriptPath, analysisPath, nil
	}

	record := &internal_transcript.CallRecord{
		ContextID:          s.cfg.ContextId,
		StoreName:          s.cfg.StoreName,
		ProductDescription: s.cfg.ProductDescription,
		Phone:              s.cfg.Phone,
		Room:               s.cfg.Room,
		TranscriptPath:     transcriptPath,
		AnalysisPath:       analysisPath,
		OverallScore:       report.OverallScore,
		TurnCount:          report.TurnCount,
	}
	if _, err := s.store.Save(ctx, record); err != nil {
		return transcriptPath, analysisPath, err
	}
	return transcriptPath, analysisPath, nil
}

func (s *Session) record(role string, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, internal_transcript.Message{
		Role: role,
		Text: text,
		Time: time.Now().Format(time.RFC3339),
	})
}

func (s *Session) speak(ctx context.Context, text string) error {
	if s.synthesizer == nil || text == "" {
		return nil
	}
	return s.synthesizer.Speak(ctx, s.cfg.ContextId, text)
}
