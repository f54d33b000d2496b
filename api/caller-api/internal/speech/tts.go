// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.

package internal_speech

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/rapidaai/pkg/commons"
	"github.com/rapidaai/pkg/utils"
)

// Synthesizer streams synthesized audio for a live call.
type Synthesizer interface {
	// Initialize opens the upstream connection and starts the listener.
	Initialize() error

	// Speak submits one utterance for synthesis. Audio arrives on the
	// OnSpeech callback, tagged with contextId.
	Speak(ctx context.Context, contextId, text string) error

	Close(ctx context.Context) error
}

// SynthesizerCallbacks receives audio from the stream.
type SynthesizerCallbacks struct {
	OnSpeech func(contextId string, audio []byte)
	OnEnd    func(contextId string)
}

type sarvamSynthesizer struct {
	*sarvamOption
	ctx       context.Context
	mu        sync.Mutex
	contextId string

	connection *websocket.Conn
	callbacks  SynthesizerCallbacks
}

// NewSarvamSynthesizer creates a streaming Sarvam TTS client. The returned
// synthesizer must be Initialized before use. opts may be nil; see
// newSarvamOption for the recognized keys.
func NewSarvamSynthesizer(
	ctx context.Context,
	logger commons.Logger,
	apiKey string,
	opts utils.Option,
	callbacks SynthesizerCallbacks,
) (Synthesizer, error) {
	opt, err := newSarvamOption(logger, apiKey, opts)
	if err != nil {
		return nil, err
	}
	return &sarvamSynthesizer{
		sarvamOption: opt,
		ctx:          ctx,
		callbacks:    callbacks,
	}, nil
}

func (st *sarvamSynthesizer) Initialize() error {
	st.mu.Lock()
	defer st.mu.Unlock()

	headers := map[string][]string{
		"Authorization": {"Bearer " + st.GetKey()},
	}
	conn, _, err := websocket.DefaultDialer.Dial(SarvamStreamUrl, headers)
	if err != nil {
		st.logger.Errorf("sarvam-tts: unable to connect to websocket err: %v", err)
		return err
	}
	st.connection = conn
	go st.speechCallback(st.ctx)
	return nil
}

func (st *sarvamSynthesizer) speechCallback(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			st.logger.Infof("sarvam-tts: context cancelled, stopping response listener")
			return
		default:
			_, message, err := st.connection.ReadMessage()
			if err != nil {
				st.logger.Errorf("sarvam-tts: error reading from websocket: %v", err)
				return
			}

			var payload map[string]interface{}
			if err := json.Unmarshal(message, &payload); err != nil {
				st.logger.Errorf("sarvam-tts: error parsing audio chunk: %v", err)
				continue
			}

			switch payload["type"] {
			case "audio_end":
				if st.callbacks.OnEnd != nil {
					st.callbacks.OnEnd(st.currentContextId())
				}
			case "audio":
				content, ok := payload["audio_content"].(string)
				if !ok {
					continue
				}
				audio, err := base64.StdEncoding.DecodeString(content)
				if err != nil {
					st.logger.Errorf("sarvam-tts: error decoding audio payload: %v", err)
					continue
				}
				if st.callbacks.OnSpeech != nil {
					st.callbacks.OnSpeech(st.currentContextId(), audio)
				}
			}
		}
	}
}

func (st *sarvamSynthesizer) currentContextId() string {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.contextId
}

func (st *sarvamSynthesizer) Speak(ctx context.Context, contextId, text string) error {
	st.mu.Lock()
	defer st.mu.Unlock()

	st.contextId = contextId
	if err := st.connection.WriteJSON(st.GetTextToSpeechRequest(contextId, text)); err != nil {
		st.logger.Errorf("sarvam-tts: error while writing request to websocket %v", err)
		return err
	}
	return nil
}

func (st *sarvamSynthesizer) Close(ctx context.Context) error {
	if st.connection == nil {
		return nil
	}
	return st.connection.Close()
}
