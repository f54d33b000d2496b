// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.

// Package internal_speech turns normalized Hinglish text into telephony
// audio via the Sarvam TTS service. The streaming synthesizer keeps a
// websocket open for the lifetime of a call; the REST client is a one-shot
// fallback used by smoke tests and the greeting.
package internal_speech

import (
	"fmt"

	"github.com/rapidaai/pkg/commons"
	"github.com/rapidaai/pkg/utils"
)

const (
	SarvamStreamUrl = "wss://api.sarvam.ai/text-to-speech/ws"
	SarvamBaseUrl   = "https://api.sarvam.ai"

	DefaultModel      = "bulbul:v2"
	DefaultSpeaker    = "anushka"
	DefaultLanguage   = "hi-IN"
	DefaultSampleRate = 8000 // telephony
)

// Encoding is the raw audio precision requested from Sarvam.
type Encoding string

const (
	Linear16 Encoding = "linear16"
	MuLaw8   Encoding = "mulaw"
)

type sarvamOption struct {
	logger    commons.Logger
	modelOpts utils.Option
	key       string
}

// Recognized modelOpts keys: "speak.model", "speak.voice.id",
// "speak.language", "speak.sample_rate", "speak.encoding". Anything absent
// falls back to the telephony defaults above.
func newSarvamOption(logger commons.Logger, apiKey string, opts utils.Option) (*sarvamOption, error) {
	if utils.IsEmpty(apiKey) {
		return nil, fmt.Errorf("sarvam: api key must not be empty")
	}
	if opts == nil {
		opts = utils.Option{}
	}
	return &sarvamOption{
		logger:    logger,
		modelOpts: opts,
		key:       apiKey,
	}, nil
}

func (so *sarvamOption) GetKey() string {
	return so.key
}

func (so *sarvamOption) GetModel() string {
	if v, err := so.modelOpts.GetString("speak.model"); err == nil && v != "" {
		return v
	}
	return DefaultModel
}

func (so *sarvamOption) GetSpeaker() string {
	if v, err := so.modelOpts.GetString("speak.voice.id"); err == nil && v != "" {
		return v
	}
	return DefaultSpeaker
}

func (so *sarvamOption) GetLanguage() string {
	if v, err := so.modelOpts.GetString("speak.language"); err == nil && v != "" {
		return v
	}
	return DefaultLanguage
}

func (so *sarvamOption) GetSampleRate() int {
	if v, err := so.modelOpts.GetInt64("speak.sample_rate"); err == nil && v > 0 {
		return int(v)
	}
	return DefaultSampleRate
}

func (so *sarvamOption) GetEncoding() string {
	if v, err := so.modelOpts.GetString("speak.encoding"); err == nil && v != "" {
		return v
	}
	return string(Linear16)
}

func (so *sarvamOption) GetTextToSpeechRequest(contextId, text string) map[string]interface{} {
	return map[string]interface{}{
		"request_id":      contextId,
		"data":            text,
		"binary_response": false,
		"precision":       so.GetEncoding(),
		"sample_rate":     so.GetSampleRate(),
	}
}
