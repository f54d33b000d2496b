// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.

package internal_speech

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/go-resty/resty/v2"

	"github.com/rapidaai/pkg/commons"
	"github.com/rapidaai/pkg/utils"
)

// RestSynthesizer does one-shot synthesis over HTTP. Used for the scripted
// greeting and API smoke tests, where streaming buys nothing.
type RestSynthesizer interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
}

type sarvamRestSynthesizer struct {
	*sarvamOption
	client *resty.Client
}

type ttsResponse struct {
	RequestId string   `json:"request_id"`
	Audios    []string `json:"audios"`
}

// NewSarvamRestSynthesizer creates the one-shot HTTP TTS client. opts may be
// nil; see newSarvamOption for the recognized keys.
func NewSarvamRestSynthesizer(logger commons.Logger, apiKey string, opts utils.Option) (RestSynthesizer, error) {
	opt, err := newSarvamOption(logger, apiKey, opts)
	if err != nil {
		return nil, err
	}
	client := resty.New().
		SetBaseURL(SarvamBaseUrl).
		SetHeader("API-Subscription-Key", apiKey).
		SetHeader("Content-Type", "application/json")
	return &sarvamRestSynthesizer{sarvamOption: opt, client: client}, nil
}

func (sr *sarvamRestSynthesizer) Synthesize(ctx context.Context, text string) ([]byte, error) {
	var out ttsResponse
	resp, err := sr.client.R().
		SetContext(ctx).
		SetBody(map[string]interface{}{
			"inputs":               []string{text},
			"target_language_code": sr.GetLanguage(),
			"speaker":              sr.GetSpeaker(),
			"pitch":                0,
			"pace":                 1.0,
			"loudness":             1.0,
			"speech_sample_rate":   sr.GetSampleRate(),
			"enable_preprocessing": true,
			"model":                sr.GetModel(),
		}).
		SetResult(&out).
		Post("/text-to-speech")
	if err != nil {
		sr.logger.Errorf("sarvam-tts: synthesis request failed: %v", err)
		return nil, fmt.Errorf("sarvam: text-to-speech request: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("sarvam: text-to-speech returned %s", resp.Status())
	}
	if len(out.Audios) == 0 {
		return nil, fmt.Errorf("sarvam: empty synthesis response")
	}

	audio, err := base64.StdEncoding.DecodeString(out.Audios[0])
	if err != nil {
		return nil, fmt.Errorf("sarvam: decode synthesis payload: %w", err)
	}
	return audio, nil
}
