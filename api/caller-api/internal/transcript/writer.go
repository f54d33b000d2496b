// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.

package internal_transcript

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// WriteFile saves the transcript as pretty-printed JSON under dir, named
// <store>_<timestamp>.json, and returns the written path. Devanagari and
// the rupee sign must survive round-tripping, so HTML escaping is off.
func WriteFile(dir string, t *Transcript) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("transcript: unable to create %s: %w", dir, err)
	}

	name := strings.ReplaceAll(t.StoreName, " ", "_")
	if name == "" {
		name = "call"
	}
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.json", name, time.Now().Format("20060102_150405")))

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("transcript: unable to create %s: %w", path, err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(t); err != nil {
		return "", fmt.Errorf("transcript: unable to write %s: %w", path, err)
	}
	return path, nil
}

// ReadFile loads a transcript saved by WriteFile.
func ReadFile(path string) (*Transcript, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("transcript: unable to read %s: %w", path, err)
	}
	var t Transcript
	if err := json.Unmarshal(raw, &t); err != nil {
		return nil, fmt.Errorf("transcript: unable to parse %s: %w", path, err)
	}
	return &t, nil
}
