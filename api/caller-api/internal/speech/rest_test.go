package internal_speech

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rapidaai/pkg/utils"
)

func newRestSynthesizer(t *testing.T, baseUrl string) *sarvamRestSynthesizer {
	t.Helper()
	opt, err := newSarvamOption(newTestLogger(), "test-key", utils.Option{})
	require.NoError(t, err)
	client := resty.New().
		SetBaseURL(baseUrl).
		SetHeader("API-Subscription-Key", "test-key").
		SetHeader("Content-Type", "application/json")
	return &sarvamRestSynthesizer{sarvamOption: opt, client: client}
}

func TestRestSynthesize(t *testing.T) {
	audio := []byte{0x01, 0x02, 0x03, 0x04}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/text-to-speech", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("API-Subscription-Key"))

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, []interface{}{"namaste"}, body["inputs"])
		assert.Equal(t, DefaultLanguage, body["target_language_code"])
		assert.Equal(t, DefaultSpeaker, body["speaker"])
		assert.Equal(t, DefaultModel, body["model"])

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"request_id": "r-1",
			"audios":     []string{base64.StdEncoding.EncodeToString(audio)},
		})
	}))
	defer server.Close()

	got, err := newRestSynthesizer(t, server.URL).Synthesize(context.Background(), "namaste")
	require.NoError(t, err)
	assert.Equal(t, audio, got)
}

func TestRestSynthesize_ApiError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "forbidden", http.StatusForbidden)
	}))
	defer server.Close()

	_, err := newRestSynthesizer(t, server.URL).Synthesize(context.Background(), "namaste")
	assert.Error(t, err)
}

func TestRestSynthesize_EmptyResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{"request_id": "r-1", "audios": []string{}})
	}))
	defer server.Close()

	_, err := newRestSynthesizer(t, server.URL).Synthesize(context.Background(), "namaste")
	assert.Error(t, err)
}
