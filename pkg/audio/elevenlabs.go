package audio

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ElevenLabs synthesizes speech through the ElevenLabs HTTP API. The API key
// is passed in explicitly; this client never reads the environment.
type ElevenLabs struct {
	endpoint        string
	apiKey          string
	model           string
	stability       float64
	similarityBoost float64
	httpClient      *http.Client
}

func NewElevenLabs(apiKey, model string, stability, similarityBoost float64) *ElevenLabs {
	return &ElevenLabs{
		endpoint:        "https://api.elevenlabs.io/v1/text-to-speech",
		apiKey:          apiKey,
		model:           model,
		stability:       stability,
		similarityBoost: similarityBoost,
		httpClient:      &http.Client{Timeout: 2 * time.Minute},
	}
}

type synthesisRequest struct {
	Text          string        `json:"text"`
	ModelID       string        `json:"model_id"`
	VoiceSettings voiceSettings `json:"voice_settings"`
}

type voiceSettings struct {
	Stability       float64 `json:"stability"`
	SimilarityBoost float64 `json:"similarity_boost"`
}

func (c *ElevenLabs) Synthesize(ctx context.Context, text, voice string) ([]byte, error) {
	payload, err := json.Marshal(synthesisRequest{
		Text:    text,
		ModelID: c.model,
		VoiceSettings: voiceSettings{
			Stability:       c.stability,
			SimilarityBoost: c.similarityBoost,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("could not marshal synthesis request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"/"+voice, bytes.NewBuffer(payload))
	if err != nil {
		return nil, fmt.Errorf("could not create synthesis request: %w", err)
	}
	req.Header.Set("xi-api-key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "audio/mpeg")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error sending request to text-to-speech api: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("text-to-speech request failed: %d %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return io.ReadAll(resp.Body)
}
