package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// GoogleTranslator calls the Google Cloud Translation REST API. The whole
// batch goes out as one request.
type GoogleTranslator struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
}

func NewGoogleTranslator(endpoint, apiKey string) *GoogleTranslator {
	return &GoogleTranslator{
		endpoint: endpoint,
		apiKey:   apiKey,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

type googleTranslateRequest struct {
	Q      []string `json:"q"`
	Target string   `json:"target"`
	Source string   `json:"source,omitempty"`
	Format string   `json:"format"`
}

type googleTranslateResponse struct {
	Data struct {
		Translations []struct {
			TranslatedText string `json:"translatedText"`
		} `json:"translations"`
	} `json:"data"`
}

func (t *GoogleTranslator) Translate(ctx context.Context, texts []string, targetLang, sourceLang string) ([]string, error) {
	if t.apiKey == "" {
		return nil, fmt.Errorf("translate API key is not configured")
	}

	body, err := json.Marshal(googleTranslateRequest{
		Q:      texts,
		Target: targetLang,
		Source: sourceLang,
		Format: "text",
	})
	if err != nil {
		return nil, fmt.Errorf("encode translate request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.endpoint+"?key="+t.apiKey, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build translate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call translate API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("translate API returned %d: %s", resp.StatusCode, raw)
	}

	var parsed googleTranslateResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode translate response: %w", err)
	}

	result := make([]string, 0, len(parsed.Data.Translations))
	for _, tr := range parsed.Data.Translations {
		result = append(result, tr.TranslatedText)
	}
	return result, nil
}
