package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"markhub/internal/config"
)

// geminiClient is the shared HTTP client for Gemini calls. Both the OCR
// and marker services go through it.
type geminiClient struct {
	config *config.AIConfig
	client *http.Client
}

func newGeminiClient(cfg *config.AIConfig) *geminiClient {
	return &geminiClient{
		config: cfg,
		client: &http.Client{
			Timeout: time.Duration(cfg.TimeoutMS) * time.Millisecond,
		},
	}
}

func (g *geminiClient) enabled() bool {
	return g.config.IsEnabled()
}

// generate sends a text-only prompt and returns the model's JSON text.
func (g *geminiClient) generate(ctx context.Context, modelName, prompt string) (string, error) {
	parts := []map[string]interface{}{
		{"text": prompt},
	}
	return g.call(ctx, modelName, parts)
}

// generateWithImage sends a prompt plus an inline base64 image.
func (g *geminiClient) generateWithImage(ctx context.Context, modelName, prompt, mimeType, imageBase64 string) (string, error) {
	parts := []map[string]interface{}{
		{"text": prompt},
		{
			"inline_data": map[string]string{
				"mime_type": mimeType,
				"data":      imageBase64,
			},
		},
	}
	return g.call(ctx, modelName, parts)
}

func (g *geminiClient) call(ctx context.Context, modelName string, parts []map[string]interface{}) (string, error) {
	reqBody := map[string]interface{}{
		"contents": []map[string]interface{}{
			{"parts": parts},
		},
		"generationConfig": map[string]interface{}{
			"responseMimeType": "application/json",
		},
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s?key=%s", g.config.ModelEndpoint(modelName), g.config.APIKey)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	var geminiResp struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}

	if err := json.Unmarshal(body, &geminiResp); err != nil {
		return "", err
	}

	if len(geminiResp.Candidates) > 0 && len(geminiResp.Candidates[0].Content.Parts) > 0 {
		return geminiResp.Candidates[0].Content.Parts[0].Text, nil
	}

	return "", fmt.Errorf("empty response from Gemini")
}
