package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"lusotown-backend/internal/domain/model"
)

// TranslationClient talks to a generative language API to translate community
// messages between Portuguese dialects and English.
type TranslationClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

func NewTranslationClient(apiKey string) *TranslationClient {
	return &TranslationClient{
		apiKey:  apiKey,
		baseURL: "https://generativelanguage.googleapis.com/v1beta",
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []candidate `json:"candidates"`
}

type candidate struct {
	Content content `json:"content"`
}

// Translate renders a translation prompt and returns the model output as the
// translated text.
func (c *TranslationClient) Translate(ctx context.Context, req model.TranslationRequest) (*model.TranslationResult, error) {
	prompt := buildTranslationPrompt(req)

	text, err := c.generateContent(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("translation request failed: %w", err)
	}

	return &model.TranslationResult{
		TranslatedText: strings.TrimSpace(text),
		SourceLanguage: req.SourceLanguage,
		TargetLanguage: req.TargetLanguage,
	}, nil
}

func buildTranslationPrompt(req model.TranslationRequest) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Translate the following message from %s to %s.", req.SourceLanguage, req.TargetLanguage))
	if req.Dialect != "" {
		sb.WriteString(fmt.Sprintf(" Use the %s dialect where it applies.", req.Dialect))
	}
	sb.WriteString(" Reply with the translation only, no commentary.\n\n")
	sb.WriteString(req.Text)
	return sb.String()
}

func (c *TranslationClient) generateContent(ctx context.Context, prompt string) (string, error) {
	req := generateRequest{
		Contents: []content{
			{
				Parts: []part{
					{Text: prompt},
				},
			},
		},
	}

	reqBody, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("failed to serialize request: %w", err)
	}

	url := fmt.Sprintf("%s/models/gemini-2.5-flash:generateContent?key=%s", c.baseURL, c.apiKey)

	httpReq, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(reqBody))
	if err != nil {
		return "", fmt.Errorf("failed to create HTTP request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("API request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("API call error (status: %d): %s", resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	var genResp generateResponse
	if err := json.Unmarshal(body, &genResp); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}

	if len(genResp.Candidates) == 0 || len(genResp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no usable response was generated")
	}

	return genResp.Candidates[0].Content.Parts[0].Text, nil
}
