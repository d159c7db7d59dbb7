package remote

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// AssistantClient calls the question-answering model endpoint. It is
// stateless: one question in, one answer out.
type AssistantClient struct {
	baseURL      string
	apiKey       string
	model        string
	systemPrompt string
	client       *http.Client
}

// AssistantConfig configures the assistant client.
type AssistantConfig struct {
	BaseURL      string
	APIKey       string
	Model        string
	SystemPrompt string
	Timeout      time.Duration
}

// NewAssistantClient builds an assistant client. A missing API key yields a
// client that reports itself unavailable rather than failing.
func NewAssistantClient(cfg AssistantConfig) *AssistantClient {
	return &AssistantClient{
		baseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:       cfg.APIKey,
		model:        cfg.Model,
		systemPrompt: cfg.SystemPrompt,
		client:       newHTTPClient(cfg.Timeout),
	}
}

// Available reports whether the assistant can serve questions.
func (c *AssistantClient) Available() bool {
	return c != nil && c.apiKey != ""
}

type generateRequest struct {
	SystemInstruction *generateContent  `json:"system_instruction,omitempty"`
	Contents          []generateContent `json:"contents"`
}

type generateContent struct {
	Parts []generatePart `json:"parts"`
}

type generatePart struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content generateContent `json:"content"`
	} `json:"candidates"`
}

// Ask sends a question and returns the model's answer.
func (c *AssistantClient) Ask(ctx context.Context, question string) (string, error) {
	if !c.Available() {
		return "", fmt.Errorf("assistant client not configured")
	}

	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s",
		c.baseURL, url.PathEscape(c.model), url.QueryEscape(c.apiKey))

	req := generateRequest{
		Contents: []generateContent{{Parts: []generatePart{{Text: question}}}},
	}
	if c.systemPrompt != "" {
		req.SystemInstruction = &generateContent{Parts: []generatePart{{Text: c.systemPrompt}}}
	}

	var resp generateResponse
	if err := doJSON(ctx, c.client, http.MethodPost, endpoint, req, &resp); err != nil {
		return "", fmt.Errorf("ask assistant: %w", err)
	}

	for _, candidate := range resp.Candidates {
		for _, part := range candidate.Content.Parts {
			if part.Text != "" {
				return part.Text, nil
			}
		}
	}
	return "", fmt.Errorf("assistant returned no answer")
}
