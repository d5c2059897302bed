// Package provider holds thin clients for the panel's external collaborators.
// Each collaborator has a simple request/response contract and never gates a
// state mutation.
package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

const defaultCompletionsURL = "https://api.openai.com/v1/completions"

// SuggestionClient fetches AI text suggestions for server tuning, with a
// canned fallback when no API key is configured.
type SuggestionClient struct {
	apiKey  string
	baseURL string
	client  *http.Client
	logger  *slog.Logger
}

// NewSuggestionClient creates an AI suggestion client.
func NewSuggestionClient(apiKey string, logger *slog.Logger) *SuggestionClient {
	return &SuggestionClient{
		apiKey:  apiKey,
		baseURL: defaultCompletionsURL,
		client:  &http.Client{Timeout: 10 * time.Second},
		logger:  logger,
	}
}

var cannedSuggestions = []string{
	"Allocate more RAM to the JVM and enable Aikar's GC flags.",
	"Pre-generate world chunks to reduce lag spikes during exploration.",
	"Lower the view distance to 8 and raise simulation distance only where needed.",
	"Move world saves to SSD-backed storage and schedule off-peak backups.",
}

// Suggest returns one optimization suggestion. External calls are retried once;
// if the provider is unreachable or unconfigured the client falls back to a
// canned suggestion rather than failing the request.
func (c *SuggestionClient) Suggest(ctx context.Context) (string, error) {
	if c.apiKey == "" {
		c.logger.Debug("openai api key not set, using canned suggestion")
		return cannedSuggestion(), nil
	}

	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		text, err := c.fetchCompletion(ctx)
		if err == nil {
			return text, nil
		}
		lastErr = err
		c.logger.Warn("ai suggestion fetch failed", "attempt", attempt+1, "error", err)
	}

	c.logger.Warn("ai provider unavailable, using canned suggestion", "error", lastErr)
	return cannedSuggestion(), nil
}

func (c *SuggestionClient) fetchCompletion(ctx context.Context) (string, error) {
	reqBody := map[string]interface{}{
		"model":      "gpt-3.5-turbo-instruct",
		"prompt":     "Suggest optimizations for a Minecraft server:",
		"max_tokens": 100,
	}

	body, _ := json.Marshal(reqBody)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("api call: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("api returned %d", resp.StatusCode)
	}

	var response struct {
		Choices []struct {
			Text string `json:"text"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(response.Choices) == 0 {
		return "", fmt.Errorf("empty choices")
	}

	return strings.TrimSpace(response.Choices[0].Text), nil
}

func cannedSuggestion() string {
	idx := int(time.Now().UnixNano()) % len(cannedSuggestions)
	if idx < 0 {
		idx = -idx
	}
	return cannedSuggestions[idx]
}
