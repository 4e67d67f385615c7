// Package generation wraps the external chat-completion API used to draft
// list content from a user prompt.
package generation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"listforge/internal/config"
	"listforge/internal/middleware"
	"listforge/internal/models"
	"listforge/internal/observability"
)

const defaultBaseURL = "https://api.openai.com/v1"

// systemPrompt fixes the output shape to JSON {title, content} with at
// most MaxContentItems short items.
const systemPrompt = `You are a helpful assistant that generates concise, simple lists based on user prompts.
Your task is to create a list with the following rules:
1. Generate no more than 10 items
2. Keep each item very brief (max 10-15 words)
3. Make items clear and straightforward
4. No descriptions or explanations - just simple bullet points
5. No numbering or special formatting - just plain text items

Format your response as JSON with the following structure:
{
    "title": "A brief, catchy title",
    "content": ["Item 1", "Item 2", "Item 3", ...]
}

Example response:
{
    "title": "Essential Camping Gear",
    "content": [
        "Waterproof tent",
        "Sleeping bag rated for local climate",
        "Headlamp with extra batteries",
        "First aid kit",
        "Water filter or purification tablets"
    ]
}`

// ListDraft is the validated result of one generation call.
type ListDraft struct {
	Title   string   `json:"title"`
	Content []string `json:"content"`
}

// Generator produces a list draft for a prompt. Satisfied by *Client and
// mocked in handler tests.
type Generator interface {
	GenerateList(ctx context.Context, prompt string) (*ListDraft, error)
}

// Client calls a chat-completion endpoint over HTTPS with a bearer key.
type Client struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
	logger  *slog.Logger
}

// NewClient creates a generation client from the application config.
func NewClient(cfg *config.Config) *Client {
	baseURL := cfg.OpenAIBaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	model := cfg.OpenAIModel
	if model == "" {
		model = "gpt-4"
	}

	return &Client{
		apiKey:  cfg.OpenAIKey,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		model:   model,
		// The upstream call has no client-side deadline; callers cancel
		// through ctx.
		client: &http.Client{},
		logger: middleware.Logger,
	}
}

// Chat-completion wire structures
type chatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// GenerateList sends the prompt plus the fixed system instruction to the
// chat-completion endpoint and validates the structured response. Every
// failure mode (non-200 status, unparseable body, missing fields) surfaces
// as an UPSTREAM_ERROR; there is no retry.
func (c *Client) GenerateList(ctx context.Context, prompt string) (*ListDraft, error) {
	start := time.Now()

	draft, err := c.generate(ctx, prompt)
	if err != nil {
		observability.ObserveGeneration("error", start)
		c.logger.ErrorContext(ctx, "list generation failed",
			slog.String("prompt", prompt),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	observability.ObserveGeneration("ok", start)
	c.logger.InfoContext(ctx, "list generated",
		slog.String("prompt", prompt),
		slog.Int("items", len(draft.Content)),
	)
	return draft, nil
}

func (c *Client) generate(ctx context.Context, prompt string) (*ListDraft, error) {
	reqBody := chatCompletionRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt},
		},
		Temperature: 0.7,
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, models.NewUpstreamError("Generation API request failed", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, models.NewUpstreamError("Failed to read generation API response", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, models.NewUpstreamError(
			fmt.Sprintf("Generation API error %d: %s", resp.StatusCode, strings.TrimSpace(string(body))), nil)
	}

	var chatResp chatCompletionResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return nil, models.NewUpstreamError("Failed to parse generation API response", err)
	}
	if len(chatResp.Choices) == 0 {
		return nil, models.NewUpstreamError("Generation API returned no choices", nil)
	}

	return parseDraft(chatResp.Choices[0].Message.Content)
}

// parseDraft validates the model's message content: it must be JSON with
// title and content. Content returned as a single block of text is split
// by line; the result is always truncated to MaxContentItems.
func parseDraft(raw string) (*ListDraft, error) {
	var payload struct {
		Title   *string         `json:"title"`
		Content json.RawMessage `json:"content"`
	}
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return nil, models.NewUpstreamError("Failed to parse generated content as JSON", err)
	}
	if payload.Title == nil {
		return nil, models.NewUpstreamError("Generated content missing required field: title", nil)
	}
	if len(payload.Content) == 0 || string(payload.Content) == "null" {
		return nil, models.NewUpstreamError("Generated content missing required field: content", nil)
	}

	var items []string
	if err := json.Unmarshal(payload.Content, &items); err != nil {
		var block string
		if err := json.Unmarshal(payload.Content, &block); err != nil {
			return nil, models.NewUpstreamError("Generated content field has unexpected type", nil)
		}
		items = strings.Split(block, "\n")
	}

	if len(items) > models.MaxContentItems {
		items = items[:models.MaxContentItems]
	}

	return &ListDraft{Title: *payload.Title, Content: items}, nil
}
