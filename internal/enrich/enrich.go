package enrich

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/anthropics/anthropic-sdk-go/packages/param"
	"github.com/daily-word/backend/internal/models"
)

const systemPrompt = `You are a lexicographer writing for adult vocabulary learners.
Given a word, its part of speech, and its definition, respond with a JSON object:
{"example":"one fresh example sentence using the word naturally","note":"one short usage or etymology note"}
Respond with the JSON object only.`

// Enrichment is one generated example sentence plus a usage note for a word.
type Enrichment struct {
	Example string `json:"example"`
	Note    string `json:"note"`
}

// LLMClient generates an enrichment for a word entry.
type LLMClient interface {
	Enrich(ctx context.Context, word models.WordEntry) (*Enrichment, error)
}

// NewClient picks the Anthropic API when a key is configured, otherwise a
// static client so local development works offline.
func NewClient() LLMClient {
	if os.Getenv("ANTHROPIC_API_KEY") == "" {
		log.Println("[enrich] no ANTHROPIC_API_KEY, using static enrichment")
		return &StaticClient{}
	}
	model := os.Getenv("ANTHROPIC_MODEL")
	if model == "" {
		model = "claude-3-5-haiku-latest"
	}
	log.Println("[enrich] using Anthropic API:", model)
	return NewAPIClient(model)
}

// ── APIClient ─────────────────────────────────────────────

type APIClient struct {
	client *anthropic.Client
	model  string
}

func NewAPIClient(model string) *APIClient {
	client := anthropic.NewClient(
		option.WithAPIKey(os.Getenv("ANTHROPIC_API_KEY")),
	)
	return &APIClient{client: &client, model: model}
}

func (c *APIClient) Enrich(ctx context.Context, word models.WordEntry) (*Enrichment, error) {
	userPrompt := fmt.Sprintf("Word: %s\nPart of speech: %s\nDefinition: %s",
		word.Word, word.POS, word.Definition)

	params := anthropic.MessageNewParams{
		Model:       anthropic.Model(c.model),
		MaxTokens:   512,
		Temperature: param.NewOpt(0.8),
		System: []anthropic.TextBlockParam{
			{Text: systemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(userPrompt)),
		},
	}

	message, err := c.callWithRetry(ctx, params)
	if err != nil {
		return nil, err
	}

	var responseText string
	for _, block := range message.Content {
		if block.Type == "text" {
			responseText = block.Text
			break
		}
	}
	if responseText == "" {
		return nil, fmt.Errorf("no text content in API response")
	}

	return parseEnrichment(responseText)
}

func (c *APIClient) callWithRetry(ctx context.Context, params anthropic.MessageNewParams) (*anthropic.Message, error) {
	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		if attempt > 0 {
			time.Sleep(time.Duration(1<<uint(attempt)) * time.Second)
		}
		message, err := c.client.Messages.New(ctx, params)
		if err == nil {
			return message, nil
		}
		lastErr = err
		log.Printf("[enrich] Anthropic API attempt %d failed: %v", attempt+1, err)
	}
	return nil, fmt.Errorf("anthropic API failed after retries: %w", lastErr)
}

func parseEnrichment(content string) (*Enrichment, error) {
	// Models sometimes wrap the JSON in a code fence.
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")

	var e Enrichment
	if err := json.Unmarshal([]byte(strings.TrimSpace(content)), &e); err != nil {
		return nil, fmt.Errorf("parse enrichment: %w", err)
	}
	if e.Example == "" {
		return nil, fmt.Errorf("enrichment missing example")
	}
	return &e, nil
}

// ── StaticClient ──────────────────────────────────────────

// StaticClient serves the catalog's own material when no API is available.
type StaticClient struct{}

func (s *StaticClient) Enrich(_ context.Context, word models.WordEntry) (*Enrichment, error) {
	e := &Enrichment{Note: word.Etymology}
	if len(word.Examples) > 0 {
		e.Example = word.Examples[len(word.Examples)-1]
	}
	if e.Example == "" {
		return nil, fmt.Errorf("no example available for %q", word.Word)
	}
	return e, nil
}
