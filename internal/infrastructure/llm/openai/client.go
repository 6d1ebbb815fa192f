// Package openai provides a CharacterGenerator implementation using OpenAI.
package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/ersonp/enclave-favorites/internal/domain/entities"
	"github.com/ersonp/enclave-favorites/internal/domain/ports"
	"github.com/ersonp/enclave-favorites/internal/infrastructure/config"
)

const generationPrompt = `You invent characters for a fantasy setting built around enclaves: small communities bound to a place and a purpose.

Return ONLY a valid JSON object, no other text, with these fields:
- name: the character's given name (required)
- nickname: a short familiar name (optional)
- epithet: a title such as "the Tidecaller" (optional)
- enclave_name: the enclave they belong to (required)
- enclave_summary: one or two sentences describing the enclave (required)
- enclave_hook: one sentence of trouble or mystery in the enclave (required)
- spirit_name, spirit_summary, spirit_hook: a bound spirit, if the character has one (optional)
- lore: an array of short sentences of personal history
- stats: an object of small integer attributes, e.g. {"might": 3, "wits": 4}

Example:
{"name": "Ilyra", "epithet": "the Tidecaller", "enclave_name": "Moonveil", "enclave_summary": "Tidewatchers of the silver coast.", "enclave_hook": "The tide stopped.", "lore": ["Born at low tide."], "stats": {"might": 2, "wits": 5}}`

// Client implements ports.CharacterGenerator using OpenAI chat completions.
type Client struct {
	client *openai.Client
	model  string
}

var _ ports.CharacterGenerator = (*Client)(nil)

// NewClient creates a new OpenAI LLM client.
func NewClient(cfg config.LLMConfig) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("OpenAI API key is required")
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	model := "gpt-4o-mini"
	if cfg.Model != "" {
		model = cfg.Model
	}

	return &Client{
		client: openai.NewClientWithConfig(clientCfg),
		model:  model,
	}, nil
}

// GenerateCharacter asks the model for one character draft. hint steers the
// result and may be empty.
func (c *Client) GenerateCharacter(ctx context.Context, hint string) (*entities.Draft, error) {
	userPrompt := "Create one character."
	if hint = strings.TrimSpace(hint); hint != "" {
		userPrompt = "Create one character. Guidance: " + hint
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: generationPrompt,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: userPrompt,
			},
		},
		Temperature: 0.9,
	})
	if err != nil {
		return nil, fmt.Errorf("calling OpenAI: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, errors.New("no response from OpenAI")
	}

	content := cleanJSONResponse(resp.Choices[0].Message.Content)

	var raw rawCharacter
	if err := json.Unmarshal([]byte(content), &raw); err != nil {
		return nil, fmt.Errorf("parsing character JSON: %w (response: %s)", err, content)
	}

	return raw.toDraft()
}

// rawCharacter is the JSON structure returned by the model.
type rawCharacter struct {
	Name           string          `json:"name"`
	Nickname       string          `json:"nickname"`
	Epithet        string          `json:"epithet"`
	EnclaveName    string          `json:"enclave_name"`
	EnclaveSummary string          `json:"enclave_summary"`
	EnclaveHook    string          `json:"enclave_hook"`
	SpiritName     string          `json:"spirit_name"`
	SpiritSummary  string          `json:"spirit_summary"`
	SpiritHook     string          `json:"spirit_hook"`
	Lore           json.RawMessage `json:"lore"`
	Stats          json.RawMessage `json:"stats"`
}

func (r *rawCharacter) toDraft() (*entities.Draft, error) {
	lore, err := loreLines(r.Lore)
	if err != nil {
		return nil, err
	}

	draft := &entities.Draft{
		Name:           strings.TrimSpace(r.Name),
		Nickname:       entities.StringPtr(r.Nickname),
		Epithet:        entities.StringPtr(r.Epithet),
		EnclaveName:    strings.TrimSpace(r.EnclaveName),
		EnclaveSummary: strings.TrimSpace(r.EnclaveSummary),
		EnclaveHook:    strings.TrimSpace(r.EnclaveHook),
		SpiritName:     entities.StringPtr(r.SpiritName),
		SpiritSummary:  entities.StringPtr(r.SpiritSummary),
		SpiritHook:     entities.StringPtr(r.SpiritHook),
		Lore:           lore,
	}

	// Stats are opaque; keep them only when they are a JSON object.
	if stats := strings.TrimSpace(string(r.Stats)); strings.HasPrefix(stats, "{") {
		draft.Stats = json.RawMessage(stats)
	}

	return draft, nil
}

// loreLines accepts either an array of strings or a single newline-separated string.
func loreLines(raw json.RawMessage) ([]string, error) {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return []string{}, nil
	}

	var lines []string
	if err := json.Unmarshal(raw, &lines); err == nil {
		return lines, nil
	}

	var text string
	if err := json.Unmarshal(raw, &text); err != nil {
		return nil, fmt.Errorf("parsing lore: expected array or string, got %s", trimmed)
	}
	return strings.Split(text, "\n"), nil
}

// cleanJSONResponse removes markdown code blocks if present.
func cleanJSONResponse(content string) string {
	content = strings.TrimSpace(content)

	if strings.HasPrefix(content, "```json") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimSuffix(content, "```")
	} else if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```")
		content = strings.TrimSuffix(content, "```")
	}

	return strings.TrimSpace(content)
}
