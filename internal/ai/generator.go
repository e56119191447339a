package ai

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"
)

// Attachment is a file sent alongside the prompt.
type Attachment struct {
	MIMEType string
	Data     []byte
}

// Generator produces text from a prompt and an optional attachment.
type Generator interface {
	Generate(ctx context.Context, model, prompt string, att *Attachment) (string, error)
}

type GeminiGenerator struct {
	client *genai.Client
}

func NewGeminiGenerator(ctx context.Context, apiKey string) (*GeminiGenerator, error) {
	if apiKey == "" {
		return nil, errors.New("gemini: api key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: new client: %w", err)
	}
	return &GeminiGenerator{client: client}, nil
}

func (g *GeminiGenerator) Generate(ctx context.Context, model, prompt string, att *Attachment) (string, error) {
	parts := []*genai.Part{genai.NewPartFromText(prompt)}
	if att != nil {
		parts = append(parts, genai.NewPartFromBytes(att.Data, att.MIMEType))
	}

	resp, err := g.client.Models.GenerateContent(
		ctx,
		model,
		[]*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)},
		nil,
	)
	if err != nil {
		return "", fmt.Errorf("gemini: generate: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", errors.New("gemini: empty response")
	}
	return text, nil
}
