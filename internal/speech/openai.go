package speech

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
)

type OpenAIRecognizer struct {
	client   *openai.Client
	model    string
	language string
}

func NewOpenAI(apiKey, baseURL, model, language string) *OpenAIRecognizer {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	return &OpenAIRecognizer{
		client:   openai.NewClientWithConfig(config),
		model:    model,
		language: language,
	}
}

func (r *OpenAIRecognizer) Transcribe(ctx context.Context, audio []byte, filename string) (string, error) {
	req := openai.AudioRequest{
		Model:    r.model,
		FilePath: filename,
		Reader:   bytes.NewReader(audio),
		Language: r.language,
	}
	resp, err := r.client.CreateTranscription(ctx, req)
	if err != nil {
		return "", fmt.Errorf("failed to transcribe audio: %w", err)
	}
	text := strings.TrimSpace(resp.Text)
	if text == "" {
		return "", ErrNotUnderstood
	}
	return text, nil
}
