package vision

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/sashabaranov/go-openai"
)

type OpenAIExtractor struct {
	client    *openai.Client
	model     string
	languages string
}

func NewOpenAI(apiKey, baseURL, model, languages string) *OpenAIExtractor {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	return &OpenAIExtractor{
		client:    openai.NewClientWithConfig(config),
		model:     model,
		languages: languages,
	}
}

func (e *OpenAIExtractor) Extract(ctx context.Context, image []byte) (string, error) {
	instruction := fmt.Sprintf(
		"Извлеки весь текст с изображения (ожидаемые языки: %s). "+
			"Верни только сам текст, без комментариев и форматирования. "+
			"Если текста на изображении нет, верни пустой ответ.",
		e.languages,
	)
	dataURL := "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(image)

	req := openai.ChatCompletionRequest{
		Model: e.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{Type: openai.ChatMessagePartTypeText, Text: instruction},
					{
						Type:     openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{URL: dataURL},
					},
				},
			},
		},
	}

	resp, err := e.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("failed to extract text from image: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("extraction returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
