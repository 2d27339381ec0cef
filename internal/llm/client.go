package llm

import "context"

type Response struct {
	Content          string
	Model            string
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// Client is the text-generation endpoint: one composed prompt in,
// one completion out. System instructions, conversation history and the
// new user message are already folded into the prompt by the caller.
type Client interface {
	Complete(ctx context.Context, prompt string) (Response, error)
}
