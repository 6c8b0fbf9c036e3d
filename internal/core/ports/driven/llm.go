package driven

import "context"

// LLMService provides chat-completion access to a text-generation model.
//
// Implementations may include:
//   - OpenAI (GPT-4o family)
//   - Azure OpenAI or compatible APIs
type LLMService interface {
	// Chat sends one conversation and returns the model's reply text.
	// Transport, auth, and rate-limit failures surface as errors
	// wrapping domain.ErrModelCall.
	Chat(ctx context.Context, messages []ChatMessage, opts ChatOptions) (string, error)

	// ModelName returns the name of the model being used.
	ModelName() string
}

// ChatMessage represents a single message in a conversation.
type ChatMessage struct {
	// Role is one of "system", "user", or "assistant".
	Role string

	// Content is the message text.
	Content string
}

// ChatOptions configures a chat-completion request.
type ChatOptions struct {
	// MaxTokens bounds the response length. Generous enough to avoid
	// truncated JSON on large assignment lists.
	MaxTokens int

	// Temperature controls randomness. The extractor always requests 0
	// so repeated calls on identical input converge; implementations
	// must send the value explicitly rather than omitting it.
	Temperature float64
}
