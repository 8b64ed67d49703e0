package llm

import "context"

// Provider is the core abstraction for LLM interaction.
// It is a plain text-in/text-out call: the returned text is whatever the
// model produced and may contain prose, code fences or malformed JSON.
type Provider interface {
	// Generate sends a prompt to the LLM and returns its raw text output.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// Request describes what to send to the LLM.
type Request struct {
	// System is the system prompt. Sets the LLM's role and constraints.
	System string

	// Messages is the conversation history. Quiz generation sends a single
	// user message carrying the whole prompt.
	Messages []Message

	// Model overrides the provider's configured model when non-empty.
	// Friendly names are resolved the same way as configured ones.
	Model string

	// JSONMode asks the provider to prefer a JSON response body when the
	// API supports it. The output is still treated as untrusted text.
	JSONMode bool

	// MaxTokens is the maximum number of tokens in the response.
	MaxTokens int

	// Temperature controls randomness. Range: 0.0 - 1.0.
	Temperature float64
}

// Message represents a single message in the conversation.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Response holds the LLM's output.
type Response struct {
	// Text is the raw generated text.
	Text string

	// Usage reports token consumption for this request.
	Usage Usage

	// Model is the actual model that served the request.
	Model string

	// StopReason indicates why generation stopped.
	// Normalized to: "end", "max_tokens", "error"
	StopReason string
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// UserPrompt builds a single-turn request carrying prompt as the user message.
func UserPrompt(prompt string) Request {
	return Request{
		Messages: []Message{{Role: RoleUser, Content: prompt}},
	}
}
