package types

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Message represents a chat message
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Completion is a single model-generated response. Trainers hand
// completions over either as plain strings or as single-element chat
// message lists; both shapes normalize to the same text.
type Completion struct {
	Text     string
	Messages []Message
}

// NewCompletion creates a completion from plain text
func NewCompletion(text string) Completion {
	return Completion{Text: text}
}

// NewChatCompletion creates a completion from chat messages
func NewChatCompletion(messages ...Message) Completion {
	return Completion{Messages: messages}
}

// Content returns the normalized response text. For chat-shaped
// completions this is the content of the first message.
func (c Completion) Content() string {
	if len(c.Messages) > 0 {
		return c.Messages[0].Content
	}
	return c.Text
}

// UnmarshalJSON accepts either a JSON string or an array of chat
// messages carrying a "content" field.
func (c *Completion) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, `"`) {
		var text string
		if err := json.Unmarshal(data, &text); err != nil {
			return err
		}
		*c = Completion{Text: text}
		return nil
	}

	var messages []Message
	if err := json.Unmarshal(data, &messages); err != nil {
		return fmt.Errorf("completion must be a string or a chat message list: %w", err)
	}
	if len(messages) == 0 {
		return fmt.Errorf("completion message list cannot be empty")
	}
	*c = Completion{Messages: messages}
	return nil
}

// MarshalJSON emits the chat shape when messages are present,
// otherwise the plain string shape.
func (c Completion) MarshalJSON() ([]byte, error) {
	if len(c.Messages) > 0 {
		return json.Marshal(c.Messages)
	}
	return json.Marshal(c.Text)
}

// Sample is one training/evaluation row: the dataset columns the
// trainer passes alongside each generated completion.
type Sample struct {
	ID         string     `json:"id,omitempty"`
	Question   string     `json:"question,omitempty"`
	Answer     string     `json:"answer"`
	Difficulty string     `json:"difficulty,omitempty"`
	Completion Completion `json:"completion"`
}
