package history

import "time"

// Kind classifies a log entry by who (or what) produced it.
type Kind string

const (
	KindUser  Kind = "user"
	KindBot   Kind = "bot"
	KindError Kind = "error"
)

// Message is one entry in the chat log. Entries are append-only: content is
// never mutated after creation and nothing is removed short of a full clear.
type Message struct {
	Kind      Kind      `json:"kind"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}
