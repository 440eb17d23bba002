package domain

import "errors"

// Message is immutable once created. Timestamp is producer-assigned unix
// milliseconds and doubles as the sort key in the persisted chat log.
type Message struct {
	ID        string `json:"id"`
	SenderID  string `json:"senderId"`
	Text      string `json:"text"`
	Timestamp int64  `json:"timestamp"`
}

var (
	ErrMissingID        = errors.New("message id is required")
	ErrMissingSender    = errors.New("message sender id is required")
	ErrEmptyText        = errors.New("message text must not be empty")
	ErrInvalidTimestamp = errors.New("message timestamp must be positive")
)

// Validate re-checks the constructed message against its schema. A failure
// here after input validation is an internal error, not a caller fault.
func (m Message) Validate() error {
	if m.ID == "" {
		return ErrMissingID
	}
	if m.SenderID == "" {
		return ErrMissingSender
	}
	if m.Text == "" {
		return ErrEmptyText
	}
	if m.Timestamp <= 0 {
		return ErrInvalidTimestamp
	}
	return nil
}

// MessagePreview is the denormalized payload pushed to the recipient's chats
// channel so an inbox preview renders without a second profile lookup.
type MessagePreview struct {
	Message
	SenderImg  string `json:"senderImg"`
	SenderName string `json:"senderName"`
}
