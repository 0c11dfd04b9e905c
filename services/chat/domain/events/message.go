package events

import "time"

// TopicMessageSent is published after a message is appended.
const TopicMessageSent = "message.sent"

// MessageSentEvent lets the worker re-apply the transaction's conversation
// preview when the inline summary write was lost.
type MessageSentEvent struct {
	EventID       string    `json:"event_id"`
	Version       int       `json:"version"`
	TransactionID string    `json:"transaction_id"`
	MessageID     string    `json:"message_id"`
	SenderID      string    `json:"sender_id"`
	Body          string    `json:"body"`
	OccurredAt    time.Time `json:"occurred_at"`
}
