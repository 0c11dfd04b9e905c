package models

import "time"

// MessageType tags a message body. Only plain text exists today.
type MessageType string

const TypeText MessageType = "text"

// Message is one chat line inside a transaction's conversation. Messages
// live in a sub-collection under their transaction and are immutable once
// written. JSON tags double as document-store field names.
type Message struct {
	ID         string      `json:"id"`
	SenderID   string      `json:"senderId"`
	SenderName string      `json:"senderName"`
	Body       string      `json:"body"`
	Type       MessageType `json:"type"`
	CreatedAt  time.Time   `json:"createdAt"`
}
