package domain

import "errors"

// Sentinel errors for the chat service.
var (
	ErrConversationNotFound = errors.New("conversation not found")
	ErrEmptyMessage         = errors.New("message body must not be empty")
	ErrNotParticipant       = errors.New("user is not a participant of this conversation")
)
