package handlers

import (
	"time"

	"github.com/ghuser/sharebox/services/chat/domain/models"
)

// ErrorResponse is returned on all error responses.
type ErrorResponse struct {
	Error string `json:"error" example:"message body must not be empty"`
} // @name ChatErrorResponse

// MessageResponse is the wire shape of one chat message.
type MessageResponse struct {
	ID         string    `json:"id"`
	SenderID   string    `json:"sender_id"`
	SenderName string    `json:"sender_name"`
	Body       string    `json:"body"`
	Type       string    `json:"type" example:"text"`
	CreatedAt  time.Time `json:"created_at"`
} // @name MessageResponse

func toMessageResponse(m *models.Message) MessageResponse {
	return MessageResponse{
		ID:         m.ID,
		SenderID:   m.SenderID,
		SenderName: m.SenderName,
		Body:       m.Body,
		Type:       string(m.Type),
		CreatedAt:  m.CreatedAt,
	}
}

func toMessageResponses(msgs []*models.Message) []MessageResponse {
	out := make([]MessageResponse, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, toMessageResponse(m))
	}
	return out
}
