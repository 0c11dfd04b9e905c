package handlers

import (
	"time"

	"github.com/ghuser/sharebox/services/trade/domain/models"
)

// ErrorResponse is returned on all error responses.
type ErrorResponse struct {
	Error string `json:"error" example:"invalid transaction status transition"`
} // @name TradeErrorResponse

// TransactionResponse is the wire shape of one negotiation thread.
type TransactionResponse struct {
	ID                  string    `json:"id"`
	ListingID           string    `json:"listing_id"`
	ListingTitle        string    `json:"listing_title"`
	ListingType         string    `json:"listing_type"`
	ListingPrice        *float64  `json:"listing_price,omitempty"`
	BuyerID             string    `json:"buyer_id"`
	BuyerName           string    `json:"buyer_name"`
	SellerID            string    `json:"seller_id"`
	SellerName          string    `json:"seller_name"`
	OfferedPrice        *float64  `json:"offered_price,omitempty"`
	Status              string    `json:"status"`
	LastMessage         string    `json:"last_message"`
	LastMessageSenderID string    `json:"last_message_sender_id"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
} // @name TransactionResponse

func toTransactionResponse(tx *models.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:                  tx.ID,
		ListingID:           tx.ListingID,
		ListingTitle:        tx.ListingTitle,
		ListingType:         tx.ListingType,
		ListingPrice:        tx.ListingPrice,
		BuyerID:             tx.BuyerID,
		BuyerName:           tx.BuyerName,
		SellerID:            tx.SellerID,
		SellerName:          tx.SellerName,
		OfferedPrice:        tx.OfferedPrice,
		Status:              string(tx.Status),
		LastMessage:         tx.LastMessage,
		LastMessageSenderID: tx.LastMessageSenderID,
		CreatedAt:           tx.CreatedAt,
		UpdatedAt:           tx.UpdatedAt,
	}
}

func toTransactionResponses(txs []*models.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, 0, len(txs))
	for _, tx := range txs {
		out = append(out, toTransactionResponse(tx))
	}
	return out
}
