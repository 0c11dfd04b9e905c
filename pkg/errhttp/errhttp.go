// Package errhttp maps domain sentinel errors to HTTP status codes.
// Add a case to mapErrorToStatus for each new domain sentinel error.
package errhttp

import (
	"errors"
	"net/http"

	"github.com/ghuser/sharebox/pkg/auth"
	"github.com/ghuser/sharebox/pkg/docstore"
	"github.com/ghuser/sharebox/pkg/httpx"
	catalogdomain "github.com/ghuser/sharebox/services/catalog/domain"
	chatdomain "github.com/ghuser/sharebox/services/chat/domain"
	tradedomain "github.com/ghuser/sharebox/services/trade/domain"
)

// WriteError maps err to an HTTP status code and writes a JSON error response.
// Uses errors.Is() so wrapped sentinel errors are matched correctly.
// Defaults to 500 Internal Server Error for unrecognized errors.
func WriteError(w http.ResponseWriter, err error) {
	httpx.JSONError(w, mapErrorToStatus(err), err.Error())
}

func mapErrorToStatus(err error) int {
	switch {
	case errors.Is(err, auth.ErrNoIdentity):
		return http.StatusUnauthorized // 401

	case errors.Is(err, catalogdomain.ErrNotOwner),
		errors.Is(err, tradedomain.ErrSelfDeal),
		errors.Is(err, tradedomain.ErrNotParticipant),
		errors.Is(err, tradedomain.ErrNotSeller),
		errors.Is(err, chatdomain.ErrNotParticipant):
		return http.StatusForbidden // 403

	case errors.Is(err, catalogdomain.ErrListingNotFound),
		errors.Is(err, tradedomain.ErrTransactionNotFound),
		errors.Is(err, chatdomain.ErrConversationNotFound):
		return http.StatusNotFound // 404

	case errors.Is(err, tradedomain.ErrInvalidTransition):
		return http.StatusConflict // 409

	case errors.Is(err, catalogdomain.ErrInvalidListing),
		errors.Is(err, tradedomain.ErrMissingOffer),
		errors.Is(err, tradedomain.ErrInvalidOffer),
		errors.Is(err, chatdomain.ErrEmptyMessage):
		return http.StatusUnprocessableEntity // 422

	case errors.Is(err, docstore.ErrUnavailable):
		return http.StatusServiceUnavailable // 503

	default:
		return http.StatusInternalServerError // 500
	}
}
