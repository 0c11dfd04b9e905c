package errhttp

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ghuser/sharebox/pkg/auth"
	"github.com/ghuser/sharebox/pkg/docstore"
	catalogdomain "github.com/ghuser/sharebox/services/catalog/domain"
	chatdomain "github.com/ghuser/sharebox/services/chat/domain"
	tradedomain "github.com/ghuser/sharebox/services/trade/domain"
)

func TestWriteError_StatusCodes(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"ErrNoIdentity", auth.ErrNoIdentity, http.StatusUnauthorized},
		{"ErrNotOwner", catalogdomain.ErrNotOwner, http.StatusForbidden},
		{"ErrSelfDeal", tradedomain.ErrSelfDeal, http.StatusForbidden},
		{"ErrNotParticipant", tradedomain.ErrNotParticipant, http.StatusForbidden},
		{"ErrNotSeller", tradedomain.ErrNotSeller, http.StatusForbidden},
		{"chat ErrNotParticipant", chatdomain.ErrNotParticipant, http.StatusForbidden},
		{"ErrListingNotFound", catalogdomain.ErrListingNotFound, http.StatusNotFound},
		{"ErrTransactionNotFound", tradedomain.ErrTransactionNotFound, http.StatusNotFound},
		{"ErrConversationNotFound", chatdomain.ErrConversationNotFound, http.StatusNotFound},
		{"ErrInvalidTransition", tradedomain.ErrInvalidTransition, http.StatusConflict},
		{"ErrInvalidListing", catalogdomain.ErrInvalidListing, http.StatusUnprocessableEntity},
		{"ErrMissingOffer", tradedomain.ErrMissingOffer, http.StatusUnprocessableEntity},
		{"ErrInvalidOffer", tradedomain.ErrInvalidOffer, http.StatusUnprocessableEntity},
		{"ErrEmptyMessage", chatdomain.ErrEmptyMessage, http.StatusUnprocessableEntity},
		{"ErrUnavailable", docstore.ErrUnavailable, http.StatusServiceUnavailable},
		{"wrapped ErrListingNotFound", fmt.Errorf("get listing: %w", catalogdomain.ErrListingNotFound), http.StatusNotFound},
		{"wrapped ErrInvalidTransition", fmt.Errorf("%w: pending → completed", tradedomain.ErrInvalidTransition), http.StatusConflict},
		{"unknown error", errors.New("something unexpected"), http.StatusInternalServerError},
		{"generic wrapped error", fmt.Errorf("context: %w", errors.New("db down")), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			WriteError(w, tt.err)

			if w.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d", tt.wantStatus, w.Code)
			}
		})
	}
}

func TestWriteError_JSONBody(t *testing.T) {
	w := httptest.NewRecorder()
	WriteError(w, catalogdomain.ErrListingNotFound)

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("response body is not valid JSON: %v", err)
	}
	if _, ok := body["error"]; !ok {
		t.Fatal("response body missing 'error' key")
	}
}

func TestWriteError_ContentType(t *testing.T) {
	w := httptest.NewRecorder()
	WriteError(w, catalogdomain.ErrListingNotFound)

	ct := w.Header().Get("Content-Type")
	if ct == "" {
		t.Fatal("Content-Type header not set")
	}
}
