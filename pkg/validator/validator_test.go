package validator_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	pkgvalidator "github.com/ghuser/sharebox/pkg/validator"
)

type sampleListing struct {
	Type  string `validate:"required,oneof=donation sale"`
	Title string `validate:"required,min=1,max=10"`
	Image string `validate:"omitempty,url"`
}

func TestValidate_valid(t *testing.T) {
	s := sampleListing{
		Type:  "sale",
		Title: "desk lamp",
	}
	if err := pkgvalidator.Validate(&s); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
}

func TestValidate_missingRequired(t *testing.T) {
	s := sampleListing{}
	if err := pkgvalidator.Validate(&s); err == nil {
		t.Fatal("expected validation error for empty struct")
	}
}

func TestFormatValidationErrors_required(t *testing.T) {
	s := sampleListing{}
	err := pkgvalidator.Validate(&s)
	m := pkgvalidator.FormatValidationErrors(err)
	if m["Type"] != "This field is required" {
		t.Errorf("unexpected Type message: %q", m["Type"])
	}
	if m["Title"] != "This field is required" {
		t.Errorf("unexpected Title message: %q", m["Title"])
	}
}

func TestFormatValidationErrors_oneof(t *testing.T) {
	s := sampleListing{Type: "loan", Title: "ok"}
	err := pkgvalidator.Validate(&s)
	m := pkgvalidator.FormatValidationErrors(err)
	if m["Type"] != "Must be one of: donation sale" {
		t.Errorf("unexpected Type message: %q", m["Type"])
	}
}

func TestFormatValidationErrors_max(t *testing.T) {
	s := sampleListing{Type: "sale", Title: "12345678901"} // 11 chars > max=10
	err := pkgvalidator.Validate(&s)
	m := pkgvalidator.FormatValidationErrors(err)
	if m["Title"] != "Maximum length is 10" {
		t.Errorf("unexpected Title message: %q", m["Title"])
	}
}

func TestFormatValidationErrors_url(t *testing.T) {
	s := sampleListing{Type: "sale", Title: "ok", Image: "not a url"}
	err := pkgvalidator.Validate(&s)
	m := pkgvalidator.FormatValidationErrors(err)
	if m["Image"] != "Must be a valid URL" {
		t.Errorf("unexpected Image message: %q", m["Image"])
	}
}

func TestFormatValidationErrors_nonValidationError(t *testing.T) {
	m := pkgvalidator.FormatValidationErrors(http.ErrNoCookie)
	if len(m) != 0 {
		t.Errorf("expected empty map for non-validation error, got %v", m)
	}
}

// --- ValidateRequest ---

type listingReq struct {
	Type  string `json:"type"  validate:"required,oneof=donation sale"`
	Title string `json:"title" validate:"required,min=1,max=120"`
}

func TestValidateRequest_valid(t *testing.T) {
	body := `{"type":"donation","title":"winter coat"}`
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	req, ok := pkgvalidator.ValidateRequest[listingReq](w, r)
	if !ok {
		t.Fatalf("expected ok=true, got false. Response: %s", w.Body.String())
	}
	if req.Title != "winter coat" {
		t.Errorf("unexpected Title: %q", req.Title)
	}
}

func TestValidateRequest_invalidJSON(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{bad json"))
	w := httptest.NewRecorder()

	_, ok := pkgvalidator.ValidateRequest[listingReq](w, r)
	if ok {
		t.Fatal("expected ok=false for malformed JSON")
	}
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Invalid JSON") {
		t.Errorf("expected 'Invalid JSON' in body, got: %s", w.Body.String())
	}
}

func TestValidateRequest_missingField(t *testing.T) {
	body := `{"title":"winter coat"}`
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	w := httptest.NewRecorder()

	_, ok := pkgvalidator.ValidateRequest[listingReq](w, r)
	if ok {
		t.Fatal("expected ok=false for missing type")
	}
	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("expected 422, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Validation failed") {
		t.Errorf("expected 'Validation failed' in body, got: %s", w.Body.String())
	}
}

// Field names in the error map come from the json tag, matching what the
// browser client sent.
func TestValidateRequest_fieldNamesFromJSONTags(t *testing.T) {
	body := `{"type":"barter","title":"winter coat"}`
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	w := httptest.NewRecorder()

	_, ok := pkgvalidator.ValidateRequest[listingReq](w, r)
	if ok {
		t.Fatal("expected ok=false for invalid type")
	}
	if !strings.Contains(w.Body.String(), `"type"`) {
		t.Errorf("expected json field name 'type' in body, got: %s", w.Body.String())
	}
}
