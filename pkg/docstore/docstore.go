// Package docstore defines the document-store contract the ShareBox services
// persist through, plus an in-memory and a PostgreSQL-backed implementation.
//
// Collections are path strings; a sub-collection is addressed by embedding the
// parent id in the path ("transactions/<id>/messages"). Documents are
// schemaless JSON objects. Writes may carry the ServerTimestamp sentinel,
// which the store resolves to its own clock at commit time.
package docstore

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Sentinel errors. Use errors.Is() to check these.
var (
	// ErrNotFound indicates the addressed document does not exist.
	ErrNotFound = errors.New("document not found")

	// ErrUnavailable indicates the backing store could not be reached or a
	// conflicting-writer retry budget was exhausted.
	ErrUnavailable = errors.New("document store unavailable")
)

// Document is one schemaless JSON object. After a read, the store's assigned
// id is present under the "id" key.
type Document = map[string]any

// FieldID is the document key holding the store-assigned id.
const FieldID = "id"

// Op is a filter operator.
type Op string

const (
	// OpEqual matches documents whose field equals the filter value.
	OpEqual Op = "=="
	// OpIn matches documents whose field equals any element of the filter
	// value, which must be a slice.
	OpIn Op = "in"
)

// Filter is one query predicate.
type Filter struct {
	Field string
	Op    Op
	Value any
}

// Query describes an ordered, filtered, cursor-paged read of a collection.
// A zero Limit means no page bound. Cursor is an opaque token from a previous
// Page; an empty Cursor starts from the first matching document.
type Query struct {
	Filters    []Filter
	OrderBy    string
	Descending bool
	Limit      int
	Cursor     string
}

// Page is one page of query results. NextCursor resumes after the last
// returned document and is only meaningful when HasMore is true.
type Page struct {
	Docs       []Document
	NextCursor string
	HasMore    bool
}

// Unsubscribe cancels a subscription. It is idempotent; after the first call
// returns, the subscription's callback is never invoked again.
type Unsubscribe func()

// Store is the document-store contract. All mutating operations return
// ErrNotFound when the addressed document does not exist; transient backend
// failures are wrapped in ErrUnavailable.
type Store interface {
	// Insert adds doc to collection and returns the assigned id.
	Insert(ctx context.Context, collection string, doc Document) (string, error)

	// Get returns the document with the given id.
	Get(ctx context.Context, collection, id string) (Document, error)

	// Update merges patch into the existing document (field-level merge, not
	// a full overwrite).
	Update(ctx context.Context, collection, id string, patch Document) error

	// Delete removes the document. Deleting an absent document returns
	// ErrNotFound.
	Delete(ctx context.Context, collection, id string) error

	// Query returns one page of matching documents.
	Query(ctx context.Context, collection string, q Query) (Page, error)

	// AtomicUpdate reads the document, applies fn, and writes the result as
	// one read-modify-write unit. Conflicting concurrent writers are retried,
	// so fn must be free of side effects. Errors returned by fn abort the
	// update and are propagated unchanged.
	AtomicUpdate(ctx context.Context, collection, id string, fn func(Document) (Document, error)) error

	// Subscribe invokes onChange with the full ordered result of q, first
	// with an immediate snapshot and then again after each change to the
	// collection. Deliveries for one subscription are sequential and never
	// out of order.
	Subscribe(ctx context.Context, collection string, q Query, onChange func([]Document)) (Unsubscribe, error)
}

// serverTimestamp is the unexported sentinel type behind ServerTimestamp.
type serverTimestamp struct{}

// ServerTimestamp is a write-time placeholder resolved to the store's clock
// when the write commits. Assign it to createdAt/updatedAt fields.
var ServerTimestamp = serverTimestamp{}

// timeWire is the canonical wire format for store-resolved timestamps:
// fixed-width UTC so lexicographic order equals chronological order.
const timeWire = "2006-01-02T15:04:05.000000000Z"

// FormatTime renders t in the store's canonical timestamp format.
func FormatTime(t time.Time) string {
	return t.UTC().Format(timeWire)
}

// resolveTimestamps returns a copy of doc with every ServerTimestamp sentinel
// replaced by now, rendered in the canonical format.
func resolveTimestamps(doc Document, now time.Time) Document {
	out := make(Document, len(doc))
	for k, v := range doc {
		if _, ok := v.(serverTimestamp); ok {
			out[k] = FormatTime(now)
			continue
		}
		out[k] = v
	}
	return out
}

// Decode unmarshals doc into v through its JSON representation.
func Decode(doc Document, v any) error {
	b, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("docstore: encode document: %w", err)
	}
	if err := json.Unmarshal(b, v); err != nil {
		return fmt.Errorf("docstore: decode document: %w", err)
	}
	return nil
}

// cursorToken is the decoded form of a pagination cursor: the order-field
// value and id of the last document on the previous page.
type cursorToken struct {
	OrderValue any    `json:"v"`
	ID         string `json:"id"`
}

func encodeCursor(orderValue any, id string) (string, error) {
	b, err := json.Marshal(cursorToken{OrderValue: orderValue, ID: id})
	if err != nil {
		return "", fmt.Errorf("docstore: encode cursor: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

func decodeCursor(s string) (cursorToken, error) {
	b, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return cursorToken{}, fmt.Errorf("docstore: bad cursor: %w", err)
	}
	var tok cursorToken
	if err := json.Unmarshal(b, &tok); err != nil {
		return cursorToken{}, fmt.Errorf("docstore: bad cursor: %w", err)
	}
	return tok, nil
}

// compareValues orders two field values. Timestamps (time.Time or canonical
// strings) compare chronologically, numbers numerically, everything else by
// string form.
func compareValues(a, b any) int {
	if at, aok := asTime(a); aok {
		if bt, bok := asTime(b); bok {
			switch {
			case at.Before(bt):
				return -1
			case at.After(bt):
				return 1
			default:
				return 0
			}
		}
	}
	if af, aok := asNumber(a); aok {
		if bf, bok := asNumber(b); bok {
			switch {
			case af < bf:
				return -1
			case af > bf:
				return 1
			default:
				return 0
			}
		}
	}
	as, bs := fmt.Sprint(a), fmt.Sprint(b)
	switch {
	case as < bs:
		return -1
	case as > bs:
		return 1
	default:
		return 0
	}
}

func asTime(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, true
	case string:
		if parsed, err := time.Parse(time.RFC3339Nano, t); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}

func asNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

// matches reports whether doc satisfies every filter in q.
func matches(doc Document, filters []Filter) bool {
	for _, f := range filters {
		got, ok := doc[f.Field]
		if !ok {
			return false
		}
		switch f.Op {
		case OpEqual:
			if compareValues(got, f.Value) != 0 {
				return false
			}
		case OpIn:
			if !valueIn(got, f.Value) {
				return false
			}
		default:
			return false
		}
	}
	return true
}

func valueIn(got, set any) bool {
	switch s := set.(type) {
	case []any:
		for _, v := range s {
			if compareValues(got, v) == 0 {
				return true
			}
		}
	case []string:
		for _, v := range s {
			if compareValues(got, v) == 0 {
				return true
			}
		}
	}
	return false
}
