package docstore

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Memory is an in-memory Store. It is safe for concurrent use and is the
// backend of choice for tests and local development. Documents are held in
// canonical JSON form, so reads behave exactly like the PostgreSQL backend.
type Memory struct {
	mu    sync.RWMutex
	colls map[string]map[string]Document
	subs  map[int64]*memorySub
	subID int64

	// now is the store clock; swap it in tests for deterministic timestamps.
	now func() time.Time
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		colls: make(map[string]map[string]Document),
		subs:  make(map[int64]*memorySub),
		now:   time.Now,
	}
}

// SetClock replaces the store clock. Test use only.
func (m *Memory) SetClock(now func() time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = now
}

// Insert adds doc to collection and returns the assigned id.
func (m *Memory) Insert(_ context.Context, collection string, doc Document) (string, error) {
	id := uuid.NewString()

	m.mu.Lock()
	stored, err := canonicalize(resolveTimestamps(doc, m.now()))
	if err != nil {
		m.mu.Unlock()
		return "", err
	}
	stored[FieldID] = id

	coll, ok := m.colls[collection]
	if !ok {
		coll = make(map[string]Document)
		m.colls[collection] = coll
	}
	coll[id] = stored
	m.mu.Unlock()

	m.broadcast(collection)
	return id, nil
}

// Get returns the document with the given id.
func (m *Memory) Get(_ context.Context, collection, id string) (Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	doc, ok := m.colls[collection][id]
	if !ok {
		return nil, ErrNotFound
	}
	return copyDoc(doc), nil
}

// Update merges patch into the existing document.
func (m *Memory) Update(_ context.Context, collection, id string, patch Document) error {
	m.mu.Lock()
	doc, ok := m.colls[collection][id]
	if !ok {
		m.mu.Unlock()
		return ErrNotFound
	}

	resolved, err := canonicalize(resolveTimestamps(patch, m.now()))
	if err != nil {
		m.mu.Unlock()
		return err
	}
	for k, v := range resolved {
		doc[k] = v
	}
	doc[FieldID] = id
	m.mu.Unlock()

	m.broadcast(collection)
	return nil
}

// Delete removes the document.
func (m *Memory) Delete(_ context.Context, collection, id string) error {
	m.mu.Lock()
	coll, ok := m.colls[collection]
	if !ok {
		m.mu.Unlock()
		return ErrNotFound
	}
	if _, ok := coll[id]; !ok {
		m.mu.Unlock()
		return ErrNotFound
	}
	delete(coll, id)
	m.mu.Unlock()

	m.broadcast(collection)
	return nil
}

// AtomicUpdate applies fn to the document under the store lock, so
// concurrent read-modify-write cycles never lose an update.
func (m *Memory) AtomicUpdate(_ context.Context, collection, id string, fn func(Document) (Document, error)) error {
	m.mu.Lock()
	doc, ok := m.colls[collection][id]
	if !ok {
		m.mu.Unlock()
		return ErrNotFound
	}

	updated, err := fn(copyDoc(doc))
	if err != nil {
		m.mu.Unlock()
		return err
	}

	stored, err := canonicalize(resolveTimestamps(updated, m.now()))
	if err != nil {
		m.mu.Unlock()
		return err
	}
	stored[FieldID] = id
	m.colls[collection][id] = stored
	m.mu.Unlock()

	m.broadcast(collection)
	return nil
}

// Query returns one page of matching documents.
func (m *Memory) Query(_ context.Context, collection string, q Query) (Page, error) {
	tok, err := cursorFor(q)
	if err != nil {
		return Page{}, err
	}

	m.mu.RLock()
	docs := m.queryLocked(collection, q, tok)
	m.mu.RUnlock()

	if q.Limit <= 0 || len(docs) <= q.Limit {
		return Page{Docs: docs}, nil
	}

	docs = docs[:q.Limit]
	last := docs[len(docs)-1]
	cursor, err := encodeCursor(last[q.OrderBy], last[FieldID].(string))
	if err != nil {
		return Page{}, err
	}
	return Page{Docs: docs, NextCursor: cursor, HasMore: true}, nil
}

// cursorFor decodes q's cursor up front so both backends reject a bad token
// the same way. Returns nil when q carries no cursor.
func cursorFor(q Query) (*cursorToken, error) {
	if q.Cursor == "" {
		return nil, nil
	}
	tok, err := decodeCursor(q.Cursor)
	if err != nil {
		return nil, err
	}
	return &tok, nil
}

// queryLocked evaluates q without the limit applied; callers hold m.mu and
// pass the pre-decoded cursor token, if any.
func (m *Memory) queryLocked(collection string, q Query, tok *cursorToken) []Document {
	var out []Document
	for _, doc := range m.colls[collection] {
		if matches(doc, q.Filters) {
			out = append(out, copyDoc(doc))
		}
	}

	if q.OrderBy != "" {
		sort.Slice(out, func(i, j int) bool {
			c := compareValues(out[i][q.OrderBy], out[j][q.OrderBy])
			if c == 0 {
				// id tiebreak keeps pagination deterministic
				c = compareValues(out[i][FieldID], out[j][FieldID])
			}
			if q.Descending {
				return c > 0
			}
			return c < 0
		})
	}

	if tok != nil {
		out = afterCursor(out, q, *tok)
	}
	return out
}

// afterCursor drops every document at or before the cursor position.
func afterCursor(docs []Document, q Query, tok cursorToken) []Document {
	idx := 0
	for i, doc := range docs {
		c := compareValues(doc[q.OrderBy], tok.OrderValue)
		if c == 0 {
			c = compareValues(doc[FieldID], tok.ID)
		}
		if q.Descending {
			c = -c
		}
		if c > 0 {
			idx = i
			return docs[idx:]
		}
	}
	return nil
}

// memorySub is one live subscription. Deliveries run on a dedicated
// goroutine; notify is a coalescing wake-up signal.
type memorySub struct {
	collection string
	query      Query
	cursor     *cursorToken
	onChange   func([]Document)

	notify chan struct{}
	done   chan struct{}

	// deliverMu serializes deliveries against Unsubscribe: once closed is
	// set no further onChange call can start.
	deliverMu sync.Mutex
	closed    bool
	stop      sync.Once
}

// Subscribe delivers an immediate snapshot, then a fresh ordered snapshot
// after every change to the collection.
func (m *Memory) Subscribe(_ context.Context, collection string, q Query, onChange func([]Document)) (Unsubscribe, error) {
	tok, err := cursorFor(q)
	if err != nil {
		return nil, err
	}

	sub := &memorySub{
		collection: collection,
		query:      q,
		cursor:     tok,
		onChange:   onChange,
		notify:     make(chan struct{}, 1),
		done:       make(chan struct{}),
	}

	m.mu.Lock()
	m.subID++
	id := m.subID
	m.subs[id] = sub
	m.mu.Unlock()

	go m.runSub(sub)
	sub.notify <- struct{}{} // initial snapshot

	unsubscribe := func() {
		sub.stop.Do(func() {
			sub.deliverMu.Lock()
			sub.closed = true
			sub.deliverMu.Unlock()
			close(sub.done)

			m.mu.Lock()
			delete(m.subs, id)
			m.mu.Unlock()
		})
	}
	return unsubscribe, nil
}

func (m *Memory) runSub(sub *memorySub) {
	for {
		select {
		case <-sub.done:
			return
		case <-sub.notify:
			m.mu.RLock()
			snapshot := m.queryLocked(sub.collection, sub.query, sub.cursor)
			m.mu.RUnlock()
			if sub.query.Limit > 0 && len(snapshot) > sub.query.Limit {
				snapshot = snapshot[:sub.query.Limit]
			}

			sub.deliverMu.Lock()
			if !sub.closed {
				sub.onChange(snapshot)
			}
			sub.deliverMu.Unlock()
		}
	}
}

// broadcast wakes every subscription watching collection.
func (m *Memory) broadcast(collection string) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, sub := range m.subs {
		if sub.collection != collection {
			continue
		}
		select {
		case sub.notify <- struct{}{}:
		default: // a wake-up is already pending; snapshots coalesce
		}
	}
}

// canonicalize round-trips doc through JSON so stored values use the same
// primitive types the PostgreSQL backend returns (float64 numbers, RFC3339
// strings for time.Time).
func canonicalize(doc Document) (Document, error) {
	b, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("docstore: canonicalize: %w", err)
	}
	var out Document
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, fmt.Errorf("docstore: canonicalize: %w", err)
	}
	return out, nil
}

func copyDoc(doc Document) Document {
	out, err := canonicalize(doc)
	if err != nil {
		// canonical documents always survive a JSON round trip
		panic(err)
	}
	return out
}
