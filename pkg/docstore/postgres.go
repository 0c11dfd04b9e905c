package docstore

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/sharebox/pkg/database"
	"github.com/ghuser/sharebox/pkg/logger"
)

const (
	// atomicRetries bounds how often an AtomicUpdate is re-run after the
	// database aborts it for a conflicting concurrent writer.
	atomicRetries = 5

	// pollInterval is how often live subscriptions re-query their collection.
	pollInterval = time.Second
)

// fieldPattern guards JSON field names interpolated into SQL. Field names
// come from code constants, never from request input.
var fieldPattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// Postgres is a Store backed by a single JSONB documents table. Server
// timestamps come from the database clock so every writer shares one source
// of time.
type Postgres struct {
	db  *database.Database
	log logger.Logger
}

// NewPostgres returns a Store over db. The documents table is created by the
// goose migrations.
func NewPostgres(db *database.Database, log logger.Logger) *Postgres {
	return &Postgres{db: db, log: log}
}

// Ping reports backend health.
func (p *Postgres) Ping(ctx context.Context) error {
	return p.db.Ping(ctx)
}

// Insert adds doc to collection and returns the assigned id.
func (p *Postgres) Insert(ctx context.Context, collection string, doc Document) (string, error) {
	id := uuid.NewString()

	err := p.db.WithTx(ctx, func(tx *sql.Tx) error {
		now, err := txClock(ctx, tx)
		if err != nil {
			return err
		}

		stored := resolveTimestamps(doc, now)
		stored[FieldID] = id
		data, err := json.Marshal(stored)
		if err != nil {
			return fmt.Errorf("marshal document: %w", err)
		}

		_, err = tx.ExecContext(ctx,
			`insert into documents (collection, id, data) values ($1, $2, $3)`,
			collection, id, data,
		)
		if err != nil {
			return fmt.Errorf("insert document: %w", err)
		}
		return nil
	})
	if err != nil {
		return "", unavailable(err)
	}
	return id, nil
}

// Get returns the document with the given id.
func (p *Postgres) Get(ctx context.Context, collection, id string) (Document, error) {
	var data []byte
	err := p.db.DB().QueryRowContext(ctx,
		`select data from documents where collection = $1 and id = $2`,
		collection, id,
	).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, unavailable(fmt.Errorf("query document: %w", err))
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("unmarshal document: %w", err)
	}
	return doc, nil
}

// Update merges patch into the existing document.
func (p *Postgres) Update(ctx context.Context, collection, id string, patch Document) error {
	err := p.db.WithTx(ctx, func(tx *sql.Tx) error {
		now, err := txClock(ctx, tx)
		if err != nil {
			return err
		}

		data, err := json.Marshal(resolveTimestamps(patch, now))
		if err != nil {
			return fmt.Errorf("marshal patch: %w", err)
		}

		res, err := tx.ExecContext(ctx,
			`update documents set data = data || $3::jsonb, updated_at = now()
			 where collection = $1 and id = $2`,
			collection, id, data,
		)
		if err != nil {
			return fmt.Errorf("update document: %w", err)
		}
		return requireRow(res)
	})
	return unavailable(err)
}

// Delete removes the document.
func (p *Postgres) Delete(ctx context.Context, collection, id string) error {
	res, err := p.db.DB().ExecContext(ctx,
		`delete from documents where collection = $1 and id = $2`,
		collection, id,
	)
	if err != nil {
		return unavailable(fmt.Errorf("delete document: %w", err))
	}
	return requireRow(res)
}

// AtomicUpdate applies fn under a row lock and retries when the database
// aborts the transaction for a conflicting writer.
func (p *Postgres) AtomicUpdate(ctx context.Context, collection, id string, fn func(Document) (Document, error)) error {
	var err error
	for attempt := 0; attempt <= atomicRetries; attempt++ {
		var fnErr error
		err = p.db.WithTx(ctx, func(tx *sql.Tx) error {
			var data []byte
			scanErr := tx.QueryRowContext(ctx,
				`select data from documents where collection = $1 and id = $2 for update`,
				collection, id,
			).Scan(&data)
			if scanErr != nil {
				if errors.Is(scanErr, sql.ErrNoRows) {
					return ErrNotFound
				}
				return fmt.Errorf("lock document: %w", scanErr)
			}

			var doc Document
			if err := json.Unmarshal(data, &doc); err != nil {
				return fmt.Errorf("unmarshal document: %w", err)
			}

			var updated Document
			updated, fnErr = fn(doc)
			if fnErr != nil {
				return fnErr
			}

			now, err := txClock(ctx, tx)
			if err != nil {
				return err
			}
			updated = resolveTimestamps(updated, now)
			updated[FieldID] = id

			out, err := json.Marshal(updated)
			if err != nil {
				return fmt.Errorf("marshal document: %w", err)
			}
			_, err = tx.ExecContext(ctx,
				`update documents set data = $3, updated_at = now()
				 where collection = $1 and id = $2`,
				collection, id, out,
			)
			if err != nil {
				return fmt.Errorf("write document: %w", err)
			}
			return nil
		})
		if fnErr != nil {
			// fn rejected the update; propagate its error unchanged
			return fnErr
		}
		if !database.IsSerializationFailure(err) {
			return unavailable(err)
		}
		if p.log != nil {
			p.log.DebugContext(ctx, "atomic update conflict, retrying",
				"collection", collection, "id", id, "attempt", attempt+1)
		}
	}
	return fmt.Errorf("%w: atomic update retries exhausted: %v", ErrUnavailable, err)
}

// Query returns one page of matching documents.
func (p *Postgres) Query(ctx context.Context, collection string, q Query) (Page, error) {
	docs, err := p.runQuery(ctx, collection, q, q.Limit)
	if err != nil {
		return Page{}, err
	}

	if q.Limit <= 0 || len(docs) <= q.Limit {
		return Page{Docs: docs}, nil
	}

	docs = docs[:q.Limit]
	last := docs[len(docs)-1]
	id, _ := last[FieldID].(string)
	cursor, err := encodeCursor(last[q.OrderBy], id)
	if err != nil {
		return Page{}, err
	}
	return Page{Docs: docs, NextCursor: cursor, HasMore: true}, nil
}

// runQuery builds and executes the SQL for q. When limit > 0 it fetches one
// extra row so the caller can detect a further page.
func (p *Postgres) runQuery(ctx context.Context, collection string, q Query, limit int) ([]Document, error) {
	var (
		sb   strings.Builder
		args []any
	)
	sb.WriteString(`select data from documents where collection = $1`)
	args = append(args, collection)

	for _, f := range q.Filters {
		if !fieldPattern.MatchString(f.Field) {
			return nil, fmt.Errorf("docstore: invalid filter field %q", f.Field)
		}
		switch f.Op {
		case OpEqual:
			v, err := json.Marshal(f.Value)
			if err != nil {
				return nil, fmt.Errorf("docstore: encode filter value: %w", err)
			}
			args = append(args, string(v))
			fmt.Fprintf(&sb, ` and data->'%s' = $%d::jsonb`, f.Field, len(args))
		case OpIn:
			values, err := inValues(f.Value)
			if err != nil {
				return nil, err
			}
			placeholders := make([]string, len(values))
			for i, v := range values {
				args = append(args, v)
				placeholders[i] = fmt.Sprintf("$%d::jsonb", len(args))
			}
			fmt.Fprintf(&sb, ` and data->'%s' in (%s)`, f.Field, strings.Join(placeholders, ", "))
		default:
			return nil, fmt.Errorf("docstore: unsupported filter op %q", f.Op)
		}
	}

	if q.OrderBy != "" && !fieldPattern.MatchString(q.OrderBy) {
		return nil, fmt.Errorf("docstore: invalid order field %q", q.OrderBy)
	}

	if q.Cursor != "" && q.OrderBy != "" {
		tok, err := decodeCursor(q.Cursor)
		if err != nil {
			return nil, err
		}
		cmp := ">"
		if q.Descending {
			cmp = "<"
		}
		args = append(args, fmt.Sprint(tok.OrderValue))
		orderArg := len(args)
		args = append(args, tok.ID)
		fmt.Fprintf(&sb, ` and (data->>'%s', id) %s ($%d, $%d)`, q.OrderBy, cmp, orderArg, len(args))
	}

	if q.OrderBy != "" {
		dir := "asc"
		if q.Descending {
			dir = "desc"
		}
		fmt.Fprintf(&sb, ` order by data->>'%s' %s, id %s`, q.OrderBy, dir, dir)
	}

	if limit > 0 {
		args = append(args, limit+1)
		fmt.Fprintf(&sb, ` limit $%d`, len(args))
	}

	rows, err := p.db.DB().QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, unavailable(fmt.Errorf("query documents: %w", err))
	}
	defer rows.Close()

	var docs []Document
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		var doc Document
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("unmarshal document: %w", err)
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable(fmt.Errorf("iterate documents: %w", err))
	}
	return docs, nil
}

// Subscribe re-queries the collection on a fixed interval and delivers a
// snapshot whenever the result set changes. Polling keeps the change feed
// independent of any broker; the interval bounds staleness at pollInterval.
func (p *Postgres) Subscribe(ctx context.Context, collection string, q Query, onChange func([]Document)) (Unsubscribe, error) {
	sub := &pgSub{done: make(chan struct{})}
	go p.runSub(ctx, sub, collection, q, onChange)

	unsubscribe := func() {
		sub.stop.Do(func() {
			sub.deliverMu.Lock()
			sub.closed = true
			sub.deliverMu.Unlock()
			close(sub.done)
		})
	}
	return unsubscribe, nil
}

type pgSub struct {
	done      chan struct{}
	deliverMu sync.Mutex
	closed    bool
	stop      sync.Once
}

func (p *Postgres) runSub(ctx context.Context, sub *pgSub, collection string, q Query, onChange func([]Document)) {
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	var lastFingerprint []byte
	deliver := func(initial bool) {
		docs, err := p.runQuery(ctx, collection, q, 0)
		if err != nil {
			if p.log != nil {
				p.log.WarnContext(ctx, "subscription query failed", "collection", collection, "error", err)
			}
			return
		}
		fp, err := json.Marshal(docs)
		if err != nil {
			return
		}
		if !initial && bytes.Equal(fp, lastFingerprint) {
			return
		}
		lastFingerprint = fp

		sub.deliverMu.Lock()
		if !sub.closed {
			onChange(docs)
		}
		sub.deliverMu.Unlock()
	}

	deliver(true)
	for {
		select {
		case <-sub.done:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			deliver(false)
		}
	}
}

// txClock reads the database clock inside tx so resolved timestamps share the
// transaction's commit visibility order.
func txClock(ctx context.Context, tx *sql.Tx) (time.Time, error) {
	var now time.Time
	if err := tx.QueryRowContext(ctx, `select now()`).Scan(&now); err != nil {
		return time.Time{}, fmt.Errorf("read db clock: %w", err)
	}
	return now, nil
}

func inValues(set any) ([]string, error) {
	var raw []any
	switch s := set.(type) {
	case []any:
		raw = s
	case []string:
		raw = make([]any, len(s))
		for i, v := range s {
			raw[i] = v
		}
	default:
		return nil, fmt.Errorf("docstore: in-set filter value must be a slice, got %T", set)
	}

	out := make([]string, len(raw))
	for i, v := range raw {
		b, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("docstore: encode filter value: %w", err)
		}
		out[i] = string(b)
	}
	return out, nil
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// unavailable wraps backend failures with ErrUnavailable, leaving ErrNotFound
// and caller-originated errors untouched.
func unavailable(err error) error {
	if err == nil || errors.Is(err, ErrNotFound) || errors.Is(err, ErrUnavailable) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}
