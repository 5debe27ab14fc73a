package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Postgres stores documents as JSONB rows in a single records table. Dates
// are held in their canonical fixed-width encoding, so range and order
// clauses compare as text.
type Postgres struct {
	dbpool       *sql.DB
	queryTimeout time.Duration
}

func NewPostgres(dbpool *sql.DB, queryTimeout time.Duration) *Postgres {
	return &Postgres{
		dbpool:       dbpool,
		queryTimeout: queryTimeout,
	}
}

// Init creates the records table if it does not exist yet.
func (p *Postgres) Init(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS records (
			kind TEXT NOT NULL,
			id TEXT NOT NULL,
			data JSONB NOT NULL,
			PRIMARY KEY (kind, id)
		)
	`
	if _, err := p.dbpool.ExecContext(ctx, query); err != nil {
		return &StorageError{Op: "init", Kind: "records", Err: err}
	}
	return nil
}

func (p *Postgres) Add(ctx context.Context, kind string, data map[string]any) (string, error) {
	encoded, err := encodeValue(data)
	if err != nil {
		return "", &StorageError{Op: "add", Kind: kind, Err: err}
	}
	doc := encoded.(map[string]any)
	stripServerFields(doc)

	now := encodeTime(time.Now())
	doc["createdAt"] = now
	doc["updatedAt"] = now

	raw, err := json.Marshal(doc)
	if err != nil {
		return "", &StorageError{Op: "add", Kind: kind, Err: err}
	}

	ctx, cancel := context.WithTimeout(ctx, p.queryTimeout)
	defer cancel()

	id := uuid.NewString()
	query := `INSERT INTO records (kind, id, data) VALUES ($1, $2, $3)`
	if _, err := p.dbpool.ExecContext(ctx, query, kind, id, raw); err != nil {
		return "", &StorageError{Op: "add", Kind: kind, Err: err}
	}
	return id, nil
}

func (p *Postgres) Get(ctx context.Context, kind, id string) (map[string]any, error) {
	ctx, cancel := context.WithTimeout(ctx, p.queryTimeout)
	defer cancel()

	var raw []byte
	query := `SELECT data FROM records WHERE kind = $1 AND id = $2`
	if err := p.dbpool.QueryRowContext(ctx, query, kind, id).Scan(&raw); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, &StorageError{Op: "get", Kind: kind, Err: err}
	}
	return decodeRaw(kind, id, raw)
}

func (p *Postgres) Update(ctx context.Context, kind, id string, data map[string]any) error {
	encoded, err := encodeValue(data)
	if err != nil {
		return &StorageError{Op: "update", Kind: kind, Err: err}
	}
	patch := encoded.(map[string]any)
	stripServerFields(patch)
	patch["updatedAt"] = encodeTime(time.Now())

	raw, err := json.Marshal(patch)
	if err != nil {
		return &StorageError{Op: "update", Kind: kind, Err: err}
	}

	ctx, cancel := context.WithTimeout(ctx, p.queryTimeout)
	defer cancel()

	// || merges the patch into the stored document field by field.
	query := `UPDATE records SET data = data || $3 WHERE kind = $1 AND id = $2`
	res, err := p.dbpool.ExecContext(ctx, query, kind, id, raw)
	if err != nil {
		return &StorageError{Op: "update", Kind: kind, Err: err}
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return &StorageError{Op: "update", Kind: kind, Err: err}
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (p *Postgres) Delete(ctx context.Context, kind, id string) error {
	ctx, cancel := context.WithTimeout(ctx, p.queryTimeout)
	defer cancel()

	query := `DELETE FROM records WHERE kind = $1 AND id = $2`
	res, err := p.dbpool.ExecContext(ctx, query, kind, id)
	if err != nil {
		return &StorageError{Op: "delete", Kind: kind, Err: err}
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return &StorageError{Op: "delete", Kind: kind, Err: err}
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (p *Postgres) List(ctx context.Context, kind string) ([]map[string]any, error) {
	return p.Query(ctx, kind, Query{})
}

func (p *Postgres) Query(ctx context.Context, kind string, q Query) ([]map[string]any, error) {
	where := []string{"kind = $1"}
	args := []any{kind}

	for _, f := range q.Filters {
		n := len(args) + 1
		switch f.Op {
		case OpEqual:
			where = append(where, fmt.Sprintf("%s = $%d", jsonPath(f.Field), n))
			args = append(args, filterText(f.Value))
		case OpGreaterEq:
			where = append(where, fmt.Sprintf("%s >= $%d", jsonPath(f.Field), n))
			args = append(args, filterText(f.Value))
		case OpLessEq:
			where = append(where, fmt.Sprintf("%s <= $%d", jsonPath(f.Field), n))
			args = append(args, filterText(f.Value))
		case OpContains:
			raw, err := json.Marshal(f.Value)
			if err != nil {
				return nil, &StorageError{Op: "query", Kind: kind, Err: err}
			}
			where = append(where, fmt.Sprintf("data #> '{%s}' @> $%d::jsonb", pathElems(f.Field), n))
			args = append(args, string(raw))
		default:
			return nil, &StorageError{Op: "query", Kind: kind, Err: fmt.Errorf("unsupported operator %q", f.Op)}
		}
	}

	query := `SELECT id, data FROM records WHERE ` + strings.Join(where, " AND ")
	if q.OrderBy != "" {
		query += ` ORDER BY ` + jsonPath(q.OrderBy)
		if q.Descending {
			query += ` DESC`
		}
	}
	if q.Limit > 0 {
		query += fmt.Sprintf(` LIMIT %d`, q.Limit)
	}

	ctx, cancel := context.WithTimeout(ctx, p.queryTimeout)
	defer cancel()

	rows, err := p.dbpool.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, &StorageError{Op: "query", Kind: kind, Err: err}
	}
	defer rows.Close()

	docs := make([]map[string]any, 0)
	for rows.Next() {
		var id string
		var raw []byte
		if err := rows.Scan(&id, &raw); err != nil {
			return nil, &StorageError{Op: "query", Kind: kind, Err: err}
		}
		doc, err := decodeRaw(kind, id, raw)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, &StorageError{Op: "query", Kind: kind, Err: err}
	}
	return docs, nil
}

func decodeRaw(kind, id string, raw []byte) (map[string]any, error) {
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, &StorageError{Op: "decode", Kind: kind, Err: err}
	}
	decoded := decodeValue(doc).(map[string]any)
	decoded["id"] = id
	return decoded, nil
}

// jsonPath renders a dotted field path as a JSONB text extraction.
func jsonPath(field string) string {
	return fmt.Sprintf("data #>> '{%s}'", pathElems(field))
}

func pathElems(field string) string {
	return strings.Join(strings.Split(field, "."), ",")
}

func filterText(v any) string {
	switch val := v.(type) {
	case time.Time:
		return encodeTime(val)
	case string:
		return val
	default:
		return fmt.Sprintf("%v", val)
	}
}
