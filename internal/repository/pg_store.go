package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const recordsTable = "box_office_records"

// PGStore keeps a collection as JSON rows of the box_office_records table, one
// collection name per store.
type PGStore[T any] struct {
	db         *pgxpool.Pool
	collection string
}

func NewPGStore[T any](db *pgxpool.Pool, collection string) RecordStore[T] {
	return &PGStore[T]{db: db, collection: collection}
}

// EnsureSchema creates the records table when it does not exist yet.
func EnsureSchema(ctx context.Context, db *pgxpool.Pool) error {
	_, err := db.Exec(ctx, `CREATE TABLE IF NOT EXISTS `+recordsTable+` (
		collection TEXT NOT NULL,
		position   INTEGER NOT NULL,
		body       JSONB NOT NULL,
		PRIMARY KEY (collection, position)
	)`)
	if err != nil {
		return fmt.Errorf("create %s: %w", recordsTable, err)
	}
	return nil
}

func (s *PGStore[T]) Load(ctx context.Context) ([]T, error) {
	rows, err := s.db.Query(ctx, `SELECT body FROM `+recordsTable+` WHERE collection=$1 ORDER BY position`, s.collection)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", s.collection, err)
	}
	defer rows.Close()

	records := make([]T, 0)
	for rows.Next() {
		var body []byte
		if err := rows.Scan(&body); err != nil {
			return nil, err
		}
		var rec T
		if err := json.Unmarshal(body, &rec); err != nil {
			return nil, fmt.Errorf("decode %s record: %w", s.collection, err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (s *PGStore[T]) Save(ctx context.Context, records []T) error {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM `+recordsTable+` WHERE collection=$1`, s.collection); err != nil {
		return fmt.Errorf("clear %s: %w", s.collection, err)
	}

	rows := make([][]any, 0, len(records))
	for i, rec := range records {
		body, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("encode %s record: %w", s.collection, err)
		}
		rows = append(rows, []any{s.collection, i, body})
	}
	if len(rows) > 0 {
		if _, err := tx.CopyFrom(ctx, pgx.Identifier{recordsTable}, []string{"collection", "position", "body"}, pgx.CopyFromRows(rows)); err != nil {
			return fmt.Errorf("write %s: %w", s.collection, err)
		}
	}

	return tx.Commit(ctx)
}

var _ RecordStore[struct{}] = (*PGStore[struct{}])(nil)
