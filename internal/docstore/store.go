package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/yesmovie/backend/pkg/database"
	apperrors "github.com/yesmovie/backend/pkg/errors"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// Store provides typed access to one collection of a partitioned document
// database. Documents are stored as JSONB rows keyed by (partition_key, id).
type Store[T any] struct {
	db         database.DBTX
	collection string
}

// NewStore resolves T's collection from the client registry. An unmapped
// type is a configuration error so wiring mistakes fail at startup.
func NewStore[T any](client *Client) (*Store[T], error) {
	t := reflect.TypeOf((*T)(nil)).Elem()
	collection, err := client.collectionFor(t)
	if err != nil {
		return nil, err
	}
	return &Store[T]{db: client.db, collection: collection}, nil
}

// documentID extracts the "id" field from the item's JSON form, mirroring
// how the document database addresses rows.
func documentID(doc []byte) (string, error) {
	var meta struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(doc, &meta); err != nil {
		return "", fmt.Errorf("extract document id: %w", err)
	}
	if meta.ID == "" {
		return "", apperrors.Validation("document is missing an id")
	}
	return meta.ID, nil
}

// AddItem inserts a new document. Inserting an id that already exists within
// the partition is a conflict.
func (s *Store[T]) AddItem(ctx context.Context, item T, partitionKey string) error {
	doc, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("marshal document: %w", err)
	}

	id, err := documentID(doc)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (id, partition_key, doc, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $4)`, s.collection)

	if _, err := s.db.Exec(ctx, query, id, partitionKey, doc, time.Now().UTC()); err != nil {
		if isUniqueViolation(err) {
			return apperrors.Conflict(fmt.Sprintf("document %s already exists in %s", id, s.collection))
		}
		return fmt.Errorf("insert document: %w", err)
	}

	return nil
}

// GetItem performs a point read. Absence is not an error: the second return
// value reports whether the document was found.
func (s *Store[T]) GetItem(ctx context.Context, id, partitionKey string) (T, bool, error) {
	var zero T

	query := fmt.Sprintf(`
		SELECT doc FROM %s
		WHERE id = $1 AND partition_key = $2`, s.collection)

	var doc []byte
	err := s.db.QueryRow(ctx, query, id, partitionKey).Scan(&doc)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return zero, false, nil
		}
		return zero, false, fmt.Errorf("read document: %w", err)
	}

	var item T
	if err := json.Unmarshal(doc, &item); err != nil {
		return zero, false, fmt.Errorf("unmarshal document: %w", err)
	}
	return item, true, nil
}

// GetItems runs an ad-hoc finite query against the collection.
func (s *Store[T]) GetItems(ctx context.Context, q Query) ([]T, error) {
	where, args := q.build()

	query := fmt.Sprintf(`
		SELECT doc FROM %s
		%s
		ORDER BY partition_key, id`, s.collection, where)

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query documents: %w", err)
	}
	defer rows.Close()

	return scanDocs[T](rows)
}

// GetItemsPaged returns one page of documents plus a cursor for the next
// page. An empty partitionKey scans the whole collection. The returned
// cursor is opaque; an empty cursor signals exhaustion. pageSize is a soft
// cap: non-positive values fall back to a default and oversized requests
// are clamped.
func (s *Store[T]) GetItemsPaged(ctx context.Context, cursor string, pageSize int, partitionKey string) ([]T, string, error) {
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	var (
		conditions []string
		args       []any
		argIndex   = 1
	)

	if partitionKey != "" {
		conditions = append(conditions, fmt.Sprintf("partition_key = $%d", argIndex))
		args = append(args, partitionKey)
		argIndex++
	}

	if cursor != "" {
		last, err := decodeCursor(cursor)
		if err != nil {
			return nil, "", err
		}
		if partitionKey != "" {
			conditions = append(conditions, fmt.Sprintf("id > $%d", argIndex))
			args = append(args, last.ID)
			argIndex++
		} else {
			conditions = append(conditions, fmt.Sprintf("(partition_key, id) > ($%d, $%d)", argIndex, argIndex+1))
			args = append(args, last.PartitionKey, last.ID)
			argIndex += 2
		}
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	// Fetch one extra row to learn whether another page exists.
	query := fmt.Sprintf(`
		SELECT partition_key, id, doc FROM %s
		%s
		ORDER BY partition_key, id
		LIMIT $%d`, s.collection, whereClause, argIndex)
	args = append(args, pageSize+1)

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, "", fmt.Errorf("query documents page: %w", err)
	}
	defer rows.Close()

	var (
		items   []T
		lastRow pageCursor
	)
	for rows.Next() {
		var (
			pk  string
			id  string
			doc []byte
		)
		if err := rows.Scan(&pk, &id, &doc); err != nil {
			return nil, "", fmt.Errorf("scan document row: %w", err)
		}

		if len(items) == pageSize {
			// Extra row: more pages remain, cursor points at the page's last row.
			return items, encodeCursor(lastRow), rows.Err()
		}

		var item T
		if err := json.Unmarshal(doc, &item); err != nil {
			return nil, "", fmt.Errorf("unmarshal document: %w", err)
		}
		items = append(items, item)
		lastRow = pageCursor{PartitionKey: pk, ID: id}
	}
	if err := rows.Err(); err != nil {
		return nil, "", fmt.Errorf("iterate document rows: %w", err)
	}

	if items == nil {
		items = []T{}
	}
	return items, "", nil
}

// UpdateItem upserts the document under (partitionKey, id). There is no
// version check; the last writer wins.
func (s *Store[T]) UpdateItem(ctx context.Context, id string, item T, partitionKey string) error {
	doc, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("marshal document: %w", err)
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (id, partition_key, doc, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $4)
		ON CONFLICT (partition_key, id)
		DO UPDATE SET doc = EXCLUDED.doc, updated_at = EXCLUDED.updated_at`, s.collection)

	if _, err := s.db.Exec(ctx, query, id, partitionKey, doc, time.Now().UTC()); err != nil {
		return fmt.Errorf("upsert document: %w", err)
	}
	return nil
}

// DeleteItem removes the document. Deleting an absent document is a no-op.
func (s *Store[T]) DeleteItem(ctx context.Context, id, partitionKey string) error {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE id = $1 AND partition_key = $2`, s.collection)

	if _, err := s.db.Exec(ctx, query, id, partitionKey); err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	return nil
}

func scanDocs[T any](rows pgx.Rows) ([]T, error) {
	var items []T
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("scan document row: %w", err)
		}
		var item T
		if err := json.Unmarshal(doc, &item); err != nil {
			return nil, fmt.Errorf("unmarshal document: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate document rows: %w", err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// isUniqueViolation checks if the error is a PostgreSQL unique constraint violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "23505")
}
