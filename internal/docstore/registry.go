package docstore

import (
	"context"
	"fmt"
	"reflect"
	"regexp"

	"github.com/yesmovie/backend/pkg/database"
	apperrors "github.com/yesmovie/backend/pkg/errors"
)

// collectionNamePattern restricts collection names to safe SQL identifiers,
// since collection names are interpolated into statements as table names.
var collectionNamePattern = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// Binding associates an entity type with the collection that stores it.
type Binding struct {
	Type       reflect.Type
	Collection string
}

// Bind declares that values of type T live in the named collection.
func Bind[T any](collection string) Binding {
	return Binding{
		Type:       reflect.TypeOf((*T)(nil)).Elem(),
		Collection: collection,
	}
}

// Client wraps a database handle together with the type-to-collection
// registry. The registry is built once at construction and never mutated,
// so an unmapped type surfaces at startup rather than per request.
type Client struct {
	db       database.DBTX
	registry map[reflect.Type]string
}

// NewClient builds a document store client from the given bindings.
// Duplicate or malformed bindings are configuration errors.
func NewClient(db database.DBTX, bindings ...Binding) (*Client, error) {
	registry := make(map[reflect.Type]string, len(bindings))
	for _, b := range bindings {
		if !collectionNamePattern.MatchString(b.Collection) {
			return nil, apperrors.Configuration(fmt.Sprintf("invalid collection name %q", b.Collection))
		}
		if existing, ok := registry[b.Type]; ok {
			return nil, apperrors.Configuration(fmt.Sprintf("type %s already bound to collection %q", b.Type, existing))
		}
		registry[b.Type] = b.Collection
	}
	return &Client{db: db, registry: registry}, nil
}

// collectionFor resolves the collection name for the given type.
func (c *Client) collectionFor(t reflect.Type) (string, error) {
	collection, ok := c.registry[t]
	if !ok {
		return "", apperrors.Configuration(fmt.Sprintf("no collection registered for type %s", t))
	}
	return collection, nil
}

// EnsureCollections creates the backing table for every registered collection
// if it does not already exist. Intended to run once at startup.
func (c *Client) EnsureCollections(ctx context.Context) error {
	for _, collection := range c.registry {
		ddl := fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id            text        NOT NULL,
				partition_key text        NOT NULL,
				doc           jsonb       NOT NULL,
				created_at    timestamptz NOT NULL DEFAULT now(),
				updated_at    timestamptz NOT NULL DEFAULT now(),
				PRIMARY KEY (partition_key, id)
			)`, collection)
		if _, err := c.db.Exec(ctx, ddl); err != nil {
			return fmt.Errorf("create collection %s: %w", collection, err)
		}
	}
	return nil
}
