package catalog

import (
	"context"
	"fmt"

	"github.com/yesmovie/backend/internal/docstore"
	"github.com/yesmovie/backend/internal/domain"
	apperrors "github.com/yesmovie/backend/pkg/errors"
)

// Bindings returns the docstore bindings for all catalog collections.
func Bindings() []docstore.Binding {
	return []docstore.Binding{
		docstore.Bind[domain.Movie](CollectionMovies),
		docstore.Bind[domain.Actor](CollectionActors),
		docstore.Bind[domain.Producer](CollectionProducers),
		docstore.Bind[domain.Cinema](CollectionCinemas),
	}
}

// entityRepository adapts a document store to the typed repository
// interfaces. Catalog entities are self-partitioned: the partition key is the
// entity's own id.
type entityRepository[T any] struct {
	store    *docstore.Store[T]
	resource string
	idOf     func(*T) string
}

func (r *entityRepository[T]) Create(ctx context.Context, entity *T) error {
	if err := r.store.AddItem(ctx, *entity, r.idOf(entity)); err != nil {
		return fmt.Errorf("create %s: %w", r.resource, err)
	}
	return nil
}

func (r *entityRepository[T]) GetByID(ctx context.Context, id string) (*T, error) {
	entity, found, err := r.store.GetItem(ctx, id, id)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", r.resource, err)
	}
	if !found {
		return nil, apperrors.NotFound(r.resource, id)
	}
	return &entity, nil
}

func (r *entityRepository[T]) List(ctx context.Context, cursor string, pageSize int) ([]T, string, error) {
	items, next, err := r.store.GetItemsPaged(ctx, cursor, pageSize, "")
	if err != nil {
		return nil, "", fmt.Errorf("list %ss: %w", r.resource, err)
	}
	return items, next, nil
}

func (r *entityRepository[T]) Update(ctx context.Context, entity *T) error {
	id := r.idOf(entity)
	if err := r.store.UpdateItem(ctx, id, *entity, id); err != nil {
		return fmt.Errorf("update %s: %w", r.resource, err)
	}
	return nil
}

func (r *entityRepository[T]) Delete(ctx context.Context, id string) error {
	if err := r.store.DeleteItem(ctx, id, id); err != nil {
		return fmt.Errorf("delete %s: %w", r.resource, err)
	}
	return nil
}

func newEntityRepository[T any](client *docstore.Client, resource string, idOf func(*T) string) (*entityRepository[T], error) {
	store, err := docstore.NewStore[T](client)
	if err != nil {
		return nil, err
	}
	return &entityRepository[T]{store: store, resource: resource, idOf: idOf}, nil
}

// NewMovieRepository creates a document-store-backed movie repository.
func NewMovieRepository(client *docstore.Client) (MovieRepository, error) {
	return newEntityRepository[domain.Movie](client, "movie", func(m *domain.Movie) string { return m.ID })
}

// NewActorRepository creates a document-store-backed actor repository.
func NewActorRepository(client *docstore.Client) (ActorRepository, error) {
	return newEntityRepository[domain.Actor](client, "actor", func(a *domain.Actor) string { return a.ID })
}

// NewProducerRepository creates a document-store-backed producer repository.
func NewProducerRepository(client *docstore.Client) (ProducerRepository, error) {
	return newEntityRepository[domain.Producer](client, "producer", func(p *domain.Producer) string { return p.ID })
}

// NewCinemaRepository creates a document-store-backed cinema repository.
func NewCinemaRepository(client *docstore.Client) (CinemaRepository, error) {
	return newEntityRepository[domain.Cinema](client, "cinema", func(c *domain.Cinema) string { return c.ID })
}
