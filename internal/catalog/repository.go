package catalog

import (
	"context"

	"github.com/yesmovie/backend/internal/domain"
)

// Collection names for catalog entities.
const (
	CollectionMovies    = "movies"
	CollectionActors    = "actors"
	CollectionProducers = "producers"
	CollectionCinemas   = "cinemas"
)

// MovieRepository defines data access for movies.
type MovieRepository interface {
	Create(ctx context.Context, movie *domain.Movie) error
	GetByID(ctx context.Context, id string) (*domain.Movie, error)
	List(ctx context.Context, cursor string, pageSize int) ([]domain.Movie, string, error)
	Update(ctx context.Context, movie *domain.Movie) error
	Delete(ctx context.Context, id string) error
}

// ActorRepository defines data access for actors.
type ActorRepository interface {
	Create(ctx context.Context, actor *domain.Actor) error
	GetByID(ctx context.Context, id string) (*domain.Actor, error)
	List(ctx context.Context, cursor string, pageSize int) ([]domain.Actor, string, error)
	Update(ctx context.Context, actor *domain.Actor) error
	Delete(ctx context.Context, id string) error
}

// ProducerRepository defines data access for producers.
type ProducerRepository interface {
	Create(ctx context.Context, producer *domain.Producer) error
	GetByID(ctx context.Context, id string) (*domain.Producer, error)
	List(ctx context.Context, cursor string, pageSize int) ([]domain.Producer, string, error)
	Update(ctx context.Context, producer *domain.Producer) error
	Delete(ctx context.Context, id string) error
}

// CinemaRepository defines data access for cinemas.
type CinemaRepository interface {
	Create(ctx context.Context, cinema *domain.Cinema) error
	GetByID(ctx context.Context, id string) (*domain.Cinema, error)
	List(ctx context.Context, cursor string, pageSize int) ([]domain.Cinema, string, error)
	Update(ctx context.Context, cinema *domain.Cinema) error
	Delete(ctx context.Context, id string) error
}
