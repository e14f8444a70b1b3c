package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/yesmovie/backend/internal/domain"
	apperrors "github.com/yesmovie/backend/pkg/errors"
)

// ActorService implements the business logic for actor operations.
type ActorService struct {
	repo   ActorRepository
	logger *slog.Logger
}

// NewActorService creates a new actor service.
func NewActorService(repo ActorRepository, logger *slog.Logger) *ActorService {
	return &ActorService{repo: repo, logger: logger}
}

// CreateActorInput holds the parameters for creating an actor.
type CreateActorInput struct {
	FullName  string
	Biography string
	MovieID   string
	ImageURL  string
}

// CreateActor creates a new actor.
func (s *ActorService) CreateActor(ctx context.Context, input *CreateActorInput) (*domain.Actor, error) {
	if input.FullName == "" {
		return nil, apperrors.Validation("actor full name is required")
	}

	now := time.Now().UTC()
	actor := &domain.Actor{
		ID:        uuid.New().String(),
		FullName:  input.FullName,
		Biography: input.Biography,
		MovieID:   input.MovieID,
		ImageURL:  input.ImageURL,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, actor); err != nil {
		return nil, fmt.Errorf("create actor: %w", err)
	}

	s.logger.InfoContext(ctx, "actor created", slog.String("actor_id", actor.ID))

	return actor, nil
}

// GetActor retrieves an actor by ID.
func (s *ActorService) GetActor(ctx context.Context, id string) (*domain.Actor, error) {
	actor, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get actor by id: %w", err)
	}
	return actor, nil
}

// ListActors returns one cursor page of actors.
func (s *ActorService) ListActors(ctx context.Context, cursor string, pageSize int) ([]domain.Actor, string, error) {
	actors, next, err := s.repo.List(ctx, cursor, pageSize)
	if err != nil {
		return nil, "", fmt.Errorf("list actors: %w", err)
	}
	return actors, next, nil
}

// UpdateActorInput holds the parameters for updating an actor. Nil fields
// are left unchanged.
type UpdateActorInput struct {
	FullName  *string
	Biography *string
	MovieID   *string
	ImageURL  *string
}

// UpdateActor applies a partial update to an existing actor.
func (s *ActorService) UpdateActor(ctx context.Context, id string, input *UpdateActorInput) (*domain.Actor, error) {
	actor, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get actor for update: %w", err)
	}

	if input.FullName != nil {
		if *input.FullName == "" {
			return nil, apperrors.Validation("actor full name must not be empty")
		}
		actor.FullName = *input.FullName
	}
	if input.Biography != nil {
		actor.Biography = *input.Biography
	}
	if input.MovieID != nil {
		actor.MovieID = *input.MovieID
	}
	if input.ImageURL != nil {
		actor.ImageURL = *input.ImageURL
	}
	actor.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, actor); err != nil {
		return nil, fmt.Errorf("update actor: %w", err)
	}
	return actor, nil
}

// DeleteActor removes an actor.
func (s *ActorService) DeleteActor(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return fmt.Errorf("get actor for delete: %w", err)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete actor: %w", err)
	}
	return nil
}

// ProducerService implements the business logic for producer operations.
type ProducerService struct {
	repo   ProducerRepository
	logger *slog.Logger
}

// NewProducerService creates a new producer service.
func NewProducerService(repo ProducerRepository, logger *slog.Logger) *ProducerService {
	return &ProducerService{repo: repo, logger: logger}
}

// CreateProducerInput holds the parameters for creating a producer.
type CreateProducerInput struct {
	FullName  string
	Biography string
	MovieID   string
	ImageURL  string
}

// CreateProducer creates a new producer.
func (s *ProducerService) CreateProducer(ctx context.Context, input *CreateProducerInput) (*domain.Producer, error) {
	if input.FullName == "" {
		return nil, apperrors.Validation("producer full name is required")
	}

	now := time.Now().UTC()
	producer := &domain.Producer{
		ID:        uuid.New().String(),
		FullName:  input.FullName,
		Biography: input.Biography,
		MovieID:   input.MovieID,
		ImageURL:  input.ImageURL,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, producer); err != nil {
		return nil, fmt.Errorf("create producer: %w", err)
	}

	s.logger.InfoContext(ctx, "producer created", slog.String("producer_id", producer.ID))

	return producer, nil
}

// GetProducer retrieves a producer by ID.
func (s *ProducerService) GetProducer(ctx context.Context, id string) (*domain.Producer, error) {
	producer, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get producer by id: %w", err)
	}
	return producer, nil
}

// ListProducers returns one cursor page of producers.
func (s *ProducerService) ListProducers(ctx context.Context, cursor string, pageSize int) ([]domain.Producer, string, error) {
	producers, next, err := s.repo.List(ctx, cursor, pageSize)
	if err != nil {
		return nil, "", fmt.Errorf("list producers: %w", err)
	}
	return producers, next, nil
}

// UpdateProducerInput holds the parameters for updating a producer. Nil
// fields are left unchanged.
type UpdateProducerInput struct {
	FullName  *string
	Biography *string
	MovieID   *string
	ImageURL  *string
}

// UpdateProducer applies a partial update to an existing producer.
func (s *ProducerService) UpdateProducer(ctx context.Context, id string, input *UpdateProducerInput) (*domain.Producer, error) {
	producer, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get producer for update: %w", err)
	}

	if input.FullName != nil {
		if *input.FullName == "" {
			return nil, apperrors.Validation("producer full name must not be empty")
		}
		producer.FullName = *input.FullName
	}
	if input.Biography != nil {
		producer.Biography = *input.Biography
	}
	if input.MovieID != nil {
		producer.MovieID = *input.MovieID
	}
	if input.ImageURL != nil {
		producer.ImageURL = *input.ImageURL
	}
	producer.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, producer); err != nil {
		return nil, fmt.Errorf("update producer: %w", err)
	}
	return producer, nil
}

// DeleteProducer removes a producer.
func (s *ProducerService) DeleteProducer(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return fmt.Errorf("get producer for delete: %w", err)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete producer: %w", err)
	}
	return nil
}

// CinemaService implements the business logic for cinema operations.
type CinemaService struct {
	repo   CinemaRepository
	logger *slog.Logger
}

// NewCinemaService creates a new cinema service.
func NewCinemaService(repo CinemaRepository, logger *slog.Logger) *CinemaService {
	return &CinemaService{repo: repo, logger: logger}
}

// CreateCinemaInput holds the parameters for creating a cinema.
type CreateCinemaInput struct {
	Name    string
	MovieID string
}

// CreateCinema creates a new cinema.
func (s *CinemaService) CreateCinema(ctx context.Context, input *CreateCinemaInput) (*domain.Cinema, error) {
	if input.Name == "" {
		return nil, apperrors.Validation("cinema name is required")
	}

	now := time.Now().UTC()
	cinema := &domain.Cinema{
		ID:        uuid.New().String(),
		Name:      input.Name,
		MovieID:   input.MovieID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, cinema); err != nil {
		return nil, fmt.Errorf("create cinema: %w", err)
	}

	s.logger.InfoContext(ctx, "cinema created", slog.String("cinema_id", cinema.ID))

	return cinema, nil
}

// GetCinema retrieves a cinema by ID.
func (s *CinemaService) GetCinema(ctx context.Context, id string) (*domain.Cinema, error) {
	cinema, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get cinema by id: %w", err)
	}
	return cinema, nil
}

// ListCinemas returns one cursor page of cinemas.
func (s *CinemaService) ListCinemas(ctx context.Context, cursor string, pageSize int) ([]domain.Cinema, string, error) {
	cinemas, next, err := s.repo.List(ctx, cursor, pageSize)
	if err != nil {
		return nil, "", fmt.Errorf("list cinemas: %w", err)
	}
	return cinemas, next, nil
}

// UpdateCinemaInput holds the parameters for updating a cinema. Nil fields
// are left unchanged.
type UpdateCinemaInput struct {
	Name    *string
	MovieID *string
}

// UpdateCinema applies a partial update to an existing cinema.
func (s *CinemaService) UpdateCinema(ctx context.Context, id string, input *UpdateCinemaInput) (*domain.Cinema, error) {
	cinema, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get cinema for update: %w", err)
	}

	if input.Name != nil {
		if *input.Name == "" {
			return nil, apperrors.Validation("cinema name must not be empty")
		}
		cinema.Name = *input.Name
	}
	if input.MovieID != nil {
		cinema.MovieID = *input.MovieID
	}
	cinema.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, cinema); err != nil {
		return nil, fmt.Errorf("update cinema: %w", err)
	}
	return cinema, nil
}

// DeleteCinema removes a cinema.
func (s *CinemaService) DeleteCinema(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return fmt.Errorf("get cinema for delete: %w", err)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete cinema: %w", err)
	}
	return nil
}
