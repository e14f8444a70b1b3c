package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/yesmovie/backend/internal/domain"
	apperrors "github.com/yesmovie/backend/pkg/errors"
)

// MovieService implements the business logic for movie catalog operations.
type MovieService struct {
	repo   MovieRepository
	logger *slog.Logger
}

// NewMovieService creates a new movie service.
func NewMovieService(repo MovieRepository, logger *slog.Logger) *MovieService {
	return &MovieService{repo: repo, logger: logger}
}

// CreateMovieInput holds the parameters for creating a movie.
type CreateMovieInput struct {
	Title       string
	Description string
	Price       decimal.Decimal
	Genre       string
	ReleaseDate time.Time
	ActorIDs    []string
	ProducerIDs []string
	CinemaIDs   []string
	ImageURL    string
}

// UpdateMovieInput holds the parameters for updating a movie. Nil fields are
// left unchanged.
type UpdateMovieInput struct {
	Title       *string
	Description *string
	Price       *decimal.Decimal
	Genre       *string
	Status      *string
	ReleaseDate *time.Time
	ActorIDs    []string
	ProducerIDs []string
	CinemaIDs   []string
	ImageURL    *string
}

// CreateMovie creates a new movie in draft status.
func (s *MovieService) CreateMovie(ctx context.Context, input *CreateMovieInput) (*domain.Movie, error) {
	if input.Title == "" {
		return nil, apperrors.Validation("movie title is required")
	}
	if input.Price.IsNegative() {
		return nil, apperrors.Validation("movie price must not be negative")
	}
	if !domain.IsValidGenre(input.Genre) {
		return nil, apperrors.Validation(fmt.Sprintf("unknown genre %q", input.Genre))
	}

	now := time.Now().UTC()
	movie := &domain.Movie{
		ID:          uuid.New().String(),
		Title:       input.Title,
		Description: input.Description,
		Price:       input.Price,
		Genre:       input.Genre,
		Status:      domain.MovieStatusDraft,
		ReleaseDate: input.ReleaseDate,
		ActorIDs:    input.ActorIDs,
		ProducerIDs: input.ProducerIDs,
		CinemaIDs:   input.CinemaIDs,
		ImageURL:    input.ImageURL,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, movie); err != nil {
		return nil, fmt.Errorf("create movie: %w", err)
	}

	s.logger.InfoContext(ctx, "movie created",
		slog.String("movie_id", movie.ID),
		slog.String("title", movie.Title),
	)

	return movie, nil
}

// GetMovie retrieves a movie by its ID.
func (s *MovieService) GetMovie(ctx context.Context, id string) (*domain.Movie, error) {
	movie, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get movie by id: %w", err)
	}
	return movie, nil
}

// ListMovies returns one page of movies together with the cursor for the
// next page. An empty cursor starts from the beginning; an empty returned
// cursor means the listing is exhausted.
func (s *MovieService) ListMovies(ctx context.Context, cursor string, pageSize int) ([]domain.Movie, string, error) {
	movies, next, err := s.repo.List(ctx, cursor, pageSize)
	if err != nil {
		return nil, "", fmt.Errorf("list movies: %w", err)
	}
	return movies, next, nil
}

// UpdateMovie applies a partial update to an existing movie.
func (s *MovieService) UpdateMovie(ctx context.Context, id string, input *UpdateMovieInput) (*domain.Movie, error) {
	movie, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get movie for update: %w", err)
	}

	if input.Title != nil {
		if *input.Title == "" {
			return nil, apperrors.Validation("movie title must not be empty")
		}
		movie.Title = *input.Title
	}
	if input.Description != nil {
		movie.Description = *input.Description
	}
	if input.Price != nil {
		if input.Price.IsNegative() {
			return nil, apperrors.Validation("movie price must not be negative")
		}
		movie.Price = *input.Price
	}
	if input.Genre != nil {
		if !domain.IsValidGenre(*input.Genre) {
			return nil, apperrors.Validation(fmt.Sprintf("unknown genre %q", *input.Genre))
		}
		movie.Genre = *input.Genre
	}
	if input.Status != nil {
		if !domain.IsValidStatus(*input.Status) {
			return nil, apperrors.Validation(fmt.Sprintf("unknown status %q", *input.Status))
		}
		movie.Status = *input.Status
	}
	if input.ReleaseDate != nil {
		movie.ReleaseDate = *input.ReleaseDate
	}
	if input.ActorIDs != nil {
		movie.ActorIDs = input.ActorIDs
	}
	if input.ProducerIDs != nil {
		movie.ProducerIDs = input.ProducerIDs
	}
	if input.CinemaIDs != nil {
		movie.CinemaIDs = input.CinemaIDs
	}
	if input.ImageURL != nil {
		movie.ImageURL = *input.ImageURL
	}
	movie.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, movie); err != nil {
		return nil, fmt.Errorf("update movie: %w", err)
	}

	s.logger.InfoContext(ctx, "movie updated", slog.String("movie_id", movie.ID))

	return movie, nil
}

// DeleteMovie removes a movie from the catalog. Deleting an absent movie is
// a not-found error so clients learn the id was never there.
func (s *MovieService) DeleteMovie(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return fmt.Errorf("get movie for delete: %w", err)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete movie: %w", err)
	}

	s.logger.InfoContext(ctx, "movie deleted", slog.String("movie_id", id))

	return nil
}
