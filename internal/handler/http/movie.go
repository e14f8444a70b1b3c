package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/yesmovie/backend/internal/catalog"
	"github.com/yesmovie/backend/pkg/httputil"
	"github.com/yesmovie/backend/pkg/validator"
)

// MovieHandler handles HTTP requests for movie catalog endpoints.
type MovieHandler struct {
	service *catalog.MovieService
	logger  *slog.Logger
}

// NewMovieHandler creates a new movie HTTP handler.
func NewMovieHandler(svc *catalog.MovieService, logger *slog.Logger) *MovieHandler {
	return &MovieHandler{
		service: svc,
		logger:  logger,
	}
}

// --- Request DTOs ---

// CreateMovieRequest is the JSON request body for creating a movie.
type CreateMovieRequest struct {
	Title       string          `json:"title" validate:"required,min=1,max=500"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Genre       string          `json:"genre" validate:"required"`
	ReleaseDate time.Time       `json:"release_date"`
	ActorIDs    []string        `json:"actor_ids" validate:"omitempty,dive,uuid"`
	ProducerIDs []string        `json:"producer_ids" validate:"omitempty,dive,uuid"`
	CinemaIDs   []string        `json:"cinema_ids" validate:"omitempty,dive,uuid"`
	ImageURL    string          `json:"image_url"`
}

// UpdateMovieRequest is the JSON request body for updating a movie.
type UpdateMovieRequest struct {
	Title       *string          `json:"title" validate:"omitempty,min=1,max=500"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Genre       *string          `json:"genre"`
	Status      *string          `json:"status"`
	ReleaseDate *time.Time       `json:"release_date"`
	ActorIDs    []string         `json:"actor_ids" validate:"omitempty,dive,uuid"`
	ProducerIDs []string         `json:"producer_ids" validate:"omitempty,dive,uuid"`
	CinemaIDs   []string         `json:"cinema_ids" validate:"omitempty,dive,uuid"`
	ImageURL    *string          `json:"image_url"`
}

// pagedResponse wraps a cursor page of results.
type pagedResponse struct {
	Items      any    `json:"items"`
	NextCursor string `json:"next_cursor,omitempty"`
}

// --- Handlers ---

// ListMovies handles GET /api/v1/movies
func (h *MovieHandler) ListMovies(w http.ResponseWriter, r *http.Request) {
	cursor, pageSize, ok := paginationParams(w, r)
	if !ok {
		return
	}

	movies, next, err := h.service.ListMovies(r.Context(), cursor, pageSize)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: pagedResponse{Items: movies, NextCursor: next}})
}

// GetMovie handles GET /api/v1/movies/{id}
func (h *MovieHandler) GetMovie(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "movie id is required"},
		})
		return
	}

	movie, err := h.service.GetMovie(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: movie})
}

// CreateMovie handles POST /api/v1/movies
func (h *MovieHandler) CreateMovie(w http.ResponseWriter, r *http.Request) {
	// Limit request body to 1MB to prevent DoS via large payloads.
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	var req CreateMovieRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error()},
		})
		return
	}

	if err := validator.Validate(req); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	input := &catalog.CreateMovieInput{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Genre:       req.Genre,
		ReleaseDate: req.ReleaseDate,
		ActorIDs:    req.ActorIDs,
		ProducerIDs: req.ProducerIDs,
		CinemaIDs:   req.CinemaIDs,
		ImageURL:    req.ImageURL,
	}

	movie, err := h.service.CreateMovie(r.Context(), input)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: movie})
}

// UpdateMovie handles PUT /api/v1/movies/{id}
func (h *MovieHandler) UpdateMovie(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "movie id is required"},
		})
		return
	}

	// Limit request body to 1MB to prevent DoS via large payloads.
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	var req UpdateMovieRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error()},
		})
		return
	}

	if err := validator.Validate(req); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	input := &catalog.UpdateMovieInput{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Genre:       req.Genre,
		Status:      req.Status,
		ReleaseDate: req.ReleaseDate,
		ActorIDs:    req.ActorIDs,
		ProducerIDs: req.ProducerIDs,
		CinemaIDs:   req.CinemaIDs,
		ImageURL:    req.ImageURL,
	}

	movie, err := h.service.UpdateMovie(r.Context(), id, input)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: movie})
}

// DeleteMovie handles DELETE /api/v1/movies/{id}
func (h *MovieHandler) DeleteMovie(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "movie id is required"},
		})
		return
	}

	if err := h.service.DeleteMovie(r.Context(), id); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{"id": id, "status": "deleted"}})
}

// --- Helpers ---

// paginationParams reads the cursor and page_size query parameters. It writes
// a 400 response and returns ok=false when page_size is not a positive
// integer.
func paginationParams(w http.ResponseWriter, r *http.Request) (cursor string, pageSize int, ok bool) {
	cursor = r.URL.Query().Get("cursor")

	if v := r.URL.Query().Get("page_size"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
				Error: &httputil.ErrorResponse{Code: "INVALID_PARAMETER", Message: "page_size must be a valid positive integer"},
			})
			return "", 0, false
		}
		pageSize = n
	}

	return cursor, pageSize, true
}
