package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/yesmovie/backend/internal/catalog"
	"github.com/yesmovie/backend/pkg/httputil"
	"github.com/yesmovie/backend/pkg/validator"
)

// --- Actors ---

// ActorHandler handles HTTP requests for actor endpoints.
type ActorHandler struct {
	service *catalog.ActorService
	logger  *slog.Logger
}

// NewActorHandler creates a new actor HTTP handler.
func NewActorHandler(svc *catalog.ActorService, logger *slog.Logger) *ActorHandler {
	return &ActorHandler{service: svc, logger: logger}
}

// CreatePersonRequest is the JSON request body for creating an actor or a
// producer.
type CreatePersonRequest struct {
	FullName  string `json:"full_name" validate:"required,min=1,max=500"`
	Biography string `json:"biography"`
	MovieID   string `json:"movie_id" validate:"omitempty,uuid"`
	ImageURL  string `json:"image_url"`
}

// UpdatePersonRequest is the JSON request body for updating an actor or a
// producer.
type UpdatePersonRequest struct {
	FullName  *string `json:"full_name" validate:"omitempty,min=1,max=500"`
	Biography *string `json:"biography"`
	MovieID   *string `json:"movie_id" validate:"omitempty,uuid"`
	ImageURL  *string `json:"image_url"`
}

// ListActors handles GET /api/v1/actors
func (h *ActorHandler) ListActors(w http.ResponseWriter, r *http.Request) {
	cursor, pageSize, ok := paginationParams(w, r)
	if !ok {
		return
	}

	actors, next, err := h.service.ListActors(r.Context(), cursor, pageSize)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: pagedResponse{Items: actors, NextCursor: next}})
}

// GetActor handles GET /api/v1/actors/{id}
func (h *ActorHandler) GetActor(w http.ResponseWriter, r *http.Request) {
	actor, err := h.service.GetActor(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: actor})
}

// CreateActor handles POST /api/v1/actors
func (h *ActorHandler) CreateActor(w http.ResponseWriter, r *http.Request) {
	var req CreatePersonRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if err := validator.Validate(req); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	actor, err := h.service.CreateActor(r.Context(), &catalog.CreateActorInput{
		FullName:  req.FullName,
		Biography: req.Biography,
		MovieID:   req.MovieID,
		ImageURL:  req.ImageURL,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: actor})
}

// UpdateActor handles PUT /api/v1/actors/{id}
func (h *ActorHandler) UpdateActor(w http.ResponseWriter, r *http.Request) {
	var req UpdatePersonRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if err := validator.Validate(req); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	actor, err := h.service.UpdateActor(r.Context(), chi.URLParam(r, "id"), &catalog.UpdateActorInput{
		FullName:  req.FullName,
		Biography: req.Biography,
		MovieID:   req.MovieID,
		ImageURL:  req.ImageURL,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: actor})
}

// DeleteActor handles DELETE /api/v1/actors/{id}
func (h *ActorHandler) DeleteActor(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.service.DeleteActor(r.Context(), id); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{"id": id, "status": "deleted"}})
}

// --- Producers ---

// ProducerHandler handles HTTP requests for producer endpoints.
type ProducerHandler struct {
	service *catalog.ProducerService
	logger  *slog.Logger
}

// NewProducerHandler creates a new producer HTTP handler.
func NewProducerHandler(svc *catalog.ProducerService, logger *slog.Logger) *ProducerHandler {
	return &ProducerHandler{service: svc, logger: logger}
}

// ListProducers handles GET /api/v1/producers
func (h *ProducerHandler) ListProducers(w http.ResponseWriter, r *http.Request) {
	cursor, pageSize, ok := paginationParams(w, r)
	if !ok {
		return
	}

	producers, next, err := h.service.ListProducers(r.Context(), cursor, pageSize)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: pagedResponse{Items: producers, NextCursor: next}})
}

// GetProducer handles GET /api/v1/producers/{id}
func (h *ProducerHandler) GetProducer(w http.ResponseWriter, r *http.Request) {
	producer, err := h.service.GetProducer(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: producer})
}

// CreateProducer handles POST /api/v1/producers
func (h *ProducerHandler) CreateProducer(w http.ResponseWriter, r *http.Request) {
	var req CreatePersonRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if err := validator.Validate(req); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	producer, err := h.service.CreateProducer(r.Context(), &catalog.CreateProducerInput{
		FullName:  req.FullName,
		Biography: req.Biography,
		MovieID:   req.MovieID,
		ImageURL:  req.ImageURL,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: producer})
}

// UpdateProducer handles PUT /api/v1/producers/{id}
func (h *ProducerHandler) UpdateProducer(w http.ResponseWriter, r *http.Request) {
	var req UpdatePersonRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if err := validator.Validate(req); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	producer, err := h.service.UpdateProducer(r.Context(), chi.URLParam(r, "id"), &catalog.UpdateProducerInput{
		FullName:  req.FullName,
		Biography: req.Biography,
		MovieID:   req.MovieID,
		ImageURL:  req.ImageURL,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: producer})
}

// DeleteProducer handles DELETE /api/v1/producers/{id}
func (h *ProducerHandler) DeleteProducer(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.service.DeleteProducer(r.Context(), id); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{"id": id, "status": "deleted"}})
}

// --- Cinemas ---

// CinemaHandler handles HTTP requests for cinema endpoints.
type CinemaHandler struct {
	service *catalog.CinemaService
	logger  *slog.Logger
}

// NewCinemaHandler creates a new cinema HTTP handler.
func NewCinemaHandler(svc *catalog.CinemaService, logger *slog.Logger) *CinemaHandler {
	return &CinemaHandler{service: svc, logger: logger}
}

// CreateCinemaRequest is the JSON request body for creating a cinema.
type CreateCinemaRequest struct {
	Name    string `json:"name" validate:"required,min=1,max=500"`
	MovieID string `json:"movie_id" validate:"omitempty,uuid"`
}

// UpdateCinemaRequest is the JSON request body for updating a cinema.
type UpdateCinemaRequest struct {
	Name    *string `json:"name" validate:"omitempty,min=1,max=500"`
	MovieID *string `json:"movie_id" validate:"omitempty,uuid"`
}

// ListCinemas handles GET /api/v1/cinemas
func (h *CinemaHandler) ListCinemas(w http.ResponseWriter, r *http.Request) {
	cursor, pageSize, ok := paginationParams(w, r)
	if !ok {
		return
	}

	cinemas, next, err := h.service.ListCinemas(r.Context(), cursor, pageSize)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: pagedResponse{Items: cinemas, NextCursor: next}})
}

// GetCinema handles GET /api/v1/cinemas/{id}
func (h *CinemaHandler) GetCinema(w http.ResponseWriter, r *http.Request) {
	cinema, err := h.service.GetCinema(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: cinema})
}

// CreateCinema handles POST /api/v1/cinemas
func (h *CinemaHandler) CreateCinema(w http.ResponseWriter, r *http.Request) {
	var req CreateCinemaRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if err := validator.Validate(req); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	cinema, err := h.service.CreateCinema(r.Context(), &catalog.CreateCinemaInput{
		Name:    req.Name,
		MovieID: req.MovieID,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: cinema})
}

// UpdateCinema handles PUT /api/v1/cinemas/{id}
func (h *CinemaHandler) UpdateCinema(w http.ResponseWriter, r *http.Request) {
	var req UpdateCinemaRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if err := validator.Validate(req); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	cinema, err := h.service.UpdateCinema(r.Context(), chi.URLParam(r, "id"), &catalog.UpdateCinemaInput{
		Name:    req.Name,
		MovieID: req.MovieID,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: cinema})
}

// DeleteCinema handles DELETE /api/v1/cinemas/{id}
func (h *CinemaHandler) DeleteCinema(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.service.DeleteCinema(r.Context(), id); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{"id": id, "status": "deleted"}})
}

// decodeBody decodes a JSON request body into dst, writing a 400 response on
// failure. The body is capped at 1MB.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error()},
		})
		return false
	}
	return true
}
