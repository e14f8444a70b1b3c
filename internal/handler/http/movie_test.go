package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yesmovie/backend/internal/catalog"
	"github.com/yesmovie/backend/internal/domain"
	apperrors "github.com/yesmovie/backend/pkg/errors"
)

// ============================================================================
// Mock MovieRepository
// ============================================================================

type mockMovieRepo struct {
	mock.Mock
}

func (m *mockMovieRepo) Create(ctx context.Context, movie *domain.Movie) error {
	args := m.Called(ctx, movie)
	return args.Error(0)
}

func (m *mockMovieRepo) GetByID(ctx context.Context, id string) (*domain.Movie, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Movie), args.Error(1)
}

func (m *mockMovieRepo) List(ctx context.Context, cursor string, pageSize int) ([]domain.Movie, string, error) {
	args := m.Called(ctx, cursor, pageSize)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).([]domain.Movie), args.String(1), args.Error(2)
}

func (m *mockMovieRepo) Update(ctx context.Context, movie *domain.Movie) error {
	args := m.Called(ctx, movie)
	return args.Error(0)
}

func (m *mockMovieRepo) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// ============================================================================
// Test helpers
// ============================================================================

func setupMovieRouter(repo *mockMovieRepo) *chi.Mux {
	svc := catalog.NewMovieService(repo, testLogger())
	handler := NewMovieHandler(svc, testLogger())

	r := chi.NewRouter()
	r.Route("/api/v1/movies", func(r chi.Router) {
		r.Use(ContentTypeJSON)

		r.Get("/", handler.ListMovies)
		r.Get("/{id}", handler.GetMovie)
		r.Post("/", handler.CreateMovie)
		r.Put("/{id}", handler.UpdateMovie)
		r.Delete("/{id}", handler.DeleteMovie)
	})
	return r
}

func nowShowingMovie(id string) domain.Movie {
	now := time.Now().UTC()
	return domain.Movie{
		ID:          id,
		Title:       "Night Train",
		Description: "A thriller on rails.",
		Price:       decimal.RequireFromString("12.50"),
		Genre:       domain.GenreThriller,
		Status:      domain.MovieStatusNowShowing,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// ============================================================================
// GET /api/v1/movies - ListMovies
// ============================================================================

func TestListMovies_Success(t *testing.T) {
	repo := new(mockMovieRepo)
	router := setupMovieRouter(repo)

	movies := []domain.Movie{nowShowingMovie("m-1"), nowShowingMovie("m-2")}
	repo.On("List", mock.Anything, "", 0).Return(movies, "next-cursor", nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/movies", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	assert.Nil(t, resp.Error)

	page, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	items, ok := page["items"].([]interface{})
	require.True(t, ok)
	assert.Len(t, items, 2)
	assert.Equal(t, "next-cursor", page["next_cursor"])
	repo.AssertExpectations(t)
}

func TestListMovies_PassesCursorAndPageSize(t *testing.T) {
	repo := new(mockMovieRepo)
	router := setupMovieRouter(repo)

	repo.On("List", mock.Anything, "abc", 5).Return([]domain.Movie{}, "", nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/movies?cursor=abc&page_size=5", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	repo.AssertExpectations(t)
}

func TestListMovies_InvalidPageSize(t *testing.T) {
	repo := new(mockMovieRepo)
	router := setupMovieRouter(repo)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/movies?page_size=banana", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "INVALID_PARAMETER", resp.Error.Code)
	repo.AssertNotCalled(t, "List")
}

// ============================================================================
// GET /api/v1/movies/{id} - GetMovie
// ============================================================================

func TestGetMovie_Success(t *testing.T) {
	repo := new(mockMovieRepo)
	router := setupMovieRouter(repo)

	movie := nowShowingMovie("m-1")
	repo.On("GetByID", mock.Anything, "m-1").Return(&movie, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/movies/m-1", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	assert.Nil(t, resp.Error)
	assert.NotNil(t, resp.Data)
	repo.AssertExpectations(t)
}

func TestGetMovie_NotFound(t *testing.T) {
	repo := new(mockMovieRepo)
	router := setupMovieRouter(repo)

	repo.On("GetByID", mock.Anything, "missing").Return(nil, apperrors.NotFound("movie", "missing"))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/movies/missing", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "NOT_FOUND", resp.Error.Code)
}

// ============================================================================
// POST /api/v1/movies - CreateMovie
// ============================================================================

func validCreateMovieJSON() []byte {
	b, _ := json.Marshal(map[string]interface{}{
		"title":       "Night Train",
		"description": "A thriller on rails.",
		"price":       "12.50",
		"genre":       domain.GenreThriller,
	})
	return b
}

func TestCreateMovie_Success(t *testing.T) {
	repo := new(mockMovieRepo)
	router := setupMovieRouter(repo)

	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Movie")).Return(nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/movies", bytes.NewReader(validCreateMovieJSON()))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	resp := decodeResponse(t, rec)
	assert.Nil(t, resp.Error)

	created, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, string(domain.MovieStatusDraft), created["status"])
	repo.AssertExpectations(t)
}

func TestCreateMovie_MissingTitle(t *testing.T) {
	repo := new(mockMovieRepo)
	router := setupMovieRouter(repo)

	b, _ := json.Marshal(map[string]interface{}{
		"price": "12.50",
		"genre": domain.GenreThriller,
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/movies", bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
	repo.AssertNotCalled(t, "Create")
}

func TestCreateMovie_UnknownGenre(t *testing.T) {
	repo := new(mockMovieRepo)
	router := setupMovieRouter(repo)

	b, _ := json.Marshal(map[string]interface{}{
		"title": "Night Train",
		"price": "12.50",
		"genre": "Noire",
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/movies", bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	repo.AssertNotCalled(t, "Create")
}

func TestCreateMovie_InvalidJSON(t *testing.T) {
	repo := new(mockMovieRepo)
	router := setupMovieRouter(repo)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/movies", bytes.NewReader([]byte(`{broken`)))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "INVALID_INPUT", resp.Error.Code)
}

// ============================================================================
// PUT /api/v1/movies/{id} - UpdateMovie
// ============================================================================

func TestUpdateMovie_Success(t *testing.T) {
	repo := new(mockMovieRepo)
	router := setupMovieRouter(repo)

	movie := nowShowingMovie("m-1")
	repo.On("GetByID", mock.Anything, "m-1").Return(&movie, nil)
	repo.On("Update", mock.Anything, mock.AnythingOfType("*domain.Movie")).Return(nil)

	b, _ := json.Marshal(map[string]interface{}{"title": "Night Train Redux"})
	req := httptest.NewRequest(http.MethodPut, "/api/v1/movies/m-1", bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	assert.Nil(t, resp.Error)

	updated, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Night Train Redux", updated["title"])
	repo.AssertExpectations(t)
}

func TestUpdateMovie_InvalidStatus(t *testing.T) {
	repo := new(mockMovieRepo)
	router := setupMovieRouter(repo)

	movie := nowShowingMovie("m-1")
	repo.On("GetByID", mock.Anything, "m-1").Return(&movie, nil)

	b, _ := json.Marshal(map[string]interface{}{"status": "archived"})
	req := httptest.NewRequest(http.MethodPut, "/api/v1/movies/m-1", bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	repo.AssertNotCalled(t, "Update")
}

func TestUpdateMovie_NotFound(t *testing.T) {
	repo := new(mockMovieRepo)
	router := setupMovieRouter(repo)

	repo.On("GetByID", mock.Anything, "missing").Return(nil, apperrors.NotFound("movie", "missing"))

	b, _ := json.Marshal(map[string]interface{}{"title": "Whatever"})
	req := httptest.NewRequest(http.MethodPut, "/api/v1/movies/missing", bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// ============================================================================
// DELETE /api/v1/movies/{id} - DeleteMovie
// ============================================================================

func TestDeleteMovie_Success(t *testing.T) {
	repo := new(mockMovieRepo)
	router := setupMovieRouter(repo)

	movie := nowShowingMovie("m-1")
	repo.On("GetByID", mock.Anything, "m-1").Return(&movie, nil)
	repo.On("Delete", mock.Anything, "m-1").Return(nil)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/movies/m-1", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	assert.Nil(t, resp.Error)
	repo.AssertExpectations(t)
}

func TestDeleteMovie_NotFound(t *testing.T) {
	repo := new(mockMovieRepo)
	router := setupMovieRouter(repo)

	repo.On("GetByID", mock.Anything, "missing").Return(nil, apperrors.NotFound("movie", "missing"))

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/movies/missing", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	repo.AssertNotCalled(t, "Delete")
}

func TestDeleteMovie_RepositoryError(t *testing.T) {
	repo := new(mockMovieRepo)
	router := setupMovieRouter(repo)

	movie := nowShowingMovie("m-1")
	repo.On("GetByID", mock.Anything, "m-1").Return(&movie, nil)
	repo.On("Delete", mock.Anything, "m-1").Return(fmt.Errorf("connection reset"))

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/movies/m-1", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
