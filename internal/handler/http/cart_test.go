package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yesmovie/backend/internal/cart"
	"github.com/yesmovie/backend/internal/domain"
	"github.com/yesmovie/backend/internal/event"
	apperrors "github.com/yesmovie/backend/pkg/errors"
	"github.com/yesmovie/backend/pkg/httputil"
	pkgkafka "github.com/yesmovie/backend/pkg/kafka"
)

// ============================================================================
// Mock CartRepository
// ============================================================================

type mockCartRepository struct {
	mock.Mock
}

func (m *mockCartRepository) Get(ctx context.Context, ownerID string) (*domain.Cart, bool, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*domain.Cart), args.Bool(1), args.Error(2)
}

func (m *mockCartRepository) Save(ctx context.Context, c *domain.Cart) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

// ============================================================================
// Mock MovieCatalog
// ============================================================================

type mockMovieCatalog struct {
	mock.Mock
}

func (m *mockMovieCatalog) GetMovie(ctx context.Context, id string) (*domain.Movie, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Movie), args.Error(1)
}

// ============================================================================
// Test helpers
// ============================================================================

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func testEventProducer() *event.Producer {
	logger := testLogger()
	// A Kafka producer with no reachable broker fails silently in tests.
	kafkaCfg := pkgkafka.DefaultProducerConfig([]string{"localhost:9092"})
	return event.NewProducer(pkgkafka.NewProducer(kafkaCfg, logger), logger)
}

func testCartHandler(repo *mockCartRepository, movies *mockMovieCatalog) *CartHandler {
	manager := cart.NewManager(repo, movies, testEventProducer(), testLogger())
	return NewCartHandler(manager, testLogger())
}

// setupCartRouter creates a chi router matching the production route layout
// for the cart endpoints, including the RequireIdentity and ContentTypeJSON
// middleware so that auth behavior is tested end-to-end.
func setupCartRouter(handler *CartHandler) *chi.Mux {
	r := chi.NewRouter()
	r.Route("/api/v1/cart", func(r chi.Router) {
		r.Use(ContentTypeJSON)
		r.Use(RequireIdentity)

		r.Get("/", handler.GetCart)
		r.Post("/items", handler.AddItem)
		r.Delete("/items/{movieId}", handler.RemoveItem)
	})
	return r
}

// decodeResponse reads the response body into the standard Response struct.
func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) httputil.Response {
	t.Helper()
	var resp httputil.Response
	err := json.NewDecoder(rec.Body).Decode(&resp)
	require.NoError(t, err)
	return resp
}

const validMovieID = "550e8400-e29b-41d4-a716-446655440001"

// sampleOwnedCart returns a cart with one item, suitable for test assertions.
func sampleOwnedCart() *domain.Cart {
	now := time.Now().UTC()
	return &domain.Cart{
		ID:      "cart-001",
		OwnerID: "user-123",
		Items: []domain.CartItem{
			{
				MovieID:  validMovieID,
				Title:    "Night Train",
				Price:    decimal.RequireFromString("12.50"),
				Quantity: 2,
			},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func showingMovie() *domain.Movie {
	return &domain.Movie{
		ID:     validMovieID,
		Title:  "Night Train",
		Price:  decimal.RequireFromString("12.50"),
		Genre:  domain.GenreAction,
		Status: domain.MovieStatusNowShowing,
	}
}

// ============================================================================
// GET /api/v1/cart - GetCart
// ============================================================================

func TestGetCart_Success(t *testing.T) {
	repo := new(mockCartRepository)
	movies := new(mockMovieCatalog)
	router := setupCartRouter(testCartHandler(repo, movies))

	repo.On("Get", mock.Anything, "user-123").Return(sampleOwnedCart(), true, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	req.Header.Set("X-User-ID", "user-123")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	assert.Nil(t, resp.Error)
	assert.NotNil(t, resp.Data)
	repo.AssertExpectations(t)
}

func TestGetCart_AbsentCartIsNotFound(t *testing.T) {
	repo := new(mockCartRepository)
	movies := new(mockMovieCatalog)
	router := setupCartRouter(testCartHandler(repo, movies))

	repo.On("Get", mock.Anything, "user-123").Return(nil, false, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	req.Header.Set("X-User-ID", "user-123")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	// A read never persists anything; carts come into being on AddItem.
	assert.Equal(t, http.StatusNotFound, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "NOT_FOUND", resp.Error.Code)
	repo.AssertNotCalled(t, "Save")
}

func TestGetCart_MissingUserID_Returns401(t *testing.T) {
	repo := new(mockCartRepository)
	movies := new(mockMovieCatalog)
	router := setupCartRouter(testCartHandler(repo, movies))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	// No X-User-ID header.
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "NOT_AUTHENTICATED", resp.Error.Code)
	assert.Contains(t, resp.Error.Message, "authentication required")
	repo.AssertNotCalled(t, "Get")
}

func TestGetCart_RepositoryError(t *testing.T) {
	repo := new(mockCartRepository)
	movies := new(mockMovieCatalog)
	router := setupCartRouter(testCartHandler(repo, movies))

	repo.On("Get", mock.Anything, "user-123").Return(nil, false, fmt.Errorf("connection refused"))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	req.Header.Set("X-User-ID", "user-123")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	repo.AssertExpectations(t)
}

// ============================================================================
// POST /api/v1/cart/items - AddItem
// ============================================================================

func validAddItemJSON() []byte {
	b, _ := json.Marshal(AddItemRequest{MovieID: validMovieID, Quantity: 2})
	return b
}

func TestAddItem_Success(t *testing.T) {
	repo := new(mockCartRepository)
	movies := new(mockMovieCatalog)
	router := setupCartRouter(testCartHandler(repo, movies))

	movies.On("GetMovie", mock.Anything, validMovieID).Return(showingMovie(), nil)
	repo.On("Get", mock.Anything, "user-123").Return(sampleOwnedCart(), true, nil)
	repo.On("Save", mock.Anything, mock.AnythingOfType("*domain.Cart")).Return(nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", bytes.NewReader(validAddItemJSON()))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "user-123")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	assert.Nil(t, resp.Error)
	assert.NotNil(t, resp.Data)
	repo.AssertExpectations(t)
	movies.AssertExpectations(t)
}

func TestAddItem_ExpiredMovie_Returns422(t *testing.T) {
	repo := new(mockCartRepository)
	movies := new(mockMovieCatalog)
	router := setupCartRouter(testCartHandler(repo, movies))

	expired := showingMovie()
	expired.Status = domain.MovieStatusExpired
	movies.On("GetMovie", mock.Anything, validMovieID).Return(expired, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", bytes.NewReader(validAddItemJSON()))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "user-123")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "INVALID_STATE", resp.Error.Code)
	repo.AssertNotCalled(t, "Save")
}

func TestAddItem_UnknownMovie_Returns404(t *testing.T) {
	repo := new(mockCartRepository)
	movies := new(mockMovieCatalog)
	router := setupCartRouter(testCartHandler(repo, movies))

	movies.On("GetMovie", mock.Anything, validMovieID).
		Return(nil, apperrors.NotFound("movie", validMovieID))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", bytes.NewReader(validAddItemJSON()))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "user-123")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "NOT_FOUND", resp.Error.Code)
}

func TestAddItem_InvalidJSON(t *testing.T) {
	repo := new(mockCartRepository)
	movies := new(mockMovieCatalog)
	router := setupCartRouter(testCartHandler(repo, movies))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", bytes.NewReader([]byte(`{invalid json`)))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "user-123")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "INVALID_INPUT", resp.Error.Code)
	assert.Contains(t, resp.Error.Message, "invalid request body")
}

func TestAddItem_ValidationError_MissingFields(t *testing.T) {
	repo := new(mockCartRepository)
	movies := new(mockMovieCatalog)
	router := setupCartRouter(testCartHandler(repo, movies))

	body := map[string]interface{}{
		"movie_id": "", // required
		"quantity": 0,  // required gte=1
	}
	b, _ := json.Marshal(body)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "user-123")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
	movies.AssertNotCalled(t, "GetMovie")
}

// ============================================================================
// DELETE /api/v1/cart/items/{movieId} - RemoveItem
// ============================================================================

func TestRemoveItem_Success(t *testing.T) {
	repo := new(mockCartRepository)
	movies := new(mockMovieCatalog)
	router := setupCartRouter(testCartHandler(repo, movies))

	repo.On("Get", mock.Anything, "user-123").Return(sampleOwnedCart(), true, nil)
	repo.On("Save", mock.Anything, mock.AnythingOfType("*domain.Cart")).Return(nil)

	url := fmt.Sprintf("/api/v1/cart/items/%s", validMovieID)
	req := httptest.NewRequest(http.MethodDelete, url, nil)
	req.Header.Set("X-User-ID", "user-123")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	assert.Nil(t, resp.Error)
	assert.NotNil(t, resp.Data)
	repo.AssertExpectations(t)
}

func TestRemoveItem_ItemNotFound(t *testing.T) {
	repo := new(mockCartRepository)
	movies := new(mockMovieCatalog)
	router := setupCartRouter(testCartHandler(repo, movies))

	c := sampleOwnedCart()
	c.Items = nil
	repo.On("Get", mock.Anything, "user-123").Return(c, true, nil)

	url := fmt.Sprintf("/api/v1/cart/items/%s", validMovieID)
	req := httptest.NewRequest(http.MethodDelete, url, nil)
	req.Header.Set("X-User-ID", "user-123")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	repo.AssertNotCalled(t, "Save")
}

func TestRemoveItem_CartNotFound(t *testing.T) {
	repo := new(mockCartRepository)
	movies := new(mockMovieCatalog)
	router := setupCartRouter(testCartHandler(repo, movies))

	repo.On("Get", mock.Anything, "user-123").Return(nil, false, nil)

	url := fmt.Sprintf("/api/v1/cart/items/%s", validMovieID)
	req := httptest.NewRequest(http.MethodDelete, url, nil)
	req.Header.Set("X-User-ID", "user-123")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
}

// ============================================================================
// Middleware tests
// ============================================================================

func TestRequireIdentity_SetsContext(t *testing.T) {
	var capturedOwner, capturedEmail string
	handler := RequireIdentity(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := identityFromContext(r.Context())
		if ok {
			capturedOwner = identity.OwnerID
			capturedEmail = identity.Email
		}
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-User-ID", "user-abc")
	req.Header.Set("X-User-Email", "buyer@example.com")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user-abc", capturedOwner)
	assert.Equal(t, "buyer@example.com", capturedEmail)
}

func TestRequireIdentity_MissingHeader(t *testing.T) {
	called := false
	handler := RequireIdentity(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	// No X-User-ID header.
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called, "handler should not have been called")
}

func TestRequireIdentity_EmailAloneIsNotEnough(t *testing.T) {
	called := false
	handler := RequireIdentity(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-User-Email", "buyer@example.com")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called, "handler should not have been called")
}

func TestIdentityFromContext_Empty(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	identity, ok := identityFromContext(req.Context())
	assert.False(t, ok)
	assert.Empty(t, identity.OwnerID)
}

func TestContentTypeJSON_Middleware_RejectsNonJSON(t *testing.T) {
	called := false
	handler := ContentTypeJSON(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader([]byte("data")))
	req.Header.Set("Content-Type", "text/plain")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
	assert.False(t, called, "handler should not have been called")
}

// ============================================================================
// Table-driven: all cart endpoints reject missing X-User-ID with 401
// ============================================================================

func TestCartEndpoints_RejectMissingUserID(t *testing.T) {
	endpoints := []struct {
		method string
		path   string
		body   []byte
	}{
		{http.MethodGet, "/api/v1/cart", nil},
		{http.MethodPost, "/api/v1/cart/items", validAddItemJSON()},
		{http.MethodDelete, fmt.Sprintf("/api/v1/cart/items/%s", validMovieID), nil},
	}

	for _, ep := range endpoints {
		name := fmt.Sprintf("%s %s", ep.method, ep.path)
		t.Run(name, func(t *testing.T) {
			repo := new(mockCartRepository)
			movies := new(mockMovieCatalog)
			router := setupCartRouter(testCartHandler(repo, movies))

			req := httptest.NewRequest(ep.method, ep.path, bytes.NewReader(ep.body))
			if ep.body != nil {
				req.Header.Set("Content-Type", "application/json")
			}
			// No X-User-ID header.
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code, "expected 401 for missing X-User-ID on %s", name)
			resp := decodeResponse(t, rec)
			require.NotNil(t, resp.Error)
			assert.Equal(t, "NOT_AUTHENTICATED", resp.Error.Code)
		})
	}
}
