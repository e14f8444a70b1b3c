package cart

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/yesmovie/backend/internal/domain"
	"github.com/yesmovie/backend/internal/event"
	apperrors "github.com/yesmovie/backend/pkg/errors"
)

// MaxQuantityPerItem is the maximum quantity allowed for a single cart line.
const MaxQuantityPerItem = 100

// MovieCatalog is the slice of the catalog the cart manager needs: price and
// status lookups when items are added.
type MovieCatalog interface {
	GetMovie(ctx context.Context, id string) (*domain.Movie, error)
}

// Manager implements the business logic for cart operations. Carts are keyed
// by owner; callers resolve the owner from request identity before calling.
// Read-modify-write sequences are unguarded: the whole cart is upserted and
// the last writer wins.
type Manager struct {
	repo     CartRepository
	catalog  MovieCatalog
	producer *event.Producer
	logger   *slog.Logger
}

// NewManager creates a new cart manager.
func NewManager(repo CartRepository, catalog MovieCatalog, producer *event.Producer, logger *slog.Logger) *Manager {
	return &Manager{
		repo:     repo,
		catalog:  catalog,
		producer: producer,
		logger:   logger,
	}
}

// GetOrCreateCart returns the owner's cart, creating and persisting a fresh
// empty one when none exists. Calling it repeatedly for the same owner
// yields the same cart.
func (m *Manager) GetOrCreateCart(ctx context.Context, ownerID string) (*domain.Cart, error) {
	if ownerID == "" {
		return nil, apperrors.Validation("owner id is required")
	}

	cart, found, err := m.repo.Get(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("get cart: %w", err)
	}
	if found {
		return cart, nil
	}

	now := time.Now().UTC()
	cart = &domain.Cart{
		ID:        uuid.New().String(),
		OwnerID:   ownerID,
		Items:     []domain.CartItem{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := m.repo.Save(ctx, cart); err != nil {
		return nil, fmt.Errorf("create cart: %w", err)
	}

	m.logger.InfoContext(ctx, "cart created",
		slog.String("cart_id", cart.ID),
		slog.String("owner_id", ownerID),
	)

	return cart, nil
}

// AddToCart adds a movie to the owner's cart. If the movie is already in the
// cart the quantities merge and the original title/price snapshot is kept;
// otherwise a new line is appended with a snapshot of the movie's current
// title and price.
func (m *Manager) AddToCart(ctx context.Context, ownerID, movieID string, quantity int) (*domain.Cart, error) {
	if ownerID == "" {
		return nil, apperrors.Validation("owner id is required")
	}
	if movieID == "" {
		return nil, apperrors.Validation("movie id is required")
	}
	if quantity < 1 {
		return nil, apperrors.Validation("quantity must be at least 1")
	}
	if quantity > MaxQuantityPerItem {
		return nil, apperrors.Validation(fmt.Sprintf("quantity must not exceed %d", MaxQuantityPerItem))
	}

	movie, err := m.catalog.GetMovie(ctx, movieID)
	if err != nil {
		return nil, fmt.Errorf("look up movie: %w", err)
	}
	if movie.Status == domain.MovieStatusExpired {
		return nil, apperrors.InvalidState(fmt.Sprintf("movie %q is no longer available for purchase", movie.Title))
	}

	cart, err := m.GetOrCreateCart(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	if idx := cart.FindItemIndex(movieID); idx >= 0 {
		newQty := cart.Items[idx].Quantity + quantity
		if newQty > MaxQuantityPerItem {
			return nil, apperrors.Validation(fmt.Sprintf("combined quantity must not exceed %d", MaxQuantityPerItem))
		}
		cart.Items[idx].Quantity = newQty
	} else {
		cart.Items = append(cart.Items, domain.CartItem{
			MovieID:  movie.ID,
			Title:    movie.Title,
			Price:    movie.Price,
			Quantity: quantity,
		})
	}

	cart.UpdatedAt = time.Now().UTC()
	if err := m.repo.Save(ctx, cart); err != nil {
		return nil, fmt.Errorf("save cart: %w", err)
	}

	m.publishCartUpdated(ctx, cart)

	m.logger.InfoContext(ctx, "item added to cart",
		slog.String("owner_id", ownerID),
		slog.String("movie_id", movieID),
		slog.Int("quantity", quantity),
	)

	return cart, nil
}

// RemoveFromCart removes the movie's line from the owner's cart entirely,
// regardless of quantity.
func (m *Manager) RemoveFromCart(ctx context.Context, ownerID, movieID string) (*domain.Cart, error) {
	if ownerID == "" {
		return nil, apperrors.Validation("owner id is required")
	}
	if movieID == "" {
		return nil, apperrors.Validation("movie id is required")
	}

	cart, found, err := m.repo.Get(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("get cart: %w", err)
	}
	if !found {
		return nil, apperrors.NotFound("cart", ownerID)
	}

	idx := cart.FindItemIndex(movieID)
	if idx < 0 {
		return nil, apperrors.NotFound("cart item", movieID)
	}
	cart.Items = append(cart.Items[:idx], cart.Items[idx+1:]...)

	cart.UpdatedAt = time.Now().UTC()
	if err := m.repo.Save(ctx, cart); err != nil {
		return nil, fmt.Errorf("save cart: %w", err)
	}

	m.publishCartUpdated(ctx, cart)

	m.logger.InfoContext(ctx, "item removed from cart",
		slog.String("owner_id", ownerID),
		slog.String("movie_id", movieID),
	)

	return cart, nil
}

// GetCart retrieves the owner's cart. Unlike GetOrCreateCart, an absent cart
// is a not-found error.
func (m *Manager) GetCart(ctx context.Context, ownerID string) (*domain.Cart, error) {
	if ownerID == "" {
		return nil, apperrors.Validation("owner id is required")
	}

	cart, found, err := m.repo.Get(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("get cart: %w", err)
	}
	if !found {
		return nil, apperrors.NotFound("cart", ownerID)
	}
	return cart, nil
}

func (m *Manager) publishCartUpdated(ctx context.Context, cart *domain.Cart) {
	if err := m.producer.PublishCartUpdated(ctx, cart); err != nil {
		m.logger.ErrorContext(ctx, "failed to publish cart.updated event",
			slog.String("owner_id", cart.OwnerID),
			slog.String("error", err.Error()),
		)
	}
}
