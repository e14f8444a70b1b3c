package cart

import (
	"context"
	"fmt"

	"github.com/yesmovie/backend/internal/docstore"
	"github.com/yesmovie/backend/internal/domain"
)

// CollectionCarts is the collection name for carts.
const CollectionCarts = "carts"

// CartRepository defines data access for carts. Carts are keyed solely by
// the owning user: there is one cart row per owner and absence is reported
// through the boolean, not an error.
type CartRepository interface {
	Get(ctx context.Context, ownerID string) (*domain.Cart, bool, error)
	Save(ctx context.Context, cart *domain.Cart) error
}

// Binding returns the docstore binding for the cart collection.
func Binding() docstore.Binding {
	return docstore.Bind[domain.Cart](CollectionCarts)
}

type docstoreRepository struct {
	store *docstore.Store[domain.Cart]
}

// NewCartRepository creates a document-store-backed cart repository.
func NewCartRepository(client *docstore.Client) (CartRepository, error) {
	store, err := docstore.NewStore[domain.Cart](client)
	if err != nil {
		return nil, err
	}
	return &docstoreRepository{store: store}, nil
}

// Get performs a point read keyed by owner id. The cart document keeps its
// own uuid in the body; the row is addressed by the owner on both key
// columns so one owner can never accumulate more than one cart.
func (r *docstoreRepository) Get(ctx context.Context, ownerID string) (*domain.Cart, bool, error) {
	cart, found, err := r.store.GetItem(ctx, ownerID, ownerID)
	if err != nil {
		return nil, false, fmt.Errorf("get cart: %w", err)
	}
	if !found {
		return nil, false, nil
	}
	return &cart, true, nil
}

// Save upserts the whole cart under its owner's key.
func (r *docstoreRepository) Save(ctx context.Context, cart *domain.Cart) error {
	if err := r.store.UpdateItem(ctx, cart.OwnerID, *cart, cart.OwnerID); err != nil {
		return fmt.Errorf("save cart: %w", err)
	}
	return nil
}
