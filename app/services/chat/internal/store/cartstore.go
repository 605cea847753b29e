package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"BrewMasterAI/app/dal/cart"
	"BrewMasterAI/app/dal/product"
	"BrewMasterAI/app/services/chat/internal/agent/orderflow"
)

// CartStore backs the chat cart with the carts/cart_items tables. Totals are
// always recomputed by the database after a mutation.
type CartStore struct {
	carts    cart.CartsModel
	items    cart.CartItemsModel
	products product.ProductsModel
}

func NewCartStore(carts cart.CartsModel, items cart.CartItemsModel, products product.ProductsModel) *CartStore {
	return &CartStore{carts: carts, items: items, products: products}
}

func (s *CartStore) Get(ctx context.Context, sessionId string, userId int64) (*orderflow.CartView, error) {
	active, err := s.carts.FindActiveBySession(ctx, sessionId, userId)
	if err != nil {
		if errors.Is(err, cart.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	lines, err := s.items.ListByCart(ctx, active.Id)
	if err != nil {
		return nil, err
	}

	view := &orderflow.CartView{
		TotalItems:  active.TotalItems,
		TotalAmount: active.TotalAmount,
	}
	for _, line := range lines {
		view.Items = append(view.Items, orderflow.CartItem{
			ProductId:  line.ProductId,
			Name:       line.ProductName,
			Quantity:   line.Quantity,
			Size:       line.SelectedSize.String,
			UnitPrice:  line.UnitPrice,
			TotalPrice: line.TotalPrice,
		})
	}
	return view, nil
}

// Add puts quantity of a product into the session's active cart, creating
// the cart on first use. An existing line with the same product and size is
// merged rather than duplicated.
func (s *CartStore) Add(ctx context.Context, sessionId string, userId, productId, quantity int64, size string) error {
	if quantity <= 0 {
		quantity = 1
	}

	p, err := s.products.FindOne(ctx, productId)
	if err != nil {
		if errors.Is(err, product.ErrNotFound) {
			return fmt.Errorf("product %d not found", productId)
		}
		return err
	}

	active, err := s.ensureActiveCart(ctx, sessionId, userId)
	if err != nil {
		return err
	}

	selectedSize := sql.NullString{String: size, Valid: size != ""}

	existing, err := s.items.FindOneByCartProductSize(ctx, active.Id, productId, selectedSize)
	switch {
	case err == nil:
		newQty := existing.Quantity + quantity
		if err := s.items.UpdateQuantity(ctx, existing.Id, newQty, existing.UnitPrice*float64(newQty)); err != nil {
			return err
		}
	case errors.Is(err, cart.ErrNotFound):
		_, err = s.items.Insert(ctx, &cart.CartItems{
			CartId:       active.Id,
			ProductId:    productId,
			ProductName:  p.Name,
			Quantity:     quantity,
			SelectedSize: selectedSize,
			UnitPrice:    p.RetailPrice,
			TotalPrice:   p.RetailPrice * float64(quantity),
		})
		if err != nil {
			return err
		}
	default:
		return err
	}

	return s.carts.RefreshTotals(ctx, active.Id)
}

// Clear empties and retires the active cart. The next Add starts a fresh
// active cart for the session.
func (s *CartStore) Clear(ctx context.Context, sessionId string, userId int64) error {
	active, err := s.carts.FindActiveBySession(ctx, sessionId, userId)
	if err != nil {
		if errors.Is(err, cart.ErrNotFound) {
			return nil
		}
		return err
	}

	if err := s.items.DeleteByCart(ctx, active.Id); err != nil {
		return err
	}
	if err := s.carts.RefreshTotals(ctx, active.Id); err != nil {
		return err
	}
	return s.carts.UpdateStatus(ctx, active.Id, cart.StatusCheckedOut)
}

func (s *CartStore) ensureActiveCart(ctx context.Context, sessionId string, userId int64) (*cart.Carts, error) {
	active, err := s.carts.FindActiveBySession(ctx, sessionId, userId)
	if err == nil {
		return active, nil
	}
	if !errors.Is(err, cart.ErrNotFound) {
		return nil, err
	}

	res, err := s.carts.Insert(ctx, &cart.Carts{
		UserId:    userId,
		SessionId: sessionId,
		Status:    cart.StatusActive,
	})
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return &cart.Carts{Id: id, UserId: userId, SessionId: sessionId, Status: cart.StatusActive}, nil
}
