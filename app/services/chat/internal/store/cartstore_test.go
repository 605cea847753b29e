package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"BrewMasterAI/app/dal/cart"
)

type fakeCartsModel struct {
	cart.CartsModel
	active    *cart.Carts
	refreshed []int64
	statuses  map[int64]string
}

func (m *fakeCartsModel) FindActiveBySession(ctx context.Context, sessionId string, userId int64) (*cart.Carts, error) {
	if m.active == nil {
		return nil, cart.ErrNotFound
	}
	return m.active, nil
}

func (m *fakeCartsModel) RefreshTotals(ctx context.Context, cartId int64) error {
	m.refreshed = append(m.refreshed, cartId)
	return nil
}

func (m *fakeCartsModel) UpdateStatus(ctx context.Context, cartId int64, status string) error {
	if m.statuses == nil {
		m.statuses = map[int64]string{}
	}
	m.statuses[cartId] = status
	return nil
}

type fakeCartItemsModel struct {
	cart.CartItemsModel
	deletedCarts []int64
}

func (m *fakeCartItemsModel) DeleteByCart(ctx context.Context, cartId int64) error {
	m.deletedCarts = append(m.deletedCarts, cartId)
	return nil
}

func TestCartClearRetiresActiveCart(t *testing.T) {
	carts := &fakeCartsModel{active: &cart.Carts{Id: 9, SessionId: "s1", Status: cart.StatusActive}}
	items := &fakeCartItemsModel{}
	s := NewCartStore(carts, items, nil)

	require.NoError(t, s.Clear(context.Background(), "s1", 7))

	assert.Equal(t, []int64{9}, items.deletedCarts)
	assert.Equal(t, []int64{9}, carts.refreshed)
	assert.Equal(t, cart.StatusCheckedOut, carts.statuses[9])
}

func TestCartClearWithoutActiveCartIsNoop(t *testing.T) {
	carts := &fakeCartsModel{}
	items := &fakeCartItemsModel{}
	s := NewCartStore(carts, items, nil)

	require.NoError(t, s.Clear(context.Background(), "s1", 7))

	assert.Empty(t, items.deletedCarts)
	assert.Empty(t, carts.statuses)
}
