package orderflow

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"BrewMasterAI/app/services/chat/internal/agent/action"
)

type fakeCartStore struct {
	view    *CartView
	addErr  map[int64]error
	added   []int64
	cleared bool
	getErr  error
}

func (f *fakeCartStore) Get(ctx context.Context, sessionId string, userId int64) (*CartView, error) {
	return f.view, f.getErr
}

func (f *fakeCartStore) Add(ctx context.Context, sessionId string, userId, productId, quantity int64, size string) error {
	if err := f.addErr[productId]; err != nil {
		return err
	}
	f.added = append(f.added, productId)
	return nil
}

func (f *fakeCartStore) Clear(ctx context.Context, sessionId string, userId int64) error {
	f.cleared = true
	return nil
}

type fakeOrderStore struct {
	created *OrderDraft
	err     error
}

func (f *fakeOrderStore) Create(ctx context.Context, draft *OrderDraft) (*CreatedOrder, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.created = draft
	return &CreatedOrder{Id: 42, OrderNumber: "ORD-42"}, nil
}

type fakeCatalog struct {
	byId     map[int64]*Product
	searched []string
	results  map[string][]Product
}

func (f *fakeCatalog) FindById(ctx context.Context, id int64) (*Product, error) {
	return f.byId[id], nil
}

func (f *fakeCatalog) SearchByName(ctx context.Context, name string, limit int) ([]Product, error) {
	f.searched = append(f.searched, name)
	return f.results[name], nil
}

func twoItemCart() *CartView {
	return &CartView{
		Items: []CartItem{
			{ProductId: 2, Name: "House Blend", Quantity: 1, UnitPrice: 60, TotalPrice: 60},
			{ProductId: 5, Name: "Blueberry Scone", Quantity: 2, Size: "Large", UnitPrice: 20, TotalPrice: 40},
		},
		TotalItems:  3,
		TotalAmount: 100,
	}
}

func TestProcessCartActionBestEffort(t *testing.T) {
	carts := &fakeCartStore{addErr: map[int64]error{9: errors.New("product 9 not found")}}
	p := NewProcessor(carts, nil, nil)

	res := p.ProcessCartAction(context.Background(), "s1", 0, action.Result{
		HasAction: true,
		Type:      action.TypeAddToCart,
		Items: []action.Item{
			{ProductID: 2, Quantity: 1},
			{ProductID: 9, Quantity: 1},
		},
	})

	assert.True(t, res.Success)
	assert.Equal(t, "Successfully added 1 item(s) to your cart!", res.Message)
	assert.Equal(t, []int64{2}, carts.added)
}

func TestProcessCartActionNothingAdded(t *testing.T) {
	carts := &fakeCartStore{addErr: map[int64]error{7: errors.New("boom")}}
	p := NewProcessor(carts, nil, nil)

	res := p.ProcessCartAction(context.Background(), "s1", 0, action.Result{
		HasAction: true,
		Type:      action.TypeAddToCart,
		Items:     []action.Item{{ProductID: 7, Quantity: 1}},
	})

	assert.False(t, res.Success)
	assert.Equal(t, "No items were added to the cart.", res.Message)
}

func TestSummaryFormatting(t *testing.T) {
	p := NewProcessor(&fakeCartStore{view: twoItemCart()}, nil, nil)

	summary, err := p.Summary(context.Background(), "s1", 0)
	require.NoError(t, err)
	require.False(t, summary.Empty)

	want := "**CURRENT CART:**\n" +
		"- House Blend - Qty: 1 - ₹60.00\n" +
		"- Blueberry Scone (Large) - Qty: 2 - ₹40.00\n" +
		"\n**Cart Total**: ₹100.00\n" +
		"**Total Items**: 3"
	assert.Equal(t, want, summary.Formatted)
}

func TestSummaryEmptyCart(t *testing.T) {
	p := NewProcessor(&fakeCartStore{}, nil, nil)

	summary, err := p.Summary(context.Background(), "s1", 0)
	require.NoError(t, err)
	assert.True(t, summary.Empty)
	assert.Equal(t, "Your cart is currently empty. Would you like to browse our menu?", summary.Message)
}

func TestBuildCheckoutSummaryTax(t *testing.T) {
	p := NewProcessor(&fakeCartStore{view: twoItemCart()}, nil, nil)

	summary := p.BuildCheckoutSummary(context.Background(), "s1", 0)
	require.True(t, summary.Ready)
	assert.InDelta(t, 100.0, summary.Subtotal, 1e-9)
	assert.InDelta(t, 18.0, summary.TaxAmount, 1e-9)
	assert.InDelta(t, 118.0, summary.TotalAmount, 1e-9)
	assert.Contains(t, summary.Message, "Subtotal: ₹100.00")
	assert.Contains(t, summary.Message, "Tax (18%): ₹18.00")
	assert.Contains(t, summary.Message, "**Total: ₹118.00**")
}

func TestCheckoutEmptyCart(t *testing.T) {
	p := NewProcessor(&fakeCartStore{}, &fakeOrderStore{}, nil)

	res := p.Checkout(context.Background(), "s1", 0, "")
	assert.Equal(t, StageSummary, res.Stage)
	assert.Equal(t, "Your cart is empty. Add some items before checkout!", res.Message)
}

func TestCheckoutWithoutPaymentShowsOptions(t *testing.T) {
	p := NewProcessor(&fakeCartStore{view: twoItemCart()}, &fakeOrderStore{}, nil)

	res := p.Checkout(context.Background(), "s1", 0, "")
	assert.Equal(t, StagePaymentMethod, res.Stage)
	assert.Contains(t, res.Message, "**ORDER SUMMARY**")
	assert.Contains(t, res.Message, "**PAYMENT OPTIONS:**")
	assert.Contains(t, res.Message, `"I'll pay with cash" or "UPI payment" or "Card payment"`)
}

func TestCheckoutInvalidPaymentMethod(t *testing.T) {
	p := NewProcessor(&fakeCartStore{view: twoItemCart()}, &fakeOrderStore{}, nil)

	res := p.Checkout(context.Background(), "s1", 0, "bitcoin")
	assert.Equal(t, StageSummary, res.Stage)
	assert.Equal(t, "Invalid payment method. Please choose from: cash, card, upi, digital_wallet", res.Message)
}

func TestCheckoutCompletes(t *testing.T) {
	carts := &fakeCartStore{view: twoItemCart()}
	orders := &fakeOrderStore{}
	p := NewProcessor(carts, orders, nil)

	res := p.Checkout(context.Background(), "s1", 7, "cash")
	require.Equal(t, StageCompleted, res.Stage)
	require.NotNil(t, res.Order)
	assert.Equal(t, "ORD-42", res.Order.OrderNumber)
	assert.Contains(t, res.Message, "🎉 **ORDER CONFIRMED!**")
	assert.Contains(t, res.Message, "**Order Number:** ORD-42")
	assert.Contains(t, res.Message, "**Payment Method:** Cash Payment")
	assert.Contains(t, res.Message, "**Total Amount:** ₹118.00")

	require.NotNil(t, orders.created)
	assert.Equal(t, "confirmed", orders.created.Status)
	assert.Equal(t, "pending", orders.created.PaymentStatus)
	assert.Equal(t, "cash", orders.created.PaymentMethod)
	assert.Equal(t, "Chat Order - Conversational Order via Chat", orders.created.Notes)
	assert.InDelta(t, 100.0, orders.created.TotalAmount, 1e-9)
	assert.InDelta(t, 18.0, orders.created.TaxAmount, 1e-9)
	assert.InDelta(t, 118.0, orders.created.FinalAmount, 1e-9)
	require.Len(t, orders.created.Items, 2)

	assert.True(t, carts.cleared)
}

func TestCheckoutOrderFailureKeepsCart(t *testing.T) {
	carts := &fakeCartStore{view: twoItemCart()}
	p := NewProcessor(carts, &fakeOrderStore{err: fmt.Errorf("insert failed")}, nil)

	res := p.Checkout(context.Background(), "s1", 0, "upi")
	assert.NotEqual(t, StageCompleted, res.Stage)
	assert.Contains(t, res.Message, "Sorry, there was an error processing your order")
	assert.False(t, carts.cleared)
}

func TestSuggestComplementaryForCoffee(t *testing.T) {
	catalog := &fakeCatalog{results: map[string][]Product{
		"scone": {{Id: 5, Name: "Blueberry Scone", Price: 20}},
	}}
	p := NewProcessor(nil, nil, catalog)

	got := p.SuggestComplementary(context.Background(), []CartItem{{Name: "House Blend Coffee"}})
	require.Len(t, got, 1)
	assert.Equal(t, "Blueberry Scone", got[0].Name)
	assert.Equal(t, []string{"scone"}, catalog.searched)
}

func TestSuggestComplementaryForPastry(t *testing.T) {
	catalog := &fakeCatalog{results: map[string][]Product{
		"latte": {{Id: 3, Name: "Vanilla Latte", Price: 25}},
	}}
	p := NewProcessor(nil, nil, catalog)

	got := p.SuggestComplementary(context.Background(), []CartItem{{Name: "Butter Croissant"}})
	require.Len(t, got, 1)
	assert.Equal(t, "Vanilla Latte", got[0].Name)
}

func TestSuggestComplementaryMixedCartSuggestsNothing(t *testing.T) {
	catalog := &fakeCatalog{}
	p := NewProcessor(nil, nil, catalog)

	got := p.SuggestComplementary(context.Background(), []CartItem{
		{Name: "House Blend Coffee"},
		{Name: "Blueberry Scone"},
	})
	assert.Empty(t, got)
	assert.Empty(t, catalog.searched)
}
