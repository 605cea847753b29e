package orderflow

import (
	"context"
	"fmt"
	"strings"

	"github.com/zeromicro/go-zero/core/logx"

	"BrewMasterAI/app/services/chat/internal/agent/action"
)

// TaxRate is the flat GST applied at checkout.
const TaxRate = 0.18

// CartItem is one line of an active cart as the chat layer sees it.
type CartItem struct {
	ProductId  int64
	Name       string
	Quantity   int64
	Size       string
	UnitPrice  float64
	TotalPrice float64
}

// CartView is a snapshot of an active cart with store-authoritative totals.
type CartView struct {
	Items       []CartItem
	TotalItems  int64
	TotalAmount float64
}

// OrderItemDraft mirrors a cart line at order-creation time.
type OrderItemDraft struct {
	ProductId  int64
	Quantity   int64
	UnitPrice  float64
	TotalPrice float64
	Size       string
}

// OrderDraft is everything the order store needs to persist a chat order.
type OrderDraft struct {
	UserId        int64
	SessionId     string
	Status        string
	TotalAmount   float64
	TaxAmount     float64
	FinalAmount   float64
	PaymentStatus string
	PaymentMethod string
	Notes         string
	Items         []OrderItemDraft
}

// CreatedOrder is the handle returned after a successful order insert.
type CreatedOrder struct {
	Id          int64
	OrderNumber string
}

// CartStore is the cart backend the processor drives. A nil CartStore makes
// every cart operation degrade to a no-op result instead of failing.
type CartStore interface {
	Get(ctx context.Context, sessionId string, userId int64) (*CartView, error)
	Add(ctx context.Context, sessionId string, userId, productId, quantity int64, size string) error
	Clear(ctx context.Context, sessionId string, userId int64) error
}

// OrderStore persists confirmed chat orders.
type OrderStore interface {
	Create(ctx context.Context, draft *OrderDraft) (*CreatedOrder, error)
}

// Product is a catalog row surfaced to the chat layer.
type Product struct {
	Id          int64
	Name        string
	Price       float64
	Description string
}

// Catalog is read-only product lookup.
type Catalog interface {
	FindById(ctx context.Context, id int64) (*Product, error)
	SearchByName(ctx context.Context, name string, limit int) ([]Product, error)
}

// Processor executes cart directives and runs the checkout flow.
type Processor struct {
	carts   CartStore
	orders  OrderStore
	catalog Catalog
}

func NewProcessor(carts CartStore, orders OrderStore, catalog Catalog) *Processor {
	return &Processor{carts: carts, orders: orders, catalog: catalog}
}

// HasCart reports whether a cart backend is wired in.
func (p *Processor) HasCart() bool {
	return p.carts != nil
}

// CartActionResult reports what a batch of cart directives actually did.
type CartActionResult struct {
	Success     bool
	Message     string
	CartUpdated bool
	ItemsAdded  []action.Item
}

// ProcessCartAction applies extracted cart items best-effort: each item is
// attempted independently and one failure never rolls back the rest.
func (p *Processor) ProcessCartAction(ctx context.Context, sessionId string, userId int64, act action.Result) CartActionResult {
	var res CartActionResult
	if !act.HasAction || p.carts == nil {
		return res
	}

	for _, item := range act.Items {
		qty := item.Quantity
		if qty <= 0 {
			qty = 1
		}
		err := p.carts.Add(ctx, sessionId, userId, item.ProductID, qty, item.Size)
		if err != nil {
			logx.WithContext(ctx).Errorw("cart add failed",
				logx.Field("session_id", sessionId),
				logx.Field("product_id", item.ProductID),
				logx.Field("err", err))
			continue
		}
		res.ItemsAdded = append(res.ItemsAdded, item)
		res.CartUpdated = true
	}

	if res.CartUpdated {
		res.Success = true
		res.Message = fmt.Sprintf("Successfully added %d item(s) to your cart!", len(res.ItemsAdded))
	} else {
		res.Message = "No items were added to the cart."
	}
	return res
}

// CartSummary is the chat-facing view of the active cart.
type CartSummary struct {
	Empty     bool
	Items     []CartItem
	ItemCount int64
	Total     float64
	Message   string
	Formatted string
}

// Summary loads and formats the active cart. Totals come from the store, not
// from re-summing the lines here.
func (p *Processor) Summary(ctx context.Context, sessionId string, userId int64) (*CartSummary, error) {
	if p.carts == nil {
		return nil, fmt.Errorf("cart backend not available")
	}

	view, err := p.carts.Get(ctx, sessionId, userId)
	if err != nil {
		return nil, err
	}
	if view == nil || len(view.Items) == 0 {
		return &CartSummary{
			Empty:   true,
			Message: "Your cart is currently empty. Would you like to browse our menu?",
		}, nil
	}

	return &CartSummary{
		Items:     view.Items,
		ItemCount: view.TotalItems,
		Total:     view.TotalAmount,
		Formatted: formatCart(view.Items, view.TotalAmount, view.TotalItems),
	}, nil
}

func formatCart(items []CartItem, total float64, totalQuantity int64) string {
	if len(items) == 0 {
		return "Your cart is empty."
	}

	lines := []string{"**CURRENT CART:**"}
	for _, item := range items {
		sizeInfo := ""
		if item.Size != "" && item.Size != "Regular" {
			sizeInfo = fmt.Sprintf(" (%s)", item.Size)
		}
		lines = append(lines, fmt.Sprintf("- %s%s - Qty: %d - ₹%.2f", item.Name, sizeInfo, item.Quantity, item.TotalPrice))
	}
	lines = append(lines, fmt.Sprintf("\n**Cart Total**: ₹%.2f", total))
	lines = append(lines, fmt.Sprintf("**Total Items**: %d", totalQuantity))
	return strings.Join(lines, "\n")
}

// CheckoutSummary is the pre-payment order recap.
type CheckoutSummary struct {
	Ready       bool
	Subtotal    float64
	TaxAmount   float64
	TotalAmount float64
	ItemCount   int64
	Items       []CartItem
	Message     string
}

// BuildCheckoutSummary computes tax on the cart subtotal and renders the
// order recap. An empty cart is not ready for checkout.
func (p *Processor) BuildCheckoutSummary(ctx context.Context, sessionId string, userId int64) *CheckoutSummary {
	summary, err := p.Summary(ctx, sessionId, userId)
	if err != nil || summary.Empty {
		return &CheckoutSummary{
			Ready:   false,
			Message: "Your cart is empty. Add some items before checkout!",
		}
	}

	subtotal := summary.Total
	taxAmount := subtotal * TaxRate
	totalAmount := subtotal + taxAmount

	return &CheckoutSummary{
		Ready:       true,
		Subtotal:    subtotal,
		TaxAmount:   taxAmount,
		TotalAmount: totalAmount,
		ItemCount:   summary.ItemCount,
		Items:       summary.Items,
		Message: fmt.Sprintf(`
**ORDER SUMMARY**
Subtotal: ₹%.2f
Tax (18%%): ₹%.2f
**Total: ₹%.2f**

Items: %d

Ready to place your order? Just say "checkout" or "place order" and I'll guide you through the payment process!
`, subtotal, taxAmount, totalAmount, summary.ItemCount),
	}
}

// PaymentMethod is one way the customer may settle a chat order.
type PaymentMethod struct {
	Id          string
	Name        string
	Description string
}

// PaymentMethods returns the supported settlement options in display order.
func PaymentMethods() []PaymentMethod {
	return []PaymentMethod{
		{Id: "cash", Name: "Cash Payment", Description: "Pay with cash at pickup/delivery"},
		{Id: "card", Name: "Card Payment", Description: "Credit/Debit card payment"},
		{Id: "upi", Name: "UPI Payment", Description: "Pay via UPI (PhonePe, GPay, Paytm)"},
		{Id: "digital_wallet", Name: "Digital Wallet", Description: "Paytm, Amazon Pay, etc."},
	}
}

const paymentOptionsPrompt = `
**PAYMENT OPTIONS:**
1. 💵 Cash Payment - Pay at pickup/delivery
2. 💳 Card Payment - Credit/Debit card
3. 📱 UPI Payment - PhonePe, GPay, Paytm
4. 💰 Digital Wallet - Paytm, Amazon Pay

Please choose your payment method by saying something like:
"I'll pay with cash" or "UPI payment" or "Card payment"
`

// Checkout stages.
const (
	StageSummary       = "summary"
	StagePaymentMethod = "payment_method"
	StageCompleted     = "completed"
)

// CheckoutResult reports where a checkout attempt landed.
type CheckoutResult struct {
	Stage   string
	Message string
	Summary *CheckoutSummary
	Order   *CreatedOrder
}

// Checkout drives the staged checkout flow. With no payment method it stops
// at the options prompt; with a valid one it persists the order, clears the
// cart, and returns the confirmation message. The cart is only cleared after
// the order insert succeeds.
func (p *Processor) Checkout(ctx context.Context, sessionId string, userId int64, paymentMethod string) CheckoutResult {
	res := CheckoutResult{Stage: StageSummary}

	summary := p.BuildCheckoutSummary(ctx, sessionId, userId)
	if !summary.Ready {
		res.Message = summary.Message
		return res
	}

	if paymentMethod == "" {
		res.Stage = StagePaymentMethod
		res.Summary = summary
		res.Message = "\n" + summary.Message + "\n" + paymentOptionsPrompt
		return res
	}

	methodName := ""
	for _, pm := range PaymentMethods() {
		if pm.Id == paymentMethod {
			methodName = pm.Name
			break
		}
	}
	if methodName == "" {
		var ids []string
		for _, pm := range PaymentMethods() {
			ids = append(ids, pm.Id)
		}
		res.Message = "Invalid payment method. Please choose from: " + strings.Join(ids, ", ")
		return res
	}

	order, err := p.saveOrder(ctx, sessionId, userId, paymentMethod, "Conversational Order via Chat")
	if err != nil {
		logx.WithContext(ctx).Errorw("chat order create failed",
			logx.Field("session_id", sessionId),
			logx.Field("err", err))
		res.Message = "Sorry, there was an error processing your order: " + err.Error()
		return res
	}

	res.Stage = StageCompleted
	res.Summary = summary
	res.Order = order
	res.Message = fmt.Sprintf(`
🎉 **ORDER CONFIRMED!**

**Order Number:** %s
**Payment Method:** %s
**Total Amount:** ₹%.2f

Your order has been successfully placed!

For cash payment: Have the exact amount ready at pickup/delivery
For card/UPI: You'll receive payment instructions shortly
For digital wallet: Check your app for payment request

Thank you for your order! ☕️
`, order.OrderNumber, methodName, summary.TotalAmount)
	return res
}

func (p *Processor) saveOrder(ctx context.Context, sessionId string, userId int64, paymentMethod, notes string) (*CreatedOrder, error) {
	if p.carts == nil || p.orders == nil {
		return nil, fmt.Errorf("required services not available")
	}

	view, err := p.carts.Get(ctx, sessionId, userId)
	if err != nil {
		return nil, err
	}
	if view == nil || len(view.Items) == 0 {
		return nil, fmt.Errorf("cart is empty, cannot create order")
	}

	subtotal := view.TotalAmount
	taxAmount := subtotal * TaxRate

	draft := &OrderDraft{
		UserId:        userId,
		SessionId:     sessionId,
		Status:        "confirmed",
		TotalAmount:   subtotal,
		TaxAmount:     taxAmount,
		FinalAmount:   subtotal + taxAmount,
		PaymentStatus: "pending",
		PaymentMethod: paymentMethod,
		Notes:         "Chat Order - " + notes,
	}
	for _, item := range view.Items {
		draft.Items = append(draft.Items, OrderItemDraft{
			ProductId:  item.ProductId,
			Quantity:   item.Quantity,
			UnitPrice:  item.UnitPrice,
			TotalPrice: item.TotalPrice,
			Size:       item.Size,
		})
	}

	order, err := p.orders.Create(ctx, draft)
	if err != nil {
		return nil, err
	}

	// cart survives if the order insert failed above
	if err := p.carts.Clear(ctx, sessionId, userId); err != nil {
		logx.WithContext(ctx).Errorw("cart clear after order failed",
			logx.Field("session_id", sessionId),
			logx.Field("order_number", order.OrderNumber),
			logx.Field("err", err))
	}
	return order, nil
}

// SuggestComplementary pairs coffee with pastries and pastries with coffee,
// capped at three suggestions.
func (p *Processor) SuggestComplementary(ctx context.Context, current []CartItem) []Product {
	var suggestions []Product
	if p.catalog == nil || len(current) == 0 {
		return suggestions
	}

	hasCoffee := false
	hasPastry := false
	for _, item := range current {
		name := strings.ToLower(item.Name)
		if strings.Contains(name, "coffee") {
			hasCoffee = true
		}
		for _, foodType := range []string{"scone", "croissant", "pastry"} {
			if strings.Contains(name, foodType) {
				hasPastry = true
			}
		}
	}

	if hasCoffee && !hasPastry {
		if pastries, err := p.catalog.SearchByName(ctx, "scone", 2); err == nil {
			suggestions = append(suggestions, pastries...)
		}
	}
	if hasPastry && !hasCoffee {
		if coffees, err := p.catalog.SearchByName(ctx, "latte", 2); err == nil {
			suggestions = append(suggestions, coffees...)
		}
	}

	if len(suggestions) > 3 {
		suggestions = suggestions[:3]
	}
	return suggestions
}
