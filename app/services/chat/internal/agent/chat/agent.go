package chat

import (
	"context"
	"fmt"
	"strconv"

	"github.com/zeromicro/go-zero/core/logx"

	"BrewMasterAI/app/services/chat/internal/agent/action"
	"BrewMasterAI/app/services/chat/internal/agent/convctx"
	"BrewMasterAI/app/services/chat/internal/agent/intent"
	"BrewMasterAI/app/services/chat/internal/agent/orderflow"
	"BrewMasterAI/app/services/chat/internal/agent/prompt"
)

const (
	fallbackResponse = "I apologize, but I'm having trouble processing your request right now. Please try again."
	refusalResponse  = "I'm sorry, but I can't help with that. I'm here to assist with our coffee shop - can I help you find a drink or place an order?"

	retrieveTopK = 5
)

// Agent runs the full conversational pipeline for one customer turn:
// classify, short-circuit cart and checkout intents, assemble context,
// generate, then execute any cart directives the reply produced.
type Agent struct {
	retriever Retriever
	generator Generator
	processor *orderflow.Processor
	catalog   orderflow.Catalog
}

func NewAgent(retriever Retriever, generator Generator, processor *orderflow.Processor, catalog orderflow.Catalog) *Agent {
	return &Agent{
		retriever: retriever,
		generator: generator,
		processor: processor,
		catalog:   catalog,
	}
}

// Respond answers one turn. It never returns an error or panics: every
// failure mode degrades to a structured fallback result so the conversation
// survives.
func (a *Agent) Respond(ctx context.Context, req *Request) (res *Result) {
	defer func() {
		if r := recover(); r != nil {
			logx.WithContext(ctx).Errorw("pipeline panic",
				logx.Field("session_id", req.SessionId),
				logx.Field("recover", r))
			res = errorResult(fmt.Errorf("pipeline panic: %v", r))
		}
	}()

	if !intent.IsSafe(req.Query) {
		return &Result{
			Response:        refusalResponse,
			Intent:          string(intent.General),
			Agent:           prompt.AgentName(intent.General),
			Sources:         []string{},
			Products:        []ProductInfo{},
			Metadata:        map[string]interface{}{"refused": true},
			OrderProcessing: map[string]interface{}{"has_order_action": false},
		}
	}

	it := intent.Classify(req.Query)

	if it == intent.CartManagement && a.processor.HasCart() && req.SessionId != "" {
		return a.respondCartSummary(ctx, req, it)
	}
	if it == intent.Checkout && a.processor.HasCart() && req.SessionId != "" {
		return a.respondCheckout(ctx, req, it, "")
	}
	if it == intent.PaymentMethod && a.processor.HasCart() && req.SessionId != "" {
		return a.respondCheckout(ctx, req, it, intent.ExtractPaymentMethod(req.Query))
	}

	// policy decisions see the intent as classified, before any remap
	useHistory := convctx.ShouldUseChatHistory(req.Query, it)
	useProducts := convctx.ShouldResolveProductContext(req.Query, it)

	// within a session, a bare confirmation continues the sales
	// conversation with context; without one there is nothing to confirm
	if it == intent.Confirmation && req.SessionId != "" {
		it = intent.Sales
	}

	passages := a.retrieve(ctx, req.Query)

	chatContext := ""
	if useHistory {
		chatContext = convctx.HistoryContext(req.History, convctx.DefaultHistoryLimit)
	}
	productContext := ""
	if useProducts {
		productContext = convctx.ProductReference(req.Query, req.History)
	}

	formattedContext := convctx.Format(passages, chatContext, productContext)
	response, err := a.generator.Complete(ctx, prompt.Build(it, formattedContext, req.Query))
	if err != nil {
		logx.WithContext(ctx).Errorw("generation failed",
			logx.Field("session_id", req.SessionId),
			logx.Field("intent", string(it)),
			logx.Field("err", err))
		return errorResult(err)
	}

	orderProcessing := map[string]interface{}{"has_order_action": false}
	cartActionHappened := false
	var actionResult action.Result
	var cartResult orderflow.CartActionResult

	if (it == intent.OrderTaking || it == intent.Sales) && req.SessionId != "" && a.processor.HasCart() {
		actionResult = action.Extract(response)
		if actionResult.HasAction {
			cartResult = a.processor.ProcessCartAction(ctx, req.SessionId, req.UserId, actionResult)
			orderProcessing = map[string]interface{}{
				"has_order_action": true,
				"action_type":      string(actionResult.Type),
				"cart_result":      cartResult,
				"items_processed":  actionResult.Items,
			}
			cartActionHappened = true

			if cartResult.Success {
				response = a.cartSuccessMessage(ctx, req, cartResult)
			} else if actionResult.Type == action.TypeSuggestAddToCart {
				response += "\n\n🛒 Would you like me to add this to your cart? Just say 'yes' or 'add it'!"
			}
		}
	}

	products := []ProductInfo{}
	metadata := map[string]interface{}{}
	if it == intent.Sales && !cartActionHappened {
		products = extractProductInfo(ctx, response, a.catalog)
		metadata = map[string]interface{}{
			"total_products": len(products),
			"has_products":   len(products) > 0,
		}
	} else if cartActionHappened {
		products = a.cartActionProducts(ctx, actionResult)
		metadata = map[string]interface{}{
			"cart_action": true,
			"action_type": string(actionResult.Type),
		}
	}

	return &Result{
		Response:           response,
		Intent:             string(it),
		Agent:              prompt.AgentName(it),
		Sources:            passages,
		Context:            formattedContext,
		Products:           products,
		Metadata:           metadata,
		ChatHistoryUsed:    useHistory,
		ProductContextUsed: useProducts,
		OrderProcessing:    orderProcessing,
	}
}

func (a *Agent) retrieve(ctx context.Context, query string) []string {
	if a.retriever == nil {
		return []string{}
	}
	passages, err := a.retriever.Search(ctx, query, retrieveTopK)
	if err != nil {
		logx.WithContext(ctx).Errorw("retrieval failed", logx.Field("err", err))
		return []string{}
	}
	if passages == nil {
		passages = []string{}
	}
	return passages
}

func (a *Agent) respondCartSummary(ctx context.Context, req *Request, it intent.Intent) *Result {
	summary, err := a.processor.Summary(ctx, req.SessionId, req.UserId)
	if err != nil {
		logx.WithContext(ctx).Errorw("cart summary failed",
			logx.Field("session_id", req.SessionId),
			logx.Field("err", err))
		return errorResult(err)
	}

	response := summary.Message
	if !summary.Empty {
		response = summary.Formatted
		response += "\n\n🛒 **Cart Actions Available:**"
		response += "\n- Say 'remove [item]' to delete items"
		response += "\n- Say 'checkout' or 'place order' to proceed"
		response += "\n- Say 'add more' to continue shopping"
	}

	return &Result{
		Response: response,
		Intent:   string(it),
		Agent:    prompt.AgentName(it),
		Sources:  []string{},
		Products: []ProductInfo{},
		Metadata: map[string]interface{}{"cart_action": true, "cart_data": summary},
		OrderProcessing: map[string]interface{}{
			"has_cart_action": true,
			"cart_summary":    summary,
		},
	}
}

func (a *Agent) respondCheckout(ctx context.Context, req *Request, it intent.Intent, paymentMethod string) *Result {
	checkout := a.processor.Checkout(ctx, req.SessionId, req.UserId, paymentMethod)

	orderProcessing := map[string]interface{}{
		"has_checkout_action": true,
		"checkout_stage":      checkout.Stage,
	}
	if it == intent.PaymentMethod {
		orderProcessing = map[string]interface{}{
			"has_payment_action": true,
			"payment_method":     paymentMethod,
			"checkout_stage":     checkout.Stage,
		}
	}
	if checkout.Order != nil {
		orderProcessing["order_number"] = checkout.Order.OrderNumber
	}

	res := &Result{
		Response:        checkout.Message,
		Intent:          string(it),
		Agent:           prompt.AgentName(it),
		Sources:         []string{},
		Products:        []ProductInfo{},
		Metadata:        map[string]interface{}{"checkout_stage": checkout.Stage},
		OrderProcessing: orderProcessing,
	}
	if checkout.Stage == orderflow.StageCompleted {
		res.CompletedOrder = checkout.Order
	}
	return res
}

// cartSuccessMessage replaces the generated reply with a cart-focused
// confirmation once items actually landed in the cart.
func (a *Agent) cartSuccessMessage(ctx context.Context, req *Request, cartResult orderflow.CartActionResult) string {
	response := "✅ **" + cartResult.Message + "**"

	updated, err := a.processor.Summary(ctx, req.SessionId, req.UserId)
	if err == nil && !updated.Empty {
		response += "\n\n" + updated.Formatted
	}

	response += "\n\n🛒 **What's next?**"
	response += "\n- Say 'checkout' to place your order"
	response += "\n- Ask for more products to continue shopping"
	response += "\n- Say 'remove [item]' to modify your cart"
	return response
}

func (a *Agent) cartActionProducts(ctx context.Context, actionResult action.Result) []ProductInfo {
	products := make([]ProductInfo, 0, len(actionResult.Items))
	for _, item := range actionResult.Items {
		info := ProductInfo{
			Id:       strconv.FormatInt(item.ProductID, 10),
			Name:     "Product " + strconv.FormatInt(item.ProductID, 10),
			Quantity: item.Quantity,
			Size:     item.Size,
			Action:   string(actionResult.Type),
		}
		if a.catalog != nil {
			if p, err := a.catalog.FindById(ctx, item.ProductID); err == nil && p != nil {
				info.Name = p.Name
				info.Price = p.Price
			}
		}
		products = append(products, info)
	}
	return products
}

func errorResult(err error) *Result {
	return &Result{
		Response: fallbackResponse,
		Intent:   string(intent.Error),
		Agent:    "System",
		Sources:  []string{},
		Products: []ProductInfo{},
		Metadata: map[string]interface{}{},
		OrderProcessing: map[string]interface{}{
			"has_order_action": false,
			"error":            err.Error(),
		},
	}
}
