package chat

import (
	"context"

	"BrewMasterAI/app/services/chat/internal/agent/convctx"
	"BrewMasterAI/app/services/chat/internal/agent/orderflow"
)

// Retriever fetches passages relevant to the query. Errors and nil
// implementations both degrade to an empty passage list upstream.
type Retriever interface {
	Search(ctx context.Context, query string, k int) ([]string, error)
}

// Generator produces a completion for a fully rendered prompt.
type Generator interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Request is one customer turn plus the session state needed to answer it.
type Request struct {
	Query     string
	SessionId string
	UserId    int64
	History   []convctx.Turn
}

// ProductInfo is one product surfaced in a structured result.
type ProductInfo struct {
	Id          string  `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Quantity    int64   `json:"quantity,omitempty"`
	Size        string  `json:"size,omitempty"`
	Action      string  `json:"action,omitempty"`
	BuyLink     string  `json:"buy_link,omitempty"`
	ImageUrl    string  `json:"image_url,omitempty"`
	Description string  `json:"description,omitempty"`
	Category    string  `json:"category,omitempty"`
}

// Result is the structured answer for one turn.
type Result struct {
	Response           string                 `json:"response"`
	Intent             string                 `json:"intent"`
	Agent              string                 `json:"agent"`
	Sources            []string               `json:"sources"`
	Context            string                 `json:"context"`
	Products           []ProductInfo          `json:"products"`
	Metadata           map[string]interface{} `json:"metadata"`
	ChatHistoryUsed    bool                   `json:"chat_history_used"`
	ProductContextUsed bool                   `json:"product_context_used"`
	OrderProcessing    map[string]interface{} `json:"order_processing"`

	// CompletedOrder is set when this turn placed an order, for downstream
	// event publishing. Never serialized to the client.
	CompletedOrder *orderflow.CreatedOrder `json:"-"`
}
