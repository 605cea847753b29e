package types

import (
	chatagent "BrewMasterAI/app/services/chat/internal/agent/chat"
)

type ChatRequest struct {
	SessionId string `json:"session_id,optional"`
	Query     string `json:"query"`
}

type ChatResponse struct {
	StatusCode int32  `json:"status_code"`
	StatusMsg  string `json:"status_msg"`
	SessionId  string `json:"session_id"`

	Response           string                  `json:"response"`
	Intent             string                  `json:"intent"`
	Agent              string                  `json:"agent"`
	Sources            []string                `json:"sources"`
	Products           []chatagent.ProductInfo `json:"products"`
	Metadata           map[string]interface{}  `json:"metadata"`
	ChatHistoryUsed    bool                    `json:"chat_history_used"`
	ProductContextUsed bool                    `json:"product_context_used"`
	OrderProcessing    map[string]interface{}  `json:"order_processing"`
}
