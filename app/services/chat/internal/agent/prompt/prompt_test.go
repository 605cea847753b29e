package prompt

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"BrewMasterAI/app/services/chat/internal/agent/intent"
)

func TestBuildOrderTakingTeachesDirectiveFormat(t *testing.T) {
	got := Build(intent.OrderTaking, "Product: House Blend\nProduct ID: 2", "I want a house blend")

	assert.Contains(t, got, "CRITICAL SAFETY INSTRUCTIONS:")
	assert.Contains(t, got, "🛒 **ADD TO CART**: Product ID [exact_product_id], Size: [size], Quantity: [qty]")
	assert.Contains(t, got, "Context with Available Products:\nProduct: House Blend")
	assert.Contains(t, got, "Customer Order Request: I want a house blend")
}

func TestBuildSalesTeachesCitationFormat(t *testing.T) {
	got := Build(intent.Sales, "ctx", "what do you have")

	assert.Contains(t, got, "**Product Name** (ID: product_id) - price")
	assert.Contains(t, got, "Customer Question: what do you have")
}

func TestBuildUnknownIntentFallsBackToGeneral(t *testing.T) {
	got := Build(intent.Error, "ctx", "hello")
	assert.Contains(t, got, "BrewMaster's General Assistant")
}

func TestAgentName(t *testing.T) {
	assert.Equal(t, "Order Taking Specialist", AgentName(intent.OrderTaking))
	assert.Equal(t, "Product Specialist", AgentName(intent.Confirmation))
	assert.Equal(t, "BrewMaster Assistant", AgentName(intent.Error))
}
