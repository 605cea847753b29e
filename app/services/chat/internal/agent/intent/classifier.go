package intent

import (
	"strings"
)

// Keyword sets are evaluated in a fixed order; the first set that matches
// wins. The lists deliberately overlap ("cash" sits in both payment and
// sales-adjacent vocabularies) and the priority order is what resolves the
// ambiguity, so neither the ordering nor the list contents may be shuffled.
var (
	orderTakingKeywords = []string{
		"i want", "i'd like", "can i get", "can i have", "i'll take", "i'll have",
		"place order", "make order", "order for me", "i need", "give me",
		"add to cart", "put in cart", "add to my order", "include", "also add",
		"i'll order", "let me order", "order now",
		"yes add it", "yes add that", "add it", "add that", "yes please add",
		"take it", "i'll take that", "yes please", "sounds good", "perfect",
		"yes to cart", "add to my cart", "put it in cart", "yes add to cart",
	}

	confirmationKeywords = []string{
		"yes", "yeah", "yep", "sure", "okay", "ok", "that one", "the first one",
		"the second one", "correct", "right", "exactly",
	}

	checkoutKeywords = []string{
		"checkout", "complete order", "place my order", "finalize order",
		"proceed to checkout", "ready to order", "confirm order", "finish order",
		"complete my order", "submit order", "process order",
	}

	paymentKeywords = []string{
		"pay with", "payment method", "i'll pay", "cash payment", "card payment",
		"upi payment", "digital wallet", "credit card", "debit card",
		"phonepe", "gpay", "paytm", "amazon pay", "cash", "card", "upi",
	}

	cartKeywords = []string{
		"cart", "basket", "my order", "what's in my", "show my", "remove from",
		"delete from", "change quantity", "update my", "clear cart", "empty cart",
		"view cart", "check cart", "modify order", "edit order",
	}

	orderStatusKeywords = []string{
		"order status", "track order", "where is my", "delivery status",
		"order confirmation", "receipt", "order number", "my orders",
	}

	salesKeywords = []string{
		"price", "cost", "available", "stock", "catalog", "shop", "store",
		"discount", "offer", "promo", "new", "recommendation", "suggest",
		"tell me about", "what do you have", "show me", "browse", "menu",
		"do you have", "do you sell", "any", "which", "what kind", "what type",
		"organic coffee", "coffee", "tea", "beans", "drink", "beverage",
		"flavors", "sizes", "options", "varieties", "selection",
	}

	refundKeywords = []string{
		"refund", "return", "exchange", "cancel", "money back", "replacement",
		"damaged", "defective", "wrong", "mistake", "complaint", "issue",
	}

	supportKeywords = []string{
		"help", "support", "contact", "hours", "location", "store", "delivery",
		"shipping", "payment", "account", "login", "register",
	}
)

// Classify maps a raw customer query onto the intent taxonomy using ordered,
// case-insensitive substring rules. It is pure and never fails.
func Classify(query string) Intent {
	q := strings.ToLower(query)

	if containsAny(q, orderTakingKeywords) {
		return OrderTaking
	}

	// Bare confirmation words only count when the whole message is short;
	// a longer sentence that happens to contain "yes" is not a confirmation.
	if containsAny(q, confirmationKeywords) {
		if len(strings.Fields(strings.TrimSpace(query))) <= 2 {
			return Confirmation
		}
	}

	if containsAny(q, checkoutKeywords) {
		return Checkout
	}
	if containsAny(q, paymentKeywords) {
		return PaymentMethod
	}
	if containsAny(q, cartKeywords) {
		return CartManagement
	}
	if containsAny(q, orderStatusKeywords) {
		return OrderStatus
	}
	if containsAny(q, salesKeywords) {
		return Sales
	}
	if containsAny(q, refundKeywords) {
		return Refund
	}
	if containsAny(q, supportKeywords) {
		return Support
	}

	return General
}

// paymentMapping is ordered: earlier methods win on overlap ("paytm" belongs
// to both upi and digital_wallet vocabularies and resolves to upi).
var paymentMapping = []struct {
	method   string
	keywords []string
}{
	{"cash", []string{"cash", "cash payment", "pay cash", "pay with cash"}},
	{"card", []string{"card", "credit card", "debit card", "card payment", "pay with card"}},
	{"upi", []string{"upi", "phonepe", "gpay", "google pay", "paytm upi", "bhim", "upi payment"}},
	{"digital_wallet", []string{"paytm", "amazon pay", "mobikwik", "freecharge", "wallet", "digital wallet"}},
}

// ExtractPaymentMethod recovers a payment method token from free text.
// Returns "" when nothing matches.
func ExtractPaymentMethod(query string) string {
	q := strings.ToLower(query)
	for _, pm := range paymentMapping {
		if containsAny(q, pm.keywords) {
			return pm.method
		}
	}
	return ""
}

var bannedWords = []string{"kill", "murder", "harm", "die", "bomb", "weapon", "stab", "suicide"}

// IsSafe rejects queries containing the violence/self-harm denylist. The
// orchestrator treats a false return as a hard gate before any generation.
func IsSafe(query string) bool {
	q := strings.ToLower(query)
	for _, word := range bannedWords {
		if strings.Contains(q, word) {
			return false
		}
	}
	return true
}

func containsAny(query string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(query, kw) {
			return true
		}
	}
	return false
}
