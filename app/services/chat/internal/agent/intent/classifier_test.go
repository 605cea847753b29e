package intent

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyPriority(t *testing.T) {
	cases := []struct {
		query string
		want  Intent
	}{
		{"I want 2 bags of Ethiopian coffee", OrderTaking},
		{"can I get a latte", OrderTaking},
		{"add it", OrderTaking},
		{"yes", Confirmation},
		{"yeah", Confirmation},
		{"checkout", Checkout},
		{"proceed to checkout please", Checkout},
		{"I'll pay with phonepe", PaymentMethod},
		{"what's in my cart", CartManagement},
		{"order status please", OrderStatus},
		{"do you have organic coffee", Sales},
		{"show me your menu", Sales},
		{"refund my money", Refund},
		{"what are your hours", Support},
		{"hello there", General},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Classify(tc.query), "query=%q", tc.query)
	}
}

func TestClassifyConfirmationTokenGate(t *testing.T) {
	// two tokens or fewer reads as a confirmation
	assert.Equal(t, Confirmation, Classify("yes"))
	assert.Equal(t, Confirmation, Classify("sure thing"))

	// a longer sentence containing a confirmation word falls through
	assert.Equal(t, Sales, Classify("yes I would love to hear more about that coffee"))
}

func TestClassifyOrderTakingBeatsConfirmation(t *testing.T) {
	// "yes please" sits in the order-taking vocabulary and wins on priority
	assert.Equal(t, OrderTaking, Classify("yes please"))
}

func TestExtractPaymentMethod(t *testing.T) {
	cases := []struct {
		query string
		want  string
	}{
		{"I'll pay with cash", "cash"},
		{"credit card please", "card"},
		{"phonepe", "upi"},
		{"I'll pay with phonepe", "upi"},
		{"amazon pay", "digital_wallet"},
		{"I'd rather barter", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ExtractPaymentMethod(tc.query), "query=%q", tc.query)
	}
}

func TestExtractPaymentMethodOverlapOrder(t *testing.T) {
	// "paytm upi" matches upi before digital_wallet
	assert.Equal(t, "upi", ExtractPaymentMethod("paytm upi"))
	// bare "paytm" resolves to digital_wallet only after the upi list misses
	assert.Equal(t, "digital_wallet", ExtractPaymentMethod("send a payment request on paytm wallet"))
}

func TestIsSafe(t *testing.T) {
	assert.True(t, IsSafe("what coffee do you recommend"))
	assert.True(t, IsSafe("I need a strong espresso"))
	assert.False(t, IsSafe("where can I buy a weapon"))
	assert.False(t, IsSafe("I want to harm someone"))
}
