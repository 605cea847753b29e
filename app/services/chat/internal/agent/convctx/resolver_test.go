package convctx

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"BrewMasterAI/app/services/chat/internal/agent/intent"
)

func TestShouldUseChatHistory(t *testing.T) {
	// order taking always carries history
	assert.True(t, ShouldUseChatHistory("I want the Ethiopian beans", intent.OrderTaking))

	// confirmations need the prior turn to make sense
	assert.True(t, ShouldUseChatHistory("yes add it to my cart please", intent.Sales))

	// short queries rarely stand alone
	assert.True(t, ShouldUseChatHistory("how much?", intent.Sales))

	// refund follow-ups keep context
	assert.True(t, ShouldUseChatHistory("the grinder arrived with a cracked hopper yesterday", intent.Refund))

	// a self-contained sales question does not
	assert.False(t, ShouldUseChatHistory("which beans pair nicely with breakfast pastries", intent.Sales))
}

func TestShouldResolveProductContext(t *testing.T) {
	assert.True(t, ShouldResolveProductContext("two bags of the dark roast", intent.OrderTaking))
	assert.True(t, ShouldResolveProductContext("sounds good, add it", intent.Sales))
	assert.True(t, ShouldResolveProductContext("how does it compare to the Colombian", intent.Sales))
	assert.True(t, ShouldResolveProductContext("I'd return my coffee from last week", intent.Refund))

	assert.False(t, ShouldResolveProductContext("what are your delivery charges", intent.Support))
}

func TestHistoryContext(t *testing.T) {
	history := []Turn{
		{Role: RoleUser, Content: "do you have espresso beans"},
		{Role: RoleAssistant, Content: "We carry several espresso roasts."},
	}

	got := HistoryContext(history, 5)
	want := "Recent Conversation History:\n" +
		"Customer: do you have espresso beans\n" +
		"Assistant: We carry several espresso roasts."
	assert.Equal(t, want, got)
}

func TestHistoryContextLimitsToTrailingTurns(t *testing.T) {
	history := []Turn{
		{Role: RoleUser, Content: "one"},
		{Role: RoleAssistant, Content: "two"},
		{Role: RoleUser, Content: "three"},
	}

	got := HistoryContext(history, 2)
	assert.NotContains(t, got, "Customer: one")
	assert.Contains(t, got, "Assistant: two")
	assert.Contains(t, got, "Customer: three")
}

func TestHistoryContextEmpty(t *testing.T) {
	assert.Equal(t, "", HistoryContext(nil, 5))
}

func TestProductReference(t *testing.T) {
	history := []Turn{
		{Role: RoleUser, Content: "tell me about your single origins"},
		{Role: RoleAssistant, Content: "Try our **Colombian Supremo** (ID: 7) - ₹450.00, a balanced medium roast."},
	}

	got := ProductReference("yes", history)
	require.NotEmpty(t, got)
	assert.Contains(t, got, "Referenced Product from Previous Message:")
	assert.Contains(t, got, "- Colombian Supremo (ID: 7) - ₹450.00")
}

func TestProductReferenceStopsAtMostRecentMatch(t *testing.T) {
	history := []Turn{
		{Role: RoleAssistant, Content: "**House Blend** (ID: 2) - ₹300.00 is popular."},
		{Role: RoleUser, Content: "anything stronger?"},
		{Role: RoleAssistant, Content: "**Dark Roast** (ID: 9) - ₹520.00 has more body."},
	}

	got := ProductReference("add it", history)
	assert.Contains(t, got, "Dark Roast")
	assert.NotContains(t, got, "House Blend")
}

func TestProductReferenceCartDirective(t *testing.T) {
	history := []Turn{
		{Role: RoleAssistant, Content: "🛒 **ADD TO CART**: Product ID 4, Quantity: 1"},
	}

	got := ProductReference("yes", history)
	assert.Contains(t, got, "- Previous cart instruction for Product ID: 4")
}

func TestProductReferenceNeedsConfirmationOrReference(t *testing.T) {
	history := []Turn{
		{Role: RoleAssistant, Content: "**House Blend** (ID: 2) - ₹300.00"},
	}

	assert.Equal(t, "", ProductReference("good morning", history))
}

func TestFormat(t *testing.T) {
	got := Format([]string{"Product: House Blend\nProduct ID: 2"}, "Recent Conversation History:\nCustomer: hi", "Referenced Product from Previous Message:\n- House Blend (ID: 2) - ₹300.00")

	assert.Contains(t, got, "Retrieved Information:\nProduct: House Blend")
	assert.Contains(t, got, "\nPrevious Conversation:\nRecent Conversation History:")
	assert.Contains(t, got, "\nProduct Information:\nReferenced Product from Previous Message:")
}

var allIntents = []intent.Intent{
	intent.OrderTaking, intent.Confirmation, intent.Checkout,
	intent.PaymentMethod, intent.CartManagement, intent.OrderStatus,
	intent.Sales, intent.Refund, intent.Support, intent.General,
	intent.Error,
}

// The policies are total: any input string with any intent yields a plain
// boolean, never a panic.
func FuzzContextPolicies(f *testing.F) {
	f.Add("")
	f.Add("yes")
	f.Add("what about that coffee from before?")
	f.Add("☕️ गरम कॉफ़ी 🛒\x00\tmixed")
	f.Add(strings.Repeat("order cart checkout ", 200))

	f.Fuzz(func(t *testing.T, query string) {
		intent.Classify(query)
		for _, it := range allIntents {
			ShouldUseChatHistory(query, it)
			ShouldResolveProductContext(query, it)
		}
	})
}

func TestPoliciesTotalOverRandomInputs(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	alphabet := []rune("abc ordin cart?!¿ßπ☕🛒\n\t0123456789")

	for i := 0; i < 2000; i++ {
		runes := make([]rune, rng.Intn(40))
		for j := range runes {
			runes[j] = alphabet[rng.Intn(len(alphabet))]
		}
		query := string(runes)

		intent.Classify(query)
		for _, it := range allIntents {
			ShouldUseChatHistory(query, it)
			ShouldResolveProductContext(query, it)
		}
	}
}

func TestFormatSkipsEmptySections(t *testing.T) {
	got := Format(nil, "", "")
	assert.Equal(t, "", got)
}
