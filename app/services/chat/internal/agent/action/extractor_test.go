package action

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractEmojiDirective(t *testing.T) {
	res := Extract("Great choice!\n\n🛒 **ADD TO CART**: Product ID 8, Size: .5 lb, Quantity: 1")

	require.True(t, res.HasAction)
	assert.Equal(t, TypeAddToCart, res.Type)
	require.Len(t, res.Items, 1)
	assert.Equal(t, int64(8), res.Items[0].ProductID)
	assert.Equal(t, ".5 lb", res.Items[0].Size)
	assert.Equal(t, int64(1), res.Items[0].Quantity)
	assert.Equal(t, []string{"Add Product ID 8 to cart"}, res.Instructions)
}

func TestExtractPlainDirectiveDefaultsQuantity(t *testing.T) {
	res := Extract("ADD TO CART: Product ID 3")

	require.True(t, res.HasAction)
	assert.Equal(t, TypeAddToCart, res.Type)
	require.Len(t, res.Items, 1)
	assert.Equal(t, int64(3), res.Items[0].ProductID)
	assert.Equal(t, "", res.Items[0].Size)
	assert.Equal(t, int64(1), res.Items[0].Quantity)
}

func TestExtractMultipleDirectives(t *testing.T) {
	res := Extract("🛒 **ADD TO CART**: Product ID 2, Size: 1 lb, Quantity: 2\n" +
		"🛒 **ADD TO CART**: Product ID 5, Quantity: 1")

	require.True(t, res.HasAction)
	require.Len(t, res.Items, 2)
	assert.Equal(t, int64(2), res.Items[0].ProductID)
	assert.Equal(t, int64(2), res.Items[0].Quantity)
	assert.Equal(t, int64(5), res.Items[1].ProductID)
}

func TestExtractCitationWithoutCorroboration(t *testing.T) {
	res := Extract("Our rarest offering is **Civet Cat** (ID: 21) - ₹1500.00, harvested in small batches.")

	assert.False(t, res.HasAction)
	assert.Equal(t, TypeNone, res.Type)
	assert.Empty(t, res.Items)
}

func TestExtractCitationWithOrderContext(t *testing.T) {
	res := Extract("**Civet Cat** (ID: 21) - ₹1,500.00 is exceptional. Would you like to add it to your cart?")

	require.True(t, res.HasAction)
	assert.Equal(t, TypeSuggestAddToCart, res.Type)
	require.Len(t, res.Items, 1)
	assert.Equal(t, int64(21), res.Items[0].ProductID)
	assert.Equal(t, "Civet Cat", res.Items[0].Name)
	assert.Equal(t, 1500.0, res.Items[0].Price)
	assert.Equal(t, int64(1), res.Items[0].Quantity)
}

func TestExtractDirectiveWinsOverCitation(t *testing.T) {
	res := Extract("**House Blend** (ID: 2) - ₹300.00\n\n" +
		"🛒 **ADD TO CART**: Product ID 2, Quantity: 1\n\n" +
		"Would you like to add this to your cart?")

	assert.Equal(t, TypeAddToCart, res.Type)
	require.Len(t, res.Items, 1)
	assert.Equal(t, int64(2), res.Items[0].ProductID)
}

func TestExtractNoAction(t *testing.T) {
	res := Extract("We open at 8am every day.")
	assert.False(t, res.HasAction)
}
