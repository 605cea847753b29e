package action

import (
	"regexp"
	"strconv"
	"strings"
)

// Type classifies what an assistant reply asked the cart layer to do.
type Type string

const (
	TypeNone             Type = ""
	TypeAddToCart        Type = "add_to_cart"
	TypeSuggestAddToCart Type = "suggest_add_to_cart"
)

// Item is one cart line extracted from an assistant reply. Name and Price are
// only populated for suggestions, which come from product citations rather
// than explicit directives.
type Item struct {
	ProductID int64
	Name      string
	Price     float64
	Quantity  int64
	Size      string
}

// Result carries every directive found in a single reply.
type Result struct {
	HasAction    bool
	Type         Type
	Items        []Item
	Instructions []string
}

var (
	addToCartPattern    = regexp.MustCompile(`(?i)🛒\s*\*\*ADD TO CART\*\*:\s*Product ID\s*(\d+)(?:,\s*Size:\s*([^,]+))?(?:,\s*Quantity:\s*(\d+))?`)
	addToCartAltPattern = regexp.MustCompile(`(?i)ADD TO CART:\s*Product ID\s*(\d+)(?:,\s*Size:\s*([^,]+))?(?:,\s*Quantity:\s*(\d+))?`)
	productCitation     = regexp.MustCompile(`\*\*([^*]+)\*\*\s*\(ID:\s*(\d+)\)\s*-\s*[₹$]([0-9.,]+)`)
)

var orderContextPhrases = []string{
	"add to your cart", "would you like to add", "shall i add", "adding to cart",
	"successfully added", "added to cart", "item added", "order confirmed",
	"perfect! adding", "great choice! adding", "excellent! i'll add",
}

var confirmationPhrases = []string{
	"yes, i'll add", "absolutely! adding", "sure thing! adding",
	"coming right up", "perfect choice", "great selection",
}

// Extract parses the generated reply for cart directives. Explicit
// ADD TO CART lines win; bare product citations only count when the reply
// also carries an order or confirmation phrase, and then only as a
// suggestion the customer still has to approve.
func Extract(response string) Result {
	var res Result

	matches := addToCartPattern.FindAllStringSubmatch(response, -1)
	if len(matches) == 0 {
		matches = addToCartAltPattern.FindAllStringSubmatch(response, -1)
	}

	for _, m := range matches {
		id, err := strconv.ParseInt(m[1], 10, 64)
		if err != nil {
			continue
		}
		qty := int64(1)
		if m[3] != "" {
			if q, err := strconv.ParseInt(m[3], 10, 64); err == nil {
				qty = q
			}
		}
		res.HasAction = true
		res.Type = TypeAddToCart
		res.Items = append(res.Items, Item{
			ProductID: id,
			Quantity:  qty,
			Size:      strings.TrimSpace(m[2]),
		})
		res.Instructions = append(res.Instructions, "Add Product ID "+m[1]+" to cart")
	}
	if res.HasAction {
		return res
	}

	citations := productCitation.FindAllStringSubmatch(response, -1)
	if len(citations) == 0 {
		return res
	}
	lower := strings.ToLower(response)
	corroborated := containsAny(lower, orderContextPhrases) || containsAny(lower, confirmationPhrases)
	if !corroborated {
		return res
	}

	res.HasAction = true
	res.Type = TypeSuggestAddToCart
	for _, m := range citations {
		id, err := strconv.ParseInt(m[2], 10, 64)
		if err != nil {
			continue
		}
		price, err := strconv.ParseFloat(strings.ReplaceAll(m[3], ",", ""), 64)
		if err != nil {
			continue
		}
		res.Items = append(res.Items, Item{
			ProductID: id,
			Name:      strings.TrimSpace(m[1]),
			Price:     price,
			Quantity:  1,
		})
	}
	return res
}

func containsAny(s string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(s, p) {
			return true
		}
	}
	return false
}
