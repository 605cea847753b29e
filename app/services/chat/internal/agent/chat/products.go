package chat

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"BrewMasterAI/app/services/chat/internal/agent/orderflow"
)

var (
	structuredProductPattern = regexp.MustCompile(`\*\*([^*]+)\*\*\s*\(ID:\s*([^)]+)\)\s*-\s*\$([0-9.]+)`)
	boldMentionPattern       = regexp.MustCompile(`\*\*([^*]+)\*\*`)
)

// extractProductInfo pulls structured product cards out of a sales reply.
// Explicitly cited products win; otherwise bold product names are resolved
// against the catalog. Duplicate IDs collapse to the first occurrence.
func extractProductInfo(ctx context.Context, response string, catalog orderflow.Catalog) []ProductInfo {
	var products []ProductInfo

	for _, m := range structuredProductPattern.FindAllStringSubmatch(response, -1) {
		id := strings.TrimSpace(m[2])
		price, err := strconv.ParseFloat(strings.TrimSpace(m[3]), 64)
		if err != nil {
			continue
		}
		products = append(products, ProductInfo{
			Id:       id,
			Name:     strings.TrimSpace(m[1]),
			Price:    price,
			BuyLink:  "/product/" + id,
			ImageUrl: fmt.Sprintf("/images/product_%s.jpg", id),
		})
	}

	if len(products) == 0 && catalog != nil {
		for _, m := range boldMentionPattern.FindAllStringSubmatch(response, -1) {
			name := strings.TrimSpace(m[1])
			if len(name) <= 3 {
				continue
			}
			found, err := catalog.SearchByName(ctx, name, 5)
			if err != nil {
				continue
			}
			for _, p := range found {
				if !strings.Contains(strings.ToLower(p.Name), strings.ToLower(name)) &&
					!strings.Contains(strings.ToLower(name), strings.ToLower(p.Name)) {
					continue
				}
				id := strconv.FormatInt(p.Id, 10)
				products = append(products, ProductInfo{
					Id:          id,
					Name:        p.Name,
					Price:       p.Price,
					BuyLink:     "/product/" + id,
					ImageUrl:    fmt.Sprintf("/images/product_%s.jpg", id),
					Description: p.Description,
				})
				break
			}
		}
	}

	seen := make(map[string]bool, len(products))
	unique := products[:0]
	for _, p := range products {
		if seen[p.Id] {
			continue
		}
		seen[p.Id] = true
		unique = append(unique, p)
	}
	return unique
}
