package rag

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/cloudwego/eino/components/embedding"
	"github.com/elastic/go-elasticsearch/v8"
)

const knnNumCandidates = 50

// ProductRetriever answers similarity queries against the product index.
// Vector search is used when an embedder is wired; otherwise it falls back
// to plain text matching over name and description.
type ProductRetriever struct {
	client    *elasticsearch.Client
	embedder  embedding.Embedder
	indexName string
}

func NewProductRetriever(client *elasticsearch.Client, embedder embedding.Embedder, indexName string) *ProductRetriever {
	return &ProductRetriever{
		client:    client,
		embedder:  embedder,
		indexName: indexName,
	}
}

type productDoc struct {
	ProductId   int64    `json:"product_id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Category    string   `json:"category"`
	Categories  []string `json:"categories"`
}

// Search returns up to k passages describing the closest products. Each
// passage carries a "Product ID:" line so downstream extraction can cite
// exact ids.
func (r *ProductRetriever) Search(ctx context.Context, query string, k int) ([]string, error) {
	if r.client == nil {
		return nil, nil
	}
	if k <= 0 {
		k = 5
	}

	body, err := r.buildQuery(ctx, query, k)
	if err != nil {
		return nil, err
	}

	res, err := r.client.Search(
		r.client.Search.WithContext(ctx),
		r.client.Search.WithIndex(r.indexName),
		r.client.Search.WithBody(bytes.NewReader(body)),
	)
	if err != nil {
		return nil, fmt.Errorf("es search call: %w", err)
	}
	defer res.Body.Close()

	respBody, _ := io.ReadAll(res.Body)
	if res.IsError() {
		return nil, fmt.Errorf("es search status %s: %s", res.Status(), strings.TrimSpace(string(respBody)))
	}

	var payload struct {
		Hits struct {
			Hits []struct {
				Source productDoc `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.Unmarshal(respBody, &payload); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	passages := make([]string, 0, len(payload.Hits.Hits))
	for _, hit := range payload.Hits.Hits {
		passages = append(passages, formatPassage(hit.Source))
	}
	return passages, nil
}

func (r *ProductRetriever) buildQuery(ctx context.Context, query string, k int) ([]byte, error) {
	source := []string{"product_id", "name", "description", "price", "category", "categories"}

	if r.embedder != nil {
		embeds, err := r.embedder.EmbedStrings(ctx, []string{query})
		if err == nil && len(embeds) > 0 && len(embeds[0]) > 0 {
			return json.Marshal(map[string]any{
				"knn": map[string]any{
					"field":          "embedding",
					"query_vector":   embeds[0],
					"k":              k,
					"num_candidates": knnNumCandidates,
				},
				"_source": source,
			})
		}
		// embedding failure degrades to text search
	}

	return json.Marshal(map[string]any{
		"size": k,
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  query,
				"fields": []string{"name^2", "description", "category"},
			},
		},
		"_source": source,
	})
}

func formatPassage(doc productDoc) string {
	lines := []string{
		"Product: " + doc.Name,
		fmt.Sprintf("Product ID: %d", doc.ProductId),
	}
	if doc.Description != "" {
		lines = append(lines, "Description: "+doc.Description)
	}
	lines = append(lines, fmt.Sprintf("Price: ₹%.2f", doc.Price))

	category := doc.Category
	if category == "" && len(doc.Categories) > 0 {
		category = strings.Join(doc.Categories, ", ")
	}
	if category != "" {
		lines = append(lines, "Category: "+category)
	}
	return strings.Join(lines, "\n")
}
