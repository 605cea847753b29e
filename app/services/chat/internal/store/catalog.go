package store

import (
	"context"
	"errors"

	"BrewMasterAI/app/dal/product"
	"BrewMasterAI/app/services/chat/internal/agent/orderflow"
)

// Catalog exposes read-only product lookup over the products table.
type Catalog struct {
	products product.ProductsModel
}

func NewCatalog(products product.ProductsModel) *Catalog {
	return &Catalog{products: products}
}

func (c *Catalog) FindById(ctx context.Context, id int64) (*orderflow.Product, error) {
	p, err := c.products.FindOne(ctx, id)
	if err != nil {
		if errors.Is(err, product.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return toProduct(p), nil
}

func (c *Catalog) SearchByName(ctx context.Context, name string, limit int) ([]orderflow.Product, error) {
	found, err := c.products.SearchByName(ctx, name, int64(limit))
	if err != nil {
		return nil, err
	}
	out := make([]orderflow.Product, 0, len(found))
	for _, p := range found {
		out = append(out, *toProduct(p))
	}
	return out, nil
}

func toProduct(p *product.Products) *orderflow.Product {
	return &orderflow.Product{
		Id:          p.Id,
		Name:        p.Name,
		Price:       p.RetailPrice,
		Description: p.Description,
	}
}
