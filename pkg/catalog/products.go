package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"ghorerbazar.top/organic/storefront/pkg/models"
)

// productList accepts both response shapes the API serves: a bare array and
// the paginated {"results": [...]} wrapper.
type productList []models.Product

func (p *productList) UnmarshalJSON(data []byte) error {
	var bare []models.Product
	if err := json.Unmarshal(data, &bare); err == nil {
		*p = bare
		return nil
	}

	var wrapped struct {
		Results []models.Product `json:"results"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return err
	}
	*p = wrapped.Results
	return nil
}

// ListProducts fetches products, optionally narrowed to a category id and
// ordered by a field the API supports natively ("price", "-price",
// "-created_at"). An empty ordering leaves the API's default order.
func (c *Client) ListProducts(ctx context.Context, categoryID int, ordering string) ([]models.Product, error) {
	query := url.Values{}
	if categoryID > 0 {
		query.Set("category", strconv.Itoa(categoryID))
	}
	if ordering != "" {
		query.Set("ordering", ordering)
	}

	var products productList
	if err := c.get(ctx, "/api/products/", query, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (c *Client) GetProduct(ctx context.Context, productID int) (*models.Product, error) {
	var product models.Product
	err := c.get(ctx, fmt.Sprintf("/api/products/%d/", productID), nil, &product)
	if err != nil {
		if nf, ok := err.(*NotFoundError); ok {
			nf.Resource = "product"
		}
		return nil, err
	}
	return &product, nil
}

func (c *Client) ListCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := c.get(ctx, "/api/categories/", nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// FindCategoryBySlug resolves a navigation slug against the category list.
func (c *Client) FindCategoryBySlug(ctx context.Context, slug string) (*models.Category, error) {
	categories, err := c.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	for i := range categories {
		if categories[i].Slug == slug {
			return &categories[i], nil
		}
	}
	return nil, &NotFoundError{Resource: "category"}
}
