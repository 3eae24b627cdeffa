package api

import (
	"context"
	"net/url"

	"github.com/sweetnest/storefront/internal/models"
)

// CatalogAPI wrappers for the browse-side resource groups
// (/cakes, /categories, /promotions)
type CatalogAPI struct {
	client *Client
}

// NewCatalogAPI creates the catalog resource wrapper
func NewCatalogAPI(client *Client) *CatalogAPI {
	return &CatalogAPI{client: client}
}

// Cakes lists cakes, optionally filtered (category, search, featured)
func (a *CatalogAPI) Cakes(ctx context.Context, query url.Values) ([]models.Cake, error) {
	path := "/cakes"
	if len(query) > 0 {
		path += "?" + query.Encode()
	}
	var cakes []models.Cake
	if err := a.client.Get(ctx, path, &cakes); err != nil {
		return nil, err
	}
	return cakes, nil
}

// Cake fetches one cake by slug
func (a *CatalogAPI) Cake(ctx context.Context, slug string) (*models.Cake, error) {
	var cake models.Cake
	if err := a.client.Get(ctx, "/cakes/"+url.PathEscape(slug), &cake); err != nil {
		return nil, err
	}
	return &cake, nil
}

// Categories lists catalog categories
func (a *CatalogAPI) Categories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := a.client.Get(ctx, "/categories", &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// Promotions lists active storewide promotions
func (a *CatalogAPI) Promotions(ctx context.Context) ([]models.Promotion, error) {
	var promotions []models.Promotion
	if err := a.client.Get(ctx, "/promotions", &promotions); err != nil {
		return nil, err
	}
	return promotions, nil
}
