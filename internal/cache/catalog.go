package cache

import (
	"context"
	"net/url"
	"time"

	"github.com/sweetnest/storefront/internal/api"
	"github.com/sweetnest/storefront/internal/logger"
	"github.com/sweetnest/storefront/internal/models"
)

const catalogTTL = 5 * time.Minute

// Catalog wraps the browse-side API with a read-through TTL cache so catalog
// pages don't re-fetch on every navigation. Cache failures degrade to direct
// fetches; they never surface to the caller.
type Catalog struct {
	api *api.CatalogAPI
}

// NewCatalog creates the cached catalog reader
func NewCatalog(catalogAPI *api.CatalogAPI) *Catalog {
	return &Catalog{api: catalogAPI}
}

// Cakes lists cakes for a query, cached per query string
func (c *Catalog) Cakes(ctx context.Context, query url.Values) ([]models.Cake, error) {
	key := "catalog:cakes"
	if len(query) > 0 {
		key += ":" + query.Encode()
	}
	var cakes []models.Cake
	if hit, err := GetJSON(ctx, key, &cakes); err != nil {
		logger.Warnw("catalog_cache_read_failed", "key", key, "error", err)
	} else if hit {
		return cakes, nil
	}

	cakes, err := c.api.Cakes(ctx, query)
	if err != nil {
		return nil, err
	}
	if err := SetJSON(ctx, key, cakes, catalogTTL); err != nil {
		logger.Warnw("catalog_cache_write_failed", "key", key, "error", err)
	}
	return cakes, nil
}

// Cake fetches one cake by slug, cached
func (c *Catalog) Cake(ctx context.Context, slug string) (*models.Cake, error) {
	key := "catalog:cake:" + slug
	var cake models.Cake
	if hit, err := GetJSON(ctx, key, &cake); err != nil {
		logger.Warnw("catalog_cache_read_failed", "key", key, "error", err)
	} else if hit {
		return &cake, nil
	}

	fetched, err := c.api.Cake(ctx, slug)
	if err != nil {
		return nil, err
	}
	if err := SetJSON(ctx, key, fetched, catalogTTL); err != nil {
		logger.Warnw("catalog_cache_write_failed", "key", key, "error", err)
	}
	return fetched, nil
}

// Categories lists categories, cached
func (c *Catalog) Categories(ctx context.Context) ([]models.Category, error) {
	key := "catalog:categories"
	var categories []models.Category
	if hit, err := GetJSON(ctx, key, &categories); err != nil {
		logger.Warnw("catalog_cache_read_failed", "key", key, "error", err)
	} else if hit {
		return categories, nil
	}

	categories, err := c.api.Categories(ctx)
	if err != nil {
		return nil, err
	}
	if err := SetJSON(ctx, key, categories, catalogTTL); err != nil {
		logger.Warnw("catalog_cache_write_failed", "key", key, "error", err)
	}
	return categories, nil
}

// Promotions lists promotions, cached
func (c *Catalog) Promotions(ctx context.Context) ([]models.Promotion, error) {
	key := "catalog:promotions"
	var promotions []models.Promotion
	if hit, err := GetJSON(ctx, key, &promotions); err != nil {
		logger.Warnw("catalog_cache_read_failed", "key", key, "error", err)
	} else if hit {
		return promotions, nil
	}

	promotions, err := c.api.Promotions(ctx)
	if err != nil {
		return nil, err
	}
	if err := SetJSON(ctx, key, promotions, catalogTTL); err != nil {
		logger.Warnw("catalog_cache_write_failed", "key", key, "error", err)
	}
	return promotions, nil
}
