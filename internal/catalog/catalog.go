package catalog

import (
	"context"
	"log/slog"
	"sync"

	"github.com/sofialindqvist/garmentry/internal/models"
)

// Catalog holds the fetched product list. It starts in a loading state, is
// populated once by Load, and is read-only afterwards. There is no
// automatic retry: a failed load leaves the storefront with an empty grid
// and a banner until the operator restarts, mirroring a full page reload.
type Catalog struct {
	mu       sync.RWMutex
	products []models.Product
	err      error
	done     bool
}

// Load fetches the product list through the client and records the outcome.
func (c *Catalog) Load(ctx context.Context, client *Client) {
	products, err := client.Fetch(ctx)

	c.mu.Lock()
	c.products = products
	c.err = err
	c.done = true
	c.mu.Unlock()

	if err != nil {
		slog.Error("Catalog load failed", "error", err)
		return
	}
	slog.Info("Catalog loaded", "products", len(products))
}

// Products returns the full product list, whether the initial load is still
// in flight, and the load error if there was one.
func (c *Catalog) Products() (products []models.Product, loading bool, err error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.products, !c.done, c.err
}

// Get looks up a product by id. It reports false while loading, after a
// failed load, or for ids the catalog has never heard of.
func (c *Catalog) Get(id models.ID) (models.Product, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, p := range c.products {
		if p.ID == id {
			return p, true
		}
	}
	return models.Product{}, false
}
