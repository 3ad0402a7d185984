package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sofialindqvist/garmentry/internal/models"
)

// ErrUnavailable is the single failure mode of the catalog source. Network
// errors, bad status codes, and undecodable bodies all collapse into it;
// callers show one banner and move on, they do not branch on the cause.
var ErrUnavailable = errors.New("catalog unavailable")

// Client fetches the product list from the upstream catalog endpoint.
type Client struct {
	url  string
	http *http.Client
}

func NewClient(url string) *Client {
	return &Client{
		url:  url,
		http: &http.Client{Timeout: 15 * time.Second},
	}
}

// Fetch performs the one GET the storefront makes and decodes the JSON
// product array.
func (c *Client) Fetch(ctx context.Context) ([]models.Product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status %d", ErrUnavailable, resp.StatusCode)
	}

	var products []models.Product
	if err := json.NewDecoder(resp.Body).Decode(&products); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return products, nil
}
