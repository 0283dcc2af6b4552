package infra

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// ProductInfo is the catalog's view of a product. Image order matters: the
// first entry is the primary image shown in cart and order responses.
type ProductInfo struct {
	ID     uint64   `json:"id"`
	Title  string   `json:"title"`
	Price  int64    `json:"price"`
	Images []string `json:"images"`
}

func (p *ProductInfo) PrimaryImage() string {
	if len(p.Images) > 0 {
		return p.Images[0]
	}
	return ""
}

type ProductClient struct {
	baseURL    string
	httpClient *http.Client
	attempts   int
}

func NewProductClient(baseURL string, timeout time.Duration) *ProductClient {
	return &ProductClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		attempts:   3,
	}
}

// GetProductByID resolves a product or returns (nil, nil) when the catalog
// does not know the id. Transport failures are retried a bounded number of
// times; the lookup is a read, so retrying is safe.
func (c *ProductClient) GetProductByID(ctx context.Context, id uint64) (*ProductInfo, error) {
	var lastErr error
	for attempt := 0; attempt < c.attempts; attempt++ {
		p, retryable, err := c.getProduct(ctx, id)
		if err == nil {
			return p, nil
		}
		lastErr = err
		if !retryable || ctx.Err() != nil {
			break
		}
	}
	return nil, lastErr
}

func (c *ProductClient) getProduct(ctx context.Context, id uint64) (*ProductInfo, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/products/%d", c.baseURL, id), nil)
	if err != nil {
		return nil, false, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, true, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, false, nil
	}

	if resp.StatusCode != http.StatusOK {
		return nil, resp.StatusCode >= 500, fmt.Errorf("product service returned status %d", resp.StatusCode)
	}

	var p ProductInfo
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		return nil, false, err
	}

	return &p, false, nil
}
