package discount

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/shopstream/backend/internal/domain/basket"
	"github.com/shopstream/backend/internal/domain/shared"
)

// Client is an HTTP client for the discount service.
// Coupons are exchanged as JSON documents; a product without a coupon is
// reported as a zero-amount coupon so callers never branch on not-found.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// ClientOption is a functional option for Client
type ClientOption func(*Client)

// WithHTTPClient overrides the underlying HTTP client
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// NewClient creates a discount service client for the given base URL
func NewClient(baseURL string, logger *zap.Logger, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger: logger,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

func (c *Client) couponURL(productName string) string {
	return c.baseURL + "/api/v1/discounts/" + url.PathEscape(productName)
}

// GetDiscount returns the coupon for a product.
// An unknown product yields a zero-amount coupon.
func (c *Client) GetDiscount(ctx context.Context, productName string) (*basket.Coupon, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.couponURL(productName), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build discount request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("discount lookup failed: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		var coupon basket.Coupon
		if err := json.NewDecoder(resp.Body).Decode(&coupon); err != nil {
			return nil, fmt.Errorf("failed to decode coupon: %w", err)
		}
		return &coupon, nil
	case http.StatusNotFound:
		c.logger.Debug("no discount for product", zap.String("product_name", productName))
		return &basket.Coupon{ProductName: productName}, nil
	default:
		return nil, c.unexpectedStatus(resp)
	}
}

// CreateDiscount registers a new coupon with the discount service
func (c *Client) CreateDiscount(ctx context.Context, coupon *basket.Coupon) error {
	return c.send(ctx, http.MethodPost, c.baseURL+"/api/v1/discounts", coupon, http.StatusCreated)
}

// UpdateDiscount replaces the coupon for its product
func (c *Client) UpdateDiscount(ctx context.Context, coupon *basket.Coupon) error {
	return c.send(ctx, http.MethodPut, c.couponURL(coupon.ProductName), coupon, http.StatusOK)
}

// DeleteDiscount removes the coupon for a product
func (c *Client) DeleteDiscount(ctx context.Context, productName string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.couponURL(productName), nil)
	if err != nil {
		return fmt.Errorf("failed to build discount request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("discount delete failed: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusNoContent:
		return nil
	case http.StatusNotFound:
		return shared.ErrNotFound
	default:
		return c.unexpectedStatus(resp)
	}
}

func (c *Client) send(ctx context.Context, method, endpoint string, coupon *basket.Coupon, want int) error {
	body, err := json.Marshal(coupon)
	if err != nil {
		return fmt.Errorf("failed to marshal coupon: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build discount request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("discount request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != want {
		return c.unexpectedStatus(resp)
	}
	return nil
}

func (c *Client) unexpectedStatus(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	return fmt.Errorf("discount service returned %d: %s", resp.StatusCode, string(body))
}

// Ensure Client implements DiscountLookup
var _ basket.DiscountLookup = (*Client)(nil)
