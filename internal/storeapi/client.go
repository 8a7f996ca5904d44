package storeapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/acewig/storefront/pkg/config"
	pkgerrors "github.com/acewig/storefront/pkg/errors"
	"github.com/acewig/storefront/pkg/logger"
)

var errLoggerRequired = errors.New("storefront logger is required")

// Client is the typed wrapper around the hosted storefront API. It owns error
// classification; callers never see raw HTTP statuses or bodies.
type Client struct {
	httpClient *http.Client
	baseURL    string
	orgSlug    string
	logger     *logger.Logger
}

// NewClient validates the remote store configuration and builds the wrapper.
func NewClient(cfg config.RemoteStoreConfig, logg *logger.Logger) (*Client, error) {
	if logg == nil {
		return nil, errLoggerRequired
	}
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		return nil, errors.New("storefront base url is required")
	}
	orgSlug := strings.TrimSpace(cfg.OrgSlug)
	if orgSlug == "" {
		return nil, errors.New("storefront org slug is required")
	}
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    baseURL,
		orgSlug:    orgSlug,
		logger:     logg,
	}, nil
}

// ListProducts fetches one page of the filtered product listing.
func (c *Client) ListProducts(ctx context.Context, filters ListFilters, cursor string) (*ProductPage, error) {
	query := url.Values{}
	if filters.Limit > 0 {
		query.Set("limit", strconv.Itoa(filters.Limit))
	}
	if cursor != "" {
		query.Set("cursor", cursor)
	}
	if filters.MinPrice > 0 {
		query.Set("minPrice", strconv.FormatInt(filters.MinPrice, 10))
	}
	if filters.MaxPrice > 0 {
		query.Set("maxPrice", strconv.FormatInt(filters.MaxPrice, 10))
	}
	if filters.InStockOnly {
		query.Set("inStockOnly", "true")
	}
	if filters.CategorySlug != "" {
		query.Set("categorySlug", filters.CategorySlug)
	}

	var page ProductPage
	if err := c.get(ctx, "list_products", "/products", query, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// SearchProducts runs a bounded free-text product search.
func (c *Client) SearchProducts(ctx context.Context, q string, limit int) ([]Product, error) {
	query := url.Values{"q": {q}, "limit": {strconv.Itoa(limit)}}
	var results []Product
	if err := c.get(ctx, "search_products", "/products/search", query, &results); err != nil {
		return nil, err
	}
	return results, nil
}

// ProductBySlug fetches full product detail.
func (c *Client) ProductBySlug(ctx context.Context, slug string) (*Product, error) {
	var product Product
	if err := c.get(ctx, "product_by_slug", "/products/"+url.PathEscape(slug), nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// RelatedProducts fetches products related to the given slug.
func (c *Client) RelatedProducts(ctx context.Context, slug string, limit int) ([]Product, error) {
	query := url.Values{"limit": {strconv.Itoa(limit)}}
	var results []Product
	if err := c.get(ctx, "related_products", "/products/"+url.PathEscape(slug)+"/related", query, &results); err != nil {
		return nil, err
	}
	return results, nil
}

// ListCategories fetches the flat category list.
func (c *Client) ListCategories(ctx context.Context) ([]Category, error) {
	var categories []Category
	if err := c.get(ctx, "list_categories", "/categories", nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// CategoryBySlug fetches a single category.
func (c *Client) CategoryBySlug(ctx context.Context, slug string) (*Category, error) {
	var category Category
	if err := c.get(ctx, "category_by_slug", "/categories/"+url.PathEscape(slug), nil, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

// CategoryProducts fetches products belonging to a category.
func (c *Client) CategoryProducts(ctx context.Context, slug string, limit int) ([]Product, error) {
	query := url.Values{"limit": {strconv.Itoa(limit)}}
	var results []Product
	if err := c.get(ctx, "category_products", "/categories/"+url.PathEscape(slug)+"/products", query, &results); err != nil {
		return nil, err
	}
	return results, nil
}

// Cart fetches the session's cart. A 404 means no cart exists yet and is
// reported as (nil, nil), never as an error.
func (c *Client) Cart(ctx context.Context, sessionID string) (*Cart, error) {
	query := url.Values{"sessionId": {sessionID}}
	var cart Cart
	err := c.get(ctx, "get_cart", "/cart", query, &cart)
	if err != nil {
		if pkgerrors.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &cart, nil
}

// AddCartItem adds a variant to the session's cart.
func (c *Client) AddCartItem(ctx context.Context, sessionID, productID, variantID string, quantity int) (bool, error) {
	body := addItemRequest{
		SessionID: sessionID,
		ProductID: productID,
		VariantID: variantID,
		Quantity:  quantity,
	}
	var resp mutationResponse
	if err := c.send(ctx, "add_cart_item", http.MethodPost, "/cart/items", nil, body, &resp); err != nil {
		return false, err
	}
	return resp.Success, nil
}

// UpdateCartItem changes a line's quantity.
func (c *Client) UpdateCartItem(ctx context.Context, cartID, variantID string, quantity int) (bool, error) {
	body := updateItemRequest{CartID: cartID, Quantity: quantity}
	var resp mutationResponse
	if err := c.send(ctx, "update_cart_item", http.MethodPatch, "/cart/items/"+url.PathEscape(variantID), nil, body, &resp); err != nil {
		return false, err
	}
	return resp.Success, nil
}

// RemoveCartItem drops a line from the cart.
func (c *Client) RemoveCartItem(ctx context.Context, cartID, variantID string) (bool, error) {
	query := url.Values{"cartId": {cartID}}
	var resp mutationResponse
	if err := c.send(ctx, "remove_cart_item", http.MethodDelete, "/cart/items/"+url.PathEscape(variantID), query, nil, &resp); err != nil {
		return false, err
	}
	return resp.Success, nil
}

// Checkout submits the cart with the customer's details. The server empties
// the cart as a side effect; callers must refetch it afterwards.
func (c *Client) Checkout(ctx context.Context, cartID string, info CustomerInfo) (*CheckoutResult, error) {
	body := checkoutRequest{CartID: cartID, CustomerInfo: info}
	var result CheckoutResult
	if err := c.send(ctx, "checkout", http.MethodPost, "/checkout", nil, body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// OrderStatus looks up an order by number, gated on a matching email. Any
// mismatch collapses to not-found so callers cannot tell which part was wrong.
func (c *Client) OrderStatus(ctx context.Context, orderNumber, email string) (*Order, error) {
	query := url.Values{"email": {email}}
	var order Order
	err := c.get(ctx, "order_status", "/orders/"+url.PathEscape(orderNumber), query, &order)
	if err != nil {
		typed := pkgerrors.As(err)
		if typed != nil && typed.Code() == pkgerrors.CodeUpstream {
			if status, ok := upstreamStatus(typed); ok && (status == http.StatusUnauthorized || status == http.StatusForbidden) {
				return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
			}
		}
		if pkgerrors.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, err
	}
	return &order, nil
}

func (c *Client) get(ctx context.Context, op, path string, query url.Values, dest any) error {
	return c.send(ctx, op, http.MethodGet, path, query, nil, dest)
}

func (c *Client) send(ctx context.Context, op, method, path string, query url.Values, body, dest any) error {
	endpoint := c.endpoint(path, query)

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode request body")
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build request")
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.log(ctx, "request", op, map[string]any{"method": method, "path": path})

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log(ctx, "error", op, map[string]any{"error": err.Error()})
		return pkgerrors.Wrap(pkgerrors.CodeTransport, err, fmt.Sprintf("store %s failed", op))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := c.classify(resp, op)
		c.log(ctx, "error", op, map[string]any{"status": resp.StatusCode, "error": apiErr.Error()})
		return apiErr
	}

	if dest != nil {
		if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
			c.log(ctx, "error", op, map[string]any{"error": err.Error()})
			return pkgerrors.Wrap(pkgerrors.CodeUpstream, err, fmt.Sprintf("decode %s response", op))
		}
	}

	c.log(ctx, "response", op, map[string]any{"status": resp.StatusCode})
	return nil
}

// classify maps a non-2xx response to a typed error. A malformed error body
// must not fail the caller with a decode error, so it falls back to a generic
// message.
func (c *Client) classify(resp *http.Response, op string) *pkgerrors.Error {
	message := fmt.Sprintf("HTTP %d", resp.StatusCode)
	var payload errorResponse
	if raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16)); err == nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, &payload); err == nil && payload.Error != "" {
			message = payload.Error
		}
	}

	if resp.StatusCode == http.StatusNotFound {
		return pkgerrors.New(pkgerrors.CodeNotFound, message)
	}
	return pkgerrors.New(pkgerrors.CodeUpstream, fmt.Sprintf("store %s failed: %s", op, message)).WithDetails(map[string]any{
		"status": resp.StatusCode,
		"code":   payload.Code,
	})
}

func upstreamStatus(err *pkgerrors.Error) (int, bool) {
	details, ok := err.Details().(map[string]any)
	if !ok {
		return 0, false
	}
	status, ok := details["status"].(int)
	return status, ok
}

func (c *Client) endpoint(path string, query url.Values) string {
	endpoint := fmt.Sprintf("%s/api/store/%s%s", c.baseURL, c.orgSlug, path)
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}
	return endpoint
}

func (c *Client) log(ctx context.Context, phase, op string, fields map[string]any) {
	if c == nil || c.logger == nil {
		return
	}
	logFields := map[string]any{
		"operation": op,
		"phase":     phase,
	}
	for k, v := range fields {
		logFields[k] = v
	}
	ctx = c.logger.WithFields(ctx, logFields)
	switch phase {
	case "error":
		c.logger.Warn(ctx, fmt.Sprintf("store %s failed", op))
	default:
		c.logger.Info(ctx, fmt.Sprintf("store %s", phase))
	}
}
