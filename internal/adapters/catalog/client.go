// Package catalog is the HTTP client for the remote product catalog used by the invoice form.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/SscSPs/invoice_form_app/internal/apperrors"
	"github.com/SscSPs/invoice_form_app/internal/core/domain"
	portssvc "github.com/SscSPs/invoice_form_app/internal/core/ports/services"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/shopspring/decimal"
)

const (
	DefaultMinTermLength = 1
	DefaultCacheSize     = 512
	DefaultTimeout       = 10 * time.Second

	maxResponseBytes = 1 << 20
)

// Client looks up and searches products over HTTP.
//
//	GET <base>/{productID}            -> {"name": "...", "price": "12.50"}
//	GET <base>/autocomplete?q=<term>  -> {"results": [{"id": "...", "name": "...", "price": "...", "text": "..."}]}
type Client struct {
	baseURL       string
	httpClient    *http.Client
	apiToken      string
	minTermLength int
	cacheSize     int
	cache         *lru.Cache[string, []domain.Product]
}

// Option is a functional option for configuring the client
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithAPIToken sends token as a bearer credential on every request.
func WithAPIToken(token string) Option {
	return func(c *Client) {
		c.apiToken = token
	}
}

// WithMinTermLength sets how many characters a search term needs before the catalog is queried.
func WithMinTermLength(n int) Option {
	return func(c *Client) {
		c.minTermLength = n
	}
}

// WithCacheSize bounds the number of search terms whose results are kept.
func WithCacheSize(n int) Option {
	return func(c *Client) {
		c.cacheSize = n
	}
}

// NewClient creates a catalog client rooted at baseURL.
func NewClient(baseURL string, options ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid catalog base URL %q: %w", baseURL, apperrors.ErrValidation)
	}

	c := &Client{
		baseURL:       strings.TrimRight(baseURL, "/"),
		httpClient:    &http.Client{Timeout: DefaultTimeout},
		minTermLength: DefaultMinTermLength,
		cacheSize:     DefaultCacheSize,
	}
	for _, option := range options {
		option(c)
	}

	c.cache, err = lru.New[string, []domain.Product](c.cacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create search cache: %w", err)
	}
	return c, nil
}

// Ensure implementation matches interface
var _ portssvc.ProductCatalogClient = (*Client)(nil)

type lookupResponse struct {
	Name  string              `json:"name"`
	Price decimal.NullDecimal `json:"price"`
}

type searchResponse struct {
	Results []searchResult `json:"results"`
}

type searchResult struct {
	ID    flexibleID          `json:"id"`
	Name  string              `json:"name"`
	Text  string              `json:"text"`
	Price decimal.NullDecimal `json:"price"`
}

// flexibleID accepts both "12" and 12.
type flexibleID string

func (f *flexibleID) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*f = flexibleID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("product id must be a string or number: %w", err)
	}
	*f = flexibleID(n.String())
	return nil
}

// Lookup fetches a product's canonical name and unit price. Any transport, status or decoding
// problem, and a response without a price, is reported as apperrors.ErrLookupFailed.
func (c *Client) Lookup(ctx context.Context, productID string) (domain.Product, error) {
	if productID == "" {
		return domain.Product{}, fmt.Errorf("empty product id: %w", apperrors.ErrLookupFailed)
	}

	var body lookupResponse
	if err := c.getJSON(ctx, c.baseURL+"/"+url.PathEscape(productID), &body); err != nil {
		return domain.Product{}, fmt.Errorf("lookup product %s: %w", productID, err)
	}
	if !body.Price.Valid {
		return domain.Product{}, fmt.Errorf("lookup product %s: response has no price: %w", productID, apperrors.ErrLookupFailed)
	}

	return domain.Product{
		ID:    productID,
		Name:  body.Name,
		Price: body.Price.Decimal,
	}, nil
}

// Search returns catalog products matching term. Terms shorter than the minimum length return
// no results without querying. Successful results are cached per term.
func (c *Client) Search(ctx context.Context, term string) ([]domain.Product, error) {
	term = strings.TrimSpace(term)
	if utf8.RuneCountInString(term) < c.minTermLength {
		return []domain.Product{}, nil
	}
	if cached, ok := c.cache.Get(term); ok {
		return cached, nil
	}

	var body searchResponse
	if err := c.getJSON(ctx, c.baseURL+"/autocomplete?q="+url.QueryEscape(term), &body); err != nil {
		return nil, fmt.Errorf("search products %q: %w", term, err)
	}

	products := make([]domain.Product, 0, len(body.Results))
	for _, r := range body.Results {
		name := r.Name
		if name == "" {
			name = r.Text
		}
		products = append(products, domain.Product{
			ID:    string(r.ID),
			Name:  name,
			Price: r.Price.Decimal,
		})
	}

	c.cache.Add(term, products)
	return products, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return errors.Join(apperrors.ErrLookupFailed, err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Join(apperrors.ErrLookupFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))
		return fmt.Errorf("catalog responded with status %d: %w", resp.StatusCode, apperrors.ErrLookupFailed)
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(out); err != nil {
		return errors.Join(apperrors.ErrLookupFailed, fmt.Errorf("malformed catalog response: %w", err))
	}
	return nil
}
