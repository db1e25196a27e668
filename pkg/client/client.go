// Package client is the Go consumer of the recipe catalog API. It mirrors
// the server's query contract: Client is a thin typed HTTP wrapper and
// ListState tracks the filter/sort/page parameters a listing UI edits.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/plateful/recipebook/internal/model"
	"github.com/plateful/recipebook/internal/types"
)

const defaultTimeout = 5 * time.Second

// APIError carries a non-2xx response. Errors is populated for validation
// failures, field by field.
type APIError struct {
	StatusCode int               `json:"-"`
	Message    string            `json:"message"`
	Err        string            `json:"error"`
	Errors     types.FieldErrors `json:"errors"`
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.Err
	}
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	return fmt.Sprintf("api: %d %s", e.StatusCode, msg)
}

// IsNotFound reports whether err is a 404 from the API.
func IsNotFound(err error) bool {
	apiErr, ok := err.(*APIError)
	return ok && apiErr.StatusCode == http.StatusNotFound
}

// Client calls the recipe catalog API.
type Client struct {
	baseURL string
	httpc   *http.Client
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client, mainly for tests.
func WithHTTPClient(httpc *http.Client) Option {
	return func(c *Client) { c.httpc = httpc }
}

// New creates a client for the API rooted at baseURL (e.g.
// "http://localhost:8080/api/v1"). Requests time out after five seconds;
// the caller's context can shorten that further.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		httpc:   &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// List fetches one page of recipes for the given query.
func (c *Client) List(ctx context.Context, q types.ListQuery) (*types.Page, error) {
	endpoint := c.baseURL + "/recipes"
	if params := q.Values().Encode(); params != "" {
		endpoint += "?" + params
	}
	var page types.Page
	if err := c.do(ctx, http.MethodGet, endpoint, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Get fetches a single recipe by id.
func (c *Client) Get(ctx context.Context, id uint) (*model.Recipe, error) {
	var recipe model.Recipe
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("%s/recipes/%d", c.baseURL, id), nil, &recipe)
	if err != nil {
		return nil, err
	}
	return &recipe, nil
}

// Create submits a new recipe.
func (c *Client) Create(ctx context.Context, req types.CreateRecipeRequest) (*model.Recipe, error) {
	var recipe model.Recipe
	if err := c.do(ctx, http.MethodPost, c.baseURL+"/recipes", req, &recipe); err != nil {
		return nil, err
	}
	return &recipe, nil
}

// Update applies a partial change to an existing recipe and returns the
// merged record.
func (c *Client) Update(ctx context.Context, id uint, req types.UpdateRecipeRequest) (*model.Recipe, error) {
	var recipe model.Recipe
	err := c.do(ctx, http.MethodPut, fmt.Sprintf("%s/recipes/%d", c.baseURL, id), req, &recipe)
	if err != nil {
		return nil, err
	}
	return &recipe, nil
}

// Delete removes a recipe.
func (c *Client) Delete(ctx context.Context, id uint) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("%s/recipes/%d", c.baseURL, id), nil, nil)
}

// Categories fetches the distinct category values in use.
func (c *Client) Categories(ctx context.Context) ([]string, error) {
	var categories []string
	err := c.do(ctx, http.MethodGet, c.baseURL+"/recipes/categories", nil, &categories)
	if err != nil {
		return nil, err
	}
	return categories, nil
}

func (c *Client) do(ctx context.Context, method, endpoint string, body, out interface{}) error {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		_ = json.NewDecoder(resp.Body).Decode(apiErr)
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
