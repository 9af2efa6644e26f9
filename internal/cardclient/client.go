package cardclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jonanatree/cardcheck/validator/models"
)

// Client talks to a running cardcheck server.
type Client struct {
	Base string
	HTTP *http.Client
}

func New(base string, hc *http.Client) *Client {
	if hc == nil {
		hc = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{Base: strings.TrimRight(base, "/"), HTTP: hc}
}

func (c *Client) Validate(ctx context.Context, number string) (models.NumberResult, error) {
	var out models.NumberResult
	err := c.do(ctx, http.MethodPost, "/cards/validate", models.ValidateRequest{Number: number}, &out)
	if err != nil {
		return models.NumberResult{}, fmt.Errorf("validate: %w", err)
	}
	return out, nil
}

func (c *Client) Checkout(ctx context.Context, req models.CheckoutRequest) (models.CheckoutResult, error) {
	var out models.CheckoutResult
	if err := c.do(ctx, http.MethodPost, "/cards/checkout", req, &out); err != nil {
		return models.CheckoutResult{}, fmt.Errorf("checkout: %w", err)
	}
	return out, nil
}

func (c *Client) Brands(ctx context.Context) ([]models.Brand, error) {
	var out []models.Brand
	if err := c.do(ctx, http.MethodGet, "/cards/brands", nil, &out); err != nil {
		return nil, fmt.Errorf("brands: %w", err)
	}
	return out, nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	u, err := url.Parse(c.Base + path)
	if err != nil {
		return fmt.Errorf("parse base: %w", err)
	}

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("status=%d body=%s", resp.StatusCode, strings.TrimSpace(string(b)))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
