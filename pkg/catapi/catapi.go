// Package catapi is a thin client for TheCatAPI breed search.
package catapi

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

var ErrBreedNotFound = errors.New("breed not found")

type Config struct {
	BaseURL string        `split_words:"true" default:"https://api.thecatapi.com/v1"`
	APIKey  string        `split_words:"true"`
	Timeout time.Duration `split_words:"true" default:"10s"`
}

// Breed is one entry from /breeds/search.
type Breed struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Origin      string `json:"origin"`
	Temperament string `json:"temperament"`
	Description string `json:"description"`
}

type Client struct {
	http *resty.Client
}

func NewClient(cfg Config) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		return nil, errors.New("cat api base url is required")
	}
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("invalid cat api base url: %w", err)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	http := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout)

	// The breed endpoints work without a key, but a key lifts rate limits.
	if key := strings.TrimSpace(cfg.APIKey); key != "" {
		http.SetHeader("x-api-key", key)
	}

	return &Client{http: http}, nil
}

func MustNew(cfg Config) *Client {
	client, err := NewClient(cfg)
	if err != nil {
		panic(err)
	}
	return client
}

// Search returns the first breed matching query, or ErrBreedNotFound when the
// API returns no matches.
func (c *Client) Search(ctx context.Context, query string) (Breed, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return Breed{}, errors.New("breed query is empty")
	}

	var breeds []Breed
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("q", query).
		SetResult(&breeds).
		Get("/breeds/search")
	if err != nil {
		return Breed{}, fmt.Errorf("cat api request: %w", err)
	}
	if resp.IsError() {
		return Breed{}, fmt.Errorf("cat api status=%d body=%s", resp.StatusCode(), resp.String())
	}
	if len(breeds) == 0 {
		return Breed{}, fmt.Errorf("%w: %s", ErrBreedNotFound, query)
	}

	return breeds[0], nil
}
