// Package nasa is a thin client for the NASA APOD (astronomy picture of the
// day) endpoint.
package nasa

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

type Config struct {
	BaseURL string        `split_words:"true" default:"https://api.nasa.gov"`
	APIKey  string        `split_words:"true" default:"DEMO_KEY"`
	Timeout time.Duration `split_words:"true" default:"10s"`
}

// Picture is the APOD response, trimmed to the fields we relay.
type Picture struct {
	Date        string `json:"date"`
	Title       string `json:"title"`
	Explanation string `json:"explanation"`
	URL         string `json:"url"`
	MediaType   string `json:"media_type"`
}

type Client struct {
	http   *resty.Client
	apiKey string
}

func NewClient(cfg Config) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		return nil, errors.New("nasa base url is required")
	}
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("invalid nasa base url: %w", err)
	}

	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, errors.New("nasa api key is required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Client{
		http: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(timeout),
		apiKey: apiKey,
	}, nil
}

func MustNew(cfg Config) *Client {
	client, err := NewClient(cfg)
	if err != nil {
		panic(err)
	}
	return client
}

// PictureOfTheDay fetches today's picture metadata.
func (c *Client) PictureOfTheDay(ctx context.Context) (Picture, error) {
	var picture Picture
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("api_key", c.apiKey).
		SetResult(&picture).
		Get("/planetary/apod")
	if err != nil {
		return Picture{}, fmt.Errorf("apod request: %w", err)
	}
	if resp.IsError() {
		return Picture{}, fmt.Errorf("apod status=%d body=%s", resp.StatusCode(), resp.String())
	}

	return picture, nil
}
