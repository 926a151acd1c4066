// Package webui is a typed client for the Stable Diffusion WebUI REST API.
//
// Each call builds a Request for one Endpoint, sends the JSON body once,
// closes the request on every path and decodes the reply into the
// endpoint's response type.
package webui

import (
	"context"
	"net/http"
	"strings"

	"github.com/dmorgan81/sdbot/internal/log"
)

const DefaultServerURL = "http://127.0.0.1:7860"

type Client struct {
	baseURL string
	http    *http.Client
}

type Option func(*Client)

func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.http = client
	}
}

func NewClient(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultServerURL
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// NewRequest returns an unsent request for ep. The caller must Close it.
func (c *Client) NewRequest(ep Endpoint) (*Request, error) {
	return NewRequest(c.http, ep.URL(c.baseURL), ep.Method, ep.Headers)
}

func (c *Client) send(ctx context.Context, ep Endpoint, url string, body any) ([]byte, error) {
	log := log.FromContextOrDiscard(ctx).WithGroup("webui").With("endpoint", ep.Name, "url", url)

	req, err := NewRequest(c.http, url, ep.Method, ep.Headers)
	if err != nil {
		return nil, err
	}
	defer req.Close()

	var payload []byte
	if body != nil {
		if payload, err = EncodeBody(body); err != nil {
			return nil, err
		}
	}

	log.Debug("sending request", "bytes", len(payload))
	data, err := req.Send(ctx, payload)
	if err != nil {
		log.Warn("request failed", "error", err)
		return nil, err
	}
	log.Debug("received response", "bytes", len(data))
	return data, nil
}

func call[T any](ctx context.Context, c *Client, ep Endpoint, body any) (T, error) {
	data, err := c.send(ctx, ep, ep.URL(c.baseURL), body)
	if err != nil {
		var zero T
		return zero, err
	}
	return DecodeSingle[T](data)
}

func callList[T any](ctx context.Context, c *Client, ep Endpoint) ([]T, error) {
	data, err := c.send(ctx, ep, ep.URL(c.baseURL), nil)
	if err != nil {
		return nil, err
	}
	return DecodeList[T](data)
}
