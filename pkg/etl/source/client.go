package source

import (
	"context"
	"net/http"
	"time"
)

// timeout for pulling the source, following the upstream feed contract.
const DefaultTimeout = 10 * time.Second

// RawFact is one element of the source feed: a JSON object
// holding an uncleaned fact text.
type RawFact struct {
	Fact string `json:"fact"`
}

type Client interface {
	// Fetch pulls the facts feed.
	//
	// Args
	//
	// - context.Context
	//
	// Returns
	//
	// - []RawFact: the feed, in source order.
	//
	// - error: network errors, or ErrUnexpectedResponse (wrapped) when
	// the source answers with a non-2xx status or a non-JSON body.
	Fetch(ctx context.Context) ([]RawFact, error)
}

type client struct {
	httpclient *http.Client
	url        string
}

type Option func(*client) *client

// WithTimeout overrides DefaultTimeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *client) *client {
		c.httpclient.Timeout = timeout
		return c
	}
}

// New creates a Client pulling the feed at url.
func New(url string, options ...Option) Client {
	c := &client{
		httpclient: &http.Client{Timeout: DefaultTimeout},
		url:        url,
	}
	for _, option := range options {
		c = option(c)
	}
	return c
}

func (c *client) Fetch(ctx context.Context) ([]RawFact, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpclient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var facts []RawFact
	if err := unmarshalJsonResponse(
		resp, &facts,
		MessageFor{
			Status4xx: "source rejected the request",
			Status5xx: "source is in trouble",
		},
	); err != nil {
		return nil, err
	}
	return facts, nil
}
