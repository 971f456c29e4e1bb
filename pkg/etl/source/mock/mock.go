package mock

import (
	"context"
	"errors"

	"github.com/vetstoria/k9facts/pkg/etl/source"
)

type Client struct {
	Impl struct {
		Fetch func(ctx context.Context) ([]source.RawFact, error)
	}

	Calls struct {
		Fetch int
	}
}

var _ source.Client = &Client{}

func New() *Client {
	return &Client{}
}

func (m *Client) Fetch(ctx context.Context) ([]source.RawFact, error) {
	m.Calls.Fetch += 1
	if m.Impl.Fetch == nil {
		return nil, errors.New("[MOCK] Fetch is not implemented")
	}
	return m.Impl.Fetch(ctx)
}
