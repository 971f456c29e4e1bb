package mocks

import (
	"context"
	"errors"
)

type SchemaInterface struct {
	Impl struct {
		Version func(context.Context) (int, error)
		Upgrade func(context.Context) error
	}
}

func NewSchemaInterface() *SchemaInterface {
	return &SchemaInterface{}
}

func (si *SchemaInterface) Version(ctx context.Context) (int, error) {
	if si.Impl.Version == nil {
		return 0, errors.New("[MOCK] not implemented")
	}
	return si.Impl.Version(ctx)
}

func (si *SchemaInterface) Upgrade(ctx context.Context) error {
	if si.Impl.Upgrade == nil {
		return errors.New("[MOCK] not implemented")
	}
	return si.Impl.Upgrade(ctx)
}

func (si *SchemaInterface) Context(ctx context.Context) (context.Context, context.CancelFunc) {
	return ctx, func() {}
}
