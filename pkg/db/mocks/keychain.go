package mocks

import (
	"context"
	"errors"
)

type KeychainInterface struct {
	Impl struct {
		Lock func(context.Context, string, func(context.Context) error) error
	}
	Calls struct {
		Lock CallLog[struct{ Name string }]
	}
}

func NewKeychainInterface() *KeychainInterface {
	return &KeychainInterface{}
}

func (ki *KeychainInterface) Lock(ctx context.Context, name string, criticalSection func(context.Context) error) error {
	ki.Calls.Lock = append(ki.Calls.Lock, struct{ Name string }{Name: name})
	if ki.Impl.Lock == nil {
		return errors.New("[MOCK] not implemented")
	}
	return ki.Impl.Lock(ctx, name, criticalSection)
}
