package mocks

import (
	"context"
	"errors"
	"time"

	kdb "github.com/vetstoria/k9facts/pkg/db"
)

type FactInterface struct {
	Impl struct {
		GetLive    func(context.Context) ([]kdb.Fact, error)
		Find       func(context.Context, kdb.FactFindQuery) ([]kdb.Fact, error)
		Get        func(context.Context, int) (kdb.Fact, error)
		Sync       func(context.Context, kdb.SyncPlan) (kdb.SyncStats, error)
		SoftDelete func(context.Context, int) error
		Purge      func(context.Context, time.Time) (int, error)
	}
	Calls struct {
		GetLive    CallLog[struct{}]
		Find       CallLog[kdb.FactFindQuery]
		Get        CallLog[struct{ Id int }]
		Sync       CallLog[kdb.SyncPlan]
		SoftDelete CallLog[struct{ Id int }]
		Purge      CallLog[struct{ Deadline time.Time }]
	}
}

func NewFactInterface() *FactInterface {
	return &FactInterface{}
}

var _ kdb.FactInterface = &FactInterface{}

func (fi *FactInterface) GetLive(ctx context.Context) ([]kdb.Fact, error) {
	fi.Calls.GetLive = append(fi.Calls.GetLive, struct{}{})
	if fi.Impl.GetLive != nil {
		return fi.Impl.GetLive(ctx)
	}
	panic(errors.New("it should not be called"))
}

func (fi *FactInterface) Find(ctx context.Context, query kdb.FactFindQuery) ([]kdb.Fact, error) {
	fi.Calls.Find = append(fi.Calls.Find, query)
	if fi.Impl.Find != nil {
		return fi.Impl.Find(ctx, query)
	}
	panic(errors.New("it should not be called"))
}

func (fi *FactInterface) Get(ctx context.Context, id int) (kdb.Fact, error) {
	fi.Calls.Get = append(fi.Calls.Get, struct{ Id int }{Id: id})
	if fi.Impl.Get != nil {
		return fi.Impl.Get(ctx, id)
	}
	panic(errors.New("it should not be called"))
}

func (fi *FactInterface) Sync(ctx context.Context, plan kdb.SyncPlan) (kdb.SyncStats, error) {
	fi.Calls.Sync = append(fi.Calls.Sync, plan)
	if fi.Impl.Sync != nil {
		return fi.Impl.Sync(ctx, plan)
	}
	panic(errors.New("it should not be called"))
}

func (fi *FactInterface) SoftDelete(ctx context.Context, id int) error {
	fi.Calls.SoftDelete = append(fi.Calls.SoftDelete, struct{ Id int }{Id: id})
	if fi.Impl.SoftDelete != nil {
		return fi.Impl.SoftDelete(ctx, id)
	}
	panic(errors.New("it should not be called"))
}

func (fi *FactInterface) Purge(ctx context.Context, deadline time.Time) (int, error) {
	fi.Calls.Purge = append(fi.Calls.Purge, struct{ Deadline time.Time }{Deadline: deadline})
	if fi.Impl.Purge != nil {
		return fi.Impl.Purge(ctx, deadline)
	}
	panic(errors.New("it should not be called"))
}
