package mocks

import (
	"context"
	"errors"

	kdb "github.com/vetstoria/k9facts/pkg/db"
)

type RunInterface struct {
	Impl struct {
		NewRun func(context.Context) (string, error)
		Finish func(context.Context, string, kdb.RunExit) error
		Find   func(context.Context, kdb.RunFindQuery) ([]string, error)
		Get    func(context.Context, []string) (map[string]kdb.IngestRun, error)
	}
	Calls struct {
		NewRun CallLog[struct{}]
		Finish CallLog[struct {
			RunId string
			Exit  kdb.RunExit
		}]
		Find CallLog[kdb.RunFindQuery]
		Get  CallLog[struct{ RunIds []string }]
	}
}

func NewRunInterface() *RunInterface {
	return &RunInterface{}
}

var _ kdb.RunInterface = &RunInterface{}

func (ri *RunInterface) NewRun(ctx context.Context) (string, error) {
	ri.Calls.NewRun = append(ri.Calls.NewRun, struct{}{})
	if ri.Impl.NewRun != nil {
		return ri.Impl.NewRun(ctx)
	}
	panic(errors.New("it should not be called"))
}

func (ri *RunInterface) Finish(ctx context.Context, runId string, exit kdb.RunExit) error {
	ri.Calls.Finish = append(ri.Calls.Finish, struct {
		RunId string
		Exit  kdb.RunExit
	}{
		RunId: runId, Exit: exit,
	})
	if ri.Impl.Finish != nil {
		return ri.Impl.Finish(ctx, runId, exit)
	}
	panic(errors.New("it should not be called"))
}

func (ri *RunInterface) Find(ctx context.Context, query kdb.RunFindQuery) ([]string, error) {
	ri.Calls.Find = append(ri.Calls.Find, query)
	if ri.Impl.Find != nil {
		return ri.Impl.Find(ctx, query)
	}
	panic(errors.New("it should not be called"))
}

func (ri *RunInterface) Get(ctx context.Context, runIds []string) (map[string]kdb.IngestRun, error) {
	ri.Calls.Get = append(ri.Calls.Get, struct{ RunIds []string }{RunIds: runIds})
	if ri.Impl.Get != nil {
		return ri.Impl.Get(ctx, runIds)
	}
	panic(errors.New("it should not be called"))
}
