package db

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var ErrUnknownRunStatus = errors.New("unknown run status")

// RunStatus is the lifecycle state of an ingest run.
type RunStatus string

var (
	RunRunning RunStatus = "running"
	RunDone    RunStatus = "done"
	RunFailed  RunStatus = "failed"
)

func (s RunStatus) String() string {
	return string(s)
}

func AsRunStatus(s string) (RunStatus, error) {
	switch RunStatus(s) {
	case RunRunning:
		return RunRunning, nil
	case RunDone:
		return RunDone, nil
	case RunFailed:
		return RunFailed, nil
	default:
		return RunStatus(s), fmt.Errorf("%w: %s", ErrUnknownRunStatus, s)
	}
}

// IngestRun is one execution of the facts pipeline.
type IngestRun struct {
	RunId      string
	Status     RunStatus
	StartedAt  time.Time
	FinishedAt *time.Time

	// how many raw facts were pulled from the source.
	Pulled int

	Stats SyncStats

	// message of the error which made the run failed. empty otherwise.
	Error string
}

func (r IngestRun) Equal(other IngestRun) bool {
	if (r.FinishedAt == nil) != (other.FinishedAt == nil) {
		return false
	}
	if r.FinishedAt != nil && !r.FinishedAt.Equal(*other.FinishedAt) {
		return false
	}
	return r.RunId == other.RunId &&
		r.Status == other.Status &&
		r.StartedAt.Equal(other.StartedAt) &&
		r.Pulled == other.Pulled &&
		r.Stats == other.Stats &&
		r.Error == other.Error
}

// RunExit is the terminal report of an ingest run.
type RunExit struct {
	Status RunStatus
	Pulled int
	Stats  SyncStats

	// set when Status is RunFailed.
	Error string
}

type RunFindQuery struct {
	// when not nil, runs in the status only.
	Status *RunStatus

	// when not nil, runs started at or after this time only.
	Since *time.Time
}

type RunInterface interface {
	// NewRun records the start of an ingest run.
	//
	// Returns
	//
	// - string: id of the new run
	//
	// - error
	NewRun(context.Context) (string, error)

	// Finish records the end of the run identified by runId.
	//
	// Returns ErrMissing (wrapped) when no running run has the id.
	Finish(ctx context.Context, runId string, exit RunExit) error

	// Find retrieves ids of runs matching query, newest first.
	Find(context.Context, RunFindQuery) ([]string, error)

	// Get retrieves runs identified by runIds.
	//
	// Ids which are not found are simply absent from the result.
	Get(ctx context.Context, runIds []string) (map[string]IngestRun, error)
}
