package housekeeping_test

import (
	"context"
	"errors"
	"io"
	"log"
	"testing"
	"time"

	"github.com/vetstoria/k9facts/cmd/loops/hook"
	"github.com/vetstoria/k9facts/cmd/loops/tasks/housekeeping"
	"github.com/vetstoria/k9facts/pkg/db/mocks"
)

func nullLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func TestTask_PurgesExpiredFacts(t *testing.T) {
	retention := 720 * time.Hour

	facts := mocks.NewFactInterface()
	facts.Impl.Purge = func(context.Context, time.Time) (int, error) {
		return 5, nil
	}

	afterReports := []housekeeping.Report{}
	h := hook.Func[housekeeping.Report]{
		AfterFn: func(r housekeeping.Report) error {
			afterReports = append(afterReports, r)
			return nil
		},
	}

	testee := housekeeping.Task(nullLogger(), facts, retention, h)

	before := time.Now().Add(-retention)
	report, ok, err := testee(context.Background(), housekeeping.Report{Total: 2})
	after := time.Now().Add(-retention)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Error("the cycle should report a change")
	}

	expected := housekeeping.Report{Purged: 5, Total: 7}
	if report != expected {
		t.Errorf("unexpected report: want %+v, got %+v", expected, report)
	}

	if facts.Calls.Purge.Times() != 1 {
		t.Fatalf("Purge should be called once, but %d times", facts.Calls.Purge.Times())
	}
	deadline := facts.Calls.Purge[0].Deadline
	if deadline.Before(before) || deadline.After(after) {
		t.Errorf("unexpected deadline: %s (not in [%s, %s])", deadline, before, after)
	}

	if len(afterReports) != 1 || afterReports[0] != expected {
		t.Errorf("unexpected after hook payloads: %+v", afterReports)
	}
}

func TestTask_NothingToPurge(t *testing.T) {
	facts := mocks.NewFactInterface()
	facts.Impl.Purge = func(context.Context, time.Time) (int, error) {
		return 0, nil
	}

	testee := housekeeping.Task(nullLogger(), facts, time.Hour, hook.None[housekeeping.Report]{})

	report, ok, err := testee(context.Background(), housekeeping.Seed())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("the cycle should not report a change")
	}
	if report != (housekeeping.Report{}) {
		t.Errorf("unexpected report: %+v", report)
	}
}

func TestTask_DatabaseFailure(t *testing.T) {
	expectedErr := errors.New("fake error")

	facts := mocks.NewFactInterface()
	facts.Impl.Purge = func(context.Context, time.Time) (int, error) {
		return 0, expectedErr
	}

	testee := housekeeping.Task(nullLogger(), facts, time.Hour, hook.None[housekeeping.Report]{})

	_, _, err := testee(context.Background(), housekeeping.Seed())
	if !errors.Is(err, expectedErr) {
		t.Errorf("unexpected error: want %v, got %v", expectedErr, err)
	}
}

func TestTask_BeforeHookRefusal(t *testing.T) {
	facts := mocks.NewFactInterface()

	h := hook.Func[housekeeping.Report]{
		BeforeFn: func(housekeeping.Report) error {
			return errors.New("fake error")
		},
	}

	testee := housekeeping.Task(nullLogger(), facts, time.Hour, h)

	_, ok, err := testee(context.Background(), housekeeping.Seed())
	if err != nil {
		t.Fatalf("the loop should go on, but got error: %v", err)
	}
	if ok {
		t.Error("the cycle should not report a change")
	}
	if facts.Calls.Purge.Times() != 0 {
		t.Errorf("Purge should not be called: %d times", facts.Calls.Purge.Times())
	}
}
