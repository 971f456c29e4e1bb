package db_test

import (
	"errors"
	"testing"

	kdb "github.com/vetstoria/k9facts/pkg/db"
)

func TestAsCategory(t *testing.T) {
	for _, s := range []string{"number_included", "number_excluded"} {
		t.Run("it accepts "+s, func(t *testing.T) {
			c, err := kdb.AsCategory(s)
			if err != nil {
				t.Fatal(err)
			}
			if c.String() != s {
				t.Errorf("unexpected category: %s", c)
			}
		})
	}

	t.Run("it rejects unknown expression", func(t *testing.T) {
		_, err := kdb.AsCategory("with_numbers")
		if !errors.Is(err, kdb.ErrUnknownCategory) {
			t.Errorf("unexpected error: %v", err)
		}
	})
}

func TestSyncPlanEmpty(t *testing.T) {
	t.Run("zero value is empty", func(t *testing.T) {
		if !(kdb.SyncPlan{}).Empty() {
			t.Error("zero value is not empty")
		}
	})
	t.Run("a plan with soft-deletes is not empty", func(t *testing.T) {
		p := kdb.SyncPlan{SoftDeletes: []int{1}}
		if p.Empty() {
			t.Error("plan is empty, unexpectedly")
		}
	})
}

func TestAsLoopType(t *testing.T) {
	t.Run("it accepts known loop types", func(t *testing.T) {
		for _, s := range []string{"ingest", "housekeeping"} {
			v, err := kdb.AsLoopType(s)
			if err != nil {
				t.Fatal(err)
			}
			if v.String() != s {
				t.Errorf("unexpected loop type: %s", v)
			}
		}
	})
	t.Run("it rejects unknown loop type", func(t *testing.T) {
		if _, err := kdb.AsLoopType("gc"); !errors.Is(err, kdb.ErrUnknownLoopType) {
			t.Errorf("unexpected error: %v", err)
		}
	})
}
