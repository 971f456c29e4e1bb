package recurring_test

import (
	"errors"
	"testing"
	"time"

	"github.com/vetstoria/k9facts/cmd/loops/recurring"
	"github.com/vetstoria/k9facts/pkg/loop"
)

func TestParsePolicy(t *testing.T) {
	t.Run(`"forever" is parsed as Forever(0)`, func(t *testing.T) {
		p, err := recurring.ParsePolicy("forever")
		if err != nil {
			t.Fatal(err)
		}
		if p.String() != recurring.Forever(0).String() {
			t.Errorf("unexpected policy: %s", p)
		}
	})

	t.Run(`"forever:30s" is parsed as Forever(30s)`, func(t *testing.T) {
		p, err := recurring.ParsePolicy("forever:30s")
		if err != nil {
			t.Fatal(err)
		}
		if p.String() != recurring.Forever(30*time.Second).String() {
			t.Errorf("unexpected policy: %s", p)
		}
	})

	t.Run(`"forever:banana" is not parsed`, func(t *testing.T) {
		if _, err := recurring.ParsePolicy("forever:banana"); err == nil {
			t.Error("no error caused, unexpectedly")
		}
	})

	t.Run(`"backlog" is parsed as Backlog`, func(t *testing.T) {
		p, err := recurring.ParsePolicy("backlog")
		if err != nil {
			t.Fatal(err)
		}
		if p.String() != recurring.Backlog().String() {
			t.Errorf("unexpected policy: %s", p)
		}
	})

	t.Run(`"backlog:30s" is not parsed`, func(t *testing.T) {
		if _, err := recurring.ParsePolicy("backlog:30s"); err == nil {
			t.Error("no error caused, unexpectedly")
		}
	})

	t.Run(`"sometimes" is not parsed`, func(t *testing.T) {
		if _, err := recurring.ParsePolicy("sometimes"); err == nil {
			t.Error("no error caused, unexpectedly")
		}
	})
}

func TestPolicy(t *testing.T) {
	t.Run("Forever continues immediately when updated", func(t *testing.T) {
		next := recurring.Forever(30*time.Second).Next(true, nil)
		if !next.Equal(loop.Continue(0)) {
			t.Errorf("unexpected next: %v", next)
		}
	})

	t.Run("Forever continues with cooldown when not updated", func(t *testing.T) {
		next := recurring.Forever(30*time.Second).Next(false, nil)
		if !next.Equal(loop.Continue(30 * time.Second)) {
			t.Errorf("unexpected next: %v", next)
		}
	})

	t.Run("Backlog breaks when not updated", func(t *testing.T) {
		next := recurring.Backlog().Next(false, nil)
		if !next.Equal(loop.Break(nil)) {
			t.Errorf("unexpected next: %v", next)
		}
	})

	t.Run("Backlog continues when updated", func(t *testing.T) {
		next := recurring.Backlog().Next(true, nil)
		if !next.Equal(loop.Continue(0)) {
			t.Errorf("unexpected next: %v", next)
		}
	})

	t.Run("UntilError breaks with the error", func(t *testing.T) {
		expected := errors.New("fake error")
		next := recurring.UntilError(recurring.Forever(0)).Next(true, expected)
		if !next.Equal(loop.Break(expected)) {
			t.Errorf("unexpected next: %v", next)
		}
	})

	t.Run("UntilError delegates when no error", func(t *testing.T) {
		next := recurring.UntilError(recurring.Backlog()).Next(false, nil)
		if !next.Equal(loop.Break(nil)) {
			t.Errorf("unexpected next: %v", next)
		}
	})
}
