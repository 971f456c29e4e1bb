package loop_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/vetstoria/k9facts/pkg/loop"
)

func TestStart(t *testing.T) {
	t.Run("it repeats tasks until Break(nil)", func(t *testing.T) {
		actual, err := loop.Start(
			context.Background(), 0,
			func(_ context.Context, v int) (int, loop.Next) {
				v += 1
				if 10 <= v {
					return v, loop.Break(nil)
				}
				return v, loop.Continue(0)
			},
		)
		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
		if actual != 10 {
			t.Errorf("unexpected value: %d", actual)
		}
	})

	t.Run("it breaks with the error passed to Break", func(t *testing.T) {
		expectedErr := errors.New("fake error")
		actual, err := loop.Start(
			context.Background(), 0,
			func(_ context.Context, v int) (int, loop.Next) {
				if v == 3 {
					return v, loop.Break(expectedErr)
				}
				return v + 1, loop.Continue(0)
			},
		)
		if !errors.Is(err, expectedErr) {
			t.Errorf("unexpected error: %v", err)
		}
		if actual != 3 {
			t.Errorf("unexpected value: %d", actual)
		}
	})

	t.Run("it stops when context get be done, returning the last value", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		actual, err := loop.Start(
			ctx, 0,
			func(_ context.Context, v int) (int, loop.Next) {
				if 5 <= v {
					cancel()
					// long enough. the loop should notice ctx first.
					return v, loop.Continue(time.Hour)
				}
				return v + 1, loop.Continue(0)
			},
		)
		if !errors.Is(err, context.Canceled) {
			t.Errorf("unexpected error: %v", err)
		}
		if actual != 5 {
			t.Errorf("unexpected value: %d", actual)
		}
	})

	t.Run("when context is done before start, the task never runs", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		ran := false
		_, err := loop.Start(
			ctx, 0,
			func(_ context.Context, v int) (int, loop.Next) {
				ran = true
				return v, loop.Break(nil)
			},
		)
		if !errors.Is(err, context.Canceled) {
			t.Errorf("unexpected error: %v", err)
		}
		if ran {
			t.Error("task ran, unexpectedly")
		}
	})
}
