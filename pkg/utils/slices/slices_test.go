package slices_test

import (
	"errors"
	"strconv"
	"testing"

	"github.com/vetstoria/k9facts/pkg/utils/cmp"
	"github.com/vetstoria/k9facts/pkg/utils/slices"
)

func TestMap(t *testing.T) {
	t.Run("it maps each element in order", func(t *testing.T) {
		actual := slices.Map([]int{1, 2, 3}, strconv.Itoa)
		if !cmp.SliceEq(actual, []string{"1", "2", "3"}) {
			t.Errorf("unexpected result: %v", actual)
		}
	})
	t.Run("it maps empty slice to empty slice", func(t *testing.T) {
		actual := slices.Map([]int{}, strconv.Itoa)
		if len(actual) != 0 {
			t.Errorf("unexpected result: %v", actual)
		}
	})
}

func TestMapUntilError(t *testing.T) {
	expectedErr := errors.New("fake error")

	t.Run("it maps all elements when no error caused", func(t *testing.T) {
		actual, err := slices.MapUntilError(
			[]string{"1", "2", "3"}, strconv.Atoi,
		)
		if err != nil {
			t.Fatal(err)
		}
		if !cmp.SliceEq(actual, []int{1, 2, 3}) {
			t.Errorf("unexpected result: %v", actual)
		}
	})

	t.Run("it stops at the first error", func(t *testing.T) {
		_, err := slices.MapUntilError(
			[]int{1, 2, 3},
			func(v int) (int, error) {
				if 2 <= v {
					return 0, expectedErr
				}
				return v, nil
			},
		)
		if !errors.Is(err, expectedErr) {
			t.Errorf("unexpected error: %v", err)
		}
	})
}

func TestFirst(t *testing.T) {
	t.Run("it finds the first match", func(t *testing.T) {
		v, ok := slices.First([]int{1, 2, 3, 4}, func(v int) bool { return v%2 == 0 })
		if !ok || v != 2 {
			t.Errorf("unexpected result: (%v, %v)", v, ok)
		}
	})
	t.Run("it reports no match", func(t *testing.T) {
		_, ok := slices.First([]int{1, 3}, func(v int) bool { return v%2 == 0 })
		if ok {
			t.Error("it found something, unexpectedly")
		}
	})
}

func TestToMap(t *testing.T) {
	t.Run("it indexes elements by key", func(t *testing.T) {
		actual := slices.ToMap(
			[]string{"a", "bb", "ccc"},
			func(v string) int { return len(v) },
		)
		expected := map[int]string{1: "a", 2: "bb", 3: "ccc"}
		if !cmp.MapEq(actual, expected) {
			t.Errorf("unexpected result: %v", actual)
		}
	})
}
