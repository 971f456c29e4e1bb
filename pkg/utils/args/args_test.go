package args_test

import (
	"errors"
	"flag"
	"strconv"
	"testing"

	"github.com/vetstoria/k9facts/pkg/utils/args"
)

type Even int

func AsEven(s string) (Even, error) {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if v%2 != 0 {
		return 0, errors.New("odd number!")
	}

	return Even(v), nil
}

func (e Even) String() string {
	return strconv.Itoa(int(e))
}

func TestArgs(t *testing.T) {
	t.Run("when it parses an acceptable value, parsing success", func(t *testing.T) {
		testee := args.Parser(AsEven)
		if testee.IsSet() {
			t.Error("it is set, unexpectedly")
		}

		fs := flag.NewFlagSet("test", flag.ContinueOnError)
		fs.Var(testee, "even", "even number")
		if err := fs.Parse([]string{"-even", "42"}); err != nil {
			t.Fatal(err)
		}

		if !testee.IsSet() {
			t.Error("it is not set, unexpectedly")
		}
		if testee.Value() != Even(42) {
			t.Errorf("unexpected value: %d", testee.Value())
		}
	})

	t.Run("when it parses an unacceptable value, parsing fails", func(t *testing.T) {
		testee := args.Parser(AsEven)

		fs := flag.NewFlagSet("test", flag.ContinueOnError)
		fs.SetOutput(discard{})
		fs.Var(testee, "even", "even number")
		if err := fs.Parse([]string{"-even", "43"}); err == nil {
			t.Error("parsing success, unexpectedly")
		}
	})

	t.Run("when it has a default, the default is visible before Set", func(t *testing.T) {
		testee := args.Default(Even(2), AsEven)
		if testee.Value() != Even(2) {
			t.Errorf("unexpected value: %d", testee.Value())
		}
		if testee.IsSet() {
			t.Error("it is set, unexpectedly")
		}
	})
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }
