package db

import "errors"

// requested record does not exist.
var ErrMissing = errors.New("missing record")

// records are found more than expected.
var ErrTooMuch = errors.New("too much records")
