package db

import (
	"errors"
	"fmt"
)

var ErrUnknownLoopType = errors.New("unknown loop type")

// LoopType names a recurring task which cmd/loops can run.
type LoopType string

var (
	// pull facts from the source and sync them into the store.
	Ingest LoopType = "ingest"

	// purge soft-deleted facts which passed the retention window.
	Housekeeping LoopType = "housekeeping"
)

func (t LoopType) String() string {
	return string(t)
}

func AsLoopType(s string) (LoopType, error) {
	switch LoopType(s) {
	case Ingest:
		return Ingest, nil
	case Housekeeping:
		return Housekeeping, nil
	default:
		return LoopType(s), fmt.Errorf("%w: %s", ErrUnknownLoopType, s)
	}
}
