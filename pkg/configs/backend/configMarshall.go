package backend

import (
	"fmt"
	"time"
)

type Marshalled[S any] interface {
	trySeal(string) S
}

// seal marshalled object.
//
// this function CAN CAUSE PANIC if misconfiguration is found.
//
// All types named `pkg/configs/backend.XxxMarshall` are `Marshalled[*Xxx]` .
func TrySeal[S any](conf Marshalled[S]) S {
	return conf.trySeal("(root)")
}

type BackendConfigMarshall struct {
	Database     string                      `yaml:"database"`
	Source       *SourceConfigMarshall       `yaml:"source"`
	Ingest       *IngestConfigMarshall       `yaml:"ingest,omitempty"`
	Housekeeping *HousekeepingConfigMarshall `yaml:"housekeeping,omitempty"`
}

var _ Marshalled[*BackendConfig] = &BackendConfigMarshall{}

func (b *BackendConfigMarshall) trySeal(path string) *BackendConfig {
	ingest := b.Ingest
	if ingest == nil {
		ingest = &IngestConfigMarshall{}
	}
	housekeeping := b.Housekeeping
	if housekeeping == nil {
		housekeeping = &HousekeepingConfigMarshall{}
	}

	return &BackendConfig{
		database:     required(b.Database, path+".database"),
		source:       nonnil(b.Source, path+".source").trySeal(path + ".source"),
		ingest:       ingest.trySeal(path + ".ingest"),
		housekeeping: housekeeping.trySeal(path + ".housekeeping"),
	}
}

type SourceConfigMarshall struct {
	URL     string `yaml:"url"`
	Timeout string `yaml:"timeout,omitempty"`
}

func (s *SourceConfigMarshall) trySeal(path string) *SourceConfig {
	timeout := 10 * time.Second
	if s.Timeout != "" {
		t, err := time.ParseDuration(s.Timeout)
		if err != nil {
			panic(fmt.Errorf("%s.timeout can not be parsed: %w", path, err))
		}
		timeout = t
	}

	return &SourceConfig{
		url:     required(s.URL, path+".url"),
		timeout: timeout,
	}
}

type IngestConfigMarshall struct {
	SimilarityThreshold *float64 `yaml:"similarityThreshold,omitempty"`
}

func (i *IngestConfigMarshall) trySeal(path string) *IngestConfig {
	threshold := 0.4
	if i.SimilarityThreshold != nil {
		threshold = *i.SimilarityThreshold
	}
	if threshold < 0 || 1 < threshold {
		panic(fmt.Errorf("%s.similarityThreshold should be in [0, 1]: %f", path, threshold))
	}

	return &IngestConfig{similarityThreshold: threshold}
}

type HousekeepingConfigMarshall struct {
	Retention string `yaml:"retention,omitempty"`
}

func (h *HousekeepingConfigMarshall) trySeal(path string) *HousekeepingConfig {
	retention := 720 * time.Hour
	if h.Retention != "" {
		r, err := time.ParseDuration(h.Retention)
		if err != nil {
			panic(fmt.Errorf("%s.retention can not be parsed: %w", path, err))
		}
		retention = r
	}

	return &HousekeepingConfig{retention: retention}
}

func nonnil[T any](v *T, path string) *T {
	if v == nil {
		panic(path + " is required")
	}
	return v
}

func required[T comparable](v T, path string) T {
	if v == *new(T) {
		panic(path + " is required")
	}
	return v
}
