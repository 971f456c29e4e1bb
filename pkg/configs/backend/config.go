package backend

import (
	"time"
)

type BackendConfig struct {
	database     string
	source       *SourceConfig
	ingest       *IngestConfig
	housekeeping *HousekeepingConfig
}

// Connection string for database.
func (c *BackendConfig) Database() string {
	return c.database
}

func (c *BackendConfig) Source() *SourceConfig {
	return c.source
}

func (c *BackendConfig) Ingest() *IngestConfig {
	return c.ingest
}

func (c *BackendConfig) Housekeeping() *HousekeepingConfig {
	return c.housekeeping
}

// Configuration for the upstream facts feed.
//
// to get `SourceConfig` instance, use `BackendConfigMarshall.TrySeal()` .
type SourceConfig struct {
	url     string
	timeout time.Duration
}

// URL of the feed.
func (s *SourceConfig) URL() string {
	return s.url
}

// Timeout for one pull. default = 10s
func (s *SourceConfig) Timeout() time.Duration {
	return s.timeout
}

type IngestConfig struct {
	similarityThreshold float64
}

// Cosine similarity at or above which an incoming fact
// overwrites a stored one. default = 0.4
func (i *IngestConfig) SimilarityThreshold() float64 {
	return i.similarityThreshold
}

type HousekeepingConfig struct {
	retention time.Duration
}

// How long soft-deleted facts are kept before purge. default = 720h
func (h *HousekeepingConfig) Retention() time.Duration {
	return h.retention
}
