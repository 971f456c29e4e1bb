package backend_test

import (
	"testing"
	"time"

	kcb "github.com/vetstoria/k9facts/pkg/configs/backend"
)

func TestLoadBackendConfig(t *testing.T) {

	t.Run("it can be created from a config file", func(t *testing.T) {
		result, err := kcb.LoadBackendConfig("./testdata/config.yaml")

		if err != nil {
			t.Fatalf("failed to parse config.: %v", err)
		}
		expectedDatabase := "postgres://k9facts-pgdb-svc:5432/k9care_db"
		if result.Database() != expectedDatabase {
			t.Errorf("unmatch database:%s, expected:%s", result.Database(), expectedDatabase)
		}
		expectedURL := "https://raw.githubusercontent.com/vetstoria/random-k9-etl/main/source_data.json"
		if result.Source().URL() != expectedURL {
			t.Errorf("unmatch source url:%s, expected:%s", result.Source().URL(), expectedURL)
		}
		if result.Source().Timeout() != 10*time.Second {
			t.Errorf("unmatch source timeout:%s", result.Source().Timeout())
		}
		if result.Ingest().SimilarityThreshold() != 0.4 {
			t.Errorf("unmatch similarity threshold:%f", result.Ingest().SimilarityThreshold())
		}
		if result.Housekeeping().Retention() != 720*time.Hour {
			t.Errorf("unmatch retention:%s", result.Housekeeping().Retention())
		}
	})

	t.Run("it applies defaults for omitted sections", func(t *testing.T) {
		result, err := kcb.Unmarshal([]byte(`
database: "postgres://localhost:5432/k9care_db"
source:
    url: "http://example.com/source_data.json"
`))
		if err != nil {
			t.Fatalf("failed to parse config.: %v", err)
		}
		if result.Source().Timeout() != 10*time.Second {
			t.Errorf("unmatch source timeout:%s", result.Source().Timeout())
		}
		if result.Ingest().SimilarityThreshold() != 0.4 {
			t.Errorf("unmatch similarity threshold:%f", result.Ingest().SimilarityThreshold())
		}
		if result.Housekeeping().Retention() != 720*time.Hour {
			t.Errorf("unmatch retention:%s", result.Housekeeping().Retention())
		}
	})

	t.Run("it panics when required fields are missing", func(t *testing.T) {
		defer func() {
			if recover() == nil {
				t.Error("no panic caused, unexpectedly")
			}
		}()
		kcb.Unmarshal([]byte(`
source:
    url: "http://example.com/source_data.json"
`))
	})
}
