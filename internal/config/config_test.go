package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Catalog.BaseURL != defaultCatalogBaseURL {
		t.Errorf("catalog base url = %q", cfg.Catalog.BaseURL)
	}
	if cfg.Catalog.Language != "en-US" {
		t.Errorf("catalog language = %q", cfg.Catalog.Language)
	}
	if cfg.Resolver.MinTitleSimilarity != 0.80 {
		t.Errorf("min title similarity = %v", cfg.Resolver.MinTitleSimilarity)
	}
	if cfg.Resolver.MaxCandidates != 15 {
		t.Errorf("max candidates = %d", cfg.Resolver.MaxCandidates)
	}
	if cfg.Logging.Format != "text" || cfg.Logging.Level != "info" {
		t.Errorf("logging = %+v", cfg.Logging)
	}
}

func TestLoadEmptyPathUsesDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Classifier.Model != defaultClassifierModel {
		t.Errorf("classifier model = %q", cfg.Classifier.Model)
	}
}

func TestLoadPartialFileKeepsDefaultsForOmittedFields(t *testing.T) {
	path := writeConfig(t, `
[catalog]
api_key = "abc123"
language = "de-DE"

[resolver]
min_title_similarity = 0.75

[logging]
format = "json"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Catalog.APIKey != "abc123" {
		t.Errorf("api key = %q", cfg.Catalog.APIKey)
	}
	if cfg.Catalog.Language != "de-DE" {
		t.Errorf("language = %q", cfg.Catalog.Language)
	}
	if cfg.Catalog.BaseURL != defaultCatalogBaseURL {
		t.Errorf("base url should default, got %q", cfg.Catalog.BaseURL)
	}
	if cfg.Resolver.MinTitleSimilarity != 0.75 {
		t.Errorf("min title similarity = %v", cfg.Resolver.MinTitleSimilarity)
	}
	if cfg.Resolver.ProtectedSimilarity != 0.90 {
		t.Errorf("protected similarity should default, got %v", cfg.Resolver.ProtectedSimilarity)
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("logging format = %q", cfg.Logging.Format)
	}
}

func TestLoadEnvironmentFallbacks(t *testing.T) {
	t.Setenv("CATALOG_API_KEY", "env-catalog-key")
	t.Setenv("CLASSIFIER_API_KEY", "env-classifier-key")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Catalog.APIKey != "env-catalog-key" {
		t.Errorf("catalog api key = %q", cfg.Catalog.APIKey)
	}
	if cfg.Classifier.APIKey != "env-classifier-key" {
		t.Errorf("classifier api key = %q", cfg.Classifier.APIKey)
	}
}

func TestLoadFileKeyBeatsEnvironment(t *testing.T) {
	t.Setenv("CATALOG_API_KEY", "env-key")
	path := writeConfig(t, `
[catalog]
api_key = "file-key"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Catalog.APIKey != "file-key" {
		t.Errorf("api key = %q, want file value", cfg.Catalog.APIKey)
	}
}

func TestLoadMissingAPIKeyIsNotAnError(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Catalog.APIKey != "" {
		t.Skip("environment provides a catalog api key")
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"similarity above one", "[resolver]\nmin_title_similarity = 1.5\n"},
		{"protected below floor", "[resolver]\nmin_title_similarity = 0.9\nprotected_similarity = 0.8\n"},
		{"bad log format", "[logging]\nformat = \"xml\"\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, tc.body)); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestLoadRejectsInvalidTOML(t *testing.T) {
	if _, err := Load(writeConfig(t, "not = valid = toml")); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestSampleConfigParses(t *testing.T) {
	sample := SampleConfig()
	if !strings.Contains(sample, "[catalog]") {
		t.Fatalf("sample config missing [catalog] section:\n%s", sample)
	}
	if _, err := Load(writeConfig(t, sample)); err != nil {
		t.Fatalf("sample config does not load: %v", err)
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}
