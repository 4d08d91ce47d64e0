package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Catalog contains configuration for the external media catalog API.
type Catalog struct {
	APIKey   string `toml:"api_key"`
	BaseURL  string `toml:"base_url"`
	Language string `toml:"language"`
	// ImageBaseURL prefixes the relative asset paths the catalog returns.
	ImageBaseURL string `toml:"image_base_url"`
	// TimeoutSeconds bounds each catalog HTTP request.
	TimeoutSeconds int `toml:"timeout_seconds"`
}

// Classifier contains configuration for the semantic classification service.
type Classifier struct {
	APIKey         string `toml:"api_key"`
	BaseURL        string `toml:"base_url"`
	Model          string `toml:"model"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// Resolver contains tunable matching thresholds. Zero values are replaced by
// defaults during normalization so a partial [resolver] section stays valid.
type Resolver struct {
	// MinTitleSimilarity is the Tier 1 floor applied to every candidate.
	MinTitleSimilarity float64 `toml:"min_title_similarity"`
	// ProtectedSimilarity is the stricter floor for protected franchise queries.
	ProtectedSimilarity float64 `toml:"protected_similarity"`
	// ClassicCutoffYear and ClassicVoteFloor define the classic bypass for the
	// year-window tier: candidates released before the cutoff with at least
	// this many votes skip batch-range rejection. The boundary is inherited
	// behavior; changing it moves accept/reject outcomes for borderline
	// classics.
	ClassicCutoffYear int   `toml:"classic_cutoff_year"`
	ClassicVoteFloor  int64 `toml:"classic_vote_floor"`
	// MaxCandidates caps how many raw search results are evaluated.
	MaxCandidates int `toml:"max_candidates"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for the resolution engine.
type Config struct {
	Catalog    Catalog    `toml:"catalog"`
	Classifier Classifier `toml:"classifier"`
	Resolver   Resolver   `toml:"resolver"`
	Logging    Logging    `toml:"logging"`
}

// Load parses a configuration file, applying defaults for missing fields.
// A missing file is not an error; defaults plus environment fallbacks apply.
func Load(path string) (*Config, error) {
	cfg := Default()

	if strings.TrimSpace(path) != "" {
		file, err := os.Open(path)
		if err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("open config: %w", err)
			}
		} else {
			defer file.Close()
			decoder := toml.NewDecoder(file)
			if err := decoder.Decode(&cfg); err != nil {
				return nil, fmt.Errorf("parse config: %w", err)
			}
		}
	}

	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) normalize() {
	c.Catalog.APIKey = strings.TrimSpace(c.Catalog.APIKey)
	if c.Catalog.APIKey == "" {
		c.Catalog.APIKey = strings.TrimSpace(os.Getenv("CATALOG_API_KEY"))
	}
	if strings.TrimSpace(c.Catalog.BaseURL) == "" {
		c.Catalog.BaseURL = defaultCatalogBaseURL
	}
	if strings.TrimSpace(c.Catalog.Language) == "" {
		c.Catalog.Language = defaultCatalogLanguage
	}
	if strings.TrimSpace(c.Catalog.ImageBaseURL) == "" {
		c.Catalog.ImageBaseURL = defaultCatalogImageBaseURL
	}
	if c.Catalog.TimeoutSeconds <= 0 {
		c.Catalog.TimeoutSeconds = defaultCatalogTimeoutSeconds
	}

	c.Classifier.APIKey = strings.TrimSpace(c.Classifier.APIKey)
	if c.Classifier.APIKey == "" {
		c.Classifier.APIKey = strings.TrimSpace(os.Getenv("CLASSIFIER_API_KEY"))
	}
	if strings.TrimSpace(c.Classifier.BaseURL) == "" {
		c.Classifier.BaseURL = defaultClassifierBaseURL
	}
	if strings.TrimSpace(c.Classifier.Model) == "" {
		c.Classifier.Model = defaultClassifierModel
	}
	if c.Classifier.TimeoutSeconds <= 0 {
		c.Classifier.TimeoutSeconds = defaultClassifierTimeoutSeconds
	}

	if c.Resolver.MinTitleSimilarity <= 0 {
		c.Resolver.MinTitleSimilarity = defaultMinTitleSimilarity
	}
	if c.Resolver.ProtectedSimilarity <= 0 {
		c.Resolver.ProtectedSimilarity = defaultProtectedSimilarity
	}
	if c.Resolver.ClassicCutoffYear <= 0 {
		c.Resolver.ClassicCutoffYear = defaultClassicCutoffYear
	}
	if c.Resolver.ClassicVoteFloor <= 0 {
		c.Resolver.ClassicVoteFloor = defaultClassicVoteFloor
	}
	if c.Resolver.MaxCandidates <= 0 {
		c.Resolver.MaxCandidates = defaultMaxCandidates
	}

	if strings.TrimSpace(c.Logging.Format) == "" {
		c.Logging.Format = defaultLogFormat
	}
	if strings.TrimSpace(c.Logging.Level) == "" {
		c.Logging.Level = defaultLogLevel
	}
}

// Validate ensures the configuration is usable. A missing catalog API key is
// deliberately not an error: the resolver runs in not-configured mode and
// returns empty results (logged once at construction).
func (c *Config) Validate() error {
	if c.Resolver.MinTitleSimilarity > 1 {
		return errors.New("resolver.min_title_similarity must be between 0 and 1")
	}
	if c.Resolver.ProtectedSimilarity > 1 {
		return errors.New("resolver.protected_similarity must be between 0 and 1")
	}
	if c.Resolver.ProtectedSimilarity < c.Resolver.MinTitleSimilarity {
		return errors.New("resolver.protected_similarity must not be below resolver.min_title_similarity")
	}
	switch strings.ToLower(strings.TrimSpace(c.Logging.Format)) {
	case "text", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	return nil
}

// SampleConfig returns the embedded annotated sample configuration.
func SampleConfig() string {
	return sampleConfig
}
