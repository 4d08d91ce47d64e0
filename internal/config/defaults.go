package config

const (
	defaultCatalogBaseURL        = "https://api.themoviedb.org/3"
	defaultCatalogLanguage       = "en-US"
	defaultCatalogImageBaseURL   = "https://image.tmdb.org/t/p/original"
	defaultCatalogTimeoutSeconds = 10

	defaultClassifierBaseURL        = "https://api.openai.com/v1"
	defaultClassifierModel          = "gpt-4o-mini"
	defaultClassifierTimeoutSeconds = 20

	defaultMinTitleSimilarity  = 0.80
	defaultProtectedSimilarity = 0.90
	defaultClassicCutoffYear   = 2010
	defaultClassicVoteFloor    = 500
	defaultMaxCandidates       = 15

	defaultLogFormat = "text"
	defaultLogLevel  = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Catalog: Catalog{
			BaseURL:        defaultCatalogBaseURL,
			Language:       defaultCatalogLanguage,
			ImageBaseURL:   defaultCatalogImageBaseURL,
			TimeoutSeconds: defaultCatalogTimeoutSeconds,
		},
		Classifier: Classifier{
			BaseURL:        defaultClassifierBaseURL,
			Model:          defaultClassifierModel,
			TimeoutSeconds: defaultClassifierTimeoutSeconds,
		},
		Resolver: Resolver{
			MinTitleSimilarity:  defaultMinTitleSimilarity,
			ProtectedSimilarity: defaultProtectedSimilarity,
			ClassicCutoffYear:   defaultClassicCutoffYear,
			ClassicVoteFloor:    defaultClassicVoteFloor,
			MaxCandidates:       defaultMaxCandidates,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
