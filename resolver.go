package mediaresolve

import (
	"context"
	"io"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"mediaresolve/internal/assets"
	"mediaresolve/internal/batchinfer"
	"mediaresolve/internal/catalog"
	"mediaresolve/internal/classify"
	"mediaresolve/internal/config"
	"mediaresolve/internal/logging"
	"mediaresolve/internal/queryparse"
	"mediaresolve/internal/validate"
)

// Config is the resolver configuration. It aliases the internal config type
// so callers can build it directly or load it from TOML via LoadConfig.
type Config = config.Config

// LoadConfig reads a TOML configuration file, applying defaults and
// environment fallbacks. An empty path yields pure defaults.
func LoadConfig(path string) (*Config, error) {
	return config.Load(path)
}

// SampleConfig returns the annotated sample configuration file.
func SampleConfig() string {
	return config.SampleConfig()
}

// NewLogger builds a structured logger from the configuration's logging
// section. A nil output writes to stderr.
func NewLogger(cfg *Config, output io.Writer) (*slog.Logger, error) {
	resolved := config.Default()
	if cfg != nil {
		resolved = *cfg
	}
	return logging.New(logging.Options{
		Level:  resolved.Logging.Level,
		Format: resolved.Logging.Format,
		Output: output,
	})
}

// Resolver resolves free-text titles against the external media catalog.
// It is safe for concurrent use: all per-call state is confined to the call.
type Resolver struct {
	cfg        Config
	catalog    catalog.API
	inferencer *batchinfer.Inferencer
	validator  *validate.Validator
	logger     *slog.Logger
	configured bool
}

// New constructs a Resolver from configuration. A missing catalog API key is
// not an error: the resolver is built in not-configured mode, logs a single
// warning, and every call returns empty results.
func New(cfg *Config, logger *slog.Logger) (*Resolver, error) {
	if logger == nil {
		logger = logging.NewNop()
	}
	resolved := config.Default()
	if cfg != nil {
		resolved = *cfg
	}

	r := &Resolver{
		cfg:    resolved,
		logger: logging.NewComponentLogger(logger, "mediaresolve"),
	}

	if strings.TrimSpace(resolved.Catalog.APIKey) == "" {
		r.logger.Warn("catalog api key missing; resolver will return empty results")
	} else {
		client, err := catalog.New(
			resolved.Catalog.APIKey,
			resolved.Catalog.BaseURL,
			resolved.Catalog.Language,
			catalog.WithTimeout(time.Duration(resolved.Catalog.TimeoutSeconds)*time.Second),
		)
		if err != nil {
			return nil, err
		}
		r.catalog = client
		r.configured = true
	}

	classifier := classify.NewClient(classify.Config{
		APIKey:         resolved.Classifier.APIKey,
		BaseURL:        resolved.Classifier.BaseURL,
		Model:          resolved.Classifier.Model,
		TimeoutSeconds: resolved.Classifier.TimeoutSeconds,
	})
	if classifier == nil {
		r.logger.Info("classifier not configured; batch inference uses statistical fallback only")
		r.inferencer = batchinfer.New(nil, r.catalog, logger)
	} else {
		r.inferencer = batchinfer.New(classifier, r.catalog, logger)
	}

	thresholds := validate.DefaultThresholds()
	if resolved.Resolver.MinTitleSimilarity > 0 {
		thresholds.MinTitleSimilarity = resolved.Resolver.MinTitleSimilarity
	}
	if resolved.Resolver.ProtectedSimilarity > 0 {
		thresholds.ProtectedSimilarity = resolved.Resolver.ProtectedSimilarity
	}
	if resolved.Resolver.ClassicCutoffYear > 0 {
		thresholds.ClassicCutoffYear = resolved.Resolver.ClassicCutoffYear
	}
	if resolved.Resolver.ClassicVoteFloor > 0 {
		thresholds.ClassicVoteFloor = resolved.Resolver.ClassicVoteFloor
	}
	r.validator = validate.New(thresholds, r.fetchCredits, logger)

	return r, nil
}

// Resolve resolves a single free-text query to its best catalog match, or
// nil when no candidate survives validation.
func (r *Resolver) Resolve(ctx context.Context, query string) (*Result, error) {
	return r.resolve(ctx, query, 0, batchinfer.Context{}, r.logger)
}

// ResolveYear resolves a single query with an explicit year hint from the
// caller. A year extracted from the query text itself takes precedence.
func (r *Resolver) ResolveYear(ctx context.Context, query string, yearHint int) (*Result, error) {
	return r.resolve(ctx, query, yearHint, batchinfer.Context{}, r.logger)
}

// ResolveBatch resolves a set of related titles together, inferring shared
// context once and applying it to every title. The inferred context is
// scoped to this call; subsequent resolutions never observe it.
func (r *Resolver) ResolveBatch(ctx context.Context, titles []string) (map[string]*Result, error) {
	results := make(map[string]*Result, len(titles))
	if !r.configured {
		for _, title := range titles {
			results[title] = nil
		}
		return results, nil
	}

	logger := r.logger.With(logging.String("batch_id", uuid.NewString()))
	batch := r.inferencer.Infer(ctx, titles)
	logger.Info("batch context inferred",
		logging.Int("titles", len(titles)),
		logging.String("description", batch.Description),
		logging.Int("year", batch.Year),
		logging.String("language", batch.Language),
		logging.String("media_type", batch.MediaType),
		logging.Float64("confidence", batch.Confidence))

	for _, title := range titles {
		result, err := r.resolve(ctx, title, 0, batch, logger)
		if err != nil {
			// One title's transport failure must not sink the batch; it just
			// has no result.
			logger.Warn("batch title resolution failed",
				logging.String("title", title),
				logging.Error(err))
			result = nil
		}
		results[title] = result
	}
	return results, nil
}

// ResolveWithCandidates scores multiple plausible candidates for interactive
// disambiguation instead of auto-accepting one.
func (r *Resolver) ResolveWithCandidates(ctx context.Context, query string, max int) (*CandidateSet, error) {
	if !r.configured {
		return &CandidateSet{}, nil
	}

	parsed := queryparse.Parse(query)
	if parsed.CleanTitle == "" {
		return &CandidateSet{}, nil
	}

	response, err := r.catalog.SearchMulti(ctx, parsed.CleanTitle, catalog.SearchOptions{})
	if err != nil {
		return nil, err
	}
	candidates := usableCandidates(response, r.cfg.Resolver.MaxCandidates)

	ranking := r.validator.Rank(ctx, toValidateQuery(parsed), candidates, max)

	set := &CandidateSet{NeedsUserConfirmation: ranking.NeedsConfirmation}
	for _, ranked := range ranking.Candidates {
		set.Candidates = append(set.Candidates, toScoredCandidate(ranked))
	}
	if ranking.Best != nil {
		best := toScoredCandidate(*ranking.Best)
		set.BestMatch = &best
	}
	return set, nil
}

func (r *Resolver) resolve(ctx context.Context, raw string, yearHint int, batch batchinfer.Context, logger *slog.Logger) (*Result, error) {
	if !r.configured {
		return nil, nil
	}

	parsed := queryparse.Parse(raw)
	if parsed.CleanTitle == "" {
		return nil, nil
	}
	if parsed.Year == 0 {
		parsed.Year = yearHint
	}

	candidates, err := r.searchCandidates(ctx, parsed, batch)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		logger.Debug("no raw candidates", logging.String("title", parsed.CleanTitle))
		return nil, nil
	}

	match := r.validator.Validate(ctx, toValidateQuery(parsed), batch, candidates)
	if match == nil {
		return nil, nil
	}
	return r.finalize(ctx, match, logger)
}

// searchCandidates routes the query to the right search path. TV-flagged
// queries never attempt a movie search; movie queries fall back to the mixed
// search when the movie path comes up empty.
func (r *Resolver) searchCandidates(ctx context.Context, parsed queryparse.Parsed, batch batchinfer.Context) ([]catalog.Candidate, error) {
	limit := r.cfg.Resolver.MaxCandidates

	tvPath := parsed.LooksLikeTV || (batch.CanGate() && batch.MediaType == catalog.MediaTypeTV)
	if tvPath {
		response, err := r.catalog.SearchTV(ctx, parsed.CleanTitle, catalog.SearchOptions{})
		if err != nil {
			return nil, err
		}
		return usableCandidates(response, limit), nil
	}

	response, err := r.catalog.SearchMovie(ctx, parsed.CleanTitle, catalog.SearchOptions{})
	if err != nil {
		return nil, err
	}
	candidates := usableCandidates(response, limit)
	if len(candidates) > 0 {
		return candidates, nil
	}

	response, err = r.catalog.SearchMulti(ctx, parsed.CleanTitle, catalog.SearchOptions{})
	if err != nil {
		return nil, err
	}
	return usableCandidates(response, limit), nil
}

// finalize enriches an accepted match into a Result and enforces the
// no-image invariant: a matched but imageless record is worse for the caller
// than an explicit miss.
func (r *Resolver) finalize(ctx context.Context, match *validate.Match, logger *slog.Logger) (*Result, error) {
	candidate := match.Candidate
	mediaType := candidate.MediaType
	if mediaType != catalog.MediaTypeTV {
		mediaType = catalog.MediaTypeMovie
	}

	result := &Result{
		CatalogID:       candidate.ID,
		MediaType:       mediaType,
		Title:           candidate.PrimaryTitle(),
		Year:            candidate.Year(),
		Rating:          candidate.VoteAverage,
		VoteCount:       candidate.VoteCount,
		MatchConfidence: int(math.Round(match.Similarity * 100)),
		MatchMethod:     methodFor(match),
	}

	// Genre and rating enrichment is best effort; its failure degrades the
	// result, never the resolution.
	if details, err := r.catalog.Details(ctx, candidate.ID, mediaType); err == nil && details != nil {
		result.Genres = details.GenreNames()
		if details.VoteAverage > 0 {
			result.Rating = details.VoteAverage
		}
	} else if err != nil {
		logger.Debug("details enrichment failed",
			logging.Int64("catalog_id", candidate.ID),
			logging.Error(err))
	}

	images, err := r.catalog.Images(ctx, candidate.ID, mediaType)
	if err != nil {
		logger.Debug("image lookup failed, discarding match",
			logging.Int64("catalog_id", candidate.ID),
			logging.Error(err))
		return nil, nil
	}
	selection := assets.Select(images, baseLanguage(r.cfg.Catalog.Language))
	if selection.Empty() {
		logger.Debug("match discarded: no usable assets",
			logging.Int64("catalog_id", candidate.ID),
			logging.String("title", result.Title))
		return nil, nil
	}
	if selection.PosterPath != "" {
		result.PosterURL = r.cfg.Catalog.ImageBaseURL + selection.PosterPath
	}
	if selection.BackdropPath != "" {
		result.BackdropURL = r.cfg.Catalog.ImageBaseURL + selection.BackdropPath
	}

	return result, nil
}

// fetchCredits adapts the catalog client to the validator's lazy dependency.
func (r *Resolver) fetchCredits(ctx context.Context, id int64, mediaType string) (*catalog.Credits, error) {
	if r.catalog == nil {
		return nil, nil
	}
	return r.catalog.Credits(ctx, id, mediaType)
}

func methodFor(match *validate.Match) MatchMethod {
	switch {
	case match.Similarity >= 1:
		return MatchExact
	case match.UsedBatchContext:
		return MatchBatchContext
	default:
		return MatchFuzzy
	}
}

func toValidateQuery(parsed queryparse.Parsed) validate.Query {
	return validate.Query{
		CleanTitle: parsed.CleanTitle,
		Year:       parsed.Year,
		Director:   parsed.Director,
		Actor:      parsed.Actor,
		TVPath:     parsed.LooksLikeTV,
	}
}

func toScoredCandidate(ranked validate.Ranked) ScoredCandidate {
	candidate := ranked.Candidate
	mediaType := candidate.MediaType
	if mediaType != catalog.MediaTypeTV {
		mediaType = catalog.MediaTypeMovie
	}
	return ScoredCandidate{
		CatalogID:  candidate.ID,
		MediaType:  mediaType,
		Title:      candidate.PrimaryTitle(),
		Year:       candidate.Year(),
		Popularity: candidate.Popularity,
		VoteCount:  candidate.VoteCount,
		Confidence: ranked.Confidence,
		Level:      string(ranked.Level),
	}
}

// usableCandidates filters out records with no usable title and truncates to
// the configured evaluation cap.
func usableCandidates(response *catalog.SearchResponse, limit int) []catalog.Candidate {
	if response == nil {
		return nil
	}
	candidates := make([]catalog.Candidate, 0, len(response.Results))
	for _, candidate := range response.Results {
		if candidate.MediaType == "person" {
			continue
		}
		if strings.TrimSpace(candidate.PrimaryTitle()) == "" {
			continue
		}
		candidates = append(candidates, candidate)
		if limit > 0 && len(candidates) == limit {
			break
		}
	}
	return candidates
}

// baseLanguage reduces a configured locale ("en-US") to the bare language
// code image tags use.
func baseLanguage(locale string) string {
	locale = strings.TrimSpace(locale)
	if idx := strings.IndexAny(locale, "-_"); idx > 0 {
		return locale[:idx]
	}
	return locale
}
