package batchinfer

import (
	"context"
	"log/slog"
	"sort"

	"github.com/sourcegraph/conc/pool"

	"mediaresolve/internal/catalog"
	"mediaresolve/internal/classify"
	"mediaresolve/internal/langutil"
	"mediaresolve/internal/logging"
	"mediaresolve/internal/queryparse"
	"mediaresolve/internal/similarity"
)

const (
	// fallbackSampleMax bounds how many titles the statistical path looks up.
	fallbackSampleMax = 10
	// fallbackConcurrency bounds parallel catalog lookups in the fallback.
	fallbackConcurrency = 4
	// fallbackSimilarityFloor is the acceptance floor for a quick lookup to
	// count toward aggregation.
	fallbackSimilarityFloor = 0.70
	// yearAgreement and languageAgreement are the coverage fractions an
	// aggregated value must reach before it is trusted.
	yearAgreement      = 0.50
	languageAgreement  = 0.60
	mediaTypeAgreement = 0.60
)

// Classifier is the semantic classification dependency. A nil Classifier
// means the semantic path is unavailable.
type Classifier interface {
	ClassifyCollection(ctx context.Context, titles []string) (classify.Collection, error)
}

// Inferencer builds batch contexts from title lists.
type Inferencer struct {
	classifier Classifier
	catalog    catalog.API
	logger     *slog.Logger
}

// New constructs an Inferencer. classifier may be nil; cat may be nil when no
// catalog is configured, which disables the statistical fallback too.
func New(classifier Classifier, cat catalog.API, logger *slog.Logger) *Inferencer {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Inferencer{
		classifier: classifier,
		catalog:    cat,
		logger:     logging.NewComponentLogger(logger, "batchinfer"),
	}
}

// Infer derives the shared context of a batch. It never fails: any upstream
// problem degrades to the next path, and the worst case is the neutral
// context.
func (i *Inferencer) Infer(ctx context.Context, titles []string) Context {
	if len(titles) <= 1 {
		return Context{}
	}

	if i.classifier != nil {
		collection, err := i.classifier.ClassifyCollection(ctx, titles)
		if err == nil {
			inferred := fromCollection(collection)
			i.logger.Debug("semantic batch classification accepted",
				logging.Int("titles", len(titles)),
				logging.String("description", inferred.Description),
				logging.Float64("confidence", inferred.Confidence))
			return inferred
		}
		i.logger.Debug("semantic batch classification unavailable, falling back",
			logging.Error(err))
	}

	return i.inferStatistical(ctx, titles)
}

func fromCollection(collection classify.Collection) Context {
	inferred := Context{
		Year:        collection.Year,
		YearMin:     collection.YearMin,
		YearMax:     collection.YearMax,
		Language:    langutil.Canonical(collection.Language),
		Region:      collection.Region,
		Genre:       collection.Genre,
		Description: collection.Description,
		IsUpcoming:  collection.IsUpcoming,
		IsClassic:   collection.IsClassic,
		Confidence:  collection.Confidence,
	}
	switch collection.MediaType {
	case catalog.MediaTypeMovie, catalog.MediaTypeTV:
		inferred.MediaType = collection.MediaType
	}
	if inferred.Year > 0 && !inferred.HasYearRange() {
		inferred.YearMin = inferred.Year
		inferred.YearMax = inferred.Year
	}
	return inferred
}

// inferStatistical aggregates quick per-title lookups. Lookups are
// independent, so they run in parallel and only the aggregation is serial.
func (i *Inferencer) inferStatistical(ctx context.Context, titles []string) Context {
	if i.catalog == nil {
		return Context{}
	}

	sample := titles
	if len(sample) > fallbackSampleMax {
		sample = sample[:fallbackSampleMax]
	}

	accepted := make([]*catalog.Candidate, len(sample))
	workers := pool.New().WithMaxGoroutines(fallbackConcurrency)
	for idx, title := range sample {
		idx, title := idx, title
		workers.Go(func() {
			accepted[idx] = i.quickLookup(ctx, title)
		})
	}
	workers.Wait()

	var (
		years      = map[int]int{}
		languages  = map[string]int{}
		mediaTypes = map[string]int{}
		yearMin    = 0
		yearMax    = 0
		analyzed   = 0
	)
	for _, candidate := range accepted {
		if candidate == nil {
			continue
		}
		analyzed++
		if year := candidate.Year(); year > 0 {
			years[year]++
			if yearMin == 0 || year < yearMin {
				yearMin = year
			}
			if year > yearMax {
				yearMax = year
			}
		}
		if lang := langutil.Canonical(candidate.OriginalLanguage); lang != "" {
			languages[lang]++
		}
		if candidate.MediaType != "" {
			mediaTypes[candidate.MediaType]++
		}
	}

	if analyzed == 0 {
		return Context{}
	}

	inferred := Context{
		YearMin:    yearMin,
		YearMax:    yearMax,
		Confidence: clampConfidence(float64(analyzed) / float64(len(titles))),
	}
	if year, count := mostFrequent(years); count > 0 && float64(count) >= yearAgreement*float64(analyzed) {
		inferred.Year = year
	}
	if lang, count := mostFrequent(languages); count > 0 && float64(count) >= languageAgreement*float64(analyzed) {
		inferred.Language = lang
	}
	if mediaType, count := mostFrequent(mediaTypes); count > 0 && float64(count) > mediaTypeAgreement*float64(analyzed) {
		inferred.MediaType = mediaType
	}

	i.logger.Debug("statistical batch inference",
		logging.Int("titles", len(titles)),
		logging.Int("analyzed", analyzed),
		logging.Int("year", inferred.Year),
		logging.String("language", inferred.Language),
		logging.String("media_type", inferred.MediaType),
		logging.Float64("confidence", inferred.Confidence))
	return inferred
}

// quickLookup searches the catalog for one title and returns the best
// candidate clearing the similarity floor, or nil.
func (i *Inferencer) quickLookup(ctx context.Context, title string) *catalog.Candidate {
	parsed := queryparse.Parse(title)
	if parsed.CleanTitle == "" {
		return nil
	}
	response, err := i.catalog.SearchMulti(ctx, parsed.CleanTitle, catalog.SearchOptions{Year: parsed.Year})
	if err != nil || response == nil {
		return nil
	}

	var best *catalog.Candidate
	bestScore := 0.0
	for idx := range response.Results {
		candidate := &response.Results[idx]
		score := similarity.Score(parsed.CleanTitle, candidate.PrimaryTitle())
		if native := similarity.Score(parsed.CleanTitle, candidate.NativeTitle()); native > score {
			score = native
		}
		if score >= fallbackSimilarityFloor && score > bestScore {
			best = candidate
			bestScore = score
		}
	}
	return best
}

// mostFrequent returns the highest-count key; ties break toward the smaller
// key so results stay deterministic.
func mostFrequent[K int | string](counts map[K]int) (K, int) {
	keys := make([]K, 0, len(counts))
	for key := range counts {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(a, b int) bool { return keys[a] < keys[b] })

	var bestKey K
	bestCount := 0
	for _, key := range keys {
		if counts[key] > bestCount {
			bestKey = key
			bestCount = counts[key]
		}
	}
	return bestKey, bestCount
}

func clampConfidence(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < 0 {
		return 0
	}
	return v
}
