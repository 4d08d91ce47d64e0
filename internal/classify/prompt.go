package classify

// collectionPrompt is the system prompt sent to the classification service.
// It asks the model to describe the shared characteristics of a set of media
// titles submitted together, so that individually ambiguous titles can be
// disambiguated by their neighbors.
const collectionPrompt = `You analyze a list of movie or TV show titles that a user submitted together and describe what the collection has in common.

The titles may be noisy (missing years, partial names, mixed languages).
Infer only what the collection as a whole supports; leave fields null when the titles do not agree.

Respond ONLY with JSON:
{
  "media_type": "movie" | "tv" | null,
  "year": number | null,
  "year_min": number | null,
  "year_max": number | null,
  "language": "ISO 639-1 code" | null,
  "region": "country or region name" | null,
  "genre": string | null,
  "description": "one short sentence describing the collection",
  "is_upcoming": true/false,
  "is_classic": true/false,
  "confidence": 0.0-1.0
}`

// Collection holds the parsed classification payload for a batch of titles.
type Collection struct {
	MediaType   string  `json:"media_type"`
	Year        int     `json:"year"`
	YearMin     int     `json:"year_min"`
	YearMax     int     `json:"year_max"`
	Language    string  `json:"language"`
	Region      string  `json:"region"`
	Genre       string  `json:"genre"`
	Description string  `json:"description"`
	IsUpcoming  bool    `json:"is_upcoming"`
	IsClassic   bool    `json:"is_classic"`
	Confidence  float64 `json:"confidence"`
}
