package catalog

import (
	"strconv"
	"strings"
)

// Candidate represents a single raw search match, not yet validated.
type Candidate struct {
	ID               int64   `json:"id"`
	Title            string  `json:"title"`
	Name             string  `json:"name"`
	OriginalTitle    string  `json:"original_title"`
	OriginalName     string  `json:"original_name"`
	OriginalLanguage string  `json:"original_language"`
	Overview         string  `json:"overview"`
	ReleaseDate      string  `json:"release_date"`
	FirstAirDate     string  `json:"first_air_date"`
	MediaType        string  `json:"media_type"`
	Popularity       float64 `json:"popularity"`
	VoteAverage      float64 `json:"vote_average"`
	VoteCount        int64   `json:"vote_count"`
}

// PrimaryTitle returns the display title regardless of media type.
func (c Candidate) PrimaryTitle() string {
	if c.Title != "" {
		return c.Title
	}
	return c.Name
}

// NativeTitle returns the original-language title regardless of media type.
func (c Candidate) NativeTitle() string {
	if c.OriginalTitle != "" {
		return c.OriginalTitle
	}
	return c.OriginalName
}

// Date returns the release or first-air date, whichever is populated.
func (c Candidate) Date() string {
	if c.ReleaseDate != "" {
		return c.ReleaseDate
	}
	return c.FirstAirDate
}

// Year parses the four-digit year prefix from the candidate's date.
// Returns 0 when no usable date is present.
func (c Candidate) Year() int {
	date := strings.TrimSpace(c.Date())
	if len(date) < 4 {
		return 0
	}
	year, err := strconv.Atoi(date[:4])
	if err != nil {
		return 0
	}
	return year
}

// SearchResponse models the catalog's paginated search payload.
type SearchResponse struct {
	Page         int         `json:"page"`
	Results      []Candidate `json:"results"`
	TotalPages   int         `json:"total_pages"`
	TotalResults int         `json:"total_results"`
}

// Genre is a catalog genre tag.
type Genre struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Details is the full record for a single entity.
type Details struct {
	Candidate
	Genres []Genre `json:"genres"`
}

// GenreNames flattens the genre list.
func (d Details) GenreNames() []string {
	if len(d.Genres) == 0 {
		return nil
	}
	names := make([]string, 0, len(d.Genres))
	for _, g := range d.Genres {
		if g.Name != "" {
			names = append(names, g.Name)
		}
	}
	return names
}

// CastMember is one billed performer.
type CastMember struct {
	Name  string `json:"name"`
	Order int    `json:"order"`
}

// CrewMember is one credited crew entry.
type CrewMember struct {
	Name string `json:"name"`
	Job  string `json:"job"`
}

// Credits holds the credited cast and crew for an entity.
type Credits struct {
	ID   int64        `json:"id"`
	Cast []CastMember `json:"cast"`
	Crew []CrewMember `json:"crew"`
}

// Directors returns every crew member credited with the Director job.
func (c Credits) Directors() []string {
	var names []string
	for _, member := range c.Crew {
		if strings.EqualFold(member.Job, "Director") && member.Name != "" {
			names = append(names, member.Name)
		}
	}
	return names
}

// TopCast returns up to n billed cast names in billing order.
func (c Credits) TopCast(n int) []string {
	if n <= 0 || len(c.Cast) == 0 {
		return nil
	}
	if n > len(c.Cast) {
		n = len(c.Cast)
	}
	names := make([]string, 0, n)
	for _, member := range c.Cast[:n] {
		if member.Name != "" {
			names = append(names, member.Name)
		}
	}
	return names
}

// Image is a single backdrop or poster entry.
type Image struct {
	FilePath     string  `json:"file_path"`
	LanguageCode string  `json:"iso_639_1"`
	VoteAverage  float64 `json:"vote_average"`
	VoteCount    int64   `json:"vote_count"`
	Width        int     `json:"width"`
	Height       int     `json:"height"`
}

// ImageSet holds the catalog's image lists for one entity.
type ImageSet struct {
	ID        int64   `json:"id"`
	Backdrops []Image `json:"backdrops"`
	Posters   []Image `json:"posters"`
}
