package queryparse

import (
	"regexp"
	"strconv"
	"strings"
)

// Parsed captures the normalized information extracted from a raw query.
type Parsed struct {
	Raw        string
	CleanTitle string
	Year       int
	Director   string
	Actor      string
	// LooksLikeTV is set when the query carries TV-only signals; callers use
	// it to route to the TV search path without attempting a movie search.
	LooksLikeTV bool
}

var (
	whitespacePattern = regexp.MustCompile(`\s+`)

	// Conversational frames, checked in order. Leading verbs first so
	// "find and watch" is consumed before the bare "find".
	framePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)^(?:find\s+and\s+watch|watch|find|stream|play|resolve)\s+`),
		regexp.MustCompile(`(?i)^(?:the\s+movie|the\s+film)\s+`),
	}
	trailingMediaWordPattern = regexp.MustCompile(`(?i)\s+(?:movie|film)$`)
	quotedTitlePattern       = regexp.MustCompile(`^["'](.+)["']$`)

	// Year extraction patterns in priority order; the first match wins and
	// its span is removed from the title.
	yearParenPattern    = regexp.MustCompile(`\((\d{4})\)`)
	yearBracketPattern  = regexp.MustCompile(`\[(\d{4})\]`)
	yearDashPattern     = regexp.MustCompile(`\s+-\s*(\d{4})\s*$`)
	yearTrailingPattern = regexp.MustCompile(`\s+(\d{4})\s*$`)
	yearAnyPattern      = regexp.MustCompile(`\b(\d{4})\b`)

	// Creator patterns. "directed by" must be tried before the bare "by".
	// The name part requires a capitalized multi-word run.
	namePart         = `([A-Z][\w.'-]*(?:\s+[A-Z][\w.'-]*)+)`
	directedByPat    = regexp.MustCompile(`\s+[Dd]irected\s+by\s+` + namePart + `\s*$`)
	byPat            = regexp.MustCompile(`\s+by\s+` + namePart + `\s*$`)
	starringPat      = regexp.MustCompile(`\s+starring\s+` + namePart + `\s*$`)
	withPat          = regexp.MustCompile(`\s+with\s+` + namePart + `\s*$`)
	directorPats     = []*regexp.Regexp{directedByPat, byPat}
	actorPats        = []*regexp.Regexp{starringPat, withPat}
	seasonEpisodePat = regexp.MustCompile(`(?i)\bS\d{1,2}\s*E\d{1,2}\b`)
	seasonWordPat    = regexp.MustCompile(`(?i)\b(?:season|episode)\s*\d{1,2}\b`)
	tvWordPat        = regexp.MustCompile(`(?i)\b(?:series|show|shows)\b`)
)

// streamingServices are service names whose presence marks a query as TV
// oriented.
var streamingServices = []string{
	"netflix",
	"hulu",
	"hbo",
	"hbo max",
	"disney plus",
	"disney+",
	"apple tv",
	"amazon prime",
	"prime video",
	"paramount plus",
	"paramount+",
	"peacock",
	"crunchyroll",
}

const (
	minPlausibleYear = 1900
	maxPlausibleYear = 2030
)

// Parse normalizes a raw query string. It never fails; missing signals leave
// the corresponding fields at their zero values.
func Parse(raw string) Parsed {
	parsed := Parsed{Raw: raw}

	title := strings.TrimSpace(raw)
	if title == "" {
		return parsed
	}

	parsed.LooksLikeTV = looksLikeTV(title)

	for _, pat := range framePatterns {
		title = pat.ReplaceAllString(title, "")
	}
	if match := quotedTitlePattern.FindStringSubmatch(strings.TrimSpace(title)); len(match) == 2 {
		title = match[1]
	}
	title = trailingMediaWordPattern.ReplaceAllString(title, "")

	title, parsed.Year = extractYear(title)
	title, parsed.Director, parsed.Actor = extractCreator(title)

	title = whitespacePattern.ReplaceAllString(title, " ")
	parsed.CleanTitle = strings.TrimSpace(title)
	return parsed
}

func extractYear(title string) (string, int) {
	patterns := []*regexp.Regexp{
		yearParenPattern,
		yearBracketPattern,
		yearDashPattern,
		yearTrailingPattern,
		yearAnyPattern,
	}
	for _, pat := range patterns {
		match := pat.FindStringSubmatchIndex(title)
		if match == nil {
			continue
		}
		year, err := strconv.Atoi(title[match[2]:match[3]])
		if err != nil || year < minPlausibleYear || year > maxPlausibleYear {
			continue
		}
		cleaned := strings.TrimSpace(title[:match[0]] + " " + title[match[1]:])
		return cleaned, year
	}
	return title, 0
}

func extractCreator(title string) (cleaned, director, actor string) {
	cleaned = title
	for _, pat := range directorPats {
		if match := pat.FindStringSubmatch(cleaned); len(match) == 2 {
			director = strings.TrimSpace(match[1])
			cleaned = pat.ReplaceAllString(cleaned, "")
			break
		}
	}
	for _, pat := range actorPats {
		if match := pat.FindStringSubmatch(cleaned); len(match) == 2 {
			actor = strings.TrimSpace(match[1])
			cleaned = pat.ReplaceAllString(cleaned, "")
			break
		}
	}
	return strings.TrimSpace(cleaned), director, actor
}

func looksLikeTV(title string) bool {
	if seasonEpisodePat.MatchString(title) || seasonWordPat.MatchString(title) {
		return true
	}
	if tvWordPat.MatchString(title) {
		return true
	}
	lower := strings.ToLower(title)
	for _, service := range streamingServices {
		if strings.Contains(lower, service) {
			return true
		}
	}
	return false
}
