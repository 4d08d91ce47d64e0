package validate

import (
	"strings"

	"mediaresolve/internal/similarity"
)

// protectedFragments are normalized name fragments of major franchises.
// Queries matching one of these attract low-budget same-named knock-offs in
// raw search results, so they are held to stricter similarity and engagement
// requirements.
var protectedFragments = []string{
	"star wars",
	"star trek",
	"spider man",
	"batman",
	"superman",
	"avengers",
	"harry potter",
	"lord of the rings",
	"jurassic park",
	"jurassic world",
	"mission impossible",
	"james bond",
	"fast and furious",
	"indiana jones",
	"terminator",
	"matrix",
	"toy story",
	"pirates of the caribbean",
	"hunger games",
	"transformers",
}

// protectedFragment returns the franchise fragment the normalized query
// matches, or "" when the query is not protected.
func protectedFragment(cleanTitle string) string {
	normalized := similarity.Normalize(cleanTitle)
	if normalized == "" {
		return ""
	}
	for _, fragment := range protectedFragments {
		if strings.Contains(normalized, fragment) {
			return fragment
		}
	}
	return ""
}

// containsFragment reports whether a candidate title carries the fragment.
func containsFragment(title, fragment string) bool {
	return strings.Contains(similarity.Normalize(title), fragment)
}
