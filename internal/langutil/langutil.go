package langutil

import (
	"strings"

	"golang.org/x/text/language"
)

// English names the classifier commonly returns, mapped to base codes.
// language.Parse handles codes and tags; this table handles prose.
var byName = map[string]string{
	"english":    "en",
	"spanish":    "es",
	"french":     "fr",
	"german":     "de",
	"italian":    "it",
	"portuguese": "pt",
	"japanese":   "ja",
	"korean":     "ko",
	"chinese":    "zh",
	"mandarin":   "zh",
	"russian":    "ru",
	"arabic":     "ar",
	"hindi":      "hi",
	"dutch":      "nl",
	"polish":     "pl",
	"swedish":    "sv",
	"danish":     "da",
	"norwegian":  "no",
	"finnish":    "fi",
	"turkish":    "tr",
	"thai":       "th",
}

// Canonical reduces a language identifier to its base ISO 639-1 code.
// Returns "" when the value cannot be interpreted.
func Canonical(value string) string {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" {
		return ""
	}
	if code, ok := byName[value]; ok {
		return code
	}
	tag, err := language.Parse(value)
	if err != nil {
		return ""
	}
	base, conf := tag.Base()
	if conf == language.No {
		return ""
	}
	return base.String()
}

// Match reports whether two language identifiers resolve to the same base
// code. Unknown values never match anything.
func Match(a, b string) bool {
	ca, cb := Canonical(a), Canonical(b)
	return ca != "" && ca == cb
}
