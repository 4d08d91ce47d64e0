// Package mediaresolve resolves noisy, free-text media titles to canonical
// catalog records with calibrated confidence, or correctly refuses to match.
//
// A query like "watch Inception (2010)" is normalized, searched against the
// external catalog, and every raw candidate is run through a sequence of
// hard validation gates: title similarity, year consistency, an engagement
// floor, stricter gating for protected franchise names, and creator
// verification. Titles submitted together as a batch additionally share an
// inferred context (release window, language, media type) that disambiguates
// titles which are individually ambiguous.
//
// The package is a stateless library: it owns no persistence, no wire
// format, and no user-facing messaging. Unresolvable queries yield nil
// results, which callers must treat as "not found" rather than an error;
// transport failures carry the ErrUnavailable sentinel so the two outcomes
// stay distinguishable.
package mediaresolve
