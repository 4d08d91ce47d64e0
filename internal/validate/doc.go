// Package validate decides which raw catalog candidate, if any, a query
// resolves to.
//
// Candidates are evaluated in the order the catalog returned them against a
// sequence of hard gates: title similarity, year consistency, an engagement
// floor, a stricter gate for protected franchise names, creator verification,
// and (on the TV path) language consistency. The first candidate to survive
// every applicable gate wins and later candidates are never evaluated. When
// nothing survives the query resolves to nothing; a false non-match is
// preferred over a wrong match.
//
// The same package houses the disambiguation ranker, which scores several
// plausible candidates instead of accepting one.
package validate
