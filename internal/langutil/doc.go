// Package langutil canonicalizes the language identifiers that appear in
// catalog payloads and classifier output.
//
// Catalog records carry ISO 639-1 codes ("en"), classifier output can carry
// full tags ("en-US"), English names ("French"), or nothing. Everything is
// reduced to a base two-letter code before comparison so the TV-path language
// tier and batch aggregation compare like with like.
package langutil
