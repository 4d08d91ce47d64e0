package similarity

import (
	"strings"
	"unicode"

	"github.com/mozillazg/go-unidecode"
)

const (
	// fuzzyWordFloor is the per-word edit similarity below which a word pair
	// is not considered a match at all.
	fuzzyWordFloor = 0.70
	// fuzzyWordWeight discounts fuzzy word matches against exact ones.
	fuzzyWordWeight = 0.7
	// lengthSlack is how many extra words a candidate may carry before the
	// per-word penalty starts.
	lengthSlack           = 2
	lengthPenaltyStep     = 0.15
	orderBonus            = 0.10
	shortQueryWordMax     = 2
	shortQueryCap         = 0.30
	underHalfExactPenalty = 0.15
)

// Score computes a 0-1 similarity between a normalized query title and a
// candidate catalog title. The query is the ground truth being matched
// against the candidate; the function is not symmetric in interpretation.
func Score(query, candidate string) float64 {
	a := Normalize(query)
	b := Normalize(candidate)
	if a == "" || b == "" {
		return 0
	}
	if a == b {
		return 1
	}

	levSim := editSimilarity(a, b)

	queryWords := significantWords(a)
	candidateWords := significantWords(b)
	if len(queryWords) == 0 || len(candidateWords) == 0 {
		return clamp(levSim)
	}

	exactCount, fuzzySum, exactPositions := alignWords(queryWords, candidateWords)
	wordMatchRatio := (float64(exactCount) + fuzzySum*fuzzyWordWeight) / float64(len(queryWords))

	lengthPenalty := 0.0
	if diff := abs(len(candidateWords) - len(queryWords)); diff > lengthSlack {
		lengthPenalty = lengthPenaltyStep * float64(diff-lengthSlack)
	}

	bonus := 0.0
	if exactCount >= 2 && nonDecreasing(exactPositions) {
		bonus = orderBonus
	}

	shortQuery := len(queryWords) <= shortQueryWordMax

	var score float64
	if shortQuery {
		score = 0.6*wordMatchRatio + 0.3*levSim + bonus - lengthPenalty
	} else {
		score = 0.5*wordMatchRatio + 0.35*levSim + bonus - lengthPenalty
	}

	if float64(exactCount) < float64(len(queryWords))/2 {
		score -= underHalfExactPenalty
	}

	// Short distinctive titles must not match much longer unrelated titles
	// that merely share a word.
	if shortQuery && len(candidateWords) > len(queryWords)+1 && exactCount < len(queryWords) {
		if score > shortQueryCap {
			score = shortQueryCap
		}
	}

	return clamp(score)
}

// alignWords greedily pairs each query word with its best unused candidate
// word. Exact matches win immediately and are taken in scan order; fuzzy
// matches must clear the per-word floor. Ties go to the earlier candidate
// word.
func alignWords(queryWords, candidateWords []string) (exactCount int, fuzzySum float64, exactPositions []int) {
	used := make([]bool, len(candidateWords))

	for _, qw := range queryWords {
		exactIdx := -1
		for j, cw := range candidateWords {
			if used[j] {
				continue
			}
			if cw == qw {
				exactIdx = j
				break
			}
		}
		if exactIdx >= 0 {
			used[exactIdx] = true
			exactCount++
			exactPositions = append(exactPositions, exactIdx)
			continue
		}

		bestIdx := -1
		bestScore := 0.0
		for j, cw := range candidateWords {
			if used[j] {
				continue
			}
			sim := editSimilarity(qw, cw)
			if sim >= fuzzyWordFloor && sim > bestScore {
				bestIdx = j
				bestScore = sim
			}
		}
		if bestIdx >= 0 {
			used[bestIdx] = true
			fuzzySum += bestScore
		}
	}
	return exactCount, fuzzySum, exactPositions
}

// Normalize reduces a title to its comparable form: ASCII-folded, lowercase,
// possessives dropped, dashes as spaces, punctuation stripped, whitespace
// collapsed, and a leading article removed (queries routinely drop "The").
func Normalize(title string) string {
	normalized := unidecode.Unidecode(title)
	normalized = strings.ToLower(normalized)
	normalized = strings.ReplaceAll(normalized, "'s", "")
	normalized = strings.ReplaceAll(normalized, "-", " ")
	normalized = strings.ReplaceAll(normalized, "–", " ")

	var builder strings.Builder
	builder.Grow(len(normalized))
	for _, r := range normalized {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r), unicode.IsSpace(r):
			builder.WriteRune(r)
		}
	}

	fields := strings.Fields(builder.String())
	if len(fields) > 1 {
		switch fields[0] {
		case "the", "a", "an":
			fields = fields[1:]
		}
	}
	return strings.Join(fields, " ")
}

// significantWords tokenizes a normalized title, dropping single-character
// tokens.
func significantWords(normalized string) []string {
	fields := strings.Fields(normalized)
	words := make([]string, 0, len(fields))
	for _, field := range fields {
		if len(field) > 1 {
			words = append(words, field)
		}
	}
	return words
}

func nonDecreasing(positions []int) bool {
	for i := 1; i < len(positions); i++ {
		if positions[i] < positions[i-1] {
			return false
		}
	}
	return true
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
