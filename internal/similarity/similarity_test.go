package similarity

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestScoreExactMatchAfterNormalization(t *testing.T) {
	cases := []struct {
		name      string
		query     string
		candidate string
	}{
		{"identical", "Inception", "Inception"},
		{"case and punctuation", "spider-man", "Spider-Man"},
		{"possessive", "Miller's Crossing", "MILLER'S CROSSING"},
		{"leading article dropped", "The Matrix", "Matrix"},
		{"leading article added", "Matrix", "The Matrix"},
		{"diacritics folded", "Amélie", "Amelie"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, 1.0, Score(tc.query, tc.candidate))
		})
	}
}

func TestScoreIsDeterministic(t *testing.T) {
	first := Score("Blade Runner", "Blade Runner 2049")
	for i := 0; i < 5; i++ {
		require.Equal(t, first, Score("Blade Runner", "Blade Runner 2049"))
	}
}

func TestScoreArticleDropBothDirections(t *testing.T) {
	require.Greater(t, Score("The Matrix", "Matrix"), 0.8)
	require.Greater(t, Score("Matrix", "The Matrix"), 0.8)
}

func TestScoreShortQueryAgainstLongUnrelatedTitle(t *testing.T) {
	// A short distinctive title must not match a much longer title that
	// merely shares a word.
	require.LessOrEqual(t, Score("Eternity", "Eternity in the Universe of Forever"), 0.3)
	require.LessOrEqual(t, Score("Godfather Part", "Godfather Party in the Big City"), 0.3)
}

func TestScoreFuzzyWordAlignment(t *testing.T) {
	// One typo in one word should still land well above the unrelated range.
	score := Score("Jurasic Park", "Jurassic Park")
	require.Greater(t, score, 0.7)
	require.Less(t, score, 1.0)
}

func TestScoreSubtitledSequelStaysBelowExact(t *testing.T) {
	score := Score("Spider-Man", "Spider-Man: Homecoming")
	require.InDelta(t, 0.843, score, 0.01)
}

func TestScoreUnrelatedTitles(t *testing.T) {
	require.Less(t, Score("Spider-Man", "Spiderman Origins"), 0.8)
	require.Less(t, Score("Heat", "My Dinner with Andre"), 0.3)
}

func TestScoreEmptyInputs(t *testing.T) {
	require.Equal(t, 0.0, Score("", "The Matrix"))
	require.Equal(t, 0.0, Score("The Matrix", ""))
	require.Equal(t, 0.0, Score("", ""))
}

func TestAlignWordsGreedyFirstMatch(t *testing.T) {
	// Exact matches are taken in scan order, and word order preservation is
	// judged by candidate positions.
	exact, fuzzy, positions := alignWords(
		[]string{"new", "york", "story"},
		[]string{"story", "new", "york"},
	)
	require.Equal(t, 3, exact)
	require.Equal(t, 0.0, fuzzy)
	require.Equal(t, []int{1, 2, 0}, positions)
	require.False(t, nonDecreasing(positions))

	exact, _, positions = alignWords(
		[]string{"star", "wars", "empire"},
		[]string{"star", "wars", "the", "empire", "strikes"},
	)
	require.Equal(t, 3, exact)
	require.True(t, nonDecreasing(positions))
}

func TestAlignWordsFuzzyFloor(t *testing.T) {
	// Below the per-word floor nothing matches.
	exact, fuzzy, _ := alignWords([]string{"matrix"}, []string{"metric"})
	require.Equal(t, 0, exact)
	require.Equal(t, 0.0, fuzzy)

	// A single-character typo clears it.
	exact, fuzzy, _ = alignWords([]string{"jurasic"}, []string{"jurassic"})
	require.Equal(t, 0, exact)
	require.Greater(t, fuzzy, 0.7)
}

func TestNormalize(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"The Matrix", "matrix"},
		{"Spider-Man: Homecoming", "spider man homecoming"},
		{"Miller's Crossing", "miller crossing"},
		{"  WALL  E  ", "wall e"},
		{"A Beautiful Mind", "beautiful mind"},
		{"The", "the"},
		{"", ""},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, Normalize(tc.in), "input %q", tc.in)
	}
}

func TestLevenshtein(t *testing.T) {
	require.Equal(t, 0, levenshtein("abc", "abc"))
	require.Equal(t, 3, levenshtein("", "abc"))
	require.Equal(t, 1, levenshtein("kitten", "mitten"))
	require.Equal(t, 3, levenshtein("kitten", "sitting"))
}
