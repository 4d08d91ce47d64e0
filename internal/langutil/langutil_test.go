package langutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCanonical(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"en", "en"},
		{"en-US", "en"},
		{"English", "en"},
		{"Korean", "ko"},
		{"Mandarin", "zh"},
		{"ja", "ja"},
		{"", ""},
		{"not a language", ""},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, Canonical(tc.in), "input %q", tc.in)
	}
}

func TestMatch(t *testing.T) {
	require.True(t, Match("Korean", "ko"))
	require.True(t, Match("en-US", "english"))
	require.False(t, Match("ko", "en"))
	require.False(t, Match("", ""))
	require.False(t, Match("not a language", "not a language"))
}
