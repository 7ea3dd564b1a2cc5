package textutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeName(t *testing.T) {
	require.Equal(t, "newhaven", NormalizeName(" New  Haven\n"))
	require.Equal(t, NormalizeName("NEW HAVEN"), NormalizeName("new haven"))
}

func TestContainsFold(t *testing.T) {
	cases := []struct {
		s, substr string
		expected  bool
	}{
		{"Ace Liquor", "ace", true},
		{"Ace Liquor", "LIQ", true},
		{"Ace Liquor", "", true},
		{"", "", true},
		{"Best Wine", "ace", false},
	}
	for _, test := range cases {
		require.Equal(t, test.expected, ContainsFold(test.s, test.substr), "%q in %q", test.substr, test.s)
	}
}

func TestTruncate(t *testing.T) {
	require.Equal(t, "06103", Truncate("06103-1234", 5))
	require.Equal(t, "0610", Truncate("0610", 5))
	require.Equal(t, "", Truncate("", 5))
	require.Equal(t, "０６１０３", Truncate("０６１０３-1234", 5))
	require.Equal(t, "é", Truncate("é1", 1))
}
