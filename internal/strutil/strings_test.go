package strutil_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aescanero/dago-node-ftp/internal/strutil"
)

func TestIsBlank(t *testing.T) {
	t.Parallel()
	blank := []string{"", " ", "\t\r\n", "\v\f", "\u3000", "\ufeff", "\u202a", "\u00a0", "\u2028", "\x1c"}
	for _, s := range blank {
		assert.True(t, strutil.IsBlank(s), "%q", s)
	}
	for _, s := range []string{"a", " a ", "\u200b.", "\u0085", " \u0085 "} {
		assert.False(t, strutil.IsBlank(s), "%q", s)
	}
}

func TestIsEmpty(t *testing.T) {
	t.Parallel()
	assert.True(t, strutil.IsEmpty(""))
	assert.False(t, strutil.IsEmpty(" "))
	assert.True(t, strutil.IsNotEmpty(" "))
}

func TestSub(t *testing.T) {
	t.Parallel()
	cases := []struct {
		s        string
		from, to int
		want     string
	}{
		{"abcdefgh", 2, 3, "c"},
		{"abcdefgh", 2, -3, "cde"},
		{"abcdefgh", 3, 2, "c"},
		{"abcdefgh", -100, 2, "ab"},
		{"abcdefgh", 6, 100, "gh"},
		{"abcdefgh", 4, 4, ""},
		{"abcdefgh", 2, -100, "cdefgh"},
		{"你好世界", 1, 3, "好世"},
		{"", 0, 1, ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, strutil.Sub(tc.s, tc.from, tc.to), "%q[%d:%d]", tc.s, tc.from, tc.to)
	}
}

func TestSubPre(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "abc", strutil.SubPre("abcdef", 3))
}

func TestRemoveSuffix(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "report", strutil.RemoveSuffix("report.csv", ".csv"))
	assert.Equal(t, "report.csv", strutil.RemoveSuffix("report.csv", ".txt"))
	assert.Equal(t, "report.csv", strutil.RemoveSuffix("report.csv", ""))
	assert.Equal(t, "", strutil.RemoveSuffix("", ".csv"))
}
