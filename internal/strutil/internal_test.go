package strutil

import (
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyMarker(t *testing.T) {
	t.Parallel()
	cases := []struct {
		template string
		want     markerKind
	}{
		{"{}", markerLive},
		{"a{}", markerLive},
		{`\{}`, markerEscaped},
		{`a\{}`, markerEscaped},
		{`\\{}`, markerLiteralEscape},
		{`a\\{}`, markerLiteralEscape},
		{`\\\{}`, markerLiteralEscape},
	}
	for _, tc := range cases {
		d := strings.Index(tc.template, placeholder)
		require.GreaterOrEqual(t, d, 0)
		assert.Equal(t, tc.want, classifyMarker(tc.template, d), "template %q", tc.template)
	}
}

func TestClassifyMarkerSecondPositionNeverLiteralEscape(t *testing.T) {
	t.Parallel()
	// Only one byte precedes the marker, so two escapes cannot be seen.
	assert.Equal(t, markerEscaped, classifyMarker(`\{}`, 1))
	assert.Equal(t, markerLive, classifyMarker(`x{}`, 1))
}

func TestMarkerKindString(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "live", markerLive.String())
	assert.Equal(t, "live-with-literal-escape", markerLiteralEscape.String())
	assert.Equal(t, "escaped", markerEscaped.String())
	assert.Equal(t, "unknown", markerKind(42).String())
}

func TestWriteElementUnclassifiedPanics(t *testing.T) {
	t.Parallel()
	var sb strings.Builder
	assert.PanicsWithError(t, "strutil: unclassified aggregate element kind: invalid", func() {
		writeElement(&sb, reflect.Value{})
	})
}

func TestClassifyElementCoversEveryValidKind(t *testing.T) {
	t.Parallel()
	for k := reflect.Bool; k <= reflect.UnsafePointer; k++ {
		_, ok := classifyElement(k)
		assert.True(t, ok, "kind %s", k)
	}
	_, ok := classifyElement(reflect.Invalid)
	assert.False(t, ok)
}
