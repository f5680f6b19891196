package strutil

import "strings"

// Format substitutes the "{}" markers of template with args in order.
//
// A blank template or an empty argument list returns template unchanged.
// Markers beyond the number of arguments are left as literal text, and a
// template without any marker is returned as is.
//
// A marker preceded by a single backslash is emitted as "{}" without the
// backslash and does not consume an argument.
func Format(template string, args ...any) string {
	if IsBlank(template) || len(args) == 0 {
		return template
	}

	var sb strings.Builder
	sb.Grow(len(template) + 50)

	handled := 0
	for argIndex := 0; argIndex < len(args); argIndex++ {
		idx := strings.Index(template[handled:], placeholder)
		if idx < 0 {
			if handled == 0 {
				return template
			}
			sb.WriteString(template[handled:])
			return sb.String()
		}

		delim := handled + idx
		switch classifyMarker(template, delim) {
		case markerLive:
			sb.WriteString(template[handled:delim])
			sb.WriteString(UTF8Str(args[argIndex]))
			handled = delim + len(placeholder)
		case markerLiteralEscape:
			sb.WriteString(template[handled : delim-1])
			sb.WriteString(UTF8Str(args[argIndex]))
			handled = delim + len(placeholder)
		case markerEscaped:
			argIndex--
			sb.WriteString(template[handled : delim-1])
			sb.WriteByte(delimStart)
			handled = delim + 1
		}
	}

	sb.WriteString(template[handled:])
	return sb.String()
}

// FormatPtr is Format for an optional template: a nil template yields nil.
func FormatPtr(template *string, args ...any) *string {
	if template == nil {
		return nil
	}
	out := Format(*template, args...)
	return &out
}
