package strutil

const (
	backslash  = '\\'
	delimStart = '{'

	placeholder = "{}"
)

// markerKind classifies a "{}" occurrence by the escape characters in front
// of it.
type markerKind int

const (
	// markerLive consumes the pending argument.
	markerLive markerKind = iota
	// markerLiteralEscape is preceded by two backslashes: one backslash is
	// kept and the pending argument is consumed.
	markerLiteralEscape
	// markerEscaped is preceded by a single backslash: the backslash is
	// dropped, "{" is emitted and the argument stays pending.
	markerEscaped
)

func (k markerKind) String() string {
	switch k {
	case markerLive:
		return "live"
	case markerLiteralEscape:
		return "live-with-literal-escape"
	case markerEscaped:
		return "escaped"
	default:
		return "unknown"
	}
}

// classifyMarker inspects at most the two bytes before the marker at d.
func classifyMarker(template string, d int) markerKind {
	if d == 0 || template[d-1] != backslash {
		return markerLive
	}
	if d > 1 && template[d-2] == backslash {
		return markerLiteralEscape
	}
	return markerEscaped
}
