package strutil

import "strings"

// Sub returns the runes of s in [from, to). Negative indexes count from the
// end, out of range indexes are clamped and reversed bounds are swapped.
func Sub(s string, from, to int) string {
	if IsEmpty(s) {
		return s
	}
	runes := []rune(s)
	n := len(runes)

	if from < 0 {
		from += n
		if from < 0 {
			from = 0
		}
	} else if from > n {
		from = n
	}

	if to < 0 {
		to += n
		if to < 0 {
			to = n
		}
	} else if to > n {
		to = n
	}

	if to < from {
		from, to = to, from
	}
	if from == to {
		return ""
	}
	return string(runes[from:to])
}

// SubPre returns the runes of s before index to.
func SubPre(s string, to int) string {
	return Sub(s, 0, to)
}

// RemoveSuffix strips suffix from s when s ends with it.
func RemoveSuffix(s, suffix string) string {
	if IsEmpty(s) || IsEmpty(suffix) {
		return s
	}
	return strings.TrimSuffix(s, suffix)
}
