package strutil

import (
	"bytes"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"golang.org/x/text/encoding"

	"github.com/aescanero/dago-node-ftp/internal/charset"
)

// ErrUnclassifiedElement is the panic value (wrapped) raised when an
// aggregate holds an element whose kind falls outside the rendering rules.
// It indicates a gap in the rules, not bad input.
var ErrUnclassifiedElement = errors.New("strutil: unclassified aggregate element kind")

const nullText = "null"

// UTF8Str renders v as text, decoding byte content as UTF-8.
func UTF8Str(v any) string {
	return Str(v, charset.UTF8)
}

// Str renders v as text. The first matching rule wins:
//
//   - nil and nil pointers render as "null"
//   - strings are returned as is
//   - []byte is decoded with enc
//   - *[]byte and []*byte are unwrapped, then decoded
//   - *bytes.Buffer and *bytes.Reader have their unread bytes decoded
//   - other types with a String method use it
//   - named []byte types are decoded
//   - arrays and slices are listed as "[a, b]", recursively
//   - anything else uses fmt's default format
func Str(v any, enc encoding.Encoding) string {
	if isNil(v) {
		return nullText
	}

	switch val := v.(type) {
	case string:
		return val
	case []byte:
		return charset.Decode(val, enc)
	case *[]byte:
		return charset.Decode(*val, enc)
	case []*byte:
		return charset.Decode(unbox(val), enc)
	case *bytes.Buffer:
		return charset.Decode(val.Bytes(), enc)
	case *bytes.Reader:
		return charset.Decode(unread(val), enc)
	case fmt.Stringer:
		return fmt.Sprint(val)
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Slice && rv.Type().Elem().Kind() == reflect.Uint8 {
		return charset.Decode(rv.Bytes(), enc)
	}
	if IsArray(v) {
		return ToString(v)
	}
	return fmt.Sprint(v)
}

// IsArray reports whether v is an array or a slice.
func IsArray(v any) bool {
	if v == nil {
		return false
	}
	k := reflect.TypeOf(v).Kind()
	return k == reflect.Array || k == reflect.Slice
}

// ToString lists arrays and slices as "[a, b]", descending into nested
// aggregates. Other values use fmt's default format.
func ToString(v any) string {
	if isNil(v) {
		return nullText
	}
	if !IsArray(v) {
		return fmt.Sprint(v)
	}
	var sb strings.Builder
	writeAggregate(&sb, reflect.ValueOf(v))
	return sb.String()
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}

// unread returns the bytes r has not yet returned, leaving r untouched.
func unread(r *bytes.Reader) []byte {
	out := make([]byte, r.Len())
	_, _ = r.ReadAt(out, r.Size()-int64(r.Len()))
	return out
}

func unbox(boxed []*byte) []byte {
	out := make([]byte, 0, len(boxed))
	for _, b := range boxed {
		if b != nil {
			out = append(out, *b)
		}
	}
	return out
}

// elementClass is the closed set of element kinds an aggregate may hold.
type elementClass int

const (
	classScalar elementClass = iota + 1
	classAggregate
	classInterface
	classReference
)

func classifyElement(k reflect.Kind) (elementClass, bool) {
	switch k {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64,
		reflect.Complex64, reflect.Complex128,
		reflect.String, reflect.Struct:
		return classScalar, true
	case reflect.Array, reflect.Slice:
		return classAggregate, true
	case reflect.Interface:
		return classInterface, true
	case reflect.Pointer, reflect.Map, reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return classReference, true
	default:
		return 0, false
	}
}

func writeAggregate(sb *strings.Builder, rv reflect.Value) {
	sb.WriteByte('[')
	for i := 0; i < rv.Len(); i++ {
		if i > 0 {
			sb.WriteString(", ")
		}
		writeElement(sb, rv.Index(i))
	}
	sb.WriteByte(']')
}

func writeElement(sb *strings.Builder, e reflect.Value) {
	class, ok := classifyElement(e.Kind())
	if !ok {
		panic(fmt.Errorf("%w: %s", ErrUnclassifiedElement, e.Kind()))
	}

	switch class {
	case classAggregate:
		if e.Kind() == reflect.Slice && e.IsNil() {
			sb.WriteString(nullText)
			return
		}
		if s, ok := stringer(e); ok {
			sb.WriteString(fmt.Sprint(s))
			return
		}
		writeAggregate(sb, e)
	case classInterface:
		if e.IsNil() {
			sb.WriteString(nullText)
			return
		}
		writeElement(sb, e.Elem())
	case classReference:
		if e.IsNil() {
			sb.WriteString(nullText)
			return
		}
		sb.WriteString(fmt.Sprint(e.Interface()))
	default:
		sb.WriteString(fmt.Sprint(e.Interface()))
	}
}

func stringer(e reflect.Value) (fmt.Stringer, bool) {
	if !e.CanInterface() {
		return nil, false
	}
	s, ok := e.Interface().(fmt.Stringer)
	return s, ok
}
