// Package strutil provides the positional template formatter used for log
// and event messages, together with the string predicates and conversions
// it relies on.
//
// Format replaces each "{}" in a template with the next argument:
//
//	strutil.Format("{} is {}", "a", "b")               // "a is b"
//	strutil.Format(`this is \{} for {}`, "a", "b")    // "this is {} for a"
//	strutil.Format(`this is \\{} for {}`, "a", "b")   // `this is \a for b`
//
// A single backslash before a marker suppresses it: the backslash is dropped,
// the marker is copied literally and the argument stays pending for the next
// marker. Two backslashes keep the marker live and emit one backslash in
// front of the substituted value.
//
// Arguments are rendered by UTF8Str: nil becomes "null", byte slices and
// buffers are decoded as UTF-8, arrays and slices are listed as
// "[a, b, c]" (recursively) and anything else uses its default text form.
package strutil
