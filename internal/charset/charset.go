package charset

import (
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/unicode"

	"github.com/aescanero/dago-node-ftp/internal/fileutil"
)

// Charset names.
const (
	ISO88591Name = "ISO-8859-1"
	UTF8Name     = "UTF-8"
	GBKName      = "GBK"
)

// Charset encodings.
var (
	ISO88591 encoding.Encoding = charmap.ISO8859_1
	UTF8     encoding.Encoding = unicode.UTF8
	GBK      encoding.Encoding = simplifiedchinese.GBK
)

// Default returns the default charset, UTF-8.
func Default() encoding.Encoding {
	return UTF8
}

// System returns GBK on Windows and the default charset elsewhere.
func System() encoding.Encoding {
	if fileutil.IsWindows() {
		return GBK
	}
	return Default()
}

// SystemName returns the name of the system charset.
func SystemName() string {
	if fileutil.IsWindows() {
		return GBKName
	}
	return UTF8Name
}

// Lookup resolves a charset by its IANA name or alias. The three named
// charsets are resolved without consulting the index.
func Lookup(name string) (encoding.Encoding, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case UTF8Name, "UTF8":
		return UTF8, nil
	case ISO88591Name, "LATIN1":
		return ISO88591, nil
	case GBKName:
		return GBK, nil
	}

	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil {
		return nil, fmt.Errorf("unknown charset %q: %w", name, err)
	}
	if enc == nil {
		return nil, fmt.Errorf("charset %q is not supported", name)
	}
	return enc, nil
}

// Decode converts b from enc into a UTF-8 string. A nil enc means UTF-8.
// Malformed input is replaced with U+FFFD rather than rejected.
func Decode(b []byte, enc encoding.Encoding) string {
	if enc == nil {
		enc = Default()
	}
	out, err := enc.NewDecoder().Bytes(b)
	if err != nil {
		return strings.ToValidUTF8(string(b), "\uFFFD")
	}
	return string(out)
}
