package edgar

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"regexp"
	"unicode/utf8"

	"golang.org/x/net/html/charset"
)

var (
	xmlEncoding = regexp.MustCompile(`^<\?xml[^>]*\sencoding\s*=\s*["']([A-Za-z0-9._:-]+)["']`)
	utf8BOM     = []byte{0xEF, 0xBB, 0xBF}
)

// ErrInvalidUTF8 is returned by DecodeText for documents that claim to be
// UTF-8 but are not.
var ErrInvalidUTF8 = errors.New("document is not valid UTF-8")

// DecodeText turns a fetched XML document into UTF-8 text, transcoding from
// the encoding named in its XML declaration. Older EDGAR filings are often
// ISO-8859-1 or windows-1252.
func DecodeText(data []byte) (string, error) {
	data = bytes.TrimPrefix(data, utf8BOM)

	label := "utf-8"
	if m := xmlEncoding.FindSubmatch(data); m != nil {
		label = string(m[1])
	}

	enc, name := charset.Lookup(label)
	if enc == nil {
		return "", fmt.Errorf("unsupported document encoding %q", label)
	}
	if name == "utf-8" {
		if !utf8.Valid(data) {
			return "", ErrInvalidUTF8
		}
		return string(data), nil
	}

	r, err := charset.NewReaderLabel(label, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("failed to decode %s document: %w", name, err)
	}
	text, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("failed to decode %s document: %w", name, err)
	}
	return string(text), nil
}
