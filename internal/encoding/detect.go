// Package encoding normalizes uploaded text files to UTF-8. Spreadsheet tools
// still save CSV exports in legacy code pages.
package encoding

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Charset names the encoding a file was decoded from.
type Charset string

const (
	UTF8        Charset = "UTF-8"
	UTF16LE     Charset = "UTF-16LE"
	UTF16BE     Charset = "UTF-16BE"
	Windows1252 Charset = "windows-1252"
	ISO885915   Charset = "ISO-8859-15"
	ISO88599    Charset = "ISO-8859-9"
)

// sniffSize is how much of the input is inspected before deciding.
const sniffSize = 4096

var boms = []struct {
	prefix  []byte
	charset Charset
	decoder encoding.Encoding
}{
	{[]byte{0xEF, 0xBB, 0xBF}, UTF8, nil},
	{[]byte{0xFF, 0xFE}, UTF16LE, unicode.UTF16(unicode.LittleEndian, unicode.UseBOM)},
	{[]byte{0xFE, 0xFF}, UTF16BE, unicode.UTF16(unicode.BigEndian, unicode.UseBOM)},
}

// legacy maps chardet results to decoders. Latin-1 is read as windows-1252,
// which is a superset for every printable byte.
var legacy = map[string]Charset{
	"ISO-8859-1":   Windows1252,
	"windows-1252": Windows1252,
	"ISO-8859-15":  ISO885915,
	"ISO-8859-9":   ISO88599,
}

var decoders = map[Charset]encoding.Encoding{
	Windows1252: charmap.Windows1252,
	ISO885915:   charmap.ISO8859_15,
	ISO88599:    charmap.ISO8859_9,
}

// Detect returns a reader yielding r as UTF-8 and the charset it was decoded
// from. A UTF-8 byte order mark is dropped; anything undetectable is read as
// windows-1252.
func Detect(r io.Reader) (io.Reader, Charset, error) {
	br := bufio.NewReaderSize(r, sniffSize)

	head, err := br.Peek(sniffSize)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, "", fmt.Errorf("peek: %w", err)
	}

	for _, b := range boms {
		if !bytes.HasPrefix(head, b.prefix) {
			continue
		}

		if b.decoder == nil {
			_, _ = br.Discard(len(b.prefix))
			return br, b.charset, nil
		}

		return transform.NewReader(br, b.decoder.NewDecoder()), b.charset, nil
	}

	if utf8.Valid(trimPartialRune(head)) {
		return br, UTF8, nil
	}

	charset := Windows1252

	if res, err := chardet.NewTextDetector().DetectBest(head); err == nil {
		if res.Charset == string(UTF8) {
			return br, UTF8, nil
		}

		if cs, ok := legacy[res.Charset]; ok {
			charset = cs
		}
	}

	return transform.NewReader(br, decoders[charset].NewDecoder()), charset, nil
}

// NewUTF8Reader is Detect without the charset.
func NewUTF8Reader(r io.Reader) (io.Reader, error) {
	out, _, err := Detect(r)
	return out, err
}

// trimPartialRune drops an incomplete UTF-8 sequence cut off by the sniff window.
func trimPartialRune(b []byte) []byte {
	for i := 1; i <= utf8.UTFMax && i <= len(b); i++ {
		if utf8.RuneStart(b[len(b)-i]) {
			if !utf8.FullRune(b[len(b)-i:]) {
				return b[:len(b)-i]
			}

			break
		}
	}

	return b
}
