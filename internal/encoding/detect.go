package encoding

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Byte-order marks recognised in uploaded statements.
var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

const sniffSize = 4096

// NewUTF8Reader wraps r in a reader that yields UTF-8 regardless of the
// source encoding. Bank statement exports arrive in whatever encoding the
// bank's tooling produced, so the charset is sniffed: BOM first, then a
// UTF-8 validity check, then chardet, then a Windows-1252 fallback.
func NewUTF8Reader(r io.Reader) (io.Reader, error) {
	br := bufio.NewReader(r)

	head, err := br.Peek(sniffSize)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("sniffing charset: %w", err)
	}

	switch {
	case bytes.HasPrefix(head, bomUTF8):
		// Already UTF-8; drop the BOM so it doesn't land in the first field.
		_, _ = br.Discard(len(bomUTF8))
		return br, nil
	case bytes.HasPrefix(head, bomUTF16LE):
		return transform.NewReader(br, unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder()), nil
	case bytes.HasPrefix(head, bomUTF16BE):
		return transform.NewReader(br, unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewDecoder()), nil
	}

	if utf8.Valid(head) {
		return br, nil
	}

	if result, detectErr := chardet.NewTextDetector().DetectBest(head); detectErr == nil {
		switch result.Charset {
		case "UTF-8":
			return br, nil
		case "ISO-8859-1", "windows-1252":
			return transform.NewReader(br, charmap.Windows1252.NewDecoder()), nil
		case "ISO-8859-9":
			return transform.NewReader(br, charmap.ISO8859_9.NewDecoder()), nil
		}
	}

	return transform.NewReader(br, charmap.Windows1252.NewDecoder()), nil
}
