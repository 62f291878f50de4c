package printer

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"
)

// ESC/POS command constants
const (
	ESC = 0x1B
	GS  = 0x1D
	LF  = 0x0A
)

// Text alignment
const (
	AlignLeft   = 0
	AlignCenter = 1
)

// Font size
const (
	FontNormal = 0x00
	FontDouble = 0x11 // Double width + double height
)

// QR error correction levels for GS ( k.
const (
	QRCorrectionL = 48
	QRCorrectionM = 49
)

// Document builds an ESC/POS byte stream for thermal printers.
type Document struct {
	buf   bytes.Buffer
	width int // print width in characters (32 for 58mm, 48 for 80mm)
}

// NewDocument creates a new ESC/POS document with the given character width.
func NewDocument(charWidth int) *Document {
	if charWidth <= 0 {
		charWidth = 32
	}
	d := &Document{width: charWidth}
	d.buf.Write([]byte{ESC, '@'})
	return d
}

// LineFeed sends a line feed.
func (d *Document) LineFeed() *Document {
	d.buf.WriteByte(LF)
	return d
}

// FeedLines sends n line feeds.
func (d *Document) FeedLines(n int) *Document {
	for i := 0; i < n; i++ {
		d.buf.WriteByte(LF)
	}
	return d
}

// SetAlign sets text alignment: AlignLeft or AlignCenter.
func (d *Document) SetAlign(align int) *Document {
	d.buf.Write([]byte{ESC, 'a', byte(align)})
	return d
}

// SetBold enables or disables bold text.
func (d *Document) SetBold(on bool) *Document {
	b := byte(0)
	if on {
		b = 1
	}
	d.buf.Write([]byte{ESC, 'E', b})
	return d
}

// SetFontSize sets the character size.
func (d *Document) SetFontSize(size byte) *Document {
	d.buf.Write([]byte{GS, '!', size})
	return d
}

// Text writes a line of text followed by a line feed.
func (d *Document) Text(s string) *Document {
	d.buf.WriteString(s)
	d.buf.WriteByte(LF)
	return d
}

// Wrapped writes s broken into lines no wider than the document,
// each prefixed with indent. Widths count runes; a word longer than a
// line is broken across lines.
func (d *Document) Wrapped(indent, s string) *Document {
	limit := d.width - utf8.RuneCountInString(indent)
	if limit < 1 {
		limit = 1
	}
	line, n := "", 0
	for _, word := range strings.Fields(s) {
		for _, part := range splitRunes(word, limit) {
			w := utf8.RuneCountInString(part)
			switch {
			case n == 0:
				line, n = part, w
			case n+1+w <= limit:
				line += " " + part
				n += 1 + w
			default:
				d.Text(indent + line)
				line, n = part, w
			}
		}
	}
	if n > 0 {
		d.Text(indent + line)
	}
	return d
}

// splitRunes cuts word into chunks of at most limit runes.
func splitRunes(word string, limit int) []string {
	if utf8.RuneCountInString(word) <= limit {
		return []string{word}
	}
	var parts []string
	runes := []rune(word)
	for len(runes) > limit {
		parts = append(parts, string(runes[:limit]))
		runes = runes[limit:]
	}
	return append(parts, string(runes))
}

// Separator prints a full-width separator line.
func (d *Document) Separator(char byte) *Document {
	d.buf.WriteString(strings.Repeat(string(char), d.width))
	d.buf.WriteByte(LF)
	return d
}

// KeyValue prints a left-aligned key and right-aligned value on the same line.
func (d *Document) KeyValue(key, value string) *Document {
	spaces := d.width - utf8.RuneCountInString(key) - utf8.RuneCountInString(value)
	if spaces < 1 {
		spaces = 1
	}
	d.buf.WriteString(key)
	d.buf.WriteString(strings.Repeat(" ", spaces))
	d.buf.WriteString(value)
	d.buf.WriteByte(LF)
	return d
}

// QRCode stores data in the printer's QR symbol buffer and prints it using
// model 2. moduleSize is clamped to 1..16.
func (d *Document) QRCode(data []byte, moduleSize, correction byte) (*Document, error) {
	// pL/pH count cn, fn, m plus the data.
	n := len(data) + 3
	if n > 0xFFFF {
		return d, fmt.Errorf("printer: QR data too long (%d bytes)", len(data))
	}
	if moduleSize < 1 {
		moduleSize = 1
	}
	if moduleSize > 16 {
		moduleSize = 16
	}

	d.buf.Write([]byte{GS, '(', 'k', 4, 0, 49, 65, 50, 0})
	d.buf.Write([]byte{GS, '(', 'k', 3, 0, 49, 67, moduleSize})
	d.buf.Write([]byte{GS, '(', 'k', 3, 0, 49, 69, correction})
	d.buf.Write([]byte{GS, '(', 'k', byte(n % 256), byte(n / 256), 49, 80, 48})
	d.buf.Write(data)
	d.buf.Write([]byte{GS, '(', 'k', 3, 0, 49, 81, 48})
	return d, nil
}

// PartialCut sends the partial cut command.
func (d *Document) PartialCut() *Document {
	d.buf.Write([]byte{GS, 'V', 0x01})
	return d
}

// Bytes returns the accumulated ESC/POS byte stream.
func (d *Document) Bytes() []byte {
	return d.buf.Bytes()
}
