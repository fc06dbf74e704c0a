package pdf

import (
	"strings"

	"golang.org/x/text/encoding/charmap"
)

// placeholder stands in for characters the core PDF fonts cannot show.
const placeholder = '?'

// toWinAnsi converts s to the Windows-1252 bytes used by the built-in PDF
// fonts. Unsupported characters become placeholder; the count of replaced
// characters is returned.
func toWinAnsi(s string) (string, int) {
	var b strings.Builder
	b.Grow(len(s))
	replaced := 0
	for _, r := range s {
		switch {
		case r == '\t':
			b.WriteByte(' ')
			continue
		case r < 0x20 || (r >= 0x7f && r <= 0x9f):
			b.WriteByte(placeholder)
			replaced++
			continue
		}
		c, ok := charmap.Windows1252.EncodeRune(r)
		if !ok {
			b.WriteByte(placeholder)
			replaced++
			continue
		}
		b.WriteByte(c)
	}
	return b.String(), replaced
}
