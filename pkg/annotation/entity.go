package annotation

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// namedEntities is the subset of named character references tokenizers emit.
//
//nolint:gochecknoglobals // Read-only lookup table.
var namedEntities = map[string]string{
	"lt":   "<",
	"gt":   ">",
	"quot": `"`,
	"amp":  "&",
}

// DecodeEntities replaces &lt; &gt; &quot; &amp; and decimal &#NN; references.
// Anything else that looks like a reference is kept literally.
func DecodeEntities(s string) string {
	if !strings.Contains(s, "&") {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))

	for i := 0; i < len(s); {
		if s[i] != '&' {
			next := strings.IndexByte(s[i:], '&')
			if next < 0 {
				b.WriteString(s[i:])
				break
			}
			b.WriteString(s[i : i+next])
			i += next
			continue
		}

		if decoded, width, ok := decodeEntityAt(s[i:]); ok {
			b.WriteString(decoded)
			i += width
			continue
		}

		b.WriteByte('&')
		i++
	}

	return b.String()
}

// decodeEntityAt decodes the reference at the start of s, which begins with '&'.
func decodeEntityAt(s string) (string, int, bool) {
	semi := strings.IndexByte(s, ';')
	if semi < 2 {
		return "", 0, false
	}
	name := s[1:semi]

	if name[0] == '#' {
		digits := name[1:]
		if digits == "" || !isDecimal(digits) {
			return "", 0, false
		}
		code, err := strconv.ParseInt(digits, 10, 32)
		if err != nil || !utf8.ValidRune(rune(code)) {
			return "", 0, false
		}
		return string(rune(code)), semi + 1, true
	}

	if decoded, ok := namedEntities[name]; ok {
		return decoded, semi + 1, true
	}
	return "", 0, false
}

func isDecimal(s string) bool {
	for i := range len(s) {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
