package synth

import (
	"fmt"
	"strings"
	"unicode/utf16"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	idPrefix    = "txn"
	idPadding   = 6
	emailDomain = "email.com"
)

// HashCode folds s into an int32 with h = h*31 + c over its UTF-16 code
// units, wrapping on overflow.
func HashCode(s string) int32 {
	var h int32
	for _, c := range utf16.Encode([]rune(s)) {
		h = h*31 + int32(c)
	}
	return h
}

// NormalizeHash maps a hash into [0,1) with a resolution of 1/1000.
func NormalizeHash(h int32) float64 {
	v := int64(h)
	if v < 0 {
		v = -v
	}
	return float64(v%1000) / 1000
}

func TransactionID(n int) string {
	return fmt.Sprintf("%s-%0*d", idPrefix, idPadding, n)
}

var combiningMarks = runes.Predicate(func(r rune) bool {
	return r >= 0x0300 && r <= 0x036f
})

// StripDiacritics decomposes s and drops the combining marks block.
func StripDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(combiningMarks))
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// EmailFromName builds the customer address. Only the first space becomes
// a dot; any later spaces are kept as they are.
func EmailFromName(name string) string {
	local := StripDiacritics(strings.ToLower(name))
	local = strings.Replace(local, " ", ".", 1)
	return local + "@" + emailDomain
}
