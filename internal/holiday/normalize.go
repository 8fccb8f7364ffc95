package holiday

import (
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

const byteOrderMark = '\ufeff'

// foldSpace turns the Unicode separators that RE2's \s does not see
// (non-breaking, thin, ideographic, line and paragraph separators) into
// ASCII whitespace. Every other rune passes through.
func foldSpace(r rune) rune {
	switch {
	case unicode.In(r, unicode.Zl, unicode.Zp):
		return '\n'
	case unicode.Is(unicode.Zs, r):
		return ' '
	}
	return r
}

// Normalize folds the exotic spaces that show up when a listing is pasted
// from a spreadsheet or a PDF and drops byte order marks. Subject text is
// otherwise left untouched.
func Normalize(raw string) string {
	// chained transformers keep buffers, so each call builds its own
	t := transform.Chain(
		runes.Remove(runes.Predicate(func(r rune) bool { return r == byteOrderMark })),
		runes.Map(foldSpace),
	)
	out, _, err := transform.String(t, raw)
	if err != nil {
		return raw
	}
	return out
}
