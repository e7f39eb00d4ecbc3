package classify

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var apostrophes = strings.NewReplacer("’", "'", "‘", "'", "`", "'", "´", "'")

// fold lowercases s, strips diacritics and maps typographic apostrophes to '.
func fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return apostrophes.Replace(strings.ToLower(out))
}

// pad turns s into " tok tok tok " so hints can be matched as whole tokens by
// substring search. Letters, digits, '.', '\'' and '-' build tokens; anything
// else separates them. Trailing dots are dropped ("Canada." is "canada").
// A hyphenated token is kept whole and its parts longer than two runes are
// added after it, so "kitchener-waterloo" still yields "waterloo" while the
// "on" of "on-site" never stands alone.
func pad(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte(' ')
	emit := func(tok string) {
		tok = strings.Trim(tok, ".-")
		if !strings.ContainsFunc(tok, isWordRune) {
			return
		}
		b.WriteString(tok)
		b.WriteByte(' ')
		if !strings.Contains(tok, "-") {
			return
		}
		for _, part := range strings.Split(tok, "-") {
			part = strings.TrimRight(part, ".")
			if len([]rune(part)) > 2 && strings.ContainsFunc(part, isWordRune) {
				b.WriteString(part)
				b.WriteByte(' ')
			}
		}
	}
	start := -1
	folded := fold(s)
	for i, r := range folded {
		if isWordRune(r) || r == '.' || r == '\'' || r == '-' {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			emit(folded[start:i])
			start = -1
		}
	}
	if start >= 0 {
		emit(folded[start:])
	}
	return b.String()
}

func isWordRune(r rune) bool { return unicode.IsLetter(r) || unicode.IsDigit(r) }

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
