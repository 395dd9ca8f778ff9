package types

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Filename derives the download name "{firstname}_{lastname}_resume.{ext}".
// Name parts are lower-cased and reduced to ASCII letters and digits; inner
// whitespace becomes "-". Empty parts are skipped.
func (r *ResumeData) Filename(ext string) string {
	parts := make([]string, 0, 3)
	for _, p := range []string{r.PersonalInfo.FirstName, r.PersonalInfo.LastName} {
		if s := asciiSlug(p); s != "" {
			parts = append(parts, s)
		}
	}
	parts = append(parts, "resume")

	name := strings.Join(parts, "_")
	ext = strings.TrimPrefix(strings.TrimSpace(ext), ".")
	if ext == "" {
		return name
	}
	return name + "." + ext
}

// ligatures spell out letters that have no single-letter ASCII base.
var ligatures = strings.NewReplacer("ß", "ss", "æ", "ae", "œ", "oe", "þ", "th")

// baseLetter maps lower-case letters whose stroke or slash is part of the
// letter itself, so NFD leaves them whole.
func baseLetter(r rune) rune {
	switch r {
	case 'ł':
		return 'l'
	case 'ø':
		return 'o'
	case 'đ', 'ð':
		return 'd'
	case 'ħ':
		return 'h'
	case 'ı':
		return 'i'
	}
	return r
}

// asciiSlug transliterates to ASCII and keeps [a-z0-9], joining words
// with "-".
func asciiSlug(s string) string {
	lower := ligatures.Replace(strings.ToLower(s))
	t := transform.Chain(runes.Map(baseLetter), norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, lower)
	if err != nil {
		folded = lower
	}

	var words []string
	for _, field := range strings.Fields(folded) {
		var b strings.Builder
		for _, c := range field {
			if (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') {
				b.WriteRune(c)
			}
		}
		if b.Len() > 0 {
			words = append(words, b.String())
		}
	}
	return strings.Join(words, "-")
}
