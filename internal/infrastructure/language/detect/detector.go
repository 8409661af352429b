package detect

import (
	"strings"

	"github.com/skillseek/course-search/internal/core/domain"
)

// Detector identifies the query language from the closed supported set. The
// five Indic catalog languages each use a distinct Unicode script, which
// makes script counting far more reliable than statistical detection on
// short queries; Latin-script text falls through to an ASCII-ratio check for
// English.
type Detector struct {
	minChars int
}

// New builds a detector. Queries shorter than minChars runes default to
// English: a wrong default only risks a suboptimal translation, not a
// failure.
func New(minChars int) *Detector {
	if minChars <= 0 {
		minChars = 4
	}
	return &Detector{minChars: minChars}
}

type scriptRange struct {
	language string
	lo, hi   rune
}

// Unicode block per language. Devanagari covers more languages than Hindi,
// but Hindi is the only Devanagari language in the catalog.
var scriptRanges = []scriptRange{
	{domain.LanguageHindi, 0x0900, 0x097F},
	{domain.LanguageTamil, 0x0B80, 0x0BFF},
	{domain.LanguageTelugu, 0x0C00, 0x0C7F},
	{domain.LanguageKannada, 0x0C80, 0x0CFF},
	{domain.LanguageMalayalam, 0x0D00, 0x0D7F},
}

func (d *Detector) Detect(text string) string {
	runes := []rune(strings.TrimSpace(text))
	if len(runes) < d.minChars {
		return domain.LanguageEnglish
	}

	counts := make(map[string]int, len(scriptRanges))
	ascii, total := 0, 0
	for _, r := range runes {
		if r == ' ' {
			continue
		}
		total++
		if r < 128 {
			ascii++
		}
		for _, s := range scriptRanges {
			if r >= s.lo && r <= s.hi {
				counts[s.language]++
				break
			}
		}
	}

	best, bestCount := "", 0
	for _, s := range scriptRanges {
		if counts[s.language] > bestCount {
			best, bestCount = s.language, counts[s.language]
		}
	}
	if bestCount > 0 {
		return best
	}

	if total > 0 && float64(ascii)/float64(total) > 0.7 {
		return domain.LanguageEnglish
	}
	return domain.LanguageUnknown
}
