package readability

import "strings"

func isVowel(r rune) bool {
	switch r {
	case 'a', 'e', 'i', 'o', 'u', 'y':
		return true
	}
	return false
}

// Syllables estimates the syllable count of a word by counting vowel groups,
// with a silent-e adjustment. The heuristic is deliberately table-free so
// counts are reproducible anywhere.
func Syllables(word string) int {
	var letters strings.Builder
	for _, r := range strings.ToLower(word) {
		if r >= 'a' && r <= 'z' {
			letters.WriteRune(r)
		}
	}
	w := letters.String()
	if w == "" {
		return 0
	}

	count := 0
	inGroup := false
	for _, r := range w {
		if isVowel(r) {
			if !inGroup {
				count++
				inGroup = true
			}
		} else {
			inGroup = false
		}
	}

	// Trailing silent e: "make" is one syllable, but keep "apple"-style
	// -le endings and refuse to drop a word's only syllable.
	if count > 1 && strings.HasSuffix(w, "e") && !strings.HasSuffix(w, "le") && !isVowel(rune(w[len(w)-2])) {
		count--
	}
	if count == 0 {
		count = 1
	}
	return count
}
