package callout

import "strings"

// Hyphen is appended to the head of a word split across lines.
const Hyphen = "-"

// MeasureFunc returns the rendered width of one line of text.
type MeasureFunc func(s string) float64

// Wrap greedily fills lines no wider than maxWidth. Newlines are hard breaks
// and runs of spaces collapse to one. A word that cannot fit on a line of its
// own is hyphenated at the last rune that still fits together with the hyphen.
func Wrap(text string, maxWidth float64, measure MeasureFunc) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	var lines []string
	for _, para := range strings.Split(text, "\n") {
		lines = append(lines, wrapParagraph(strings.Fields(para), maxWidth, measure)...)
	}
	return lines
}

func wrapParagraph(words []string, maxWidth float64, measure MeasureFunc) []string {
	if len(words) == 0 {
		return []string{""}
	}
	var lines []string
	cur := ""
	for i := 0; i < len(words); {
		cand := words[i]
		if cur != "" {
			cand = cur + " " + words[i]
		}
		if measure(cand) <= maxWidth {
			cur = cand
			i++
			continue
		}
		if cur != "" {
			lines = append(lines, cur)
			cur = ""
			continue
		}
		head, rest := hyphenate(words[i], maxWidth, measure)
		lines = append(lines, head)
		if rest == "" {
			i++
		} else {
			words[i] = rest
		}
	}
	if cur != "" {
		lines = append(lines, cur)
	}
	return lines
}

// hyphenate splits a word that is wider than maxWidth. When not even a single
// rune fits next to the hyphen the first rune is split off bare.
func hyphenate(word string, maxWidth float64, measure MeasureFunc) (head, rest string) {
	runes := []rune(word)
	if len(runes) <= 1 {
		return word, ""
	}
	for k := len(runes) - 1; k >= 1; k-- {
		if h := string(runes[:k]) + Hyphen; measure(h) <= maxWidth {
			return h, string(runes[k:])
		}
	}
	return string(runes[:1]), string(runes[1:])
}
