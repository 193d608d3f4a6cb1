package callout

import (
	"math/rand"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func runeCount(s string) float64 { return float64(utf8.RuneCountInString(s)) }

func TestWrapGreedy(t *testing.T) {
	assert.Equal(t, []string{"the quick", "brown fox"}, Wrap("the quick brown fox", 10, runeCount))
	assert.Equal(t, []string{"a b", "", "c"}, Wrap("a  b\n\n c ", 10, runeCount))
	assert.Nil(t, Wrap("", 10, runeCount))
	assert.Nil(t, Wrap(" \n ", 10, runeCount))
}

func TestWrapHyphenatesLongWords(t *testing.T) {
	assert.Equal(t,
		[]string{"superca-", "lifragi-", "listic"},
		Wrap("supercalifragilistic", 8, runeCount))
	assert.Equal(t,
		[]string{"a", "superca-", "lifragi-", "listic b"},
		Wrap("a supercalifragilistic b", 8, runeCount))
}

func TestWrapNarrowerThanHyphen(t *testing.T) {
	// nothing fits next to a hyphen: split one rune at a time
	assert.Equal(t, []string{"a", "b", "c"}, Wrap("abc", 1, runeCount))
}

func TestWrapMultibyte(t *testing.T) {
	assert.Equal(t, []string{"ção-", "ção"}, Wrap("çãoção", 4, runeCount))
}

func randomText(r *rand.Rand) string {
	const alphabet = "abcdefghijklmnopqrstuvwxyzéü"
	letters := []rune(alphabet)
	var words []string
	for n := r.Intn(12); n >= 0; n-- {
		w := make([]rune, 1+r.Intn(25))
		for i := range w {
			w[i] = letters[r.Intn(len(letters))]
		}
		words = append(words, string(w))
		if r.Intn(8) == 0 {
			words = append(words, "\n")
		}
	}
	return strings.Join(words, " ")
}

func TestWrapProperties(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for i := 0; i < 500; i++ {
		text := randomText(r)
		maxW := float64(2 + r.Intn(20))
		lines := Wrap(text, maxW, runeCount)
		for _, ln := range lines {
			assert.LessOrEqual(t, runeCount(ln), maxW, "text %q line %q", text, ln)
		}
		again := Wrap(strings.Join(lines, "\n"), maxW, runeCount)
		assert.Equal(t, lines, again, "text %q", text)
	}
}
