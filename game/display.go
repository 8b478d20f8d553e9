package game

import (
	"slices"
	"strconv"
	"strings"
	"unicode"

	"github.com/samber/lo"
)

// Placeholder masks a letter that has not been guessed yet.
const Placeholder = '_'

// Obfuscated returns the word with unguessed letters masked, one space
// between positions: "m _ n _ o".
func (g *Game) Obfuscated() string {
	var sb strings.Builder
	i := 0
	for _, r := range g.word {
		if i > 0 {
			sb.WriteByte(' ')
		}
		if g.hasGuessed(r) {
			sb.WriteRune(r)
		} else {
			sb.WriteRune(Placeholder)
		}
		i++
	}
	return sb.String()
}

// Misses returns the guessed letters that are not in the word, sorted.
func (g *Game) Misses() []rune {
	misses := lo.Filter(g.guessed, func(r rune, _ int) bool {
		return !strings.ContainsRune(g.word, r)
	})
	slices.Sort(misses)
	return misses
}

// DisplayRune renders a guessable character for messages. Blanks are
// quoted so they can be seen.
func DisplayRune(r rune) string {
	if unicode.IsSpace(r) {
		return strconv.QuoteRune(r)
	}
	return string(r)
}

func joinRunes(rs []rune, sep string) string {
	return strings.Join(lo.Map(rs, func(r rune, _ int) string { return DisplayRune(r) }), sep)
}

// ToDisplayText turns the current state of the game into a displayable
// string: the masked word, the misses so far and the gallows.
func (g *Game) ToDisplayText() string {
	var sb strings.Builder
	sb.WriteString("\n")
	sb.WriteString(g.Obfuscated())
	sb.WriteString("\n")
	if misses := g.Misses(); len(misses) > 0 {
		sb.WriteString("\nMisses: ")
		sb.WriteString(joinRunes(misses, ", "))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
	sb.WriteString(Stages[g.turn])
	sb.WriteString("\n")
	return sb.String()
}
