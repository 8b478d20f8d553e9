// Package dictionary loads word lists for the game. A word list is a plain
// text file with one word per line; the loader keeps lowercase words of
// MinWordLength to MaxWordLength characters and derives the set of
// characters that may be guessed from the whole filtered list.
package dictionary

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"golang.org/x/text/cases"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/language"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	MinWordLength = 5
	MaxWordLength = 12
)

var ErrEmptyDictionary = errors.New("no words of an acceptable length in word list")

type Dictionary struct {
	name     string
	words    []string
	alphabet []rune
}

// Load reads the word list at path.
func Load(path string) (*Dictionary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening word list: %w", err)
	}
	defer f.Close()
	return FromReader(filepath.Base(path), f)
}

// FromReader builds a dictionary from line-delimited words.
func FromReader(name string, r io.Reader) (*Dictionary, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading word list %s: %w", name, err)
	}
	text, err := decode(raw)
	if err != nil {
		return nil, fmt.Errorf("decoding word list %s: %w", name, err)
	}
	lower := cases.Lower(language.Und)

	lines := strings.Split(text, "\n")
	words := lo.FilterMap(lines, func(line string, _ int) (string, bool) {
		w := lower.String(strings.TrimSuffix(line, "\r"))
		n := utf8.RuneCountInString(w)
		return w, n >= MinWordLength && n <= MaxWordLength
	})
	words = lo.Uniq(words)
	if len(words) == 0 {
		return nil, fmt.Errorf("%s: %w", name, ErrEmptyDictionary)
	}
	slices.Sort(words)

	log.Debug().Str("name", name).Int("lines", len(lines)).Int("words", len(words)).
		Msg("loaded-dictionary")

	return &Dictionary{
		name:     name,
		words:    words,
		alphabet: alphabetOf(words),
	}, nil
}

// decode turns raw bytes into NFC-normalized text. A byte-order mark selects
// UTF-8 or UTF-16; anything else that is not valid UTF-8 is treated as
// ISO-8859-1, which is what older word lists tend to be.
func decode(raw []byte) (string, error) {
	var dec transform.Transformer
	switch {
	case bytes.HasPrefix(raw, []byte{0xEF, 0xBB, 0xBF}),
		bytes.HasPrefix(raw, []byte{0xFE, 0xFF}),
		bytes.HasPrefix(raw, []byte{0xFF, 0xFE}):
		dec = unicode.BOMOverride(unicode.UTF8.NewDecoder())
	case utf8.Valid(raw):
		dec = transform.Nop
	default:
		dec = charmap.ISO8859_1.NewDecoder()
	}
	out, _, err := transform.Bytes(transform.Chain(dec, norm.NFC), raw)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func alphabetOf(words []string) []rune {
	letters := lo.Uniq(lo.FlatMap(words, func(w string, _ int) []rune {
		return []rune(w)
	}))
	slices.Sort(letters)
	return letters
}

func (d *Dictionary) Name() string { return d.name }

// Words returns the sorted word set. The caller must not modify it.
func (d *Dictionary) Words() []string { return d.words }

// Alphabet returns a copy of the sorted set of characters that appear in
// at least one word.
func (d *Dictionary) Alphabet() []rune { return slices.Clone(d.alphabet) }

func (d *Dictionary) Len() int { return len(d.words) }

func (d *Dictionary) Contains(word string) bool {
	_, found := slices.BinarySearch(d.words, word)
	return found
}
