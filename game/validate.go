package game

import (
	"errors"
	"fmt"
	"slices"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

var (
	ErrNotInAlphabet  = errors.New("not a guessable letter")
	ErrAlreadyGuessed = errors.New("letter already guessed")
)

// ValidationError is returned for a rejected guess. Reason is one of
// ErrNotInAlphabet or ErrAlreadyGuessed.
type ValidationError struct {
	Reason   error
	Input    string
	Alphabet []rune
}

func (e *ValidationError) Error() string {
	if errors.Is(e.Reason, ErrAlreadyGuessed) {
		return fmt.Sprintf("You already guessed the letter %q. Pick another.", e.Input)
	}
	return fmt.Sprintf("Wrong input, has to be one of: %s\n(or maybe you wanted to type \"quit\" or \"save\"?)",
		joinRunes(e.Alphabet, ", "))
}

func (e *ValidationError) Is(target error) bool {
	return target == e.Reason
}

func (e *ValidationError) Unwrap() error { return e.Reason }

// ValidateGuess checks a raw guess against the alphabet and the guesses so
// far. The input is case-folded first; it must be a single character.
// alphabet must be sorted.
func ValidateGuess(input string, alphabet, guessed []rune) (rune, error) {
	folded := norm.NFC.String(cases.Lower(language.Und).String(input))
	if utf8.RuneCountInString(folded) != 1 {
		return 0, &ValidationError{Reason: ErrNotInAlphabet, Input: folded, Alphabet: alphabet}
	}
	r, _ := utf8.DecodeRuneInString(folded)
	if _, found := slices.BinarySearch(alphabet, r); !found {
		return 0, &ValidationError{Reason: ErrNotInAlphabet, Input: folded, Alphabet: alphabet}
	}
	if slices.Contains(guessed, r) {
		return 0, &ValidationError{Reason: ErrAlreadyGuessed, Input: folded, Alphabet: alphabet}
	}
	return r, nil
}
