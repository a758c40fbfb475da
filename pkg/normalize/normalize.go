// Package normalize holds the per-keystroke input filters. Every function is
// idempotent: applying it to its own output is a no-op.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"

	"github.com/chargedcycleworks/service-intake/pkg/models"
)

const (
	phoneDigits   = 10
	zipHeadDigits = 5
	zipTailDigits = 4
	stateLetters  = 2
)

var (
	keepNameRunes   = runes.Remove(runes.Predicate(func(r rune) bool { return !isNameRune(r) }))
	keepDigits      = runes.Remove(runes.Predicate(func(r rune) bool { return !isASCIIDigit(r) }))
	keepZipRunes    = runes.Remove(runes.Predicate(func(r rune) bool { return !isASCIIDigit(r) && r != '-' }))
	keepASCIILetter = runes.Remove(runes.Predicate(func(r rune) bool { return !isASCIILetter(r) }))
)

// Func is a single-field normalizer.
type Func func(string) string

var byField = map[string]Func{
	models.FieldFirstName: Name,
	models.FieldLastName:  Name,
	models.FieldCity:      City,
	models.FieldPhone:     Phone,
	models.FieldZip:       ZIP,
	models.FieldState:     State,
	models.FieldInitialsA: Initials,
	models.FieldInitialsB: Initials,
	models.FieldInitialsC: Initials,
}

// ForField returns the normalizer for a field, or the identity for fields
// that accept free text.
func ForField(field string) Func {
	if fn, ok := byField[field]; ok {
		return fn
	}
	return func(s string) string { return s }
}

// Name strips everything but ASCII letters, whitespace, apostrophes, hyphens
// and periods.
func Name(s string) string {
	return apply(keepNameRunes, s)
}

// City follows the same character set as Name.
func City(s string) string {
	return Name(s)
}

// Phone keeps up to ten digits and formats them progressively:
// "801", "(801) 5", "(801) 555-0", "(801) 555-0100".
func Phone(s string) string {
	digits := apply(keepDigits, s)
	if len(digits) > phoneDigits {
		digits = digits[:phoneDigits]
	}
	switch {
	case len(digits) < 4:
		return digits
	case len(digits) <= 6:
		return "(" + digits[:3] + ") " + digits[3:]
	default:
		return "(" + digits[:3] + ") " + digits[3:6] + "-" + digits[6:]
	}
}

// ZIP keeps digits and a single hyphen, caps the first group at five digits
// and the second at four. A digit typed after a full first group starts the
// second group behind an implied hyphen.
func ZIP(s string) string {
	var head, tail strings.Builder
	hyphen := false
	for _, r := range apply(keepZipRunes, s) {
		switch {
		case r == '-':
			if !hyphen && head.Len() > 0 {
				hyphen = true
			}
		case !hyphen && head.Len() < zipHeadDigits:
			head.WriteRune(r)
		case !hyphen:
			hyphen = true
			tail.WriteRune(r)
		case tail.Len() < zipTailDigits:
			tail.WriteRune(r)
		}
	}
	if !hyphen {
		return head.String()
	}
	return head.String() + "-" + tail.String()
}

// Initials keeps ASCII letters and upper-cases them.
func Initials(s string) string {
	return strings.ToUpper(apply(keepASCIILetter, s))
}

// State keeps at most two ASCII letters, upper-cased.
func State(s string) string {
	letters := strings.ToUpper(apply(keepASCIILetter, s))
	if len(letters) > stateLetters {
		letters = letters[:stateLetters]
	}
	return letters
}

func apply(t transform.Transformer, s string) string {
	out, _, err := transform.String(t, s)
	if err != nil {
		// runes.Remove never fails on valid input; keep the raw text otherwise.
		return s
	}
	return out
}

func isNameRune(r rune) bool {
	return isASCIILetter(r) || unicode.IsSpace(r) || r == '\'' || r == '-' || r == '.'
}

func isASCIILetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isASCIIDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
