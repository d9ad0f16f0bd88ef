package registration

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// PasswordSymbols is the punctuation set a password must draw from.
const PasswordSymbols = `!@#$%^&*(),.?":{}|<>`

// MinPasswordLength is the shortest accepted password.
const MinPasswordLength = 8

// PasswordClasses records which character classes a password contains.
type PasswordClasses struct {
	Lower  bool
	Upper  bool
	Digit  bool
	Symbol bool
}

// Complete reports whether every class is present.
func (c PasswordClasses) Complete() bool {
	return c.Lower && c.Upper && c.Digit && c.Symbol
}

// ClassifyPassword scans s once and records the classes it contains.
// Only ASCII letters and digits count towards their classes.
func ClassifyPassword(s string) PasswordClasses {
	var c PasswordClasses
	for _, r := range s {
		switch {
		case r <= unicode.MaxASCII && unicode.IsLower(r):
			c.Lower = true
		case r <= unicode.MaxASCII && unicode.IsUpper(r):
			c.Upper = true
		case r >= '0' && r <= '9':
			c.Digit = true
		case strings.ContainsRune(PasswordSymbols, r):
			c.Symbol = true
		}
	}
	return c
}

// StrongPassword reports whether s meets the length and class requirements.
func StrongPassword(s string) bool {
	return utf8.RuneCountInString(s) >= MinPasswordLength && ClassifyPassword(s).Complete()
}
