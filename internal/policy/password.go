// Package policy implements the password strength policy. Everything here is pure.
package policy

import (
	"crypto/subtle"
	"math"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	// MinLength is the minimum vault password length in characters.
	MinLength = 12
	// MinClasses is the minimum number of character classes (lower, upper, digit, symbol).
	MinClasses = 3
	// MinExportLength is the minimum export password length; export security rests on KDF cost.
	MinExportLength = 8
)

// Strength is an entropy-derived tier.
type Strength int

const (
	VeryWeak Strength = iota
	Weak
	Fair
	Strong
	VeryStrong
)

func (s Strength) String() string {
	switch s {
	case VeryWeak:
		return "very_weak"
	case Weak:
		return "weak"
	case Fair:
		return "fair"
	case Strong:
		return "strong"
	default:
		return "very_strong"
	}
}

// Result is the outcome of ValidatePassword.
type Result struct {
	Valid       bool
	Errors      []string
	Warnings    []string
	Strength    Strength
	EntropyBits float64
}

var blacklist = map[string]struct{}{
	"password": {}, "passwords": {}, "qwerty": {}, "qwertyuiop": {}, "letmein": {},
	"welcome": {}, "admin": {}, "administrator": {}, "iloveyou": {}, "monkey": {},
	"dragon": {}, "football": {}, "baseball": {}, "sunshine": {}, "princess": {},
	"master": {}, "shadow": {}, "trustno": {}, "abc": {}, "changeme": {},
	"secret": {}, "superman": {}, "starwars": {}, "whatever": {}, "login": {},
	"correcthorsebatterystaple": {},
}

var leet = strings.NewReplacer("0", "o", "1", "i", "3", "e", "4", "a", "5", "s", "7", "t", "@", "a", "$", "s", "!", "i")

// ValidatePassword checks password against the vault policy.
func ValidatePassword(password []byte) Result {
	var res Result
	n := utf8.RuneCount(password)

	if n < MinLength {
		res.Errors = append(res.Errors, "password must be at least 12 characters")
	}
	if c := classes(password); c < MinClasses {
		res.Errors = append(res.Errors, "password must mix at least 3 of: lowercase, uppercase, digits, symbols")
	}
	if isBlacklisted(password) {
		res.Errors = append(res.Errors, "password is too common")
	}

	res.EntropyBits = EntropyBits(password)
	res.Strength = tier(res.EntropyBits)
	if res.Strength < Fair {
		res.Errors = append(res.Errors, "password is too predictable")
	} else if res.Strength == Fair {
		res.Warnings = append(res.Warnings, "password strength is only fair; a longer passphrase is recommended")
	}
	res.Valid = len(res.Errors) == 0
	return res
}

// ValidateExportPassword checks the export password and its confirmation.
// It returns false for mismatch and a separate false for short length.
func ValidateExportPassword(password, confirm []byte) (matches, longEnough bool) {
	matches = len(password) == len(confirm) && subtle.ConstantTimeCompare(password, confirm) == 1
	longEnough = utf8.RuneCount(password) >= MinExportLength
	return matches, longEnough
}

// EntropyBits returns the Shannon entropy of the character distribution times the length.
func EntropyBits(password []byte) float64 {
	freq := make(map[rune]int)
	total := 0
	for _, r := range string(password) {
		freq[r]++
		total++
	}
	if total == 0 {
		return 0
	}
	var h float64
	for _, c := range freq {
		p := float64(c) / float64(total)
		h -= p * math.Log2(p)
	}
	return h * float64(total)
}

func tier(bits float64) Strength {
	switch {
	case bits < 28:
		return VeryWeak
	case bits < 36:
		return Weak
	case bits < 60:
		return Fair
	case bits < 128:
		return Strong
	default:
		return VeryStrong
	}
}

func classes(password []byte) int {
	var lower, upper, digit, symbol bool
	for _, r := range string(password) {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		case !unicode.IsSpace(r):
			symbol = true
		}
	}
	n := 0
	for _, ok := range []bool{lower, upper, digit, symbol} {
		if ok {
			n++
		}
	}
	return n
}

func isBlacklisted(password []byte) bool {
	s := strings.ToLower(string(password))
	stripped := strings.TrimRightFunc(s, func(r rune) bool { return !unicode.IsLetter(r) })
	for _, cand := range []string{s, stripped, leet.Replace(s), leet.Replace(stripped)} {
		if _, ok := blacklist[cand]; ok {
			return true
		}
	}
	return false
}
