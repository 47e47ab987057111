package password

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"
)

// Password policy constants
const (
	// MinLength is the minimum number of characters a password must have
	MinLength = 8

	// MaxBytes is the longest password bcrypt will hash
	MaxBytes = 72

	// SpecialChars is the set of characters that count as "special"
	SpecialChars = "@$!%*?&"

	// Requirements describes the policy for prompts
	Requirements = "at least 8 characters and at most 72 bytes, 1 uppercase, 1 lowercase, 1 number, 1 special char"
)

// Cost is the bcrypt work factor used by Hash. Tests lower it to keep runs fast.
var Cost = bcrypt.DefaultCost

// emailPattern only anchors the start of the input, so trailing text after a
// valid prefix is accepted.
var emailPattern = regexp.MustCompile(`^[^@]+@[^@]+\.[^@]+`)

// ValidateEmail reports whether s looks like an email address:
// something, an "@", something, a ".", then something.
// This is intentionally loose and not RFC 5322.
func ValidateEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// ValidatePassword reports whether s satisfies the password policy:
//  1. At least MinLength characters and at most MaxBytes bytes
//  2. At least one uppercase ASCII letter
//  3. At least one lowercase ASCII letter
//  4. At least one ASCII digit
//  5. At least one character from SpecialChars
func ValidatePassword(s string) bool {
	if utf8.RuneCountInString(s) < MinLength || len(s) > MaxBytes {
		return false
	}

	var upper, lower, digit, special bool
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'A' && c <= 'Z':
			upper = true
		case c >= 'a' && c <= 'z':
			lower = true
		case c >= '0' && c <= '9':
			digit = true
		case strings.IndexByte(SpecialChars, c) >= 0:
			special = true
		}
	}

	return upper && lower && digit && special
}

// Hash returns a salted bcrypt hash of plain. Every call uses a fresh salt,
// so hashing the same password twice gives different strings.
func Hash(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), Cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Verify reports whether plain matches hash. The salt is read from the hash
// itself. A malformed hash never verifies.
func Verify(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
