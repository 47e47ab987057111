// Package credentials persists the credential table: the ordered list of
// user records that the login and password reset flows read and rewrite.
//
// The table is always loaded and saved as a whole. Stores do no locking and
// must not be used from more than one goroutine or process at a time.
package credentials

import (
	"context"
)

// Record is a single user entry in the credential table
type Record struct {
	Email            string // Unique key (assumed, not enforced)
	HashedPassword   string // bcrypt hash
	SecurityQuestion string // Shown during password reset
	SecurityAnswer   string // Plaintext, compared exactly
}

// Store loads and saves the whole credential table
type Store interface {
	// Load returns every record in stored order
	Load(ctx context.Context) ([]Record, error)

	// Save replaces the stored table with records
	Save(ctx context.Context, records []Record) error
}

// Header is the column layout of the credential file
var Header = []string{"email", "hashed_password", "security_question", "security_answer"}

// FindByEmail returns the index of the first record with the given email,
// or -1 if there is none.
func FindByEmail(records []Record, email string) int {
	for i, r := range records {
		if r.Email == email {
			return i
		}
	}
	return -1
}
