package domain

import "strings"

type Customer struct {
	ID    uint
	Name  string
	Email string
	Phone *string
}

// EmailKey is the form used for uniqueness checks. The email column uses an
// accent-sensitive, case-insensitive collation, so two emails differing only
// in case collide.
func EmailKey(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
