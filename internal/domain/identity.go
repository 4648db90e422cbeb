package domain

import (
	"strconv"
	"strings"
)

// UserIdentity identifies a user of the counting service.
// It is the decimal form of the host platform's numeric user id.
type UserIdentity string

// IdentityFromID derives the identity from a numeric platform user id.
func IdentityFromID(id int64) UserIdentity {
	return UserIdentity(strconv.FormatInt(id, 10))
}

// ParseUserIdentity validates a user id typed by a human or read from
// configuration and normalizes it the same way IdentityFromID does.
func ParseUserIdentity(s string) (UserIdentity, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", ErrIdentityUnavailable
	}
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return "", ErrInvalidIdentity
	}
	return IdentityFromID(id), nil
}

// String returns the identity as used in request paths.
func (u UserIdentity) String() string {
	return string(u)
}

// IsZero reports whether the identity is empty.
func (u UserIdentity) IsZero() bool {
	return u == ""
}

// Ptr returns a pointer to a copy of the identity, or nil when empty.
func (u UserIdentity) Ptr() *UserIdentity {
	if u.IsZero() {
		return nil
	}
	return &u
}
