package domain

import "errors"

// ErrEmailRemoved signals an update payload that drops a stored email address.
// Emails may only be added, never removed.
var ErrEmailRemoved = errors.New("deleting an email address is not allowed")

// CheckEmailRetention verifies that every email of the stored user survives
// into the incoming replacement. Count and uniqueness limits are the
// validator's job; this guard only protects against removal.
func CheckEmailRetention(existing, incoming *User) error {
	if existing == nil {
		return nil
	}
	next := make(map[string]struct{}, len(incoming.Emails))
	for _, email := range incoming.Emails {
		next[email] = struct{}{}
	}
	for _, email := range existing.Emails {
		if _, ok := next[email]; !ok {
			return ErrEmailRemoved
		}
	}
	return nil
}
