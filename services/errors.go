package services

import "errors"

var (
	// ErrNotFound covers missing log entries, foods, and sessions.
	// Lookups are scoped to the requesting user, so acting on someone
	// else's row surfaces the same way as a row that never existed.
	ErrNotFound = errors.New("not found")

	// ErrCatalogWrite marks a failed Food+Servings insert. The whole
	// unit is rolled back; callers surface a generic database error.
	ErrCatalogWrite = errors.New("catalog write failed")

	// ErrUsernameTaken is returned on signup when the username exists.
	ErrUsernameTaken = errors.New("username already taken")
)
