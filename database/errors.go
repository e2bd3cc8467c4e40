package database

import "errors"

// ErrNotFound is returned when a lookup or mutation targets an id that does
// not exist. Handlers translate it to HTTP 404.
var ErrNotFound = errors.New("not found")
