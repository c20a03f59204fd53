package repository

import "errors"

// ErrNotFound marks lookups that matched no row. The resolver turns it
// into a typed Miss; callers that treat absence as fatal check it with
// errors.Is.
var ErrNotFound = errors.New("not found")
