package repository

import "errors"

var (
	// ErrNotFound reports that an id, slug or tag did not resolve to a row.
	ErrNotFound = errors.New("not found")

	// ErrValidation reports an attribute violating a persistence constraint,
	// such as the 200-character title/slug bound or a duplicate slug.
	ErrValidation = errors.New("validation failed")
)
