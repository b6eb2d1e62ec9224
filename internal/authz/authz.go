// Package authz holds the single access rule of the system: only the owning
// user may mutate a post. It must not grow beyond ownership equality without
// a new documented requirement.
package authz

import (
	"errors"
	"fmt"
	"miniblog/internal/models"
)

// ErrNotAllowed reports a failed ownership check.
var ErrNotAllowed = errors.New("not allowed")

// CanEdit is true iff user owns post. Fails closed: a missing user or post
// always denies.
func CanEdit(user *models.User, post *models.Post) bool {
	if user == nil || post == nil {
		return false
	}
	return user.ID == post.UserID
}

// Authorize returns ErrNotAllowed unless user may edit post.
func Authorize(user *models.User, post *models.Post) error {
	if !CanEdit(user, post) {
		return fmt.Errorf("editing post: %w", ErrNotAllowed)
	}
	return nil
}
