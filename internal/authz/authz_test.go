package authz_test

import (
	"miniblog/internal/authz"
	"miniblog/internal/models"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanEdit(t *testing.T) {
	owner := &models.User{ID: 7}
	other := &models.User{ID: 8}
	post := &models.Post{ID: 42, UserID: 7}

	tests := []struct {
		name string
		user *models.User
		post *models.Post
		want bool
	}{
		{"owner may edit", owner, post, true},
		{"any other user may not", other, post, false},
		{"missing user denies", nil, post, false},
		{"missing post denies", owner, nil, false},
		{"both missing denies", nil, nil, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, authz.CanEdit(tc.user, tc.post))
		})
	}
}

func TestAuthorize(t *testing.T) {
	owner := &models.User{ID: 7}
	post := &models.Post{ID: 42, UserID: 7}

	assert.NoError(t, authz.Authorize(owner, post))

	err := authz.Authorize(&models.User{ID: 8}, post)
	assert.ErrorIs(t, err, authz.ErrNotAllowed)
}
