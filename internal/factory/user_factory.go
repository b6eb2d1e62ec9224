// Package factory generates users for tests and seed data.
package factory

import (
	"context"
	"fmt"
	"miniblog/internal/models"
	"miniblog/internal/repository"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// DefaultPassword is the plaintext behind every factory-built credential.
const DefaultPassword = "password"

var names = []string{
	"Alice Walker", "Bob Hart", "Carol Jansen", "Dan Brooks",
	"Eve Martin", "Frank Osei", "Grace Lindqvist", "Henry Park",
}

var (
	seq int64

	hashOnce    sync.Once
	defaultHash string
)

// passwordHash returns the bcrypt hash of DefaultPassword, computed once and
// shared across all built users so bulk seeding stays cheap.
func passwordHash() string {
	hashOnce.Do(func() {
		hash, err := bcrypt.GenerateFromPassword([]byte(DefaultPassword), bcrypt.DefaultCost)
		if err != nil {
			panic(fmt.Sprintf("factory: hashing default password: %v", err))
		}
		defaultHash = string(hash)
	})
	return defaultHash
}

// Override mutates a user before it is returned or persisted.
type Override func(*models.User)

func WithName(name string) Override {
	return func(u *models.User) { u.Name = name }
}

func WithEmail(email string) Override {
	return func(u *models.User) { u.Email = email }
}

// Unverified clears the email verification timestamp.
func Unverified() Override {
	return func(u *models.User) { u.EmailVerifiedAt = nil }
}

// BuildUser returns an unpersisted user with a process-unique email, a
// verified-at timestamp of now and the shared default credential.
func BuildUser(overrides ...Override) *models.User {
	n := atomic.AddInt64(&seq, 1)
	now := time.Now()

	user := &models.User{
		Name:            names[int(n)%len(names)],
		Email:           fmt.Sprintf("user%d@example.net", n),
		PasswordHash:    passwordHash(),
		EmailVerifiedAt: &now,
		CreatedAt:       now,
	}

	for _, override := range overrides {
		override(user)
	}

	return user
}

// CreateUser builds a user and persists it through repo, which assigns the
// id and re-hashes DefaultPassword.
func CreateUser(ctx context.Context, repo repository.UserRepository, overrides ...Override) (*models.User, error) {
	user := BuildUser(overrides...)

	if err := repo.CreateUser(ctx, user, DefaultPassword); err != nil {
		return nil, fmt.Errorf("persisting factory user: %w", err)
	}

	return user, nil
}
