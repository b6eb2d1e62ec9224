package models

import (
	"time"
)

type User struct {
	ID              int64      `json:"id" db:"id"`
	Name            string     `json:"name" db:"name"`
	Email           string     `json:"email" db:"email"`
	PasswordHash    string     `json:"-" db:"password_hash"`
	EmailVerifiedAt *time.Time `json:"emailVerifiedAt" db:"email_verified_at"`
	CreatedAt       time.Time  `json:"createdAt" db:"created_at"`
}

type Post struct {
	ID        int64     `json:"id" db:"id"`
	UserID    int64     `json:"userId" db:"user_id"`
	Title     string    `json:"title" db:"title"`
	Text      string    `json:"text" db:"text"`
	Slug      string    `json:"slug" db:"slug"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
	Tags      []Tag     `json:"tags,omitempty" db:"-"`
}

type Tag struct {
	ID  int64  `json:"id" db:"id"`
	Tag string `json:"tag" db:"tag"`
}

// PostAttributes is the complete attribute set accepted on create.
// Anything outside these fields is rejected at the decoding layer.
type PostAttributes struct {
	Title string `json:"title" validate:"required,max=200"`
	Text  string `json:"text" validate:"required"`
	Slug  string `json:"slug" validate:"required,max=200"`
}

// PostPatch is a partial update; nil fields are left unchanged.
type PostPatch struct {
	Title *string `json:"title" validate:"omitempty,max=200"`
	Text  *string `json:"text"`
	Slug  *string `json:"slug" validate:"omitempty,max=200"`
}
