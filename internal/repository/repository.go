package repository

import (
	"context"
	"miniblog/internal/models"

	"github.com/jmoiron/sqlx"
)

type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User, password string) error
	GetUserByID(ctx context.Context, userID int64) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	VerifyPassword(ctx context.Context, email, password string) (*models.User, error)
}

type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, postID int64) (*models.Post, error)
	GetBySlug(ctx context.Context, slug string) (*models.Post, error)
	ListLatest(ctx context.Context, pageSize, page int) ([]*models.Post, error)
	Count(ctx context.Context) (int, error)
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, postID int64) error
	WithTx(tx *sqlx.Tx) PostRepository
}

// TagRepository maintains the post_tag join set and answers tag-centric
// queries. SyncPostTags has replace-all semantics: the submitted set fully
// supersedes the current one.
type TagRepository interface {
	GetByID(ctx context.Context, tagID int64) (*models.Tag, error)
	SyncPostTags(ctx context.Context, postID int64, tagIDs []int64) error
	TagsForPost(ctx context.Context, postID int64) ([]models.Tag, error)
	PostsForTag(ctx context.Context, tagID int64) ([]*models.Post, error)
	WithTx(tx *sqlx.Tx) TagRepository
}

type Repository struct {
	User UserRepository
	Post PostRepository
	Tag  TagRepository
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{
		User: NewUserRepository(db),
		Post: NewPostRepository(db),
		Tag:  NewTagRepository(db),
	}
}
