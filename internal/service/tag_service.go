package service

import (
	"context"
	"miniblog/internal/database"
	"miniblog/internal/models"
	"miniblog/internal/repository"

	"github.com/jmoiron/sqlx"
)

type TagService interface {
	GetTag(ctx context.Context, tagID int64) (*models.Tag, error)
	SetPostTags(ctx context.Context, postID int64, tagIDs []int64) error
	TagsForPost(ctx context.Context, postID int64) ([]models.Tag, error)
	PostsForTag(ctx context.Context, tagID int64) ([]*models.Post, error)
}

type tagService struct {
	db      *database.DB
	tagRepo repository.TagRepository
}

func NewTagService(db *database.DB, tagRepo repository.TagRepository) TagService {
	return &tagService{
		db:      db,
		tagRepo: tagRepo,
	}
}

func (t *tagService) GetTag(ctx context.Context, tagID int64) (*models.Tag, error) {
	return t.tagRepo.GetByID(ctx, tagID)
}

// SetPostTags runs the replace-all sync in its own transaction so the three
// statements (read current, delete stale, insert missing) act on one snapshot.
func (t *tagService) SetPostTags(ctx context.Context, postID int64, tagIDs []int64) error {
	return t.db.Transact(ctx, func(tx *sqlx.Tx) error {
		return t.tagRepo.WithTx(tx).SyncPostTags(ctx, postID, tagIDs)
	})
}

func (t *tagService) TagsForPost(ctx context.Context, postID int64) ([]models.Tag, error) {
	return t.tagRepo.TagsForPost(ctx, postID)
}

func (t *tagService) PostsForTag(ctx context.Context, tagID int64) ([]*models.Post, error) {
	return t.tagRepo.PostsForTag(ctx, tagID)
}
