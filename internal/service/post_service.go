package service

import (
	"context"
	"fmt"
	"miniblog/internal/authz"
	"miniblog/internal/database"
	"miniblog/internal/models"
	"miniblog/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
)

type PostService interface {
	CreatePost(ctx context.Context, owner *models.User, attrs models.PostAttributes, tagIDs []int64) (*models.Post, error)
	GetPost(ctx context.Context, postID int64) (*models.Post, error)
	GetPostBySlug(ctx context.Context, slug string) (*models.Post, error)
	ListLatest(ctx context.Context, pageSize, page int) ([]*models.Post, int, error)
	UpdatePost(ctx context.Context, actor *models.User, postID int64, patch models.PostPatch, tagIDs []int64) (*models.Post, error)
	DeletePost(ctx context.Context, actor *models.User, postID int64) error
}

type postService struct {
	db       *database.DB
	postRepo repository.PostRepository
	tagRepo  repository.TagRepository
	validate *validator.Validate
}

func NewPostService(db *database.DB, postRepo repository.PostRepository, tagRepo repository.TagRepository) PostService {
	return &postService{
		db:       db,
		postRepo: postRepo,
		tagRepo:  tagRepo,
		validate: validator.New(),
	}
}

// CreatePost stores a new post for owner and attaches the given tag set,
// both inside one transaction. The attribute set is re-validated here even
// though the HTTP layer already did: the length bounds are a persistence
// invariant, not just a form rule.
func (p *postService) CreatePost(ctx context.Context, owner *models.User, attrs models.PostAttributes, tagIDs []int64) (*models.Post, error) {
	if owner == nil {
		return nil, fmt.Errorf("creating post without a user: %w", authz.ErrNotAllowed)
	}

	if err := p.validate.Struct(attrs); err != nil {
		return nil, fmt.Errorf("invalid post attributes (%v): %w", err, repository.ErrValidation)
	}

	post := &models.Post{
		UserID: owner.ID,
		Title:  attrs.Title,
		Text:   attrs.Text,
		Slug:   attrs.Slug,
	}

	err := p.db.Transact(ctx, func(tx *sqlx.Tx) error {
		if err := p.postRepo.WithTx(tx).Create(ctx, post); err != nil {
			return err
		}
		return p.tagRepo.WithTx(tx).SyncPostTags(ctx, post.ID, tagIDs)
	})
	if err != nil {
		return nil, err
	}

	return p.loadTags(ctx, post)
}

func (p *postService) GetPost(ctx context.Context, postID int64) (*models.Post, error) {
	post, err := p.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	return p.loadTags(ctx, post)
}

func (p *postService) GetPostBySlug(ctx context.Context, slug string) (*models.Post, error) {
	post, err := p.postRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	return p.loadTags(ctx, post)
}

func (p *postService) ListLatest(ctx context.Context, pageSize, page int) ([]*models.Post, int, error) {
	posts, err := p.postRepo.ListLatest(ctx, pageSize, page)
	if err != nil {
		return nil, 0, err
	}

	total, err := p.postRepo.Count(ctx)
	if err != nil {
		return nil, 0, err
	}

	return posts, total, nil
}

// UpdatePost applies a partial patch and replaces the tag set. The ownership
// check runs before any store mutation; the patch and tag sync then commit
// together or not at all.
func (p *postService) UpdatePost(ctx context.Context, actor *models.User, postID int64, patch models.PostPatch, tagIDs []int64) (*models.Post, error) {
	post, err := p.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	if err := authz.Authorize(actor, post); err != nil {
		return nil, err
	}

	if err := p.validate.Struct(patch); err != nil {
		return nil, fmt.Errorf("invalid post patch (%v): %w", err, repository.ErrValidation)
	}

	if patch.Title != nil {
		post.Title = *patch.Title
	}
	if patch.Text != nil {
		post.Text = *patch.Text
	}
	if patch.Slug != nil {
		post.Slug = *patch.Slug
	}

	err = p.db.Transact(ctx, func(tx *sqlx.Tx) error {
		if err := p.postRepo.WithTx(tx).Update(ctx, post); err != nil {
			return err
		}
		return p.tagRepo.WithTx(tx).SyncPostTags(ctx, post.ID, tagIDs)
	})
	if err != nil {
		return nil, err
	}

	return p.loadTags(ctx, post)
}

func (p *postService) DeletePost(ctx context.Context, actor *models.User, postID int64) error {
	post, err := p.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}

	if err := authz.Authorize(actor, post); err != nil {
		return err
	}

	return p.db.Transact(ctx, func(tx *sqlx.Tx) error {
		return p.postRepo.WithTx(tx).Delete(ctx, postID)
	})
}

func (p *postService) loadTags(ctx context.Context, post *models.Post) (*models.Post, error) {
	tags, err := p.tagRepo.TagsForPost(ctx, post.ID)
	if err != nil {
		return nil, err
	}

	post.Tags = tags
	return post, nil
}
