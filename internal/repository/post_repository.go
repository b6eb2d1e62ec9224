package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"miniblog/internal/models"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/jmoiron/sqlx"
)

// maxFieldLen mirrors the varchar(200) bound on title and slug. The columns
// enforce it anyway, so reject before the driver does.
const maxFieldLen = 200

type postRepository struct {
	ext sqlx.ExtContext
}

func NewPostRepository(db *sqlx.DB) PostRepository {
	return &postRepository{ext: db}
}

func (r *postRepository) WithTx(tx *sqlx.Tx) PostRepository {
	return &postRepository{ext: tx}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	if utf8.RuneCountInString(post.Title) > maxFieldLen {
		return fmt.Errorf("title exceeds %d characters: %w", maxFieldLen, ErrValidation)
	}
	if utf8.RuneCountInString(post.Slug) > maxFieldLen {
		return fmt.Errorf("slug exceeds %d characters: %w", maxFieldLen, ErrValidation)
	}

	query := `
		INSERT INTO posts (user_id, title, text, slug, created_at, updated_at)
		VALUES (:user_id, :title, :text, :slug, :created_at, :updated_at)
		RETURNING id
	`

	now := time.Now()
	post.CreatedAt = now
	post.UpdatedAt = now

	rows, err := sqlx.NamedQueryContext(ctx, r.ext, query, post)
	if err != nil {
		if isSlugConflict(err) {
			return fmt.Errorf("slug %q is already taken: %w", post.Slug, ErrValidation)
		}
		return fmt.Errorf("creating post: %w", err)
	}
	defer rows.Close()

	if rows.Next() {
		if err := rows.Scan(&post.ID); err != nil {
			return fmt.Errorf("reading new post id: %w", err)
		}
	}

	return rows.Err()
}

func (r *postRepository) GetByID(ctx context.Context, postID int64) (*models.Post, error) {
	query := `SELECT * FROM posts WHERE id = $1`

	var post models.Post
	err := sqlx.GetContext(ctx, r.ext, &post, query, postID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("post %d: %w", postID, ErrNotFound)
		}
		return nil, fmt.Errorf("fetching post: %w", err)
	}

	return &post, nil
}

func (r *postRepository) GetBySlug(ctx context.Context, slug string) (*models.Post, error) {
	// First match by id if duplicates ever predate the unique index.
	query := `SELECT * FROM posts WHERE slug = $1 ORDER BY id LIMIT 1`

	var post models.Post
	err := sqlx.GetContext(ctx, r.ext, &post, query, slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("post %q: %w", slug, ErrNotFound)
		}
		return nil, fmt.Errorf("fetching post by slug: %w", err)
	}

	return &post, nil
}

// ListLatest returns one page of posts ordered newest first. The serial id
// breaks created_at ties, so equal timestamps page stably.
func (r *postRepository) ListLatest(ctx context.Context, pageSize, page int) ([]*models.Post, error) {
	if pageSize < 1 {
		pageSize = 1
	}
	if page < 1 {
		page = 1
	}

	query := `
		SELECT * FROM posts
		ORDER BY created_at DESC, id DESC
		LIMIT $1 OFFSET $2
	`

	posts := []*models.Post{}
	err := sqlx.SelectContext(ctx, r.ext, &posts, query, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, fmt.Errorf("listing posts: %w", err)
	}

	return posts, nil
}

func (r *postRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := sqlx.GetContext(ctx, r.ext, &count, `SELECT COUNT(*) FROM posts`)
	if err != nil {
		return 0, fmt.Errorf("counting posts: %w", err)
	}

	return count, nil
}

func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	if utf8.RuneCountInString(post.Title) > maxFieldLen {
		return fmt.Errorf("title exceeds %d characters: %w", maxFieldLen, ErrValidation)
	}
	if utf8.RuneCountInString(post.Slug) > maxFieldLen {
		return fmt.Errorf("slug exceeds %d characters: %w", maxFieldLen, ErrValidation)
	}

	query := `
		UPDATE posts SET
			title = :title,
			text = :text,
			slug = :slug,
			updated_at = :updated_at
		WHERE id = :id
	`

	post.UpdatedAt = time.Now()

	result, err := sqlx.NamedExecContext(ctx, r.ext, query, post)
	if err != nil {
		if isSlugConflict(err) {
			return fmt.Errorf("slug %q is already taken: %w", post.Slug, ErrValidation)
		}
		return fmt.Errorf("updating post: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking updated rows: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("post %d: %w", post.ID, ErrNotFound)
	}

	return nil
}

// Delete removes the post and its tag associations. Deleting an absent post
// is an error, not a no-op.
func (r *postRepository) Delete(ctx context.Context, postID int64) error {
	_, err := r.ext.ExecContext(ctx, `DELETE FROM post_tag WHERE post_id = $1`, postID)
	if err != nil {
		return fmt.Errorf("deleting post tags: %w", err)
	}

	result, err := r.ext.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, postID)
	if err != nil {
		return fmt.Errorf("deleting post: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking deleted rows: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("post %d: %w", postID, ErrNotFound)
	}

	return nil
}

func isSlugConflict(err error) bool {
	return strings.Contains(err.Error(), "duplicate key value") &&
		strings.Contains(err.Error(), "slug")
}
