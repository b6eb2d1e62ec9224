package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"miniblog/internal/models"
	"sort"

	"github.com/jmoiron/sqlx"
)

type tagRepository struct {
	ext sqlx.ExtContext
}

func NewTagRepository(db *sqlx.DB) TagRepository {
	return &tagRepository{ext: db}
}

func (r *tagRepository) WithTx(tx *sqlx.Tx) TagRepository {
	return &tagRepository{ext: tx}
}

func (r *tagRepository) GetByID(ctx context.Context, tagID int64) (*models.Tag, error) {
	var tag models.Tag
	err := sqlx.GetContext(ctx, r.ext, &tag, `SELECT * FROM tags WHERE id = $1`, tagID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("tag %d: %w", tagID, ErrNotFound)
		}
		return nil, fmt.Errorf("fetching tag: %w", err)
	}

	return &tag, nil
}

// SyncPostTags replaces the post's tag set with exactly tagIDs. Rows already
// present stay untouched, stale rows are deleted, missing rows are inserted.
// A nil or empty set clears every association for the post.
func (r *tagRepository) SyncPostTags(ctx context.Context, postID int64, tagIDs []int64) error {
	var current []int64
	err := sqlx.SelectContext(ctx, r.ext, &current,
		`SELECT tag_id FROM post_tag WHERE post_id = $1`, postID)
	if err != nil {
		return fmt.Errorf("reading current tags: %w", err)
	}

	want := make(map[int64]bool, len(tagIDs))
	for _, id := range tagIDs {
		want[id] = true
	}
	have := make(map[int64]bool, len(current))
	for _, id := range current {
		have[id] = true
	}

	var stale, missing []int64
	for _, id := range current {
		if !want[id] {
			stale = append(stale, id)
		}
	}
	for id := range want {
		if !have[id] {
			missing = append(missing, id)
		}
	}
	sort.Slice(stale, func(i, j int) bool { return stale[i] < stale[j] })
	sort.Slice(missing, func(i, j int) bool { return missing[i] < missing[j] })

	for _, id := range stale {
		_, err := r.ext.ExecContext(ctx,
			`DELETE FROM post_tag WHERE post_id = $1 AND tag_id = $2`, postID, id)
		if err != nil {
			return fmt.Errorf("removing tag %d: %w", id, err)
		}
	}

	for _, id := range missing {
		_, err := r.ext.ExecContext(ctx,
			`INSERT INTO post_tag (post_id, tag_id) VALUES ($1, $2)`, postID, id)
		if err != nil {
			return fmt.Errorf("attaching tag %d: %w", id, err)
		}
	}

	return nil
}

// TagsForPost returns the post's tags ordered by tag id ascending. A missing
// post is an error, distinct from a post with no tags.
func (r *tagRepository) TagsForPost(ctx context.Context, postID int64) ([]models.Tag, error) {
	var exists bool
	err := sqlx.GetContext(ctx, r.ext, &exists,
		`SELECT EXISTS (SELECT 1 FROM posts WHERE id = $1)`, postID)
	if err != nil {
		return nil, fmt.Errorf("checking post: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("post %d: %w", postID, ErrNotFound)
	}

	query := `
		SELECT t.id, t.tag FROM tags t
		JOIN post_tag pt ON pt.tag_id = t.id
		WHERE pt.post_id = $1
		ORDER BY t.id
	`

	tags := []models.Tag{}
	err = sqlx.SelectContext(ctx, r.ext, &tags, query, postID)
	if err != nil {
		return nil, fmt.Errorf("fetching post tags: %w", err)
	}

	return tags, nil
}

// PostsForTag returns the posts carrying the tag, newest first. A missing tag
// is an error; a tag with no posts yields an empty slice.
func (r *tagRepository) PostsForTag(ctx context.Context, tagID int64) ([]*models.Post, error) {
	if _, err := r.GetByID(ctx, tagID); err != nil {
		return nil, err
	}

	query := `
		SELECT p.* FROM posts p
		JOIN post_tag pt ON pt.post_id = p.id
		WHERE pt.tag_id = $1
		ORDER BY p.created_at DESC, p.id DESC
	`

	posts := []*models.Post{}
	err := sqlx.SelectContext(ctx, r.ext, &posts, query, tagID)
	if err != nil {
		return nil, fmt.Errorf("fetching posts for tag: %w", err)
	}

	return posts, nil
}
