package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"Pressfeed/internal/core/posts"
)

type postgresPostRepo struct {
	db *sql.DB
}

// NewPostRepository creates a new PostgreSQL post repository
func NewPostRepository(db *sql.DB) posts.Repository {
	return &postgresPostRepo{db: db}
}

// postColumns is the SELECT list shared by every read query. The author is
// always joined; the group join is LEFT so ungrouped posts survive.
const postColumns = `
	p.id, p.text, p.published_at,
	p.author_id, u.username,
	p.group_id, g.slug, g.title`

const postFrom = `
	FROM posts p
	INNER JOIN users u ON p.author_id = u.id
	LEFT JOIN groups g ON p.group_id = g.id`

// Ordering invariant for every feed: most recent first, id as tie-breaker.
const postOrder = ` ORDER BY p.published_at DESC, p.id DESC`

// Create inserts a new post into the posts table
func (r *postgresPostRepo) Create(ctx context.Context, post *posts.Post) (*posts.Post, error) {
	query := `
		INSERT INTO posts (text, published_at, author_id, group_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, published_at`

	var groupID sql.NullInt64
	if post.GroupID != nil {
		groupID = sql.NullInt64{Int64: *post.GroupID, Valid: true}
	}

	err := r.db.QueryRowContext(ctx, query, post.Text, post.PublishedAt, post.AuthorID, groupID).
		Scan(&post.ID, &post.PublishedAt)
	if err != nil {
		if strings.Contains(err.Error(), "violates foreign key constraint") {
			if strings.Contains(err.Error(), "posts_author_id_fkey") {
				return nil, fmt.Errorf("author %d not found", post.AuthorID)
			}
			if strings.Contains(err.Error(), "posts_group_id_fkey") {
				return nil, posts.NewValidationError("group", "group does not exist")
			}
		}
		return nil, fmt.Errorf("failed to insert post: %w", err)
	}

	return r.GetByID(ctx, post.ID)
}

// GetByID retrieves a post with its author and group joined in
func (r *postgresPostRepo) GetByID(ctx context.Context, id int64) (*posts.Post, error) {
	query := `SELECT` + postColumns + postFrom + ` WHERE p.id = $1`

	post, err := scanPost(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, posts.ErrPostNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get post by id: %w", err)
	}

	return post, nil
}

// Update persists new text and group assignment for an existing post.
// A single UPDATE statement; concurrent edits are last-write-wins.
func (r *postgresPostRepo) Update(ctx context.Context, post *posts.Post) (*posts.Post, error) {
	query := `UPDATE posts SET text = $2, group_id = $3 WHERE id = $1`

	var groupID sql.NullInt64
	if post.GroupID != nil {
		groupID = sql.NullInt64{Int64: *post.GroupID, Valid: true}
	}

	res, err := r.db.ExecContext(ctx, query, post.ID, post.Text, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to update post: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to read update result: %w", err)
	}
	if affected == 0 {
		return nil, posts.ErrPostNotFound
	}

	return r.GetByID(ctx, post.ID)
}

// ListAll returns every post, newest first
func (r *postgresPostRepo) ListAll(ctx context.Context) ([]*posts.Post, error) {
	query := `SELECT` + postColumns + postFrom + postOrder
	return r.queryPosts(ctx, query)
}

// ListByGroupID returns a group's posts, newest first
func (r *postgresPostRepo) ListByGroupID(ctx context.Context, groupID int64) ([]*posts.Post, error) {
	query := `SELECT` + postColumns + postFrom + ` WHERE p.group_id = $1` + postOrder
	return r.queryPosts(ctx, query, groupID)
}

// ListByAuthorID returns an author's posts, newest first
func (r *postgresPostRepo) ListByAuthorID(ctx context.Context, authorID int64) ([]*posts.Post, error) {
	query := `SELECT` + postColumns + postFrom + ` WHERE p.author_id = $1` + postOrder
	return r.queryPosts(ctx, query, authorID)
}

func (r *postgresPostRepo) queryPosts(ctx context.Context, query string, args ...interface{}) ([]*posts.Post, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query posts: %w", err)
	}
	defer rows.Close()

	var out []*posts.Post
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		out = append(out, post)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate posts: %w", err)
	}

	return out, nil
}

// scanner covers both *sql.Row and *sql.Rows
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanPost(row scanner) (*posts.Post, error) {
	post := &posts.Post{}
	var groupID sql.NullInt64
	var groupSlug, groupTitle sql.NullString

	err := row.Scan(
		&post.ID, &post.Text, &post.PublishedAt,
		&post.AuthorID, &post.AuthorUsername,
		&groupID, &groupSlug, &groupTitle,
	)
	if err != nil {
		return nil, err
	}

	if groupID.Valid {
		post.GroupID = &groupID.Int64
	}
	if groupSlug.Valid {
		post.GroupSlug = &groupSlug.String
	}
	if groupTitle.Valid {
		post.GroupTitle = &groupTitle.String
	}

	return post, nil
}
