package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/lib/pq"

	"miniblog/internal/core/posts"
)

type postgresPostRepo struct {
	db *sql.DB
}

// NewPostRepository creates a new PostgreSQL post repository
func NewPostRepository(db *sql.DB) posts.Repository {
	return &postgresPostRepo{db: db}
}

// Create inserts a new post row
func (r *postgresPostRepo) Create(ctx context.Context, post *posts.Post) (*posts.Post, error) {
	query := `
		INSERT INTO posts (id, user_id, text, image_url)
		VALUES ($1, $2, $3, $4)
		RETURNING id, user_id, text, image_url, created_at`

	err := r.db.QueryRowContext(ctx, query, post.ID, post.AuthorID, post.Text, post.ImageURL).
		Scan(&post.ID, &post.AuthorID, &post.Text, &post.ImageURL, &post.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	post.Likes = []posts.Like{}
	post.Comments = []posts.Comment{}
	return post, nil
}

// GetByID retrieves a post with its likes and comments loaded
func (r *postgresPostRepo) GetByID(ctx context.Context, id string) (*posts.Post, error) {
	post := &posts.Post{}
	query := `SELECT id, user_id, text, image_url, created_at FROM posts WHERE id = $1`

	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&post.ID, &post.AuthorID, &post.Text, &post.ImageURL, &post.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, posts.ErrPostNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get post by id: %w", err)
	}

	if err := r.attachInteractions(ctx, []*posts.Post{post}); err != nil {
		return nil, err
	}

	return post, nil
}

// List retrieves all posts newest first with likes and comments loaded
func (r *postgresPostRepo) List(ctx context.Context) ([]*posts.Post, error) {
	query := `SELECT id, user_id, text, image_url, created_at FROM posts ORDER BY created_at DESC, id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	defer closeRows(rows)

	result := []*posts.Post{}
	for rows.Next() {
		post := &posts.Post{}
		if err := rows.Scan(&post.ID, &post.AuthorID, &post.Text, &post.ImageURL, &post.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan post row: %w", err)
		}
		result = append(result, post)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating post rows: %w", err)
	}

	if err := r.attachInteractions(ctx, result); err != nil {
		return nil, err
	}

	return result, nil
}

// ToggleLike flips userID's like on the post inside one transaction.
// The primary key on (post_id, user_id) makes at-most-one-like-per-user
// a stored constraint rather than a convention of the toggle logic.
func (r *postgresPostRepo) ToggleLike(ctx context.Context, postID, userID string) (bool, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("failed to start like transaction: %w", err)
	}
	defer func() {
		if err := tx.Rollback(); err != nil && err != sql.ErrTxDone {
			slog.Error("failed to rollback like transaction",
				slog.String("post", postID),
				slog.String("error", err.Error()),
			)
		}
	}()

	var exists bool
	err = tx.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM posts WHERE id = $1)`, postID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check post existence: %w", err)
	}
	if !exists {
		return false, posts.ErrPostNotFound
	}

	res, err := tx.ExecContext(ctx,
		`DELETE FROM post_likes WHERE post_id = $1 AND user_id = $2`,
		postID, userID)
	if err != nil {
		return false, fmt.Errorf("failed to remove like: %w", err)
	}
	removed, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check removed like: %w", err)
	}

	liked := removed == 0
	if liked {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO post_likes (post_id, user_id) VALUES ($1, $2)`,
			postID, userID)
		if err != nil {
			return false, fmt.Errorf("failed to insert like: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit like transaction: %w", err)
	}

	return liked, nil
}

// AddComment appends a comment row
func (r *postgresPostRepo) AddComment(ctx context.Context, comment *posts.Comment) (*posts.Comment, error) {
	query := `
		INSERT INTO post_comments (post_id, user_id, text)
		VALUES ($1, $2, $3)
		RETURNING id, post_id, user_id, text, created_at`

	err := r.db.QueryRowContext(ctx, query, comment.PostID, comment.UserID, comment.Text).
		Scan(&comment.ID, &comment.PostID, &comment.UserID, &comment.Text, &comment.CreatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "violates foreign key constraint") {
			return nil, posts.ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to insert comment: %w", err)
	}

	return comment, nil
}

// attachInteractions loads likes and comments for the given posts with
// one query per table, then merges them in memory in insertion order.
func (r *postgresPostRepo) attachInteractions(ctx context.Context, result []*posts.Post) error {
	if len(result) == 0 {
		return nil
	}

	byID := make(map[string]*posts.Post, len(result))
	ids := make([]string, 0, len(result))
	for _, post := range result {
		post.Likes = []posts.Like{}
		post.Comments = []posts.Comment{}
		byID[post.ID] = post
		ids = append(ids, post.ID)
	}

	likeRows, err := r.db.QueryContext(ctx,
		`SELECT post_id, user_id, created_at FROM post_likes WHERE post_id = ANY($1) ORDER BY created_at, user_id`,
		pq.Array(ids))
	if err != nil {
		return fmt.Errorf("failed to load likes: %w", err)
	}
	defer closeRows(likeRows)

	for likeRows.Next() {
		var like posts.Like
		if err := likeRows.Scan(&like.PostID, &like.UserID, &like.CreatedAt); err != nil {
			return fmt.Errorf("failed to scan like row: %w", err)
		}
		if post, ok := byID[like.PostID]; ok {
			post.Likes = append(post.Likes, like)
		}
	}
	if err = likeRows.Err(); err != nil {
		return fmt.Errorf("error iterating like rows: %w", err)
	}

	commentRows, err := r.db.QueryContext(ctx,
		`SELECT id, post_id, user_id, text, created_at FROM post_comments WHERE post_id = ANY($1) ORDER BY id`,
		pq.Array(ids))
	if err != nil {
		return fmt.Errorf("failed to load comments: %w", err)
	}
	defer closeRows(commentRows)

	for commentRows.Next() {
		var comment posts.Comment
		if err := commentRows.Scan(&comment.ID, &comment.PostID, &comment.UserID, &comment.Text, &comment.CreatedAt); err != nil {
			return fmt.Errorf("failed to scan comment row: %w", err)
		}
		if post, ok := byID[comment.PostID]; ok {
			post.Comments = append(post.Comments, comment)
		}
	}
	if err = commentRows.Err(); err != nil {
		return fmt.Errorf("error iterating comment rows: %w", err)
	}

	return nil
}

func closeRows(rows *sql.Rows) {
	if err := rows.Close(); err != nil {
		slog.Warn("failed to close rows", slog.String("error", err.Error()))
	}
}
