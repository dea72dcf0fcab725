package posts

import (
	"context"

	"miniblog/internal/core/users"
)

// Service defines the business logic interface for posts
type Service interface {
	// ListPosts returns every post, newest first, with all user
	// references resolved. No pagination or filtering.
	ListPosts(ctx context.Context) ([]*PostView, error)

	// GetPost returns one post with the same resolved shape as ListPosts.
	// Returns ErrPostNotFound if no post has the given id.
	GetPost(ctx context.Context, id string) (*PostView, error)

	// CreatePost persists a new post owned by authorID and returns it
	// with the owner resolved. Returns a ValidationError when text is
	// empty or absent.
	CreatePost(ctx context.Context, authorID string, req CreatePostRequest) (*PostView, error)

	// ToggleLike flips userID's like on a post: removes it if present,
	// adds it otherwise. Returns the updated post fully resolved.
	// Returns ErrPostNotFound if the post does not exist.
	ToggleLike(ctx context.Context, postID, userID string) (*PostView, error)

	// AddComment appends a comment by userID to a post and returns the
	// updated post fully resolved. Returns a ValidationError for empty
	// text, ErrPostNotFound for a missing post.
	AddComment(ctx context.Context, postID, userID, text string) (*PostView, error)
}

// Repository defines the data access interface for posts
type Repository interface {
	// Create inserts a new post row
	Create(ctx context.Context, post *Post) (*Post, error)

	// GetByID retrieves a post with its likes and comments loaded.
	// Returns ErrPostNotFound when the row does not exist.
	GetByID(ctx context.Context, id string) (*Post, error)

	// List retrieves all posts newest first, likes and comments loaded
	List(ctx context.Context) ([]*Post, error)

	// ToggleLike removes userID's like on the post if present, inserts
	// it otherwise, inside a single transaction. Returns whether the
	// post ends up liked. Returns ErrPostNotFound when the post row
	// does not exist.
	ToggleLike(ctx context.Context, postID, userID string) (liked bool, err error)

	// AddComment appends a comment row. Returns ErrPostNotFound when
	// the post does not exist.
	AddComment(ctx context.Context, comment *Comment) (*Comment, error)
}

// UserDirectory is the slice of the user repository the post service
// needs for reference resolution. Satisfied by users.Repository.
type UserDirectory interface {
	GetByIDs(ctx context.Context, ids []string) (map[string]*users.User, error)
}
