package posts

import (
	"time"
)

// Post is a post row plus its loaded like and comment rows.
// Likes and Comments are owned by the post; they have no identity or
// lifecycle outside it.
type Post struct {
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	ID        string    `json:"id" db:"id"`
	AuthorID  string    `json:"user" db:"user_id"`
	Text      string    `json:"text" db:"text"`
	ImageURL  string    `json:"imageUrl" db:"image_url"`
	Likes     []Like    `json:"likes"`
	Comments  []Comment `json:"comments"`
}

// Like records that a user liked a post. A user appears at most once
// per post; insertion order is preserved on read.
type Like struct {
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	PostID    string    `json:"-" db:"post_id"`
	UserID    string    `json:"user" db:"user_id"`
}

// Comment is an append-only entry on a post. Unlike likes, the same
// user may comment any number of times.
type Comment struct {
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	PostID    string    `json:"-" db:"post_id"`
	UserID    string    `json:"user" db:"user_id"`
	Text      string    `json:"text" db:"text"`
	ID        int64     `json:"-" db:"id"`
}

// CreatePostRequest is the input for creating a new post.
// AuthorID is never taken from the request body; handlers set it from
// the authenticated caller.
type CreatePostRequest struct {
	Text     string `json:"text"`
	ImageURL string `json:"imageUrl,omitempty"`
}

// UserRef is the resolved form of a stored user id: enough of the user
// for direct client consumption. Callers never see a raw id where a
// name is expected.
type UserRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// PostView is the read shape of a post with every user reference
// resolved: the author, each like's user, each comment's user.
type PostView struct {
	CreatedAt time.Time     `json:"createdAt"`
	ID        string        `json:"id"`
	Text      string        `json:"text"`
	ImageURL  string        `json:"imageUrl"`
	User      UserRef       `json:"user"`
	Likes     []LikeView    `json:"likes"`
	Comments  []CommentView `json:"comments"`
}

// LikeView is a like with its user resolved.
type LikeView struct {
	CreatedAt time.Time `json:"createdAt"`
	User      UserRef   `json:"user"`
}

// CommentView is a comment with its user resolved.
type CommentView struct {
	CreatedAt time.Time `json:"createdAt"`
	User      UserRef   `json:"user"`
	Text      string    `json:"text"`
}
