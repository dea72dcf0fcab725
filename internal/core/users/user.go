package users

import (
	"time"
)

// User is a user row. Credentials and registration live with an
// external collaborator; this service only reads users and maintains
// their follow relationships.
type User struct {
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
}

// CreateUserRequest is the input for creating a new user row.
// Used by the registration collaborator and by tests.
type CreateUserRequest struct {
	Name string `json:"name"`
}

// FollowState is the outcome of a follow toggle: whether the edge now
// exists, the caller's following ids and the target's follower ids.
type FollowState struct {
	Following []string
	Followers []string
	Followed  bool
}

// ToggleFollowResponse is the wire shape returned by the follow route.
// Following lists the caller's followed user ids, Followers the
// target's follower ids, both after the toggle.
type ToggleFollowResponse struct {
	Message   string   `json:"message"`
	Following []string `json:"following"`
	Followers []string `json:"followers"`
}
