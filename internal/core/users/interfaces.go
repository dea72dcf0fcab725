package users

import "context"

// Service defines the business logic interface for users and their
// follow relationships
type Service interface {
	CreateUser(ctx context.Context, req CreateUserRequest) (*User, error)
	GetUserByID(ctx context.Context, id string) (*User, error)

	// ToggleFollow flips the follow edge caller→target: unfollows when
	// the edge exists, follows otherwise. Returns ErrSelfFollow when
	// callerID equals targetID and ErrUserNotFound when the target does
	// not exist. Both sides of the relationship are updated atomically.
	ToggleFollow(ctx context.Context, callerID, targetID string) (*ToggleFollowResponse, error)
}

// Repository defines the data access interface for users
type Repository interface {
	Create(ctx context.Context, user *User) (*User, error)

	// GetByID retrieves a user by id. Returns ErrUserNotFound when the
	// row does not exist.
	GetByID(ctx context.Context, id string) (*User, error)

	// GetByIDs retrieves multiple users in a single batch query.
	// Returns a map of id → User; missing users are simply absent from
	// the map, only database failures return an error.
	GetByIDs(ctx context.Context, ids []string) (map[string]*User, error)

	// ToggleFollow removes the follower→followee edge if present,
	// inserts it otherwise, inside a single transaction, and reads back
	// the follower's following ids and the followee's follower ids.
	// Returns ErrUserNotFound when the followee row does not exist.
	ToggleFollow(ctx context.Context, followerID, followeeID string) (*FollowState, error)
}
