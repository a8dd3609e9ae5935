package ports

import (
	"context"

	"github.com/photogram/photogram-api/internal/core/domain"
)

// UsernameChecker answers the uniqueness query for a username.
type UsernameChecker interface {
	IsUsernameTaken(ctx context.Context, username string) (bool, error)
}

// SocialGraph is the write side of the external GraphQL store. Every call
// returns the number of affected rows reported by the backend.
type SocialGraph interface {
	UsernameChecker

	CreateUser(ctx context.Context, user *domain.User) (int, error)
	// ProfileID resolves the users.id row key for an auth uid.
	ProfileID(ctx context.Context, userID string) (string, error)
	EditUser(ctx context.Context, profile domain.Profile) (int, error)
	EditUserAvatar(ctx context.Context, id, profileImage string) (int, error)
	CreatePost(ctx context.Context, post domain.Post) (int, error)
	LikePost(ctx context.Context, postID, userID string) (int, error)
	UnlikePost(ctx context.Context, postID, userID string) (int, error)
	SavePost(ctx context.Context, postID, userID string) (int, error)
	UnsavePost(ctx context.Context, postID, userID string) (int, error)
	CreateComment(ctx context.Context, comment domain.Comment) (int, error)
}
