package ports

import (
	"context"
	"io"
	"time"
)

// CreatePostInput carries a new post.
type CreatePostInput struct {
	UserID   string
	Media    string
	Location string
	Caption  string
}

// CreateCommentInput carries a new comment.
type CreateCommentInput struct {
	PostID  string
	UserID  string
	Content string
}

// EditProfileInput carries the editable user fields.
type EditProfileInput struct {
	ID          string
	Name        string
	Username    string
	Website     string
	Bio         string
	Email       string
	PhoneNumber string
}

// UploadInput is an image received from the client.
type UploadInput struct {
	UserID      string
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// ReactionInput is a like/unlike or save/unsave request.
type ReactionInput struct {
	Kind   string
	Action string
	PostID string
	UserID string
}

// MutationResult reports the backend write plus display labels.
type MutationResult struct {
	AffectedRows int
	CreatedAt    time.Time
	DateLabel    string
	AgeLabel     string
}

// UploadResult is the stored media location.
type UploadResult struct {
	URL string
	Key string
}

// PostService defines the social write use-cases.
type PostService interface {
	CreatePost(ctx context.Context, input CreatePostInput) (*MutationResult, error)
	CreateComment(ctx context.Context, input CreateCommentInput) (*MutationResult, error)
	EditProfile(ctx context.Context, input EditProfileInput) (*MutationResult, error)
	EditAvatar(ctx context.Context, input UploadInput) (*UploadResult, error)
	UploadMedia(ctx context.Context, input UploadInput) (*UploadResult, error)
	// ApplyReaction performs the like/save mutation synchronously; the
	// dispatcher calls it from its workers.
	ApplyReaction(ctx context.Context, input ReactionInput) error
}
