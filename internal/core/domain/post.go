package domain

import (
	"errors"
	"time"
)

var (
	ErrEmptyComment     = errors.New("comment content is required")
	ErrMissingMedia     = errors.New("post media is required")
	ErrInvalidID        = errors.New("invalid identifier")
	ErrUnsupportedMedia = errors.New("unsupported media type")
	ErrInvalidReaction  = errors.New("invalid reaction")
	ErrInvalidProfile   = errors.New("invalid profile")
)

// Post is a published media item.
type Post struct {
	UserID    string
	Media     string
	Location  string
	Caption   string
	CreatedAt time.Time
}

// Comment is a text reply on a post.
type Comment struct {
	PostID    string
	UserID    string
	Content   string
	CreatedAt time.Time
}

// ReactionKind distinguishes likes from saves.
type ReactionKind string

const (
	ReactionLike ReactionKind = "like"
	ReactionSave ReactionKind = "save"
)

// ReactionAction adds or removes a reaction.
type ReactionAction string

const (
	ReactionAdd    ReactionAction = "add"
	ReactionRemove ReactionAction = "remove"
)

// Reaction is a like/unlike or save/unsave request for a (post, user) pair.
type Reaction struct {
	Kind   ReactionKind
	Action ReactionAction
	PostID string
	UserID string
}

// ParseReaction validates raw kind and action values.
func ParseReaction(kind, action string) (ReactionKind, ReactionAction, error) {
	k, a := ReactionKind(kind), ReactionAction(action)
	if (k != ReactionLike && k != ReactionSave) || (a != ReactionAdd && a != ReactionRemove) {
		return "", "", ErrInvalidReaction
	}
	return k, a, nil
}

// Key identifies the (post, user) pair; reactions sharing a key must apply in order.
func (r Reaction) Key() string {
	return r.PostID + ":" + r.UserID
}
