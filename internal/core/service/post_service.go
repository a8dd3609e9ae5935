package service

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/photogram/photogram-api/internal/core/domain"
	"github.com/photogram/photogram-api/internal/core/ports"
	"github.com/photogram/photogram-api/internal/pkg/metrics"
	"github.com/photogram/photogram-api/pkg/datefmt"
)

// PostService runs the social mutations against the graph store.
type PostService struct {
	graph    ports.SocialGraph
	media    ports.MediaStore
	validate *validator.Validate
	dates    *datefmt.Formatter
	now      func() time.Time
	logger   zerolog.Logger
}

func NewPostService(graph ports.SocialGraph, media ports.MediaStore, logger zerolog.Logger) *PostService {
	return &PostService{
		graph:    graph,
		media:    media,
		validate: NewFieldValidator(),
		dates:    datefmt.New(time.Now),
		now:      time.Now,
		logger:   logger,
	}
}

func (s *PostService) CreatePost(ctx context.Context, input ports.CreatePostInput) (*ports.MutationResult, error) {
	if err := requireIDs(input.UserID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.Media) == "" {
		return nil, domain.ErrMissingMedia
	}

	now := s.now().UTC()
	rows, err := s.graph.CreatePost(ctx, domain.Post{
		UserID:    input.UserID,
		Media:     input.Media,
		Location:  input.Location,
		Caption:   input.Caption,
		CreatedAt: now,
	})
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", input.UserID).Msg("failed to create post")
		return nil, err
	}

	metrics.ContentCreatedTotal.WithLabelValues("post").Inc()
	s.logger.Info().Str("user_id", input.UserID).Int("affected_rows", rows).Msg("post created")
	return s.result(rows, now), nil
}

func (s *PostService) CreateComment(ctx context.Context, input ports.CreateCommentInput) (*ports.MutationResult, error) {
	if err := requireIDs(input.PostID, input.UserID); err != nil {
		return nil, err
	}
	content := strings.TrimSpace(input.Content)
	if content == "" {
		return nil, domain.ErrEmptyComment
	}

	now := s.now().UTC()
	rows, err := s.graph.CreateComment(ctx, domain.Comment{
		PostID:    input.PostID,
		UserID:    input.UserID,
		Content:   content,
		CreatedAt: now,
	})
	if err != nil {
		s.logger.Error().Err(err).Str("post_id", input.PostID).Msg("failed to create comment")
		return nil, err
	}

	metrics.ContentCreatedTotal.WithLabelValues("comment").Inc()
	return s.result(rows, now), nil
}

// EditProfile rewrites the editable profile fields. A username already held by
// someone else surfaces as domain.ErrUsernameTaken.
func (s *PostService) EditProfile(ctx context.Context, input ports.EditProfileInput) (*ports.MutationResult, error) {
	if err := requireIDs(input.ID); err != nil {
		return nil, err
	}
	if checkField(s.validate, domain.FieldUsername, input.Username) != domain.FieldErrNone ||
		checkField(s.validate, domain.FieldName, input.Name) != domain.FieldErrNone ||
		checkField(s.validate, domain.FieldEmail, input.Email) != domain.FieldErrNone {
		return nil, domain.ErrInvalidProfile
	}

	rows, err := s.graph.EditUser(ctx, domain.Profile{
		ID:          input.ID,
		Name:        input.Name,
		Username:    input.Username,
		Website:     input.Website,
		Bio:         input.Bio,
		Email:       input.Email,
		PhoneNumber: input.PhoneNumber,
	})
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", input.ID).Msg("failed to edit profile")
		return nil, err
	}
	return s.result(rows, s.now().UTC()), nil
}

// EditAvatar stores the image and points the profile at it.
func (s *PostService) EditAvatar(ctx context.Context, input ports.UploadInput) (*ports.UploadResult, error) {
	if !strings.HasPrefix(input.ContentType, "image/") {
		return nil, domain.ErrUnsupportedMedia
	}
	uploaded, err := s.upload(ctx, "avatars", input)
	if err != nil {
		return nil, err
	}
	if _, err := s.graph.EditUserAvatar(ctx, input.UserID, uploaded.URL); err != nil {
		s.logger.Error().Err(err).Str("user_id", input.UserID).Msg("failed to update avatar")
		return nil, err
	}
	return uploaded, nil
}

// UploadMedia stores an image or video for a future post.
func (s *PostService) UploadMedia(ctx context.Context, input ports.UploadInput) (*ports.UploadResult, error) {
	if !strings.HasPrefix(input.ContentType, "image/") && !strings.HasPrefix(input.ContentType, "video/") {
		return nil, domain.ErrUnsupportedMedia
	}
	return s.upload(ctx, "posts", input)
}

// ApplyReaction runs the like/save mutation for a single request.
func (s *PostService) ApplyReaction(ctx context.Context, input ports.ReactionInput) error {
	if err := requireIDs(input.PostID, input.UserID); err != nil {
		return err
	}
	kind, action, err := domain.ParseReaction(input.Kind, input.Action)
	if err != nil {
		return err
	}

	var apply func(context.Context, string, string) (int, error)
	switch {
	case kind == domain.ReactionLike && action == domain.ReactionAdd:
		apply = s.graph.LikePost
	case kind == domain.ReactionLike:
		apply = s.graph.UnlikePost
	case action == domain.ReactionAdd:
		apply = s.graph.SavePost
	default:
		apply = s.graph.UnsavePost
	}
	if _, err := apply(ctx, input.PostID, input.UserID); err != nil {
		return fmt.Errorf("%s %s: %w", action, kind, err)
	}
	return nil
}

func (s *PostService) upload(ctx context.Context, prefix string, input ports.UploadInput) (*ports.UploadResult, error) {
	if err := requireIDs(input.UserID); err != nil {
		return nil, err
	}
	key := fmt.Sprintf("%s/%s/%s%s", prefix, input.UserID, uuid.NewString(), strings.ToLower(filepath.Ext(input.Filename)))
	url, err := s.media.Upload(ctx, key, input.Body, input.Size, input.ContentType)
	if err != nil {
		s.logger.Error().Err(err).Str("key", key).Msg("failed to upload media")
		return nil, err
	}
	return &ports.UploadResult{URL: url, Key: key}, nil
}

func (s *PostService) result(rows int, at time.Time) *ports.MutationResult {
	return &ports.MutationResult{
		AffectedRows: rows,
		CreatedAt:    at,
		DateLabel:    s.dates.PostDate(at),
		AgeLabel:     s.dates.DateToNowShort(at),
	}
}

func requireIDs(ids ...string) error {
	for _, id := range ids {
		if _, err := uuid.Parse(id); err != nil {
			return domain.ErrInvalidID
		}
	}
	return nil
}
