package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/photogram/photogram-api/internal/core/domain"
	"github.com/photogram/photogram-api/internal/core/ports"
)

// ReactionQueue accepts like/save toggles for asynchronous, ordered application.
type ReactionQueue interface {
	Enqueue(in ports.ReactionInput)
}

// PostHandler serves post, comment, media and reaction writes.
type PostHandler struct {
	posts     ports.PostService
	reactions ReactionQueue
}

func NewPostHandler(posts ports.PostService, reactions ReactionQueue) *PostHandler {
	return &PostHandler{posts: posts, reactions: reactions}
}

type createPostRequest struct {
	Media    string `json:"media" validate:"required,url"`
	Location string `json:"location" validate:"max=100"`
	Caption  string `json:"caption" validate:"max=2200"`
}

type createCommentRequest struct {
	PostID  string `param:"post_id" validate:"required,uuid"`
	Content string `json:"content" validate:"required"`
}

type reactionParams struct {
	PostID string `param:"post_id" validate:"required,uuid"`
}

type reactionResponse struct {
	PostID string `json:"post_id"`
	Kind   string `json:"kind"`
	Action string `json:"action"`
}

// CreatePost publishes a post for the caller.
//
// @Summary      Create a post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createPostRequest  true  "Post"
// @Success      201   {object}  mutationResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /v1/posts [post]
func (h *PostHandler) CreatePost(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}
	var req createPostRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	res, err := h.posts.CreatePost(c.Request().Context(), ports.CreatePostInput{
		UserID:   userID,
		Media:    req.Media,
		Location: req.Location,
		Caption:  req.Caption,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toMutationResponse(res))
}

// CreateComment adds a comment to a post.
//
// @Summary      Comment on a post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        post_id  path      string                true  "Post id"
// @Param        body     body      createCommentRequest  true  "Comment"
// @Success      201      {object}  mutationResponse
// @Failure      400      {object}  map[string]string
// @Router       /v1/posts/{post_id}/comments [post]
func (h *PostHandler) CreateComment(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}
	var req createCommentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	res, err := h.posts.CreateComment(c.Request().Context(), ports.CreateCommentInput{
		PostID:  req.PostID,
		UserID:  userID,
		Content: req.Content,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toMutationResponse(res))
}

// UploadMedia stores an image or video to be referenced by a new post.
//
// @Summary      Upload post media
// @Tags         posts
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        file  formData  file  true  "Image or video"
// @Success      201   {object}  uploadResponse
// @Failure      400   {object}  map[string]string
// @Failure      415   {object}  map[string]string
// @Router       /v1/media [post]
func (h *PostHandler) UploadMedia(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}
	return withUpload(c, userID, func(in ports.UploadInput) error {
		res, err := h.posts.UploadMedia(c.Request().Context(), in)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusCreated, uploadResponse{URL: res.URL, Key: res.Key})
	})
}

// Like handles PUT /v1/posts/:post_id/like.
//
// @Summary      Like a post
// @Tags         reactions
// @Produce      json
// @Security     BearerAuth
// @Param        post_id  path      string  true  "Post id"
// @Success      202      {object}  reactionResponse
// @Failure      400      {object}  map[string]string
// @Router       /v1/posts/{post_id}/like [put]
func (h *PostHandler) Like(c echo.Context) error {
	return h.react(c, domain.ReactionLike, domain.ReactionAdd)
}

// Unlike handles DELETE /v1/posts/:post_id/like.
//
// @Summary      Unlike a post
// @Tags         reactions
// @Produce      json
// @Security     BearerAuth
// @Param        post_id  path      string  true  "Post id"
// @Success      202      {object}  reactionResponse
// @Router       /v1/posts/{post_id}/like [delete]
func (h *PostHandler) Unlike(c echo.Context) error {
	return h.react(c, domain.ReactionLike, domain.ReactionRemove)
}

// Save handles PUT /v1/posts/:post_id/save.
//
// @Summary      Save a post
// @Tags         reactions
// @Produce      json
// @Security     BearerAuth
// @Param        post_id  path      string  true  "Post id"
// @Success      202      {object}  reactionResponse
// @Router       /v1/posts/{post_id}/save [put]
func (h *PostHandler) Save(c echo.Context) error {
	return h.react(c, domain.ReactionSave, domain.ReactionAdd)
}

// Unsave handles DELETE /v1/posts/:post_id/save.
//
// @Summary      Unsave a post
// @Tags         reactions
// @Produce      json
// @Security     BearerAuth
// @Param        post_id  path      string  true  "Post id"
// @Success      202      {object}  reactionResponse
// @Router       /v1/posts/{post_id}/save [delete]
func (h *PostHandler) Unsave(c echo.Context) error {
	return h.react(c, domain.ReactionSave, domain.ReactionRemove)
}

// react queues the toggle; the caller gets 202 once it is accepted.
func (h *PostHandler) react(c echo.Context, kind domain.ReactionKind, action domain.ReactionAction) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}
	var p reactionParams
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid post id"})
	}
	if err := c.Validate(&p); err != nil {
		return err
	}

	h.reactions.Enqueue(ports.ReactionInput{
		Kind:   string(kind),
		Action: string(action),
		PostID: p.PostID,
		UserID: userID,
	})
	return c.JSON(http.StatusAccepted, reactionResponse{PostID: p.PostID, Kind: string(kind), Action: string(action)})
}
