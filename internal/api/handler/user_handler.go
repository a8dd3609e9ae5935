package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/photogram/photogram-api/internal/core/ports"
)

// UserHandler serves username availability and profile edits.
type UserHandler struct {
	checker ports.UsernameChecker
	posts   ports.PostService
}

func NewUserHandler(checker ports.UsernameChecker, posts ports.PostService) *UserHandler {
	return &UserHandler{checker: checker, posts: posts}
}

type availabilityQuery struct {
	Username string `query:"username" validate:"required,min=5,max=20,username"`
}

type availabilityResponse struct {
	Username  string `json:"username"`
	Available bool   `json:"available"`
}

type editProfileRequest struct {
	Name        string `json:"name" validate:"required,min=5,max=20"`
	Username    string `json:"username" validate:"required,min=5,max=20,username"`
	Website     string `json:"website" validate:"omitempty,url"`
	Bio         string `json:"bio" validate:"max=150"`
	Email       string `json:"email" validate:"required,email"`
	PhoneNumber string `json:"phone_number"`
}

type mutationResponse struct {
	AffectedRows int    `json:"affected_rows"`
	CreatedAt    string `json:"created_at"`
	Date         string `json:"date"`
	Age          string `json:"age"`
}

func toMutationResponse(r *ports.MutationResult) mutationResponse {
	return mutationResponse{
		AffectedRows: r.AffectedRows,
		CreatedAt:    r.CreatedAt.UTC().Format(time.RFC3339),
		Date:         r.DateLabel,
		Age:          r.AgeLabel,
	}
}

type uploadResponse struct {
	URL string `json:"url"`
	Key string `json:"key"`
}

// Availability reports whether a username is still free. Only names that pass
// the static rules reach the store.
//
// @Summary      Check username availability
// @Tags         users
// @Produce      json
// @Param        username  query     string  true  "Username"
// @Success      200       {object}  availabilityResponse
// @Failure      400       {object}  map[string]string
// @Router       /v1/users/availability [get]
func (h *UserHandler) Availability(c echo.Context) error {
	var q availabilityQuery
	if err := c.Bind(&q); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid query"})
	}
	if err := c.Validate(&q); err != nil {
		return err
	}

	taken, err := h.checker.IsUsernameTaken(c.Request().Context(), q.Username)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, availabilityResponse{Username: q.Username, Available: !taken})
}

// EditProfile updates the caller's profile.
//
// @Summary      Edit profile
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        user_id  path      string              true  "User id"
// @Param        body     body      editProfileRequest  true  "Profile fields"
// @Success      200      {object}  mutationResponse
// @Failure      400      {object}  map[string]string
// @Failure      403      {object}  map[string]string
// @Failure      409      {object}  map[string]string
// @Router       /v1/users/{user_id} [put]
func (h *UserHandler) EditProfile(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}
	var req editProfileRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	res, err := h.posts.EditProfile(c.Request().Context(), ports.EditProfileInput{
		ID:          userID,
		Name:        req.Name,
		Username:    req.Username,
		Website:     req.Website,
		Bio:         req.Bio,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toMutationResponse(res))
}

// EditAvatar replaces the caller's profile image.
//
// @Summary      Upload avatar
// @Tags         users
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        user_id  path      string  true  "User id"
// @Param        file     formData  file    true  "Image"
// @Success      200      {object}  uploadResponse
// @Failure      400      {object}  map[string]string
// @Failure      403      {object}  map[string]string
// @Failure      415      {object}  map[string]string
// @Router       /v1/users/{user_id}/avatar [put]
func (h *UserHandler) EditAvatar(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}
	return withUpload(c, userID, func(in ports.UploadInput) error {
		res, err := h.posts.EditAvatar(c.Request().Context(), in)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, uploadResponse{URL: res.URL, Key: res.Key})
	})
}

// withUpload opens the "file" form part and hands it to fn.
func withUpload(c echo.Context, userID string, fn func(ports.UploadInput) error) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "file is required"})
	}
	f, err := fh.Open()
	if err != nil {
		return err
	}
	defer f.Close()

	return fn(ports.UploadInput{
		UserID:      userID,
		Filename:    fh.Filename,
		ContentType: fh.Header.Get(echo.HeaderContentType),
		Size:        fh.Size,
		Body:        f,
	})
}
