package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/photogram/photogram-api/internal/core/domain"
	"github.com/photogram/photogram-api/internal/core/ports"
)

// SignUpHandler exposes server-held sign-up forms.
type SignUpHandler struct {
	service ports.SignUpService
}

func NewSignUpHandler(service ports.SignUpService) *SignUpHandler {
	return &SignUpHandler{service: service}
}

type fieldValueRequest struct {
	Value string `json:"value"`
}

type fieldStateResponse struct {
	Touched bool   `json:"touched"`
	Status  string `json:"status"`
	Error   string `json:"error,omitempty"`
}

type formStateResponse struct {
	ID          string                        `json:"id"`
	Fields      map[string]fieldStateResponse `json:"fields"`
	CanSubmit   bool                          `json:"can_submit"`
	Submitting  bool                          `json:"submitting"`
	Error       string                        `json:"error,omitempty"`
	ErrorKind   string                        `json:"error_kind,omitempty"`
	RedirectTo  string                        `json:"redirect_to,omitempty"`
	Submissions int                           `json:"submissions"`
}

func toFormStateResponse(s *domain.FormState) formStateResponse {
	fields := make(map[string]fieldStateResponse, len(s.Fields))
	for name, st := range s.Fields {
		fields[string(name)] = fieldStateResponse{
			Touched: st.Touched,
			Status:  string(st.Status),
			Error:   string(st.Error),
		}
	}
	return formStateResponse{
		ID:          s.ID,
		Fields:      fields,
		CanSubmit:   s.CanSubmit,
		Submitting:  s.Submitting,
		Error:       s.Error,
		ErrorKind:   string(s.ErrorKind),
		RedirectTo:  s.RedirectTo,
		Submissions: s.Submissions,
	}
}

// Start opens a new sign-up form.
//
// @Summary      Open a sign-up form
// @Tags         signup
// @Produce      json
// @Success      201  {object}  formStateResponse
// @Router       /v1/signup [post]
func (h *SignUpHandler) Start(c echo.Context) error {
	state, err := h.service.Start(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toFormStateResponse(state))
}

// Get returns the current form state.
//
// @Summary      Get a sign-up form
// @Tags         signup
// @Produce      json
// @Param        id   path      string  true  "Form id"
// @Success      200  {object}  formStateResponse
// @Failure      404  {object}  map[string]string
// @Router       /v1/signup/{id} [get]
func (h *SignUpHandler) Get(c echo.Context) error {
	state, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toFormStateResponse(state))
}

// Change records a field value while the user types. The field has no
// verdict until its next blur.
//
// @Summary      Update a sign-up field
// @Tags         signup
// @Accept       json
// @Produce      json
// @Param        id     path      string             true  "Form id"
// @Param        field  path      string             true  "email, name, username or password"
// @Param        body   body      fieldValueRequest  true  "Field value"
// @Success      200    {object}  formStateResponse
// @Failure      400    {object}  map[string]string
// @Failure      404    {object}  map[string]string
// @Router       /v1/signup/{id}/fields/{field} [put]
func (h *SignUpHandler) Change(c echo.Context) error {
	field, value, err := bindFieldValue(c)
	if err != nil {
		return err
	}
	state, err := h.service.Change(c.Request().Context(), c.Param("id"), field, value)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toFormStateResponse(state))
}

func bindFieldValue(c echo.Context) (domain.Field, string, error) {
	field, err := domain.ParseField(c.Param("field"))
	if err != nil {
		return "", "", err
	}
	var req fieldValueRequest
	if err := c.Bind(&req); err != nil {
		return "", "", echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	return field, req.Value, nil
}

// Blur records a field value as the input loses focus and validates it.
//
// @Summary      Validate a sign-up field
// @Tags         signup
// @Accept       json
// @Produce      json
// @Param        id     path      string             true  "Form id"
// @Param        field  path      string             true  "email, name, username or password"
// @Param        body   body      fieldValueRequest  true  "Field value"
// @Success      200    {object}  formStateResponse
// @Failure      400    {object}  map[string]string
// @Failure      404    {object}  map[string]string
// @Router       /v1/signup/{id}/fields/{field}/blur [post]
func (h *SignUpHandler) Blur(c echo.Context) error {
	field, value, err := bindFieldValue(c)
	if err != nil {
		return err
	}
	state, err := h.service.Blur(c.Request().Context(), c.Param("id"), field, value)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toFormStateResponse(state))
}

// Submit creates the account from the validated form. Provider failures are
// reported in the body with a 200; redirect_to is set on success.
//
// @Summary      Submit a sign-up form
// @Tags         signup
// @Produce      json
// @Param        id   path      string  true  "Form id"
// @Success      200  {object}  formStateResponse
// @Failure      404  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Failure      422  {object}  map[string]string
// @Router       /v1/signup/{id}/submit [post]
func (h *SignUpHandler) Submit(c echo.Context) error {
	state, err := h.service.Submit(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toFormStateResponse(state))
}
