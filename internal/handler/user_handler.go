package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/noah-isme/school-pay-api/internal/store"
	appErrors "github.com/noah-isme/school-pay-api/pkg/errors"
	"github.com/noah-isme/school-pay-api/pkg/response"
)

// UserHandler exposes the admin roster management endpoints.
type UserHandler struct {
	sessions  *store.SessionStore
	validator *validator.Validate
}

// NewUserHandler creates a new handler.
func NewUserHandler(sessions *store.SessionStore, validate *validator.Validate) *UserHandler {
	if validate == nil {
		validate = validator.New()
	}
	return &UserHandler{sessions: sessions, validator: validate}
}

// List godoc
// @Summary List accounts
// @Description Returns the roster, optionally filtered by a name/email search
// @Tags Users
// @Produce json
// @Param search query string false "Name or email fragment"
// @Success 200 {object} response.Envelope
// @Router /users [get]
func (h *UserHandler) List(c *gin.Context) {
	accounts := h.sessions.Accounts()

	if search := strings.ToLower(strings.TrimSpace(c.Query("search"))); search != "" {
		filtered := accounts[:0]
		for _, a := range accounts {
			if strings.Contains(strings.ToLower(a.Name), search) || strings.Contains(a.Email, search) {
				filtered = append(filtered, a)
			}
		}
		accounts = filtered
	}

	response.JSON(c, http.StatusOK, accounts, nil)
}

// Get godoc
// @Summary Get one account
// @Tags Users
// @Produce json
// @Param id path string true "Account id"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /users/{id} [get]
func (h *UserHandler) Get(c *gin.Context) {
	account, ok := h.sessions.FindByID(c.Param("id"))
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "User not found."))
		return
	}
	response.JSON(c, http.StatusOK, account, nil)
}

// Create godoc
// @Summary Create an account
// @Description Admin-initiated creation; any role is allowed here
// @Tags Users
// @Accept json
// @Produce json
// @Param payload body store.AddAccountInput true "Account payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /users [post]
func (h *UserHandler) Create(c *gin.Context) {
	var input store.AddAccountInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid account payload"))
		return
	}
	if err := h.validator.Struct(input); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid account payload"))
		return
	}

	account, err := h.sessions.AddUser(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, account)
}

// Update godoc
// @Summary Update an account
// @Description Partial update; credentials cannot be changed on this path
// @Tags Users
// @Accept json
// @Produce json
// @Param id path string true "Account id"
// @Param payload body store.UpdateAccountInput true "Fields to change"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /users/{id} [put]
func (h *UserHandler) Update(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var input store.UpdateAccountInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid update payload"))
		return
	}
	if err := h.validator.Struct(input); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid update payload"))
		return
	}

	account, err := h.sessions.UpdateUser(c.Request.Context(), claims.SessionID, c.Param("id"), input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, account, nil)
}

// Delete godoc
// @Summary Delete an account
// @Description Self-deletion is rejected
// @Tags Users
// @Produce json
// @Param id path string true "Account id"
// @Success 204 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /users/{id} [delete]
func (h *UserHandler) Delete(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	if err := h.sessions.DeleteUser(c.Request.Context(), claims.SessionID, c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
