package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/school-pay-api/internal/service"
	appErrors "github.com/noah-isme/school-pay-api/pkg/errors"
	"github.com/noah-isme/school-pay-api/pkg/response"
)

// AssistantHandler exposes the help-center assistant.
type AssistantHandler struct {
	assistant *service.AssistantService
}

// NewAssistantHandler constructs an assistant handler.
func NewAssistantHandler(assistant *service.AssistantService) *AssistantHandler {
	return &AssistantHandler{assistant: assistant}
}

// Status godoc
// @Summary Assistant availability
// @Tags Assistant
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /assistant [get]
func (h *AssistantHandler) Status(c *gin.Context) {
	response.JSON(c, http.StatusOK, gin.H{"available": h.assistant.Available()}, nil)
}

// Ask godoc
// @Summary Ask the assistant a question
// @Tags Assistant
// @Accept json
// @Produce json
// @Param payload body object true "Question"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 503 {object} response.Envelope
// @Router /assistant/ask [post]
func (h *AssistantHandler) Ask(c *gin.Context) {
	var payload struct {
		Question string `json:"question" binding:"required"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "question required"))
		return
	}

	answer, err := h.assistant.Ask(c.Request.Context(), payload.Question)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"answer": answer}, nil)
}
