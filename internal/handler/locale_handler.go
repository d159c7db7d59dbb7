package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/noah-isme/school-pay-api/internal/i18n"
	appErrors "github.com/noah-isme/school-pay-api/pkg/errors"
	"github.com/noah-isme/school-pay-api/pkg/response"
)

type languageStore interface {
	SaveLanguage(ctx context.Context, language string) error
}

// LocaleHandler exposes the interface language and message catalog.
type LocaleHandler struct {
	translator *i18n.Translator
	store      languageStore
	logger     *zap.Logger
}

// NewLocaleHandler constructs a locale handler.
func NewLocaleHandler(translator *i18n.Translator, store languageStore, logger *zap.Logger) *LocaleHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LocaleHandler{translator: translator, store: store, logger: logger}
}

// Get godoc
// @Summary Current language and supported tags
// @Tags Locale
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /locale [get]
func (h *LocaleHandler) Get(c *gin.Context) {
	response.JSON(c, http.StatusOK, gin.H{
		"language":  h.translator.Language(),
		"languages": h.translator.Languages(),
	}, nil)
}

// Set godoc
// @Summary Switch the interface language
// @Tags Locale
// @Accept json
// @Produce json
// @Param payload body object true "Language tag"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /locale [put]
func (h *LocaleHandler) Set(c *gin.Context) {
	var payload struct {
		Language string `json:"language" binding:"required"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "language required"))
		return
	}

	if !h.translator.SetLanguage(payload.Language) {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "unsupported language"))
		return
	}

	if h.store != nil {
		if err := h.store.SaveLanguage(c.Request.Context(), payload.Language); err != nil {
			h.logger.Warn("failed to persist language", zap.Error(err))
		}
	}

	response.JSON(c, http.StatusOK, gin.H{"language": h.translator.Language()}, nil)
}

// Catalog godoc
// @Summary Full message catalog for the active language
// @Tags Locale
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /locale/catalog [get]
func (h *LocaleHandler) Catalog(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.translator.Catalog(), nil)
}
