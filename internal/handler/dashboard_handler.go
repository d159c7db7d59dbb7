package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/school-pay-api/internal/repository"
	"github.com/noah-isme/school-pay-api/internal/service"
	"github.com/noah-isme/school-pay-api/pkg/response"
)

// DashboardHandler serves the admin landing page aggregates.
type DashboardHandler struct {
	dashboard *service.DashboardService
	metrics   *service.MetricsService
	audit     *repository.AuditRepository
}

// NewDashboardHandler constructs a dashboard handler.
func NewDashboardHandler(dashboard *service.DashboardService, metrics *service.MetricsService, audit *repository.AuditRepository) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard, metrics: metrics, audit: audit}
}

// Overview godoc
// @Summary Admin overview figures
// @Description Totals, collected amount, roster size and recent records
// @Tags Dashboard
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /admin/overview [get]
func (h *DashboardHandler) Overview(c *gin.Context) {
	overview, err := h.dashboard.Overview(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, overview, nil)
}

// SystemMetrics godoc
// @Summary System metrics snapshot
// @Tags Dashboard
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /admin/metrics [get]
func (h *DashboardHandler) SystemMetrics(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.metrics.Snapshot(), nil)
}

// AuditTrail godoc
// @Summary Recent audit records
// @Tags Dashboard
// @Produce json
// @Param limit query int false "Max records" default(50)
// @Param account_id query string false "Filter by account"
// @Success 200 {object} response.Envelope
// @Router /admin/audit [get]
func (h *DashboardHandler) AuditTrail(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	if accountID := c.Query("account_id"); accountID != "" {
		logs, err := h.audit.ListByAccount(c.Request.Context(), accountID, limit)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.JSON(c, http.StatusOK, logs, nil)
		return
	}

	logs, err := h.audit.ListRecent(c.Request.Context(), limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, logs, nil)
}
