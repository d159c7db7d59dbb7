package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/noah-isme/school-pay-api/internal/middleware"
	"github.com/noah-isme/school-pay-api/internal/models"
	"github.com/noah-isme/school-pay-api/internal/remote"
	"github.com/noah-isme/school-pay-api/internal/service"
	"github.com/noah-isme/school-pay-api/internal/store"
	appErrors "github.com/noah-isme/school-pay-api/pkg/errors"
	"github.com/noah-isme/school-pay-api/pkg/response"
)

// PaymentHandler exposes the payment endpoints: scoped listings, status
// updates, the checkout flow and admin record management.
type PaymentHandler struct {
	payments *store.PaymentStore
	summary  *service.SummaryService
	checkout *remote.CheckoutClient
	exports  *service.ExportService
	logger   *zap.Logger
}

// NewPaymentHandler creates a new handler.
func NewPaymentHandler(payments *store.PaymentStore, summary *service.SummaryService, checkout *remote.CheckoutClient, exports *service.ExportService, logger *zap.Logger) *PaymentHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PaymentHandler{payments: payments, summary: summary, checkout: checkout, exports: exports, logger: logger}
}

func (h *PaymentHandler) scopeOf(c *gin.Context) (store.Scope, *models.JWTClaims, bool) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return store.Scope{}, nil, false
	}
	return store.ScopeFor(claims.PrincipalOf()), claims, true
}

func (h *PaymentHandler) loadedPayments(c *gin.Context, scope store.Scope) ([]models.Payment, bool) {
	payments := h.payments.Payments(scope)
	if len(payments) == 0 {
		if err := h.payments.Load(c.Request.Context(), scope); err != nil {
			response.Error(c, err)
			return nil, false
		}
		payments = h.payments.Payments(scope)
	}
	return payments, true
}

// List godoc
// @Summary List all payments
// @Description Admin view of the full payment set
// @Tags Payments
// @Produce json
// @Param account_id query string false "Filter by account"
// @Success 200 {object} response.Envelope
// @Router /payments [get]
func (h *PaymentHandler) List(c *gin.Context) {
	payments, ok := h.loadedPayments(c, store.Scope{Admin: true})
	if !ok {
		return
	}

	if accountID := c.Query("account_id"); accountID != "" {
		filtered := make([]models.Payment, 0, len(payments))
		for _, p := range payments {
			if p.AccountID == accountID {
				filtered = append(filtered, p)
			}
		}
		payments = filtered
	}

	response.JSON(c, http.StatusOK, payments, nil)
}

// ListForAccount godoc
// @Summary List one account's payments
// @Description Students may only read their own records
// @Tags Payments
// @Produce json
// @Param id path string true "Account id"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /payments/user/{id} [get]
func (h *PaymentHandler) ListForAccount(c *gin.Context) {
	_, claims, ok := h.scopeOf(c)
	if !ok {
		return
	}

	accountID := c.Param("id")
	if claims.Role != models.RoleAdmin && claims.AccountID != accountID {
		response.Error(c, appErrors.Clone(appErrors.ErrForbidden, "cannot read another account's payments"))
		return
	}

	payments, ok := h.loadedPayments(c, store.Scope{AccountID: accountID})
	if !ok {
		return
	}
	response.JSON(c, http.StatusOK, payments, nil)
}

// Summary godoc
// @Summary Payment summary for one account
// @Tags Payments
// @Produce json
// @Param id path string true "Account id"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /payments/user/{id}/summary [get]
func (h *PaymentHandler) Summary(c *gin.Context) {
	_, claims, ok := h.scopeOf(c)
	if !ok {
		return
	}

	accountID := c.Param("id")
	if claims.Role != models.RoleAdmin && claims.AccountID != accountID {
		response.Error(c, appErrors.Clone(appErrors.ErrForbidden, "cannot read another account's summary"))
		return
	}

	summary, cached, err := h.summary.SummaryFor(c.Request.Context(), accountID)
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, cached)
	response.JSON(c, http.StatusOK, summary, nil, middleware.ExtractMeta(c))
}

// UpdateStatus godoc
// @Summary Update a payment's status
// @Description Applies the change locally first, then confirms against the record service
// @Tags Payments
// @Accept json
// @Produce json
// @Param id path string true "Payment id"
// @Param payload body object true "New status"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /payments/{id}/status [patch]
func (h *PaymentHandler) UpdateStatus(c *gin.Context) {
	scope, _, ok := h.scopeOf(c)
	if !ok {
		return
	}

	var payload struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "status required"))
		return
	}

	payment, err := h.payments.UpdateStatus(c.Request.Context(), scope, c.Param("id"), payload.Status)
	if err != nil {
		// The optimistic state is still returned when only the remote write failed.
		if payment != nil {
			response.JSON(c, http.StatusAccepted, payment, nil)
			return
		}
		response.Error(c, err)
		return
	}

	// Invalidate the owning account's summary, not the caller's; an admin
	// updating a student's record must not leave the student's view stale.
	h.summary.Invalidate(c.Request.Context(), payment.AccountID)
	response.JSON(c, http.StatusOK, payment, nil)
}

// Get godoc
// @Summary Get one payment from the scoped cache
// @Tags Payments
// @Produce json
// @Param id path string true "Payment id"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /payments/{id} [get]
func (h *PaymentHandler) Get(c *gin.Context) {
	scope, _, ok := h.scopeOf(c)
	if !ok {
		return
	}

	if _, ok := h.loadedPayments(c, scope); !ok {
		return
	}
	payment, found := h.payments.GetByID(scope, c.Param("id"))
	if !found {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "payment not found"))
		return
	}
	response.JSON(c, http.StatusOK, payment, nil)
}

// Create godoc
// @Summary Create a payment record
// @Description Admin only; goes straight to the record service then refetches
// @Tags Payments
// @Accept json
// @Produce json
// @Param payload body models.Payment true "Payment record"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /payments [post]
func (h *PaymentHandler) Create(c *gin.Context) {
	scope, _, ok := h.scopeOf(c)
	if !ok {
		return
	}

	var payment models.Payment
	if err := c.ShouldBindJSON(&payment); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payment payload"))
		return
	}

	created, err := h.payments.CreatePayment(c.Request.Context(), scope, payment)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, created)
}

// Update godoc
// @Summary Replace a payment record
// @Description Admin only full update
// @Tags Payments
// @Accept json
// @Produce json
// @Param id path string true "Payment id"
// @Param payload body models.Payment true "Payment record"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /payments/{id} [put]
func (h *PaymentHandler) Update(c *gin.Context) {
	scope, _, ok := h.scopeOf(c)
	if !ok {
		return
	}

	var payment models.Payment
	if err := c.ShouldBindJSON(&payment); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payment payload"))
		return
	}
	payment.ID = c.Param("id")

	updated, err := h.payments.UpdatePayment(c.Request.Context(), scope, payment)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, updated, nil)
}

// Delete godoc
// @Summary Delete a payment record
// @Description Admin only
// @Tags Payments
// @Produce json
// @Param id path string true "Payment id"
// @Success 204 {object} response.Envelope
// @Router /payments/{id} [delete]
func (h *PaymentHandler) Delete(c *gin.Context) {
	scope, _, ok := h.scopeOf(c)
	if !ok {
		return
	}

	if err := h.payments.DeletePayment(c.Request.Context(), scope, c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Checkout godoc
// @Summary Start a checkout for a payment
// @Description Returns the provider approval URL
// @Tags Payments
// @Produce json
// @Param id path string true "Payment id"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 503 {object} response.Envelope
// @Router /payments/{id}/checkout [post]
func (h *PaymentHandler) Checkout(c *gin.Context) {
	scope, _, ok := h.scopeOf(c)
	if !ok {
		return
	}
	if h.checkout == nil || !h.checkout.Configured() {
		response.Error(c, appErrors.Clone(appErrors.ErrRemoteUnavailable, "checkout provider not configured"))
		return
	}

	if _, ok := h.loadedPayments(c, scope); !ok {
		return
	}
	payment, found := h.payments.GetByID(scope, c.Param("id"))
	if !found {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "payment not found"))
		return
	}
	if payment.Status == models.StatusPaid {
		response.Error(c, appErrors.Clone(appErrors.ErrConflict, "payment already settled"))
		return
	}

	approvalURL, err := h.checkout.CreateOrder(c.Request.Context(), *payment)
	if err != nil {
		h.logger.Warn("checkout order failed", zap.String("payment_id", payment.ID), zap.Error(err))
		response.Error(c, appErrors.Wrap(err, appErrors.ErrRemoteUnavailable.Code, appErrors.ErrRemoteUnavailable.Status, "failed to start checkout"))
		return
	}

	response.JSON(c, http.StatusOK, gin.H{"approval_url": approvalURL}, nil)
}

// CheckoutSuccess godoc
// @Summary Complete a checkout
// @Description Marks the payment paid after the provider approves
// @Tags Payments
// @Produce json
// @Param paymentId query string true "Payment id"
// @Param transactionId query string false "Provider transaction id"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /payments/checkout/success [get]
func (h *PaymentHandler) CheckoutSuccess(c *gin.Context) {
	scope, _, ok := h.scopeOf(c)
	if !ok {
		return
	}

	paymentID := c.Query("paymentId")
	if paymentID == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "paymentId required"))
		return
	}
	transactionID := c.Query("transactionId")
	if transactionID == "" {
		transactionID = c.Query("token")
	}

	paid, err := h.payments.MarkPaid(c.Request.Context(), scope, paymentID, transactionID)
	if err != nil {
		response.Error(c, err)
		return
	}

	h.summary.Invalidate(c.Request.Context(), paid.AccountID)
	response.JSON(c, http.StatusOK, paid, nil)
}

// Receipt godoc
// @Summary Render a receipt for a paid payment
// @Description Returns a signed download URL for the PDF
// @Tags Payments
// @Produce json
// @Param id path string true "Payment id"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /payments/{id}/receipt [post]
func (h *PaymentHandler) Receipt(c *gin.Context) {
	scope, _, ok := h.scopeOf(c)
	if !ok {
		return
	}

	if _, ok := h.loadedPayments(c, scope); !ok {
		return
	}
	payment, found := h.payments.GetByID(scope, c.Param("id"))
	if !found {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "payment not found"))
		return
	}

	result, err := h.exports.Receipt(payment)
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrConflict.Code, appErrors.ErrConflict.Status, "failed to render receipt"))
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"url": result.URL, "expires_at": result.ExpiresAt}, nil)
}

// Ledger godoc
// @Summary Export the full payment set as CSV
// @Description Admin only; returns a signed download URL
// @Tags Payments
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /payments/ledger [get]
func (h *PaymentHandler) Ledger(c *gin.Context) {
	payments, ok := h.loadedPayments(c, store.Scope{Admin: true})
	if !ok {
		return
	}

	result, err := h.exports.Ledger(payments)
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render ledger"))
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"url": result.URL, "expires_at": result.ExpiresAt}, nil)
}

// Download godoc
// @Summary Download a previously generated export
// @Tags Payments
// @Produce octet-stream
// @Param token path string true "Signed token"
// @Success 200 {file} binary
// @Failure 401 {object} response.Envelope
// @Router /exports/{token} [get]
func (h *PaymentHandler) Download(c *gin.Context) {
	_, relPath, _, err := h.exports.ParseToken(c.Param("token"), false)
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, "invalid download token"))
		return
	}

	file, err := h.exports.Open(relPath)
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "export no longer available"))
		return
	}
	defer file.Close() //nolint:errcheck

	c.FileAttachment(file.Name(), relPath)
}
