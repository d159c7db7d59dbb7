package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/noah-isme/school-pay-api/internal/models"
	"github.com/noah-isme/school-pay-api/internal/store"
)

const recentPaymentsLimit = 5

// AdminOverview aggregates the figures shown on the admin landing page.
type AdminOverview struct {
	TotalPaymentsRecorded int              `json:"total_payments_recorded"`
	TotalAmountCollected  float64          `json:"total_amount_collected"`
	RegisteredUsers       int              `json:"registered_users"`
	RecentPayments        []models.Payment `json:"recent_payments"`
}

// DashboardService derives overview figures from the stores.
type DashboardService struct {
	sessions *store.SessionStore
	payments *store.PaymentStore
	logger   *zap.Logger
}

// NewDashboardService constructs a dashboard service.
func NewDashboardService(sessions *store.SessionStore, payments *store.PaymentStore, logger *zap.Logger) *DashboardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{sessions: sessions, payments: payments, logger: logger}
}

// Overview folds the full payment set and roster into the admin landing
// figures. The amount collected counts Paid records only.
func (s *DashboardService) Overview(ctx context.Context) (*AdminOverview, error) {
	scope := store.Scope{Admin: true}
	payments := s.payments.Payments(scope)
	if len(payments) == 0 {
		if err := s.payments.Load(ctx, scope); err != nil {
			return nil, err
		}
		payments = s.payments.Payments(scope)
	}

	overview := &AdminOverview{
		TotalPaymentsRecorded: len(payments),
		RegisteredUsers:       len(s.sessions.Accounts()),
		RecentPayments:        []models.Payment{},
	}
	for _, p := range payments {
		if p.Status == models.StatusPaid {
			overview.TotalAmountCollected += p.Amount
		}
	}

	// Newest records arrive last from the record service.
	for i := len(payments) - 1; i >= 0 && len(overview.RecentPayments) < recentPaymentsLimit; i-- {
		overview.RecentPayments = append(overview.RecentPayments, payments[i])
	}
	return overview, nil
}
