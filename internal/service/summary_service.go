package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/school-pay-api/internal/models"
	"github.com/noah-isme/school-pay-api/internal/store"
)

const upcomingLimit = 3

type remoteSummaryFetcher interface {
	Summary(ctx context.Context, accountID string) (*models.PaymentSummary, error)
}

// SummaryConfig tunes summary sourcing.
type SummaryConfig struct {
	// UseRemote prefers the record service's precomputed summary endpoint.
	// The local fold remains the fallback either way.
	UseRemote bool
	CacheTTL  time.Duration
}

// SummaryService derives per-account payment summaries. The remote endpoint
// and the local fold compute the same projection, so either path can serve.
type SummaryService struct {
	payments *store.PaymentStore
	remote   remoteSummaryFetcher
	cache    *CacheService
	config   SummaryConfig
	logger   *zap.Logger
}

// NewSummaryService constructs a summary service.
func NewSummaryService(payments *store.PaymentStore, remote remoteSummaryFetcher, cache *CacheService, config SummaryConfig, logger *zap.Logger) *SummaryService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SummaryService{payments: payments, remote: remote, cache: cache, config: config, logger: logger}
}

// SummaryFor returns the account's payment summary. The second return value
// reports whether the cache served it.
func (s *SummaryService) SummaryFor(ctx context.Context, accountID string) (*models.PaymentSummary, bool, error) {
	cacheKey := fmt.Sprintf("summary:%s", accountID)
	if s.cache != nil {
		var cached models.PaymentSummary
		if hit, _ := s.cache.Get(ctx, cacheKey, &cached); hit {
			return &cached, true, nil
		}
	}

	summary, err := s.computeFor(ctx, accountID)
	if err != nil {
		return nil, false, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, summary, s.config.CacheTTL); err != nil {
			s.logger.Warn("failed to cache summary", zap.String("account_id", accountID), zap.Error(err))
		}
	}
	return summary, false, nil
}

// Invalidate drops the cached summary for the account, typically after a
// payment mutation.
func (s *SummaryService) Invalidate(ctx context.Context, accountID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, fmt.Sprintf("summary:%s", accountID)); err != nil {
		s.logger.Warn("failed to invalidate summary cache", zap.String("account_id", accountID), zap.Error(err))
	}
}

func (s *SummaryService) computeFor(ctx context.Context, accountID string) (*models.PaymentSummary, error) {
	if s.config.UseRemote && s.remote != nil {
		summary, err := s.remote.Summary(ctx, accountID)
		if err == nil {
			return summary, nil
		}
		s.logger.Warn("remote summary failed, folding locally", zap.String("account_id", accountID), zap.Error(err))
	}

	scope := store.Scope{AccountID: accountID}
	payments := s.payments.Payments(scope)
	if len(payments) == 0 {
		if err := s.payments.Load(ctx, scope); err != nil {
			return nil, err
		}
		payments = s.payments.Payments(scope)
	}
	return ComputeSummary(payments), nil
}

// ComputeSummary folds a payment set into its summary projection: Pending and
// Overdue records feed the count and total, while the upcoming list holds the
// three soonest-due Pending records. Ties keep their input order.
func ComputeSummary(payments []models.Payment) *models.PaymentSummary {
	summary := &models.PaymentSummary{UpcomingPayments: []models.UpcomingPayment{}}

	var pending []models.Payment
	for _, p := range payments {
		switch p.Status {
		case models.StatusPending:
			summary.PendingCount++
			summary.TotalDue += p.Amount
			pending = append(pending, p)
		case models.StatusOverdue:
			summary.PendingCount++
			summary.TotalDue += p.Amount
		}
	}

	sort.SliceStable(pending, func(i, j int) bool {
		ti, iok := pending[i].DueTime()
		tj, jok := pending[j].DueTime()
		if iok != jok {
			return iok
		}
		if !iok {
			return false
		}
		return ti.Before(tj)
	})

	for _, p := range pending {
		if len(summary.UpcomingPayments) == upcomingLimit {
			break
		}
		summary.UpcomingPayments = append(summary.UpcomingPayments, models.UpcomingPayment{
			ID:      p.ID,
			Concept: p.Concept,
			Amount:  p.Amount,
			DueDate: p.DueDate,
			Status:  p.Status,
		})
	}
	return summary
}
