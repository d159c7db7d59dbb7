package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/school-pay-api/internal/models"
	"github.com/noah-isme/school-pay-api/internal/store"
)

type summaryFetcherStub struct {
	summary *models.PaymentSummary
	err     error
	calls   int
}

func (s *summaryFetcherStub) Summary(ctx context.Context, accountID string) (*models.PaymentSummary, error) {
	s.calls++
	return s.summary, s.err
}

func summaryFixture() []models.Payment {
	return []models.Payment{
		{ID: "p1", Concept: "Tuition March", Amount: 100, DueDate: "2025-03-01", Status: models.StatusPending},
		{ID: "p2", Concept: "Tuition January", Amount: 100, DueDate: "2025-01-01", Status: models.StatusOverdue},
		{ID: "p3", Concept: "Lab Fee", Amount: 25, DueDate: "2025-02-10", Status: models.StatusPending},
		{ID: "p4", Concept: "Tuition December", Amount: 100, DueDate: "2024-12-01", Status: models.StatusPaid, PaidDate: "2024-12-01"},
		{ID: "p5", Concept: "Field Trip", Amount: 40, DueDate: "2025-04-15", Status: models.StatusPending},
		{ID: "p6", Concept: "Book Fee", Amount: 30, DueDate: "2025-05-01", Status: models.StatusPending},
		{ID: "p7", Concept: "Enrollment", Amount: 60, Status: models.StatusProcessing},
	}
}

func TestComputeSummaryCountsPendingAndOverdue(t *testing.T) {
	summary := ComputeSummary(summaryFixture())

	// Four Pending plus one Overdue; Paid and Processing stay out.
	assert.Equal(t, 5, summary.PendingCount)
	assert.InDelta(t, 295.0, summary.TotalDue, 0.001)
}

func TestComputeSummaryUpcomingIsPendingOnlySoonestFirst(t *testing.T) {
	summary := ComputeSummary(summaryFixture())

	require.Len(t, summary.UpcomingPayments, 3)
	assert.Equal(t, "p3", summary.UpcomingPayments[0].ID)
	assert.Equal(t, "p1", summary.UpcomingPayments[1].ID)
	assert.Equal(t, "p5", summary.UpcomingPayments[2].ID)
	for _, u := range summary.UpcomingPayments {
		assert.Equal(t, models.StatusPending, u.Status, "overdue records never appear as upcoming")
	}
}

func TestComputeSummaryTiesKeepInputOrder(t *testing.T) {
	payments := []models.Payment{
		{ID: "a", Amount: 10, DueDate: "2025-03-01", Status: models.StatusPending},
		{ID: "b", Amount: 10, DueDate: "2025-03-01", Status: models.StatusPending},
		{ID: "c", Amount: 10, DueDate: "2025-02-01", Status: models.StatusPending},
	}
	summary := ComputeSummary(payments)
	require.Len(t, summary.UpcomingPayments, 3)
	assert.Equal(t, "c", summary.UpcomingPayments[0].ID)
	assert.Equal(t, "a", summary.UpcomingPayments[1].ID)
	assert.Equal(t, "b", summary.UpcomingPayments[2].ID)
}

func TestComputeSummaryUnparsableDueDatesSortLast(t *testing.T) {
	payments := []models.Payment{
		{ID: "no-date", Amount: 10, Status: models.StatusPending},
		{ID: "dated", Amount: 10, DueDate: "2025-06-01", Status: models.StatusPending},
	}
	summary := ComputeSummary(payments)
	require.Len(t, summary.UpcomingPayments, 2)
	assert.Equal(t, "dated", summary.UpcomingPayments[0].ID)
	assert.Equal(t, "no-date", summary.UpcomingPayments[1].ID)
}

func TestComputeSummaryEmptySet(t *testing.T) {
	summary := ComputeSummary(nil)
	assert.Zero(t, summary.PendingCount)
	assert.Zero(t, summary.TotalDue)
	assert.NotNil(t, summary.UpcomingPayments)
	assert.Empty(t, summary.UpcomingPayments)
}

func newSummaryFixtureStore(t *testing.T, payments []models.Payment) *store.PaymentStore {
	t.Helper()
	api := &summaryPaymentAPIStub{byAccount: map[string][]models.Payment{"acct-1": payments}}
	ps := store.NewPaymentStore(api, zap.NewNop(), store.PaymentStoreConfig{})
	ps.SetReconciler(func(store.Scope) {})
	return ps
}

type summaryPaymentAPIStub struct {
	byAccount map[string][]models.Payment
}

func (s *summaryPaymentAPIStub) ListAll(ctx context.Context) ([]models.Payment, error) {
	return nil, nil
}

func (s *summaryPaymentAPIStub) ListByAccount(ctx context.Context, accountID string) ([]models.Payment, error) {
	return s.byAccount[accountID], nil
}

func (s *summaryPaymentAPIStub) Create(ctx context.Context, payment models.Payment) (*models.Payment, error) {
	return &payment, nil
}

func (s *summaryPaymentAPIStub) Update(ctx context.Context, payment models.Payment) (*models.Payment, error) {
	return &payment, nil
}

func (s *summaryPaymentAPIStub) MarkPaid(ctx context.Context, id, transactionID string) (*models.Payment, error) {
	return &models.Payment{ID: id}, nil
}

func (s *summaryPaymentAPIStub) Delete(ctx context.Context, id string) error { return nil }

func TestSummaryForLoadsScopeWhenEmpty(t *testing.T) {
	ps := newSummaryFixtureStore(t, summaryFixture())
	svc := NewSummaryService(ps, nil, nil, SummaryConfig{}, zap.NewNop())

	summary, cached, err := svc.SummaryFor(context.Background(), "acct-1")
	require.NoError(t, err)
	assert.False(t, cached)
	assert.Equal(t, 5, summary.PendingCount)
}

func TestSummaryForPrefersRemoteWhenEnabled(t *testing.T) {
	ps := newSummaryFixtureStore(t, nil)
	remote := &summaryFetcherStub{summary: &models.PaymentSummary{PendingCount: 2, TotalDue: 150}}
	svc := NewSummaryService(ps, remote, nil, SummaryConfig{UseRemote: true}, zap.NewNop())

	summary, cached, err := svc.SummaryFor(context.Background(), "acct-1")
	require.NoError(t, err)
	assert.False(t, cached)
	assert.Equal(t, 2, summary.PendingCount)
	assert.Equal(t, 1, remote.calls)
}

func TestSummaryForFallsBackToLocalFoldOnRemoteFailure(t *testing.T) {
	ps := newSummaryFixtureStore(t, summaryFixture())
	remote := &summaryFetcherStub{err: errors.New("remote down")}
	svc := NewSummaryService(ps, remote, nil, SummaryConfig{UseRemote: true}, zap.NewNop())

	summary, cached, err := svc.SummaryFor(context.Background(), "acct-1")
	require.NoError(t, err)
	assert.False(t, cached)
	assert.Equal(t, 5, summary.PendingCount, "local fold serves when the remote summary fails")
}

func TestRemoteAndLocalSummariesAgree(t *testing.T) {
	local := ComputeSummary(summaryFixture())
	remote := &summaryFetcherStub{summary: local}

	ps := newSummaryFixtureStore(t, summaryFixture())
	viaRemote := NewSummaryService(ps, remote, nil, SummaryConfig{UseRemote: true}, zap.NewNop())
	viaLocal := NewSummaryService(ps, nil, nil, SummaryConfig{}, zap.NewNop())

	a, _, err := viaRemote.SummaryFor(context.Background(), "acct-1")
	require.NoError(t, err)
	b, _, err := viaLocal.SummaryFor(context.Background(), "acct-1")
	require.NoError(t, err)
	assert.Equal(t, a, b)
}
