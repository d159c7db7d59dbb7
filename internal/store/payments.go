package store

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/school-pay-api/internal/models"
	appErrors "github.com/noah-isme/school-pay-api/pkg/errors"
)

// PaymentAPI is the authoritative payment record service.
type PaymentAPI interface {
	ListAll(ctx context.Context) ([]models.Payment, error)
	ListByAccount(ctx context.Context, accountID string) ([]models.Payment, error)
	Create(ctx context.Context, payment models.Payment) (*models.Payment, error)
	Update(ctx context.Context, payment models.Payment) (*models.Payment, error)
	MarkPaid(ctx context.Context, id, transactionID string) (*models.Payment, error)
	Delete(ctx context.Context, id string) error
}

// Scope identifies one visible payment set: an account's own records, or the
// full set for admins.
type Scope struct {
	AccountID string
	Admin     bool
}

// ScopeFor derives the visible scope for a principal.
func ScopeFor(principal *models.Principal) Scope {
	if principal.IsAdmin() {
		return Scope{Admin: true}
	}
	return Scope{AccountID: principal.AccountID}
}

func (s Scope) key() string {
	if s.Admin {
		return "admin"
	}
	return "acct:" + s.AccountID
}

// PaymentStoreConfig tunes reconciliation behaviour.
type PaymentStoreConfig struct {
	// ClearOnFailedRefresh drops the scope's cached records when a reload
	// fails. Off by default: the last-known-good view is kept.
	ClearOnFailedRefresh bool
}

type scopeState struct {
	payments     []models.Payment
	appliedSeq   uint64
	lastMutation uint64
}

// PaymentStore is a write-through cache of the remote payment set, scoped per
// principal. Every mutation is followed by an authoritative reload; reloads
// carry sequence numbers so a slow fetch begun before a newer mutation can
// never clobber fresher state.
type PaymentStore struct {
	mu     sync.Mutex
	api    PaymentAPI
	scopes map[string]*scopeState
	seq    uint64

	// reconcile, when set, schedules a reload instead of running it inline.
	// The wiring in main backs it with a single-worker queue so reloads are
	// serialized.
	reconcile func(Scope)

	logger *zap.Logger
	cfg    PaymentStoreConfig
	now    func() time.Time
}

// NewPaymentStore constructs a payment store over the given record service.
func NewPaymentStore(api PaymentAPI, logger *zap.Logger, cfg PaymentStoreConfig) *PaymentStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PaymentStore{
		api:    api,
		scopes: make(map[string]*scopeState),
		logger: logger,
		cfg:    cfg,
		now:    time.Now,
	}
}

// SetReconciler installs the reload scheduler. Without one, reloads run
// inline on the mutating goroutine.
func (s *PaymentStore) SetReconciler(fn func(Scope)) {
	s.reconcile = fn
}

// Load fetches the scope's visible set from the record service and applies
// it, unless a newer mutation or reload superseded this one while the fetch
// was in flight.
func (s *PaymentStore) Load(ctx context.Context, scope Scope) error {
	seq := s.begin(scope)

	var payments []models.Payment
	var err error
	if scope.Admin {
		payments, err = s.api.ListAll(ctx)
	} else {
		payments, err = s.api.ListByAccount(ctx, scope.AccountID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	state := s.stateLocked(scope)

	if err != nil {
		s.logger.Warn("payment refresh failed", zap.String("scope", scope.key()), zap.Error(err))
		if s.cfg.ClearOnFailedRefresh && seq >= state.lastMutation {
			state.payments = nil
			state.appliedSeq = seq
		}
		return appErrors.Wrap(err, appErrors.ErrRemoteUnavailable.Code, appErrors.ErrRemoteUnavailable.Status, "failed to refresh payments")
	}

	// A fetch that started before the latest mutation (or before a fresher
	// applied reload) resolves stale; its result is discarded.
	if seq < state.lastMutation || seq <= state.appliedSeq {
		s.logger.Debug("discarding stale payment refresh", zap.String("scope", scope.key()), zap.Uint64("seq", seq))
		return nil
	}

	state.payments = payments
	state.appliedSeq = seq
	return nil
}

// Payments returns a copy of the scope's cached records.
func (s *PaymentStore) Payments(scope Scope) []models.Payment {
	s.mu.Lock()
	defer s.mu.Unlock()
	state := s.stateLocked(scope)
	out := make([]models.Payment, len(state.payments))
	copy(out, state.payments)
	return out
}

// GetByID finds one cached record in the scope.
func (s *PaymentStore) GetByID(scope Scope, id string) (*models.Payment, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	state := s.stateLocked(scope)
	for i := range state.payments {
		if state.payments[i].ID == id {
			payment := state.payments[i]
			return &payment, true
		}
	}
	return nil, false
}

// UpdateStatus rewrites the record's status locally (keeping the paidDate
// invariant), writes the full record through to the record service, then
// triggers an authoritative reload regardless of the write outcome. The
// returned payment reflects the optimistic local state.
func (s *PaymentStore) UpdateStatus(ctx context.Context, scope Scope, id string, rawStatus string) (*models.Payment, error) {
	status, ok := models.ParseStatus(rawStatus)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown payment status")
	}

	s.mu.Lock()
	state := s.stateLocked(scope)
	idx := -1
	for i := range state.payments {
		if state.payments[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return nil, appErrors.Clone(appErrors.ErrNotFound, "payment not found")
	}

	updated := state.payments[idx]
	updated.ApplyStatus(status, s.now())
	if status != models.StatusPaid {
		// Regressing from Paid must not keep a stale paid date.
		updated.PaidDate = ""
	}
	state.payments[idx] = updated
	s.seq++
	state.lastMutation = s.seq
	s.mu.Unlock()

	_, writeErr := s.api.Update(ctx, updated)
	if writeErr != nil {
		s.logger.Warn("payment status write failed", zap.String("payment_id", id), zap.Error(writeErr))
	}
	s.triggerReconcile(scope)
	s.reconcileOwner(scope, updated.AccountID)

	if writeErr != nil {
		return &updated, appErrors.Wrap(writeErr, appErrors.ErrRemoteUnavailable.Code, appErrors.ErrRemoteUnavailable.Status, "status update not confirmed by record service")
	}
	return &updated, nil
}

// MarkPaid runs the convenience transition on the record service (used by
// the checkout success callback) and reconciles.
func (s *PaymentStore) MarkPaid(ctx context.Context, scope Scope, id, transactionID string) (*models.Payment, error) {
	paid, err := s.api.MarkPaid(ctx, id, transactionID)
	s.markMutation(scope)
	s.triggerReconcile(scope)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrRemoteUnavailable.Code, appErrors.ErrRemoteUnavailable.Status, "mark-paid not confirmed by record service")
	}
	s.reconcileOwner(scope, paid.AccountID)
	return paid, nil
}

// CreatePayment is the admin create: straight to the record service, no
// optimistic mutation, followed by a refetch.
func (s *PaymentStore) CreatePayment(ctx context.Context, scope Scope, payment models.Payment) (*models.Payment, error) {
	created, err := s.api.Create(ctx, payment)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrRemoteUnavailable.Code, appErrors.ErrRemoteUnavailable.Status, "failed to create payment")
	}
	s.markMutation(scope)
	s.triggerReconcile(scope)
	s.reconcileOwner(scope, created.AccountID)
	return created, nil
}

// UpdatePayment is the admin full update: remote write then refetch.
func (s *PaymentStore) UpdatePayment(ctx context.Context, scope Scope, payment models.Payment) (*models.Payment, error) {
	updated, err := s.api.Update(ctx, payment)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrRemoteUnavailable.Code, appErrors.ErrRemoteUnavailable.Status, "failed to update payment")
	}
	s.markMutation(scope)
	s.triggerReconcile(scope)
	s.reconcileOwner(scope, updated.AccountID)
	return updated, nil
}

// DeletePayment is the admin delete: remote write then refetch.
func (s *PaymentStore) DeletePayment(ctx context.Context, scope Scope, id string) error {
	// Capture the owner before the record disappears from the cache.
	var ownerID string
	if existing, found := s.GetByID(scope, id); found {
		ownerID = existing.AccountID
	}

	if err := s.api.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrRemoteUnavailable.Code, appErrors.ErrRemoteUnavailable.Status, "failed to delete payment")
	}
	s.markMutation(scope)
	s.triggerReconcile(scope)
	s.reconcileOwner(scope, ownerID)
	return nil
}

// begin allocates a sequence number for a reload of the scope.
func (s *PaymentStore) begin(scope Scope) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stateLocked(scope)
	s.seq++
	return s.seq
}

// markMutation stamps the scope so reloads begun earlier resolve stale.
func (s *PaymentStore) markMutation(scope Scope) {
	s.mu.Lock()
	defer s.mu.Unlock()
	state := s.stateLocked(scope)
	s.seq++
	state.lastMutation = s.seq
}

// reconcileOwner schedules a reload of the owning account's scope when the
// mutation happened under a different scope, so an admin acting on a
// student's record also converges that student's cached view.
func (s *PaymentStore) reconcileOwner(scope Scope, accountID string) {
	if accountID == "" {
		return
	}
	owner := Scope{AccountID: accountID}
	if owner.key() == scope.key() {
		return
	}
	s.markMutation(owner)
	s.triggerReconcile(owner)
}

func (s *PaymentStore) triggerReconcile(scope Scope) {
	if s.reconcile != nil {
		s.reconcile(scope)
		return
	}
	if err := s.Load(context.Background(), scope); err != nil {
		s.logger.Warn("inline reconcile failed", zap.String("scope", scope.key()), zap.Error(err))
	}
}

func (s *PaymentStore) stateLocked(scope Scope) *scopeState {
	state, ok := s.scopes[scope.key()]
	if !ok {
		state = &scopeState{}
		s.scopes[scope.key()] = state
	}
	return state
}
