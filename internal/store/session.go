// Package store holds the portal's stateful cores: the session store (roster
// authority and principal lifecycle) and the payment store (principal-scoped
// cache reconciled against the remote record service).
package store

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/school-pay-api/internal/models"
	appErrors "github.com/noah-isme/school-pay-api/pkg/errors"
)

// AccountDirectory is the remote roster collaborator. All calls are best
// effort: the store is the in-memory authority and the directory is mirrored
// asynchronously to the caller's view.
type AccountDirectory interface {
	List(ctx context.Context) ([]models.Account, error)
	Create(ctx context.Context, account models.Account) error
	Update(ctx context.Context, account models.Account) error
	Delete(ctx context.Context, id string) error
}

// SessionMirror persists durable session state: the last-known roster and
// per-session principal snapshots.
type SessionMirror interface {
	SaveRoster(ctx context.Context, roster []models.Account) error
	LoadRoster(ctx context.Context) ([]models.Account, error)
	SavePrincipal(ctx context.Context, sessionID string, principal *models.Principal) error
	LoadPrincipal(ctx context.Context, sessionID string) (*models.Principal, error)
	DeletePrincipal(ctx context.Context, sessionID string) error
}

// SessionConfig tunes session store behaviour.
type SessionConfig struct {
	// LoginLatency pads credential checks to emulate a remote round trip.
	LoginLatency time.Duration
	// SeedEnabled allows falling back to the built-in roster when both the
	// directory and the mirror are unavailable.
	SeedEnabled bool
}

// RegisterResult is the structured outcome of self-service registration.
type RegisterResult struct {
	Success   bool              `json:"success"`
	Message   string            `json:"message,omitempty"`
	Principal *models.Principal `json:"principal,omitempty"`
}

// SessionStore owns the roster and the principal lifecycle. Mutations happen
// under a single mutex; durable storage is a passive mirror written after
// each change.
type SessionStore struct {
	mu         sync.RWMutex
	roster     []models.Account
	index      map[string]int
	principals map[string]*models.Principal

	directory AccountDirectory
	mirror    SessionMirror
	logger    *zap.Logger
	cfg       SessionConfig
	now       func() time.Time
}

// NewSessionStore constructs a session store. Call Load before serving.
func NewSessionStore(directory AccountDirectory, mirror SessionMirror, logger *zap.Logger, cfg SessionConfig) *SessionStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionStore{
		index:      make(map[string]int),
		principals: make(map[string]*models.Principal),
		directory:  directory,
		mirror:     mirror,
		logger:     logger,
		cfg:        cfg,
		now:        time.Now,
	}
}

// Load populates the roster: directory first, mirror snapshot second, seed
// roster last. It never fails hard; an empty roster only happens when seeding
// is disabled and both sources are down.
func (s *SessionStore) Load(ctx context.Context) {
	if s.directory != nil {
		if roster, err := s.directory.List(ctx); err == nil {
			s.setRoster(ctx, roster, false)
			return
		} else {
			s.logger.Warn("account directory unavailable, falling back to mirror", zap.Error(err))
		}
	}

	if s.mirror != nil {
		if roster, err := s.mirror.LoadRoster(ctx); err == nil && len(roster) > 0 {
			s.setRoster(ctx, roster, true)
			return
		} else if err != nil {
			s.logger.Warn("roster mirror unavailable", zap.Error(err))
		}
	}

	if s.cfg.SeedEnabled {
		s.logger.Info("seeding built-in roster")
		s.setRoster(ctx, seedRoster(s.now()), false)
	}
}

func (s *SessionStore) setRoster(ctx context.Context, roster []models.Account, fromMirror bool) {
	s.mu.Lock()
	s.roster = make([]models.Account, len(roster))
	copy(s.roster, roster)
	s.index = make(map[string]int, len(roster))
	for i, account := range s.roster {
		s.roster[i].Email = foldEmail(account.Email)
		s.index[account.ID] = i
	}
	snapshot := make([]models.Account, len(s.roster))
	copy(snapshot, s.roster)
	s.mu.Unlock()

	if !fromMirror {
		s.persistRoster(ctx, snapshot)
	}
}

// Login checks credentials against the roster. A mismatch returns false with
// no error and clears any stale principal for the session.
func (s *SessionStore) Login(ctx context.Context, sessionID, email, secret string) (*models.Principal, bool) {
	if s.cfg.LoginLatency > 0 {
		select {
		case <-time.After(s.cfg.LoginLatency):
		case <-ctx.Done():
			return nil, false
		}
	}

	s.mu.Lock()
	account, ok := s.findByEmailLocked(foldEmail(email))
	if ok {
		ok = bcrypt.CompareHashAndPassword([]byte(account.SecretHash), []byte(secret)) == nil
	}
	if !ok {
		delete(s.principals, sessionID)
		s.mu.Unlock()
		s.dropPrincipal(ctx, sessionID)
		return nil, false
	}

	principal := models.PrincipalOf(account)
	s.principals[sessionID] = principal
	ts := s.now().UTC()
	if idx, found := s.index[account.ID]; found {
		s.roster[idx].LastLogin = &ts
	}
	s.mu.Unlock()

	s.persistPrincipal(ctx, sessionID, principal)
	return principal, true
}

// Register creates a student account and auto-authenticates the session.
func (s *SessionStore) Register(ctx context.Context, sessionID, name, email, secret string) RegisterResult {
	email = foldEmail(email)

	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return RegisterResult{Message: "registration failed"}
	}

	s.mu.Lock()
	if _, exists := s.findByEmailLocked(email); exists {
		s.mu.Unlock()
		return RegisterResult{Message: "User with this email already exists."}
	}

	ts := s.now().UTC()
	account := models.Account{
		ID:         uuid.NewString(),
		Name:       name,
		Email:      email,
		SecretHash: string(hash),
		Role:       models.RoleStudent,
		Grade:      "N/A",
		CreatedAt:  ts,
		UpdatedAt:  ts,
	}
	s.appendLocked(account)
	principal := models.PrincipalOf(&account)
	s.principals[sessionID] = principal
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.mirrorCreate(ctx, account)
	s.persistRoster(ctx, snapshot)
	s.persistPrincipal(ctx, sessionID, principal)

	return RegisterResult{Success: true, Principal: principal}
}

// Logout clears the session's principal. The roster is untouched.
func (s *SessionStore) Logout(ctx context.Context, sessionID string) {
	s.mu.Lock()
	delete(s.principals, sessionID)
	s.mu.Unlock()
	s.dropPrincipal(ctx, sessionID)
}

// Principal returns the session's authenticated account, rehydrating from
// the mirror when the in-memory entry is gone (process restart).
func (s *SessionStore) Principal(ctx context.Context, sessionID string) *models.Principal {
	s.mu.RLock()
	principal, ok := s.principals[sessionID]
	s.mu.RUnlock()
	if ok {
		return principal
	}

	if s.mirror == nil {
		return nil
	}
	principal, err := s.mirror.LoadPrincipal(ctx, sessionID)
	if err != nil || principal == nil {
		return nil
	}

	s.mu.Lock()
	s.principals[sessionID] = principal
	s.mu.Unlock()
	return principal
}

// IsAdmin reports whether the session's principal carries the admin role.
func (s *SessionStore) IsAdmin(ctx context.Context, sessionID string) bool {
	return s.Principal(ctx, sessionID).IsAdmin()
}

// Accounts returns a copy of the roster.
func (s *SessionStore) Accounts() []models.Account {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

// FindByID returns one roster entry.
func (s *SessionStore) FindByID(id string) (*models.Account, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	idx, ok := s.index[id]
	if !ok {
		return nil, false
	}
	account := s.roster[idx]
	return &account, true
}

// AddAccountInput is the admin-initiated creation payload. Any role is
// allowed on this path.
type AddAccountInput struct {
	Name    string      `json:"name" validate:"required"`
	Email   string      `json:"email" validate:"required,email"`
	Secret  string      `json:"password" validate:"required,min=6"`
	Role    models.Role `json:"role" validate:"required,oneof=student admin"`
	Grade   string      `json:"grade"`
	Phone   string      `json:"phone"`
	Address string      `json:"address"`
}

// AddUser creates a roster entry with the given role.
func (s *SessionStore) AddUser(ctx context.Context, input AddAccountInput) (*models.Account, error) {
	email := foldEmail(input.Email)

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Secret), bcrypt.DefaultCost)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash secret")
	}

	s.mu.Lock()
	if _, exists := s.findByEmailLocked(email); exists {
		s.mu.Unlock()
		return nil, appErrors.Clone(appErrors.ErrConflict, "User with this email already exists.")
	}

	ts := s.now().UTC()
	account := models.Account{
		ID:         uuid.NewString(),
		Name:       input.Name,
		Email:      email,
		SecretHash: string(hash),
		Role:       input.Role,
		Grade:      input.Grade,
		Phone:      input.Phone,
		Address:    input.Address,
		CreatedAt:  ts,
		UpdatedAt:  ts,
	}
	s.appendLocked(account)
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.mirrorCreate(ctx, account)
	s.persistRoster(ctx, snapshot)
	return &account, nil
}

// UpdateAccountInput carries partial non-credential updates. Nil fields are
// left untouched.
type UpdateAccountInput struct {
	Name    *string      `json:"name"`
	Email   *string      `json:"email" validate:"omitempty,email"`
	Role    *models.Role `json:"role" validate:"omitempty,oneof=student admin"`
	Grade   *string      `json:"grade"`
	Phone   *string      `json:"phone"`
	Address *string      `json:"address"`
}

// UpdateUser applies a partial update. Changing the email to one held by a
// different account is rejected; when the target is the session's principal
// the principal snapshot is updated in lock-step.
func (s *SessionStore) UpdateUser(ctx context.Context, sessionID, id string, input UpdateAccountInput) (*models.Account, error) {
	s.mu.Lock()
	idx, ok := s.index[id]
	if !ok {
		s.mu.Unlock()
		return nil, appErrors.Clone(appErrors.ErrNotFound, "User not found.")
	}

	account := s.roster[idx]
	if input.Email != nil {
		email := foldEmail(*input.Email)
		if other, exists := s.findByEmailLocked(email); exists && other.ID != id {
			s.mu.Unlock()
			return nil, appErrors.Clone(appErrors.ErrConflict, "Email already used by another account.")
		}
		account.Email = email
	}
	if input.Name != nil {
		account.Name = *input.Name
	}
	if input.Role != nil {
		account.Role = *input.Role
	}
	if input.Grade != nil {
		account.Grade = *input.Grade
	}
	if input.Phone != nil {
		account.Phone = *input.Phone
	}
	if input.Address != nil {
		account.Address = *input.Address
	}
	account.UpdatedAt = s.now().UTC()
	s.roster[idx] = account

	var principal *models.Principal
	if current, found := s.principals[sessionID]; found && current.AccountID == id {
		principal = models.PrincipalOf(&account)
		s.principals[sessionID] = principal
	}
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.mirrorUpdate(ctx, account)
	s.persistRoster(ctx, snapshot)
	if principal != nil {
		s.persistPrincipal(ctx, sessionID, principal)
	}
	return &account, nil
}

// DeleteUser removes a roster entry. Deleting the session's own account is
// always rejected.
func (s *SessionStore) DeleteUser(ctx context.Context, sessionID, id string) error {
	// Principal() rehydrates from the mirror; after a restart the in-memory
	// entry is gone while the session's token is still valid.
	if current := s.Principal(ctx, sessionID); current != nil && current.AccountID == id {
		return appErrors.Clone(appErrors.ErrSelfDelete, "Cannot delete your own account.")
	}

	s.mu.Lock()
	idx, ok := s.index[id]
	if !ok {
		s.mu.Unlock()
		return appErrors.Clone(appErrors.ErrNotFound, "User not found.")
	}

	s.roster = append(s.roster[:idx], s.roster[idx+1:]...)
	s.index = make(map[string]int, len(s.roster))
	for i, account := range s.roster {
		s.index[account.ID] = i
	}
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	if s.directory != nil {
		if err := s.directory.Delete(ctx, id); err != nil {
			s.logger.Warn("directory delete failed", zap.String("account_id", id), zap.Error(err))
		}
	}
	s.persistRoster(ctx, snapshot)
	return nil
}

func (s *SessionStore) findByEmailLocked(email string) (*models.Account, bool) {
	for i := range s.roster {
		if s.roster[i].Email == email {
			return &s.roster[i], true
		}
	}
	return nil, false
}

func (s *SessionStore) appendLocked(account models.Account) {
	s.roster = append(s.roster, account)
	s.index[account.ID] = len(s.roster) - 1
}

func (s *SessionStore) snapshotLocked() []models.Account {
	snapshot := make([]models.Account, len(s.roster))
	copy(snapshot, s.roster)
	return snapshot
}

func (s *SessionStore) persistRoster(ctx context.Context, roster []models.Account) {
	if s.mirror == nil {
		return
	}
	if err := s.mirror.SaveRoster(ctx, roster); err != nil {
		s.logger.Warn("roster mirror write failed", zap.Error(err))
	}
}

func (s *SessionStore) persistPrincipal(ctx context.Context, sessionID string, principal *models.Principal) {
	if s.mirror == nil {
		return
	}
	if err := s.mirror.SavePrincipal(ctx, sessionID, principal); err != nil {
		s.logger.Warn("principal snapshot write failed", zap.Error(err))
	}
}

func (s *SessionStore) dropPrincipal(ctx context.Context, sessionID string) {
	if s.mirror == nil {
		return
	}
	if err := s.mirror.DeletePrincipal(ctx, sessionID); err != nil {
		s.logger.Warn("principal snapshot delete failed", zap.Error(err))
	}
}

func (s *SessionStore) mirrorCreate(ctx context.Context, account models.Account) {
	if s.directory == nil {
		return
	}
	if err := s.directory.Create(ctx, account); err != nil {
		s.logger.Warn("directory create failed", zap.String("account_id", account.ID), zap.Error(err))
	}
}

func (s *SessionStore) mirrorUpdate(ctx context.Context, account models.Account) {
	if s.directory == nil {
		return
	}
	if err := s.directory.Update(ctx, account); err != nil {
		s.logger.Warn("directory update failed", zap.String("account_id", account.ID), zap.Error(err))
	}
}

func foldEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// seedRoster is the last-resort startup roster: one admin, one student.
func seedRoster(now time.Time) []models.Account {
	adminHash, _ := bcrypt.GenerateFromPassword([]byte("adminpassword"), bcrypt.DefaultCost)
	studentHash, _ := bcrypt.GenerateFromPassword([]byte("studentpassword"), bcrypt.DefaultCost)
	ts := now.UTC()
	return []models.Account{
		{
			ID:         "admin-001",
			Name:       "Admin User",
			Email:      "admin@school.edu",
			SecretHash: string(adminHash),
			Role:       models.RoleAdmin,
			CreatedAt:  ts,
			UpdatedAt:  ts,
		},
		{
			ID:         "student-001",
			Name:       "Alex Johnson",
			Email:      "student@school.edu",
			SecretHash: string(studentHash),
			Role:       models.RoleStudent,
			Grade:      "5th Grade",
			CreatedAt:  ts,
			UpdatedAt:  ts,
		},
	}
}
