package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/school-pay-api/internal/models"
	"github.com/noah-isme/school-pay-api/internal/repository"
	appErrors "github.com/noah-isme/school-pay-api/pkg/errors"
)

type directoryStub struct {
	roster  []models.Account
	listErr error

	created []models.Account
	updated []models.Account
	deleted []string
}

func (d *directoryStub) List(ctx context.Context) ([]models.Account, error) {
	if d.listErr != nil {
		return nil, d.listErr
	}
	out := make([]models.Account, len(d.roster))
	copy(out, d.roster)
	return out, nil
}

func (d *directoryStub) Create(ctx context.Context, account models.Account) error {
	d.created = append(d.created, account)
	return nil
}

func (d *directoryStub) Update(ctx context.Context, account models.Account) error {
	d.updated = append(d.updated, account)
	return nil
}

func (d *directoryStub) Delete(ctx context.Context, id string) error {
	d.deleted = append(d.deleted, id)
	return nil
}

type mirrorStub struct {
	roster     []models.Account
	principals map[string]*models.Principal
	saveCalls  int
}

func newMirrorStub() *mirrorStub {
	return &mirrorStub{principals: make(map[string]*models.Principal)}
}

func (m *mirrorStub) SaveRoster(ctx context.Context, roster []models.Account) error {
	m.roster = roster
	m.saveCalls++
	return nil
}

func (m *mirrorStub) LoadRoster(ctx context.Context) ([]models.Account, error) {
	return m.roster, nil
}

func (m *mirrorStub) SavePrincipal(ctx context.Context, sessionID string, principal *models.Principal) error {
	m.principals[sessionID] = principal
	return nil
}

func (m *mirrorStub) LoadPrincipal(ctx context.Context, sessionID string) (*models.Principal, error) {
	return m.principals[sessionID], nil
}

func (m *mirrorStub) DeletePrincipal(ctx context.Context, sessionID string) error {
	delete(m.principals, sessionID)
	return nil
}

// codecMirrorStub persists the roster through the durable mirror's real
// encoding, so tests catch fields that do not survive serialization.
type codecMirrorStub struct {
	mirrorStub
	raw []byte
}

func (m *codecMirrorStub) SaveRoster(ctx context.Context, roster []models.Account) error {
	payload, err := repository.MarshalRoster(roster)
	if err != nil {
		return err
	}
	m.raw = payload
	return nil
}

func (m *codecMirrorStub) LoadRoster(ctx context.Context) ([]models.Account, error) {
	if m.raw == nil {
		return nil, nil
	}
	return repository.UnmarshalRoster(m.raw)
}

func hashOf(t *testing.T, secret string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func testRoster(t *testing.T) []models.Account {
	t.Helper()
	ts := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	return []models.Account{
		{ID: "admin-1", Name: "Ada Admin", Email: "ada@school.edu", SecretHash: hashOf(t, "adminsecret"), Role: models.RoleAdmin, CreatedAt: ts, UpdatedAt: ts},
		{ID: "student-1", Name: "Sam Student", Email: "sam@school.edu", SecretHash: hashOf(t, "samsecret"), Role: models.RoleStudent, Grade: "5th Grade", CreatedAt: ts, UpdatedAt: ts},
	}
}

func newTestSessionStore(t *testing.T, directory AccountDirectory, mirror SessionMirror) *SessionStore {
	t.Helper()
	store := NewSessionStore(directory, mirror, zap.NewNop(), SessionConfig{})
	store.Load(context.Background())
	return store
}

func TestLoginSucceedsWithValidCredentials(t *testing.T) {
	store := newTestSessionStore(t, &directoryStub{roster: testRoster(t)}, nil)

	principal, ok := store.Login(context.Background(), "sess-1", "Sam@School.edu", "samsecret")
	require.True(t, ok)
	assert.Equal(t, "student-1", principal.AccountID)
	assert.Equal(t, models.RoleStudent, principal.Role)

	assert.Equal(t, principal, store.Principal(context.Background(), "sess-1"))
}

func TestLoginRejectsWrongSecretAndClearsSession(t *testing.T) {
	store := newTestSessionStore(t, &directoryStub{roster: testRoster(t)}, nil)

	_, ok := store.Login(context.Background(), "sess-1", "sam@school.edu", "samsecret")
	require.True(t, ok)

	principal, ok := store.Login(context.Background(), "sess-1", "sam@school.edu", "wrong")
	assert.False(t, ok)
	assert.Nil(t, principal)
	assert.Nil(t, store.Principal(context.Background(), "sess-1"), "failed login clears the session's principal")
}

func TestLoginRejectsUnknownEmail(t *testing.T) {
	store := newTestSessionStore(t, &directoryStub{roster: testRoster(t)}, nil)

	_, ok := store.Login(context.Background(), "sess-1", "nobody@school.edu", "whatever")
	assert.False(t, ok)
}

func TestRegisterCreatesStudentAndAuthenticates(t *testing.T) {
	directory := &directoryStub{roster: testRoster(t)}
	store := newTestSessionStore(t, directory, nil)

	result := store.Register(context.Background(), "sess-1", "New Kid", "KID@school.edu", "kidsecret")
	require.True(t, result.Success)
	require.NotNil(t, result.Principal)
	assert.Equal(t, models.RoleStudent, result.Principal.Role)
	assert.Equal(t, "kid@school.edu", result.Principal.Email)

	assert.Equal(t, result.Principal, store.Principal(context.Background(), "sess-1"))
	require.Len(t, directory.created, 1, "new account is mirrored to the directory")

	principal, ok := store.Login(context.Background(), "sess-2", "kid@school.edu", "kidsecret")
	require.True(t, ok)
	assert.Equal(t, result.Principal.AccountID, principal.AccountID)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	store := newTestSessionStore(t, &directoryStub{roster: testRoster(t)}, nil)

	result := store.Register(context.Background(), "sess-1", "Imposter", "SAM@school.edu", "secret123")
	assert.False(t, result.Success)
	assert.Equal(t, "User with this email already exists.", result.Message)
	assert.Nil(t, store.Principal(context.Background(), "sess-1"))
}

func TestLogoutClearsPrincipal(t *testing.T) {
	mirror := newMirrorStub()
	store := newTestSessionStore(t, &directoryStub{roster: testRoster(t)}, mirror)

	_, ok := store.Login(context.Background(), "sess-1", "sam@school.edu", "samsecret")
	require.True(t, ok)
	require.NotNil(t, mirror.principals["sess-1"])

	store.Logout(context.Background(), "sess-1")
	assert.Nil(t, store.Principal(context.Background(), "sess-1"))
	assert.Nil(t, mirror.principals["sess-1"])
}

func TestPrincipalRehydratesFromMirror(t *testing.T) {
	mirror := newMirrorStub()
	mirror.principals["sess-1"] = &models.Principal{AccountID: "student-1", Role: models.RoleStudent}

	store := newTestSessionStore(t, &directoryStub{roster: testRoster(t)}, mirror)
	principal := store.Principal(context.Background(), "sess-1")
	require.NotNil(t, principal)
	assert.Equal(t, "student-1", principal.AccountID)
}

func TestLoadFallsBackToMirrorThenSeed(t *testing.T) {
	mirror := newMirrorStub()
	mirror.roster = testRoster(t)
	store := NewSessionStore(&directoryStub{listErr: errors.New("down")}, mirror, zap.NewNop(), SessionConfig{})
	store.Load(context.Background())
	assert.Len(t, store.Accounts(), 2, "mirror snapshot serves when the directory is down")

	seeded := NewSessionStore(&directoryStub{listErr: errors.New("down")}, nil, zap.NewNop(), SessionConfig{SeedEnabled: true})
	seeded.Load(context.Background())
	require.NotEmpty(t, seeded.Accounts(), "seed roster serves when everything is down")
	_, ok := seeded.Login(context.Background(), "sess-1", "admin@school.edu", "adminpassword")
	assert.True(t, ok)

	bare := NewSessionStore(&directoryStub{listErr: errors.New("down")}, nil, zap.NewNop(), SessionConfig{})
	bare.Load(context.Background())
	assert.Empty(t, bare.Accounts(), "seeding disabled leaves the roster empty")
}

func TestAddUserRejectsDuplicateEmail(t *testing.T) {
	store := newTestSessionStore(t, &directoryStub{roster: testRoster(t)}, nil)

	_, err := store.AddUser(context.Background(), AddAccountInput{
		Name: "Copy Cat", Email: "sam@school.edu", Secret: "secret123", Role: models.RoleStudent,
	})
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrConflict.Code, appErr.Code)
}

func TestUpdateUserRejectsEmailCollision(t *testing.T) {
	store := newTestSessionStore(t, &directoryStub{roster: testRoster(t)}, nil)

	email := "ada@school.edu"
	_, err := store.UpdateUser(context.Background(), "sess-1", "student-1", UpdateAccountInput{Email: &email})
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrConflict.Code, appErr.Code)
}

func TestUpdateUserRefreshesOwnPrincipal(t *testing.T) {
	store := newTestSessionStore(t, &directoryStub{roster: testRoster(t)}, nil)

	_, ok := store.Login(context.Background(), "sess-1", "sam@school.edu", "samsecret")
	require.True(t, ok)

	name := "Samuel Student"
	account, err := store.UpdateUser(context.Background(), "sess-1", "student-1", UpdateAccountInput{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Samuel Student", account.Name)

	principal := store.Principal(context.Background(), "sess-1")
	require.NotNil(t, principal)
	assert.Equal(t, "Samuel Student", principal.Name, "own-account updates propagate to the session principal")
}

func TestDeleteUserRejectsSelfDelete(t *testing.T) {
	store := newTestSessionStore(t, &directoryStub{roster: testRoster(t)}, nil)

	_, ok := store.Login(context.Background(), "sess-1", "ada@school.edu", "adminsecret")
	require.True(t, ok)

	err := store.DeleteUser(context.Background(), "sess-1", "admin-1")
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrSelfDelete.Code, appErr.Code)
	_, found := store.FindByID("admin-1")
	assert.True(t, found)
}

func TestLoginSurvivesMirrorRoundTrip(t *testing.T) {
	mirror := &codecMirrorStub{mirrorStub: *newMirrorStub()}
	store := newTestSessionStore(t, &directoryStub{roster: testRoster(t)}, mirror)

	result := store.Register(context.Background(), "sess-1", "New Kid", "kid@school.edu", "kidsecret")
	require.True(t, result.Success)

	restarted := NewSessionStore(&directoryStub{listErr: errors.New("down")}, mirror, zap.NewNop(), SessionConfig{})
	restarted.Load(context.Background())
	require.Len(t, restarted.Accounts(), 3)

	_, ok := restarted.Login(context.Background(), "sess-2", "kid@school.edu", "kidsecret")
	assert.True(t, ok, "login must still work after rehydration from the durable mirror")
	_, ok = restarted.Login(context.Background(), "sess-3", "sam@school.edu", "samsecret")
	assert.True(t, ok)
	_, ok = restarted.Login(context.Background(), "sess-4", "kid@school.edu", "wrong")
	assert.False(t, ok)
}

func TestDeleteUserRejectsSelfDeleteAfterRestart(t *testing.T) {
	mirror := newMirrorStub()
	store := newTestSessionStore(t, &directoryStub{roster: testRoster(t)}, mirror)

	_, ok := store.Login(context.Background(), "sess-1", "ada@school.edu", "adminsecret")
	require.True(t, ok)

	// A new store with an empty principal map but the same mirror stands in
	// for a process restart; the admin's token is still valid.
	restarted := newTestSessionStore(t, &directoryStub{roster: testRoster(t)}, mirror)

	err := restarted.DeleteUser(context.Background(), "sess-1", "admin-1")
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrSelfDelete.Code, appErr.Code)
	_, found := restarted.FindByID("admin-1")
	assert.True(t, found)
}

func TestDeleteUserRemovesOtherAccounts(t *testing.T) {
	directory := &directoryStub{roster: testRoster(t)}
	store := newTestSessionStore(t, directory, nil)

	_, ok := store.Login(context.Background(), "sess-1", "ada@school.edu", "adminsecret")
	require.True(t, ok)

	require.NoError(t, store.DeleteUser(context.Background(), "sess-1", "student-1"))
	_, found := store.FindByID("student-1")
	assert.False(t, found)
	assert.Equal(t, []string{"student-1"}, directory.deleted)
}
