package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/school-pay-api/internal/models"
	"github.com/noah-isme/school-pay-api/internal/store"
	appErrors "github.com/noah-isme/school-pay-api/pkg/errors"
)

type auditRecorderStub struct {
	logs []*models.AuditLog
}

func (s *auditRecorderStub) CreateAuditLog(ctx context.Context, log *models.AuditLog) error {
	s.logs = append(s.logs, log)
	return nil
}

type rosterDirectoryStub struct {
	roster []models.Account
}

func (d *rosterDirectoryStub) List(ctx context.Context) ([]models.Account, error) {
	return d.roster, nil
}
func (d *rosterDirectoryStub) Create(ctx context.Context, account models.Account) error { return nil }
func (d *rosterDirectoryStub) Update(ctx context.Context, account models.Account) error { return nil }
func (d *rosterDirectoryStub) Delete(ctx context.Context, id string) error              { return nil }

func newAuthFixture(t *testing.T) (*AuthService, *auditRecorderStub) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("samsecret"), bcrypt.MinCost)
	require.NoError(t, err)

	directory := &rosterDirectoryStub{roster: []models.Account{
		{ID: "student-1", Name: "Sam Student", Email: "sam@school.edu", SecretHash: string(hash), Role: models.RoleStudent},
	}}
	sessions := store.NewSessionStore(directory, nil, zap.NewNop(), store.SessionConfig{})
	sessions.Load(context.Background())

	audit := &auditRecorderStub{}
	svc := NewAuthService(sessions, audit, nil, zap.NewNop(), AuthConfig{
		AccessTokenSecret: "test-secret",
		AccessTokenExpiry: time.Hour,
		Issuer:            "school-pay-api",
	})
	return svc, audit
}

func TestLoginIssuesValidToken(t *testing.T) {
	svc, audit := newAuthFixture(t)

	res, err := svc.Login(context.Background(), models.LoginRequest{Email: "sam@school.edu", Secret: "samsecret"})
	require.NoError(t, err)
	require.NotNil(t, res.Principal)
	assert.Equal(t, "student-1", res.Principal.AccountID)
	assert.Equal(t, int64(3600), res.ExpiresIn)

	claims, err := svc.ValidateToken(res.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "student-1", claims.AccountID)
	assert.Equal(t, models.RoleStudent, claims.Role)
	assert.NotEmpty(t, claims.SessionID)

	require.Len(t, audit.logs, 1)
	assert.Equal(t, models.AuditActionLogin, audit.logs[0].Action)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc, _ := newAuthFixture(t)

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: "sam@school.edu", Secret: "wrong"})
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErr.Code)
}

func TestLoginValidatesPayload(t *testing.T) {
	svc, _ := newAuthFixture(t)

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: "not-an-email", Secret: "x"})
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
}

func TestRegisterSignsInNewStudent(t *testing.T) {
	svc, _ := newAuthFixture(t)

	res, result, err := svc.Register(context.Background(), models.RegisterRequest{
		Name: "New Kid", Email: "kid@school.edu", Secret: "kidsecret",
	})
	require.NoError(t, err)
	require.NotNil(t, res)
	require.True(t, result.Success)
	assert.Equal(t, models.RoleStudent, res.Principal.Role)

	claims, err := svc.ValidateToken(res.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, res.Principal.AccountID, claims.AccountID)
}

func TestRegisterReportsDuplicateEmail(t *testing.T) {
	svc, _ := newAuthFixture(t)

	res, result, err := svc.Register(context.Background(), models.RegisterRequest{
		Name: "Imposter", Email: "sam@school.edu", Secret: "secret123",
	})
	require.NoError(t, err)
	assert.Nil(t, res)
	require.NotNil(t, result)
	assert.False(t, result.Success)
	assert.Equal(t, "User with this email already exists.", result.Message)
}

func TestValidateTokenRejectsTampering(t *testing.T) {
	svc, _ := newAuthFixture(t)

	res, err := svc.Login(context.Background(), models.LoginRequest{Email: "sam@school.edu", Secret: "samsecret"})
	require.NoError(t, err)

	_, err = svc.ValidateToken(res.AccessToken + "x")
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErr.Code)

	other := NewAuthService(nil, nil, nil, zap.NewNop(), AuthConfig{AccessTokenSecret: "other-secret"})
	_, err = other.ValidateToken(res.AccessToken)
	require.Error(t, err)
}
