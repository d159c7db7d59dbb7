package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/school-pay-api/internal/models"
)

func newMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	sqlxdb := sqlx.NewDb(db, "sqlmock")
	return sqlxdb, mock, func() {
		db.Close()
	}
}

func TestCreateAuditLog(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewAuditRepository(db)

	mock.ExpectExec("INSERT INTO portal_audit_logs").WillReturnResult(sqlmock.NewResult(1, 1))

	accountID := "acct-1"
	err := repo.CreateAuditLog(context.Background(), &models.AuditLog{
		AccountID:  &accountID,
		Action:     models.AuditActionLogin,
		Resource:   "auth",
		ResourceID: &accountID,
		NewValues:  []byte(`{"status":"success"}`),
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateAuditLogAssignsIDAndTimestamp(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewAuditRepository(db)

	mock.ExpectExec("INSERT INTO portal_audit_logs").WillReturnResult(sqlmock.NewResult(1, 1))

	log := &models.AuditLog{Action: models.AuditActionStatusChange, Resource: "payments"}
	require.NoError(t, repo.CreateAuditLog(context.Background(), log))
	assert.NotEmpty(t, log.ID)
	assert.False(t, log.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListByAccount(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewAuditRepository(db)

	now := time.Now()
	accountID := "acct-1"
	rows := sqlmock.NewRows([]string{"id", "account_id", "action", "resource", "resource_id", "old_values", "new_values", "ip_address", "user_agent", "created_at"}).
		AddRow("1", accountID, models.AuditActionLogin, "auth", accountID, nil, []byte(`{}`), "127.0.0.1", "test", now)
	mock.ExpectQuery(regexp.QuoteMeta("FROM portal_audit_logs WHERE account_id = $1 ORDER BY created_at DESC LIMIT $2")).
		WithArgs(accountID, 50).
		WillReturnRows(rows)

	logs, err := repo.ListByAccount(context.Background(), accountID, 0)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, models.AuditActionLogin, logs[0].Action)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListRecent(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewAuditRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "account_id", "action", "resource", "resource_id", "old_values", "new_values", "ip_address", "user_agent", "created_at"}).
		AddRow("1", "acct-1", models.AuditActionMarkPaid, "payments", "pay-1", nil, []byte(`{}`), "", "", now).
		AddRow("2", "acct-2", models.AuditActionLogout, "auth", "acct-2", nil, []byte(`{}`), "", "", now)
	mock.ExpectQuery(regexp.QuoteMeta("FROM portal_audit_logs ORDER BY created_at DESC LIMIT $1")).
		WithArgs(10).
		WillReturnRows(rows)

	logs, err := repo.ListRecent(context.Background(), 10)
	require.NoError(t, err)
	assert.Len(t, logs, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}
