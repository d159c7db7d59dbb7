package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatusSynonyms(t *testing.T) {
	cases := []struct {
		raw  string
		want PaymentStatus
	}{
		{"PENDING", StatusPending},
		{"pendiente", StatusPending},
		{"  Pagado  ", StatusPaid},
		{"paid", StatusPaid},
		{"VENCIDO", StatusOverdue},
		{"Overdue", StatusOverdue},
		{"procesando", StatusProcessing},
		{"PROCESSING", StatusProcessing},
	}
	for _, tc := range cases {
		got, ok := ParseStatus(tc.raw)
		require.True(t, ok, "expected %q to parse", tc.raw)
		assert.Equal(t, tc.want, got)
	}
}

func TestParseStatusRejectsUnknownTokens(t *testing.T) {
	for _, raw := range []string{"", "CANCELLED", "pa id", "paid!"} {
		_, ok := ParseStatus(raw)
		assert.False(t, ok, "expected %q to be rejected", raw)
	}
}

func TestApplyStatusSetsPaidDateOnlyWhenPaid(t *testing.T) {
	now := time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)

	p := Payment{ID: "p1", Status: StatusPending}
	p.ApplyStatus(StatusPaid, now)
	assert.Equal(t, StatusPaid, p.Status)
	assert.Equal(t, "2025-03-15", p.PaidDate)

	// An existing paid date is preserved.
	p.PaidDate = "2025-01-01"
	p.ApplyStatus(StatusPaid, now)
	assert.Equal(t, "2025-01-01", p.PaidDate)

	// Leaving Paid clears it.
	p.ApplyStatus(StatusPending, now)
	assert.Equal(t, StatusPending, p.Status)
	assert.Empty(t, p.PaidDate)
}

func TestDueTimeOrderingInput(t *testing.T) {
	p := Payment{DueDate: "2025-06-01"}
	ts, ok := p.DueTime()
	require.True(t, ok)
	assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), ts)

	for _, raw := range []string{"", "June 1st", "2025/06/01"} {
		p := Payment{DueDate: raw}
		_, ok := p.DueTime()
		assert.False(t, ok, "expected %q to be unparseable", raw)
	}
}

func TestRoleHomePath(t *testing.T) {
	assert.Equal(t, "/admin/dashboard", RoleAdmin.HomePath())
	assert.Equal(t, "/", RoleStudent.HomePath())
}
