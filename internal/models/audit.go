package models

import "time"

// AuditAction constants represent actions to be logged.
const (
	AuditActionLogin         = "LOGIN"
	AuditActionLogout        = "LOGOUT"
	AuditActionRegister      = "REGISTER"
	AuditActionAccountCreate = "ACCOUNT_CREATE"
	AuditActionAccountUpdate = "ACCOUNT_UPDATE"
	AuditActionAccountDelete = "ACCOUNT_DELETE"
	AuditActionStatusChange  = "PAYMENT_STATUS_CHANGE"
	AuditActionMarkPaid      = "PAYMENT_MARK_PAID"
)

// AuditLog represents an audit trail record kept in the portal's own store.
type AuditLog struct {
	ID         string    `db:"id" json:"id"`
	AccountID  *string   `db:"account_id" json:"account_id,omitempty"`
	Action     string    `db:"action" json:"action"`
	Resource   string    `db:"resource" json:"resource"`
	ResourceID *string   `db:"resource_id" json:"resource_id,omitempty"`
	OldValues  []byte    `db:"old_values" json:"old_values,omitempty"`
	NewValues  []byte    `db:"new_values" json:"new_values,omitempty"`
	IPAddress  string    `db:"ip_address" json:"ip_address"`
	UserAgent  string    `db:"user_agent" json:"user_agent"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}
