package models

import (
	"strings"
	"time"
)

// PaymentStatus is the closed set of payment states. Raw strings from the
// record service arrive in two locales and arbitrary casing; they are decoded
// once at the boundary via ParseStatus and compared only as this enum
// internally.
type PaymentStatus string

const (
	StatusPending    PaymentStatus = "PENDING"
	StatusOverdue    PaymentStatus = "OVERDUE"
	StatusPaid       PaymentStatus = "PAID"
	StatusProcessing PaymentStatus = "PROCESSING"
)

// statusSynonyms maps every known spelling (trimmed, upper-cased) to its
// canonical status. The Spanish tokens are what the legacy record service
// emits on read paths.
var statusSynonyms = map[string]PaymentStatus{
	"PENDING":    StatusPending,
	"PENDIENTE":  StatusPending,
	"OVERDUE":    StatusOverdue,
	"VENCIDO":    StatusOverdue,
	"PAID":       StatusPaid,
	"PAGADO":     StatusPaid,
	"PROCESSING": StatusProcessing,
	"PROCESANDO": StatusProcessing,
}

// ParseStatus decodes a raw status token. The second return value is false
// when the token matches no known synonym.
func ParseStatus(raw string) (PaymentStatus, bool) {
	status, ok := statusSynonyms[strings.ToUpper(strings.TrimSpace(raw))]
	return status, ok
}

// Valid reports whether the status is a member of the closed set.
func (s PaymentStatus) Valid() bool {
	switch s {
	case StatusPending, StatusOverdue, StatusPaid, StatusProcessing:
		return true
	}
	return false
}

// TranslationKey returns the i18n key used to render the status badge.
func (s PaymentStatus) TranslationKey() string {
	switch s {
	case StatusPaid:
		return "paid"
	case StatusOverdue:
		return "overdue"
	case StatusProcessing:
		return "processing"
	default:
		return "pending"
	}
}

// Payment is a fee obligation owned by the remote record service. The portal
// holds a principal-scoped read-through cache of these records.
type Payment struct {
	ID            string        `json:"id"`
	AccountID     string        `json:"account_id"`
	StudentName   string        `json:"student_name"`
	Concept       string        `json:"concept"`
	Amount        float64       `json:"amount"`
	DueDate       string        `json:"due_date"`
	PaidDate      string        `json:"paid_date,omitempty"`
	Status        PaymentStatus `json:"status"`
	InvoiceNumber string        `json:"invoice_number,omitempty"`
	Grade         string        `json:"grade,omitempty"`
	TransactionID string        `json:"transaction_id,omitempty"`
}

// ApplyStatus rewrites the status and keeps the paidDate invariant: paidDate
// is set iff status is Paid.
func (p *Payment) ApplyStatus(status PaymentStatus, now time.Time) {
	p.Status = status
	if status == StatusPaid {
		if p.PaidDate == "" {
			p.PaidDate = now.Format("2006-01-02")
		}
		return
	}
	p.PaidDate = ""
}

// DueTime parses the due date for ordering. Records with unparseable due
// dates sort last.
func (p *Payment) DueTime() (time.Time, bool) {
	if p.DueDate == "" {
		return time.Time{}, false
	}
	t, err := time.Parse("2006-01-02", p.DueDate)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// UpcomingPayment is the trimmed projection used in summaries.
type UpcomingPayment struct {
	ID      string        `json:"id"`
	Concept string        `json:"concept"`
	Amount  float64       `json:"amount"`
	DueDate string        `json:"due_date"`
	Status  PaymentStatus `json:"status"`
}

// PaymentSummary is a derived, non-persisted projection of one account's
// payment set.
type PaymentSummary struct {
	PendingCount     int               `json:"pending_count"`
	TotalDue         float64           `json:"total_due"`
	UpcomingPayments []UpcomingPayment `json:"upcoming_payments"`
}
