package remote

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/noah-isme/school-pay-api/internal/models"
)

// PaymentsClient talks to the authoritative payment record service. Status
// tokens cross this boundary in two locales; they are decoded into the closed
// enum on the way in and encoded canonically on the way out.
type PaymentsClient struct {
	baseURL string
	client  *http.Client
}

// NewPaymentsClient builds a payment service client rooted at baseURL.
func NewPaymentsClient(baseURL string, timeout time.Duration) *PaymentsClient {
	return &PaymentsClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  newHTTPClient(timeout),
	}
}

type paymentRecord struct {
	ID            string  `json:"id"`
	StudentID     string  `json:"studentId"`
	StudentName   string  `json:"studentName"`
	Concept       string  `json:"concept"`
	Amount        float64 `json:"amount"`
	DueDate       string  `json:"dueDate"`
	PaidDate      string  `json:"paidDate,omitempty"`
	Status        string  `json:"status"`
	InvoiceNumber string  `json:"invoiceNumber,omitempty"`
	Grade         string  `json:"grade,omitempty"`
	TransactionID string  `json:"transactionId,omitempty"`
}

func (r paymentRecord) toModel() models.Payment {
	status, ok := models.ParseStatus(r.Status)
	if !ok {
		status = models.StatusPending
	}
	return models.Payment{
		ID:            r.ID,
		AccountID:     r.StudentID,
		StudentName:   r.StudentName,
		Concept:       r.Concept,
		Amount:        r.Amount,
		DueDate:       r.DueDate,
		PaidDate:      r.PaidDate,
		Status:        status,
		InvoiceNumber: r.InvoiceNumber,
		Grade:         r.Grade,
		TransactionID: r.TransactionID,
	}
}

func paymentRecordOf(p models.Payment) paymentRecord {
	return paymentRecord{
		ID:            p.ID,
		StudentID:     p.AccountID,
		StudentName:   p.StudentName,
		Concept:       p.Concept,
		Amount:        p.Amount,
		DueDate:       p.DueDate,
		PaidDate:      p.PaidDate,
		Status:        string(p.Status),
		InvoiceNumber: p.InvoiceNumber,
		Grade:         p.Grade,
		TransactionID: p.TransactionID,
	}
}

func toModels(records []paymentRecord) []models.Payment {
	payments := make([]models.Payment, 0, len(records))
	for _, r := range records {
		payments = append(payments, r.toModel())
	}
	return payments
}

// ListAll fetches every payment record (admin view).
func (c *PaymentsClient) ListAll(ctx context.Context) ([]models.Payment, error) {
	var records []paymentRecord
	if err := doJSON(ctx, c.client, http.MethodGet, c.baseURL, nil, &records); err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	return toModels(records), nil
}

// ListByAccount fetches the records owned by one account.
func (c *PaymentsClient) ListByAccount(ctx context.Context, accountID string) ([]models.Payment, error) {
	endpoint := c.baseURL + "/user/" + url.PathEscape(accountID)
	var records []paymentRecord
	if err := doJSON(ctx, c.client, http.MethodGet, endpoint, nil, &records); err != nil {
		return nil, fmt.Errorf("list payments for account %s: %w", accountID, err)
	}
	return toModels(records), nil
}

type summaryRecord struct {
	PendingCount     int     `json:"pendingCount"`
	TotalDue         float64 `json:"totalDue"`
	UpcomingPayments []struct {
		ID      string  `json:"id"`
		Concept string  `json:"concept"`
		Amount  float64 `json:"amount"`
		DueDate string  `json:"dueDate"`
		Status  string  `json:"status"`
	} `json:"upcomingPayments"`
}

// Summary fetches the precomputed summary projection for one account.
func (c *PaymentsClient) Summary(ctx context.Context, accountID string) (*models.PaymentSummary, error) {
	endpoint := c.baseURL + "/user/" + url.PathEscape(accountID) + "/summary"
	var record summaryRecord
	if err := doJSON(ctx, c.client, http.MethodGet, endpoint, nil, &record); err != nil {
		return nil, fmt.Errorf("fetch summary for account %s: %w", accountID, err)
	}

	summary := &models.PaymentSummary{
		PendingCount:     record.PendingCount,
		TotalDue:         record.TotalDue,
		UpcomingPayments: make([]models.UpcomingPayment, 0, len(record.UpcomingPayments)),
	}
	for _, u := range record.UpcomingPayments {
		status, ok := models.ParseStatus(u.Status)
		if !ok {
			status = models.StatusPending
		}
		summary.UpcomingPayments = append(summary.UpcomingPayments, models.UpcomingPayment{
			ID:      u.ID,
			Concept: u.Concept,
			Amount:  u.Amount,
			DueDate: u.DueDate,
			Status:  status,
		})
	}
	return summary, nil
}

// Create adds a new payment record.
func (c *PaymentsClient) Create(ctx context.Context, payment models.Payment) (*models.Payment, error) {
	var record paymentRecord
	if err := doJSON(ctx, c.client, http.MethodPost, c.baseURL, paymentRecordOf(payment), &record); err != nil {
		return nil, fmt.Errorf("create payment: %w", err)
	}
	created := record.toModel()
	return &created, nil
}

// Update replaces a payment record. Status changes ride this full-record PUT.
func (c *PaymentsClient) Update(ctx context.Context, payment models.Payment) (*models.Payment, error) {
	endpoint := c.baseURL + "/" + url.PathEscape(payment.ID)
	var record paymentRecord
	if err := doJSON(ctx, c.client, http.MethodPut, endpoint, paymentRecordOf(payment), &record); err != nil {
		return nil, fmt.Errorf("update payment %s: %w", payment.ID, err)
	}
	updated := record.toModel()
	return &updated, nil
}

// MarkPaid invokes the convenience transition with an optional transaction
// reference from the checkout provider.
func (c *PaymentsClient) MarkPaid(ctx context.Context, id, transactionID string) (*models.Payment, error) {
	endpoint := c.baseURL + "/" + url.PathEscape(id) + "/mark-paid"
	var body interface{}
	if transactionID != "" {
		body = map[string]string{"transactionId": transactionID}
	}
	var record paymentRecord
	if err := doJSON(ctx, c.client, http.MethodPost, endpoint, body, &record); err != nil {
		return nil, fmt.Errorf("mark payment %s paid: %w", id, err)
	}
	paid := record.toModel()
	return &paid, nil
}

// Delete removes a payment record.
func (c *PaymentsClient) Delete(ctx context.Context, id string) error {
	endpoint := c.baseURL + "/" + url.PathEscape(id)
	if err := doJSON(ctx, c.client, http.MethodDelete, endpoint, nil, nil); err != nil {
		return fmt.Errorf("delete payment %s: %w", id, err)
	}
	return nil
}
