package remote

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/school-pay-api/internal/models"
)

func TestListByAccountDecodesLocalizedStatuses(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/user/acct-1", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"id":"p1","studentId":"acct-1","concept":"Tuition","amount":100,"dueDate":"2025-03-01","status":"Pendiente"},
			{"id":"p2","studentId":"acct-1","concept":"Lab Fee","amount":25,"dueDate":"2025-01-01","status":"VENCIDO"},
			{"id":"p3","studentId":"acct-1","concept":"Books","amount":30,"status":"pagado","paidDate":"2025-01-15"}
		]`))
	}))
	defer srv.Close()

	client := NewPaymentsClient(srv.URL, time.Second)
	payments, err := client.ListByAccount(context.Background(), "acct-1")
	require.NoError(t, err)
	require.Len(t, payments, 3)
	assert.Equal(t, models.StatusPending, payments[0].Status)
	assert.Equal(t, models.StatusOverdue, payments[1].Status)
	assert.Equal(t, models.StatusPaid, payments[2].Status)
	assert.Equal(t, "2025-01-15", payments[2].PaidDate)
}

func TestUpdateSendsFullRecordWithCanonicalStatus(t *testing.T) {
	var received paymentRecord
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/p1", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(received)
	}))
	defer srv.Close()

	client := NewPaymentsClient(srv.URL, time.Second)
	updated, err := client.Update(context.Background(), models.Payment{
		ID: "p1", AccountID: "acct-1", Concept: "Tuition", Amount: 100,
		DueDate: "2025-03-01", Status: models.StatusPaid, PaidDate: "2025-03-10",
	})
	require.NoError(t, err)
	assert.Equal(t, "PAID", received.Status)
	assert.Equal(t, "acct-1", received.StudentID)
	assert.Equal(t, models.StatusPaid, updated.Status)
}

func TestMarkPaidPostsTransactionReference(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/p1/mark-paid", r.URL.Path)
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "txn-42", body["transactionId"])
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"p1","status":"PAID","paidDate":"2025-03-10","transactionId":"txn-42"}`))
	}))
	defer srv.Close()

	client := NewPaymentsClient(srv.URL, time.Second)
	paid, err := client.MarkPaid(context.Background(), "p1", "txn-42")
	require.NoError(t, err)
	assert.Equal(t, models.StatusPaid, paid.Status)
	assert.Equal(t, "txn-42", paid.TransactionID)
}

func TestSummaryDecodesProjection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/user/acct-1/summary", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"pendingCount": 2,
			"totalDue": 125.5,
			"upcomingPayments": [
				{"id":"p1","concept":"Tuition","amount":100,"dueDate":"2025-03-01","status":"pendiente"}
			]
		}`))
	}))
	defer srv.Close()

	client := NewPaymentsClient(srv.URL, time.Second)
	summary, err := client.Summary(context.Background(), "acct-1")
	require.NoError(t, err)
	assert.Equal(t, 2, summary.PendingCount)
	assert.InDelta(t, 125.5, summary.TotalDue, 0.001)
	require.Len(t, summary.UpcomingPayments, 1)
	assert.Equal(t, models.StatusPending, summary.UpcomingPayments[0].Status)
}

func TestPaymentsClientSurfacesServerErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewPaymentsClient(srv.URL, time.Second)
	_, err := client.ListAll(context.Background())
	require.Error(t, err)

	require.Error(t, client.Delete(context.Background(), "p1"))
}
