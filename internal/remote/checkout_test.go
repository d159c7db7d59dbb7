package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/school-pay-api/internal/models"
)

func TestCreateOrderReturnsApprovalURL(t *testing.T) {
	var orderBody map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/oauth2/token":
			user, pass, ok := r.BasicAuth()
			require.True(t, ok)
			assert.Equal(t, "client-id", user)
			assert.Equal(t, "client-secret", pass)
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"access_token":"tok-1"}`))
		case "/v2/checkout/orders":
			assert.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))
			require.NoError(t, json.NewDecoder(r.Body).Decode(&orderBody))
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"id":"order-1","links":[
				{"rel":"self","href":"https://provider.test/self"},
				{"rel":"approve","href":"https://provider.test/approve/order-1"}
			]}`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	client := NewCheckoutClient(CheckoutConfig{
		BaseURL:      srv.URL,
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		ReturnURL:    "https://portal.test/payments/checkout/success",
		CancelURL:    "https://portal.test/payments",
		Timeout:      time.Second,
	})
	require.True(t, client.Configured())

	approvalURL, err := client.CreateOrder(context.Background(), models.Payment{ID: "p1", Concept: "Tuition", Amount: 100})
	require.NoError(t, err)
	assert.Equal(t, "https://provider.test/approve/order-1", approvalURL)

	units, ok := orderBody["purchase_units"].([]interface{})
	require.True(t, ok)
	require.Len(t, units, 1)
	amount := units[0].(map[string]interface{})["amount"].(map[string]interface{})
	assert.Equal(t, "100.00", amount["value"])
	assert.Equal(t, "USD", amount["currency_code"])

	appCtx := orderBody["application_context"].(map[string]interface{})
	assert.Equal(t, "https://portal.test/payments/checkout/success?paymentId=p1", appCtx["return_url"])
}

func TestCreateOrderFailsWithoutApprovalLink(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Path == "/v1/oauth2/token" {
			_, _ = w.Write([]byte(`{"access_token":"tok-1"}`))
			return
		}
		_, _ = w.Write([]byte(`{"id":"order-1","links":[]}`))
	}))
	defer srv.Close()

	client := NewCheckoutClient(CheckoutConfig{BaseURL: srv.URL, ClientID: "id", ClientSecret: "secret", Timeout: time.Second})
	_, err := client.CreateOrder(context.Background(), models.Payment{ID: "p1", Amount: 50})
	require.Error(t, err)
}

func TestCreateOrderFailsOnTokenRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := NewCheckoutClient(CheckoutConfig{BaseURL: srv.URL, ClientID: "id", ClientSecret: "bad", Timeout: time.Second})
	_, err := client.CreateOrder(context.Background(), models.Payment{ID: "p1", Amount: 50})
	require.Error(t, err)
	assert.Contains(t, fmt.Sprint(err), "token")
}

func TestConfiguredRequiresCredentials(t *testing.T) {
	assert.False(t, NewCheckoutClient(CheckoutConfig{}).Configured())
	assert.False(t, NewCheckoutClient(CheckoutConfig{ClientID: "id"}).Configured())
	assert.True(t, NewCheckoutClient(CheckoutConfig{ClientID: "id", ClientSecret: "secret"}).Configured())
}
