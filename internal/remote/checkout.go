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

// CheckoutClient obtains approval URLs from the third-party checkout
// provider using the client-credentials flow.
type CheckoutClient struct {
	baseURL      string
	clientID     string
	clientSecret string
	currency     string
	returnURL    string
	cancelURL    string
	client       *http.Client
}

// CheckoutConfig configures the provider client.
type CheckoutConfig struct {
	BaseURL      string
	ClientID     string
	ClientSecret string
	Currency     string
	ReturnURL    string
	CancelURL    string
	Timeout      time.Duration
}

// NewCheckoutClient builds a checkout provider client.
func NewCheckoutClient(cfg CheckoutConfig) *CheckoutClient {
	currency := cfg.Currency
	if currency == "" {
		currency = "USD"
	}
	return &CheckoutClient{
		baseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		currency:     currency,
		returnURL:    cfg.ReturnURL,
		cancelURL:    cfg.CancelURL,
		client:       newHTTPClient(cfg.Timeout),
	}
}

// Configured reports whether provider credentials are present.
func (c *CheckoutClient) Configured() bool {
	return c.clientID != "" && c.clientSecret != ""
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
}

type orderResponse struct {
	ID    string `json:"id"`
	Links []struct {
		Rel  string `json:"rel"`
		Href string `json:"href"`
	} `json:"links"`
}

// CreateOrder creates a checkout order for the payment and returns the
// provider's approval URL. The return URL carries the payment id so the
// success callback can complete the mark-paid transition.
func (c *CheckoutClient) CreateOrder(ctx context.Context, payment models.Payment) (string, error) {
	token, err := c.accessToken(ctx)
	if err != nil {
		return "", err
	}

	returnURL := c.returnURL
	if returnURL != "" {
		sep := "?"
		if strings.Contains(returnURL, "?") {
			sep = "&"
		}
		returnURL = returnURL + sep + "paymentId=" + url.QueryEscape(payment.ID)
	}

	body := map[string]interface{}{
		"intent": "CAPTURE",
		"purchase_units": []map[string]interface{}{
			{
				"amount": map[string]string{
					"currency_code": c.currency,
					"value":         fmt.Sprintf("%.2f", payment.Amount),
				},
				"description": payment.Concept,
			},
		},
		"application_context": map[string]string{
			"return_url": returnURL,
			"cancel_url": c.cancelURL,
		},
	}

	var order orderResponse
	if err := c.postJSONWithAuth(ctx, c.baseURL+"/v2/checkout/orders", token, body, &order); err != nil {
		return "", fmt.Errorf("create checkout order for payment %s: %w", payment.ID, err)
	}

	for _, link := range order.Links {
		if link.Rel == "approve" {
			return link.Href, nil
		}
	}
	return "", fmt.Errorf("checkout order %s has no approval link", order.ID)
}

func (c *CheckoutClient) accessToken(ctx context.Context) (string, error) {
	form := strings.NewReader("grant_type=client_credentials")
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/oauth2/token", form)
	if err != nil {
		return "", fmt.Errorf("build token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(c.clientID, c.clientSecret)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch checkout token: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch checkout token: unexpected status %d", resp.StatusCode)
	}

	var token tokenResponse
	if err := decodeJSON(resp, &token); err != nil {
		return "", err
	}
	if token.AccessToken == "" {
		return "", fmt.Errorf("checkout token response missing access_token")
	}
	return token.AccessToken, nil
}

func (c *CheckoutClient) postJSONWithAuth(ctx context.Context, endpoint, token string, body, out interface{}) error {
	payload, err := encodeJSON(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, payload)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return decodeJSON(resp, out)
}
