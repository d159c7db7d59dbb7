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

// AccountsClient talks to the remote account directory.
type AccountsClient struct {
	baseURL string
	client  *http.Client
}

// NewAccountsClient builds a directory client rooted at baseURL.
func NewAccountsClient(baseURL string, timeout time.Duration) *AccountsClient {
	return &AccountsClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  newHTTPClient(timeout),
	}
}

// accountRecord is the directory wire shape. The password field carries the
// stored credential hash; the directory keeps it with the record the same way
// it keeps the profile fields, and login is impossible without it.
type accountRecord struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password,omitempty"`
	Role     string `json:"role"`
	Grade    string `json:"grade,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Address  string `json:"address,omitempty"`
}

func (r accountRecord) toModel() models.Account {
	role := models.Role(strings.ToLower(strings.TrimSpace(r.Role)))
	if !role.Valid() {
		role = models.RoleStudent
	}
	return models.Account{
		ID:         r.ID,
		Name:       r.Name,
		Email:      strings.ToLower(strings.TrimSpace(r.Email)),
		SecretHash: r.Password,
		Role:       role,
		Grade:      r.Grade,
		Phone:      r.Phone,
		Address:    r.Address,
	}
}

func recordOf(a models.Account) accountRecord {
	return accountRecord{
		ID:       a.ID,
		Name:     a.Name,
		Email:    a.Email,
		Password: a.SecretHash,
		Role:     string(a.Role),
		Grade:    a.Grade,
		Phone:    a.Phone,
		Address:  a.Address,
	}
}

// List fetches the full roster from the directory.
func (c *AccountsClient) List(ctx context.Context) ([]models.Account, error) {
	var records []accountRecord
	if err := doJSON(ctx, c.client, http.MethodGet, c.baseURL, nil, &records); err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	accounts := make([]models.Account, 0, len(records))
	for _, r := range records {
		accounts = append(accounts, r.toModel())
	}
	return accounts, nil
}

// Create mirrors an account creation to the directory.
func (c *AccountsClient) Create(ctx context.Context, account models.Account) error {
	if err := doJSON(ctx, c.client, http.MethodPost, c.baseURL, recordOf(account), nil); err != nil {
		return fmt.Errorf("create account: %w", err)
	}
	return nil
}

// Update mirrors an account update to the directory.
func (c *AccountsClient) Update(ctx context.Context, account models.Account) error {
	endpoint := c.baseURL + "/" + url.PathEscape(account.ID)
	if err := doJSON(ctx, c.client, http.MethodPut, endpoint, recordOf(account), nil); err != nil {
		return fmt.Errorf("update account %s: %w", account.ID, err)
	}
	return nil
}

// Delete mirrors an account deletion to the directory.
func (c *AccountsClient) Delete(ctx context.Context, id string) error {
	endpoint := c.baseURL + "/" + url.PathEscape(id)
	if err := doJSON(ctx, c.client, http.MethodDelete, endpoint, nil, nil); err != nil {
		return fmt.Errorf("delete account %s: %w", id, err)
	}
	return nil
}
