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

func TestListNormalizesRolesAndEmails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"id":"a1","name":"Ada","email":"ADA@School.edu","role":"ADMIN"},
			{"id":"s1","name":"Sam","email":"sam@school.edu","role":"student","grade":"5th Grade"},
			{"id":"x1","name":"Odd","email":"odd@school.edu","role":"superuser"}
		]`))
	}))
	defer srv.Close()

	client := NewAccountsClient(srv.URL, time.Second)
	accounts, err := client.List(context.Background())
	require.NoError(t, err)
	require.Len(t, accounts, 3)
	assert.Equal(t, "ada@school.edu", accounts[0].Email)
	assert.Equal(t, models.RoleAdmin, accounts[0].Role)
	assert.Equal(t, models.RoleStudent, accounts[1].Role)
	assert.Equal(t, models.RoleStudent, accounts[2].Role, "unknown roles fall back to student")
}

func TestCreateAndUpdateMirrorAccountFields(t *testing.T) {
	var created, updated accountRecord
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			require.NoError(t, json.NewDecoder(r.Body).Decode(&created))
			w.WriteHeader(http.StatusCreated)
		case http.MethodPut:
			assert.Equal(t, "/s1", r.URL.Path)
			require.NoError(t, json.NewDecoder(r.Body).Decode(&updated))
		default:
			t.Errorf("unexpected method %s", r.Method)
		}
	}))
	defer srv.Close()

	client := NewAccountsClient(srv.URL, time.Second)
	account := models.Account{ID: "s1", Name: "Sam", Email: "sam@school.edu", Role: models.RoleStudent, Grade: "5th Grade"}

	require.NoError(t, client.Create(context.Background(), account))
	assert.Equal(t, "sam@school.edu", created.Email)
	assert.Equal(t, "student", created.Role)

	account.Grade = "6th Grade"
	require.NoError(t, client.Update(context.Background(), account))
	assert.Equal(t, "6th Grade", updated.Grade)
}

func TestDirectoryCarriesCredentialHash(t *testing.T) {
	var created accountRecord
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			require.NoError(t, json.NewDecoder(r.Body).Decode(&created))
			w.WriteHeader(http.StatusCreated)
		case http.MethodGet:
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`[{"id":"s1","name":"Sam","email":"sam@school.edu","password":"$2a$10$storedhash","role":"student"}]`))
		}
	}))
	defer srv.Close()

	client := NewAccountsClient(srv.URL, time.Second)
	account := models.Account{ID: "s1", Name: "Sam", Email: "sam@school.edu", SecretHash: "$2a$10$storedhash", Role: models.RoleStudent}

	require.NoError(t, client.Create(context.Background(), account))
	assert.Equal(t, "$2a$10$storedhash", created.Password, "directory writes carry the credential hash")

	accounts, err := client.List(context.Background())
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.Equal(t, "$2a$10$storedhash", accounts[0].SecretHash, "directory reads restore the credential hash")
}

func TestDeleteTargetsAccountPath(t *testing.T) {
	var path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		path = r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	client := NewAccountsClient(srv.URL, time.Second)
	require.NoError(t, client.Delete(context.Background(), "s1"))
	assert.Equal(t, "/s1", path)
}
