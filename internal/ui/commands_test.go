package ui

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leadterm/internal/api"
	"leadterm/internal/crm"
)

func TestUpdateCustomerCmd(t *testing.T) {
	newServer := func(t *testing.T) (*api.Client, *[]string, *string) {
		t.Helper()
		var calls []string
		var assignBody string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls = append(calls, r.Method+" "+r.URL.Path)
			if r.URL.Path == "/api/group/assign" {
				body, _ := io.ReadAll(r.Body)
				assignBody = string(body)
			}
			_, _ = w.Write([]byte(`{}`))
		}))
		t.Cleanup(srv.Close)
		return api.New(srv.URL+"/api", nil), &calls, &assignBody
	}

	payload := crm.UpdateContactPayload{Name: "Acme", Email: "acme@example.com"}

	t.Run("update with a group chains the assignment", func(t *testing.T) {
		client, calls, assignBody := newServer(t)
		msg := updateCustomerCmd(client, 7, payload, 4)()
		saved, ok := msg.(customerSavedMsg)
		require.True(t, ok, "got %T", msg)
		assert.Equal(t, "Acme", saved.name)
		require.Equal(t, []string{"PUT /api/contact/7", "POST /api/group/assign"}, *calls)
		assert.Contains(t, *assignBody, `"customer_id":7`)
		assert.Contains(t, *assignBody, `[4]`)
	})

	t.Run("update without a group issues a single call", func(t *testing.T) {
		client, calls, _ := newServer(t)
		msg := updateCustomerCmd(client, 7, payload, 0)()
		_, ok := msg.(customerSavedMsg)
		require.True(t, ok, "got %T", msg)
		assert.Equal(t, []string{"PUT /api/contact/7"}, *calls)
	})
}
