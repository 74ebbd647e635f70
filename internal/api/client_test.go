package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leadterm/internal/crm"
)

type recorded struct {
	method string
	path   string
	body   map[string]interface{}
}

func newTestClient(t *testing.T, status int, response string) (*Client, *[]recorded) {
	t.Helper()
	var calls []recorded
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := recorded{method: r.Method, path: r.URL.Path}
		if r.Body != nil {
			_ = json.NewDecoder(r.Body).Decode(&rec.body)
		}
		calls = append(calls, rec)
		w.WriteHeader(status)
		_, _ = w.Write([]byte(response))
	}))
	t.Cleanup(srv.Close)
	return New(srv.URL+"/api", nil), &calls
}

func TestListLeads(t *testing.T) {
	c, calls := newTestClient(t, http.StatusOK,
		`[{"id":1,"name":"Acme","status":"New","value":"5000","is_public":1}]`)

	leads, err := c.ListLeads(context.Background())
	require.NoError(t, err)
	require.Len(t, leads, 1)
	assert.Equal(t, int64(1), leads[0].ID)
	assert.Equal(t, crm.StatusNew, leads[0].Status)
	assert.Equal(t, crm.Money(5000), leads[0].Value)
	assert.True(t, bool(leads[0].IsPublic))

	require.Len(t, *calls, 1)
	assert.Equal(t, http.MethodGet, (*calls)[0].method)
	assert.Equal(t, "/api/lead", (*calls)[0].path)
}

func TestUpdateLeadStatus(t *testing.T) {
	c, calls := newTestClient(t, http.StatusOK, `{}`)

	err := c.UpdateLeadStatus(context.Background(), 7, crm.StatusQualified)
	require.NoError(t, err)

	require.Len(t, *calls, 1)
	call := (*calls)[0]
	assert.Equal(t, http.MethodPut, call.method)
	assert.Equal(t, "/api/lead/7/status", call.path)
	assert.Equal(t, map[string]interface{}{"status": "Qualified"}, call.body)
}

func TestAssignGroup(t *testing.T) {
	c, calls := newTestClient(t, http.StatusOK, `{}`)

	err := c.AssignGroup(context.Background(), 42, []int64{3})
	require.NoError(t, err)

	call := (*calls)[0]
	assert.Equal(t, http.MethodPost, call.method)
	assert.Equal(t, "/api/group/assign", call.path)
	assert.Equal(t, float64(42), call.body["customer_id"])
	assert.Equal(t, []interface{}{float64(3)}, call.body["group_ids"])
}

func TestCreateContactReturnsRecord(t *testing.T) {
	c, calls := newTestClient(t, http.StatusOK, `{"id":11,"name":"Acme"}`)

	contact, err := c.CreateContact(context.Background(), crm.CreateContactPayload{
		Name: "Acme", Email: "ops@acme.test",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(11), contact.ID)

	call := (*calls)[0]
	assert.Equal(t, "/api/contact", call.path)
	assert.Equal(t, "Acme", call.body["name"])
}

func TestCreateLeadSendsBothValueFields(t *testing.T) {
	c, calls := newTestClient(t, http.StatusOK, `{}`)

	err := c.CreateLead(context.Background(), crm.LeadPayload{
		Name: "Acme", Status: crm.StatusNew, Source: crm.SourceGoogle,
		Value: 1500, LeadValue: 1500,
	})
	require.NoError(t, err)

	body := (*calls)[0].body
	assert.Equal(t, float64(1500), body["value"])
	assert.Equal(t, float64(1500), body["lead_value"])
}

func TestCreateProposalPath(t *testing.T) {
	c, calls := newTestClient(t, http.StatusOK, `{}`)

	err := c.CreateProposal(context.Background(), crm.ProposalPayload{
		Subject: "Q3", SubTotal: 250, TotalAmount: 235,
		Items: []crm.ProposalItem{{Qty: 2, Rate: 100, Amount: 200}},
	})
	require.NoError(t, err)

	call := (*calls)[0]
	assert.Equal(t, http.MethodPost, call.method)
	assert.Equal(t, "/api/proposal/create", call.path)
	assert.Equal(t, float64(250), call.body["sub_total"])
	assert.Equal(t, float64(235), call.body["total_amount"])
}

func TestErrorsPropagateWithoutRetry(t *testing.T) {
	c, calls := newTestClient(t, http.StatusInternalServerError, `boom`)

	_, err := c.ListLeads(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
	assert.Len(t, *calls, 1, "a failed call must not be retried")
}

func TestDeleteLead(t *testing.T) {
	c, calls := newTestClient(t, http.StatusOK, `{}`)

	require.NoError(t, c.DeleteLead(context.Background(), 3))
	assert.Equal(t, http.MethodDelete, (*calls)[0].method)
	assert.Equal(t, "/api/lead/3", (*calls)[0].path)
}

func TestLeadSubResources(t *testing.T) {
	c, calls := newTestClient(t, http.StatusOK, `[]`)
	ctx := context.Background()

	_, err := c.LeadNotes(ctx, 5)
	require.NoError(t, err)
	_, err = c.LeadTasks(ctx, 5)
	require.NoError(t, err)
	_, err = c.LeadActivity(ctx, 5)
	require.NoError(t, err)

	paths := []string{(*calls)[0].path, (*calls)[1].path, (*calls)[2].path}
	assert.Equal(t, []string{"/api/lead/5/notes", "/api/lead/5/tasks", "/api/lead/5/activity"}, paths)
}
