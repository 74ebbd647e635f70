package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"leadterm/internal/crm"
)

// DefaultBaseURL is used when the config carries no API address.
const DefaultBaseURL = "http://localhost:5000/api"

// Client issues one HTTP call per logical operation against the CRM API.
// It holds no state, caches nothing and never retries: a failure always
// reaches the caller as the original error. No timeout is set here either;
// a hung call stays hung until the transport gives up.
type Client struct {
	baseURL string
	http    *http.Client
	log     *zap.Logger
}

// New returns a client for the given base URL ("…/api", no trailing slash).
func New(baseURL string, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		log:     logger,
	}
}

func (c *Client) do(ctx context.Context, method, path string, in, out interface{}) error {
	reqID := uuid.NewString()

	var body io.Reader
	if in != nil {
		encoded, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Error("request failed",
			zap.String("req", reqID),
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err))
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		c.log.Error("request rejected",
			zap.String("req", reqID),
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode))
		return fmt.Errorf("%s %s: status %d", method, path, resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

// --- Contacts ---

func (c *Client) ListContacts(ctx context.Context) ([]crm.Contact, error) {
	var contacts []crm.Contact
	err := c.do(ctx, http.MethodGet, "/contact", nil, &contacts)
	return contacts, err
}

func (c *Client) Contact(ctx context.Context, id int64) (*crm.Contact, error) {
	var contact crm.Contact
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/contact/%d", id), nil, &contact); err != nil {
		return nil, err
	}
	return &contact, nil
}

// CreateContact returns the created record; callers use its id for the
// follow-up group assignment.
func (c *Client) CreateContact(ctx context.Context, p crm.CreateContactPayload) (*crm.Contact, error) {
	var contact crm.Contact
	if err := c.do(ctx, http.MethodPost, "/contact", p, &contact); err != nil {
		return nil, err
	}
	return &contact, nil
}

func (c *Client) UpdateContact(ctx context.Context, id int64, p crm.UpdateContactPayload) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/contact/%d", id), p, nil)
}

func (c *Client) DeleteContact(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/contact/%d", id), nil, nil)
}

// --- Groups ---

func (c *Client) ListGroups(ctx context.Context) ([]crm.Group, error) {
	var groups []crm.Group
	err := c.do(ctx, http.MethodGet, "/group", nil, &groups)
	return groups, err
}

func (c *Client) AssignGroup(ctx context.Context, customerID int64, groupIDs []int64) error {
	p := crm.AssignGroupPayload{CustomerID: customerID, GroupIDs: groupIDs}
	return c.do(ctx, http.MethodPost, "/group/assign", p, nil)
}

// --- Leads ---

func (c *Client) ListLeads(ctx context.Context) ([]crm.Lead, error) {
	var leads []crm.Lead
	err := c.do(ctx, http.MethodGet, "/lead", nil, &leads)
	return leads, err
}

func (c *Client) Lead(ctx context.Context, id int64) (*crm.Lead, error) {
	var lead crm.Lead
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/lead/%d", id), nil, &lead); err != nil {
		return nil, err
	}
	return &lead, nil
}

func (c *Client) CreateLead(ctx context.Context, p crm.LeadPayload) error {
	return c.do(ctx, http.MethodPost, "/lead", p, nil)
}

func (c *Client) UpdateLead(ctx context.Context, id int64, p crm.LeadPayload) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/lead/%d", id), p, nil)
}

func (c *Client) UpdateLeadStatus(ctx context.Context, id int64, status crm.LeadStatus) error {
	p := crm.StatusPayload{Status: status}
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/lead/%d/status", id), p, nil)
}

func (c *Client) DeleteLead(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/lead/%d", id), nil, nil)
}

// --- Lead sub-resources ---

func (c *Client) LeadTasks(ctx context.Context, id int64) ([]crm.LeadTask, error) {
	var tasks []crm.LeadTask
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/lead/%d/tasks", id), nil, &tasks)
	return tasks, err
}

func (c *Client) AddLeadTask(ctx context.Context, id int64, p crm.TaskPayload) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/lead/%d/tasks", id), p, nil)
}

func (c *Client) ToggleLeadTask(ctx context.Context, taskID int64) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/lead/tasks/%d/toggle", taskID), nil, nil)
}

func (c *Client) LeadReminders(ctx context.Context, id int64) ([]crm.LeadReminder, error) {
	var reminders []crm.LeadReminder
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/lead/%d/reminders", id), nil, &reminders)
	return reminders, err
}

func (c *Client) AddLeadReminder(ctx context.Context, id int64, p crm.ReminderPayload) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/lead/%d/reminders", id), p, nil)
}

func (c *Client) LeadNotes(ctx context.Context, id int64) ([]crm.LeadNote, error) {
	var notes []crm.LeadNote
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/lead/%d/notes", id), nil, &notes)
	return notes, err
}

func (c *Client) AddLeadNote(ctx context.Context, id int64, p crm.NotePayload) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/lead/%d/notes", id), p, nil)
}

func (c *Client) LeadActivity(ctx context.Context, id int64) ([]crm.LeadActivity, error) {
	var feed []crm.LeadActivity
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/lead/%d/activity", id), nil, &feed)
	return feed, err
}

func (c *Client) LeadProposals(ctx context.Context, id int64) ([]crm.ProposalPayload, error) {
	var proposals []crm.ProposalPayload
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/lead/%d/proposals", id), nil, &proposals)
	return proposals, err
}

func (c *Client) LeadAttachments(ctx context.Context, id int64) ([]crm.LeadAttachment, error) {
	var files []crm.LeadAttachment
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/lead/%d/attachments", id), nil, &files)
	return files, err
}

func (c *Client) AddLeadAttachment(ctx context.Context, id int64, a crm.LeadAttachment) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/lead/%d/attachments", id), a, nil)
}

// --- Proposals ---

func (c *Client) CreateProposal(ctx context.Context, p crm.ProposalPayload) error {
	return c.do(ctx, http.MethodPost, "/proposal/create", p, nil)
}
