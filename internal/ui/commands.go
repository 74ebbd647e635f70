package ui

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"leadterm/internal/api"
	"leadterm/internal/board"
	"leadterm/internal/crm"
	"leadterm/internal/leadcsv"
)

// Messages produced by async API commands. Every network call runs inside a
// tea.Cmd closure so the event loop never blocks; the completion message
// carries either the data or the error plus whatever the handler needs to
// recover.

type leadsLoadedMsg struct {
	leads []crm.Lead
}

type loadFailedMsg struct {
	what string
	err  error
}

type leadSavedMsg struct {
	name    string
	created bool
}

type leadDeletedMsg struct {
	id   int64
	name string
}

type statusUpdatedMsg struct {
	id int64
}

// statusUpdateFailedMsg carries the pre-update snapshot so the handler can
// put the whole collection back the way it was.
type statusUpdateFailedMsg struct {
	snapshot board.Snapshot
	err      error
}

type customersLoadedMsg struct {
	customers []crm.Contact
}

type groupsLoadedMsg struct {
	groups []crm.Group
}

type customerSavedMsg struct {
	name    string
	created bool
}

type customerEditLoadedMsg struct {
	contact crm.Contact
}

type leadEditLoadedMsg struct {
	lead crm.Lead
}

type detailLoadedMsg struct {
	lead     crm.Lead
	notes    []crm.LeadNote
	tasks    []crm.LeadTask
	activity []crm.LeadActivity
}

type noteAddedMsg struct{}

type taskAddedMsg struct{}

type taskToggledMsg struct {
	taskID int64
}

type proposalSentMsg struct {
	subject string
}

type submitFailedMsg struct {
	what string
	err  error
}

type exportDoneMsg struct {
	path  string
	count int
}

type importDoneMsg struct {
	result leadcsv.ImportResult
}

func loadLeadsCmd(client *api.Client) tea.Cmd {
	return func() tea.Msg {
		leads, err := client.ListLeads(context.Background())
		if err != nil {
			return loadFailedMsg{what: "leads", err: err}
		}
		return leadsLoadedMsg{leads: leads}
	}
}

func loadLeadForEditCmd(client *api.Client, id int64) tea.Cmd {
	return func() tea.Msg {
		lead, err := client.Lead(context.Background(), id)
		if err != nil {
			return loadFailedMsg{what: "lead", err: err}
		}
		return leadEditLoadedMsg{lead: *lead}
	}
}

func saveLeadCmd(client *api.Client, id int64, p crm.LeadPayload) tea.Cmd {
	return func() tea.Msg {
		var err error
		if id > 0 {
			err = client.UpdateLead(context.Background(), id, p)
		} else {
			err = client.CreateLead(context.Background(), p)
		}
		if err != nil {
			return submitFailedMsg{what: "lead", err: err}
		}
		return leadSavedMsg{name: p.Name, created: id == 0}
	}
}

func updateStatusCmd(client *api.Client, id int64, status crm.LeadStatus, snap board.Snapshot) tea.Cmd {
	return func() tea.Msg {
		if err := client.UpdateLeadStatus(context.Background(), id, status); err != nil {
			return statusUpdateFailedMsg{snapshot: snap, err: err}
		}
		return statusUpdatedMsg{id: id}
	}
}

func deleteLeadCmd(client *api.Client, id int64, name string) tea.Cmd {
	return func() tea.Msg {
		if err := client.DeleteLead(context.Background(), id); err != nil {
			return submitFailedMsg{what: "delete", err: err}
		}
		return leadDeletedMsg{id: id, name: name}
	}
}

func loadCustomersCmd(client *api.Client) tea.Cmd {
	return func() tea.Msg {
		customers, err := client.ListContacts(context.Background())
		if err != nil {
			return loadFailedMsg{what: "customers", err: err}
		}
		return customersLoadedMsg{customers: customers}
	}
}

func loadGroupsCmd(client *api.Client) tea.Cmd {
	return func() tea.Msg {
		groups, err := client.ListGroups(context.Background())
		if err != nil {
			return loadFailedMsg{what: "groups", err: err}
		}
		return groupsLoadedMsg{groups: groups}
	}
}

func loadCustomerForEditCmd(client *api.Client, id int64) tea.Cmd {
	return func() tea.Msg {
		contact, err := client.Contact(context.Background(), id)
		if err != nil {
			return loadFailedMsg{what: "customer", err: err}
		}
		return customerEditLoadedMsg{contact: *contact}
	}
}

// createCustomerCmd chains the follow-up group assignment behind the create
// when a group was picked. A failed assignment surfaces as its own error;
// the customer itself is already created by then.
func createCustomerCmd(client *api.Client, p crm.CreateContactPayload, groupID int64) tea.Cmd {
	return func() tea.Msg {
		contact, err := client.CreateContact(context.Background(), p)
		if err != nil {
			return submitFailedMsg{what: "customer", err: err}
		}
		if groupID > 0 && contact != nil {
			if err := client.AssignGroup(context.Background(), contact.ID, []int64{groupID}); err != nil {
				return submitFailedMsg{what: "group assignment", err: err}
			}
		}
		return customerSavedMsg{name: p.Name, created: true}
	}
}

func updateCustomerCmd(client *api.Client, id int64, p crm.UpdateContactPayload, groupID int64) tea.Cmd {
	return func() tea.Msg {
		if err := client.UpdateContact(context.Background(), id, p); err != nil {
			return submitFailedMsg{what: "customer", err: err}
		}
		if groupID > 0 {
			if err := client.AssignGroup(context.Background(), id, []int64{groupID}); err != nil {
				return submitFailedMsg{what: "group assignment", err: err}
			}
		}
		return customerSavedMsg{name: p.Name}
	}
}

func loadLeadDetailCmd(client *api.Client, id int64) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		lead, err := client.Lead(ctx, id)
		if err != nil {
			return loadFailedMsg{what: "lead", err: err}
		}
		notes, err := client.LeadNotes(ctx, id)
		if err != nil {
			return loadFailedMsg{what: "notes", err: err}
		}
		tasks, err := client.LeadTasks(ctx, id)
		if err != nil {
			return loadFailedMsg{what: "tasks", err: err}
		}
		activity, err := client.LeadActivity(ctx, id)
		if err != nil {
			return loadFailedMsg{what: "activity", err: err}
		}
		return detailLoadedMsg{lead: *lead, notes: notes, tasks: tasks, activity: activity}
	}
}

func addNoteCmd(client *api.Client, leadID int64, content string) tea.Cmd {
	return func() tea.Msg {
		if err := client.AddLeadNote(context.Background(), leadID, crm.NotePayload{Content: content}); err != nil {
			return submitFailedMsg{what: "note", err: err}
		}
		return noteAddedMsg{}
	}
}

func addTaskCmd(client *api.Client, leadID int64, p crm.TaskPayload) tea.Cmd {
	return func() tea.Msg {
		if err := client.AddLeadTask(context.Background(), leadID, p); err != nil {
			return submitFailedMsg{what: "task", err: err}
		}
		return taskAddedMsg{}
	}
}

func toggleTaskCmd(client *api.Client, taskID int64) tea.Cmd {
	return func() tea.Msg {
		if err := client.ToggleLeadTask(context.Background(), taskID); err != nil {
			return submitFailedMsg{what: "task", err: err}
		}
		return taskToggledMsg{taskID: taskID}
	}
}

func sendProposalCmd(client *api.Client, p crm.ProposalPayload) tea.Cmd {
	return func() tea.Msg {
		if err := client.CreateProposal(context.Background(), p); err != nil {
			return submitFailedMsg{what: "proposal", err: err}
		}
		return proposalSentMsg{subject: p.Subject}
	}
}

func exportLeadsCmd(leads []crm.Lead, path string) tea.Cmd {
	return func() tea.Msg {
		csv := leadcsv.Export(leads)
		if err := os.WriteFile(path, []byte(csv+"\n"), 0o644); err != nil {
			return submitFailedMsg{what: "export", err: err}
		}
		return exportDoneMsg{path: path, count: len(leads)}
	}
}

func importLeadsCmd(client *api.Client, path string) tea.Cmd {
	return func() tea.Msg {
		file, err := os.Open(path)
		if err != nil {
			return submitFailedMsg{what: "import", err: err}
		}
		defer file.Close()
		result, err := leadcsv.Import(context.Background(), file, client)
		if err != nil {
			return submitFailedMsg{what: "import", err: err}
		}
		return importDoneMsg{result: result}
	}
}
