package ui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"leadterm/internal/crm"
	"leadterm/internal/theme"
)

func TestProposalHeaderDefaults(t *testing.T) {
	p := newProposalModel(crm.Lead{ID: 3, Name: "Acme", Currency: "EUR"})
	assert.Equal(t, "Admin", p.form.value("assigned_to"))
	assert.Equal(t, time.Now().Format("2006-01-02"), p.form.value("proposal_date"))
	assert.Equal(t, string(crm.ProposalDraft), p.form.value("status"))
	assert.Equal(t, "EUR", p.form.value("currency"))
}

func TestProposalItemsViewRoundsAmounts(t *testing.T) {
	m := model{theme: theme.Default(), proposal: newProposalModel(crm.Lead{ID: 3, Name: "Acme"})}
	m.proposal.items[0].SetQty("3")
	m.proposal.items[0].SetRate("0.1")

	out := m.viewProposalItems()
	assert.Contains(t, out, "Total: 0.3")
	assert.NotContains(t, out, "0.30000000000000004")
}
