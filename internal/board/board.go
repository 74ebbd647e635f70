// Package board holds the lead pipeline state shared by the list and kanban
// views: client-side search and status filtering, column grouping, and the
// optimistic status-change protocol with its snapshot rollback. It knows
// nothing about the UI toolkit, so the drag gesture and the domain operation
// it triggers stay separate.
package board

import (
	"strings"

	"leadterm/internal/crm"
)

// FilterAll disables the status filter.
const FilterAll = "All"

// Pipeline owns one component instance's copy of the lead collection.
// The collection is fetched once; every derived view is computed locally.
type Pipeline struct {
	leads  []crm.Lead
	search string
	status string
	loaded bool
}

// SetLeads replaces the collection and marks it loaded. "No leads loaded"
// and "no leads match" are distinct states; Loaded answers the former.
func (p *Pipeline) SetLeads(leads []crm.Lead) {
	p.leads = leads
	p.loaded = true
}

// Loaded reports whether the initial fetch has completed.
func (p *Pipeline) Loaded() bool { return p.loaded }

// Leads returns the full, unfiltered collection.
func (p *Pipeline) Leads() []crm.Lead { return p.leads }

// SetSearch sets the case-insensitive substring search term.
func (p *Pipeline) SetSearch(term string) { p.search = term }

// Search returns the current search term.
func (p *Pipeline) Search() string { return p.search }

// SetStatusFilter sets the exact-match status filter; FilterAll clears it.
func (p *Pipeline) SetStatusFilter(status string) { p.status = status }

// StatusFilter returns the current status filter.
func (p *Pipeline) StatusFilter() string {
	if p.status == "" {
		return FilterAll
	}
	return p.status
}

// Filtered derives the visible set: a lead passes when the search term is
// empty or appears in its name, company or source (any of the three), AND
// the status filter is FilterAll or matches exactly.
func (p *Pipeline) Filtered() []crm.Lead {
	term := strings.ToLower(strings.TrimSpace(p.search))
	status := p.StatusFilter()

	out := make([]crm.Lead, 0, len(p.leads))
	for _, l := range p.leads {
		if term != "" && !matchesSearch(l, term) {
			continue
		}
		if status != FilterAll && string(l.Status) != status {
			continue
		}
		out = append(out, l)
	}
	return out
}

func matchesSearch(l crm.Lead, term string) bool {
	return strings.Contains(strings.ToLower(l.Name), term) ||
		strings.Contains(strings.ToLower(l.Company), term) ||
		strings.Contains(strings.ToLower(l.Source.String()), term)
}

// Column is one board lane. Membership is a pure projection of the filtered
// set grouped by status; the lane also carries its running monetary total.
type Column struct {
	Status crm.LeadStatus
	Leads  []crm.Lead
	Total  float64
}

// Columns groups the filtered set into lanes in the fixed status order.
func (p *Pipeline) Columns() []Column {
	filtered := p.Filtered()
	cols := make([]Column, 0, len(crm.LeadStatuses))
	for _, status := range crm.LeadStatuses {
		col := Column{Status: status}
		for _, l := range filtered {
			if l.Status == status {
				col.Leads = append(col.Leads, l)
				col.Total += float64(l.Value)
			}
		}
		cols = append(cols, col)
	}
	return cols
}

// Stats summarizes the unfiltered collection for the header row.
type Stats struct {
	Total     int
	New       int
	Qualified int
	Value     float64
}

// Stats computes the header numbers from the full collection, filters
// notwithstanding.
func (p *Pipeline) Stats() Stats {
	s := Stats{Total: len(p.leads)}
	for _, l := range p.leads {
		switch l.Status {
		case crm.StatusNew:
			s.New++
		case crm.StatusQualified:
			s.Qualified++
		}
		s.Value += float64(l.Value)
	}
	return s
}

// Snapshot is a copy of the full collection taken immediately before an
// optimistic write.
type Snapshot []crm.Lead

// ApplyStatus applies a status change locally and returns the pre-change
// snapshot of the whole collection. If the write later fails, Restore puts
// that exact snapshot back. The rollback is deliberately coarse and has a
// sharp edge: restoring an older snapshot can clobber an unrelated update
// that succeeded in between.
func (p *Pipeline) ApplyStatus(id int64, status crm.LeadStatus) (Snapshot, bool) {
	snap := make(Snapshot, len(p.leads))
	copy(snap, p.leads)

	found := false
	for i := range p.leads {
		if p.leads[i].ID == id {
			p.leads[i].Status = status
			found = true
			break
		}
	}
	return snap, found
}

// Restore reverts the collection to a snapshot.
func (p *Pipeline) Restore(s Snapshot) {
	p.leads = []crm.Lead(s)
}

// Remove drops a lead from the collection. Deletes are not optimistic;
// callers invoke this only after the server confirmed.
func (p *Pipeline) Remove(id int64) {
	out := p.leads[:0]
	for _, l := range p.leads {
		if l.ID != id {
			out = append(out, l)
		}
	}
	p.leads = out
}

// Lead looks up a lead by id.
func (p *Pipeline) Lead(id int64) (crm.Lead, bool) {
	for _, l := range p.leads {
		if l.ID == id {
			return l, true
		}
	}
	return crm.Lead{}, false
}
