package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leadterm/internal/crm"
)

func sampleLeads() []crm.Lead {
	return []crm.Lead{
		{ID: 1, Name: "Acme", Company: "Acme Corp", Status: crm.StatusNew, Source: crm.SourceGoogle, Value: 1000},
		{ID: 2, Name: "Beta", Company: "Beta LLC", Status: crm.StatusContacted, Source: crm.SourceReferral, Value: 2500},
		{ID: 3, Name: "Gamma", Company: "Gamma Inc", Status: crm.StatusContacted, Source: crm.SourceWebsite, Value: 500},
		{ID: 7, Name: "Delta", Company: "Delta Co", Status: crm.StatusNew, Source: crm.SourceFacebook, Value: 4000},
	}
}

func newPipeline() *Pipeline {
	p := &Pipeline{}
	p.SetLeads(sampleLeads())
	return p
}

func ids(leads []crm.Lead) []int64 {
	out := make([]int64, len(leads))
	for i, l := range leads {
		out[i] = l.ID
	}
	return out
}

func TestLoadedVersusEmpty(t *testing.T) {
	p := &Pipeline{}
	assert.False(t, p.Loaded())
	assert.Empty(t, p.Filtered())

	p.SetLeads(nil)
	assert.True(t, p.Loaded(), "an empty collection is still a completed load")
}

func TestFiltering(t *testing.T) {
	t.Run("empty term matches everything", func(t *testing.T) {
		p := newPipeline()
		assert.Equal(t, []int64{1, 2, 3, 7}, ids(p.Filtered()))
	})

	t.Run("search spans name, company, source", func(t *testing.T) {
		p := newPipeline()

		p.SetSearch("acme")
		assert.Equal(t, []int64{1}, ids(p.Filtered()), "by name")

		p.SetSearch("LLC")
		assert.Equal(t, []int64{2}, ids(p.Filtered()), "by company")

		p.SetSearch("website")
		assert.Equal(t, []int64{3}, ids(p.Filtered()), "by source")
	})

	t.Run("status filter is exact", func(t *testing.T) {
		p := newPipeline()
		p.SetStatusFilter("Contacted")
		assert.Equal(t, []int64{2, 3}, ids(p.Filtered()))
	})

	t.Run("All passes the search-only set through", func(t *testing.T) {
		p := newPipeline()
		p.SetSearch("a")
		searchOnly := ids(p.Filtered())
		p.SetStatusFilter(FilterAll)
		assert.Equal(t, searchOnly, ids(p.Filtered()))
	})

	t.Run("filters compose with AND", func(t *testing.T) {
		p := newPipeline()
		p.SetSearch("a") // matches all four
		p.SetStatusFilter("New")
		assert.Equal(t, []int64{1, 7}, ids(p.Filtered()))
	})
}

func TestColumns(t *testing.T) {
	p := newPipeline()
	cols := p.Columns()
	require.Len(t, cols, 5)

	order := make([]crm.LeadStatus, len(cols))
	for i, c := range cols {
		order[i] = c.Status
	}
	assert.Equal(t, crm.LeadStatuses, order, "fixed column order")

	assert.Equal(t, []int64{1, 7}, ids(cols[0].Leads))
	assert.Equal(t, 5000.0, cols[0].Total)
	assert.Equal(t, 3000.0, cols[1].Total)
	assert.Empty(t, cols[2].Leads)
	assert.Zero(t, cols[2].Total)
}

func TestColumnsAreAProjectionOfTheFilter(t *testing.T) {
	p := newPipeline()
	p.SetSearch("acme")
	cols := p.Columns()
	assert.Equal(t, []int64{1}, ids(cols[0].Leads))
	assert.Empty(t, cols[1].Leads)
}

func TestStats(t *testing.T) {
	p := newPipeline()
	p.SetSearch("acme") // stats ignore filters
	s := p.Stats()
	assert.Equal(t, 4, s.Total)
	assert.Equal(t, 2, s.New)
	assert.Equal(t, 0, s.Qualified)
	assert.Equal(t, 8000.0, s.Value)
}

func TestOptimisticStatusChange(t *testing.T) {
	t.Run("applies immediately and returns the prior snapshot", func(t *testing.T) {
		p := newPipeline()
		snap, ok := p.ApplyStatus(7, crm.StatusQualified)
		require.True(t, ok)

		lead, _ := p.Lead(7)
		assert.Equal(t, crm.StatusQualified, lead.Status)

		for _, l := range snap {
			if l.ID == 7 {
				assert.Equal(t, crm.StatusNew, l.Status, "snapshot keeps the pre-change value")
			}
		}
	})

	t.Run("failed update restores the whole collection", func(t *testing.T) {
		p := newPipeline()
		snap, _ := p.ApplyStatus(7, crm.StatusQualified)

		p.Restore(snap)

		lead, _ := p.Lead(7)
		assert.Equal(t, crm.StatusNew, lead.Status)
		assert.Equal(t, sampleLeads(), p.Leads())
	})

	t.Run("rollback clobbers an interleaved success", func(t *testing.T) {
		// Documented sharp edge: the snapshot is collection-wide, so
		// restoring it undoes lead 2's concurrent, successful change.
		p := newPipeline()
		snap, _ := p.ApplyStatus(7, crm.StatusQualified)
		p.ApplyStatus(2, crm.StatusConverted)

		p.Restore(snap)

		lead2, _ := p.Lead(2)
		assert.Equal(t, crm.StatusContacted, lead2.Status)
	})

	t.Run("unknown id leaves the collection alone", func(t *testing.T) {
		p := newPipeline()
		_, ok := p.ApplyStatus(99, crm.StatusLost)
		assert.False(t, ok)
		assert.Equal(t, sampleLeads(), p.Leads())
	})
}

func TestRemoveIsNotOptimistic(t *testing.T) {
	p := newPipeline()
	p.Remove(2)
	assert.Equal(t, []int64{1, 3, 7}, ids(p.Leads()))
	_, found := p.Lead(2)
	assert.False(t, found)
}

func TestDropStatusChange(t *testing.T) {
	t.Run("different column yields one status change", func(t *testing.T) {
		d := Drop{LeadID: 3, From: crm.StatusContacted, FromIndex: 1, To: crm.StatusLost, ToIndex: 0}
		status, ok := d.StatusChange()
		require.True(t, ok)
		assert.Equal(t, crm.StatusLost, status)
	})

	t.Run("same column same position is a no-op", func(t *testing.T) {
		d := Drop{LeadID: 3, From: crm.StatusContacted, FromIndex: 1, To: crm.StatusContacted, ToIndex: 1}
		_, ok := d.StatusChange()
		assert.False(t, ok)
	})

	t.Run("outside any column is a no-op", func(t *testing.T) {
		d := Drop{LeadID: 3, From: crm.StatusContacted, FromIndex: 1}
		_, ok := d.StatusChange()
		assert.False(t, ok)
	})

	t.Run("same column different position re-commits the status", func(t *testing.T) {
		d := Drop{LeadID: 3, From: crm.StatusContacted, FromIndex: 1, To: crm.StatusContacted, ToIndex: 0}
		status, ok := d.StatusChange()
		require.True(t, ok)
		assert.Equal(t, crm.StatusContacted, status)
	})
}
