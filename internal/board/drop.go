package board

import "leadterm/internal/crm"

// Drop describes a completed card-move gesture on the board. The gesture
// layer fills it in; StatusChange decides what, if anything, it means.
type Drop struct {
	LeadID    int64
	From      crm.LeadStatus
	FromIndex int
	To        crm.LeadStatus
	ToIndex   int
}

// StatusChange translates a drop into the status-change operation it stands
// for. A drop outside any column (empty To) is a no-op, as is a drop back
// into the same column at the same position. Any other drop yields exactly
// one status change, even within the same column: a reorder re-commits the
// unchanged status.
func (d Drop) StatusChange() (crm.LeadStatus, bool) {
	if d.To == "" {
		return "", false
	}
	if d.To == d.From && d.ToIndex == d.FromIndex {
		return "", false
	}
	return d.To, true
}
