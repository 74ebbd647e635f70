package crm

import "math"

// ProposalItem is one priced row of a proposal. Amount is derived, never
// entered directly: it must equal Qty * Rate after any edit to either field.
type ProposalItem struct {
	Description     string  `json:"description"`
	LongDescription string  `json:"long_description"`
	Qty             float64 `json:"qty"`
	Rate            float64 `json:"rate"`
	Tax             float64 `json:"tax"`
	Amount          float64 `json:"amount"`
}

// NewProposalItem returns the blank row the builder starts from.
func NewProposalItem() ProposalItem {
	return ProposalItem{Qty: 1}
}

// SetQty updates the quantity from free-form input and recomputes Amount
// immediately. Non-numeric input counts as zero.
func (it *ProposalItem) SetQty(input string) {
	it.Qty = ParseAmount(input)
	it.recalc()
}

// SetRate updates the rate from free-form input and recomputes Amount
// immediately.
func (it *ProposalItem) SetRate(input string) {
	it.Rate = ParseAmount(input)
	it.recalc()
}

func (it *ProposalItem) recalc() {
	it.Amount = it.Qty * it.Rate
}

// RemoveItem drops the item at index, keeping the remaining items in their
// relative order. Out-of-range indexes leave the slice untouched.
func RemoveItem(items []ProposalItem, index int) []ProposalItem {
	if index < 0 || index >= len(items) {
		return items
	}
	out := make([]ProposalItem, 0, len(items)-1)
	out = append(out, items[:index]...)
	out = append(out, items[index+1:]...)
	return out
}

// Totals derives the proposal summary: subtotal is the sum of item amounts,
// total is subtotal minus discount plus adjustment. Nothing is stored; the
// caller recomputes after every relevant edit.
func Totals(items []ProposalItem, discount, adjustment float64) (subtotal, total float64) {
	for _, it := range items {
		subtotal += it.Amount
	}
	return subtotal, subtotal - discount + adjustment
}

// Round2 rounds to 2 decimal places for display.
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}
