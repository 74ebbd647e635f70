package crm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProposalItemAmount(t *testing.T) {
	t.Run("qty edit recomputes amount", func(t *testing.T) {
		it := NewProposalItem()
		it.SetRate("250")
		it.SetQty("4")
		assert.Equal(t, 1000.0, it.Amount)
	})

	t.Run("rate edit recomputes amount", func(t *testing.T) {
		it := ProposalItem{Qty: 3, Rate: 10, Amount: 30}
		it.SetRate("12.5")
		assert.Equal(t, 37.5, it.Amount)
	})

	t.Run("non-numeric input counts as zero", func(t *testing.T) {
		it := ProposalItem{Qty: 3, Rate: 10, Amount: 30}
		it.SetQty("three")
		assert.Zero(t, it.Amount)
		assert.Zero(t, it.Qty)

		it.SetQty("2")
		it.SetRate("")
		assert.Zero(t, it.Amount)
	})

	t.Run("amount always equals qty times rate", func(t *testing.T) {
		it := NewProposalItem()
		for _, input := range []string{"2", "x", "0.5", "1000", "-3"} {
			it.SetQty(input)
			assert.Equal(t, it.Qty*it.Rate, it.Amount)
			it.SetRate(input)
			assert.Equal(t, it.Qty*it.Rate, it.Amount)
		}
	})
}

func TestTotals(t *testing.T) {
	items := []ProposalItem{
		{Qty: 2, Rate: 100, Amount: 200},
		{Qty: 1, Rate: 50, Amount: 50},
	}

	t.Run("subtotal is sum of amounts", func(t *testing.T) {
		sub, total := Totals(items, 0, 0)
		assert.Equal(t, 250.0, sub)
		assert.Equal(t, 250.0, total)
	})

	t.Run("total applies discount and adjustment", func(t *testing.T) {
		sub, total := Totals(items, 25, 10)
		assert.Equal(t, 250.0, sub)
		assert.Equal(t, 235.0, total)
	})

	t.Run("empty items", func(t *testing.T) {
		sub, total := Totals(nil, 5, 0)
		assert.Zero(t, sub)
		assert.Equal(t, -5.0, total)
	})
}

func TestRemoveItem(t *testing.T) {
	items := []ProposalItem{
		{Description: "a"}, {Description: "b"}, {Description: "c"},
	}

	t.Run("removes by index keeping order", func(t *testing.T) {
		out := RemoveItem(items, 1)
		assert.Len(t, out, 2)
		assert.Equal(t, "a", out[0].Description)
		assert.Equal(t, "c", out[1].Description)
	})

	t.Run("out of range is a no-op", func(t *testing.T) {
		assert.Len(t, RemoveItem(items, -1), 3)
		assert.Len(t, RemoveItem(items, 3), 3)
	})
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 1.23, Round2(1.234))
	assert.Equal(t, 1.24, Round2(1.236))
	assert.Equal(t, 10.0, Round2(10))
}
