package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leadterm/internal/crm"
)

func TestFormAdvance(t *testing.T) {
	t.Run("required field rejects empty", func(t *testing.T) {
		f := newForm("t", []formField{
			{key: "name", label: "Name", required: true},
			{key: "phone", label: "Phone"},
		})
		done := f.advance("")
		assert.False(t, done)
		assert.Equal(t, 0, f.index)
		assert.NotEmpty(t, f.err)

		done = f.advance("Acme")
		assert.False(t, done)
		assert.Equal(t, 1, f.index)
		assert.Empty(t, f.err)
		assert.Equal(t, "Acme", f.value("name"))
	})

	t.Run("empty keeps the preset value", func(t *testing.T) {
		f := newForm("t", []formField{
			{key: "name", label: "Name", required: true, value: "Acme"},
			{key: "phone", label: "Phone"},
		})
		done := f.advance("")
		assert.False(t, done)
		assert.Equal(t, "Acme", f.value("name"))
	})

	t.Run("last field completes the walk", func(t *testing.T) {
		f := newForm("t", []formField{
			{key: "name", label: "Name", required: true},
		})
		assert.True(t, f.advance("Acme"))
	})

	t.Run("select accepts name, prefix and index", func(t *testing.T) {
		for _, input := range []string{"Qualified", "qual", "3"} {
			f := newForm("t", []formField{
				{key: "status", label: "Status", kind: fieldSelect, options: []string{"New", "Contacted", "Qualified"}},
				{key: "phone", label: "Phone"},
			})
			f.advance(input)
			assert.Equal(t, "Qualified", f.value("status"), "input %q", input)
		}
	})

	t.Run("select rejects unknown option", func(t *testing.T) {
		f := newForm("t", []formField{
			{key: "status", label: "Status", kind: fieldSelect, options: []string{"New", "Contacted"}},
		})
		done := f.advance("Bogus")
		assert.False(t, done)
		assert.NotEmpty(t, f.err)
		assert.Equal(t, 0, f.index)
	})

	t.Run("bool accepts y and n only", func(t *testing.T) {
		f := newForm("t", []formField{
			{key: "public", label: "Public", kind: fieldBool},
			{key: "phone", label: "Phone"},
		})
		done := f.advance("maybe")
		assert.False(t, done)
		assert.NotEmpty(t, f.err)

		f.advance("y")
		assert.True(t, f.boolValue("public"))
	})

	t.Run("number normalizes garbage to zero", func(t *testing.T) {
		f := newForm("t", []formField{
			{key: "value", label: "Value", kind: fieldNumber},
			{key: "phone", label: "Phone"},
		})
		f.advance("abc")
		assert.Equal(t, float64(0), f.numberValue("value"))
	})

	t.Run("frozen fields are skipped", func(t *testing.T) {
		f := newForm("t", []formField{
			{key: "a", label: "A"},
			{key: "b", label: "B", frozen: true},
			{key: "c", label: "C"},
		})
		f.advance("one")
		assert.Equal(t, "c", f.current().key)
	})

	t.Run("back unfreezes the field it lands on", func(t *testing.T) {
		f := newForm("t", []formField{
			{key: "a", label: "A"},
			{key: "b", label: "B", frozen: true},
			{key: "c", label: "C"},
		})
		f.advance("one")
		require.Equal(t, "c", f.current().key)
		require.True(t, f.back())
		assert.Equal(t, "b", f.current().key)
		assert.False(t, f.current().frozen)
	})

	t.Run("back at first field reports false", func(t *testing.T) {
		f := newForm("t", []formField{{key: "a", label: "A"}})
		assert.False(t, f.back())
	})
}

func TestBillingShippingCopy(t *testing.T) {
	buildForm := func() customerFormModel {
		cf := newCustomerForm(nil, nil)
		cf.form.set("billing_address", "1 Main St")
		cf.form.set("billing_city", "Springfield")
		cf.form.set("billing_state", "IL")
		cf.form.set("billing_zip", "62704")
		cf.form.set("billing_country", "United States")
		return cf
	}

	t.Run("yes copies and freezes shipping", func(t *testing.T) {
		cf := buildForm()
		cf.applyBillingCopy("y")
		assert.Equal(t, "1 Main St", cf.form.value("shipping_address"))
		assert.Equal(t, "Springfield", cf.form.value("shipping_city"))
		assert.Equal(t, "62704", cf.form.value("shipping_zip"))
		for _, pair := range billingShippingPairs {
			for i := range cf.form.fields {
				if cf.form.fields[i].key == pair[1] {
					assert.True(t, cf.form.fields[i].frozen, pair[1])
				}
			}
		}
	})

	t.Run("copy is one-shot, later billing edits do not propagate", func(t *testing.T) {
		cf := buildForm()
		cf.applyBillingCopy("y")
		cf.form.set("billing_address", "99 Elm St")
		assert.Equal(t, "1 Main St", cf.form.value("shipping_address"))
	})

	t.Run("retoggle unfreezes but keeps the copied values", func(t *testing.T) {
		cf := buildForm()
		cf.applyBillingCopy("y")
		cf.applyBillingCopy("n")
		assert.Equal(t, "1 Main St", cf.form.value("shipping_address"))
		for i := range cf.form.fields {
			if cf.form.fields[i].key == "shipping_address" {
				assert.False(t, cf.form.fields[i].frozen)
			}
		}
	})

	t.Run("toggling yes again re-copies the current billing values", func(t *testing.T) {
		cf := buildForm()
		cf.applyBillingCopy("y")
		cf.form.set("billing_address", "99 Elm St")
		cf.applyBillingCopy("n")
		cf.applyBillingCopy("y")
		assert.Equal(t, "99 Elm St", cf.form.value("shipping_address"))
	})
}

func TestEditCustomerFormGroup(t *testing.T) {
	groups := []crm.Group{{ID: 4, Name: "VIP"}, {ID: 9, Name: "Wholesale"}}

	t.Run("edit form presets the customer's group", func(t *testing.T) {
		cf := customerFormModel{id: 7, editing: true, pendingLoads: 2}
		cf.editLoaded(crm.Contact{ID: 7, Name: "Acme", Email: "acme@example.com", GroupID: 9})
		cf.groupsLoaded(groups)
		require.NotEmpty(t, cf.form.fields)
		assert.Equal(t, "Wholesale", cf.form.value("group"))
		for i := range cf.form.fields {
			if cf.form.fields[i].key == "group" {
				assert.Equal(t, []string{"VIP", "Wholesale"}, cf.form.fields[i].options)
			}
		}
	})

	t.Run("unknown group id leaves the field blank", func(t *testing.T) {
		cf := customerFormModel{id: 7, editing: true, pendingLoads: 2}
		cf.editLoaded(crm.Contact{ID: 7, Name: "Acme", Email: "acme@example.com", GroupID: 0})
		cf.groupsLoaded(groups)
		assert.Equal(t, "", cf.form.value("group"))
	})

	t.Run("picked group resolves to its id", func(t *testing.T) {
		f := newForm("t", []formField{
			{key: "group", kind: fieldSelect, options: groupNames(groups), value: "VIP"},
		})
		assert.Equal(t, int64(4), selectedGroupID(&f, groups))
	})

	t.Run("no pick means no assignment", func(t *testing.T) {
		f := newForm("t", []formField{
			{key: "group", kind: fieldSelect, options: groupNames(groups)},
		})
		assert.Equal(t, int64(0), selectedGroupID(&f, groups))
	})
}

func TestLeadFormDefaults(t *testing.T) {
	lf := newLeadForm(nil)
	assert.Equal(t, "n", lf.form.value("contacted_today"))
	assert.Equal(t, "n", lf.form.value("is_public"))
}

func TestResolveMainMenuSelection(t *testing.T) {
	cases := map[string]string{
		"1":     menuLeads,
		"board": menuLeads,
		"3":     menuCustomers,
		"q":     menuQuit,
		"sett":  menuSettings,
	}
	for input, want := range cases {
		got, ok := resolveMainMenuSelection(input)
		require.True(t, ok, "input %q", input)
		assert.Equal(t, want, got, "input %q", input)
	}

	_, ok := resolveMainMenuSelection("zzz")
	assert.False(t, ok)
}

func TestLooksLikeLeadCommand(t *testing.T) {
	assert.True(t, looksLikeLeadCommand("move 3 Qualified"))
	assert.True(t, looksLikeLeadCommand("delete 2"))
	assert.True(t, looksLikeLeadCommand("view 12"))
	assert.True(t, looksLikeLeadCommand("7"))
	assert.True(t, looksLikeLeadCommand("board"))
	assert.True(t, looksLikeLeadCommand("filter Qualified"))
	assert.False(t, looksLikeLeadCommand("acme corp"))
	assert.False(t, looksLikeLeadCommand(""))

	// a search term that happens to start with a command word is a search
	assert.False(t, looksLikeLeadCommand("view corp"))
	assert.False(t, looksLikeLeadCommand("open plan industries"))
	assert.False(t, looksLikeLeadCommand("delete everything ltd"))
}
