package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"leadterm/internal/crm"
)

type customerFormModel struct {
	form         form
	id           int64
	editing      bool
	pendingLoads int
	groups       []crm.Group
	original     crm.Contact
	haveOriginal bool
}

var billingShippingPairs = [][2]string{
	{"billing_address", "shipping_address"},
	{"billing_city", "shipping_city"},
	{"billing_state", "shipping_state"},
	{"billing_zip", "shipping_zip"},
	{"billing_country", "shipping_country"},
}

func newCustomerForm(existing *crm.Contact, groups []crm.Group) customerFormModel {
	cf := customerFormModel{groups: groups}
	if existing == nil {
		cf.form = newForm("Add Customer", createCustomerFields(groups))
		return cf
	}
	cf.id = existing.ID
	cf.editing = true
	cf.original = *existing
	cf.haveOriginal = true
	cf.form = newForm("Edit Customer", editCustomerFields(*existing, groups))
	return cf
}

func createCustomerFields(groups []crm.Group) []formField {
	return []formField{
		{key: "name", label: "Customer name", required: true},
		{key: "email", label: "Email", required: true},
		{key: "phone", label: "Phone"},
		{key: "company", label: "Company"},
		{key: "tax_id", label: "Tax ID"},
		{key: "website", label: "Website"},
		{key: "currency", label: "Currency", kind: fieldSelect, options: crm.Currencies, value: "USD"},
		{key: "language", label: "Language", kind: fieldSelect, options: crm.Languages},
		{key: "group", label: "Group", kind: fieldSelect, options: groupNames(groups)},
		{key: "address", label: "Address"},
		{key: "city", label: "City"},
		{key: "state", label: "State"},
		{key: "zipcode", label: "Zip code"},
		{key: "country", label: "Country", kind: fieldSelect, options: crm.Countries},
		{key: "billing_address", label: "Billing address"},
		{key: "billing_city", label: "Billing city"},
		{key: "billing_state", label: "Billing state"},
		{key: "billing_zip", label: "Billing zip"},
		{key: "billing_country", label: "Billing country", kind: fieldSelect, options: crm.Countries},
		{key: "copy_billing", label: "Copy billing to shipping", kind: fieldBool, value: "n"},
		{key: "shipping_address", label: "Shipping address"},
		{key: "shipping_city", label: "Shipping city"},
		{key: "shipping_state", label: "Shipping state"},
		{key: "shipping_zip", label: "Shipping zip"},
		{key: "shipping_country", label: "Shipping country", kind: fieldSelect, options: crm.Countries},
	}
}

// editCustomerFields is the fixed subset the update endpoint accepts, plus the
// group selector. The billing and shipping fields are create-only; the group
// goes through its own assignment call after the update.
func editCustomerFields(c crm.Contact, groups []crm.Group) []formField {
	return []formField{
		{key: "name", label: "Customer name", required: true, value: c.Name},
		{key: "email", label: "Email", required: true, value: c.Email},
		{key: "phone", label: "Phone", value: c.Phone},
		{key: "tax_id", label: "Tax ID", value: c.TaxID},
		{key: "website", label: "Website", value: c.Website},
		{key: "currency", label: "Currency", kind: fieldSelect, options: crm.Currencies, value: c.Currency},
		{key: "language", label: "Language", kind: fieldSelect, options: crm.Languages, value: c.Language},
		{key: "group", label: "Group", kind: fieldSelect, options: groupNames(groups), value: groupNameByID(groups, c.GroupID)},
		{key: "address", label: "Address", value: c.Address},
		{key: "city", label: "City", value: c.City},
		{key: "state", label: "State", value: c.State},
		{key: "zipcode", label: "Zip code", value: c.Zipcode},
		{key: "country", label: "Country", kind: fieldSelect, options: crm.Countries, value: c.Country},
	}
}

func groupNames(groups []crm.Group) []string {
	names := make([]string, len(groups))
	for i, g := range groups {
		names[i] = g.Name
	}
	return names
}

func groupNameByID(groups []crm.Group, id int64) string {
	for _, g := range groups {
		if g.ID == id {
			return g.Name
		}
	}
	return ""
}

// selectedGroupID maps the picked group name back to its id. Zero means no
// group was picked and no assignment call is made.
func selectedGroupID(f *form, groups []crm.Group) int64 {
	picked := f.value("group")
	if picked == "" {
		return 0
	}
	for _, g := range groups {
		if g.Name == picked {
			return g.ID
		}
	}
	return 0
}

func (cf *customerFormModel) groupsLoaded(groups []crm.Group) {
	cf.groups = groups
	if cf.pendingLoads > 0 {
		cf.pendingLoads--
		cf.maybeBuild()
		return
	}
	names := groupNames(groups)
	for i := range cf.form.fields {
		if cf.form.fields[i].key == "group" {
			cf.form.fields[i].options = names
		}
	}
	cf.form.syncInput()
}

func (cf *customerFormModel) editLoaded(contact crm.Contact) {
	cf.original = contact
	cf.haveOriginal = true
	if cf.pendingLoads > 0 {
		cf.pendingLoads--
	}
	cf.maybeBuild()
}

// maybeBuild constructs the edit form once both parallel loads have landed.
func (cf *customerFormModel) maybeBuild() {
	if cf.pendingLoads > 0 || !cf.haveOriginal || len(cf.form.fields) > 0 {
		return
	}
	cf.form = newForm("Edit Customer", editCustomerFields(cf.original, cf.groups))
}

// applyBillingCopy is the one-shot copy: answering yes snapshots the billing
// values into the shipping fields and freezes them, so the walk skips them.
// Later billing edits do not re-copy; only retoggling does.
func (cf *customerFormModel) applyBillingCopy(answer string) {
	if isYes(answer) {
		for _, pair := range billingShippingPairs {
			cf.form.set(pair[1], cf.form.value(pair[0]))
			cf.form.freeze(pair[1])
		}
		return
	}
	for _, pair := range billingShippingPairs {
		cf.form.unfreeze(pair[1])
	}
}

func (m *model) updateCustomerForm(msg tea.Msg) tea.Cmd {
	if m.customerForm.pendingLoads > 0 || (m.customerForm.editing && len(m.customerForm.form.fields) == 0) {
		return nil
	}
	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.customerForm.form.input, cmd = m.customerForm.form.input.Update(msg)
	if cmd != nil {
		cmds = append(cmds, cmd)
	}

	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyEnter:
			value := strings.TrimSpace(m.customerForm.form.input.Value())
			if isExitCommand(value) {
				m.customerForm = customerFormModel{}
				m.prevStates = nil
				m.state = stateMainMenu
				if focus := m.setMenuInput("Choose an option", 32); focus != nil {
					cmds = append(cmds, focus)
				}
				return batchCmds(cmds)
			}
			if isBackCommand(value) {
				if !m.customerForm.form.back() {
					m.customerForm = customerFormModel{}
					m.popState()
					if m.state == stateMainMenu {
						if focus := m.setMenuInput("Choose an option", 32); focus != nil {
							cmds = append(cmds, focus)
						}
					}
				}
				return batchCmds(cmds)
			}
			if cur := m.customerForm.form.current(); cur != nil && cur.key == "copy_billing" {
				answer := value
				if answer == "" {
					answer = cur.value
				}
				if isYes(answer) || isNo(answer) {
					m.customerForm.applyBillingCopy(answer)
				}
			}
			if m.customerForm.form.advance(value) {
				if c := m.submitCustomerForm(); c != nil {
					cmds = append(cmds, c)
				}
			}
			return batchCmds(cmds)
		case tea.KeyEsc:
			m.customerForm = customerFormModel{}
			m.popState()
			if m.state == stateMainMenu {
				if focus := m.setMenuInput("Choose an option", 32); focus != nil {
					cmds = append(cmds, focus)
				}
			}
			return batchCmds(cmds)
		}
	}
	return batchCmds(cmds)
}

func (m *model) submitCustomerForm() tea.Cmd {
	cf := &m.customerForm
	f := &cf.form
	if cf.editing {
		p := crm.UpdateContactPayload{
			Name:     f.value("name"),
			Email:    f.value("email"),
			Phone:    f.value("phone"),
			TaxID:    f.value("tax_id"),
			Website:  f.value("website"),
			Currency: f.value("currency"),
			Language: f.value("language"),
			Address:  f.value("address"),
			City:     f.value("city"),
			State:    f.value("state"),
			Zipcode:  f.value("zipcode"),
			Country:  f.value("country"),
		}
		if err := crm.Validate(p); err != nil {
			f.err = fmt.Sprintf("invalid customer: %v", err)
			return nil
		}
		return updateCustomerCmd(m.api, cf.id, p, selectedGroupID(f, cf.groups))
	}

	p := crm.CreateContactPayload{
		Name:            f.value("name"),
		Email:           f.value("email"),
		Phone:           f.value("phone"),
		Company:         f.value("company"),
		TaxID:           f.value("tax_id"),
		Website:         f.value("website"),
		Currency:        f.value("currency"),
		Language:        f.value("language"),
		Address:         f.value("address"),
		City:            f.value("city"),
		State:           f.value("state"),
		Zipcode:         f.value("zipcode"),
		Country:         f.value("country"),
		BillingAddress:  f.value("billing_address"),
		BillingCity:     f.value("billing_city"),
		BillingState:    f.value("billing_state"),
		BillingZip:      f.value("billing_zip"),
		BillingCountry:  f.value("billing_country"),
		ShippingAddress: f.value("shipping_address"),
		ShippingCity:    f.value("shipping_city"),
		ShippingState:   f.value("shipping_state"),
		ShippingZip:     f.value("shipping_zip"),
		ShippingCountry: f.value("shipping_country"),
	}
	if err := crm.Validate(p); err != nil {
		f.err = fmt.Sprintf("invalid customer: %v", err)
		return nil
	}
	return createCustomerCmd(m.api, p, selectedGroupID(f, cf.groups))
}

func (m *model) viewCustomerForm() string {
	cf := &m.customerForm
	if cf.pendingLoads > 0 || (cf.editing && len(cf.form.fields) == 0) {
		return m.spin.View() + " " + m.theme.Faint.Render("Loading customer...") + "\n"
	}
	f := &cf.form
	field := f.current()
	lines := []string{
		m.theme.Title.Render(f.title),
		m.theme.Faint.Render("Enter details. Empty keeps the shown value. '/' to go back, 'exit.' to cancel."),
		"",
		m.theme.Secondary.Render(fmt.Sprintf("%d/%d", f.index+1, len(f.fields))),
		m.theme.Primary.Render(field.label + ":"),
		f.input.View(),
	}
	if field.frozen {
		lines = append(lines, m.theme.Faint.Render("(copied from billing)"))
	}
	if f.err != "" {
		lines = append(lines, "", m.theme.Danger.Render(f.err))
	}
	return strings.Join(lines, "\n") + "\n"
}
