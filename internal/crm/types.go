package crm

import (
	"bytes"
	"strconv"
	"strings"
)

// Lead is a prospective customer tracked through the status pipeline.
// Field names follow the API's wire format.
type Lead struct {
	ID             int64      `json:"id"`
	Name           string     `json:"name"`
	Position       string     `json:"position"`
	Email          string     `json:"email"`
	Website        string     `json:"website"`
	Phone          string     `json:"phone"`
	Company        string     `json:"company"`
	Status         LeadStatus `json:"status"`
	Source         LeadSource `json:"source"`
	AssignedTo     string     `json:"assigned_to"`
	Tags           string     `json:"tags"`
	Value          Money      `json:"value"`
	Currency       string     `json:"currency"`
	Description    string     `json:"description"`
	Address        string     `json:"address"`
	City           string     `json:"city"`
	State          string     `json:"state"`
	Country        string     `json:"country"`
	Zipcode        string     `json:"zipcode"`
	Language       string     `json:"default_language"`
	IsPublic       Flag       `json:"is_public"`
	ContactedToday Flag       `json:"contacted_today"`
	Owner          string     `json:"owner"`
	CreatedAt      string     `json:"created_at"`
}

// Contact is a CRM record for an engaged customer.
type Contact struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Company  string `json:"company"`
	TaxID    string `json:"GST"`
	Website  string `json:"website"`
	GroupID  int64  `json:"group_id"`
	Currency string `json:"currency"`
	Language string `json:"language"`

	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	Zipcode string `json:"zipcode"`
	Country string `json:"country"`

	BillingAddress string `json:"billing_address"`
	BillingCity    string `json:"billing_city"`
	BillingState   string `json:"billing_state"`
	BillingZip     string `json:"billing_zip"`
	BillingCountry string `json:"billing_country"`

	ShippingAddress string `json:"shipping_address"`
	ShippingCity    string `json:"shipping_city"`
	ShippingState   string `json:"shipping_state"`
	ShippingZip     string `json:"shipping_zip"`
	ShippingCountry string `json:"shipping_country"`
}

// Group is read-only reference data used to populate selection.
type Group struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// LeadTask is a to-do attached to a lead.
type LeadTask struct {
	ID      int64  `json:"id"`
	LeadID  int64  `json:"lead_id"`
	Title   string `json:"title"`
	DueDate string `json:"due_date"`
	Done    Flag   `json:"done"`
}

// LeadNote is a free-form note attached to a lead.
type LeadNote struct {
	ID        int64  `json:"id"`
	LeadID    int64  `json:"lead_id"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at"`
}

// LeadReminder is a dated reminder attached to a lead.
type LeadReminder struct {
	ID       int64  `json:"id"`
	LeadID   int64  `json:"lead_id"`
	RemindAt string `json:"remind_at"`
	Message  string `json:"message"`
}

// LeadActivity is one entry in a lead's activity feed.
type LeadActivity struct {
	ID        int64  `json:"id"`
	Type      string `json:"type"`
	Title     string `json:"title"`
	CreatedAt string `json:"created_at"`
}

// LeadAttachment references an uploaded file on a lead.
type LeadAttachment struct {
	ID       int64  `json:"id"`
	LeadID   int64  `json:"lead_id"`
	FileName string `json:"file_name"`
	FileURL  string `json:"file_url"`
}

// Flag is a boolean that tolerates the API's 1/0 encoding on the way in
// and always writes 1/0 on the way out, matching what the update endpoints
// expect.
type Flag bool

func (f Flag) MarshalJSON() ([]byte, error) {
	if f {
		return []byte("1"), nil
	}
	return []byte("0"), nil
}

func (f *Flag) UnmarshalJSON(data []byte) error {
	switch string(bytes.TrimSpace(data)) {
	case "true", "1", `"1"`, `"true"`:
		*f = true
	default:
		*f = false
	}
	return nil
}

// Money is a numeric amount that tolerates string-encoded numbers from the
// API. Unparseable input counts as zero.
type Money float64

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatFloat(float64(m), 'f', -1, 64)), nil
}

func (m *Money) UnmarshalJSON(data []byte) error {
	s := strings.Trim(strings.TrimSpace(string(data)), `"`)
	if s == "" || s == "null" {
		*m = 0
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		*m = 0
		return nil
	}
	*m = Money(v)
	return nil
}

// ParseAmount converts free-form numeric input to a float, treating anything
// unparseable as zero.
func ParseAmount(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return v
}

// FormatAmount renders a float the way the API and the CSV export expect,
// without a fixed number of decimals.
func FormatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
