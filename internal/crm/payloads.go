package crm

// Request payloads, one per write endpoint. The validate tags cover only
// the handful of required fields; everything else is optional and passes
// through as typed.

// CreateContactPayload is the full customer draft, addresses included.
type CreateContactPayload struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone"`
	Company  string `json:"company"`
	TaxID    string `json:"GST"`
	Website  string `json:"website"`
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

// UpdateContactPayload is the fixed subset the edit form sends. The billing,
// shipping and group fields present in the draft are deliberately dropped
// here; group membership goes through AssignGroup instead.
type UpdateContactPayload struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	City     string `json:"city"`
	State    string `json:"state"`
	Country  string `json:"country"`
	Zipcode  string `json:"zipcode"`
	Website  string `json:"website"`
	Currency string `json:"currency"`
	Language string `json:"language"`
	TaxID    string `json:"GST"`
}

// AssignGroupPayload maps one customer to a list of groups. This UI only
// ever sends a single group id, but the endpoint accepts many.
type AssignGroupPayload struct {
	CustomerID int64   `json:"customer_id"`
	GroupIDs   []int64 `json:"group_ids"`
}

// LeadPayload is shared by create and update. The create endpoint reads
// lead_value, the update endpoint reads value; both are always sent with
// the same number.
type LeadPayload struct {
	Status      LeadStatus `json:"status" validate:"required"`
	Source      LeadSource `json:"source" validate:"required"`
	AssignedTo  string     `json:"assigned_to"`
	Tags        string     `json:"tags"`
	Name        string     `json:"name" validate:"required"`
	Position    string     `json:"position"`
	Email       string     `json:"email"`
	Website     string     `json:"website"`
	Phone       string     `json:"phone"`
	Value       float64    `json:"value"`
	LeadValue   float64    `json:"lead_value"`
	Company     string     `json:"company"`
	Description string     `json:"description"`

	Address  string `json:"address"`
	City     string `json:"city"`
	State    string `json:"state"`
	Country  string `json:"country"`
	Zipcode  string `json:"zipcode"`
	Language string `json:"default_language"`

	IsPublic       Flag   `json:"is_public"`
	ContactedToday Flag   `json:"contacted_today"`
	Currency       string `json:"currency"`
}

// StatusPayload is the body of the status-only update endpoint.
type StatusPayload struct {
	Status LeadStatus `json:"status"`
}

// NotePayload creates a note under a lead.
type NotePayload struct {
	Content string `json:"content" validate:"required"`
}

// TaskPayload creates a task under a lead.
type TaskPayload struct {
	Title   string `json:"title" validate:"required"`
	DueDate string `json:"due_date"`
}

// ReminderPayload creates a reminder under a lead.
type ReminderPayload struct {
	RemindAt string `json:"remind_at" validate:"required"`
	Message  string `json:"message"`
}

// ProposalPayload is the full proposal submission, line items and derived
// totals included. The totals are computed by the caller; see Totals.
type ProposalPayload struct {
	Subject      string         `json:"subject" validate:"required"`
	AssignedTo   string         `json:"assigned_to"`
	LeadID       int64          `json:"lead_id"`
	ProposalDate string         `json:"proposal_date"`
	OpenTill     string         `json:"open_till"`
	Currency     string         `json:"currency"`
	Status       ProposalStatus `json:"status"`

	ToName  string `json:"to_name"`
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	Country string `json:"country"`
	Zip     string `json:"zip"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`

	Discount   float64 `json:"discount_val"`
	Adjustment float64 `json:"adjustment"`

	Items       []ProposalItem `json:"items"`
	SubTotal    float64        `json:"sub_total"`
	TotalAmount float64        `json:"total_amount"`
}
