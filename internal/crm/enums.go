package crm

// LeadStatus is the pipeline stage of a lead. Any status is reachable from
// any other; the server enforces no transition graph and neither does this
// client.
type LeadStatus string

const (
	StatusNew       LeadStatus = "New"
	StatusContacted LeadStatus = "Contacted"
	StatusQualified LeadStatus = "Qualified"
	StatusLost      LeadStatus = "Lost"
	StatusConverted LeadStatus = "Converted"
)

// LeadStatuses is the fixed board column order.
var LeadStatuses = []LeadStatus{
	StatusNew,
	StatusContacted,
	StatusQualified,
	StatusLost,
	StatusConverted,
}

func (s LeadStatus) String() string { return string(s) }

// Valid reports whether s is one of the known pipeline stages.
func (s LeadStatus) Valid() bool {
	for _, known := range LeadStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// LeadSource is where a lead came from.
type LeadSource string

const (
	SourceFacebook LeadSource = "Facebook"
	SourceGoogle   LeadSource = "Google"
	SourceLinkedIn LeadSource = "LinkedIn"
	SourceReferral LeadSource = "Referral"
	SourceWebsite  LeadSource = "Website"
)

func (s LeadSource) String() string { return string(s) }

// LeadSources lists the selectable sources.
var LeadSources = []LeadSource{
	SourceFacebook,
	SourceGoogle,
	SourceLinkedIn,
	SourceReferral,
	SourceWebsite,
}

// ProposalStatus is the lifecycle stage of a proposal.
type ProposalStatus string

const (
	ProposalDraft ProposalStatus = "Draft"
	ProposalSent  ProposalStatus = "Sent"
	ProposalOpen  ProposalStatus = "Open"
)

// ProposalStatuses lists the selectable proposal stages.
var ProposalStatuses = []ProposalStatus{ProposalDraft, ProposalSent, ProposalOpen}

// Canonical option lists shared by every form and filter.
var (
	Countries = []string{
		"United States", "India", "United Kingdom", "Canada", "Australia",
		"Germany", "France", "Japan", "China", "Brazil", "Mexico", "Italy",
		"Spain", "Netherlands", "Switzerland", "Sweden", "South Korea",
		"Singapore", "Russia", "South Africa", "United Arab Emirates",
	}

	Currencies = []string{"USD", "EUR", "INR", "GBP"}

	Languages = []string{"System Default", "English", "Spanish", "French"}

	Assignees = []string{"Admin", "Sales Team"}
)
