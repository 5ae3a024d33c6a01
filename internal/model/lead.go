package model

// LeadStatus represents the sales-pipeline state of a lead.
type LeadStatus string

const (
	StatusNew         LeadStatus = "new"
	StatusContacted   LeadStatus = "contacted"
	StatusFollowUp    LeadStatus = "follow_up"
	StatusQualified   LeadStatus = "qualified"
	StatusUnqualified LeadStatus = "unqualified"
)

// ValidStatuses lists every recognized lead status.
var ValidStatuses = []LeadStatus{
	StatusNew,
	StatusContacted,
	StatusFollowUp,
	StatusQualified,
	StatusUnqualified,
}

// IsValid reports whether s is a recognized status value.
func (s LeadStatus) IsValid() bool {
	for _, v := range ValidStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Lead represents a prospective business contact record.
//
// CompanyName is the logical identity for deduplication: two leads with the
// same company name are the same prospect, regardless of ID.
type Lead struct {
	ID             string     `json:"id"`
	CompanyName    string     `json:"company_name"`
	Industry       string     `json:"industry"`
	Location       string     `json:"location"`
	Summary        string     `json:"summary"`
	ReasonWhy      string     `json:"reason_why"`
	PotentialNeeds []string   `json:"potential_needs"`
	KeyContacts    []string   `json:"key_contacts"`
	Status         LeadStatus `json:"status"`
	IsSaved        bool       `json:"is_saved"`
	Address        string     `json:"address,omitempty"`
	Phone          string     `json:"phone,omitempty"`
	Email          string     `json:"email,omitempty"`
	Website        string     `json:"website,omitempty"`
	Latitude       *float64   `json:"latitude,omitempty"`
	Longitude      *float64   `json:"longitude,omitempty"`
	Notes          []Note     `json:"notes"`
	Tasks          []Task     `json:"tasks"`
}

// Note is a free-text annotation on a lead. Insertion order is meaningful.
// Editing a note updates both Content and Date.
type Note struct {
	ID      string `json:"id"`
	Content string `json:"content"`
	Date    string `json:"date"` // RFC3339
}

// Task is a dated action item on a lead. DueDate is a calendar date with no
// time component; comparisons use date-only, UTC-normalized semantics.
type Task struct {
	ID          string `json:"id"`
	Content     string `json:"content"`
	DueDate     string `json:"due_date"` // YYYY-MM-DD
	IsCompleted bool   `json:"is_completed"`
}
