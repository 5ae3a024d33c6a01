package crm

import (
	"strings"

	"github.com/sells-group/leadgen-cli/internal/model"
)

// Filter narrows a lead collection for display. Zero values match everything.
type Filter struct {
	// Search matches case-insensitively against the company name.
	Search string
	// Status keeps only leads in the given pipeline status.
	Status model.LeadStatus
	// Saved keeps only favorites (true) or only non-favorites (false).
	Saved *bool
}

// Apply returns the leads matching every set criterion, preserving order.
func (f Filter) Apply(leads []model.Lead) []model.Lead {
	search := strings.ToLower(strings.TrimSpace(f.Search))
	out := make([]model.Lead, 0, len(leads))
	for _, l := range leads {
		if search != "" && !strings.Contains(strings.ToLower(l.CompanyName), search) {
			continue
		}
		if f.Status != "" && l.Status != f.Status {
			continue
		}
		if f.Saved != nil && l.IsSaved != *f.Saved {
			continue
		}
		out = append(out, l)
	}
	return out
}
