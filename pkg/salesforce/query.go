package salesforce

import (
	"context"
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
)

// LeadRecord is the slice of a Salesforce Lead row that push dedup uses.
type LeadRecord struct {
	ID      string `json:"Id" salesforce:"Id"`
	Company string `json:"Company" salesforce:"Company"`
}

// leadFields are the SOQL fields selected for Lead queries.
var leadFields = []string{"Id", "Company"}

// FindLeadByCompany queries Salesforce for a Lead record with the given
// company name. Returns nil if none exists.
func FindLeadByCompany(ctx context.Context, c Client, company string) (*LeadRecord, error) {
	soql := fmt.Sprintf(
		"SELECT %s FROM Lead WHERE Company = '%s' LIMIT 1",
		strings.Join(leadFields, ", "),
		escapeSoql(company),
	)

	var leads []LeadRecord
	if err := c.Query(ctx, soql, &leads); err != nil {
		return nil, eris.Wrap(err, fmt.Sprintf("sf: find lead by company %s", company))
	}
	if len(leads) == 0 {
		return nil, nil
	}
	return &leads[0], nil
}

// escapeSoql escapes single quotes in SOQL string literals to prevent injection.
func escapeSoql(s string) string {
	return strings.ReplaceAll(s, "'", "\\'")
}
