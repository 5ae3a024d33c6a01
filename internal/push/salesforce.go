package push

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/sells-group/leadgen-cli/internal/model"
	"github.com/sells-group/leadgen-cli/pkg/salesforce"
)

// SalesforceResult summarizes a Salesforce push.
type SalesforceResult struct {
	Inserted int
	Updated  int
	Failed   []string // company names that Salesforce rejected
}

// ToSalesforce upserts qualified leads as Lead records, keyed by company
// name: a record that already exists is updated in place, the rest are
// inserted in one collection call. Leads in any other status are skipped;
// per-record rejections are collected, not fatal.
func ToSalesforce(ctx context.Context, c salesforce.Client, leads []model.Lead) (SalesforceResult, error) {
	var res SalesforceResult

	var records []map[string]any
	var names []string
	for _, l := range leads {
		if l.Status != model.StatusQualified {
			continue
		}
		existing, err := salesforce.FindLeadByCompany(ctx, c, l.CompanyName)
		if err != nil {
			return res, err
		}
		if existing != nil {
			if err := c.UpdateOne(ctx, "Lead", existing.ID, leadRecord(l)); err != nil {
				res.Failed = append(res.Failed, l.CompanyName)
				zap.L().Warn("salesforce rejected lead update",
					zap.String("company", l.CompanyName),
					zap.Error(err),
				)
				continue
			}
			res.Updated++
			continue
		}
		records = append(records, leadRecord(l))
		names = append(names, l.CompanyName)
	}

	if len(records) > 0 {
		results, err := c.InsertCollection(ctx, "Lead", records)
		if err != nil {
			return res, err
		}
		for i, r := range results {
			if r.Success {
				res.Inserted++
				continue
			}
			name := "unknown"
			if i < len(names) {
				name = names[i]
			}
			res.Failed = append(res.Failed, name)
			zap.L().Warn("salesforce rejected lead",
				zap.String("company", name),
				zap.Strings("errors", r.Errors),
			)
		}
	}

	if res.Inserted+res.Updated+len(res.Failed) == 0 {
		return res, nil
	}
	zap.L().Info("salesforce push complete",
		zap.Int("inserted", res.Inserted),
		zap.Int("updated", res.Updated),
		zap.Int("failed", len(res.Failed)),
	)
	return res, nil
}

func leadRecord(l model.Lead) map[string]any {
	// Salesforce requires LastName and Company on Lead; fall back to the
	// company name when no contact is known.
	lastName := l.CompanyName
	if len(l.KeyContacts) > 0 && strings.TrimSpace(l.KeyContacts[0]) != "" {
		lastName = l.KeyContacts[0]
	}
	rec := map[string]any{
		"Company":     l.CompanyName,
		"LastName":    lastName,
		"Industry":    l.Industry,
		"Description": l.Summary,
		"LeadSource":  "Leadgen CLI",
	}
	if l.Email != "" {
		rec["Email"] = l.Email
	}
	if l.Phone != "" {
		rec["Phone"] = l.Phone
	}
	if l.Website != "" {
		rec["Website"] = l.Website
	}
	if l.Address != "" {
		rec["Street"] = l.Address
	}
	return rec
}
