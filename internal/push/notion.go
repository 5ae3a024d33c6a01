// Package push exports leads to external systems: a shared Notion database
// and Salesforce.
package push

import (
	"context"
	"strings"

	"github.com/jomei/notionapi"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/leadgen-cli/internal/model"
	"github.com/sells-group/leadgen-cli/pkg/notion"
)

// NotionResult summarizes a Notion push.
type NotionResult struct {
	Created int
	Updated int
}

// statusLabels maps pipeline statuses to the Notion select option names.
var statusLabels = map[model.LeadStatus]string{
	model.StatusNew:         "New",
	model.StatusContacted:   "Contacted",
	model.StatusFollowUp:    "Follow-up",
	model.StatusQualified:   "Qualified",
	model.StatusUnqualified: "Unqualified",
}

// ToNotion upserts leads into a Notion database keyed by company name:
// an existing page with the same title is updated, otherwise a page is
// created. Failures on individual leads abort the push.
func ToNotion(ctx context.Context, c notion.Client, dbID string, leads []model.Lead) (NotionResult, error) {
	var res NotionResult
	for _, l := range leads {
		pageID, err := findByCompany(ctx, c, dbID, l.CompanyName)
		if err != nil {
			return res, err
		}
		props := leadProperties(l)
		if pageID != "" {
			if _, err := c.UpdatePage(ctx, pageID, &notionapi.PageUpdateRequest{Properties: props}); err != nil {
				return res, eris.Wrap(err, "push: update notion lead "+l.CompanyName)
			}
			res.Updated++
			continue
		}
		req := &notionapi.PageCreateRequest{
			Parent:     notionapi.Parent{Type: notionapi.ParentTypeDatabaseID, DatabaseID: notionapi.DatabaseID(dbID)},
			Properties: props,
		}
		if _, err := c.CreatePage(ctx, req); err != nil {
			return res, eris.Wrap(err, "push: create notion lead "+l.CompanyName)
		}
		res.Created++
	}
	zap.L().Info("notion push complete",
		zap.Int("created", res.Created),
		zap.Int("updated", res.Updated),
	)
	return res, nil
}

// findByCompany returns the page ID of the lead titled name, or "" when absent.
func findByCompany(ctx context.Context, c notion.Client, dbID, name string) (string, error) {
	resp, err := c.QueryDatabase(ctx, dbID, &notionapi.DatabaseQueryRequest{
		Filter: notionapi.PropertyFilter{
			Property: "Company",
			RichText: &notionapi.TextFilterCondition{Equals: name},
		},
		PageSize: 1,
	})
	if err != nil {
		return "", eris.Wrap(err, "push: look up notion lead "+name)
	}
	if len(resp.Results) == 0 {
		return "", nil
	}
	return string(resp.Results[0].ID), nil
}

func leadProperties(l model.Lead) notionapi.Properties {
	props := notionapi.Properties{
		"Company": notionapi.TitleProperty{
			Type:  notionapi.PropertyTypeTitle,
			Title: richText(l.CompanyName),
		},
		"Industry": notionapi.RichTextProperty{
			Type:     notionapi.PropertyTypeRichText,
			RichText: richText(l.Industry),
		},
		"Location": notionapi.RichTextProperty{
			Type:     notionapi.PropertyTypeRichText,
			RichText: richText(l.Location),
		},
		"Summary": notionapi.RichTextProperty{
			Type:     notionapi.PropertyTypeRichText,
			RichText: richText(l.Summary),
		},
		"Key Contacts": notionapi.RichTextProperty{
			Type:     notionapi.PropertyTypeRichText,
			RichText: richText(strings.Join(l.KeyContacts, ", ")),
		},
		"Saved": notionapi.CheckboxProperty{
			Type:     notionapi.PropertyTypeCheckbox,
			Checkbox: l.IsSaved,
		},
	}
	if label, ok := statusLabels[l.Status]; ok {
		props["Status"] = notionapi.SelectProperty{
			Type:   notionapi.PropertyTypeSelect,
			Select: notionapi.Option{Name: label},
		}
	}
	if l.Website != "" {
		props["Website"] = notionapi.URLProperty{Type: notionapi.PropertyTypeURL, URL: l.Website}
	}
	if l.Email != "" {
		props["Email"] = notionapi.EmailProperty{Type: notionapi.PropertyTypeEmail, Email: l.Email}
	}
	if l.Phone != "" {
		props["Phone"] = notionapi.PhoneNumberProperty{Type: notionapi.PropertyTypePhoneNumber, PhoneNumber: l.Phone}
	}
	return props
}

func richText(s string) []notionapi.RichText {
	if s == "" {
		return nil
	}
	return []notionapi.RichText{{Type: notionapi.ObjectTypeText, Text: &notionapi.Text{Content: s}}}
}
