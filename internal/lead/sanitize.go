package lead

import (
	"encoding/json"
	"strings"

	"github.com/sells-group/leadgen-cli/internal/model"
)

// PlaceholderText substitutes missing or non-string required fields.
const PlaceholderText = "Unknown"

// statusAliases maps loosely-formatted status labels, including values written
// by earlier releases, onto canonical statuses.
var statusAliases = map[string]model.LeadStatus{
	"new":            model.StatusNew,
	"novo":           model.StatusNew,
	"contacted":      model.StatusContacted,
	"contactado":     model.StatusContacted,
	"follow_up":      model.StatusFollowUp,
	"follow-up":      model.StatusFollowUp,
	"followup":       model.StatusFollowUp,
	"qualified":      model.StatusQualified,
	"qualificado":    model.StatusQualified,
	"unqualified":    model.StatusUnqualified,
	"desqualificado": model.StatusUnqualified,
}

// Sanitize normalizes an arbitrary object purporting to be a lead into a
// well-formed Lead. It is total: it never fails for any input shape, including
// nil and primitive garbage fields, and the result always satisfies the Lead
// invariants. An existing id is preserved, never regenerated.
func Sanitize(raw map[string]any) model.Lead {
	l := model.Lead{
		ID:             stringField(raw, "id", ""),
		CompanyName:    stringField(raw, "company_name", PlaceholderText),
		Industry:       stringField(raw, "industry", PlaceholderText),
		Location:       stringField(raw, "location", PlaceholderText),
		Summary:        stringField(raw, "summary", PlaceholderText),
		ReasonWhy:      stringField(raw, "reason_why", PlaceholderText),
		PotentialNeeds: stringList(lookup(raw, "potential_needs")),
		KeyContacts:    contactList(lookup(raw, "key_contacts")),
		Status:         statusField(lookup(raw, "status")),
		IsSaved:        boolField(lookup(raw, "is_saved")),
		Address:        stringField(raw, "address", ""),
		Phone:          stringField(raw, "phone", ""),
		Email:          stringField(raw, "email", ""),
		Website:        stringField(raw, "website", ""),
		Latitude:       floatField(lookup(raw, "latitude")),
		Longitude:      floatField(lookup(raw, "longitude")),
		Notes:          noteList(lookup(raw, "notes")),
		Tasks:          taskList(lookup(raw, "tasks")),
	}

	if l.ID == "" {
		l.ID = NewID("lead")
	}
	return l
}

// SanitizeAll sanitizes every element of a loosely-typed lead list.
func SanitizeAll(raws []map[string]any) []model.Lead {
	leads := make([]model.Lead, 0, len(raws))
	for _, raw := range raws {
		leads = append(leads, Sanitize(raw))
	}
	return leads
}

func stringField(m map[string]any, key, fallback string) string {
	if m == nil {
		return fallback
	}
	if s, ok := m[key].(string); ok && s != "" {
		return s
	}
	// AI output occasionally uses camelCase field names.
	if s, ok := m[camelAlias(key)].(string); ok && s != "" {
		return s
	}
	return fallback
}

// camelAlias converts a snake_case key to its camelCase equivalent.
func camelAlias(key string) string {
	parts := strings.Split(key, "_")
	for i := 1; i < len(parts); i++ {
		if parts[i] != "" {
			parts[i] = strings.ToUpper(parts[i][:1]) + parts[i][1:]
		}
	}
	return strings.Join(parts, "")
}

func lookup(m map[string]any, key string) any {
	if m == nil {
		return nil
	}
	if v, ok := m[key]; ok && v != nil {
		return v
	}
	return m[camelAlias(key)]
}

func stringList(v any) []string {
	items, ok := v.([]any)
	if !ok {
		if typed, ok := v.([]string); ok {
			return typed
		}
		return []string{}
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// contactList accepts either a list of strings or a single string. A non-empty
// string is wrapped into a one-element list; anything else is an empty list.
func contactList(v any) []string {
	if s, ok := v.(string); ok {
		if s == "" {
			return []string{}
		}
		return []string{s}
	}
	return stringList(v)
}

func statusField(v any) model.LeadStatus {
	s, ok := v.(string)
	if !ok {
		return model.StatusNew
	}
	if canonical, ok := statusAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return canonical
	}
	return model.StatusNew
}

func boolField(v any) bool {
	b, ok := v.(bool)
	return ok && b
}

func floatField(v any) *float64 {
	switch n := v.(type) {
	case float64:
		return &n
	case json.Number:
		if f, err := n.Float64(); err == nil {
			return &f
		}
	case int:
		f := float64(n)
		return &f
	}
	return nil
}

// noteList shallow-decodes each element of a notes list. Bad fields within an
// element become zero values; elements that are not objects are dropped.
func noteList(v any) []model.Note {
	items, ok := v.([]any)
	if !ok {
		return []model.Note{}
	}
	out := make([]model.Note, 0, len(items))
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		n := model.Note{
			ID:      stringField(m, "id", ""),
			Content: stringField(m, "content", ""),
			Date:    stringField(m, "date", ""),
		}
		if n.ID == "" {
			n.ID = NewID("note")
		}
		out = append(out, n)
	}
	return out
}

func taskList(v any) []model.Task {
	items, ok := v.([]any)
	if !ok {
		return []model.Task{}
	}
	out := make([]model.Task, 0, len(items))
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		t := model.Task{
			ID:          stringField(m, "id", ""),
			Content:     stringField(m, "content", ""),
			DueDate:     stringField(m, "due_date", ""),
			IsCompleted: boolField(lookup(m, "is_completed")),
		}
		if t.ID == "" {
			t.ID = NewID("task")
		}
		out = append(out, t)
	}
	return out
}
