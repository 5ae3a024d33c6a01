// Package export writes the lead collection as spreadsheet files grouped by
// location and industry, matching the organized-list view.
package export

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/sells-group/leadgen-cli/internal/model"
)

// Columns are the fixed export headers, in order.
var Columns = []string{
	"Location",
	"Industry",
	"Company",
	"Key Contact",
	"Phone",
	"Email",
	"Website",
	"Address",
	"Status",
	"Summary",
	"Reason",
}

const (
	unknownLocation = "Unknown Location"
	unknownIndustry = "Unknown Industry"
)

// Rows flattens the collection into export rows grouped by location then
// industry, group keys sorted, leads in insertion order within each group.
// Location and industry cells are filled only on the first row of their
// group, matching the on-screen grouping.
func Rows(leads []model.Lead) [][]string {
	grouped := make(map[string]map[string][]model.Lead)
	for _, l := range leads {
		loc := l.Location
		if loc == "" {
			loc = unknownLocation
		}
		ind := l.Industry
		if ind == "" {
			ind = unknownIndustry
		}
		if grouped[loc] == nil {
			grouped[loc] = make(map[string][]model.Lead)
		}
		grouped[loc][ind] = append(grouped[loc][ind], l)
	}

	var rows [][]string
	for _, loc := range sortedKeys(grouped) {
		firstOfLocation := true
		for _, ind := range sortedKeys(grouped[loc]) {
			firstOfIndustry := true
			for _, l := range grouped[loc][ind] {
				locCell, indCell := "", ""
				if firstOfLocation {
					locCell = loc
				}
				if firstOfIndustry {
					indCell = ind
				}
				rows = append(rows, []string{
					locCell,
					indCell,
					l.CompanyName,
					strings.Join(l.KeyContacts, ", "),
					l.Phone,
					l.Email,
					l.Website,
					l.Address,
					string(l.Status),
					l.Summary,
					l.ReasonWhy,
				})
				firstOfLocation = false
				firstOfIndustry = false
			}
		}
	}
	return rows
}

// Filename suggests an export name with the given extension ("csv" or "xlsx").
func Filename(now time.Time, ext string) string {
	return fmt.Sprintf("leads_export_%s.%s", now.UTC().Format("2006-01-02"), ext)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
