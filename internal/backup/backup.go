// Package backup round-trips the lead collection to and from standalone JSON
// files. Export output is human-readable and importable back without loss;
// restore is destructive and the caller confirms it at the boundary.
package backup

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/text/encoding/unicode"

	"github.com/sells-group/leadgen-cli/internal/lead"
	"github.com/sells-group/leadgen-cli/internal/model"
)

// ErrInvalidBackupFormat indicates the file's top-level JSON value is not an
// array of leads. Check with eris.Is.
var ErrInvalidBackupFormat = eris.New("backup file must contain a JSON array of leads")

// utf8BOM prefixes exports so spreadsheet tools detect the encoding.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Export serializes the full collection as pretty-printed JSON with a UTF-8
// BOM prefix.
func Export(leads []model.Lead) ([]byte, error) {
	if leads == nil {
		leads = []model.Lead{}
	}
	doc, err := json.MarshalIndent(leads, "", "  ")
	if err != nil {
		return nil, eris.Wrap(err, "backup: marshal leads")
	}
	return append(append([]byte{}, utf8BOM...), doc...), nil
}

// Filename suggests a download name carrying the given date.
func Filename(now time.Time) string {
	return fmt.Sprintf("leads_backup_%s.json", now.UTC().Format("2006-01-02"))
}

// Import parses a backup file and returns the sanitized leads it contains.
// The decode tolerates a leading BOM. A top-level value that is not an array
// is ErrInvalidBackupFormat; ids of already-valid records are preserved.
func Import(data []byte) ([]model.Lead, error) {
	decoded, err := unicode.UTF8BOM.NewDecoder().Bytes(data)
	if err != nil {
		return nil, eris.Wrap(err, "backup: decode file")
	}

	var parsed any
	if err := json.Unmarshal(decoded, &parsed); err != nil {
		return nil, eris.Wrap(ErrInvalidBackupFormat, err.Error())
	}
	arr, ok := parsed.([]any)
	if !ok {
		return nil, eris.Wrap(ErrInvalidBackupFormat, "top-level value is not an array")
	}

	items := make([]map[string]any, 0, len(arr))
	for _, el := range arr {
		obj, ok := el.(map[string]any)
		if !ok {
			return nil, eris.Wrap(ErrInvalidBackupFormat, "array element is not an object")
		}
		items = append(items, obj)
	}
	return lead.SanitizeAll(items), nil
}
