package pipeline

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/rotisserie/eris"
)

var jsonFenceRe = regexp.MustCompile("(?s)```json\\s*(.*?)\\s*```")

// ExtractLeadArray extracts a JSON array of loosely-typed lead objects from a
// free-text model reply. Ordered attempts, first candidate wins:
//
//  1. the interior of a fenced code block tagged as JSON;
//  2. the substring spanning the first '[' through the last ']';
//  3. the entire trimmed text.
//
// A parse failure at the chosen candidate is ErrMalformedResponse; there is no
// silent fallthrough. A parsed non-array value is also malformed. Elements
// that are not JSON objects are dropped.
func ExtractLeadArray(text string) ([]map[string]any, error) {
	candidate := strings.TrimSpace(text)

	if m := jsonFenceRe.FindStringSubmatch(candidate); m != nil {
		candidate = m[1]
	} else if start := strings.Index(candidate, "["); start >= 0 {
		if end := strings.LastIndex(candidate, "]"); end > start {
			candidate = candidate[start : end+1]
		}
	}

	dec := json.NewDecoder(strings.NewReader(candidate))
	dec.UseNumber()

	var parsed any
	if err := dec.Decode(&parsed); err != nil {
		return nil, eris.Wrap(ErrMalformedResponse, err.Error())
	}

	arr, ok := parsed.([]any)
	if !ok {
		return nil, eris.Wrap(ErrMalformedResponse, "top-level value is not an array")
	}

	items := make([]map[string]any, 0, len(arr))
	for _, el := range arr {
		if obj, ok := el.(map[string]any); ok {
			items = append(items, obj)
		}
	}
	return items, nil
}
