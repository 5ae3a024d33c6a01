package lead

import "github.com/sells-group/leadgen-cli/internal/model"

// Reconcile merges freshly generated leads into the existing collection.
//
// Saved leads survive unchanged and come first; every unsaved existing lead is
// discarded, since the working list is a volatile view replaced by each
// generation. Fresh leads whose company name collides with a saved lead are
// dropped (exact match, case- and whitespace-sensitive). Pure function; the
// caller persists the result.
func Reconcile(existing, fresh []model.Lead) []model.Lead {
	saved := make([]model.Lead, 0, len(existing))
	savedNames := make(map[string]struct{})
	for _, l := range existing {
		if l.IsSaved {
			saved = append(saved, l)
			savedNames[l.CompanyName] = struct{}{}
		}
	}

	merged := saved
	for _, l := range fresh {
		if _, dup := savedNames[l.CompanyName]; dup {
			continue
		}
		merged = append(merged, l)
	}
	return merged
}
