// Package store persists the full lead collection as a single JSON document
// under a fixed key, mirroring the original single-key storage model. The
// collection is the unit of persistence: every mutation rewrites it whole.
package store

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/sells-group/leadgen-cli/internal/lead"
	"github.com/sells-group/leadgen-cli/internal/model"
)

const (
	// leadsKey is the fixed application key holding the serialized collection.
	leadsKey = "leads"
	// notifyCheckKey tracks when the last notification sweep ran.
	notifyCheckKey = "last-notification-check"
)

// Store defines the persistence interface for the lead collection.
type Store interface {
	// SaveLeads rewrites the full collection.
	SaveLeads(ctx context.Context, leads []model.Lead) error
	// LoadLeads reads the collection, sanitizing every record. An absent or
	// unparsable value yields an empty collection, not an error.
	LoadLeads(ctx context.Context) ([]model.Lead, error)

	// GetLastNotificationCheck returns the zero time when no sweep has run.
	GetLastNotificationCheck(ctx context.Context) (time.Time, error)
	SetLastNotificationCheck(ctx context.Context, t time.Time) error

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}

// decodeLeads parses the stored JSON document and runs every element through
// the sanitizer, guarding against schema drift between versions. Unparsable
// state degrades to an empty collection.
func decodeLeads(raw []byte) []model.Lead {
	if len(raw) == 0 {
		return []model.Lead{}
	}
	var items []map[string]any
	if err := json.Unmarshal(raw, &items); err != nil {
		zap.L().Warn("stored lead collection is unparsable, starting empty", zap.Error(err))
		return []model.Lead{}
	}
	return lead.SanitizeAll(items)
}
