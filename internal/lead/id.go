// Package lead holds the pure domain logic for lead records: sanitization of
// loosely-typed input and reconciliation of generated leads with saved ones.
package lead

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NewID returns a fresh unique identifier with the given prefix, in the form
// <prefix>-<unix millis>-<random suffix>.
func NewID(prefix string) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("%s-%d-%s", prefix, time.Now().UnixMilli(), suffix)
}
