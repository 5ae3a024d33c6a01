// Package notify implements the due-task notification sweep: a one-shot scan
// over the lead collection that classifies incomplete tasks as overdue or due
// today. It is not timer-driven; it runs once when the collection is first
// loaded in a session.
package notify

import (
	"fmt"
	"time"

	"github.com/sells-group/leadgen-cli/internal/model"
)

// Result holds the outcome of one sweep.
type Result struct {
	// New contains notifications not previously seen, in lead order.
	New []model.Notification
	// Overdue and DueToday count every matching task this sweep, including
	// ones already seen. The summary alert uses these totals.
	Overdue  int
	DueToday int
}

// Summary returns the aggregate alert line, or "" when the sweep discovered
// nothing new.
func (r Result) Summary() string {
	if len(r.New) == 0 {
		return ""
	}
	return fmt.Sprintf("You have %d tasks due today and %d overdue.", r.DueToday, r.Overdue)
}

// Sweep scans every incomplete task of every lead and classifies it against
// today, using date-only UTC comparisons. Notifications whose deterministic id
// is already in seen are not re-added. Tasks with unparsable due dates are
// skipped.
func Sweep(leads []model.Lead, today time.Time, seen map[string]bool) Result {
	var res Result
	midnight := truncateUTC(today)
	now := time.Now().UTC().Format(time.RFC3339)

	for _, l := range leads {
		for _, t := range l.Tasks {
			if t.IsCompleted {
				continue
			}
			due, err := parseDueDate(t.DueDate)
			if err != nil {
				continue
			}

			var n model.Notification
			switch {
			case due.Before(midnight):
				res.Overdue++
				n = model.Notification{
					ID:      "overdue-" + t.ID,
					Title:   "Overdue task",
					Message: fmt.Sprintf("%q for %s was due on %s.", t.Content, l.CompanyName, due.Format("2006-01-02")),
					Type:    model.NotificationWarning,
				}
			case due.Equal(midnight):
				res.DueToday++
				n = model.Notification{
					ID:      "today-" + t.ID,
					Title:   "Task due today",
					Message: fmt.Sprintf("%q for %s is due today.", t.Content, l.CompanyName),
					Type:    model.NotificationInfo,
				}
			default:
				continue
			}

			if seen[n.ID] {
				continue
			}
			n.Date = now
			n.LeadID = l.ID
			res.New = append(res.New, n)
		}
	}
	return res
}

// parseDueDate interprets a task due date as a UTC calendar date, accepting
// either a bare date or a full RFC3339 timestamp.
func parseDueDate(s string) (time.Time, error) {
	if d, err := time.ParseInLocation("2006-01-02", s, time.UTC); err == nil {
		return d, nil
	}
	ts, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, err
	}
	return truncateUTC(ts), nil
}

func truncateUTC(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
