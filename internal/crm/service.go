// Package crm implements the lead-management operations on top of the store:
// generation with reconciliation, status and favorite changes, note and task
// CRUD, backup round-trips, and the notification sweep. Every mutation
// rewrites the persisted collection in full.
package crm

import (
	"context"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/leadgen-cli/internal/backup"
	"github.com/sells-group/leadgen-cli/internal/lead"
	"github.com/sells-group/leadgen-cli/internal/model"
	"github.com/sells-group/leadgen-cli/internal/notify"
	"github.com/sells-group/leadgen-cli/internal/pipeline"
	"github.com/sells-group/leadgen-cli/internal/store"
	"github.com/sells-group/leadgen-cli/pkg/geocode"
)

// Sentinel errors for lookup failures. Check with eris.Is.
var (
	ErrLeadNotFound  = eris.New("lead not found")
	ErrNoteNotFound  = eris.New("note not found")
	ErrTaskNotFound  = eris.New("task not found")
	ErrEmptyContent  = eris.New("content must not be empty")
	ErrInvalidStatus = eris.New("unrecognized status")
)

// Service coordinates lead operations against the store and the AI pipeline.
// Dependencies are injected at construction so tests can substitute fakes.
type Service struct {
	store store.Store
	gen   *pipeline.Generator
	geo   geocode.Client // nil disables the coordinate hint
}

// NewService creates a Service. geo may be nil.
func NewService(st store.Store, gen *pipeline.Generator, geo geocode.Client) *Service {
	return &Service{store: st, gen: gen, geo: geo}
}

// Leads returns the current persisted collection.
func (s *Service) Leads(ctx context.Context) ([]model.Lead, error) {
	return s.store.LoadLeads(ctx)
}

// Generate runs one generation call and reconciles the result into the
// persisted collection: saved leads survive, the unsaved working set is
// replaced, and fresh leads colliding with a saved company name are dropped.
// Returns the merged collection.
func (s *Service) Generate(ctx context.Context, req pipeline.GenerateRequest) ([]model.Lead, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// Best-effort coordinate hint; generation proceeds without it.
	if req.Coordinates == nil && s.geo != nil && strings.TrimSpace(req.Location) != "" {
		res, err := s.geo.Geocode(ctx, req.Location)
		switch {
		case err != nil:
			zap.L().Warn("geocode unavailable, generating without coordinates", zap.Error(err))
		case res.Matched:
			req.Coordinates = &pipeline.Coordinates{Latitude: res.Latitude, Longitude: res.Longitude}
		}
	}

	fresh, err := s.gen.Generate(ctx, req)
	if err != nil {
		return nil, err
	}

	existing, err := s.store.LoadLeads(ctx)
	if err != nil {
		return nil, err
	}

	merged := lead.Reconcile(existing, fresh)
	if err := s.store.SaveLeads(ctx, merged); err != nil {
		return nil, err
	}

	zap.L().Info("collection reconciled",
		zap.Int("generated", len(fresh)),
		zap.Int("total", len(merged)),
	)
	return merged, nil
}

// DraftOutreachEmail returns a prospecting email draft for one lead, verbatim.
func (s *Service) DraftOutreachEmail(ctx context.Context, leadID string) (string, error) {
	leads, err := s.store.LoadLeads(ctx)
	if err != nil {
		return "", err
	}
	for _, l := range leads {
		if l.ID == leadID {
			return s.gen.DraftOutreachEmail(ctx, l)
		}
	}
	return "", eris.Wrap(ErrLeadNotFound, leadID)
}

// SetStatus moves a lead to a new pipeline status.
func (s *Service) SetStatus(ctx context.Context, leadID string, status model.LeadStatus) error {
	if !status.IsValid() {
		return eris.Wrap(ErrInvalidStatus, string(status))
	}
	return s.mutateLead(ctx, leadID, func(l *model.Lead) error {
		l.Status = status
		return nil
	})
}

// ToggleSave flips the favorite flag and returns the new value.
func (s *Service) ToggleSave(ctx context.Context, leadID string) (bool, error) {
	var saved bool
	err := s.mutateLead(ctx, leadID, func(l *model.Lead) error {
		l.IsSaved = !l.IsSaved
		saved = l.IsSaved
		return nil
	})
	return saved, err
}

// AddNote appends a note to a lead.
func (s *Service) AddNote(ctx context.Context, leadID, content string) (model.Note, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return model.Note{}, ErrEmptyContent
	}
	note := model.Note{
		ID:      lead.NewID("note"),
		Content: content,
		Date:    time.Now().UTC().Format(time.RFC3339),
	}
	err := s.mutateLead(ctx, leadID, func(l *model.Lead) error {
		l.Notes = append(l.Notes, note)
		return nil
	})
	return note, err
}

// UpdateNote replaces a note's content in place and refreshes its date.
func (s *Service) UpdateNote(ctx context.Context, leadID, noteID, content string) error {
	content = strings.TrimSpace(content)
	if content == "" {
		return ErrEmptyContent
	}
	return s.mutateLead(ctx, leadID, func(l *model.Lead) error {
		for i := range l.Notes {
			if l.Notes[i].ID == noteID {
				l.Notes[i].Content = content
				l.Notes[i].Date = time.Now().UTC().Format(time.RFC3339)
				return nil
			}
		}
		return eris.Wrap(ErrNoteNotFound, noteID)
	})
}

// DeleteNote removes a note from a lead.
func (s *Service) DeleteNote(ctx context.Context, leadID, noteID string) error {
	return s.mutateLead(ctx, leadID, func(l *model.Lead) error {
		for i := range l.Notes {
			if l.Notes[i].ID == noteID {
				l.Notes = append(l.Notes[:i], l.Notes[i+1:]...)
				return nil
			}
		}
		return eris.Wrap(ErrNoteNotFound, noteID)
	})
}

// AddTask appends a task with a calendar due date (YYYY-MM-DD).
func (s *Service) AddTask(ctx context.Context, leadID, content, dueDate string) (model.Task, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return model.Task{}, ErrEmptyContent
	}
	if _, err := time.ParseInLocation("2006-01-02", dueDate, time.UTC); err != nil {
		return model.Task{}, eris.Wrapf(err, "invalid due date %q", dueDate)
	}
	task := model.Task{
		ID:      lead.NewID("task"),
		Content: content,
		DueDate: dueDate,
	}
	err := s.mutateLead(ctx, leadID, func(l *model.Lead) error {
		l.Tasks = append(l.Tasks, task)
		return nil
	})
	return task, err
}

// ToggleTask flips a task's completion flag and returns the new value.
func (s *Service) ToggleTask(ctx context.Context, leadID, taskID string) (bool, error) {
	var done bool
	err := s.mutateLead(ctx, leadID, func(l *model.Lead) error {
		for i := range l.Tasks {
			if l.Tasks[i].ID == taskID {
				l.Tasks[i].IsCompleted = !l.Tasks[i].IsCompleted
				done = l.Tasks[i].IsCompleted
				return nil
			}
		}
		return eris.Wrap(ErrTaskNotFound, taskID)
	})
	return done, err
}

// DeleteTask removes a task from a lead.
func (s *Service) DeleteTask(ctx context.Context, leadID, taskID string) error {
	return s.mutateLead(ctx, leadID, func(l *model.Lead) error {
		for i := range l.Tasks {
			if l.Tasks[i].ID == taskID {
				l.Tasks = append(l.Tasks[:i], l.Tasks[i+1:]...)
				return nil
			}
		}
		return eris.Wrap(ErrTaskNotFound, taskID)
	})
}

// ClearUnsaved removes every non-favorited lead and returns how many went.
func (s *Service) ClearUnsaved(ctx context.Context) (int, error) {
	leads, err := s.store.LoadLeads(ctx)
	if err != nil {
		return 0, err
	}
	kept := make([]model.Lead, 0, len(leads))
	for _, l := range leads {
		if l.IsSaved {
			kept = append(kept, l)
		}
	}
	removed := len(leads) - len(kept)
	if err := s.store.SaveLeads(ctx, kept); err != nil {
		return 0, err
	}
	return removed, nil
}

// ClearAll removes the entire collection, favorites included.
func (s *Service) ClearAll(ctx context.Context) error {
	return s.store.SaveLeads(ctx, []model.Lead{})
}

// ExportBackup serializes the current collection as a backup document.
func (s *Service) ExportBackup(ctx context.Context) ([]byte, error) {
	leads, err := s.store.LoadLeads(ctx)
	if err != nil {
		return nil, err
	}
	return backup.Export(leads)
}

// Restore replaces the current collection with the contents of a backup file.
// Nothing is mutated when the file is invalid. The caller confirms the
// destructive overwrite before calling.
func (s *Service) Restore(ctx context.Context, data []byte) ([]model.Lead, error) {
	leads, err := backup.Import(data)
	if err != nil {
		return nil, err
	}
	if err := s.store.SaveLeads(ctx, leads); err != nil {
		return nil, err
	}
	zap.L().Info("collection restored from backup", zap.Int("leads", len(leads)))
	return leads, nil
}

// SweepNotifications runs the one-shot due-task sweep over the current
// collection and records the check time. seen carries notification ids from
// earlier sweeps in the same session.
func (s *Service) SweepNotifications(ctx context.Context, seen map[string]bool) (notify.Result, error) {
	leads, err := s.store.LoadLeads(ctx)
	if err != nil {
		return notify.Result{}, err
	}
	if len(leads) == 0 {
		return notify.Result{}, nil
	}

	if last, err := s.store.GetLastNotificationCheck(ctx); err == nil && !last.IsZero() {
		zap.L().Debug("previous notification sweep", zap.Time("at", last))
	}

	res := notify.Sweep(leads, time.Now(), seen)
	if err := s.store.SetLastNotificationCheck(ctx, time.Now()); err != nil {
		zap.L().Warn("failed to record notification check time", zap.Error(err))
	}
	return res, nil
}

// mutateLead applies fn to the lead with the given id and persists the full
// collection. The write is skipped when fn fails.
func (s *Service) mutateLead(ctx context.Context, leadID string, fn func(*model.Lead) error) error {
	leads, err := s.store.LoadLeads(ctx)
	if err != nil {
		return err
	}
	for i := range leads {
		if leads[i].ID != leadID {
			continue
		}
		if err := fn(&leads[i]); err != nil {
			return err
		}
		return s.store.SaveLeads(ctx, leads)
	}
	return eris.Wrap(ErrLeadNotFound, leadID)
}
