package crm

import (
	"context"
	"testing"
	"time"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/leadgen-cli/internal/model"
	"github.com/sells-group/leadgen-cli/internal/pipeline"
	"github.com/sells-group/leadgen-cli/pkg/anthropic"
	"github.com/sells-group/leadgen-cli/pkg/geocode"
)

// memStore is an in-memory Store for service tests.
type memStore struct {
	leads     []model.Lead
	lastCheck time.Time
	saves     int
}

func (m *memStore) SaveLeads(_ context.Context, leads []model.Lead) error {
	m.leads = append([]model.Lead(nil), leads...)
	m.saves++
	return nil
}

func (m *memStore) LoadLeads(_ context.Context) ([]model.Lead, error) {
	return append([]model.Lead(nil), m.leads...), nil
}

func (m *memStore) GetLastNotificationCheck(_ context.Context) (time.Time, error) {
	return m.lastCheck, nil
}

func (m *memStore) SetLastNotificationCheck(_ context.Context, t time.Time) error {
	m.lastCheck = t
	return nil
}

func (m *memStore) Migrate(context.Context) error { return nil }
func (m *memStore) Close() error                  { return nil }

// fakeAnthropic returns a canned reply.
type fakeAnthropic struct {
	reply string
}

func (f *fakeAnthropic) CreateMessage(context.Context, anthropic.MessageRequest) (*anthropic.MessageResponse, error) {
	return &anthropic.MessageResponse{
		Content: []anthropic.ContentBlock{{Type: "text", Text: f.reply}},
	}, nil
}

// fakeGeocoder records the query it saw.
type fakeGeocoder struct {
	result *geocode.Result
	err    error
	query  string
}

func (f *fakeGeocoder) Geocode(_ context.Context, query string) (*geocode.Result, error) {
	f.query = query
	return f.result, f.err
}

func newTestService(st *memStore, reply string, geo geocode.Client) *Service {
	gen := pipeline.NewGenerator(&fakeAnthropic{reply: reply}, "m", 0)
	return NewService(st, gen, geo)
}

func seedStore(leads ...model.Lead) *memStore {
	return &memStore{leads: leads}
}

func TestService_Generate_ReconcilesAndPersists(t *testing.T) {
	st := seedStore(
		model.Lead{ID: "l1", CompanyName: "Acme", IsSaved: true},
		model.Lead{ID: "l2", CompanyName: "Stale Co"},
	)
	svc := newTestService(st, `[{"company_name":"Acme"},{"company_name":"Fresh Co"}]`, nil)

	merged, err := svc.Generate(context.Background(), pipeline.GenerateRequest{Sector: "robotics", Location: "Austin"})
	require.NoError(t, err)

	// Saved Acme survives, the fresh duplicate is dropped, the stale unsaved
	// lead is replaced by the fresh result.
	require.Len(t, merged, 2)
	assert.Equal(t, "l1", merged[0].ID)
	assert.Equal(t, "Fresh Co", merged[1].CompanyName)
	assert.Equal(t, merged, st.leads)
}

func TestService_Generate_GeocodeHint(t *testing.T) {
	geo := &fakeGeocoder{result: &geocode.Result{Latitude: 30.26, Longitude: -97.74, Matched: true}}
	svc := newTestService(seedStore(), "[]", geo)

	_, err := svc.Generate(context.Background(), pipeline.GenerateRequest{Sector: "robotics", Location: "Austin"})
	require.NoError(t, err)
	assert.Equal(t, "Austin", geo.query)
}

func TestService_Generate_GeocodeFailureNonFatal(t *testing.T) {
	geo := &fakeGeocoder{err: eris.New("geocode: quota exceeded")}
	svc := newTestService(seedStore(), `[{"company_name":"Acme"}]`, geo)

	merged, err := svc.Generate(context.Background(), pipeline.GenerateRequest{Sector: "robotics", Location: "Austin"})
	require.NoError(t, err)
	require.Len(t, merged, 1)
}

func TestService_Generate_InvalidRequest(t *testing.T) {
	st := seedStore()
	svc := newTestService(st, "[]", nil)

	_, err := svc.Generate(context.Background(), pipeline.GenerateRequest{})
	assert.True(t, eris.Is(err, pipeline.ErrValidation))
	assert.Zero(t, st.saves)
}

func TestService_SetStatus(t *testing.T) {
	st := seedStore(model.Lead{ID: "l1", CompanyName: "Acme", Status: model.StatusNew})
	svc := NewService(st, nil, nil)

	require.NoError(t, svc.SetStatus(context.Background(), "l1", model.StatusQualified))
	assert.Equal(t, model.StatusQualified, st.leads[0].Status)

	err := svc.SetStatus(context.Background(), "l1", model.LeadStatus("bogus"))
	require.Error(t, err)
	assert.True(t, eris.Is(err, ErrInvalidStatus))
	assert.Equal(t, model.StatusQualified, st.leads[0].Status)

	err = svc.SetStatus(context.Background(), "missing", model.StatusNew)
	assert.True(t, eris.Is(err, ErrLeadNotFound))
}

func TestService_ToggleSave(t *testing.T) {
	st := seedStore(model.Lead{ID: "l1", CompanyName: "Acme"})
	svc := NewService(st, nil, nil)

	saved, err := svc.ToggleSave(context.Background(), "l1")
	require.NoError(t, err)
	assert.True(t, saved)

	saved, err = svc.ToggleSave(context.Background(), "l1")
	require.NoError(t, err)
	assert.False(t, saved)
}

func TestService_Notes(t *testing.T) {
	st := seedStore(model.Lead{ID: "l1", CompanyName: "Acme"})
	svc := NewService(st, nil, nil)
	ctx := context.Background()

	note, err := svc.AddNote(ctx, "l1", "called reception")
	require.NoError(t, err)
	assert.NotEmpty(t, note.ID)
	require.Len(t, st.leads[0].Notes, 1)

	require.NoError(t, svc.UpdateNote(ctx, "l1", note.ID, "left a message"))
	assert.Equal(t, "left a message", st.leads[0].Notes[0].Content)

	err = svc.UpdateNote(ctx, "l1", "missing", "x")
	assert.True(t, eris.Is(err, ErrNoteNotFound))

	require.NoError(t, svc.DeleteNote(ctx, "l1", note.ID))
	assert.Empty(t, st.leads[0].Notes)
}

func TestService_Notes_EmptyContent(t *testing.T) {
	st := seedStore(model.Lead{ID: "l1", CompanyName: "Acme"})
	svc := NewService(st, nil, nil)

	_, err := svc.AddNote(context.Background(), "l1", "   ")
	assert.True(t, eris.Is(err, ErrEmptyContent))
	assert.Zero(t, st.saves)
}

func TestService_Tasks(t *testing.T) {
	st := seedStore(model.Lead{ID: "l1", CompanyName: "Acme"})
	svc := NewService(st, nil, nil)
	ctx := context.Background()

	task, err := svc.AddTask(ctx, "l1", "send samples", "2026-09-15")
	require.NoError(t, err)
	assert.Equal(t, "2026-09-15", task.DueDate)

	done, err := svc.ToggleTask(ctx, "l1", task.ID)
	require.NoError(t, err)
	assert.True(t, done)
	assert.True(t, st.leads[0].Tasks[0].IsCompleted)

	require.NoError(t, svc.DeleteTask(ctx, "l1", task.ID))
	assert.Empty(t, st.leads[0].Tasks)
}

func TestService_AddTask_InvalidDueDate(t *testing.T) {
	svc := NewService(seedStore(model.Lead{ID: "l1"}), nil, nil)

	_, err := svc.AddTask(context.Background(), "l1", "call", "next tuesday")
	require.Error(t, err)
}

func TestService_Clear(t *testing.T) {
	st := seedStore(
		model.Lead{ID: "l1", CompanyName: "Acme", IsSaved: true},
		model.Lead{ID: "l2", CompanyName: "Globex"},
		model.Lead{ID: "l3", CompanyName: "Initech"},
	)
	svc := NewService(st, nil, nil)
	ctx := context.Background()

	removed, err := svc.ClearUnsaved(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, removed)
	require.Len(t, st.leads, 1)
	assert.Equal(t, "l1", st.leads[0].ID)

	require.NoError(t, svc.ClearAll(ctx))
	assert.Empty(t, st.leads)
}

func TestService_BackupRoundTrip(t *testing.T) {
	st := seedStore(model.Lead{
		ID: "l1", CompanyName: "Acme", Industry: "Robotics", Location: "Austin",
		Summary: "Robots.", ReasonWhy: "Signals.", PotentialNeeds: []string{},
		KeyContacts: []string{}, Status: model.StatusNew,
		Notes: []model.Note{}, Tasks: []model.Task{},
	})
	svc := NewService(st, nil, nil)
	ctx := context.Background()

	data, err := svc.ExportBackup(ctx)
	require.NoError(t, err)

	require.NoError(t, svc.ClearAll(ctx))
	restored, err := svc.Restore(ctx, data)
	require.NoError(t, err)
	require.Len(t, restored, 1)
	assert.Equal(t, "l1", restored[0].ID)
}

func TestService_Restore_InvalidLeavesStateUntouched(t *testing.T) {
	st := seedStore(model.Lead{ID: "l1", CompanyName: "Acme"})
	svc := NewService(st, nil, nil)

	_, err := svc.Restore(context.Background(), []byte(`{"not":"an array"}`))
	require.Error(t, err)
	require.Len(t, st.leads, 1)
}

func TestService_SweepNotifications(t *testing.T) {
	yesterday := time.Now().UTC().AddDate(0, 0, -1).Format("2006-01-02")
	st := seedStore(model.Lead{
		ID: "l1", CompanyName: "Acme",
		Tasks: []model.Task{{ID: "t1", Content: "call back", DueDate: yesterday}},
	})
	svc := NewService(st, nil, nil)

	res, err := svc.SweepNotifications(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Overdue)
	require.Len(t, res.New, 1)
	assert.False(t, st.lastCheck.IsZero())
}

func TestService_SweepNotifications_EmptyCollection(t *testing.T) {
	st := seedStore()
	svc := NewService(st, nil, nil)

	res, err := svc.SweepNotifications(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, res.New)
	// No sweep ran, so the check time is not advanced.
	assert.True(t, st.lastCheck.IsZero())
}
