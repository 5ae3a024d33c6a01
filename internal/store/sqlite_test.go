package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/leadgen-cli/internal/model"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	st, err := NewSQLite(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() }) //nolint:errcheck
	require.NoError(t, st.Migrate(context.Background()))
	return st
}

func TestSQLite_Leads_EmptyOnFirstLoad(t *testing.T) {
	st := newTestSQLiteStore(t)

	leads, err := st.LoadLeads(context.Background())
	require.NoError(t, err)
	assert.Empty(t, leads)
}

func TestSQLite_Leads_SaveAndLoad(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	in := []model.Lead{
		{
			ID:             "lead-1",
			CompanyName:    "Acme",
			Industry:       "Robotics",
			Location:       "Austin, TX",
			Summary:        "Builds robots.",
			ReasonWhy:      "Buying signals.",
			PotentialNeeds: []string{"MCUs"},
			KeyContacts:    []string{"Engineering"},
			Status:         model.StatusContacted,
			IsSaved:        true,
			Notes:          []model.Note{{ID: "note-1", Content: "hi", Date: "2026-08-01T00:00:00Z"}},
			Tasks:          []model.Task{{ID: "task-1", Content: "call", DueDate: "2026-09-01"}},
		},
	}
	require.NoError(t, st.SaveLeads(ctx, in))

	out, err := st.LoadLeads(ctx)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, in[0], out[0])
}

func TestSQLite_Leads_Overwrite(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	require.NoError(t, st.SaveLeads(ctx, []model.Lead{{ID: "lead-1", CompanyName: "Acme"}}))
	require.NoError(t, st.SaveLeads(ctx, []model.Lead{{ID: "lead-2", CompanyName: "Globex"}}))

	out, err := st.LoadLeads(ctx)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "lead-2", out[0].ID)
}

func TestSQLite_Leads_NilClears(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	require.NoError(t, st.SaveLeads(ctx, []model.Lead{{ID: "lead-1", CompanyName: "Acme"}}))
	require.NoError(t, st.SaveLeads(ctx, nil))

	out, err := st.LoadLeads(ctx)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestSQLite_Leads_CorruptStateDegradesToEmpty(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	require.NoError(t, st.setValue(ctx, leadsKey, "{corrupt"))

	out, err := st.LoadLeads(ctx)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestSQLite_Leads_LoadSanitizes(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	// A collection written by an older release with drifted fields.
	require.NoError(t, st.setValue(ctx, leadsKey,
		`[{"id":"lead-1","companyName":"Acme","status":"contactado","keyContacts":"Purchasing"}]`))

	out, err := st.LoadLeads(ctx)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "Acme", out[0].CompanyName)
	assert.Equal(t, model.StatusContacted, out[0].Status)
	assert.Equal(t, []string{"Purchasing"}, out[0].KeyContacts)
}

func TestSQLite_NotificationCheck(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	got, err := st.GetLastNotificationCheck(ctx)
	require.NoError(t, err)
	assert.True(t, got.IsZero())

	at := time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)
	require.NoError(t, st.SetLastNotificationCheck(ctx, at))

	got, err = st.GetLastNotificationCheck(ctx)
	require.NoError(t, err)
	assert.True(t, at.Equal(got))
}

func TestSQLite_NotificationCheck_DriftedValueUnset(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	require.NoError(t, st.setValue(ctx, notifyCheckKey, "yesterday-ish"))

	got, err := st.GetLastNotificationCheck(ctx)
	require.NoError(t, err)
	assert.True(t, got.IsZero())
}
