package export

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/leadgen-cli/internal/model"
)

func sampleLeads() []model.Lead {
	return []model.Lead{
		{CompanyName: "Zeta Corp", Location: "Dallas, TX", Industry: "Robotics", Status: model.StatusNew},
		{CompanyName: "Acme", Location: "Austin, TX", Industry: "Robotics", KeyContacts: []string{"Engineering", "Purchasing"}, Status: model.StatusQualified},
		{CompanyName: "Globex", Location: "Austin, TX", Industry: "Medical Devices", Status: model.StatusContacted},
		{CompanyName: "Initech", Location: "Austin, TX", Industry: "Robotics", Status: model.StatusNew},
	}
}

func TestRows_GroupingAndOrdering(t *testing.T) {
	rows := Rows(sampleLeads())
	require.Len(t, rows, 4)

	// Locations sorted; industries sorted within; leads keep insertion order.
	assert.Equal(t, "Austin, TX", rows[0][0])
	assert.Equal(t, "Medical Devices", rows[0][1])
	assert.Equal(t, "Globex", rows[0][2])

	// Repeated group cells stay blank.
	assert.Equal(t, "", rows[1][0])
	assert.Equal(t, "Robotics", rows[1][1])
	assert.Equal(t, "Acme", rows[1][2])

	assert.Equal(t, "", rows[2][0])
	assert.Equal(t, "", rows[2][1])
	assert.Equal(t, "Initech", rows[2][2])

	assert.Equal(t, "Dallas, TX", rows[3][0])
	assert.Equal(t, "Zeta Corp", rows[3][2])
}

func TestRows_ContactJoinAndStatus(t *testing.T) {
	rows := Rows(sampleLeads())
	acme := rows[1]
	assert.Equal(t, "Engineering, Purchasing", acme[3])
	assert.Equal(t, "qualified", acme[8])
}

func TestRows_MissingGroupKeys(t *testing.T) {
	rows := Rows([]model.Lead{{CompanyName: "Mystery Co"}})
	require.Len(t, rows, 1)
	assert.Equal(t, "Unknown Location", rows[0][0])
	assert.Equal(t, "Unknown Industry", rows[0][1])
}

func TestRows_Empty(t *testing.T) {
	assert.Empty(t, Rows(nil))
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleLeads()))

	out := buf.Bytes()
	require.True(t, bytes.HasPrefix(out, []byte{0xEF, 0xBB, 0xBF}))

	records, err := csv.NewReader(bytes.NewReader(out[3:])).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 5) // header + 4 leads
	assert.Equal(t, Columns, records[0])
	assert.Equal(t, "Globex", records[1][2])
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, sampleLeads()))
	// XLSX files are zip archives.
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("PK")))
}

func TestFilename(t *testing.T) {
	now := time.Date(2026, 8, 31, 23, 0, 0, 0, time.UTC)
	assert.Equal(t, "leads_export_2026-08-31.csv", Filename(now, "csv"))
	assert.Equal(t, "leads_export_2026-08-31.xlsx", Filename(now, "xlsx"))
}
