package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLeadStatus_IsValid(t *testing.T) {
	for _, s := range ValidStatuses {
		assert.True(t, s.IsValid(), string(s))
	}
	assert.False(t, LeadStatus("archived").IsValid())
	assert.False(t, LeadStatus("").IsValid())
}

func TestLead_JSONFieldNames(t *testing.T) {
	lat := 1.5
	data, err := json.Marshal(Lead{
		ID: "lead-1", CompanyName: "Acme", Status: StatusFollowUp,
		PotentialNeeds: []string{}, KeyContacts: []string{},
		Latitude: &lat, Notes: []Note{}, Tasks: []Task{},
	})
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(data, &m))
	assert.Contains(t, m, "company_name")
	assert.Contains(t, m, "is_saved")
	assert.Contains(t, m, "reason_why")
	assert.Contains(t, m, "latitude")
	// Optional contact fields are omitted when empty.
	assert.NotContains(t, m, "phone")
	assert.NotContains(t, m, "longitude")
}
