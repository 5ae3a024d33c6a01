package pipeline

import (
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractLeadArray_BareArray(t *testing.T) {
	items, err := ExtractLeadArray(`[{"company_name":"Acme"},{"company_name":"Globex"}]`)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Acme", items[0]["company_name"])
}

func TestExtractLeadArray_FencedBlock(t *testing.T) {
	text := "Here are the leads you asked for:\n```json\n[{\"company_name\":\"Acme\"}]\n```\nLet me know if you need more."
	items, err := ExtractLeadArray(text)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Acme", items[0]["company_name"])
}

func TestExtractLeadArray_BracketSubstring(t *testing.T) {
	text := `Sure! [{"company_name":"Acme"}] Hope that helps.`
	items, err := ExtractLeadArray(text)
	require.NoError(t, err)
	require.Len(t, items, 1)
}

func TestExtractLeadArray_FenceWinsOverBrackets(t *testing.T) {
	// Prose brackets outside the fence must not distract the parser.
	text := "Options [a] and [b]:\n```json\n[{\"company_name\":\"Acme\"}]\n```"
	items, err := ExtractLeadArray(text)
	require.NoError(t, err)
	require.Len(t, items, 1)
}

func TestExtractLeadArray_MalformedFence(t *testing.T) {
	// A fence that does not parse is an error, not a fallthrough to other
	// candidates.
	text := "```json\n{not valid json]\n```\n[{\"company_name\":\"Acme\"}]"
	_, err := ExtractLeadArray(text)
	require.Error(t, err)
	assert.True(t, eris.Is(err, ErrMalformedResponse))
}

func TestExtractLeadArray_NonArray(t *testing.T) {
	_, err := ExtractLeadArray(`{"company_name":"Acme"}`)
	require.Error(t, err)
	assert.True(t, eris.Is(err, ErrMalformedResponse))
}

func TestExtractLeadArray_Garbage(t *testing.T) {
	_, err := ExtractLeadArray("I could not find any companies matching that.")
	require.Error(t, err)
	assert.True(t, eris.Is(err, ErrMalformedResponse))
}

func TestExtractLeadArray_DropsNonObjectElements(t *testing.T) {
	items, err := ExtractLeadArray(`[{"company_name":"Acme"}, "stray", 42, null]`)
	require.NoError(t, err)
	require.Len(t, items, 1)
}

func TestExtractLeadArray_EmptyArray(t *testing.T) {
	items, err := ExtractLeadArray("[]")
	require.NoError(t, err)
	assert.Empty(t, items)
}
