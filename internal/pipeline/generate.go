// Package pipeline turns free-text search criteria into sanitized lead
// records via the Anthropic API, and drafts outreach emails for single leads.
package pipeline

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/sells-group/leadgen-cli/internal/lead"
	"github.com/sells-group/leadgen-cli/internal/model"
	"github.com/sells-group/leadgen-cli/pkg/anthropic"
)

const generateSystemPrompt = `You are a B2B lead-generation specialist for the electronic components industry. Use the search criteria to identify companies that would be excellent customers and return detailed, factual information about them. Respond strictly with the requested JSON, no prose. When providing latitude and longitude, be as precise as the company address allows.`

const maxGeneratedLeads = 50

// Coordinates is an optional latitude/longitude search hint.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// GenerateRequest holds the user-entered search criteria.
type GenerateRequest struct {
	Sector      string       `json:"sector"`
	Location    string       `json:"location"`
	CompanyName string       `json:"company_name,omitempty"` // focus the search on one company when set
	Coordinates *Coordinates `json:"coordinates,omitempty"`
}

// Validate checks that the criteria are sufficient to run a generation.
func (r GenerateRequest) Validate() error {
	if strings.TrimSpace(r.CompanyName) != "" {
		return nil
	}
	if strings.TrimSpace(r.Sector) == "" || strings.TrimSpace(r.Location) == "" {
		return ErrValidation
	}
	return nil
}

// Generator produces lead records from search criteria.
type Generator struct {
	client    anthropic.Client
	model     string
	maxTokens int64
}

// NewGenerator creates a Generator using the given client and model ID.
func NewGenerator(client anthropic.Client, modelID string, maxTokens int64) *Generator {
	if maxTokens <= 0 {
		maxTokens = 8192
	}
	return &Generator{client: client, model: modelID, maxTokens: maxTokens}
}

// Generate runs one generation call and returns sanitized leads with fresh
// ids, status New and isSaved false. The reply text is tolerated as free text
// wrapping a JSON array; anything unparsable is ErrMalformedResponse.
func (g *Generator) Generate(ctx context.Context, req GenerateRequest) ([]model.Lead, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	resp, err := g.client.CreateMessage(ctx, anthropic.MessageRequest{
		Model:     g.model,
		MaxTokens: g.maxTokens,
		System:    anthropic.BuildCachedSystemBlocks(generateSystemPrompt),
		Messages: []anthropic.Message{
			{Role: "user", Content: buildGeneratePrompt(req)},
		},
	})
	if err != nil {
		return nil, err
	}
	resp.Usage.LogCost(g.model, "generate")

	raws, err := ExtractLeadArray(extractText(resp))
	if err != nil {
		return nil, err
	}

	leads := lead.SanitizeAll(raws)
	for i := range leads {
		leads[i].ID = lead.NewID("lead")
		leads[i].Status = model.StatusNew
		leads[i].IsSaved = false
	}

	zap.L().Info("leads generated",
		zap.Int("count", len(leads)),
		zap.String("sector", req.Sector),
		zap.String("location", req.Location),
	)
	return leads, nil
}

// buildGeneratePrompt assembles the user prompt from the search criteria.
func buildGeneratePrompt(req GenerateRequest) string {
	var b strings.Builder

	if company := strings.TrimSpace(req.CompanyName); company != "" {
		fmt.Fprintf(&b, "Focus the search on the specific company %q. Investigate it deeply and return one complete result.\n", company)
	} else {
		fmt.Fprintf(&b, "Generate a list of up to %d companies operating in the %q sector.\n", maxGeneratedLeads, strings.TrimSpace(req.Sector))
	}

	if loc := strings.TrimSpace(req.Location); loc != "" {
		fmt.Fprintf(&b, "Restrict the search to the region of %q.\n", loc)
	}
	if req.Coordinates != nil {
		fmt.Fprintf(&b, "The user is located near latitude %.5f, longitude %.5f; prefer companies close to there.\n",
			req.Coordinates.Latitude, req.Coordinates.Longitude)
	}

	b.WriteString(`
Prioritize companies showing buying signals: recent product launches, trade fair appearances, investments, or open roles such as hardware engineer, firmware developer, or technical buyer. Include small and mid-size companies, not only large ones. For each company also identify key departments or roles to contact.

The response MUST be a valid JSON array, and nothing else. Do not include any explanatory text before or after the JSON.

For each company provide these fields in the JSON object:
- company_name: company name.
- industry: sector the company operates in.
- location: city and state.
- address: full physical address, if available.
- latitude: approximate latitude (number).
- longitude: approximate longitude (number).
- phone: main phone number, if available.
- email: general contact email, if available.
- website: official website URL, if available.
- summary: a short summary of the company and its products.
- reason_why: a concise analysis of why this company is a good lead, mentioning which buying signal surfaced it, if any.
- potential_needs: a JSON array of specific electronic component types the company likely needs.
- key_contacts: a JSON array of strings with key departments or roles to contact (e.g. ["Engineering", "Purchasing"]).`)

	return b.String()
}

// extractText concatenates all text content blocks from a message response.
func extractText(resp *anthropic.MessageResponse) string {
	if resp == nil {
		return ""
	}
	var parts []string
	for _, block := range resp.Content {
		if block.Text != "" {
			parts = append(parts, block.Text)
		}
	}
	return strings.Join(parts, "\n")
}
