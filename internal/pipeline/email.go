package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/sells-group/leadgen-cli/internal/model"
	"github.com/sells-group/leadgen-cli/pkg/anthropic"
)

const emailSystemPrompt = `You are a sales assistant specialized in writing B2B prospecting emails for the electronics industry.`

// DraftOutreachEmail generates a prospecting email draft for one lead. The
// reply is returned verbatim; no parsing is applied.
func (g *Generator) DraftOutreachEmail(ctx context.Context, l model.Lead) (string, error) {
	resp, err := g.client.CreateMessage(ctx, anthropic.MessageRequest{
		Model:     g.model,
		MaxTokens: g.maxTokens,
		System:    anthropic.BuildCachedSystemBlocks(emailSystemPrompt),
		Messages: []anthropic.Message{
			{Role: "user", Content: buildEmailPrompt(l)},
		},
	})
	if err != nil {
		return "", err
	}
	resp.Usage.LogCost(g.model, "outreach_email")

	return extractText(resp), nil
}

func buildEmailPrompt(l model.Lead) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Write a concise, professional prospecting email to %q.\n\n", l.CompanyName)
	b.WriteString("Lead information:\n")
	fmt.Fprintf(&b, "- Company: %s\n", l.CompanyName)
	fmt.Fprintf(&b, "- Sector: %s\n", l.Industry)
	fmt.Fprintf(&b, "- Summary: %s\n", l.Summary)
	fmt.Fprintf(&b, "- Potential needs: %s\n", strings.Join(l.PotentialNeeds, ", "))
	fmt.Fprintf(&b, "- Rationale: %s\n", l.ReasonWhy)

	b.WriteString(`
Email instructions:
1. Subject: short and attention-grabbing.
2. Greeting: address the ` + fmt.Sprintf("%q", strings.Join(l.KeyContacts, ", ")) + ` contacts.
3. Body: briefly introduce yourself and your company (a supplier of high-quality electronic components), mention something specific about the lead based on the information above, connect their potential needs to your products, and propose a clear next step (a short 15-minute call).
4. Closing: professional sign-off. Keep the tone friendly but professional.`)

	return b.String()
}
