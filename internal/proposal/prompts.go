package proposal

import (
	"fmt"
	"strings"

	"github.com/propflow/propflow/internal/model"
)

const systemPrompt = `You are a business proposal writer. You MUST respond with ONLY a valid JSON object. Do not include any explanatory text, markdown formatting, or commentary before or after the JSON. Start your response directly with { and end with }.

The JSON object must have this shape:
{
  "title": string,
  "summary": string,
  "sections": [{"heading": string, "body": string}],
  "estimatedBudget": number,
  "timelineDays": number
}`

// buildUserPrompt renders a parsed project into the generation prompt.
func buildUserPrompt(p model.ParsedProject) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Write a business proposal for the following project.\n\n")
	fmt.Fprintf(&b, "Project: %s\n", p.Title)
	if p.ClientName != "" {
		fmt.Fprintf(&b, "Client: %s\n", p.ClientName)
	}
	if p.ClientCompany != "" {
		fmt.Fprintf(&b, "Company: %s\n", p.ClientCompany)
	}
	if p.Industry != "" {
		fmt.Fprintf(&b, "Industry: %s\n", p.Industry)
	}
	fmt.Fprintf(&b, "Description: %s\n", p.Description)

	if len(p.Deliverables) > 0 {
		b.WriteString("Deliverables:\n")
		for _, d := range p.Deliverables {
			fmt.Fprintf(&b, "- %s\n", d)
		}
	}
	if p.EstimatedBudget != nil {
		fmt.Fprintf(&b, "Budget: %.2f\n", *p.EstimatedBudget)
	}
	if p.TimelineDays != nil {
		fmt.Fprintf(&b, "Timeline: %d days\n", *p.TimelineDays)
	}

	b.WriteString("\nKeep section bodies concise and client-facing.")

	return b.String()
}
