// Package model defines the canonical project record and the envelopes
// produced by the parsing pipeline.
package model

// Priority represents the urgency level attached to a project.
type Priority string

// Valid priority values.
const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Status represents the lifecycle stage of a project.
type Status string

// Valid status values.
const (
	StatusDraft     Status = "draft"
	StatusActive    Status = "active"
	StatusOnHold    Status = "on_hold"
	StatusCompleted Status = "completed"
	StatusArchived  Status = "archived"
)

// ParsedProject is the canonical record extracted from any source.
// Deliverables preserve insertion order because it reflects presentation
// order in the final proposal.
type ParsedProject struct {
	Title           string         `json:"title"`
	ClientName      string         `json:"clientName,omitempty"`
	ClientEmail     string         `json:"clientEmail,omitempty"`
	ClientCompany   string         `json:"clientCompany,omitempty"`
	Description     string         `json:"description"`
	Deliverables    []string       `json:"deliverables,omitempty"`
	EstimatedBudget *float64       `json:"estimatedBudget,omitempty"`
	TimelineDays    *int           `json:"timelineDays,omitempty"`
	Industry        string         `json:"industry,omitempty"`
	Priority        Priority       `json:"priority,omitempty"`
	Status          Status         `json:"status,omitempty"`
	Tags            []string       `json:"tags,omitempty"`
	CustomFields    map[string]any `json:"customFields,omitempty"`
}

// SetCustomField attaches an auxiliary value without polluting the primary
// schema. The validation outcome is stored under the "validation" key.
func (p *ParsedProject) SetCustomField(key string, value any) {
	if p.CustomFields == nil {
		p.CustomFields = make(map[string]any, 1)
	}
	p.CustomFields[key] = value
}
