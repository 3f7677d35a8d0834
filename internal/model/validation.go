package model

// ValidationResult is the per-record validation outcome. Errors are blocking
// (the record is still returned, but IsValid is false); warnings never block.
type ValidationResult struct {
	IsValid    bool     `json:"isValid"`
	Errors     []string `json:"errors,omitempty"`
	Warnings   []string `json:"warnings,omitempty"`
	Confidence float64  `json:"confidence"`
}
