// Package parser routes opaque payloads to source-specific extractors and
// assembles validated, scored project records into a ParseResponse envelope.
// The pipeline is stateless between calls: records pass through normalization
// and validation by value, and output order matches input order.
package parser

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/propflow/propflow/internal/language"
	"github.com/propflow/propflow/internal/model"
	"github.com/propflow/propflow/internal/validation"
)

// extractor produces zero or more candidate records from a payload. A single
// malformed item is skipped, never fatal; a returned error means the whole
// payload was unusable.
type extractor interface {
	Name() string
	Extract(ctx context.Context, payload model.Payload, pctx model.ParsingContext) ([]model.ParsedProject, error)
}

// Options tune a single Parse call.
type Options struct {
	Language language.Language
	MaxItems int
}

// Parser is the source router. Safe for concurrent use.
type Parser struct {
	mapper     *language.Mapper
	extractors map[model.Source]extractor
}

// New creates a Parser with the built-in field-mapping tables.
func New() *Parser {
	return NewWithMapper(language.NewMapper())
}

// NewWithMapper creates a Parser using the given header mapper, which may
// carry user-supplied synonym overrides.
func NewWithMapper(mapper *language.Mapper) *Parser {
	return &Parser{
		mapper: mapper,
		extractors: map[model.Source]extractor{
			model.SourceDatabaseExport: &databaseExtractor{},
			model.SourceTabular:        &tabularExtractor{mapper: mapper},
			model.SourceRecordStore:    &recordStoreExtractor{},
			model.SourceCardBoard:      &cardBoardExtractor{},
			model.SourceFreeText:       &freeTextExtractor{},
			model.SourceGenericWebhook: &webhookExtractor{},
		},
	}
}

// Parse runs the extraction pipeline for one payload. Catastrophic failures
// (unsupported source, malformed required JSON) degrade to Success=false
// with an errors slice; the caller always receives a ParseResponse.
func (p *Parser) Parse(ctx context.Context, source model.Source, payload model.Payload, opts Options) model.ParseResponse {
	parsedAt := time.Now().UTC()

	ext, ok := p.extractors[source]
	if !ok {
		return failureResponse(source, parsedAt, fmt.Sprintf("unsupported source: %q", source))
	}

	lang := opts.Language
	if lang == "" {
		lang = detectPayloadLanguage(payload)
	}

	pctx := model.ParsingContext{
		Source:   source,
		Language: string(lang),
	}

	candidates, err := ext.Extract(ctx, payload, pctx)
	if err != nil {
		slog.Error("Extraction failed",
			"source", source,
			"extractor", ext.Name(),
			"error", err)
		return failureResponse(source, parsedAt, err.Error())
	}

	projects := make([]model.ParsedProject, 0, len(candidates))
	var confidenceSum float64

	for _, project := range candidates {
		normalizeProject(&project)

		// Records with neither title nor description carry no usable
		// signal and are dropped before validation.
		if strings.TrimSpace(project.Title) == "" && strings.TrimSpace(project.Description) == "" {
			slog.Warn("Skipping record with no title or description",
				"source", source,
				"extractor", ext.Name())
			continue
		}

		result := validation.ValidateProject(project)
		project.SetCustomField("validation", result)
		pruneEmptyDeliverables(&project)

		projects = append(projects, project)
		confidenceSum += result.Confidence

		if opts.MaxItems > 0 && len(projects) >= opts.MaxItems {
			break
		}
	}

	var confidence float64
	if len(projects) > 0 {
		confidence = confidenceSum / float64(len(projects))
	}

	slog.Info("Parsed payload",
		"source", source,
		"language", lang,
		"items", len(projects),
		"confidence", confidence)

	return model.ParseResponse{
		Success:  true,
		Projects: projects,
		Metadata: model.ParseMetadata{
			Source:     source,
			ParsedAt:   parsedAt,
			ItemCount:  len(projects),
			Language:   string(lang),
			Confidence: confidence,
		},
	}
}

// detectPayloadLanguage picks the language from whatever text the payload
// carries, defaulting to English when there is no signal.
func detectPayloadLanguage(payload model.Payload) language.Language {
	if payload.Content != "" {
		return language.Detect(payload.Content).Language
	}
	if len(payload.APIResponse) > 0 {
		return language.Detect(string(payload.APIResponse)).Language
	}
	return language.English
}

// normalizeProject applies text cleanup and name casing before validation.
// Deliverables are trimmed but empty entries are kept so validation can flag
// them; pruneEmptyDeliverables removes them afterwards.
func normalizeProject(p *model.ParsedProject) {
	p.Title = validation.SanitizeText(p.Title)
	p.Description = validation.SanitizeText(p.Description)
	p.ClientName = validation.NormalizeClientName(validation.SanitizeText(p.ClientName))
	p.ClientCompany = validation.NormalizeClientName(validation.SanitizeText(p.ClientCompany))
	p.ClientEmail = strings.ToLower(strings.TrimSpace(p.ClientEmail))
	p.Industry = validation.SanitizeText(p.Industry)

	for i, d := range p.Deliverables {
		p.Deliverables[i] = validation.SanitizeText(d)
	}
	for i, t := range p.Tags {
		p.Tags[i] = strings.TrimSpace(t)
	}
}

// pruneEmptyDeliverables upholds the invariant that returned records carry
// only non-empty trimmed deliverable entries, preserving order.
func pruneEmptyDeliverables(p *model.ParsedProject) {
	if len(p.Deliverables) == 0 {
		return
	}
	kept := p.Deliverables[:0]
	for _, d := range p.Deliverables {
		if d != "" {
			kept = append(kept, d)
		}
	}
	p.Deliverables = kept
}

func failureResponse(source model.Source, parsedAt time.Time, errMsg string) model.ParseResponse {
	return model.ParseResponse{
		Success:  false,
		Projects: []model.ParsedProject{},
		Metadata: model.ParseMetadata{
			Source:   source,
			ParsedAt: parsedAt,
		},
		Errors: []string{errMsg},
	}
}
