package reporter

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/yaklabco/gobiome/pkg/analysis"
	"github.com/yaklabco/gobiome/pkg/diagnostic"
)

// SARIF version used by this reporter.
const sarifVersion = "2.1.0"

// SARIF schema URI.
const sarifSchemaURI = "https://raw.githubusercontent.com/oasis-tcs/sarif-spec/master/Schemata/sarif-schema-2.1.0.json"

// SARIFOutput represents the root SARIF document.
type SARIFOutput struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []SARIFRun `json:"runs"`
}

// SARIFRun represents a single analysis run.
type SARIFRun struct {
	Tool    SARIFTool     `json:"tool"`
	Results []SARIFResult `json:"results"`
}

// SARIFTool describes the analysis tool.
type SARIFTool struct {
	Driver SARIFDriver `json:"driver"`
}

// SARIFDriver contains tool metadata and rules.
type SARIFDriver struct {
	Name           string      `json:"name"`
	Version        string      `json:"version"`
	InformationURI string      `json:"informationUri"`
	Rules          []SARIFRule `json:"rules"`
}

// SARIFRule describes a diagnostic category.
type SARIFRule struct {
	ID            string           `json:"id"`
	DefaultConfig *SARIFRuleConfig `json:"defaultConfiguration,omitempty"`
	Properties    map[string]any   `json:"properties,omitempty"`
}

// SARIFRuleConfig contains rule configuration.
type SARIFRuleConfig struct {
	Level string `json:"level"`
}

// SARIFResult represents a single diagnostic result.
type SARIFResult struct {
	RuleID    string          `json:"ruleId"`
	Level     string          `json:"level"`
	Message   SARIFMessage    `json:"message"`
	Locations []SARIFLocation `json:"locations"`
}

// SARIFMessage contains the result message.
type SARIFMessage struct {
	Text string `json:"text"`
}

// SARIFLocation describes a code location.
type SARIFLocation struct {
	PhysicalLocation SARIFPhysicalLocation `json:"physicalLocation"`
}

// SARIFPhysicalLocation contains file path and region.
type SARIFPhysicalLocation struct {
	ArtifactLocation SARIFArtifactLocation `json:"artifactLocation"`
	Region           SARIFRegion           `json:"region"`
}

// SARIFArtifactLocation contains the file URI.
type SARIFArtifactLocation struct {
	URI string `json:"uri"`
}

// SARIFRegion describes the affected text region.
type SARIFRegion struct {
	StartLine   int `json:"startLine"`
	StartColumn int `json:"startColumn,omitempty"`
	EndLine     int `json:"endLine,omitempty"`
	EndColumn   int `json:"endColumn,omitempty"`
	ByteOffset  int `json:"byteOffset"`
	ByteLength  int `json:"byteLength"`
}

// SARIFRenderer formats reports as SARIF.
type SARIFRenderer struct {
	opts Options
	out  io.Writer
}

// NewSARIFRenderer creates a new SARIF renderer.
func NewSARIFRenderer(opts Options) *SARIFRenderer {
	return &SARIFRenderer{opts: opts, out: opts.Writer}
}

// Render implements Renderer.
func (r *SARIFRenderer) Render(_ context.Context, report *analysis.Report) error {
	encoder := json.NewEncoder(r.out)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(r.buildOutput(report)); err != nil {
		return fmt.Errorf("encode SARIF: %w", err)
	}
	return nil
}

func (r *SARIFRenderer) buildOutput(report *analysis.Report) *SARIFOutput {
	version := r.opts.Version
	if version == "" {
		version = "dev"
	}
	run := SARIFRun{
		Tool: SARIFTool{Driver: SARIFDriver{
			Name:           "gobiome",
			Version:        version,
			InformationURI: "https://github.com/yaklabco/gobiome",
			Rules:          make([]SARIFRule, 0),
		}},
		Results: make([]SARIFResult, 0, len(report.Diagnostics)),
	}

	rulesSeen := make(map[string]bool)
	for _, diag := range report.Diagnostics {
		level := severityToSARIFLevel(diag.Severity)
		if !rulesSeen[diag.Category] {
			rule := SARIFRule{ID: diag.Category, DefaultConfig: &SARIFRuleConfig{Level: level}}
			if source := ruleSource(diag.Category); source != "" {
				rule.Properties = map[string]any{"source": source}
			}
			run.Tool.Driver.Rules = append(run.Tool.Driver.Rules, rule)
			rulesSeen[diag.Category] = true
		}

		loc := diag.Location
		run.Results = append(run.Results, SARIFResult{
			RuleID:  diag.Category,
			Level:   level,
			Message: SARIFMessage{Text: diag.Message},
			Locations: []SARIFLocation{{
				PhysicalLocation: SARIFPhysicalLocation{
					ArtifactLocation: SARIFArtifactLocation{URI: loc.Path},
					Region: SARIFRegion{
						StartLine:   max(loc.Start.Line, 1),
						StartColumn: loc.Start.Column,
						EndLine:     loc.End.Line,
						EndColumn:   loc.End.Column,
						ByteOffset:  loc.Range.Start,
						ByteLength:  loc.Range.Len(),
					},
				},
			}},
		})
	}

	return &SARIFOutput{Schema: sarifSchemaURI, Version: sarifVersion, Runs: []SARIFRun{run}}
}

// severityToSARIFLevel converts a severity to a SARIF level.
func severityToSARIFLevel(severity diagnostic.Severity) string {
	switch severity {
	case diagnostic.SeverityFatal, diagnostic.SeverityError:
		return "error"
	case diagnostic.SeverityWarning:
		return "warning"
	default:
		return "note"
	}
}
