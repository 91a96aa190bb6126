package configloader

import "github.com/yaklabco/gobiome/pkg/config"

// mergeDocuments overlays a decoded configuration file onto base:
//   - Objects: deep merge, with override's members taking precedence
//   - Arrays and scalars: override replaces base entirely
//   - Members absent from override keep their value in base
//
// Neither argument is modified.
func mergeDocuments(base, override map[string]any) map[string]any {
	result := make(map[string]any, len(base)+len(override))
	for key, val := range base {
		result[key] = val
	}
	for key, val := range override {
		baseObj, baseIsObj := result[key].(map[string]any)
		overObj, overIsObj := val.(map[string]any)
		if baseIsObj && overIsObj {
			result[key] = mergeDocuments(baseObj, overObj)
			continue
		}
		result[key] = val
	}
	return result
}

// merge applies the settings given on the command line onto base.
// The merge follows these rules:
//   - Scalar values: override overwrites base if override is non-zero
//   - Pointers: override overwrites base if non-nil
//   - Slices: override replaces base entirely if non-nil
//   - Booleans without a pointer can only be switched on
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := *base

	if override.Format != "" {
		result.Format = override.Format
	}
	if override.DiagnosticLevel != "" {
		result.DiagnosticLevel = override.DiagnosticLevel
	}
	if override.MaxDiagnostics != 0 {
		result.MaxDiagnostics = override.MaxDiagnostics
	}
	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}
	if override.Since != "" {
		result.Since = override.Since
	}

	result.Write = result.Write || override.Write
	result.Unsafe = result.Unsafe || override.Unsafe
	result.ErrorOnWarnings = result.ErrorOnWarnings || override.ErrorOnWarnings
	result.Changed = result.Changed || override.Changed
	result.Staged = result.Staged || override.Staged

	if override.Only != nil {
		result.Only = override.Only
	}
	if override.Skip != nil {
		result.Skip = override.Skip
	}

	// Files
	if override.Files.MaxSize != 0 {
		result.Files.MaxSize = override.Files.MaxSize
	}
	if override.Files.IgnoreUnknown != nil {
		result.Files.IgnoreUnknown = override.Files.IgnoreUnknown
	}

	// VCS
	if override.VCS.Enabled != nil {
		result.VCS.Enabled = override.VCS.Enabled
	}
	if override.VCS.ClientKind != "" {
		result.VCS.ClientKind = override.VCS.ClientKind
	}
	if override.VCS.UseIgnoreFile != nil {
		result.VCS.UseIgnoreFile = override.VCS.UseIgnoreFile
	}
	if override.VCS.Root != "" {
		result.VCS.Root = override.VCS.Root
	}
	if override.VCS.DefaultBranch != "" {
		result.VCS.DefaultBranch = override.VCS.DefaultBranch
	}

	// Tool switches
	if override.Formatter.Enabled != nil {
		result.Formatter.Enabled = override.Formatter.Enabled
	}
	if override.Linter.Enabled != nil {
		result.Linter.Enabled = override.Linter.Enabled
	}
	if override.Assist.Enabled != nil {
		result.Assist.Enabled = override.Assist.Enabled
	}

	// Formatter layout
	if override.Formatter.IndentStyle != "" {
		result.Formatter.IndentStyle = override.Formatter.IndentStyle
	}
	if override.Formatter.IndentWidth != 0 {
		result.Formatter.IndentWidth = override.Formatter.IndentWidth
	}
	if override.Formatter.LineWidth != 0 {
		result.Formatter.LineWidth = override.Formatter.LineWidth
	}
	if override.Formatter.LineEnding != "" {
		result.Formatter.LineEnding = override.Formatter.LineEnding
	}

	return &result
}
