package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/yaklabco/gobiome/pkg/analyzer"
)

type rulesFlags struct {
	format      string
	group       string
	recommended bool
}

const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

// ruleInfo represents a rule in JSON and YAML output.
type ruleInfo struct {
	Category    string   `json:"category" yaml:"category"`
	Group       string   `json:"group" yaml:"group"`
	Name        string   `json:"name" yaml:"name"`
	Language    string   `json:"language,omitempty" yaml:"language,omitempty"`
	Recommended bool     `json:"recommended" yaml:"recommended"`
	Severity    string   `json:"severity" yaml:"severity"`
	Fix         string   `json:"fix" yaml:"fix"`
	Description string   `json:"description" yaml:"description"`
	Sources     []string `json:"sources,omitempty" yaml:"sources,omitempty"`
}

func newRuleInfo(meta analyzer.RuleMetadata) ruleInfo {
	info := ruleInfo{
		Category:    meta.Category(),
		Group:       meta.Group,
		Name:        meta.Name,
		Language:    meta.Language,
		Recommended: meta.Recommended,
		Severity:    string(meta.Severity),
		Fix:         meta.Fix.String(),
		Description: meta.Description,
	}
	for _, src := range meta.Sources {
		info.Sources = append(info.Sources, src.Plugin+"/"+src.Name)
	}
	return info
}

func newRulesCommand() *cobra.Command {
	flags := &rulesFlags{}

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List available lint rules and assist actions",
		Long: `List the lint rules and assist actions with their group, whether they are
recommended, the kind of fix they offer and a short description.

Examples:
  gobiome rules
  gobiome rules --group suspicious
  gobiome rules --recommended --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var infos []ruleInfo
			for _, rule := range analyzer.DefaultRegistry.Rules() {
				meta := rule.Metadata()
				if flags.group != "" && meta.Group != flags.group {
					continue
				}
				if flags.recommended && !meta.Recommended {
					continue
				}
				infos = append(infos, newRuleInfo(meta))
			}
			slices.SortFunc(infos, func(a, b ruleInfo) int { return strings.Compare(a.Category, b.Category) })

			out := cmd.OutOrStdout()
			switch flags.format {
			case formatJSON:
				return outputRulesJSON(out, infos)
			case formatYAML:
				return outputRulesYAML(out, infos)
			case formatText:
				return outputRulesText(out, infos)
			default:
				return usageError(fmt.Errorf("invalid format %q: must be text, json or yaml", flags.format))
			}
		},
	}

	cmd.Flags().StringVar(&flags.format, "format", formatText, "output format: text, json, yaml")
	cmd.Flags().StringVar(&flags.group, "group", "", "only list the rules of this group")
	cmd.Flags().BoolVar(&flags.recommended, "recommended", false, "only list recommended rules")

	return cmd
}

// outputRulesText prints an aligned table of rules.
func outputRulesText(w io.Writer, infos []ruleInfo) error {
	if len(infos) == 0 {
		_, err := fmt.Fprintln(w, "No rules match.")
		return err
	}

	header := [4]string{"RULE", "RECOMMENDED", "FIX", "DESCRIPTION"}
	widths := [3]int{}
	for i := range widths {
		widths[i] = runewidth.StringWidth(header[i])
	}
	rows := make([][4]string, 0, len(infos))
	for _, info := range infos {
		recommended := ""
		if info.Recommended {
			recommended = "✓"
		}
		fix := info.Fix
		if fix == "none" {
			fix = "-"
		}
		row := [4]string{info.Category, recommended, fix, info.Description}
		for i := range widths {
			widths[i] = max(widths[i], runewidth.StringWidth(row[i]))
		}
		rows = append(rows, row)
	}

	var b strings.Builder
	writeRow := func(row [4]string) {
		for i, width := range widths {
			b.WriteString(runewidth.FillRight(row[i], width))
			b.WriteString("  ")
		}
		b.WriteString(row[3])
		b.WriteByte('\n')
	}
	writeRow(header)
	for _, row := range rows {
		writeRow(row)
	}
	fmt.Fprintf(&b, "\n%d rules\n", len(rows))

	_, err := io.WriteString(w, b.String())
	return err
}

// outputRulesJSON outputs rules as a JSON array.
func outputRulesJSON(w io.Writer, infos []ruleInfo) error {
	if infos == nil {
		infos = []ruleInfo{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(infos); err != nil {
		return fmt.Errorf("encoding rules: %w", err)
	}
	return nil
}

// outputRulesYAML outputs rules as a YAML sequence.
func outputRulesYAML(w io.Writer, infos []ruleInfo) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(infos); err != nil {
		return fmt.Errorf("encoding rules: %w", err)
	}
	return enc.Close()
}
