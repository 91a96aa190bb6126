package cli

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"text/template"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/yaklabco/gobiome/internal/configloader"
	"github.com/yaklabco/gobiome/internal/ui/pretty"
)

// Command groups of the root help.
const (
	groupProcess = "process"
	groupRules   = "rules"
	groupConfig  = "config"
)

func addCommandGroups(root *cobra.Command) {
	root.AddGroup(
		&cobra.Group{ID: groupProcess, Title: "Process files:"},
		&cobra.Group{ID: groupRules, Title: "Rules:"},
		&cobra.Group{ID: groupConfig, Title: "Configuration:"},
	)
}

// inGroup assigns cmd to a help group.
func inGroup(id string, cmd *cobra.Command) *cobra.Command {
	cmd.GroupID = id
	return cmd
}

type helpStyles struct {
	heading lipgloss.Style
	command lipgloss.Style
	flag    lipgloss.Style
	dim     lipgloss.Style
}

func newHelpStyles(colorEnabled bool) helpStyles {
	if !colorEnabled {
		plain := lipgloss.NewStyle()
		return helpStyles{heading: plain, command: plain, flag: plain, dim: plain}
	}
	return helpStyles{
		heading: lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		command: lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true),
		flag:    lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		dim:     lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

const helpTemplate = `{{with (or .Long .Short)}}{{trimTrailingWhitespaces .}}

{{end}}{{heading "Usage:"}}
{{if .Runnable}}  {{command .UseLine}}
{{end}}{{if .HasAvailableSubCommands}}  {{command .CommandPath}} <command>
{{end}}{{if .HasExample}}
{{heading "Examples:"}}
{{dim .Example}}
{{end}}{{if .HasAvailableSubCommands}}{{$cmds := .Commands}}{{range .Groups}}{{$id := .ID}}
{{heading .Title}}
{{range $cmds}}{{if and (eq .GroupID $id) .IsAvailableCommand}}  {{command (rpad .Name .NamePadding)}} {{.Short}}
{{end}}{{end}}{{end}}{{if not .AllChildCommandsHaveGroup}}
{{heading "Other Commands:"}}
{{range $cmds}}{{if and (eq .GroupID "") .IsAvailableCommand}}  {{command (rpad .Name .NamePadding)}} {{.Short}}
{{end}}{{end}}{{end}}{{end}}{{if .HasAvailableLocalFlags}}
{{heading "Flags:"}}
{{flagUsages .LocalFlags}}
{{end}}{{if .HasAvailableInheritedFlags}}
{{heading "Global Flags:"}}
{{flagUsages .InheritedFlags}}
{{end}}{{if not .HasParent}}
{{heading "Environment:"}}
{{envVars}}
{{end}}{{if .HasAvailableSubCommands}}
Use "{{command (print .CommandPath " <command> --help")}}" for more information about a command.
{{end}}`

// setHelp installs the styled help of root and its subcommands. Colors are
// decided when help is printed, after --color has been parsed.
func setHelp(root *cobra.Command, globals *globalFlags) {
	root.SetHelpFunc(func(cmd *cobra.Command, _ []string) {
		styles := newHelpStyles(pretty.IsColorEnabled(globals.color, cmd.OutOrStdout()))
		tmpl, err := template.New("help").Funcs(helpFuncs(styles)).Parse(helpTemplate)
		if err == nil {
			err = tmpl.Execute(cmd.OutOrStdout(), cmd)
		}
		if err != nil {
			cmd.PrintErrln(fmt.Errorf("render help: %w", err))
		}
	})
}

func helpFuncs(styles helpStyles) template.FuncMap {
	return template.FuncMap{
		"heading":                 styles.heading.Render,
		"command":                 styles.command.Render,
		"dim":                     styles.dim.Render,
		"flagUsages":              func(flags *pflag.FlagSet) string { return flagUsages(flags, styles) },
		"envVars":                 func() string { return envVarUsages(styles) },
		"rpad":                    rpad,
		"trimTrailingWhitespaces": trimTrailingWhitespaces,
	}
}

// flagUsages lists the visible flags of flags, one per line, with their
// descriptions aligned.
func flagUsages(flags *pflag.FlagSet, styles helpStyles) string {
	type row struct{ names, usage string }
	var rows []row
	width := 0
	flags.VisitAll(func(f *pflag.Flag) {
		if f.Hidden {
			return
		}
		names := "    --" + f.Name
		if f.Shorthand != "" {
			names = "-" + f.Shorthand + ", --" + f.Name
		}
		varname, usage := pflag.UnquoteUsage(f)
		if varname != "" {
			names += " " + varname
		}
		if def := defaultValue(f); def != "" {
			usage += " (default " + def + ")"
		}
		if env := flagEnvVar(f.Name); env != "" {
			usage += " [$" + env + "]"
		}
		rows = append(rows, row{names, usage})
		width = max(width, runewidth.StringWidth(names))
	})

	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		lines = append(lines, "  "+styles.flag.Render(runewidth.FillRight(r.names, width))+"   "+r.usage)
	}
	return strings.Join(lines, "\n")
}

// flagEnvVar names the environment variable that sets the same option as
// the flag, or "".
func flagEnvVar(name string) string {
	if name == "config-path" {
		return configloader.EnvConfigPath
	}
	return configloader.GetEnvVarName(strings.ReplaceAll(name, "-", "_"))
}

// envVarUsages lists the supported environment variables, sorted, with
// their descriptions aligned.
func envVarUsages(styles helpStyles) string {
	vars := configloader.ListEnvVars()
	names := slices.Sorted(maps.Keys(vars))
	width := 0
	for _, name := range names {
		width = max(width, runewidth.StringWidth(name))
	}
	lines := make([]string, 0, len(names))
	for _, name := range names {
		lines = append(lines, "  "+styles.flag.Render(runewidth.FillRight(name, width))+"   "+vars[name])
	}
	return strings.Join(lines, "\n")
}

// defaultValue returns the default of f worth showing, or "".
func defaultValue(f *pflag.Flag) string {
	switch f.DefValue {
	case "", "false", "0", "[]":
		return ""
	}
	if f.Value.Type() == "string" {
		return fmt.Sprintf("%q", f.DefValue)
	}
	return f.DefValue
}

func rpad(str string, padding int) string {
	return runewidth.FillRight(str, padding)
}

func trimTrailingWhitespaces(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n")
}
