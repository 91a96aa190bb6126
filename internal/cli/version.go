package cli

import (
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"
)

func newVersionCommand(info BuildInfo) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print the version, commit hash and build date of gobiome.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			info := info.resolve()
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "gobiome %s\n  commit: %s\n  built:  %s\n  go:     %s %s/%s\n",
				info.Version, info.Commit, info.Date, runtime.Version(), runtime.GOOS, runtime.GOARCH)
			return err
		},
	}
}

// resolve fills a development build's version from the module build
// information, as set by go install.
func (b BuildInfo) resolve() BuildInfo {
	if b.Version != "" && b.Version != "dev" {
		return b
	}
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return b
	}
	if v := bi.Main.Version; v != "" && v != "(devel)" {
		b.Version = v
	}
	for _, setting := range bi.Settings {
		switch setting.Key {
		case "vcs.revision":
			if b.Commit == "" || b.Commit == "none" {
				b.Commit = setting.Value
			}
		case "vcs.time":
			if b.Date == "" || b.Date == "unknown" {
				b.Date = setting.Value
			}
		}
	}
	return b
}
