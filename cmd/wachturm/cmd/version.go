package cmd

import (
	"fmt"
	"runtime"

	"github.com/msto63/wachturm/pkg/core/version"
	"github.com/spf13/cobra"
)

var components = []struct {
	label string
	name  string
}{
	{"Log Viewer", "logs"},
	{"Node View", "node"},
	{"Mock API", "mock-api"},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Zeigt die Version an",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Wachturm v%s\n", version.Application)
		for _, c := range components {
			fmt.Fprintf(out, "  %-11s %s\n", c.label+":", version.ComponentVersion(c.name))
		}
		fmt.Fprintf(out, "  Git Commit: %s\n", version.GitCommit)
		fmt.Fprintf(out, "  Build Date: %s\n", version.BuildDate)
		fmt.Fprintf(out, "  Go Version: %s\n", runtime.Version())
		fmt.Fprintf(out, "  OS/Arch:    %s/%s\n", runtime.GOOS, runtime.GOARCH)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
