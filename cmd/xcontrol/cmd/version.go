package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

var (
	buildVersion = ""
	commitHash   = ""
	buildDate    = ""
)

type versionCmd struct {
	BaseCmd
}

func GetVersionCmd() *versionCmd {
	versionCmdIns := new(versionCmd)

	versionCmdIns.cmd = &cobra.Command{
		Use:     "version",
		Short:   "View process version information.",
		Example: "xcontrol version",
		Run: func(cmd *cobra.Command, args []string) {
			Version(cmd.OutOrStdout())
		},
	}

	return versionCmdIns
}

func Version(out io.Writer) {
	fmt.Fprintf(out, "%s-%s %s\n", buildVersion, commitHash, buildDate)
}
