package root

import (
	"github.com/spf13/cobra"

	gatherCmd "github.com/stdevel/downspeeds/pkg/cmd/gather"
	versionCmd "github.com/stdevel/downspeeds/pkg/cmd/version"
)

func NewCmdRoot() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "downspeeds <command>",
		Short:         "RHEL rebuild errata publication drift",
		Long:          "downspeeds gathers data from the RHSA database and various RHEL-downstream errata databases and exports them for comparison",
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	cmd.AddCommand(
		gatherCmd.NewCmd(),
		versionCmd.NewCmd(),
	)

	return cmd
}
