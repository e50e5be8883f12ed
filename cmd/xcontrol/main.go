package main

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/xuperchain/xcontrol/cmd/xcontrol/cmd"
)

func main() {
	rootCmd := NewCommand()
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("xcontrol failed.err:%v", err)
	}
}

func NewCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "xcontrol <command> [arguments]",
		Short:         "xcontrol operates the blacklist and rescue kernel contracts.",
		Long:          "xcontrol operates the blacklist and rescue kernel contracts on a local state store.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Example:       "xcontrol blacklist 0x... 0x... --from 0x... --conf ./conf/env.yaml",
	}

	opts := cmd.BindGlobalFlags(rootCmd)
	rootCmd.AddCommand(cmd.GetVersionCmd().GetCmd())
	rootCmd.AddCommand(cmd.GetDeployCmd(opts).GetCmd())
	rootCmd.AddCommand(cmd.GetInvokeCmd(opts).GetCmd())
	rootCmd.AddCommand(cmd.GetQueryCmd(opts).GetCmd())
	for _, c := range cmd.GetBlacklistCmds(opts) {
		rootCmd.AddCommand(c.GetCmd())
	}
	rootCmd.AddCommand(cmd.GetRescueCmd(opts).GetCmd())
	rootCmd.AddCommand(cmd.GetRoleCmd(opts).GetCmd())
	rootCmd.AddCommand(cmd.GetTokenCmd(opts).GetCmd())
	rootCmd.AddCommand(cmd.GetEventsCmd(opts).GetCmd())
	return rootCmd
}
