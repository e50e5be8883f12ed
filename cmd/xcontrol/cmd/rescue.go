package cmd

import (
	"github.com/spf13/cobra"

	"github.com/xuperchain/xcontrol/kernel/engines/xuperos/rescue"
)

type RescueCmd struct {
	BaseCmd
}

func GetRescueCmd(opts *GlobalOptions) *RescueCmd {
	rescueCmdIns := new(RescueCmd)

	rescueCmdIns.cmd = &cobra.Command{
		Use:     "rescue <contract> <token> <to> <amount>",
		Short:   "Move tokens held by a contract instance, requires RESCUER_ROLE.",
		Example: "xcontrol rescue 0x... 0x... 0x... 123 --from 0x...",
		Args:    cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.invoke(cmd.OutOrStdout(), args[0], rescue.RescueERC20Method, map[string][]byte{
				"token":  []byte(args[1]),
				"to":     []byte(args[2]),
				"amount": []byte(args[3]),
			})
		},
	}

	return rescueCmdIns
}
