package cmd

import (
	"github.com/spf13/cobra"

	"github.com/xuperchain/xcontrol/kernel/contract"
	xcommon "github.com/xuperchain/xcontrol/kernel/engines/xuperos/common"
)

type DeployCmd struct {
	BaseCmd
}

// GetDeployCmd 部署合约实例，默认同时执行initialize
func GetDeployCmd(opts *GlobalOptions) *DeployCmd {
	deployCmdIns := new(DeployCmd)

	var skipInit bool
	deployCmdIns.cmd = &cobra.Command{
		Use:     "deploy <contract name> [key=value...]",
		Short:   "Deploy a kernel contract instance.",
		Example: "xcontrol deploy CToken name=ctoken symbol=CTK initialSupply=1000 --from 0x...",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := opts.initiator()
			if err != nil {
				return err
			}
			kvs, err := parseArgs(args[1:])
			if err != nil {
				return err
			}
			return opts.withEngine(func(eng xcommon.Engine) error {
				addr, receipt, err := eng.Manager().Deploy(&contract.DeployRequest{
					Initiator:    from,
					ContractName: args[0],
					Initialize:   !skipInit,
					Args:         kvs,
				})
				if err != nil {
					return err
				}
				view := newReceiptView(receipt)
				view.Address = addr.Hex()
				return printJSON(cmd.OutOrStdout(), view)
			})
		},
	}
	deployCmdIns.cmd.Flags().BoolVar(&skipInit, "no-init", false, "do not call initialize")

	return deployCmdIns
}

type InvokeCmd struct {
	BaseCmd
}

func GetInvokeCmd(opts *GlobalOptions) *InvokeCmd {
	invokeCmdIns := new(InvokeCmd)

	invokeCmdIns.cmd = &cobra.Command{
		Use:     "invoke <address> <method> [key=value...]",
		Short:   "Invoke a contract method and commit the result.",
		Example: "xcontrol invoke 0x... transfer to=0x... amount=10 --from 0x...",
		Args:    cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kvs, err := parseArgs(args[2:])
			if err != nil {
				return err
			}
			return opts.invoke(cmd.OutOrStdout(), args[0], args[1], kvs)
		},
	}

	return invokeCmdIns
}

type QueryCmd struct {
	BaseCmd
}

func GetQueryCmd(opts *GlobalOptions) *QueryCmd {
	queryCmdIns := new(QueryCmd)

	queryCmdIns.cmd = &cobra.Command{
		Use:     "query <address> <method> [key=value...]",
		Short:   "Call a contract method without committing.",
		Example: "xcontrol query 0x... balanceOf account=0x...",
		Args:    cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kvs, err := parseArgs(args[2:])
			if err != nil {
				return err
			}
			return opts.query(cmd.OutOrStdout(), args[0], args[1], kvs)
		},
	}

	return queryCmdIns
}
