package cmd

import (
	"github.com/spf13/cobra"

	"github.com/xuperchain/xcontrol/kernel/engines/xuperos/xtoken"
)

type TokenCmd struct {
	BaseCmd
}

func GetTokenCmd(opts *GlobalOptions) *TokenCmd {
	tokenCmdIns := new(TokenCmd)

	tokenCmdIns.cmd = &cobra.Command{
		Use:           "token",
		Short:         "Token operation.",
		Example:       "xcontrol token balance 0x... 0x...",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	tokenCmdIns.cmd.AddCommand(&cobra.Command{
		Use:   "mint <token> <to> <amount>",
		Short: "Mint tokens, requires the token owner.",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.invoke(cmd.OutOrStdout(), args[0], xtoken.Mint, map[string][]byte{
				"to":     []byte(args[1]),
				"amount": []byte(args[2]),
			})
		},
	})
	tokenCmdIns.cmd.AddCommand(&cobra.Command{
		Use:   "transfer <token> <to> <amount>",
		Short: "Transfer tokens from the --from account.",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.invoke(cmd.OutOrStdout(), args[0], xtoken.Transfer, map[string][]byte{
				"to":     []byte(args[1]),
				"amount": []byte(args[2]),
			})
		},
	})
	tokenCmdIns.cmd.AddCommand(&cobra.Command{
		Use:   "balance <token> <account>",
		Short: "Query the token balance of an account.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.query(cmd.OutOrStdout(), args[0], xtoken.BalanceOf, map[string][]byte{
				"account": []byte(args[1]),
			})
		},
	})

	return tokenCmdIns
}
