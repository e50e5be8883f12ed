package cmd

import (
	"github.com/spf13/cobra"

	"github.com/xuperchain/xcontrol/kernel/engines/xuperos/blacklist"
)

type BlacklistCmd struct {
	BaseCmd
}

// GetBlacklistCmds blacklist、unblacklist、self-blacklist、is-blacklisted
func GetBlacklistCmds(opts *GlobalOptions) []*BlacklistCmd {
	accountCmd := func(use, short, method string) *BlacklistCmd {
		c := new(BlacklistCmd)
		c.cmd = &cobra.Command{
			Use:     use + " <contract> <account>",
			Short:   short,
			Example: "xcontrol " + use + " 0x... 0x... --from 0x...",
			Args:    cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return opts.invoke(cmd.OutOrStdout(), args[0], method, map[string][]byte{
					"account": []byte(args[1]),
				})
			},
		}
		return c
	}

	selfCmd := new(BlacklistCmd)
	selfCmd.cmd = &cobra.Command{
		Use:     "self-blacklist <contract>",
		Short:   "Put the --from account into the blacklist.",
		Example: "xcontrol self-blacklist 0x... --from 0x...",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.invoke(cmd.OutOrStdout(), args[0], blacklist.SelfBlacklistMethod, nil)
		},
	}

	queryCmd := new(BlacklistCmd)
	queryCmd.cmd = &cobra.Command{
		Use:     "is-blacklisted <contract> <account>",
		Short:   "Check whether an account is blacklisted.",
		Example: "xcontrol is-blacklisted 0x... 0x...",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.query(cmd.OutOrStdout(), args[0], blacklist.IsBlacklistedMethod, map[string][]byte{
				"account": []byte(args[1]),
			})
		},
	}

	return []*BlacklistCmd{
		accountCmd("blacklist", "Blacklist an account, requires BLACKLISTER_ROLE.", blacklist.BlacklistMethod),
		accountCmd("unblacklist", "Remove an account from the blacklist, requires BLACKLISTER_ROLE.", blacklist.UnBlacklistMethod),
		selfCmd,
		queryCmd,
	}
}
