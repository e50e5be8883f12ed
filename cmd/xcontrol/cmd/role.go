package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/xuperchain/xcontrol/kernel/permission/access"
)

type RoleCmd struct {
	BaseCmd
}

// GetRoleCmd role grant|revoke|has，角色可以是名字(如 BLACKLISTER_ROLE)或0x哈希
func GetRoleCmd(opts *GlobalOptions) *RoleCmd {
	roleCmdIns := new(RoleCmd)

	roleCmdIns.cmd = &cobra.Command{
		Use:           "role",
		Short:         "Role operation.",
		Example:       "xcontrol role grant 0x... RESCUER_ROLE 0x... --from 0x...",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	sub := func(use, short, method string, commit bool) *cobra.Command {
		return &cobra.Command{
			Use:   use + " <contract> <role> <account>",
			Short: short,
			Args:  cobra.ExactArgs(3),
			RunE: func(cmd *cobra.Command, args []string) error {
				kvs := map[string][]byte{
					"role":    []byte(roleHex(args[1])),
					"account": []byte(args[2]),
				}
				if commit {
					return opts.invoke(cmd.OutOrStdout(), args[0], method, kvs)
				}
				return opts.query(cmd.OutOrStdout(), args[0], method, kvs)
			},
		}
	}
	roleCmdIns.cmd.AddCommand(sub("grant", "Grant a role.", "grantRole", true))
	roleCmdIns.cmd.AddCommand(sub("revoke", "Revoke a role.", "revokeRole", true))
	roleCmdIns.cmd.AddCommand(sub("has", "Check whether an account has a role.", "hasRole", false))

	return roleCmdIns
}

func roleHex(role string) string {
	if strings.HasPrefix(role, "0x") {
		return role
	}
	return access.RoleOf(role).Hex()
}
