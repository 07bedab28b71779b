package cmd

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"

	"github.com/oxmmty/botmint/internal/contract"
	"github.com/oxmmty/botmint/internal/gate"
)

var roleWallet string

var roleCmd = &cobra.Command{
	Use:   "role",
	Short: "Grant or revoke gate roles",
	Long: `Manage the gate's access-control roles. The signing wallet must hold
the admin role.

Roles: admin (grants/revokes roles), operator (configuration setters),
pauser (pause/unpause).

Examples:
  botmint role grant operator 0xabc...
  botmint role revoke pauser 0xdef...`,
}

var roleGrantCmd = &cobra.Command{
	Use:   "grant <role> <address>",
	Short: "Grant a role to an address",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		role, addr, err := roleArgs(args)
		if err != nil {
			return err
		}
		setWallet = roleWallet
		return sendGateTx("grantRole", contract.GrantRoleCalldata(contract.RoleHash(role.String()), addr))
	},
}

var roleRevokeCmd = &cobra.Command{
	Use:   "revoke <role> <address>",
	Short: "Revoke a role from an address",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		role, addr, err := roleArgs(args)
		if err != nil {
			return err
		}
		setWallet = roleWallet
		return sendGateTx("revokeRole", contract.RevokeRoleCalldata(contract.RoleHash(role.String()), addr))
	},
}

func roleArgs(args []string) (gate.Role, common.Address, error) {
	role, err := gate.ParseRole(args[0])
	if err != nil {
		return 0, common.Address{}, err
	}
	addr, err := parseAddress(args[1], "role holder")
	if err != nil {
		return 0, common.Address{}, err
	}
	return role, addr, nil
}

func init() {
	roleCmd.PersistentFlags().StringVarP(&roleWallet, "wallet", "w", "", "admin wallet to sign with")
	roleCmd.AddCommand(roleGrantCmd, roleRevokeCmd)
}
