package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oxmmty/botmint/internal/config"
	"github.com/oxmmty/botmint/internal/ui"
)

var (
	initRPC        string
	initGate       string
	initVault      string
	initController string
	initToken      string
	initTreasury   string
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Register a gate deployment for a network",
	Long: `Register the RPC endpoint and contract addresses of a deployed gate.

Missing flags are prompted for interactively.

Example:
  botmint init --network base --rpc https://mainnet.base.org \
    --gate 0x... --vault 0x... --controller 0x... --token 0x... --treasury 0x...`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if initRPC == "" {
			initRPC = ui.PromptInput(fmt.Sprintf("RPC URL for %s", network))
			if initRPC == "" {
				return fmt.Errorf("an RPC URL is required")
			}
		}

		prompt := func(val *string, label string) error {
			if *val == "" {
				*val = ui.PromptInput(label + " address")
			}
			if _, err := parseAddress(*val, label); err != nil {
				return err
			}
			return nil
		}
		if err := prompt(&initGate, "gate"); err != nil {
			return err
		}
		if err := prompt(&initVault, "vault"); err != nil {
			return err
		}
		if err := prompt(&initController, "controller"); err != nil {
			return err
		}
		if err := prompt(&initToken, "payment token"); err != nil {
			return err
		}
		if err := prompt(&initTreasury, "treasury"); err != nil {
			return err
		}

		cfg.RPCs[network] = initRPC
		if err := cfg.Save(); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}

		err := cfg.AddDeployment(config.Deployment{
			Network:    network,
			Gate:       initGate,
			Vault:      initVault,
			Controller: initController,
			PayToken:   initToken,
			Treasury:   initTreasury,
		})
		if err != nil {
			return fmt.Errorf("saving deployment: %w", err)
		}

		fmt.Println(ui.StyleSuccess.Render("✓") + " gate deployment registered for " + network)
		return nil
	},
}

func init() {
	initCmd.Flags().StringVar(&initRPC, "rpc", "", "RPC endpoint URL")
	initCmd.Flags().StringVar(&initGate, "gate", "", "gate contract address")
	initCmd.Flags().StringVar(&initVault, "vault", "", "staking vault address")
	initCmd.Flags().StringVar(&initController, "controller", "", "reward controller address")
	initCmd.Flags().StringVar(&initToken, "token", "", "payment token address")
	initCmd.Flags().StringVar(&initTreasury, "treasury", "", "treasury address")
}
