package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oxmmty/botmint/internal/contract"
	"github.com/oxmmty/botmint/internal/gate"
	"github.com/oxmmty/botmint/internal/ui"
)

var statusAddr string

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the gate's configuration and pause state",
	Long: `Read the deployed gate's configuration, pause state, and — when an
address is given with --address — that address's stake and eligibility.

Examples:
  botmint status
  botmint status --address 0xabc...`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, dep, err := gateTarget()
		if err != nil {
			return err
		}

		spin := ui.NewSpinner(fmt.Sprintf("Reading gate on %s...", network))
		spin.Start()

		reader := contract.NewGateReader(client, mustAddr(dep.Gate))
		required, err := reader.RequiredStake()
		if err != nil {
			spin.Stop()
			return err
		}
		price, err := reader.Price()
		if err != nil {
			spin.Stop()
			return err
		}
		baseSpec, err := reader.BaseSpecID()
		if err != nil {
			spin.Stop()
			return err
		}
		payToken, err := reader.PayToken()
		if err != nil {
			spin.Stop()
			return err
		}
		paused, err := reader.Paused()
		if err != nil {
			spin.Stop()
			return err
		}
		spin.Stop()

		state := ui.StyleSuccess.Render("active")
		if paused {
			state = ui.StyleError.Render("paused")
		}

		pairs := [][2]string{
			{"network", network},
			{"gate", dep.Gate},
			{"state", state},
			{"required stake", required.String()},
			{"price", price.String()},
			{"pay token", payToken.Hex()},
			{"base spec id", baseSpec.String()},
			{"treasury", dep.Treasury},
		}

		if statusAddr != "" {
			addr, err := parseAddress(statusAddr, "caller")
			if err != nil {
				return err
			}
			vault := contract.NewVaultReader(client, mustAddr(dep.Vault))
			balance, err := vault.BalanceOf(addr)
			if err != nil {
				return err
			}
			sharePrice, err := vault.PricePerFullShare()
			if err != nil {
				return err
			}
			stake := gate.ComputeStake(balance, sharePrice)

			eligible := ui.StyleError.Render("not eligible")
			if stake.Cmp(required) >= 0 {
				eligible = ui.StyleSuccess.Render("eligible")
			}
			pairs = append(pairs,
				[2]string{"caller", addr.Hex()},
				[2]string{"stake", stake.String()},
				[2]string{"eligibility", eligible},
			)
		}

		fmt.Println(ui.KeyValueBlock("Bot Mint Gate", pairs))
		return nil
	},
}

func init() {
	statusCmd.Flags().StringVar(&statusAddr, "address", "", "address to check eligibility for")
}
