package cmd

import (
	"github.com/spf13/cobra"

	"github.com/oxmmty/botmint/internal/contract"
	"github.com/oxmmty/botmint/internal/ui"
)

var pauseWallet string

var pauseCmd = &cobra.Command{
	Use:   "pause",
	Short: "Pause minting",
	Long: `Pause the gate. While paused every mint() reverts; operator setters
and role management stay available. The signing wallet must hold the
pauser role.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !ui.ConfirmDanger("Pause minting on " + network + "?") {
			return nil
		}
		setWallet = pauseWallet
		return sendGateTx("pause", contract.PauseCalldata())
	},
}

var unpauseCmd = &cobra.Command{
	Use:   "unpause",
	Short: "Resume minting",
	Long:  `Unpause the gate. The signing wallet must hold the pauser role.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		setWallet = pauseWallet
		return sendGateTx("unpause", contract.UnpauseCalldata())
	},
}

func init() {
	pauseCmd.Flags().StringVarP(&pauseWallet, "wallet", "w", "", "pauser wallet to sign with")
	unpauseCmd.Flags().StringVarP(&pauseWallet, "wallet", "w", "", "pauser wallet to sign with")
}
