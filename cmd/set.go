package cmd

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"

	"github.com/oxmmty/botmint/internal/contract"
	"github.com/oxmmty/botmint/internal/ui"
)

var setWallet string

var setCmd = &cobra.Command{
	Use:   "set",
	Short: "Update the gate's operator configuration",
	Long: `Operator setters for the deployed gate. The signing wallet must hold
the operator role or the transaction will revert.

Sub-commands:
  botmint set amount <value>    — required stake threshold
  botmint set price <value>     — bot price
  botmint set token <address>   — payment token
  botmint set spec-id <value>   — base spec id

Values are base-10 integers in smallest units.`,
}

var setAmountCmd = &cobra.Command{
	Use:   "amount <value>",
	Short: "Update the required stake threshold",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		amount, err := parseAmount(args[0], "stake threshold")
		if err != nil {
			return err
		}
		calldata, err := contract.SetAmountCalldata(amount)
		if err != nil {
			return err
		}
		return sendGateTx("setAmount", calldata)
	},
}

var setPriceCmd = &cobra.Command{
	Use:   "price <value>",
	Short: "Update the bot price",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		price, err := parseAmount(args[0], "price")
		if err != nil {
			return err
		}
		calldata, err := contract.SetPriceCalldata(price)
		if err != nil {
			return err
		}
		return sendGateTx("setPrice", calldata)
	},
}

var setTokenCmd = &cobra.Command{
	Use:   "token <address>",
	Short: "Update the payment token",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, err := parseAddress(args[0], "payment token")
		if err != nil {
			return err
		}
		return sendGateTx("setBuyWithToken", contract.SetBuyWithTokenCalldata(addr))
	},
}

var setSpecIDCmd = &cobra.Command{
	Use:   "spec-id <value>",
	Short: "Update the base spec id",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseAmount(args[0], "base spec id")
		if err != nil {
			return err
		}
		calldata, err := contract.SetBaseSpecIDCalldata(id)
		if err != nil {
			return err
		}
		return sendGateTx("setBaseSpecId", calldata)
	},
}

// sendGateTx signs and broadcasts calldata to the configured gate.
func sendGateTx(what, calldata string) error {
	client, dep, err := gateTarget()
	if err != nil {
		return err
	}
	signer, _, err := loadSigner(setWallet)
	if err != nil {
		return err
	}
	chainID, err := client.ChainID()
	if err != nil {
		return fmt.Errorf("getting chain id: %w", err)
	}

	spin := ui.NewSpinner(fmt.Sprintf("Broadcasting %s on %s...", what, network))
	spin.Start()
	hash, err := contract.NewSender(client, signer, chainID).Send(common.HexToAddress(dep.Gate), calldata)
	spin.Stop()
	if err != nil {
		return err
	}

	fmt.Println(ui.StyleSuccess.Render("✓ "+what+" submitted ") + ui.StyleAddress.Render(hash))
	return nil
}

func init() {
	setCmd.PersistentFlags().StringVarP(&setWallet, "wallet", "w", "", "operator wallet to sign with")
	setCmd.AddCommand(setAmountCmd, setPriceCmd, setTokenCmd, setSpecIDCmd)
}
