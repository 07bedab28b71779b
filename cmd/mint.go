package cmd

import (
	"fmt"
	"math/big"

	"github.com/spf13/cobra"

	"github.com/oxmmty/botmint/internal/contract"
	"github.com/oxmmty/botmint/internal/gate"
	"github.com/oxmmty/botmint/internal/ui"
)

var (
	mintWallet string
	mintYes    bool
)

var mintCmd = &cobra.Command{
	Use:   "mint",
	Short: "Preflight and submit a mint transaction",
	Long: `Check eligibility against the live gate, preview the fee split and a
tier draw, then sign and broadcast mint().

The preflight runs the same checks the gate contract will: vault stake vs
the required amount, token balance and allowance vs the price, and the
pause flag. The tier preview is derived from the latest block and is
advisory only — the block that includes the transaction decides the draw.

Examples:
  botmint mint
  botmint mint --wallet ops --yes`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, dep, err := gateTarget()
		if err != nil {
			return err
		}
		signer, w, err := loadSigner(mintWallet)
		if err != nil {
			return err
		}
		caller := mustAddr(w.Address)

		spin := ui.NewSpinner(fmt.Sprintf("Preflighting mint on %s...", network))
		spin.Start()

		reader := contract.NewGateReader(client, mustAddr(dep.Gate))
		paused, err := reader.Paused()
		if err != nil {
			spin.Stop()
			return err
		}
		if paused {
			spin.Stop()
			return fmt.Errorf("gate is paused on %s", network)
		}

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
		payToken, err := reader.PayToken()
		if err != nil {
			spin.Stop()
			return err
		}
		baseSpec, err := reader.BaseSpecID()
		if err != nil {
			spin.Stop()
			return err
		}

		vault := contract.NewVaultReader(client, mustAddr(dep.Vault))
		balance, err := vault.BalanceOf(caller)
		if err != nil {
			spin.Stop()
			return err
		}
		sharePrice, err := vault.PricePerFullShare()
		if err != nil {
			spin.Stop()
			return err
		}
		stake := gate.ComputeStake(balance, sharePrice)
		if stake.Cmp(required) < 0 {
			spin.Stop()
			return fmt.Errorf("%w: have %s, need %s", gate.ErrInsufficientStake, stake, required)
		}

		token := contract.NewTokenReader(client, payToken)
		tokenBal, err := token.BalanceOf(caller)
		if err != nil {
			spin.Stop()
			return err
		}
		allowance, err := token.Allowance(caller, mustAddr(dep.Gate))
		if err != nil {
			spin.Stop()
			return err
		}
		if tokenBal.Cmp(price) < 0 {
			spin.Stop()
			return fmt.Errorf("token balance %s below price %s", tokenBal, price)
		}
		if allowance.Cmp(price) < 0 {
			spin.Stop()
			return fmt.Errorf("gate allowance %s below price %s — approve %s on the payment token first", allowance, price, dep.Gate)
		}

		// Advisory draw from the latest header.
		ts, diff, err := contract.NewHeaderEntropy(client).Sample()
		if err != nil {
			spin.Stop()
			return err
		}
		spin.Stop()

		seed := gate.Seed(ts, diff)
		tier := gate.TierFor(seed)
		amount0, amount1 := gate.SplitPrice(price)
		specID := new(big.Int).Add(baseSpec, new(big.Int).SetUint64(tier))

		fmt.Println(ui.KeyValueBlock("Mint preflight", [][2]string{
			{"caller", caller.Hex()},
			{"stake", stake.String()},
			{"price", price.String()},
			{"rewards share", amount0.String()},
			{"treasury share", amount1.String()},
			{"tier preview", fmt.Sprintf("%d (%s), spec %s", tier, ui.TierBadge(tier), specID)},
		}))

		if !mintYes && !ui.Confirm("Submit mint transaction?") {
			return fmt.Errorf("mint cancelled")
		}

		chainID, err := client.ChainID()
		if err != nil {
			return fmt.Errorf("getting chain id: %w", err)
		}

		spin = ui.NewSpinner("Broadcasting mint()...")
		spin.Start()
		hash, err := contract.NewSender(client, signer, chainID).Send(mustAddr(dep.Gate), contract.MintCalldata())
		spin.Stop()
		if err != nil {
			return err
		}

		fmt.Println(ui.StyleSuccess.Render("✓ mint submitted ") + ui.StyleAddress.Render(hash))
		return nil
	},
}

func init() {
	mintCmd.Flags().StringVarP(&mintWallet, "wallet", "w", "", "wallet to mint with (default: configured default)")
	mintCmd.Flags().BoolVarP(&mintYes, "yes", "y", false, "skip the confirmation prompt")
}
