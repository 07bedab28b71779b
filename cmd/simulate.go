package cmd

import (
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"

	"github.com/oxmmty/botmint/internal/gate"
	"github.com/oxmmty/botmint/internal/ledger"
	"github.com/oxmmty/botmint/internal/ui"
)

var simMints int

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run the gate against an in-memory world",
	Long: `Spin up an in-memory vault, token, controller, and issuer, run N mints
through the gate engine with deterministic stepped entropy, and print the
tier histogram against the expected 5/15/30/50 weights.

Example:
  botmint simulate --mints 1000`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if simMints <= 0 {
			return fmt.Errorf("--mints must be positive")
		}

		var (
			minter     = common.HexToAddress("0x00000000000000000000000000000000000000a1")
			treasury   = common.HexToAddress("0x00000000000000000000000000000000000000c0")
			rewards    = common.HexToAddress("0x00000000000000000000000000000000000000c1")
			tokenAddr  = common.HexToAddress("0x00000000000000000000000000000000000000d0")
			oneShare   = new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil)
			price      = new(big.Int).Mul(big.NewInt(10), oneShare)
			threshold  = new(big.Int).Mul(big.NewInt(5), oneShare)
			baseSpecID = big.NewInt(100)
		)

		st := ledger.NewState()
		vault := ledger.NewVault(oneShare)
		issuer := ledger.NewIssuer()
		entropy := ledger.NewSteppedEntropy(big.NewInt(time.Now().Unix()))

		vault.Deposit(minter, new(big.Int).Mul(threshold, big.NewInt(2)))

		// Fund the minter for every draw up front.
		total := new(big.Int).Mul(price, big.NewInt(int64(simMints)))
		token := st.Handle(tokenAddr)
		token.Mint(minter, total)
		token.Approve(minter, ledger.GateSpender(), total)

		g, err := gate.New(
			gate.Config{
				RequiredStake: threshold,
				PayToken:      tokenAddr,
				Price:         price,
				BaseSpecID:    baseSpecID,
				Treasury:      treasury,
			},
			gate.Deps{
				Vault:      vault,
				Controller: ledger.NewController(rewards),
				Issuer:     issuer,
				Tokens:     st,
				Entropy:    entropy,
				State:      st,
			},
			minter,
		)
		if err != nil {
			return err
		}

		var counts [gate.NumTiers]int
		for i := 0; i < simMints; i++ {
			r, err := g.Mint(minter)
			if err != nil {
				return fmt.Errorf("mint %d: %w", i+1, err)
			}
			counts[r.Tier]++
		}

		table := ui.NewTable([]ui.Column{
			{Title: "TIER", Width: 6},
			{Title: "NAME", Width: 11},
			{Title: "MINTED", Width: 8},
			{Title: "ACTUAL", Width: 8},
			{Title: "EXPECTED", Width: 8},
		})
		for tier := 0; tier < gate.NumTiers; tier++ {
			actual := float64(counts[tier]) * 100 / float64(simMints)
			table.AddRow(ui.Row{
				fmt.Sprintf("%d", tier),
				ui.TierNames[tier],
				fmt.Sprintf("%d", counts[tier]),
				fmt.Sprintf("%.1f%%", actual),
				fmt.Sprintf("%d%%", gate.TierWeights[tier]),
			})
		}

		fmt.Println(ui.StyleTitle.Render(fmt.Sprintf("Simulated %d mints", simMints)))
		fmt.Print(table.Render())

		if verbose {
			minted := issuer.Minted()
			if len(minted) != simMints {
				return errors.New("issuer record count does not match mints")
			}
			fmt.Println(ui.StyleMeta.Render(fmt.Sprintf(
				"treasury received %s, rewards received %s",
				st.Handle(tokenAddr).BalanceOf(treasury),
				st.Handle(tokenAddr).BalanceOf(rewards),
			)))
		}
		return nil
	},
}

func init() {
	simulateCmd.Flags().IntVar(&simMints, "mints", 100, "number of mints to simulate")
}
