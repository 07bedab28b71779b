// Package cmd wires the botmint CLI: commands to preflight and submit mint
// transactions against a deployed bot mint gate, manage its operator
// configuration, and simulate the gate locally.
package cmd

import (
	"fmt"
	"math/big"
	"os"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"

	"github.com/oxmmty/botmint/internal/chain"
	"github.com/oxmmty/botmint/internal/config"
	"github.com/oxmmty/botmint/internal/wallet"
)

// Version is the current release. Overridable via build ldflags:
//
//	go build -ldflags "-X github.com/oxmmty/botmint/cmd.Version=1.2.3" .
var Version = "1.0.0"

var (
	cfgDir  string
	cfg     *config.Config
	verbose bool
	network string
)

// rootCmd is the top-level command.
var rootCmd = &cobra.Command{
	Use:   "botmint",
	Short: "Mint gate CLI for bot NFTs",
	Long: `botmint — operator and minter tooling for the bot mint gate.

  Preflight and submit mints (stake check, fee split, tier preview),
  manage the gate's operator configuration, pause/unpause minting,
  and simulate the gate's tier distribution locally.

The gate mints one of four bot tiers to callers staking enough in the
vault and paying the configured fee, split 80/20 between the reward
address and the treasury.`,
	Version: Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}
		var err error
		cfg, err = config.Load(cfgDir)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if network == "" {
			network = cfg.DefaultNetwork
		}
		return nil
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	// BOTMINT_CONFIG_DIR env var overrides --config flag.
	if envDir := os.Getenv("BOTMINT_CONFIG_DIR"); envDir != "" {
		cfgDir = envDir
	}

	rootCmd.PersistentFlags().StringVar(&cfgDir, "config", cfgDir, "config directory (default: ~/.botmint)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVarP(&network, "network", "n", "", "network to target (default: configured default)")

	rootCmd.AddCommand(
		initCmd,
		statusCmd,
		mintCmd,
		setCmd,
		pauseCmd,
		unpauseCmd,
		roleCmd,
		simulateCmd,
		walletCmd,
	)
}

// --- shared helpers ---

// gateTarget resolves the configured RPC client and deployment for the
// active network.
func gateTarget() (*chain.EVMClient, *config.Deployment, error) {
	rpcURL, err := cfg.RPC(network)
	if err != nil {
		return nil, nil, err
	}
	dep, err := cfg.Deployment(network)
	if err != nil {
		return nil, nil, err
	}
	return chain.NewEVMClient(rpcURL), dep, nil
}

// loadSigner resolves a wallet (by name, or the default) into a signer.
func loadSigner(name string) (*wallet.Signer, *wallet.Wallet, error) {
	mgr := wallet.NewManager(wallet.NewJSONStore(cfg.WalletsPath()), wallet.DefaultKeystore())
	var w *wallet.Wallet
	var err error
	if name != "" {
		w, err = mgr.Get(name)
	} else if cfg.DefaultWallet != "" {
		w, err = mgr.Get(cfg.DefaultWallet)
	} else if w = mgr.Default(); w == nil {
		err = fmt.Errorf("no wallet configured — run `botmint wallet create`")
	}
	if err != nil {
		return nil, nil, err
	}
	return wallet.NewSigner(w, wallet.DefaultKeystore()), w, nil
}

// mustAddr parses a deployment address; deployment addresses are validated
// when registered by `botmint init`.
func mustAddr(s string) common.Address { return common.HexToAddress(s) }

// parseAddress validates and parses a 0x address argument.
func parseAddress(s, what string) (common.Address, error) {
	if !common.IsHexAddress(s) {
		return common.Address{}, fmt.Errorf("invalid %s address: %q", what, s)
	}
	return common.HexToAddress(s), nil
}

// parseAmount parses a base-10 integer amount in smallest units.
func parseAmount(s, what string) (*big.Int, error) {
	n, ok := new(big.Int).SetString(s, 10)
	if !ok || n.Sign() < 0 {
		return nil, fmt.Errorf("invalid %s: %q (want a non-negative base-10 integer in smallest units)", what, s)
	}
	return n, nil
}
