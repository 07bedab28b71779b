package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oxmmty/botmint/internal/ui"
	"github.com/oxmmty/botmint/internal/wallet"
)

var walletCmd = &cobra.Command{
	Use:   "wallet",
	Short: "Manage signing wallets",
	Long: `Create, import, and list the wallets the CLI signs gate transactions
with. Private keys live in the OS keychain; only metadata is written to
the config directory.`,
}

var walletCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Generate a new wallet",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr := walletManager()
		w, err := mgr.Generate(args[0])
		if err != nil {
			return err
		}
		fmt.Println(ui.StyleSuccess.Render("✓ created ") + w.Name + " " + ui.StyleAddress.Render(w.Address))
		return nil
	},
}

var walletImportCmd = &cobra.Command{
	Use:   "import <name>",
	Short: "Import a wallet from a hex private key",
	Long: `Import a wallet. The key is prompted for so it never lands in shell
history.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		hexKey := ui.PromptInput("Private key (hex)")
		if hexKey == "" {
			return fmt.Errorf("a private key is required")
		}
		mgr := walletManager()
		w, err := mgr.Import(args[0], hexKey)
		if err != nil {
			return err
		}
		fmt.Println(ui.StyleSuccess.Render("✓ imported ") + w.Name + " " + ui.StyleAddress.Render(w.Address))
		return nil
	},
}

var walletListCmd = &cobra.Command{
	Use:   "list",
	Short: "List wallets",
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr := walletManager()
		wallets, err := mgr.List()
		if err != nil {
			return err
		}
		if len(wallets) == 0 {
			fmt.Println(ui.StyleMeta.Render("no wallets — run `botmint wallet create <name>`"))
			return nil
		}

		table := ui.NewTable([]ui.Column{
			{Title: "NAME", Width: 16},
			{Title: "ADDRESS", Width: 44},
			{Title: "DEFAULT", Width: 8},
		})
		for _, w := range wallets {
			def := ""
			if w.IsDefault {
				def = "✓"
			}
			table.AddRow(ui.Row{w.Name, w.Address, def})
		}
		fmt.Print(table.Render())
		return nil
	},
}

var walletDefaultCmd = &cobra.Command{
	Use:   "default [name]",
	Short: "Show or set the default wallet",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr := walletManager()

		if len(args) == 0 {
			wallets, err := mgr.List()
			if err != nil {
				return err
			}
			items := make([]ui.PickerItem, 0, len(wallets))
			for _, w := range wallets {
				items = append(items, ui.PickerItem{Label: w.Name, SubLabel: w.Address, Value: w.Name})
			}
			name, err := ui.PickItem("Default wallet", items)
			if err != nil {
				return err
			}
			args = []string{name}
		}

		if err := mgr.SetDefault(args[0]); err != nil {
			return err
		}
		cfg.DefaultWallet = args[0]
		if err := cfg.Save(); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		fmt.Println(ui.StyleSuccess.Render("✓ default wallet ") + args[0])
		return nil
	},
}

func walletManager() *wallet.Manager {
	return wallet.NewManager(wallet.NewJSONStore(cfg.WalletsPath()), wallet.DefaultKeystore())
}

func init() {
	walletCmd.AddCommand(walletCreateCmd, walletImportCmd, walletListCmd, walletDefaultCmd)
}
