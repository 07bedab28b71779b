package contract

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/oxmmty/botmint/internal/chain"
)

// VaultReader implements gate.Vault over eth_call against a deployed vault.
type VaultReader struct {
	client *chain.EVMClient
	addr   common.Address
}

// NewVaultReader creates a reader for the vault at addr.
func NewVaultReader(client *chain.EVMClient, addr common.Address) *VaultReader {
	return &VaultReader{client: client, addr: addr}
}

// BalanceOf returns owner's vault share balance.
func (v *VaultReader) BalanceOf(owner common.Address) (*big.Int, error) {
	out, err := v.client.CallContract(v.addr.Hex(), selBalanceOf+EncodeAddress(owner))
	if err != nil {
		return nil, fmt.Errorf("vault balanceOf: %w", err)
	}
	return DecodeUint(out)
}

// PricePerFullShare returns the vault's share price.
func (v *VaultReader) PricePerFullShare() (*big.Int, error) {
	out, err := v.client.CallContract(v.addr.Hex(), selPricePerFullShare)
	if err != nil {
		return nil, fmt.Errorf("vault getPricePerFullShare: %w", err)
	}
	return DecodeUint(out)
}

// ControllerReader implements gate.Controller over eth_call.
type ControllerReader struct {
	client *chain.EVMClient
	addr   common.Address
}

// NewControllerReader creates a reader for the controller at addr.
func NewControllerReader(client *chain.EVMClient, addr common.Address) *ControllerReader {
	return &ControllerReader{client: client, addr: addr}
}

// Rewards returns the controller's current rewards address.
func (c *ControllerReader) Rewards() (common.Address, error) {
	out, err := c.client.CallContract(c.addr.Hex(), selRewards)
	if err != nil {
		return common.Address{}, fmt.Errorf("controller rewards: %w", err)
	}
	return DecodeAddress(out)
}

// TokenReader reads ERC-20 balances and allowances for preflight checks.
type TokenReader struct {
	client *chain.EVMClient
	addr   common.Address
}

// NewTokenReader creates a reader for the token at addr.
func NewTokenReader(client *chain.EVMClient, addr common.Address) *TokenReader {
	return &TokenReader{client: client, addr: addr}
}

// BalanceOf returns holder's token balance.
func (t *TokenReader) BalanceOf(holder common.Address) (*big.Int, error) {
	out, err := t.client.CallContract(t.addr.Hex(), selBalanceOf+EncodeAddress(holder))
	if err != nil {
		return nil, fmt.Errorf("token balanceOf: %w", err)
	}
	return DecodeUint(out)
}

// Allowance returns spender's remaining allowance over owner's balance.
func (t *TokenReader) Allowance(owner, spender common.Address) (*big.Int, error) {
	out, err := t.client.CallContract(t.addr.Hex(), selAllowance+EncodeAddress(owner)+EncodeAddress(spender))
	if err != nil {
		return nil, fmt.Errorf("token allowance: %w", err)
	}
	return DecodeUint(out)
}

// GateReader reads the deployed gate's public configuration.
type GateReader struct {
	client *chain.EVMClient
	addr   common.Address
}

// NewGateReader creates a reader for the gate at addr.
func NewGateReader(client *chain.EVMClient, addr common.Address) *GateReader {
	return &GateReader{client: client, addr: addr}
}

// RequiredStake returns the gate's stake threshold.
func (g *GateReader) RequiredStake() (*big.Int, error) {
	return g.readUint(selAmount, "amount")
}

// Price returns the bot price.
func (g *GateReader) Price() (*big.Int, error) {
	return g.readUint(selPrice, "price")
}

// BaseSpecID returns the base spec id.
func (g *GateReader) BaseSpecID() (*big.Int, error) {
	return g.readUint(selBaseSpecID, "baseSpecId")
}

// PayToken returns the configured payment-token address.
func (g *GateReader) PayToken() (common.Address, error) {
	out, err := g.client.CallContract(g.addr.Hex(), selBuyWithToken)
	if err != nil {
		return common.Address{}, fmt.Errorf("gate buywithtoken: %w", err)
	}
	return DecodeAddress(out)
}

// Paused reports whether minting is paused on chain.
func (g *GateReader) Paused() (bool, error) {
	out, err := g.client.CallContract(g.addr.Hex(), selPaused)
	if err != nil {
		return false, fmt.Errorf("gate paused: %w", err)
	}
	return DecodeBool(out)
}

func (g *GateReader) readUint(selector, name string) (*big.Int, error) {
	out, err := g.client.CallContract(g.addr.Hex(), selector)
	if err != nil {
		return nil, fmt.Errorf("gate %s: %w", name, err)
	}
	return DecodeUint(out)
}

// HeaderEntropy implements gate.Entropy from the latest block header. The
// preview it feeds is advisory: the block that finally includes the mint
// transaction decides the real draw.
type HeaderEntropy struct {
	client *chain.EVMClient
}

// NewHeaderEntropy creates an entropy source over client.
func NewHeaderEntropy(client *chain.EVMClient) *HeaderEntropy {
	return &HeaderEntropy{client: client}
}

// Sample returns the latest block's timestamp and difficulty.
func (h *HeaderEntropy) Sample() (*big.Int, *big.Int, error) {
	hdr, err := h.client.LatestHeader()
	if err != nil {
		return nil, nil, fmt.Errorf("fetching latest header: %w", err)
	}
	return hdr.Timestamp, hdr.Difficulty, nil
}
