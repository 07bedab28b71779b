package gate_test

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oxmmty/botmint/internal/gate"
	"github.com/oxmmty/botmint/internal/ledger"
)

var (
	minter    = common.HexToAddress("0x00000000000000000000000000000000000000a1")
	stranger  = common.HexToAddress("0x00000000000000000000000000000000000000a2")
	treasury  = common.HexToAddress("0x00000000000000000000000000000000000000c0")
	rewards   = common.HexToAddress("0x00000000000000000000000000000000000000c1")
	tokenAddr = common.HexToAddress("0x00000000000000000000000000000000000000d0")
)

func e18(n int64) *big.Int {
	wad := new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil)
	return wad.Mul(wad, big.NewInt(n))
}

// world bundles the in-memory collaborators behind one gate.
type world struct {
	st         *ledger.State
	vault      *ledger.Vault
	controller *ledger.Controller
	issuer     *ledger.Issuer
	token      *ledger.Token
	gate       *gate.Gate
}

// newWorld builds a gate with a 5e18 stake threshold and a 10e18 price,
// a minter staked exactly at the threshold, funded and approved for one
// mint.
func newWorld(t *testing.T) *world {
	t.Helper()

	st := ledger.NewState()
	vault := ledger.NewVault(e18(1)) // price per full share at par
	controller := ledger.NewController(rewards)
	issuer := ledger.NewIssuer()

	vault.Deposit(minter, e18(5))

	token := st.Handle(tokenAddr)
	token.Mint(minter, e18(10))
	token.Approve(minter, ledger.GateSpender(), e18(10))

	g, err := gate.New(
		gate.Config{
			RequiredStake: e18(5),
			PayToken:      tokenAddr,
			Price:         e18(10),
			BaseSpecID:    big.NewInt(100),
			Treasury:      treasury,
		},
		gate.Deps{
			Vault:      vault,
			Controller: controller,
			Issuer:     issuer,
			Tokens:     st,
			Entropy:    ledger.FixedEntropy{Timestamp: big.NewInt(1_700_000_000), Difficulty: big.NewInt(42)},
			State:      st,
		},
		adminAddr,
	)
	require.NoError(t, err)

	return &world{st: st, vault: vault, controller: controller, issuer: issuer, token: token, gate: g}
}

func TestMintAtExactThreshold(t *testing.T) {
	w := newWorld(t)

	r, err := w.gate.Mint(minter)
	require.NoError(t, err)

	// 80/20 split of 10e18.
	assert.Equal(t, e18(8).String(), r.RewardsPaid.String())
	assert.Equal(t, e18(2).String(), r.TreasuryPaid.String())
	assert.Equal(t, e18(8).String(), w.token.BalanceOf(rewards).String())
	assert.Equal(t, e18(2).String(), w.token.BalanceOf(treasury).String())
	assert.Equal(t, "0", w.token.BalanceOf(minter).String())

	// Spec id lands in [base, base+3].
	assert.True(t, r.SpecID.Cmp(big.NewInt(100)) >= 0)
	assert.True(t, r.SpecID.Cmp(big.NewInt(103)) <= 0)
	assert.Equal(t, gate.TierFor(r.Seed), r.Tier)

	minted := w.issuer.Minted()
	require.Len(t, minted, 1)
	assert.Equal(t, minter, minted[0].Owner)
	assert.Equal(t, r.SpecID.String(), minted[0].SpecID.String())
}

func TestMintInsufficientStake(t *testing.T) {
	w := newWorld(t)

	_, err := w.gate.Mint(stranger)
	assert.ErrorIs(t, err, gate.ErrInsufficientStake)
	assert.Empty(t, w.issuer.Minted())
	assert.Equal(t, "0", w.token.BalanceOf(treasury).String())
}

func TestMintStakeJustBelowThreshold(t *testing.T) {
	w := newWorld(t)

	// One full token below the threshold. A sub-gwei shortfall would be
	// erased by the truncating stake math, so stay coarse.
	require.NoError(t, w.gate.SetAmount(adminAddr, e18(6)))

	_, err := w.gate.Mint(minter)
	assert.ErrorIs(t, err, gate.ErrInsufficientStake)
}

func TestMintStakeTracksSharePrice(t *testing.T) {
	w := newWorld(t)

	// Share price doubles: 5 shares are now worth 10e18, threshold 10e18.
	w.vault.SetPricePerFullShare(e18(2))
	require.NoError(t, w.gate.SetAmount(adminAddr, e18(10)))

	_, err := w.gate.Mint(minter)
	require.NoError(t, err)
}

func TestMintWhilePaused(t *testing.T) {
	w := newWorld(t)
	require.NoError(t, w.gate.Pause(adminAddr))

	_, err := w.gate.Mint(minter)
	assert.ErrorIs(t, err, gate.ErrPaused)
	assert.Empty(t, w.issuer.Minted())

	require.NoError(t, w.gate.Unpause(adminAddr))
	_, err = w.gate.Mint(minter)
	require.NoError(t, err)
}

func TestPauseStateMachine(t *testing.T) {
	w := newWorld(t)

	assert.False(t, w.gate.Paused())
	assert.ErrorIs(t, w.gate.Unpause(adminAddr), gate.ErrNotPaused)

	require.NoError(t, w.gate.Pause(adminAddr))
	assert.True(t, w.gate.Paused())
	assert.ErrorIs(t, w.gate.Pause(adminAddr), gate.ErrPaused)

	// Pause does not gate configuration.
	require.NoError(t, w.gate.SetPrice(adminAddr, e18(3)))
}

func TestPauseRequiresPauserRole(t *testing.T) {
	w := newWorld(t)

	assert.ErrorIs(t, w.gate.Pause(stranger), gate.ErrUnauthorized)
	assert.ErrorIs(t, w.gate.Unpause(stranger), gate.ErrUnauthorized)

	require.NoError(t, w.gate.GrantRole(adminAddr, gate.RolePauser, stranger))
	require.NoError(t, w.gate.Pause(stranger))
}

func TestRollbackWhenTreasuryTransferFails(t *testing.T) {
	w := newWorld(t)

	// Allowance covers the full price but the balance only covers the
	// first transfer: 8e18 succeeds, the 2e18 treasury leg fails, and
	// everything must roll back.
	burn := common.HexToAddress("0x00000000000000000000000000000000000000ff")
	require.NoError(t, w.token.TransferFrom(minter, burn, e18(2)))
	w.token.Approve(minter, ledger.GateSpender(), e18(10))

	_, err := w.gate.Mint(minter)
	require.Error(t, err)
	assert.ErrorIs(t, err, ledger.ErrInsufficientBalance)

	assert.Equal(t, e18(8).String(), w.token.BalanceOf(minter).String())
	assert.Equal(t, "0", w.token.BalanceOf(rewards).String())
	assert.Equal(t, "0", w.token.BalanceOf(treasury).String())
	assert.Equal(t, e18(10).String(), w.token.Allowance(minter, ledger.GateSpender()).String())
	assert.Empty(t, w.issuer.Minted())
}

func TestRollbackWhenIssuerFails(t *testing.T) {
	w := newWorld(t)
	w.issuer.FailWith(nil)

	_, err := w.gate.Mint(minter)
	require.Error(t, err)

	// Both transfers undone.
	assert.Equal(t, e18(10).String(), w.token.BalanceOf(minter).String())
	assert.Equal(t, "0", w.token.BalanceOf(rewards).String())
	assert.Equal(t, "0", w.token.BalanceOf(treasury).String())
	assert.Empty(t, w.issuer.Minted())

	// The world is intact, so a retry succeeds.
	_, err = w.gate.Mint(minter)
	require.NoError(t, err)
}

func TestMintInsufficientAllowance(t *testing.T) {
	w := newWorld(t)
	w.token.Approve(minter, ledger.GateSpender(), e18(7))

	_, err := w.gate.Mint(minter)
	assert.ErrorIs(t, err, ledger.ErrInsufficientAllowance)
	assert.Equal(t, e18(10).String(), w.token.BalanceOf(minter).String())
}

func TestBackToBackMintsDrainAllowance(t *testing.T) {
	w := newWorld(t)
	w.token.Mint(minter, e18(10)) // funds for two, allowance for one

	_, err := w.gate.Mint(minter)
	require.NoError(t, err)

	_, err = w.gate.Mint(minter)
	assert.ErrorIs(t, err, ledger.ErrInsufficientAllowance)
}

func TestRewardsAddressReQueriedEveryMint(t *testing.T) {
	w := newWorld(t)
	w.token.Mint(minter, e18(10))
	w.token.Approve(minter, ledger.GateSpender(), e18(20))

	_, err := w.gate.Mint(minter)
	require.NoError(t, err)

	rotated := common.HexToAddress("0x00000000000000000000000000000000000000c2")
	w.controller.SetRewards(rotated)

	r, err := w.gate.Mint(minter)
	require.NoError(t, err)
	assert.Equal(t, rotated, r.Rewards)
	assert.Equal(t, e18(8).String(), w.token.BalanceOf(rotated).String())
}

func TestSettersRequireOperatorRole(t *testing.T) {
	w := newWorld(t)

	assert.ErrorIs(t, w.gate.SetAmount(stranger, e18(1)), gate.ErrUnauthorized)
	assert.ErrorIs(t, w.gate.SetPrice(stranger, e18(1)), gate.ErrUnauthorized)
	assert.ErrorIs(t, w.gate.SetBaseSpecID(stranger, big.NewInt(7)), gate.ErrUnauthorized)
	assert.ErrorIs(t, w.gate.SetBuyWithToken(stranger, tokenAddr), gate.ErrUnauthorized)

	// Unchanged after the rejected calls.
	cfg := w.gate.Config()
	assert.Equal(t, e18(5).String(), cfg.RequiredStake.String())
	assert.Equal(t, e18(10).String(), cfg.Price.String())
}

func TestSettersUpdateConfig(t *testing.T) {
	w := newWorld(t)
	otherToken := common.HexToAddress("0x00000000000000000000000000000000000000d1")

	require.NoError(t, w.gate.SetAmount(adminAddr, e18(7)))
	require.NoError(t, w.gate.SetPrice(adminAddr, e18(12)))
	require.NoError(t, w.gate.SetBaseSpecID(adminAddr, big.NewInt(200)))
	require.NoError(t, w.gate.SetBuyWithToken(adminAddr, otherToken))

	cfg := w.gate.Config()
	assert.Equal(t, e18(7).String(), cfg.RequiredStake.String())
	assert.Equal(t, e18(12).String(), cfg.Price.String())
	assert.Equal(t, "200", cfg.BaseSpecID.String())
	assert.Equal(t, otherToken, cfg.PayToken)
}

func TestGrantedOperatorCanConfigure(t *testing.T) {
	w := newWorld(t)

	require.NoError(t, w.gate.GrantRole(adminAddr, gate.RoleOperator, stranger))
	require.NoError(t, w.gate.SetPrice(stranger, e18(1)))

	require.NoError(t, w.gate.RevokeRole(adminAddr, gate.RoleOperator, stranger))
	assert.ErrorIs(t, w.gate.SetPrice(stranger, e18(2)), gate.ErrUnauthorized)
}

func TestSetPriceChangesSplit(t *testing.T) {
	w := newWorld(t)
	require.NoError(t, w.gate.SetPrice(adminAddr, big.NewInt(11)))

	r, err := w.gate.Mint(minter)
	require.NoError(t, err)
	assert.Equal(t, "8", r.RewardsPaid.String())
	assert.Equal(t, "3", r.TreasuryPaid.String())
}

func TestNewValidatesConfigAndDeps(t *testing.T) {
	_, err := gate.New(gate.Config{}, gate.Deps{}, adminAddr)
	assert.Error(t, err)

	st := ledger.NewState()
	cfg := gate.Config{
		RequiredStake: e18(1),
		Price:         e18(1),
		BaseSpecID:    big.NewInt(0),
	}
	_, err = gate.New(cfg, gate.Deps{Tokens: st}, adminAddr)
	assert.Error(t, err)
}
