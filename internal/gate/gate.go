// Package gate implements the bot mint gate: a stake-gated, fee-paying mint
// of one of four bot NFTs. The gate itself holds only configuration, roles,
// and a pause flag; the vault, reward controller, payment token, and NFT
// issuer are injected interfaces, so the same engine runs against the
// in-memory world in the ledger package or against read-only chain adapters.
package gate

import (
	"fmt"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/common"
)

// Vault is the external staking vault the eligibility check reads from.
type Vault interface {
	// BalanceOf returns the caller's recorded share balance.
	BalanceOf(owner common.Address) (*big.Int, error)
	// PricePerFullShare returns the vault's share-to-underlying ratio,
	// in 1e18 fixed point.
	PricePerFullShare() (*big.Int, error)
}

// Controller resolves the current reward-collection address. The address may
// rotate over the gate's life, so it is re-queried on every mint.
type Controller interface {
	Rewards() (common.Address, error)
}

// Issuer mints and assigns a new bot NFT. The gate keeps no record of what
// was issued and does not verify the result.
type Issuer interface {
	Mint(to common.Address, specID *big.Int) error
}

// Token moves ERC-20 value on the caller's pre-approved allowance.
type Token interface {
	TransferFrom(from, to common.Address, amount *big.Int) error
}

// TokenSource resolves the configured payment-token address to a Token.
// The operator can repoint the gate at a different token at any time.
type TokenSource interface {
	Token(addr common.Address) (Token, error)
}

// State exposes world-state journaling so a failed mint rolls back every
// transfer it already made. The API mirrors go-ethereum's StateDB.
type State interface {
	Snapshot() int
	RevertToSnapshot(id int)
}

// Config is the gate's operator-controlled configuration. Treasury is fixed
// at construction; the rest is mutable through the operator setters.
type Config struct {
	// RequiredStake is the minimum underlying vault stake, in the staked
	// token's smallest unit.
	RequiredStake *big.Int
	// PayToken is the ERC-20 token the mint fee is paid in.
	PayToken common.Address
	// Price is the bot price in PayToken's smallest unit.
	Price *big.Int
	// BaseSpecID is added to the drawn tier to form the spec id sent to
	// the issuer.
	BaseSpecID *big.Int
	// Treasury receives the 20% share of every mint fee.
	Treasury common.Address
}

// Deps are the gate's injected collaborators.
type Deps struct {
	Vault      Vault
	Controller Controller
	Issuer     Issuer
	Tokens     TokenSource
	Entropy    Entropy
	// State is optional; without it a failed mint cannot roll back
	// transfers, so only supply nil when the token source is read-only.
	State State
}

// Receipt describes one successful mint.
type Receipt struct {
	Caller       common.Address
	Seed         uint64
	Tier         uint64
	SpecID       *big.Int
	Rewards      common.Address
	RewardsPaid  *big.Int
	TreasuryPaid *big.Int
}

// Gate validates mint eligibility, executes the 80/20 fee split, draws a
// rarity tier, and requests issuance. All operations are serialized; the
// ambient ledger model has no concurrent transactions.
type Gate struct {
	mu     sync.Mutex
	cfg    Config
	roles  *Roles
	paused bool
	deps   Deps
}

// New creates a gate in the active (unpaused) state. admin receives the
// admin, operator, and pauser roles.
func New(cfg Config, deps Deps, admin common.Address) (*Gate, error) {
	if cfg.RequiredStake == nil || cfg.Price == nil || cfg.BaseSpecID == nil {
		return nil, fmt.Errorf("gate config: required stake, price, and base spec id must be set")
	}
	if deps.Vault == nil || deps.Controller == nil || deps.Issuer == nil || deps.Tokens == nil || deps.Entropy == nil {
		return nil, fmt.Errorf("gate deps: vault, controller, issuer, tokens, and entropy are required")
	}
	return &Gate{
		cfg: Config{
			RequiredStake: new(big.Int).Set(cfg.RequiredStake),
			PayToken:      cfg.PayToken,
			Price:         new(big.Int).Set(cfg.Price),
			BaseSpecID:    new(big.Int).Set(cfg.BaseSpecID),
			Treasury:      cfg.Treasury,
		},
		roles: NewRoles(admin),
		deps:  deps,
	}, nil
}

// Mint checks the caller's stake, collects the fee split 80/20 between the
// controller's current rewards address and the treasury, draws a tier, and
// asks the issuer for one bot. Any failure leaves no partial state: the
// world is reverted to its pre-mint snapshot.
func (g *Gate) Mint(caller common.Address) (*Receipt, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.paused {
		return nil, ErrPaused
	}

	stake, err := g.stakeOf(caller)
	if err != nil {
		return nil, err
	}
	if stake.Cmp(g.cfg.RequiredStake) < 0 {
		return nil, fmt.Errorf("%w: have %s, need %s", ErrInsufficientStake, stake, g.cfg.RequiredStake)
	}

	rewards, err := g.deps.Controller.Rewards()
	if err != nil {
		return nil, fmt.Errorf("resolving rewards address: %w", err)
	}
	token, err := g.deps.Tokens.Token(g.cfg.PayToken)
	if err != nil {
		return nil, fmt.Errorf("resolving payment token: %w", err)
	}

	ts, diff, err := g.deps.Entropy.Sample()
	if err != nil {
		return nil, fmt.Errorf("sampling entropy: %w", err)
	}
	seed := Seed(ts, diff)
	tier := TierFor(seed)
	specID := new(big.Int).Add(g.cfg.BaseSpecID, new(big.Int).SetUint64(tier))

	amount0, amount1 := SplitPrice(g.cfg.Price)

	var snap int
	if g.deps.State != nil {
		snap = g.deps.State.Snapshot()
	}
	revert := func() {
		if g.deps.State != nil {
			g.deps.State.RevertToSnapshot(snap)
		}
	}

	if err := token.TransferFrom(caller, rewards, amount0); err != nil {
		revert()
		return nil, fmt.Errorf("paying rewards share: %w", err)
	}
	if err := token.TransferFrom(caller, g.cfg.Treasury, amount1); err != nil {
		revert()
		return nil, fmt.Errorf("paying treasury share: %w", err)
	}
	if err := g.deps.Issuer.Mint(caller, specID); err != nil {
		revert()
		return nil, fmt.Errorf("issuing bot: %w", err)
	}

	return &Receipt{
		Caller:       caller,
		Seed:         seed,
		Tier:         tier,
		SpecID:       specID,
		Rewards:      rewards,
		RewardsPaid:  amount0,
		TreasuryPaid: amount1,
	}, nil
}

// StakeOf returns the caller's underlying vault stake per ComputeStake.
func (g *Gate) StakeOf(owner common.Address) (*big.Int, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.stakeOf(owner)
}

func (g *Gate) stakeOf(owner common.Address) (*big.Int, error) {
	balance, err := g.deps.Vault.BalanceOf(owner)
	if err != nil {
		return nil, fmt.Errorf("reading vault balance: %w", err)
	}
	price, err := g.deps.Vault.PricePerFullShare()
	if err != nil {
		return nil, fmt.Errorf("reading vault share price: %w", err)
	}
	return ComputeStake(balance, price), nil
}

// SetAmount updates the required-stake threshold. Operator only.
func (g *Gate) SetAmount(caller common.Address, amount *big.Int) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.requireRole(RoleOperator, caller); err != nil {
		return err
	}
	g.cfg.RequiredStake = new(big.Int).Set(amount)
	return nil
}

// SetBaseSpecID updates the base spec id the drawn tier is added to.
// Operator only.
func (g *Gate) SetBaseSpecID(caller common.Address, id *big.Int) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.requireRole(RoleOperator, caller); err != nil {
		return err
	}
	g.cfg.BaseSpecID = new(big.Int).Set(id)
	return nil
}

// SetBuyWithToken repoints the gate at a different payment token.
// Operator only.
func (g *Gate) SetBuyWithToken(caller common.Address, token common.Address) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.requireRole(RoleOperator, caller); err != nil {
		return err
	}
	g.cfg.PayToken = token
	return nil
}

// SetPrice updates the bot price. Operator only.
func (g *Gate) SetPrice(caller common.Address, price *big.Int) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.requireRole(RoleOperator, caller); err != nil {
		return err
	}
	g.cfg.Price = new(big.Int).Set(price)
	return nil
}

// Pause disables minting. Pauser only; fails if already paused. Setters and
// role management are unaffected by pause state.
func (g *Gate) Pause(caller common.Address) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.requireRole(RolePauser, caller); err != nil {
		return err
	}
	if g.paused {
		return ErrPaused
	}
	g.paused = true
	return nil
}

// Unpause re-enables minting. Pauser only; fails if not paused.
func (g *Gate) Unpause(caller common.Address) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.requireRole(RolePauser, caller); err != nil {
		return err
	}
	if !g.paused {
		return ErrNotPaused
	}
	g.paused = false
	return nil
}

// Paused reports whether minting is disabled.
func (g *Gate) Paused() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.paused
}

// GrantRole gives addr the role. Admin only.
func (g *Gate) GrantRole(caller common.Address, role Role, addr common.Address) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.roles.Grant(caller, role, addr)
}

// RevokeRole removes the role from addr. Admin only.
func (g *Gate) RevokeRole(caller common.Address, role Role, addr common.Address) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.roles.Revoke(caller, role, addr)
}

// HasRole reports whether addr holds role.
func (g *Gate) HasRole(role Role, addr common.Address) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.roles.Has(role, addr)
}

// Config returns a copy of the current configuration.
func (g *Gate) Config() Config {
	g.mu.Lock()
	defer g.mu.Unlock()
	return Config{
		RequiredStake: new(big.Int).Set(g.cfg.RequiredStake),
		PayToken:      g.cfg.PayToken,
		Price:         new(big.Int).Set(g.cfg.Price),
		BaseSpecID:    new(big.Int).Set(g.cfg.BaseSpecID),
		Treasury:      g.cfg.Treasury,
	}
}

func (g *Gate) requireRole(role Role, caller common.Address) error {
	if !g.roles.Has(role, caller) {
		return fmt.Errorf("%s %s: %w", role, caller.Hex(), ErrUnauthorized)
	}
	return nil
}
