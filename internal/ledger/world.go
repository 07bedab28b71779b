package ledger

import (
	"errors"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/common"
)

// Vault is an in-memory stake vault: per-address share balances plus a
// settable price per full share (1e18 fixed point). Implements gate.Vault.
type Vault struct {
	mu       sync.Mutex
	balances map[common.Address]*big.Int
	price    *big.Int
}

// NewVault creates a vault with the given price per full share.
func NewVault(pricePerFullShare *big.Int) *Vault {
	return &Vault{
		balances: make(map[common.Address]*big.Int),
		price:    new(big.Int).Set(pricePerFullShare),
	}
}

// Deposit credits shares to owner.
func (v *Vault) Deposit(owner common.Address, shares *big.Int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	cur := v.balances[owner]
	if cur == nil {
		cur = new(big.Int)
	}
	v.balances[owner] = new(big.Int).Add(cur, shares)
}

// SetPricePerFullShare updates the share price.
func (v *Vault) SetPricePerFullShare(price *big.Int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.price = new(big.Int).Set(price)
}

// BalanceOf returns owner's share balance.
func (v *Vault) BalanceOf(owner common.Address) (*big.Int, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if b := v.balances[owner]; b != nil {
		return new(big.Int).Set(b), nil
	}
	return new(big.Int), nil
}

// PricePerFullShare returns the current share price.
func (v *Vault) PricePerFullShare() (*big.Int, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return new(big.Int).Set(v.price), nil
}

// Controller resolves a rotatable rewards address. Implements
// gate.Controller.
type Controller struct {
	mu      sync.Mutex
	rewards common.Address
}

// NewController creates a controller pointing at rewards.
func NewController(rewards common.Address) *Controller {
	return &Controller{rewards: rewards}
}

// SetRewards rotates the rewards address.
func (c *Controller) SetRewards(addr common.Address) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rewards = addr
}

// Rewards returns the current rewards address.
func (c *Controller) Rewards() (common.Address, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rewards, nil
}

// MintRecord is one bot issued by the Issuer.
type MintRecord struct {
	ID     uint64
	Owner  common.Address
	SpecID *big.Int
}

// Issuer records every bot it is asked to mint. Implements gate.Issuer.
// FailWith makes the next Mint call fail, for rollback tests.
type Issuer struct {
	mu     sync.Mutex
	nextID uint64
	minted []MintRecord
	fail   error
}

// NewIssuer creates an issuer with ids starting at 1.
func NewIssuer() *Issuer {
	return &Issuer{nextID: 1}
}

// Mint records a new bot for owner.
func (i *Issuer) Mint(to common.Address, specID *big.Int) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.fail != nil {
		err := i.fail
		i.fail = nil
		return err
	}
	i.minted = append(i.minted, MintRecord{
		ID:     i.nextID,
		Owner:  to,
		SpecID: new(big.Int).Set(specID),
	})
	i.nextID++
	return nil
}

// FailWith makes the next Mint return err instead of minting.
func (i *Issuer) FailWith(err error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if err == nil {
		err = errors.New("issuer failure")
	}
	i.fail = err
}

// Minted returns a copy of the issuance log.
func (i *Issuer) Minted() []MintRecord {
	i.mu.Lock()
	defer i.mu.Unlock()
	out := make([]MintRecord, len(i.minted))
	copy(out, i.minted)
	return out
}
