// Package ledger is an in-memory stand-in for the on-chain world the gate
// runs against: journaled ERC-20 token state, a stake vault, a reward
// controller, a recording bot issuer, and deterministic entropy sources.
// It backs the simulate command and the gate engine's tests.
package ledger

import (
	"errors"
	"fmt"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/common"

	"github.com/oxmmty/botmint/internal/gate"
)

// Token-transfer failures, matching the reasons an ERC-20 transferFrom
// reverts for.
var (
	ErrInsufficientBalance   = errors.New("insufficient token balance")
	ErrInsufficientAllowance = errors.New("insufficient token allowance")
)

// State holds balances and allowances for any number of tokens, with a
// snapshot journal so a multi-transfer operation can be rolled back as a
// unit. Snapshot and RevertToSnapshot follow go-ethereum's StateDB API.
type State struct {
	mu sync.Mutex

	// balances[token][holder] and allowances[token][owner][spender].
	balances   map[common.Address]map[common.Address]*big.Int
	allowances map[common.Address]map[common.Address]map[common.Address]*big.Int

	// journal holds one undo closure per mutation; snapshots are journal
	// lengths.
	journal   []func()
	snapshots []int
}

// NewState creates an empty world state.
func NewState() *State {
	return &State{
		balances:   make(map[common.Address]map[common.Address]*big.Int),
		allowances: make(map[common.Address]map[common.Address]map[common.Address]*big.Int),
	}
}

// Snapshot marks the current state and returns an id for RevertToSnapshot.
func (s *State) Snapshot() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshots = append(s.snapshots, len(s.journal))
	return len(s.snapshots) - 1
}

// RevertToSnapshot undoes every mutation recorded since the snapshot was
// taken. Reverting an unknown id panics, as it does in StateDB: it means
// the caller's bookkeeping is broken.
func (s *State) RevertToSnapshot(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id < 0 || id >= len(s.snapshots) {
		panic(fmt.Sprintf("ledger: revert to unknown snapshot %d", id))
	}
	mark := s.snapshots[id]
	for i := len(s.journal) - 1; i >= mark; i-- {
		s.journal[i]()
	}
	s.journal = s.journal[:mark]
	s.snapshots = s.snapshots[:id]
}

// Token returns a handle for the token at addr, creating its bookkeeping on
// first use. Implements gate.TokenSource.
func (s *State) Token(addr common.Address) (gate.Token, error) {
	return &Token{st: s, addr: addr}, nil
}

// Handle returns the concrete token handle for setup code that needs Mint
// and Approve in addition to the gate-facing TransferFrom.
func (s *State) Handle(addr common.Address) *Token {
	return &Token{st: s, addr: addr}
}

// Token is a view of one ERC-20 token inside a State.
type Token struct {
	st   *State
	addr common.Address
}

// Mint credits amount to holder, outside any allowance. Setup helper.
func (t *Token) Mint(holder common.Address, amount *big.Int) {
	t.st.mu.Lock()
	defer t.st.mu.Unlock()
	t.st.addBalance(t.addr, holder, amount)
}

// BalanceOf returns holder's balance.
func (t *Token) BalanceOf(holder common.Address) *big.Int {
	t.st.mu.Lock()
	defer t.st.mu.Unlock()
	return new(big.Int).Set(t.st.balance(t.addr, holder))
}

// Approve sets spender's allowance over owner's balance.
func (t *Token) Approve(owner, spender common.Address, amount *big.Int) {
	t.st.mu.Lock()
	defer t.st.mu.Unlock()
	prev := new(big.Int).Set(t.st.allowance(t.addr, owner, spender))
	t.st.setAllowance(t.addr, owner, spender, new(big.Int).Set(amount))
	token, o, sp := t.addr, owner, spender
	t.st.journal = append(t.st.journal, func() {
		t.st.setAllowance(token, o, sp, prev)
	})
}

// Allowance returns spender's remaining allowance over owner's balance.
func (t *Token) Allowance(owner, spender common.Address) *big.Int {
	t.st.mu.Lock()
	defer t.st.mu.Unlock()
	return new(big.Int).Set(t.st.allowance(t.addr, owner, spender))
}

// TransferFrom moves amount from from to to, consuming from's allowance.
// The gate is the implicit spender: on chain the gate contract is the
// msg.sender of both fee transfers, so the allowance checked here is the one
// the minter granted the gate.
func (t *Token) TransferFrom(from, to common.Address, amount *big.Int) error {
	t.st.mu.Lock()
	defer t.st.mu.Unlock()

	bal := t.st.balance(t.addr, from)
	if bal.Cmp(amount) < 0 {
		return fmt.Errorf("%w: have %s, need %s", ErrInsufficientBalance, bal, amount)
	}
	allowed := t.st.allowance(t.addr, from, gateSpender)
	if allowed.Cmp(amount) < 0 {
		return fmt.Errorf("%w: approved %s, need %s", ErrInsufficientAllowance, allowed, amount)
	}

	prevAllowed := new(big.Int).Set(allowed)
	t.st.setAllowance(t.addr, from, gateSpender, new(big.Int).Sub(allowed, amount))
	t.st.subBalance(t.addr, from, amount)
	t.st.addBalance(t.addr, to, amount)

	token, f, dst, amt := t.addr, from, to, new(big.Int).Set(amount)
	t.st.journal = append(t.st.journal, func() {
		t.st.setAllowance(token, f, gateSpender, prevAllowed)
		t.st.addBalance(token, f, amt)
		t.st.subBalance(token, dst, amt)
	})
	return nil
}

// gateSpender is the implicit spender identity for allowances inside the
// simulated world.
var gateSpender = common.HexToAddress("0x000000000000000000000000000000000000b017")

// GateSpender returns the address allowances must be approved for.
func GateSpender() common.Address { return gateSpender }

// --- unlocked internals ---

func (s *State) balance(token, holder common.Address) *big.Int {
	if b := s.balances[token][holder]; b != nil {
		return b
	}
	return new(big.Int)
}

func (s *State) addBalance(token, holder common.Address, amount *big.Int) {
	if s.balances[token] == nil {
		s.balances[token] = make(map[common.Address]*big.Int)
	}
	s.balances[token][holder] = new(big.Int).Add(s.balance(token, holder), amount)
}

func (s *State) subBalance(token, holder common.Address, amount *big.Int) {
	s.balances[token][holder] = new(big.Int).Sub(s.balance(token, holder), amount)
}

func (s *State) allowance(token, owner, spender common.Address) *big.Int {
	if a := s.allowances[token][owner][spender]; a != nil {
		return a
	}
	return new(big.Int)
}

func (s *State) setAllowance(token, owner, spender common.Address, amount *big.Int) {
	if s.allowances[token] == nil {
		s.allowances[token] = make(map[common.Address]map[common.Address]*big.Int)
	}
	if s.allowances[token][owner] == nil {
		s.allowances[token][owner] = make(map[common.Address]*big.Int)
	}
	s.allowances[token][owner][spender] = amount
}
