package ledger

import (
	"math/big"
	"sync"
)

// FixedEntropy always returns the same timestamp and difficulty, pinning the
// tier draw for tests.
type FixedEntropy struct {
	Timestamp  *big.Int
	Difficulty *big.Int
}

// Sample returns the fixed values.
func (e FixedEntropy) Sample() (*big.Int, *big.Int, error) {
	return new(big.Int).Set(e.Timestamp), new(big.Int).Set(e.Difficulty), nil
}

// SteppedEntropy returns a fixed timestamp and a difficulty that increments
// on every draw, walking the seed space deterministically. Used by the
// simulate command to exercise the tier distribution.
type SteppedEntropy struct {
	mu         sync.Mutex
	timestamp  *big.Int
	difficulty *big.Int
}

// NewSteppedEntropy creates a stepped source starting at difficulty 0.
func NewSteppedEntropy(timestamp *big.Int) *SteppedEntropy {
	return &SteppedEntropy{
		timestamp:  new(big.Int).Set(timestamp),
		difficulty: new(big.Int),
	}
}

// Sample returns the timestamp and the next difficulty.
func (e *SteppedEntropy) Sample() (*big.Int, *big.Int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	d := new(big.Int).Set(e.difficulty)
	e.difficulty.Add(e.difficulty, big.NewInt(1))
	return new(big.Int).Set(e.timestamp), d, nil
}
