package gate

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/crypto/sha3"
)

// Entropy supplies the block-level values a tier draw is seeded from.
// On chain this is block.timestamp and block.difficulty; the ledger package
// provides deterministic sources for tests and simulation.
type Entropy interface {
	Sample() (timestamp, difficulty *big.Int, err error)
}

// NumTiers is the number of rarity tiers a mint can land on.
const NumTiers = 4

// TierWeights is the percentage weight of each tier, rarest first.
var TierWeights = [NumTiers]uint64{5, 15, 30, 50}

// Seed reduces keccak256(timestamp ‖ difficulty) modulo 100, with both
// inputs packed as 32-byte big-endian words. The deployed gate derives its
// draw the same way, so the hash input layout must not change.
//
// This is not a secure randomness source: a block producer can bias the
// draw. It is kept because the tier is cosmetic and compatibility with the
// on-chain draw matters more than unpredictability.
func Seed(timestamp, difficulty *big.Int) uint64 {
	h := sha3.NewLegacyKeccak256()
	h.Write(common.BigToHash(timestamp).Bytes())
	h.Write(common.BigToHash(difficulty).Bytes())
	seed := new(big.Int).SetBytes(h.Sum(nil))
	return seed.Mod(seed, big.NewInt(100)).Uint64()
}

// TierFor maps a seed in [0,100) onto a tier. The bands give tier 0 a 5%
// weight, tier 1 15%, tier 2 30%, and tier 3 the remaining 50%.
func TierFor(seed uint64) uint64 {
	switch {
	case seed >= 95:
		return 0
	case seed >= 80:
		return 1
	case seed >= 50:
		return 2
	default:
		return 3
	}
}
