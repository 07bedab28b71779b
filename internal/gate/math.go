package gate

import "math/big"

var (
	gwei  = big.NewInt(1_000_000_000)
	eight = big.NewInt(8)
	ten   = big.NewInt(10)
)

// ComputeStake converts a vault share balance and the vault's price per full
// share into the caller's underlying stake:
//
//	stake = (balance / 1e9) * (pricePerFullShare / 1e9)
//
// Both divisions truncate before the multiply. The deployed gate divides by
// 1e9 twice instead of dividing the product by 1e18 so the intermediate
// product cannot overflow a 256-bit word; the low-order digits lost to the
// early truncation are part of the contract's observable behavior, so this
// must not be rewritten as (balance*price)/1e18.
func ComputeStake(balance, pricePerFullShare *big.Int) *big.Int {
	b := new(big.Int).Quo(balance, gwei)
	p := new(big.Int).Quo(pricePerFullShare, gwei)
	return b.Mul(b, p)
}

// SplitPrice splits a bot price into the rewards share and the treasury
// share. The rewards share is floor(price*8/10); the treasury receives the
// exact remainder, so the two always sum to price even when price is not
// divisible by 10.
func SplitPrice(price *big.Int) (rewards, treasury *big.Int) {
	rewards = new(big.Int).Mul(price, eight)
	rewards.Quo(rewards, ten)
	treasury = new(big.Int).Sub(price, rewards)
	return rewards, treasury
}
