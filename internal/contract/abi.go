// Package contract holds the thin ABI layer for talking to the deployed
// gate and its collaborators: keccak selectors, 32-byte word encoding for
// the handful of types the gate's functions use, and calldata builders.
package contract

import (
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/crypto/sha3"
)

// Selector returns the 0x-prefixed 4-byte selector for a canonical function
// signature, e.g. "balanceOf(address)".
func Selector(sig string) string {
	return "0x" + hex.EncodeToString(keccak([]byte(sig))[:4])
}

func keccak(data []byte) []byte {
	h := sha3.NewLegacyKeccak256()
	h.Write(data)
	return h.Sum(nil)
}

// EncodeAddress encodes an address as a left-padded 32-byte word (no 0x).
func EncodeAddress(addr common.Address) string {
	return fmt.Sprintf("%064s", strings.ToLower(strings.TrimPrefix(addr.Hex(), "0x")))
}

// EncodeUint encodes an unsigned integer as a 32-byte word (no 0x).
func EncodeUint(n *big.Int) (string, error) {
	if n == nil || n.Sign() < 0 {
		return "", fmt.Errorf("uint encoding requires a non-negative value")
	}
	if n.BitLen() > 256 {
		return "", fmt.Errorf("value %s does not fit in 256 bits", n)
	}
	return fmt.Sprintf("%064x", n), nil
}

// DecodeUint decodes a single-word hex result into a big.Int. An empty
// result ("0x") decodes as zero, matching eth_call on a missing value.
func DecodeUint(hexData string) (*big.Int, error) {
	s := strings.TrimPrefix(hexData, "0x")
	if s == "" {
		return new(big.Int), nil
	}
	n, ok := new(big.Int).SetString(s, 16)
	if !ok {
		return nil, fmt.Errorf("could not parse uint result: %s", hexData)
	}
	return n, nil
}

// DecodeBool decodes a single-word hex result into a bool.
func DecodeBool(hexData string) (bool, error) {
	n, err := DecodeUint(hexData)
	if err != nil {
		return false, err
	}
	return n.Sign() != 0, nil
}

// DecodeAddress decodes a single-word hex result into an address (the low
// 20 bytes of the word).
func DecodeAddress(hexData string) (common.Address, error) {
	data, err := hex.DecodeString(strings.TrimPrefix(hexData, "0x"))
	if err != nil {
		return common.Address{}, fmt.Errorf("decoding hex result: %w", err)
	}
	if len(data) < 32 {
		return common.Address{}, fmt.Errorf("result too short for an address word: %d bytes", len(data))
	}
	return common.BytesToAddress(data[12:32]), nil
}
