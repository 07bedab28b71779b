package contract

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// Selectors for the gate contract and its collaborators. balanceOf,
// allowance, and approve are the standard EIP-20 selectors; the vault's
// getPricePerFullShare follows the yearn-style vault interface.
var (
	selBalanceOf         = Selector("balanceOf(address)")         // 0x70a08231
	selAllowance         = Selector("allowance(address,address)") // 0xdd62ed3e
	selPricePerFullShare = Selector("getPricePerFullShare()")
	selRewards           = Selector("rewards()")

	selMint            = Selector("mint()")
	selSetAmount       = Selector("setAmount(uint256)")
	selSetBaseSpecID   = Selector("setBaseSpecId(uint256)")
	selSetBuyWithToken = Selector("setBuyWithToken(address)")
	selSetPrice        = Selector("setPrice(uint256)")
	selPause           = Selector("pause()")
	selUnpause         = Selector("unpause()")
	selGrantRole       = Selector("grantRole(bytes32,address)")
	selRevokeRole      = Selector("revokeRole(bytes32,address)")

	// Public-variable getters on the gate.
	selAmount       = Selector("amount()")
	selPrice        = Selector("price()")
	selBuyWithToken = Selector("buywithtoken()")
	selBaseSpecID   = Selector("baseSpecId()")
	selPaused       = Selector("paused()") // 0x5c975abb
)

// RoleHash returns the keccak256 hash a named role is keyed by on chain.
// The admin role is the zero hash, per OpenZeppelin's DEFAULT_ADMIN_ROLE.
func RoleHash(name string) common.Hash {
	if name == "admin" {
		return common.Hash{}
	}
	var label string
	switch name {
	case "operator":
		label = "OPERATOR_ROLE"
	case "pauser":
		label = "PAUSER_ROLE"
	default:
		label = name
	}
	return common.BytesToHash(keccak([]byte(label)))
}

// MintCalldata builds calldata for mint().
func MintCalldata() string { return selMint }

// SetAmountCalldata builds calldata for setAmount(uint256).
func SetAmountCalldata(amount *big.Int) (string, error) {
	word, err := EncodeUint(amount)
	if err != nil {
		return "", fmt.Errorf("encoding amount: %w", err)
	}
	return selSetAmount + word, nil
}

// SetBaseSpecIDCalldata builds calldata for setBaseSpecId(uint256).
func SetBaseSpecIDCalldata(id *big.Int) (string, error) {
	word, err := EncodeUint(id)
	if err != nil {
		return "", fmt.Errorf("encoding base spec id: %w", err)
	}
	return selSetBaseSpecID + word, nil
}

// SetBuyWithTokenCalldata builds calldata for setBuyWithToken(address).
func SetBuyWithTokenCalldata(token common.Address) string {
	return selSetBuyWithToken + EncodeAddress(token)
}

// SetPriceCalldata builds calldata for setPrice(uint256).
func SetPriceCalldata(price *big.Int) (string, error) {
	word, err := EncodeUint(price)
	if err != nil {
		return "", fmt.Errorf("encoding price: %w", err)
	}
	return selSetPrice + word, nil
}

// PauseCalldata builds calldata for pause().
func PauseCalldata() string { return selPause }

// UnpauseCalldata builds calldata for unpause().
func UnpauseCalldata() string { return selUnpause }

// GrantRoleCalldata builds calldata for grantRole(bytes32,address).
func GrantRoleCalldata(role common.Hash, addr common.Address) string {
	return selGrantRole + role.Hex()[2:] + EncodeAddress(addr)
}

// RevokeRoleCalldata builds calldata for revokeRole(bytes32,address).
func RevokeRoleCalldata(role common.Hash, addr common.Address) string {
	return selRevokeRole + role.Hex()[2:] + EncodeAddress(addr)
}
