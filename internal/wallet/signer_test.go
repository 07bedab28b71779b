package wallet_test

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oxmmty/botmint/internal/wallet"
)

func TestSignTxRecoversSender(t *testing.T) {
	ks := wallet.NewInMemoryKeystore()
	m := wallet.NewManager(&wallet.MemStore{}, ks)
	w, err := m.Import("signer", testKeyHex)
	require.NoError(t, err)

	s := wallet.NewSigner(w, ks)
	assert.Equal(t, w.Address, s.Address())

	chainID := big.NewInt(11155111)
	to := common.HexToAddress("0x1111111111111111111111111111111111111111")
	tx := types.NewTx(&types.DynamicFeeTx{
		ChainID:   chainID,
		Nonce:     7,
		GasTipCap: big.NewInt(1_000_000_000),
		GasFeeCap: big.NewInt(20_000_000_000),
		Gas:       200_000,
		To:        &to,
		Value:     new(big.Int),
		Data:      common.FromHex("0x1249c58b"),
	})

	raw, err := s.SignTx(tx, chainID)
	require.NoError(t, err)
	require.NotEmpty(t, raw)

	var decoded types.Transaction
	require.NoError(t, decoded.UnmarshalBinary(raw))

	sender, err := types.Sender(types.NewLondonSigner(chainID), &decoded)
	require.NoError(t, err)
	assert.Equal(t, w.Address, sender.Hex())
	assert.Equal(t, uint64(7), decoded.Nonce())
	assert.Equal(t, to, *decoded.To())
}

func TestSignTxMissingKey(t *testing.T) {
	ks := wallet.NewInMemoryKeystore()
	s := wallet.NewSigner(&wallet.Wallet{Name: "ghost", KeyRef: "botmint.ghost"}, ks)

	tx := types.NewTx(&types.DynamicFeeTx{ChainID: big.NewInt(1)})
	_, err := s.SignTx(tx, big.NewInt(1))
	assert.Error(t, err)
}
