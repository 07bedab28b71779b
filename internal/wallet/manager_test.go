package wallet_test

import (
	"path/filepath"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oxmmty/botmint/internal/wallet"
)

// Throwaway test key, never funded.
const testKeyHex = "4c0883a69102937d6231471b5dbb6204fe5129617082792ae468d01a3f362318"

func newManager() *wallet.Manager {
	return wallet.NewManager(&wallet.MemStore{}, wallet.NewInMemoryKeystore())
}

func TestGenerate(t *testing.T) {
	m := newManager()

	w, err := m.Generate("alice")
	require.NoError(t, err)
	assert.Equal(t, "alice", w.Name)
	assert.True(t, common.IsHexAddress(w.Address))
	assert.True(t, w.IsDefault, "first wallet becomes default")
	assert.NotEmpty(t, w.KeyRef)

	got, err := m.Get("alice")
	require.NoError(t, err)
	assert.Equal(t, w.Address, got.Address)
}

func TestImportDerivesAddress(t *testing.T) {
	m := newManager()

	w, err := m.Import("imported", "0x"+testKeyHex)
	require.NoError(t, err)
	// Address of the well-known test key above.
	assert.Equal(t, "0x2c7536E3605D9C16a7a3D7b1898e529396a65c23", w.Address)
}

func TestImportInvalidKey(t *testing.T) {
	m := newManager()

	_, err := m.Import("bad", "not-a-key")
	assert.ErrorIs(t, err, wallet.ErrInvalidKey)
}

func TestDuplicateName(t *testing.T) {
	m := newManager()

	_, err := m.Generate("alice")
	require.NoError(t, err)

	_, err = m.Generate("alice")
	assert.ErrorIs(t, err, wallet.ErrWalletExists)
}

func TestRemove(t *testing.T) {
	ks := wallet.NewInMemoryKeystore()
	m := wallet.NewManager(&wallet.MemStore{}, ks)

	w, err := m.Generate("alice")
	require.NoError(t, err)

	require.NoError(t, m.Remove("alice"))

	_, err = m.Get("alice")
	assert.ErrorIs(t, err, wallet.ErrWalletNotFound)

	// The key is gone from the keystore too.
	_, err = ks.Retrieve(w.KeyRef)
	assert.Error(t, err)

	assert.ErrorIs(t, m.Remove("alice"), wallet.ErrWalletNotFound)
}

func TestListSorted(t *testing.T) {
	m := newManager()
	for _, name := range []string{"charlie", "alice", "bob"} {
		_, err := m.Generate(name)
		require.NoError(t, err)
	}

	list, err := m.List()
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "alice", list[0].Name)
	assert.Equal(t, "bob", list[1].Name)
	assert.Equal(t, "charlie", list[2].Name)
}

func TestSetDefault(t *testing.T) {
	m := newManager()
	_, err := m.Generate("alice")
	require.NoError(t, err)
	_, err = m.Generate("bob")
	require.NoError(t, err)

	require.NoError(t, m.SetDefault("bob"))
	def := m.Default()
	require.NotNil(t, def)
	assert.Equal(t, "bob", def.Name)

	a, err := m.Get("alice")
	require.NoError(t, err)
	assert.False(t, a.IsDefault)

	assert.ErrorIs(t, m.SetDefault("nobody"), wallet.ErrWalletNotFound)
}

func TestDefaultWithSingleWallet(t *testing.T) {
	m := newManager()
	assert.Nil(t, m.Default())

	_, err := m.Generate("only")
	require.NoError(t, err)

	def := m.Default()
	require.NotNil(t, def)
	assert.Equal(t, "only", def.Name)
}

func TestJSONStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wallets.json")
	store := wallet.NewJSONStore(path)

	m := wallet.NewManager(store, wallet.NewInMemoryKeystore())
	w, err := m.Import("alice", testKeyHex)
	require.NoError(t, err)

	// A fresh manager over the same file sees the wallet.
	m2 := wallet.NewManager(store, wallet.NewInMemoryKeystore())
	got, err := m2.Get("alice")
	require.NoError(t, err)
	assert.Equal(t, w.Address, got.Address)
	assert.Equal(t, w.KeyRef, got.KeyRef)
}

func TestJSONStoreMissingFile(t *testing.T) {
	store := wallet.NewJSONStore(filepath.Join(t.TempDir(), "missing.json"))
	wallets, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, wallets)
}
