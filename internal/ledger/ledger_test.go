package ledger_test

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oxmmty/botmint/internal/ledger"
)

var (
	alice     = common.HexToAddress("0x00000000000000000000000000000000000000a1")
	bob       = common.HexToAddress("0x00000000000000000000000000000000000000a2")
	tokenAddr = common.HexToAddress("0x00000000000000000000000000000000000000d0")
)

func TestTokenTransferFrom(t *testing.T) {
	st := ledger.NewState()
	tok := st.Handle(tokenAddr)

	tok.Mint(alice, big.NewInt(100))
	tok.Approve(alice, ledger.GateSpender(), big.NewInt(60))

	require.NoError(t, tok.TransferFrom(alice, bob, big.NewInt(40)))
	assert.Equal(t, int64(60), tok.BalanceOf(alice).Int64())
	assert.Equal(t, int64(40), tok.BalanceOf(bob).Int64())
	assert.Equal(t, int64(20), tok.Allowance(alice, ledger.GateSpender()).Int64())
}

func TestTransferFromInsufficientBalance(t *testing.T) {
	st := ledger.NewState()
	tok := st.Handle(tokenAddr)

	tok.Mint(alice, big.NewInt(10))
	tok.Approve(alice, ledger.GateSpender(), big.NewInt(100))

	err := tok.TransferFrom(alice, bob, big.NewInt(11))
	assert.ErrorIs(t, err, ledger.ErrInsufficientBalance)
	assert.Equal(t, int64(10), tok.BalanceOf(alice).Int64())
}

func TestTransferFromInsufficientAllowance(t *testing.T) {
	st := ledger.NewState()
	tok := st.Handle(tokenAddr)

	tok.Mint(alice, big.NewInt(100))
	tok.Approve(alice, ledger.GateSpender(), big.NewInt(5))

	err := tok.TransferFrom(alice, bob, big.NewInt(6))
	assert.ErrorIs(t, err, ledger.ErrInsufficientAllowance)
	assert.Equal(t, int64(100), tok.BalanceOf(alice).Int64())
	assert.Equal(t, int64(0), tok.BalanceOf(bob).Int64())
}

func TestSnapshotRevert(t *testing.T) {
	st := ledger.NewState()
	tok := st.Handle(tokenAddr)

	tok.Mint(alice, big.NewInt(100))
	tok.Approve(alice, ledger.GateSpender(), big.NewInt(100))

	snap := st.Snapshot()
	require.NoError(t, tok.TransferFrom(alice, bob, big.NewInt(30)))
	require.NoError(t, tok.TransferFrom(alice, bob, big.NewInt(20)))
	assert.Equal(t, int64(50), tok.BalanceOf(bob).Int64())

	st.RevertToSnapshot(snap)
	assert.Equal(t, int64(100), tok.BalanceOf(alice).Int64())
	assert.Equal(t, int64(0), tok.BalanceOf(bob).Int64())
	assert.Equal(t, int64(100), tok.Allowance(alice, ledger.GateSpender()).Int64())
}

func TestNestedSnapshots(t *testing.T) {
	st := ledger.NewState()
	tok := st.Handle(tokenAddr)

	tok.Mint(alice, big.NewInt(100))
	tok.Approve(alice, ledger.GateSpender(), big.NewInt(100))

	outer := st.Snapshot()
	require.NoError(t, tok.TransferFrom(alice, bob, big.NewInt(10)))

	inner := st.Snapshot()
	require.NoError(t, tok.TransferFrom(alice, bob, big.NewInt(10)))

	st.RevertToSnapshot(inner)
	assert.Equal(t, int64(10), tok.BalanceOf(bob).Int64())

	st.RevertToSnapshot(outer)
	assert.Equal(t, int64(0), tok.BalanceOf(bob).Int64())
	assert.Equal(t, int64(100), tok.BalanceOf(alice).Int64())
}

func TestRevertUnknownSnapshotPanics(t *testing.T) {
	st := ledger.NewState()
	assert.Panics(t, func() { st.RevertToSnapshot(3) })
}

func TestVault(t *testing.T) {
	v := ledger.NewVault(big.NewInt(1_000_000_000))

	bal, err := v.BalanceOf(alice)
	require.NoError(t, err)
	assert.Equal(t, int64(0), bal.Int64())

	v.Deposit(alice, big.NewInt(500))
	v.Deposit(alice, big.NewInt(250))
	bal, err = v.BalanceOf(alice)
	require.NoError(t, err)
	assert.Equal(t, int64(750), bal.Int64())

	v.SetPricePerFullShare(big.NewInt(2_000_000_000))
	price, err := v.PricePerFullShare()
	require.NoError(t, err)
	assert.Equal(t, int64(2_000_000_000), price.Int64())
}

func TestControllerRotation(t *testing.T) {
	c := ledger.NewController(alice)

	got, err := c.Rewards()
	require.NoError(t, err)
	assert.Equal(t, alice, got)

	c.SetRewards(bob)
	got, err = c.Rewards()
	require.NoError(t, err)
	assert.Equal(t, bob, got)
}

func TestIssuerRecordsAndFails(t *testing.T) {
	i := ledger.NewIssuer()

	require.NoError(t, i.Mint(alice, big.NewInt(101)))
	require.NoError(t, i.Mint(bob, big.NewInt(103)))

	minted := i.Minted()
	require.Len(t, minted, 2)
	assert.Equal(t, uint64(1), minted[0].ID)
	assert.Equal(t, uint64(2), minted[1].ID)
	assert.Equal(t, alice, minted[0].Owner)
	assert.Equal(t, "103", minted[1].SpecID.String())

	// A forced failure consumes itself.
	i.FailWith(nil)
	assert.Error(t, i.Mint(alice, big.NewInt(101)))
	require.NoError(t, i.Mint(alice, big.NewInt(101)))
	assert.Len(t, i.Minted(), 3)
}

func TestSteppedEntropyAdvances(t *testing.T) {
	e := ledger.NewSteppedEntropy(big.NewInt(1000))

	ts1, d1, err := e.Sample()
	require.NoError(t, err)
	ts2, d2, err := e.Sample()
	require.NoError(t, err)

	assert.Equal(t, ts1.String(), ts2.String())
	assert.Equal(t, int64(0), d1.Int64())
	assert.Equal(t, int64(1), d2.Int64())
}

func TestFixedEntropy(t *testing.T) {
	e := ledger.FixedEntropy{Timestamp: big.NewInt(7), Difficulty: big.NewInt(9)}
	ts, d, err := e.Sample()
	require.NoError(t, err)
	assert.Equal(t, int64(7), ts.Int64())
	assert.Equal(t, int64(9), d.Int64())
}
