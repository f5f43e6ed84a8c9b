package vault_test

import (
	"context"
	"testing"

	addr "github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/big"
	cid "github.com/ipfs/go-cid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tokenvault/vault-actors/actors/builtin/vault"
	"github.com/tokenvault/vault-actors/actors/util/adt"
	"github.com/tokenvault/vault-actors/support/ipld"
	tutil "github.com/tokenvault/vault-actors/support/testing"
)

func TestLockStorage(t *testing.T) {
	tok := tutil.NewIDAddr(t, 150)
	initiator := tutil.NewIDAddr(t, 151)
	alice := tutil.NewIDAddr(t, 152)
	bob := tutil.NewIDAddr(t, 153)

	t.Run("appends locks with sequential indices", func(t *testing.T) {
		h := constructStateHarness(t)

		idx0 := h.addLock(newTestLock(tok, initiator, alice))
		idx1 := h.addLock(newTestLock(tok, initiator, alice, bob))
		assert.Equal(t, uint64(0), idx0)
		assert.Equal(t, uint64(1), idx1)
		assert.Equal(t, uint64(2), h.s.NextLockIndex)

		lock, found, err := h.s.GetLock(h.store, 1)
		require.NoError(t, err)
		require.True(t, found)
		assert.Len(t, lock.Recipients, 2)
		assert.Equal(t, bob, lock.Recipients[1].Address)

		_, found, err = h.s.GetLock(h.store, 2)
		require.NoError(t, err)
		assert.False(t, found)
		h.checkState()
	})

	t.Run("indexes by initiator and recipient in order", func(t *testing.T) {
		h := constructStateHarness(t)
		other := tutil.NewIDAddr(t, 154)

		h.addLock(newTestLock(tok, initiator, alice))
		h.addLock(newTestLock(tok, other, bob))
		h.addLock(newTestLock(tok, initiator, bob, alice))

		assertIndices(t, h, h.s.InitiatorLocks, initiator, 0, 2)
		assertIndices(t, h, h.s.InitiatorLocks, other, 1)
		assertIndices(t, h, h.s.RecipientLocks, alice, 0, 2)
		assertIndices(t, h, h.s.RecipientLocks, bob, 1, 2)
		assertIndices(t, h, h.s.RecipientLocks, initiator)

		entries, err := h.s.LocksByRecipient(h.store, bob)
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, uint64(1), entries[0].LockIndex)
		assert.Equal(t, other, entries[0].Lock.Initiator)
		assert.Equal(t, uint64(2), entries[1].LockIndex)

		entries, err = h.s.LocksByInitiator(h.store, tutil.NewIDAddr(t, 999))
		require.NoError(t, err)
		assert.Empty(t, entries)
		h.checkState()
	})

	t.Run("updates an existing lock", func(t *testing.T) {
		h := constructStateHarness(t)
		idx := h.addLock(newTestLock(tok, initiator, alice))

		lock, _, err := h.s.GetLock(h.store, idx)
		require.NoError(t, err)
		lock.Recipients[0].AmountClaimed = abi.NewTokenAmount(250)
		lock.Recipients[0].DaysClaimed = 3
		require.NoError(t, h.s.PutLock(h.store, idx, lock))

		lock, _, err = h.s.GetLock(h.store, idx)
		require.NoError(t, err)
		assert.Equal(t, "250", lock.Recipients[0].AmountClaimed.String())
		assert.Equal(t, uint64(3), lock.Recipients[0].DaysClaimed)
		h.checkState()
	})

	t.Run("refuses to update a lock that was never added", func(t *testing.T) {
		h := constructStateHarness(t)
		err := h.s.PutLock(h.store, 0, newTestLock(tok, initiator, alice))
		assert.Error(t, err)
	})
}

func TestStateInvariants(t *testing.T) {
	tok := tutil.NewIDAddr(t, 150)
	initiator := tutil.NewIDAddr(t, 151)
	alice := tutil.NewIDAddr(t, 152)

	t.Run("custody summary", func(t *testing.T) {
		h := constructStateHarness(t)
		h.addLock(newTestLock(tok, initiator, alice))
		lock := newTestLock(tok, initiator, alice)
		lock.Recipients[0].AmountClaimed = abi.NewTokenAmount(100)
		h.addLock(lock)

		summary := h.checkState()
		assert.Equal(t, uint64(2), summary.LockCount)
		assert.Equal(t, "1900", summary.Custody[tok].String())
	})

	t.Run("detects over-claimed recipients", func(t *testing.T) {
		h := constructStateHarness(t)
		lock := newTestLock(tok, initiator, alice)
		lock.Recipients[0].AmountClaimed = abi.NewTokenAmount(1001)
		h.addLock(lock)

		_, msgs := vault.CheckStateInvariants(h.s, h.store)
		assert.False(t, msgs.IsEmpty())
	})

	t.Run("detects a revoked lock that was not revocable", func(t *testing.T) {
		h := constructStateHarness(t)
		lock := newTestLock(tok, initiator, alice)
		lock.IsRevocable = false
		lock.IsActive = false
		h.addLock(lock)

		_, msgs := vault.CheckStateInvariants(h.s, h.store)
		assert.False(t, msgs.IsEmpty())
	})

	t.Run("detects a total that does not match the recipients", func(t *testing.T) {
		h := constructStateHarness(t)
		lock := newTestLock(tok, initiator, alice)
		lock.TotalAmount = abi.NewTokenAmount(999)
		h.addLock(lock)

		_, msgs := vault.CheckStateInvariants(h.s, h.store)
		assert.False(t, msgs.IsEmpty())
	})
}

type stateHarness struct {
	t testing.TB

	s     *vault.State
	store adt.Store
}

func constructStateHarness(t *testing.T) *stateHarness {
	store := ipld.NewADTStore(context.Background())
	owner := tutil.NewIDAddr(t, 100)
	noFee := vault.FeeSchedule{FlatFee: big.Zero(), PercentFee: 0}
	st, err := vault.ConstructState(store, owner, nil, nil, noFee, noFee)
	require.NoError(t, err)
	return &stateHarness{t: t, s: st, store: store}
}

func (h *stateHarness) addLock(lock *vault.Lock) uint64 {
	idx, err := h.s.AddLock(h.store, lock)
	require.NoError(h.t, err)
	return idx
}

func (h *stateHarness) checkState() *vault.StateSummary {
	summary, msgs := vault.CheckStateInvariants(h.s, h.store)
	assert.Empty(h.t, msgs.Messages())
	return summary
}

func assertIndices(t *testing.T, h *stateHarness, root cid.Cid, key addr.Address, expected ...uint64) {
	indices, err := vault.LockIndices(h.store, root, key)
	require.NoError(t, err)
	if len(expected) == 0 {
		assert.Empty(t, indices)
		return
	}
	assert.Equal(t, expected, indices)
}

// Each recipient is allotted 1000.
func newTestLock(tok, initiator addr.Address, recipients ...addr.Address) *vault.Lock {
	rs := make([]vault.Recipient, len(recipients))
	for i, r := range recipients {
		rs[i] = vault.Recipient{
			Address:       r,
			Amount:        abi.NewTokenAmount(1000),
			DaysClaimed:   0,
			AmountClaimed: big.Zero(),
			IsActive:      true,
		}
	}
	return &vault.Lock{
		Token:          tok,
		Initiator:      initiator,
		StartDate:      0,
		DurationInDays: 10,
		TotalAmount:    big.Mul(abi.NewTokenAmount(1000), big.NewInt(int64(len(recipients)))),
		IsRevocable:    true,
		IsActive:       true,
		UnvestedAmount: big.Zero(),
		Recipients:     rs,
	}
}
