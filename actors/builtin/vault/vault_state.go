package vault

import (
	addr "github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
	cid "github.com/ipfs/go-cid"
	cbg "github.com/whyrusleeping/cbor-gen"
	"golang.org/x/xerrors"

	"github.com/tokenvault/vault-actors/actors/util/adt"
)

type State struct {
	Owner addr.Address
	// Token the flat fees are paid in. Nil until configured.
	ReferenceToken *addr.Address
	// Receiver of all fees (the stakers' redistribution address). Nil until configured.
	FeeDestination *addr.Address
	CreationFee    FeeSchedule
	RevocationFee  FeeSchedule

	Locks          cid.Cid // Array, AMT[LockIndex]Lock
	InitiatorLocks cid.Cid // Multimap, HAMT[address]AMT[]LockIndex
	RecipientLocks cid.Cid // Multimap, HAMT[address]AMT[]LockIndex
	NextLockIndex  uint64
}

// A fee is either flat, in the reference token, or a percentage in basis points of the vested token.
// Which one applies is chosen per lock.
type FeeSchedule struct {
	FlatFee    abi.TokenAmount
	PercentFee uint64
}

type Lock struct {
	Token     addr.Address
	Initiator addr.Address
	// Seconds since the epoch at which vesting begins, after the cliff.
	StartDate      uint64
	DurationInDays uint64
	TotalAmount    abi.TokenAmount
	IsRevocable    bool
	IsActive       bool
	// Selects the fee mode at creation and at revocation.
	PayFeesWithReferenceToken bool
	// Elapsed days when the lock was revoked. Zero while active.
	FrozenDays uint64
	// Gross amount taken back at revocation, before any fee.
	UnvestedAmount abi.TokenAmount
	Recipients     []Recipient
}

type Recipient struct {
	Address       addr.Address
	Amount        abi.TokenAmount
	DaysClaimed   uint64
	AmountClaimed abi.TokenAmount
	IsActive      bool
}

type LockEntry struct {
	LockIndex uint64
	Lock      Lock
}

func ConstructState(store adt.Store, owner addr.Address, referenceToken, feeDestination *addr.Address,
	creationFee, revocationFee FeeSchedule) (*State, error) {
	emptyLocks, err := adt.StoreEmptyArray(store, LocksAmtBitwidth)
	if err != nil {
		return nil, xerrors.Errorf("failed to create empty locks: %w", err)
	}
	emptyIndex, err := adt.StoreEmptyMultimap(store, LockIndexHamtBitwidth, LockIndexAmtBitwidth)
	if err != nil {
		return nil, xerrors.Errorf("failed to create empty lock index: %w", err)
	}

	return &State{
		Owner:          owner,
		ReferenceToken: referenceToken,
		FeeDestination: feeDestination,
		CreationFee:    creationFee,
		RevocationFee:  revocationFee,
		Locks:          emptyLocks,
		InitiatorLocks: emptyIndex,
		RecipientLocks: emptyIndex,
		NextLockIndex:  0,
	}, nil
}

// GetLock loads the lock at index, reporting whether it exists.
func (st *State) GetLock(store adt.Store, index uint64) (*Lock, bool, error) {
	locks, err := adt.AsArray(store, st.Locks, LocksAmtBitwidth)
	if err != nil {
		return nil, false, xerrors.Errorf("failed to load locks: %w", err)
	}
	var lock Lock
	found, err := locks.Get(index, &lock)
	if err != nil {
		return nil, false, xerrors.Errorf("failed to load lock %d: %w", index, err)
	}
	if !found {
		return nil, false, nil
	}
	return &lock, true, nil
}

// PutLock overwrites an existing lock.
func (st *State) PutLock(store adt.Store, index uint64, lock *Lock) error {
	if index >= st.NextLockIndex {
		return xerrors.Errorf("no lock %d to update", index)
	}
	locks, err := adt.AsArray(store, st.Locks, LocksAmtBitwidth)
	if err != nil {
		return xerrors.Errorf("failed to load locks: %w", err)
	}
	if err := locks.Set(index, lock); err != nil {
		return xerrors.Errorf("failed to set lock %d: %w", index, err)
	}
	if st.Locks, err = locks.Root(); err != nil {
		return xerrors.Errorf("failed to flush locks: %w", err)
	}
	return nil
}

// AddLock appends a new lock and indexes it under its initiator and each of its recipients.
// Returns the index of the new lock.
func (st *State) AddLock(store adt.Store, lock *Lock) (uint64, error) {
	index := st.NextLockIndex

	locks, err := adt.AsArray(store, st.Locks, LocksAmtBitwidth)
	if err != nil {
		return 0, xerrors.Errorf("failed to load locks: %w", err)
	}
	if err := locks.Set(index, lock); err != nil {
		return 0, xerrors.Errorf("failed to append lock %d: %w", index, err)
	}
	if st.Locks, err = locks.Root(); err != nil {
		return 0, xerrors.Errorf("failed to flush locks: %w", err)
	}

	if st.InitiatorLocks, err = appendIndex(store, st.InitiatorLocks, index, lock.Initiator); err != nil {
		return 0, xerrors.Errorf("failed to index lock %d by initiator: %w", index, err)
	}
	recipients := make([]addr.Address, len(lock.Recipients))
	for i, r := range lock.Recipients {
		recipients[i] = r.Address
	}
	if st.RecipientLocks, err = appendIndex(store, st.RecipientLocks, index, recipients...); err != nil {
		return 0, xerrors.Errorf("failed to index lock %d by recipient: %w", index, err)
	}

	st.NextLockIndex++
	return index, nil
}

// LocksByInitiator returns the locks created by an address, in creation order.
func (st *State) LocksByInitiator(store adt.Store, initiator addr.Address) ([]LockEntry, error) {
	return st.indexedLocks(store, st.InitiatorLocks, initiator)
}

// LocksByRecipient returns the locks that include an address as recipient, in creation order.
func (st *State) LocksByRecipient(store adt.Store, recipient addr.Address) ([]LockEntry, error) {
	return st.indexedLocks(store, st.RecipientLocks, recipient)
}

func (st *State) indexedLocks(store adt.Store, root cid.Cid, key addr.Address) ([]LockEntry, error) {
	indices, err := LockIndices(store, root, key)
	if err != nil {
		return nil, err
	}
	locks, err := adt.AsArray(store, st.Locks, LocksAmtBitwidth)
	if err != nil {
		return nil, xerrors.Errorf("failed to load locks: %w", err)
	}

	entries := make([]LockEntry, 0, len(indices))
	for _, index := range indices {
		var lock Lock
		found, err := locks.Get(index, &lock)
		if err != nil {
			return nil, xerrors.Errorf("failed to load lock %d: %w", index, err)
		}
		if !found {
			return nil, xerrors.Errorf("index for %v references missing lock %d", key, index)
		}
		entries = append(entries, LockEntry{LockIndex: index, Lock: lock})
	}
	return entries, nil
}

// LockIndices reads the lock indices recorded under key in a lock index multimap.
func LockIndices(store adt.Store, root cid.Cid, key addr.Address) ([]uint64, error) {
	mm, err := adt.AsMultimap(store, root, LockIndexHamtBitwidth, LockIndexAmtBitwidth)
	if err != nil {
		return nil, xerrors.Errorf("failed to load lock index: %w", err)
	}
	var indices []uint64
	var value cbg.CborInt
	err = mm.ForEach(adt.AddrKey(key), &value, func(_ int64) error {
		indices = append(indices, uint64(value))
		return nil
	})
	if err != nil {
		return nil, xerrors.Errorf("failed to read lock index of %v: %w", key, err)
	}
	return indices, nil
}

func appendIndex(store adt.Store, root cid.Cid, index uint64, keys ...addr.Address) (cid.Cid, error) {
	mm, err := adt.AsMultimap(store, root, LockIndexHamtBitwidth, LockIndexAmtBitwidth)
	if err != nil {
		return cid.Undef, err
	}
	value := cbg.CborInt(index)
	for _, k := range keys {
		if err := mm.Add(adt.AddrKey(k), &value); err != nil {
			return cid.Undef, err
		}
	}
	return mm.Root()
}
