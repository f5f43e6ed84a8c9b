package vault

import (
	addr "github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/big"
	cid "github.com/ipfs/go-cid"

	"github.com/tokenvault/vault-actors/actors/builtin"
	"github.com/tokenvault/vault-actors/actors/util/adt"
)

type StateSummary struct {
	LockCount uint64
	// Amount still owed by the vault, per token: funded totals less claims and revoked remainders.
	Custody map[addr.Address]abi.TokenAmount
}

// Checks internal invariants of vault state.
func CheckStateInvariants(st *State, store adt.Store) (*StateSummary, *builtin.MessageAccumulator) {
	acc := &builtin.MessageAccumulator{}
	summary := &StateSummary{
		LockCount: st.NextLockIndex,
		Custody:   make(map[addr.Address]abi.TokenAmount),
	}

	acc.Require(st.CreationFee.FlatFee.Sign() >= 0, "negative creation flat fee %v", st.CreationFee.FlatFee)
	acc.Require(st.RevocationFee.FlatFee.Sign() >= 0, "negative revocation flat fee %v", st.RevocationFee.FlatFee)
	acc.Require(st.CreationFee.PercentFee <= builtin.PercentFeeDenominator, "creation percent fee %d out of range", st.CreationFee.PercentFee)
	acc.Require(st.RevocationFee.PercentFee <= builtin.PercentFeeDenominator, "revocation percent fee %d out of range", st.RevocationFee.PercentFee)

	// Expected index contents, rebuilt from the locks.
	byInitiator := make(map[addr.Address][]uint64)
	byRecipient := make(map[addr.Address][]uint64)

	locks, err := adt.AsArray(store, st.Locks, LocksAmtBitwidth)
	if err != nil {
		acc.Addf("error loading locks: %v", err)
		return summary, acc
	}
	acc.Require(locks.Length() == st.NextLockIndex, "lock count %d != next lock index %d", locks.Length(), st.NextLockIndex)

	var lock Lock
	err = locks.ForEach(&lock, func(i int64) error {
		index := uint64(i)
		acc.Require(index < st.NextLockIndex, "lock index %d beyond next lock index %d", index, st.NextLockIndex)
		checkLock(&lock, acc.WithPrefix("lock %d: ", index))

		byInitiator[lock.Initiator] = append(byInitiator[lock.Initiator], index)
		for _, r := range lock.Recipients {
			byRecipient[r.Address] = append(byRecipient[r.Address], index)
		}

		owed := big.Sub(lock.TotalAmount, lock.UnvestedAmount)
		for _, r := range lock.Recipients {
			owed = big.Sub(owed, r.AmountClaimed)
		}
		prev, ok := summary.Custody[lock.Token]
		if !ok {
			prev = big.Zero()
		}
		summary.Custody[lock.Token] = big.Add(prev, owed)
		return nil
	})
	acc.RequireNoError(err, "error iterating locks")

	checkIndex(store, st.InitiatorLocks, byInitiator, acc.WithPrefix("initiator index: "))
	checkIndex(store, st.RecipientLocks, byRecipient, acc.WithPrefix("recipient index: "))

	return summary, acc
}

func checkLock(lock *Lock, acc *builtin.MessageAccumulator) {
	acc.Require(lock.Token.Protocol() == addr.ID, "token %v is not an ID address", lock.Token)
	acc.Require(lock.Initiator.Protocol() == addr.ID, "initiator %v is not an ID address", lock.Initiator)
	acc.Require(lock.DurationInDays > 0, "zero duration")
	acc.Require(lock.TotalAmount.Sign() > 0, "total amount %v not positive", lock.TotalAmount)
	acc.Require(lock.UnvestedAmount.Sign() >= 0, "negative unvested amount %v", lock.UnvestedAmount)
	acc.Require(len(lock.Recipients) > 0, "no recipients")
	acc.Require(len(lock.Recipients) <= MaxRecipients, "%d recipients exceeds maximum", len(lock.Recipients))

	if lock.IsActive {
		acc.Require(lock.FrozenDays == 0, "active lock has frozen days %d", lock.FrozenDays)
		acc.Require(lock.UnvestedAmount.IsZero(), "active lock has unvested amount %v", lock.UnvestedAmount)
	} else {
		acc.Require(lock.IsRevocable, "inactive lock is not revocable")
		acc.Require(lock.FrozenDays <= lock.DurationInDays, "frozen days %d exceed duration %d", lock.FrozenDays, lock.DurationInDays)
	}

	seen := make(map[addr.Address]struct{}, len(lock.Recipients))
	sum := big.Zero()
	claimed := big.Zero()
	for _, r := range lock.Recipients {
		_, dup := seen[r.Address]
		acc.Require(!dup, "duplicate recipient %v", r.Address)
		seen[r.Address] = struct{}{}

		acc.Require(r.Amount.Sign() > 0, "recipient %v amount %v not positive", r.Address, r.Amount)
		acc.Require(r.AmountClaimed.Sign() >= 0, "recipient %v claimed negative %v", r.Address, r.AmountClaimed)
		acc.Require(r.AmountClaimed.LessThanEqual(r.Amount), "recipient %v claimed %v of %v", r.Address, r.AmountClaimed, r.Amount)
		acc.Require(r.DaysClaimed <= lock.DurationInDays, "recipient %v claimed %d days of %d", r.Address, r.DaysClaimed, lock.DurationInDays)
		if !r.IsActive {
			acc.Require(r.AmountClaimed.Equals(r.Amount) || !lock.IsActive,
				"inactive recipient %v of active lock claimed only %v of %v", r.Address, r.AmountClaimed, r.Amount)
		}
		sum = big.Add(sum, r.Amount)
		claimed = big.Add(claimed, r.AmountClaimed)
	}
	acc.Require(sum.Equals(lock.TotalAmount), "sum of recipient amounts %v != total %v", sum, lock.TotalAmount)
	acc.Require(big.Add(claimed, lock.UnvestedAmount).LessThanEqual(lock.TotalAmount),
		"claimed %v plus unvested %v exceeds total %v", claimed, lock.UnvestedAmount, lock.TotalAmount)
}

func checkIndex(store adt.Store, root cid.Cid, expected map[addr.Address][]uint64, acc *builtin.MessageAccumulator) {
	mm, err := adt.AsMultimap(store, root, LockIndexHamtBitwidth, LockIndexAmtBitwidth)
	if err != nil {
		acc.Addf("error loading index: %v", err)
		return
	}

	var keys []string
	err = mm.ForAll(func(k string, _ *adt.Array) error {
		keys = append(keys, k)
		return nil
	})
	acc.RequireNoError(err, "error iterating index keys")

	for _, k := range keys {
		a, err := addr.NewFromBytes([]byte(k))
		if err != nil {
			acc.Addf("invalid index key %x: %v", k, err)
			continue
		}
		if _, ok := expected[a]; !ok {
			acc.Addf("index entry for %v has no locks", a)
		}
	}

	for a, want := range expected {
		got, err := LockIndices(store, root, a)
		if err != nil {
			acc.Addf("error reading index of %v: %v", a, err)
			continue
		}
		acc.Require(equalIndices(got, want), "index of %v is %v, expected %v", a, got, want)
	}
}

func equalIndices(a, b []uint64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
