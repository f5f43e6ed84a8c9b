package vault

import (
	addr "github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/big"
	"github.com/filecoin-project/go-state-types/cbor"
	"github.com/filecoin-project/go-state-types/exitcode"
	rtt "github.com/filecoin-project/go-state-types/rt"
	"github.com/ipfs/go-cid"

	"github.com/tokenvault/vault-actors/actors/builtin"
	"github.com/tokenvault/vault-actors/actors/builtin/token"
	"github.com/tokenvault/vault-actors/actors/runtime"
	"github.com/tokenvault/vault-actors/actors/util/adt"
)

// The vesting vault escrows tokens and releases them to recipients on a linear daily schedule.
type Actor struct{}

func (a Actor) Exports() []interface{} {
	return []interface{}{
		builtin.MethodConstructor: a.Constructor,
		2:                         a.AddLock,
		3:                         a.ClaimLockedTokens,
		4:                         a.RevokeLock,
		5:                         a.SetCreationFee,
		6:                         a.SetRevocationFee,
		7:                         a.SetStakersRedistributionAddress,
		8:                         a.SetReferenceToken,
		9:                         a.TransferOwnership,
		10:                        a.GetLocksByInitiator,
		11:                        a.GetLocksByRecipient,
		12:                        a.GetLock,
		13:                        a.GetClaimableAmount,
		14:                        a.GetConfig,
	}
}

func (a Actor) Code() cid.Cid {
	return builtin.VaultActorCodeID
}

func (a Actor) IsSingleton() bool {
	return false
}

func (a Actor) State() cbor.Er {
	return new(State)
}

var _ runtime.VMActor = Actor{}

func (a Actor) Constructor(rt runtime.Runtime, params *ConstructorParams) *abi.EmptyValue {
	rt.ValidateImmediateCallerIs(builtin.SystemActorAddr)

	owner := builtin.ResolveToIDAddr(rt, params.Owner, ErrMsgInvalidAddress)
	var referenceToken *addr.Address
	if params.ReferenceToken != nil {
		resolved := builtin.ResolveToActorWithCode(rt, *params.ReferenceToken, builtin.TokenActorCodeID, ErrMsgInvalidToken)
		referenceToken = &resolved
	}
	var feeDestination *addr.Address
	if params.FeeDestination != nil {
		resolved := builtin.ResolveToIDAddr(rt, *params.FeeDestination, ErrMsgInvalidAddress)
		feeDestination = &resolved
	}
	validateFeeSchedule(rt, &params.CreationFee)
	validateFeeSchedule(rt, &params.RevocationFee)

	st, err := ConstructState(adt.AsStore(rt), owner, referenceToken, feeDestination, params.CreationFee, params.RevocationFee)
	builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to construct state")
	rt.StateCreate(st)
	return nil
}

// AddLock escrows TotalAmount of a token from the caller and schedules its release to the recipients.
// The caller must have approved the vault for the total, plus any creation fee charged in the same token.
func (a Actor) AddLock(rt runtime.Runtime, params *AddLockParams) *AddLockReturn {
	rt.ValidateImmediateCallerType(builtin.CallerTypesSignable...)
	initiator := rt.Message().Caller()

	builtin.RequireParam(rt, params.TotalAmount.Sign() > 0, ErrMsgZeroTotalAmount)
	builtin.RequireParam(rt, params.DurationInDays > 0, ErrMsgZeroDuration)
	builtin.RequireParam(rt, params.DurationInDays <= MaxDurationInDays, ErrMsgDurationTooLong)
	builtin.RequireParam(rt, params.CliffInDays <= params.DurationInDays, ErrMsgCliffExceedsDuration)
	builtin.RequireParam(rt, len(params.Recipients) > 0, ErrMsgNoRecipients)
	builtin.RequireParam(rt, len(params.Recipients) <= MaxRecipients, ErrMsgTooManyRecipients)

	recipients := make([]Recipient, 0, len(params.Recipients))
	seen := make(map[addr.Address]struct{}, len(params.Recipients))
	sum := big.Zero()
	for _, rp := range params.Recipients {
		builtin.RequireParam(rt, rp.Amount.Sign() > 0, ErrMsgZeroRecipientAmount)
		resolved := builtin.ResolveToIDAddr(rt, rp.Address, ErrMsgInvalidRecipient)
		_, dup := seen[resolved]
		builtin.RequireParam(rt, !dup, ErrMsgDuplicateRecipient)
		seen[resolved] = struct{}{}

		sum = big.Add(sum, rp.Amount)
		recipients = append(recipients, Recipient{
			Address:       resolved,
			Amount:        rp.Amount,
			DaysClaimed:   0,
			AmountClaimed: big.Zero(),
			IsActive:      true,
		})
	}
	builtin.RequireParam(rt, sum.Equals(params.TotalAmount), ErrMsgTotalAmountMismatch)
	tokenAddr := builtin.ResolveToActorWithCode(rt, params.Token, builtin.TokenActorCodeID, ErrMsgInvalidToken)

	lock := &Lock{
		Token:                     tokenAddr,
		Initiator:                 initiator,
		StartDate:                 rt.BlockTimestamp() + params.CliffInDays*builtin.SecondsInDay,
		DurationInDays:            params.DurationInDays,
		TotalAmount:               params.TotalAmount,
		IsRevocable:               params.IsRevocable,
		IsActive:                  true,
		PayFeesWithReferenceToken: params.PayFeesWithReferenceToken,
		FrozenDays:                0,
		UnvestedAmount:            big.Zero(),
		Recipients:                recipients,
	}

	var st State
	var lockIndex uint64
	var fee feeCharge
	rt.StateTransaction(&st, func() {
		fee = st.chargeFor(rt, st.CreationFee, lock, params.TotalAmount)

		var err error
		lockIndex, err = st.AddLock(adt.AsStore(rt), lock)
		builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to add lock")
	})

	if !fee.amount.IsZero() {
		transferFrom(rt, fee.token, initiator, fee.destination, fee.amount)
	}
	transferFrom(rt, tokenAddr, initiator, rt.Message().Receiver(), params.TotalAmount)

	rt.Log(rtt.INFO, "lock %d added by %v: %v of %v over %d days to %d recipients",
		lockIndex, initiator, params.TotalAmount, tokenAddr, params.DurationInDays, len(recipients))

	recipientAddrs := make([]addr.Address, len(recipients))
	for i, r := range recipients {
		recipientAddrs[i] = r.Address
	}
	rt.EmitEvent(&LockAddedEvent{
		LockIndex:  lockIndex,
		Initiator:  initiator,
		Token:      tokenAddr,
		Recipients: recipientAddrs,
	})
	return &AddLockReturn{LockIndex: lockIndex}
}

// ClaimLockedTokens transfers everything unlocked and not yet claimed to the calling recipient.
func (a Actor) ClaimLockedTokens(rt runtime.Runtime, params *LockIndexParams) *abi.TokenAmount {
	rt.ValidateImmediateCallerAcceptAny()
	caller := rt.Message().Caller()
	now := rt.BlockTimestamp()

	var st State
	var lock *Lock
	var claimable abi.TokenAmount
	rt.StateTransaction(&st, func() {
		store := adt.AsStore(rt)
		lock = loadLock(rt, &st, store, params.LockIndex)

		i, ok := lock.RecipientIndex(caller)
		if !ok {
			rt.Abortf(exitcode.ErrForbidden, ErrMsgForbidden)
		}
		r := &lock.Recipients[i]
		if !r.IsActive {
			if !lock.IsActive {
				rt.Abortf(exitcode.ErrForbidden, ErrMsgLockNotActive)
			}
			rt.Abortf(exitcode.ErrForbidden, ErrMsgForbidden)
		}

		var elapsed uint64
		elapsed, _, claimable = lock.ClaimableAt(r, now)
		if claimable.Sign() <= 0 {
			rt.Abortf(exitcode.ErrIllegalState, ErrMsgNothingUnlocked)
		}

		r.DaysClaimed = elapsed
		r.AmountClaimed = big.Add(r.AmountClaimed, claimable)
		// A revoked lock pays each remaining recipient once.
		if r.AmountClaimed.Equals(r.Amount) || !lock.IsActive {
			r.IsActive = false
		}

		err := st.PutLock(store, params.LockIndex, lock)
		builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to update lock %d", params.LockIndex)
	})

	transfer(rt, lock.Token, caller, claimable)

	rt.EmitEvent(&LockedTokensClaimedEvent{
		RecipientAddress: caller,
		ClaimedAmount:    claimable,
	})
	return &claimable
}

// RevokeLock stops vesting of a revocable lock and returns the unvested remainder to its initiator.
// Recipients keep what had unlocked by the day of revocation.
func (a Actor) RevokeLock(rt runtime.Runtime, params *LockIndexParams) *RevokeReturn {
	rt.ValidateImmediateCallerAcceptAny()
	caller := rt.Message().Caller()
	now := rt.BlockTimestamp()

	var st State
	var lock *Lock
	var fee feeCharge
	rt.StateTransaction(&st, func() {
		store := adt.AsStore(rt)
		lock = loadLock(rt, &st, store, params.LockIndex)

		if caller != lock.Initiator {
			rt.Abortf(exitcode.ErrForbidden, ErrMsgForbidden)
		}
		if !lock.IsRevocable {
			rt.Abortf(exitcode.ErrForbidden, ErrMsgLockNotRevocable)
		}
		if !lock.IsActive {
			rt.Abortf(exitcode.ErrIllegalState, ErrMsgLockNotActive)
		}

		elapsed := lock.ElapsedDaysAt(now)
		remainder := big.Zero()
		for i := range lock.Recipients {
			r := &lock.Recipients[i]
			if !r.IsActive {
				continue
			}
			unlocked := UnlockedAmount(r.Amount, lock.DurationInDays, elapsed)
			remainder = big.Add(remainder, big.Sub(r.Amount, unlocked))
			if unlocked.Equals(r.AmountClaimed) {
				r.IsActive = false
			}
		}
		lock.IsActive = false
		lock.FrozenDays = elapsed
		lock.UnvestedAmount = remainder

		fee = st.chargeFor(rt, st.RevocationFee, lock, remainder)

		err := st.PutLock(store, params.LockIndex, lock)
		builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to update lock %d", params.LockIndex)
	})

	returned := lock.UnvestedAmount
	if !fee.amount.IsZero() {
		if lock.PayFeesWithReferenceToken {
			transferFrom(rt, fee.token, lock.Initiator, fee.destination, fee.amount)
		} else {
			returned = big.Sub(returned, fee.amount)
			transfer(rt, fee.token, fee.destination, fee.amount)
		}
	}
	if returned.Sign() > 0 {
		transfer(rt, lock.Token, lock.Initiator, returned)
	}

	rt.Log(rtt.INFO, "lock %d revoked at day %d: %v returned to %v, fee %v",
		params.LockIndex, lock.FrozenDays, returned, lock.Initiator, fee.amount)

	rt.EmitEvent(&LockRevokedEvent{
		LockIndex:      params.LockIndex,
		ReturnedAmount: returned,
	})
	return &RevokeReturn{
		ReturnedAmount: returned,
		FeeAmount:      fee.amount,
	}
}

func (a Actor) SetCreationFee(rt runtime.Runtime, params *FeeSchedule) *abi.EmptyValue {
	rt.ValidateImmediateCallerAcceptAny()

	var st State
	rt.StateTransaction(&st, func() {
		builtin.RequireOwner(rt, st.Owner)
		validateFeeSchedule(rt, params)
		st.CreationFee = *params
	})
	return nil
}

func (a Actor) SetRevocationFee(rt runtime.Runtime, params *FeeSchedule) *abi.EmptyValue {
	rt.ValidateImmediateCallerAcceptAny()

	var st State
	rt.StateTransaction(&st, func() {
		builtin.RequireOwner(rt, st.Owner)
		validateFeeSchedule(rt, params)
		st.RevocationFee = *params
	})
	return nil
}

// SetStakersRedistributionAddress sets the destination of all fees.
func (a Actor) SetStakersRedistributionAddress(rt runtime.Runtime, destination *addr.Address) *abi.EmptyValue {
	rt.ValidateImmediateCallerAcceptAny()

	var st State
	rt.StateReadonly(&st)
	builtin.RequireOwner(rt, st.Owner)
	resolved := builtin.ResolveToIDAddr(rt, *destination, ErrMsgInvalidAddress)

	rt.StateTransaction(&st, func() {
		st.FeeDestination = &resolved
	})
	return nil
}

func (a Actor) SetReferenceToken(rt runtime.Runtime, referenceToken *addr.Address) *abi.EmptyValue {
	rt.ValidateImmediateCallerAcceptAny()

	var st State
	rt.StateTransaction(&st, func() {
		builtin.RequireOwner(rt, st.Owner)
		resolved := builtin.ResolveToActorWithCode(rt, *referenceToken, builtin.TokenActorCodeID, ErrMsgInvalidToken)
		st.ReferenceToken = &resolved
	})
	return nil
}

func (a Actor) TransferOwnership(rt runtime.Runtime, newOwner *addr.Address) *abi.EmptyValue {
	rt.ValidateImmediateCallerAcceptAny()

	var st State
	rt.StateReadonly(&st)
	builtin.RequireOwner(rt, st.Owner)
	resolved := builtin.ResolveToIDAddr(rt, *newOwner, ErrMsgInvalidAddress)

	rt.StateTransaction(&st, func() {
		st.Owner = resolved
	})
	return nil
}

func (a Actor) GetLocksByInitiator(rt runtime.Runtime, initiator *addr.Address) *LocksReturn {
	rt.ValidateImmediateCallerAcceptAny()
	resolved, ok := rt.ResolveAddress(*initiator)
	if !ok {
		return &LocksReturn{}
	}

	var st State
	rt.StateReadonly(&st)
	entries, err := st.LocksByInitiator(adt.AsStore(rt), resolved)
	builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to load locks of initiator %v", resolved)
	return &LocksReturn{Locks: entries}
}

func (a Actor) GetLocksByRecipient(rt runtime.Runtime, recipient *addr.Address) *LocksReturn {
	rt.ValidateImmediateCallerAcceptAny()
	resolved, ok := rt.ResolveAddress(*recipient)
	if !ok {
		return &LocksReturn{}
	}

	var st State
	rt.StateReadonly(&st)
	entries, err := st.LocksByRecipient(adt.AsStore(rt), resolved)
	builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to load locks of recipient %v", resolved)
	return &LocksReturn{Locks: entries}
}

func (a Actor) GetLock(rt runtime.Runtime, params *LockIndexParams) *Lock {
	rt.ValidateImmediateCallerAcceptAny()

	var st State
	rt.StateReadonly(&st)
	return loadLock(rt, &st, adt.AsStore(rt), params.LockIndex)
}

// GetClaimableAmount reports a recipient's vesting position at the current block time without changing it.
func (a Actor) GetClaimableAmount(rt runtime.Runtime, params *ClaimableParams) *ClaimableReturn {
	rt.ValidateImmediateCallerAcceptAny()

	var st State
	rt.StateReadonly(&st)
	lock := loadLock(rt, &st, adt.AsStore(rt), params.LockIndex)

	resolved, ok := rt.ResolveAddress(params.Recipient)
	if !ok {
		rt.Abortf(exitcode.ErrNotFound, ErrMsgRecipientNotFound)
	}
	i, ok := lock.RecipientIndex(resolved)
	if !ok {
		rt.Abortf(exitcode.ErrNotFound, ErrMsgRecipientNotFound)
	}
	r := &lock.Recipients[i]

	elapsed, unlocked, claimable := lock.ClaimableAt(r, rt.BlockTimestamp())
	if !r.IsActive {
		claimable = big.Zero()
	}
	return &ClaimableReturn{
		ElapsedDays:     elapsed,
		UnlockedAmount:  unlocked,
		ClaimableAmount: claimable,
	}
}

func (a Actor) GetConfig(rt runtime.Runtime, _ *abi.EmptyValue) *ConfigReturn {
	rt.ValidateImmediateCallerAcceptAny()

	var st State
	rt.StateReadonly(&st)
	return &ConfigReturn{
		Owner:          st.Owner,
		ReferenceToken: st.ReferenceToken,
		FeeDestination: st.FeeDestination,
		CreationFee:    st.CreationFee,
		RevocationFee:  st.RevocationFee,
		LockCount:      st.NextLockIndex,
	}
}

type feeCharge struct {
	token       addr.Address
	destination addr.Address
	amount      abi.TokenAmount
}

// Computes the fee a schedule charges for a lock.
// Reference-token locks pay the flat fee; the others pay a percentage of base in the vested token.
// Aborts if a nonzero fee cannot be collected with the current configuration.
func (st *State) chargeFor(rt runtime.Runtime, schedule FeeSchedule, lock *Lock, base abi.TokenAmount) feeCharge {
	fee := feeCharge{token: lock.Token, amount: PercentOf(base, schedule.PercentFee)}
	if lock.PayFeesWithReferenceToken {
		fee.amount = schedule.FlatFee
		if fee.amount.IsZero() {
			return fee
		}
		if st.ReferenceToken == nil {
			rt.Abortf(exitcode.ErrIllegalState, ErrMsgReferenceTokenUnset)
		}
		fee.token = *st.ReferenceToken
	}
	if fee.amount.IsZero() {
		return fee
	}
	if st.FeeDestination == nil {
		rt.Abortf(exitcode.ErrIllegalState, ErrMsgFeeDestinationUnset)
	}
	fee.destination = *st.FeeDestination
	return fee
}

func loadLock(rt runtime.Runtime, st *State, store adt.Store, index uint64) *Lock {
	lock, found, err := st.GetLock(store, index)
	builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to load lock %d", index)
	if !found {
		rt.Abortf(exitcode.ErrNotFound, ErrMsgLockNotFound)
	}
	return lock
}

func validateFeeSchedule(rt runtime.Runtime, fee *FeeSchedule) {
	builtin.RequireParam(rt, fee.FlatFee.Sign() >= 0, ErrMsgNegativeFee)
	builtin.RequireParam(rt, fee.PercentFee <= builtin.PercentFeeDenominator, ErrMsgPercentFeeOutOfRange)
}

func transfer(rt runtime.Runtime, tokenAddr, to addr.Address, amount abi.TokenAmount) {
	code := rt.Send(tokenAddr, builtin.MethodsToken.Transfer, &token.TransferParams{To: to, Amount: amount}, big.Zero(), nil)
	builtin.RequireSuccess(rt, code, "failed to transfer %v of %v to %v", amount, tokenAddr, to)
}

func transferFrom(rt runtime.Runtime, tokenAddr, from, to addr.Address, amount abi.TokenAmount) {
	code := rt.Send(tokenAddr, builtin.MethodsToken.TransferFrom, &token.TransferFromParams{From: from, To: to, Amount: amount}, big.Zero(), nil)
	builtin.RequireSuccess(rt, code, "failed to transfer %v of %v from %v to %v", amount, tokenAddr, from, to)
}
