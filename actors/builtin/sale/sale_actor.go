package sale

import (
	addr "github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/big"
	"github.com/filecoin-project/go-state-types/cbor"
	"github.com/filecoin-project/go-state-types/exitcode"
	rtt "github.com/filecoin-project/go-state-types/rt"
	"github.com/ipfs/go-cid"
	"golang.org/x/xerrors"

	"github.com/tokenvault/vault-actors/actors/builtin"
	"github.com/tokenvault/vault-actors/actors/builtin/token"
	"github.com/tokenvault/vault-actors/actors/runtime"
	"github.com/tokenvault/vault-actors/actors/util/adt"
)

// The sale allocates tokens at a fixed rate to investors paying in native currency,
// and releases them once the owner opens claims.
type Actor struct{}

func (a Actor) Exports() []interface{} {
	return []interface{}{
		builtin.MethodConstructor: a.Constructor,
		2:                         a.Invest,
		3:                         a.Claim,
		4:                         a.Pause,
		5:                         a.Unpause,
		6:                         a.SetClaimable,
		7:                         a.WithdrawProceeds,
		8:                         a.WithdrawTokens,
		9:                         a.TransferOwnership,
		10:                        a.GetAllowance,
		11:                        a.GetRaised,
		12:                        a.GetSold,
	}
}

func (a Actor) Code() cid.Cid {
	return builtin.SaleActorCodeID
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
	tokenAddr := builtin.ResolveToActorWithCode(rt, params.Token, builtin.TokenActorCodeID, ErrMsgInvalidToken)
	builtin.RequireParam(rt, params.Rate.Sign() > 0, ErrMsgInvalidRate)
	builtin.RequireParam(rt, params.MaxPaymentPerAddress.Sign() > 0, ErrMsgInvalidCap)

	st, err := ConstructState(adt.AsStore(rt), owner, tokenAddr, params.Rate, params.MaxPaymentPerAddress)
	builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to construct state")
	rt.StateCreate(st)
	return nil
}

// Invest receives a native payment and allocates tokens for the sender.
// Returns the allocation made for this payment.
func (a Actor) Invest(rt runtime.Runtime, _ *abi.EmptyValue) *abi.TokenAmount {
	rt.ValidateImmediateCallerType(builtin.CallerTypesSignable...)
	investor := rt.Message().Caller()
	payment := rt.Message().ValueReceived()

	var st State
	var allocation abi.TokenAmount
	rt.StateTransaction(&st, func() {
		if st.Paused {
			rt.Abortf(exitcode.ErrIllegalState, ErrMsgPaused)
		}
		builtin.RequireParam(rt, payment.Sign() > 0, ErrMsgZeroPayment)

		var err error
		allocation, err = st.RecordPayment(adt.AsStore(rt), investor, payment)
		if xerrors.Is(err, ErrCapExceeded) {
			rt.Abortf(exitcode.ErrForbidden, ErrMsgExceedsCap)
		}
		builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to record payment of %v", investor)
	})

	rt.EmitEvent(&TokensAllocatedEvent{
		Investor:   investor,
		Payment:    payment,
		Allocation: allocation,
	})
	return &allocation
}

// Claim transfers the caller's whole allocation once claims are open.
func (a Actor) Claim(rt runtime.Runtime, _ *abi.EmptyValue) *abi.TokenAmount {
	rt.ValidateImmediateCallerAcceptAny()
	investor := rt.Message().Caller()

	var st State
	var amount abi.TokenAmount
	rt.StateTransaction(&st, func() {
		if !st.Claimable {
			rt.Abortf(exitcode.ErrForbidden, ErrMsgClaimNotActivated)
		}
		var err error
		amount, err = st.TakeAllocation(adt.AsStore(rt), investor)
		builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to take allocation of %v", investor)
		if amount.IsZero() {
			rt.Abortf(exitcode.ErrIllegalState, ErrMsgNothingToClaim)
		}
	})

	code := rt.Send(st.Token, builtin.MethodsToken.Transfer, &token.TransferParams{To: investor, Amount: amount}, big.Zero(), nil)
	builtin.RequireSuccess(rt, code, "failed to transfer %v to %v", amount, investor)

	rt.EmitEvent(&TokensClaimedEvent{Investor: investor, Amount: amount})
	return &amount
}

func (a Actor) Pause(rt runtime.Runtime, _ *abi.EmptyValue) *abi.EmptyValue {
	rt.ValidateImmediateCallerAcceptAny()

	var st State
	rt.StateTransaction(&st, func() {
		builtin.RequireOwner(rt, st.Owner)
		if st.Paused {
			rt.Abortf(exitcode.ErrIllegalState, ErrMsgPaused)
		}
		st.Paused = true
	})
	return nil
}

func (a Actor) Unpause(rt runtime.Runtime, _ *abi.EmptyValue) *abi.EmptyValue {
	rt.ValidateImmediateCallerAcceptAny()

	var st State
	rt.StateTransaction(&st, func() {
		builtin.RequireOwner(rt, st.Owner)
		if !st.Paused {
			rt.Abortf(exitcode.ErrIllegalState, ErrMsgNotPaused)
		}
		st.Paused = false
	})
	return nil
}

func (a Actor) SetClaimable(rt runtime.Runtime, params *SetClaimableParams) *abi.EmptyValue {
	rt.ValidateImmediateCallerAcceptAny()

	var st State
	rt.StateTransaction(&st, func() {
		builtin.RequireOwner(rt, st.Owner)
		st.Claimable = params.Claimable
	})
	return nil
}

// WithdrawProceeds sends the sale's entire native balance to the owner.
func (a Actor) WithdrawProceeds(rt runtime.Runtime, _ *abi.EmptyValue) *abi.TokenAmount {
	rt.ValidateImmediateCallerAcceptAny()

	var st State
	rt.StateReadonly(&st)
	builtin.RequireOwner(rt, st.Owner)

	balance := rt.CurrentBalance()
	if balance.Sign() > 0 {
		code := rt.Send(st.Owner, builtin.MethodSend, nil, balance, nil)
		builtin.RequireSuccess(rt, code, "failed to send proceeds to %v", st.Owner)
	}
	rt.Log(rtt.INFO, "withdrew %v proceeds to %v", balance, st.Owner)
	return &balance
}

// WithdrawTokens sends the owner the token inventory in excess of what investors are still owed.
func (a Actor) WithdrawTokens(rt runtime.Runtime, _ *abi.EmptyValue) *abi.TokenAmount {
	rt.ValidateImmediateCallerAcceptAny()

	var st State
	rt.StateReadonly(&st)
	builtin.RequireOwner(rt, st.Owner)

	receiver := rt.Message().Receiver()
	var inventory abi.TokenAmount
	code := rt.Send(st.Token, builtin.MethodsToken.BalanceOf, &receiver, big.Zero(), &inventory)
	builtin.RequireSuccess(rt, code, "failed to query token balance")

	surplus := big.Max(big.Sub(inventory, st.Outstanding()), big.Zero())
	if surplus.Sign() > 0 {
		code = rt.Send(st.Token, builtin.MethodsToken.Transfer, &token.TransferParams{To: st.Owner, Amount: surplus}, big.Zero(), nil)
		builtin.RequireSuccess(rt, code, "failed to transfer %v to %v", surplus, st.Owner)
	}
	rt.Log(rtt.INFO, "withdrew %v unsold tokens to %v, %v still owed to investors", surplus, st.Owner, st.Outstanding())
	return &surplus
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

// GetAllowance returns the unclaimed allocation of an investor.
func (a Actor) GetAllowance(rt runtime.Runtime, investor *addr.Address) *abi.TokenAmount {
	rt.ValidateImmediateCallerAcceptAny()
	resolved, ok := rt.ResolveAddress(*investor)
	if !ok {
		zero := big.Zero()
		return &zero
	}

	var st State
	rt.StateReadonly(&st)
	allocation, err := st.AllocationOf(adt.AsStore(rt), resolved)
	builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to get allocation of %v", resolved)
	return &allocation
}

func (a Actor) GetRaised(rt runtime.Runtime, _ *abi.EmptyValue) *abi.TokenAmount {
	rt.ValidateImmediateCallerAcceptAny()

	var st State
	rt.StateReadonly(&st)
	return &st.Raised
}

func (a Actor) GetSold(rt runtime.Runtime, _ *abi.EmptyValue) *abi.TokenAmount {
	rt.ValidateImmediateCallerAcceptAny()

	var st State
	rt.StateReadonly(&st)
	return &st.Sold
}
