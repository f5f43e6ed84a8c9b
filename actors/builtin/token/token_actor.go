package token

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
	"github.com/tokenvault/vault-actors/actors/runtime"
	"github.com/tokenvault/vault-actors/actors/util/adt"
)

// A minimal fungible token. Balances and allowances are keyed by ID address.
type Actor struct{}

func (a Actor) Exports() []interface{} {
	return []interface{}{
		builtin.MethodConstructor: a.Constructor,
		2:                         a.Transfer,
		3:                         a.TransferFrom,
		4:                         a.Approve,
		5:                         a.BalanceOf,
		6:                         a.Allowance,
		7:                         a.TotalSupply,
	}
}

func (a Actor) Code() cid.Cid {
	return builtin.TokenActorCodeID
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
	requireNonNegative(rt, params.InitialSupply)

	var holder addr.Address
	if !params.InitialSupply.IsZero() {
		holder = builtin.ResolveToIDAddr(rt, params.Holder, ErrMsgInvalidAddress)
	}

	store := adt.AsStore(rt)
	st, err := ConstructState(store, params.Name, params.Symbol, params.Decimals)
	builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to construct state")
	if !params.InitialSupply.IsZero() {
		err = st.Mint(store, holder, params.InitialSupply)
		builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to mint initial supply")
	}
	rt.StateCreate(st)

	if !params.InitialSupply.IsZero() {
		rt.EmitEvent(&TransferEvent{From: builtin.SystemActorAddr, To: holder, Amount: params.InitialSupply})
	}
	return nil
}

func (a Actor) Transfer(rt runtime.Runtime, params *TransferParams) *abi.EmptyValue {
	rt.ValidateImmediateCallerAcceptAny()
	requireNonNegative(rt, params.Amount)
	from := rt.Message().Caller()
	to := builtin.ResolveToIDAddr(rt, params.To, ErrMsgInvalidAddress)

	var st State
	rt.StateTransaction(&st, func() {
		err := st.Transfer(adt.AsStore(rt), from, to, params.Amount)
		requireTokenOp(rt, err, "transfer")
	})
	rt.Log(rtt.DEBUG, "transferred %v from %v to %v", params.Amount, from, to)

	rt.EmitEvent(&TransferEvent{From: from, To: to, Amount: params.Amount})
	return nil
}

// TransferFrom moves tokens out of From's balance, spending the caller's allowance.
func (a Actor) TransferFrom(rt runtime.Runtime, params *TransferFromParams) *abi.EmptyValue {
	rt.ValidateImmediateCallerAcceptAny()
	requireNonNegative(rt, params.Amount)
	spender := rt.Message().Caller()
	from := resolveHolder(rt, params.From)
	to := builtin.ResolveToIDAddr(rt, params.To, ErrMsgInvalidAddress)

	var st State
	rt.StateTransaction(&st, func() {
		err := st.TransferFrom(adt.AsStore(rt), spender, from, to, params.Amount)
		requireTokenOp(rt, err, "transfer")
	})

	rt.EmitEvent(&TransferEvent{From: from, To: to, Amount: params.Amount})
	return nil
}

func (a Actor) Approve(rt runtime.Runtime, params *ApproveParams) *abi.EmptyValue {
	rt.ValidateImmediateCallerAcceptAny()
	requireNonNegative(rt, params.Amount)
	owner := rt.Message().Caller()
	spender := builtin.ResolveToIDAddr(rt, params.Spender, ErrMsgInvalidAddress)

	var st State
	rt.StateTransaction(&st, func() {
		err := st.Approve(adt.AsStore(rt), owner, spender, params.Amount)
		builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to approve %v", spender)
	})

	rt.EmitEvent(&ApprovalEvent{Owner: owner, Spender: spender, Amount: params.Amount})
	return nil
}

func (a Actor) BalanceOf(rt runtime.Runtime, owner *addr.Address) *abi.TokenAmount {
	rt.ValidateImmediateCallerAcceptAny()
	resolved, ok := rt.ResolveAddress(*owner)
	if !ok {
		zero := big.Zero()
		return &zero
	}

	var st State
	rt.StateReadonly(&st)
	balance, err := st.BalanceOf(adt.AsStore(rt), resolved)
	builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to get balance of %v", resolved)
	return &balance
}

func (a Actor) Allowance(rt runtime.Runtime, params *AllowanceParams) *abi.TokenAmount {
	rt.ValidateImmediateCallerAcceptAny()
	owner, okOwner := rt.ResolveAddress(params.Owner)
	spender, okSpender := rt.ResolveAddress(params.Spender)
	if !okOwner || !okSpender {
		zero := big.Zero()
		return &zero
	}

	var st State
	rt.StateReadonly(&st)
	allowance, err := st.Allowance(adt.AsStore(rt), owner, spender)
	builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to get allowance")
	return &allowance
}

func (a Actor) TotalSupply(rt runtime.Runtime, _ *abi.EmptyValue) *abi.TokenAmount {
	rt.ValidateImmediateCallerAcceptAny()

	var st State
	rt.StateReadonly(&st)
	return &st.TotalSupply
}

func requireNonNegative(rt runtime.Runtime, amount abi.TokenAmount) {
	if amount.Sign() < 0 {
		rt.Abortf(exitcode.ErrIllegalArgument, ErrMsgNegativeAmount)
	}
}

func resolveHolder(rt runtime.Runtime, raw addr.Address) addr.Address {
	resolved, ok := rt.ResolveAddress(raw)
	if !ok {
		rt.Abortf(exitcode.ErrIllegalArgument, "%s %v", ErrMsgInvalidAddress, raw)
	}
	return resolved
}

// Maps the state's balance and allowance errors to ErrInsufficientFunds with their message unchanged.
func requireTokenOp(rt runtime.Runtime, err error, op string) {
	switch {
	case err == nil:
	case xerrors.Is(err, ErrInsufficientBalance), xerrors.Is(err, ErrInsufficientAllowance):
		rt.Abortf(exitcode.ErrInsufficientFunds, "%s", err.Error())
	default:
		builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to %s", op)
	}
}
