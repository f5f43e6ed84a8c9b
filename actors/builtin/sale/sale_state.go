package sale

import (
	addr "github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/big"
	cid "github.com/ipfs/go-cid"
	"golang.org/x/xerrors"

	"github.com/tokenvault/vault-actors/actors/builtin"
	"github.com/tokenvault/vault-actors/actors/util/adt"
)

// ErrCapExceeded is returned when a payment would take an investor past the per-address cap.
var ErrCapExceeded = xerrors.New(ErrMsgExceedsCap)

type State struct {
	Owner addr.Address
	Token addr.Address
	// Token atto-units allocated per whole unit of native currency.
	Rate                 abi.TokenAmount
	MaxPaymentPerAddress abi.TokenAmount
	Paused               bool
	Claimable            bool

	Payments    cid.Cid // BalanceTable, cumulative native payment per investor
	Allocations cid.Cid // BalanceTable, tokens allocated and not yet claimed per investor
	Raised      abi.TokenAmount
	Sold        abi.TokenAmount
	Claimed     abi.TokenAmount
}

func ConstructState(store adt.Store, owner, token addr.Address, rate, maxPayment abi.TokenAmount) (*State, error) {
	emptyTable, err := adt.StoreEmptyMap(store, adt.BalanceTableBitwidth)
	if err != nil {
		return nil, xerrors.Errorf("failed to create empty balance table: %w", err)
	}
	return &State{
		Owner:                owner,
		Token:                token,
		Rate:                 rate,
		MaxPaymentPerAddress: maxPayment,
		Paused:               true,
		Claimable:            false,
		Payments:             emptyTable,
		Allocations:          emptyTable,
		Raised:               big.Zero(),
		Sold:                 big.Zero(),
		Claimed:              big.Zero(),
	}, nil
}

// AllocationFor converts a native payment into tokens at the sale rate, rounding down.
func (st *State) AllocationFor(payment abi.TokenAmount) abi.TokenAmount {
	return big.Div(big.Mul(payment, st.Rate), builtin.TokenPrecision)
}

// RecordPayment accumulates a payment and its allocation for an investor.
// The payment is rejected in full with ErrCapExceeded if it takes the investor's cumulative payment past the cap.
func (st *State) RecordPayment(store adt.Store, investor addr.Address, payment abi.TokenAmount) (abi.TokenAmount, error) {
	payments, err := adt.AsBalanceTable(store, st.Payments)
	if err != nil {
		return big.Zero(), xerrors.Errorf("failed to load payments: %w", err)
	}
	prev, err := payments.Get(investor)
	if err != nil {
		return big.Zero(), xerrors.Errorf("failed to get payment of %v: %w", investor, err)
	}
	if big.Add(prev, payment).GreaterThan(st.MaxPaymentPerAddress) {
		return big.Zero(), ErrCapExceeded
	}
	if err := payments.Add(investor, payment); err != nil {
		return big.Zero(), xerrors.Errorf("failed to add payment of %v: %w", investor, err)
	}
	if st.Payments, err = payments.Root(); err != nil {
		return big.Zero(), xerrors.Errorf("failed to flush payments: %w", err)
	}

	allocation := st.AllocationFor(payment)
	allocations, err := adt.AsBalanceTable(store, st.Allocations)
	if err != nil {
		return big.Zero(), xerrors.Errorf("failed to load allocations: %w", err)
	}
	if err := allocations.Add(investor, allocation); err != nil {
		return big.Zero(), xerrors.Errorf("failed to add allocation of %v: %w", investor, err)
	}
	if st.Allocations, err = allocations.Root(); err != nil {
		return big.Zero(), xerrors.Errorf("failed to flush allocations: %w", err)
	}

	st.Raised = big.Add(st.Raised, payment)
	st.Sold = big.Add(st.Sold, allocation)
	return allocation, nil
}

// TakeAllocation zeroes an investor's allocation, returning what it was.
func (st *State) TakeAllocation(store adt.Store, investor addr.Address) (abi.TokenAmount, error) {
	allocations, err := adt.AsBalanceTable(store, st.Allocations)
	if err != nil {
		return big.Zero(), xerrors.Errorf("failed to load allocations: %w", err)
	}
	amount, err := allocations.Remove(investor)
	if err != nil {
		return big.Zero(), xerrors.Errorf("failed to remove allocation of %v: %w", investor, err)
	}
	if st.Allocations, err = allocations.Root(); err != nil {
		return big.Zero(), xerrors.Errorf("failed to flush allocations: %w", err)
	}
	st.Claimed = big.Add(st.Claimed, amount)
	return amount, nil
}

func (st *State) AllocationOf(store adt.Store, investor addr.Address) (abi.TokenAmount, error) {
	allocations, err := adt.AsBalanceTable(store, st.Allocations)
	if err != nil {
		return big.Zero(), xerrors.Errorf("failed to load allocations: %w", err)
	}
	return allocations.Get(investor)
}

func (st *State) PaymentOf(store adt.Store, investor addr.Address) (abi.TokenAmount, error) {
	payments, err := adt.AsBalanceTable(store, st.Payments)
	if err != nil {
		return big.Zero(), xerrors.Errorf("failed to load payments: %w", err)
	}
	return payments.Get(investor)
}

// Outstanding is the amount of sold tokens not yet claimed.
func (st *State) Outstanding() abi.TokenAmount {
	return big.Sub(st.Sold, st.Claimed)
}
