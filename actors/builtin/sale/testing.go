package sale

import (
	addr "github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/big"

	"github.com/tokenvault/vault-actors/actors/builtin"
	"github.com/tokenvault/vault-actors/actors/util/adt"
)

type StateSummary struct {
	Token       addr.Address
	Investors   int
	Outstanding abi.TokenAmount
}

// Checks internal invariants of sale state.
func CheckStateInvariants(st *State, store adt.Store) (*StateSummary, *builtin.MessageAccumulator) {
	acc := &builtin.MessageAccumulator{}
	summary := &StateSummary{Token: st.Token, Outstanding: st.Outstanding()}

	acc.Require(st.Rate.Sign() > 0, "rate %v not positive", st.Rate)
	acc.Require(st.MaxPaymentPerAddress.Sign() > 0, "payment cap %v not positive", st.MaxPaymentPerAddress)
	acc.Require(st.Claimed.Sign() >= 0, "claimed %v is negative", st.Claimed)
	acc.Require(st.Claimed.LessThanEqual(st.Sold), "claimed %v exceeds sold %v", st.Claimed, st.Sold)

	if payments, err := adt.AsBalanceTable(store, st.Payments); err != nil {
		acc.Addf("error loading payments: %v", err)
	} else {
		sum := big.Zero()
		err = payments.ForEach(func(investor addr.Address, payment abi.TokenAmount) error {
			summary.Investors++
			acc.Require(payment.Sign() > 0, "payment of %v is %v", investor, payment)
			acc.Require(payment.LessThanEqual(st.MaxPaymentPerAddress), "payment of %v is %v, exceeds cap %v",
				investor, payment, st.MaxPaymentPerAddress)
			sum = big.Add(sum, payment)
			return nil
		})
		acc.RequireNoError(err, "error iterating payments")
		acc.Require(sum.Equals(st.Raised), "sum of payments %v != raised %v", sum, st.Raised)
	}

	if allocations, err := adt.AsBalanceTable(store, st.Allocations); err != nil {
		acc.Addf("error loading allocations: %v", err)
	} else {
		sum := big.Zero()
		err = allocations.ForEach(func(investor addr.Address, allocation abi.TokenAmount) error {
			acc.Require(allocation.Sign() > 0, "allocation of %v is %v", investor, allocation)
			sum = big.Add(sum, allocation)
			return nil
		})
		acc.RequireNoError(err, "error iterating allocations")
		acc.Require(sum.Equals(st.Outstanding()), "sum of allocations %v != sold %v less claimed %v", sum, st.Sold, st.Claimed)
	}

	return summary, acc
}
