package token

import (
	addr "github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/big"

	"github.com/tokenvault/vault-actors/actors/builtin"
	"github.com/tokenvault/vault-actors/actors/util/adt"
)

type StateSummary struct {
	Balances    map[addr.Address]abi.TokenAmount
	TotalSupply abi.TokenAmount
}

// Checks internal invariants of token state.
func CheckStateInvariants(st *State, store adt.Store) (*StateSummary, *builtin.MessageAccumulator) {
	acc := &builtin.MessageAccumulator{}
	summary := &StateSummary{
		Balances:    make(map[addr.Address]abi.TokenAmount),
		TotalSupply: st.TotalSupply,
	}

	acc.Require(st.TotalSupply.Sign() >= 0, "total supply %v is negative", st.TotalSupply)

	if balances, err := adt.AsBalanceTable(store, st.Balances); err != nil {
		acc.Addf("error loading balances: %v", err)
	} else {
		sum := big.Zero()
		err = balances.ForEach(func(holder addr.Address, balance abi.TokenAmount) error {
			acc.Require(holder.Protocol() == addr.ID, "balance held by non-ID address %v", holder)
			acc.Require(balance.Sign() > 0, "balance of %v is %v, zero balances must be removed", holder, balance)
			summary.Balances[holder] = balance
			sum = big.Add(sum, balance)
			return nil
		})
		acc.RequireNoError(err, "error iterating balances")
		acc.Require(sum.Equals(st.TotalSupply), "sum of balances %v != total supply %v", sum, st.TotalSupply)
	}

	if allowances, err := adt.AsMap(store, st.Allowances, AllowancesBitwidth); err != nil {
		acc.Addf("error loading allowances: %v", err)
	} else {
		var allowance abi.TokenAmount
		err = allowances.ForEach(&allowance, func(k string) error {
			key, err := parseAllowanceKey(k)
			if err != nil {
				acc.Addf("%v", err)
				return nil
			}
			acc.Require(allowance.Sign() > 0, "allowance of %v for %v is %v, zero allowances must be removed",
				key.owner, key.spender, allowance)
			return nil
		})
		acc.RequireNoError(err, "error iterating allowances")
	}

	return summary, acc
}
