package test

import (
	"testing"

	addr "github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/big"
	"github.com/filecoin-project/go-state-types/exitcode"
	"github.com/stretchr/testify/require"

	"github.com/tokenvault/vault-actors/actors/builtin"
	"github.com/tokenvault/vault-actors/actors/builtin/token"
	"github.com/tokenvault/vault-actors/actors/builtin/vault"
	"github.com/tokenvault/vault-actors/support/vm"
)

// Midnight UTC, 2023-11-15.
const genesisTime = uint64(1_700_006_400)

// Whole tokens, in base units.
func tokens(n int64) abi.TokenAmount {
	return big.Mul(big.NewInt(n), builtin.TokenPrecision)
}

func days(n uint64) uint64 {
	return n * builtin.SecondsInDay
}

func deployToken(t *testing.T, v *vm.VM, symbol string, holder addr.Address, supply abi.TokenAmount) addr.Address {
	tokenAddr, result, err := v.Deploy(builtin.TokenActorCodeID, &token.ConstructorParams{
		Name:          symbol + " token",
		Symbol:        symbol,
		Decimals:      18,
		InitialSupply: supply,
		Holder:        holder,
	})
	require.NoError(t, err)
	require.Equal(t, exitcode.Ok, result.Code, result.Reason)
	return tokenAddr
}

func deployVault(t *testing.T, v *vm.VM, params *vault.ConstructorParams) addr.Address {
	vaultAddr, result, err := v.Deploy(builtin.VaultActorCodeID, params)
	require.NoError(t, err)
	require.Equal(t, exitcode.Ok, result.Code, result.Reason)
	return vaultAddr
}

func noFees() vault.FeeSchedule {
	return vault.FeeSchedule{FlatFee: big.Zero(), PercentFee: 0}
}

func tokenBalance(t *testing.T, v *vm.VM, tokenAddr, owner addr.Address) abi.TokenAmount {
	var st token.State
	require.NoError(t, v.GetState(tokenAddr, &st))
	id, found := v.NormalizeAddress(owner)
	if !found {
		return big.Zero()
	}
	balance, err := st.BalanceOf(v.Store(), id)
	require.NoError(t, err)
	return balance
}

func approve(t *testing.T, v *vm.VM, tokenAddr, owner, spender addr.Address, amount abi.TokenAmount) {
	vm.ApplyOk(t, v, owner, tokenAddr, big.Zero(), builtin.MethodsToken.Approve, &token.ApproveParams{Spender: spender, Amount: amount})
}

func claimable(t *testing.T, v *vm.VM, caller, vaultAddr addr.Address, lockIndex uint64, recipient addr.Address) *vault.ClaimableReturn {
	ret := vm.ApplyOk(t, v, caller, vaultAddr, big.Zero(), builtin.MethodsVault.GetClaimableAmount,
		&vault.ClaimableParams{LockIndex: lockIndex, Recipient: recipient})
	var out vault.ClaimableReturn
	vm.DecodeReturn(t, ret, &out)
	return &out
}

func claim(t *testing.T, v *vm.VM, recipient, vaultAddr addr.Address, lockIndex uint64) abi.TokenAmount {
	ret := vm.ApplyOk(t, v, recipient, vaultAddr, big.Zero(), builtin.MethodsVault.ClaimLockedTokens, &vault.LockIndexParams{LockIndex: lockIndex})
	var amount abi.TokenAmount
	vm.DecodeReturn(t, ret, &amount)
	return amount
}
