package test

import (
	"context"
	"testing"

	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/big"
	"github.com/filecoin-project/go-state-types/exitcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tokenvault/vault-actors/actors/builtin"
	"github.com/tokenvault/vault-actors/actors/builtin/sale"
	"github.com/tokenvault/vault-actors/actors/builtin/token"
	"github.com/tokenvault/vault-actors/support/vm"
)

func TestSaleLifecycle(t *testing.T) {
	ctx := context.Background()
	v := vm.NewVMWithSingletons(ctx, t)
	addrs := vm.CreateAccounts(ctx, t, v, 3, big.Mul(big.NewInt(10), vm.Coin), 400)
	owner, investor, other := addrs[0], addrs[1], addrs[2]
	nativeTotal := big.Mul(big.NewInt(30), vm.Coin)

	tokenAddr := deployToken(t, v, "VLT", owner, tokens(1_000))
	saleAddr, result, err := v.Deploy(builtin.SaleActorCodeID, &sale.ConstructorParams{
		Owner:                owner,
		Token:                tokenAddr,
		Rate:                 big.Mul(big.NewInt(2), builtin.TokenPrecision),
		MaxPaymentPerAddress: big.Mul(big.NewInt(5), vm.Coin),
	})
	require.NoError(t, err)
	require.Equal(t, exitcode.Ok, result.Code, result.Reason)
	vm.AssertInvariants(t, v, nativeTotal)

	queryAmount := func(method abi.MethodNum, params *abi.EmptyValue) abi.TokenAmount {
		ret := vm.ApplyOk(t, v, other, saleAddr, big.Zero(), method, params)
		var amount abi.TokenAmount
		vm.DecodeReturn(t, ret, &amount)
		return amount
	}

	t.Run("sale starts paused", func(t *testing.T) {
		vm.ApplyCode(t, v, investor, saleAddr, vm.Coin, builtin.MethodsSale.Invest, nil, exitcode.ErrIllegalState)
		assert.Equal(t, big.Mul(big.NewInt(10), vm.Coin), v.Balance(investor))

		vm.ApplyCode(t, v, investor, saleAddr, big.Zero(), builtin.MethodsSale.Unpause, nil, exitcode.ErrForbidden)
		vm.ApplyOk(t, v, owner, saleAddr, big.Zero(), builtin.MethodsSale.Unpause, nil)
		vm.ApplyCode(t, v, owner, saleAddr, big.Zero(), builtin.MethodsSale.Unpause, nil, exitcode.ErrIllegalState)
	})

	t.Run("investment allocates at the rate", func(t *testing.T) {
		payment := big.Mul(big.NewInt(2), vm.Coin)
		ret := vm.ApplyOk(t, v, investor, saleAddr, payment, builtin.MethodsSale.Invest, nil)
		var allocation abi.TokenAmount
		vm.DecodeReturn(t, ret, &allocation)
		assert.Equal(t, tokens(4), allocation)
		vm.ExpectEvents(t, v.LastInvocation().Events, &sale.TokensAllocatedEvent{
			Investor: investor, Payment: payment, Allocation: tokens(4),
		})

		assert.Equal(t, payment, v.Balance(saleAddr))
		assert.Equal(t, payment, queryAmount(builtin.MethodsSale.GetRaised, nil))
		assert.Equal(t, tokens(4), queryAmount(builtin.MethodsSale.GetSold, nil))

		ret = vm.ApplyOk(t, v, other, saleAddr, big.Zero(), builtin.MethodsSale.GetAllowance, &investor)
		vm.DecodeReturn(t, ret, &allocation)
		assert.Equal(t, tokens(4), allocation)
		vm.AssertInvariants(t, v, nativeTotal)
	})

	t.Run("payments past the cap are rejected whole", func(t *testing.T) {
		vm.ApplyCode(t, v, investor, saleAddr, big.Mul(big.NewInt(4), vm.Coin), builtin.MethodsSale.Invest, nil, exitcode.ErrForbidden)
		assert.Equal(t, big.Mul(big.NewInt(8), vm.Coin), v.Balance(investor))
		vm.ApplyCode(t, v, investor, saleAddr, big.Zero(), builtin.MethodsSale.Invest, nil, exitcode.ErrIllegalArgument)

		vm.ApplyOk(t, v, investor, saleAddr, big.Mul(big.NewInt(3), vm.Coin), builtin.MethodsSale.Invest, nil)
		assert.Equal(t, tokens(10), queryAmount(builtin.MethodsSale.GetSold, nil))
		vm.AssertInvariants(t, v, nativeTotal)
	})

	t.Run("claims wait for activation", func(t *testing.T) {
		vm.ApplyCode(t, v, investor, saleAddr, big.Zero(), builtin.MethodsSale.Claim, nil, exitcode.ErrForbidden)
		vm.ApplyCode(t, v, investor, saleAddr, big.Zero(), builtin.MethodsSale.SetClaimable, &sale.SetClaimableParams{Claimable: true}, exitcode.ErrForbidden)
		vm.ApplyOk(t, v, owner, saleAddr, big.Zero(), builtin.MethodsSale.SetClaimable, &sale.SetClaimableParams{Claimable: true})
	})

	t.Run("an unfunded sale cannot pay out", func(t *testing.T) {
		vm.ApplyCode(t, v, investor, saleAddr, big.Zero(), builtin.MethodsSale.Claim, nil, exitcode.ErrInsufficientFunds)
	})

	t.Run("claim transfers the whole allocation once", func(t *testing.T) {
		vm.ApplyOk(t, v, owner, tokenAddr, big.Zero(), builtin.MethodsToken.Transfer, &token.TransferParams{To: saleAddr, Amount: tokens(100)})

		ret := vm.ApplyOk(t, v, investor, saleAddr, big.Zero(), builtin.MethodsSale.Claim, nil)
		var claimed abi.TokenAmount
		vm.DecodeReturn(t, ret, &claimed)
		assert.Equal(t, tokens(10), claimed)
		assert.Equal(t, tokens(10), tokenBalance(t, v, tokenAddr, investor))
		vm.ExpectEvents(t, v.LastInvocation().Events, &sale.TokensClaimedEvent{Investor: investor, Amount: tokens(10)})

		vm.ApplyCode(t, v, investor, saleAddr, big.Zero(), builtin.MethodsSale.Claim, nil, exitcode.ErrIllegalState)
		vm.AssertInvariants(t, v, nativeTotal)
	})

	t.Run("owner withdraws proceeds and surplus tokens", func(t *testing.T) {
		vm.ApplyCode(t, v, investor, saleAddr, big.Zero(), builtin.MethodsSale.WithdrawProceeds, nil, exitcode.ErrForbidden)

		ret := vm.ApplyOk(t, v, owner, saleAddr, big.Zero(), builtin.MethodsSale.WithdrawProceeds, nil)
		var withdrawn abi.TokenAmount
		vm.DecodeReturn(t, ret, &withdrawn)
		assert.Equal(t, big.Mul(big.NewInt(5), vm.Coin), withdrawn)
		assert.Equal(t, big.Mul(big.NewInt(15), vm.Coin), v.Balance(owner))
		assert.True(t, big.Zero().Equals(v.Balance(saleAddr)))

		ret = vm.ApplyOk(t, v, owner, saleAddr, big.Zero(), builtin.MethodsSale.WithdrawTokens, nil)
		vm.DecodeReturn(t, ret, &withdrawn)
		assert.Equal(t, tokens(90), withdrawn)
		assert.Equal(t, tokens(990), tokenBalance(t, v, tokenAddr, owner))
		vm.AssertInvariants(t, v, nativeTotal)
	})

	t.Run("ownership moves", func(t *testing.T) {
		vm.ApplyOk(t, v, owner, saleAddr, big.Zero(), builtin.MethodsSale.TransferOwnership, &other)
		vm.ApplyCode(t, v, owner, saleAddr, big.Zero(), builtin.MethodsSale.Pause, nil, exitcode.ErrForbidden)
		vm.ApplyOk(t, v, other, saleAddr, big.Zero(), builtin.MethodsSale.Pause, nil)
		vm.ApplyCode(t, v, investor, saleAddr, vm.Coin, builtin.MethodsSale.Invest, nil, exitcode.ErrIllegalState)
	})
}
