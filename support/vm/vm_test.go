package vm_test

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	addr "github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/big"
	"github.com/filecoin-project/go-state-types/cbor"
	"github.com/filecoin-project/go-state-types/exitcode"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tokenvault/vault-actors/actors/builtin"
	"github.com/tokenvault/vault-actors/actors/builtin/token"
	"github.com/tokenvault/vault-actors/actors/puppet"
	"github.com/tokenvault/vault-actors/actors/runtime"
	"github.com/tokenvault/vault-actors/actors/util/adt"
	"github.com/tokenvault/vault-actors/support/ipld"
	tutil "github.com/tokenvault/vault-actors/support/testing"
	vm "github.com/tokenvault/vault-actors/support/vm"
)

func TestNativeTransfer(t *testing.T) {
	ctx := context.Background()
	v := vm.NewVMWithSingletons(ctx, t)
	addrs := vm.CreateAccounts(ctx, t, v, 2, big.Mul(big.NewInt(10), vm.Coin), 93837778)
	alice, bob := addrs[0], addrs[1]
	total := big.Mul(big.NewInt(20), vm.Coin)

	t.Run("moves value between accounts", func(t *testing.T) {
		vm.ApplyOk(t, v, alice, bob, big.Mul(big.NewInt(3), vm.Coin), builtin.MethodSend, nil)
		assert.Equal(t, big.Mul(big.NewInt(7), vm.Coin), v.Balance(alice))
		assert.Equal(t, big.Mul(big.NewInt(13), vm.Coin), v.Balance(bob))
		vm.AssertInvariants(t, v, total)
	})

	t.Run("sender addressed by public key", func(t *testing.T) {
		pubkey, err := v.AccountAddress(bob)
		require.NoError(t, err)
		vm.ApplyOk(t, v, pubkey, alice, big.Mul(big.NewInt(3), vm.Coin), builtin.MethodSend, nil)
		assert.Equal(t, big.Mul(big.NewInt(10), vm.Coin), v.Balance(alice))
		assert.Equal(t, big.Mul(big.NewInt(10), vm.Coin), v.Balance(bob))
	})

	t.Run("insufficient funds leave state untouched", func(t *testing.T) {
		root := v.StateRoot()
		vm.ApplyCode(t, v, alice, bob, big.Mul(big.NewInt(11), vm.Coin), builtin.MethodSend, nil, exitcode.SysErrInsufficientFunds)
		assert.Equal(t, root, v.StateRoot())
		assert.Equal(t, big.Mul(big.NewInt(10), vm.Coin), v.Balance(alice))
	})

	t.Run("unknown public key receiver becomes an account", func(t *testing.T) {
		carol := tutil.NewSECP256K1Addr(t, "carol")
		_, found := v.NormalizeAddress(carol)
		require.False(t, found)

		vm.ApplyOk(t, v, alice, carol, vm.Coin, builtin.MethodSend, nil)
		carolID, found := v.NormalizeAddress(carol)
		require.True(t, found)
		assert.Equal(t, vm.Coin, v.Balance(carolID))

		pubkey, err := v.AccountAddress(carolID)
		require.NoError(t, err)
		assert.Equal(t, carol, pubkey)
		vm.AssertInvariants(t, v, total)
	})

	t.Run("unknown actor and ID receivers are rejected", func(t *testing.T) {
		vm.ApplyCode(t, v, alice, tutil.NewActorAddr(t, "nobody"), vm.Coin, builtin.MethodSend, nil, exitcode.SysErrInvalidReceiver)
		vm.ApplyCode(t, v, alice, tutil.NewIDAddr(t, 999), vm.Coin, builtin.MethodSend, nil, exitcode.SysErrInvalidReceiver)
		assert.Equal(t, big.Mul(big.NewInt(9), vm.Coin), v.Balance(alice))
	})

	t.Run("sender must be an existing account", func(t *testing.T) {
		result := v.ApplyMessage(tutil.NewBLSAddr(t, 1), bob, big.Zero(), builtin.MethodSend, nil)
		assert.Equal(t, exitcode.SysErrSenderInvalid, result.Code)

		result = v.ApplyMessage(builtin.SystemActorAddr, bob, big.Zero(), builtin.MethodSend, nil)
		assert.Equal(t, exitcode.SysErrSenderInvalid, result.Code)
	})
}

func TestDeploy(t *testing.T) {
	ctx := context.Background()
	v := vm.NewVMWithSingletons(ctx, t)
	alice := vm.CreateAccounts(ctx, t, v, 1, vm.Coin, 555)[0]
	supply := big.Mul(big.NewInt(1000), vm.Coin)

	t.Run("unknown and singleton code cannot be deployed", func(t *testing.T) {
		_, _, err := v.Deploy(puppet.PuppetActorCodeID, nil)
		assert.Error(t, err)
		_, _, err = v.Deploy(builtin.SystemActorCodeID, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot deploy singleton")
	})

	t.Run("failed constructor leaves no actor behind", func(t *testing.T) {
		root := v.StateRoot()
		a, result, err := v.Deploy(builtin.TokenActorCodeID, &token.ConstructorParams{
			Name: "Vault", Symbol: "VLT", Decimals: 18, InitialSupply: big.NewInt(-1), Holder: alice,
		})
		require.NoError(t, err)
		assert.Equal(t, addr.Undef, a)
		assert.Equal(t, exitcode.ErrIllegalArgument, result.Code)
		assert.Equal(t, root, v.StateRoot())
	})

	t.Run("constructor events are returned", func(t *testing.T) {
		tokenAddr, result, err := v.Deploy(builtin.TokenActorCodeID, &token.ConstructorParams{
			Name: "Vault", Symbol: "VLT", Decimals: 18, InitialSupply: supply, Holder: alice,
		})
		require.NoError(t, err)
		require.Equal(t, exitcode.Ok, result.Code)
		// The failed deploy above released its ID.
		assert.Equal(t, tutil.NewIDAddr(t, builtin.FirstNonSingletonActorId+1), tokenAddr)
		vm.ExpectEvents(t, result.Events, &token.TransferEvent{From: builtin.SystemActorAddr, To: alice, Amount: supply})

		ret := vm.ApplyOk(t, v, alice, tokenAddr, big.Zero(), builtin.MethodsToken.BalanceOf, &alice)
		var balance abi.TokenAmount
		vm.DecodeReturn(t, ret, &balance)
		assert.Equal(t, supply, balance)
		vm.AssertInvariants(t, v, vm.Coin)
	})
}

func TestTimestamp(t *testing.T) {
	ctx := context.Background()
	v := vm.NewVMWithSingletons(ctx, t)
	assert.Equal(t, uint64(0), v.Timestamp())

	require.NoError(t, v.SetTimestamp(100))
	require.NoError(t, v.AdvanceTime(50))
	assert.Equal(t, uint64(150), v.Timestamp())

	assert.Error(t, v.SetTimestamp(120))
	assert.Equal(t, uint64(150), v.Timestamp())

	require.NoError(t, v.SetTimestamp(150))
	assert.Equal(t, uint64(150), v.Timestamp())
}

func TestRollback(t *testing.T) {
	ctx := context.Background()
	v, err := vm.NewGenesisVM(ctx, puppetImpls(), ipld.NewADTStore(ctx))
	require.NoError(t, err)
	alice := vm.CreateAccounts(ctx, t, v, 1, big.Mul(big.NewInt(10), vm.Coin), 4242)[0]
	first := deployPuppet(t, v)
	second := deployPuppet(t, v)

	t.Run("abort discards value and events", func(t *testing.T) {
		root := v.StateRoot()
		result := v.ApplyMessage(alice, first, vm.Coin, puppet.MethodAbort, &puppet.AbortParams{
			Code: exitcode.ErrForbidden, Message: "no",
		})
		assert.Equal(t, exitcode.ErrForbidden, result.Code)
		assert.Equal(t, "no", result.Reason)
		assert.Empty(t, result.Events)
		assert.Empty(t, v.Events())
		assert.Equal(t, root, v.StateRoot())
		assert.Equal(t, big.Zero(), v.Balance(first))
	})

	t.Run("nested failure rolls back only the callee", func(t *testing.T) {
		v.ClearInvocations()
		ret := vm.ApplyOk(t, v, alice, first, big.Mul(big.NewInt(2), vm.Coin), puppet.MethodSend, &puppet.SendParams{
			To:     second,
			Value:  vm.Coin,
			Method: puppet.MethodAbort,
			Params: encode(t, &puppet.AbortParams{Code: exitcode.ErrIllegalState, Message: "inner"}),
		})
		var sendRet puppet.SendReturn
		vm.DecodeReturn(t, ret, &sendRet)
		assert.Equal(t, exitcode.ErrIllegalState, sendRet.Code)

		assert.Equal(t, big.Mul(big.NewInt(2), vm.Coin), v.Balance(first))
		assert.Equal(t, big.Zero(), v.Balance(second))
		assert.Empty(t, v.Events())

		vm.ExpectInvocation{
			To:     first,
			Method: puppet.MethodSend,
			From:   vm.ExpectAddress(alice),
			SubInvocations: []vm.ExpectInvocation{{
				To:       second,
				Method:   puppet.MethodAbort,
				Exitcode: exitcode.ErrIllegalState,
				Value:    vm.ExpectAmount(vm.Coin),
				Events:   []runtime.Event{},
			}},
		}.Matches(t, v.LastInvocation())
	})

	t.Run("events of a committed send are kept", func(t *testing.T) {
		result := v.ApplyMessage(alice, first, big.Zero(), puppet.MethodSend, &puppet.SendParams{
			To:     second,
			Value:  big.Zero(),
			Method: puppet.MethodEmit,
			Params: encode(t, &puppet.EmitParams{Label: "kept"}),
		})
		require.Equal(t, exitcode.Ok, result.Code)
		vm.ExpectEvents(t, result.Events, &puppet.Event{Label: "kept"})
		assert.Equal(t, second, result.Events[0].Emitter)
		vm.ExpectEvents(t, v.Events(), &puppet.Event{Label: "kept"})
	})

	t.Run("unknown method", func(t *testing.T) {
		vm.ApplyCode(t, v, alice, first, big.Zero(), abi.MethodNum(99), nil, exitcode.SysErrInvalidMethod)
	})

	t.Run("undecodable params", func(t *testing.T) {
		vm.ApplyCode(t, v, alice, first, big.Zero(), puppet.MethodEmit, &puppet.AbortParams{}, exitcode.ErrSerialization)
	})

	t.Run("constructor only callable by the system", func(t *testing.T) {
		vm.ApplyCode(t, v, alice, first, big.Zero(), builtin.MethodConstructor, nil, exitcode.SysErrForbidden)
	})
}

func TestAbortIsLogged(t *testing.T) {
	ctx := context.Background()
	v, err := vm.NewGenesisVM(ctx, puppetImpls(), ipld.NewADTStore(ctx))
	require.NoError(t, err)
	logger, hook := logtest.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	v.SetLogger(logger)

	alice := vm.CreateAccounts(ctx, t, v, 1, vm.Coin, 77)[0]
	target := deployPuppet(t, v)
	result := v.ApplyMessage(alice, target, big.Zero(), puppet.MethodAbort, &puppet.AbortParams{Code: exitcode.ErrNotFound, Message: "gone"})
	require.Equal(t, exitcode.ErrNotFound, result.Code)

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.WarnLevel, entry.Level)
	assert.Contains(t, entry.Message, "gone")
	assert.Equal(t, result.MsgID, entry.Data["msg_id"])
}

func TestPersistence(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "vm.db")

	bs, err := ipld.OpenSQLiteBlockStore(path)
	require.NoError(t, err)
	v, err := vm.NewGenesisVM(ctx, vm.BuiltinActorImpls(), adt.WrapBlockStore(ctx, bs))
	require.NoError(t, err)
	alice := vm.CreateAccounts(ctx, t, v, 1, vm.Coin, 31)[0]
	require.NoError(t, v.SetTimestamp(1_700_000_000))
	require.NoError(t, bs.SetHead("state", v.StateRoot()))
	require.NoError(t, bs.Close())

	bs, err = ipld.OpenSQLiteBlockStore(path)
	require.NoError(t, err)
	defer func() { _ = bs.Close() }()
	head, found, err := bs.Head("state")
	require.NoError(t, err)
	require.True(t, found)

	v, err = vm.NewVMAtRoot(ctx, vm.BuiltinActorImpls(), adt.WrapBlockStore(ctx, bs), head)
	require.NoError(t, err)
	assert.Equal(t, head, v.StateRoot())
	assert.Equal(t, uint64(1_700_000_000), v.Timestamp())
	assert.Equal(t, vm.Coin, v.Balance(alice))

	bob := vm.CreateAccounts(ctx, t, v, 1, vm.Coin, 32)[0]
	assert.Equal(t, tutil.NewIDAddr(t, builtin.FirstNonSingletonActorId+1), bob)
	vm.AssertInvariants(t, v, big.Mul(big.NewInt(2), vm.Coin))
}

func puppetImpls() vm.ActorImplLookup {
	impls := vm.BuiltinActorImpls()
	impls[puppet.PuppetActorCodeID] = puppet.Actor{}
	return impls
}

func deployPuppet(t *testing.T, v *vm.VM) addr.Address {
	a, result, err := v.Deploy(puppet.PuppetActorCodeID, nil)
	require.NoError(t, err)
	require.Equal(t, exitcode.Ok, result.Code, result.Reason)
	return a
}

func encode(t *testing.T, obj cbor.Marshaler) []byte {
	var buf bytes.Buffer
	require.NoError(t, obj.MarshalCBOR(&buf))
	return buf.Bytes()
}
