package vm

import (
	"bytes"
	"context"
	"fmt"
	"testing"

	addr "github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/big"
	"github.com/filecoin-project/go-state-types/cbor"
	"github.com/filecoin-project/go-state-types/exitcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tokenvault/vault-actors/actors/runtime"
	"github.com/tokenvault/vault-actors/support/ipld"
	actor_testing "github.com/tokenvault/vault-actors/support/testing"
)

// One whole native coin, in atto units.
var Coin = big.NewInt(1e18)

//
// Genesis like setup
//

// Creates a new VM, backed by an in-memory store, holding the system actor.
func NewVMWithSingletons(ctx context.Context, t testing.TB) *VM {
	store := ipld.NewADTStore(ctx)
	v, err := NewGenesisVM(ctx, BuiltinActorImpls(), store)
	require.NoError(t, err)
	return v
}

// Creates n account actors in the VM with the given balance, returning their ID addresses.
func CreateAccounts(ctx context.Context, t testing.TB, vm *VM, n int, balance abi.TokenAmount, seed int64) []addr.Address {
	ids := make([]addr.Address, n)
	for i := range ids {
		pubkey := actor_testing.NewBLSAddr(t, seed+int64(i))
		id, err := vm.CreateAccount(pubkey, balance)
		require.NoError(t, err)
		ids[i] = id
	}
	return ids
}

//
// Message application
//

// Applies a message and requires it to succeed, returning its return value.
func ApplyOk(t testing.TB, v *VM, from, to addr.Address, value abi.TokenAmount, method abi.MethodNum, params cbor.Marshaler) cbor.Marshaler {
	return ApplyCode(t, v, from, to, value, method, params, exitcode.Ok)
}

// Applies a message and requires the given exit code.
func ApplyCode(t testing.TB, v *VM, from, to addr.Address, value abi.TokenAmount, method abi.MethodNum, params cbor.Marshaler, code exitcode.ExitCode) cbor.Marshaler {
	result := v.ApplyMessage(from, to, value, method, params)
	require.Equal(t, code, result.Code, "unexpected exit code applying method %d to %v: %s", method, to, result.Reason)
	return result.Ret
}

// Decodes a return value into out, through its encoding.
func DecodeReturn(t testing.TB, ret cbor.Marshaler, out cbor.Unmarshaler) {
	require.NotNil(t, ret, "no return value")
	var buf bytes.Buffer
	require.NoError(t, ret.MarshalCBOR(&buf))
	require.NoError(t, out.UnmarshalCBOR(&buf))
}

// Requires the committed state to satisfy every actor and cross-actor invariant.
func AssertInvariants(t testing.TB, v *VM, expectedBalanceTotal abi.TokenAmount) {
	msgs, err := v.CheckStateInvariants(expectedBalanceTotal)
	require.NoError(t, err)
	assert.Empty(t, msgs.Messages(), "invariants violated")
}

//
// Invocation expectations
//

func ExpectObject(v cbor.Marshaler) *objectExpectation {
	return &objectExpectation{v}
}

// distinguishes a non-expectation from an expectation of nil
type objectExpectation struct {
	val cbor.Marshaler
}

func ExpectAmount(amount big.Int) *big.Int       { return &amount }
func ExpectAddress(a addr.Address) *addr.Address { return &a }

// match by cbor encoding to avoid inconsistencies in internal representations of effectively equal objects
func (oe objectExpectation) matches(obj cbor.Marshaler) bool {
	if isNil(oe.val) || isNil(obj) {
		return isNil(oe.val) && isNil(obj)
	}
	return sameEncoding(oe.val, obj)
}

type ExpectInvocation struct {
	To       addr.Address
	Method   abi.MethodNum
	Exitcode exitcode.ExitCode

	From           *addr.Address
	Value          *abi.TokenAmount
	Params         *objectExpectation
	Ret            *objectExpectation
	Events         []runtime.Event
	SubInvocations []ExpectInvocation
}

func (ei ExpectInvocation) Matches(t testing.TB, invocation *Invocation) {
	ei.matches(t, "", invocation)
}

func (ei ExpectInvocation) matches(t testing.TB, breadcrumb string, invocation *Invocation) {
	identifier := fmt.Sprintf("%s[%s:%d]", breadcrumb, invocation.Msg.to, invocation.Msg.method)

	// mismatch of to or method probably indicates skipped message or messages out of order. halt.
	require.Equal(t, ei.To, invocation.Msg.to, "%s unexpected `to` address", identifier)
	require.Equal(t, ei.Method, invocation.Msg.method, "%s unexpected method", identifier)

	// other expectations are optional
	if ei.From != nil {
		assert.Equal(t, *ei.From, invocation.Msg.from, "%s unexpected from address", identifier)
	}
	if ei.Value != nil {
		assert.True(t, ei.Value.Equals(invocation.Msg.value), "%s unexpected value (%v != %v)", identifier, *ei.Value, invocation.Msg.value)
	}
	if ei.Params != nil {
		assert.True(t, ei.Params.matches(invocation.Msg.params), "%s params aren't equal (%v != %v)", identifier, ei.Params.val, invocation.Msg.params)
	}
	if ei.SubInvocations != nil {
		for i, invk := range invocation.SubInvocations {
			subidentifier := fmt.Sprintf("%s%d:", identifier, i)
			require.Greater(t, len(ei.SubInvocations), i, "%s unexpected subinvocation [%s:%d]", subidentifier, invk.Msg.to, invk.Msg.method)
			ei.SubInvocations[i].matches(t, subidentifier, invk)
		}
		missingInvocations := len(ei.SubInvocations) - len(invocation.SubInvocations)
		if missingInvocations > 0 {
			missingIndex := len(invocation.SubInvocations)
			missingExpect := ei.SubInvocations[missingIndex]
			require.Failf(t, "missing invocation", "%s%d: expected invocation [%s:%d]", identifier, missingIndex, missingExpect.To, missingExpect.Method)
		}
	}
	if ei.Events != nil {
		ExpectEvents(t, invocation.Events, ei.Events...)
	}

	// expect results
	assert.Equal(t, ei.Exitcode, invocation.Exitcode, "%s unexpected exitcode: %s", identifier, invocation.Reason)
	if ei.Ret != nil {
		assert.True(t, ei.Ret.matches(invocation.Ret), "%s unexpected return value (%v != %v)", identifier, ei.Ret.val, invocation.Ret)
	}
}

// Requires the emitted events to match the expected ones by name and encoding, in order.
func ExpectEvents(t testing.TB, actual []EmittedEvent, expected ...runtime.Event) {
	require.Len(t, actual, len(expected), "unexpected number of events")
	for i, e := range expected {
		assert.Equal(t, e.EventName(), actual[i].Event.EventName(), "event %d", i)
		assert.True(t, sameEncoding(e, actual[i].Event), "event %d: %v != %v", i, e, actual[i].Event)
	}
}

func sameEncoding(a, b cbor.Marshaler) bool {
	var ab, bb bytes.Buffer
	if err := a.MarshalCBOR(&ab); err != nil {
		return false
	}
	if err := b.MarshalCBOR(&bb); err != nil {
		return false
	}
	return bytes.Equal(ab.Bytes(), bb.Bytes())
}
