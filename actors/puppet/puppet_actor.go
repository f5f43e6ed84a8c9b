package puppet

import (
	addr "github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/cbor"
	"github.com/filecoin-project/go-state-types/exitcode"
	cid "github.com/ipfs/go-cid"
	mh "github.com/multiformats/go-multihash"

	"github.com/tokenvault/vault-actors/actors/builtin"
	"github.com/tokenvault/vault-actors/actors/runtime"
)

// The puppet is a test actor that sends, emits and aborts on command.
// It is never part of a deployed machine.
type Actor struct{}

var PuppetActorCodeID = func() cid.Cid {
	builder := cid.V1Builder{Codec: cid.Raw, MhType: mh.IDENTITY}
	c, err := builder.Sum([]byte("tv/1/puppet"))
	if err != nil {
		panic(err)
	}
	return c
}()

const (
	MethodSend  = abi.MethodNum(2)
	MethodEmit  = abi.MethodNum(3)
	MethodAbort = abi.MethodNum(4)
)

func (a Actor) Exports() []interface{} {
	return []interface{}{
		builtin.MethodConstructor: a.Constructor,
		MethodSend:                a.Send,
		MethodEmit:                a.Emit,
		MethodAbort:               a.Abort,
	}
}

func (a Actor) Code() cid.Cid {
	return PuppetActorCodeID
}

func (a Actor) State() cbor.Er {
	return new(State)
}

func (a Actor) IsSingleton() bool {
	return false
}

var _ runtime.VMActor = Actor{}

type State struct{}

func (a Actor) Constructor(rt runtime.Runtime, _ *abi.EmptyValue) *abi.EmptyValue {
	rt.ValidateImmediateCallerIs(builtin.SystemActorAddr)
	rt.StateCreate(&State{})
	return nil
}

type SendParams struct {
	To     addr.Address
	Value  abi.TokenAmount
	Method abi.MethodNum
	Params []byte
}

type SendReturn struct {
	Return []byte
	Code   exitcode.ExitCode
}

// Send relays a message and reports its outcome rather than failing with it.
func (a Actor) Send(rt runtime.Runtime, params *SendParams) *SendReturn {
	rt.ValidateImmediateCallerAcceptAny()
	var ret runtime.CBORBytes
	var sendParams cbor.Marshaler
	if len(params.Params) > 0 {
		sendParams = runtime.CBORBytes(params.Params)
	}
	code := rt.Send(params.To, params.Method, sendParams, params.Value, &ret)
	return &SendReturn{Return: ret, Code: code}
}

type EmitParams struct {
	Label string
}

type Event struct {
	Label string
}

func (e *Event) EventName() string { return "Puppet" }

func (a Actor) Emit(rt runtime.Runtime, params *EmitParams) *abi.EmptyValue {
	rt.ValidateImmediateCallerAcceptAny()
	rt.EmitEvent(&Event{Label: params.Label})
	return nil
}

type AbortParams struct {
	Code    exitcode.ExitCode
	Message string
}

// Abort emits an event and then aborts, so the event must never be observed.
func (a Actor) Abort(rt runtime.Runtime, params *AbortParams) *abi.EmptyValue {
	rt.ValidateImmediateCallerAcceptAny()
	rt.EmitEvent(&Event{Label: params.Message})
	rt.Abortf(params.Code, "%s", params.Message)
	return nil
}
