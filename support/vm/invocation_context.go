package vm

import (
	"bytes"
	"context"
	"fmt"
	"reflect"

	addr "github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/cbor"
	"github.com/filecoin-project/go-state-types/exitcode"
	rtt "github.com/filecoin-project/go-state-types/rt"
	cid "github.com/ipfs/go-cid"
	blake2b "github.com/minio/blake2b-simd"
	sha256 "github.com/minio/sha256-simd"
	"github.com/sirupsen/logrus"
	"golang.org/x/xerrors"

	"github.com/tokenvault/vault-actors/actors/builtin"
	"github.com/tokenvault/vault-actors/actors/runtime"
	"github.com/tokenvault/vault-actors/actors/states"
	"github.com/tokenvault/vault-actors/support/ipld"
)

// Invocation is the trace of one message and every message it sent in turn.
type Invocation struct {
	Msg            *internalMessage
	Exitcode       exitcode.ExitCode
	Reason         string
	Ret            cbor.Marshaler
	Events         []EmittedEvent // emitted by the receiver itself, kept only on success
	SubInvocations []*Invocation
}

type invocationContext struct {
	vm              *VM
	log             logrus.FieldLogger
	msg             internalMessage
	receiverCode    cid.Cid
	callerValidated bool
	inTransaction   bool

	// Events from this invocation and its committed sends, in emission order.
	events     []EmittedEvent
	invocation Invocation
}

func newInvocationContext(vm *VM, log logrus.FieldLogger, msg internalMessage) *invocationContext {
	return &invocationContext{
		vm:  vm,
		log: log,
		msg: msg,
	}
}

var _ runtime.Runtime = (*invocationContext)(nil)
var _ runtime.Syscalls = (*invocationContext)(nil)

type abort struct {
	code exitcode.ExitCode
	msg  string
}

func (a abort) String() string {
	return fmt.Sprintf("abort(%v): %s", a.code, a.msg)
}

// invoke resolves the receiver, moves the attached value and dispatches the method.
// State changes are not rolled back here: that is up to the sender of the message.
func (ic *invocationContext) invoke() (ret cbor.Marshaler, errcode exitcode.ExitCode) {
	ic.invocation.Msg = &ic.msg

	defer func() {
		if r := recover(); r != nil {
			a, ok := r.(abort)
			if !ok {
				panic(r)
			}
			ret = nil
			errcode = a.code
			ic.invocation.Reason = a.msg
			ic.invocation.Events = nil
			ic.events = nil
		}
		ic.invocation.Exitcode = errcode
		ic.invocation.Ret = ret
	}()

	ic.msg.to = ic.resolveTarget(ic.msg.to)

	if err := ic.vm.transfer(ic.msg.from, ic.msg.to, ic.msg.value); err != nil {
		if xerrors.Is(err, errInsufficientFunds) {
			ic.Abortf(exitcode.SysErrInsufficientFunds, "cannot send %v from %v: %v", ic.msg.value, ic.msg.from, err)
		}
		ic.Abortf(exitcode.SysErrorIllegalActor, "failed to transfer %v: %v", ic.msg.value, err)
	}

	if ic.msg.method == builtin.MethodSend {
		return nil, exitcode.Ok
	}

	toActor := ic.loadReceiver()
	impl, ok := ic.vm.getActorImpl(toActor.Code)
	if !ok {
		ic.Abortf(exitcode.SysErrInvalidReceiver, "actor implementation not found for code %v", toActor.Code)
	}
	ic.receiverCode = toActor.Code

	ret = ic.dispatch(impl)
	if !ic.callerValidated {
		ic.Abortf(exitcode.SysErrorIllegalActor, "caller MUST be validated during method execution")
	}
	return ret, exitcode.Ok
}

func (ic *invocationContext) dispatch(impl runtime.VMActor) cbor.Marshaler {
	exports := impl.Exports()
	if uint64(ic.msg.method) >= uint64(len(exports)) || exports[ic.msg.method] == nil {
		ic.Abortf(exitcode.SysErrInvalidMethod, "actor %s has no method %d", builtin.ActorNameByCode(impl.Code()), ic.msg.method)
	}
	meth := reflect.ValueOf(exports[ic.msg.method])

	// Parameters always go through their encoding, so callee and sender never share memory.
	param := reflect.New(meth.Type().In(1).Elem())
	if !isNil(ic.msg.params) {
		var buf bytes.Buffer
		if err := ic.msg.params.MarshalCBOR(&buf); err != nil {
			ic.Abortf(exitcode.ErrSerialization, "failed to encode params: %v", err)
		}
		if err := param.Interface().(cbor.Unmarshaler).UnmarshalCBOR(&buf); err != nil {
			ic.Abortf(exitcode.ErrSerialization, "failed to decode params for method %d: %v", ic.msg.method, err)
		}
	}

	out := meth.Call([]reflect.Value{reflect.ValueOf(ic), param})
	ret, _ := out[0].Interface().(cbor.Marshaler)
	if isNil(ret) {
		return nil
	}
	return ret
}

// Resolves the receiver to an ID address, creating an account for an unknown public key.
func (ic *invocationContext) resolveTarget(target addr.Address) addr.Address {
	if id, found := ic.vm.NormalizeAddress(target); found {
		_, exists, err := ic.vm.tree.GetActor(id)
		if err != nil {
			panic(err)
		}
		if !exists {
			ic.Abortf(exitcode.SysErrInvalidReceiver, "actor %v not found", target)
		}
		return id
	}

	if target.Protocol() != addr.SECP256K1 && target.Protocol() != addr.BLS {
		ic.Abortf(exitcode.SysErrInvalidReceiver, "cannot send to unknown address %v", target)
	}
	id, code, reason := ic.vm.createAccount(target)
	if code != exitcode.Ok {
		ic.Abortf(code, "failed to create account for %v: %s", target, reason)
	}
	ic.log.WithField("account", id).Debugf("created account for %v", target)
	return id
}

func (ic *invocationContext) loadReceiver() *states.Actor {
	act, found, err := ic.vm.tree.GetActor(ic.msg.to)
	if err != nil {
		panic(err)
	}
	if !found {
		ic.Abortf(exitcode.SysErrorIllegalActor, "receiver %v not found", ic.msg.to)
	}
	return act
}

func (ic *invocationContext) replaceHead(head cid.Cid) {
	act := ic.loadReceiver()
	act.Head = head
	if err := ic.vm.setActor(ic.msg.to, act); err != nil {
		panic(err)
	}
}

///// Implementation of the runtime API /////

func (ic *invocationContext) Message() runtime.Message {
	return ic.msg
}

func (ic *invocationContext) BlockTimestamp() uint64 {
	return ic.vm.tree.Timestamp
}

func (ic *invocationContext) ValidateImmediateCallerAcceptAny() {
	ic.assertf(!ic.callerValidated, "caller has been double validated")
	ic.callerValidated = true
}

func (ic *invocationContext) ValidateImmediateCallerIs(addrs ...addr.Address) {
	ic.assertf(!ic.callerValidated, "caller has been double validated")
	ic.callerValidated = true
	ic.checkArgument(len(addrs) > 0, "addrs must be non-empty")
	for _, expected := range addrs {
		if ic.msg.from == expected {
			return
		}
	}
	ic.Abortf(exitcode.SysErrForbidden, "caller address %v forbidden, allowed: %v", ic.msg.from, addrs)
}

func (ic *invocationContext) ValidateImmediateCallerType(types ...cid.Cid) {
	ic.assertf(!ic.callerValidated, "caller has been double validated")
	ic.callerValidated = true
	ic.checkArgument(len(types) > 0, "types must be non-empty")

	callerCode, ok := ic.GetActorCodeCID(ic.msg.from)
	if ok {
		for _, expected := range types {
			if callerCode.Equals(expected) {
				return
			}
		}
	}
	ic.Abortf(exitcode.SysErrForbidden, "caller type %v forbidden, allowed: %v", callerCode, types)
}

func (ic *invocationContext) CurrentBalance() abi.TokenAmount {
	return ic.loadReceiver().Balance
}

func (ic *invocationContext) ResolveAddress(address addr.Address) (addr.Address, bool) {
	return ic.vm.NormalizeAddress(address)
}

func (ic *invocationContext) GetActorCodeCID(a addr.Address) (cid.Cid, bool) {
	act, found, err := ic.vm.GetActor(a)
	if err != nil {
		panic(err)
	}
	if !found {
		return cid.Undef, false
	}
	return act.Code, true
}

func (ic *invocationContext) Send(toAddr addr.Address, methodNum abi.MethodNum, params cbor.Marshaler, value abi.TokenAmount, out cbor.Er) exitcode.ExitCode {
	if ic.inTransaction {
		ic.Abortf(exitcode.SysErrorIllegalActor, "side-effect within transaction")
	}
	if balance := ic.CurrentBalance(); value.GreaterThan(balance) {
		ic.Abortf(exitcode.SysErrInsufficientFunds, "cannot send value: %v exceeds balance: %v", value, balance)
	}

	priorRoot, err := ic.vm.checkpoint()
	if err != nil {
		panic(err)
	}

	newMsg := internalMessage{
		from:   ic.msg.to,
		to:     toAddr,
		value:  value,
		method: methodNum,
		params: params,
	}
	newCtx := newInvocationContext(ic.vm, ic.log.WithFields(logrus.Fields{"send_to": toAddr, "send_method": methodNum}), newMsg)
	ret, code := newCtx.invoke()
	ic.invocation.SubInvocations = append(ic.invocation.SubInvocations, &newCtx.invocation)

	if code != exitcode.Ok {
		// The callee's changes and those of any messages it sent are discarded; the sender's survive.
		if err := ic.vm.rollback(priorRoot); err != nil {
			panic(err)
		}
		ic.log.WithFields(logrus.Fields{"send_to": toAddr, "send_method": methodNum, "code": code}).
			Debugf("send failed: %s", newCtx.invocation.Reason)
		return code
	}

	ic.events = append(ic.events, newCtx.events...)
	if out != nil && ret != nil {
		var buf bytes.Buffer
		if err := ret.MarshalCBOR(&buf); err != nil {
			ic.Abortf(exitcode.ErrSerialization, "failed to encode send return: %v", err)
		}
		if err := out.UnmarshalCBOR(&buf); err != nil {
			ic.Abortf(exitcode.ErrSerialization, "failed to decode send return into %T: %v", out, err)
		}
	}
	return code
}

func (ic *invocationContext) Abortf(errExitCode exitcode.ExitCode, msg string, args ...interface{}) {
	panic(abort{errExitCode, fmt.Sprintf(msg, args...)})
}

func (ic *invocationContext) EmitEvent(event runtime.Event) {
	if ic.inTransaction {
		ic.Abortf(exitcode.SysErrorIllegalActor, "side-effect within transaction")
	}
	emitted := EmittedEvent{Emitter: ic.msg.to, Event: event}
	ic.events = append(ic.events, emitted)
	ic.invocation.Events = append(ic.invocation.Events, emitted)
	ic.log.WithField("event", event.EventName()).Debug("event emitted")
}

func (ic *invocationContext) Syscalls() runtime.Syscalls {
	return ic
}

func (ic *invocationContext) Context() context.Context {
	return ic.vm.ctx
}

func (ic *invocationContext) StartSpan(_ string) func() {
	return func() {}
}

func (ic *invocationContext) Log(level rtt.LogLevel, msg string, args ...interface{}) {
	if level < builtin.GetCodeLogLevel(ic.receiverCode, rtt.DEBUG) {
		return
	}
	entry := ic.log.WithFields(logrus.Fields{
		"actor": builtin.ActorNameByCode(ic.receiverCode),
		"addr":  ic.msg.to,
	})
	switch level {
	case rtt.DEBUG:
		entry.Debugf(msg, args...)
	case rtt.INFO:
		entry.Infof(msg, args...)
	case rtt.WARN:
		entry.Warnf(msg, args...)
	default:
		entry.Errorf(msg, args...)
	}
}

///// Syscalls /////

func (ic *invocationContext) HashBlake2b(data []byte) [32]byte {
	return blake2b.Sum256(data)
}

func (ic *invocationContext) HashSHA256(data []byte) [32]byte {
	return sha256.Sum256(data)
}

///// Store implementation /////

func (ic *invocationContext) StoreGet(c cid.Cid, o cbor.Unmarshaler) bool {
	err := ic.vm.store.Get(ic.vm.ctx, c, o)
	if xerrors.Is(err, ipld.ErrNotFound) {
		return false
	}
	if err != nil {
		ic.Abortf(exitcode.ErrSerialization, "failed to load %v: %v", c, err)
	}
	return true
}

func (ic *invocationContext) StorePut(x cbor.Marshaler) cid.Cid {
	c, err := ic.vm.store.Put(ic.vm.ctx, x)
	if err != nil {
		ic.Abortf(exitcode.ErrSerialization, "failed to store object: %v", err)
	}
	return c
}

///// State handle implementation /////

func (ic *invocationContext) StateCreate(obj cbor.Marshaler) {
	if !ic.loadReceiver().Head.Equals(ic.vm.emptyObject) {
		ic.Abortf(exitcode.SysErrorIllegalActor, "state already constructed")
	}
	ic.replaceHead(ic.StorePut(obj))
}

func (ic *invocationContext) StateReadonly(obj cbor.Unmarshaler) {
	head := ic.loadReceiver().Head
	if !ic.StoreGet(head, obj) {
		ic.Abortf(exitcode.SysErrorIllegalActor, "actor state not found: %v", head)
	}
}

func (ic *invocationContext) StateTransaction(obj cbor.Er, f func()) {
	if ic.inTransaction {
		ic.Abortf(exitcode.SysErrorIllegalActor, "nested transaction")
	}
	ic.StateReadonly(obj)
	ic.inTransaction = true
	defer func() { ic.inTransaction = false }()
	f()
	ic.replaceHead(ic.StorePut(obj))
}

func (ic *invocationContext) checkArgument(predicate bool, msg string, args ...interface{}) {
	if !predicate {
		ic.Abortf(exitcode.SysErrorIllegalArgument, msg, args...)
	}
}

func (ic *invocationContext) assertf(predicate bool, msg string, args ...interface{}) {
	if !predicate {
		ic.Abortf(exitcode.SysErrorIllegalActor, msg, args...)
	}
}

func isNil(v cbor.Marshaler) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Ptr && rv.IsNil()
}
