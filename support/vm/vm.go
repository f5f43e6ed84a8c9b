package vm

import (
	"context"
	"sync"

	addr "github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/big"
	"github.com/filecoin-project/go-state-types/cbor"
	"github.com/filecoin-project/go-state-types/exitcode"
	"github.com/google/uuid"
	cid "github.com/ipfs/go-cid"
	"github.com/sirupsen/logrus"
	"golang.org/x/xerrors"

	"github.com/tokenvault/vault-actors/actors/builtin"
	"github.com/tokenvault/vault-actors/actors/builtin/account"
	"github.com/tokenvault/vault-actors/actors/builtin/exported"
	"github.com/tokenvault/vault-actors/actors/builtin/system"
	"github.com/tokenvault/vault-actors/actors/runtime"
	"github.com/tokenvault/vault-actors/actors/states"
	"github.com/tokenvault/vault-actors/actors/util/adt"
)

// VM holds the state and executes messages over the state.
// Messages are applied one at a time: each runs to completion and either commits every
// change it made or none of them.
type VM struct {
	ctx   context.Context
	store adt.Store
	log   logrus.FieldLogger

	lk sync.Mutex

	actorImpls ActorImplLookup
	stateRoot  cid.Cid      // The last committed root.
	tree       *states.Tree // The current (not necessarily committed) tree.

	emptyObject cid.Cid

	invocations []*Invocation
	events      []EmittedEvent
}

type ActorImplLookup map[cid.Cid]runtime.VMActor

// The outcome of a top-level message.
type MessageResult struct {
	MsgID  string
	Ret    cbor.Marshaler
	Code   exitcode.ExitCode
	Reason string
	Events []EmittedEvent
}

// An event recorded by a committed message, attributed to the actor that emitted it.
type EmittedEvent struct {
	Emitter addr.Address
	Event   runtime.Event
}

// Builds the lookup of every builtin actor implementation.
func BuiltinActorImpls() ActorImplLookup {
	lookup := ActorImplLookup{}
	for _, actor := range exported.BuiltinActors() {
		lookup[actor.Code()] = actor
	}
	return lookup
}

// NewVM creates a new machine with an empty state tree.
func NewVM(ctx context.Context, actorImpls ActorImplLookup, store adt.Store) (*VM, error) {
	tree, err := states.NewTree(store)
	if err != nil {
		return nil, xerrors.Errorf("failed to create state tree: %w", err)
	}
	vm, err := newVM(ctx, actorImpls, store, tree)
	if err != nil {
		return nil, err
	}
	if _, err := vm.checkpoint(); err != nil {
		return nil, err
	}
	return vm, nil
}

// NewVMAtRoot creates a machine continuing from a previously committed state root.
func NewVMAtRoot(ctx context.Context, actorImpls ActorImplLookup, store adt.Store, root cid.Cid) (*VM, error) {
	tree, err := states.LoadTree(store, root)
	if err != nil {
		return nil, err
	}
	vm, err := newVM(ctx, actorImpls, store, tree)
	if err != nil {
		return nil, err
	}
	vm.stateRoot = root
	return vm, nil
}

// NewGenesisVM creates a machine holding only the system actor.
func NewGenesisVM(ctx context.Context, actorImpls ActorImplLookup, store adt.Store) (*VM, error) {
	vm, err := NewVM(ctx, actorImpls, store)
	if err != nil {
		return nil, err
	}
	if err := vm.installActor(builtin.SystemActorAddr, builtin.SystemActorCodeID, &system.State{}, big.Zero()); err != nil {
		return nil, xerrors.Errorf("failed to install system actor: %w", err)
	}
	if _, err := vm.checkpoint(); err != nil {
		return nil, err
	}
	return vm, nil
}

func newVM(ctx context.Context, actorImpls ActorImplLookup, store adt.Store, tree *states.Tree) (*VM, error) {
	// An empty tuple, the head of an actor whose constructor has not yet run.
	emptyObject, err := store.Put(ctx, &system.State{})
	if err != nil {
		return nil, xerrors.Errorf("could not create empty object: %w", err)
	}
	logger := logrus.New()
	logger.SetLevel(logrus.WarnLevel)
	return &VM{
		ctx:         ctx,
		store:       store,
		log:         logger,
		actorImpls:  actorImpls,
		tree:        tree,
		emptyObject: emptyObject,
	}, nil
}

// Sets the sink for machine and actor logs.
func (vm *VM) SetLogger(log logrus.FieldLogger) {
	vm.log = log
}

func (vm *VM) rollback(root cid.Cid) error {
	tree, err := states.LoadTree(vm.store, root)
	if err != nil {
		return xerrors.Errorf("failed to load tree for %s: %w", root, err)
	}

	// reset the root node
	vm.tree = tree
	vm.stateRoot = root
	return nil
}

func (vm *VM) checkpoint() (cid.Cid, error) {
	root, err := vm.tree.Flush()
	if err != nil {
		return cid.Undef, xerrors.Errorf("failed to flush state tree: %w", err)
	}
	vm.stateRoot = root
	return root, nil
}

// Returns the actor at an address of any protocol.
func (vm *VM) GetActor(a addr.Address) (*states.Actor, bool, error) {
	id, found := vm.NormalizeAddress(a)
	if !found {
		return nil, false, nil
	}
	return vm.tree.GetActor(id)
}

// setActor sets the the actor to the given value whether it previously existed or not.
func (vm *VM) setActor(key addr.Address, a *states.Actor) error {
	if err := vm.tree.SetActor(key, a); err != nil {
		return xerrors.Errorf("setting actor in state tree failed: %w", err)
	}
	return nil
}

// NormalizeAddress resolves an address to its ID form.
func (vm *VM) NormalizeAddress(a addr.Address) (addr.Address, bool) {
	id, found, err := vm.tree.LookupID(a)
	if err != nil {
		panic(xerrors.Errorf("failed to resolve address %v: %w", a, err))
	}
	return id, found
}

// Timestamp returns the current block timestamp, in seconds since the unix epoch.
func (vm *VM) Timestamp() uint64 {
	vm.lk.Lock()
	defer vm.lk.Unlock()
	return vm.tree.Timestamp
}

// SetTimestamp moves the block timestamp. Time never moves backwards.
func (vm *VM) SetTimestamp(ts uint64) error {
	vm.lk.Lock()
	defer vm.lk.Unlock()
	if ts < vm.tree.Timestamp {
		return xerrors.Errorf("timestamp %d is before current timestamp %d", ts, vm.tree.Timestamp)
	}
	vm.tree.Timestamp = ts
	_, err := vm.checkpoint()
	return err
}

// AdvanceTime moves the block timestamp forward by the given number of seconds.
func (vm *VM) AdvanceTime(seconds uint64) error {
	vm.lk.Lock()
	defer vm.lk.Unlock()
	vm.tree.Timestamp += seconds
	_, err := vm.checkpoint()
	return err
}

// ApplyMessage applies a message from an account to the current state.
func (vm *VM) ApplyMessage(from, to addr.Address, value abi.TokenAmount, method abi.MethodNum, params cbor.Marshaler) MessageResult {
	vm.lk.Lock()
	defer vm.lk.Unlock()

	msgID := uuid.Must(uuid.NewV7()).String()
	log := vm.log.WithFields(logrus.Fields{
		"to":     to,
		"method": method,
		"msg_id": msgID,
	})

	// load actor from global state
	fromID, ok := vm.NormalizeAddress(from)
	if !ok {
		return vm.rejectMessage(log, msgID, "sender %v not found", from)
	}
	fromActor, found, err := vm.tree.GetActor(fromID)
	if err != nil {
		panic(err)
	}
	if !found {
		// Execution error; sender does not exist at time of message execution.
		return vm.rejectMessage(log, msgID, "sender %v not found", from)
	}
	if !fromActor.Code.Equals(builtin.AccountActorCodeID) {
		// Execution error; sender is not an account.
		return vm.rejectMessage(log, msgID, "sender %v is not an account", from)
	}

	return vm.apply(log, msgID, internalMessage{
		from:   fromID,
		to:     to,
		value:  value,
		method: method,
		params: params,
	})
}

// Deploy creates a new actor of a non-singleton builtin type and runs its constructor
// as the system actor. The actor exists only if the constructor succeeds.
func (vm *VM) Deploy(code cid.Cid, params cbor.Marshaler) (addr.Address, MessageResult, error) {
	vm.lk.Lock()
	defer vm.lk.Unlock()

	impl, ok := vm.actorImpls[code]
	if !ok {
		return addr.Undef, MessageResult{}, xerrors.Errorf("no actor implementation for code %v", code)
	}
	if impl.IsSingleton() {
		return addr.Undef, MessageResult{}, xerrors.Errorf("cannot deploy singleton actor %v", builtin.ActorNameByCode(code))
	}

	priorRoot, err := vm.checkpoint()
	if err != nil {
		return addr.Undef, MessageResult{}, err
	}
	idAddr, err := vm.tree.RegisterNewAddress(addr.Undef)
	if err != nil {
		return addr.Undef, MessageResult{}, err
	}
	if err := vm.setActor(idAddr, &states.Actor{Code: code, Head: vm.emptyObject, Balance: big.Zero()}); err != nil {
		return addr.Undef, MessageResult{}, err
	}

	msgID := uuid.Must(uuid.NewV7()).String()
	log := vm.log.WithFields(logrus.Fields{
		"to":     idAddr,
		"method": builtin.MethodConstructor,
		"msg_id": msgID,
		"code":   builtin.ActorNameByCode(code),
	})
	result := vm.apply(log, msgID, internalMessage{
		from:   builtin.SystemActorAddr,
		to:     idAddr,
		value:  big.Zero(),
		method: builtin.MethodConstructor,
		params: params,
	})
	if result.Code != exitcode.Ok {
		if err := vm.rollback(priorRoot); err != nil {
			return addr.Undef, result, err
		}
		return addr.Undef, result, nil
	}
	return idAddr, result, nil
}

// CreateAccount registers an account for a public-key address and endows it with a native balance.
// Returns the account's ID address.
func (vm *VM) CreateAccount(pubkey addr.Address, balance abi.TokenAmount) (addr.Address, error) {
	vm.lk.Lock()
	defer vm.lk.Unlock()

	priorRoot, err := vm.checkpoint()
	if err != nil {
		return addr.Undef, err
	}
	idAddr, code, reason := vm.createAccount(pubkey)
	if code != exitcode.Ok {
		if err := vm.rollback(priorRoot); err != nil {
			return addr.Undef, err
		}
		return addr.Undef, xerrors.Errorf("failed to construct account for %v: %v %s", pubkey, code, reason)
	}

	act, _, err := vm.tree.GetActor(idAddr)
	if err != nil {
		return addr.Undef, err
	}
	act.Balance = balance
	if err := vm.setActor(idAddr, act); err != nil {
		return addr.Undef, err
	}
	if _, err := vm.checkpoint(); err != nil {
		return addr.Undef, err
	}
	return idAddr, nil
}

func (vm *VM) apply(log logrus.FieldLogger, msgID string, msg internalMessage) MessageResult {
	priorRoot, err := vm.checkpoint()
	if err != nil {
		panic(err)
	}

	ctx := newInvocationContext(vm, log, msg)
	ret, exitCode := ctx.invoke()
	vm.invocations = append(vm.invocations, &ctx.invocation)

	// Roll back all state if the receipt's exit code is not ok.
	// This is required in addition to rollback within the invocation context since top level messages can fail for
	// more reasons than internal ones. Invocation context still needs its own rollback so actors can recover and
	// proceed from a nested call failure.
	if exitCode != exitcode.Ok {
		if err := vm.rollback(priorRoot); err != nil {
			panic(err)
		}
		log.WithFields(logrus.Fields{"code": exitCode}).Warnf("message aborted: %s", ctx.invocation.Reason)
		return MessageResult{MsgID: msgID, Code: exitCode, Reason: ctx.invocation.Reason}
	}

	if _, err := vm.checkpoint(); err != nil {
		panic(err)
	}
	vm.events = append(vm.events, ctx.events...)
	log.WithFields(logrus.Fields{"code": exitCode, "events": len(ctx.events)}).Debug("message applied")
	return MessageResult{MsgID: msgID, Ret: ret, Code: exitCode, Events: ctx.events}
}

func (vm *VM) rejectMessage(log logrus.FieldLogger, msgID string, format string, args ...interface{}) MessageResult {
	reason := xerrors.Errorf(format, args...).Error()
	log.WithFields(logrus.Fields{"code": exitcode.SysErrSenderInvalid}).Warnf("message rejected: %s", reason)
	return MessageResult{MsgID: msgID, Code: exitcode.SysErrSenderInvalid, Reason: reason}
}

// Registers a pubkey address and runs the account constructor for it.
func (vm *VM) createAccount(pubkey addr.Address) (addr.Address, exitcode.ExitCode, string) {
	idAddr, err := vm.tree.RegisterNewAddress(pubkey)
	if err != nil {
		return addr.Undef, exitcode.SysErrorIllegalArgument, err.Error()
	}
	if err := vm.setActor(idAddr, &states.Actor{Code: builtin.AccountActorCodeID, Head: vm.emptyObject, Balance: big.Zero()}); err != nil {
		panic(err)
	}
	ctx := newInvocationContext(vm, vm.log.WithField("to", idAddr), internalMessage{
		from:   builtin.SystemActorAddr,
		to:     idAddr,
		value:  big.Zero(),
		method: builtin.MethodsAccount.Constructor,
		params: &pubkey,
	})
	_, code := ctx.invoke()
	return idAddr, code, ctx.invocation.Reason
}

// Places an actor with known state directly in the tree.
func (vm *VM) installActor(a addr.Address, code cid.Cid, state cbor.Marshaler, balance abi.TokenAmount) error {
	head, err := vm.store.Put(vm.ctx, state)
	if err != nil {
		return err
	}
	return vm.setActor(a, &states.Actor{Code: code, Head: head, Balance: balance})
}

// GetState loads the state of the actor at an address into out.
func (vm *VM) GetState(a addr.Address, out cbor.Unmarshaler) error {
	vm.lk.Lock()
	defer vm.lk.Unlock()

	act, found, err := vm.GetActor(a)
	if err != nil {
		return err
	}
	if !found {
		return xerrors.Errorf("actor %v: %w", a, states.ErrActorNotFound)
	}
	return vm.store.Get(vm.ctx, act.Head, out)
}

// Balance returns the native balance of the actor at an address, zero if it does not exist.
func (vm *VM) Balance(a addr.Address) abi.TokenAmount {
	vm.lk.Lock()
	defer vm.lk.Unlock()

	act, found, err := vm.GetActor(a)
	if err != nil {
		panic(err)
	}
	if !found {
		return big.Zero()
	}
	return act.Balance
}

// CheckStateInvariants checks every actor and the cross-actor relations over the committed state.
func (vm *VM) CheckStateInvariants(expectedBalanceTotal abi.TokenAmount) (*builtin.MessageAccumulator, error) {
	vm.lk.Lock()
	defer vm.lk.Unlock()

	tree, err := states.LoadTree(vm.store, vm.stateRoot)
	if err != nil {
		return nil, err
	}
	return states.CheckStateInvariants(tree, expectedBalanceTotal)
}

// TotalBalance sums the native balances of every actor.
func (vm *VM) TotalBalance() (abi.TokenAmount, error) {
	vm.lk.Lock()
	defer vm.lk.Unlock()

	total := big.Zero()
	err := vm.tree.ForEach(func(_ addr.Address, act *states.Actor) error {
		total = big.Add(total, act.Balance)
		return nil
	})
	return total, err
}

// ForEachActor visits every actor of the committed state.
func (vm *VM) ForEachActor(fn func(id addr.Address, act *states.Actor) error) error {
	vm.lk.Lock()
	defer vm.lk.Unlock()

	tree, err := states.LoadTree(vm.store, vm.stateRoot)
	if err != nil {
		return err
	}
	return tree.ForEach(fn)
}

// StateRoot returns the root of the last committed state.
func (vm *VM) StateRoot() cid.Cid {
	vm.lk.Lock()
	defer vm.lk.Unlock()
	return vm.stateRoot
}

func (vm *VM) Store() adt.Store {
	return vm.store
}

// Invocations returns the traces of all messages applied since the last ClearInvocations.
func (vm *VM) Invocations() []*Invocation {
	return vm.invocations
}

// LastInvocation returns the trace of the most recently applied message.
func (vm *VM) LastInvocation() *Invocation {
	if len(vm.invocations) == 0 {
		return nil
	}
	return vm.invocations[len(vm.invocations)-1]
}

func (vm *VM) ClearInvocations() {
	vm.invocations = nil
}

// Events returns every event recorded by committed messages, in order.
func (vm *VM) Events() []EmittedEvent {
	return vm.events
}

// transfer debits money from one account and credits it to another.
// The caller is responsible for rolling back on error.
func (vm *VM) transfer(debitFrom addr.Address, creditTo addr.Address, amount abi.TokenAmount) error {
	// allow only for positive amounts
	if amount.Sign() < 0 {
		return xerrors.Errorf("negative funds transfer %v not allowed", amount)
	}
	if amount.IsZero() || debitFrom == creditTo {
		return nil
	}

	// retrieve debit account
	fromActor, found, err := vm.tree.GetActor(debitFrom)
	if err != nil {
		return err
	}
	if !found {
		return xerrors.Errorf("debit account %v not found", debitFrom)
	}

	// check that account has enough balance for transfer
	if fromActor.Balance.LessThan(amount) {
		return errInsufficientFunds
	}

	// debit funds
	fromActor.Balance = big.Sub(fromActor.Balance, amount)
	if err := vm.setActor(debitFrom, fromActor); err != nil {
		return err
	}

	// retrieve credit account
	toActor, found, err := vm.tree.GetActor(creditTo)
	if err != nil {
		return err
	}
	if !found {
		return xerrors.Errorf("credit account %v not found", creditTo)
	}

	// credit funds
	toActor.Balance = big.Add(toActor.Balance, amount)
	return vm.setActor(creditTo, toActor)
}

var errInsufficientFunds = xerrors.New("insufficient balance")

func (vm *VM) getActorImpl(code cid.Cid) (runtime.VMActor, bool) {
	actorImpl, ok := vm.actorImpls[code]
	return actorImpl, ok
}

// Returns the pubkey address of an account, for display.
func (vm *VM) AccountAddress(id addr.Address) (addr.Address, error) {
	var st account.State
	if err := vm.GetState(id, &st); err != nil {
		return addr.Undef, err
	}
	return st.Address, nil
}

//
// implement runtime.Message for internalMessage
//

type internalMessage struct {
	from   addr.Address
	to     addr.Address
	value  abi.TokenAmount
	method abi.MethodNum
	params cbor.Marshaler
}

var _ runtime.Message = (*internalMessage)(nil)

// ValueReceived implements runtime.Message.
func (msg internalMessage) ValueReceived() abi.TokenAmount {
	return msg.value
}

// Caller implements runtime.Message.
func (msg internalMessage) Caller() addr.Address {
	return msg.from
}

// Receiver implements runtime.Message.
func (msg internalMessage) Receiver() addr.Address {
	return msg.to
}

func (msg internalMessage) Method() abi.MethodNum {
	return msg.method
}

func (msg internalMessage) Params() cbor.Marshaler {
	return msg.params
}
