package builtin

import (
	addr "github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/big"
	"github.com/filecoin-project/go-state-types/exitcode"
	"github.com/ipfs/go-cid"

	"github.com/tokenvault/vault-actors/actors/runtime"
)

///// Code shared by multiple built-in actors. /////

// Aborts with an ErrIllegalArgument if predicate is not true.
func RequireParam(rt runtime.Runtime, predicate bool, msg string, args ...interface{}) {
	if !predicate {
		rt.Abortf(exitcode.ErrIllegalArgument, msg, args...)
	}
}

// Propagates a failed send by aborting the current method with the same exit code.
func RequireSuccess(rt runtime.Runtime, e exitcode.ExitCode, msg string, args ...interface{}) {
	if !e.IsSuccess() {
		rt.Abortf(e, msg, args...)
	}
}

// Aborts with a formatted message if err is not nil.
// The provided message will be suffixed by ": %s" and the provided args suffixed by the err.
func RequireNoErr(rt runtime.Runtime, err error, defaultExitCode exitcode.ExitCode, msg string, args ...interface{}) {
	if err != nil {
		newMsg := msg + ": %s"
		newArgs := append(args, err)
		code := exitcode.Unwrap(err, defaultExitCode)
		rt.Abortf(code, newMsg, newArgs...)
	}
}

// Message of the abort raised by RequireOwner.
const ErrMsgNotOwner = "Ownable: caller is not the owner"

// Aborts with ErrForbidden unless the immediate caller is the owner.
// The method must have validated its caller (usually with ValidateImmediateCallerAcceptAny) beforehand.
func RequireOwner(rt runtime.Runtime, owner addr.Address) {
	if rt.Message().Caller() != owner {
		rt.Abortf(exitcode.ErrForbidden, ErrMsgNotOwner)
	}
}

// Resolves an address to an ID address and verifies that it is the address of an actor with the given code.
// Aborts with ErrIllegalArgument and the given reason otherwise.
func ResolveToActorWithCode(rt runtime.Runtime, raw addr.Address, code cid.Cid, reason string) addr.Address {
	resolved, ok := rt.ResolveAddress(raw)
	if !ok {
		rt.Abortf(exitcode.ErrIllegalArgument, "%s", reason)
	}
	actual, ok := rt.GetActorCodeCID(resolved)
	if !ok || !actual.Equals(code) {
		rt.Abortf(exitcode.ErrIllegalArgument, "%s", reason)
	}
	return resolved
}

// Resolves an address to an ID address, creating an account for a public-key address the chain
// has not seen yet by sending it zero value. Aborts with ErrIllegalArgument and the given reason
// if the address still cannot be resolved.
// Must not be called within a state transaction.
func ResolveToIDAddr(rt runtime.Runtime, raw addr.Address, reason string) addr.Address {
	if raw.Protocol() == addr.ID {
		return raw
	}
	if resolved, ok := rt.ResolveAddress(raw); ok {
		return resolved
	}

	code := rt.Send(raw, MethodSend, nil, big.Zero(), nil)
	if !code.IsSuccess() {
		rt.Abortf(exitcode.ErrIllegalArgument, "%s: failed to create account for %v: %v", reason, raw, code)
	}
	resolved, ok := rt.ResolveAddress(raw)
	if !ok {
		rt.Abortf(exitcode.ErrIllegalArgument, "%s", reason)
	}
	return resolved
}
