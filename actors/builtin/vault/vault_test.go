package vault_test

import (
	"context"
	"testing"

	addr "github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/big"
	"github.com/filecoin-project/go-state-types/exitcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tokenvault/vault-actors/actors/builtin"
	"github.com/tokenvault/vault-actors/actors/builtin/token"
	"github.com/tokenvault/vault-actors/actors/builtin/vault"
	"github.com/tokenvault/vault-actors/actors/util/adt"
	"github.com/tokenvault/vault-actors/support/mock"
	tutil "github.com/tokenvault/vault-actors/support/testing"
)

const genesis = uint64(1_700_000_000)

func TestExports(t *testing.T) {
	mock.CheckActorExports(t, vault.Actor{})
}

func TestConstruction(t *testing.T) {
	h := newHarness(t)

	t.Run("simple construction", func(t *testing.T) {
		rt := h.builder.Build(t)
		h.constructAndVerify(rt, noFee(), noFee())

		var st vault.State
		rt.GetState(&st)
		assert.Equal(t, h.owner, st.Owner)
		require.NotNil(t, st.ReferenceToken)
		assert.Equal(t, h.refToken, *st.ReferenceToken)
		require.NotNil(t, st.FeeDestination)
		assert.Equal(t, h.feeDest, *st.FeeDestination)
		assert.Equal(t, uint64(0), st.NextLockIndex)
		h.checkState(rt)
	})

	t.Run("optional addresses may be left unset", func(t *testing.T) {
		rt := h.builder.Build(t)
		rt.SetCaller(builtin.SystemActorAddr, builtin.SystemActorCodeID)
		rt.ExpectValidateCallerAddr(builtin.SystemActorAddr)
		rt.Call(h.Constructor, &vault.ConstructorParams{Owner: h.owner, CreationFee: noFee(), RevocationFee: noFee()})
		rt.Verify()

		cfg := h.getConfig(rt)
		assert.Nil(t, cfg.ReferenceToken)
		assert.Nil(t, cfg.FeeDestination)
	})

	t.Run("reference token must be a token actor", func(t *testing.T) {
		rt := h.builder.Build(t)
		rt.SetCaller(builtin.SystemActorAddr, builtin.SystemActorCodeID)
		rt.ExpectValidateCallerAddr(builtin.SystemActorAddr)
		notToken := h.owner
		rt.ExpectAbortWithMsg(exitcode.ErrIllegalArgument, vault.ErrMsgInvalidToken, func() {
			rt.Call(h.Constructor, &vault.ConstructorParams{Owner: h.owner, ReferenceToken: &notToken, CreationFee: noFee(), RevocationFee: noFee()})
		})
		rt.Verify()
	})

	t.Run("percent fee is at most 100%", func(t *testing.T) {
		rt := h.builder.Build(t)
		rt.SetCaller(builtin.SystemActorAddr, builtin.SystemActorCodeID)
		rt.ExpectValidateCallerAddr(builtin.SystemActorAddr)
		rt.ExpectAbortWithMsg(exitcode.ErrIllegalArgument, vault.ErrMsgPercentFeeOutOfRange, func() {
			rt.Call(h.Constructor, &vault.ConstructorParams{Owner: h.owner, CreationFee: percentFee(10_001), RevocationFee: noFee()})
		})
		rt.Verify()
	})

	t.Run("only the system may construct", func(t *testing.T) {
		rt := h.builder.Build(t)
		rt.SetCaller(h.owner, builtin.AccountActorCodeID)
		rt.ExpectValidateCallerAddr(builtin.SystemActorAddr)
		rt.ExpectAbort(exitcode.SysErrForbidden, func() {
			rt.Call(h.Constructor, &vault.ConstructorParams{Owner: h.owner, CreationFee: noFee(), RevocationFee: noFee()})
		})
		rt.Verify()
	})
}

func TestAddLock(t *testing.T) {
	h := newHarness(t)

	t.Run("escrows the total and indexes the lock", func(t *testing.T) {
		rt := h.builder.Build(t)
		h.constructAndVerify(rt, noFee(), noFee())

		params := h.linearLock(true)
		params.Recipients = []vault.RecipientParams{
			{Address: h.alice, Amount: abi.NewTokenAmount(700_000)},
			{Address: h.bob, Amount: abi.NewTokenAmount(300_000)},
		}
		idx := h.addLock(rt, h.initiator, params)
		assert.Equal(t, uint64(0), idx)

		lock := h.getLock(rt, idx)
		assert.Equal(t, h.token, lock.Token)
		assert.Equal(t, h.initiator, lock.Initiator)
		assert.Equal(t, genesis+2*day, lock.StartDate)
		assert.Equal(t, uint64(10), lock.DurationInDays)
		assert.True(t, lock.IsActive)
		assert.True(t, lock.IsRevocable)
		require.Len(t, lock.Recipients, 2)
		assert.Equal(t, h.alice, lock.Recipients[0].Address)
		assert.Equal(t, "700000", lock.Recipients[0].Amount.String())
		assert.True(t, lock.Recipients[1].IsActive)

		idx = h.addLock(rt, h.initiator, h.linearLock(false))
		assert.Equal(t, uint64(1), idx)

		byInitiator := h.locksByInitiator(rt, h.initiator)
		require.Len(t, byInitiator, 2)
		assert.Equal(t, uint64(0), byInitiator[0].LockIndex)
		assert.Equal(t, uint64(1), byInitiator[1].LockIndex)
		byBob := h.locksByRecipient(rt, h.bob)
		require.Len(t, byBob, 1)
		assert.Equal(t, uint64(0), byBob[0].LockIndex)
		h.checkState(rt)
	})

	t.Run("recipients are recorded by ID address", func(t *testing.T) {
		rt := h.builder.Build(t)
		h.constructAndVerify(rt, noFee(), noFee())
		pubkey := tutil.NewSECP256K1Addr(t, "carol")
		rt.AddIDAddress(pubkey, h.carol)

		params := h.linearLock(true)
		params.Recipients[0].Address = pubkey
		idx := h.addLock(rt, h.initiator, params)

		lock := h.getLock(rt, idx)
		assert.Equal(t, h.carol, lock.Recipients[0].Address)
		assert.Len(t, h.locksByRecipient(rt, pubkey), 1)
		h.checkState(rt)
	})

	t.Run("creates an account for a recipient never seen before", func(t *testing.T) {
		rt := h.builder.Build(t)
		h.constructAndVerify(rt, noFee(), noFee())
		pubkey := tutil.NewSECP256K1Addr(t, "never-seen-before")
		assert.Empty(t, h.locksByRecipient(rt, pubkey))

		params := h.linearLock(true)
		params.Recipients[0].Address = pubkey
		rt.ExpectCreateAccount(pubkey, h.carol)
		idx := h.addLock(rt, h.initiator, params)

		lock := h.getLock(rt, idx)
		assert.Equal(t, h.carol, lock.Recipients[0].Address)
		assert.Len(t, h.locksByRecipient(rt, pubkey), 1)
		h.checkState(rt)
	})

	t.Run("fails when a recipient account cannot be created", func(t *testing.T) {
		rt := h.builder.Build(t)
		h.constructAndVerify(rt, noFee(), noFee())
		unknown := tutil.NewBLSAddr(t, 8)

		params := h.linearLock(true)
		params.Recipients[0].Address = unknown
		rt.SetCaller(h.initiator, builtin.AccountActorCodeID)
		rt.ExpectValidateCallerType(builtin.CallerTypesSignable...)
		rt.ExpectSend(unknown, builtin.MethodSend, nil, big.Zero(), nil, exitcode.SysErrInvalidReceiver)
		rt.ExpectAbortWithMsg(exitcode.ErrIllegalArgument, vault.ErrMsgInvalidRecipient, func() {
			rt.Call(h.AddLock, params)
		})
		rt.Verify()
		assert.Equal(t, uint64(0), h.getConfig(rt).LockCount)
	})

	t.Run("validation", func(t *testing.T) {
		unresolvable := tutil.NewBLSAddr(t, 7)
		for _, tc := range []struct {
			name   string
			mutate func(p *vault.AddLockParams)
			msg    string
		}{
			{"zero total", func(p *vault.AddLockParams) { p.TotalAmount = big.Zero() }, vault.ErrMsgZeroTotalAmount},
			{"zero duration", func(p *vault.AddLockParams) { p.DurationInDays = 0 }, vault.ErrMsgZeroDuration},
			{"duration too long", func(p *vault.AddLockParams) { p.DurationInDays = vault.MaxDurationInDays + 1 }, vault.ErrMsgDurationTooLong},
			{"cliff beyond duration", func(p *vault.AddLockParams) { p.CliffInDays = 11 }, vault.ErrMsgCliffExceedsDuration},
			{"no recipients", func(p *vault.AddLockParams) { p.Recipients = nil }, vault.ErrMsgNoRecipients},
			{"too many recipients", func(p *vault.AddLockParams) {
				p.Recipients = nil
				for _, a := range tutil.NewIDAddrs(t, 5000, vault.MaxRecipients+1) {
					p.Recipients = append(p.Recipients, vault.RecipientParams{Address: a, Amount: abi.NewTokenAmount(1)})
				}
				p.TotalAmount = abi.NewTokenAmount(vault.MaxRecipients + 1)
			}, vault.ErrMsgTooManyRecipients},
			{"zero recipient amount", func(p *vault.AddLockParams) {
				p.Recipients = append(p.Recipients, vault.RecipientParams{Address: h.bob, Amount: big.Zero()})
			}, vault.ErrMsgZeroRecipientAmount},
			{"duplicate recipient", func(p *vault.AddLockParams) {
				p.Recipients = []vault.RecipientParams{
					{Address: h.alice, Amount: abi.NewTokenAmount(500_000)},
					{Address: h.alice, Amount: abi.NewTokenAmount(500_000)},
				}
			}, vault.ErrMsgDuplicateRecipient},
			{"amounts do not sum to total", func(p *vault.AddLockParams) { p.TotalAmount = abi.NewTokenAmount(999_999) }, vault.ErrMsgTotalAmountMismatch},
			{"token is not a token actor", func(p *vault.AddLockParams) { p.Token = h.bob }, vault.ErrMsgInvalidToken},
			{"token is unresolvable", func(p *vault.AddLockParams) { p.Token = unresolvable }, vault.ErrMsgInvalidToken},
		} {
			t.Run(tc.name, func(t *testing.T) {
				rt := h.builder.Build(t)
				h.constructAndVerify(rt, noFee(), noFee())

				params := h.linearLock(true)
				tc.mutate(params)
				rt.SetCaller(h.initiator, builtin.AccountActorCodeID)
				rt.ExpectValidateCallerType(builtin.CallerTypesSignable...)
				rt.ExpectAbortWithMsg(exitcode.ErrIllegalArgument, tc.msg, func() {
					rt.Call(h.AddLock, params)
				})
				rt.Verify()
				assert.Equal(t, uint64(0), h.getConfig(rt).LockCount)
			})
		}
	})

	t.Run("only signers may add locks", func(t *testing.T) {
		rt := h.builder.Build(t)
		h.constructAndVerify(rt, noFee(), noFee())
		rt.SetCaller(h.token, builtin.TokenActorCodeID)
		rt.ExpectValidateCallerType(builtin.CallerTypesSignable...)
		rt.ExpectAbort(exitcode.SysErrForbidden, func() {
			rt.Call(h.AddLock, h.linearLock(true))
		})
		rt.Verify()
	})

	t.Run("custody failure rolls back the lock", func(t *testing.T) {
		rt := h.builder.Build(t)
		h.constructAndVerify(rt, noFee(), noFee())
		params := h.linearLock(true)

		rt.SetCaller(h.initiator, builtin.AccountActorCodeID)
		rt.ExpectValidateCallerType(builtin.CallerTypesSignable...)
		rt.ExpectSend(h.token, builtin.MethodsToken.TransferFrom,
			&token.TransferFromParams{From: h.initiator, To: h.receiver, Amount: params.TotalAmount},
			big.Zero(), nil, exitcode.ErrInsufficientFunds)
		rt.ExpectAbort(exitcode.ErrInsufficientFunds, func() {
			rt.Call(h.AddLock, params)
		})
		rt.Verify()

		assert.Equal(t, uint64(0), h.getConfig(rt).LockCount)
		assert.Empty(t, h.locksByInitiator(rt, h.initiator))
		assert.Empty(t, rt.Events())
	})
}

func TestCreationFee(t *testing.T) {
	h := newHarness(t)

	t.Run("percentage of the vested token", func(t *testing.T) {
		rt := h.builder.Build(t)
		h.constructAndVerify(rt, percentFee(50), noFee())

		h.addLock(rt, h.initiator, h.linearLock(true),
			tokenMove{token: h.token, from: h.initiator, to: h.feeDest, amount: abi.NewTokenAmount(5_000)})
		h.checkState(rt)
	})

	t.Run("flat fee in the reference token", func(t *testing.T) {
		rt := h.builder.Build(t)
		h.constructAndVerify(rt, flatFee(10), noFee())

		params := h.linearLock(true)
		params.PayFeesWithReferenceToken = true
		h.addLock(rt, h.initiator, params,
			tokenMove{token: h.refToken, from: h.initiator, to: h.feeDest, amount: abi.NewTokenAmount(10)})
		h.checkState(rt)
	})

	t.Run("a zero fee sends nothing", func(t *testing.T) {
		rt := h.builder.Build(t)
		h.constructAndVerify(rt, percentFee(50), noFee())

		// 50 bps of 100 rounds down to zero
		params := h.linearLock(true)
		params.TotalAmount = abi.NewTokenAmount(100)
		params.Recipients[0].Amount = abi.NewTokenAmount(100)
		h.addLock(rt, h.initiator, params)
	})

	t.Run("nonzero fee without a destination", func(t *testing.T) {
		rt := h.builder.Build(t)
		rt.SetCaller(builtin.SystemActorAddr, builtin.SystemActorCodeID)
		rt.ExpectValidateCallerAddr(builtin.SystemActorAddr)
		rt.Call(h.Constructor, &vault.ConstructorParams{Owner: h.owner, CreationFee: percentFee(50), RevocationFee: noFee()})
		rt.Verify()

		rt.SetCaller(h.initiator, builtin.AccountActorCodeID)
		rt.ExpectValidateCallerType(builtin.CallerTypesSignable...)
		rt.ExpectAbortWithMsg(exitcode.ErrIllegalState, vault.ErrMsgFeeDestinationUnset, func() {
			rt.Call(h.AddLock, h.linearLock(true))
		})
		rt.Verify()
	})

	t.Run("flat fee without a reference token", func(t *testing.T) {
		rt := h.builder.Build(t)
		feeDest := h.feeDest
		rt.SetCaller(builtin.SystemActorAddr, builtin.SystemActorCodeID)
		rt.ExpectValidateCallerAddr(builtin.SystemActorAddr)
		rt.Call(h.Constructor, &vault.ConstructorParams{Owner: h.owner, FeeDestination: &feeDest, CreationFee: flatFee(10), RevocationFee: noFee()})
		rt.Verify()

		params := h.linearLock(true)
		params.PayFeesWithReferenceToken = true
		rt.SetCaller(h.initiator, builtin.AccountActorCodeID)
		rt.ExpectValidateCallerType(builtin.CallerTypesSignable...)
		rt.ExpectAbortWithMsg(exitcode.ErrIllegalState, vault.ErrMsgReferenceTokenUnset, func() {
			rt.Call(h.AddLock, params)
		})
		rt.Verify()
	})
}

func TestClaimLockedTokens(t *testing.T) {
	h := newHarness(t)

	setup := func(t *testing.T) (*mock.Runtime, uint64) {
		rt := h.builder.Build(t)
		h.constructAndVerify(rt, noFee(), noFee())
		return rt, h.addLock(rt, h.initiator, h.linearLock(true))
	}

	t.Run("linear release after the cliff", func(t *testing.T) {
		rt, idx := setup(t)

		// nothing during the cliff
		rt.SetTimestamp(genesis + 2*day - 1)
		h.claimNothing(rt, h.alice, idx)

		// nothing on the start day itself
		rt.SetTimestamp(genesis + 2*day)
		h.claimNothing(rt, h.alice, idx)

		rt.SetTimestamp(genesis + 3*day)
		h.claim(rt, h.alice, idx, abi.NewTokenAmount(100_000))

		rt.SetTimestamp(genesis + 6*day + day/2)
		h.claim(rt, h.alice, idx, abi.NewTokenAmount(300_000))

		lock := h.getLock(rt, idx)
		assert.Equal(t, uint64(4), lock.Recipients[0].DaysClaimed)
		assert.Equal(t, "400000", lock.Recipients[0].AmountClaimed.String())
		assert.True(t, lock.Recipients[0].IsActive)

		rt.SetTimestamp(genesis + 100*day)
		h.claim(rt, h.alice, idx, abi.NewTokenAmount(600_000))

		lock = h.getLock(rt, idx)
		assert.Equal(t, uint64(10), lock.Recipients[0].DaysClaimed)
		assert.Equal(t, "1000000", lock.Recipients[0].AmountClaimed.String())
		assert.False(t, lock.Recipients[0].IsActive)
		h.checkState(rt)

		// a fully claimed recipient is inactive on an active lock
		rt.SetCaller(h.alice, builtin.AccountActorCodeID)
		rt.ExpectValidateCallerAny()
		rt.ExpectAbortWithMsg(exitcode.ErrForbidden, vault.ErrMsgForbidden, func() {
			rt.Call(h.ClaimLockedTokens, &vault.LockIndexParams{LockIndex: idx})
		})
		rt.Verify()
	})

	t.Run("claiming twice in a day is a no-op", func(t *testing.T) {
		rt, idx := setup(t)
		rt.SetTimestamp(genesis + 5*day)
		h.claim(rt, h.alice, idx, abi.NewTokenAmount(300_000))

		rt.SetTimestamp(genesis + 6*day - 1)
		h.claimNothing(rt, h.alice, idx)

		lock := h.getLock(rt, idx)
		assert.Equal(t, "300000", lock.Recipients[0].AmountClaimed.String())
	})

	t.Run("only recipients may claim", func(t *testing.T) {
		rt, idx := setup(t)
		rt.SetTimestamp(genesis + 5*day)
		rt.SetCaller(h.bob, builtin.AccountActorCodeID)
		rt.ExpectValidateCallerAny()
		rt.ExpectAbortWithMsg(exitcode.ErrForbidden, vault.ErrMsgForbidden, func() {
			rt.Call(h.ClaimLockedTokens, &vault.LockIndexParams{LockIndex: idx})
		})
		rt.Verify()
	})

	t.Run("missing lock", func(t *testing.T) {
		rt, _ := setup(t)
		rt.SetCaller(h.alice, builtin.AccountActorCodeID)
		rt.ExpectValidateCallerAny()
		rt.ExpectAbortWithMsg(exitcode.ErrNotFound, vault.ErrMsgLockNotFound, func() {
			rt.Call(h.ClaimLockedTokens, &vault.LockIndexParams{LockIndex: 7})
		})
		rt.Verify()
	})

	t.Run("failed transfer leaves the recipient unchanged", func(t *testing.T) {
		rt, idx := setup(t)
		rt.SetTimestamp(genesis + 5*day)
		rt.SetCaller(h.alice, builtin.AccountActorCodeID)
		rt.ExpectValidateCallerAny()
		rt.ExpectSend(h.token, builtin.MethodsToken.Transfer,
			&token.TransferParams{To: h.alice, Amount: abi.NewTokenAmount(300_000)},
			big.Zero(), nil, exitcode.ErrInsufficientFunds)
		rt.ExpectAbort(exitcode.ErrInsufficientFunds, func() {
			rt.Call(h.ClaimLockedTokens, &vault.LockIndexParams{LockIndex: idx})
		})
		rt.Verify()

		lock := h.getLock(rt, idx)
		assert.True(t, lock.Recipients[0].AmountClaimed.IsZero())
	})
}

func TestRevokeLock(t *testing.T) {
	h := newHarness(t)

	setup := func(t *testing.T, revocationFee vault.FeeSchedule) (*mock.Runtime, uint64) {
		rt := h.builder.Build(t)
		h.constructAndVerify(rt, noFee(), revocationFee)
		return rt, h.addLock(rt, h.initiator, h.linearLock(true))
	}

	t.Run("freezes accrual and returns the remainder", func(t *testing.T) {
		rt, idx := setup(t, noFee())

		rt.SetTimestamp(genesis + 6*day)
		ret := h.revoke(rt, idx, abi.NewTokenAmount(600_000))
		assert.True(t, ret.FeeAmount.IsZero())

		lock := h.getLock(rt, idx)
		assert.False(t, lock.IsActive)
		assert.Equal(t, uint64(4), lock.FrozenDays)
		assert.Equal(t, "600000", lock.UnvestedAmount.String())
		assert.True(t, lock.Recipients[0].IsActive)
		h.checkState(rt)

		// accrual stays frozen
		rt.SetTimestamp(genesis + 100*day)
		c := h.claimable(rt, idx, h.alice)
		assert.Equal(t, uint64(4), c.ElapsedDays)
		assert.Equal(t, "400000", c.ClaimableAmount.String())

		h.claim(rt, h.alice, idx, abi.NewTokenAmount(400_000))
		lock = h.getLock(rt, idx)
		assert.False(t, lock.Recipients[0].IsActive)
		h.checkState(rt)

		rt.SetCaller(h.alice, builtin.AccountActorCodeID)
		rt.ExpectValidateCallerAny()
		rt.ExpectAbortWithMsg(exitcode.ErrForbidden, vault.ErrMsgLockNotActive, func() {
			rt.Call(h.ClaimLockedTokens, &vault.LockIndexParams{LockIndex: idx})
		})
		rt.Verify()
	})

	t.Run("recipients with nothing left are deactivated", func(t *testing.T) {
		rt, idx := setup(t, noFee())
		rt.SetTimestamp(genesis + 4*day)
		h.claim(rt, h.alice, idx, abi.NewTokenAmount(200_000))

		rt.SetTimestamp(genesis + 4*day + day/2)
		h.revoke(rt, idx, abi.NewTokenAmount(800_000))

		lock := h.getLock(rt, idx)
		assert.False(t, lock.Recipients[0].IsActive)
		assert.True(t, h.claimable(rt, idx, h.alice).ClaimableAmount.IsZero())
		h.checkState(rt)
	})

	t.Run("nothing returned after the schedule ends", func(t *testing.T) {
		rt, idx := setup(t, noFee())
		rt.SetTimestamp(genesis + 50*day)
		ret := h.revoke(rt, idx, big.Zero())
		assert.True(t, ret.ReturnedAmount.IsZero())

		h.claim(rt, h.alice, idx, abi.NewTokenAmount(1_000_000))
		h.checkState(rt)
	})

	t.Run("percentage fee comes out of the remainder", func(t *testing.T) {
		rt, idx := setup(t, percentFee(100))
		rt.SetTimestamp(genesis + 6*day)

		ret := h.revoke(rt, idx, abi.NewTokenAmount(594_000),
			tokenMove{token: h.token, to: h.feeDest, amount: abi.NewTokenAmount(6_000)})
		assert.Equal(t, "6000", ret.FeeAmount.String())

		lock := h.getLock(rt, idx)
		assert.Equal(t, "600000", lock.UnvestedAmount.String())
		h.checkState(rt)
	})

	t.Run("flat fee is billed to the initiator", func(t *testing.T) {
		rt := h.builder.Build(t)
		h.constructAndVerify(rt, noFee(), flatFee(25))
		params := h.linearLock(true)
		params.PayFeesWithReferenceToken = true
		idx := h.addLock(rt, h.initiator, params)

		rt.SetTimestamp(genesis + 6*day)
		ret := h.revoke(rt, idx, abi.NewTokenAmount(600_000),
			tokenMove{token: h.refToken, from: h.initiator, to: h.feeDest, amount: abi.NewTokenAmount(25)})
		assert.Equal(t, "25", ret.FeeAmount.String())
		h.checkState(rt)
	})

	t.Run("guards", func(t *testing.T) {
		rt, idx := setup(t, noFee())
		irrevocable := h.linearLock(false)
		idxFixed := h.addLock(rt, h.initiator, irrevocable)
		rt.SetTimestamp(genesis + 6*day)

		rt.SetCaller(h.alice, builtin.AccountActorCodeID)
		rt.ExpectValidateCallerAny()
		rt.ExpectAbortWithMsg(exitcode.ErrForbidden, vault.ErrMsgForbidden, func() {
			rt.Call(h.RevokeLock, &vault.LockIndexParams{LockIndex: idx})
		})
		rt.Verify()

		rt.SetCaller(h.initiator, builtin.AccountActorCodeID)
		rt.ExpectValidateCallerAny()
		rt.ExpectAbortWithMsg(exitcode.ErrForbidden, vault.ErrMsgLockNotRevocable, func() {
			rt.Call(h.RevokeLock, &vault.LockIndexParams{LockIndex: idxFixed})
		})
		rt.Verify()

		rt.ExpectValidateCallerAny()
		rt.ExpectAbortWithMsg(exitcode.ErrNotFound, vault.ErrMsgLockNotFound, func() {
			rt.Call(h.RevokeLock, &vault.LockIndexParams{LockIndex: 9})
		})
		rt.Verify()

		h.revoke(rt, idx, abi.NewTokenAmount(600_000))

		rt.SetCaller(h.initiator, builtin.AccountActorCodeID)
		rt.ExpectValidateCallerAny()
		rt.ExpectAbortWithMsg(exitcode.ErrIllegalState, vault.ErrMsgLockNotActive, func() {
			rt.Call(h.RevokeLock, &vault.LockIndexParams{LockIndex: idx})
		})
		rt.Verify()
		h.checkState(rt)
	})
}

func TestOwnerConfiguration(t *testing.T) {
	h := newHarness(t)

	t.Run("owner updates fees and addresses", func(t *testing.T) {
		rt := h.builder.Build(t)
		h.constructAndVerify(rt, noFee(), noFee())
		newDest := tutil.NewIDAddr(t, 120)
		newRef := tutil.NewIDAddr(t, 121)
		rt.SetAddressActorType(newRef, builtin.TokenActorCodeID)

		rt.SetCaller(h.owner, builtin.AccountActorCodeID)
		rt.ExpectValidateCallerAny()
		rt.Call(h.SetCreationFee, &vault.FeeSchedule{FlatFee: abi.NewTokenAmount(3), PercentFee: 25})
		rt.Verify()

		rt.ExpectValidateCallerAny()
		rt.Call(h.SetRevocationFee, &vault.FeeSchedule{FlatFee: abi.NewTokenAmount(4), PercentFee: 75})
		rt.Verify()

		rt.ExpectValidateCallerAny()
		rt.Call(h.SetStakersRedistributionAddress, &newDest)
		rt.Verify()

		rt.ExpectValidateCallerAny()
		rt.Call(h.SetReferenceToken, &newRef)
		rt.Verify()

		cfg := h.getConfig(rt)
		assert.Equal(t, "3", cfg.CreationFee.FlatFee.String())
		assert.Equal(t, uint64(25), cfg.CreationFee.PercentFee)
		assert.Equal(t, "4", cfg.RevocationFee.FlatFee.String())
		assert.Equal(t, uint64(75), cfg.RevocationFee.PercentFee)
		assert.Equal(t, newDest, *cfg.FeeDestination)
		assert.Equal(t, newRef, *cfg.ReferenceToken)
		h.checkState(rt)
	})

	t.Run("setters are owner only", func(t *testing.T) {
		rt := h.builder.Build(t)
		h.constructAndVerify(rt, noFee(), noFee())
		dest := h.alice

		rt.SetCaller(h.alice, builtin.AccountActorCodeID)
		for _, call := range []func(){
			func() { rt.Call(h.SetCreationFee, &vault.FeeSchedule{FlatFee: big.Zero(), PercentFee: 1}) },
			func() { rt.Call(h.SetRevocationFee, &vault.FeeSchedule{FlatFee: big.Zero(), PercentFee: 1}) },
			func() { rt.Call(h.SetStakersRedistributionAddress, &dest) },
			func() { rt.Call(h.SetReferenceToken, &h.refToken) },
			func() { rt.Call(h.TransferOwnership, &dest) },
		} {
			rt.ExpectValidateCallerAny()
			rt.ExpectAbortWithMsg(exitcode.ErrForbidden, builtin.ErrMsgNotOwner, call)
			rt.Verify()
		}
	})

	t.Run("fee schedules are validated", func(t *testing.T) {
		rt := h.builder.Build(t)
		h.constructAndVerify(rt, noFee(), noFee())

		rt.SetCaller(h.owner, builtin.AccountActorCodeID)
		rt.ExpectValidateCallerAny()
		rt.ExpectAbortWithMsg(exitcode.ErrIllegalArgument, vault.ErrMsgPercentFeeOutOfRange, func() {
			rt.Call(h.SetRevocationFee, &vault.FeeSchedule{FlatFee: big.Zero(), PercentFee: 10_001})
		})
		rt.Verify()

		rt.ExpectValidateCallerAny()
		rt.ExpectAbortWithMsg(exitcode.ErrIllegalArgument, vault.ErrMsgNegativeFee, func() {
			rt.Call(h.SetCreationFee, &vault.FeeSchedule{FlatFee: abi.NewTokenAmount(-1), PercentFee: 0})
		})
		rt.Verify()

		notToken := h.alice
		rt.ExpectValidateCallerAny()
		rt.ExpectAbortWithMsg(exitcode.ErrIllegalArgument, vault.ErrMsgInvalidToken, func() {
			rt.Call(h.SetReferenceToken, &notToken)
		})
		rt.Verify()
	})

	t.Run("ownership moves to the new owner", func(t *testing.T) {
		rt := h.builder.Build(t)
		h.constructAndVerify(rt, noFee(), noFee())
		newOwner := h.alice

		rt.SetCaller(h.owner, builtin.AccountActorCodeID)
		rt.ExpectValidateCallerAny()
		rt.Call(h.TransferOwnership, &newOwner)
		rt.Verify()
		assert.Equal(t, newOwner, h.getConfig(rt).Owner)

		rt.ExpectValidateCallerAny()
		rt.ExpectAbortWithMsg(exitcode.ErrForbidden, builtin.ErrMsgNotOwner, func() {
			rt.Call(h.SetCreationFee, &vault.FeeSchedule{FlatFee: big.Zero(), PercentFee: 1})
		})
		rt.Verify()

		rt.SetCaller(newOwner, builtin.AccountActorCodeID)
		rt.ExpectValidateCallerAny()
		rt.Call(h.SetCreationFee, &vault.FeeSchedule{FlatFee: big.Zero(), PercentFee: 1})
		rt.Verify()
	})

	t.Run("new owner and fee destination may be fresh public-key addresses", func(t *testing.T) {
		rt := h.builder.Build(t)
		h.constructAndVerify(rt, noFee(), noFee())
		ownerKey := tutil.NewSECP256K1Addr(t, "fresh owner")
		destKey := tutil.NewSECP256K1Addr(t, "fresh fee destination")
		ownerID := tutil.NewIDAddr(t, 900)
		destID := tutil.NewIDAddr(t, 901)

		rt.SetCaller(h.owner, builtin.AccountActorCodeID)
		rt.ExpectValidateCallerAny()
		rt.ExpectCreateAccount(destKey, destID)
		rt.Call(h.SetStakersRedistributionAddress, &destKey)
		rt.Verify()

		rt.ExpectValidateCallerAny()
		rt.ExpectCreateAccount(ownerKey, ownerID)
		rt.Call(h.TransferOwnership, &ownerKey)
		rt.Verify()

		cfg := h.getConfig(rt)
		assert.Equal(t, ownerID, cfg.Owner)
		assert.Equal(t, destID, *cfg.FeeDestination)
		h.checkState(rt)
	})
}

func TestQueries(t *testing.T) {
	h := newHarness(t)
	rt := h.builder.Build(t)
	h.constructAndVerify(rt, noFee(), noFee())
	idx := h.addLock(rt, h.initiator, h.linearLock(true))

	t.Run("claimable amount is side-effect free", func(t *testing.T) {
		rt.SetTimestamp(genesis + 4*day)
		before := rt.StateRoot()
		c := h.claimable(rt, idx, h.alice)
		assert.Equal(t, uint64(2), c.ElapsedDays)
		assert.Equal(t, "200000", c.UnlockedAmount.String())
		assert.Equal(t, "200000", c.ClaimableAmount.String())
		assert.Equal(t, before, rt.StateRoot())
	})

	t.Run("claimable amount of a stranger", func(t *testing.T) {
		rt.ExpectValidateCallerAny()
		rt.ExpectAbortWithMsg(exitcode.ErrNotFound, vault.ErrMsgRecipientNotFound, func() {
			rt.Call(h.GetClaimableAmount, &vault.ClaimableParams{LockIndex: idx, Recipient: h.bob})
		})
		rt.Verify()
	})

	t.Run("unknown addresses have no locks", func(t *testing.T) {
		assert.Empty(t, h.locksByInitiator(rt, tutil.NewBLSAddr(t, 3)))
		assert.Empty(t, h.locksByRecipient(rt, h.bob))
		require.Len(t, h.locksByRecipient(rt, h.alice), 1)
	})

	t.Run("config reports the lock count", func(t *testing.T) {
		assert.Equal(t, uint64(1), h.getConfig(rt).LockCount)
	})
}

//
// Harness
//

type vaultActorHarness struct {
	vault.Actor
	t testing.TB

	builder   *mock.RuntimeBuilder
	receiver  addr.Address
	owner     addr.Address
	feeDest   addr.Address
	token     addr.Address
	refToken  addr.Address
	initiator addr.Address
	alice     addr.Address
	bob       addr.Address
	carol     addr.Address
}

// A token movement the vault is expected to request. A transfer out of custody has an undefined from.
type tokenMove struct {
	token  addr.Address
	from   addr.Address
	to     addr.Address
	amount abi.TokenAmount
}

func newHarness(t *testing.T) *vaultActorHarness {
	h := &vaultActorHarness{
		t:         t,
		receiver:  tutil.NewIDAddr(t, 1000),
		owner:     tutil.NewIDAddr(t, 100),
		feeDest:   tutil.NewIDAddr(t, 101),
		token:     tutil.NewIDAddr(t, 1001),
		refToken:  tutil.NewIDAddr(t, 1002),
		initiator: tutil.NewIDAddr(t, 102),
		alice:     tutil.NewIDAddr(t, 103),
		bob:       tutil.NewIDAddr(t, 104),
		carol:     tutil.NewIDAddr(t, 105),
	}
	h.builder = mock.NewBuilder(context.Background(), h.receiver).
		WithTimestamp(genesis).
		WithActorType(h.token, builtin.TokenActorCodeID).
		WithActorType(h.refToken, builtin.TokenActorCodeID).
		WithActorType(h.owner, builtin.AccountActorCodeID).
		WithActorType(h.initiator, builtin.AccountActorCodeID)
	return h
}

func noFee() vault.FeeSchedule {
	return vault.FeeSchedule{FlatFee: big.Zero(), PercentFee: 0}
}

func percentFee(bps uint64) vault.FeeSchedule {
	return vault.FeeSchedule{FlatFee: big.Zero(), PercentFee: bps}
}

func flatFee(amount int64) vault.FeeSchedule {
	return vault.FeeSchedule{FlatFee: abi.NewTokenAmount(amount), PercentFee: 0}
}

// 1,000,000 to alice over 10 days after a 2-day cliff.
func (h *vaultActorHarness) linearLock(revocable bool) *vault.AddLockParams {
	return &vault.AddLockParams{
		Token:          h.token,
		TotalAmount:    abi.NewTokenAmount(1_000_000),
		CliffInDays:    2,
		DurationInDays: 10,
		Recipients:     []vault.RecipientParams{{Address: h.alice, Amount: abi.NewTokenAmount(1_000_000)}},
		IsRevocable:    revocable,
	}
}

func (h *vaultActorHarness) constructAndVerify(rt *mock.Runtime, creationFee, revocationFee vault.FeeSchedule) {
	refToken, feeDest := h.refToken, h.feeDest
	rt.SetCaller(builtin.SystemActorAddr, builtin.SystemActorCodeID)
	rt.ExpectValidateCallerAddr(builtin.SystemActorAddr)
	ret := rt.Call(h.Constructor, &vault.ConstructorParams{
		Owner:          h.owner,
		ReferenceToken: &refToken,
		FeeDestination: &feeDest,
		CreationFee:    creationFee,
		RevocationFee:  revocationFee,
	})
	assert.Nil(h.t, ret)
	rt.Verify()
}

func (h *vaultActorHarness) expectMove(rt *mock.Runtime, m tokenMove) {
	if m.from == addr.Undef {
		rt.ExpectSend(m.token, builtin.MethodsToken.Transfer,
			&token.TransferParams{To: m.to, Amount: m.amount}, big.Zero(), nil, exitcode.Ok)
		return
	}
	rt.ExpectSend(m.token, builtin.MethodsToken.TransferFrom,
		&token.TransferFromParams{From: m.from, To: m.to, Amount: m.amount}, big.Zero(), nil, exitcode.Ok)
}

func (h *vaultActorHarness) addLock(rt *mock.Runtime, initiator addr.Address, params *vault.AddLockParams, fees ...tokenMove) uint64 {
	expectedIndex := h.getConfig(rt).LockCount
	var recipients []addr.Address
	for _, r := range params.Recipients {
		resolved := r.Address
		if r.Address.Protocol() != addr.ID {
			resolved = h.carol
		}
		recipients = append(recipients, resolved)
	}

	rt.SetCaller(initiator, builtin.AccountActorCodeID)
	rt.ExpectValidateCallerType(builtin.CallerTypesSignable...)
	for _, fee := range fees {
		h.expectMove(rt, fee)
	}
	h.expectMove(rt, tokenMove{token: params.Token, from: initiator, to: h.receiver, amount: params.TotalAmount})
	rt.ExpectEmitEvent(&vault.LockAddedEvent{
		LockIndex:  expectedIndex,
		Initiator:  initiator,
		Token:      params.Token,
		Recipients: recipients,
	})
	ret := rt.Call(h.AddLock, params).(*vault.AddLockReturn)
	rt.Verify()
	require.Equal(h.t, expectedIndex, ret.LockIndex)
	return ret.LockIndex
}

func (h *vaultActorHarness) claim(rt *mock.Runtime, recipient addr.Address, idx uint64, expected abi.TokenAmount) {
	rt.SetCaller(recipient, builtin.AccountActorCodeID)
	rt.ExpectValidateCallerAny()
	h.expectMove(rt, tokenMove{token: h.token, to: recipient, amount: expected})
	rt.ExpectEmitEvent(&vault.LockedTokensClaimedEvent{RecipientAddress: recipient, ClaimedAmount: expected})
	ret := rt.Call(h.ClaimLockedTokens, &vault.LockIndexParams{LockIndex: idx}).(*abi.TokenAmount)
	rt.Verify()
	assert.Equal(h.t, expected.String(), ret.String())
}

func (h *vaultActorHarness) claimNothing(rt *mock.Runtime, recipient addr.Address, idx uint64) {
	rt.SetCaller(recipient, builtin.AccountActorCodeID)
	rt.ExpectValidateCallerAny()
	rt.ExpectAbortWithMsg(exitcode.ErrIllegalState, vault.ErrMsgNothingUnlocked, func() {
		rt.Call(h.ClaimLockedTokens, &vault.LockIndexParams{LockIndex: idx})
	})
	rt.Verify()
}

// Revokes as the initiator of the linear lock, expecting the fee movement (if any) then the net return.
func (h *vaultActorHarness) revoke(rt *mock.Runtime, idx uint64, returned abi.TokenAmount, fee ...tokenMove) *vault.RevokeReturn {
	rt.SetCaller(h.initiator, builtin.AccountActorCodeID)
	rt.ExpectValidateCallerAny()
	for _, f := range fee {
		h.expectMove(rt, f)
	}
	if returned.Sign() > 0 {
		h.expectMove(rt, tokenMove{token: h.token, to: h.initiator, amount: returned})
	}
	rt.ExpectEmitEvent(&vault.LockRevokedEvent{LockIndex: idx, ReturnedAmount: returned})
	ret := rt.Call(h.RevokeLock, &vault.LockIndexParams{LockIndex: idx}).(*vault.RevokeReturn)
	rt.Verify()
	assert.Equal(h.t, returned.String(), ret.ReturnedAmount.String())
	return ret
}

func (h *vaultActorHarness) claimable(rt *mock.Runtime, idx uint64, recipient addr.Address) *vault.ClaimableReturn {
	rt.ExpectValidateCallerAny()
	ret := rt.Call(h.GetClaimableAmount, &vault.ClaimableParams{LockIndex: idx, Recipient: recipient}).(*vault.ClaimableReturn)
	rt.Verify()
	return ret
}

func (h *vaultActorHarness) getLock(rt *mock.Runtime, idx uint64) *vault.Lock {
	rt.ExpectValidateCallerAny()
	ret := rt.Call(h.GetLock, &vault.LockIndexParams{LockIndex: idx}).(*vault.Lock)
	rt.Verify()
	return ret
}

func (h *vaultActorHarness) getConfig(rt *mock.Runtime) *vault.ConfigReturn {
	rt.ExpectValidateCallerAny()
	ret := rt.Call(h.GetConfig, nil).(*vault.ConfigReturn)
	rt.Verify()
	return ret
}

func (h *vaultActorHarness) locksByInitiator(rt *mock.Runtime, a addr.Address) []vault.LockEntry {
	rt.ExpectValidateCallerAny()
	ret := rt.Call(h.GetLocksByInitiator, &a).(*vault.LocksReturn)
	rt.Verify()
	return ret.Locks
}

func (h *vaultActorHarness) locksByRecipient(rt *mock.Runtime, a addr.Address) []vault.LockEntry {
	rt.ExpectValidateCallerAny()
	ret := rt.Call(h.GetLocksByRecipient, &a).(*vault.LocksReturn)
	rt.Verify()
	return ret.Locks
}

func (h *vaultActorHarness) checkState(rt *mock.Runtime) {
	var st vault.State
	rt.GetState(&st)
	_, msgs := vault.CheckStateInvariants(&st, adt.AsStore(rt))
	assert.Empty(h.t, msgs.Messages())
}
