package main

import (
	gen "github.com/whyrusleeping/cbor-gen"

	"github.com/tokenvault/vault-actors/actors/builtin/account"
	"github.com/tokenvault/vault-actors/actors/builtin/sale"
	"github.com/tokenvault/vault-actors/actors/builtin/system"
	"github.com/tokenvault/vault-actors/actors/builtin/token"
	"github.com/tokenvault/vault-actors/actors/builtin/vault"
	"github.com/tokenvault/vault-actors/actors/puppet"
	"github.com/tokenvault/vault-actors/actors/states"
)

func main() {
	// State tree
	if err := gen.WriteTupleEncodersToFile("./actors/states/cbor_gen.go", "states",
		states.Actor{},
		states.StateRoot{},
	); err != nil {
		panic(err)
	}

	// Actors
	if err := gen.WriteTupleEncodersToFile("./actors/builtin/system/cbor_gen.go", "system",
		// actor state
		system.State{},
	); err != nil {
		panic(err)
	}

	if err := gen.WriteTupleEncodersToFile("./actors/builtin/account/cbor_gen.go", "account",
		// actor state
		account.State{},
	); err != nil {
		panic(err)
	}

	if err := gen.WriteTupleEncodersToFile("./actors/builtin/token/cbor_gen.go", "token",
		// actor state
		token.State{},
		// method params and returns
		token.ConstructorParams{},
		token.TransferParams{},
		token.TransferFromParams{},
		token.ApproveParams{},
		token.AllowanceParams{},
		// events
		token.TransferEvent{},
		token.ApprovalEvent{},
	); err != nil {
		panic(err)
	}

	if err := gen.WriteTupleEncodersToFile("./actors/builtin/vault/cbor_gen.go", "vault",
		// actor state
		vault.State{},
		vault.FeeSchedule{},
		vault.Lock{},
		vault.Recipient{},
		// method params and returns
		vault.LockEntry{},
		vault.ConstructorParams{},
		vault.RecipientParams{},
		vault.AddLockParams{},
		vault.AddLockReturn{},
		vault.LockIndexParams{},
		vault.RevokeReturn{},
		vault.ClaimableParams{},
		vault.ClaimableReturn{},
		vault.LocksReturn{},
		vault.ConfigReturn{},
		// events
		vault.LockAddedEvent{},
		vault.LockedTokensClaimedEvent{},
		vault.LockRevokedEvent{},
	); err != nil {
		panic(err)
	}

	if err := gen.WriteTupleEncodersToFile("./actors/builtin/sale/cbor_gen.go", "sale",
		// actor state
		sale.State{},
		// method params
		sale.ConstructorParams{},
		sale.SetClaimableParams{},
		// events
		sale.TokensAllocatedEvent{},
		sale.TokensClaimedEvent{},
	); err != nil {
		panic(err)
	}

	// Test actors
	if err := gen.WriteTupleEncodersToFile("./actors/puppet/cbor_gen.go", "puppet",
		puppet.State{},
		puppet.SendParams{},
		puppet.SendReturn{},
		puppet.AbortParams{},
		puppet.EmitParams{},
		puppet.Event{},
	); err != nil {
		panic(err)
	}
}
