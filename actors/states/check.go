package states

import (
	addr "github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/big"
	"golang.org/x/xerrors"

	"github.com/tokenvault/vault-actors/actors/builtin"
	"github.com/tokenvault/vault-actors/actors/builtin/account"
	"github.com/tokenvault/vault-actors/actors/builtin/sale"
	"github.com/tokenvault/vault-actors/actors/builtin/token"
	"github.com/tokenvault/vault-actors/actors/builtin/vault"
)

// Within this code, Go errors are not expected, but are often converted to messages so that execution
// can continue to find more errors rather than fail with no insight.
// Only errors thar are particularly troublesome to recover from should propagate as Go errors.
func CheckStateInvariants(tree *Tree, expectedBalanceTotal abi.TokenAmount) (*builtin.MessageAccumulator, error) {
	acc := &builtin.MessageAccumulator{}
	totalBalance := big.Zero()
	accountSummaries := make(map[addr.Address]*account.StateSummary)
	tokenSummaries := make(map[addr.Address]*token.StateSummary)
	vaultSummaries := make(map[addr.Address]*vault.StateSummary)
	saleSummaries := make(map[addr.Address]*sale.StateSummary)

	if err := tree.ForEach(func(key addr.Address, actor *Actor) error {
		acc := acc.WithPrefix("%v ", key) // Intentional shadow
		if key.Protocol() != addr.ID {
			acc.Addf("unexpected address protocol in state tree root: %v", key)
		}
		acc.Require(actor.Balance.Sign() >= 0, "negative balance %v", actor.Balance)
		totalBalance = big.Add(totalBalance, actor.Balance)

		switch actor.Code {
		case builtin.SystemActorCodeID:

		case builtin.AccountActorCodeID:
			var st account.State
			if err := tree.Store.Get(tree.Store.Context(), actor.Head, &st); err != nil {
				return err
			}
			summary, msgs := account.CheckStateInvariants(&st, key)
			acc.WithPrefix("account: ").AddAll(msgs)
			accountSummaries[key] = summary

		case builtin.TokenActorCodeID:
			var st token.State
			if err := tree.Store.Get(tree.Store.Context(), actor.Head, &st); err != nil {
				return err
			}
			summary, msgs := token.CheckStateInvariants(&st, tree.Store)
			acc.WithPrefix("token: ").AddAll(msgs)
			tokenSummaries[key] = summary

		case builtin.VaultActorCodeID:
			var st vault.State
			if err := tree.Store.Get(tree.Store.Context(), actor.Head, &st); err != nil {
				return err
			}
			summary, msgs := vault.CheckStateInvariants(&st, tree.Store)
			acc.WithPrefix("vault: ").AddAll(msgs)
			vaultSummaries[key] = summary

		case builtin.SaleActorCodeID:
			var st sale.State
			if err := tree.Store.Get(tree.Store.Context(), actor.Head, &st); err != nil {
				return err
			}
			summary, msgs := sale.CheckStateInvariants(&st, tree.Store)
			acc.WithPrefix("sale: ").AddAll(msgs)
			saleSummaries[key] = summary

		default:
			return xerrors.Errorf("unexpected actor code CID %v for address %v", actor.Code, key)
		}
		return nil
	}); err != nil {
		return nil, err
	}

	//
	// Perform cross-actor checks from state summaries here.
	//

	if err := CheckAddressTable(acc, tree, accountSummaries); err != nil {
		return nil, err
	}
	CheckVaultsAgainstTokens(acc, vaultSummaries, tokenSummaries)
	CheckSalesAgainstTokens(acc, saleSummaries, tokenSummaries)

	if !totalBalance.Equals(expectedBalanceTotal) {
		acc.Addf("total native balance is %v, expected %v", totalBalance, expectedBalanceTotal)
	}

	return acc, nil
}

// Every resolvable address must map to an account holding that address.
func CheckAddressTable(acc *builtin.MessageAccumulator, tree *Tree, accounts map[addr.Address]*account.StateSummary) error {
	mapped := 0
	err := tree.ForEachAddress(func(a addr.Address, id addr.Address) error {
		mapped++
		summary, ok := accounts[id]
		if !ok {
			acc.Addf("address %v maps to %v, which is not an account", a, id)
			return nil
		}
		acc.Require(summary.PubKeyAddr == a, "address %v maps to account %v holding %v", a, id, summary.PubKeyAddr)
		return nil
	})
	if err != nil {
		return xerrors.Errorf("failed to iterate address table: %w", err)
	}
	acc.Require(mapped == len(accounts), "%d addresses mapped for %d accounts", mapped, len(accounts))
	return nil
}

// A vault's token balance covers everything it still owes, token by token.
func CheckVaultsAgainstTokens(acc *builtin.MessageAccumulator, vaults map[addr.Address]*vault.StateSummary, tokens map[addr.Address]*token.StateSummary) {
	for vaultAddr, vaultSummary := range vaults { // nolint:nomaprange
		for tokenAddr, custody := range vaultSummary.Custody { // nolint:nomaprange
			tokenSummary, ok := tokens[tokenAddr]
			if !ok {
				acc.Addf("vault %v holds locks of %v, which is not a token", vaultAddr, tokenAddr)
				continue
			}
			held, ok := tokenSummary.Balances[vaultAddr]
			if !ok {
				held = big.Zero()
			}
			acc.Require(held.GreaterThanEqual(custody), "vault %v holds %v of token %v but owes %v",
				vaultAddr, held, tokenAddr, custody)
		}
	}
}

// A sale only ever allocates a token actor.
// Inventory is not checked against allocations since the owner may fund the sale after investors pay.
func CheckSalesAgainstTokens(acc *builtin.MessageAccumulator, sales map[addr.Address]*sale.StateSummary, tokens map[addr.Address]*token.StateSummary) {
	for saleAddr, saleSummary := range sales { // nolint:nomaprange
		_, ok := tokens[saleSummary.Token]
		acc.Require(ok, "sale %v sells %v, which is not a token", saleAddr, saleSummary.Token)
	}
}
