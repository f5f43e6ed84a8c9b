package scenario

import (
	"bytes"
	"fmt"
	"sort"
	"strconv"
	"strings"

	addr "github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/big"
	"github.com/filecoin-project/go-state-types/cbor"
	cid "github.com/ipfs/go-cid"
	"golang.org/x/xerrors"

	"github.com/tokenvault/vault-actors/actors/builtin"
	"github.com/tokenvault/vault-actors/actors/builtin/sale"
	"github.com/tokenvault/vault-actors/actors/builtin/token"
	"github.com/tokenvault/vault-actors/actors/builtin/vault"
)

// An action maps a step onto a method of an actor of a given code.
type action struct {
	method abi.MethodNum
	params func(r *Runner, args map[string]string) (cbor.Marshaler, error)
	// Renders the return value. Nil for methods whose return is not interesting.
	render func(ret []byte) (string, error)
}

type actionKey struct {
	code cid.Cid
	name string
}

var actions = map[actionKey]action{
	// Token
	{builtin.TokenActorCodeID, "transfer"}: {
		method: builtin.MethodsToken.Transfer,
		params: func(r *Runner, args map[string]string) (cbor.Marshaler, error) {
			to, amount, err := r.addressAndAmount(args, "to")
			return &token.TransferParams{To: to, Amount: amount}, err
		},
	},
	{builtin.TokenActorCodeID, "transfer_from"}: {
		method: builtin.MethodsToken.TransferFrom,
		params: func(r *Runner, args map[string]string) (cbor.Marshaler, error) {
			from, err := r.address(args["from"])
			if err != nil {
				return nil, err
			}
			to, amount, err := r.addressAndAmount(args, "to")
			return &token.TransferFromParams{From: from, To: to, Amount: amount}, err
		},
	},
	{builtin.TokenActorCodeID, "approve"}: {
		method: builtin.MethodsToken.Approve,
		params: func(r *Runner, args map[string]string) (cbor.Marshaler, error) {
			spender, amount, err := r.addressAndAmount(args, "spender")
			return &token.ApproveParams{Spender: spender, Amount: amount}, err
		},
	},
	{builtin.TokenActorCodeID, "balance"}: {
		method: builtin.MethodsToken.BalanceOf,
		params: addressArg("owner"),
		render: renderAmount,
	},
	{builtin.TokenActorCodeID, "allowance"}: {
		method: builtin.MethodsToken.Allowance,
		params: func(r *Runner, args map[string]string) (cbor.Marshaler, error) {
			owner, err := r.address(args["owner"])
			if err != nil {
				return nil, err
			}
			spender, err := r.address(args["spender"])
			return &token.AllowanceParams{Owner: owner, Spender: spender}, err
		},
		render: renderAmount,
	},
	{builtin.TokenActorCodeID, "total_supply"}: {
		method: builtin.MethodsToken.TotalSupply,
		params: noParams,
		render: renderAmount,
	},

	// Vault
	{builtin.VaultActorCodeID, "add_lock"}: {
		method: builtin.MethodsVault.AddLock,
		params: addLockParams,
		render: func(ret []byte) (string, error) {
			var out vault.AddLockReturn
			if err := decode(ret, &out); err != nil {
				return "", err
			}
			return strconv.FormatUint(out.LockIndex, 10), nil
		},
	},
	{builtin.VaultActorCodeID, "claim"}: {
		method: builtin.MethodsVault.ClaimLockedTokens,
		params: lockIndexArg,
		render: renderAmount,
	},
	{builtin.VaultActorCodeID, "revoke"}: {
		method: builtin.MethodsVault.RevokeLock,
		params: lockIndexArg,
		render: func(ret []byte) (string, error) {
			var out vault.RevokeReturn
			if err := decode(ret, &out); err != nil {
				return "", err
			}
			return fmt.Sprintf("returned=%s fee=%s", FormatAmount(out.ReturnedAmount), FormatAmount(out.FeeAmount)), nil
		},
	},
	{builtin.VaultActorCodeID, "claimable"}: {
		method: builtin.MethodsVault.GetClaimableAmount,
		params: func(r *Runner, args map[string]string) (cbor.Marshaler, error) {
			index, err := parseLockIndex(args)
			if err != nil {
				return nil, err
			}
			recipient, err := r.address(args["recipient"])
			return &vault.ClaimableParams{LockIndex: index, Recipient: recipient}, err
		},
		render: func(ret []byte) (string, error) {
			var out vault.ClaimableReturn
			if err := decode(ret, &out); err != nil {
				return "", err
			}
			return FormatAmount(out.ClaimableAmount), nil
		},
	},
	{builtin.VaultActorCodeID, "set_creation_fee"}: {
		method: builtin.MethodsVault.SetCreationFee,
		params: feeArgs,
	},
	{builtin.VaultActorCodeID, "set_revocation_fee"}: {
		method: builtin.MethodsVault.SetRevocationFee,
		params: feeArgs,
	},
	{builtin.VaultActorCodeID, "set_fee_destination"}: {
		method: builtin.MethodsVault.SetStakersRedistributionAddress,
		params: addressArg("address"),
	},
	{builtin.VaultActorCodeID, "set_reference_token"}: {
		method: builtin.MethodsVault.SetReferenceToken,
		params: addressArg("token"),
	},
	{builtin.VaultActorCodeID, "transfer_ownership"}: {
		method: builtin.MethodsVault.TransferOwnership,
		params: addressArg("owner"),
	},
	{builtin.VaultActorCodeID, "lock_count"}: {
		method: builtin.MethodsVault.GetConfig,
		params: noParams,
		render: func(ret []byte) (string, error) {
			var out vault.ConfigReturn
			if err := decode(ret, &out); err != nil {
				return "", err
			}
			return strconv.FormatUint(out.LockCount, 10), nil
		},
	},

	// Sale
	{builtin.SaleActorCodeID, "invest"}: {
		method: builtin.MethodsSale.Invest,
		params: noParams,
		render: renderAmount,
	},
	{builtin.SaleActorCodeID, "claim"}: {
		method: builtin.MethodsSale.Claim,
		params: noParams,
		render: renderAmount,
	},
	{builtin.SaleActorCodeID, "pause"}: {
		method: builtin.MethodsSale.Pause,
		params: noParams,
	},
	{builtin.SaleActorCodeID, "unpause"}: {
		method: builtin.MethodsSale.Unpause,
		params: noParams,
	},
	{builtin.SaleActorCodeID, "set_claimable"}: {
		method: builtin.MethodsSale.SetClaimable,
		params: func(r *Runner, args map[string]string) (cbor.Marshaler, error) {
			claimable, err := parseBool(args, "claimable", true)
			return &sale.SetClaimableParams{Claimable: claimable}, err
		},
	},
	{builtin.SaleActorCodeID, "withdraw_proceeds"}: {
		method: builtin.MethodsSale.WithdrawProceeds,
		params: noParams,
		render: renderAmount,
	},
	{builtin.SaleActorCodeID, "withdraw_tokens"}: {
		method: builtin.MethodsSale.WithdrawTokens,
		params: noParams,
		render: renderAmount,
	},
	{builtin.SaleActorCodeID, "transfer_ownership"}: {
		method: builtin.MethodsSale.TransferOwnership,
		params: addressArg("owner"),
	},
	{builtin.SaleActorCodeID, "allowance"}: {
		method: builtin.MethodsSale.GetAllowance,
		params: addressArg("investor"),
		render: renderAmount,
	},
	{builtin.SaleActorCodeID, "raised"}: {
		method: builtin.MethodsSale.GetRaised,
		params: noParams,
		render: renderAmount,
	},
	{builtin.SaleActorCodeID, "sold"}: {
		method: builtin.MethodsSale.GetSold,
		params: noParams,
		render: renderAmount,
	},

	// Any account
	{builtin.AccountActorCodeID, "send"}: {
		method: builtin.MethodSend,
		params: noParams,
	},
}

// Actions lists the action names available on actors of a code, sorted.
func Actions(code cid.Cid) []string {
	var names []string
	for key := range actions { // nolint:nomaprange
		if key.code.Equals(code) {
			names = append(names, key.name)
		}
	}
	sort.Strings(names)
	return names
}

func noParams(*Runner, map[string]string) (cbor.Marshaler, error) {
	return nil, nil
}

func addressArg(name string) func(r *Runner, args map[string]string) (cbor.Marshaler, error) {
	return func(r *Runner, args map[string]string) (cbor.Marshaler, error) {
		a, err := r.address(args[name])
		if err != nil {
			return nil, xerrors.Errorf("%s: %w", name, err)
		}
		return &a, nil
	}
}

func lockIndexArg(_ *Runner, args map[string]string) (cbor.Marshaler, error) {
	index, err := parseLockIndex(args)
	return &vault.LockIndexParams{LockIndex: index}, err
}

func feeArgs(_ *Runner, args map[string]string) (cbor.Marshaler, error) {
	flat, err := ParseAmount(args["flat"])
	if err != nil {
		return nil, err
	}
	percent, err := parseUint(args, "percent_bps", 0)
	return &vault.FeeSchedule{FlatFee: flat, PercentFee: percent}, err
}

// Recipients are given as "name:amount" pairs separated by commas.
// The total defaults to the sum of the recipients' amounts.
func addLockParams(r *Runner, args map[string]string) (cbor.Marshaler, error) {
	tokenAddr, err := r.address(args["token"])
	if err != nil {
		return nil, xerrors.Errorf("token: %w", err)
	}
	params := &vault.AddLockParams{Token: tokenAddr}
	if params.CliffInDays, err = parseUint(args, "cliff_days", 0); err != nil {
		return nil, err
	}
	if params.DurationInDays, err = parseUint(args, "duration_days", 0); err != nil {
		return nil, err
	}
	if params.IsRevocable, err = parseBool(args, "revocable", false); err != nil {
		return nil, err
	}
	if params.PayFeesWithReferenceToken, err = parseBool(args, "pay_with_reference", false); err != nil {
		return nil, err
	}

	sum := big.Zero()
	for _, entry := range strings.Split(args["recipients"], ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, ":", 2)
		if len(parts) != 2 {
			return nil, xerrors.Errorf("recipient %q is not name:amount", entry)
		}
		recipient, err := r.address(parts[0])
		if err != nil {
			return nil, err
		}
		amount, err := ParseAmount(parts[1])
		if err != nil {
			return nil, err
		}
		sum = big.Add(sum, amount)
		params.Recipients = append(params.Recipients, vault.RecipientParams{Address: recipient, Amount: amount})
	}
	params.TotalAmount = sum
	if total, ok := args["total"]; ok {
		if params.TotalAmount, err = ParseAmount(total); err != nil {
			return nil, err
		}
	}
	return params, nil
}

func (r *Runner) addressAndAmount(args map[string]string, name string) (addr.Address, abi.TokenAmount, error) {
	a, err := r.address(args[name])
	if err != nil {
		return addr.Undef, big.Zero(), xerrors.Errorf("%s: %w", name, err)
	}
	amount, err := ParseAmount(args["amount"])
	return a, amount, err
}

func parseLockIndex(args map[string]string) (uint64, error) {
	return parseUint(args, "lock", 0)
}

func parseUint(args map[string]string, name string, dflt uint64) (uint64, error) {
	s, ok := args[name]
	if !ok {
		return dflt, nil
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, xerrors.Errorf("%s: %w", name, err)
	}
	return v, nil
}

func parseBool(args map[string]string, name string, dflt bool) (bool, error) {
	s, ok := args[name]
	if !ok {
		return dflt, nil
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return false, xerrors.Errorf("%s: %w", name, err)
	}
	return v, nil
}

func renderAmount(ret []byte) (string, error) {
	var amount abi.TokenAmount
	if err := decode(ret, &amount); err != nil {
		return "", err
	}
	return FormatAmount(amount), nil
}

func decode(data []byte, out cbor.Unmarshaler) error {
	return out.UnmarshalCBOR(bytes.NewReader(data))
}
