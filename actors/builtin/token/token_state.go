package token

import (
	addr "github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/big"
	cid "github.com/ipfs/go-cid"
	"golang.org/x/xerrors"

	"github.com/tokenvault/vault-actors/actors/util/adt"
)

const (
	ErrMsgNegativeAmount   = "Token: negative amount"
	ErrMsgExceedsBalance   = "Token: transfer amount exceeds balance"
	ErrMsgExceedsAllowance = "Token: transfer amount exceeds allowance"
	ErrMsgInvalidAddress   = "Token: unresolvable address"
)

var (
	ErrInsufficientBalance   = xerrors.New(ErrMsgExceedsBalance)
	ErrInsufficientAllowance = xerrors.New(ErrMsgExceedsAllowance)
)

const AllowancesBitwidth = adt.DefaultHamtBitwidth

type State struct {
	Name        string
	Symbol      string
	Decimals    uint64
	TotalSupply abi.TokenAmount

	Balances   cid.Cid // BalanceTable, HAMT[address]TokenAmount
	Allowances cid.Cid // Map, HAMT[owner+spender]TokenAmount
}

func ConstructState(store adt.Store, name, symbol string, decimals uint64) (*State, error) {
	emptyBalances, err := adt.StoreEmptyMap(store, adt.BalanceTableBitwidth)
	if err != nil {
		return nil, xerrors.Errorf("failed to create empty balances: %w", err)
	}
	emptyAllowances, err := adt.StoreEmptyMap(store, AllowancesBitwidth)
	if err != nil {
		return nil, xerrors.Errorf("failed to create empty allowances: %w", err)
	}
	return &State{
		Name:        name,
		Symbol:      symbol,
		Decimals:    decimals,
		TotalSupply: big.Zero(),
		Balances:    emptyBalances,
		Allowances:  emptyAllowances,
	}, nil
}

func (st *State) BalanceOf(store adt.Store, owner addr.Address) (abi.TokenAmount, error) {
	balances, err := adt.AsBalanceTable(store, st.Balances)
	if err != nil {
		return big.Zero(), err
	}
	return balances.Get(owner)
}

func (st *State) Allowance(store adt.Store, owner, spender addr.Address) (abi.TokenAmount, error) {
	allowances, err := adt.AsMap(store, st.Allowances, AllowancesBitwidth)
	if err != nil {
		return big.Zero(), xerrors.Errorf("failed to load allowances: %w", err)
	}
	var out abi.TokenAmount
	found, err := allowances.Get(allowanceKey{owner, spender}, &out)
	if err != nil {
		return big.Zero(), xerrors.Errorf("failed to get allowance of %v for %v: %w", owner, spender, err)
	}
	if !found {
		return big.Zero(), nil
	}
	return out, nil
}

// Mint credits new tokens to an account, growing the total supply.
func (st *State) Mint(store adt.Store, to addr.Address, amount abi.TokenAmount) error {
	balances, err := adt.AsBalanceTable(store, st.Balances)
	if err != nil {
		return err
	}
	if err := balances.Add(to, amount); err != nil {
		return xerrors.Errorf("failed to credit %v: %w", to, err)
	}
	if st.Balances, err = balances.Root(); err != nil {
		return xerrors.Errorf("failed to flush balances: %w", err)
	}
	st.TotalSupply = big.Add(st.TotalSupply, amount)
	return nil
}

// Transfer moves amount from one account to another.
// Returns ErrInsufficientBalance if the sender holds less than amount.
func (st *State) Transfer(store adt.Store, from, to addr.Address, amount abi.TokenAmount) error {
	balances, err := adt.AsBalanceTable(store, st.Balances)
	if err != nil {
		return err
	}
	fromBalance, err := balances.Get(from)
	if err != nil {
		return xerrors.Errorf("failed to get balance of %v: %w", from, err)
	}
	if fromBalance.LessThan(amount) {
		return ErrInsufficientBalance
	}
	if err := balances.MustSubtract(from, amount); err != nil {
		return xerrors.Errorf("failed to debit %v: %w", from, err)
	}
	if err := balances.Add(to, amount); err != nil {
		return xerrors.Errorf("failed to credit %v: %w", to, err)
	}
	if st.Balances, err = balances.Root(); err != nil {
		return xerrors.Errorf("failed to flush balances: %w", err)
	}
	return nil
}

// TransferFrom moves amount on behalf of owner, spending the spender's allowance first.
func (st *State) TransferFrom(store adt.Store, spender, owner, to addr.Address, amount abi.TokenAmount) error {
	allowed, err := st.Allowance(store, owner, spender)
	if err != nil {
		return err
	}
	if allowed.LessThan(amount) {
		return ErrInsufficientAllowance
	}
	if err := st.Approve(store, owner, spender, big.Sub(allowed, amount)); err != nil {
		return err
	}
	return st.Transfer(store, owner, to, amount)
}

// Approve sets the amount spender may move out of owner's balance, replacing any prior allowance.
func (st *State) Approve(store adt.Store, owner, spender addr.Address, amount abi.TokenAmount) error {
	allowances, err := adt.AsMap(store, st.Allowances, AllowancesBitwidth)
	if err != nil {
		return xerrors.Errorf("failed to load allowances: %w", err)
	}
	key := allowanceKey{owner, spender}
	if amount.IsZero() {
		if _, err := allowances.TryDelete(key); err != nil {
			return xerrors.Errorf("failed to clear allowance: %w", err)
		}
	} else if err := allowances.Put(key, &amount); err != nil {
		return xerrors.Errorf("failed to set allowance: %w", err)
	}
	if st.Allowances, err = allowances.Root(); err != nil {
		return xerrors.Errorf("failed to flush allowances: %w", err)
	}
	return nil
}

// Keys an allowance by the owner's address bytes, length-prefixed, followed by the spender's.
type allowanceKey struct {
	owner   addr.Address
	spender addr.Address
}

func (k allowanceKey) Key() string {
	ob, sb := k.owner.Bytes(), k.spender.Bytes()
	buf := make([]byte, 0, 1+len(ob)+len(sb))
	buf = append(buf, byte(len(ob)))
	buf = append(buf, ob...)
	buf = append(buf, sb...)
	return string(buf)
}

func parseAllowanceKey(k string) (allowanceKey, error) {
	if len(k) == 0 || int(k[0]) >= len(k) {
		return allowanceKey{}, xerrors.Errorf("malformed allowance key %x", k)
	}
	n := int(k[0])
	owner, err := addr.NewFromBytes([]byte(k[1 : 1+n]))
	if err != nil {
		return allowanceKey{}, xerrors.Errorf("malformed owner in allowance key %x: %w", k, err)
	}
	spender, err := addr.NewFromBytes([]byte(k[1+n:]))
	if err != nil {
		return allowanceKey{}, xerrors.Errorf("malformed spender in allowance key %x: %w", k, err)
	}
	return allowanceKey{owner, spender}, nil
}
