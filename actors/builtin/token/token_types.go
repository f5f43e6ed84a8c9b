package token

import (
	addr "github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
)

type ConstructorParams struct {
	Name          string
	Symbol        string
	Decimals      uint64
	InitialSupply abi.TokenAmount
	Holder        addr.Address
}

type TransferParams struct {
	To     addr.Address
	Amount abi.TokenAmount
}

type TransferFromParams struct {
	From   addr.Address
	To     addr.Address
	Amount abi.TokenAmount
}

type ApproveParams struct {
	Spender addr.Address
	Amount  abi.TokenAmount
}

type AllowanceParams struct {
	Owner   addr.Address
	Spender addr.Address
}

// Emitted on every balance movement, including zero-value transfers.
// Mints are reported as transfers from the system actor.
type TransferEvent struct {
	From   addr.Address
	To     addr.Address
	Amount abi.TokenAmount
}

func (e *TransferEvent) EventName() string { return "Transfer" }

type ApprovalEvent struct {
	Owner   addr.Address
	Spender addr.Address
	Amount  abi.TokenAmount
}

func (e *ApprovalEvent) EventName() string { return "Approval" }
