package sale

import (
	addr "github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
)

const (
	ErrMsgPaused            = "Pausable: paused"
	ErrMsgNotPaused         = "Pausable: not paused"
	ErrMsgZeroPayment       = "PrivateSale: Payment must be greater than zero"
	ErrMsgExceedsCap        = "PrivateSale: You exceed the coin limit per wallet"
	ErrMsgClaimNotActivated = "PrivateSale: Claim is not activated"
	ErrMsgNothingToClaim    = "PrivateSale: Nothing to claim"
	ErrMsgInvalidToken      = "PrivateSale: Invalid token address"
	ErrMsgInvalidRate       = "PrivateSale: Rate must be greater than zero"
	ErrMsgInvalidCap        = "PrivateSale: Payment cap must be greater than zero"
	ErrMsgInvalidAddress    = "PrivateSale: Invalid address"
)

type ConstructorParams struct {
	Owner                addr.Address
	Token                addr.Address
	Rate                 abi.TokenAmount
	MaxPaymentPerAddress abi.TokenAmount
}

type SetClaimableParams struct {
	Claimable bool
}

type TokensAllocatedEvent struct {
	Investor   addr.Address
	Payment    abi.TokenAmount
	Allocation abi.TokenAmount
}

func (e *TokensAllocatedEvent) EventName() string { return "TokensAllocated" }

type TokensClaimedEvent struct {
	Investor addr.Address
	Amount   abi.TokenAmount
}

func (e *TokensClaimedEvent) EventName() string { return "TokensClaimed" }
