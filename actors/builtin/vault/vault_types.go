package vault

import (
	addr "github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
)

// Abort reasons.
const (
	ErrMsgZeroTotalAmount      = "TokenVault: Total amount must be greater than zero"
	ErrMsgZeroDuration         = "TokenVault: Duration must be greater than zero"
	ErrMsgDurationTooLong      = "TokenVault: Duration too long"
	ErrMsgCliffExceedsDuration = "TokenVault: Cliff cannot exceed duration"
	ErrMsgNoRecipients         = "TokenVault: No recipients"
	ErrMsgTooManyRecipients    = "TokenVault: Too many recipients"
	ErrMsgZeroRecipientAmount  = "TokenVault: Recipient amount must be greater than zero"
	ErrMsgInvalidRecipient     = "TokenVault: Invalid recipient address"
	ErrMsgDuplicateRecipient   = "TokenVault: Duplicate recipient"
	ErrMsgTotalAmountMismatch  = "TokenVault: Total amount does not match the sum of recipient amounts"
	ErrMsgInvalidToken         = "TokenVault: Invalid token address"
	ErrMsgInvalidAddress       = "TokenVault: Invalid address"
	ErrMsgFeeDestinationUnset  = "TokenVault: Fee destination not configured"
	ErrMsgReferenceTokenUnset  = "TokenVault: Reference token not configured"
	ErrMsgPercentFeeOutOfRange = "TokenVault: Percent fee out of range"
	ErrMsgNegativeFee          = "TokenVault: Fee must not be negative"
	ErrMsgLockNotFound         = "TokenVault: Lock not found"
	ErrMsgRecipientNotFound    = "TokenVault: Recipient not found"
	ErrMsgForbidden            = "TokenVault: Forbidden"
	ErrMsgLockNotActive        = "TokenVault: Lock not active"
	ErrMsgLockNotRevocable     = "TokenVault: Lock not revocable"
	ErrMsgNothingUnlocked      = "TokenVault: The amount of unlocked tokens is equal to zero"
)

type ConstructorParams struct {
	Owner          addr.Address
	ReferenceToken *addr.Address
	FeeDestination *addr.Address
	CreationFee    FeeSchedule
	RevocationFee  FeeSchedule
}

type RecipientParams struct {
	Address addr.Address
	Amount  abi.TokenAmount
}

type AddLockParams struct {
	Token                     addr.Address
	TotalAmount               abi.TokenAmount
	CliffInDays               uint64
	DurationInDays            uint64
	Recipients                []RecipientParams
	IsRevocable               bool
	PayFeesWithReferenceToken bool
}

type AddLockReturn struct {
	LockIndex uint64
}

type LockIndexParams struct {
	LockIndex uint64
}

type RevokeReturn struct {
	// Unvested remainder transferred back to the initiator, net of any fee taken from it.
	ReturnedAmount abi.TokenAmount
	FeeAmount      abi.TokenAmount
}

type ClaimableParams struct {
	LockIndex uint64
	Recipient addr.Address
}

type ClaimableReturn struct {
	ElapsedDays     uint64
	UnlockedAmount  abi.TokenAmount
	ClaimableAmount abi.TokenAmount
}

type LocksReturn struct {
	Locks []LockEntry
}

type ConfigReturn struct {
	Owner          addr.Address
	ReferenceToken *addr.Address
	FeeDestination *addr.Address
	CreationFee    FeeSchedule
	RevocationFee  FeeSchedule
	LockCount      uint64
}

type LockAddedEvent struct {
	LockIndex  uint64
	Initiator  addr.Address
	Token      addr.Address
	Recipients []addr.Address
}

func (e *LockAddedEvent) EventName() string { return "LockAdded" }

type LockedTokensClaimedEvent struct {
	RecipientAddress addr.Address
	ClaimedAmount    abi.TokenAmount
}

func (e *LockedTokensClaimedEvent) EventName() string { return "LockedTokensClaimed" }

type LockRevokedEvent struct {
	LockIndex      uint64
	ReturnedAmount abi.TokenAmount
}

func (e *LockRevokedEvent) EventName() string { return "LockRevoked" }
