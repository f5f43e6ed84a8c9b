package builtin

import (
	"github.com/filecoin-project/go-state-types/abi"
)

const (
	MethodSend        = abi.MethodNum(0)
	MethodConstructor = abi.MethodNum(1)
)

var MethodsAccount = struct {
	Constructor   abi.MethodNum
	PubkeyAddress abi.MethodNum
}{MethodConstructor, 2}

var MethodsToken = struct {
	Constructor  abi.MethodNum
	Transfer     abi.MethodNum
	TransferFrom abi.MethodNum
	Approve      abi.MethodNum
	BalanceOf    abi.MethodNum
	Allowance    abi.MethodNum
	TotalSupply  abi.MethodNum
}{MethodConstructor, 2, 3, 4, 5, 6, 7}

var MethodsVault = struct {
	Constructor                     abi.MethodNum
	AddLock                         abi.MethodNum
	ClaimLockedTokens               abi.MethodNum
	RevokeLock                      abi.MethodNum
	SetCreationFee                  abi.MethodNum
	SetRevocationFee                abi.MethodNum
	SetStakersRedistributionAddress abi.MethodNum
	SetReferenceToken               abi.MethodNum
	TransferOwnership               abi.MethodNum
	GetLocksByInitiator             abi.MethodNum
	GetLocksByRecipient             abi.MethodNum
	GetLock                         abi.MethodNum
	GetClaimableAmount              abi.MethodNum
	GetConfig                       abi.MethodNum
}{MethodConstructor, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14}

var MethodsSale = struct {
	Constructor       abi.MethodNum
	Invest            abi.MethodNum
	Claim             abi.MethodNum
	Pause             abi.MethodNum
	Unpause           abi.MethodNum
	SetClaimable      abi.MethodNum
	WithdrawProceeds  abi.MethodNum
	WithdrawTokens    abi.MethodNum
	TransferOwnership abi.MethodNum
	GetAllowance      abi.MethodNum
	GetRaised         abi.MethodNum
	GetSold           abi.MethodNum
}{MethodConstructor, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}
