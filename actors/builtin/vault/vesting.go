package vault

import (
	addr "github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/big"

	"github.com/tokenvault/vault-actors/actors/builtin"
)

// ElapsedDays returns the number of whole days of a schedule that have passed at now, capped at the duration.
func ElapsedDays(startDate, durationInDays, now uint64) uint64 {
	if now < startDate {
		return 0
	}
	days := (now - startDate) / builtin.SecondsInDay
	if days > durationInDays {
		return durationInDays
	}
	return days
}

// UnlockedAmount is the linearly vested share of amount after elapsedDays of durationInDays, rounded down.
func UnlockedAmount(amount abi.TokenAmount, durationInDays, elapsedDays uint64) abi.TokenAmount {
	if durationInDays == 0 {
		return big.Zero()
	}
	if elapsedDays >= durationInDays {
		return amount
	}
	return big.Div(big.Mul(amount, big.NewIntUnsigned(elapsedDays)), big.NewIntUnsigned(durationInDays))
}

// PercentOf returns amount * bps / 10000, rounded down.
func PercentOf(amount abi.TokenAmount, bps uint64) abi.TokenAmount {
	if bps == 0 {
		return big.Zero()
	}
	return big.Div(big.Mul(amount, big.NewIntUnsigned(bps)), big.NewInt(builtin.PercentFeeDenominator))
}

// ElapsedDaysAt applies ElapsedDays to the lock's schedule.
// Accrual of a revoked lock stops at the day it was revoked.
func (l *Lock) ElapsedDaysAt(now uint64) uint64 {
	elapsed := ElapsedDays(l.StartDate, l.DurationInDays, now)
	if !l.IsActive && elapsed > l.FrozenDays {
		return l.FrozenDays
	}
	return elapsed
}

// ClaimableAt computes a recipient's vesting position at now.
// The claimable amount is what has unlocked and not yet been claimed.
func (l *Lock) ClaimableAt(r *Recipient, now uint64) (elapsed uint64, unlocked, claimable abi.TokenAmount) {
	elapsed = l.ElapsedDaysAt(now)
	unlocked = UnlockedAmount(r.Amount, l.DurationInDays, elapsed)
	claimable = big.Max(big.Sub(unlocked, r.AmountClaimed), big.Zero())
	return elapsed, unlocked, claimable
}

// RecipientIndex finds the position of a recipient in the lock.
func (l *Lock) RecipientIndex(a addr.Address) (int, bool) {
	for i := range l.Recipients {
		if l.Recipients[i].Address == a {
			return i, true
		}
	}
	return -1, false
}
