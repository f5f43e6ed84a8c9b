package scenario

import (
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/big"
	"github.com/shopspring/decimal"
	"golang.org/x/xerrors"
)

// Tokens and the native coin both have 18 decimals.
const amountDecimals = 18

// ParseAmount converts a decimal string of whole units into base units.
// An empty string is zero.
func ParseAmount(s string) (abi.TokenAmount, error) {
	if s == "" {
		return big.Zero(), nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return big.Zero(), xerrors.Errorf("invalid amount %q: %w", s, err)
	}
	base := d.Shift(amountDecimals)
	if !base.Equal(base.Truncate(0)) {
		return big.Zero(), xerrors.Errorf("amount %q has more than %d decimals", s, amountDecimals)
	}
	if base.Sign() < 0 {
		return big.Zero(), xerrors.Errorf("negative amount %q", s)
	}
	return big.NewFromGo(base.BigInt()), nil
}

// FormatAmount renders base units as a decimal string of whole units, without trailing zeros.
func FormatAmount(a abi.TokenAmount) string {
	if a.Int == nil {
		return "0"
	}
	return decimal.NewFromBigInt(a.Int, -amountDecimals).String()
}
