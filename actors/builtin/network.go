package builtin

import (
	"github.com/filecoin-project/go-state-types/big"
)

// Block timestamps are expressed in seconds. Vesting schedules advance in whole days.
const SecondsInDay = 86400

// Number of indivisible units in one whole token or one whole native coin.
var TokenPrecision = big.NewInt(1e18)

// Denominator of fees expressed as a percentage with two decimals (basis points).
const PercentFeeDenominator = 10_000
