package vault

// Maximum number of recipients sharing one lock.
const MaxRecipients = 256

// Longest vesting schedule accepted, in days. Keeps start dates and day arithmetic well inside uint64.
const MaxDurationInDays = 365_000

// Bitwidths of the lock arena and of the per-address lock indices.
const (
	LocksAmtBitwidth      = 5
	LockIndexHamtBitwidth = 5
	LockIndexAmtBitwidth  = 3
)
