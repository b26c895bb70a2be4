package domain

import "time"

const (
	DefaultThresholdLedgers = 100000
	DefaultExtendToLedgers  = 100000
	DefaultLedgerInterval   = 5 * time.Second
)

// TTLPolicy drives durability extension after every write.
// A record with less than Threshold lifetime left is extended so that
// ExtendTo remains.
type TTLPolicy struct {
	Threshold time.Duration
	ExtendTo  time.Duration
}

// NewTTLPolicy converts ledger counts into durations.
func NewTTLPolicy(thresholdLedgers, extendToLedgers int, ledgerInterval time.Duration) TTLPolicy {
	return TTLPolicy{
		Threshold: time.Duration(thresholdLedgers) * ledgerInterval,
		ExtendTo:  time.Duration(extendToLedgers) * ledgerInterval,
	}
}

func DefaultTTLPolicy() TTLPolicy {
	return NewTTLPolicy(DefaultThresholdLedgers, DefaultExtendToLedgers, DefaultLedgerInterval)
}

// NeedsExtension reports whether a key expiring at expiresAt (unix seconds, 0 meaning
// no expiry set yet) must be rewritten.
func (p TTLPolicy) NeedsExtension(expiresAt uint64, now time.Time) bool {
	if expiresAt == 0 {
		return true
	}
	remaining := time.Unix(int64(expiresAt), 0).Sub(now)
	return remaining < p.Threshold
}
