package internal

import (
	"fmt"
	"strings"
	"time"

	"message-ledger/domain"
)

type Config struct {
	BadgerFilepath    string        `env:"BADGER_FILEPATH,required=true"`
	LogLevel          string        `env:"LOG_LEVEL,required=true"`
	Host              string        `env:"HOST,default=localhost"`
	Port              int           `env:"PORT,default=8080"`
	JWTSecret         string        `env:"JWT_SECRET,required=true"`
	AuthTokenDuration time.Duration `env:"AUTH_TOKEN_DURATION,default=24h"`
	TTLThreshold      int           `env:"TTL_THRESHOLD_LEDGERS,default=100000"`
	TTLExtendTo       int           `env:"TTL_EXTEND_TO_LEDGERS,default=100000"`
	LedgerInterval    time.Duration `env:"LEDGER_INTERVAL,default=5s"`
	InboxPageSize     int           `env:"INBOX_PAGE_SIZE,default=50"`
	StrictNotFound    bool          `env:"STRICT_NOT_FOUND,default=false"`
	MaxContentLength  int           `env:"MAX_CONTENT_LENGTH,default=4096"`
	DebugPort         int           `env:"DEBUG_PORT,default=6060"`
	RestartInterval   time.Duration `env:"RESTART_INTERVAL,default=1s"`
	GCInterval        time.Duration `env:"GC_INTERVAL,default=10m"`
	MetricInterval    time.Duration `env:"METRIC_INTERVAL,default=1m"`
}

// TTLPolicy converts the ledger-unit settings into durations.
func (c Config) TTLPolicy() (domain.TTLPolicy, error) {
	if c.TTLThreshold <= 0 || c.TTLExtendTo <= 0 {
		return domain.TTLPolicy{}, fmt.Errorf(
			"TTL_THRESHOLD_LEDGERS and TTL_EXTEND_TO_LEDGERS must be positive, got %d and %d",
			c.TTLThreshold, c.TTLExtendTo,
		)
	}
	if c.TTLExtendTo < c.TTLThreshold {
		return domain.TTLPolicy{}, fmt.Errorf(
			"TTL_EXTEND_TO_LEDGERS (%d) must not be lower than TTL_THRESHOLD_LEDGERS (%d)",
			c.TTLExtendTo, c.TTLThreshold,
		)
	}
	if c.LedgerInterval <= 0 {
		return domain.TTLPolicy{}, fmt.Errorf("LEDGER_INTERVAL must be positive, got %s", c.LedgerInterval)
	}
	return domain.NewTTLPolicy(c.TTLThreshold, c.TTLExtendTo, c.LedgerInterval), nil
}

func (c Config) Debug() bool {
	return strings.EqualFold(c.LogLevel, "DEBUG")
}
