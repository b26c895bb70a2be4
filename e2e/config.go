package e2e

import (
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// E2E_LEDGER_ADDR points at a running ledger; the suites skip when empty
	LedgerAddr string `envconfig:"E2E_LEDGER_ADDR"`
	// E2E_COLOURS enables colorized output for better log readability
	Colours bool `envconfig:"E2E_COLOURS" default:"true"`
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	return cfg, err
}
