package main

import (
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Addr  string `envconfig:"ADDR" default:"localhost:8080"`
	Token string `envconfig:"TOKEN"`
	// LEDGER_COLOURS enables colorized output for better readability
	Colours bool `envconfig:"COLOURS" default:"true"`
	// LEDGER_TRACE prints every gRPC call with its status and latency
	Trace bool `envconfig:"TRACE" default:"false"`
}

func LoadConfig() (Config, error) {
	// A missing .env is fine, the shell environment is enough.
	_ = godotenv.Load()
	var cfg Config
	err := envconfig.Process("ledger", &cfg)
	return cfg, err
}
