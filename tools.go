//go:build tools
// +build tools

// Package tools tracks the generators invoked through go:generate, such as
// mockgen, so their versions stay pinned in go.mod.
package message_ledger

import (
	_ "go.uber.org/mock/mockgen"
)
