// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package fiavm implements the FIA token VM.
//
// The FIA VM provides:
//   - A fungible token with a fee split between treasury, founder and burn
//   - Transfer limits and replay-protected transfers
//   - Time-locked staking paid from a reward pool
//   - Token-weighted governance over fees, limits and treasury spends
//   - Multisignature wallets that administer the token
//
// Every transaction is applied atomically over the VM database; events are
// recorded in an append-only log.
package fiavm

import (
	"github.com/luxfi/log"

	"github.com/luxfi/fia/vms"
	"github.com/luxfi/fia/vms/fiavm/config"
)

var (
	// VMID is the unique identifier for the FIA VM
	VMID = [32]byte{'f', 'i', 'a', 'v', 'm'}

	_ vms.Factory = (*Factory)(nil)
)

// Factory creates new FIA VM instances.
type Factory struct {
	config.Config
}

// New implements vms.Factory. The returned VM must be initialized before
// use.
func (f *Factory) New(logger log.Logger) (interface{}, error) {
	return New(f.Config, logger), nil
}
