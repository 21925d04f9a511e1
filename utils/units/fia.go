// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package units

import "github.com/holiman/uint256"

// Decimals is the number of decimal places of FIA.
const Decimals = 18

// Denominations of value
// FIA uses 18 decimals, so amounts are held in 256-bit integers.
const (
	Wei      uint64 = 1                   // Base unit - 10^-18 FIA
	GWei     uint64 = 1_000_000_000 * Wei // 10^-9 FIA
	MicroFIA uint64 = 1000 * GWei         // 0.000001 FIA
	MilliFIA uint64 = 1000 * MicroFIA     // 0.001 FIA
	FIA      uint64 = 1000 * MilliFIA     // 1 FIA = 10^18 wei
)

// BasisPoints is the denominator of every rate expressed in basis points.
const BasisPoints = 10_000

// Tokens returns n whole FIA expressed in wei.
func Tokens(n uint64) *uint256.Int {
	return new(uint256.Int).Mul(uint256.NewInt(n), uint256.NewInt(FIA))
}

// Whole truncates amount to whole FIA. Amounts above 2^64 FIA saturate.
func Whole(amount *uint256.Int) uint64 {
	whole := new(uint256.Int).Div(amount, uint256.NewInt(FIA))
	if !whole.IsUint64() {
		return ^uint64(0)
	}
	return whole.Uint64()
}
