// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package multisig_test

//go:generate go run go.uber.org/mock/mockgen -package=multisigmock -destination=multisigmock/target.go -mock_names=Target=Target . Target
