// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package txs defines the transactions accepted by the FIA VM. There is one
// transaction type per mutating entry point of the token.
package txs

import (
	"errors"
	"fmt"

	"github.com/luxfi/crypto/hash"
	"github.com/luxfi/ids"
)

var (
	ErrNilTx          = errors.New("nil transaction")
	ErrMissingSender  = errors.New("missing sender")
	ErrEmptyBatch     = errors.New("empty batch")
	ErrLengthMismatch = errors.New("recipients and amounts length mismatch")
	ErrMissingAction  = errors.New("missing proposal action")
	ErrMissingWallet  = errors.New("missing wallet address")
)

// UnsignedTx is the body of a transaction.
type UnsignedTx interface {
	// Sender returns the account the transaction acts for.
	Sender() ids.ShortID
	// Verify performs the checks that need no state.
	Verify() error
	// Visit calls visitor with the transaction's concrete type.
	Visit(visitor Visitor) error
}

// BaseTx is embedded in every transaction.
type BaseTx struct {
	From ids.ShortID `serialize:"true" json:"from"`
	// Memo lets a sender make otherwise identical transactions distinct.
	Memo []byte `serialize:"true" json:"memo"`
}

func (tx *BaseTx) Sender() ids.ShortID { return tx.From }

func (tx *BaseTx) Verify() error {
	if tx.From == ids.ShortEmpty {
		return ErrMissingSender
	}
	return nil
}

// Tx is a transaction together with its serialized form.
type Tx struct {
	Unsigned UnsignedTx `serialize:"true" json:"unsignedTx"`

	id    ids.ID
	bytes []byte
}

// NewTx serializes unsigned and returns the initialized transaction.
func NewTx(unsigned UnsignedTx) (*Tx, error) {
	tx := &Tx{Unsigned: unsigned}
	return tx, tx.Initialize()
}

// Initialize serializes the transaction and derives its ID.
func (tx *Tx) Initialize() error {
	bytes, err := Codec.Marshal(CodecVersion, tx)
	if err != nil {
		return fmt.Errorf("couldn't marshal tx: %w", err)
	}
	tx.SetBytes(bytes)
	return nil
}

func (tx *Tx) SetBytes(bytes []byte) {
	tx.bytes = bytes
	tx.id = hash.ComputeHash256Array(bytes)
}

func (tx *Tx) ID() ids.ID     { return tx.id }
func (tx *Tx) Bytes() []byte { return tx.bytes }

// Verify performs the checks that need no state.
func (tx *Tx) Verify() error {
	if tx == nil || tx.Unsigned == nil {
		return ErrNilTx
	}
	return tx.Unsigned.Verify()
}

// Parse decodes a transaction from bytes.
func Parse(bytes []byte) (*Tx, error) {
	tx := &Tx{}
	if _, err := Codec.Unmarshal(bytes, tx); err != nil {
		return nil, fmt.Errorf("couldn't parse tx: %w", err)
	}
	tx.SetBytes(bytes)
	return tx, nil
}

// MarshalUnsigned encodes a transaction body, as carried in the data of a
// multisig wallet transaction.
func MarshalUnsigned(unsigned UnsignedTx) ([]byte, error) {
	return Codec.Marshal(CodecVersion, &unsigned)
}

// ParseUnsigned decodes a transaction body produced by MarshalUnsigned.
func ParseUnsigned(bytes []byte) (UnsignedTx, error) {
	var unsigned UnsignedTx
	if _, err := Codec.Unmarshal(bytes, &unsigned); err != nil {
		return nil, fmt.Errorf("couldn't parse tx body: %w", err)
	}
	if unsigned == nil {
		return nil, ErrNilTx
	}
	return unsigned, nil
}
