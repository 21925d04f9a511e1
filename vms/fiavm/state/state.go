// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package state manages persistent state for the FIA VM.
package state

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/holiman/uint256"
	"github.com/luxfi/database"
	"github.com/luxfi/database/prefixdb"
	"github.com/luxfi/ids"
	"github.com/luxfi/math/set"
)

var (
	ErrStakeNotFound      = errors.New("stake not found")
	ErrProposalNotFound   = errors.New("proposal not found")
	ErrWalletNotFound     = errors.New("wallet not found")
	ErrMultisigTxNotFound = errors.New("multisig transaction not found")

	balancePrefix    = []byte("balance")
	allowancePrefix  = []byte("allowance")
	userStatsPrefix  = []byte("userStats")
	exemptPrefix     = []byte("exempt")
	protectedPrefix  = []byte("protected")
	noncePrefix      = []byte("nonce")
	stakeCountPrefix = []byte("stakeCount")
	stakePrefix      = []byte("stake")
	proposalPrefix   = []byte("proposal")
	votePrefix       = []byte("vote")
	walletPrefix     = []byte("wallet")
	multisigTxPrefix = []byte("multisigTx")
	singletonPrefix  = []byte("singleton")

	initializedKey   = []byte("initialized")
	totalSupplyKey   = []byte("totalSupply")
	adminKey         = []byte("admin")
	feeConfigKey     = []byte("feeConfig")
	txLimitsKey      = []byte("txLimits")
	tokenStatsKey    = []byte("tokenStats")
	proposalCountKey = []byte("proposalCount")
	heightKey        = []byte("height")
	timestampKey     = []byte("timestamp")
)

// State is a typed view over a FIA database. It holds no caches so a State
// built over a versiondb sees exactly the uncommitted writes of that layer.
type State struct {
	// accounts whose balance was written through this State
	touched set.Set[ids.ShortID]

	balanceDB    database.Database
	allowanceDB  database.Database
	userStatsDB  database.Database
	exemptDB     database.Database
	protectedDB  database.Database
	nonceDB      database.Database
	stakeCountDB database.Database
	stakeDB      database.Database
	proposalDB   database.Database
	voteDB       database.Database
	walletDB     database.Database
	multisigTxDB database.Database
	singletonDB  database.Database
}

// New returns a State reading and writing db.
func New(db database.Database) *State {
	return &State{
		balanceDB:    prefixdb.New(balancePrefix, db),
		allowanceDB:  prefixdb.New(allowancePrefix, db),
		userStatsDB:  prefixdb.New(userStatsPrefix, db),
		exemptDB:     prefixdb.New(exemptPrefix, db),
		protectedDB:  prefixdb.New(protectedPrefix, db),
		nonceDB:      prefixdb.New(noncePrefix, db),
		stakeCountDB: prefixdb.New(stakeCountPrefix, db),
		stakeDB:      prefixdb.New(stakePrefix, db),
		proposalDB:   prefixdb.New(proposalPrefix, db),
		voteDB:       prefixdb.New(votePrefix, db),
		walletDB:     prefixdb.New(walletPrefix, db),
		multisigTxDB: prefixdb.New(multisigTxPrefix, db),
		singletonDB:  prefixdb.New(singletonPrefix, db),
		touched:      set.NewSet[ids.ShortID](0),
	}
}

// IsInitialized reports whether genesis has been applied.
func (s *State) IsInitialized() (bool, error) {
	return s.singletonDB.Has(initializedKey)
}

// SetInitialized marks genesis as applied.
func (s *State) SetInitialized() error {
	return database.PutBool(s.singletonDB, initializedKey, true)
}

// Balance returns the balance of addr. Unknown accounts hold zero.
func (s *State) Balance(addr ids.ShortID) (*uint256.Int, error) {
	return getAmount(s.balanceDB, addr[:])
}

// SetBalance stores the balance of addr. Zero balances are deleted.
func (s *State) SetBalance(addr ids.ShortID, balance *uint256.Int) error {
	s.touched.Add(addr)
	return putAmount(s.balanceDB, addr[:], balance)
}

// Touched returns the accounts whose balance was written through s.
func (s *State) Touched() set.Set[ids.ShortID] {
	return s.touched
}

// IterateBalances calls f for every account holding a non-zero balance in
// address order.
func (s *State) IterateBalances(f func(ids.ShortID, *uint256.Int) error) error {
	iter := s.balanceDB.NewIterator()
	defer iter.Release()

	for iter.Next() {
		addr, err := ids.ToShortID(iter.Key())
		if err != nil {
			return fmt.Errorf("malformed balance key: %w", err)
		}
		balance := new(uint256.Int).SetBytes(iter.Value())
		if err := f(addr, balance); err != nil {
			return err
		}
	}
	return iter.Error()
}

// TotalSupply returns the circulating supply.
func (s *State) TotalSupply() (*uint256.Int, error) {
	return getAmount(s.singletonDB, totalSupplyKey)
}

func (s *State) SetTotalSupply(supply *uint256.Int) error {
	return putAmount(s.singletonDB, totalSupplyKey, supply)
}

// Allowance returns how much spender may move on behalf of owner.
func (s *State) Allowance(owner, spender ids.ShortID) (*uint256.Int, error) {
	return getAmount(s.allowanceDB, pairKey(owner, spender))
}

func (s *State) SetAllowance(owner, spender ids.ShortID, amount *uint256.Int) error {
	return putAmount(s.allowanceDB, pairKey(owner, spender), amount)
}

func (s *State) Admin() (*Admin, error) {
	admin := &Admin{}
	_, err := getRecord(s.singletonDB, adminKey, admin)
	return admin, err
}

func (s *State) SetAdmin(admin *Admin) error {
	return putRecord(s.singletonDB, adminKey, admin)
}

func (s *State) FeeConfig() (*FeeConfig, error) {
	cfg := &FeeConfig{}
	_, err := getRecord(s.singletonDB, feeConfigKey, cfg)
	return cfg, err
}

func (s *State) SetFeeConfig(cfg *FeeConfig) error {
	return putRecord(s.singletonDB, feeConfigKey, cfg)
}

func (s *State) TxLimits() (*TxLimits, error) {
	limits := &TxLimits{}
	_, err := getRecord(s.singletonDB, txLimitsKey, limits)
	return limits, err
}

func (s *State) SetTxLimits(limits *TxLimits) error {
	return putRecord(s.singletonDB, txLimitsKey, limits)
}

func (s *State) TokenStats() (*TokenStats, error) {
	stats := &TokenStats{}
	_, err := getRecord(s.singletonDB, tokenStatsKey, stats)
	return stats, err
}

func (s *State) SetTokenStats(stats *TokenStats) error {
	return putRecord(s.singletonDB, tokenStatsKey, stats)
}

func (s *State) UserStats(addr ids.ShortID) (*UserStats, error) {
	stats := &UserStats{}
	_, err := getRecord(s.userStatsDB, addr[:], stats)
	return stats, err
}

func (s *State) SetUserStats(addr ids.ShortID, stats *UserStats) error {
	return putRecord(s.userStatsDB, addr[:], stats)
}

// IsFeeExempt reports whether addr bypasses fees and limits.
func (s *State) IsFeeExempt(addr ids.ShortID) (bool, error) {
	return s.exemptDB.Has(addr[:])
}

func (s *State) SetFeeExempt(addr ids.ShortID, exempt bool) error {
	if exempt {
		return database.PutBool(s.exemptDB, addr[:], true)
	}
	return s.exemptDB.Delete(addr[:])
}

func (s *State) ProtectedTransfer(addr ids.ShortID) (*ProtectedTransfer, error) {
	p := &ProtectedTransfer{}
	_, err := getRecord(s.protectedDB, addr[:], p)
	return p, err
}

func (s *State) SetProtectedTransfer(addr ids.ShortID, p *ProtectedTransfer) error {
	return putRecord(s.protectedDB, addr[:], p)
}

// IsNonceUsed reports whether addr already consumed nonce.
func (s *State) IsNonceUsed(addr ids.ShortID, nonce uint64) (bool, error) {
	return s.nonceDB.Has(nonceKey(addr, nonce))
}

func (s *State) MarkNonceUsed(addr ids.ShortID, nonce uint64) error {
	return database.PutBool(s.nonceDB, nonceKey(addr, nonce), true)
}

// StakeCount returns the number of stake records ever created by addr.
func (s *State) StakeCount(addr ids.ShortID) (uint64, error) {
	return getUInt64(s.stakeCountDB, addr[:])
}

func (s *State) Stake(addr ids.ShortID, index uint64) (*StakeRecord, error) {
	stake := &StakeRecord{}
	found, err := getRecord(s.stakeDB, indexKey(addr, index), stake)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("%w: %s[%d]", ErrStakeNotFound, addr, index)
	}
	return stake, nil
}

// AppendStake stores stake at the next index of addr and returns that index.
func (s *State) AppendStake(addr ids.ShortID, stake *StakeRecord) (uint64, error) {
	index, err := s.StakeCount(addr)
	if err != nil {
		return 0, err
	}
	if err := s.PutStake(addr, index, stake); err != nil {
		return 0, err
	}
	return index, database.PutUInt64(s.stakeCountDB, addr[:], index+1)
}

func (s *State) PutStake(addr ids.ShortID, index uint64, stake *StakeRecord) error {
	return putRecord(s.stakeDB, indexKey(addr, index), stake)
}

// ProposalCount returns the number of proposals created so far. Proposal ids
// start at 1 so it is also the id of the latest proposal.
func (s *State) ProposalCount() (uint64, error) {
	return getUInt64(s.singletonDB, proposalCountKey)
}

func (s *State) SetProposalCount(count uint64) error {
	return database.PutUInt64(s.singletonDB, proposalCountKey, count)
}

func (s *State) Proposal(id uint64) (*Proposal, error) {
	p := &Proposal{}
	found, err := getRecord(s.proposalDB, database.PackUInt64(id), p)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("%w: %d", ErrProposalNotFound, id)
	}
	return p, nil
}

func (s *State) PutProposal(p *Proposal) error {
	return putRecord(s.proposalDB, database.PackUInt64(p.ID), p)
}

// HasVoted reports whether voter already voted on proposal id.
func (s *State) HasVoted(id uint64, voter ids.ShortID) (bool, error) {
	return s.voteDB.Has(indexKey(voter, id))
}

func (s *State) MarkVoted(id uint64, voter ids.ShortID) error {
	return database.PutBool(s.voteDB, indexKey(voter, id), true)
}

func (s *State) Wallet(addr ids.ShortID) (*Wallet, error) {
	w := &Wallet{}
	found, err := getRecord(s.walletDB, addr[:], w)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("%w: %s", ErrWalletNotFound, addr)
	}
	return w, nil
}

func (s *State) HasWallet(addr ids.ShortID) (bool, error) {
	return s.walletDB.Has(addr[:])
}

func (s *State) PutWallet(w *Wallet) error {
	return putRecord(s.walletDB, w.Address[:], w)
}

// Wallets returns every multisig wallet in address order.
func (s *State) Wallets() ([]*Wallet, error) {
	iter := s.walletDB.NewIterator()
	defer iter.Release()

	var wallets []*Wallet
	for iter.Next() {
		w := &Wallet{}
		if _, err := Codec.Unmarshal(iter.Value(), w); err != nil {
			return nil, err
		}
		wallets = append(wallets, w)
	}
	return wallets, iter.Error()
}

func (s *State) MultisigTx(wallet ids.ShortID, id uint64) (*MultisigTx, error) {
	tx := &MultisigTx{}
	found, err := getRecord(s.multisigTxDB, indexKey(wallet, id), tx)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("%w: %s[%d]", ErrMultisigTxNotFound, wallet, id)
	}
	return tx, nil
}

func (s *State) PutMultisigTx(wallet ids.ShortID, tx *MultisigTx) error {
	return putRecord(s.multisigTxDB, indexKey(wallet, tx.ID), tx)
}

// Height returns the height of the last accepted block.
func (s *State) Height() (uint64, error) {
	return getUInt64(s.singletonDB, heightKey)
}

func (s *State) SetHeight(height uint64) error {
	return database.PutUInt64(s.singletonDB, heightKey, height)
}

// Timestamp returns the unix time of the last accepted block.
func (s *State) Timestamp() (uint64, error) {
	return getUInt64(s.singletonDB, timestampKey)
}

func (s *State) SetTimestamp(timestamp uint64) error {
	return database.PutUInt64(s.singletonDB, timestampKey, timestamp)
}

func getAmount(db database.KeyValueReader, key []byte) (*uint256.Int, error) {
	b, err := db.Get(key)
	if errors.Is(err, database.ErrNotFound) {
		return new(uint256.Int), nil
	}
	if err != nil {
		return nil, err
	}
	return new(uint256.Int).SetBytes(b), nil
}

func putAmount(db database.KeyValueWriterDeleter, key []byte, amount *uint256.Int) error {
	if amount.IsZero() {
		return db.Delete(key)
	}
	b := amount.Bytes32()
	return db.Put(key, b[:])
}

func getUInt64(db database.KeyValueReader, key []byte) (uint64, error) {
	v, err := database.GetUInt64(db, key)
	if errors.Is(err, database.ErrNotFound) {
		return 0, nil
	}
	return v, err
}

// getRecord decodes the record at key into v. A missing record leaves v at its
// zero value and reports false.
func getRecord(db database.KeyValueReader, key []byte, v interface{}) (bool, error) {
	b, err := db.Get(key)
	if errors.Is(err, database.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if _, err := Codec.Unmarshal(b, v); err != nil {
		return false, fmt.Errorf("failed to unmarshal record: %w", err)
	}
	return true, nil
}

func putRecord(db database.KeyValueWriter, key []byte, v interface{}) error {
	b, err := Codec.Marshal(CodecVersion, v)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}
	return db.Put(key, b)
}

func pairKey(a, b ids.ShortID) []byte {
	key := make([]byte, 0, 2*ids.ShortIDLen)
	key = append(key, a[:]...)
	return append(key, b[:]...)
}

func indexKey(addr ids.ShortID, index uint64) []byte {
	key := make([]byte, ids.ShortIDLen+8)
	copy(key, addr[:])
	binary.BigEndian.PutUint64(key[ids.ShortIDLen:], index)
	return key
}

func nonceKey(addr ids.ShortID, nonce uint64) []byte {
	return indexKey(addr, nonce)
}
