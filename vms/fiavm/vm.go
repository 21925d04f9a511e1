// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package fiavm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/rpc/v2"
	lru "github.com/hashicorp/golang-lru"
	"github.com/holiman/uint256"
	"github.com/luxfi/database"
	"github.com/luxfi/database/versiondb"
	"github.com/luxfi/ids"
	"github.com/luxfi/log"
	"github.com/luxfi/math/set"
	"github.com/luxfi/metric"
	"github.com/luxfi/utils/json"

	"github.com/luxfi/fia/utils/timer/mockable"
	"github.com/luxfi/fia/vms/fiavm/api"
	"github.com/luxfi/fia/vms/fiavm/config"
	"github.com/luxfi/fia/vms/fiavm/events"
	"github.com/luxfi/fia/vms/fiavm/executor"
	"github.com/luxfi/fia/vms/fiavm/genesis"
	"github.com/luxfi/fia/vms/fiavm/index"
	"github.com/luxfi/fia/vms/fiavm/ledger"
	"github.com/luxfi/fia/vms/fiavm/metrics"
	"github.com/luxfi/fia/vms/fiavm/state"
	"github.com/luxfi/fia/vms/fiavm/txs"
)

const Version = "1.0.0"

var (
	_ api.VM = (*VM)(nil)

	ErrNotInitialized    = errors.New("VM not initialized")
	ErrShutdown          = errors.New("VM is shutting down")
	ErrMissingGenesis    = errors.New("missing genesis")
	ErrInvalidHeight     = errors.New("block height must increase")
	ErrTimestampTooEarly = errors.New("block timestamp before parent")
)

// TxResult is the outcome of one transaction of a block.
type TxResult struct {
	TxID ids.ID `json:"txID"`
	// Err is set when the transaction was reverted.
	Err error `json:"-"`
}

// BlockResult is the deterministic result of processing a block.
type BlockResult struct {
	Height    uint64           `json:"height"`
	Timestamp time.Time        `json:"timestamp"`
	Txs       []TxResult       `json:"txs"`
	Events    []*events.Record `json:"events"`
	Touched   []ids.ShortID    `json:"touched"`
}

// VM executes FIA transactions. Blocks are handed to ProcessBlock in order;
// each transaction in a block either commits all of its effects or none.
type VM struct {
	config.Config

	log  log.Logger
	lock sync.RWMutex

	// Database management
	baseDB database.Database
	db     *versiondb.Database
	state  *state.State
	events *events.Log

	clock   mockable.Clock
	metrics metrics.Metrics
	holders *index.Holders
	feed    events.Feed

	// recentTxs maps the IDs of recently processed transactions to their
	// *txs.Result.
	recentTxs *lru.Cache

	height    uint64
	timestamp time.Time

	initialized bool
	shutdown    bool
}

// New returns an uninitialized VM.
func New(cfg config.Config, logger log.Logger) *VM {
	return &VM{
		Config: cfg,
		log:    logger,
	}
}

// Initialize opens the VM over db. Genesis is applied on first start only.
// A non-empty configBytes replaces the configuration the VM was built with.
func (vm *VM) Initialize(
	_ context.Context,
	db database.Database,
	genesisBytes []byte,
	configBytes []byte,
	registerer metric.Registerer,
) error {
	vm.lock.Lock()
	defer vm.lock.Unlock()

	if vm.log == nil {
		vm.log = log.NewNoOpLogger()
	}
	if len(configBytes) > 0 {
		cfg, err := config.Parse(configBytes)
		if err != nil {
			return fmt.Errorf("failed to parse config: %w", err)
		}
		vm.Config = cfg
	} else if vm.ProposalThreshold == nil {
		vm.Config = config.DefaultConfig()
	}
	if err := vm.Config.Verify(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	vm.baseDB = db
	vm.db = versiondb.New(db)
	vm.state = state.New(vm.db)
	vm.events = events.NewLog(vm.db)

	initialized, err := vm.state.IsInitialized()
	if err != nil {
		return err
	}
	if !initialized {
		if err := vm.applyGenesis(genesisBytes); err != nil {
			return err
		}
	}

	if registerer == nil {
		registerer = metric.NewRegistry()
	}
	vm.metrics, err = metrics.New(registerer)
	if err != nil {
		return fmt.Errorf("failed to create metrics: %w", err)
	}
	vm.recentTxs, err = lru.New(vm.TxCacheSize)
	if err != nil {
		return fmt.Errorf("failed to create tx cache: %w", err)
	}
	vm.holders = index.NewHolders()
	if err := vm.holders.Rebuild(vm.state); err != nil {
		return fmt.Errorf("failed to index holders: %w", err)
	}

	vm.height, err = vm.state.Height()
	if err != nil {
		return err
	}
	timestamp, err := vm.state.Timestamp()
	if err != nil {
		return err
	}
	vm.timestamp = time.Unix(int64(timestamp), 0)
	if err := vm.updateSupplyMetrics(); err != nil {
		return err
	}

	vm.initialized = true
	vm.log.Info("FIA VM initialized",
		"height", vm.height,
		"timestamp", vm.timestamp,
		"holders", vm.holders.Len(),
	)
	return nil
}

func (vm *VM) applyGenesis(genesisBytes []byte) error {
	if len(genesisBytes) == 0 {
		return ErrMissingGenesis
	}
	g, err := genesis.Parse(genesisBytes)
	if err != nil {
		return err
	}
	if err := g.Apply(vm.state, vm.MaxOwners); err != nil {
		vm.db.Abort()
		return fmt.Errorf("failed to apply genesis: %w", err)
	}
	if err := vm.db.Commit(); err != nil {
		return fmt.Errorf("failed to commit genesis: %w", err)
	}
	vm.log.Info("applied genesis",
		"owner", g.Owner,
		"allocations", len(g.Allocations),
		"wallets", len(g.Wallets),
	)
	return nil
}

// ProcessBlock applies the transactions of a block in order. A transaction
// that fails is logged and skipped; the rest of the block still applies.
func (vm *VM) ProcessBlock(_ context.Context, height uint64, blockTime time.Time, txBytes [][]byte) (*BlockResult, error) {
	vm.lock.Lock()
	defer vm.lock.Unlock()

	return vm.processBlock(height, blockTime.Truncate(time.Second), txBytes)
}

func (vm *VM) processBlock(height uint64, blockTime time.Time, txBytes [][]byte) (*BlockResult, error) {
	switch {
	case !vm.initialized:
		return nil, ErrNotInitialized
	case vm.shutdown:
		return nil, ErrShutdown
	case height <= vm.height:
		return nil, fmt.Errorf("%w: %d <= %d", ErrInvalidHeight, height, vm.height)
	case blockTime.Before(vm.timestamp):
		return nil, fmt.Errorf("%w: %s < %s", ErrTimestampTooEarly, blockTime, vm.timestamp)
	}

	block := ledger.Block{Height: height, Time: blockTime}
	result := &BlockResult{
		Height:    height,
		Timestamp: blockTime,
		Txs:       make([]TxResult, 0, len(txBytes)),
	}
	touched := set.Set[ids.ShortID]{}
	for _, b := range txBytes {
		tx, err := txs.Parse(b)
		if err != nil {
			vm.log.Debug("dropping unparsable tx", "error", err)
			vm.metrics.MarkTxFailed()
			continue
		}
		records, err := vm.processTx(block, tx, touched)
		result.Txs = append(result.Txs, TxResult{TxID: tx.ID(), Err: err})
		if err != nil {
			vm.log.Debug("tx failed",
				"txID", tx.ID(),
				"height", height,
				"error", err,
			)
			vm.metrics.MarkTxFailed()
			continue
		}
		result.Events = append(result.Events, records...)
	}

	if err := vm.state.SetHeight(height); err != nil {
		return nil, err
	}
	if err := vm.state.SetTimestamp(uint64(blockTime.Unix())); err != nil {
		return nil, err
	}
	if err := vm.db.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit block %d: %w", height, err)
	}
	vm.height = height
	vm.timestamp = blockTime
	for _, tx := range result.Txs {
		status := &txs.Result{Status: txs.Accepted, Height: height}
		if tx.Err != nil {
			status.Status = txs.Rejected
			status.Reason = tx.Err.Error()
		}
		vm.recentTxs.Add(tx.TxID, status)
	}

	if err := vm.holders.Refresh(vm.state, touched); err != nil {
		return nil, fmt.Errorf("failed to index holders: %w", err)
	}
	if err := vm.updateSupplyMetrics(); err != nil {
		return nil, err
	}
	vm.feed.Publish(result.Events)

	result.Touched = touched.List()
	vm.log.Debug("block processed",
		"height", height,
		"txs", len(result.Txs),
		"events", len(result.Events),
	)
	return result, nil
}

// processTx runs tx in its own database layer over the VM database. The
// layer, and the events the transaction raised, are kept only on success.
func (vm *VM) processTx(block ledger.Block, tx *txs.Tx, touched set.Set[ids.ShortID]) ([]*events.Record, error) {
	vdb := versiondb.New(vm.db)
	s := state.New(vdb)
	buf := &events.Buffer{}

	e := executor.New(s, buf, block, vm.Config, tx.ID())
	if err := e.Execute(tx.Unsigned); err != nil {
		vdb.Abort()
		return nil, err
	}

	records, err := events.NewLog(vdb).Append(block.Height, block.Unix(), tx.ID(), buf.Events())
	if err != nil {
		vdb.Abort()
		return nil, err
	}
	if err := vdb.Commit(); err != nil {
		return nil, err
	}

	for addr := range s.Touched() {
		touched.Add(addr)
	}
	if err := vm.metrics.MarkTxAccepted(tx); err != nil {
		vm.log.Warn("failed to record tx metrics", "txID", tx.ID(), "error", err)
	}
	vm.metrics.ObserveEvents(buf.Events())
	return records, nil
}

func (vm *VM) updateSupplyMetrics() error {
	supply, err := vm.state.TotalSupply()
	if err != nil {
		return err
	}
	stats, err := vm.state.TokenStats()
	if err != nil {
		return err
	}
	pool, err := vm.state.Balance(ledger.RewardPoolAddress)
	if err != nil {
		return err
	}
	vm.metrics.SetSupply(supply, &stats.TotalBurned, pool)
	return nil
}

// IssueTx executes txBytes in a block of its own, timestamped by the VM
// clock. It returns the error of the transaction if it was reverted.
func (vm *VM) IssueTx(_ context.Context, txBytes []byte) (ids.ID, error) {
	vm.lock.Lock()
	defer vm.lock.Unlock()

	tx, err := txs.Parse(txBytes)
	if err != nil {
		return ids.Empty, err
	}
	if err := tx.Verify(); err != nil {
		return tx.ID(), err
	}

	blockTime := vm.clock.Time()
	if blockTime.Before(vm.timestamp) {
		blockTime = vm.timestamp
	}
	result, err := vm.processBlock(vm.height+1, blockTime, [][]byte{txBytes})
	if err != nil {
		return tx.ID(), err
	}
	return tx.ID(), result.Txs[0].Err
}

// Read calls f with an executor over the state of the last processed
// block. Nothing f writes is persisted.
func (vm *VM) Read(f func(e *executor.Executor) error) error {
	vm.lock.RLock()
	defer vm.lock.RUnlock()

	if !vm.initialized {
		return ErrNotInitialized
	}
	vdb := versiondb.New(vm.db)
	defer vdb.Abort()

	block := ledger.Block{Height: vm.height, Time: vm.timestamp}
	return f(executor.New(state.New(vdb), events.Discard, block, vm.Config, ids.Empty))
}

func (vm *VM) Events(from uint64, limit int) ([]*events.Record, error) {
	vm.lock.RLock()
	defer vm.lock.RUnlock()

	if !vm.initialized {
		return nil, ErrNotInitialized
	}
	return vm.events.Range(from, min(limit, vm.MaxEventsPerRequest))
}

func (vm *VM) TopHolders(n int) []index.Holder {
	vm.lock.RLock()
	defer vm.lock.RUnlock()

	if !vm.initialized {
		return nil
	}
	return vm.holders.Top(min(n, vm.MaxHoldersPerRequest))
}

// TxStatus returns the result of a recently processed transaction. Results
// are forgotten once the cache evicts them or the VM restarts.
func (vm *VM) TxStatus(txID ids.ID) txs.Result {
	vm.lock.RLock()
	defer vm.lock.RUnlock()

	if !vm.initialized {
		return txs.Result{}
	}
	if status, ok := vm.recentTxs.Get(txID); ok {
		return *status.(*txs.Result)
	}
	return txs.Result{}
}

// Subscribe streams committed event records. See events.Feed.
func (vm *VM) Subscribe(capacity int) (<-chan *events.Record, func()) {
	return vm.feed.Subscribe(capacity)
}

func (vm *VM) Height() uint64 {
	vm.lock.RLock()
	defer vm.lock.RUnlock()
	return vm.height
}

func (vm *VM) Timestamp() time.Time {
	vm.lock.RLock()
	defer vm.lock.RUnlock()
	return vm.timestamp
}

// SupplyConserved reports whether the balances of all accounts add up to
// the total supply.
func (vm *VM) SupplyConserved() (bool, error) {
	vm.lock.RLock()
	defer vm.lock.RUnlock()

	sum := new(uint256.Int)
	err := vm.state.IterateBalances(func(_ ids.ShortID, balance *uint256.Int) error {
		sum.Add(sum, balance)
		return nil
	})
	if err != nil {
		return false, err
	}
	supply, err := vm.state.TotalSupply()
	if err != nil {
		return false, err
	}
	return sum.Eq(supply), nil
}

func (*VM) Version(context.Context) (string, error) {
	return Version, nil
}

// CreateHandlers returns the JSON-RPC handler of the "fia" service.
func (vm *VM) CreateHandlers(context.Context) (map[string]http.Handler, error) {
	server := rpc.NewServer()
	server.RegisterCodec(json.NewCodec(), "application/json")
	server.RegisterCodec(json.NewCodec(), "application/json;charset=UTF-8")
	server.RegisterInterceptFunc(vm.metrics.InterceptRequest)
	server.RegisterAfterFunc(vm.metrics.AfterRequest)
	if err := server.RegisterService(api.NewService(vm, vm.log), "fia"); err != nil {
		return nil, fmt.Errorf("failed to register fia service: %w", err)
	}
	return map[string]http.Handler{
		"": server,
	}, nil
}

func (vm *VM) HealthCheck(context.Context) (interface{}, error) {
	vm.lock.RLock()
	defer vm.lock.RUnlock()

	if !vm.initialized {
		return map[string]interface{}{"healthy": false}, ErrNotInitialized
	}
	return map[string]interface{}{
		"healthy": !vm.shutdown,
		"height":  vm.height,
		"holders": vm.holders.Len(),
	}, nil
}

func (vm *VM) Shutdown(context.Context) error {
	vm.lock.Lock()
	defer vm.lock.Unlock()

	if vm.shutdown {
		return nil
	}
	vm.shutdown = true
	vm.log.Info("shutting down FIA VM")
	if vm.db == nil {
		return nil
	}
	if err := vm.db.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	return nil
}
