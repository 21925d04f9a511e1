// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package metrics

import (
	"errors"

	"github.com/holiman/uint256"
	"github.com/luxfi/metric"

	utilmetric "github.com/luxfi/fia/utils/metric"
	"github.com/luxfi/fia/utils/units"
	"github.com/luxfi/fia/vms/fiavm/events"
	"github.com/luxfi/fia/vms/fiavm/txs"
)

const eventLabel = "event"

var _ Metrics = (*metricsImpl)(nil)

var errNotRegistry = errors.New("registerer must implement metric.Registry")

type Metrics interface {
	utilmetric.APIInterceptor

	// MarkTxAccepted counts a committed transaction by type.
	MarkTxAccepted(tx *txs.Tx) error
	// MarkTxFailed counts a transaction that was reverted.
	MarkTxFailed()
	// ObserveEvents counts the events a committed transaction emitted.
	ObserveEvents(evs []events.Event)
	// SetSupply records the supply figures, in whole FIA.
	SetSupply(totalSupply, totalBurned, rewardPool *uint256.Int)
}

type metricsImpl struct {
	txMetrics *txMetrics

	numFailedTxs metric.Counter
	numEvents    metric.CounterVec

	totalSupply metric.Gauge
	totalBurned metric.Gauge
	rewardPool  metric.Gauge

	utilmetric.APIInterceptor
}

func New(registerer metric.Registerer) (Metrics, error) {
	registry, ok := registerer.(metric.Registry)
	if !ok {
		return nil, errNotRegistry
	}
	apiInterceptor, err := utilmetric.NewAPIInterceptor("fia_api", registry)
	if err != nil {
		return nil, err
	}

	txMetrics := newTxMetrics()
	m := &metricsImpl{
		txMetrics: txMetrics,
		numFailedTxs: metric.NewCounter(metric.CounterOpts{
			Name: "txs_failed",
			Help: "Number of transactions reverted",
		}),
		numEvents: metric.NewCounterVec(
			metric.CounterOpts{
				Name: "events_emitted",
				Help: "Number of events emitted by committed transactions",
			},
			[]string{eventLabel},
		),
		totalSupply: metric.NewGauge(metric.GaugeOpts{
			Name: "total_supply",
			Help: "Total supply in whole FIA",
		}),
		totalBurned: metric.NewGauge(metric.GaugeOpts{
			Name: "total_burned",
			Help: "Total burned in whole FIA",
		}),
		rewardPool: metric.NewGauge(metric.GaugeOpts{
			Name: "reward_pool",
			Help: "Staking reward pool in whole FIA",
		}),
		APIInterceptor: apiInterceptor,
	}

	err = errors.Join(
		registerer.Register(metric.AsCollector(txMetrics.numTxs)),
		registerer.Register(metric.AsCollector(m.numFailedTxs)),
		registerer.Register(metric.AsCollector(m.numEvents)),
		registerer.Register(metric.AsCollector(m.totalSupply)),
		registerer.Register(metric.AsCollector(m.totalBurned)),
		registerer.Register(metric.AsCollector(m.rewardPool)),
	)
	return m, err
}

func (m *metricsImpl) MarkTxAccepted(tx *txs.Tx) error {
	return tx.Unsigned.Visit(m.txMetrics)
}

func (m *metricsImpl) MarkTxFailed() {
	m.numFailedTxs.Inc()
}

func (m *metricsImpl) ObserveEvents(evs []events.Event) {
	for _, e := range evs {
		m.numEvents.With(metric.Labels{
			eventLabel: e.Name(),
		}).Inc()
	}
}

func (m *metricsImpl) SetSupply(totalSupply, totalBurned, rewardPool *uint256.Int) {
	m.totalSupply.Set(float64(units.Whole(totalSupply)))
	m.totalBurned.Set(float64(units.Whole(totalBurned)))
	m.rewardPool.Set(float64(units.Whole(rewardPool)))
}
