// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package utilmetric instruments JSON-RPC services served with gorilla/rpc.
package utilmetric

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/rpc/v2"
	metric "github.com/luxfi/metric"
)

const methodLabel = "method"

// APIInterceptor is registered on an rpc.Server with RegisterInterceptFunc
// and RegisterAfterFunc.
type APIInterceptor interface {
	InterceptRequest(i *rpc.RequestInfo) *http.Request
	AfterRequest(i *rpc.RequestInfo)
}

type contextKey int

const requestStartKey contextKey = iota

type apiInterceptor struct {
	now func() time.Time

	requests        metric.CounterVec
	requestDuration metric.GaugeVec
	requestErrors   metric.CounterVec
}

// NewAPIInterceptor returns an interceptor recording per-method request
// counts, total handling time and errors under namespace.
func NewAPIInterceptor(namespace string, registry metric.Registry) (APIInterceptor, error) {
	return newAPIInterceptor(namespace, registry, time.Now), nil
}

func newAPIInterceptor(namespace string, registry metric.Registry, now func() time.Time) *apiInterceptor {
	m := metric.NewWithRegistry(namespace, registry)
	return &apiInterceptor{
		now: now,
		requests: m.NewCounterVec(
			"requests",
			"Number of requests served per method",
			[]string{methodLabel},
		),
		requestDuration: m.NewGaugeVec(
			"request_duration_sum",
			"Nanoseconds spent handling requests per method",
			[]string{methodLabel},
		),
		requestErrors: m.NewCounterVec(
			"request_errors",
			"Number of requests per method that returned an error",
			[]string{methodLabel},
		),
	}
}

func (a *apiInterceptor) InterceptRequest(i *rpc.RequestInfo) *http.Request {
	ctx := context.WithValue(i.Request.Context(), requestStartKey, a.now())
	return i.Request.WithContext(ctx)
}

func (a *apiInterceptor) AfterRequest(i *rpc.RequestInfo) {
	start, ok := i.Request.Context().Value(requestStartKey).(time.Time)
	if !ok {
		return
	}

	labels := metric.Labels{methodLabel: i.Method}
	a.requests.With(labels).Inc()
	a.requestDuration.With(labels).Add(float64(a.now().Sub(start)))
	if i.Error != nil {
		a.requestErrors.With(labels).Inc()
	}
}
