// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package vms holds the interfaces shared by every VM hosted by a node.
package vms

import (
	"context"
	"fmt"
	"net/http"
	"path"

	"github.com/gorilla/mux"
	"github.com/luxfi/log"
)

// Factory creates new VM instances.
type Factory interface {
	New(log.Logger) (interface{}, error)
}

// HandlerProvider is implemented by VMs that serve HTTP APIs.
type HandlerProvider interface {
	CreateHandlers(context.Context) (map[string]http.Handler, error)
}

// DelegateHandlers returns the handlers of vm, or none if vm does not serve
// any.
func DelegateHandlers(ctx context.Context, vm interface{}) (map[string]http.Handler, error) {
	if handlerCreator, ok := vm.(HandlerProvider); ok {
		return handlerCreator.CreateHandlers(ctx)
	}
	return nil, nil
}

// Mount registers the handlers of vm on router below prefix.
func Mount(ctx context.Context, router *mux.Router, prefix string, vm interface{}) error {
	handlers, err := DelegateHandlers(ctx, vm)
	if err != nil {
		return fmt.Errorf("failed to create handlers: %w", err)
	}
	for extension, handler := range handlers {
		router.Handle(path.Join(prefix, extension), handler)
	}
	return nil
}
