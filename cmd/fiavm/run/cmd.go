// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package run

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"path"

	"github.com/gorilla/mux"
	"github.com/luxfi/database/memdb"
	"github.com/luxfi/log"
	"github.com/luxfi/metric"
	"github.com/rs/cors"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/luxfi/fia/vms"
	"github.com/luxfi/fia/vms/fiavm"
	"github.com/luxfi/fia/vms/fiavm/config"
)

// Endpoint is where the FIA service is served.
const Endpoint = "/ext/bc/fia"

func Command() *cobra.Command {
	c := &cobra.Command{
		Use:   "fiavm",
		Short: "Runs a development FIA node over an in-memory database",
		RunE:  runFunc,
	}
	AddFlags(c.Flags())
	return c
}

func runFunc(c *cobra.Command, args []string) error {
	cfg, err := ParseFlags(c.Flags(), args)
	if err != nil {
		return err
	}
	ctx := c.Context()
	logger := log.Root()

	factory := &fiavm.Factory{Config: config.DefaultConfig()}
	vmIntf, err := factory.New(logger)
	if err != nil {
		return err
	}
	vm := vmIntf.(*fiavm.VM)

	registry := metric.NewRegistry()
	if err := vm.Initialize(ctx, memdb.New(), cfg.GenesisBytes, cfg.ConfigBytes, registry); err != nil {
		return fmt.Errorf("failed to initialize VM: %w", err)
	}
	defer func() {
		if err := vm.Shutdown(context.Background()); err != nil {
			logger.Error("failed to shut down VM", "error", err)
		}
	}()

	router := mux.NewRouter()
	if err := vms.Mount(ctx, router, Endpoint, vm); err != nil {
		return err
	}
	router.HandleFunc(path.Join(Endpoint, "health"), func(w http.ResponseWriter, r *http.Request) {
		health, err := vm.HealthCheck(r.Context())
		if err != nil {
			http.Error(w, err.Error(), http.StatusServiceUnavailable)
			return
		}
		fmt.Fprintf(w, "%v\n", health)
	}).Methods(http.MethodGet)

	listener, err := net.Listen("tcp", cfg.Address)
	if err != nil {
		return err
	}
	server := &http.Server{
		Handler: cors.New(cors.Options{
			AllowedOrigins:   cfg.AllowedOrigins,
			AllowCredentials: true,
		}).Handler(router),
		ReadTimeout: cfg.ReadTimeout,
	}
	logger.Info("serving FIA API",
		"address", listener.Addr().String(),
		"endpoint", Endpoint,
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := server.Serve(listener); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
