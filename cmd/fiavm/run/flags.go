// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package run

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/pflag"
)

const (
	HTTPHostKey        = "http-host"
	HTTPPortKey        = "http-port"
	GenesisFileKey     = "genesis-file"
	ConfigFileKey      = "config-file"
	ReadTimeoutKey     = "http-read-timeout"
	ShutdownTimeoutKey = "http-shutdown-timeout"
	AllowedOriginsKey  = "http-allowed-origins"
)

var errMissingGenesisFile = errors.New("missing genesis file")

func AddFlags(flags *pflag.FlagSet) {
	flags.String(HTTPHostKey, "127.0.0.1", "Address of the HTTP server")
	flags.Uint16(HTTPPortKey, 9650, "Port of the HTTP server")
	flags.String(GenesisFileKey, "", "Path to the JSON genesis (required)")
	flags.String(ConfigFileKey, "", "Path to the JSON VM configuration")
	flags.Duration(ReadTimeoutKey, 30*time.Second, "Maximum duration for reading an HTTP request")
	flags.Duration(ShutdownTimeoutKey, 10*time.Second, "Maximum duration to wait for in-flight HTTP requests on shutdown")
	flags.StringSlice(AllowedOriginsKey, []string{"*"}, "Origins allowed to make cross-origin HTTP requests")
}

type Config struct {
	Address         string
	GenesisBytes    []byte
	ConfigBytes     []byte
	ReadTimeout     time.Duration
	ShutdownTimeout time.Duration
	AllowedOrigins  []string
}

func ParseFlags(flags *pflag.FlagSet, args []string) (*Config, error) {
	if err := flags.Parse(args); err != nil {
		return nil, err
	}

	host, err := flags.GetString(HTTPHostKey)
	if err != nil {
		return nil, err
	}
	port, err := flags.GetUint16(HTTPPortKey)
	if err != nil {
		return nil, err
	}

	genesisFile, err := flags.GetString(GenesisFileKey)
	if err != nil {
		return nil, err
	}
	if genesisFile == "" {
		return nil, fmt.Errorf("%w: --%s is required", errMissingGenesisFile, GenesisFileKey)
	}
	genesisBytes, err := os.ReadFile(genesisFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read genesis: %w", err)
	}

	configFile, err := flags.GetString(ConfigFileKey)
	if err != nil {
		return nil, err
	}
	var configBytes []byte
	if configFile != "" {
		configBytes, err = os.ReadFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	readTimeout, err := flags.GetDuration(ReadTimeoutKey)
	if err != nil {
		return nil, err
	}
	shutdownTimeout, err := flags.GetDuration(ShutdownTimeoutKey)
	if err != nil {
		return nil, err
	}

	allowedOrigins, err := flags.GetStringSlice(AllowedOriginsKey)
	if err != nil {
		return nil, err
	}

	return &Config{
		Address:         fmt.Sprintf("%s:%d", host, port),
		GenesisBytes:    genesisBytes,
		ConfigBytes:     configBytes,
		ReadTimeout:     readTimeout,
		ShutdownTimeout: shutdownTimeout,
		AllowedOrigins:  allowedOrigins,
	}, nil
}
