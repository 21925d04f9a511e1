// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package run

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	genesisFile := filepath.Join(t.TempDir(), "genesis.json")
	require.NoError(t, os.WriteFile(genesisFile, []byte(`{}`), 0o600))

	tests := []struct {
		name        string
		args        []string
		expectedErr error
		check       func(*require.Assertions, *Config)
	}{
		{
			name: "defaults",
			args: []string{"--genesis-file", genesisFile},
			check: func(require *require.Assertions, c *Config) {
				require.Equal("127.0.0.1:9650", c.Address)
				require.Equal([]byte(`{}`), c.GenesisBytes)
				require.Empty(c.ConfigBytes)
				require.Equal(30*time.Second, c.ReadTimeout)
				require.Equal([]string{"*"}, c.AllowedOrigins)
			},
		},
		{
			name: "overrides",
			args: []string{
				"--genesis-file", genesisFile,
				"--http-host", "0.0.0.0",
				"--http-port", "9700",
				"--http-allowed-origins", "https://a.example,https://b.example",
			},
			check: func(require *require.Assertions, c *Config) {
				require.Equal("0.0.0.0:9700", c.Address)
				require.Equal([]string{"https://a.example", "https://b.example"}, c.AllowedOrigins)
			},
		},
		{
			name:        "missing genesis",
			args:        nil,
			expectedErr: errMissingGenesisFile,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			require := require.New(t)

			flags := pflag.NewFlagSet("run", pflag.ContinueOnError)
			AddFlags(flags)
			config, err := ParseFlags(flags, test.args)
			require.ErrorIs(err, test.expectedErr)
			if test.check != nil {
				test.check(require, config)
			}
		})
	}
}
