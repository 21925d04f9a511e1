// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package genesis

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func Command() *cobra.Command {
	c := &cobra.Command{
		Use:   "genesis",
		Short: "Creates a FIA genesis with the default fee split and limits",
		RunE:  genesisFunc,
	}
	AddFlags(c.Flags())
	return c
}

func genesisFunc(c *cobra.Command, args []string) error {
	config, err := ParseFlags(c.Flags(), args)
	if err != nil {
		return err
	}

	genesisBytes, err := config.Genesis.Bytes()
	if err != nil {
		return err
	}
	if config.Output == "" {
		_, err := fmt.Fprintln(c.OutOrStdout(), string(genesisBytes))
		return err
	}
	return os.WriteFile(config.Output, genesisBytes, 0o644)
}
