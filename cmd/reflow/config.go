package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/papercrane/reflow/internal/api"
	"github.com/papercrane/reflow/internal/config"
	"github.com/papercrane/reflow/internal/svcctx"
)

var configForce bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage reflow configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default config file to the home directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		h := svcctx.HomeFrom(cmd.Context())

		if h.ConfigExists() && !configForce {
			return fmt.Errorf("config already exists at %s (use --force to overwrite)", h.ConfigPath())
		}
		if err := h.EnsureExists(); err != nil {
			return err
		}
		if err := config.WriteDefault(h.ConfigPath()); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", h.ConfigPath())
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr := svcctx.ConfigFrom(cmd.Context())
		return api.Output(mgr.Get())
	},
}

func init() {
	configInitCmd.Flags().BoolVar(&configForce, "force", false, "overwrite an existing config file")
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
}
