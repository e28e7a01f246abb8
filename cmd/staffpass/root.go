// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 StaffPass Contributors

package main

import (
	"github.com/spf13/cobra"
)

// Global flags available to all subcommands.
var configFile string

// NewRootCmd creates the root command for the StaffPass CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "staffpass",
		Short: "StaffPass - employee credential management service",
		Long: `StaffPass registers employee accounts, authenticates logins, and
handles self-service password recovery with single-use, time-limited
reset tokens, backed by PostgreSQL.`,
	}

	// Global flag for config file path
	cmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path")

	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewMigrateCmd())

	return cmd
}
