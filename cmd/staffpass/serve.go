// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 StaffPass Contributors

package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/staffpass/staffpass/internal/auth"
	authpg "github.com/staffpass/staffpass/internal/auth/postgres"
	"github.com/staffpass/staffpass/internal/config"
	"github.com/staffpass/staffpass/internal/delivery"
	"github.com/staffpass/staffpass/internal/logging"
	"github.com/staffpass/staffpass/internal/observability"
	"github.com/staffpass/staffpass/internal/server"
	"github.com/staffpass/staffpass/internal/store"
)

// shutdownTimeout bounds the drain period on SIGINT/SIGTERM.
const shutdownTimeout = 10 * time.Second

// NewServeCmd creates the serve subcommand.
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the StaffPass API server",
		Long: `Start the HTTP API server plus a separate observability listener
for Prometheus metrics and health probes.`,
		RunE: runServe,
	}

	// Flag names mirror config keys so the posflag provider maps them directly.
	cmd.Flags().String("server.addr", ":8080", "API listen address")
	cmd.Flags().String("server.metrics_addr", "127.0.0.1:9100", "metrics/health HTTP address (empty = disabled)")
	cmd.Flags().String("database.url", "", "PostgreSQL connection URL")
	cmd.Flags().String("log.format", "json", "log format (json or text)")
	cmd.Flags().Int("auth.bcrypt_cost", auth.DefaultBcryptCost, "bcrypt work factor for password hashing")

	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(configFile, cmd.Flags())
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logging.SetDefault("staffpass", version, cfg.Log.Format)
	logger := slog.Default()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("starting staffpass",
		"addr", cfg.Server.Addr,
		"metrics_addr", cfg.Server.MetricsAddr,
		"log_format", cfg.Log.Format,
	)

	pool, err := store.Connect(ctx, cfg.Database.URL)
	if err != nil {
		return err
	}
	defer pool.Close()
	logger.Info("connected to database")

	// Repositories and flows
	accounts := authpg.NewAccountRepository(pool)
	resets := authpg.NewResetCredentialRepository(pool)
	uow := authpg.NewUnitOfWork(pool)
	hasher := auth.NewBcryptHasher(cfg.Auth.BcryptCost)

	var tokenDelivery auth.TokenDelivery = delivery.NewLogDelivery(logger)
	if cfg.SMTPEnabled() {
		tokenDelivery = delivery.NewSMTPDelivery(
			cfg.SMTP.Host, cfg.SMTP.Port,
			cfg.SMTP.Username, cfg.SMTP.Password, cfg.SMTP.From,
			delivery.DomainResolver(cfg.SMTP.Domain),
		)
		logger.Info("smtp token delivery enabled", "host", cfg.SMTP.Host)
	}

	authService, err := auth.NewService(accounts, hasher)
	if err != nil {
		return err
	}
	resetService, err := auth.NewResetService(accounts, resets, hasher, uow, tokenDelivery, logger)
	if err != nil {
		return err
	}

	// Observability listener: readiness is a bounded database ping.
	var obs *observability.Server
	var obsErr <-chan error
	if cfg.Server.MetricsAddr != "" {
		obs = observability.NewServer(cfg.Server.MetricsAddr, func() bool {
			pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return pool.Ping(pingCtx) == nil
		})
		obsErr, err = obs.Start()
		if err != nil {
			return err
		}
	}

	handler := server.NewAuthHandler(authService, resetService, logger)
	var metrics *observability.Metrics
	if obs != nil {
		metrics = obs.Metrics()
	}
	api := server.New(cfg.Server.Addr, handler, metrics, logger)
	apiErr, err := api.Start()
	if err != nil {
		return err
	}

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err = <-apiErr:
		if err != nil {
			logger.Error("api server failed", "error", err)
		}
	case err = <-obsErr:
		if err != nil {
			logger.Error("observability server failed", "error", err)
		}
	}

	drainCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if stopErr := api.Stop(drainCtx); stopErr != nil {
		logger.Error("api server stop failed", "error", stopErr)
	}
	if obs != nil {
		if stopErr := obs.Stop(drainCtx); stopErr != nil {
			logger.Error("observability server stop failed", "error", stopErr)
		}
	}

	return err
}
