// SPDX-License-Identifier: MIT
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/thatcatcamp/colorset/internal/backup"
	"github.com/thatcatcamp/colorset/internal/config"
	"github.com/thatcatcamp/colorset/internal/handlers"
	"github.com/thatcatcamp/colorset/internal/logging"
	"github.com/thatcatcamp/colorset/internal/middleware"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Server operations",
	Long:  "Start the colorset HTTP server",
}

var serverStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the HTTP server",
	Run: func(cmd *cobra.Command, args []string) {
		store, err := openStore()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		logger := logging.Component("server")

		if config.GetString("log.level") != "debug" {
			gin.SetMode(gin.ReleaseMode)
		}

		var limiter *middleware.RateLimiter
		if limit := config.GetInt("server.rate_limit"); limit > 0 {
			interval := config.GetDuration("server.rate_interval")
			if interval <= 0 {
				interval = time.Minute
			}
			limiter = middleware.NewRateLimiter(limit, interval)
			defer limiter.Stop()
		}

		router := handlers.NewRouter(
			handlers.NewHandler(store, logging.Component("handlers")),
			handlers.RouterOptions{
				Limiter:   limiter,
				Blocklist: config.GetStringSlice("server.blocked_ips"),
				Allowlist: config.GetStringSlice("server.allowed_ips"),
				Logger:    logging.Component("http"),
			})

		var scheduler *backup.Scheduler
		var schedulerDone chan bool
		if config.GetBool("backups.enabled") {
			scheduler = backup.NewScheduler(newBackupManager(), store, logging.Component("backup"))
			if interval := config.GetDuration("backups.interval"); interval > 0 {
				scheduler.SetInterval(interval)
			}
			scheduler.Keep = config.GetInt("backups.keep")
			schedulerDone = scheduler.Start()
			logger.Info().Dur("interval", scheduler.BackupInterval).Msg("backup scheduler started")
		}

		addr := fmt.Sprintf(":%s", config.GetString("server.http_port"))
		server := &http.Server{
			Addr:              addr,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		serverErr := make(chan error, 1)
		go func() {
			logger.Info().Str("addr", addr).Msg("starting HTTP server")
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				serverErr <- err
			}
			close(serverErr)
		}()

		select {
		case err := <-serverErr:
			if err != nil {
				logger.Error().Err(err).Msg("server error")
				os.Exit(1)
			}
		case <-ctx.Done():
			logger.Info().Msg("shutting down")
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("graceful shutdown failed")
		}

		if scheduler != nil {
			scheduler.Stop()
			select {
			case <-schedulerDone:
			case <-shutdownCtx.Done():
				logger.Warn().Msg("backup scheduler did not stop in time")
			}
		}
	},
}

func init() {
	serverCmd.AddCommand(serverStartCmd)
	rootCmd.AddCommand(serverCmd)
}
