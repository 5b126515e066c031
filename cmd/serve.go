package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/abhisek/interviewd/internal/api"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the interview HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		st, err := openStore(cmd)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		d, err := buildDeps(ctx, st)
		if err != nil {
			st.Close()
			return err
		}
		defer d.Close()

		addr := appConfig.Server.Addr
		if a, _ := cmd.Flags().GetString("addr"); a != "" {
			addr = a
		}

		srv := api.New(d.controller, d.resumes, api.Options{
			RateLimitMax:    appConfig.Server.RateLimitMax,
			RateLimitWindow: appConfig.Server.RateLimitWindow,
			CORSOrigins:     appConfig.Server.CORSOrigins,
			Ready: func(ctx context.Context) error {
				if err := d.store.DB().PingContext(ctx); err != nil {
					return err
				}
				if d.redis != nil {
					return d.redis.Ping(ctx)
				}
				return nil
			},
		}, log)

		errCh := make(chan error, 1)
		go func() { errCh <- srv.Listen(addr) }()

		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
		}

		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Warn("graceful shutdown failed", zap.Error(err))
			return err
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides server.addr)")
}
