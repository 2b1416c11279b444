package commands

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/beetlebot/cheepnow/internal/api"
	"github.com/beetlebot/cheepnow/internal/logging"
	"github.com/beetlebot/cheepnow/internal/metrics"
	"github.com/beetlebot/cheepnow/internal/session"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

func ServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the session-scoped search and price-lock HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig(cmd)
			if addr != "" {
				cfg.Server.Addr = addr
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			a := buildApp(cfg)
			store := session.NewStore(cfg.Session.TTL, cfg.Session.CleanupInterval, nil)

			reg := prometheus.NewRegistry()
			reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

			handlers := api.NewHandlers(api.Dependencies{
				Searcher:       a.searcher,
				Catalog:        a.catalog,
				Sessions:       store,
				Metrics:        metrics.NewRegistry(reg, store.Count),
				HistoryDisplay: cfg.Session.HistoryDisplay,
				UpSince:        time.Now(),
			})

			srv := &http.Server{
				Addr: cfg.Server.Addr,
				Handler: api.NewRouter(handlers, api.RouterOptions{
					AllowedOrigins: cfg.Server.AllowedOrigins,
					RatePerSecond:  cfg.Server.RatePerSecond,
					RateBurst:      cfg.Server.RateBurst,
					Gatherer:       reg,
				}),
				ReadHeaderTimeout: 5 * time.Second,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				logging.Info("server starting", "addr", cfg.Server.Addr, "env", cfg.Env, "session_ttl", cfg.Session.TTL.String())
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
				close(errCh)
			}()

			select {
			case err := <-errCh:
				if err != nil {
					logging.Error("server failed", "error", err.Error())
				}
				return err
			case <-ctx.Done():
			}

			logging.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from config, :8080)")
	return cmd
}
