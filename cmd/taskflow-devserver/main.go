// Command taskflow-devserver runs the in-memory TaskFlow backend for local development:
//
//	taskflow-devserver --addr :5000
//	TASKFLOW_API_URL=http://localhost:5000 taskflow register alice alice@example.com
package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"taskflow/internal/fakebackend"
	"taskflow/internal/logging"
)

func main() {
	var (
		addr     string
		secret   string
		tokenTTL time.Duration
		verbose  bool
	)

	cmd := &cobra.Command{
		Use:           "taskflow-devserver",
		Short:         "Run an in-memory TaskFlow backend",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.Default(verbose)

			backend := fakebackend.New(
				fakebackend.WithSecret(secret),
				fakebackend.WithTokenTTL(tokenTTL),
				fakebackend.WithLogger(logger),
			)

			reg := prometheus.NewRegistry()
			reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

			ln, err := net.Listen("tcp", addr)
			if err != nil {
				return fmt.Errorf("failed to listen on %s: %w", addr, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "TaskFlow dev backend on http://%s (metrics at /metrics)\n", ln.Addr())

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return fakebackend.Serve(ctx, ln, backend.DevHandler(reg), logger)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&addr, "addr", "127.0.0.1:5000", "Address to listen on")
	flags.StringVar(&secret, "secret", envOr("TASKFLOW_DEV_SECRET", "taskflow-dev-secret"), "HMAC secret used to sign tokens")
	flags.DurationVar(&tokenTTL, "token-ttl", fakebackend.DefaultTokenTTL, "Lifetime of issued tokens")
	flags.BoolVar(&verbose, "verbose", false, "Log every request")

	if err := cmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
