package cmd

import (
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/abhisek/quizzer/internal/metrics"
	"github.com/abhisek/quizzer/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the quiz over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.Server.Addr = addr
		}

		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

		svc, err := newServices(ctx, cfg, cmd.OutOrStdout(), metrics.NewRecorder(reg))
		if err != nil {
			return err
		}
		defer svc.Close()

		srv := server.New(server.Config{
			Addr:        cfg.Server.Addr,
			LoadTimeout: cfg.RequestTimeout(),
			Gatherer:    reg,
			Logger:      svc.logger,
		}, svc.machine, svc.provider)

		eg, ctx := errgroup.WithContext(ctx)
		eg.Go(func() error { return srv.Run(ctx) })
		eg.Go(func() error { return svc.coord.Run(ctx) })
		eg.Go(func() error { return svc.history.Run(ctx) })
		eg.Go(func() error {
			// A failed first load leaves the session in error; clients retry
			// through /api/reload.
			_ = svc.load(ctx)
			return nil
		})
		return eg.Wait()
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides server.addr)")
}
