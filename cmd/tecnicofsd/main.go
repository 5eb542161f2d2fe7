// Copyright 2019 the Go-FUSE Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command tecnicofsd is the tree server: it keeps the authoritative
// inode table in memory and serves c/d/l/m/p requests over a Unix
// datagram socket.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/rfsilva/tecnicofs/engine"
	"github.com/rfsilva/tecnicofs/metrics"
	"github.com/rfsilva/tecnicofs/server"
	"github.com/rfsilva/tecnicofs/telemetry"
	"github.com/rfsilva/tecnicofs/transport"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("tecnicofs")
	v.AutomaticEnv()
	v.SetDefault("metrics_addr", "")
	v.SetDefault("log_level", "info")

	cmd := &cobra.Command{
		Use:   "tecnicofsd <num_threads> <socket_path>",
		Short: "Serve the tecnicofs in-memory tree over a Unix datagram socket",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			workers, err := strconv.Atoi(args[0])
			if err != nil || workers <= 0 {
				return fmt.Errorf("num_threads must be a positive integer, got %q", args[0])
			}
			return run(cmd.Context(), v, workers, args[1])
		},
	}

	cmd.Flags().String("metrics-addr", "", "address to serve Prometheus metrics on, e.g. :9090 (disabled if empty)")
	cmd.Flags().String("log-level", "info", "logrus log level")
	_ = v.BindPFlag("metrics_addr", cmd.Flags().Lookup("metrics-addr"))
	_ = v.BindPFlag("log_level", cmd.Flags().Lookup("log-level"))

	return cmd
}

func run(ctx context.Context, v *viper.Viper, workers int, sockPath string) error {
	base := logrus.New()
	if lvl, err := logrus.ParseLevel(v.GetString("log_level")); err == nil {
		base.SetLevel(lvl)
	}
	log := telemetry.New(base, "tecnicofsd")

	reg := prometheus.NewRegistry()
	collector := metrics.NewCollector(reg)

	if addr := v.GetString("metrics_addr"); addr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		go func() {
			if err := http.ListenAndServe(addr, mux); err != nil {
				log.Printf("metrics server stopped: %v", err)
			}
		}()
	}

	e := engine.New()
	e.Metrics = collector
	e.Log = log

	l, err := transport.Listen(sockPath)
	if err != nil {
		return err
	}

	pool := server.New(e, l, workers)
	pool.Log = log

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	go reportOccupancy(ctx, e, collector)

	log.Printf("tecnicofsd listening on %s with %d workers", sockPath, workers)
	return pool.Run(ctx)
}

// reportOccupancy periodically samples the inode table's occupancy
// gauge. It runs outside the hot path deliberately: Engine.Occupancy
// takes the print barrier, which excludes every mutator for its
// duration, so it is sampled on a ticker rather than after every
// operation.
func reportOccupancy(ctx context.Context, e *engine.Engine, collector *metrics.Collector) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			collector.SetTableOccupancy(e.Occupancy())
		}
	}
}
