// Copyright (c) 2026 kvhttpd AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Program kvhttpd serves the local filesystem as a key-value store over
// HTTP/1.1: GET reads a file named by URI path, PUT atomically replaces
// it. See the kvhttp package for the protocol and concurrency contract.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/peterbourgon/ff/v3/ffcli"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"kvhttpd/internal/applog"
	"kvhttpd/net/kvhttp"
)

func main() {
	if err := serverCmd.Parse(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := serverCmd.Run(context.Background()); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

var args struct {
	workers     int
	metricsAddr string
	debug       bool
}

var serverCmd = &ffcli.Command{
	Name:       "kvhttpd",
	ShortUsage: "kvhttpd [-t N] [-metrics-addr ADDR] [-debug] PORT",
	ShortHelp:  "Serve the working directory as a key-value store over HTTP",
	Exec:       runServer,
	FlagSet: (func() *flag.FlagSet {
		fs := flag.NewFlagSet("kvhttpd", flag.ExitOnError)
		fs.IntVar(&args.workers, "t", kvhttp.DefaultWorkers, "worker thread count")
		fs.StringVar(&args.metricsAddr, "metrics-addr", "", "address to serve Prometheus metrics on (disabled if empty)")
		fs.BoolVar(&args.debug, "debug", false, "enable verbose development logging")
		return fs
	})(),
}

func runServer(ctx context.Context, positional []string) error {
	if args.workers <= 0 {
		return fmt.Errorf("invalid thread count: %d", args.workers)
	}
	if len(positional) != 1 {
		return errors.New("a single PORT argument is required")
	}
	port, err := strconv.Atoi(positional[0])
	if err != nil || port <= 0 {
		return fmt.Errorf("invalid port number: %s", positional[0])
	}

	logger, err := applog.New(args.debug)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer logger.Sync()

	var reg prometheus.Registerer
	if args.metricsAddr != "" {
		registry := prometheus.NewRegistry()
		reg = registry
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
		metricsSrv := &http.Server{Addr: args.metricsAddr, Handler: mux}
		go func() {
			if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Errorw("metrics listener failed", "error", err)
			}
		}()
		defer metricsSrv.Close()
	}

	srv := kvhttp.New(kvhttp.Config{
		Workers:    args.workers,
		Logger:     logger,
		Registerer: reg,
	})

	runCtx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	logger.Infow("listening", "port", port, "workers", args.workers)
	if err := srv.Serve(runCtx, port); err != nil {
		return err
	}
	logger.Infow("shut down")
	return nil
}
