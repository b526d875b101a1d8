// Copyright 2026 The ProxyCache Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Command proxycached runs the forwarding HTTP/1.0 proxy described in
// this repository: it binds a listening socket on the port given as
// its sole positional argument and serves GET requests, caching small
// responses in an in-memory LRU.
package main

import (
	"context"
	"fmt"
	"io"
	"net"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/semaphore"

	"github.com/proxycache/proxycache/internal/proxyerr"
	"github.com/proxycache/proxycache/internal/proxyhttp"
	"github.com/proxycache/proxycache/internal/proxylru"
)

const listenBacklog = 1024

func main() {
	os.Exit(run(os.Args[1:]))
}

// run contains everything main would otherwise do directly, kept
// separate so the argument-parsing and exit-code contract can be
// tested without invoking os.Exit.
func run(args []string) int {
	cfg, err := parseArgs(args)
	if err != nil {
		if err == pflag.ErrHelp {
			return 0
		}
		fmt.Fprintln(os.Stderr, "usage: proxycached [--max-conns N] [--log-level LEVEL] <port>")
		return 1
	}

	logger, err := newLogger(cfg.logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "proxycached: building logger: %v\n", err)
		return 1
	}
	defer logger.Sync()

	cache := proxylru.New()
	defer cache.Shutdown()

	ln, err := listenTCP(cfg.port)
	if err != nil {
		startupErr := &proxyerr.FatalStartup{Err: err}
		logger.Error("fatal: could not bind listener",
			zap.String("port", cfg.port), zap.String("kind", proxyerr.Kind(startupErr)), zap.Error(startupErr))
		return 1
	}
	defer ln.Close()

	logger.Info("proxycached listening", zap.String("port", cfg.port), zap.Int64("max_conns", cfg.maxConns))

	return acceptLoop(ln, cache, logger, cfg.maxConns)
}

type config struct {
	port     string
	maxConns int64
	logLevel string
}

// parseArgs parses the command line per spec.md section 6: exactly
// one positional argument (the listen port), plus two ambient flags
// that do not participate in the positional-argument contract.
func parseArgs(args []string) (config, error) {
	fs := pflag.NewFlagSet("proxycached", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	maxConns := fs.Int64("max-conns", 256, "maximum number of connections served concurrently")
	logLevel := fs.String("log-level", "info", "zap log level: debug, info, warn, error")

	if err := fs.Parse(args); err != nil {
		return config{}, err
	}
	if fs.NArg() != 1 {
		return config{}, fmt.Errorf("expected exactly one positional argument (port), got %d", fs.NArg())
	}
	return config{port: fs.Arg(0), maxConns: *maxConns, logLevel: *logLevel}, nil
}

func newLogger(level string) (*zap.Logger, error) {
	var lvl zapcore.Level
	if err := lvl.Set(level); err != nil {
		return nil, err
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.Encoding = "console"
	cfg.EncoderConfig = zap.NewDevelopmentEncoderConfig()
	return cfg.Build()
}

// acceptLoop implements component H: accept connections and dispatch
// each to a worker running the handler (component G), bounding the
// number of concurrently in-flight connections with a weighted
// semaphore so a burst of slow clients cannot exhaust file
// descriptors. A transient accept error is logged and the loop
// continues; anything else is treated as AcceptFatal and terminates
// the process with exit code 1, per spec.md section 7.
func acceptLoop(ln net.Listener, cache *proxylru.Cache, logger *zap.Logger, maxConns int64) int {
	sem := semaphore.NewWeighted(maxConns)
	handler := &proxyhttp.Handler{Cache: cache, Logger: logger}

	var accepted int64
	for {
		conn, err := ln.Accept()
		if err != nil {
			if ne, ok := err.(net.Error); ok && ne.Timeout() {
				logger.Warn("transient accept error", zap.Error(err))
				continue
			}
			acceptErr := &proxyerr.AcceptFatal{Err: err}
			logger.Error("fatal accept error, shutting down",
				zap.String("kind", proxyerr.Kind(acceptErr)), zap.Error(acceptErr))
			return 1
		}

		accepted++
		if accepted%64 == 0 {
			logStats(logger, cache)
		}

		ctx := context.Background()
		if err := sem.Acquire(ctx, 1); err != nil {
			conn.Close()
			continue
		}
		go func(c net.Conn) {
			defer sem.Release(1)
			defer c.Close()
			handler.Handle(ctx, c)
		}(conn)
	}
}

func logStats(logger *zap.Logger, cache *proxylru.Cache) {
	entries, totalSize := cache.Stats()
	logger.Info("cache stats",
		zap.Int("entries", entries),
		zap.String("total_size", humanize.Bytes(uint64(totalSize))),
	)
}
