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

package main

import (
	"errors"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/proxycache/proxycache/internal/proxylru"
)

func TestParseArgsRequiresExactlyOnePositionalArgument(t *testing.T) {
	_, err := parseArgs([]string{})
	assert.Error(t, err)

	_, err = parseArgs([]string{"8080", "extra"})
	assert.Error(t, err)
}

func TestParseArgsAcceptsPortAndFlags(t *testing.T) {
	cfg, err := parseArgs([]string{"--max-conns", "10", "--log-level", "debug", "9090"})
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.port)
	assert.EqualValues(t, 10, cfg.maxConns)
	assert.Equal(t, "debug", cfg.logLevel)
}

func TestParseArgsDefaults(t *testing.T) {
	cfg, err := parseArgs([]string{"8080"})
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.port)
	assert.EqualValues(t, 256, cfg.maxConns)
	assert.Equal(t, "info", cfg.logLevel)
}

func TestNewLoggerRejectsUnknownLevel(t *testing.T) {
	_, err := newLogger("not-a-level")
	assert.Error(t, err)
}

func TestNewLoggerAcceptsKnownLevels(t *testing.T) {
	logger, err := newLogger("debug")
	require.NoError(t, err)
	require.NotNil(t, logger)
}

// fatalListener accepts nothing: every call returns a fixed,
// non-timeout error, the way a descriptor-exhausted or torn-down
// listener would.
type fatalListener struct{ err error }

func (l *fatalListener) Accept() (net.Conn, error) { return nil, l.err }
func (l *fatalListener) Close() error              { return nil }
func (l *fatalListener) Addr() net.Addr            { return &net.TCPAddr{} }

func TestAcceptLoopReportsAcceptFatalOnPermanentError(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := zap.New(core)

	ln := &fatalListener{err: errors.New("too many open files")}
	code := acceptLoop(ln, proxylru.New(), logger, 4)
	assert.Equal(t, 1, code)

	entries := logs.FilterMessage("fatal accept error, shutting down").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "AcceptFatal", entries[0].ContextMap()["kind"])
}
