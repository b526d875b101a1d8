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

package proxyhttp

import (
	"context"
	"net"
	"time"

	"github.com/proxycache/proxycache/internal/proxyerr"
)

// dialTimeout bounds a single candidate connect attempt so one dead
// address cannot stall the whole request pipeline; it is not part of
// the wire contract, only a resource guard on the dialer.
const dialTimeout = 10 * time.Second

// DialOrigin resolves host:port and returns a connected net.Conn to
// the origin, trying each candidate address in the resolver's order
// and returning the first that accepts a connection. It wraps
// net.Dialer, which already performs the "resolve, iterate
// candidates, stop at first success" behavior spec.md 4.E describes
// and already releases every resolution-owned resource on every exit
// path, so no manual address-list bookkeeping is needed here (see
// DESIGN.md for why this is stdlib rather than a third-party dialer).
func DialOrigin(ctx context.Context, host, port string) (net.Conn, error) {
	d := net.Dialer{Timeout: dialTimeout}
	conn, err := d.DialContext(ctx, "tcp", net.JoinHostPort(host, port))
	if err != nil {
		return nil, &dialError{err: err}
	}
	return conn, nil
}

type dialError struct{ err error }

func (e *dialError) Error() string { return proxyerr.ConnectError.Error() + ": " + e.err.Error() }
func (e *dialError) Unwrap() error { return proxyerr.ConnectError }
