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
	"errors"
	"io"
	"net"
	"strings"

	"go.uber.org/zap"

	"github.com/proxycache/proxycache/internal/proxyerr"
	"github.com/proxycache/proxycache/internal/proxylru"
)

// Handler owns the per-connection state machine described in
// spec.md 4.G. It holds no per-connection state itself: each accepted
// connection gets a fresh call to Handle, and the cache and logger it
// closes over are the only things shared across connections.
type Handler struct {
	Cache  *proxylru.Cache
	Logger *zap.Logger
}

// Handle runs one request to completion on client: it reads exactly
// one HTTP/1.0 absolute-form GET, serves it from cache or forwards it
// to the origin, and returns once the response (or the failure that
// cut it short) is done. The caller owns client and is responsible
// for closing it; Handle never does so itself, matching spec.md 4.G's
// "Teardown: close origin; the caller closes the client stream."
func (h *Handler) Handle(ctx context.Context, client net.Conn) {
	log := h.Logger
	if log == nil {
		log = zap.NewNop()
	}

	line, err := ReadLine(client)
	if err != nil {
		log.Debug("dropping connection: request line", zap.String("kind", proxyerr.Kind(err)), zap.Error(err))
		return
	}

	method, uri, _, ok := parseRequestLine(line)
	if !ok {
		log.Debug("dropping connection", zap.String("kind", proxyerr.Kind(proxyerr.MalformedRequest)), zap.Error(proxyerr.MalformedRequest))
		return
	}
	if !strings.EqualFold(method, "GET") {
		log.Debug("dropping connection: unsupported method", zap.String("method", method))
		return
	}

	parsed := ParseURI(uri)

	buf := make([]byte, proxylru.MaxObjectSize)
	if res, n := h.Cache.Lookup(uri, buf); res == proxylru.Hit {
		if werr := WriteFull(client, buf[:n]); werr != nil {
			log.Debug("client write failed on cache hit", zap.String("kind", proxyerr.Kind(werr)), zap.Error(werr))
		} else {
			log.Debug("cache hit", zap.String("uri", uri), zap.Int("bytes", n))
		}
		return
	}

	outgoing, err := RewriteHeaders(client, parsed.Host, parsed.Port, parsed.Path)
	if err != nil {
		log.Debug("dropping connection: header rewrite", zap.String("kind", proxyerr.Kind(err)), zap.Error(err))
		return
	}

	origin, err := DialOrigin(ctx, parsed.Host, parsed.Port)
	if err != nil {
		log.Debug("dropping connection: dial origin",
			zap.String("host", parsed.Host), zap.String("port", parsed.Port),
			zap.String("kind", proxyerr.Kind(err)), zap.Error(err))
		return
	}
	defer origin.Close()

	if err := WriteFull(origin, outgoing); err != nil {
		log.Debug("dropping connection: write to origin", zap.String("kind", proxyerr.Kind(err)), zap.Error(err))
		return
	}

	h.relay(uri, client, origin, log)
}

// relay streams the origin's response to client verbatim, up to
// MaxLine bytes at a time, while opportunistically accumulating the
// bytes seen so far into a local buffer for cache admission. Once the
// buffer has grown past MaxObjectSize it stops growing further (but
// keeps streaming to the client): the buffer handed to Cache.Insert
// below may therefore still be oversize by up to one chunk, which is
// exactly what lets Insert apply its own MaxObjectSize check and
// reject it, rather than this function silently assuming the outcome.
func (h *Handler) relay(uri string, client, origin net.Conn, log *zap.Logger) {
	chunk := make([]byte, MaxLine)
	response := make([]byte, 0, proxylru.MaxObjectSize)
	overflow := false

	for {
		n, err := origin.Read(chunk)
		if n > 0 {
			if werr := WriteFull(client, chunk[:n]); werr != nil {
				log.Debug("dropping connection: write to client", zap.String("kind", proxyerr.Kind(werr)), zap.Error(werr))
				return
			}
			if !overflow {
				response = append(response, chunk[:n]...)
				if len(response) > proxylru.MaxObjectSize {
					overflow = true
				}
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			log.Debug("origin read failed", zap.String("kind", proxyerr.Kind(err)), zap.Error(err))
			return
		}
	}

	if len(response) == 0 {
		return
	}
	if res := h.Cache.Insert(uri, response); res == proxylru.Rejected {
		log.Debug("cache insert rejected",
			zap.String("kind", proxyerr.Kind(proxyerr.CacheReject)),
			zap.String("uri", uri),
			zap.Error(proxyerr.CacheReject))
	}
}

// parseRequestLine splits a request line of shape
// "METHOD URI VERSION\r\n" into its three whitespace-separated
// tokens.
func parseRequestLine(line []byte) (method, uri, version string, ok bool) {
	fields := strings.Fields(string(line))
	if len(fields) != 3 {
		return "", "", "", false
	}
	return fields[0], fields[1], fields[2], true
}
