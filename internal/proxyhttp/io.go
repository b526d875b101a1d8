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

// Package proxyhttp implements the proxy's per-connection request
// pipeline: line-oriented reads, retrying full writes, absolute-form
// URI parsing, client-to-origin header rewriting, and the upstream
// dialer, tied together by the connection handler in handler.go.
package proxyhttp

import (
	"errors"
	"io"
	"syscall"

	"github.com/proxycache/proxycache/internal/proxyerr"
)

// MaxLine is the hard cap on a single line read by ReadLine: a
// request line or header field, including its terminator.
const MaxLine = 8192

// ReadLine reads from r one byte at a time until it sees '\n' or
// reads MaxLine bytes without one. The returned slice includes the
// terminator when one was found. A byte-at-a-time read keeps the
// implementation simple and correct when r is unbuffered (as the
// client and origin connections are here); callers that need
// throughput wrap r in a *bufio.Reader first.
func ReadLine(r io.Reader) ([]byte, error) {
	line := make([]byte, 0, 256)
	b := make([]byte, 1)
	for {
		n, err := r.Read(b)
		if n == 1 {
			line = append(line, b[0])
			if b[0] == '\n' {
				return line, nil
			}
			if len(line) >= MaxLine {
				return line, proxyerr.LineTooLong
			}
			continue
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				if len(line) > 0 {
					return line, proxyerr.EndOfStream
				}
				return nil, proxyerr.EndOfStream
			}
			return line, &proxyerr.ReadError{Err: err}
		}
	}
}

// WriteFull writes every byte of buf to w, looping over short writes
// and retrying on EINTR, the way a blocking-socket write loop must.
// On any other error it returns a *proxyerr.WriteError reporting how
// many bytes made it out before the failure.
func WriteFull(w io.Writer, buf []byte) error {
	total := 0
	for total < len(buf) {
		n, err := w.Write(buf[total:])
		total += n
		if err != nil {
			if errors.Is(err, syscall.EINTR) {
				continue
			}
			return &proxyerr.WriteError{Err: err, Written: total}
		}
	}
	return nil
}
