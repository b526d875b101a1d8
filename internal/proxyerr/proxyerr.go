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

// Package proxyerr names the per-request and startup error classes the
// proxy distinguishes between, so callers can log and branch on the
// taxonomy instead of matching on formatted strings.
package proxyerr

import "errors"

// Sentinel errors for the per-request I/O taxonomy. Wrap these with
// fmt.Errorf("...: %w", ...) to attach context; callers should compare
// with errors.Is.
var (
	// EndOfStream indicates the peer closed before a terminator or
	// the requested bytes were seen.
	EndOfStream = errors.New("proxyerr: end of stream")

	// LineTooLong indicates MAX_LINE was reached without a line
	// terminator.
	LineTooLong = errors.New("proxyerr: line exceeds maximum length")

	// MalformedRequest indicates a client header block with no
	// terminating blank line, or a request line that does not parse
	// into method/uri/version.
	MalformedRequest = errors.New("proxyerr: malformed request")

	// ConnectError indicates every candidate origin address failed to
	// connect.
	ConnectError = errors.New("proxyerr: could not connect to origin")

	// CacheReject indicates a payload was not admitted to the cache.
	// It is never surfaced to a client; it only gates a log line.
	CacheReject = errors.New("proxyerr: cache rejected payload")
)

// ReadError wraps an underlying I/O error observed while reading from
// a client or origin stream.
type ReadError struct {
	Err error
}

func (e *ReadError) Error() string { return "proxyerr: read failed: " + e.Err.Error() }
func (e *ReadError) Unwrap() error { return e.Err }

// WriteError wraps an underlying I/O error observed while writing to a
// client or origin stream. Written reports how many bytes of the
// requested write actually reached the peer before the error.
type WriteError struct {
	Err     error
	Written int
}

func (e *WriteError) Error() string { return "proxyerr: write failed: " + e.Err.Error() }
func (e *WriteError) Unwrap() error { return e.Err }

// FatalStartup indicates a failure that must terminate the process
// with a non-zero exit code: bad arguments, listener bind/listen
// failure, or cache construction failure.
type FatalStartup struct {
	Err error
}

func (e *FatalStartup) Error() string { return "proxyerr: fatal startup: " + e.Err.Error() }
func (e *FatalStartup) Unwrap() error { return e.Err }

// AcceptFatal indicates an Accept() failure that should terminate the
// acceptor loop, as opposed to a transient error that should be
// logged and retried.
type AcceptFatal struct {
	Err error
}

func (e *AcceptFatal) Error() string { return "proxyerr: fatal accept failure: " + e.Err.Error() }
func (e *AcceptFatal) Unwrap() error { return e.Err }

// Kind classifies err against this taxonomy and returns the member's
// name, for callers that want to log a stable structured field (e.g.
// zap.String("kind", proxyerr.Kind(err))) instead of matching on the
// formatted message. It returns "unknown" for an error that does not
// unwrap to any member here.
func Kind(err error) string {
	var readErr *ReadError
	if errors.As(err, &readErr) {
		return "ReadError"
	}
	var writeErr *WriteError
	if errors.As(err, &writeErr) {
		return "WriteError"
	}
	var fatalStartup *FatalStartup
	if errors.As(err, &fatalStartup) {
		return "FatalStartup"
	}
	var acceptFatal *AcceptFatal
	if errors.As(err, &acceptFatal) {
		return "AcceptFatal"
	}
	switch {
	case errors.Is(err, EndOfStream):
		return "EndOfStream"
	case errors.Is(err, LineTooLong):
		return "LineTooLong"
	case errors.Is(err, MalformedRequest):
		return "MalformedRequest"
	case errors.Is(err, ConnectError):
		return "ConnectError"
	case errors.Is(err, CacheReject):
		return "CacheReject"
	default:
		return "unknown"
	}
}
