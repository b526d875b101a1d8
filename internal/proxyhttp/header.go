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
	"bytes"
	"errors"
	"io"
	"strings"

	"github.com/proxycache/proxycache/internal/proxyerr"
)

// UserAgent is the fixed override the proxy sends upstream in place
// of whatever the client sent, matching spec.md 4.D: tests only need
// it to be present and deterministic.
const UserAgent = "User-Agent: proxycache/1.0\r\n"

// ignoredFields are header names the rewriter drops from the client's
// block because it synthesizes or overrides them itself. Comparison
// is case-insensitive and colon-terminated (not a bare string
// prefix), per spec.md 9's note on the original "Host:" prefix bug.
var ignoredFields = []string{"host", "user-agent", "connection", "proxy-connection"}

// RewriteHeaders reads the client's header block (every line up to
// and including the terminating "\r\n") from r and returns the
// origin-bound header block described in spec.md 4.D: a GET request
// line, a Host field (echoed or synthesized), the fixed User-Agent,
// every pass-through field in the client's original order, and the
// two trailing Connection overrides.
//
// It returns proxyerr.MalformedRequest if the client's stream ends
// before the terminating blank line (ReadLine's EndOfStream is
// translated into it). The other ReadLine errors, LineTooLong and
// *proxyerr.ReadError, are propagated unchanged.
func RewriteHeaders(r io.Reader, host, port, path string) ([]byte, error) {
	var passthrough strings.Builder
	var hostLine []byte

	for {
		line, err := ReadLine(r)
		if err != nil {
			if errors.Is(err, proxyerr.EndOfStream) {
				return nil, proxyerr.MalformedRequest
			}
			return nil, err
		}
		if isBlankLine(line) {
			break
		}
		name, ok := fieldName(line)
		if !ok {
			// Not a well-formed "Name: value" field; the spec only
			// asks us to classify known names, so an unrecognized
			// line is passed through verbatim rather than rejected.
			passthrough.Write(line)
			continue
		}
		if isIgnoredField(name) {
			if strings.EqualFold(name, "host") {
				hostLine = line
			}
			continue
		}
		passthrough.Write(line)
	}

	var out strings.Builder
	out.WriteString("GET ")
	out.WriteString(path)
	out.WriteString(" HTTP/1.0\r\n")

	if hostLine != nil {
		out.Write(hostLine)
	} else {
		out.WriteString("Host: ")
		out.WriteString(host)
		out.WriteString(":")
		out.WriteString(port)
		out.WriteString("\r\n")
	}

	out.WriteString(UserAgent)
	out.WriteString(passthrough.String())
	out.WriteString("Connection: close\r\n")
	out.WriteString("Proxy-Connection: close\r\n")
	out.WriteString("\r\n")

	return []byte(out.String()), nil
}

// isBlankLine reports whether line is exactly the header-block
// terminator "\r\n" (or a bare "\n", tolerating a client that skips
// the carriage return).
func isBlankLine(line []byte) bool {
	return string(line) == "\r\n" || string(line) == "\n"
}

// fieldName extracts the field name from a "Name: value\r\n" line,
// using a colon-terminated comparison rather than a fixed-length
// prefix so a field like "Hostage: x" is never mistaken for "Host".
func fieldName(line []byte) (string, bool) {
	idx := bytes.IndexByte(line, ':')
	if idx == -1 {
		return "", false
	}
	return string(line[:idx]), true
}

func isIgnoredField(name string) bool {
	for _, f := range ignoredFields {
		if strings.EqualFold(name, f) {
			return true
		}
	}
	return false
}
