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

import "strings"

// DefaultPort is used when an absolute-form URI's authority carries
// no explicit port.
const DefaultPort = "80"

// ParsedURI is the host/port/path split of an absolute-form request
// URI, e.g. "http://host:port/path".
type ParsedURI struct {
	Host string
	Port string
	Path string
}

// ParseURI splits an absolute-form HTTP URI of shape
// "http://host[:port]/path..." into host, port, and path, applying
// port 80 and path "/" as defaults. It does not validate the host or
// port beyond splitting on the first colon and first slash; the
// dialer is responsible for rejecting addresses it cannot resolve.
//
// Deliberately no TLS scheme, no userinfo, no query-string handling:
// all out of scope per this proxy's GET-only, HTTP/1.0-only contract.
func ParseURI(uri string) ParsedURI {
	rest := uri
	if idx := strings.Index(rest, "//"); idx != -1 {
		rest = rest[idx+2:]
	}

	authority := rest
	path := "/"
	if idx := strings.IndexByte(rest, '/'); idx != -1 {
		authority = rest[:idx]
		path = rest[idx:]
	}

	host := authority
	port := DefaultPort
	if idx := strings.IndexByte(authority, ':'); idx != -1 {
		host = authority[:idx]
		port = authority[idx+1:]
	}

	return ParsedURI{Host: host, Port: port, Path: path}
}
