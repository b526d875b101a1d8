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

// The _unix.go suffix alone would not restrict this file to
// Unix-like systems: Go's implicit filename matching only recognizes
// individual GOOS names, not the "unix" group, so the constraint
// below has to be spelled out explicitly.
//go:build unix

package main

import (
	"fmt"
	"net"
	"os"
	"strconv"

	"golang.org/x/sys/unix"
)

// listenTCP binds a passive TCP socket on all interfaces, port
// "port", with SO_REUSEADDR set and the listen backlog fixed at
// listenBacklog, matching spec.md section 6 exactly. net.Listen alone
// does not expose backlog control, so the socket is built by hand
// with the unix package the way this repository's teacher configures
// its own listeners' socket options (see listen_unix.go in the
// grounding pack).
func listenTCP(port string) (net.Listener, error) {
	portNum, err := strconv.Atoi(port)
	if err != nil || portNum < 0 || portNum > 65535 {
		return nil, fmt.Errorf("invalid port %q", port)
	}

	fd, err := unix.Socket(unix.AF_INET, unix.SOCK_STREAM, unix.IPPROTO_TCP)
	if err != nil {
		return nil, fmt.Errorf("socket: %w", err)
	}

	if err := unix.SetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_REUSEADDR, 1); err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("setsockopt SO_REUSEADDR: %w", err)
	}

	addr := unix.SockaddrInet4{Port: portNum}
	if err := unix.Bind(fd, &addr); err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("bind: %w", err)
	}

	if err := unix.Listen(fd, listenBacklog); err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("listen: %w", err)
	}

	f := os.NewFile(uintptr(fd), "proxycached-listener")
	ln, err := net.FileListener(f)
	// net.FileListener dup()s the descriptor internally, so the
	// original must be closed on every exit path, success included.
	f.Close()
	if err != nil {
		return nil, fmt.Errorf("FileListener: %w", err)
	}
	return ln, nil
}
