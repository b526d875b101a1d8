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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseURIExplicitPort(t *testing.T) {
	p := ParseURI("http://example.com:8081/a/b?c=d")
	assert.Equal(t, "example.com", p.Host)
	assert.Equal(t, "8081", p.Port)
	assert.Equal(t, "/a/b?c=d", p.Path)
}

func TestParseURIDefaultPort(t *testing.T) {
	p := ParseURI("http://example.com/a")
	assert.Equal(t, "example.com", p.Host)
	assert.Equal(t, DefaultPort, p.Port)
	assert.Equal(t, "/a", p.Path)
}

func TestParseURIDefaultPath(t *testing.T) {
	p := ParseURI("http://example.com")
	assert.Equal(t, "example.com", p.Host)
	assert.Equal(t, "/", p.Path)
}

func TestParseURIDefaultPathWithPort(t *testing.T) {
	p := ParseURI("http://example.com:81")
	assert.Equal(t, "example.com", p.Host)
	assert.Equal(t, "81", p.Port)
	assert.Equal(t, "/", p.Path)
}
