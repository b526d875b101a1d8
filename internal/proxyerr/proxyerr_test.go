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

package proxyerr

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWriteErrorReportsBytesWritten(t *testing.T) {
	underlying := errors.New("connection reset")
	err := &WriteError{Err: underlying, Written: 42}
	assert.ErrorIs(t, err, underlying)
	assert.Equal(t, 42, err.Written)
}

func TestReadErrorUnwraps(t *testing.T) {
	underlying := errors.New("broken pipe")
	err := &ReadError{Err: underlying}
	assert.ErrorIs(t, err, underlying)
}

func TestFatalStartupUnwraps(t *testing.T) {
	underlying := errors.New("bind: address already in use")
	err := &FatalStartup{Err: underlying}
	assert.ErrorIs(t, err, underlying)
}

func TestAcceptFatalUnwraps(t *testing.T) {
	underlying := errors.New("too many open files")
	err := &AcceptFatal{Err: underlying}
	assert.ErrorIs(t, err, underlying)
}

func TestKindClassifiesEachTaxonomyMember(t *testing.T) {
	assert.Equal(t, "ReadError", Kind(&ReadError{Err: errors.New("x")}))
	assert.Equal(t, "WriteError", Kind(&WriteError{Err: errors.New("x")}))
	assert.Equal(t, "FatalStartup", Kind(&FatalStartup{Err: errors.New("x")}))
	assert.Equal(t, "AcceptFatal", Kind(&AcceptFatal{Err: errors.New("x")}))
	assert.Equal(t, "EndOfStream", Kind(EndOfStream))
	assert.Equal(t, "LineTooLong", Kind(LineTooLong))
	assert.Equal(t, "MalformedRequest", Kind(MalformedRequest))
	assert.Equal(t, "ConnectError", Kind(ConnectError))
	assert.Equal(t, "CacheReject", Kind(CacheReject))
	assert.Equal(t, "unknown", Kind(errors.New("unclassified")))
}
