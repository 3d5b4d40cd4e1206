// Copyright The webpush-go Authors.
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package io provides a LimitedWriter that refuses writes past a byte limit.
package io

import (
	"errors"
	"io"
)

// ErrLimitExceeded is returned when a write would exceed the limit.
var ErrLimitExceeded = errors.New("write limit exceeded")

// LimitedWriter writes to an underlying writer until N bytes remain
// unclaimed. A write that does not fit is rejected as a whole and nothing of
// it reaches W.
type LimitedWriter struct {
	W io.Writer // underlying writer
	N int64     // remaining bytes
}

// LimitWriter returns a LimitedWriter that accepts at most limit bytes in
// total.
func LimitWriter(w io.Writer, limit int64) *LimitedWriter {
	return &LimitedWriter{W: w, N: limit}
}

// Write writes p to the underlying writer, or returns ErrLimitExceeded
// without writing if len(p) exceeds the remaining budget.
func (l *LimitedWriter) Write(p []byte) (int, error) {
	if int64(len(p)) > l.N {
		l.N = -1
		return 0, ErrLimitExceeded
	}
	n, err := l.W.Write(p)
	l.N -= int64(n)
	return n, err
}

// Exceeded reports whether a write has been rejected.
func (l *LimitedWriter) Exceeded() bool {
	return l.N < 0
}
