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

package webpush

import (
	"errors"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// maxRetryAfterSeconds is the largest delay a time.Duration can hold, in
// seconds. Longer delays are clamped to it.
const maxRetryAfterSeconds = uint64(math.MaxInt64 / int64(time.Second))

// RetryAfter is a parsed Retry-After header value. Exactly one of Delay and
// Date is meaningful: Date is zero when the header carried a delay in
// seconds.
type RetryAfter struct {
	Delay time.Duration
	Date  time.Time
}

// ParseRetryAfter parses a Retry-After header value given either as a
// non-negative number of seconds or as an HTTP-date.
// Reference: RFC 9110 10.2.3 Retry-After.
func ParseRetryAfter(value string) (*RetryAfter, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, false
	}
	if seconds, err := strconv.ParseUint(value, 10, 64); err == nil || isRangeError(err) {
		if seconds > maxRetryAfterSeconds {
			seconds = maxRetryAfterSeconds
		}
		return &RetryAfter{Delay: time.Duration(seconds) * time.Second}, true
	}
	if date, err := http.ParseTime(value); err == nil {
		return &RetryAfter{Date: date}, true
	}
	return nil, false
}

// IsDate reports whether the hint is an absolute point in time.
func (r *RetryAfter) IsDate() bool {
	return !r.Date.IsZero()
}

// Duration returns how long to wait from now. A date in the past yields 0.
func (r *RetryAfter) Duration(now time.Time) time.Duration {
	if !r.IsDate() {
		return r.Delay
	}
	if d := r.Date.Sub(now); d > 0 {
		return d
	}
	return 0
}

func (r *RetryAfter) String() string {
	if r.IsDate() {
		return r.Date.UTC().Format(http.TimeFormat)
	}
	return r.Delay.String()
}

func isRangeError(err error) bool {
	var numErr *strconv.NumError
	return errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange)
}
