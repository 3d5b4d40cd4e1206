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
	"net/http"
	"testing"
	"time"
)

func TestParseRetryAfter(t *testing.T) {
	date := time.Date(2015, time.October, 21, 7, 28, 0, 0, time.UTC)
	tests := []struct {
		value string
		want  *RetryAfter
	}{
		{value: "120", want: &RetryAfter{Delay: 120 * time.Second}},
		{value: " 0 ", want: &RetryAfter{}},
		{value: "Wed, 21 Oct 2015 07:28:00 GMT", want: &RetryAfter{Date: date}},
		{value: "Wednesday, 21-Oct-15 07:28:00 GMT", want: &RetryAfter{Date: date}},
		{value: "Wed Oct 21 07:28:00 2015", want: &RetryAfter{Date: date}},
		{value: ""},
		{value: "-5"},
		{value: "1.5"},
		{value: "soon"},
		{value: "4294967296", want: &RetryAfter{Delay: 4294967296 * time.Second}},
		{value: "9223372036", want: &RetryAfter{Delay: 9223372036 * time.Second}},
		{value: "99999999999", want: &RetryAfter{Delay: time.Duration(maxRetryAfterSeconds) * time.Second}},
		{value: "99999999999999999999999", want: &RetryAfter{Delay: time.Duration(maxRetryAfterSeconds) * time.Second}},
	}
	for _, tt := range tests {
		got, ok := ParseRetryAfter(tt.value)
		if tt.want == nil {
			if ok || got != nil {
				t.Errorf("ParseRetryAfter(%q) = %v, %v, want nil, false", tt.value, got, ok)
			}
			continue
		}
		if !ok || got == nil {
			t.Errorf("ParseRetryAfter(%q) = %v, %v, want %v", tt.value, got, ok, tt.want)
			continue
		}
		if got.Delay != tt.want.Delay || !got.Date.Equal(tt.want.Date) {
			t.Errorf("ParseRetryAfter(%q) = %+v, want %+v", tt.value, got, tt.want)
		}
	}
}

func TestRetryAfterDuration(t *testing.T) {
	now := time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		name string
		hint *RetryAfter
		want time.Duration
	}{
		{"delay", &RetryAfter{Delay: 90 * time.Second}, 90 * time.Second},
		{"future date", &RetryAfter{Date: now.Add(time.Minute)}, time.Minute},
		{"past date", &RetryAfter{Date: now.Add(-time.Minute)}, 0},
	}
	for _, tt := range tests {
		if got := tt.hint.Duration(now); got != tt.want {
			t.Errorf("%s: Duration() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestRetryAfterString(t *testing.T) {
	if got := (&RetryAfter{Delay: 2 * time.Minute}).String(); got != "2m0s" {
		t.Errorf("String() = %q, want 2m0s", got)
	}
	date := time.Date(2015, time.October, 21, 7, 28, 0, 0, time.UTC)
	if got := (&RetryAfter{Date: date}).String(); got != date.Format(http.TimeFormat) {
		t.Errorf("String() = %q, want %q", got, date.Format(http.TimeFormat))
	}
}
