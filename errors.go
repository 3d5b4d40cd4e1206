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
	"fmt"
	"strconv"
)

// ErrorInfo is the error description returned by a push service in the body
// of a failed response.
type ErrorInfo struct {
	Code    int    `json:"code"`
	Errno   int    `json:"errno"`
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (i ErrorInfo) String() string {
	if i.Message != "" {
		return fmt.Sprintf("%d %s: %s", i.Code, i.Error, i.Message)
	}
	return strconv.Itoa(i.Code) + " " + i.Error
}

// InvalidCryptoKeysError is used when private key material cannot be decoded
// into a valid P-256 key.
type InvalidCryptoKeysError struct {
	Msg string
}

func (e InvalidCryptoKeysError) Error() string {
	if e.Msg != "" {
		return "invalid crypto keys: " + e.Msg
	}
	return "invalid crypto keys"
}

// MissingCryptoKeysError is used when no recognized private key block is
// present in the key material.
type MissingCryptoKeysError struct{}

func (e MissingCryptoKeysError) Error() string {
	return "missing crypto keys: no EC PRIVATE KEY or PRIVATE KEY block found"
}

// InvalidURIError is used when a subscription endpoint is not an absolute URI.
type InvalidURIError struct {
	URI string
	Err error
}

func (e InvalidURIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid endpoint uri %q: %v", e.URI, e.Err)
	}
	return fmt.Sprintf("invalid endpoint uri %q", e.URI)
}

func (e InvalidURIError) Unwrap() error {
	return e.Err
}

// InvalidTopicError is used when the Topic header value is too long or
// contains characters outside the URL-safe base64 alphabet.
type InvalidTopicError struct {
	Topic string
}

func (e InvalidTopicError) Error() string {
	return fmt.Sprintf("invalid topic %q: at most %d URL-safe base64 characters are allowed", e.Topic, maxTopicLength)
}

// ResponseTooLargeError is used when the push service response body exceeds
// Limit bytes.
type ResponseTooLargeError struct {
	Limit int64
}

func (e ResponseTooLargeError) Error() string {
	return fmt.Sprintf("response body exceeds the limit of %d bytes", e.Limit)
}

// ServerError is used when the push service reports a failure that may
// succeed on retry. RetryAfter is nil if the service gave no hint.
type ServerError struct {
	RetryAfter *RetryAfter
	Info       ErrorInfo
}

func (e ServerError) Error() string {
	if e.RetryAfter != nil {
		return fmt.Sprintf("push service error %s, retry after %s", e.Info, e.RetryAfter)
	}
	return "push service error " + e.Info.String()
}

// TransportError is used when the request could not be delivered or the
// response could not be read.
type TransportError struct {
	Err error
}

func (e TransportError) Error() string {
	return "push request failed: " + e.Err.Error()
}

func (e TransportError) Unwrap() error {
	return e.Err
}

// BadRequestError is used when the push service rejected the request as
// malformed.
type BadRequestError struct {
	Info ErrorInfo
}

func (e BadRequestError) Error() string {
	return "bad request: " + e.Info.String()
}

// UnauthorizedError is used when the push service rejected the VAPID
// authorization.
type UnauthorizedError struct {
	Info ErrorInfo
}

func (e UnauthorizedError) Error() string {
	return "unauthorized: " + e.Info.String()
}

// EndpointNotFoundError is used when the subscription endpoint does not
// exist.
type EndpointNotFoundError struct {
	Info ErrorInfo
}

func (e EndpointNotFoundError) Error() string {
	return "endpoint not found: " + e.Info.String()
}

// EndpointNotValidError is used when the subscription has expired or was
// removed by the user agent. The subscription should not be used again.
type EndpointNotValidError struct {
	Info ErrorInfo
}

func (e EndpointNotValidError) Error() string {
	return "endpoint no longer valid: " + e.Info.String()
}

// PayloadTooLargeError is used when the payload exceeds what push services
// accept, either locally or as reported by the service.
type PayloadTooLargeError struct {
	Size int
}

func (e PayloadTooLargeError) Error() string {
	if e.Size > 0 {
		return fmt.Sprintf("payload of %d bytes is too large, the maximum is %d bytes", e.Size, MaxPayloadSize)
	}
	return "payload too large"
}

// UnspecifiedError is used for responses that match no other error kind.
type UnspecifiedError struct {
	Info ErrorInfo
}

func (e UnspecifiedError) Error() string {
	return "unexpected push service response: " + e.Info.String()
}
