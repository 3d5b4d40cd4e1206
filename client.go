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

// Package webpush sends Web Push notifications authenticated with VAPID.
//
// A notification is prepared with a MessageBuilder, signed with a token from
// the vapid package, and delivered by a Client:
//
//	builder, err := vapid.FromBase64(privateKey, subscription)
//	sig, err := builder.Build()
//	msg, err := webpush.NewMessageBuilder(subscription).
//		SetPayload(webpush.ContentEncodingAES128GCM, ciphertext).
//		SetVapidSignature(sig).
//		Build()
//	err = webpush.NewClient(nil).Send(ctx, msg)
package webpush

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"

	iox "github.com/pushkit/webpush-go/internal/io"
	"github.com/pushkit/webpush-go/log"
)

// MaxResponseSize is the largest response body a Client reads from a push
// service. Larger responses fail with ResponseTooLargeError.
const MaxResponseSize = 64 * 1024 // 64 KiB

// readChunkSize is the size of each read from the response body.
const readChunkSize = 4 * 1024

// Sender delivers push messages.
type Sender interface {
	// Send delivers msg and returns nil once the push service accepted it.
	Send(ctx context.Context, msg *Message) error
}

// Client sends push messages over HTTP. It is safe for concurrent use and
// holds no state besides the transport, so it should be created once and
// shared.
//
// Client applies no timeout. Cancel ctx to abandon a send.
type Client struct {
	rt            http.RoundTripper
	buildRequest  RequestBuilderFunc
	parseResponse ResponseParserFunc
}

// NewClient creates a Client sending over rt.
// http.DefaultTransport is used if nil RoundTripper is passed.
func NewClient(rt http.RoundTripper) *Client {
	return NewClientWithCodec(rt, nil, nil)
}

// NewClientWithCodec creates a Client that uses build to create requests and
// parse to classify responses. Nil functions default to BuildRequest and
// ParseResponse.
func NewClientWithCodec(rt http.RoundTripper, build RequestBuilderFunc, parse ResponseParserFunc) *Client {
	if rt == nil {
		rt = http.DefaultTransport
	}
	if build == nil {
		build = BuildRequest
	}
	if parse == nil {
		parse = ParseResponse
	}
	return &Client{
		rt:            rt,
		buildRequest:  build,
		parseResponse: parse,
	}
}

// Send delivers msg to its endpoint.
//
// A ServerError returned by the response parser without a retry hint is
// completed with the hint from the Retry-After response header, if any. The
// parser may return ServerError or *ServerError, bare or wrapped; errors.As
// yields the completed ServerError in every case. Send never retries.
func (c *Client) Send(ctx context.Context, msg *Message) error {
	logger := log.GetLogger(ctx)

	req, err := c.buildRequest(ctx, msg)
	if err != nil {
		return err
	}
	logger.Debugf("Sending push message to %s (ttl=%s)", req.URL.Host, req.Header.Get("TTL"))

	resp, err := c.rt.RoundTrip(req)
	if err != nil {
		logger.Debugf("Push request to %s failed: %v", req.URL.Host, err)
		return TransportError{Err: err}
	}
	defer resp.Body.Close()
	logger.Debugf("Push service %s responded %s", req.URL.Host, resp.Status)

	retryAfter, _ := ParseRetryAfter(resp.Header.Get("Retry-After"))

	body, err := readBody(resp.Body)
	if err != nil {
		logger.Warnf("Discarding response from %s: %v", req.URL.Host, err)
		return err
	}

	return withRetryAfter(c.parseResponse(resp.StatusCode, body), retryAfter)
}

// withRetryAfter completes the ServerError in err's chain with hint unless
// it already carries one. A bare ServerError value is returned as the
// completed value; any other form is wrapped so that its message and chain
// are kept.
func withRetryAfter(err error, hint *RetryAfter) error {
	if err == nil || hint == nil {
		return err
	}
	if serverErr, ok := err.(ServerError); ok {
		if serverErr.RetryAfter == nil {
			serverErr.RetryAfter = hint
		}
		return serverErr
	}

	var serverErr ServerError
	var serverErrPtr *ServerError
	switch {
	case errors.As(err, &serverErr):
	case errors.As(err, &serverErrPtr) && serverErrPtr != nil:
		serverErr = *serverErrPtr
	default:
		return err
	}
	if serverErr.RetryAfter != nil {
		return err
	}
	serverErr.RetryAfter = hint
	return hintedServerError{err: err, server: serverErr}
}

// hintedServerError keeps the parser's error while exposing the ServerError
// completed with the Retry-After hint to errors.As.
type hintedServerError struct {
	err    error
	server ServerError
}

func (e hintedServerError) Error() string {
	return e.err.Error() + ", retry after " + e.server.RetryAfter.String()
}

func (e hintedServerError) Unwrap() error {
	return e.err
}

func (e hintedServerError) As(target interface{}) bool {
	switch t := target.(type) {
	case *ServerError:
		*t = e.server
		return true
	case **ServerError:
		server := e.server
		*t = &server
		return true
	}
	return false
}

// readBody reads r chunk by chunk and stops as soon as the total exceeds
// MaxResponseSize.
func readBody(r io.Reader) ([]byte, error) {
	var buf bytes.Buffer
	w := iox.LimitWriter(&buf, MaxResponseSize)
	chunk := make([]byte, readChunkSize)
	for {
		n, err := r.Read(chunk)
		if n > 0 {
			if _, werr := w.Write(chunk[:n]); werr != nil {
				if w.Exceeded() {
					return nil, ResponseTooLargeError{Limit: MaxResponseSize}
				}
				return nil, TransportError{Err: werr}
			}
		}
		if err == io.EOF {
			return buf.Bytes(), nil
		}
		if err != nil {
			return nil, TransportError{Err: err}
		}
	}
}
