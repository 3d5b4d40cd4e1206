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
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

// RequestBuilderFunc turns a Message into an HTTP request.
type RequestBuilderFunc func(ctx context.Context, msg *Message) (*http.Request, error)

// ResponseParserFunc classifies a push service response. It returns nil on
// success.
type ResponseParserFunc func(status int, body []byte) error

// BuildRequest creates the POST request delivering msg to its endpoint.
// Reference: RFC 8030 5 Requesting Push Message Delivery.
func BuildRequest(ctx context.Context, msg *Message) (*http.Request, error) {
	if msg == nil || msg.Endpoint == nil {
		return nil, errors.New("message has no endpoint")
	}
	var content []byte
	if msg.Payload != nil {
		content = msg.Payload.Content
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, msg.Endpoint.String(), bytes.NewReader(content))
	if err != nil {
		return nil, err
	}
	req.Header.Set("TTL", strconv.FormatUint(uint64(msg.TTL), 10))
	if msg.Urgency != "" {
		req.Header.Set("Urgency", string(msg.Urgency))
	}
	if msg.Topic != "" {
		req.Header.Set("Topic", msg.Topic)
	}

	encoding := ContentEncodingAES128GCM
	if msg.Payload != nil {
		encoding = msg.Payload.ContentEncoding
		req.Header.Set("Content-Encoding", string(encoding))
		req.Header.Set("Content-Type", "application/octet-stream")
		if encoding == ContentEncodingAESGCM {
			for name, value := range msg.Payload.CryptoHeaders {
				req.Header.Set(name, value)
			}
		}
	}

	if sig := msg.VapidSignature; sig != nil {
		key := base64.RawURLEncoding.EncodeToString(sig.PublicKey)
		switch encoding {
		case ContentEncodingAESGCM:
			// Reference: draft-ietf-webpush-vapid-01 4 Using VAPID with WebPush.
			req.Header.Set("Authorization", "WebPush "+sig.Token)
			cryptoKey := "p256ecdsa=" + key
			if existing := req.Header.Get("Crypto-Key"); existing != "" {
				cryptoKey = existing + ";" + cryptoKey
			}
			req.Header.Set("Crypto-Key", cryptoKey)
		default:
			// Reference: RFC 8292 3 VAPID Authentication Scheme.
			req.Header.Set("Authorization", fmt.Sprintf("vapid t=%s, k=%s", sig.Token, key))
		}
	}
	return req, nil
}

// ParseResponse maps a push service response status to an error kind.
func ParseResponse(status int, body []byte) error {
	if status >= 200 && status < 300 {
		return nil
	}
	info := parseErrorInfo(status, body)
	switch {
	case status == http.StatusBadRequest:
		return BadRequestError{Info: info}
	case status == http.StatusUnauthorized, status == http.StatusForbidden:
		return UnauthorizedError{Info: info}
	case status == http.StatusNotFound:
		return EndpointNotFoundError{Info: info}
	case status == http.StatusGone:
		return EndpointNotValidError{Info: info}
	case status == http.StatusRequestEntityTooLarge:
		return PayloadTooLargeError{}
	case status >= 500 && status < 600:
		return ServerError{Info: info}
	}
	return UnspecifiedError{Info: info}
}

// parseErrorInfo decodes the error description some push services return as
// JSON, falling back to the status and raw body text.
func parseErrorInfo(status int, body []byte) ErrorInfo {
	var info ErrorInfo
	if err := json.Unmarshal(body, &info); err == nil && (info.Error != "" || info.Message != "") {
		if info.Code == 0 {
			info.Code = status
		}
		return info
	}
	return ErrorInfo{
		Code:    status,
		Errno:   999,
		Error:   strings.ToLower(http.StatusText(status)),
		Message: strings.TrimSpace(string(body)),
	}
}
