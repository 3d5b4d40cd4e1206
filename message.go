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
	"net/url"
)

const (
	// DefaultTTL is the time to live applied when none is set: four weeks,
	// the longest period push services commonly retain messages.
	DefaultTTL uint32 = 2419200

	// MaxPayloadSize is the largest encrypted payload push services are
	// required to accept.
	// Reference: RFC 8030 7.2 Push Message Size.
	MaxPayloadSize = 4096

	maxTopicLength = 32
)

// Urgency is the value of the Urgency header.
// Reference: RFC 8030 5.3 Push Message Urgency.
type Urgency string

// Urgency levels.
const (
	UrgencyVeryLow Urgency = "very-low"
	UrgencyLow     Urgency = "low"
	UrgencyNormal  Urgency = "normal"
	UrgencyHigh    Urgency = "high"
)

// ContentEncoding is the encryption scheme of a payload.
type ContentEncoding string

// Supported content encodings.
const (
	// ContentEncodingAES128GCM is the RFC 8188 encoding used by RFC 8291.
	ContentEncodingAES128GCM ContentEncoding = "aes128gcm"

	// ContentEncodingAESGCM is the legacy draft encoding. Its key material
	// travels in the Encryption and Crypto-Key headers.
	ContentEncodingAESGCM ContentEncoding = "aesgcm"
)

// Payload is an encrypted notification body. Content is sent as-is.
type Payload struct {
	Content         []byte
	ContentEncoding ContentEncoding

	// CryptoHeaders carries the Encryption and Crypto-Key headers required by
	// ContentEncodingAESGCM. It is ignored for other encodings.
	CryptoHeaders map[string]string
}

// Message is a notification ready to be sent by a Client.
type Message struct {
	Endpoint       *url.URL
	TTL            uint32
	Urgency        Urgency
	Topic          string
	Payload        *Payload
	VapidSignature *VapidSignature
}

// MessageBuilder assembles a Message for one subscription.
type MessageBuilder struct {
	subscription *SubscriptionInfo
	ttl          uint32
	urgency      Urgency
	topic        string
	payload      *Payload
	signature    *VapidSignature
}

// NewMessageBuilder creates a MessageBuilder for the given subscription.
func NewMessageBuilder(subscription *SubscriptionInfo) *MessageBuilder {
	return &MessageBuilder{
		subscription: subscription,
		ttl:          DefaultTTL,
	}
}

// SetTTL sets how many seconds the push service retains an undelivered
// message.
func (b *MessageBuilder) SetTTL(ttl uint32) *MessageBuilder {
	b.ttl = ttl
	return b
}

// SetUrgency sets the Urgency header.
func (b *MessageBuilder) SetUrgency(urgency Urgency) *MessageBuilder {
	b.urgency = urgency
	return b
}

// SetTopic sets the Topic header. A pending message with the same topic is
// replaced by this one.
func (b *MessageBuilder) SetTopic(topic string) *MessageBuilder {
	b.topic = topic
	return b
}

// SetVapidSignature attaches the VAPID authorization.
func (b *MessageBuilder) SetVapidSignature(signature *VapidSignature) *MessageBuilder {
	b.signature = signature
	return b
}

// SetPayload sets the encrypted content.
func (b *MessageBuilder) SetPayload(encoding ContentEncoding, content []byte) *MessageBuilder {
	if b.payload == nil {
		b.payload = &Payload{}
	}
	b.payload.ContentEncoding = encoding
	b.payload.Content = content
	return b
}

// SetCryptoHeaders sets the Encryption and Crypto-Key headers produced by
// aesgcm encryption.
func (b *MessageBuilder) SetCryptoHeaders(headers map[string]string) *MessageBuilder {
	if b.payload == nil {
		b.payload = &Payload{ContentEncoding: ContentEncodingAESGCM}
	}
	b.payload.CryptoHeaders = headers
	return b
}

// Build validates the settings and returns the Message.
func (b *MessageBuilder) Build() (*Message, error) {
	if b.subscription == nil {
		return nil, errors.New("nil subscription")
	}
	endpoint, err := ParseEndpoint(b.subscription.Endpoint)
	if err != nil {
		return nil, err
	}
	if b.topic != "" && !validTopic(b.topic) {
		return nil, InvalidTopicError{Topic: b.topic}
	}
	if b.payload != nil && len(b.payload.Content) > MaxPayloadSize {
		return nil, PayloadTooLargeError{Size: len(b.payload.Content)}
	}
	return &Message{
		Endpoint:       endpoint,
		TTL:            b.ttl,
		Urgency:        b.urgency,
		Topic:          b.topic,
		Payload:        b.payload,
		VapidSignature: b.signature,
	}, nil
}

// ParseEndpoint parses a subscription endpoint, which must be an absolute
// URI with a host.
func ParseEndpoint(endpoint string) (*url.URL, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, InvalidURIError{URI: endpoint, Err: err}
	}
	if !u.IsAbs() || u.Host == "" {
		return nil, InvalidURIError{URI: endpoint}
	}
	return u, nil
}

func validTopic(topic string) bool {
	if len(topic) > maxTopicLength {
		return false
	}
	for _, c := range topic {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '-', c == '_':
		default:
			return false
		}
	}
	return true
}
