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

package vapid

import (
	"errors"
	"io"
	"time"

	"github.com/pushkit/webpush-go"
)

// DefaultExpiration is the lifetime of a token when no "exp" claim is
// supplied. Push services reject tokens valid for more than 24 hours.
const DefaultExpiration = 12 * time.Hour

var errBuilderUsed = errors.New("signature builder has already been built")

// Claims holds additional token claims by name. Values must be JSON
// serializable.
type Claims map[string]interface{}

// SignatureBuilder builds the VAPID signature for one subscription. It is
// meant to be built once; create a new builder for every message, for
// example with PartialSignatureBuilder.AddSubInfo.
type SignatureBuilder struct {
	key          *Key
	subscription *webpush.SubscriptionInfo
	claims       Claims
	expiry       time.Time
	built        bool
}

// NewBuilder creates a SignatureBuilder signing with key for subscription.
// The default expiry is fixed at creation.
func NewBuilder(key *Key, subscription *webpush.SubscriptionInfo) *SignatureBuilder {
	return &SignatureBuilder{
		key:          key,
		subscription: subscription,
		claims:       Claims{},
		expiry:       time.Now().Add(DefaultExpiration),
	}
}

// FromPEM creates a SignatureBuilder from a PEM encoded SEC1 or PKCS #8
// private key.
func FromPEM(r io.Reader, subscription *webpush.SubscriptionInfo) (*SignatureBuilder, error) {
	key, err := LoadPEM(r)
	if err != nil {
		return nil, err
	}
	return NewBuilder(key, subscription), nil
}

// FromDER creates a SignatureBuilder from a DER encoded SEC1 private key.
func FromDER(r io.Reader, subscription *webpush.SubscriptionInfo) (*SignatureBuilder, error) {
	key, err := LoadDER(r)
	if err != nil {
		return nil, err
	}
	return NewBuilder(key, subscription), nil
}

// FromBase64 creates a SignatureBuilder from a raw private key encoded with
// unpadded URL-safe base64.
func FromBase64(encoded string, subscription *webpush.SubscriptionInfo) (*SignatureBuilder, error) {
	key, err := LoadBase64(encoded)
	if err != nil {
		return nil, err
	}
	return NewBuilder(key, subscription), nil
}

// AddClaim sets a token claim. A claim named "aud", "exp" or "sub" replaces
// the default value.
func (b *SignatureBuilder) AddClaim(name string, value interface{}) *SignatureBuilder {
	b.claims[name] = value
	return b
}

// AddClaims sets every claim in claims.
func (b *SignatureBuilder) AddClaims(claims Claims) *SignatureBuilder {
	for name, value := range claims {
		b.claims[name] = value
	}
	return b
}

// Build signs the claims and returns the signature. The subscription
// endpoint must be an absolute URI.
func (b *SignatureBuilder) Build() (*webpush.VapidSignature, error) {
	if b.built {
		return nil, errBuilderUsed
	}
	if b.subscription == nil {
		return nil, errors.New("nil subscription")
	}
	endpoint, err := webpush.ParseEndpoint(b.subscription.Endpoint)
	if err != nil {
		return nil, err
	}
	b.built = true
	return Sign(b.key, endpoint, b.claims, b.expiry)
}

// PartialSignatureBuilder holds a loaded key without a subscription. Use
// one PartialSignatureBuilder for many subscriptions to avoid decoding the
// key for every message.
type PartialSignatureBuilder struct {
	key *Key
}

// NewPartialBuilder creates a PartialSignatureBuilder signing with key.
func NewPartialBuilder(key *Key) PartialSignatureBuilder {
	return PartialSignatureBuilder{key: key}
}

// FromPEMNoSub is FromPEM without a subscription.
func FromPEMNoSub(r io.Reader) (PartialSignatureBuilder, error) {
	key, err := LoadPEM(r)
	if err != nil {
		return PartialSignatureBuilder{}, err
	}
	return NewPartialBuilder(key), nil
}

// FromDERNoSub is FromDER without a subscription.
func FromDERNoSub(r io.Reader) (PartialSignatureBuilder, error) {
	key, err := LoadDER(r)
	if err != nil {
		return PartialSignatureBuilder{}, err
	}
	return NewPartialBuilder(key), nil
}

// FromBase64NoSub is FromBase64 without a subscription.
func FromBase64NoSub(encoded string) (PartialSignatureBuilder, error) {
	key, err := LoadBase64(encoded)
	if err != nil {
		return PartialSignatureBuilder{}, err
	}
	return NewPartialBuilder(key), nil
}

// AddSubInfo returns a new SignatureBuilder for subscription with default
// claims.
func (p PartialSignatureBuilder) AddSubInfo(subscription *webpush.SubscriptionInfo) *SignatureBuilder {
	return NewBuilder(p.key, subscription)
}

// PublicKey returns the uncompressed public key of the signing key, or nil
// for a zero PartialSignatureBuilder.
func (p PartialSignatureBuilder) PublicKey() []byte {
	if p.key == nil {
		return nil
	}
	return p.key.PublicKey()
}
