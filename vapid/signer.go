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

// Package vapid creates VAPID tokens identifying an application server to
// push services.
// Reference: RFC 8292 Voluntary Application Server Identification (VAPID)
// for Web Push.
package vapid

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/pushkit/webpush-go"
)

// DefaultSubject is the "sub" claim used when none is supplied. Push
// services use it to contact the sender, so callers should set their own.
const DefaultSubject = "mailto:example@example.com"

// Sign creates a token for endpoint. The "aud", "exp" and "sub" claims
// default to the endpoint origin, expiry and DefaultSubject; any of them
// present in claims takes precedence.
func Sign(key *Key, endpoint *url.URL, claims Claims, expiry time.Time) (*webpush.VapidSignature, error) {
	if key == nil {
		return nil, errors.New("nil signing key")
	}
	if endpoint == nil {
		return nil, errors.New("nil endpoint")
	}
	payload := jwt.MapClaims{
		"aud": Audience(endpoint),
		"exp": expiry.Unix(),
		"sub": DefaultSubject,
	}
	for name, value := range claims {
		payload[name] = value
	}

	compact, err := jwtToken(payload).SignedString(key.private)
	if err != nil {
		return nil, webpush.InvalidCryptoKeysError{Msg: err.Error()}
	}
	return &webpush.VapidSignature{
		Token:     compact,
		PublicKey: key.PublicKey(),
	}, nil
}

// Audience returns the origin of endpoint, which is the "aud" claim of its
// tokens.
func Audience(endpoint *url.URL) string {
	return endpoint.Scheme + "://" + endpoint.Host
}

// VerifyToken verifies token with an uncompressed P-256 public key and
// returns its claims. Expired tokens are rejected.
func VerifyToken(token string, publicKey []byte) (jwt.MapClaims, error) {
	pub, err := ParsePublicKey(publicKey)
	if err != nil {
		return nil, err
	}
	claims := jwt.MapClaims{}
	_, err = jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return pub, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodES256.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("invalid vapid token: %w", err)
	}
	return claims, nil
}

func jwtToken(claims jwt.Claims) *jwt.Token {
	return &jwt.Token{
		Header: map[string]interface{}{
			"typ": "JWT",
			"alg": jwt.SigningMethodES256.Alg(),
		},
		Claims: claims,
		Method: jwt.SigningMethodES256,
	}
}
