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
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"net/url"
	"strings"
	"testing"
	"time"
)

func TestAudience(t *testing.T) {
	tests := []struct {
		endpoint string
		want     string
	}{
		{"https://updates.push.services.mozilla.com/wpush/v2/abc", "https://updates.push.services.mozilla.com"},
		{"https://fcm.googleapis.com/fcm/send/abc?x=1", "https://fcm.googleapis.com"},
		{"http://localhost:8080/push", "http://localhost:8080"},
	}
	for _, tt := range tests {
		u, err := url.Parse(tt.endpoint)
		if err != nil {
			t.Fatal(err)
		}
		if got := Audience(u); got != tt.want {
			t.Errorf("Audience(%q) = %q, want %q", tt.endpoint, got, tt.want)
		}
	}
}

func TestSign(t *testing.T) {
	key, err := LoadBase64(testPrivateKeyBase64)
	if err != nil {
		t.Fatal(err)
	}
	endpoint, _ := url.Parse(testEndpoint)
	expiry := time.Now().Add(time.Hour).Truncate(time.Second)

	signature, err := Sign(key, endpoint, Claims{"sub": "mailto:ops@example.com"}, expiry)
	if err != nil {
		t.Fatalf("Sign() error = %v", err)
	}
	claims, err := VerifyToken(signature.Token, signature.PublicKey)
	if err != nil {
		t.Fatalf("VerifyToken() error = %v", err)
	}
	if got := int64(claims["exp"].(float64)); got != expiry.Unix() {
		t.Errorf("exp = %d, want %d", got, expiry.Unix())
	}
	if claims["sub"] != "mailto:ops@example.com" {
		t.Errorf("sub = %v, want mailto:ops@example.com", claims["sub"])
	}

	// ES256 signatures are randomized
	again, err := Sign(key, endpoint, Claims{"sub": "mailto:ops@example.com"}, expiry)
	if err != nil {
		t.Fatal(err)
	}
	if again.Token == signature.Token {
		t.Error("two signatures over the same claims are identical")
	}
	first := signature.Token[:strings.LastIndex(signature.Token, ".")]
	second := again.Token[:strings.LastIndex(again.Token, ".")]
	if first != second {
		t.Errorf("signing input differs between calls: %q != %q", first, second)
	}
}

func TestSignNilArguments(t *testing.T) {
	key, err := LoadBase64(testPrivateKeyBase64)
	if err != nil {
		t.Fatal(err)
	}
	endpoint, _ := url.Parse(testEndpoint)
	if _, err := Sign(nil, endpoint, nil, time.Now()); err == nil {
		t.Error("Sign() with nil key succeeded")
	}
	if _, err := Sign(key, nil, nil, time.Now()); err == nil {
		t.Error("Sign() with nil endpoint succeeded")
	}
}

func TestVerifyTokenFailures(t *testing.T) {
	key, err := LoadBase64(testPrivateKeyBase64)
	if err != nil {
		t.Fatal(err)
	}
	endpoint, _ := url.Parse(testEndpoint)
	valid, err := Sign(key, endpoint, nil, time.Now().Add(time.Hour))
	if err != nil {
		t.Fatal(err)
	}
	expired, err := Sign(key, endpoint, nil, time.Now().Add(-time.Hour))
	if err != nil {
		t.Fatal(err)
	}
	other, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		t.Fatal(err)
	}
	otherKey, err := NewKey(other)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name      string
		token     string
		publicKey []byte
	}{
		{name: "expired", token: expired.Token, publicKey: valid.PublicKey},
		{name: "wrong key", token: valid.Token, publicKey: otherKey.PublicKey()},
		{name: "tampered payload", token: strings.Replace(valid.Token, ".", ".e30", 1), publicKey: valid.PublicKey},
		{name: "malformed token", token: "abc", publicKey: valid.PublicKey},
		{name: "malformed key", token: valid.Token, publicKey: []byte{4, 1, 2}},
		{
			name:      "unsigned token",
			token:     "eyJhbGciOiJub25lIiwidHlwIjoiSldUIn0.eyJzdWIiOiJtYWlsdG86eEBleGFtcGxlLmNvbSJ9.",
			publicKey: valid.PublicKey,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := VerifyToken(tt.token, tt.publicKey); err == nil {
				t.Error("VerifyToken() succeeded, want error")
			}
		})
	}
}
