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

// SubscriptionKeys holds the client keys of a push subscription, base64url
// encoded as delivered by the browser.
type SubscriptionKeys struct {
	// P256dh is the client's P-256 ECDH public key.
	P256dh string `json:"p256dh"`

	// Auth is the client's authentication secret.
	Auth string `json:"auth"`
}

// SubscriptionInfo describes where notifications for one user agent are
// delivered. Its JSON form matches PushSubscription.toJSON() in browsers.
type SubscriptionInfo struct {
	Endpoint string           `json:"endpoint"`
	Keys     SubscriptionKeys `json:"keys"`
}

// NewSubscriptionInfo creates a SubscriptionInfo from its parts.
func NewSubscriptionInfo(endpoint, p256dh, auth string) *SubscriptionInfo {
	return &SubscriptionInfo{
		Endpoint: endpoint,
		Keys: SubscriptionKeys{
			P256dh: p256dh,
			Auth:   auth,
		},
	}
}

// VapidSignature is a signed VAPID token together with the public key that
// verifies it.
type VapidSignature struct {
	// Token is the JWT in compact serialization.
	Token string

	// PublicKey is the uncompressed P-256 public key of the signer.
	PublicKey []byte
}
