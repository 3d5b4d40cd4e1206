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
	"crypto/ecdh"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/sha256"
	"crypto/x509"
	"encoding/asn1"
	"encoding/base64"
	"encoding/pem"
	"errors"
	"fmt"
	"io"
	"math/big"
	"strings"

	"github.com/pushkit/webpush-go"
	"golang.org/x/crypto/cryptobyte"
	cbasn1 "golang.org/x/crypto/cryptobyte/asn1"
)

// keySize is the length of a P-256 private scalar.
const keySize = 32

// PEM block types recognized by LoadPEM.
const (
	pemTypeSEC1  = "EC PRIVATE KEY"
	pemTypePKCS8 = "PRIVATE KEY"
)

var oidNamedCurveP256 = asn1.ObjectIdentifier{1, 2, 840, 10045, 3, 1, 7}

// Key is a P-256 key pair used to sign VAPID tokens. A Key is immutable and
// safe for concurrent use.
type Key struct {
	private *ecdsa.PrivateKey
	public  []byte
}

// NewKey wraps an existing P-256 private key.
func NewKey(key *ecdsa.PrivateKey) (*Key, error) {
	if key == nil || key.D == nil {
		return nil, webpush.InvalidCryptoKeysError{Msg: "nil private key"}
	}
	if key.Curve != elliptic.P256() {
		return nil, webpush.InvalidCryptoKeysError{Msg: "curve must be P-256"}
	}
	if key.D.Sign() <= 0 || key.D.BitLen() > keySize*8 {
		return nil, webpush.InvalidCryptoKeysError{Msg: "private scalar out of range"}
	}
	return keyFromScalar(key.D.FillBytes(make([]byte, keySize)))
}

// LoadPEM reads r to completion and decodes the first private key block
// found. Both SEC1 ("EC PRIVATE KEY") and PKCS #8 ("PRIVATE KEY") blocks are
// accepted; other blocks are skipped.
func LoadPEM(r io.Reader) (*Key, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read PEM key material: %w", err)
	}
	rest := data
	for {
		var block *pem.Block
		block, rest = pem.Decode(rest)
		if block == nil {
			break
		}
		switch block.Type {
		case pemTypeSEC1:
			return parseSEC1(block.Bytes)
		case pemTypePKCS8:
			return parsePKCS8(block.Bytes)
		}
	}
	return nil, webpush.MissingCryptoKeysError{}
}

// LoadDER reads r to completion and decodes it as a SEC1 private key.
func LoadDER(r io.Reader) (*Key, error) {
	der, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read DER key material: %w", err)
	}
	return parseSEC1(der)
}

// LoadBase64 decodes a raw 32-byte private scalar encoded with the URL-safe
// base64 alphabet and no padding. This is the form most VAPID key
// generators print.
func LoadBase64(encoded string) (*Key, error) {
	scalar, err := base64.RawURLEncoding.DecodeString(strings.TrimSpace(encoded))
	if err != nil {
		return nil, webpush.InvalidCryptoKeysError{Msg: "malformed base64 private key"}
	}
	return keyFromScalar(scalar)
}

// ParsePublicKey decodes an uncompressed P-256 public key as returned by
// Key.PublicKey.
func ParsePublicKey(b []byte) (*ecdsa.PublicKey, error) {
	if _, err := ecdh.P256().NewPublicKey(b); err != nil {
		return nil, webpush.InvalidCryptoKeysError{Msg: err.Error()}
	}
	return &ecdsa.PublicKey{
		Curve: elliptic.P256(),
		X:     new(big.Int).SetBytes(b[1 : 1+keySize]),
		Y:     new(big.Int).SetBytes(b[1+keySize:]),
	}, nil
}

// PublicKey returns the 65-byte uncompressed public key. Encode it with
// base64.RawURLEncoding to obtain the applicationServerKey for browsers.
func (k *Key) PublicKey() []byte {
	return append([]byte(nil), k.public...)
}

// PrivateKey returns the underlying private key. It must not be modified.
func (k *Key) PrivateKey() *ecdsa.PrivateKey {
	return k.private
}

// parseSEC1 extracts the private scalar from a SEC1 ECPrivateKey structure.
// Reference: RFC 5915 3 Elliptic Curve Private Key Format.
func parseSEC1(der []byte) (*Key, error) {
	input := cryptobyte.String(der)
	var (
		seq     cryptobyte.String
		version int
		scalar  []byte
	)
	if !input.ReadASN1(&seq, cbasn1.SEQUENCE) || !input.Empty() ||
		!seq.ReadASN1Integer(&version) ||
		!seq.ReadASN1Bytes(&scalar, cbasn1.OCTET_STRING) {
		return nil, webpush.InvalidCryptoKeysError{Msg: "malformed SEC1 private key"}
	}
	if version != 1 {
		return nil, webpush.InvalidCryptoKeysError{Msg: fmt.Sprintf("unsupported SEC1 private key version %d", version)}
	}

	var (
		params    cryptobyte.String
		hasParams bool
	)
	if !seq.ReadOptionalASN1(&params, &hasParams, cbasn1.Tag(0).Constructed().ContextSpecific()) {
		return nil, webpush.InvalidCryptoKeysError{Msg: "malformed SEC1 private key parameters"}
	}
	if hasParams {
		var curve asn1.ObjectIdentifier
		if !params.ReadASN1ObjectIdentifier(&curve) || !curve.Equal(oidNamedCurveP256) {
			return nil, webpush.InvalidCryptoKeysError{Msg: "curve must be P-256"}
		}
	}

	// some encoders strip leading zero bytes of the scalar
	if len(scalar) > keySize {
		return nil, webpush.InvalidCryptoKeysError{Msg: "private scalar too long"}
	}
	padded := make([]byte, keySize)
	copy(padded[keySize-len(scalar):], scalar)
	return keyFromScalar(padded)
}

func parsePKCS8(der []byte) (*Key, error) {
	parsed, err := x509.ParsePKCS8PrivateKey(der)
	if err != nil {
		return nil, webpush.InvalidCryptoKeysError{Msg: err.Error()}
	}
	key, ok := parsed.(*ecdsa.PrivateKey)
	if !ok {
		return nil, webpush.InvalidCryptoKeysError{Msg: fmt.Sprintf("unsupported private key type %T", parsed)}
	}
	return NewKey(key)
}

// keyFromScalar derives the key pair from a private scalar. Every loader
// ends here.
func keyFromScalar(scalar []byte) (*Key, error) {
	if len(scalar) != keySize {
		return nil, webpush.InvalidCryptoKeysError{Msg: fmt.Sprintf("private key must be %d bytes, got %d", keySize, len(scalar))}
	}
	ecdhKey, err := ecdh.P256().NewPrivateKey(scalar)
	if err != nil {
		return nil, webpush.InvalidCryptoKeysError{Msg: err.Error()}
	}
	public := ecdhKey.PublicKey().Bytes()
	private := &ecdsa.PrivateKey{
		PublicKey: ecdsa.PublicKey{
			Curve: elliptic.P256(),
			X:     new(big.Int).SetBytes(public[1 : 1+keySize]),
			Y:     new(big.Int).SetBytes(public[1+keySize:]),
		},
		D: new(big.Int).SetBytes(scalar),
	}
	if err := checkKeyPair(private); err != nil {
		return nil, webpush.InvalidCryptoKeysError{Msg: err.Error()}
	}
	return &Key{
		private: private,
		public:  public,
	}, nil
}

// checkKeyPair signs a fixed digest and verifies it with the derived public
// key.
func checkKeyPair(key *ecdsa.PrivateKey) error {
	digest := sha256.Sum256([]byte("webpush vapid key check"))
	sig, err := ecdsa.SignASN1(rand.Reader, key, digest[:])
	if err != nil {
		return err
	}
	if !ecdsa.VerifyASN1(&key.PublicKey, digest[:], sig) {
		return errors.New("derived public key does not verify")
	}
	return nil
}
