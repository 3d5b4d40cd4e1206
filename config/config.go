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

// Package config loads and saves the VAPID configuration file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pushkit/webpush-go/dir"
	"github.com/pushkit/webpush-go/vapid"
)

// KeyFormat is the encoding of the configured private key.
type KeyFormat string

// Supported key formats.
const (
	KeyFormatPEM    KeyFormat = "pem"
	KeyFormatDER    KeyFormat = "der"
	KeyFormatBase64 KeyFormat = "base64"
)

// VAPID reflects the vapid.json file.
type VAPID struct {
	// PrivateKeyFile is the path of a PEM or DER encoded private key.
	// Relative paths are resolved against the directory of the config file.
	PrivateKeyFile string `json:"privateKeyFile,omitempty"`

	// PrivateKey is a raw private key in unpadded URL-safe base64. It is
	// used when PrivateKeyFile is empty.
	PrivateKey string `json:"privateKey,omitempty"`

	// KeyFormat overrides format detection for PrivateKeyFile. Files ending
	// in ".der" are read as DER, everything else as PEM.
	KeyFormat KeyFormat `json:"keyFormat,omitempty"`

	// Subject is the contact URI sent as the "sub" claim, e.g.
	// "mailto:ops@example.com".
	Subject string `json:"subject,omitempty"`

	// baseDir is the directory of the loaded config file.
	baseDir string
}

// NewVAPID creates an empty VAPID config.
func NewVAPID() *VAPID {
	return &VAPID{}
}

// Load reads the VAPID config from path.
func Load(path string) (*VAPID, error) {
	var cfg VAPID
	if err := load(path, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load vapid config: %w", err)
	}
	cfg.baseDir = filepath.Dir(path)
	return &cfg, nil
}

// LoadDefault reads vapid.json from the user config directory.
// An empty config is returned if the file does not exist.
func LoadDefault() (*VAPID, error) {
	path, err := dir.ConfigFS().SysPath(dir.PathVAPIDConfig)
	if err != nil {
		return nil, err
	}
	cfg, err := Load(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg = NewVAPID()
			cfg.baseDir = filepath.Dir(path)
			return cfg, nil
		}
		return nil, err
	}
	return cfg, nil
}

// Save stores the config to path.
func (c *VAPID) Save(path string) error {
	return save(path, c)
}

// SaveDefault stores the config as vapid.json in the user config directory.
func (c *VAPID) SaveDefault() error {
	path, err := dir.ConfigFS().SysPath(dir.PathVAPIDConfig)
	if err != nil {
		return err
	}
	return save(path, c)
}

// PartialBuilder loads the configured private key.
func (c *VAPID) PartialBuilder() (vapid.PartialSignatureBuilder, error) {
	key, err := c.loadKey()
	if err != nil {
		return vapid.PartialSignatureBuilder{}, err
	}
	return vapid.NewPartialBuilder(key), nil
}

// Claims returns the claims implied by the config, to be added to every
// signature.
func (c *VAPID) Claims() vapid.Claims {
	claims := vapid.Claims{}
	if c.Subject != "" {
		claims["sub"] = c.Subject
	}
	return claims
}

func (c *VAPID) loadKey() (*vapid.Key, error) {
	if c.PrivateKeyFile == "" {
		if c.PrivateKey == "" {
			return nil, ErrPrivateKeyMissing
		}
		if c.KeyFormat != "" && c.KeyFormat != KeyFormatBase64 {
			return nil, UnsupportedKeyFormatError{Format: c.KeyFormat}
		}
		return vapid.LoadBase64(c.PrivateKey)
	}

	path := c.PrivateKeyFile
	if !filepath.IsAbs(path) && c.baseDir != "" {
		path = filepath.Join(c.baseDir, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read private key file: %w", err)
	}

	format := c.KeyFormat
	if format == "" {
		format = KeyFormatPEM
		if strings.EqualFold(filepath.Ext(path), ".der") {
			format = KeyFormatDER
		}
	}
	switch format {
	case KeyFormatPEM:
		return vapid.LoadPEM(bytes.NewReader(data))
	case KeyFormatDER:
		return vapid.LoadDER(bytes.NewReader(data))
	case KeyFormatBase64:
		return vapid.LoadBase64(string(data))
	}
	return nil, UnsupportedKeyFormatError{Format: format}
}
