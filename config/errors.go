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

package config

import (
	"errors"
	"fmt"
)

// ErrPrivateKeyMissing is used when a VAPID config names no private key.
var ErrPrivateKeyMissing = errors.New("vapid config has neither privateKey nor privateKeyFile")

// UnsupportedKeyFormatError is used when keyFormat is not one of pem, der
// or base64.
type UnsupportedKeyFormatError struct {
	Format KeyFormat
}

// Error returns the error message.
func (e UnsupportedKeyFormatError) Error() string {
	return fmt.Sprintf("unsupported key format %q, expected one of pem, der or base64", string(e.Format))
}
