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

// Package dir implements the webpush directory structure.
// The relative path is used to mount the file system, and a configuration
// file is addressed by name within it:
//
//	$XDG_CONFIG_HOME/webpush/vapid.json     (Linux)
//	~/Library/Application Support/webpush/  (macOS)
//	%AppData%\webpush\                      (Windows)
package dir

import (
	"os"
	"path/filepath"
	"sync"
)

// PathVAPIDConfig is the VAPID configuration file name, relative to
// {WEBPUSH_CONFIG}.
const PathVAPIDConfig = "vapid.json"

const webpush = "webpush"

var (
	// UserConfigDir is the user level config directory. It is resolved on
	// first use unless set explicitly.
	UserConfigDir string

	// for mocking
	userConfigDir = os.UserConfigDir

	userConfigDirOnce sync.Once
)

// userConfigDirPath returns the user level {WEBPUSH_CONFIG} path.
func userConfigDirPath() string {
	userConfigDirOnce.Do(func() {
		if UserConfigDir != "" {
			return
		}
		base, err := userConfigDir()
		if err != nil {
			// fall back to the current directory
			base = "."
		}
		UserConfigDir = filepath.Join(base, webpush)
	})
	return UserConfigDir
}
