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

package dir

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"testing"
)

func resetUserConfigDir(t *testing.T) {
	t.Helper()
	UserConfigDir = ""
	userConfigDirOnce = sync.Once{}
	t.Cleanup(func() {
		UserConfigDir = ""
		userConfigDirOnce = sync.Once{}
		userConfigDir = os.UserConfigDir
	})
}

func TestUserConfigDirPath(t *testing.T) {
	resetUserConfigDir(t)
	userConfigDir = func() (string, error) {
		return "/home/exampleuser/.config", nil
	}
	want := filepath.Join("/home/exampleuser/.config", "webpush")
	if got := userConfigDirPath(); got != want {
		t.Errorf("userConfigDirPath() = %s, want %s", got, want)
	}
}

func TestUserConfigDirPathFallback(t *testing.T) {
	resetUserConfigDir(t)
	userConfigDir = func() (string, error) {
		return "", errors.New("neither $XDG_CONFIG_HOME nor $HOME are defined")
	}
	want := filepath.Join(".", "webpush")
	if got := userConfigDirPath(); got != want {
		t.Errorf("userConfigDirPath() = %s, want %s", got, want)
	}
}

func TestUserConfigDirExplicit(t *testing.T) {
	resetUserConfigDir(t)
	UserConfigDir = "/opt/webpush"
	userConfigDir = func() (string, error) {
		t.Fatal("userConfigDir called although UserConfigDir is set")
		return "", nil
	}
	if got := userConfigDirPath(); got != "/opt/webpush" {
		t.Errorf("userConfigDirPath() = %s, want /opt/webpush", got)
	}
}

func TestConfigFS(t *testing.T) {
	resetUserConfigDir(t)
	root := t.TempDir()
	UserConfigDir = root
	if err := os.WriteFile(filepath.Join(root, PathVAPIDConfig), []byte("{}"), 0600); err != nil {
		t.Fatal(err)
	}

	configFS := ConfigFS()
	data, err := fs.ReadFile(configFS, PathVAPIDConfig)
	if err != nil {
		t.Fatalf("fs.ReadFile() error = %v", err)
	}
	if string(data) != "{}" {
		t.Errorf("fs.ReadFile() = %q, want {}", data)
	}

	path, err := configFS.SysPath("keys", "vapid_key.pem")
	if err != nil {
		t.Fatalf("SysPath() error = %v", err)
	}
	if want := filepath.Join(root, "keys", "vapid_key.pem"); path != want {
		t.Errorf("SysPath() = %s, want %s", path, want)
	}
}
