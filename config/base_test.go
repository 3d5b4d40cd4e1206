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
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

type sample struct {
	Name string `json:"name"`
}

func TestLoadRejectsDirectory(t *testing.T) {
	var cfg sample
	if err := load(t.TempDir(), &cfg); err == nil {
		t.Error("load() of a directory succeeded")
	}
}

func TestLoadRejectsSymlink(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("skipping test on Windows")
	}
	dir := t.TempDir()
	target := filepath.Join(dir, "target.json")
	if err := save(target, &sample{Name: "target"}); err != nil {
		t.Fatal(err)
	}
	link := filepath.Join(dir, "link.json")
	if err := os.Symlink(target, link); err != nil {
		t.Fatal(err)
	}

	var cfg sample
	if err := load(link, &cfg); err == nil {
		t.Error("load() of a symlink succeeded")
	}
	if err := load(target, &cfg); err != nil {
		t.Fatalf("load() error = %v", err)
	}
	if cfg.Name != "target" {
		t.Errorf("Name = %q, want target", cfg.Name)
	}
}

func TestSaveTruncates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := save(path, &sample{Name: "a much longer name than the next one"}); err != nil {
		t.Fatal(err)
	}
	if err := save(path, &sample{Name: "short"}); err != nil {
		t.Fatal(err)
	}
	var cfg sample
	if err := load(path, &cfg); err != nil {
		t.Fatalf("load() error = %v", err)
	}
	if cfg.Name != "short" {
		t.Errorf("Name = %q, want short", cfg.Name)
	}
}
