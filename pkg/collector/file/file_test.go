// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package file

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write temp file: %v", err)
	}
	return path
}

func TestNewParser(t *testing.T) {
	tests := []struct {
		name                   string
		opts                   []Option
		expectedMaxSize        int
		expectedSkipComments   bool
		expectedKVDelimiter    string
		expectedReplaceInvalid bool
	}{
		{
			name:                 "default options",
			expectedMaxSize:      1 << 20,
			expectedSkipComments: true,
			expectedKVDelimiter:  "=",
		},
		{
			name: "all options",
			opts: []Option{
				WithMaxSize(2048),
				WithSkipComments(false),
				WithKVDelimiter(":"),
				WithReplaceInvalidUTF8(true),
			},
			expectedMaxSize:        2048,
			expectedSkipComments:   false,
			expectedKVDelimiter:    ":",
			expectedReplaceInvalid: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewParser(tt.opts...)
			if p.maxSize != tt.expectedMaxSize {
				t.Errorf("maxSize = %d, want %d", p.maxSize, tt.expectedMaxSize)
			}
			if p.skipComments != tt.expectedSkipComments {
				t.Errorf("skipComments = %v, want %v", p.skipComments, tt.expectedSkipComments)
			}
			if p.kvDelimiter != tt.expectedKVDelimiter {
				t.Errorf("kvDelimiter = %q, want %q", p.kvDelimiter, tt.expectedKVDelimiter)
			}
			if p.replaceInvalid != tt.expectedReplaceInvalid {
				t.Errorf("replaceInvalid = %v, want %v", p.replaceInvalid, tt.expectedReplaceInvalid)
			}
		})
	}
}

func TestGetBlocks_Errors(t *testing.T) {
	t.Run("empty path", func(t *testing.T) {
		if _, err := NewParser().GetBlocks(""); err == nil {
			t.Error("expected error for empty path")
		}
	})

	t.Run("missing file wraps ErrNotExist", func(t *testing.T) {
		_, err := NewParser().GetBlocks(filepath.Join(t.TempDir(), "missing"))
		if !errors.Is(err, fs.ErrNotExist) {
			t.Errorf("expected fs.ErrNotExist, got %v", err)
		}
	})

	t.Run("too large", func(t *testing.T) {
		path := writeTemp(t, "big", strings.Repeat("a", 100))
		if _, err := NewParser(WithMaxSize(10)).GetBlocks(path); err == nil {
			t.Error("expected size error")
		}
	})

	t.Run("invalid utf8", func(t *testing.T) {
		path := writeTemp(t, "bin", "k=\xff\xfe")
		if _, err := NewParser().GetBlocks(path); err == nil {
			t.Error("expected UTF-8 error")
		}
	})
}

func TestGetBlocks_ReplaceInvalidUTF8(t *testing.T) {
	path := writeTemp(t, "status",
		"Package: good\nVersion: 1.0\n\nPackage: bad\xff\nVersion: 2.0\xfe\n\nPackage: after\n")

	got, err := NewParser(WithKVDelimiter(":"), WithReplaceInvalidUTF8(true)).GetBlocks(path)
	if err != nil {
		t.Fatalf("GetBlocks() error = %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("GetBlocks() returned %d blocks, want 3", len(got))
	}
	if got[0]["Package"] != "good" || got[2]["Package"] != "after" {
		t.Errorf("valid stanzas changed: %v", got)
	}
	if got[1]["Package"] != "bad�" || got[1]["Version"] != "2.0�" {
		t.Errorf("invalid bytes not replaced: %q", got[1])
	}
}

func TestParseBlocks(t *testing.T) {
	content := `Package: bash
Status: install ok installed
Version: 5.2-1
Description: GNU Bourne Again SHell
 Bash is an sh-compatible command language interpreter.
 .
 It also incorporates useful features.

Package: removed-pkg
Status: deinstall ok config-files
Version: 1.0


Package: no-version
Status: install ok installed
`
	got := NewParser(WithKVDelimiter(":")).ParseBlocks(content)

	if len(got) != 3 {
		t.Fatalf("ParseBlocks() returned %d blocks, want 3", len(got))
	}
	if got[0]["Package"] != "bash" || got[0]["Version"] != "5.2-1" {
		t.Errorf("unexpected first block: %v", got[0])
	}
	if got[0]["Description"] != "GNU Bourne Again SHell" {
		t.Errorf("continuation lines should be folded away, got %q", got[0]["Description"])
	}
	if got[1]["Status"] != "deinstall ok config-files" {
		t.Errorf("unexpected status: %q", got[1]["Status"])
	}
	if _, ok := got[2]["Version"]; ok {
		t.Errorf("third block should have no Version, got %v", got[2])
	}
}

func TestParseBlocks_Fields(t *testing.T) {
	got := NewParser().ParseBlocks("# comment\nopts=a=b\n=value\nflag\nk = v \n")
	if len(got) != 1 {
		t.Fatalf("ParseBlocks() returned %d blocks, want 1", len(got))
	}
	want := map[string]string{"opts": "a=b", "k": "v"}
	if len(got[0]) != len(want) {
		t.Fatalf("ParseBlocks() = %v, want %v", got[0], want)
	}
	for k, v := range want {
		if got[0][k] != v {
			t.Errorf("%s = %q, want %q", k, got[0][k], v)
		}
	}
}

func TestGetBlocks_CRLF(t *testing.T) {
	path := writeTemp(t, "status", "Package: a\r\nVersion: 1\r\n\r\nPackage: b\r\n")

	got, err := NewParser(WithKVDelimiter(":")).GetBlocks(path)
	if err != nil {
		t.Fatalf("GetBlocks() error = %v", err)
	}
	if len(got) != 2 || got[0]["Version"] != "1" || got[1]["Package"] != "b" {
		t.Errorf("GetBlocks() = %v", got)
	}
}
