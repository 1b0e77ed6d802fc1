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
	"fmt"
	"log/slog"
	"os"
	"strings"
	"unicode/utf8"
)

// Options for configuring the Parser.
type Option func(*Parser)

// Parser parses stanza files with customizable settings.
type Parser struct {
	maxSize        int
	skipComments   bool
	kvDelimiter    string
	replaceInvalid bool
}

// WithMaxSize sets the maximum size (in bytes) of the file to be parsed.
// Default is 1MB.
func WithMaxSize(size int) Option {
	return func(p *Parser) {
		p.maxSize = size
	}
}

// WithSkipComments sets whether to skip comment lines in the file.
// Default is true.
func WithSkipComments(skip bool) Option {
	return func(p *Parser) {
		p.skipComments = skip
	}
}

// WithKVDelimiter sets the key-value delimiter.
// Default is "=".
func WithKVDelimiter(kvDelim string) Option {
	return func(p *Parser) {
		p.kvDelimiter = kvDelim
	}
}

// WithReplaceInvalidUTF8 accepts files with invalid UTF-8. Each invalid
// sequence is replaced with U+FFFD in the line it occurs in instead of
// failing the whole file.
func WithReplaceInvalidUTF8(replace bool) Option {
	return func(p *Parser) {
		p.replaceInvalid = replace
	}
}

// NewParser creates a new file parser with the provided options.
// Default settings: "=" key-value delimiter, 1MB max file size, comments skipped,
// invalid UTF-8 rejected.
func NewParser(opts ...Option) *Parser {
	p := &Parser{
		maxSize:      1 << 20,
		skipComments: true,
		kvDelimiter:  "=",
	}

	for _, opt := range opts {
		opt(p)
	}
	return p
}

// read loads the file, enforcing the size limit and UTF-8 validity.
func (p *Parser) read(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("file path cannot be empty")
	}

	fi, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("failed to stat file %q: %w", path, err)
	}
	if fi.Size() > int64(p.maxSize) {
		return "", fmt.Errorf("file %q exceeds maximum size of %d bytes", path, p.maxSize)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read file %q: %w", path, err)
	}
	if len(b) > p.maxSize {
		return "", fmt.Errorf("file %q exceeds maximum size of %d bytes", path, p.maxSize)
	}

	if !p.replaceInvalid && !utf8.Valid(b) {
		return "", fmt.Errorf("content of file %q is not valid UTF-8", path)
	}

	return string(b), nil
}

func (p *Parser) put(m map[string]string, line string) {
	key, value, found := strings.Cut(line, p.kvDelimiter)
	key = strings.TrimSpace(key)
	if key == "" {
		return
	}
	if !found {
		slog.Debug("skipping entry without value", "key", key)
		return
	}
	m[key] = strings.TrimSpace(value)
}

// GetBlocks reads a stanza file: records separated by blank lines, one
// "key<delim>value" field per line. Lines starting with a space or tab continue
// the previous field and are ignored. Stanzas without any field are dropped.
func (p *Parser) GetBlocks(path string) ([]map[string]string, error) {
	content, err := p.read(path)
	if err != nil {
		return nil, err
	}
	return p.ParseBlocks(content), nil
}

// ParseBlocks parses already loaded stanza content. See GetBlocks.
func (p *Parser) ParseBlocks(content string) []map[string]string {
	var blocks []map[string]string
	cur := make(map[string]string)

	flush := func() {
		if len(cur) > 0 {
			blocks = append(blocks, cur)
			cur = make(map[string]string)
		}
	}

	for _, raw := range strings.Split(content, "\n") {
		raw = strings.TrimRight(raw, "\r")
		if strings.TrimSpace(raw) == "" {
			flush()
			continue
		}
		if raw[0] == ' ' || raw[0] == '\t' {
			continue
		}
		if p.skipComments && strings.HasPrefix(raw, "#") {
			continue
		}
		if p.replaceInvalid && !utf8.ValidString(raw) {
			raw = strings.ToValidUTF8(raw, string(utf8.RuneError))
		}
		p.put(cur, raw)
	}
	flush()

	return blocks
}
