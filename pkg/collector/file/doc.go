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

// Package file parses the stanza files platform collectors read: records
// separated by blank lines, one key/value field per line, such as the dpkg
// status database. Continuation lines (starting with whitespace) are folded
// away so every value is single-line:
//
//	p := file.NewParser(file.WithKVDelimiter(":"), file.WithMaxSize(64<<20))
//	stanzas, err := p.GetBlocks("/var/lib/dpkg/status")
//
// Invalid UTF-8 fails the read unless WithReplaceInvalidUTF8 is set, in which
// case only the affected lines carry U+FFFD.
//
// Read errors wrap the underlying *fs.PathError, so callers can test for a
// missing file with errors.Is(err, fs.ErrNotExist).
package file
