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

//go:build windows

package eventlog

import (
	"context"
	stderrors "errors"
	"fmt"
	"runtime"
	"strings"
	"unsafe"

	"golang.org/x/sys/windows"
	"golang.org/x/sys/windows/registry"
)

const (
	eventlogSequentialRead = 0x0001
	eventlogBackwardsRead  = 0x0008

	initialReadBuffer = 64 << 10
	// maxInsertArgs pads the FormatMessage argument array so message
	// templates referencing more inserts than the record carries stay safe.
	maxInsertArgs = 99

	eventLogServicesKey = `SYSTEM\CurrentControlSet\Services\EventLog`
)

var (
	modadvapi32        = windows.NewLazySystemDLL("advapi32.dll")
	procOpenEventLogW  = modadvapi32.NewProc("OpenEventLogW")
	procReadEventLogW  = modadvapi32.NewProc("ReadEventLogW")
	procCloseEventLog  = modadvapi32.NewProc("CloseEventLog")
	emptyInsertPointer = windows.StringToUTF16Ptr("")
)

func newReader() Reader {
	return &classicReader{}
}

// classicReader reads the Windows classic event log.
type classicReader struct{}

func (r *classicReader) Read(ctx context.Context, q Query, visit func(Entry) bool) error {
	name, err := windows.UTF16PtrFromString(q.LogName)
	if err != nil {
		return fmt.Errorf("invalid log name %q: %w", q.LogName, err)
	}

	h, _, callErr := procOpenEventLogW.Call(0, uintptr(unsafe.Pointer(name)))
	if h == 0 {
		return fmt.Errorf("failed to open event log %q: %w", q.LogName, callErr)
	}
	defer procCloseEventLog.Call(h) //nolint:errcheck

	msgs := newMessageFiles(q.LogName)
	defer msgs.Close()

	buf := make([]byte, initialReadBuffer)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		var read, needed uint32
		ok, _, callErr := procReadEventLogW.Call(
			h,
			eventlogBackwardsRead|eventlogSequentialRead,
			0,
			uintptr(unsafe.Pointer(&buf[0])),
			uintptr(len(buf)),
			uintptr(unsafe.Pointer(&read)),
			uintptr(unsafe.Pointer(&needed)),
		)
		if ok == 0 {
			switch {
			case stderrors.Is(callErr, windows.ERROR_HANDLE_EOF):
				return nil
			case stderrors.Is(callErr, windows.ERROR_INSUFFICIENT_BUFFER):
				buf = make([]byte, needed)
				continue
			default:
				return fmt.Errorf("failed to read event log %q: %w", q.LogName, callErr)
			}
		}

		recs, parseErr := parseClassicRecords(buf[:read])
		for _, rec := range recs {
			sev, mapped := SeverityFromEventType(rec.EventType)
			if !mapped || !q.Severities.Has(sev) {
				continue
			}
			if !visit(classicEntry(rec, msgs.Format)) {
				return nil
			}
		}
		if parseErr != nil && !visit(Entry{Err: parseErr}) {
			return nil
		}
	}
}

// messageFiles resolves and caches the message DLLs registered for each event source.
type messageFiles struct {
	logName string
	modules map[string][]windows.Handle
}

func newMessageFiles(logName string) *messageFiles {
	return &messageFiles{logName: logName, modules: make(map[string][]windows.Handle)}
}

// Format renders the record's message from its source message files.
func (m *messageFiles) Format(rec classicRecord) (string, error) {
	mods, err := m.load(rec.Source)
	if err != nil {
		return "", err
	}

	inserts := make([][]uint16, 0, len(rec.Strings))
	args := make([]uintptr, maxInsertArgs)
	for i := range args {
		args[i] = uintptr(unsafe.Pointer(emptyInsertPointer))
	}
	for i, s := range rec.Strings {
		if i >= maxInsertArgs {
			break
		}
		u, err := windows.UTF16FromString(s)
		if err != nil {
			continue
		}
		inserts = append(inserts, u)
		args[i] = uintptr(unsafe.Pointer(&u[0]))
	}

	out := make([]uint16, 32<<10)
	var lastErr error
	for _, mod := range mods {
		n, err := windows.FormatMessage(
			windows.FORMAT_MESSAGE_FROM_HMODULE|windows.FORMAT_MESSAGE_ARGUMENT_ARRAY,
			uintptr(mod), rec.EventID, 0, out, (*byte)(unsafe.Pointer(&args[0])))
		if err != nil {
			lastErr = err
			continue
		}
		runtime.KeepAlive(inserts)
		return windows.UTF16ToString(out[:n]), nil
	}
	runtime.KeepAlive(inserts)
	if lastErr == nil {
		lastErr = fmt.Errorf("no message file for source %q", rec.Source)
	}
	return "", lastErr
}

func (m *messageFiles) load(source string) ([]windows.Handle, error) {
	if mods, ok := m.modules[source]; ok {
		return mods, nil
	}

	var mods []windows.Handle
	defer func() { m.modules[source] = mods }()

	k, err := registry.OpenKey(registry.LOCAL_MACHINE,
		eventLogServicesKey+`\`+m.logName+`\`+source, registry.QUERY_VALUE)
	if err != nil {
		return nil, err
	}
	defer k.Close()

	files, _, err := k.GetStringValue("EventMessageFile")
	if err != nil {
		return nil, err
	}

	for _, f := range strings.Split(files, ";") {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		if expanded, err := registry.ExpandString(f); err == nil {
			f = expanded
		}
		h, err := windows.LoadLibraryEx(f, 0, windows.LOAD_LIBRARY_AS_DATAFILE)
		if err != nil {
			continue
		}
		mods = append(mods, h)
	}
	return mods, nil
}

// Close unloads every cached message file.
func (m *messageFiles) Close() {
	for _, mods := range m.modules {
		for _, h := range mods {
			_ = windows.FreeLibrary(h)
		}
	}
	m.modules = nil
}
