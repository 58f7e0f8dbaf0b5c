/*
Copyright © 2026 Benny Powers <web@bennypowers.com>

This program is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

This program is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with this program. If not, see <http://www.gnu.org/licenses/>.
*/
package project

import (
	"strconv"
	"strings"
)

// ScriptKind classifies a tracked file by the syntax it contains.
type ScriptKind int

const (
	KindUnknown ScriptKind = iota
	KindJS
	KindJSX
	KindTS
	KindTSX
	KindJSON
)

// String returns the lowercase kind name.
func (k ScriptKind) String() string {
	switch k {
	case KindJS:
		return "js"
	case KindJSX:
		return "jsx"
	case KindTS:
		return "ts"
	case KindTSX:
		return "tsx"
	case KindJSON:
		return "json"
	}
	return "unknown"
}

// KindFromFileName infers the script kind from a file extension.
func KindFromFileName(fileName string) ScriptKind {
	switch {
	case strings.HasSuffix(fileName, ".d.ts"), strings.HasSuffix(fileName, ".ts"):
		return KindTS
	case strings.HasSuffix(fileName, ".tsx"):
		return KindTSX
	case strings.HasSuffix(fileName, ".jsx"):
		return KindJSX
	case strings.HasSuffix(fileName, ".js"), strings.HasSuffix(fileName, ".mjs"), strings.HasSuffix(fileName, ".cjs"):
		return KindJS
	case strings.HasSuffix(fileName, ".json"):
		return KindJSON
	}
	return KindUnknown
}

// ScriptInfo tracks one file known to the project: its live text snapshot,
// a version that advances on every edit, and whether an editor currently
// has it open. Open files are exempt from cache eviction since they are
// likely to be re-resolved imminently.
type ScriptInfo struct {
	fileName string
	path     string // canonical cache key
	kind     ScriptKind
	open     bool
	version  int
	text     string
}

// NewScriptInfo creates a tracked file with the given initial contents.
func NewScriptInfo(fileName, canonicalPath, text string) *ScriptInfo {
	return &ScriptInfo{
		fileName: fileName,
		path:     canonicalPath,
		kind:     KindFromFileName(fileName),
		version:  1,
		text:     text,
	}
}

// FileName returns the name the file was registered under.
func (i *ScriptInfo) FileName() string { return i.fileName }

// Path returns the canonical path used as the cache key.
func (i *ScriptInfo) Path() string { return i.path }

// Kind returns the inferred script kind.
func (i *ScriptInfo) Kind() ScriptKind { return i.kind }

// IsOpen reports whether an editor currently has the file open.
func (i *ScriptInfo) IsOpen() bool { return i.open }

// Open marks the file as open in an editor, optionally replacing its text
// with the editor's buffer contents.
func (i *ScriptInfo) Open(text string) {
	i.open = true
	if text != i.text {
		i.text = text
		i.version++
	}
}

// Close marks the file as no longer open.
func (i *ScriptInfo) Close() {
	i.open = false
}

// Version returns the current version token.
func (i *ScriptInfo) Version() string {
	return strconv.Itoa(i.version)
}

// Snapshot returns the current immutable text snapshot.
func (i *ScriptInfo) Snapshot() string {
	return i.text
}

// SetText replaces the file contents and advances the version.
func (i *ScriptInfo) SetText(text string) {
	if text == i.text {
		return
	}
	i.text = text
	i.version++
}
