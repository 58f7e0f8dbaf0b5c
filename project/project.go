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
// Package project tracks the files of one compilation: root files named by
// the project configuration, plus referenced files pulled in by
// resolution, each with a live snapshot and version.
package project

import (
	"slices"
	"strconv"

	"bennypowers.dev/ponte/paths"
	"bennypowers.dev/ponte/platform"
	"bennypowers.dev/ponte/resolver"
)

// Project is the model of one compilation consumed by the language-service
// host. Access is serialized by the host; the project does no internal
// locking.
type Project struct {
	host    platform.Host
	logger  resolver.Logger
	roots   []string // canonical, insertion order
	infos   map[string]*ScriptInfo
	version int
}

// New creates an empty project over the given host.
func New(host platform.Host, logger resolver.Logger) *Project {
	return &Project{
		host:    host,
		logger:  logger,
		infos:   make(map[string]*ScriptInfo),
		version: 1,
	}
}

func (p *Project) canonical(fileName string) string {
	return paths.Canonical(fileName, p.host.GetCurrentDirectory(), p.host.UseCaseSensitiveFileNames())
}

// AddRoot registers a root file, loading its contents from the host.
// Returns the tracked info, or nil when the file does not exist.
func (p *Project) AddRoot(fileName string) *ScriptInfo {
	info := p.GetOrCreateScriptInfo(fileName)
	if info == nil {
		if p.logger != nil {
			p.logger.Warning("root file %s does not exist", fileName)
		}
		return nil
	}
	if !slices.Contains(p.roots, info.Path()) {
		p.roots = append(p.roots, info.Path())
		p.version++
	}
	return info
}

// RemoveRoot drops a file from the root set. The info stays tracked if
// the file is still referenced; callers drive cache eviction separately.
func (p *Project) RemoveRoot(info *ScriptInfo) {
	if info == nil {
		return
	}
	index := slices.Index(p.roots, info.Path())
	if index < 0 {
		return
	}
	p.roots = slices.Delete(p.roots, index, index+1)
	p.version++
}

// Remove drops a file from tracking entirely.
func (p *Project) Remove(info *ScriptInfo) {
	if info == nil {
		return
	}
	if _, tracked := p.infos[info.Path()]; !tracked {
		return
	}
	delete(p.infos, info.Path())
	p.RemoveRoot(info)
	p.version++
}

// GetRootFiles returns the canonical paths of the current roots.
func (p *Project) GetRootFiles() []string {
	return slices.Clone(p.roots)
}

// GetScriptInfo returns the tracked info for a file, or nil when the file
// is not tracked.
func (p *Project) GetScriptInfo(fileName string) *ScriptInfo {
	return p.infos[p.canonical(fileName)]
}

// GetOrCreateScriptInfo returns the tracked info for a file, attaching it
// from disk on first reference. Returns nil when the file does not exist.
func (p *Project) GetOrCreateScriptInfo(fileName string) *ScriptInfo {
	key := p.canonical(fileName)
	if info, ok := p.infos[key]; ok {
		return info
	}
	contents, ok := p.host.ReadFile(fileName)
	if !ok {
		return nil
	}
	info := NewScriptInfo(fileName, key, contents)
	p.infos[key] = info
	p.version++
	return info
}

// OpenFile marks a file open with the given editor buffer contents,
// attaching it if necessary.
func (p *Project) OpenFile(fileName, text string) *ScriptInfo {
	key := p.canonical(fileName)
	info, ok := p.infos[key]
	if !ok {
		info = NewScriptInfo(fileName, key, text)
		p.infos[key] = info
	}
	info.Open(text)
	p.version++
	return info
}

// CloseFile marks a file closed, reloading its contents from the host so
// the snapshot reflects disk again.
func (p *Project) CloseFile(fileName string) {
	info := p.GetScriptInfo(fileName)
	if info == nil {
		return
	}
	info.Close()
	if contents, ok := p.host.ReadFile(fileName); ok {
		info.SetText(contents)
	}
	p.version++
}

// EditFile replaces a tracked file's contents, advancing its version and
// the project version.
func (p *Project) EditFile(fileName, text string) {
	info := p.GetScriptInfo(fileName)
	if info == nil {
		return
	}
	info.SetText(text)
	p.version++
}

// GetProjectVersion returns a token that changes whenever the project's
// shape or any tracked file changes.
func (p *Project) GetProjectVersion() string {
	return strconv.Itoa(p.version)
}
