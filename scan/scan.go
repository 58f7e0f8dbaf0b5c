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
// Package scan extracts the resolution requests of a TypeScript or
// JavaScript source file: module specifiers from import syntax and
// triple-slash reference directives from leading comments.
package scan

import (
	"fmt"
	"regexp"

	ts "github.com/tree-sitter/go-tree-sitter"
)

// ModuleImport represents an import statement in a module.
type ModuleImport struct {
	Specifier string // The import specifier (e.g., "lit", "./foo.js")
	IsDynamic bool   // True if this is a dynamic import()
	Line      int    // 1-indexed source line
}

// ReferenceKind classifies a triple-slash reference directive.
type ReferenceKind string

const (
	// ReferenceTypes is /// <reference types="..." />, resolved as a
	// type-reference directive.
	ReferenceTypes ReferenceKind = "types"

	// ReferencePath is /// <reference path="..." />, resolved relative to
	// the containing file.
	ReferencePath ReferenceKind = "path"

	// ReferenceLib is /// <reference lib="..." />, naming a bundled library.
	ReferenceLib ReferenceKind = "lib"
)

// Reference represents a triple-slash reference directive.
type Reference struct {
	Kind ReferenceKind
	Name string
	Line int // 1-indexed source line
}

// ExtractImports parses TypeScript/JavaScript content and extracts all
// import specifiers.
func ExtractImports(content []byte) ([]ModuleImport, error) {
	qm, err := GetQueryManager()
	if err != nil {
		return nil, err
	}

	parser := getTSParser()
	defer putTSParser(parser)

	tree := parser.Parse(content, nil)
	if tree == nil {
		return nil, fmt.Errorf("failed to parse content")
	}
	defer tree.Close()

	query, err := qm.Query("imports")
	if err != nil {
		return nil, err
	}

	cursor := ts.NewQueryCursor()
	defer cursor.Close()

	var imports []ModuleImport
	matches := cursor.Matches(query, tree.RootNode(), content)
	captureNames := query.CaptureNames()

	for {
		match := matches.Next()
		if match == nil {
			break
		}

		for _, capture := range match.Captures {
			name := captureNames[capture.Index]
			text := capture.Node.Utf8Text(content)
			line := int(capture.Node.StartPosition().Row) + 1 // 1-indexed

			switch name {
			case "import.spec", "reexport.spec", "require.spec":
				imports = append(imports, ModuleImport{
					Specifier: text,
					Line:      line,
				})
			case "dynamicImport.spec":
				imports = append(imports, ModuleImport{
					Specifier: text,
					IsDynamic: true,
					Line:      line,
				})
			}
		}
	}

	return imports, nil
}

// referenceDirective matches one triple-slash reference directive.
var referenceDirective = regexp.MustCompile(
	`^///\s*<reference\s+(types|path|lib)\s*=\s*["']([^"']+)["']\s*/?>`)

// ExtractReferences parses content and extracts its triple-slash
// reference directives.
func ExtractReferences(content []byte) ([]Reference, error) {
	qm, err := GetQueryManager()
	if err != nil {
		return nil, err
	}

	parser := getTSParser()
	defer putTSParser(parser)

	tree := parser.Parse(content, nil)
	if tree == nil {
		return nil, fmt.Errorf("failed to parse content")
	}
	defer tree.Close()

	query, err := qm.Query("comments")
	if err != nil {
		return nil, err
	}

	cursor := ts.NewQueryCursor()
	defer cursor.Close()

	var refs []Reference
	matches := cursor.Matches(query, tree.RootNode(), content)

	for {
		match := matches.Next()
		if match == nil {
			break
		}
		for _, capture := range match.Captures {
			text := capture.Node.Utf8Text(content)
			groups := referenceDirective.FindStringSubmatch(text)
			if groups == nil {
				continue
			}
			refs = append(refs, Reference{
				Kind: ReferenceKind(groups[1]),
				Name: groups[2],
				Line: int(capture.Node.StartPosition().Row) + 1,
			})
		}
	}

	return refs, nil
}

// TypeDirectives returns just the names of the types references, in
// source order, the shape the type-reference resolver consumes.
func TypeDirectives(refs []Reference) []string {
	var names []string
	for _, ref := range refs {
		if ref.Kind == ReferenceTypes {
			names = append(names, ref.Name)
		}
	}
	return names
}

// Specifiers returns just the specifier strings, in source order, the
// shape the module resolver consumes.
func Specifiers(imports []ModuleImport) []string {
	var names []string
	for _, imp := range imports {
		names = append(names, imp.Specifier)
	}
	return names
}
