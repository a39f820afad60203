// Copyright 2025 KrakLabs
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published
// by the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program. If not, see <https://www.gnu.org/licenses/>.
//
// For commercial licensing, contact: licensing@kraklabs.com
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package extract

import (
	"context"
	"strings"

	"log/slog"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/java"
)

// securedAnnotationNames are the Spring Security annotations that mark a
// declaration as protected.
var securedAnnotationNames = map[string]bool{
	"PreAuthorize":  true,
	"PostAuthorize": true,
	"Secured":       true,
	"RolesAllowed":  true,
	"DenyAll":       true,
}

// lineRange is an inclusive 0-based line span of a protected declaration.
type lineRange struct {
	start int
	end   int
}

// JavaTreeDetector resolves auth annotation ownership from the Java parse
// tree: a route marker is protected when it sits inside a class or method
// declaration carrying a security annotation, regardless of how many lines
// separate the two. Non-Java files use the window heuristic.
//
// The detector caches the analysis of the most recently seen file; callers
// query markers file by file, so one parse serves all markers of a file.
// Not safe for concurrent use.
type JavaTreeDetector struct {
	logger   *slog.Logger
	fallback *WindowDetector
	parser   *sitter.Parser

	lastPath  string
	protected []lineRange
	degraded  bool // Parse failed for lastPath; answer from the fallback
}

// NewJavaTreeDetector creates a tree-sitter based detector. The window size
// configures the fallback used for non-Java files and failed parses.
func NewJavaTreeDetector(window int, logger *slog.Logger) *JavaTreeDetector {
	if logger == nil {
		logger = slog.Default()
	}
	parser := sitter.NewParser()
	parser.SetLanguage(java.GetLanguage())
	return &JavaTreeDetector{
		logger:   logger,
		fallback: NewWindowDetector(window, logger),
		parser:   parser,
	}
}

// RequiresAuth reports whether the marker at markerLine is protected.
func (d *JavaTreeDetector) RequiresAuth(file *SourceFile, markerLine int) bool {
	if file.Language != "java" {
		return d.fallback.RequiresAuth(file, markerLine)
	}

	if file.FullPath != d.lastPath {
		d.analyze(file)
	}
	if d.degraded {
		return d.fallback.RequiresAuth(file, markerLine)
	}

	for _, r := range d.protected {
		if markerLine >= r.start && markerLine <= r.end {
			return true
		}
	}
	return false
}

// analyze parses one file and records the line spans of every declaration
// guarded by a security annotation.
func (d *JavaTreeDetector) analyze(file *SourceFile) {
	d.lastPath = file.FullPath
	d.protected = nil
	d.degraded = false

	tree, err := d.parser.ParseCtx(context.Background(), nil, file.Content)
	if err != nil {
		d.logger.Warn("extract.auth.treesitter.parse_error",
			"path", file.Path,
			"err", err,
		)
		d.degraded = true
		return
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		// Tree-sitter is error-tolerant; partial trees still resolve most guards
		d.logger.Debug("extract.auth.treesitter.syntax_errors", "path", file.Path)
	}

	d.collectProtected(root, file.Content)
}

// collectProtected walks the tree for class and method declarations whose
// modifiers carry a security annotation.
func (d *JavaTreeDetector) collectProtected(node *sitter.Node, content []byte) {
	if node == nil {
		return
	}

	switch node.Type() {
	case "class_declaration", "interface_declaration", "method_declaration":
		if declarationIsSecured(node, content) {
			d.protected = append(d.protected, lineRange{
				start: int(node.StartPoint().Row),
				end:   int(node.EndPoint().Row),
			})
		}
	}

	for i := 0; i < int(node.ChildCount()); i++ {
		d.collectProtected(node.Child(i), content)
	}
}

// declarationIsSecured inspects a declaration's modifiers for a security
// annotation.
func declarationIsSecured(node *sitter.Node, content []byte) bool {
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child == nil || child.Type() != "modifiers" {
			continue
		}
		for j := 0; j < int(child.ChildCount()); j++ {
			ann := child.Child(j)
			if ann == nil {
				continue
			}
			if ann.Type() != "marker_annotation" && ann.Type() != "annotation" {
				continue
			}
			if securedAnnotationNames[annotationName(ann, content)] {
				return true
			}
		}
	}
	return false
}

// annotationName extracts the simple name of an annotation node, dropping
// any package qualifier.
func annotationName(ann *sitter.Node, content []byte) string {
	nameNode := ann.ChildByFieldName("name")
	if nameNode == nil {
		return ""
	}
	name := nameNode.Content(content)
	if i := strings.LastIndex(name, "."); i >= 0 {
		name = name[i+1:]
	}
	return name
}
