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
	"os"
	"regexp"
	"strings"
)

// fieldPattern matches one field-declaration shape on a single source line.
// A line matching reject never counts as a field, whatever the main pattern
// says; this keeps method signatures and constants out of the field count.
type fieldPattern struct {
	re        *regexp.Regexp
	nameIndex int
	typeIndex int
	reject    *regexp.Regexp
}

// javaFieldPatterns match JPA-style member declarations.
var javaFieldPatterns = []fieldPattern{
	{
		re:        regexp.MustCompile(`^\s*(?:private|protected|public)\s+([\w.<>\[\], ]*?)\s+(\w+)\s*(?:=[^;]*)?;`),
		typeIndex: 1,
		nameIndex: 2,
		// Methods carry a paren before any initializer; statics are not instance fields
		reject: regexp.MustCompile(`^\s*(?:private|protected|public)[^=]*\(|\bstatic\b`),
	},
}

// jsFieldPatterns match Mongoose schema entries and TS class/interface fields.
var jsFieldPatterns = []fieldPattern{
	// Mongoose: name: { type: String, required: true }
	{
		re:        regexp.MustCompile(`^\s*(\w+)\s*:\s*\{\s*type\s*:\s*(\w+)`),
		nameIndex: 1,
		typeIndex: 2,
	},
	// TS members and shorthand schema entries: email?: string;  name: String,
	{
		re:        regexp.MustCompile(`^\s*(?:(?:public|private|protected|readonly)\s+)*(\w+)\??\s*:\s*([\w\[\]<>. |]+?)\s*[;,]?\s*$`),
		nameIndex: 1,
		typeIndex: 2,
		reject:    regexp.MustCompile(`\(|=>|\bfunction\b|\bcase\b|\bdefault\b`),
	},
}

// pythonFieldPatterns match SQLAlchemy columns and annotated class fields.
var pythonFieldPatterns = []fieldPattern{
	// SQLAlchemy: name = db.Column(db.String(80))
	{
		re:        regexp.MustCompile(`^\s*(\w+)\s*=\s*(?:\w+\.)?Column\s*\(\s*(?:\w+\.)?(\w+)`),
		nameIndex: 1,
		typeIndex: 2,
	},
	// Pydantic / dataclass annotations: name: str = "x"
	{
		re:        regexp.MustCompile(`^\s+(\w+)\s*:\s*([\w.\[\]]+)\s*(?:=.*)?$`),
		nameIndex: 1,
		typeIndex: 2,
		reject:    regexp.MustCompile(`^\s*(?:def|class|return|if|elif|else|for|while|with|import|from|@|#)\b`),
	},
}

// fieldTableFor returns the declaration table for a detected language.
func fieldTableFor(language string) []fieldPattern {
	switch language {
	case "java":
		return javaFieldPatterns
	case "javascript", "typescript":
		return jsFieldPatterns
	case "python":
		return pythonFieldPatterns
	default:
		return nil
	}
}

// annotationLine matches a Java/Python annotation or decorator line.
var annotationLine = regexp.MustCompile(`^\s*@[\w.]+`)

// ExtractModel produces the model record of one loaded file.
//
// The counting pass runs over the already-loaded content; the detail pass
// re-opens the file. When the re-open fails the record keeps its field count
// with an empty field list, so a model never silently disappears from the
// docs just because detail parsing raced a file change.
func (e *Extractor) ExtractModel(file *SourceFile) *DataModelRecord {
	table := fieldTableFor(file.Language)
	if len(table) == 0 {
		return nil
	}

	record := &DataModelRecord{
		Name:       modelNameFromFile(file),
		FieldCount: countFieldLines(file.Lines, table),
	}

	detail, err := os.ReadFile(file.FullPath)
	if err != nil {
		e.logger.Warn("extract.model.detail_unavailable",
			"path", file.Path,
			"err", err,
		)
		return record
	}

	record.Fields = parseFields(splitLines(detail), table)
	e.logger.Debug("extract.model",
		"path", file.Path,
		"name", record.Name,
		"fields", record.FieldCount,
	)
	return record
}

// countFieldLines counts the lines matching a field-declaration pattern.
func countFieldLines(lines []string, table []fieldPattern) int {
	count := 0
	for _, line := range lines {
		if _, m := matchField(table, line); m != nil {
			count++
		}
	}
	return count
}

// parseFields runs the detail pass over exactly the lines the counting pass
// matches, so len(fields) always equals the field count when detail content
// is available.
func parseFields(lines []string, table []fieldPattern) []Field {
	var fields []Field
	for i, line := range lines {
		p, m := matchField(table, line)
		if m == nil {
			continue
		}

		field := Field{Annotations: precedingAnnotations(lines, i)}
		if p.nameIndex > 0 && p.nameIndex < len(m) {
			field.Name = m[p.nameIndex]
		}
		if p.typeIndex > 0 && p.typeIndex < len(m) {
			field.Type = strings.TrimSpace(m[p.typeIndex])
		}
		field.Category = CategoryForType(field.Type)

		fields = append(fields, field)
	}
	return fields
}

// matchField tries the table entries in order and returns the first hit.
func matchField(table []fieldPattern, line string) (*fieldPattern, []string) {
	for i := range table {
		p := &table[i]
		if p.reject != nil && p.reject.MatchString(line) {
			continue
		}
		if m := p.re.FindStringSubmatch(line); m != nil {
			return p, m
		}
	}
	return nil, nil
}

// precedingAnnotations collects the unbroken run of annotation lines
// directly above a field declaration, in source order.
func precedingAnnotations(lines []string, fieldIndex int) []string {
	var reversed []string
	for i := fieldIndex - 1; i >= 0; i-- {
		if !annotationLine.MatchString(lines[i]) {
			break
		}
		reversed = append(reversed, strings.TrimSpace(lines[i]))
	}

	if len(reversed) == 0 {
		return nil
	}
	annotations := make([]string, 0, len(reversed))
	for i := len(reversed) - 1; i >= 0; i-- {
		annotations = append(annotations, reversed[i])
	}
	return annotations
}
