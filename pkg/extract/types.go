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

import "strings"

// Endpoint is one HTTP route registration discovered in a source file.
// Endpoints are immutable once created and are grouped by OwningUnitName
// for rendering. Duplicate tuples are preserved in discovery order.
type Endpoint struct {
	HTTPMethod     string // GET, POST, PUT, PATCH, DELETE
	Path           string // Base path + sub path, concatenated verbatim
	OwningUnitName string
	RequiresAuth   bool
}

// Field is one parsed field declaration of a data model.
type Field struct {
	Name        string
	Type        string // Raw source type text
	Category    string // Normalized category, see CategoryForType
	Annotations []string
}

// DataModelRecord describes one discovered model file.
//
// FieldCount always reflects the number of field-declaration lines seen in
// the counting pass. Fields carries the detail parse of exactly those lines;
// when the detail pass cannot re-open the file, Fields stays empty and
// FieldCount is retained.
type DataModelRecord struct {
	Name       string
	FieldCount int
	Fields     []Field
}

// ViewRecord describes one discovered view file. No relationships tracked.
type ViewRecord struct {
	Name     string
	FileName string
}

// ServiceRecord describes one discovered service file.
type ServiceRecord struct {
	Name string
}

// SourceFile is one loaded candidate file, shared between the extraction
// passes and the auth detectors so a file is read at most once per pass.
type SourceFile struct {
	Path     string // Relative path, for logs and records
	FullPath string
	Language string
	Content  []byte
	Lines    []string
}

// Field categories used by the schema renderers.
const (
	CategoryString  = "string"
	CategoryInteger = "integer"
	CategoryLong    = "long"
	CategoryDouble  = "double"
	CategoryBoolean = "boolean"
	CategoryDate    = "date"
	CategoryList    = "list"
	CategoryObject  = "object"
)

// typeCategories maps lower-cased base type names to categories. Anything
// not listed here falls through to "object"; unknown types never block
// generation.
var typeCategories = map[string]string{
	// Strings
	"string": CategoryString, "str": CategoryString, "char": CategoryString,
	"varchar": CategoryString, "text": CategoryString, "uuid": CategoryString,

	// Integers
	"int": CategoryInteger, "integer": CategoryInteger, "short": CategoryInteger,
	"byte": CategoryInteger, "smallint": CategoryInteger,

	// Longs
	"long": CategoryLong, "bigint": CategoryLong, "biginteger": CategoryLong,

	// Floating point and decimals
	"double": CategoryDouble, "float": CategoryDouble, "decimal": CategoryDouble,
	"bigdecimal": CategoryDouble, "number": CategoryDouble, "numeric": CategoryDouble,

	// Booleans
	"boolean": CategoryBoolean, "bool": CategoryBoolean,

	// Dates and times
	"date": CategoryDate, "localdate": CategoryDate, "localdatetime": CategoryDate,
	"datetime": CategoryDate, "timestamp": CategoryDate, "instant": CategoryDate,
	"zoneddatetime": CategoryDate, "offsetdatetime": CategoryDate, "time": CategoryDate,

	// Collections
	"list": CategoryList, "set": CategoryList, "array": CategoryList,
	"collection": CategoryList, "iterable": CategoryList,
}

// CategoryForType maps a raw source type to its rendering category.
// Array and generic-collection shapes map to "list" before the base-name
// lookup; unrecognized types map to "object".
func CategoryForType(raw string) string {
	t := strings.TrimSpace(raw)
	if t == "" {
		return CategoryObject
	}

	if strings.HasSuffix(t, "[]") {
		return CategoryList
	}

	lower := strings.ToLower(t)
	if i := strings.IndexAny(lower, "<("); i > 0 {
		lower = lower[:i]
	}
	// Optional markers and package qualifiers do not affect the category
	lower = strings.TrimSuffix(lower, "?")
	if i := strings.LastIndex(lower, "."); i >= 0 {
		lower = lower[i+1:]
	}

	if cat, ok := typeCategories[lower]; ok {
		return cat
	}
	return CategoryObject
}
