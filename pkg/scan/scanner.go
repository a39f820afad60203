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

package scan

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"log/slog"

	"github.com/kraklabs/specgen/internal/contract"
)

// Kind identifies one artifact category the scanner discovers candidates for.
type Kind string

// Artifact kinds, in the fixed order the scanner processes them.
const (
	KindEndpoints Kind = "endpoints"
	KindModels    Kind = "models"
	KindViews     Kind = "views"
	KindServices  Kind = "services"
)

// Kinds lists all artifact kinds in processing order.
var Kinds = []Kind{KindEndpoints, KindModels, KindViews, KindServices}

// kindDirNames maps each kind to the conventional directory names searched first.
var kindDirNames = map[Kind][]string{
	KindEndpoints: {"controller", "controllers", "api"},
	KindModels:    {"model", "models", "entity", "entities", "domain"},
	KindViews:     {"views", "pages", "screens"},
	KindServices:  {"service", "services"},
}

// kindDirFallbacks maps a kind to directory names tried only when the primary
// names match nothing. Views fall back to component directories; the other
// kinds fall back to suffix-based file search instead.
var kindDirFallbacks = map[Kind][]string{
	KindViews: {"components"},
}

// kindFileSuffixes maps each kind to lower-cased base-name suffixes used by the
// recursive fallback search when no conventional directory exists.
var kindFileSuffixes = map[Kind][]string{
	KindEndpoints: {"controller", "resource", "routes", "router"},
	KindModels:    {"model", "entity"},
	KindServices:  {"service"},
}

// kindExtensions maps each kind to the accepted file extensions.
var kindExtensions = map[Kind][]string{
	KindEndpoints: {".java", ".kt", ".js", ".ts", ".py"},
	KindModels:    {".java", ".kt", ".js", ".ts", ".py"},
	KindViews:     {".vue", ".jsx", ".tsx", ".js", ".ts"},
	KindServices:  {".java", ".kt", ".js", ".ts", ".py"},
}

// sourceRoots are the conventional top-level directories the fallback file
// search is confined to. When none of them exist the whole root is searched.
var sourceRoots = []string{"src", "app", "lib", "backend", "server", "frontend", "client"}

// ignoredDirNames are directory base names never descended into.
var ignoredDirNames = map[string]bool{
	".git":         true,
	".hg":          true,
	".svn":         true,
	".idea":        true,
	".vscode":      true,
	"node_modules": true,
	"vendor":       true,
	"dist":         true,
	"build":        true,
	"target":       true,
	"out":          true,
	"coverage":     true,
	"__pycache__":  true,
	".next":        true,
	".nuxt":        true,
	"venv":         true,
	".venv":        true,
}

// FileInfo describes one candidate source file.
type FileInfo struct {
	Path     string // Relative path from scan root
	FullPath string // Absolute path
	Size     int64
	Language string // Detected from extension
}

// Result contains the candidate lists discovered for one scan root.
//
// Candidate lists preserve filesystem-traversal order; absence of a kind is
// represented by an empty list, never by an error.
type Result struct {
	RootPath    string
	Candidates  map[Kind][]FileInfo
	MatchedDirs map[Kind][]string // Relative paths of convention-matched directories
	FileCount   int
	SkipReasons map[string]int // Reason -> count (e.g., "too_large", "test_file")
}

// CandidatesFor returns the candidate list for one kind, never nil.
func (r *Result) CandidatesFor(kind Kind) []FileInfo {
	if r.Candidates == nil {
		return nil
	}
	return r.Candidates[kind]
}

// Scanner discovers candidate source files per artifact kind by directory and
// file naming conventions.
type Scanner struct {
	logger      *slog.Logger
	maxFileSize int64
}

// NewScanner creates a scanner with the size limit from the contract package.
func NewScanner(logger *slog.Logger) *Scanner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scanner{
		logger:      logger,
		maxFileSize: int64(contract.MaxSourceFileBytes()),
	}
}

// Scan walks the tree under root once, then resolves candidate lists for every
// artifact kind. Unreadable entries are warned about and counted, never fatal;
// only an unusable root aborts the scan.
func (s *Scanner) Scan(root string) (*Result, error) {
	rootPath, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve scan root: %w", err)
	}
	info, err := os.Stat(rootPath)
	if err != nil {
		return nil, fmt.Errorf("stat scan root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("scan root is not a directory: %s", rootPath)
	}

	s.logger.Info("scan.start", "root", rootPath)

	tree, skipReasons, err := s.walkTree(rootPath)
	if err != nil {
		return nil, fmt.Errorf("walk scan root: %w", err)
	}

	result := &Result{
		RootPath:    rootPath,
		Candidates:  make(map[Kind][]FileInfo, len(Kinds)),
		MatchedDirs: make(map[Kind][]string),
		SkipReasons: skipReasons,
	}

	for _, kind := range Kinds {
		files, dirs := s.resolveKind(tree, kind)
		result.Candidates[kind] = files
		result.MatchedDirs[kind] = dirs
		result.FileCount += len(files)
		s.logger.Info("scan.kind.complete",
			"kind", string(kind),
			"files", len(files),
			"dirs", len(dirs),
		)
	}

	s.logger.Info("scan.complete",
		"root", rootPath,
		"candidates", result.FileCount,
		"skipped", len(skipReasons),
	)

	return result, nil
}

// treeEntry is one walked file, retained with the directory chain that leads
// to it so kind resolution never re-walks the filesystem.
type treeEntry struct {
	rel  string // Relative path, slash-separated
	full string
	size int64
}

// walkedTree is the single-pass snapshot of the scan root.
type walkedTree struct {
	root  string
	files []treeEntry // Traversal order
	dirs  []string    // Relative dir paths, traversal order
}

// walkTree performs the single WalkDir pass, collecting files and directories
// while skipping ignored and oversized entries.
func (s *Scanner) walkTree(rootPath string) (*walkedTree, map[string]int, error) {
	tree := &walkedTree{root: rootPath}
	skipReasons := make(map[string]int)

	err := filepath.WalkDir(rootPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Log but continue on permission errors
			s.logger.Warn("scan.walk.error", "path", path, "err", err)
			skipReasons["unreadable"]++
			return nil
		}

		rel, relErr := filepath.Rel(rootPath, path)
		if relErr != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if rel == "." {
				return nil
			}
			if ignoredDirNames[d.Name()] || strings.HasPrefix(d.Name(), ".") {
				skipReasons["ignored_dir"]++
				return filepath.SkipDir
			}
			tree.dirs = append(tree.dirs, rel)
			return nil
		}

		info, infoErr := d.Info()
		if infoErr != nil {
			s.logger.Warn("scan.walk.stat_error", "path", rel, "err", infoErr)
			skipReasons["unreadable"]++
			return nil
		}

		if s.maxFileSize > 0 && info.Size() > s.maxFileSize {
			skipReasons["too_large"]++
			s.logger.Warn("scan.walk.skip_large_file",
				"path", rel,
				"size", info.Size(),
				"limit", s.maxFileSize,
			)
			return nil
		}

		tree.files = append(tree.files, treeEntry{rel: rel, full: path, size: info.Size()})
		return nil
	})

	return tree, skipReasons, err
}

// resolveKind produces the candidate list for one kind from the walked tree.
//
// Directory-convention matches win; the three non-view kinds fall back to a
// suffix search under conventional source roots when no directory matched.
// Directories are de-duplicated by cleaned path before the file union, and
// the union preserves traversal order.
func (s *Scanner) resolveKind(tree *walkedTree, kind Kind) ([]FileInfo, []string) {
	dirs := matchDirs(tree, kindDirNames[kind])
	if len(dirs) == 0 && len(kindDirFallbacks[kind]) > 0 {
		dirs = matchDirs(tree, kindDirFallbacks[kind])
	}

	if len(dirs) > 0 {
		return s.filesUnderDirs(tree, kind, dirs), dirs
	}

	suffixes := kindFileSuffixes[kind]
	if len(suffixes) == 0 {
		return nil, nil
	}
	s.logger.Debug("scan.kind.fallback", "kind", string(kind), "suffixes", suffixes)
	return s.filesBySuffix(tree, kind, suffixes), nil
}

// matchDirs returns walked directories whose base name matches one of names,
// de-duplicated by cleaned path, in traversal order.
func matchDirs(tree *walkedTree, names []string) []string {
	if len(names) == 0 {
		return nil
	}
	wanted := make(map[string]bool, len(names))
	for _, n := range names {
		wanted[n] = true
	}

	seen := make(map[string]bool)
	var out []string
	for _, dir := range tree.dirs {
		base := strings.ToLower(baseName(dir))
		if !wanted[base] {
			continue
		}
		cleaned := filepath.ToSlash(filepath.Clean(dir))
		if seen[cleaned] {
			continue
		}
		seen[cleaned] = true
		out = append(out, cleaned)
	}
	return out
}

// baseName returns the final element of a slash-separated relative path.
func baseName(rel string) string {
	if i := strings.LastIndex(rel, "/"); i >= 0 {
		return rel[i+1:]
	}
	return rel
}

// filesUnderDirs unions the files located under the matched directories,
// keeping traversal order and dropping duplicates by absolute path.
func (s *Scanner) filesUnderDirs(tree *walkedTree, kind Kind, dirs []string) []FileInfo {
	seen := make(map[string]bool)
	var out []FileInfo
	for _, entry := range tree.files {
		if !underAnyDir(entry.rel, dirs) {
			continue
		}
		if !s.acceptFile(kind, entry.rel) {
			continue
		}
		if seen[entry.full] {
			continue
		}
		seen[entry.full] = true
		out = append(out, toFileInfo(entry))
	}
	return out
}

// filesBySuffix is the fallback search: files under a conventional source root
// whose base name (without extension) ends with one of the kind suffixes.
func (s *Scanner) filesBySuffix(tree *walkedTree, kind Kind, suffixes []string) []FileInfo {
	roots := existingSourceRoots(tree)
	var out []FileInfo
	for _, entry := range tree.files {
		if len(roots) > 0 && !underAnyDir(entry.rel, roots) {
			continue
		}
		if !s.acceptFile(kind, entry.rel) {
			continue
		}
		base := strings.ToLower(strings.TrimSuffix(baseName(entry.rel), filepath.Ext(entry.rel)))
		matched := false
		for _, suffix := range suffixes {
			if strings.HasSuffix(base, suffix) {
				matched = true
				break
			}
		}
		if matched {
			out = append(out, toFileInfo(entry))
		}
	}
	return out
}

// existingSourceRoots returns the conventional source roots present in the
// tree, or nil when none exist (meaning: search everything).
func existingSourceRoots(tree *walkedTree) []string {
	present := make(map[string]bool)
	for _, dir := range tree.dirs {
		if !strings.Contains(dir, "/") {
			present[strings.ToLower(dir)] = true
		}
	}
	var out []string
	for _, root := range sourceRoots {
		if present[root] {
			out = append(out, root)
		}
	}
	return out
}

// underAnyDir reports whether rel sits under one of the given directories.
func underAnyDir(rel string, dirs []string) bool {
	for _, dir := range dirs {
		if strings.HasPrefix(rel, dir+"/") {
			return true
		}
	}
	return false
}

// acceptFile applies the per-kind extension filter and drops test files.
func (s *Scanner) acceptFile(kind Kind, rel string) bool {
	ext := strings.ToLower(filepath.Ext(rel))
	ok := false
	for _, allowed := range kindExtensions[kind] {
		if ext == allowed {
			ok = true
			break
		}
	}
	if !ok {
		return false
	}
	base := strings.ToLower(baseName(rel))
	if strings.Contains(base, ".test.") || strings.Contains(base, ".spec.") ||
		strings.HasSuffix(strings.TrimSuffix(base, ext), "_test") {
		return false
	}
	return true
}

func toFileInfo(entry treeEntry) FileInfo {
	return FileInfo{
		Path:     entry.rel,
		FullPath: entry.full,
		Size:     entry.size,
		Language: DetectLanguage(entry.rel),
	}
}

// DetectLanguage detects the source ecosystem from a file extension.
func DetectLanguage(path string) string {
	ext := strings.ToLower(filepath.Ext(path))

	langMap := map[string]string{
		".java": "java",
		".kt":   "java",
		".py":   "python",
		".js":   "javascript",
		".jsx":  "javascript",
		".ts":   "typescript",
		".tsx":  "typescript",
		".vue":  "vue",
	}

	if lang, ok := langMap[ext]; ok {
		return lang
	}
	return ""
}
