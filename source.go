package unindex

import (
	"regexp"
	"sort"
)

// The specifier string literal in the import forms the rewriter understands:
// import/export ... from '...', bare import '...', and require()/import().
var specifierRegexes = []*regexp.Regexp{
	regexp.MustCompile(`\b(?:import|export)\b[^'";]*?\bfrom\s*['"]([^'"\n]+)['"]`),
	regexp.MustCompile(`\bimport\s*['"]([^'"\n]+)['"]`),
	regexp.MustCompile(`\b(?:require|import)\s*\(\s*['"]([^'"\n]+)['"]\s*\)`),
}

// SourceFile is one loaded file: absolute slash path, raw content and the
// import declarations found in it. Content edits stay in memory until
// Project.Save.
type SourceFile struct {
	Path string

	content []byte
	imports []*ImportDecl
	dirty   bool
}

// ImportDecl is a single import statement's specifier, addressed by the
// byte span of the literal's contents (quotes excluded).
type ImportDecl struct {
	file       *SourceFile
	start, end int
}

func newSourceFile(path string, content []byte) *SourceFile {
	f := &SourceFile{Path: path, content: content}
	f.parseImports()
	return f
}

func (f *SourceFile) parseImports() {
	seen := make(map[int]struct{})
	for _, re := range specifierRegexes {
		for _, m := range re.FindAllSubmatchIndex(f.content, -1) {
			start, end := m[2], m[3]
			if _, ok := seen[start]; ok {
				continue
			}
			seen[start] = struct{}{}
			f.imports = append(f.imports, &ImportDecl{file: f, start: start, end: end})
		}
	}
	sort.Slice(f.imports, func(i, j int) bool { return f.imports[i].start < f.imports[j].start })
}

func (f *SourceFile) Imports() []*ImportDecl { return f.imports }
func (f *SourceFile) Content() []byte       { return f.content }
func (f *SourceFile) Dirty() bool           { return f.dirty }

func (d *ImportDecl) File() *SourceFile { return d.file }

func (d *ImportDecl) Specifier() string {
	return string(d.file.content[d.start:d.end])
}

// SetSpecifier splices the new specifier into the file content and shifts
// the spans of every declaration after this one.
func (d *ImportDecl) SetSpecifier(spec string) {
	f := d.file
	delta := len(spec) - (d.end - d.start)

	updated := make([]byte, 0, len(f.content)+delta)
	updated = append(updated, f.content[:d.start]...)
	updated = append(updated, spec...)
	updated = append(updated, f.content[d.end:]...)
	f.content = updated

	for _, other := range f.imports {
		if other.start >= d.end && other != d {
			other.start += delta
			other.end += delta
		}
	}
	d.end += delta
	f.dirty = true
}
