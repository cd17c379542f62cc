package unindex

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultPatterns selects the source and test files the loader parses.
var DefaultPatterns = []string{
	"**/*.{ts,tsx,mts,cts}",
	"**/*.{js,jsx,mjs,cjs}",
}

// Project is the in-memory model of every source file under the context
// root. All mutation is deferred: renames hit the filesystem immediately,
// content edits only on Save.
type Project struct {
	Root   string
	Config *TSConfig

	files    map[string]*SourceFile
	sorted   []string
	resolver *Resolver

	// referrers maps a file's absolute slash path to every import
	// declaration across the project that resolves to it.
	referrers map[string][]*ImportDecl
}

func LoadProject(root string, cfg *TSConfig, patterns []string) (*Project, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	if len(patterns) == 0 {
		patterns = DefaultPatterns
	}

	p := &Project{
		Root:      filepath.ToSlash(absRoot),
		Config:    cfg,
		files:     make(map[string]*SourceFile),
		referrers: make(map[string][]*ImportDecl),
	}

	matcher := newIgnoreMatcher(absRoot)
	err = filepath.WalkDir(absRoot, func(walkPath string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if walkPath != absRoot && matcher.SkipDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}

		rel, err := filepath.Rel(absRoot, walkPath)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		matched := false
		for _, pattern := range patterns {
			if ok, _ := doublestar.Match(pattern, rel); ok {
				matched = true
				break
			}
		}
		if !matched || matcher.Ignore(walkPath, false) {
			return nil
		}

		data, err := os.ReadFile(walkPath)
		if err != nil {
			return err
		}
		p.addFile(newSourceFile(filepath.ToSlash(walkPath), data))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("loading project under %s: %w", root, err)
	}

	p.resolver = NewResolver(p, cfg)
	p.buildReferrers()
	return p, nil
}

func (p *Project) addFile(f *SourceFile) {
	if _, exists := p.files[f.Path]; !exists {
		p.sorted = append(p.sorted, f.Path)
		sort.Strings(p.sorted)
	}
	p.files[f.Path] = f
}

// Files returns all loaded files in sorted path order.
func (p *Project) Files() []*SourceFile {
	result := make([]*SourceFile, 0, len(p.sorted))
	for _, path := range p.sorted {
		result = append(result, p.files[path])
	}
	return result
}

func (p *Project) FileAt(path string) *SourceFile { return p.files[path] }
func (p *Project) FileCount() int                 { return len(p.files) }
func (p *Project) Resolver() *Resolver            { return p.resolver }

// ReferrersOf returns every import declaration that resolves to the file
// at the given path. The index is built once at load time.
func (p *Project) ReferrersOf(path string) []*ImportDecl {
	return p.referrers[path]
}

func (p *Project) buildReferrers() {
	for _, path := range p.sorted {
		f := p.files[path]
		for _, decl := range f.Imports() {
			target := p.resolver.Resolve(decl.Specifier(), f)
			if target == nil {
				continue
			}
			p.referrers[target.Path] = append(p.referrers[target.Path], decl)
		}
	}
}

// Rename moves a loaded file on disk and rekeys it in the project.
// The target path must not already exist.
func (p *Project) Rename(oldPath, newPath string) error {
	f := p.files[oldPath]
	if f == nil {
		return fmt.Errorf("no loaded file at %s", oldPath)
	}
	if _, err := os.Stat(filepath.FromSlash(newPath)); err == nil {
		return fmt.Errorf("%w: %s", ErrTargetExists, newPath)
	}
	if err := os.Rename(filepath.FromSlash(oldPath), filepath.FromSlash(newPath)); err != nil {
		return err
	}

	delete(p.files, oldPath)
	f.Path = newPath
	p.files[newPath] = f

	idx := sort.SearchStrings(p.sorted, oldPath)
	if idx < len(p.sorted) && p.sorted[idx] == oldPath {
		p.sorted = append(p.sorted[:idx], p.sorted[idx+1:]...)
	}
	p.sorted = append(p.sorted, newPath)
	sort.Strings(p.sorted)

	if refs, ok := p.referrers[oldPath]; ok {
		delete(p.referrers, oldPath)
		p.referrers[newPath] = refs
	}
	return nil
}

// Save flushes every edited file back to disk.
func (p *Project) Save() error {
	for _, path := range p.sorted {
		f := p.files[path]
		if !f.Dirty() {
			continue
		}
		if err := os.WriteFile(filepath.FromSlash(f.Path), f.Content(), 0644); err != nil {
			return fmt.Errorf("writing %s: %w", f.Path, err)
		}
		f.dirty = false
	}
	return nil
}
