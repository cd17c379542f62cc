package unindex

import (
	"path"
	"strings"
)

// Extensions a specifier may omit, in probe order. The same list defines
// which index files count as standard (see engine.go).
var recognizedExtensions = []string{"ts", "tsx", "js", "jsx", "mts", "cts", "mjs", "cjs"}

// Resolver maps specifier strings to loaded files, the way the compiler
// would: relative paths first, then paths aliases, then baseUrl. It only
// ever probes the loaded file set, never the disk, so bare package names
// resolve to nothing.
type Resolver struct {
	project *Project
	cfg     *TSConfig
}

func NewResolver(p *Project, cfg *TSConfig) *Resolver {
	return &Resolver{project: p, cfg: cfg}
}

func (r *Resolver) Resolve(spec string, from *SourceFile) *SourceFile {
	if spec == "" {
		return nil
	}

	if strings.HasPrefix(spec, "./") || strings.HasPrefix(spec, "../") || spec == "." || spec == ".." {
		return r.probe(path.Join(path.Dir(from.Path), spec))
	}

	if r.cfg != nil {
		for _, candidate := range r.cfg.ExpandAlias(spec) {
			if f := r.probe(candidate); f != nil {
				return f
			}
		}
		if candidate := r.cfg.BaseCandidate(spec); candidate != "" {
			return r.probe(candidate)
		}
	}
	return nil
}

// probe tries the candidate as written, with each recognized extension
// appended, and as a directory holding an index file.
func (r *Resolver) probe(base string) *SourceFile {
	if f := r.project.FileAt(base); f != nil {
		return f
	}
	for _, ext := range recognizedExtensions {
		if f := r.project.FileAt(base + "." + ext); f != nil {
			return f
		}
	}
	for _, ext := range recognizedExtensions {
		if f := r.project.FileAt(base + "/index." + ext); f != nil {
			return f
		}
	}
	return nil
}
