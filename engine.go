package unindex

import (
	"errors"
	"fmt"
	"path"
	"path/filepath"
	"regexp"
	"strings"
)

var ErrTargetExists = errors.New("rename target already exists")

// Used when a selected file name fits neither naming pattern. Unreachable
// through the index. prefix filter, but derivation stays total.
const defaultExtension = "ts"

var (
	// index.<middle...>.<ext>, e.g. index.test.ts. Renamed, referrers untouched.
	patternIndexRegex = regexp.MustCompile(`^index((?:\.[^.]+)+)\.([^.]+)$`)
	// index.<ext> with a single extension segment, e.g. index.tsx.
	singleExtRegex = regexp.MustCompile(`^index\.([^.]+)$`)
	// Exactly index. + a recognized extension: only these get their
	// referrers rewritten, since only these are imported by bare specifier.
	standardIndexRegex = regexp.MustCompile(`^index\.(?:` + strings.Join(recognizedExtensions, "|") + `)$`)
)

// Engine renames the index files under the target folder and rewrites the
// import specifiers that resolve to them. Files are processed one at a
// time in sorted path order; a failed rename aborts the batch, leaving
// everything migrated so far recorded in the summary.
type Engine struct {
	project  *Project
	folder   string
	dryRun   bool
	progress ProgressUpdate
}

func NewEngine(project *Project, folder string, dryRun bool) *Engine {
	return &Engine{
		project: project,
		folder:  filepath.ToSlash(folder),
		dryRun:  dryRun,
	}
}

func (e *Engine) SetProgressCallback(cb ProgressUpdate) { e.progress = cb }

// SelectIndexFiles filters the project to files whose path contains the
// target folder and whose base name starts with "index.". Substring
// containment is intentional: a folder of "src" matches any path with
// "src" anywhere in it.
func (e *Engine) SelectIndexFiles() []*SourceFile {
	var selected []*SourceFile
	for _, f := range e.project.Files() {
		if !strings.Contains(f.Path, e.folder) {
			continue
		}
		if !strings.HasPrefix(path.Base(f.Path), "index.") {
			continue
		}
		selected = append(selected, f)
	}
	return selected
}

func (e *Engine) Run() (Summary, error) {
	files := e.SelectIndexFiles()
	var summary Summary

	rewritten := make(map[string]struct{})
	for i, f := range files {
		oldPath := f.Path
		base := path.Base(oldPath)
		dir := path.Dir(oldPath)
		parent := path.Base(dir)

		newPath := path.Join(dir, deriveNewBase(base, parent))
		isStandard := standardIndexRegex.MatchString(base)

		// Capture referrers before the rename rekeys the file.
		referrers := e.project.ReferrersOf(oldPath)

		if !e.dryRun {
			if err := e.project.Rename(oldPath, newPath); err != nil {
				summary.Failed = append(summary.Failed, oldPath)
				return summary, fmt.Errorf("renaming %s: %w", oldPath, err)
			}
		}
		summary.Renamed = append(summary.Renamed, fmt.Sprintf("%s -> %s", oldPath, newPath))

		if isStandard {
			for _, decl := range referrers {
				old := decl.Specifier()
				next := rewriteSpecifier(old, parent)
				if !e.dryRun {
					decl.SetSpecifier(next)
				}
				summary.Edits = append(summary.Edits, RewriteEdit{File: decl.File().Path, Old: old, New: next})
				if _, ok := rewritten[decl.File().Path]; !ok {
					rewritten[decl.File().Path] = struct{}{}
					summary.Rewritten = append(summary.Rewritten, decl.File().Path)
				}
			}
		}

		if e.progress != nil {
			e.progress(i+1, len(files))
		}
	}
	return summary, nil
}

// deriveNewBase computes the renamed base name: the parent directory name
// takes over the "index" stem, keeping the full extension suffix.
func deriveNewBase(base, parent string) string {
	if m := patternIndexRegex.FindStringSubmatch(base); m != nil {
		return parent + m[1] + "." + m[2]
	}
	if m := singleExtRegex.FindStringSubmatch(base); m != nil {
		return parent + "." + m[1]
	}
	return parent + "." + defaultExtension
}

// rewriteSpecifier retargets one specifier at the renamed file. An
// explicit /index suffix is replaced by the new name; a directory-style
// specifier gains it.
func rewriteSpecifier(spec, parent string) string {
	if strings.HasSuffix(spec, "/index") {
		return strings.TrimSuffix(spec, "/index") + "/" + parent
	}
	return spec + "/" + parent
}
