package unindex

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"

	"github.com/atotto/clipboard"
)

type Config struct {
	Folder     string
	ConfigPath string
	Root       string
	DryRun     bool
	CopyPlan   bool
	ReloadNvim bool
	Patterns   []string
}

type ProgressUpdate func(current, total int)

type App struct {
	cfg              *Config
	pathResolver     *PathResolver
	out              io.Writer
	progressCallback ProgressUpdate
}

type DetailedError struct {
	Err   error
	Stack []byte
}

func (e *DetailedError) Error() string { return e.Err.Error() }

// ConfigError is a pre-flight failure: nothing has been touched yet.
type ConfigError struct {
	Path   string
	Reason string
}

func (e *ConfigError) Error() string { return fmt.Sprintf("%s: %s", e.Reason, e.Path) }

func NewApp(cfg *Config) (*App, error) {
	pr, err := NewPathResolver()
	if err != nil {
		return nil, err
	}

	if cfg.Folder == "" {
		cfg.Folder = "src"
	}
	if cfg.ConfigPath == "" {
		cfg.ConfigPath = "tsconfig.json"
	}
	if cfg.Root == "" {
		cfg.Root = filepath.Dir(pr.Resolve(cfg.ConfigPath))
	}

	return &App{cfg: cfg, pathResolver: pr, out: os.Stdout}, nil
}

func (a *App) SetOutput(w io.Writer)                 { a.out = w }
func (a *App) SetProgressCallback(cb ProgressUpdate) { a.progressCallback = cb }

func (a *App) Execute() (summary Summary, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &DetailedError{Err: fmt.Errorf("panic: %v", r), Stack: debug.Stack()}
		}
	}()

	if err := a.preflight(); err != nil {
		return Summary{}, err
	}

	configPath := a.pathResolver.Resolve(a.cfg.ConfigPath)
	tsCfg, err := LoadTSConfig(configPath)
	if err != nil {
		return Summary{}, err
	}

	root := a.pathResolver.Resolve(a.cfg.Root)
	fmt.Fprintf(a.out, "folder: %s\nconfig: %s\nroot: %s\n", a.cfg.Folder, configPath, root)

	project, err := LoadProject(root, tsCfg, a.cfg.Patterns)
	if err != nil {
		return Summary{}, err
	}
	fmt.Fprintf(a.out, "%d source files loaded\n", project.FileCount())

	engine := NewEngine(project, a.cfg.Folder, a.cfg.DryRun)
	engine.SetProgressCallback(a.progressCallback)

	summary, runErr := engine.Run()
	if runErr != nil {
		// Renames already on disk stay listed, so a failed run still
		// reports exactly what was migrated.
		a.relativizeSummaryPaths(&summary)
		return summary, runErr
	}

	if a.cfg.DryRun {
		summary.Message = fmt.Sprintf("Dry run: %d index files would be renamed", len(summary.Renamed))
		if a.cfg.CopyPlan {
			if err := clipboard.WriteAll(planText(summary)); err != nil {
				fmt.Fprintf(a.out, "could not copy plan to clipboard: %v\n", err)
			}
		}
		a.relativizeSummaryPaths(&summary)
		return summary, nil
	}

	if err := project.Save(); err != nil {
		a.relativizeSummaryPaths(&summary)
		return summary, err
	}

	if a.cfg.ReloadNvim {
		a.reloadNvim(summary)
	}

	summary.Message = fmt.Sprintf("Renamed %d index files, rewrote imports in %d files",
		len(summary.Renamed), len(summary.Rewritten))
	a.relativizeSummaryPaths(&summary)
	return summary, nil
}

func (a *App) preflight() error {
	configPath := a.pathResolver.Resolve(a.cfg.ConfigPath)
	if _, err := os.Stat(configPath); err != nil {
		return &ConfigError{Path: configPath, Reason: "config file not found"}
	}

	folderPath := a.pathResolver.Resolve(a.cfg.Folder)
	if _, err := os.Stat(folderPath); err != nil {
		return &ConfigError{Path: folderPath, Reason: "target folder not found"}
	}
	return nil
}

func planText(s Summary) string {
	return strings.Join(s.Renamed, "\n") + "\n"
}

func (a *App) reloadNvim(summary Summary) {
	reloader, err := NewNvimReloader()
	if err != nil {
		fmt.Fprintf(a.out, "nvim reload skipped: %v\n", err)
		return
	}
	defer reloader.Close()

	var paths []string
	for _, r := range summary.Renamed {
		if parts := strings.SplitN(r, " -> ", 2); len(parts) == 2 {
			paths = append(paths, parts[1])
		}
	}
	paths = append(paths, summary.Rewritten...)

	if failed := reloader.ReloadFiles(paths); len(failed) > 0 {
		fmt.Fprintf(a.out, "nvim could not reload %d buffers\n", len(failed))
	}
}

func (a *App) relativizeSummaryPaths(s *Summary) {
	wd, _ := os.Getwd()
	relPath := func(p string) string {
		if r, err := filepath.Rel(wd, filepath.FromSlash(p)); err == nil {
			return filepath.ToSlash(r)
		}
		return p
	}

	relList := func(paths []string) []string {
		var res []string
		for _, p := range paths {
			if strings.Contains(p, " -> ") {
				parts := strings.SplitN(p, " -> ", 2)
				res = append(res, fmt.Sprintf("%s -> %s", relPath(parts[0]), relPath(parts[1])))
			} else {
				res = append(res, relPath(p))
			}
		}
		return res
	}
	s.Renamed = relList(s.Renamed)
	s.Rewritten = relList(s.Rewritten)
	s.Failed = relList(s.Failed)
	for i := range s.Edits {
		s.Edits[i].File = relPath(s.Edits[i].File)
	}
}
