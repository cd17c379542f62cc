package unindex

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/tidwall/gjson"
)

// TSConfig holds the subset of tsconfig.json the resolver cares about:
// baseUrl and the paths alias table.
type TSConfig struct {
	Path    string
	Dir     string
	BaseURL string
	Paths   map[string][]string

	sortedAliases []string
}

func LoadTSConfig(configPath string) (*TSConfig, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("could not read %s: %w", configPath, err)
	}

	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("could not parse %s: invalid JSON", configPath)
	}

	abs, err := filepath.Abs(configPath)
	if err != nil {
		return nil, err
	}

	cfg := &TSConfig{
		Path:  filepath.ToSlash(abs),
		Dir:   filepath.ToSlash(filepath.Dir(abs)),
		Paths: make(map[string][]string),
	}

	if baseURL := gjson.GetBytes(data, "compilerOptions.baseUrl"); baseURL.Exists() {
		cfg.BaseURL = path.Join(cfg.Dir, filepath.ToSlash(baseURL.String()))
	}

	gjson.GetBytes(data, "compilerOptions.paths").ForEach(func(key, value gjson.Result) bool {
		var targets []string
		value.ForEach(func(_, target gjson.Result) bool {
			targets = append(targets, filepath.ToSlash(target.String()))
			return true
		})
		cfg.Paths[key.String()] = targets
		return true
	})

	// Longest alias pattern first, so "@app/components/*" beats "@app/*".
	for alias := range cfg.Paths {
		cfg.sortedAliases = append(cfg.sortedAliases, alias)
	}
	sort.Slice(cfg.sortedAliases, func(i, j int) bool {
		if len(cfg.sortedAliases[i]) != len(cfg.sortedAliases[j]) {
			return len(cfg.sortedAliases[i]) > len(cfg.sortedAliases[j])
		}
		return cfg.sortedAliases[i] < cfg.sortedAliases[j]
	})

	return cfg, nil
}

// ExpandAlias maps a non-relative specifier through the paths table and
// returns the candidate base paths to probe, absolute with forward slashes.
// An empty result means no alias matched.
func (c *TSConfig) ExpandAlias(spec string) []string {
	root := c.BaseURL
	if root == "" {
		root = c.Dir
	}

	for _, alias := range c.sortedAliases {
		star := strings.Index(alias, "*")
		var matched string
		switch {
		case star < 0:
			if spec != alias {
				continue
			}
		default:
			prefix, suffix := alias[:star], alias[star+1:]
			if !strings.HasPrefix(spec, prefix) || !strings.HasSuffix(spec, suffix) {
				continue
			}
			matched = spec[len(prefix) : len(spec)-len(suffix)]
		}

		var candidates []string
		for _, target := range c.Paths[alias] {
			candidates = append(candidates, path.Join(root, strings.Replace(target, "*", matched, 1)))
		}
		return candidates
	}
	return nil
}

// BaseCandidate resolves a non-relative specifier against baseUrl.
// Returns "" when no baseUrl is configured.
func (c *TSConfig) BaseCandidate(spec string) string {
	if c.BaseURL == "" {
		return ""
	}
	return path.Join(c.BaseURL, spec)
}
