package unindex

import "fmt"

// Run executes a full rename-and-rewrite pass programmatically, without
// the TUI. Output defaults to stdout; use NewApp directly to redirect it.
func Run(cfg Config) (Summary, error) {
	app, err := NewApp(&cfg)
	if err != nil {
		return Summary{}, fmt.Errorf("failed to initialize unindex app: %w", err)
	}
	return app.Execute()
}
