package unindex

// RewriteEdit records one specifier change inside a referring file.
type RewriteEdit struct {
	File string
	Old  string
	New  string
}

type Summary struct {
	Renamed   []string
	Rewritten []string
	Edits     []RewriteEdit
	Failed    []string
	Message   string
}
