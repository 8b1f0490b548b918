package main

// CLIResult is the top-level JSON envelope for all commands.
type CLIResult struct {
	Command    string `json:"command"`
	Results    any    `json:"results"`
	TotalCount *int   `json:"total_count,omitempty"`
	Error      string `json:"error,omitempty"`
}

// CLIBranch reports the branch source links point at.
type CLIBranch struct {
	Branch string `json:"branch"`
}

// CLILink is a resolved source link. External marks links into another
// project's documentation rather than the repository itself.
type CLILink struct {
	Package  string `json:"package"`
	Symbol   string `json:"symbol,omitempty"`
	URL      string `json:"url"`
	External bool   `json:"external,omitempty"`
}

// CLISymbol is a JSON-friendly symbol representation.
type CLISymbol struct {
	ID        int64    `json:"id"`
	Name      string   `json:"name"`
	Kind      string   `json:"kind"`
	Parent    string   `json:"parent,omitempty"`
	Modifiers []string `json:"modifiers,omitempty"`
	File      string   `json:"file,omitempty"`
	StartLine *int     `json:"start_line,omitempty"`
	EndLine   *int     `json:"end_line,omitempty"`
}

// CLIPackage is an indexed package.
type CLIPackage struct {
	Package string `json:"package"`
}
