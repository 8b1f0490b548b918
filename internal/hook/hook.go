// Package hook runs a user-supplied Risor script over each resolved source
// link, letting a documentation site rewrite URLs without rebuilding the
// tool (mirror hosts, deep-link formats, release archives).
package hook

import (
	"context"
	"fmt"
	"os"

	"github.com/risor-io/risor"
	"github.com/risor-io/risor/object"
)

// Link carries the resolved-link fields exposed to the script as globals.
type Link struct {
	URL       string
	File      string
	LineStart int // 0 when the link has no line information
	LineEnd   int
	Branch    string
	Symbol    string
	Package   string
}

// Hook is a loaded link-rewriting script.
type Hook struct {
	source string
	label  string
}

// New wraps Risor source code directly. Useful for testing without files.
func New(source, label string) *Hook {
	return &Hook{source: source, label: label}
}

// Load reads a .risor script from disk.
func Load(path string) (*Hook, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("hook: loading script %s: %w", path, err)
	}
	return &Hook{source: string(data), label: path}, nil
}

// Rewrite evaluates the script with the link's fields as globals. A string
// result replaces the URL; a nil result keeps it. Script errors and
// non-string results propagate — a broken hook is a configuration bug that
// should stop the documentation build.
func (h *Hook) Rewrite(ctx context.Context, link Link) (string, error) {
	result, err := risor.Eval(ctx, h.source,
		risor.WithGlobal("url", link.URL),
		risor.WithGlobal("file", link.File),
		risor.WithGlobal("line_start", link.LineStart),
		risor.WithGlobal("line_end", link.LineEnd),
		risor.WithGlobal("branch", link.Branch),
		risor.WithGlobal("symbol", link.Symbol),
		risor.WithGlobal("package", link.Package),
	)
	if err != nil {
		return "", fmt.Errorf("hook: script %s: %w", h.label, err)
	}

	switch v := result.(type) {
	case nil, *object.NilType:
		return link.URL, nil
	case *object.String:
		if v.Value() == "" {
			return link.URL, nil
		}
		return v.Value(), nil
	default:
		return "", fmt.Errorf("hook: script %s returned %s, want string or nil", h.label, result.Type())
	}
}
