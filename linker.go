package doclink

import (
	"context"
	"fmt"
	"strings"

	"github.com/jward/doclink/internal/hook"
	"github.com/jward/doclink/internal/store"
)

// SymbolRef identifies a documented symbol: the import path of its package
// and the dotted name within the package ("Gate" or "Gate.Apply").
type SymbolRef struct {
	Package  string
	Fullname string
}

// NotFoundError reports a dotted-name segment missing from the index — a
// mismatch between documentation declarations and the codebase that should
// stop the build rather than silently drop a link.
type NotFoundError struct {
	Package  string
	Fullname string
	Segment  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("doclink: %s %s: segment %q not found in index", e.Package, e.Fullname, e.Segment)
}

// Linker resolves documented symbols to GitHub source URLs. The branch is
// fixed at construction; resolution is pure lookup against the index, with
// no caching and no writes, so repeated calls are idempotent.
type Linker struct {
	store  *store.Store
	cfg    *Config
	branch string
	hook   *hook.Hook
}

// Branch returns the branch source links point at.
func (l *Linker) Branch() string {
	return l.branch
}

// Resolve maps a documented symbol to a source URL. An empty URL with a
// nil error means "no link": unsupported domain, package not indexed,
// symbol not a linkable kind, or source outside the repository. A missing
// dotted-name segment returns a *NotFoundError.
func (l *Linker) Resolve(ctx context.Context, domain string, ref SymbolRef) (string, error) {
	if domain != "go" {
		return "", nil
	}

	// Resolution only consults the index; an unknown package is never
	// indexed on demand.
	ok, err := l.store.PackageExists(ref.Package)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", nil
	}

	var sym *store.Symbol
	parent := ""
	for _, part := range strings.Split(ref.Fullname, ".") {
		s, err := l.store.SymbolLookup(ref.Package, parent, part)
		if err != nil {
			return "", err
		}
		if s == nil {
			return "", &NotFoundError{Package: ref.Package, Fullname: ref.Fullname, Segment: part}
		}
		if !linkable(s) {
			return "", nil
		}
		sym = s
		parent = s.Name
	}

	f, err := l.store.FileByID(sym.FileID)
	if err != nil {
		return "", err
	}
	if f == nil {
		return "", nil
	}
	// Vendored or re-homed code resolves to an import path that does not
	// mention the project package; such symbols get no link.
	if !strings.Contains(f.Package, l.cfg.Repository.Package) {
		return "", nil
	}

	linespec := ""
	if sym.StartLine != nil && sym.EndLine != nil {
		linespec = fmt.Sprintf("#L%d-L%d", *sym.StartLine, *sym.EndLine)
	}

	url := fmt.Sprintf("https://github.com/%s/%s/tree/%s/%s%s",
		l.cfg.Repository.Org, l.cfg.Repository.Repo, l.branch, f.Path, linespec)

	if l.hook != nil {
		link := hook.Link{
			URL:     url,
			File:    f.Path,
			Branch:  l.branch,
			Symbol:  ref.Fullname,
			Package: ref.Package,
		}
		if sym.StartLine != nil && sym.EndLine != nil {
			link.LineStart = *sym.StartLine
			link.LineEnd = *sym.EndLine
		}
		return l.hook.Rewrite(ctx, link)
	}
	return url, nil
}

// linkable implements the validation rule for code objects: a class-like
// type, a method, or a function that is not implemented natively. Consts,
// vars, and fields have no source extent worth linking.
func linkable(sym *store.Symbol) bool {
	switch sym.Kind {
	case store.KindStruct, store.KindInterface, store.KindType, store.KindMethod:
		return true
	case store.KindFunc:
		return !sym.HasModifier(store.ModIntrinsic)
	default:
		return false
	}
}

// LinkEntry is one resolved link in a batch listing.
type LinkEntry struct {
	Package string `json:"package"`
	Symbol  string `json:"symbol"`
	URL     string `json:"url"`
}

// ResolvePackage resolves every linkable symbol declared in pkg. Symbols
// that resolve to "no link" are omitted; index mismatches propagate.
func (l *Linker) ResolvePackage(ctx context.Context, pkg string) ([]LinkEntry, error) {
	syms, err := l.store.SymbolsByPackage(pkg)
	if err != nil {
		return nil, err
	}

	var entries []LinkEntry
	for _, sym := range syms {
		if !linkable(sym) {
			continue
		}
		fullname := sym.Name
		if sym.Parent != "" {
			fullname = sym.Parent + "." + sym.Name
		}
		url, err := l.Resolve(ctx, "go", SymbolRef{Package: pkg, Fullname: fullname})
		if err != nil {
			return nil, err
		}
		if url == "" {
			continue
		}
		entries = append(entries, LinkEntry{Package: pkg, Symbol: fullname, URL: url})
	}
	return entries, nil
}
