// Package doclink resolves documented Go symbols to source-code links on
// GitHub. It indexes a library's declarations into SQLite and maps each
// symbol to a stable URL for the branch being documented, so an API page
// can link every class, method, and function to its defining lines.
//
// # Pipeline
//
// Doclink operates in two phases:
//
//  1. Index: parse each Go source file with tree-sitter and record every
//     declaration (types, functions, methods, consts, vars, struct
//     fields) with its file and line span.
//
//  2. Resolve: for each documented symbol, look up its declaration in the
//     index and compose a GitHub URL pinned to the branch derived from
//     the CI environment (PR base branch, pushed branch, or the
//     stable/<major>.<minor> branch matching a release tag).
//
// # Usage
//
// Create an Engine, index the source tree, and resolve links:
//
//	cfg, err := doclink.LoadConfig("doclink.yaml")
//	if err != nil { ... }
//	e, err := doclink.New("doclink.db", cfg)
//	if err != nil { ... }
//	defer e.Close()
//
//	ctx := context.Background()
//	err = e.IndexDirectory(ctx, "path/to/library")
//
//	l := e.Linker()
//	url, err := l.Resolve(ctx, "go", doclink.SymbolRef{
//		Package:  "example.com/quantlib/circuit",
//		Fullname: "Gate.Apply",
//	})
//
// An empty URL with a nil error means the symbol gets no link: that is the
// normal outcome for non-code domains, packages outside the index, and
// symbol kinds with no inspectable source. A *NotFoundError means the
// documentation names a symbol the codebase does not declare, which should
// fail the build.
//
// # Hooks
//
// A Risor script configured under "hook" in doclink.yaml can rewrite each
// resolved URL; see the internal/hook package for the globals scripts
// receive.
package doclink
