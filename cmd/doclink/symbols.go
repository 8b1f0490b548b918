package main

import (
	"github.com/jward/doclink/internal/store"
	"github.com/spf13/cobra"
)

var symbolsCmd = &cobra.Command{
	Use:   "symbols <package>",
	Short: "List indexed symbols in a package",
	Args:  cobra.ExactArgs(1),
	RunE:  runSymbols,
}

func runSymbols(cmd *cobra.Command, args []string) error {
	engine, err := openEngine()
	if err != nil {
		return outputError("symbols", err)
	}
	defer engine.Close()

	s := engine.Store()
	syms, err := s.SymbolsByPackage(args[0])
	if err != nil {
		return outputError("symbols", err)
	}

	// File paths are resolved once per file ID; packages usually span a
	// handful of files.
	paths := map[int64]string{}
	var out []CLISymbol
	for _, sym := range syms {
		path, ok := paths[sym.FileID]
		if !ok {
			f, err := s.FileByID(sym.FileID)
			if err != nil {
				return outputError("symbols", err)
			}
			if f != nil {
				path = f.Path
			}
			paths[sym.FileID] = path
		}
		out = append(out, symbolToCLI(sym, path))
	}

	count := len(out)
	return outputResult(CLIResult{
		Command:    "symbols",
		Results:    out,
		TotalCount: &count,
	})
}

// symbolToCLI converts a store.Symbol to a CLISymbol.
func symbolToCLI(sym *store.Symbol, filePath string) CLISymbol {
	return CLISymbol{
		ID:        sym.ID,
		Name:      sym.Name,
		Kind:      sym.Kind,
		Parent:    sym.Parent,
		Modifiers: sym.Modifiers,
		File:      filePath,
		StartLine: sym.StartLine,
		EndLine:   sym.EndLine,
	}
}

var packagesCmd = &cobra.Command{
	Use:   "packages",
	Short: "List indexed packages",
	Args:  cobra.NoArgs,
	RunE:  runPackages,
}

func runPackages(cmd *cobra.Command, args []string) error {
	engine, err := openEngine()
	if err != nil {
		return outputError("packages", err)
	}
	defer engine.Close()

	pkgs, err := engine.Store().Packages()
	if err != nil {
		return outputError("packages", err)
	}

	out := make([]CLIPackage, 0, len(pkgs))
	for _, p := range pkgs {
		out = append(out, CLIPackage{Package: p})
	}
	count := len(out)
	return outputResult(CLIResult{
		Command:    "packages",
		Results:    out,
		TotalCount: &count,
	})
}
