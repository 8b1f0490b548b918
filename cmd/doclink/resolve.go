package main

import (
	"context"

	"github.com/jward/doclink"
	"github.com/spf13/cobra"
)

var flagDomain string

var resolveCmd = &cobra.Command{
	Use:   "resolve <package> <fullname>",
	Short: "Resolve one documented symbol to a source link",
	Long:  "Looks up a symbol in the index and prints its GitHub URL. A symbol with no link (wrong domain, external package without a docs mapping, non-linkable kind) produces an empty result; a symbol the codebase does not declare is an error.",
	Args:  cobra.ExactArgs(2),
	RunE:  runResolve,
}

func init() {
	resolveCmd.Flags().StringVar(&flagDomain, "domain", "go", "documentation domain of the symbol")
}

func runResolve(cmd *cobra.Command, args []string) error {
	engine, err := openEngine()
	if err != nil {
		return outputError("resolve", err)
	}
	defer engine.Close()

	pkg, fullname := args[0], args[1]
	l := engine.Linker()
	url, err := l.Resolve(context.Background(), flagDomain, doclink.SymbolRef{
		Package:  pkg,
		Fullname: fullname,
	})
	if err != nil {
		return outputError("resolve", err)
	}

	result := CLIResult{Command: "resolve"}
	switch {
	case url != "":
		result.Results = CLILink{Package: pkg, Symbol: fullname, URL: url}
	default:
		// No source link. A configured external docs mapping still gives
		// the package a destination.
		if ext := engine.Config().ExternalURL(pkg); ext != "" {
			result.Results = CLILink{Package: pkg, Symbol: fullname, URL: ext, External: true}
		}
	}
	return outputResult(result)
}
