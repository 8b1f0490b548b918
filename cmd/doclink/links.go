package main

import (
	"context"

	"github.com/spf13/cobra"
)

var linksCmd = &cobra.Command{
	Use:   "links [package]",
	Short: "List source links for every linkable symbol",
	Long:  "Resolves all linkable symbols in a package, or in every indexed package when no argument is given.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runLinks,
}

func runLinks(cmd *cobra.Command, args []string) error {
	engine, err := openEngine()
	if err != nil {
		return outputError("links", err)
	}
	defer engine.Close()

	pkgs := args
	if len(pkgs) == 0 {
		pkgs, err = engine.Store().Packages()
		if err != nil {
			return outputError("links", err)
		}
	}

	ctx := context.Background()
	l := engine.Linker()
	var links []CLILink
	for _, pkg := range pkgs {
		entries, err := l.ResolvePackage(ctx, pkg)
		if err != nil {
			return outputError("links", err)
		}
		for _, e := range entries {
			links = append(links, CLILink{Package: e.Package, Symbol: e.Symbol, URL: e.URL})
		}
	}

	count := len(links)
	return outputResult(CLIResult{
		Command:    "links",
		Results:    links,
		TotalCount: &count,
	})
}
