package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
)

// outputResult marshals a CLIResult to stdout in the selected format.
func outputResult(result CLIResult) error {
	if flagFormat == "text" {
		return outputResultText(result)
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

// outputError writes an error in the selected format and returns it so RunE
// can propagate it to Cobra. In JSON mode the error is written to stdout as a
// CLIResult envelope. In text mode it goes to stderr.
func outputError(command string, err error) error {
	errorHandled = true
	if flagFormat == "text" {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		return err
	}
	result := CLIResult{
		Command: command,
		Error:   err.Error(),
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(result)
	return err
}

// formatLinksText formats CLILink results as aligned columns.
func formatLinksText(w io.Writer, links []CLILink) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "PACKAGE\tSYMBOL\tURL")
	for _, l := range links {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", l.Package, l.Symbol, l.URL)
	}
	tw.Flush()
}

// formatSymbolsText formats CLISymbol results as aligned columns.
func formatSymbolsText(w io.Writer, syms []CLISymbol) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tKIND\tFILE\tLINES")
	for _, s := range syms {
		name := s.Name
		if s.Parent != "" {
			name = s.Parent + "." + s.Name
		}
		lines := "-"
		if s.StartLine != nil && s.EndLine != nil {
			lines = fmt.Sprintf("%d-%d", *s.StartLine, *s.EndLine)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", name, s.Kind, s.File, lines)
	}
	tw.Flush()
}

// formatPackagesText formats CLIPackage results one per line.
func formatPackagesText(w io.Writer, pkgs []CLIPackage) {
	for _, p := range pkgs {
		fmt.Fprintln(w, p.Package)
	}
}

// outputResultText dispatches to the appropriate text formatter based on the
// result type. It writes to os.Stdout.
func outputResultText(result CLIResult) error {
	w := io.Writer(os.Stdout)

	switch v := result.Results.(type) {
	case CLIBranch:
		fmt.Fprintln(w, v.Branch)
	case CLILink:
		fmt.Fprintln(w, v.URL)
	case []CLILink:
		formatLinksText(w, v)
	case []CLISymbol:
		formatSymbolsText(w, v)
	case []CLIPackage:
		formatPackagesText(w, v)
	case nil:
		// No output for nil results (e.g., a symbol with no link).
	default:
		return fmt.Errorf("unsupported result type for text format: %T", v)
	}
	return nil
}

// validFormats lists accepted values for --format.
var validFormats = []string{"json", "text"}

// validateFormat checks that the --format flag value is recognized.
func validateFormat(format string) error {
	for _, f := range validFormats {
		if format == f {
			return nil
		}
	}
	return fmt.Errorf("invalid format %q: must be %s", format, strings.Join(validFormats, " or "))
}
