package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jward/doclink"
	"github.com/spf13/cobra"
)

var (
	flagDB     string
	flagFormat string
	flagConfig string
)

// errorHandled is set by outputError so main() doesn't double-print.
var errorHandled bool

func main() {
	if err := rootCmd.Execute(); err != nil {
		if !errorHandled {
			fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		}
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "doclink",
	Short:         "Resolve documented Go symbols to GitHub source links",
	Long:          "Doclink indexes a library's declarations into SQLite and maps documented symbols to GitHub URLs pinned to the branch being documented.",
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return validateFormat(flagFormat)
	},
	// No Run — prints help by default.
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "", "database path (default: .doclink/index.db relative to repo root)")
	rootCmd.PersistentFlags().StringVar(&flagFormat, "format", "json", "output format: json|text")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "config path (default: doclink.yaml at repo root)")

	rootCmd.AddCommand(indexCmd)
	rootCmd.AddCommand(branchCmd)
	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(linksCmd)
	rootCmd.AddCommand(symbolsCmd)
	rootCmd.AddCommand(packagesCmd)
}

// findRepoRoot walks up from startDir looking for a .git directory.
// Returns the directory containing .git, or startDir if not found.
func findRepoRoot(startDir string) string {
	dir := startDir
	for {
		if info, err := os.Stat(filepath.Join(dir, ".git")); err == nil && info.IsDir() {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root without finding .git.
			return startDir
		}
		dir = parent
	}
}

// resolveDBPath returns the database path from the --db flag or the default.
func resolveDBPath(repoRoot string) string {
	if flagDB != "" {
		if filepath.IsAbs(flagDB) {
			return flagDB
		}
		return filepath.Join(repoRoot, flagDB)
	}
	return filepath.Join(repoRoot, ".doclink", "index.db")
}

// resolveConfigPath returns the config path from the --config flag or the
// default doclink.yaml at the repo root.
func resolveConfigPath(repoRoot string) string {
	if flagConfig != "" {
		if filepath.IsAbs(flagConfig) {
			return flagConfig
		}
		return filepath.Join(repoRoot, flagConfig)
	}
	return filepath.Join(repoRoot, "doclink.yaml")
}

// openEngine loads the config and opens the Engine using paths resolved from
// the current working directory's repo root.
func openEngine() (*doclink.Engine, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("getting cwd: %w", err)
	}
	repoRoot := findRepoRoot(cwd)

	cfg, err := doclink.LoadConfig(resolveConfigPath(repoRoot))
	if err != nil {
		return nil, err
	}

	dbPath := resolveDBPath(repoRoot)
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("database not found: %s (run 'doclink index' first)", dbPath)
	}
	return doclink.New(dbPath, cfg)
}
