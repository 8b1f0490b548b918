package main

import (
	"github.com/jward/doclink/internal/gitref"
	"github.com/spf13/cobra"
)

var branchCmd = &cobra.Command{
	Use:   "branch",
	Short: "Print the branch source links will point at",
	Long:  "Resolves the source-link branch from the CI environment: the PR base branch, the pushed branch, or the stable/<major>.<minor> branch matching a release tag. Outside CI this is \"main\".",
	Args:  cobra.NoArgs,
	RunE:  runBranch,
}

func runBranch(cmd *cobra.Command, args []string) error {
	branch, err := gitref.Branch()
	if err != nil {
		return outputError("branch", err)
	}
	return outputResult(CLIResult{
		Command: "branch",
		Results: CLIBranch{Branch: branch},
	})
}
