// Package gitref resolves the branch that source links should point at
// from the GitHub Actions environment.
package gitref

import (
	"fmt"
	"os"
	"regexp"
)

// LookupFunc reports an environment variable's value and whether it is set,
// matching os.LookupEnv. Tests inject a lookup over a fixed map.
type LookupFunc func(key string) (string, bool)

var versionPrefix = regexp.MustCompile(`^\d+\.\d+`)

// DetermineBranch resolves the source-link branch, in priority order:
//
//  1. Outside CI (GITHUB_REF_NAME unset): "main".
//  2. Pull request builds (GITHUB_BASE_REF non-empty): the base branch, so
//     docs previews link against the branch the PR targets.
//  3. Branch builds (GITHUB_REF_TYPE == "branch"): the pushed branch.
//  4. Tag builds: "stable/<major>.<minor>" derived from the tag name. A tag
//     that does not start with <major>.<minor> is an error; a release
//     tagged outside the versioning scheme must fail loudly rather than
//     publish links to a branch that does not exist.
func DetermineBranch(lookup LookupFunc) (string, error) {
	refName, ok := lookup("GITHUB_REF_NAME")
	if !ok {
		return "main", nil
	}
	if baseRef, _ := lookup("GITHUB_BASE_REF"); baseRef != "" {
		return baseRef, nil
	}
	if refType, _ := lookup("GITHUB_REF_TYPE"); refType == "branch" {
		return refName, nil
	}
	m := versionPrefix.FindString(refName)
	if m == "" {
		return "", fmt.Errorf("gitref: release tag %q does not start with <major>.<minor>", refName)
	}
	return "stable/" + m, nil
}

// Branch resolves the source-link branch from the process environment.
func Branch() (string, error) {
	return DetermineBranch(os.LookupEnv)
}
