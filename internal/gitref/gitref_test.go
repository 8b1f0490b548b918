package gitref

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mapLookup(env map[string]string) LookupFunc {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func TestDetermineBranch(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{
			name: "local build defaults to main",
			env:  map[string]string{},
			want: "main",
		},
		{
			name: "pull request uses base branch",
			env: map[string]string{
				"GITHUB_REF_NAME": "123/merge",
				"GITHUB_BASE_REF": "main",
				"GITHUB_REF_TYPE": "branch",
			},
			want: "main",
		},
		{
			name: "pull request against stable branch",
			env: map[string]string{
				"GITHUB_REF_NAME": "456/merge",
				"GITHUB_BASE_REF": "stable/1.2",
				"GITHUB_REF_TYPE": "branch",
			},
			want: "stable/1.2",
		},
		{
			name: "branch build uses the pushed branch",
			env: map[string]string{
				"GITHUB_REF_NAME": "feature/faster-docs",
				"GITHUB_REF_TYPE": "branch",
			},
			want: "feature/faster-docs",
		},
		{
			name: "empty base ref falls through to branch",
			env: map[string]string{
				"GITHUB_REF_NAME": "main",
				"GITHUB_BASE_REF": "",
				"GITHUB_REF_TYPE": "branch",
			},
			want: "main",
		},
		{
			name: "release tag maps to stable branch",
			env: map[string]string{
				"GITHUB_REF_NAME": "1.2.3",
				"GITHUB_REF_TYPE": "tag",
			},
			want: "stable/1.2",
		},
		{
			name: "release candidate tag maps to stable branch",
			env: map[string]string{
				"GITHUB_REF_NAME": "1.2.3rc1",
				"GITHUB_REF_TYPE": "tag",
			},
			want: "stable/1.2",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DetermineBranch(mapLookup(tt.env))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDetermineBranch_MalformedTag(t *testing.T) {
	_, err := DetermineBranch(mapLookup(map[string]string{
		"GITHUB_REF_NAME": "notaversion",
		"GITHUB_REF_TYPE": "tag",
	}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "notaversion")
}

func TestDetermineBranch_TagMissingMinor(t *testing.T) {
	_, err := DetermineBranch(mapLookup(map[string]string{
		"GITHUB_REF_NAME": "1",
		"GITHUB_REF_TYPE": "tag",
	}))
	require.Error(t, err)
}
