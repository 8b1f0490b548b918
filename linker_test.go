package doclink

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jward/doclink/internal/hook"
	"github.com/jward/doclink/internal/store"
)

func testConfig() *Config {
	return &Config{
		Project: ProjectConfig{Name: "QuantLib"},
		Repository: RepositoryConfig{
			Org:     "acme",
			Repo:    "quantlib",
			Package: "quantlib",
		},
	}
}

func newTestLinker(t *testing.T) (*Linker, *store.Store) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	s, err := store.NewStore(dbPath)
	require.NoError(t, err)
	require.NoError(t, s.Migrate())
	t.Cleanup(func() { s.Close() })
	return &Linker{store: s, cfg: testConfig(), branch: "main"}, s
}

func intPtr(n int) *int { return &n }

// seedGate inserts a file with a struct, a method, an intrinsic function,
// and a const, returning the file ID.
func seedGate(t *testing.T, s *store.Store) int64 {
	t.Helper()
	fID, err := s.InsertFile(&store.File{
		Path:        "circuit/gate.go",
		Package:     "example.com/quantlib/circuit",
		Hash:        "h",
		LastIndexed: time.Now(),
	})
	require.NoError(t, err)

	for _, sym := range []*store.Symbol{
		{FileID: fID, Name: "Gate", Kind: store.KindStruct, StartLine: intPtr(10), EndLine: intPtr(40)},
		{FileID: fID, Name: "Apply", Kind: store.KindMethod, Parent: "Gate", StartLine: intPtr(42), EndLine: intPtr(55)},
		{FileID: fID, Name: "Name", Kind: store.KindField, Parent: "Gate", StartLine: intPtr(12), EndLine: intPtr(12)},
		{FileID: fID, Name: "Dot", Kind: store.KindFunc, Modifiers: []string{store.ModIntrinsic}, StartLine: intPtr(60), EndLine: intPtr(61)},
		{FileID: fID, Name: "MaxQubits", Kind: store.KindConst, StartLine: intPtr(5), EndLine: intPtr(6)},
	} {
		_, err := s.InsertSymbol(sym)
		require.NoError(t, err)
	}
	return fID
}

func TestResolve_UnsupportedDomain(t *testing.T) {
	l, s := newTestLinker(t)
	seedGate(t, s)

	url, err := l.Resolve(context.Background(), "js", SymbolRef{
		Package: "example.com/quantlib/circuit", Fullname: "Gate",
	})
	require.NoError(t, err)
	assert.Empty(t, url)
}

func TestResolve_PackageNotIndexed(t *testing.T) {
	l, _ := newTestLinker(t)

	url, err := l.Resolve(context.Background(), "go", SymbolRef{
		Package: "example.com/quantlib/pulse", Fullname: "Wave",
	})
	require.NoError(t, err)
	assert.Empty(t, url)
}

func TestResolve_StructWithLineRange(t *testing.T) {
	l, s := newTestLinker(t)
	seedGate(t, s)

	url, err := l.Resolve(context.Background(), "go", SymbolRef{
		Package: "example.com/quantlib/circuit", Fullname: "Gate",
	})
	require.NoError(t, err)
	assert.Equal(t, "https://github.com/acme/quantlib/tree/main/circuit/gate.go#L10-L40", url)
}

func TestResolve_MethodViaDottedName(t *testing.T) {
	l, s := newTestLinker(t)
	seedGate(t, s)

	url, err := l.Resolve(context.Background(), "go", SymbolRef{
		Package: "example.com/quantlib/circuit", Fullname: "Gate.Apply",
	})
	require.NoError(t, err)
	assert.Equal(t, "https://github.com/acme/quantlib/tree/main/circuit/gate.go#L42-L55", url)
}

func TestResolve_MissingSegmentIsFatal(t *testing.T) {
	l, s := newTestLinker(t)
	seedGate(t, s)

	_, err := l.Resolve(context.Background(), "go", SymbolRef{
		Package: "example.com/quantlib/circuit", Fullname: "Gate.Teleport",
	})
	var nfe *NotFoundError
	require.ErrorAs(t, err, &nfe)
	assert.Equal(t, "Teleport", nfe.Segment)
}

func TestResolve_IntrinsicFunctionNotLinkable(t *testing.T) {
	l, s := newTestLinker(t)
	seedGate(t, s)

	url, err := l.Resolve(context.Background(), "go", SymbolRef{
		Package: "example.com/quantlib/circuit", Fullname: "Dot",
	})
	require.NoError(t, err)
	assert.Empty(t, url)
}

func TestResolve_ConstNotLinkable(t *testing.T) {
	l, s := newTestLinker(t)
	seedGate(t, s)

	url, err := l.Resolve(context.Background(), "go", SymbolRef{
		Package: "example.com/quantlib/circuit", Fullname: "MaxQubits",
	})
	require.NoError(t, err)
	assert.Empty(t, url)
}

func TestResolve_ForeignPackageGuard(t *testing.T) {
	l, s := newTestLinker(t)

	// A vendored copy keeps its upstream import path, which does not
	// mention the project package.
	fID, err := s.InsertFile(&store.File{
		Path:        "vendor/github.com/other/fastmath/dot.go",
		Package:     "github.com/other/fastmath",
		Hash:        "h",
		LastIndexed: time.Now(),
	})
	require.NoError(t, err)
	_, err = s.InsertSymbol(&store.Symbol{
		FileID: fID, Name: "Dot", Kind: store.KindFunc,
		StartLine: intPtr(1), EndLine: intPtr(3),
	})
	require.NoError(t, err)

	url, err := l.Resolve(context.Background(), "go", SymbolRef{
		Package: "github.com/other/fastmath", Fullname: "Dot",
	})
	require.NoError(t, err)
	assert.Empty(t, url)
}

func TestResolve_NoLineInfoOmitsFragment(t *testing.T) {
	l, s := newTestLinker(t)

	fID, err := s.InsertFile(&store.File{
		Path:        "gen/ops.go",
		Package:     "example.com/quantlib/gen",
		Hash:        "h",
		LastIndexed: time.Now(),
	})
	require.NoError(t, err)
	_, err = s.InsertSymbol(&store.Symbol{
		FileID: fID, Name: "OpTable", Kind: store.KindFunc,
		Modifiers: []string{store.ModGenerated},
	})
	require.NoError(t, err)

	url, err := l.Resolve(context.Background(), "go", SymbolRef{
		Package: "example.com/quantlib/gen", Fullname: "OpTable",
	})
	require.NoError(t, err)
	assert.Equal(t, "https://github.com/acme/quantlib/tree/main/gen/ops.go", url)
}

func TestResolve_Idempotent(t *testing.T) {
	l, s := newTestLinker(t)
	seedGate(t, s)

	ref := SymbolRef{Package: "example.com/quantlib/circuit", Fullname: "Gate.Apply"}
	first, err := l.Resolve(context.Background(), "go", ref)
	require.NoError(t, err)
	second, err := l.Resolve(context.Background(), "go", ref)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestResolve_BranchInURL(t *testing.T) {
	l, s := newTestLinker(t)
	l.branch = "stable/1.2"
	seedGate(t, s)

	url, err := l.Resolve(context.Background(), "go", SymbolRef{
		Package: "example.com/quantlib/circuit", Fullname: "Gate",
	})
	require.NoError(t, err)
	assert.Equal(t, "https://github.com/acme/quantlib/tree/stable/1.2/circuit/gate.go#L10-L40", url)
}

func TestResolve_HookRewritesURL(t *testing.T) {
	l, s := newTestLinker(t)
	l.hook = hook.New(`"https://mirror.example.com/" + file`, "<inline>")
	seedGate(t, s)

	url, err := l.Resolve(context.Background(), "go", SymbolRef{
		Package: "example.com/quantlib/circuit", Fullname: "Gate",
	})
	require.NoError(t, err)
	assert.Equal(t, "https://mirror.example.com/circuit/gate.go", url)
}

func TestResolve_HookErrorPropagates(t *testing.T) {
	l, s := newTestLinker(t)
	l.hook = hook.New(`no_such_global`, "<inline>")
	seedGate(t, s)

	_, err := l.Resolve(context.Background(), "go", SymbolRef{
		Package: "example.com/quantlib/circuit", Fullname: "Gate",
	})
	require.Error(t, err)
	var nfe *NotFoundError
	assert.False(t, errors.As(err, &nfe))
}

func TestResolvePackage_SkipsNonLinkable(t *testing.T) {
	l, s := newTestLinker(t)
	seedGate(t, s)

	entries, err := l.ResolvePackage(context.Background(), "example.com/quantlib/circuit")
	require.NoError(t, err)

	var symbols []string
	for _, e := range entries {
		symbols = append(symbols, e.Symbol)
	}
	// Gate and Gate.Apply link; the field, the intrinsic function, and the
	// const do not.
	assert.ElementsMatch(t, []string{"Gate", "Gate.Apply"}, symbols)
	for _, e := range entries {
		assert.Contains(t, e.URL, "https://github.com/acme/quantlib/tree/main/")
	}
}
