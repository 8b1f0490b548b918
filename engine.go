package doclink

import (
	"bytes"
	"context"
	"crypto/sha256"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/mod/modfile"

	"github.com/jward/doclink/internal/extract"
	"github.com/jward/doclink/internal/gitref"
	"github.com/jward/doclink/internal/hook"
	"github.com/jward/doclink/internal/store"
)

// Engine orchestrates the doclink pipeline: file discovery, change
// detection, declaration extraction, and link resolution. The source-link
// branch is resolved once at construction and never changes for the
// lifetime of the Engine.
type Engine struct {
	store  *store.Store
	cfg    *Config
	branch string
	hook   *hook.Hook
	lookup gitref.LookupFunc
}

// Option configures an Engine.
type Option func(*Engine)

// WithBranchLookup overrides the environment lookup used to resolve the
// source-link branch. Tests inject a lookup over a fixed map.
func WithBranchLookup(lookup gitref.LookupFunc) Option {
	return func(e *Engine) {
		e.lookup = lookup
	}
}

// WithHook sets the link-rewriting hook directly, bypassing cfg.Hook.
func WithHook(h *hook.Hook) Option {
	return func(e *Engine) {
		e.hook = h
	}
}

// New creates an Engine backed by a SQLite database at dbPath. The branch
// is resolved eagerly: a malformed release tag in the CI environment fails
// construction, stopping the documentation build.
func New(dbPath string, cfg *Config, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("doclink: config: %w", err)
	}

	s, err := store.NewStore(dbPath)
	if err != nil {
		return nil, fmt.Errorf("doclink: create store: %w", err)
	}
	if err := s.Migrate(); err != nil {
		s.Close()
		return nil, fmt.Errorf("doclink: migrate: %w", err)
	}

	e := &Engine{
		store:  s,
		cfg:    cfg,
		lookup: os.LookupEnv,
	}
	for _, opt := range opts {
		opt(e)
	}

	branch, err := gitref.DetermineBranch(e.lookup)
	if err != nil {
		s.Close()
		return nil, err
	}
	e.branch = branch

	if e.hook == nil && cfg.Hook != "" {
		h, err := hook.Load(cfg.Hook)
		if err != nil {
			s.Close()
			return nil, err
		}
		e.hook = h
	}

	return e, nil
}

// Close releases the Engine's database resources.
func (e *Engine) Close() error {
	return e.store.Close()
}

// Store returns the underlying Store for direct access.
func (e *Engine) Store() *Store {
	return e.store
}

// Config returns the Engine's configuration.
func (e *Engine) Config() *Config {
	return e.cfg
}

// Branch returns the resolved source-link branch.
func (e *Engine) Branch() string {
	return e.branch
}

// Linker returns a Linker bound to the Engine's store, configuration, and
// resolved branch.
func (e *Engine) Linker() *Linker {
	return &Linker{store: e.store, cfg: e.cfg, branch: e.branch, hook: e.hook}
}

// IndexDirectory walks root and indexes all Go source files. If root is
// inside a git repository, uses git ls-files to respect .gitignore. Falls
// back to a filesystem walk (skipping hidden dirs, vendor, testdata) if
// git is unavailable.
func (e *Engine) IndexDirectory(ctx context.Context, root string) error {
	root, err := filepath.Abs(root)
	if err != nil {
		return fmt.Errorf("doclink: resolving root: %w", err)
	}

	modPath, err := e.modulePath(root)
	if err != nil {
		return err
	}
	if err := e.store.SetMetadata("module_path", modPath); err != nil {
		return err
	}

	paths, err := e.gitListFiles(root)
	if err != nil {
		// Not a git repo or git not available — fall back to walk.
		paths, err = e.walkListFiles(root)
		if err != nil {
			return err
		}
	}
	return e.IndexFiles(ctx, root, modPath, paths)
}

// IndexFiles indexes the given absolute file paths, storing paths relative
// to root. Unchanged files (same content hash) are skipped. Errors on
// individual files are collected; processing continues.
func (e *Engine) IndexFiles(ctx context.Context, root, modPath string, paths []string) error {
	var errs []error
	for _, p := range paths {
		if err := e.indexFile(ctx, root, modPath, p); err != nil {
			errs = append(errs, fmt.Errorf("index %s: %w", p, err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("indexing had %d error(s): %w", len(errs), errs[0])
	}
	return nil
}

func (e *Engine) indexFile(ctx context.Context, root, modPath, absPath string) error {
	rel, err := filepath.Rel(root, absPath)
	if err != nil {
		return fmt.Errorf("relative path: %w", err)
	}
	rel = filepath.ToSlash(rel)
	if e.excluded(rel) {
		return nil
	}

	content, err := os.ReadFile(absPath)
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}
	hash := fmt.Sprintf("%x", sha256.Sum256(content))

	existing, err := e.store.FileByPath(rel)
	if err != nil {
		return fmt.Errorf("lookup file: %w", err)
	}
	if existing != nil && existing.Hash == hash {
		return nil // unchanged
	}
	if existing != nil {
		if err := e.store.DeleteFileData(existing.ID); err != nil {
			return fmt.Errorf("delete old data: %w", err)
		}
	}

	info, err := extract.ParseFile(ctx, content)
	if err != nil {
		return err
	}

	pkgPath := modPath
	if dir := path.Dir(rel); dir != "." {
		pkgPath = modPath + "/" + dir
	}

	lineCount := bytes.Count(content, []byte{'\n'}) + 1
	fileID, err := e.store.InsertFile(&store.File{
		Path:        rel,
		Package:     pkgPath,
		Hash:        hash,
		LineCount:   lineCount,
		LastIndexed: time.Now(),
	})
	if err != nil {
		return fmt.Errorf("insert file: %w", err)
	}

	for _, si := range info.Symbols {
		sym := &store.Symbol{
			FileID:    fileID,
			Name:      si.Name,
			Kind:      si.Kind,
			Parent:    si.Parent,
			Modifiers: si.Modifiers,
		}
		if info.Generated {
			// Generated source is not worth line-linking; the file-level
			// link still works.
			sym.Modifiers = append(sym.Modifiers, store.ModGenerated)
		} else {
			start, end := si.StartLine, si.EndLine
			sym.StartLine = &start
			sym.EndLine = &end
		}
		if _, err := e.store.InsertSymbol(sym); err != nil {
			return fmt.Errorf("insert symbol %s: %w", si.Name, err)
		}
	}
	return nil
}

// excluded reports whether a root-relative path matches a configured
// exclude glob, checked against the full path and its base name.
func (e *Engine) excluded(rel string) bool {
	for _, pattern := range e.cfg.Exclude {
		if ok, _ := path.Match(pattern, rel); ok {
			return true
		}
		if ok, _ := path.Match(pattern, path.Base(rel)); ok {
			return true
		}
	}
	return false
}

// modulePath reads the module path from go.mod at root. Without a go.mod
// the configured package name stands in, so a bare source tree can still
// be indexed.
func (e *Engine) modulePath(root string) (string, error) {
	data, err := os.ReadFile(filepath.Join(root, "go.mod"))
	if os.IsNotExist(err) {
		return e.cfg.Repository.Package, nil
	}
	if err != nil {
		return "", fmt.Errorf("doclink: reading go.mod: %w", err)
	}
	mp := modfile.ModulePath(data)
	if mp == "" {
		return "", fmt.Errorf("doclink: go.mod at %s has no module path", root)
	}
	return mp, nil
}

// goSourceFile reports whether path is a non-test Go source file.
func goSourceFile(p string) bool {
	return strings.HasSuffix(p, ".go") && !strings.HasSuffix(p, "_test.go")
}

// gitListFiles uses git ls-files to discover tracked and untracked (but not
// ignored) files under root, filtered to Go sources.
func (e *Engine) gitListFiles(root string) ([]string, error) {
	cmd := exec.Command("git", "ls-files", "--cached", "--others", "--exclude-standard")
	cmd.Dir = root
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("git ls-files: %w", err)
	}

	var paths []string
	for _, line := range strings.Split(stdout.String(), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || !goSourceFile(line) {
			continue
		}
		paths = append(paths, filepath.Join(root, line))
	}
	return paths, nil
}

// skipDirs lists directory names excluded from the filesystem-walk fallback.
var skipDirs = map[string]bool{
	"vendor":   true,
	"testdata": true,
}

// walkListFiles discovers files by walking the filesystem, used as a
// fallback when git is not available.
func (e *Engine) walkListFiles(root string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			name := d.Name()
			if p != root && (strings.HasPrefix(name, ".") || skipDirs[name]) {
				return filepath.SkipDir
			}
			return nil
		}
		if goSourceFile(p) {
			paths = append(paths, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk directory: %w", err)
	}
	return paths, nil
}
