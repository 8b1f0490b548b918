package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
)

// --- File operations ---

func (s *Store) InsertFile(f *File) (int64, error) {
	res, err := s.db.Exec(
		"INSERT INTO files (path, package, hash, line_count, last_indexed) VALUES (?, ?, ?, ?, ?)",
		f.Path, f.Package, f.Hash, f.LineCount, f.LastIndexed,
	)
	if err != nil {
		return 0, fmt.Errorf("insert file: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}
	f.ID = id
	return id, nil
}

func (s *Store) FileByPath(path string) (*File, error) {
	f := &File{}
	err := s.db.QueryRow(
		"SELECT id, path, package, hash, line_count, last_indexed FROM files WHERE path = ?", path,
	).Scan(&f.ID, &f.Path, &f.Package, &f.Hash, &f.LineCount, &f.LastIndexed)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("file by path: %w", err)
	}
	return f, nil
}

func (s *Store) FileByID(id int64) (*File, error) {
	f := &File{}
	err := s.db.QueryRow(
		"SELECT id, path, package, hash, line_count, last_indexed FROM files WHERE id = ?", id,
	).Scan(&f.ID, &f.Path, &f.Package, &f.Hash, &f.LineCount, &f.LastIndexed)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("file by id: %w", err)
	}
	return f, nil
}

func (s *Store) Files() ([]*File, error) {
	rows, err := s.db.Query(
		"SELECT id, path, package, hash, line_count, last_indexed FROM files ORDER BY path",
	)
	if err != nil {
		return nil, fmt.Errorf("list files: %w", err)
	}
	defer rows.Close()
	var files []*File
	for rows.Next() {
		f := &File{}
		if err := rows.Scan(&f.ID, &f.Path, &f.Package, &f.Hash, &f.LineCount, &f.LastIndexed); err != nil {
			return nil, fmt.Errorf("scan file: %w", err)
		}
		files = append(files, f)
	}
	return files, rows.Err()
}

// PackageExists reports whether any indexed file belongs to pkg.
func (s *Store) PackageExists(pkg string) (bool, error) {
	var one int
	err := s.db.QueryRow("SELECT 1 FROM files WHERE package = ? LIMIT 1", pkg).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("package exists: %w", err)
	}
	return true, nil
}

// Packages returns the distinct package import paths in the index.
func (s *Store) Packages() ([]string, error) {
	rows, err := s.db.Query("SELECT DISTINCT package FROM files ORDER BY package")
	if err != nil {
		return nil, fmt.Errorf("list packages: %w", err)
	}
	defer rows.Close()
	var pkgs []string
	for rows.Next() {
		var pkg string
		if err := rows.Scan(&pkg); err != nil {
			return nil, fmt.Errorf("scan package: %w", err)
		}
		pkgs = append(pkgs, pkg)
	}
	return pkgs, rows.Err()
}

// --- Symbol operations ---

func (s *Store) InsertSymbol(sym *Symbol) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO symbols (file_id, name, kind, parent, modifiers, start_line, end_line)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		sym.FileID, sym.Name, sym.Kind, sym.Parent, marshalModifiers(sym.Modifiers),
		sym.StartLine, sym.EndLine,
	)
	if err != nil {
		return 0, fmt.Errorf("insert symbol: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}
	sym.ID = id
	return id, nil
}

func (s *Store) scanSymbol(scanner interface{ Scan(...any) error }) (*Symbol, error) {
	sym := &Symbol{}
	var mods string
	var startLine, endLine sql.NullInt64
	err := scanner.Scan(
		&sym.ID, &sym.FileID, &sym.Name, &sym.Kind, &sym.Parent, &mods,
		&startLine, &endLine,
	)
	if err != nil {
		return nil, err
	}
	sym.Modifiers = unmarshalModifiers(mods)
	if startLine.Valid {
		n := int(startLine.Int64)
		sym.StartLine = &n
	}
	if endLine.Valid {
		n := int(endLine.Int64)
		sym.EndLine = &n
	}
	return sym, nil
}

const symbolCols = "s.id, s.file_id, s.name, s.kind, s.parent, s.modifiers, s.start_line, s.end_line"

// SymbolLookup finds one symbol by name within a package, scoped to a
// parent type name ("" for top-level declarations). Returns nil with no
// error when absent.
func (s *Store) SymbolLookup(pkg, parent, name string) (*Symbol, error) {
	row := s.db.QueryRow(
		`SELECT `+symbolCols+` FROM symbols s
		 JOIN files f ON s.file_id = f.id
		 WHERE f.package = ? AND s.parent = ? AND s.name = ?`,
		pkg, parent, name,
	)
	sym, err := s.scanSymbol(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("symbol lookup: %w", err)
	}
	return sym, nil
}

func (s *Store) querySymbols(query string, args ...any) ([]*Symbol, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var symbols []*Symbol
	for rows.Next() {
		sym, err := s.scanSymbol(rows)
		if err != nil {
			return nil, fmt.Errorf("scan symbol: %w", err)
		}
		symbols = append(symbols, sym)
	}
	return symbols, rows.Err()
}

// SymbolsByPackage returns all symbols declared in pkg, parents before
// children, then by name.
func (s *Store) SymbolsByPackage(pkg string) ([]*Symbol, error) {
	return s.querySymbols(
		`SELECT `+symbolCols+` FROM symbols s
		 JOIN files f ON s.file_id = f.id
		 WHERE f.package = ?
		 ORDER BY s.parent, s.name`,
		pkg,
	)
}

// SymbolsByFile returns all symbols declared in the given file.
func (s *Store) SymbolsByFile(fileID int64) ([]*Symbol, error) {
	return s.querySymbols(
		"SELECT "+symbolCols+" FROM symbols s WHERE s.file_id = ? ORDER BY s.parent, s.name",
		fileID,
	)
}

// marshalModifiers converts []string to JSON text for storage.
func marshalModifiers(mods []string) string {
	if len(mods) == 0 {
		return "[]"
	}
	b, _ := json.Marshal(mods)
	return string(b)
}

// unmarshalModifiers converts JSON text back to []string.
func unmarshalModifiers(s string) []string {
	if s == "" || s == "null" || s == "[]" {
		return nil
	}
	var mods []string
	_ = json.Unmarshal([]byte(s), &mods)
	return mods
}
