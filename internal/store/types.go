package store

import "time"

// Symbol kinds recorded by extraction.
const (
	KindStruct    = "struct"
	KindInterface = "interface"
	KindType      = "type"
	KindFunc      = "func"
	KindMethod    = "method"
	KindConst     = "const"
	KindVar       = "var"
	KindField     = "field"
)

// ModIntrinsic marks a function declared without a body — implemented in
// assembly or bound via linkname. Such functions have no inspectable Go
// source and never get a line-level link.
const ModIntrinsic = "intrinsic"

// ModGenerated marks symbols from machine-generated files.
const ModGenerated = "generated"

// File is one indexed source file. Path is repository-root-relative and
// slash-separated; Package is the import path of the package it belongs to.
type File struct {
	ID          int64
	Path        string
	Package     string
	Hash        string
	LineCount   int
	LastIndexed time.Time
}

// Symbol is one declared name. Parent is the owner type's name for methods
// and struct fields, empty for top-level declarations. StartLine/EndLine
// are 1-based and cover the full declaration including its doc comment;
// nil means no line information is available for the symbol.
type Symbol struct {
	ID        int64
	FileID    int64
	Name      string
	Kind      string
	Parent    string
	Modifiers []string
	StartLine *int
	EndLine   *int
}

// HasModifier reports whether the symbol carries the given modifier.
func (sym *Symbol) HasModifier(mod string) bool {
	for _, m := range sym.Modifiers {
		if m == mod {
			return true
		}
	}
	return false
}
