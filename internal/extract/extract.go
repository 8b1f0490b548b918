// Package extract parses Go source files with tree-sitter and produces the
// declaration records the symbol index stores: types, functions, methods,
// constants, variables, and struct fields, each with a 1-based line span
// covering the full declaration including its doc comment.
package extract

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"regexp"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/golang"
)

// Symbol kinds and modifiers mirror internal/store but are kept as plain
// strings so extract has no store dependency.
const (
	KindStruct    = "struct"
	KindInterface = "interface"
	KindType      = "type"
	KindFunc      = "func"
	KindMethod    = "method"
	KindConst     = "const"
	KindVar       = "var"
	KindField     = "field"

	ModIntrinsic = "intrinsic"
)

// SymbolInfo is one extracted declaration.
type SymbolInfo struct {
	Name      string
	Kind      string
	Parent    string // owner type name for methods and fields
	Modifiers []string
	StartLine int // 1-based, includes the doc comment
	EndLine   int
}

// FileInfo is the extraction result for one source file.
type FileInfo struct {
	PackageName string
	Generated   bool
	Symbols     []SymbolInfo
}

// generatedMarker is the conventional header of machine-generated Go files.
var generatedMarker = regexp.MustCompile(`^// Code generated .* DO NOT EDIT\.$`)

// ParseFile extracts declarations from Go source.
func ParseFile(ctx context.Context, src []byte) (*FileInfo, error) {
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(golang.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("extract: parse: %w", err)
	}
	defer tree.Close()

	info := &FileInfo{Generated: isGenerated(src)}

	root := tree.RootNode()
	for i := 0; i < int(root.NamedChildCount()); i++ {
		node := root.NamedChild(i)
		switch node.Type() {
		case "package_clause":
			if name := node.NamedChild(0); name != nil {
				info.PackageName = name.Content(src)
			}
		case "function_declaration":
			info.Symbols = append(info.Symbols, extractFunction(node, src))
		case "method_declaration":
			info.Symbols = append(info.Symbols, extractMethod(node, src))
		case "type_declaration":
			info.Symbols = append(info.Symbols, extractTypes(node, src)...)
		case "const_declaration":
			info.Symbols = append(info.Symbols, extractValueSpecs(node, "const_spec", KindConst, src)...)
		case "var_declaration":
			info.Symbols = append(info.Symbols, extractValueSpecs(node, "var_spec", KindVar, src)...)
		}
	}

	if info.PackageName == "" {
		return nil, fmt.Errorf("extract: no package clause")
	}
	return info, nil
}

// span returns the 1-based line range of node, extended upward over the
// contiguous comment block immediately preceding it.
func span(node *sitter.Node) (int, int) {
	start := node
	for {
		prev := start.PrevNamedSibling()
		if prev == nil || prev.Type() != "comment" {
			break
		}
		if prev.EndPoint().Row+1 != start.StartPoint().Row {
			break
		}
		start = prev
	}
	return int(start.StartPoint().Row) + 1, int(node.EndPoint().Row) + 1
}

func extractFunction(node *sitter.Node, src []byte) SymbolInfo {
	start, end := span(node)
	sym := SymbolInfo{
		Kind:      KindFunc,
		StartLine: start,
		EndLine:   end,
	}
	if name := node.ChildByFieldName("name"); name != nil {
		sym.Name = name.Content(src)
	}
	// A function without a body is implemented outside Go source.
	if node.ChildByFieldName("body") == nil {
		sym.Modifiers = append(sym.Modifiers, ModIntrinsic)
	}
	return sym
}

func extractMethod(node *sitter.Node, src []byte) SymbolInfo {
	start, end := span(node)
	sym := SymbolInfo{
		Kind:      KindMethod,
		Parent:    receiverTypeName(node, src),
		StartLine: start,
		EndLine:   end,
	}
	if name := node.ChildByFieldName("name"); name != nil {
		sym.Name = name.Content(src)
	}
	if node.ChildByFieldName("body") == nil {
		sym.Modifiers = append(sym.Modifiers, ModIntrinsic)
	}
	return sym
}

// receiverTypeName unwraps the receiver parameter to its base type name,
// stripping pointers and type arguments.
func receiverTypeName(method *sitter.Node, src []byte) string {
	recv := method.ChildByFieldName("receiver")
	if recv == nil || recv.NamedChildCount() == 0 {
		return ""
	}
	param := recv.NamedChild(0)
	typ := param.ChildByFieldName("type")
	for typ != nil {
		switch typ.Type() {
		case "pointer_type":
			typ = typ.NamedChild(0)
		case "generic_type":
			typ = typ.ChildByFieldName("type")
		case "type_identifier":
			return typ.Content(src)
		default:
			return ""
		}
	}
	return ""
}

// extractTypes handles a type_declaration, which may group several specs.
// The doc-comment span extension applies to the declaration, so a doc
// comment on "type ( ... )" is attributed to every spec in the group.
func extractTypes(decl *sitter.Node, src []byte) []SymbolInfo {
	declStart, _ := span(decl)
	grouped := int(decl.NamedChildCount()) > 1

	var syms []SymbolInfo
	for i := 0; i < int(decl.NamedChildCount()); i++ {
		spec := decl.NamedChild(i)
		if spec.Type() != "type_spec" && spec.Type() != "type_alias" {
			continue
		}
		name := spec.ChildByFieldName("name")
		if name == nil {
			continue
		}

		start, end := span(spec)
		if !grouped {
			start = declStart
		}

		kind := KindType
		typ := spec.ChildByFieldName("type")
		if spec.Type() == "type_spec" && typ != nil {
			switch typ.Type() {
			case "struct_type":
				kind = KindStruct
			case "interface_type":
				kind = KindInterface
			}
		}

		sym := SymbolInfo{
			Name:      name.Content(src),
			Kind:      kind,
			StartLine: start,
			EndLine:   end,
		}
		syms = append(syms, sym)

		if kind == KindStruct {
			syms = append(syms, extractStructFields(sym.Name, typ, src)...)
		}
	}
	return syms
}

// extractStructFields records named (non-embedded) fields, parented under
// the struct.
func extractStructFields(owner string, structType *sitter.Node, src []byte) []SymbolInfo {
	list := structType.NamedChild(0)
	if list == nil || list.Type() != "field_declaration_list" {
		return nil
	}

	var syms []SymbolInfo
	for i := 0; i < int(list.NamedChildCount()); i++ {
		field := list.NamedChild(i)
		if field.Type() != "field_declaration" {
			continue
		}
		start, end := span(field)
		for j := 0; j < int(field.NamedChildCount()); j++ {
			name := field.NamedChild(j)
			if name.Type() != "field_identifier" {
				continue
			}
			syms = append(syms, SymbolInfo{
				Name:      name.Content(src),
				Kind:      KindField,
				Parent:    owner,
				StartLine: start,
				EndLine:   end,
			})
		}
	}
	return syms
}

// extractValueSpecs handles const and var declarations. A spec may declare
// several names; each gets the spec's span.
func extractValueSpecs(decl *sitter.Node, specType, kind string, src []byte) []SymbolInfo {
	declStart, declEnd := span(decl)
	grouped := int(decl.NamedChildCount()) > 1

	var syms []SymbolInfo
	for i := 0; i < int(decl.NamedChildCount()); i++ {
		spec := decl.NamedChild(i)
		if spec.Type() != specType {
			continue
		}
		start, end := declStart, declEnd
		if grouped {
			start, end = span(spec)
		}
		// Direct identifier children are the declared names; the value
		// expressions sit inside a nested expression_list.
		for j := 0; j < int(spec.NamedChildCount()); j++ {
			name := spec.NamedChild(j)
			if name.Type() != "identifier" {
				continue
			}
			syms = append(syms, SymbolInfo{
				Name:      name.Content(src),
				Kind:      kind,
				StartLine: start,
				EndLine:   end,
			})
		}
	}
	return syms
}

// isGenerated reports whether the file carries the standard generated-code
// marker before its package clause.
func isGenerated(src []byte) bool {
	scanner := bufio.NewScanner(bytes.NewReader(src))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if generatedMarker.MatchString(line) {
			return true
		}
		if bytes.HasPrefix([]byte(line), []byte("package ")) {
			break
		}
	}
	return false
}
