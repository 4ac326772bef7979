package registry

import (
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/golang"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/php"
	"github.com/smacker/go-tree-sitter/python"
	"github.com/smacker/go-tree-sitter/typescript/typescript"

	"github.com/slentz/tsquery-diag/query"
)

// LoadSitterLanguage builds a query.Language by introspecting a compiled
// tree-sitter grammar's own symbol and field tables, the same tables the
// grammar's C parser itself consults. This is how the bundled CLI binaries
// populate a LanguageStore for the handful of target grammars
// github.com/smacker/go-tree-sitter ships bindings for (golang, python,
// javascript, typescript, php), rather than hand-maintaining node/field
// vocabularies that would drift from the grammar's actual ABI.
//
// Supertype/subtype relations are not part of tree-sitter's runtime symbol
// table — they live in a grammar's node-types.json, which go-tree-sitter
// does not expose at runtime — so the returned Language always has a nil
// Supertypes map. Callers relying on subtype checks fall back to symbol-set
// membership, the degraded path query.Language's doc comment
// already describes for an ABI too old to introspect.
func LoadSitterLanguage(grammarName string, handle *sitter.Language) query.Language {
	lang := query.Language{
		GrammarName: grammarName,
		Handle:      handle,
		Symbols:     make(map[query.Symbol]struct{}),
		Fields:      make(map[string]struct{}),
	}
	if handle == nil {
		return lang
	}

	symbolCount := handle.SymbolCount()
	for i := uint32(0); i < symbolCount; i++ {
		sym := sitter.Symbol(i)
		name := handle.SymbolName(sym)
		if name == "" {
			continue
		}
		named := handle.SymbolType(sym) == sitter.SymbolTypeRegular
		lang.Symbols[query.Symbol{Label: name, Named: named}] = struct{}{}
	}

	fieldCount := handle.FieldCount()
	for i := uint32(1); i <= fieldCount; i++ {
		name := handle.FieldName(int(i))
		if name != "" {
			lang.Fields[name] = struct{}{}
		}
	}

	return lang
}

// BundledLanguages returns a Language for every target grammar
// github.com/smacker/go-tree-sitter ships a binding for, keyed by the
// basename query documents reference them by (the "queries/<grammar>/*.scm"
// layout convention — see grammarNameFromPath in package lsp).
func BundledLanguages() []query.Language {
	return []query.Language{
		LoadSitterLanguage("go", golang.GetLanguage()),
		LoadSitterLanguage("python", python.GetLanguage()),
		LoadSitterLanguage("javascript", javascript.GetLanguage()),
		LoadSitterLanguage("typescript", typescript.GetLanguage()),
		LoadSitterLanguage("php", php.GetLanguage()),
	}
}
