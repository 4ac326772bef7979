// Package registry provides the default, in-process implementations of the
// diagnostic engine's external collaborators: an open-document store, a
// grammar/language store, and a layered options holder. Production callers
// (the CLI and the language server binding) wire these together; the
// diagnostic engine itself only ever sees their narrow interfaces
// (imports.DocumentLookup, *query.Language, query.Options).
package registry

import (
	"sync"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/slentz/tsquery-diag/query"
)

// DocumentStore holds the set of currently open query documents, keyed by
// URI. Safe for concurrent use; callers borrow a Document by value and must
// not mutate its slice/pointer fields in place.
type DocumentStore struct {
	mu        sync.RWMutex
	documents map[string]query.Document
}

// NewDocumentStore creates an empty DocumentStore.
func NewDocumentStore() *DocumentStore {
	return &DocumentStore{documents: map[string]query.Document{}}
}

// Put stores or replaces the document for uri.
func (s *DocumentStore) Put(uri string, doc query.Document) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.documents[uri] = doc
}

// Delete removes the document for uri, e.g. on didClose.
func (s *DocumentStore) Delete(uri string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.documents, uri)
}

// Get returns the document for uri and whether it was found.
func (s *DocumentStore) Get(uri string) (query.Document, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.documents[uri]
	return doc, ok
}

// LanguageStore holds the published introspection surface for every target
// grammar the engine knows about, keyed by grammar basename (e.g. "python").
type LanguageStore struct {
	mu        sync.RWMutex
	languages map[string]query.Language
}

// NewLanguageStore creates an empty LanguageStore.
func NewLanguageStore() *LanguageStore {
	return &LanguageStore{languages: map[string]query.Language{}}
}

// Put registers lang under its own GrammarName.
func (s *LanguageStore) Put(lang query.Language) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.languages[lang.GrammarName] = lang
}

// Get returns the Language for a grammar basename and whether it is known.
// The returned pointer is a fresh copy; mutating it does not affect the
// store.
func (s *LanguageStore) Get(grammarName string) (*query.Language, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	lang, ok := s.languages[grammarName]
	if !ok {
		return nil, false
	}
	return &lang, true
}

// Lookup adapts Get to the documents[uri]/languages[name] resolver shape
// DocumentStore.Resolve needs: it resolves by a document's own GrammarName.
func (s *LanguageStore) Lookup(doc query.Document) *query.Language {
	lang, ok := s.Get(doc.GrammarName)
	if !ok {
		return nil
	}
	return lang
}

// Resolve implements imports.DocumentLookup against this pair of stores: it
// looks a document up by URI and resolves its language from langs.
func (s *DocumentStore) Resolve(langs *LanguageStore) func(uri string) (query.Document, *query.Language, bool) {
	return func(uri string) (query.Document, *query.Language, bool) {
		doc, ok := s.Get(uri)
		if !ok {
			return query.Document{}, nil, false
		}
		return doc, langs.Lookup(doc), true
	}
}

// OptionsStore holds the single, process-wide Options value every diagnose
// call runs against. Reads take a read lock just long enough to copy the
// struct; Options' table fields are treated as immutable once published, so
// the copy can be used lock-free after Read returns (the suspension-point
// discipline the concurrency model requires of any borrowed collaborator
// state).
type OptionsStore struct {
	mu      sync.RWMutex
	current query.Options
}

// NewOptionsStore creates an OptionsStore holding opts.
func NewOptionsStore(opts query.Options) *OptionsStore {
	return &OptionsStore{current: opts}
}

// Read returns a copy of the current Options.
func (s *OptionsStore) Read() query.Options {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Replace swaps in a new Options value wholesale (e.g. on workspace
// configuration change).
func (s *OptionsStore) Replace(opts query.Options) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = opts
}

// QueryLanguageHandle is the single *sitter.Language handle for the bundled
// tree-sitter-query grammar itself, as opposed to a handle for one of the
// target grammars documents are written against.
//
// Grammar loading is out of scope for the diagnostic engine proper (see
// query.Document.QueryLang and query.Language.Handle, both borrowed
// collaborator values): the embedding binary is responsible for obtaining
// this handle from whatever real tree-sitter-query binding it links against
// and passing it to NewDocument below, the same way it supplies a Handle for
// every target language it registers with LanguageStore.
type QueryLanguageHandle = *sitter.Language

// NewDocument builds a query.Document from parsed content, the bundled
// query-grammar handle used to parse it, and its declared imports. This is
// the single place a Document is assembled, so QueryLang is never forgotten.
func NewDocument(uri string, text []byte, tree *sitter.Tree, queryLang QueryLanguageHandle, grammarName string, imports []query.Import) query.Document {
	return query.Document{
		URI:         uri,
		Text:        text,
		Tree:        tree,
		QueryLang:   queryLang,
		GrammarName: grammarName,
		Imports:     imports,
	}
}
