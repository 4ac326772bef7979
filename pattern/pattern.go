// Package pattern implements the Pattern Validator: compiling each top-level
// pattern's own source text against its target grammar's real tree-sitter
// query compiler, to catch structural errors (arity, malformed anchors,
// field/capture misuse the bundled query grammar's own parser accepts but
// the target grammar's query compiler rejects) that the AST scan only
// approximates heuristically against published vocabulary tables.
//
// Results are memoized in a cache.PatternScanCache keyed by
// (grammar name, pattern text), and the compile itself runs on a
// exec.BlockingExecutor since sitter.NewQuery is CPU-bound C code.
package pattern

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/slentz/tsquery-diag/cache"
	"github.com/slentz/tsquery-diag/diag"
	"github.com/slentz/tsquery-diag/exec"
	"github.com/slentz/tsquery-diag/location"
)

// Validator runs the Pattern Validator over one pattern's source text.
type Validator struct {
	executor exec.BlockingExecutor
	cache    *cache.PatternScanCache
}

// New creates a Validator. A nil cache disables memoization (every call
// recompiles); a nil executor runs inline.
func New(executor exec.BlockingExecutor, patternCache *cache.PatternScanCache) *Validator {
	if executor == nil {
		executor = exec.Inline{}
	}
	return &Validator{executor: executor, cache: patternCache}
}

// Check validates patternText (one top-level definition's own source slice,
// not the whole document) against handle, the target grammar's compiled
// language. baseOffset is patternText's byte offset within documentText, and
// sourceID identifies the document for span construction.
//
// Returns nil if the pattern is structurally valid, or if handle is nil
// (target grammar unknown — nothing to validate against).
func (v *Validator) Check(ctx context.Context, sourceID location.SourceID, grammarName string, documentText []byte, patternText []byte, baseOffset int, handle *sitter.Language) []diag.Issue {
	if handle == nil {
		return nil
	}

	compute := func() cache.Offset {
		result, err := v.executor.Run(ctx, func() any {
			_, compileErr := sitter.NewQuery(patternText, handle)
			return compileErr
		})
		if err != nil {
			// Cancelled before the blocking worker finished; treat as valid so
			// a cancelled request doesn't poison the cache with a spurious
			// result. The caller's ctx.Err() already signals cancellation.
			return cache.None()
		}
		compileErr, _ := result.(error)
		if compileErr == nil {
			return cache.None()
		}
		return cache.Some(queryErrorOffset(compileErr))
	}

	var offset cache.Offset
	if v.cache == nil {
		offset = compute()
	} else {
		offset = v.cache.GetOrCompute(grammarName, string(patternText), compute)
	}

	if !offset.Valid {
		return nil
	}

	absOffset := baseOffset + offset.Value
	line, col := lineColAtByte(documentText, absOffset)
	span := location.PointWithByte(sourceID, line, col, absOffset)

	return []diag.Issue{
		diag.NewIssue(diag.Error, diag.E_INVALID_PATTERN, "Pattern is structurally invalid for this grammar").
			WithSpan(span).
			WithDetail(diag.DetailKeyGrammar, grammarName).
			WithDetail(diag.DetailKeyByteOffset, fmt.Sprintf("%d", offset.Value)).
			Build(),
	}
}

// lineColAtByte converts an absolute byte offset into document text to a
// 1-based (line, column) pair. Column counts bytes from line start, and
// \r\n/\n/\r are each treated as a single line break, matching the
// conventions internal/source's registry uses for the same conversion and
// the byte-based columns tree-sitter itself reports via Node.StartPoint.
func lineColAtByte(text []byte, byteOffset int) (line, col int) {
	line, col = 1, 1
	i := 0
	for i < byteOffset && i < len(text) {
		switch text[i] {
		case '\r':
			line++
			col = 1
			i++
			if i < len(text) && text[i] == '\n' {
				i++
			}
			continue
		case '\n':
			line++
			col = 1
			i++
		default:
			col++
			i++
		}
	}
	return line, col
}

// queryErrorOffset extracts the byte offset go-tree-sitter reports for a
// query compile failure. Falls back to 0 when the error does not carry a
// structured offset (e.g. wrapped or unrecognized error types).
func queryErrorOffset(err error) int {
	type offsetError interface {
		Offset() uint32
	}
	if oe, ok := err.(offsetError); ok {
		return int(oe.Offset())
	}
	return 0
}
