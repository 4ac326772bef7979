// Package main provides the entry point for tsquery-diag, a batch CLI that
// runs the diagnostic pipeline over one or more tree-sitter query files and
// prints the results as text or JSON.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/slentz/tsquery-diag/catalog"
	"github.com/slentz/tsquery-diag/diag"
	"github.com/slentz/tsquery-diag/diagnose"
	extool "github.com/slentz/tsquery-diag/exec"
	"github.com/slentz/tsquery-diag/internal/config"
	"github.com/slentz/tsquery-diag/internal/docbuild"
	"github.com/slentz/tsquery-diag/internal/source"
	"github.com/slentz/tsquery-diag/location"
	"github.com/slentz/tsquery-diag/query"
	"github.com/slentz/tsquery-diag/registry"
)

var version = "dev"

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "tsquery-diag: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("tsquery-diag", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		format     = fs.String("format", "text", "output format: text|json")
		failOn     = fs.String("fail-on", "error", "minimum severity that causes a non-zero exit: fatal|error|warning|info|hint")
		limit      = fs.Int("limit", 0, "maximum number of issues to collect per file (0 means unlimited)")
		excerpts   = fs.Bool("excerpts", true, "include source excerpts in text output")
		configPath = fs.String("config", "", "path to a JSONC file overriding style options (see internal/config)")
		showVer    = fs.Bool("version", false, "print version and exit")
	)

	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: tsquery-diag [options] <file.scm> [file.scm ...]\n\n")
		fmt.Fprintf(stderr, "Diagnoses tree-sitter query files and prints the results.\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		fs.SetOutput(stderr)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		fs.Usage()
		return fmt.Errorf("parse flags: %w", err)
	}

	if *showVer {
		fmt.Fprintf(stdout, "tsquery-diag %s\n", version)
		return nil
	}

	threshold, err := severityFromFlag(*failOn)
	if err != nil {
		return err
	}

	paths := fs.Args()
	if len(paths) == 0 {
		fs.Usage()
		return errors.New("no input files given")
	}

	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	sources := source.NewRegistry()
	documents := registry.NewDocumentStore()
	languages := registry.NewLanguageStore()
	for _, lang := range registry.BundledLanguages() {
		languages.Put(lang)
	}
	options := query.Options{
		Predicates:    catalog.DefaultPredicates(),
		Directives:    catalog.DefaultDirectives(),
		ValidCaptures: catalog.DefaultCaptureVocabulary(),
	}
	if *configPath != "" {
		overrides, err := config.Load(*configPath)
		if err != nil {
			return err
		}
		if options, err = overrides.Apply(options); err != nil {
			return err
		}
	}

	var absPaths []string
	for _, path := range paths {
		absPath, err := loadDocument(sources, documents, path)
		if err != nil {
			logger.Warn("failed to load file", slog.String("path", path), slog.String("error", err.Error()))
			continue
		}
		absPaths = append(absPaths, absPath)
	}

	engine := diagnose.New(documents.Resolve(languages), extool.NewPool(4), nil)

	var allIssues []diag.Issue
	for _, absPath := range absPaths {
		sourceID := location.NewSourceID(absPath)
		doc, ok := documents.Get(absPath)
		if !ok {
			continue
		}
		lang := languages.Lookup(doc)
		issues := engine.Diagnose(context.Background(), sourceID, doc, lang, options)
		if *limit > 0 && len(issues) > *limit {
			issues = issues[:*limit]
		}
		allIssues = append(allIssues, issues...)
	}

	allIssues = diag.SortForBatch(allIssues)

	renderer := diag.NewRenderer(
		diag.WithSourceProvider(sources),
		diag.WithExcerpts(*excerpts),
	)

	if err := printIssues(stdout, renderer, allIssues, *format); err != nil {
		return err
	}

	for _, issue := range allIssues {
		if issue.Severity().IsAtLeastAsSevereAs(threshold) {
			return errors.New("diagnostics at or above threshold severity were found")
		}
	}
	return nil
}

// loadDocument reads path, registers its content and derived document under
// its absolute path (so declared imports, resolved to sibling absolute
// paths, name the same key other invocations of loadDocument register their
// own documents under), and returns that absolute path.
func loadDocument(sources *source.Registry, documents *registry.DocumentStore, path string) (string, error) {
	text, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		absPath = path
	}

	sourceID := location.NewSourceID(absPath)
	if err := sources.Register(sourceID, text); err != nil {
		return "", fmt.Errorf("register %s: %w", path, err)
	}

	grammarName := docbuild.GrammarNameFromPath(absPath)
	imports := docbuild.ResolveImports(absPath, docbuild.ParseImports(text))

	doc := registry.NewDocument(absPath, text, nil, nil, grammarName, imports)
	documents.Put(absPath, doc)
	return absPath, nil
}

func printIssues(w io.Writer, renderer *diag.Renderer, issues []diag.Issue, format string) error {
	switch format {
	case "json":
		for _, issue := range issues {
			if _, err := w.Write(append(renderer.FormatIssueJSON(issue), '\n')); err != nil {
				return err
			}
		}
		return nil
	case "text":
		for _, issue := range issues {
			fmt.Fprintln(w, renderer.FormatIssue(issue))
		}
		if len(issues) == 0 {
			fmt.Fprintln(w, "OK")
		}
		return nil
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

func severityFromFlag(s string) (diag.Severity, error) {
	switch s {
	case "fatal":
		return diag.Fatal, nil
	case "error":
		return diag.Error, nil
	case "warning":
		return diag.Warning, nil
	case "info":
		return diag.Info, nil
	case "hint":
		return diag.Hint, nil
	default:
		return 0, fmt.Errorf("invalid --fail-on value %q", s)
	}
}
