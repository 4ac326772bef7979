package lsp

import (
	"fmt"
	"net/url"
	"path/filepath"
	"runtime"

	"github.com/slentz/tsquery-diag/internal/docbuild"
)

// URIToPath converts a file:// URI to a filesystem path.
func URIToPath(uri string) (string, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return "", fmt.Errorf("parse URI %q: %w", uri, err)
	}
	if u.Scheme != "file" {
		return "", fmt.Errorf("not a file URI: %s", uri)
	}

	path := u.Path

	if runtime.GOOS == "windows" {
		if len(path) >= 3 && path[0] == '/' && isWindowsDriveLetter(path[1]) && path[2] == ':' {
			path = path[1:]
		}
		path = filepath.FromSlash(path)
	}

	return path, nil
}

// PathToURI converts a filesystem path to a file:// URI.
func PathToURI(path string) string {
	if !filepath.IsAbs(path) {
		if absPath, err := filepath.Abs(path); err == nil {
			path = absPath
		}
	}

	path = filepath.ToSlash(path)

	if runtime.GOOS == "windows" && len(path) >= 2 && isWindowsDriveLetter(path[0]) && path[1] == ':' {
		path = "/" + path
	}

	u := url.URL{Scheme: "file", Path: path}
	return u.String()
}

func isWindowsDriveLetter(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}

// isQueryURI reports whether uri refers to a tree-sitter query file (.scm).
func isQueryURI(uri string) bool {
	path, err := URIToPath(uri)
	if err != nil {
		return false
	}
	return filepath.Ext(path) == ".scm"
}

// grammarNameFromPath infers the target grammar basename from a query file's
// path. See docbuild.GrammarNameFromPath.
func grammarNameFromPath(path string) string {
	return docbuild.GrammarNameFromPath(path)
}
